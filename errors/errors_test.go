/*
Copyright © 2024 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	baseErr := New("throttled")

	tests := []struct {
		name     string
		action   string
		detail   string
		err      error
		expected string
	}{
		{
			name:     "action only",
			action:   "describe images",
			err:      baseErr,
			expected: "failed to describe images: throttled",
		},
		{
			name:     "action and detail",
			action:   "load image catalog",
			detail:   "a9e7i60gidrc5x9nd7z3qyjj5",
			err:      baseErr,
			expected: "failed to load image catalog (a9e7i60gidrc5x9nd7z3qyjj5): throttled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := Wrap(tt.action, tt.detail, tt.err)
			require.Error(t, result)
			assert.Equal(t, tt.expected, result.Error())
			assert.True(t, Is(result, baseErr))
		})
	}
}

func TestWrapNil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Wrap("do something", "details", nil))
}

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestAs(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("outer: %w", Wrap("probe", "ami-1", &codedError{code: "OptInRequired"}))

	var target *codedError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "OptInRequired", target.code)
}
