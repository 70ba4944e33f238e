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

package ami

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLatest(t *testing.T) {
	t.Parallel()

	for _, ordering := range []Ordering{OrderingSemantic, OrderingLexical} {
		t.Run(ordering.String(), func(t *testing.T) {
			t.Parallel()
			img, err := NewResolver(ordering).ResolveLatest("20", testImages())
			require.NoError(t, err)
			assert.Equal(t, "ami-3", img.ID)
		})
	}
}

func TestResolveLatest_OrderingDiffers(t *testing.T) {
	t.Parallel()

	images := []Image{
		{ID: "ami-9", Description: "Avi-Controller-20.1.9-1"},
		{ID: "ami-10", Description: "Avi-Controller-20.1.10-1"},
	}

	img, err := NewResolver(OrderingSemantic).ResolveLatest("20", images)
	require.NoError(t, err)
	assert.Equal(t, "ami-10", img.ID)

	img, err = NewResolver(OrderingLexical).ResolveLatest("20", images)
	require.NoError(t, err)
	assert.Equal(t, "ami-9", img.ID)
}

func TestResolveLatest_MinorComparison(t *testing.T) {
	t.Parallel()

	images := []Image{
		{ID: "ami-old", Description: "Avi-Controller-18.9.9"},
		{ID: "ami-a", Description: "Avi-Controller-20.1.1"},
		{ID: "ami-b", Description: "Avi-Controller-20.1.6"},
		{ID: "ami-c", Description: "Avi-Controller-20.2.0"},
	}
	img, err := NewResolver(OrderingSemantic).ResolveLatest("20", images)
	require.NoError(t, err)
	assert.Equal(t, "ami-c", img.ID)

	images = []Image{
		{ID: "ami-9", Description: "Avi-Controller-20.9.0"},
		{ID: "ami-10", Description: "Avi-Controller-20.10.0"},
	}
	img, err = NewResolver(OrderingSemantic).ResolveLatest("20", images)
	require.NoError(t, err)
	assert.Equal(t, "ami-10", img.ID)

	img, err = NewResolver(OrderingLexical).ResolveLatest("20", images)
	require.NoError(t, err)
	assert.Equal(t, "ami-9", img.ID)
}

func TestResolveLatest_TieKeepsFirst(t *testing.T) {
	t.Parallel()

	images := []Image{
		{ID: "ami-a", Description: "Avi-Controller-20.2.0-1"},
		{ID: "ami-b", Description: "Avi-Controller-20.2.0-2"},
	}

	img, err := NewResolver(OrderingSemantic).ResolveLatest("20", images)
	require.NoError(t, err)
	assert.Equal(t, "ami-a", img.ID)
}

func TestResolveLatest_MajorIsComponentExact(t *testing.T) {
	t.Parallel()

	_, err := NewResolver(OrderingSemantic).ResolveLatest("2", testImages())
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, MsgNotFound, ReportMessage(err))
}

func TestResolveLatest_LexicalPrefixMatch(t *testing.T) {
	t.Parallel()

	images := []Image{{ID: "ami-20", Description: "Avi-Controller-20.1.6"}}
	img, err := NewResolver(OrderingLexical).ResolveLatest("2", images)
	require.NoError(t, err)
	assert.Equal(t, "ami-20", img.ID)
}

func TestResolveExact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		version string
		wantID  string
	}{
		{name: "full version", version: "20.1.6", wantID: "ami-2"},
		{name: "prefix takes first in catalog order", version: "20.1", wantID: "ami-2"},
		{name: "substring match", version: "20.1.1", wantID: "ami-4"},
		{name: "major only", version: "21", wantID: "ami-6"},
	}

	resolver := NewResolver(OrderingSemantic)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			img, err := resolver.ResolveExact(tc.version, testImages())
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, img.ID)
		})
	}
}

func TestResolveExact_NotFoundSuggests(t *testing.T) {
	t.Parallel()

	_, err := NewResolver(OrderingSemantic).ResolveExact("20.1.7", testImages())
	require.Error(t, err)

	var le *LookupError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, KindNotFound, le.Kind)
	assert.Equal(t, MsgNotFound, le.Message)
	assert.Contains(t, le.Remediation, "20.1.6")
}

func TestResolve_EmptyCatalog(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(OrderingSemantic)
	for _, raw := range []string{"Latest 20.x", "20.1.6"} {
		req, err := ParseRequest(raw)
		require.NoError(t, err)

		_, err = resolver.Resolve(req, nil)
		require.Error(t, err, raw)

		var le *LookupError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, KindNotFound, le.Kind)
		assert.Contains(t, le.Remediation, "catalog is empty")
	}
}

func TestResolve_NoSuggestionLists(t *testing.T) {
	t.Parallel()

	_, err := NewResolver(OrderingSemantic).ResolveExact("99.99.99", testImages())

	var le *LookupError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Remediation, "5 versions are available")
}

func TestResolve_Dispatch(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(OrderingSemantic)

	img, err := resolver.Resolve(Request{Strategy: StrategyLatest, Major: "18"}, testImages())
	require.NoError(t, err)
	assert.Equal(t, "ami-1", img.ID)

	img, err = resolver.Resolve(Request{Strategy: StrategyExact, Version: "21.1.1"}, testImages())
	require.NoError(t, err)
	assert.Equal(t, "ami-6", img.ID)

	_, err = resolver.Resolve(Request{Strategy: Strategy(42)}, testImages())
	assert.Equal(t, KindInvalidRequest, KindOf(err))
}

func TestResolve_SkipsImagesWithoutVersion(t *testing.T) {
	t.Parallel()

	images := []Image{{ID: "ami-x", Description: "Avi Vantage"}}
	_, err := NewResolver(OrderingSemantic).ResolveExact("Avi", images)
	assert.Equal(t, KindNotFound, KindOf(err))
}
