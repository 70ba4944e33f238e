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
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupErrorError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  LookupError
		want string
	}{
		{
			name: "message only",
			err:  LookupError{Message: MsgNotFound},
			want: MsgNotFound,
		},
		{
			name: "with cause",
			err:  LookupError{Message: MsgPermissionUnknown, Cause: errors.New("boom")},
			want: MsgPermissionUnknown + ": boom",
		},
		{
			name: "with remediation",
			err:  LookupError{Message: MsgNotFound, Remediation: "try 20.1.6"},
			want: MsgNotFound + "\n\nRemediation: try 20.1.6",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestKindOfAndReportMessage(t *testing.T) {
	t.Parallel()

	le := &LookupError{Kind: KindOptInRequired, Message: MsgOptInRequired}
	wrapped := fmt.Errorf("lookup: %w", le)

	assert.Equal(t, KindOptInRequired, KindOf(wrapped))
	assert.Equal(t, MsgOptInRequired, ReportMessage(wrapped))

	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, MsgExecutionError, ReportMessage(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, MsgExecutionError, ReportMessage(&LookupError{Kind: KindNotFound}))
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "InvalidRequest", KindInvalidRequest.String())
	assert.Equal(t, "AmiNotFound", KindNotFound.String())
	assert.Equal(t, "OptInRequired", KindOptInRequired.String())
	assert.Equal(t, "PermissionUnknown", KindPermissionUnknown.String())
	assert.Equal(t, "CatalogUnavailable", KindCatalogUnavailable.String())
	assert.Equal(t, "Unknown", KindUnknown.String())
}

func TestWrapWithRemediation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		err             error
		wantTyped       bool
		wantRemediation string
	}{
		{
			name:            "access denied by code",
			err:             &smithy.GenericAPIError{Code: "AuthFailure"},
			wantTyped:       true,
			wantRemediation: "ec2:DescribeImages",
		},
		{
			name:            "access denied by message",
			err:             errors.New("user is not authorized to perform this action"),
			wantTyped:       true,
			wantRemediation: "ec2:DescribeImages",
		},
		{
			name:            "missing region",
			err:             errors.New("could not resolve endpoint: Invalid region"),
			wantTyped:       true,
			wantRemediation: "AWS_REGION",
		},
		{
			name:            "malformed image",
			err:             &smithy.GenericAPIError{Code: "InvalidAMIID.Malformed"},
			wantTyped:       true,
			wantRemediation: "region-specific",
		},
		{
			name: "unmatched",
			err:  errors.New("something else"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := WrapWithRemediation(tc.err, "describing images")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "describing images")
			assert.ErrorIs(t, err, tc.err)

			var le *LookupError
			if !tc.wantTyped {
				assert.False(t, errors.As(err, &le))
				return
			}
			require.ErrorAs(t, err, &le)
			assert.Equal(t, KindCatalogUnavailable, le.Kind)
			assert.Contains(t, le.Remediation, tc.wantRemediation)
		})
	}

	assert.NoError(t, WrapWithRemediation(nil, "noop"))
}
