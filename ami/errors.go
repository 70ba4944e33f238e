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
	"strings"

	"github.com/aws/smithy-go"
)

// Kind classifies why a lookup failed.
type Kind int

const (
	// KindUnknown is returned by KindOf for nil or untyped errors.
	KindUnknown Kind = iota
	// KindInvalidRequest means the requested image string could not be parsed.
	KindInvalidRequest
	// KindNotFound means no catalog image satisfied the request.
	KindNotFound
	// KindOptInRequired means the account has not subscribed to the
	// Marketplace listing.
	KindOptInRequired
	// KindPermissionUnknown means the dry-run launch failed for any other reason.
	KindPermissionUnknown
	// KindCatalogUnavailable means the image catalog could not be loaded.
	KindCatalogUnavailable
)

// Messages reported back to CloudFormation for each kind.
const (
	MsgNotFound           = "No AMI could be found with the specified parameters"
	MsgOptInRequired      = "Product is not subscribed to in the AWS Marketplace."
	MsgPermissionUnknown  = "Unknown exception when testing AMI permissions."
	MsgExecutionError     = "Execution error when performing AMI lookup. Please check logs"
	msgInvalidRequestBase = "Invalid ImageRequested value"
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "InvalidRequest"
	case KindNotFound:
		return "AmiNotFound"
	case KindOptInRequired:
		return "OptInRequired"
	case KindPermissionUnknown:
		return "PermissionUnknown"
	case KindCatalogUnavailable:
		return "CatalogUnavailable"
	default:
		return "Unknown"
	}
}

// LookupError is the single error type returned by lookups.
type LookupError struct {
	Kind        Kind
	Message     string
	Cause       error
	Remediation string
}

func (e *LookupError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Remediation != "" {
		return fmt.Sprintf("%s\n\nRemediation: %s", msg, e.Remediation)
	}
	return msg
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}

// KindOf returns the Kind of the first LookupError in err's chain.
func KindOf(err error) Kind {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindUnknown
}

// ReportMessage returns the operator-facing message for err: the
// LookupError message when there is one, the generic execution error otherwise.
func ReportMessage(err error) string {
	var le *LookupError
	if errors.As(err, &le) && le.Message != "" {
		return le.Message
	}
	return MsgExecutionError
}

// InvalidRequest builds a KindInvalidRequest error with the given detail.
func InvalidRequest(format string, args ...any) *LookupError {
	return &LookupError{
		Kind:        KindInvalidRequest,
		Message:     fmt.Sprintf("%s: %s", msgInvalidRequestBase, fmt.Sprintf(format, args...)),
		Remediation: `Use an exact version such as "20.1.6" or a major release such as "Latest 20.x".`,
	}
}

// errorCode extracts the AWS API error code, if any.
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// errorPattern defines a pattern for matching and remediating errors
type errorPattern struct {
	codes       []string // AWS error codes that match outright
	anyPatterns []string // Any of these substrings of the message match
	msgSuffix   string
	remediation string
}

var errorPatterns = []errorPattern{
	{
		codes:       []string{"UnauthorizedOperation", "AccessDenied", "AccessDeniedException", "AuthFailure"},
		anyPatterns: []string{"not authorized", "AccessDenied"},
		msgSuffix:   "permission denied",
		remediation: "Grant the function's execution role ec2:DescribeImages and ec2:RunInstances.",
	},
	{
		codes:       []string{"InvalidAMIID.NotFound", "InvalidAMIID.Malformed", "InvalidAMIID.Unavailable"},
		msgSuffix:   "AMI not found",
		remediation: "AMI IDs are region-specific. Verify the Avi Vantage listing is offered in this region.",
	},
	{
		codes:       []string{"RequestLimitExceeded", "Throttling", "ThrottlingException"},
		msgSuffix:   "EC2 API throttled",
		remediation: "Retry the stack operation; the EC2 API rate limit for this account was exceeded.",
	},
	{
		anyPatterns: []string{"region", "Region"},
		msgSuffix:   "region configuration error",
		remediation: "Set AWS_REGION (or aws.region in config) to the region the stack runs in.",
	},
}

// WrapWithRemediation wraps an EC2 error with a remediation hint based on the
// error code or message.
func WrapWithRemediation(err error, context string) error {
	if err == nil {
		return nil
	}

	code := errorCode(err)
	errMsg := err.Error()

	for _, pattern := range errorPatterns {
		if matchesPattern(code, errMsg, pattern) {
			return &LookupError{
				Kind:        KindCatalogUnavailable,
				Message:     fmt.Sprintf("%s: %s", context, pattern.msgSuffix),
				Cause:       err,
				Remediation: pattern.remediation,
			}
		}
	}

	return fmt.Errorf("%s: %w", context, err)
}

func matchesPattern(code, errMsg string, p errorPattern) bool {
	for _, c := range p.codes {
		if code == c {
			return true
		}
	}
	for _, pat := range p.anyPatterns {
		if strings.Contains(errMsg, pat) {
			return true
		}
	}
	return false
}
