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

package cli

import (
	"fmt"
	"strings"

	"github.com/cowdogmoo/avilookup/ami"
)

// maxRequests bounds how many requests one resolve invocation accepts.
const maxRequests = 50

// Validator validates CLI input before passing to business logic.
type Validator struct{}

// NewValidator creates a new CLI validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateResolveOptions validates resolve command options.
func (v *Validator) ValidateResolveOptions(opts ResolveCLIOptions) error {
	if len(opts.Requests) == 0 {
		return fmt.Errorf("at least one image request is required (e.g. \"Latest 20.x\")")
	}
	if len(opts.Requests) > maxRequests {
		return fmt.Errorf("too many requests: %d (maximum %d)", len(opts.Requests), maxRequests)
	}

	for _, raw := range opts.Requests {
		if _, err := ami.ParseRequest(raw); err != nil {
			return fmt.Errorf("request %q: %s", raw, ami.ReportMessage(err))
		}
	}

	if opts.Ordering != "" {
		if _, err := ami.ParseOrdering(opts.Ordering); err != nil {
			return err
		}
	}

	return ValidateOutputFormat(opts.Output)
}

// ValidateCatalogOptions validates catalog command options.
func (v *Validator) ValidateCatalogOptions(opts CatalogCLIOptions) error {
	if opts.Major != "" && strings.Trim(opts.Major, "0123456789") != "" {
		return fmt.Errorf("invalid --major %q (expected a number such as 20)", opts.Major)
	}
	return ValidateOutputFormat(opts.Output)
}

// ValidateOutputFormat checks that format is one of the supported output formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format %q (supported: %s, %s, %s)", format, FormatTable, FormatJSON, FormatYAML)
	}
}
