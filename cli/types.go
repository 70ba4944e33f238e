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

// Output formats accepted by --output.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ResolveCLIOptions defines command-line options for the resolve command.
//
// ResolveCLIOptions captures the requests and flags given on the command
// line. They are validated before any AWS call is made.
type ResolveCLIOptions struct {
	// Requests are ImageRequested values, e.g. "Latest 20.x" or "20.1.6".
	Requests []string

	// Region overrides the configured AWS region.
	Region string

	// Output selects table, json, or yaml.
	Output string

	// NoProbe skips the dry-run launch permission check.
	NoProbe bool

	// Ordering overrides resolver.ordering ("semantic" or "lexical").
	Ordering string
}

// CatalogCLIOptions defines command-line options for the catalog command.
type CatalogCLIOptions struct {
	// Region overrides the configured AWS region.
	Region string

	// Output selects table, json, or yaml.
	Output string

	// Major limits the listing to one major release when set.
	Major string
}
