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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cowdogmoo/avilookup/ami"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Resolution is the outcome of one resolve request.
type Resolution struct {
	Request string      `json:"request" yaml:"request"`
	Result  *ami.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Kind    string      `json:"kind,omitempty" yaml:"kind,omitempty"`
	Error   string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewResolution builds a Resolution from a lookup result or error.
func NewResolution(request string, result *ami.Result, err error) Resolution {
	r := Resolution{Request: request, Result: result}
	if err != nil {
		r.Result = nil
		r.Kind = ami.KindOf(err).String()
		r.Error = ami.ReportMessage(err)
	}
	return r
}

// Failed reports whether the request failed.
func (r Resolution) Failed() bool {
	return r.Error != ""
}

// CatalogEntry is one image row of a catalog listing.
type CatalogEntry struct {
	ami.Image `yaml:",inline"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
}

// OutputFormatter handles formatting output for CLI commands.
type OutputFormatter struct {
	format string
	out    io.Writer
}

// NewOutputFormatter creates a new output formatter writing to stdout.
func NewOutputFormatter(format string) *OutputFormatter {
	return &OutputFormatter{
		format: format,
		out:    os.Stdout,
	}
}

// WithWriter redirects the formatter's output.
func (f *OutputFormatter) WithWriter(w io.Writer) *OutputFormatter {
	f.out = w
	return f
}

// DisplayResolutions writes resolve results in the configured format.
func (f *OutputFormatter) DisplayResolutions(resolutions []Resolution) error {
	switch f.format {
	case FormatJSON:
		return f.writeJSON(resolutions)
	case FormatYAML:
		return f.writeYAML(resolutions)
	case FormatTable:
		return f.resolutionTable(resolutions)
	default:
		return fmt.Errorf("unsupported output format: %s", f.format)
	}
}

// DisplayCatalog writes catalog images in the configured format.
func (f *OutputFormatter) DisplayCatalog(images []ami.Image) error {
	entries := make([]CatalogEntry, 0, len(images))
	for _, img := range images {
		v, _ := img.Version()
		entries = append(entries, CatalogEntry{Image: img, Version: v})
	}

	switch f.format {
	case FormatJSON:
		return f.writeJSON(entries)
	case FormatYAML:
		return f.writeYAML(entries)
	case FormatTable:
		return f.catalogTable(entries)
	default:
		return fmt.Errorf("unsupported output format: %s", f.format)
	}
}

func (f *OutputFormatter) resolutionTable(resolutions []Resolution) error {
	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "REQUEST\tAMI\tVERSION\tSTATUS")
	_, _ = fmt.Fprintln(w, "-------\t---\t-------\t------")

	failed := 0
	for _, r := range resolutions {
		if r.Failed() {
			failed++
			_, _ = fmt.Fprintf(w, "%s\t-\t-\t%s\n", r.Request, color.RedString("%s: %s", r.Kind, r.Error))
			continue
		}
		status := "ok"
		if r.Result.Probed {
			status = "ok (launch permitted)"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Request, r.Result.ImageID, r.Result.Version, color.GreenString(status))
	}

	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(f.out, "\nResolved: %d, failed: %d\n", len(resolutions)-failed, failed)
	return err
}

func (f *OutputFormatter) catalogTable(entries []CatalogEntry) error {
	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "AMI\tVERSION\tCREATED\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "---\t-------\t-------\t-----------")

	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, version, e.CreationDate, e.Description)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(f.out, "\nTotal images: %d\n", len(entries))
	return err
}

func (f *OutputFormatter) writeJSON(v interface{}) error {
	encoder := json.NewEncoder(f.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *OutputFormatter) writeYAML(v interface{}) error {
	encoder := yaml.NewEncoder(f.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
