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

import "strings"

// Strategy selects how a request is matched against the catalog.
type Strategy int

const (
	// StrategyExact picks the first image whose version contains the request.
	StrategyExact Strategy = iota
	// StrategyLatest picks the newest image within a major release.
	StrategyLatest
)

func (s Strategy) String() string {
	if s == StrategyLatest {
		return "latest"
	}
	return "exact"
}

// latestMarker in a request selects StrategyLatest.
const latestMarker = "Latest"

// Request is a parsed ImageRequested value.
type Request struct {
	Raw      string
	Strategy Strategy
	// Major is set for StrategyLatest, e.g. "20" for "Latest 20.x".
	Major string
	// Version is set for StrategyExact, e.g. "20.1.6".
	Version string
}

// ParseRequest parses an ImageRequested value. Values containing "Latest"
// take the token after the first space as the major release ("Latest 20.x"
// -> "20"); anything else is an exact version substring.
func ParseRequest(raw string) (Request, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Request{}, InvalidRequest("value is empty")
	}

	if !strings.Contains(trimmed, latestMarker) {
		return Request{Raw: raw, Strategy: StrategyExact, Version: trimmed}, nil
	}

	_, rest, ok := strings.Cut(trimmed, " ")
	if !ok {
		return Request{}, InvalidRequest("%q names no major version", raw)
	}
	token := strings.TrimSpace(rest)
	if i := strings.IndexByte(token, ' '); i >= 0 {
		token = token[:i]
	}
	major, _, _ := strings.Cut(token, ".")
	if major == "" || strings.Trim(major, "0123456789") != "" {
		return Request{}, InvalidRequest("%q has non-numeric major version %q", raw, major)
	}

	return Request{Raw: raw, Strategy: StrategyLatest, Major: major}, nil
}
