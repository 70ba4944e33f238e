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
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// versionPattern matches the first "major.minor.patch" run in a description,
// e.g. "Avi-Controller-20.1.6-9132" -> "20.1.6".
var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// ExtractVersion returns the first dotted three-part version in text.
func ExtractVersion(text string) (string, bool) {
	m := versionPattern.FindString(text)
	if m == "" {
		return "", false
	}
	return m, true
}

// Ordering decides which of two versions is newer.
type Ordering int

const (
	// OrderingSemantic compares each component numerically.
	OrderingSemantic Ordering = iota
	// OrderingLexical compares the raw strings byte by byte.
	OrderingLexical
)

// String returns the config name of the ordering.
func (o Ordering) String() string {
	switch o {
	case OrderingLexical:
		return "lexical"
	default:
		return "semantic"
	}
}

// ParseOrdering maps a config value to an Ordering.
func ParseOrdering(name string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "semantic", "semver":
		return OrderingSemantic, nil
	case "lexical", "string":
		return OrderingLexical, nil
	default:
		return OrderingSemantic, fmt.Errorf("unknown version ordering %q (supported: semantic, lexical)", name)
	}
}

// Compare returns a positive number if a is newer than b, negative if older,
// and zero if they rank the same.
func (o Ordering) Compare(a, b string) int {
	if o == OrderingLexical {
		return strings.Compare(a, b)
	}
	return compareSemantic(a, b)
}

func compareSemantic(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}
	return compareComponents(a, b)
}

// compareComponents handles versions semver rejects (leading zeros such as
// "20.01.1") by comparing dot-separated integers.
func compareComponents(a, b string) int {
	pa := strings.Split(a, ".")
	pb := strings.Split(b, ".")

	n := max(len(pa), len(pb))
	for i := 0; i < n; i++ {
		var x, y int
		if i < len(pa) {
			x, _ = strconv.Atoi(pa[i])
		}
		if i < len(pb) {
			y, _ = strconv.Atoi(pb[i])
		}
		if x != y {
			if x > y {
				return 1
			}
			return -1
		}
	}
	return 0
}

// MatchesMajor reports whether version belongs to the requested major line.
// Lexical ordering keeps the legacy string-prefix match, so "2" also selects
// "20.1.6". Semantic ordering compares the leading component exactly.
func (o Ordering) MatchesMajor(version, major string) bool {
	if o == OrderingLexical {
		return major != "" && strings.HasPrefix(version, major)
	}
	return sameMajor(version, major)
}

// sameMajor reports whether version's leading component equals major,
// numerically, so "2" never matches "20.1.6".
func sameMajor(version, major string) bool {
	lead, _, _ := strings.Cut(version, ".")
	if lead == major {
		return true
	}
	x, errX := strconv.Atoi(lead)
	y, errY := strconv.Atoi(major)
	return errX == nil && errY == nil && x == y
}
