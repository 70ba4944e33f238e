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
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestDistance bounds the edit distance for typo suggestions.
const maxSuggestDistance = 2

// SuggestVersions returns up to limit versions from available that look like
// query. Subsequence matches ("20.1" -> "20.1.6") come first; otherwise
// versions within a small edit distance ("20.1.7" -> "20.1.6") are offered.
// Equal-distance candidates are ordered newest first.
func SuggestVersions(query string, available []string, limit int) []string {
	if query == "" || limit <= 0 {
		return nil
	}

	ranks := fuzzy.RankFind(query, available)
	if len(ranks) == 0 {
		for i, v := range available {
			d := fuzzy.LevenshteinDistance(query, v)
			if d <= maxSuggestDistance {
				ranks = append(ranks, fuzzy.Rank{Source: query, Target: v, Distance: d, OriginalIndex: i})
			}
		}
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return compareSemantic(ranks[i].Target, ranks[j].Target) > 0
	})

	out := make([]string, 0, min(limit, len(ranks)))
	for _, r := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, r.Target)
	}
	return out
}
