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
	"strings"
)

// Resolver selects one image per request.
type Resolver struct {
	ordering Ordering
}

// NewResolver returns a Resolver using the given version ordering.
func NewResolver(ordering Ordering) *Resolver {
	return &Resolver{ordering: ordering}
}

// Ordering returns the resolver's version ordering.
func (r *Resolver) Ordering() Ordering {
	return r.ordering
}

// Resolve applies the request's strategy to images.
func (r *Resolver) Resolve(req Request, images []Image) (Image, error) {
	switch req.Strategy {
	case StrategyLatest:
		return r.ResolveLatest(req.Major, images)
	case StrategyExact:
		return r.ResolveExact(req.Version, images)
	default:
		return Image{}, InvalidRequest("unsupported strategy %d", req.Strategy)
	}
}

// ResolveLatest returns the newest image on the major line, as decided by the
// resolver's ordering. Ties keep the image seen first.
func (r *Resolver) ResolveLatest(major string, images []Image) (Image, error) {
	var (
		best        Image
		bestVersion string
		found       bool
	)

	for _, img := range images {
		version, ok := img.Version()
		if !ok || !r.ordering.MatchesMajor(version, major) {
			continue
		}
		if !found || r.ordering.Compare(version, bestVersion) > 0 {
			best, bestVersion, found = img, version, true
		}
	}

	if !found {
		return Image{}, notFound(fmt.Sprintf("Latest %s.x", major), major, images)
	}
	return best, nil
}

// ResolveExact returns the first image, in catalog order, whose version
// contains version as a substring.
func (r *Resolver) ResolveExact(version string, images []Image) (Image, error) {
	for _, img := range images {
		v, ok := img.Version()
		if ok && containsVersion(v, version) {
			return img, nil
		}
	}
	return Image{}, notFound(version, version, images)
}

func containsVersion(have, want string) bool {
	return want != "" && strings.Contains(have, want)
}

func notFound(requested, query string, images []Image) *LookupError {
	err := &LookupError{
		Kind:    KindNotFound,
		Message: MsgNotFound,
	}

	available := NewCatalog("", images).Versions()
	if suggestions := SuggestVersions(query, available, 3); len(suggestions) > 0 {
		err.Remediation = fmt.Sprintf("No image matches %q. Closest available versions: %v", requested, suggestions)
	} else if len(available) == 0 {
		err.Remediation = "The image catalog is empty. Check the product code and that the account can see the Marketplace listing in this region."
	} else {
		err.Remediation = fmt.Sprintf("No image matches %q. %d versions are available; run `avilookup catalog` to list them.", requested, len(available))
	}
	return err
}
