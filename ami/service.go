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
	"context"

	"github.com/cowdogmoo/avilookup/logging"
)

// Looker turns an ImageRequested value into a launchable image.
type Looker interface {
	Lookup(ctx context.Context, requested string) (*Result, error)
}

// Result is a successful lookup.
type Result struct {
	ImageID  string `json:"ami" yaml:"ami"`
	Version  string `json:"version" yaml:"version"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Strategy string `json:"strategy" yaml:"strategy"`
	Probed   bool   `json:"probed" yaml:"probed"`
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	Filter       CatalogFilter
	Ordering     Ordering
	ProbeEnabled bool
	InstanceType string
}

// Service holds the process-wide catalog and answers lookups against it.
type Service struct {
	catalog  *Catalog
	resolver *Resolver
	prober   *Prober
}

var _ Looker = (*Service)(nil)

// NewService loads the catalog once and returns a ready Service.
func NewService(ctx context.Context, client EC2API, opts ServiceOptions) (*Service, error) {
	catalog, err := LoadCatalog(ctx, client, opts.Filter)
	if err != nil {
		if KindOf(err) == KindUnknown {
			err = &LookupError{Kind: KindCatalogUnavailable, Message: MsgExecutionError, Cause: err}
		}
		return nil, err
	}
	return NewServiceFromCatalog(catalog, client, opts), nil
}

// NewServiceFromCatalog builds a Service around an already-loaded catalog.
// client is only used for probing and may be nil when probing is disabled.
func NewServiceFromCatalog(catalog *Catalog, client EC2API, opts ServiceOptions) *Service {
	svc := &Service{
		catalog:  catalog,
		resolver: NewResolver(opts.Ordering),
	}
	if opts.ProbeEnabled && client != nil {
		svc.prober = NewProber(client, opts.InstanceType)
	}
	return svc
}

// Catalog returns the service's catalog.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Lookup parses requested, resolves it against the catalog and, when probing
// is enabled, checks launch permission on the selected image.
func (s *Service) Lookup(ctx context.Context, requested string) (*Result, error) {
	req, err := ParseRequest(requested)
	if err != nil {
		return nil, err
	}

	img, err := s.resolver.Resolve(req, s.catalog.images)
	if err != nil {
		return nil, err
	}

	version, _ := img.Version()
	logging.InfoContext(ctx, "Resolved %q to %s (version %s, %s strategy, %s ordering)",
		requested, img.ID, version, req.Strategy, s.resolver.Ordering())

	result := &Result{
		ImageID:  img.ID,
		Version:  version,
		Name:     img.Name,
		Strategy: req.Strategy.String(),
	}

	if s.prober != nil {
		if err := s.prober.Probe(ctx, img.ID); err != nil {
			return nil, err
		}
		result.Probed = true
	}

	return result, nil
}

// Unavailable returns a Looker that fails every lookup with
// KindCatalogUnavailable. It stands in for a Service whose catalog could not
// be loaded so that callers still get a definitive answer.
func Unavailable(cause error) Looker {
	return unavailable{cause: cause}
}

type unavailable struct {
	cause error
}

func (u unavailable) Lookup(context.Context, string) (*Result, error) {
	return nil, &LookupError{
		Kind:    KindCatalogUnavailable,
		Message: MsgExecutionError,
		Cause:   u.cause,
	}
}
