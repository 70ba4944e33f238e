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

// Package ami resolves Avi Vantage controller version requests to concrete
// Amazon Machine Image IDs and verifies that the calling account may launch
// the result.
//
// # Architecture Overview
//
//   - [LoadCatalog]: one DescribeImages query (product code + state filters)
//     producing an immutable [Catalog]
//   - [ExtractVersion]: pulls the dotted "major.minor.patch" version out of an
//     image description
//   - [ParseRequest]: turns "Latest 20.x" or "20.1.6" into a [Request]
//   - [Resolver]: the latest-within-major and exact-substring strategies
//   - [Prober]: dry-run RunInstances permission check
//   - [Service]: process-wide state tying the above together behind [Looker]
//
// # Lifecycle
//
// A [Service] is built once per process. Inside Lambda that happens during
// init, before the first event is handled:
//
//	ctx := context.Background()
//	clients, err := ami.NewAWSClients(ctx, ami.ClientConfig{Region: "us-east-1"})
//	if err != nil {
//	    return err
//	}
//
//	svc, err := ami.NewService(ctx, clients.EC2, ami.ServiceOptions{
//	    Filter:       ami.CatalogFilter{ProductCode: "a9e7i60gidrc5x9nd7z3qyjj5"},
//	    Ordering:     ami.OrderingSemantic,
//	    ProbeEnabled: true,
//	    InstanceType: "m5.2xlarge",
//	})
//	if err != nil {
//	    return err
//	}
//
//	result, err := svc.Lookup(ctx, "Latest 20.x")
//
// The catalog is fetched during construction and never refreshed. Lookups
// only read it, so a Service is safe for concurrent use.
//
// # Error Handling
//
// Every lookup failure is a [*LookupError] whose [Kind] says what went wrong
// (invalid request, no matching image, missing Marketplace subscription,
// unexpected probe failure, catalog unavailable). Use [KindOf] to branch on it:
//
//	if ami.KindOf(err) == ami.KindOptInRequired {
//	    // ask the operator to subscribe in AWS Marketplace
//	}
//
// # Version Ordering
//
// [OrderingSemantic] compares versions numerically per component, so 20.10.0
// is newer than 20.9.0. [OrderingLexical] compares the raw strings, where
// "20.9.0" sorts after "20.10.0"; it exists for stacks pinned to that
// historical behavior.
package ami
