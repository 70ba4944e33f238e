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

package main

import (
	"fmt"

	"github.com/cowdogmoo/avilookup/cli"
	"github.com/cowdogmoo/avilookup/logging"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// resolveConcurrency bounds in-flight lookups; each may issue a dry-run
// RunInstances call.
const resolveConcurrency = 5

var resolveOpts cli.ResolveCLIOptions

var resolveCmd = &cobra.Command{
	Use:   "resolve REQUEST...",
	Short: "Resolve image requests to AMI IDs",
	Long: `Resolve runs the same lookup the custom resource performs, for one or
more ImageRequested values, and prints the selected AMIs.`,
	Example: `  # Newest 20.x controller, launch permission checked
  avilookup resolve "Latest 20.x"

  # Several requests as JSON, without the dry-run launch
  avilookup resolve "Latest 20.x" 18.2.9 --no-probe -o json

  # Another region and the pre-semver ordering
  avilookup resolve "Latest 21.x" --region eu-west-1 --ordering lexical`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveOpts.Region, "region", "", "AWS region (overrides config and AWS_REGION)")
	resolveCmd.Flags().String("profile", "", "AWS shared config profile")
	resolveCmd.Flags().StringVarP(&resolveOpts.Output, "output", "o", cli.FormatTable, "Output format (table, json, yaml)")
	resolveCmd.Flags().BoolVar(&resolveOpts.NoProbe, "no-probe", false, "Skip the dry-run launch permission check")
	resolveCmd.Flags().StringVar(&resolveOpts.Ordering, "ordering", "", "Version ordering (semantic, lexical)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	opts := resolveOpts
	opts.Requests = args

	if err := cli.NewValidator().ValidateResolveOptions(opts); err != nil {
		return err
	}

	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("configuration not initialized")
	}
	if opts.NoProbe {
		cfg.Probe.Enabled = false
	}

	svc, err := newService(ctx, cfg)
	if err != nil {
		return err
	}

	resolutions := make([]cli.Resolution, len(opts.Requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, raw := range opts.Requests {
		g.Go(func() error {
			result, err := svc.Lookup(gctx, raw)
			if err != nil {
				logging.DebugContext(gctx, "Lookup %q failed: %v", raw, err)
			}
			resolutions[i] = cli.NewResolution(raw, result, err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	formatter := cli.NewOutputFormatter(opts.Output).WithWriter(cmd.OutOrStdout())
	if err := formatter.DisplayResolutions(resolutions); err != nil {
		return err
	}

	failed := 0
	for _, r := range resolutions {
		if r.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(resolutions))
	}
	return nil
}
