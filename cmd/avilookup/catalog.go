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

	"github.com/cowdogmoo/avilookup/ami"
	"github.com/cowdogmoo/avilookup/cli"
	"github.com/spf13/cobra"
)

var catalogOpts cli.CatalogCLIOptions

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the Marketplace images considered for lookups",
	Long: `Catalog runs the DescribeImages query the lookup uses and lists every
image with the version extracted from its description.`,
	Example: `  avilookup catalog
  avilookup catalog --major 20 -o yaml`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogOpts.Region, "region", "", "AWS region (overrides config and AWS_REGION)")
	catalogCmd.Flags().String("profile", "", "AWS shared config profile")
	catalogCmd.Flags().String("product-code", "", "Marketplace product code (overrides catalog.product_code)")
	catalogCmd.Flags().StringVarP(&catalogOpts.Output, "output", "o", cli.FormatTable, "Output format (table, json, yaml)")
	catalogCmd.Flags().StringVar(&catalogOpts.Major, "major", "", "Only list images of this major release")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := cli.NewValidator().ValidateCatalogOptions(catalogOpts); err != nil {
		return err
	}

	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("configuration not initialized")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	clients, err := newAWSClients(ctx, clientConfig(cfg))
	if err != nil {
		return err
	}

	catalog, err := ami.LoadCatalog(ctx, clients.EC2, catalogFilter(cfg))
	if err != nil {
		return err
	}

	images := catalog.Images()
	if catalogOpts.Major != "" {
		images = catalog.ImagesForMajor(catalogOpts.Major)
	}

	return cli.NewOutputFormatter(catalogOpts.Output).WithWriter(cmd.OutOrStdout()).DisplayCatalog(images)
}
