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
	"context"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/cowdogmoo/avilookup/ami"
	"github.com/cowdogmoo/avilookup/config"
	"github.com/cowdogmoo/avilookup/customresource"
	"github.com/cowdogmoo/avilookup/logging"
	"github.com/spf13/cobra"
)

// lambdaStart is swapped out in tests.
var lambdaStart = lambda.Start

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve CloudFormation custom resource requests in AWS Lambda",
	Long: `Serve loads the image catalog once and then answers CloudFormation
custom resource events until the Lambda runtime stops the process.

If the catalog cannot be loaded every event is answered with FAILED so
that stack operations do not wait for a timeout.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	handler := customresource.NewHandler(buildLooker(ctx, configFromContext(cmd)), customresource.NewCFNReporter(nil))

	lambdaStart(func(invocationCtx context.Context, event cfn.Event) error {
		return handler.Handle(logging.WithLogger(invocationCtx, logger), event)
	})
	return nil
}

// buildLooker returns the lookup service, or a Looker that fails every
// request when the service cannot be built.
func buildLooker(ctx context.Context, cfg *config.Config) ami.Looker {
	svc, err := newService(ctx, cfg)
	if err != nil {
		logging.ErrorContext(ctx, "AMI catalog unavailable, all requests will fail: %v", err)
		return ami.Unavailable(err)
	}
	logging.InfoContext(ctx, "Serving lookups against %d images", svc.Catalog().Len())
	return svc
}
