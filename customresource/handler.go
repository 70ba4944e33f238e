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

package customresource

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/cowdogmoo/avilookup/ami"
	"github.com/cowdogmoo/avilookup/logging"
)

// Handler dispatches CloudFormation events to a Looker and reports the
// result through a Reporter.
type Handler struct {
	looker   ami.Looker
	reporter Reporter
}

// NewHandler returns a Handler.
func NewHandler(looker ami.Looker, reporter Reporter) *Handler {
	return &Handler{looker: looker, reporter: reporter}
}

// Handle processes one event and sends exactly one response for it. The
// returned error is non-nil only when the response could not be delivered.
func (h *Handler) Handle(ctx context.Context, event cfn.Event) error {
	ctx = h.withEventLogger(ctx, &event)
	logging.InfoContext(ctx, "Received %s request for %s", event.RequestType, event.LogicalResourceID)

	outcome := h.outcome(ctx, &event)

	if err := h.reporter.Report(ctx, &event, outcome); err != nil {
		logging.ErrorContext(ctx, "Failed to report %s for %s: %v", outcome.Status, event.LogicalResourceID, err)
		return err
	}
	return nil
}

func (h *Handler) outcome(ctx context.Context, event *cfn.Event) Outcome {
	if event.RequestType == cfn.RequestDelete {
		return Success(nil)
	}

	props, err := ParseProperties(event.ResourceProperties)
	if err != nil {
		return h.failure(ctx, err)
	}

	result, err := h.looker.Lookup(ctx, props.ImageRequested)
	if err != nil {
		return h.failure(ctx, err)
	}

	return Success(map[string]interface{}{DataKeyAmi: result.ImageID})
}

func (h *Handler) failure(ctx context.Context, err error) Outcome {
	logging.ErrorContext(ctx, "AMI lookup failed (%s): %v", ami.KindOf(err), err)
	return Failure(ami.ReportMessage(err))
}

func (h *Handler) withEventLogger(ctx context.Context, event *cfn.Event) context.Context {
	attrs := []slog.Attr{
		slog.String("request_id", event.RequestID),
		slog.String("logical_id", event.LogicalResourceID),
		slog.String("request_type", string(event.RequestType)),
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		attrs = append(attrs, slog.String("aws_request_id", lc.AwsRequestID))
	}
	return logging.WithLogger(ctx, logging.FromContext(ctx).With(attrs...))
}
