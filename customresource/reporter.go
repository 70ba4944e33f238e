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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/cowdogmoo/avilookup/errors"
	"github.com/cowdogmoo/avilookup/logging"
)

// Data keys sent back to CloudFormation.
const (
	DataKeyAmi   = "Ami"
	DataKeyError = "Error"
)

// Outcome is the single result reported for an event.
type Outcome struct {
	Status cfn.StatusType
	Data   map[string]interface{}
	Reason string
}

// Success returns a SUCCESS outcome carrying data.
func Success(data map[string]interface{}) Outcome {
	return Outcome{Status: cfn.StatusSuccess, Data: data}
}

// Failure returns a FAILED outcome whose Data and Reason carry message.
func Failure(message string) Outcome {
	return Outcome{
		Status: cfn.StatusFailed,
		Data:   map[string]interface{}{DataKeyError: message},
		Reason: message,
	}
}

// Reporter delivers an Outcome for an event.
type Reporter interface {
	Report(ctx context.Context, event *cfn.Event, outcome Outcome) error
}

// HTTPClient is the subset of *http.Client used to send responses.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// CFNReporter PUTs responses to the event's presigned ResponseURL.
type CFNReporter struct {
	client    HTTPClient
	logStream string
}

var _ Reporter = (*CFNReporter)(nil)

// NewCFNReporter returns a reporter using client (a 30 second
// *http.Client when nil) and the current Lambda log stream.
func NewCFNReporter(client HTTPClient) *CFNReporter {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &CFNReporter{
		client:    client,
		logStream: lambdacontext.LogStreamName,
	}
}

// StatusError is returned when the response URL answers with anything but
// 200 OK.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("response URL returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// WithLogStream overrides the log stream named in responses.
func (r *CFNReporter) WithLogStream(stream string) *CFNReporter {
	r.logStream = stream
	return r
}

// Report sends outcome for event. Any answer other than 200 OK from the
// response URL is an error.
func (r *CFNReporter) Report(ctx context.Context, event *cfn.Event, outcome Outcome) error {
	resp := r.response(event, outcome)

	body, err := json.Marshal(resp)
	if err != nil {
		return errors.Wrap("marshal response", event.LogicalResourceID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, event.ResponseURL, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap("build response request", logging.RedactURL(event.ResponseURL), err)
	}
	// The presigned S3 URL is signed without a content type.
	req.Header.Set("Content-Type", "")
	req.ContentLength = int64(len(body))

	logging.DebugContext(ctx, "Sending %s response to %s", resp.Status, logging.RedactURL(event.ResponseURL))

	res, err := r.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = logging.RedactURL(urlErr.URL)
		}
		return errors.Wrap("send response", logging.RedactURL(event.ResponseURL), err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		statusErr := &StatusError{StatusCode: res.StatusCode, Body: string(bytes.TrimSpace(detail))}
		return errors.Wrap("send response", logging.RedactURL(event.ResponseURL), statusErr)
	}

	logging.InfoContext(ctx, "Reported %s for %s", resp.Status, event.LogicalResourceID)
	return nil
}

func (r *CFNReporter) response(event *cfn.Event, outcome Outcome) *cfn.Response {
	resp := cfn.NewResponse(event)
	resp.Status = outcome.Status
	resp.Data = outcome.Data
	resp.PhysicalResourceID = r.physicalResourceID(event)

	if outcome.Status == cfn.StatusFailed {
		resp.Reason = outcome.Reason
		if r.logStream != "" {
			resp.Reason = fmt.Sprintf("%s (see CloudWatch Log Stream: %s)", outcome.Reason, r.logStream)
		}
	}
	return resp
}

func (r *CFNReporter) physicalResourceID(event *cfn.Event) string {
	switch {
	case event.PhysicalResourceID != "":
		return event.PhysicalResourceID
	case r.logStream != "":
		return r.logStream
	default:
		return event.LogicalResourceID
	}
}
