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

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/cowdogmoo/avilookup/logging"
)

// DefaultProbeInstanceType is the instance type used for the dry-run launch.
// Avi controllers require at least this size, so Marketplace listings always
// offer it.
const DefaultProbeInstanceType = "m5.2xlarge"

// EC2 error codes the probe distinguishes.
const (
	codeDryRunOperation = "DryRunOperation"
	codeOptInRequired   = "OptInRequired"
)

// Prober checks launch permission for an image with a dry-run RunInstances.
type Prober struct {
	client       EC2API
	instanceType ec2types.InstanceType
}

// NewProber returns a Prober launching instanceType (DefaultProbeInstanceType
// when empty).
func NewProber(client EC2API, instanceType string) *Prober {
	if instanceType == "" {
		instanceType = DefaultProbeInstanceType
	}
	return &Prober{
		client:       client,
		instanceType: ec2types.InstanceType(instanceType),
	}
}

// Probe returns nil when EC2 acknowledges the dry run, a KindOptInRequired
// LookupError when the Marketplace subscription is missing, and a
// KindPermissionUnknown LookupError for anything else.
func (p *Prober) Probe(ctx context.Context, imageID string) error {
	_, err := p.client.RunInstances(ctx, &ec2.RunInstancesInput{
		ImageId:      aws.String(imageID),
		InstanceType: p.instanceType,
		DryRun:       aws.Bool(true),
		MinCount:     aws.Int32(1),
		MaxCount:     aws.Int32(1),
	})

	result := classifyProbeError(err)
	if result != nil {
		logging.WarnContext(ctx, "Permission probe for %s failed: %v", imageID, err)
		return result
	}

	logging.DebugContext(ctx, "Permission probe for %s passed", imageID)
	return nil
}

func classifyProbeError(err error) error {
	if err == nil {
		return nil
	}

	switch errorCode(err) {
	case codeDryRunOperation:
		return nil
	case codeOptInRequired:
		return &LookupError{
			Kind:        KindOptInRequired,
			Message:     MsgOptInRequired,
			Cause:       err,
			Remediation: "Accept the terms of the Avi Vantage listing in AWS Marketplace for this account, then retry the stack operation.",
		}
	default:
		return &LookupError{
			Kind:    KindPermissionUnknown,
			Message: MsgPermissionUnknown,
			Cause:   err,
		}
	}
}
