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
	"strings"

	"github.com/cowdogmoo/avilookup/ami"
)

// PropertyImageRequested is the resource property holding the request.
const PropertyImageRequested = "ImageRequested"

// Properties are the custom resource's ResourceProperties.
type Properties struct {
	// ServiceToken is set by CloudFormation to the function ARN.
	ServiceToken string `json:"ServiceToken,omitempty" jsonschema:"description=ARN of the lookup function (set by CloudFormation)"`
	// ImageRequested selects the image: an exact version or "Latest <major>.x".
	ImageRequested string `json:"ImageRequested" jsonschema:"required,minLength=1,description=Exact Avi Vantage version (e.g. 20.1.6) or a major release (e.g. Latest 20.x),example=Latest 20.x,example=20.1.6"`
}

// ParseProperties extracts Properties from raw ResourceProperties. A missing,
// empty, or non-string ImageRequested is a KindInvalidRequest error.
func ParseProperties(raw map[string]interface{}) (Properties, error) {
	var props Properties

	if token, ok := raw["ServiceToken"].(string); ok {
		props.ServiceToken = token
	}

	value, ok := raw[PropertyImageRequested]
	if !ok || value == nil {
		return props, ami.InvalidRequest("%s is required", PropertyImageRequested)
	}

	requested, ok := value.(string)
	if !ok {
		return props, ami.InvalidRequest("%s must be a string, got %T", PropertyImageRequested, value)
	}
	if strings.TrimSpace(requested) == "" {
		return props, ami.InvalidRequest("%s is empty", PropertyImageRequested)
	}

	props.ImageRequested = requested
	return props, nil
}

