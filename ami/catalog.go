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
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/cowdogmoo/avilookup/logging"
)

// Image is one candidate machine image from the catalog.
type Image struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	Description  string `json:"description" yaml:"description"`
	CreationDate string `json:"creation_date,omitempty" yaml:"creation_date,omitempty"`
}

// Version returns the version embedded in the image description.
func (i Image) Version() (string, bool) {
	return ExtractVersion(i.Description)
}

// CatalogFilter selects the images considered for resolution.
type CatalogFilter struct {
	// ProductCode is the AWS Marketplace product code of the listing.
	ProductCode string
	// States defaults to ["available"] when empty.
	States []string
	// Owners optionally restricts image owners (account IDs or aliases).
	Owners []string
}

func (f CatalogFilter) input() *ec2.DescribeImagesInput {
	states := f.States
	if len(states) == 0 {
		states = []string{"available"}
	}

	input := &ec2.DescribeImagesInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("product-code"),
				Values: []string{f.ProductCode},
			},
			{
				Name:   aws.String("state"),
				Values: states,
			},
		},
	}
	if len(f.Owners) > 0 {
		input.Owners = f.Owners
	}
	return input
}

// Catalog is the immutable set of candidate images loaded at startup.
type Catalog struct {
	images      []Image
	productCode string
	loadedAt    time.Time
}

// NewCatalog builds a catalog from already-fetched images, preserving order.
func NewCatalog(productCode string, images []Image) *Catalog {
	cp := make([]Image, len(images))
	copy(cp, images)
	return &Catalog{
		images:      cp,
		productCode: productCode,
		loadedAt:    time.Now(),
	}
}

// LoadCatalog runs the DescribeImages query for the filter, following
// pagination, and returns the images in the order EC2 reported them.
func LoadCatalog(ctx context.Context, client EC2API, filter CatalogFilter) (*Catalog, error) {
	paginator := ec2.NewDescribeImagesPaginator(client, filter.input())

	var images []Image
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, WrapWithRemediation(err, "failed to describe images for product code "+filter.ProductCode)
		}
		for _, img := range page.Images {
			images = append(images, imageFromEC2(img))
		}
	}

	logging.InfoContext(ctx, "Loaded %d images for product code %s", len(images), filter.ProductCode)
	return NewCatalog(filter.ProductCode, images), nil
}

func imageFromEC2(img ec2types.Image) Image {
	return Image{
		ID:           aws.ToString(img.ImageId),
		Name:         aws.ToString(img.Name),
		Description:  aws.ToString(img.Description),
		CreationDate: aws.ToString(img.CreationDate),
	}
}

// Images returns a copy of the catalog's images in catalog order.
func (c *Catalog) Images() []Image {
	cp := make([]Image, len(c.images))
	copy(cp, c.images)
	return cp
}

// Len returns the number of images in the catalog.
func (c *Catalog) Len() int {
	return len(c.images)
}

// ProductCode returns the product code the catalog was loaded for.
func (c *Catalog) ProductCode() string {
	return c.productCode
}

// LoadedAt returns when the catalog was built.
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}

// Versions returns the distinct versions found in the catalog, in catalog order.
func (c *Catalog) Versions() []string {
	seen := make(map[string]struct{}, len(c.images))
	var versions []string
	for _, img := range c.images {
		v, ok := img.Version()
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		versions = append(versions, v)
	}
	return versions
}

// ImagesForMajor returns the images whose version belongs to major, in
// catalog order.
func (c *Catalog) ImagesForMajor(major string) []Image {
	var out []Image
	for _, img := range c.images {
		if v, ok := img.Version(); ok && sameMajor(v, major) {
			out = append(out, img)
		}
	}
	return out
}
