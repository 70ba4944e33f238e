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

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cowdogmoo/avilookup/ami"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testResolutions() []Resolution {
	return []Resolution{
		NewResolution("Latest 20.x", &ami.Result{ImageID: "ami-0abc", Version: "20.2.0", Strategy: "latest", Probed: true}, nil),
		NewResolution("99.0.0", nil, &ami.LookupError{Kind: ami.KindNotFound, Message: ami.MsgNotFound}),
	}
}

func testCatalogImages() []ami.Image {
	return []ami.Image{
		{ID: "ami-1", Description: "Avi-Controller-20.1.6-9132", CreationDate: "2021-03-01T00:00:00.000Z"},
		{ID: "ami-2", Description: "Avi Vantage"},
	}
}

func TestNewResolution(t *testing.T) {
	t.Parallel()

	ok := NewResolution("20.1.6", &ami.Result{ImageID: "ami-1"}, nil)
	assert.False(t, ok.Failed())
	assert.Empty(t, ok.Kind)

	failed := NewResolution("20.1.6", &ami.Result{ImageID: "ami-1"}, errors.New("boom"))
	assert.True(t, failed.Failed())
	assert.Nil(t, failed.Result)
	assert.Equal(t, "Unknown", failed.Kind)
	assert.Equal(t, ami.MsgExecutionError, failed.Error)
}

func TestDisplayResolutions_Table(t *testing.T) {
	var buf bytes.Buffer
	err := NewOutputFormatter(FormatTable).WithWriter(&buf).DisplayResolutions(testResolutions())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "REQUEST")
	assert.Contains(t, output, "ami-0abc")
	assert.Contains(t, output, "20.2.0")
	assert.Contains(t, output, "AmiNotFound")
	assert.Contains(t, output, "Resolved: 1, failed: 1")
}

func TestDisplayResolutions_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter(FormatJSON).WithWriter(&buf).DisplayResolutions(testResolutions()))

	var got []Resolution
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "ami-0abc", got[0].Result.ImageID)
	assert.True(t, got[0].Result.Probed)
	assert.Nil(t, got[1].Result)
	assert.Equal(t, ami.MsgNotFound, got[1].Error)
}

func TestDisplayResolutions_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter(FormatYAML).WithWriter(&buf).DisplayResolutions(testResolutions()))

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Latest 20.x", got[0]["request"])
	assert.Equal(t, "AmiNotFound", got[1]["kind"])
}

func TestDisplayCatalog_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter(FormatTable).WithWriter(&buf).DisplayCatalog(testCatalogImages()))

	output := buf.String()
	assert.Contains(t, output, "ami-1")
	assert.Contains(t, output, "20.1.6")
	assert.Contains(t, output, "Avi Vantage")
	assert.Contains(t, output, "Total images: 2")
}

func TestDisplayCatalog_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter(FormatJSON).WithWriter(&buf).DisplayCatalog(testCatalogImages()))

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "ami-1", got[0]["id"])
	assert.Equal(t, "20.1.6", got[0]["version"])
	assert.NotContains(t, got[1], "version")
}

func TestDisplayCatalog_YAMLInlinesImage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter(FormatYAML).WithWriter(&buf).DisplayCatalog(testCatalogImages()))

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "ami-1", got[0]["id"])
	assert.Equal(t, "Avi-Controller-20.1.6-9132", got[0]["description"])
}

func TestDisplay_EmptyCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter(FormatTable).WithWriter(&buf).DisplayCatalog(nil))
	assert.Contains(t, buf.String(), "Total images: 0")
}

func TestDisplay_InvalidFormat(t *testing.T) {
	t.Parallel()

	formatter := NewOutputFormatter("xml").WithWriter(&bytes.Buffer{})
	assert.Error(t, formatter.DisplayResolutions(testResolutions()))
	assert.Error(t, formatter.DisplayCatalog(testCatalogImages()))
}
