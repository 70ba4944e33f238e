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

// Package main generates JSON schemas for the custom resource properties and
// the avilookup config file. The schemas drive template linting and IDE
// completion for config.yaml.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cowdogmoo/avilookup/config"
	"github.com/cowdogmoo/avilookup/customresource"
	"github.com/invopop/jsonschema"
)

var (
	output     = flag.String("o", "schema/avilookup-resource.json", "Output path for the custom resource properties schema")
	configOut  = flag.String("config-o", "schema/avilookup-config.json", "Output path for the config file schema")
	commentDir = flag.String("src", "./", "Module root used to extract doc comments (empty to skip)")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := writeSchema(*output, propertiesSchema()); err != nil {
		return err
	}
	return writeSchema(*configOut, configSchema())
}

func newReflector(fieldNameTag string) *jsonschema.Reflector {
	reflector := &jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
		FieldNameTag:              fieldNameTag,
	}

	// Doc comments become descriptions; missing sources only lose those.
	if *commentDir != "" {
		if err := reflector.AddGoComments("github.com/cowdogmoo/avilookup", *commentDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to extract doc comments: %v\n", err)
		}
	}
	return reflector
}

func propertiesSchema() *jsonschema.Schema {
	schema := newReflector("").Reflect(&customresource.Properties{})
	schema.ID = "https://github.com/cowdogmoo/avilookup/schema/avilookup-resource.json"
	schema.Title = "Avi Vantage AMI lookup"
	schema.Description = "ResourceProperties of the Custom::AviAmiLookup resource"
	schema.Examples = []interface{}{
		map[string]interface{}{
			"ServiceToken":   "arn:aws:lambda:us-east-1:123456789012:function:avilookup",
			"ImageRequested": "Latest 20.x",
		},
		map[string]interface{}{
			"ServiceToken":   "arn:aws:lambda:us-east-1:123456789012:function:avilookup",
			"ImageRequested": "20.1.6",
		},
	}
	return schema
}

func configSchema() *jsonschema.Schema {
	schema := newReflector("yaml").Reflect(&config.Config{})
	schema.ID = "https://github.com/cowdogmoo/avilookup/schema/avilookup-config.json"
	schema.Title = "avilookup configuration"
	schema.Description = "Schema for avilookup config.yaml"

	defaults := config.Default()
	schema.Examples = []interface{}{
		map[string]interface{}{
			"log": map[string]interface{}{"level": defaults.Log.Level, "format": defaults.Log.Format},
			"catalog": map[string]interface{}{
				"product_code": defaults.Catalog.ProductCode,
				"states":       defaults.Catalog.States,
			},
			"probe":    map[string]interface{}{"enabled": defaults.Probe.Enabled, "instance_type": defaults.Probe.InstanceType},
			"resolver": map[string]interface{}{"ordering": defaults.Resolver.Ordering},
		},
	}
	return schema
}

func writeSchema(path string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Append newline to satisfy end-of-file-fixer
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}

	fmt.Printf("✓ Generated JSON schema: %s\n", path)
	return nil
}
