//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/magefile/mage/sh"
)

func init() {
	os.Setenv("GO111MODULE", "on")
}

// Tidy runs go mod tidy on the avilookup module.
//
// Example usage:
//
// ```go
// mage tidy
// ```
//
// **Returns:**
//
// error: An error if go mod tidy fails.
func Tidy() error {
	cwd, err := changeToRepoRoot()
	if err != nil {
		return err
	}
	defer func() { _ = os.Chdir(cwd) }()

	fmt.Println(color.YellowString("Tidying go.mod."))
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return fmt.Errorf(color.RedString("failed to tidy go.mod: %v", err))
	}
	return nil
}

// GenerateSchema writes the JSON schemas for the custom resource
// properties and the config file under schema/.
//
// Example usage:
//
// ```go
// mage generateschema
// ```
//
// **Returns:**
//
// error: An error if the schema generator fails.
func GenerateSchema() error {
	cwd, err := changeToRepoRoot()
	if err != nil {
		return err
	}
	defer func() { _ = os.Chdir(cwd) }()

	fmt.Println(color.YellowString("Generating JSON schemas."))
	if err := sh.RunV("go", "run", "./cmd/schema-gen"); err != nil {
		return fmt.Errorf(color.RedString("failed to generate schemas: %v", err))
	}
	return nil
}
