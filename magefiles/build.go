//go:build mage
// +build mage

package main

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/l50/goutils/v2/git"
	"github.com/l50/goutils/v2/sys"

	// mage utility functions
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Lambda's provided.al2023 runtime executes a binary named bootstrap.
const (
	distDir       = "dist"
	bootstrapName = "bootstrap"
	packageName   = "avilookup-lambda.zip"
)

type compileParams struct {
	GOOS   string
	GOARCH string
}

var repoRoot string

func init() {
	var err error
	repoRoot, err = git.RepoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get repo root: %v\n", err)
		os.Exit(1)
	}
}

func (p *compileParams) populateFromEnv() {
	if p.GOOS == "" {
		p.GOOS = os.Getenv("GOOS")
		if p.GOOS == "" {
			p.GOOS = "linux"
		}
	}
	if p.GOARCH == "" {
		p.GOARCH = os.Getenv("GOARCH")
		if p.GOARCH == "" {
			p.GOARCH = "arm64"
		}
	}
}

// Compile builds the Lambda bootstrap binary. GOOS and GOARCH default to
// linux/arm64, the Graviton Lambda target.
//
// Example usage:
//
// ```go
// mage compile                      # dist/bootstrap for linux/arm64
// GOARCH=amd64 mage compile         # dist/bootstrap for linux/amd64
// ```
//
// **Returns:**
//
// error: An error if any issue occurs during compilation.
func Compile() error {
	cwd, err := changeToRepoRoot()
	if err != nil {
		return err
	}
	defer func() { _ = os.Chdir(cwd) }()

	var p compileParams
	p.populateFromEnv()

	if err := os.MkdirAll(distDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %v", distDir, err)
	}

	fmt.Println(color.YellowString("Compiling %s for %s/%s.", bootstrapName, p.GOOS, p.GOARCH))
	env := map[string]string{
		"GOOS":        p.GOOS,
		"GOARCH":      p.GOARCH,
		"CGO_ENABLED": "0",
	}
	out := filepath.Join(distDir, bootstrapName)
	if err := sh.RunWithV(env, "go", "build", "-trimpath", "-tags", "lambda.norpc",
		"-ldflags", "-s -w", "-o", out, "./cmd/avilookup"); err != nil {
		return fmt.Errorf("failed to compile %s: %v", bootstrapName, err)
	}

	return nil
}

// Package zips the bootstrap binary into the Lambda deployment artifact.
//
// Example usage:
//
// ```go
// mage package
// ```
//
// **Returns:**
//
// error: An error if the binary cannot be built or archived.
func Package() error {
	mg.Deps(Compile)

	cwd, err := changeToRepoRoot()
	if err != nil {
		return err
	}
	defer func() { _ = os.Chdir(cwd) }()

	zipPath := filepath.Join(distDir, packageName)
	if err := zipFile(zipPath, filepath.Join(distDir, bootstrapName), bootstrapName); err != nil {
		return fmt.Errorf("failed to package %s: %v", zipPath, err)
	}

	fmt.Println(color.GreenString("Wrote %s", zipPath))
	return nil
}

func zipFile(zipPath, srcPath, name string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	dst, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	zw := zip.NewWriter(dst)
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate
	// Lambda needs the executable bit preserved.
	header.SetMode(0o755)

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, src); err != nil {
		return err
	}
	return zw.Close()
}

func changeToRepoRoot() (originalCwd string, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}

	if cwd != repoRoot {
		if err := os.Chdir(repoRoot); err != nil {
			return "", fmt.Errorf("failed to change directory to repo root: %v", err)
		}
	}

	return cwd, nil
}

// RunTests executes all unit tests with the race detector.
//
// Example usage:
//
// ```go
// mage runtests
// ```
//
// **Returns:**
//
// error: An error if any issue occurs while running the tests.
func RunTests() error {
	cwd, err := changeToRepoRoot()
	if err != nil {
		return err
	}
	defer func() { _ = os.Chdir(cwd) }()

	fmt.Println("Running unit tests.")
	if _, err := sys.RunCommand("go", "test", "-race", "-count=1", "./..."); err != nil {
		return fmt.Errorf("failed to run unit tests: %v", err)
	}
	return nil
}
