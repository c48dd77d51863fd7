//go:build mage

// Package main provides build targets for pathviz using Mage.
//
// Usage:
//
//	mage build    Compile pathviz and the search server to bin/
//	mage test     Run all tests
//	mage race     Run all tests with the race detector
//	mage lint     Run golangci-lint
//	mage clean    Remove build artifacts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo     = "go"
	binLint   = "golangci-lint"
	binaryDir = "bin"
	module    = "github.com/zucenko/pathviz"
)

var targets = map[string]string{
	"pathviz":        ".",
	"pathviz-server": "./cmd/server",
}

func version() string {
	if v := os.Getenv("PATHVIZ_VERSION"); v != "" {
		return v
	}
	return "dev"
}

// Build compiles every binary to bin/, stamping the version.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	ldflags := "-X " + module + "/internal/cli.Version=" + version()
	for name, pkg := range targets {
		if err := sh.RunV(binGo, "build", "-ldflags", ldflags, "-o", filepath.Join(binaryDir, name), pkg); err != nil {
			return err
		}
	}
	return nil
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs all tests with the race detector.
func Race() error {
	mg.Deps(Test)
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}
