//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const coverProfile = "coverage.out"

// Test groups test targets (all, unit, cover).
type Test mg.Namespace

// All runs every test with the race detector.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-race", "-v", "./...")
}

// Unit runs every test once, bypassing the test cache.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "-count=1", "./...")
}

// Cover runs every test with a coverage profile in bin/ and prints the
// per-function summary.
func (Test) Cover() error {
	mg.Deps(Build)
	profile := filepath.Join(binaryDir, coverProfile)
	if err := sh.RunV(binGo, "test", "-coverprofile="+profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+profile)
}
