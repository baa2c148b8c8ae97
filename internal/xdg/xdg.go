// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

// Package xdg provides XDG Base Directory paths for ofxhost.
package xdg

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"
)

const appName = "ofxgo"

// ConfigDir returns the XDG config directory for ofxgo.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home := os.Getenv("HOME")
		if home == "" {
			return "", oops.Errorf("neither XDG_CONFIG_HOME nor HOME is set")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName), nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
// Directories are created with 0700 permissions.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return oops.With("path", path).Wrapf(err, "failed to create directory")
	}
	return nil
}
