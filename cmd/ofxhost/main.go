// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

// Command ofxhost loads image effect plugins into a simulated host and
// plays scripted sessions of host actions against them.
package main

import (
	"fmt"
	"os"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
