// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package main

import (
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// NewValidateCmd creates the validate subcommand.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate SESSION...",
		Short: "Check session files without playing them",
		Long: `Check session files against the session schema and the session rules
(known instances, required step fields) without loading a plugin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invalid := 0
			for _, path := range args {
				if _, err := readSession(path); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n", err)
					invalid++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", path)
			}
			if invalid > 0 {
				return oops.With("invalid", invalid).Errorf("%d of %d session files are invalid", invalid, len(args))
			}
			return nil
		},
	}
}
