// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ofxgo/ofxgo/internal/config"
	"github.com/ofxgo/ofxgo/internal/xdg"
)

// NewConfigCmd creates the config subcommand and its children.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create the ofxhost configuration",
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after merging defaults, the config file and flags.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return oops.Wrapf(err, "failed to encode config")
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write the built-in configuration to the --config path, or to the default
location under XDG_CONFIG_HOME. An existing file is kept unless --force is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configFile
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				return oops.With("path", path).Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := xdg.EnsureDir(filepath.Dir(path)); err != nil {
				return err
			}
			data, err := yaml.Marshal(config.Default())
			if err != nil {
				return oops.Wrapf(err, "failed to encode config")
			}
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return oops.With("path", path).Wrapf(err, "failed to write config")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
