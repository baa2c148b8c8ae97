// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package main

import (
	"io"
	"log/slog"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/ofxgo/ofxgo/internal/config"
	"github.com/ofxgo/ofxgo/internal/logging"
	"github.com/ofxgo/ofxgo/internal/session"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the ofxhost CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ofxhost",
		Short: "ofxhost - a simulated host for OFX image effect plugins",
		Long: `ofxhost loads image effect plugins into a simulated host and plays
scripted sessions of host actions against them, checking every reply.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/ofxgo/config.yaml)")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewDescribeCmd())
	cmd.AddCommand(NewPluginsCmd())
	cmd.AddCommand(NewSchemaCmd())
	cmd.AddCommand(NewConfigCmd())

	return cmd
}

// loadConfig reads the configuration for cmd and builds its logger.
// Logs go to the command's error stream so reports on stdout stay clean.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, nil, oops.Wrapf(err, "invalid configuration")
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.Setup(logging.Options{
		Service: "ofxhost",
		Version: version,
		Format:  cfg.Log.Format,
		Level:   level,
	}, cmd.ErrOrStderr())
	return cfg, logger, nil
}

func writeReport(w io.Writer, format string, report *session.Report) error {
	if format == "json" {
		return report.WriteJSON(w)
	}
	return report.WriteText(w)
}
