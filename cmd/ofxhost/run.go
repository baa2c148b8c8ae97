// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/ofxgo/ofxgo/internal/observability"
	"github.com/ofxgo/ofxgo/internal/session"
	"github.com/ofxgo/ofxgo/pkg/errutil"
)

// runConfig holds configuration for the run command.
type runConfig struct {
	plugin string
}

// NewRunCmd creates the run subcommand.
func NewRunCmd() *cobra.Command {
	cfg := &runConfig{}

	cmd := &cobra.Command{
		Use:   "run SESSION...",
		Short: "Play session files against a plugin",
		Long: `Play one or more session files against a plugin. Each session starts
in a fresh simulated host and its report is written to stdout. The command
fails if any step does not match its expectation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(cmd, cfg, args)
		},
	}

	cmd.Flags().StringVarP(&cfg.plugin, "plugin", "p", defaultPlugin, "plugin to load")

	return cmd
}

// runSessions plays every session file in order and reports each one.
func runSessions(cmd *cobra.Command, cfg *runConfig, paths []string) error {
	conf, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	module, err := lookupPlugin(cfg.plugin)
	if err != nil {
		return err
	}

	runner, err := session.NewRunner(module,
		session.WithLogger(logger),
		session.WithHostDefaults(session.HostDefaults{
			APIVersion:                 conf.Host.APIVersion,
			SupportsMultipleClipDepths: conf.Host.SupportsMultipleClipDepths,
		}),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if conf.Metrics.Addr != "" {
		var ready atomic.Bool
		server := observability.NewServer(conf.Metrics.Addr, ready.Load)
		errCh, err := server.Start()
		if err != nil {
			return oops.Wrapf(err, "failed to start metrics server")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Stop(shutdownCtx); err != nil {
				logger.Warn("failed to stop metrics server", "error", err)
			}
		}()
		go func() {
			for err := range errCh {
				errutil.LogError(logger, "metrics server failed", err, "addr", server.Addr())
			}
		}()
		metrics = server.Metrics()
		ready.Store(true)
	}

	failed := 0
	for _, path := range paths {
		report, err := playFile(ctx, runner, path)
		if err != nil {
			return err
		}
		if metrics != nil {
			metrics.RecordSession(report.Passed, len(report.Steps), len(report.Failed()))
		}
		if err := writeReport(cmd.OutOrStdout(), conf.Output, report); err != nil {
			return oops.Wrapf(err, "failed to write report")
		}
		if !report.Passed {
			failed++
		}
		logger.Debug("session finished",
			slog.String("path", path),
			slog.Bool("passed", report.Passed),
			slog.Duration("elapsed", report.Elapsed),
		)
	}

	if failed > 0 {
		return oops.With("failed", failed).Errorf("%d of %d sessions failed", failed, len(paths))
	}
	return nil
}

// readSession reads, schema-checks and parses one session file. A session
// without a name is named after its file.
func readSession(path string) (*session.Session, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, oops.With("path", path).Wrapf(err, "failed to read session")
	}
	if err := session.ValidateSchema(data); err != nil {
		return nil, oops.With("path", path).Errorf("%s: %s", path, session.FormatSchemaError(err))
	}
	s, err := session.Parse(data)
	if err != nil {
		return nil, oops.With("path", path).Wrapf(err, "%s", path)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

func playFile(ctx context.Context, runner *session.Runner, path string) (*session.Report, error) {
	s, err := readSession(path)
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx, s)
}
