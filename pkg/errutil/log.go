// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package errutil

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs an error at error level with structured context if it's an
// oops error. Extra attrs are appended after the error attributes.
func LogError(logger *slog.Logger, msg string, err error, attrs ...any) {
	LogErrorContext(context.Background(), logger, slog.LevelError, msg, err, attrs...)
}

// LogErrorContext logs err at level. For oops errors it extracts the code
// and context; for standard errors it logs the error string. The context
// is passed to the handler so trace ids are attached.
func LogErrorContext(ctx context.Context, logger *slog.Logger, level slog.Level, msg string, err error, attrs ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	if oopsErr, ok := oops.AsOops(err); ok {
		all := []any{
			"error", oopsErr.Error(),
		}
		if code := oopsErr.Code(); code != nil {
			all = append(all, "code", code)
		}
		if oc := oopsErr.Context(); len(oc) > 0 {
			all = append(all, "context", oc)
		}
		logger.Log(ctx, level, msg, append(all, attrs...)...)
		return
	}
	logger.Log(ctx, level, msg, append([]any{"error", err}, attrs...)...)
}
