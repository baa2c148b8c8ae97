// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

// Package logging provides structured logging with OpenTelemetry trace context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// traceHandler wraps a slog.Handler to add trace context.
type traceHandler struct {
	handler slog.Handler
	service string
	version string
}

// Handle adds trace context to the log record.
func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	// Add service and version
	r.AddAttrs(
		slog.String("service", h.service),
		slog.String("version", h.version),
	)

	// Extract trace context if present
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.HasTraceID() {
		r.AddAttrs(slog.String("trace_id", spanCtx.TraceID().String()))
	}
	if spanCtx.HasSpanID() {
		r.AddAttrs(slog.String("span_id", spanCtx.SpanID().String()))
	}

	//nolint:wrapcheck // Handler interface requires unwrapped error passthrough
	return h.handler.Handle(ctx, r)
}

// Enabled returns true if the level is enabled.
func (h *traceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs returns a new handler with the given attributes.
func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{
		handler: h.handler.WithAttrs(attrs),
		service: h.service,
		version: h.version,
	}
}

// WithGroup returns a new handler with the given group.
func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{
		handler: h.handler.WithGroup(name),
		service: h.service,
		version: h.version,
	}
}

// Options configures Setup.
type Options struct {
	Service string
	Version string
	// Format is "json" or "text". Anything else means json.
	Format string
	// Level is the minimum level written. The zero value is Info.
	Level slog.Level
}

// Setup creates a configured slog.Logger.
// If w is nil, writes to os.Stderr.
func Setup(opts Options, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var baseHandler slog.Handler
	handlerOpts := &slog.HandlerOptions{
		Level: opts.Level,
	}

	if opts.Format == "text" {
		baseHandler = slog.NewTextHandler(w, handlerOpts)
	} else {
		baseHandler = slog.NewJSONHandler(w, handlerOpts)
	}

	handler := &traceHandler{
		handler: baseHandler,
		service: opts.Service,
		version: opts.Version,
	}

	return slog.New(handler)
}

// SetDefault sets up the default logger and returns it.
func SetDefault(opts Options) *slog.Logger {
	logger := Setup(opts, nil)
	slog.SetDefault(logger)
	return logger
}
