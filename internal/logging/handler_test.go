// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestSetup_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Options{Service: "ofxhost", Version: "1.0.0", Format: "json"}, &buf)

	logger.Info("test message")

	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err, "Failed to parse JSON: %s", buf.String())

	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "ofxhost", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Contains(t, entry, "time", "time field missing")
	assert.Contains(t, entry, "level", "level field missing")
}

func TestSetup_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Options{Service: "gen-schema", Version: "1.0.0", Format: "text"}, &buf)

	logger.Info("test message")

	output := buf.String()
	assert.Contains(t, output, "test message", "Output missing message")
	assert.Contains(t, output, "gen-schema", "Output missing service")
}

func TestHandler_TraceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Options{Service: "ofxhost", Version: "1.0.0", Format: "json"}, &buf)

	// Create a mock span context
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	logger.InfoContext(ctx, "traced message")

	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err, "Failed to parse JSON")

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", entry["span_id"])
}

func TestHandler_NoTraceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Options{Service: "ofxhost", Version: "1.0.0", Format: "json"}, &buf)

	logger.Info("no trace message")

	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err, "Failed to parse JSON")

	// trace_id and span_id should be empty strings or missing
	if tid, ok := entry["trace_id"]; ok {
		assert.Empty(t, tid, "trace_id should be empty")
	}
	if sid, ok := entry["span_id"]; ok {
		assert.Empty(t, sid, "span_id should be empty")
	}
}

func TestSetup_DefaultFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Options{Service: "ofxhost", Version: "1.0.0"}, &buf)

	logger.Info("test message")

	// Default should be JSON
	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err, "Default format should be JSON")
}

func TestSetDefault(t *testing.T) {
	// Capture original default logger
	original := slog.Default()
	defer slog.SetDefault(original)

	logger := SetDefault(Options{Service: "test-service", Version: "2.0.0", Format: "json"})

	assert.NotEqual(t, original, slog.Default(), "SetDefault did not change the default logger")
	assert.Same(t, logger, slog.Default())
}

func TestSetup_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Options{Service: "ofxhost", Format: "text", Level: slog.LevelWarn}, &buf)

	logger.Info("hidden")
	logger.Debug("hidden too")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetup_DefaultLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Options{Service: "ofxhost", Format: "text"}, &buf)

	logger.Debug("hidden")
	assert.Empty(t, buf.String())
	logger.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestHandler_WithAttrsKeepsService(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Options{Service: "ofxhost", Version: "1.0.0", Format: "json"}, &buf).
		With("session", "scale").
		WithGroup("step")

	logger.Info("played", "index", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scale", entry["session"])
	step, ok := entry["step"].(map[string]any)
	require.True(t, ok, "step group missing: %s", buf.String())
	assert.Equal(t, float64(3), step["index"])
	assert.Equal(t, "ofxhost", step["service"])
}
