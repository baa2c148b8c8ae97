// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package session_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ofxgo/ofxgo/internal/session"
)

func TestGenerateSchema(t *testing.T) {
	data, err := session.GenerateSchema()
	if err != nil {
		t.Fatalf("GenerateSchema() error = %v", err)
	}

	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("GenerateSchema() produced invalid JSON: %v", err)
	}
	if got := schema["$id"]; got != session.GetSchemaID() {
		t.Errorf("$id = %v, want %s", got, session.GetSchemaID())
	}
	if got := schema["title"]; got != "OFXGo Host Session" {
		t.Errorf("title = %v", got)
	}

	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties")
	}
	for _, key := range []string{"name", "host", "instances", "steps"} {
		if _, ok := props[key]; !ok {
			t.Errorf("schema missing property %q", key)
		}
	}
}

func TestGenerateSchema_StepFieldsInline(t *testing.T) {
	data, err := session.GenerateSchema()
	if err != nil {
		t.Fatalf("GenerateSchema() error = %v", err)
	}
	for _, key := range []string{`"lua"`, `"keys"`, `"frame_range"`, `"render_scale"`, `"expect"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("schema does not mention %s", key)
		}
	}
}

func TestValidateSchema_Testdata(t *testing.T) {
	for _, name := range []string{"scale.yaml", "general.yaml"} {
		t.Run(name, func(t *testing.T) {
			if err := session.ValidateSchema(readTestdata(t, name)); err != nil {
				t.Errorf("ValidateSchema() error = %v, want nil", err)
			}
		})
	}
}

func TestValidateSchema_Minimal(t *testing.T) {
	yaml := `
steps:
  - action: describe
`
	if err := session.ValidateSchema([]byte(yaml)); err != nil {
		t.Errorf("ValidateSchema() error = %v, want nil", err)
	}
}

func TestValidateSchema_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "empty",
			yaml: "",
		},
		{
			name: "invalid yaml",
			yaml: "steps: [",
		},
		{
			name: "missing steps",
			yaml: "name: x",
		},
		{
			name: "empty steps",
			yaml: "steps: []",
		},
		{
			name: "unknown top-level field",
			yaml: "steps: [{action: load}]\nplugin: simple",
		},
		{
			name: "unknown step field",
			yaml: "steps: [{action: load, colour: red}]",
		},
		{
			name: "empty action",
			yaml: "steps: [{action: ''}]",
		},
		{
			name: "window too short",
			yaml: "steps: [{action: render, window: [0, 0, 1]}]",
		},
		{
			name: "window not integers",
			yaml: "steps: [{action: render, window: [0, 0, 1.5, 2]}]",
		},
		{
			name: "unknown context",
			yaml: "instances: [{name: a, context: paint}]\nsteps: [{action: load}]",
		},
		{
			name: "instance without context",
			yaml: "instances: [{name: a}]\nsteps: [{action: load}]",
		},
		{
			name: "instance name pattern",
			yaml: "instances: [{name: 9lives, context: filter}]\nsteps: [{action: load}]",
		},
		{
			name: "unknown components",
			yaml: "instances: [{name: a, context: filter, clips: {Source: {components: yuv}}}]\nsteps: [{action: load}]",
		},
		{
			name: "zero par",
			yaml: "instances: [{name: a, context: filter, clips: {Source: {par: 0}}}]\nsteps: [{action: load}]",
		},
		{
			name: "api version too long",
			yaml: "host: {api_version: [1, 2, 3, 4]}\nsteps: [{action: load}]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := session.ValidateSchema([]byte(tt.yaml)); err == nil {
				t.Errorf("ValidateSchema() expected error for %s", tt.name)
			}
		})
	}
}

func TestValidateSchema_CacheReset(t *testing.T) {
	session.ResetSchemaCache()
	if err := session.ValidateSchema([]byte("steps: [{action: load}]")); err != nil {
		t.Fatalf("ValidateSchema() after reset error = %v", err)
	}
	if err := session.ValidateSchema([]byte("steps: [{action: unload}]")); err != nil {
		t.Errorf("ValidateSchema() with cached schema error = %v", err)
	}
}

func TestFormatSchemaError(t *testing.T) {
	if got := session.FormatSchemaError(nil); got != "" {
		t.Errorf("FormatSchemaError(nil) = %q, want empty", got)
	}

	err := session.ValidateSchema([]byte("steps: []"))
	if err == nil {
		t.Fatal("ValidateSchema() expected error for empty steps")
	}
	got := session.FormatSchemaError(err)
	for _, leak := range []string{"jsonschema validation failed", "file://", "schema.json", "\n"} {
		if strings.Contains(got, leak) {
			t.Errorf("FormatSchemaError() = %q, should not contain %q", got, leak)
		}
	}
	if !strings.Contains(got, "/steps") || !strings.Contains(got, "minItems") {
		t.Errorf("FormatSchemaError() = %q, want the failing location and keyword", got)
	}

	plain := errors.New("boom")
	if got := session.FormatSchemaError(plain); got != "boom" {
		t.Errorf("FormatSchemaError(plain) = %q, want boom", got)
	}
}
