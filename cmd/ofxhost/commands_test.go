// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ofxgo/ofxgo/internal/config"
	"github.com/ofxgo/ofxgo/internal/session"
)

func TestValidateCmd(t *testing.T) {
	good := writeTemp(t, "good.yaml", passingSession)
	out, _, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok   "+good)

	bad := writeTemp(t, "bad.yaml", "steps: [{action: render}]\n")
	out, _, err = execute(t, "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 session files are invalid")
	assert.Contains(t, out, "ok   "+good)
	assert.Contains(t, out, "FAIL ")
	assert.Contains(t, out, "bad.yaml")
}

func TestValidateCmd_SchemaFailureNamesLocation(t *testing.T) {
	bad := writeTemp(t, "empty-steps.yaml", "steps: []\n")
	out, _, err := execute(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, out, "FAIL "+bad+": at '/steps': minItems")
	assert.NotContains(t, out, "file://")
	assert.NotContains(t, out, "schema.json")
}

func TestSchemaCmd(t *testing.T) {
	out, _, err := execute(t, "schema")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, session.GetSchemaID(), schema["$id"])
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	out, _, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var written config.Config
	require.NoError(t, yaml.Unmarshal(data, &written))
	assert.Equal(t, config.Default(), written)

	_, _, err = execute(t, "--config", path, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, _, err = execute(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigInit_DefaultPath(t *testing.T) {
	out, _, err := execute(t, "config", "init")
	require.NoError(t, err)

	path, err := config.DefaultPath()
	require.NoError(t, err)
	assert.Contains(t, out, path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	path := writeTemp(t, "config.yaml", "log:\n  level: debug\n")

	out, _, err := execute(t, "--config", path, "config", "show", "--output", "json")
	require.NoError(t, err)

	var shown config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "debug", shown.Log.Level)
	assert.Equal(t, "json", shown.Output)
	assert.Equal(t, []int{1, 4}, shown.Host.APIVersion)
}
