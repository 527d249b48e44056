// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogging is what TestMain starts the logger with
var testLogging LoggingConfig

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "avlkit-main")
	if err != nil {
		panic(err)
	}

	testLogging = LoggingConfig{
		Directory: dir,
		File:      "avlkit.log",
		Size:      1048576,
		Count:     10,
		Level:     "trace",
	}
	if err := setupLogging(testLogging); err != nil {
		panic(fmt.Sprintf("logger initialization failed: %s", err))
	}

	rc := m.Run()
	stopLogging()
	os.RemoveAll(dir)
	os.Exit(rc)
}

// execute runs the CLI in-process. Logging stays owned by TestMain.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCommand()
	root.PersistentPostRun = nil

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "avlkit.yaml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

// restartLogging hands logging to the test and restores the shared
// logger afterwards
func restartLogging(t *testing.T) {
	t.Helper()
	stopLogging()
	t.Cleanup(func() {
		stopLogging()
		require.NoError(t, setupLogging(testLogging))
	})
}

func TestDefaultLoggingConfigStarts(t *testing.T) {
	restartLogging(t)

	cfg := defaultConfig.Logging
	cfg.Directory = t.TempDir()
	require.NoError(t, setupLogging(cfg))
	assert.True(t, loggingStarted)
}

func TestLoggingRaisesRotationMinimums(t *testing.T) {
	restartLogging(t)

	err := setupLogging(LoggingConfig{
		Directory: t.TempDir(),
		File:      "small.log",
		Size:      100,
		Count:     1,
	})
	assert.NoError(t, err)
	assert.True(t, loggingStarted)
}

func TestCommandStartsLoggingFromDefaults(t *testing.T) {
	restartLogging(t)

	logDir := t.TempDir()
	configPath := filepath.Join(t.TempDir(), "avlkit.yaml")
	// only the directory is set, rotation settings come from the defaults
	content := fmt.Sprintf("logging:\n  directory: %s\n", logDir)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--config", configPath, "version"})
	require.NoError(t, root.Execute())

	assert.Equal(t, version+"\n", out.String())
	assert.False(t, loggingStarted, "logging is stopped after the command")
}

func TestRunAndCheckCommands(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	output := filepath.Join(dir, "output.txt")
	require.NoError(t, os.WriteFile(input, []byte("I 2\nI 1\nI 3\nD 2\n"), 0o644))

	out, err := execute(t, "run", "-i", input, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Replayed")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "2\n2 1 NIL\n2 1 3\n3 1 NIL\n", string(data))

	out, err = execute(t, "check", "-f", output)
	require.NoError(t, err)
	assert.Contains(t, out, "trees in")
}

func TestRunCommandBadScript(t *testing.T) {
	input := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(input, []byte("I 1\nJ 2\n"), 0o644))

	_, err := execute(t, "run", "-i", input, "-o", filepath.Join(t.TempDir(), "out.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestSettingsCommandCreatesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "avlkit.yaml")

	root := newRootCommand()
	root.PersistentPostRun = nil
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "settings"})
	require.NoError(t, root.Execute())

	assert.FileExists(t, path)
	assert.Contains(t, out.String(), "newly created")
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, "frobnicate")
	assert.Error(t, err)
}
