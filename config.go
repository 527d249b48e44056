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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const configFileName = ".avlkit.yaml"

type ScriptConfig struct {
	Input           string `yaml:"input"`
	Output          string `yaml:"output"`
	StopOnViolation bool   `yaml:"stop_on_violation"`
}

type RenderConfig struct {
	Enabled   bool          `yaml:"enabled"`
	DotPath   string        `yaml:"dot_path"`
	Format    string        `yaml:"format"`
	Name      string        `yaml:"name"`
	Directory string        `yaml:"directory"`
	Timeout   time.Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Directory string `yaml:"directory"`
	File      string `yaml:"file"`
	Size      int    `yaml:"size"`
	Count     int    `yaml:"count"`
	Console   bool   `yaml:"console"`
	Level     string `yaml:"level"`
}

type Config struct {
	Script  ScriptConfig  `yaml:"script"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

var defaultConfig = Config{
	Script: ScriptConfig{
		Input:           "input.txt",
		Output:          "output.txt",
		StopOnViolation: true,
	},
	Render: RenderConfig{
		Enabled:   false,
		DotPath:   "dot",
		Format:    "png",
		Name:      "tree",
		Directory: ".",
		Timeout:   30 * time.Second,
	},
	Logging: LoggingConfig{
		Directory: "",
		File:      "avlkit.log",
		Size:      1048576,
		Count:     50,
		Console:   false,
		Level:     "info",
	},
}

// getConfigPath returns override when set, else ~/.avlkit.yaml
func getConfigPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

// LoadConfig reads the configuration at path. A missing or unreadable file
// yields the defaults; keys absent from the file keep their default value.
func LoadConfig(path string) (*Config, error) {
	config := defaultConfig

	if path == "" {
		return &config, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &config, nil
	}
	if err != nil {
		return &config, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		fallback := defaultConfig
		return &fallback, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &config, nil
}

func createDefaultConfigFile(path string) error {
	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displaySettings(w io.Writer, configPath string) error {
	configExists := true
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configExists = false
		fmt.Fprintf(w, "📝 Configuration file not found. Creating default configuration...\n\n")

		if err := createDefaultConfigFile(configPath); err != nil {
			return err
		}
		fmt.Fprintf(w, "✅ Created default configuration at: %s\n\n", configPath)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "🔧 avlkit Configuration Settings\n")
	fmt.Fprintf(w, "═══════════════════════════════════\n\n")

	if configExists {
		fmt.Fprintf(w, "📍 Config file: %s\n", configPath)
	} else {
		fmt.Fprintf(w, "📍 Config file: %s (newly created)\n", configPath)
	}

	fmt.Fprintf(w, "📊 Current settings:\n\n")

	fmt.Fprintf(w, "📜 %sScript:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • %sinput%s: %s\n", Green, Reset, config.Script.Input)
	fmt.Fprintf(w, "  • %soutput%s: %s\n", Green, Reset, config.Script.Output)
	fmt.Fprintf(w, "  • %sstop_on_violation%s: %t\n", Green, Reset, config.Script.StopOnViolation)
	if config.Script.StopOnViolation {
		fmt.Fprintf(w, "    Replay aborts at the first command that leaves the tree unbalanced\n\n")
	} else {
		fmt.Fprintf(w, "    Violations are counted and the replay continues\n\n")
	}

	fmt.Fprintf(w, "🖼  %sRender:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • %senabled%s: %t\n", Green, Reset, config.Render.Enabled)
	fmt.Fprintf(w, "  • %sdot_path%s: %s\n", Green, Reset, config.Render.DotPath)
	fmt.Fprintf(w, "  • %sformat%s: %s\n", Green, Reset, config.Render.Format)
	fmt.Fprintf(w, "  • %sname%s: %s\n", Green, Reset, config.Render.Name)
	fmt.Fprintf(w, "  • %sdirectory%s: %s\n", Green, Reset, config.Render.Directory)
	fmt.Fprintf(w, "  • %stimeout%s: %s\n\n", Green, Reset, config.Render.Timeout)

	logDir := config.Logging.Directory
	if logDir == "" {
		logDir = os.TempDir() + " (default)"
	}
	fmt.Fprintf(w, "🪵 %sLogging:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • %sdirectory%s: %s\n", Green, Reset, logDir)
	fmt.Fprintf(w, "  • %sfile%s: %s\n", Green, Reset, config.Logging.File)
	fmt.Fprintf(w, "  • %slevel%s: %s\n\n", Green, Reset, config.Logging.Level)

	if !config.Render.Enabled {
		fmt.Fprintf(w, "💡 Rendering is disabled. To draw the final tree with Graphviz, edit %s:\n", configPath)
		fmt.Fprintf(w, "   render:\n     enabled: true\n\n")
	}

	return nil
}
