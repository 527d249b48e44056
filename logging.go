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
	"os"

	"github.com/bitmark-inc/logger"
)

// bitmark-inc/logger refuses rotation settings below these
const (
	minimumLogSize  = 20000
	minimumLogCount = 10
)

var loggingStarted bool

// setupLogging starts the shared logger once. Packages open their own
// channels with logger.New after this has run.
func setupLogging(cfg LoggingConfig) error {
	if loggingStarted {
		return nil
	}

	directory := cfg.Directory
	if directory == "" {
		directory = os.TempDir()
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	level := cfg.Level
	if level == "" {
		level = "info"
	}

	file := cfg.File
	if file == "" {
		file = defaultConfig.Logging.File
	}

	logConfig := logger.Configuration{
		Directory: directory,
		File:      file,
		Size:      max(cfg.Size, minimumLogSize),
		Count:     max(cfg.Count, minimumLogCount),
		Console:   cfg.Console,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	}
	if err := logger.Initialise(logConfig); err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	loggingStarted = true
	return nil
}

func stopLogging() {
	if loggingStarted {
		logger.Finalise()
		loggingStarted = false
	}
}
