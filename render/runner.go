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

package render

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"time"
)

const (
	DefaultCmdTimeout = 30 * time.Second
	MaxOutputSize     = 64 * 1024 // 64KB of dot diagnostics is plenty
)

// Runner handles external command execution with timeouts and size limits
type Runner struct {
	limit int64
}

// NewRunner creates a runner capturing at most MaxOutputSize bytes
func NewRunner() *Runner {
	return &Runner{limit: MaxOutputSize}
}

// RunWithTimeout runs a command bounded by both ctx and timeout. Stdout and
// stderr are captured together.
func (r *Runner) RunWithTimeout(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	if timeout <= 0 {
		timeout = DefaultCmdTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	// grandchildren may hold the output pipe open after a kill
	cmd.WaitDelay = time.Second

	var buf bytes.Buffer
	limitedWriter := &LimitedWriter{w: &buf, limit: r.limit}
	cmd.Stdout = limitedWriter
	cmd.Stderr = limitedWriter

	err := cmd.Run()
	result := buf.String()

	if limitedWriter.truncated {
		result += "\n[OUTPUT TRUNCATED - Size limit exceeded]"
	}
	if err != nil && ctx.Err() != nil {
		return result, ctx.Err()
	}

	return result, err
}

// CheckCommandExists reports whether name resolves to an executable
func (r *Runner) CheckCommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// LimitedWriter implements io.Writer with size limiting. Writes past the
// limit are discarded but reported as successful so the child never sees
// a broken pipe.
type LimitedWriter struct {
	w         io.Writer
	limit     int64
	written   int64
	truncated bool
}

// NewLimitedWriter wraps w, keeping at most limit bytes
func NewLimitedWriter(w io.Writer, limit int64) *LimitedWriter {
	return &LimitedWriter{w: w, limit: limit}
}

// Truncated reports whether any output was dropped
func (lw *LimitedWriter) Truncated() bool {
	return lw.truncated
}

func (lw *LimitedWriter) Write(p []byte) (n int, err error) {
	if lw.written >= lw.limit {
		lw.truncated = true
		return len(p), nil
	}

	remaining := lw.limit - lw.written
	if int64(len(p)) > remaining {
		lw.truncated = true
		n, err = lw.w.Write(p[:remaining])
		lw.written += int64(n)
		return len(p), err
	}

	n, err = lw.w.Write(p)
	lw.written += int64(n)
	return n, err
}
