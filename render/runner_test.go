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
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitedWriter(t *testing.T) {
	tests := []struct {
		name      string
		limit     int64
		writes    []string
		expected  string
		truncated bool
	}{
		{"under limit", 10, []string{"abc", "def"}, "abcdef", false},
		{"exact limit", 6, []string{"abc", "def"}, "abcdef", false},
		{"split write", 4, []string{"abc", "def"}, "abcd", true},
		{"after limit", 3, []string{"abc", "def"}, "abc", true},
		{"zero limit", 0, []string{"a"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			lw := NewLimitedWriter(&buf, tt.limit)
			for _, w := range tt.writes {
				n, err := lw.Write([]byte(w))
				require.NoError(t, err)
				assert.Equal(t, len(w), n, "writes always report full length")
			}
			assert.Equal(t, tt.expected, buf.String())
			assert.Equal(t, tt.truncated, lw.Truncated())
		})
	}
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunWithTimeoutCapturesOutput(t *testing.T) {
	requireShell(t)

	r := NewRunner()
	out, err := r.RunWithTimeout(context.Background(), time.Second, "sh", "-c", "echo out; echo err 1>&2")
	require.NoError(t, err)
	assert.Contains(t, out, "out")
	assert.Contains(t, out, "err")
}

func TestRunWithTimeoutTruncates(t *testing.T) {
	requireShell(t)

	r := &Runner{limit: 8}
	out, err := r.RunWithTimeout(context.Background(), time.Second, "sh", "-c", "echo 0123456789abcdef")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "01234567\n[OUTPUT TRUNCATED"), out)
}

func TestRunWithTimeoutExpires(t *testing.T) {
	requireShell(t)

	r := NewRunner()
	start := time.Now()
	_, err := r.RunWithTimeout(context.Background(), 50*time.Millisecond, "sh", "-c", "sleep 5")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestRunWithTimeoutFailure(t *testing.T) {
	requireShell(t)

	r := NewRunner()
	_, err := r.RunWithTimeout(context.Background(), time.Second, "sh", "-c", "exit 3")
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestCheckCommandExists(t *testing.T) {
	requireShell(t)

	r := NewRunner()
	assert.True(t, r.CheckCommandExists("sh"))
	assert.False(t, r.CheckCommandExists("surely-not-a-real-binary-avlkit"))
}
