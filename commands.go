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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/schollz/progressbar/v3"

	"github.com/cybrota/avlkit/avl"
	"github.com/cybrota/avlkit/render"
	"github.com/cybrota/avlkit/script"
)

// runOptions are the flags of the run command merged over the config file
type runOptions struct {
	Input     string
	Output    string
	Render    bool
	Steps     bool
	Progress  bool
	KeepGoing bool
	RenderCfg RenderConfig
}

func loadScript(path string) ([]script.Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	cmds, err := script.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cmds, nil
}

func newRenderer(cfg RenderConfig) *render.Renderer {
	r := render.NewRenderer(cfg.Directory)
	if cfg.DotPath != "" {
		r.DotPath = cfg.DotPath
	}
	if cfg.Format != "" {
		r.Format = cfg.Format
	}
	if cfg.Timeout > 0 {
		r.Timeout = cfg.Timeout
	}
	return r
}

// runScriptFile replays opts.Input, writing one level-order line per
// command to opts.Output, and optionally renders the tree.
func runScriptFile(ctx context.Context, opts runOptions, stdout io.Writer, stderr io.Writer) (script.Report, error) {
	log := logger.New("run")

	cmds, err := loadScript(opts.Input)
	if err != nil {
		return script.Report{}, err
	}
	log.Infof("loaded %d commands from %s", len(cmds), opts.Input)

	out, err := os.Create(opts.Output)
	if err != nil {
		return script.Report{}, fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()
	sink := bufio.NewWriter(out)

	var renderer *render.Renderer
	if opts.Render || opts.Steps {
		renderer = newRenderer(opts.RenderCfg)
		if !renderer.Available() {
			fmt.Fprintf(stderr, "%s⚠️  %s, skipping rendering%s\n", Warning, render.ErrDotNotFound, Reset)
			renderer = nil
		}
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.NewOptions(len(cmds),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("🌳 Replaying script..."),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	tree := avl.NewWithCapacity(len(cmds))
	var renderErr error
	runner := script.NewRunner(tree, script.Options{
		KeepGoing: opts.KeepGoing,
		OnStep: func(step script.Step) {
			if bar != nil {
				_ = bar.Add(1)
			}
			if renderer != nil && opts.Steps && renderErr == nil {
				name := fmt.Sprintf("%s-%04d", opts.RenderCfg.Name, step.Index+1)
				if _, err := renderer.Render(ctx, tree, name); err != nil {
					renderErr = err
				}
			}
		},
	})

	report, runErr := runner.Run(ctx, cmds, sink)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(stderr)
	}
	if err := sink.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to write output: %w", err)
	}
	if runErr != nil {
		return report, runErr
	}
	if renderErr != nil {
		return report, fmt.Errorf("failed to render step: %w", renderErr)
	}

	if renderer != nil && opts.Render {
		path, err := renderer.Render(ctx, tree, opts.RenderCfg.Name)
		if err != nil {
			return report, fmt.Errorf("failed to render tree: %w", err)
		}
		fmt.Fprintf(stdout, "🖼  Rendered %s%s%s\n", Green, path, Reset)
	}

	return report, nil
}

func printReport(w io.Writer, output string, report script.Report) {
	fmt.Fprintf(w, "✅ Replayed %s%d%s commands into %s\n", Green, report.Commands, Reset, output)
	fmt.Fprintf(w, "   inserts: %d (duplicates %d)\n", report.Inserts, report.Duplicates)
	fmt.Fprintf(w, "   deletes: %d (absent %d, never inserted %d)\n", report.Deletes, report.Missing, report.Suspicious)
	fmt.Fprintf(w, "   searches: %d (hits %d, misses %d)\n", report.Searches, report.Hits, report.Searches-report.Hits)
	fmt.Fprintf(w, "   final size %d, height %d\n", report.Size, report.Height)
	if report.Violations > 0 {
		fmt.Fprintf(w, "%s❌ %d balance violations%s\n", Error, report.Violations, Reset)
	}
}

// checkLevelOrderFile validates every non-empty line of path and returns
// the number of trees checked.
func checkLevelOrderFile(path string, stdout io.Writer) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// a tree of height 20 is a couple of million cells
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 64*1024*1024)

	lineNo := 0
	checked := 0
	for scanner.Scan() {
		lineNo += 1
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tree, err := avl.ParseLevelOrder(line)
		if err != nil {
			return checked, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if err := tree.Validate(); err != nil {
			return checked, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		checked += 1
	}
	if err := scanner.Err(); err != nil {
		return checked, err
	}

	fmt.Fprintf(stdout, "✅ %s%d%s trees in %s are valid AVL trees\n", Green, checked, Reset, path)
	return checked, nil
}

// printTree replays input without writing any output and draws the result
func printTree(ctx context.Context, input string, keepGoing bool, stdout io.Writer) error {
	cmds, err := loadScript(input)
	if err != nil {
		return err
	}

	tree := avl.NewWithCapacity(len(cmds))
	runner := script.NewRunner(tree, script.Options{KeepGoing: keepGoing})
	_, runErr := runner.Run(ctx, cmds, nil)
	if runErr != nil && !errors.Is(runErr, script.ErrNotBalanced) {
		return runErr
	}

	// unbalanced trees are drawn too
	if err := tree.Fprint(stdout); err != nil {
		return err
	}
	return runErr
}
