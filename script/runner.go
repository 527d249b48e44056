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

package script

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/bitmark-inc/logger"
	"github.com/willf/bloom"

	"github.com/cybrota/avlkit/avl"
)

const (
	// bloom filter sizing for the keys seen during one run
	minExpectedKeys   = 1024
	falsePositiveRate = 0.01
)

// ErrNotBalanced is returned when the tree fails its balance check after a
// command. This can only be caused by a defect in the tree itself.
var ErrNotBalanced = errors.New("tree is not AVL")

// Options control a Runner.
type Options struct {
	// KeepGoing records balance violations in the report instead of
	// stopping at the first one.
	KeepGoing bool

	// OnStep, when set, is called after every command has been applied
	// and checked.
	OnStep func(Step)
}

// Step describes one applied command.
type Step struct {
	Index    int // 0-based position in the command list
	Command  Command
	Changed  bool // the tree was mutated
	Found    bool // for searches: the key was present
	Balanced bool
}

// Report summarises a run.
type Report struct {
	Commands   int
	Inserts    int
	Duplicates int // inserts of a key already present
	Deletes    int
	Missing    int // deletes of a key not present
	Suspicious int // deletes of a key never inserted during this run
	Searches   int
	Hits       int
	Violations int
	Size       int
	Height     int
}

// Runner replays commands against one tree.
type Runner struct {
	tree *avl.Tree
	opts Options
	seen *bloom.BloomFilter
	log  *logger.L
}

// NewRunner creates a runner for tree. The logger must be initialised.
func NewRunner(tree *avl.Tree, opts Options) *Runner {
	r := &Runner{
		tree: tree,
		opts: opts,
		log:  logger.New("script"),
	}
	r.resetSeen(minExpectedKeys)
	return r
}

// Tree returns the tree the runner mutates.
func (r *Runner) Tree() *avl.Tree {
	return r.tree
}

// Run applies cmds in order. After each command the tree is checked and its
// level-order text is written to sink as one line. The run stops early when
// ctx is cancelled, when a write fails, or on a balance violation unless
// KeepGoing is set.
func (r *Runner) Run(ctx context.Context, cmds []Command, sink io.Writer) (report Report, err error) {
	r.resetSeen(len(cmds))

	defer func() {
		report.Size = r.tree.Len()
		report.Height = r.tree.Height()
	}()

	for i, cmd := range cmds {
		if err = ctx.Err(); err != nil {
			return report, err
		}

		step := r.Apply(cmd, &report)
		step.Index = i
		report.Commands += 1

		if !step.Balanced {
			report.Violations += 1
			r.log.Errorf("line %d: %s left the tree unbalanced: %s", cmd.Line, cmd, r.tree)
			if !r.opts.KeepGoing {
				return report, fmt.Errorf("line %d: %s: %w", cmd.Line, cmd, ErrNotBalanced)
			}
		}

		if sink != nil {
			if _, err = fmt.Fprintln(sink, r.tree.String()); err != nil {
				return report, err
			}
		}
		if r.opts.OnStep != nil {
			r.opts.OnStep(step)
		}
	}

	r.log.Infof("replayed %d commands: size %d height %d", report.Commands, r.tree.Len(), r.tree.Height())
	return report, nil
}

// Apply runs a single command, updating report, and checks the balance.
func (r *Runner) Apply(cmd Command, report *Report) Step {
	step := Step{Command: cmd}

	switch cmd.Op {
	case OpInsert:
		report.Inserts += 1
		step.Changed = r.tree.Insert(cmd.Key)
		if step.Changed {
			r.markSeen(cmd.Key)
		} else {
			report.Duplicates += 1
			r.log.Debugf("line %d: key %d already present", cmd.Line, cmd.Key)
		}
	case OpDelete:
		report.Deletes += 1
		step.Changed = r.tree.Delete(cmd.Key)
		if !step.Changed {
			report.Missing += 1
			if !r.wasSeen(cmd.Key) {
				report.Suspicious += 1
				r.log.Warnf("line %d: delete of %d which was never inserted", cmd.Line, cmd.Key)
			}
		}
	case OpSearch:
		report.Searches += 1
		step.Found = r.tree.Search(cmd.Key)
		if step.Found {
			report.Hits += 1
		}
	}

	r.log.Debugf("line %d: %s changed: %t", cmd.Line, cmd, step.Changed)
	step.Balanced = r.tree.IsBalanced()
	return step
}

// resetSeen starts a fresh filter holding only the keys currently in the tree
func (r *Runner) resetSeen(expected int) {
	n := max(expected, r.tree.Len(), minExpectedKeys)
	r.seen = bloom.NewWithEstimates(uint(n), falsePositiveRate)
	r.tree.Walk(func(key int) bool {
		r.markSeen(key)
		return true
	})
}

func keyBytes(key int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(key))
	return b
}

func (r *Runner) markSeen(key int) {
	r.seen.Add(keyBytes(key))
}

// wasSeen may report false positives, never false negatives
func (r *Runner) wasSeen(key int) bool {
	return r.seen.Test(keyBytes(key))
}
