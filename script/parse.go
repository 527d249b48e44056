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

// Package script reads tree command scripts and replays them against an
// avl.Tree, checking the balance invariant after every command.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Op is the operation of one script command.
type Op int

const (
	OpInsert Op = iota
	OpDelete
	OpSearch
)

func (op Op) String() string {
	switch op {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpSearch:
		return "search"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// accepted spellings of each operation, matched case-insensitively
var opNames = map[string]Op{
	"i":      OpInsert,
	"insert": OpInsert,
	"d":      OpDelete,
	"delete": OpDelete,
	"s":      OpSearch,
	"search": OpSearch,
}

// Command is one parsed script line, e.g. "I 7".
type Command struct {
	Op   Op
	Key  int
	Line int // 1-based line number in the script, 0 when typed interactively
}

func (c Command) String() string {
	return fmt.Sprintf("%s %d", c.Op, c.Key)
}

// errors wrapped by ParseError
var (
	ErrUnknownOp = errors.New("unknown operation")
	ErrArity     = errors.New("expected <op> <key>")
	ErrBadKey    = errors.New("key is not an integer")
)

// ParseError describes a script line that could not be parsed.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a whole script. Blank lines and lines starting with '#' are
// skipped; the first malformed line stops parsing with a *ParseError.
func Parse(r io.Reader) ([]Command, error) {
	var commands []Command

	scanner := bufio.NewScanner(r)
	// scripts are short lines, but do not choke on a long one
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo += 1
		cmd, ok, err := ParseLine(scanner.Text(), lineNo)
		if err != nil {
			return nil, err
		}
		if ok {
			commands = append(commands, cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return commands, nil
}

// ParseLine parses a single line. ok is false for blank and comment lines.
func ParseLine(line string, lineNo int) (cmd Command, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Command{}, false, nil
	}

	fields, err := shellwords.Parse(trimmed)
	if err != nil {
		return Command{}, false, &ParseError{Line: lineNo, Text: line, Err: err}
	}
	// trailing comment
	for i, f := range fields {
		if strings.HasPrefix(f, "#") {
			fields = fields[:i]
			break
		}
	}
	if len(fields) != 2 {
		return Command{}, false, &ParseError{Line: lineNo, Text: line, Err: ErrArity}
	}

	op, known := opNames[strings.ToLower(fields[0])]
	if !known {
		return Command{}, false, &ParseError{Line: lineNo, Text: line, Err: fmt.Errorf("%w: %q", ErrUnknownOp, fields[0])}
	}
	key, err := strconv.Atoi(fields[1])
	if err != nil {
		return Command{}, false, &ParseError{Line: lineNo, Text: line, Err: fmt.Errorf("%w: %q", ErrBadKey, fields[1])}
	}
	return Command{Op: op, Key: key, Line: lineNo}, true, nil
}
