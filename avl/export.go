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

package avl

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// emptySlot is how an empty subtree is written in the level-order text
const emptySlot = "NIL"

// Slot is one cell of the level-order layout.
type Slot struct {
	Key   int
	Empty bool
}

func (s Slot) String() string {
	if s.Empty {
		return emptySlot
	}
	return strconv.Itoa(s.Key)
}

// LevelOrder lays the tree out as a complete binary array of size
// 2^(h+1)-1, row by row, with empty subtrees marked. The children of cell i
// are cells 2i+1 and 2i+2. An empty tree gives an empty slice.
func (t *Tree) LevelOrder() []Slot {
	if t.root == nilIndex {
		return nil
	}
	size := 1<<(t.height(t.root)+1) - 1
	slots := make([]Slot, 0, size)
	queue := make([]Index, 0, 2*size+1)
	queue = append(queue, t.root)
	for i := 0; i < size; i += 1 {
		x := queue[i]
		n := t.nd(x)
		if x == nilIndex {
			slots = append(slots, Slot{Empty: true})
		} else {
			slots = append(slots, Slot{Key: n.key})
		}
		// the sentinel's children are the sentinel, so empty rows expand too
		queue = append(queue, n.left, n.right)
	}
	return slots
}

// String renders the level-order layout as space separated cells, or just
// NIL for an empty tree.
func (t *Tree) String() string {
	slots := t.LevelOrder()
	if len(slots) == 0 {
		return emptySlot
	}
	cells := make([]string, len(slots))
	for i, s := range slots {
		cells[i] = s.String()
	}
	return strings.Join(cells, " ")
}

// ParseLevelOrder rebuilds a tree with exactly the shape described by the
// text String produces. Heights are recomputed; the result is not checked
// for balance or key order, use Validate for that.
func ParseLevelOrder(s string) (*Tree, error) {
	cells := strings.Fields(s)
	switch {
	case len(cells) == 0:
		return nil, fmt.Errorf("%w: no cells", ErrMalformed)
	case len(cells) == 1 && cells[0] == emptySlot:
		return New(), nil
	case len(cells)&(len(cells)+1) != 0:
		return nil, fmt.Errorf("%w: %d cells is not a complete tree size", ErrMalformed, len(cells))
	case cells[0] == emptySlot:
		return nil, fmt.Errorf("%w: empty root with %d cells", ErrMalformed, len(cells))
	}

	t := NewWithCapacity(len(cells))
	slots := make([]Index, len(cells))
	for i, cell := range cells {
		if cell == emptySlot {
			continue
		}
		key, err := strconv.Atoi(cell)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d: %v", ErrMalformed, i, err)
		}
		x := t.mem.alloc(key)
		slots[i] = x
		if i == 0 {
			t.root = x
			continue
		}
		parent := slots[(i-1)/2]
		if parent == nilIndex {
			return nil, fmt.Errorf("%w: cell %d (%d) has no parent", ErrMalformed, i, key)
		}
		t.nd(x).parent = parent
		if i%2 == 1 {
			t.nd(parent).left = x
		} else {
			t.nd(parent).right = x
		}
	}

	// children always sit after their parent, so one backward pass is enough
	for i := len(slots) - 1; i >= 0; i -= 1 {
		if x := slots[i]; x != nilIndex {
			n := t.nd(x)
			n.height = 1 + max(t.height(n.left), t.height(n.right))
		}
	}
	return t, nil
}

// Side tells which child slot an edge leads to.
type Side int

const (
	LeftSide Side = iota
	RightSide
)

func (s Side) String() string {
	if s == LeftSide {
		return "left"
	}
	return "right"
}

// Edge is one parent to child link. When Empty is set the child slot holds
// the sentinel and To is meaningless.
type Edge struct {
	From  int
	To    int
	Side  Side
	Empty bool
}

// Edges lists every child slot of every node in pre-order, left before
// right, including the empty ones.
func (t *Tree) Edges() []Edge {
	edges := make([]Edge, 0, 2*t.Len())
	return t.edges(t.root, edges)
}

func (t *Tree) edges(x Index, edges []Edge) []Edge {
	if x == nilIndex {
		return edges
	}
	n := t.nd(x)
	for _, c := range []struct {
		side  Side
		child Index
	}{{LeftSide, n.left}, {RightSide, n.right}} {
		e := Edge{From: n.key, Side: c.side, Empty: c.child == nilIndex}
		if !e.Empty {
			e.To = t.nd(c.child).key
		}
		edges = append(edges, e)
	}
	edges = t.edges(n.left, edges)
	return t.edges(n.right, edges)
}

// WriteDOT writes the tree as a graphviz digraph. Empty child slots become
// point-shaped nodes so that left and right children keep their sides.
func (t *Tree) WriteDOT(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("digraph G {\n")
	ew.printf("graph [ordering=\"out\"]\n")
	for _, e := range t.Edges() {
		if !e.Empty {
			ew.printf("\"%d\" -> \"%d\"\n", e.From, e.To)
			continue
		}
		null := fmt.Sprintf("null%d%c", e.From, e.Side.String()[0])
		ew.printf("\"%s\" [shape=point];\n", null)
		ew.printf("\"%d\" -> \"%s\"\n", e.From, null)
	}
	ew.printf("}\n")
	return ew.err
}

// errWriter keeps the first write error and skips later writes
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
