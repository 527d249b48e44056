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

// Tree holds the arena and the root of one balanced tree.
type Tree struct {
	mem  arena
	root Index
}

// New creates an empty tree.
func New() *Tree {
	return NewWithCapacity(0)
}

// NewWithCapacity creates an empty tree whose arena can hold n nodes before
// it has to grow.
func NewWithCapacity(n int) *Tree {
	if n < 0 {
		n = 0
	}
	return &Tree{
		mem:  newArena(n),
		root: nilIndex,
	}
}

func (t *Tree) nd(i Index) *node {
	return &t.mem.nodes[i]
}

func (t *Tree) height(i Index) int {
	return t.mem.nodes[i].height
}

// Len is the number of keys in the tree.
func (t *Tree) Len() int {
	return t.mem.live()
}

// Cap is the number of node slots the arena holds without growing.
func (t *Tree) Cap() int {
	return cap(t.mem.nodes) - 1
}

// IsEmpty reports whether the tree holds no keys.
func (t *Tree) IsEmpty() bool {
	return t.root == nilIndex
}

// Height of the whole tree: -1 when empty, 0 for a single node.
func (t *Tree) Height() int {
	return t.height(t.root)
}

// Root returns a handle on the root node; it is nil for an empty tree.
func (t *Tree) Root() Node {
	return Node{tree: t, idx: t.root}
}

// Clear drops every key and the arena backing them.
func (t *Tree) Clear() {
	t.mem = newArena(0)
	t.root = nilIndex
}

// Search reports whether key is in the tree.
func (t *Tree) Search(key int) bool {
	return t.search(t.root, key) != nilIndex
}

// Find returns the node holding key.
func (t *Tree) Find(key int) (Node, bool) {
	x := t.search(t.root, key)
	return Node{tree: t, idx: x}, x != nilIndex
}

// search descends from x and returns the slot holding key, or the sentinel
func (t *Tree) search(x Index, key int) Index {
	for x != nilIndex {
		n := t.nd(x)
		switch {
		case key == n.key:
			return x
		case key < n.key:
			x = n.left
		default:
			x = n.right
		}
	}
	return nilIndex
}

// minimum is the left-most slot of the non-empty subtree at x
func (t *Tree) minimum(x Index) Index {
	for t.nd(x).left != nilIndex {
		x = t.nd(x).left
	}
	return x
}

// maximum is the right-most slot of the non-empty subtree at x
func (t *Tree) maximum(x Index) Index {
	for t.nd(x).right != nilIndex {
		x = t.nd(x).right
	}
	return x
}
