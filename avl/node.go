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

// Node is a read-only handle on one slot of a tree. The handle for an empty
// subtree is nil (IsNil). Handles are only valid until the next Insert or
// Delete on their tree.
type Node struct {
	tree *Tree
	idx  Index
}

// IsNil reports whether the handle stands for an empty subtree.
func (p Node) IsNil() bool {
	return p.tree == nil || p.idx == nilIndex
}

// Index is the arena slot behind the handle, 0 for an empty subtree.
func (p Node) Index() Index {
	return p.idx
}

func (p Node) slot() node {
	if p.tree == nil {
		return detached
	}
	return p.tree.mem.nodes[p.idx]
}

// Key of the node; 0 for a nil handle.
func (p Node) Key() int {
	return p.slot().key
}

// Height of the subtree rooted here, -1 for a nil handle.
func (p Node) Height() int {
	return p.slot().height
}

// Left child.
func (p Node) Left() Node {
	return Node{tree: p.tree, idx: p.slot().left}
}

// Right child.
func (p Node) Right() Node {
	return Node{tree: p.tree, idx: p.slot().right}
}

// Parent node, nil at the root.
func (p Node) Parent() Node {
	return Node{tree: p.tree, idx: p.slot().parent}
}

// Depth counts the edges between the node and the root.
func (p Node) Depth() int {
	if p.IsNil() {
		return -1
	}
	depth := 0
	for up := p.slot().parent; up != nilIndex; up = p.tree.mem.nodes[up].parent {
		depth++
	}
	return depth
}
