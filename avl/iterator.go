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

// Min returns the node with the lowest key, nil when the tree is empty.
func (t *Tree) Min() Node {
	if t.root == nilIndex {
		return Node{tree: t}
	}
	return Node{tree: t, idx: t.minimum(t.root)}
}

// Max returns the node with the highest key, nil when the tree is empty.
func (t *Tree) Max() Node {
	if t.root == nilIndex {
		return Node{tree: t}
	}
	return Node{tree: t, idx: t.maximum(t.root)}
}

// Next returns the node with the next higher key, or nil after the last.
func (p Node) Next() Node {
	if p.IsNil() {
		return p
	}
	t := p.tree
	x := p.idx
	if r := t.nd(x).right; r != nilIndex {
		return Node{tree: t, idx: t.minimum(r)}
	}
	up := t.nd(x).parent
	for up != nilIndex && t.nd(up).right == x {
		x = up
		up = t.nd(up).parent
	}
	return Node{tree: t, idx: up}
}

// Prev returns the node with the next lower key, or nil before the first.
func (p Node) Prev() Node {
	if p.IsNil() {
		return p
	}
	t := p.tree
	x := p.idx
	if l := t.nd(x).left; l != nilIndex {
		return Node{tree: t, idx: t.maximum(l)}
	}
	up := t.nd(x).parent
	for up != nilIndex && t.nd(up).left == x {
		x = up
		up = t.nd(up).parent
	}
	return Node{tree: t, idx: up}
}

// Walk calls fn for every key in ascending order until fn returns false.
func (t *Tree) Walk(fn func(key int) bool) {
	for p := t.Min(); !p.IsNil(); p = p.Next() {
		if !fn(p.Key()) {
			return
		}
	}
}

// Keys returns all keys in ascending order.
func (t *Tree) Keys() []int {
	keys := make([]int, 0, t.Len())
	t.Walk(func(key int) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
