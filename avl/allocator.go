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

import "math"

// Index addresses a node slot in a tree's arena.
type Index uint32

// nilIndex is the sentinel slot. It is created with the arena and is never
// written to or released.
const nilIndex Index = 0

const maxSlots = math.MaxUint32

// a node in the tree
type node struct {
	key    int
	height int   // -1 while detached
	left   Index // left sub-tree
	right  Index // right sub-tree
	parent Index // back-reference, nilIndex at the root
}

// detached is the state of a slot that is not part of any tree; the
// sentinel is permanently in this state.
var detached = node{height: -1}

// arena owns the node slots of one tree
type arena struct {
	nodes []node
	free  []Index // reclaimed slots, reused last-in first-out
}

func newArena(capacity int) arena {
	nodes := make([]node, 1, capacity+1)
	nodes[0] = detached
	return arena{nodes: nodes}
}

// alloc returns a detached slot holding key, reusing a reclaimed slot when
// one is available. Slot pointers taken before alloc must not be used after.
func (a *arena) alloc(key int) Index {
	if n := len(a.free); n > 0 {
		i := a.free[n-1]
		a.free = a.free[:n-1]
		a.nodes[i] = node{key: key, height: -1}
		return i
	}
	if uint64(len(a.nodes)) >= maxSlots {
		panic("avl: arena exhausted")
	}
	a.nodes = append(a.nodes, node{key: key, height: -1})
	return Index(len(a.nodes) - 1)
}

// release resets a slot and keeps it for reuse
func (a *arena) release(i Index) {
	if i == nilIndex {
		panic("avl: sentinel cannot be released")
	}
	a.nodes[i] = detached
	a.free = append(a.free, i)
}

// live is the number of slots currently holding a key
func (a *arena) live() int {
	return len(a.nodes) - 1 - len(a.free)
}
