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

// Insert adds key to the tree and rebalances every ancestor of the new
// node. A key that is already present is rejected: Insert returns false and
// the tree is left untouched.
func (t *Tree) Insert(key int) bool {
	if t.root == nilIndex {
		z := t.mem.alloc(key)
		t.nd(z).height = 0
		t.root = z
		return true
	}

	x := t.root
	for {
		n := t.nd(x)
		if key == n.key {
			return false
		}
		next := n.right
		if key < n.key {
			next = n.left
		}
		if next == nilIndex {
			break
		}
		x = next
	}

	z := t.mem.alloc(key)
	zn := t.nd(z)
	zn.height = 0
	zn.parent = x
	if xn := t.nd(x); key < xn.key {
		xn.left = z
	} else {
		xn.right = z
	}

	t.retrace(x)
	return true
}
