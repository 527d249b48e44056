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

// balance restores the AVL property at x. Both children of x must already
// have correct heights; on return x's own height is correct as well.
func (t *Tree) balance(x Index) {
	n := t.nd(x)
	switch {
	case t.height(n.left) > t.height(n.right)+1:
		l := t.nd(n.left)
		if t.height(l.right) > t.height(l.left) {
			t.rotateLeft(n.left) // left-right case
		}
		t.rotateRight(x)
	case t.height(n.right) > t.height(n.left)+1:
		r := t.nd(n.right)
		if t.height(r.left) > t.height(r.right) {
			t.rotateRight(n.right) // right-left case
		}
		t.rotateLeft(x)
	}
	t.heightUp(x)
}

// balanceUp balances x and then each of its ancestors, leaf to root. The
// parent is captured before balancing since a rotation moves x down.
func (t *Tree) balanceUp(x Index) {
	for x != nilIndex {
		parent := t.nd(x).parent
		t.balance(x)
		x = parent
	}
}

// retrace is the insert-side walk: each ancestor on the insertion path gets
// its height recomputed from its children and is then balanced.
func (t *Tree) retrace(x Index) {
	for x != nilIndex {
		n := t.nd(x)
		parent := n.parent
		n.height = 1 + max(t.height(n.left), t.height(n.right))
		t.balance(x)
		x = parent
	}
}
