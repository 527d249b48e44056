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

// rotateLeft promotes x's right child into x's place; x becomes its left
// child and inherits its former left subtree.
func (t *Tree) rotateLeft(x Index) {
	xn := t.nd(x)
	y := xn.right
	if y == nilIndex {
		panic("avl: rotate left without a right child")
	}
	yn := t.nd(y)

	xn.right = yn.left
	if yn.left != nilIndex {
		t.nd(yn.left).parent = x
	}
	yn.parent = xn.parent
	t.relink(xn.parent, x, y)
	yn.left = x
	xn.parent = y

	// x and y swapped levels, so x and its new ancestors may have stale heights
	t.heightUp(x)
}

// rotateRight is the mirror of rotateLeft
func (t *Tree) rotateRight(x Index) {
	xn := t.nd(x)
	y := xn.left
	if y == nilIndex {
		panic("avl: rotate right without a left child")
	}
	yn := t.nd(y)

	xn.left = yn.right
	if yn.right != nilIndex {
		t.nd(yn.right).parent = x
	}
	yn.parent = xn.parent
	t.relink(xn.parent, x, y)
	yn.right = x
	xn.parent = y

	t.heightUp(x)
}

// relink makes the slot of p that held old point at repl instead; when p is
// the sentinel, old was the root
func (t *Tree) relink(p Index, old Index, repl Index) {
	if p == nilIndex {
		t.root = repl
		return
	}
	pn := t.nd(p)
	if pn.left == old {
		pn.left = repl
	} else {
		pn.right = repl
	}
}

// heightUp recomputes the height of x and continues to its parent only
// while the value changes. Callers guarantee that everything above the
// first unchanged node is already correct.
func (t *Tree) heightUp(x Index) {
	for x != nilIndex {
		n := t.nd(x)
		h := 1 + max(t.height(n.left), t.height(n.right))
		if h == n.height {
			return
		}
		n.height = h
		x = n.parent
	}
}
