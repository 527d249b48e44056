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

// Delete removes key from the tree and rebalances. It returns false, with
// no change to the tree, when key is absent.
func (t *Tree) Delete(key int) bool {
	z := t.search(t.root, key)
	if z == nilIndex {
		return false
	}
	t.remove(z)
	return true
}

// remove unlinks z, which must be in the tree, and reclaims its slot
func (t *Tree) remove(z Index) {
	zn := t.nd(z)
	if zn.left == nilIndex || zn.right == nilIndex {
		// leaf or single child: the child (possibly the sentinel) takes z's slot
		child := zn.left
		if child == nilIndex {
			child = zn.right
		}
		parent := zn.parent
		t.replace(z, child, true)
		t.mem.release(z)
		t.balanceUp(parent)
		return
	}

	// two children: the in-order successor takes z's place and a
	// placeholder carrying the same key is left behind where the successor
	// was. Removing the placeholder is one of the simple cases above and
	// does the rebalancing.
	s := t.minimum(zn.right)
	placeholder := t.mem.alloc(t.nd(s).key)
	t.replace(s, placeholder, false)
	t.replace(z, s, false)
	t.mem.release(z)
	t.remove(placeholder)
}

// replace detaches x and installs z in its exact position.
//
// With keepChildren, z keeps its own subtrees and heights are repaired
// from x's former parent upward. Otherwise z takes over x's children and
// height as they are and no height work is done here.
//
// x is left detached: links cleared and height -1. Its key stays, since a
// detached successor is spliced back in elsewhere.
func (t *Tree) replace(x Index, z Index, keepChildren bool) {
	xn := t.nd(x)
	parent := xn.parent
	if z != nilIndex {
		t.nd(z).parent = parent
	}

	if !keepChildren {
		zn := t.nd(z)
		zn.left = xn.left
		zn.right = xn.right
		zn.height = xn.height
		if xn.left != nilIndex {
			t.nd(xn.left).parent = z
		}
		if xn.right != nilIndex {
			t.nd(xn.right).parent = z
		}
	}

	t.relink(parent, x, z)
	if keepChildren && parent != nilIndex {
		t.heightUp(parent)
	}

	*xn = node{key: xn.key, height: -1}
}
