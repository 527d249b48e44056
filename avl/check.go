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
	"errors"
	"fmt"
)

// errors returned by Validate and ParseLevelOrder
var (
	ErrUnbalanced = errors.New("avl: subtree heights differ by more than one")
	ErrBadHeight  = errors.New("avl: cached height is wrong")
	ErrOrder      = errors.New("avl: keys out of order")
	ErrParentLink = errors.New("avl: parent link mismatch")
	ErrCount      = errors.New("avl: node count mismatch")
	ErrSentinel   = errors.New("avl: sentinel was modified")
	ErrMalformed  = errors.New("avl: malformed level-order text")
)

// IsBalanced reports whether every node's subtree heights differ by at most
// one. It trusts the cached heights; Validate checks those too.
func (t *Tree) IsBalanced() bool {
	return t.isBalanced(t.root)
}

func (t *Tree) isBalanced(x Index) bool {
	if x == nilIndex {
		return true
	}
	n := t.nd(x)
	d := t.height(n.left) - t.height(n.right)
	return d >= -1 && d <= 1 && t.isBalanced(n.left) && t.isBalanced(n.right)
}

// Validate audits the whole tree: balance, cached heights, key order,
// parent links, the live node count and the sentinel. It returns nil or an
// error wrapping one of the Err values above that names the first bad key.
func (t *Tree) Validate() error {
	if t.mem.nodes[nilIndex] != detached {
		return ErrSentinel
	}
	count, err := t.validate(t.root, nilIndex, nil, nil)
	if err != nil {
		return err
	}
	if count != t.Len() {
		return fmt.Errorf("%w: %d reachable, %d allocated", ErrCount, count, t.Len())
	}
	return nil
}

// validate checks the subtree at x, whose keys must lie strictly between lo
// and hi when those are set, and returns its node count
func (t *Tree) validate(x Index, parent Index, lo *int, hi *int) (int, error) {
	if x == nilIndex {
		return 0, nil
	}
	n := t.nd(x)
	key := n.key
	if n.parent != parent {
		return 0, fmt.Errorf("%w: at key %d", ErrParentLink, key)
	}
	if (lo != nil && key <= *lo) || (hi != nil && key >= *hi) {
		return 0, fmt.Errorf("%w: at key %d", ErrOrder, key)
	}
	lh := t.height(n.left)
	rh := t.height(n.right)
	if n.height != 1+max(lh, rh) {
		return 0, fmt.Errorf("%w: key %d has %d, expected %d", ErrBadHeight, key, n.height, 1+max(lh, rh))
	}
	if lh-rh > 1 || rh-lh > 1 {
		return 0, fmt.Errorf("%w: at key %d (left %d, right %d)", ErrUnbalanced, key, lh, rh)
	}

	left, err := t.validate(n.left, x, lo, &key)
	if err != nil {
		return 0, err
	}
	right, err := t.validate(n.right, x, &key, hi)
	if err != nil {
		return 0, err
	}
	return left + right + 1, nil
}
