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
	"io"
)

// to control the print routine
type branch int

const (
	rootBranch branch = iota
	leftBranch
	rightBranch
)

// Fprint draws the tree sideways, right subtree on top, one key per line
// followed by its height.
func (t *Tree) Fprint(w io.Writer) error {
	ew := &errWriter{w: w}
	if t.root == nilIndex {
		ew.printf("%s\n", emptySlot)
		return ew.err
	}
	t.fprint(ew, t.root, "", rootBranch)
	return ew.err
}

func (t *Tree) fprint(ew *errWriter, x Index, prefix string, br branch) {
	n := t.nd(x)
	if n.right != nilIndex {
		pad := "       "
		if br == leftBranch {
			pad = "|      "
		}
		t.fprint(ew, n.right, prefix+pad, rightBranch)
	}
	switch br {
	case rootBranch:
		ew.printf("%s|------+ ", prefix)
	case leftBranch:
		ew.printf("%s\\------+ ", prefix)
	case rightBranch:
		ew.printf("%s/------+ ", prefix)
	}
	ew.printf("%d (h=%d)\n", n.key, n.height)
	if n.left != nilIndex {
		pad := "       "
		if br == rightBranch {
			pad = "|      "
		}
		t.fprint(ew, n.left, prefix+pad, leftBranch)
	}
}
