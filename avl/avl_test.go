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

package avl_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/avlkit/avl"
)

func build(t *testing.T, keys ...int) *avl.Tree {
	t.Helper()
	tree := avl.New()
	for _, key := range keys {
		require.True(t, tree.Insert(key), "insert %d", key)
		require.NoError(t, tree.Validate(), "after insert %d", key)
	}
	return tree
}

func TestInsertKeepsBalance(t *testing.T) {
	keys := []int{20, 4, 26, 3, 9, 21, 30, 2, 7, 11}
	tree := avl.New()
	for _, key := range keys {
		tree.Insert(key)
		assert.True(t, tree.IsBalanced(), "unbalanced after inserting %d", key)
		require.NoError(t, tree.Validate())
	}
	assert.Equal(t, 3, tree.Height())
	assert.Equal(t, len(keys), tree.Len())
}

func TestInsertRotatesAtRoot(t *testing.T) {
	tree := build(t, 3, 2, 6, 1, 5, 8, 4, 7, 9)
	require.Equal(t, 3, tree.Root().Key())
	require.Equal(t, 3, tree.Height())

	tree.Insert(10)

	assert.True(t, tree.IsBalanced())
	assert.NoError(t, tree.Validate())
	assert.Equal(t, 6, tree.Root().Key(), "left rotation at the root should promote 6")
	assert.Equal(t, "6 3 8 2 5 7 9 1 NIL 4 NIL NIL NIL NIL 10", tree.String())
}

func TestDeleteLeaf(t *testing.T) {
	tree := build(t, 5, 2, 8, 1, 3, 7, 15, 4, 6, 9, 18, 20)

	assert.True(t, tree.Delete(1))

	assert.True(t, tree.IsBalanced())
	assert.NoError(t, tree.Validate())
	assert.Equal(t, 11, tree.Len())
	assert.False(t, tree.Search(1))
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8, 9, 15, 18, 20}, tree.Keys())
}

func TestDeleteTwoChildrenPromotesSuccessor(t *testing.T) {
	tree := build(t, 2, 1, 3)

	assert.True(t, tree.Delete(2))

	require.NoError(t, tree.Validate())
	root := tree.Root()
	assert.Equal(t, 3, root.Key())
	assert.Equal(t, 1, root.Left().Key())
	assert.True(t, root.Right().IsNil())
	assert.Equal(t, 2, tree.Len())
	assert.Equal(t, "3 1 NIL", tree.String())
}

func TestDeleteCases(t *testing.T) {
	testCases := []struct {
		name    string
		keys    []int
		remove  int
		shape   string
		present []int
	}{
		{
			name:    "leaf",
			keys:    []int{2, 1, 3},
			remove:  3,
			shape:   "2 1 NIL",
			present: []int{1, 2},
		},
		{
			name:    "single child",
			keys:    []int{2, 1, 3, 4},
			remove:  3,
			shape:   "2 1 4",
			present: []int{1, 2, 4},
		},
		{
			name:    "successor is right child",
			keys:    []int{4, 2, 6, 1, 3, 5, 7},
			remove:  6,
			shape:   "4 2 7 1 3 5 NIL",
			present: []int{1, 2, 3, 4, 5, 7},
		},
		{
			name:    "successor deep in right subtree",
			keys:    []int{4, 2, 6, 1, 3, 5, 7},
			remove:  4,
			shape:   "5 2 6 1 3 NIL 7",
			present: []int{1, 2, 3, 5, 6, 7},
		},
		{
			name:    "rebalance after delete",
			keys:    []int{2, 1, 3, 4},
			remove:  1,
			shape:   "3 2 4",
			present: []int{2, 3, 4},
		},
		{
			name:    "only node",
			keys:    []int{42},
			remove:  42,
			shape:   "NIL",
			present: []int{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree := build(t, tc.keys...)
			require.True(t, tree.Delete(tc.remove))
			require.NoError(t, tree.Validate())
			assert.Equal(t, tc.shape, tree.String())
			assert.Equal(t, tc.present, tree.Keys())
			assert.False(t, tree.Search(tc.remove))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tree := build(t, 10, 20, 30)
	for _, key := range []int{-5, 0, 15, 99} {
		require.True(t, tree.Insert(key))
		assert.True(t, tree.Search(key), "search %d after insert", key)
		require.True(t, tree.Delete(key))
		assert.False(t, tree.Search(key), "search %d after delete", key)
		require.NoError(t, tree.Validate())
	}
}

func TestDeleteAbsentKeyIsNoOp(t *testing.T) {
	tree := build(t, 8, 4, 12, 2, 6, 10, 14, 1)
	shape := tree.String()
	edges := tree.Edges()

	assert.False(t, tree.Delete(5))
	assert.False(t, tree.Delete(100))

	assert.Equal(t, shape, tree.String())
	assert.Equal(t, edges, tree.Edges())
	assert.Equal(t, 8, tree.Len())
}

func TestDuplicateInsertRejected(t *testing.T) {
	tree := build(t, 5, 3, 8)
	shape := tree.String()

	assert.False(t, tree.Insert(3))
	assert.Equal(t, shape, tree.String())
	assert.Equal(t, 3, tree.Len())
}

func TestEmptyTree(t *testing.T) {
	tree := avl.New()
	assert.True(t, tree.IsEmpty())
	assert.Equal(t, -1, tree.Height())
	assert.True(t, tree.IsBalanced())
	assert.NoError(t, tree.Validate())
	assert.Equal(t, "NIL", tree.String())
	assert.Empty(t, tree.LevelOrder())
	assert.Empty(t, tree.Edges())
	assert.True(t, tree.Root().IsNil())
	assert.True(t, tree.Min().IsNil())
	assert.False(t, tree.Search(0))
	assert.False(t, tree.Delete(0))
}

func TestCardinality(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	keys := rng.Perm(500)
	tree := avl.New()
	for _, key := range keys {
		tree.Insert(key - 250)
	}
	deleted := keys[:180]
	for _, key := range deleted {
		require.True(t, tree.Delete(key-250))
	}

	require.NoError(t, tree.Validate())
	assert.Equal(t, len(keys)-len(deleted), tree.Len())
	for _, key := range keys[180:] {
		assert.True(t, tree.Search(key-250), "key %d lost", key-250)
	}
}

// random inserts and deletes checked against a map after every step
func TestRandomOperations(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		rng := rand.New(rand.NewSource(seed))
		tree := avl.New()
		model := make(map[int]struct{})

		for i := 0; i < 1500; i += 1 {
			key := rng.Intn(300) - 150
			_, present := model[key]
			if rng.Intn(3) == 0 {
				assert.Equal(t, present, tree.Delete(key))
				delete(model, key)
			} else {
				assert.Equal(t, !present, tree.Insert(key))
				model[key] = struct{}{}
			}
			if err := tree.Validate(); err != nil {
				t.Fatalf("seed %d step %d key %d: %v", seed, i, key, err)
			}
		}

		expected := make([]int, 0, len(model))
		for key := range model {
			expected = append(expected, key)
		}
		sort.Ints(expected)
		assert.Equal(t, expected, tree.Keys())
	}
}

func TestSequentialKeysStayLogarithmic(t *testing.T) {
	tree := avl.New()
	for i := 0; i < 1023; i += 1 {
		tree.Insert(i)
	}
	require.NoError(t, tree.Validate())
	// a sorted insert into a plain BST would have height 1022
	assert.LessOrEqual(t, tree.Height(), 13)
}

func TestIterators(t *testing.T) {
	tree := build(t, 50, 30, 70, 20, 40, 60, 80, 35)

	var forward []int
	for p := tree.Min(); !p.IsNil(); p = p.Next() {
		forward = append(forward, p.Key())
	}
	assert.Equal(t, []int{20, 30, 35, 40, 50, 60, 70, 80}, forward)

	var backward []int
	for p := tree.Max(); !p.IsNil(); p = p.Prev() {
		backward = append(backward, p.Key())
	}
	assert.Equal(t, []int{80, 70, 60, 50, 40, 35, 30, 20}, backward)

	var first []int
	tree.Walk(func(key int) bool {
		first = append(first, key)
		return len(first) < 3
	})
	assert.Equal(t, []int{20, 30, 35}, first)
}

func TestNodeHandles(t *testing.T) {
	tree := build(t, 1, 2, 3, 4, 5, 6, 7)

	root := tree.Root()
	assert.Equal(t, 4, root.Key())
	assert.Equal(t, 2, root.Height())
	assert.Equal(t, 0, root.Depth())
	assert.True(t, root.Parent().IsNil())

	p, ok := tree.Find(7)
	require.True(t, ok)
	assert.Equal(t, 2, p.Depth())
	assert.Equal(t, 0, p.Height())
	assert.Equal(t, 6, p.Parent().Key())

	_, ok = tree.Find(8)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	tree := build(t, 1, 2, 3)
	tree.Clear()
	assert.True(t, tree.IsEmpty())
	assert.Equal(t, 0, tree.Len())
	assert.True(t, tree.Insert(2))
	assert.NoError(t, tree.Validate())
}
