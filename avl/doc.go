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

// Package avl implements a height-balanced (AVL) binary search tree over
// integer keys.
//
// Nodes live in an arena and refer to each other by Index. Slot 0 is a
// shared sentinel standing in for every empty subtree: it has height -1,
// so the height and balance formulas work on leaves without special cases.
// Parent links are plain back-references used to walk upward after a
// mutation; ownership runs strictly downward from the tree.
//
// Every exported mutation leaves the tree balanced, with all cached heights
// correct, before it returns.
//
// Note: a tree is not safe for concurrent use. Either keep it in a single
// goroutine or hold one exclusive lock around each Insert and Delete.
package avl
