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

package main

import (
	"fmt"
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

func getHelpMessage() string {
	message := fmt.Sprintf(`

 **avlkit %s**

Replay insert, delete and search scripts against a self-balancing AVL tree,
check the balance after every step and export the shapes it goes through.

Built with Go %s

# 1. Script format
One command per line. Blank lines and lines starting with '#' are skipped.

* 'I 7' or 'insert 7' inserts a key (duplicates are ignored)
* 'D 7' or 'delete 7' deletes a key (absent keys are ignored)
* 'S 7' or 'search 7' looks a key up

# 2. Commands
* 'avlkit run -i input.txt -o output.txt' replays a script and writes one level-order line per command
* 'avlkit run --render' also draws the final tree with Graphviz, '--steps' draws every step
* 'avlkit check -f output.txt' verifies every line of a level-order file is a valid AVL tree
* 'avlkit print -i input.txt' replays a script and draws the final tree in the terminal
* 'avlkit shell' opens an interactive tree editor
* 'avlkit settings' shows the configuration file

# 3. Level-order format
The tree of height h is written as 2^(h+1)-1 space separated cells in
breadth-first order. Missing children are written as NIL and an empty tree is
a single NIL.

# Please be aware
* Rendering needs the 'dot' command from Graphviz
* Copy to clipboard on Linux or Unix requires 'xclip' or 'xsel' command to be installed

# License
Licensed under the Apache License, Version 2.0
Copyright © 2025 Naren Yellavula

`, version, runtime.Version())
	result := markdown.Render(message, 80, 3)
	return string(result)
}

// shellHelpMarkdown is shown in the shell's help pane
const shellHelpMarkdown = `# avlkit shell

| Input | Effect |
|-------|--------|
| ` + "`i 5`" + ` | insert 5 |
| ` + "`d 5`" + ` | delete 5 |
| ` + "`s 5`" + ` | search for 5 |
| ` + "`clear`" + ` | remove every key |
| ` + "`quit`" + ` | leave the shell |

The tree is drawn sideways: the root is on the left and the right subtree is
above its parent. Each node shows its key and height.

**ctrl+y** copies the level-order form of the tree to the clipboard.
`
