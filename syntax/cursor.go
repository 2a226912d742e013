// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package syntax

import (
	"fmt"
	"slices"
)

// Cursor is a position within a syntax tree.
//
// A cursor supports moving to a child by index, to the parent, and to the
// left sibling, and replacing the node at the current position. The tree
// itself is never mutated: a replacement is spliced into a rebuilt copy
// of its parent immediately, and each enclosing level is rebuilt the same
// way on the way up, copy-on-write.
//
// Moving left past the first child parks the cursor on a virtual position
// (index -1) whose node is [Missing]; this is how a traversal that
// consumes children right to left observes that a level is exhausted.
// Moving left past the virtual position, or up past the root, panics: the
// cursor never escapes the tree it was created over.
type Cursor struct {
	node Node
	// rootIdx is 0 while the root has not been consumed and -1 after a
	// Left at the root, mirroring the virtual position of interior
	// levels.
	rootIdx int
	frames  []frame
}

// frame records one step of the path from the root to the current node.
type frame struct {
	parent *Tree
	idx    int
	// dirty is set once parent has been swapped for a rebuilt copy
	// holding a replacement; Up must splice it into the level above.
	dirty bool
}

// NewCursor returns a cursor positioned at root.
//
// Panics if root is nil.
func NewCursor(root Node) *Cursor {
	if root == nil {
		panic("lean4rama/syntax: passed nil node to NewCursor")
	}
	return &Cursor{node: root}
}

// Node returns the node at the current position.
func (c *Cursor) Node() Node {
	return c.node
}

// Kind returns the kind of the node at the current position.
func (c *Cursor) Kind() NodeKind {
	return KindOf(c.node)
}

// Index returns the current position's index within its parent.
//
// At the root it returns 0, or -1 once the root has been consumed by
// [Cursor.Left]. At the virtual position left of a first child it
// returns -1.
func (c *Cursor) Index() int {
	if len(c.frames) == 0 {
		return c.rootIdx
	}
	return c.frames[len(c.frames)-1].idx
}

// Depth returns how many levels below the root the cursor is.
func (c *Cursor) Depth() int {
	return len(c.frames)
}

// Down moves to the i-th child of the current node.
//
// Panics if the current node is not an interior node or i is out of
// range.
func (c *Cursor) Down(i int) {
	tree, ok := c.node.(*Tree)
	if !ok {
		panic(fmt.Sprintf("lean4rama/syntax: Down on non-interior node %v", c.node))
	}
	if i < 0 || i >= len(tree.Children) {
		panic(fmt.Sprintf("lean4rama/syntax: Down(%d) on node %q with %d children", i, tree.Kind, len(tree.Children)))
	}
	c.frames = append(c.frames, frame{parent: tree, idx: i})
	c.node = tree.Children[i]
}

// Up moves to the parent of the current position.
//
// If a node at or below this level was replaced, the parent observed is
// the rebuilt copy holding the replacement. Panics at the root.
func (c *Cursor) Up() {
	if len(c.frames) == 0 {
		panic("lean4rama/syntax: Up past the root")
	}
	f := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]

	if f.dirty {
		c.splice(f.parent)
		return
	}
	c.node = f.parent
}

// Left moves to the left sibling of the current position.
//
// Moving left of the first child (or of the root) parks the cursor on a
// virtual position whose node is [Missing]. Panics if the cursor is
// already on a virtual position.
func (c *Cursor) Left() {
	if len(c.frames) == 0 {
		if c.rootIdx < 0 {
			panic("lean4rama/syntax: Left past the root's virtual position")
		}
		c.rootIdx = -1
		c.node = Missing{}
		return
	}

	f := &c.frames[len(c.frames)-1]
	if f.idx < 0 {
		panic("lean4rama/syntax: Left past the first child")
	}
	f.idx--
	if f.idx < 0 {
		c.node = Missing{}
	} else {
		c.node = f.parent.Children[f.idx]
	}
}

// Replace replaces the node at the current position.
//
// The original tree is unchanged: the replacement is spliced into a
// rebuilt copy of the parent right away, so moving to a sibling and
// coming back up still observes it. Replacing the virtual position left
// of a first child panics.
func (c *Cursor) Replace(n Node) {
	if n == nil {
		panic("lean4rama/syntax: Replace with nil node")
	}
	if c.Index() < 0 {
		panic("lean4rama/syntax: Replace on a virtual position")
	}
	c.splice(n)
}

// Clone returns an independent copy of the cursor at the same position.
//
// Used to snapshot traversal state for backtracking. Rebuilt parents are
// copied, so a replacement through one cursor never leaks into the
// other's pending rebuild.
func (c *Cursor) Clone() *Cursor {
	frames := slices.Clone(c.frames)
	for i, f := range frames {
		if f.dirty {
			frames[i].parent = &Tree{Kind: f.parent.Kind, Children: slices.Clone(f.parent.Children)}
		}
	}
	return &Cursor{
		node:    c.node,
		rootIdx: c.rootIdx,
		frames:  frames,
	}
}

// splice installs n at the current position. The parent is swapped for a
// rebuilt copy the first time a level is touched, leaving the original
// tree intact.
func (c *Cursor) splice(n Node) {
	c.node = n
	if len(c.frames) == 0 {
		return
	}
	f := &c.frames[len(c.frames)-1]
	if !f.dirty {
		f.parent = &Tree{Kind: f.parent.Kind, Children: slices.Clone(f.parent.Children)}
		f.dirty = true
	}
	f.parent.Children[f.idx] = n
}
