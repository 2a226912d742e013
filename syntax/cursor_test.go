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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() *Tree {
	return NewTree("app",
		&Ident{Name: "f", Raw: "f"},
		NewTree("paren",
			&Atom{Text: "("},
			&Literal{Kind: LitNumber, Text: "1"},
			&Atom{Text: ")"},
		),
	)
}

func TestCursorMovement(t *testing.T) {
	t.Parallel()

	root := testTree()
	c := NewCursor(root)
	assert.Equal(t, root, c.Node())
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, c.Depth())

	c.Down(1)
	require.IsType(t, &Tree{}, c.Node())
	assert.Equal(t, NodeKind("paren"), c.Kind())
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, 1, c.Depth())

	c.Down(2)
	assert.Equal(t, &Atom{Text: ")"}, c.Node())

	c.Left()
	assert.Equal(t, &Literal{Kind: LitNumber, Text: "1"}, c.Node())
	c.Left()
	assert.Equal(t, &Atom{Text: "("}, c.Node())

	// Left past the first child parks on the virtual position.
	c.Left()
	assert.Equal(t, Missing{}, c.Node())
	assert.Equal(t, -1, c.Index())

	c.Up()
	assert.Equal(t, NodeKind("paren"), c.Kind())
	c.Left()
	assert.Equal(t, &Ident{Name: "f", Raw: "f"}, c.Node())

	c.Up()
	assert.Equal(t, root, c.Node())

	// The root itself can be consumed once.
	c.Left()
	assert.Equal(t, Missing{}, c.Node())
	assert.Equal(t, -1, c.Index())
}

func TestCursorPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewCursor(nil) })

	assert.Panics(t, func() {
		c := NewCursor(testTree())
		c.Up()
	})

	assert.Panics(t, func() {
		c := NewCursor(testTree())
		c.Left()
		c.Left()
	})

	assert.Panics(t, func() {
		c := NewCursor(testTree())
		c.Down(0)
		c.Left()
		c.Left()
	})

	assert.Panics(t, func() {
		c := NewCursor(testTree())
		c.Down(2)
	})

	assert.Panics(t, func() {
		c := NewCursor(&Atom{Text: "x"})
		c.Down(0)
	})
}

func TestCursorReplaceIsCopyOnWrite(t *testing.T) {
	t.Parallel()

	root := testTree()
	c := NewCursor(root)
	c.Down(1)
	c.Down(1)
	c.Replace(&Literal{Kind: LitNumber, Text: "2"})
	c.Up()
	c.Up()

	want := NewTree("app",
		&Ident{Name: "f", Raw: "f"},
		NewTree("paren",
			&Atom{Text: "("},
			&Literal{Kind: LitNumber, Text: "2"},
			&Atom{Text: ")"},
		),
	)
	assert.Empty(t, cmp.Diff(want, c.Node().(*Tree)))

	// The original tree is untouched.
	assert.Empty(t, cmp.Diff(testTree(), root))
	assert.NotSame(t, root, c.Node())
}

func TestCursorReplaceSurvivesLeft(t *testing.T) {
	t.Parallel()

	root := NewTree("app", &Ident{Name: "a", Raw: "a"}, &Ident{Name: "b", Raw: "b"})
	c := NewCursor(root)
	c.Down(1)
	c.Replace(&Atom{Text: "X"})

	// The left sibling is still the original node.
	c.Left()
	assert.Equal(t, &Ident{Name: "a", Raw: "a"}, c.Node())

	c.Up()
	want := NewTree("app", &Ident{Name: "a", Raw: "a"}, &Atom{Text: "X"})
	assert.Empty(t, cmp.Diff(want, c.Node().(*Tree)))

	orig := NewTree("app", &Ident{Name: "a", Raw: "a"}, &Ident{Name: "b", Raw: "b"})
	assert.Empty(t, cmp.Diff(orig, root))
}

func TestCursorReplaceRightToLeft(t *testing.T) {
	t.Parallel()

	root := NewTree("pair", &Atom{Text: "a"}, &Atom{Text: "b"})
	c := NewCursor(root)

	// Replace every child in traversal order, ending on the virtual
	// position before coming back up.
	c.Down(1)
	c.Replace(&Atom{Text: "B"})
	c.Left()
	c.Replace(&Atom{Text: "A"})
	c.Left()
	assert.Equal(t, Missing{}, c.Node())
	c.Up()

	want := NewTree("pair", &Atom{Text: "A"}, &Atom{Text: "B"})
	assert.Empty(t, cmp.Diff(want, c.Node().(*Tree)))
	assert.Empty(t, cmp.Diff(NewTree("pair", &Atom{Text: "a"}, &Atom{Text: "b"}), root))
}

func TestCursorReplaceDeepThenNavigate(t *testing.T) {
	t.Parallel()

	root := testTree()
	c := NewCursor(root)
	c.Down(1)
	c.Down(1)
	c.Replace(&Literal{Kind: LitNumber, Text: "2"})
	c.Up()
	c.Left()
	assert.Equal(t, &Ident{Name: "f", Raw: "f"}, c.Node())
	c.Up()

	want := NewTree("app",
		&Ident{Name: "f", Raw: "f"},
		NewTree("paren",
			&Atom{Text: "("},
			&Literal{Kind: LitNumber, Text: "2"},
			&Atom{Text: ")"},
		),
	)
	assert.Empty(t, cmp.Diff(want, c.Node().(*Tree)))
	assert.Empty(t, cmp.Diff(testTree(), root))
}

func TestCursorCloneIsolatesReplacements(t *testing.T) {
	t.Parallel()

	c := NewCursor(testTree())
	c.Down(1)
	c.Down(1)
	c.Replace(&Literal{Kind: LitNumber, Text: "2"})

	snap := c.Clone()
	c.Replace(&Literal{Kind: LitNumber, Text: "3"})

	c.Up()
	c.Up()
	snap.Up()
	snap.Up()

	got := c.Node().(*Tree).Children[1].(*Tree).Children[1]
	assert.Equal(t, &Literal{Kind: LitNumber, Text: "3"}, got)

	kept := snap.Node().(*Tree).Children[1].(*Tree).Children[1]
	assert.Equal(t, &Literal{Kind: LitNumber, Text: "2"}, kept)
}

func TestCursorClone(t *testing.T) {
	t.Parallel()

	c := NewCursor(testTree())
	c.Down(1)
	c.Down(2)

	clone := c.Clone()
	c.Left()
	c.Left()

	// The clone keeps its own position.
	assert.Equal(t, &Atom{Text: ")"}, clone.Node())
	assert.Equal(t, 2, clone.Index())
	assert.Equal(t, &Atom{Text: "("}, c.Node())
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NodeKind("app"), KindOf(NewTree("app")))
	assert.Equal(t, KindAtom, KindOf(&Atom{Text: "("}))
	assert.Equal(t, KindIdent, KindOf(&Ident{Name: "x"}))
	assert.Equal(t, NodeKind("numLit"), KindOf(&Literal{Kind: LitNumber, Text: "1"}))
	assert.Equal(t, NodeKind("strLit"), KindOf(&Literal{Kind: LitString, Text: `"s"`}))
	assert.Equal(t, KindMissing, KindOf(Missing{}))
	assert.Equal(t, KindMissing, KindOf(nil))
}
