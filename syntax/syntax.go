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

// Package syntax defines the immutable syntax tree consumed by the
// formatting engine, and a cursor for traversing it.
//
// Trees are produced by a grammar-based parser that is not part of this
// module. The formatter only ever reads them: node identity, kind, and
// child order are the whole contract.
package syntax

import "fmt"

// NodeKind identifies which grammar rule produced a node.
//
// Kinds are opaque to the engine; they are only compared for equality and
// used as registry keys. Extensions mint their own kinds the same way
// they mint parsing rules.
type NodeKind string

// Reserved kinds. Leaf variants report these from [KindOf] so that the
// engine's by-kind dispatch is uniform across all node shapes.
const (
	// KindMissing is reported by [Missing] nodes.
	KindMissing NodeKind = "missing"
	// KindAtom is reported by [Atom] nodes.
	KindAtom NodeKind = "atom"
	// KindIdent is reported by [Ident] nodes.
	KindIdent NodeKind = "ident"
	// KindChoice marks a node holding every successful alternative of a
	// choice combinator. All alternatives must format identically.
	KindChoice NodeKind = "choice"
	// KindNull marks the transparent wrapper node produced by repetition
	// and optional combinators.
	KindNull NodeKind = "null"
	// KindInterpolated marks an interpolated string: raw chunk atoms
	// alternating with embedded nodes.
	KindInterpolated NodeKind = "interpolatedStr"
)

// LitKind identifies the lexical class of a [Literal].
type LitKind byte

const (
	LitChar     LitKind = iota // A character literal.
	LitString                  // A string literal.
	LitNumber                  // A numeric literal.
	LitFieldIdx                // A structure projection index.
)

// Kind returns the [NodeKind] reported by literals of this class.
func (k LitKind) Kind() NodeKind {
	switch k {
	case LitChar:
		return "charLit"
	case LitString:
		return "strLit"
	case LitNumber:
		return "numLit"
	case LitFieldIdx:
		return "fieldIdx"
	default:
		return KindMissing
	}
}

// String implements [fmt.Stringer].
func (k LitKind) String() string {
	return string(k.Kind())
}

// Node is a node of the syntax tree.
//
// The concrete variants are [*Tree], [*Atom], [*Ident], [*Literal], and
// [Missing]. Nodes are immutable and owned by the caller.
type Node interface {
	isNode()
}

// Tree is an interior node: the result of a grammar rule, holding the
// rule's kind and the ordered results of its constituents.
type Tree struct {
	Kind     NodeKind
	Children []Node
}

// Atom is a leaf holding the literal source text of a symbol or keyword.
type Atom struct {
	Text string
}

// Ident is an identifier leaf.
type Ident struct {
	// Name is the canonical dotted display name, with hygiene markers
	// already stripped.
	Name string
	// Raw is the text the identifier was written with, if known. It may
	// differ from Name, and it may not re-lex to Name at all.
	Raw string
}

// Literal is a value leaf: a character, string, numeric, or projection
// literal, stored as its exact source text.
type Literal struct {
	Kind LitKind
	Text string
}

// Missing is the placeholder for a tree position the parser could not
// fill.
type Missing struct{}

func (*Tree) isNode()    {}
func (*Atom) isNode()    {}
func (*Ident) isNode()   {}
func (*Literal) isNode() {}
func (Missing) isNode()  {}

// KindOf returns the node kind used to dispatch a formatting handler for
// n. Leaves report their reserved kind; a nil node reports [KindMissing].
func KindOf(n Node) NodeKind {
	switch n := n.(type) {
	case *Tree:
		return n.Kind
	case *Atom:
		return KindAtom
	case *Ident:
		return KindIdent
	case *Literal:
		return n.Kind.Kind()
	default:
		return KindMissing
	}
}

// NewTree returns a new interior node.
func NewTree(kind NodeKind, children ...Node) *Tree {
	return &Tree{Kind: kind, Children: children}
}

// String implements [fmt.Stringer] for debugging output.
func (t *Tree) String() string {
	return fmt.Sprintf("(%s %v)", t.Kind, t.Children)
}

func (a *Atom) String() string    { return fmt.Sprintf("%q", a.Text) }
func (i *Ident) String() string   { return "`" + i.Name }
func (l *Literal) String() string { return l.Text }
func (Missing) String() string    { return "<missing>" }
