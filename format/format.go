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

// Package format is the syntax-directed pretty-printing engine: it turns
// a syntax tree into a layout document by dispatching, node kind by node
// kind, to formatting handlers registered by the same extension
// mechanism that registers parsing rules.
//
// The engine traverses the tree right to left. Each handler consumes one
// or more tree positions, pushes document fragments for them, and leaves
// the cursor exactly one position to the left of where it started; the
// fragments on the stack therefore sit in reverse text order, and the
// folding primitives ([Formatter.ConcatAll] and friends) reassemble them
// left to right. This inversion is load-bearing: whitespace between two
// tokens can only be decided once the text to the right of a token is
// known, which is exactly what a right-to-left pass has in hand.
//
// A handler that discovers the node does not have the shape it expected
// raises the backtrack signal ([ErrBacktrack], usually via
// [Formatter.CheckKind]); [Formatter.OrElse] recovers it and retries an
// alternative from a state snapshot. Registry and shape errors that
// indicate an inconsistent grammar are fatal and propagate immediately.
package format

import (
	"errors"
	"slices"
	"strconv"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/pramaraju96/lean4rama/doc"
	"github.com/pramaraju96/lean4rama/syntax"
	"github.com/pramaraju96/lean4rama/token"
)

// Options is the per-run configuration of the engine.
type Options struct {
	// Table is the grammar's token table, used to re-lex token
	// boundaries for whitespace disambiguation. Required.
	Table *token.Table

	// Registry resolves node kinds to handlers. If nil, the process-wide
	// [Default] registry is used.
	Registry *Registry

	// IndentWidth is the number of columns [Formatter.Indent] indents
	// by. Defaults to 2.
	IndentWidth int
}

func (o Options) withDefaults() Options {
	if o.Registry == nil {
		o.Registry = Default()
	}
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	return o
}

// Handler is one unit of traversal logic: it consumes zero or more tree
// positions at the cursor and pushes zero or more document fragments.
//
// On success, a handler that consumed any positions must leave the
// cursor exactly one position to the left of where it started. A nil
// error means the handler matched; an error matching [ErrBacktrack]
// means it did not and an alternative may be tried; any other error is
// fatal.
type Handler func(f *Formatter) error

// Formatter is the mutable state of one formatting run: the traversal
// cursor, the stack of partially built document fragments, and the lead
// word used for whitespace disambiguation.
//
// A Formatter is created per run by the top-level driver and is not
// shared; concurrent runs may share the registry and table but never a
// Formatter.
type Formatter struct {
	opts   Options
	cursor *syntax.Cursor

	// stack holds the fragments produced so far. Index 0 (the bottom)
	// is the rightmost-emitted fragment: the traversal runs right to
	// left, so fragments arrive in reverse text order.
	stack []doc.Doc

	// leadWord is the literal prefix, up to the first whitespace, of the
	// emitted text immediately to the right of whatever is pushed next.
	// Empty exactly when a line break (or nothing) follows.
	leadWord string
}

func newFormatter(opts Options, root syntax.Node) *Formatter {
	return &Formatter{
		opts:   opts,
		cursor: syntax.NewCursor(root),
	}
}

// Options returns the run's configuration.
func (f *Formatter) Options() Options {
	return f.opts
}

// Current returns the node at the cursor.
func (f *Formatter) Current() syntax.Node {
	return f.cursor.Node()
}

// Index returns the cursor's index within its parent; -1 means the
// current level has been exhausted.
func (f *Formatter) Index() int {
	return f.cursor.Index()
}

// GoLeft advances the traversal by one position.
//
// Leaf handlers call this after emitting their token; structural
// handlers advance through [Formatter.VisitChildren] instead.
func (f *Formatter) GoLeft() {
	f.cursor.Left()
}

// CheckKind raises the backtrack signal if the node at the cursor does
// not have the expected kind.
//
// This is the common first step of a shape-specific handler; the error
// it returns matches [ErrBacktrack] and is recovered by [OrElse].
func (f *Formatter) CheckKind(expected syntax.NodeKind) error {
	if kind := f.cursor.Kind(); kind != expected {
		return &kindMismatchError{expected: expected, found: kind}
	}
	return nil
}

// Visit formats the node at the cursor by looking up the handler for its
// kind and invoking it.
//
// Choice nodes are handled by the engine itself: every stored
// alternative is formatted and all renderings must agree.
func (f *Formatter) Visit() error {
	n := f.cursor.Node()
	if tree, ok := n.(*syntax.Tree); ok && tree.Kind == syntax.KindChoice {
		return f.visitChoice(tree)
	}

	h, err := f.opts.Registry.Lookup(syntax.KindOf(n))
	if err != nil {
		return err
	}
	return h(f)
}

// VisitChildren runs inner over the current node's children and advances
// past the node.
//
// If the node has children, the cursor moves to the last (rightmost)
// child, inner runs, and the cursor returns to the node; in all cases
// the cursor then moves one position to the left of where it started.
// This is the core traversal invariant every structural handler
// preserves.
func (f *Formatter) VisitChildren(inner Handler) error {
	if tree, ok := f.cursor.Node().(*syntax.Tree); ok && len(tree.Children) > 0 {
		f.cursor.Down(len(tree.Children) - 1)
		if err := inner(f); err != nil {
			return err
		}
		f.cursor.Up()
	}
	f.cursor.Left()
	return nil
}

// Fold runs inner and replaces everything it pushed with the single
// fragment produced by combine.
//
// combine receives the pushed fragments in stack order: index 0 is the
// bottom, the rightmost-emitted fragment.
func (f *Formatter) Fold(combine func(fragments []doc.Doc) doc.Doc, inner Handler) error {
	base := len(f.stack)
	if err := inner(f); err != nil {
		return err
	}
	d := combine(f.stack[base:])
	f.stack = append(f.stack[:base], d)
	return nil
}

// ConcatAll runs inner and concatenates everything it pushed into one
// fragment, in text order.
func (f *Formatter) ConcatAll(inner Handler) error {
	return f.Fold(concatFragments, inner)
}

// Indent is [Formatter.IndentBy] with the configured default width.
func (f *Formatter) Indent(inner Handler) error {
	return f.IndentBy(f.opts.IndentWidth, inner)
}

// IndentBy runs inner like [Formatter.ConcatAll] and nests the resulting
// fragment by the given number of columns.
func (f *Formatter) IndentBy(by int, inner Handler) error {
	return f.Fold(func(fragments []doc.Doc) doc.Doc {
		return doc.Nest(by, concatFragments(fragments))
	}, inner)
}

// Group runs inner like [Formatter.ConcatAll] and wraps the resulting
// fragment in a fill group.
func (f *Formatter) Group(inner Handler) error {
	return f.Fold(func(fragments []doc.Doc) doc.Doc {
		return doc.Fill(concatFragments(fragments))
	}, inner)
}

// OrElse runs primary; if it raises the backtrack signal, restores the
// state from before primary ran and runs fallback instead.
//
// Fatal errors propagate unchanged.
func (f *Formatter) OrElse(primary, fallback Handler) error {
	snap := f.save()
	err := primary(f)
	if err == nil || !errors.Is(err, ErrBacktrack) {
		return err
	}
	f.restore(snap)
	return fallback(f)
}

// concatFragments concatenates stack-ordered fragments in text order:
// the last-pushed (leftmost) fragment comes first.
func concatFragments(fragments []doc.Doc) doc.Doc {
	d := doc.Empty
	for _, frag := range fragments {
		d = doc.Concat(frag, d)
	}
	return d
}

// snapshot is the saved state [Formatter.OrElse] restores on backtrack.
type snapshot struct {
	cursor   *syntax.Cursor
	stack    []doc.Doc
	leadWord string
}

func (f *Formatter) save() snapshot {
	return snapshot{
		cursor:   f.cursor.Clone(),
		stack:    slices.Clone(f.stack),
		leadWord: f.leadWord,
	}
}

// restore resets the run state to a snapshot. The snapshot remains
// valid: restoring hands out fresh copies, so one snapshot can seed
// several attempts.
func (f *Formatter) restore(s snapshot) {
	f.cursor = s.cursor.Clone()
	f.stack = slices.Clone(s.stack)
	f.leadWord = s.leadWord
}

// visitChoice formats a choice node: a node storing the results of every
// grammar alternative that succeeded on the same text.
//
// All alternatives must format to the same text; the first one is kept.
// A mismatch is fatal, surfacing backtracking-unsafe grammar rules while
// they are being developed rather than silently picking a reading.
func (f *Formatter) visitChoice(tree *syntax.Tree) error {
	if len(tree.Children) == 0 {
		return errors.New("lean4rama/format: choice node with no alternatives")
	}

	snap := f.save()
	base := len(f.stack)

	var kept snapshot
	texts := make([]string, len(tree.Children))
	for i := range tree.Children {
		if i > 0 {
			f.restore(snap)
		}
		f.cursor.Down(i)
		if err := f.Visit(); err != nil {
			return err
		}
		texts[i] = doc.Flatten(concatFragments(f.stack[base:]))
		if i == 0 {
			kept = f.save()
		}
	}

	for i, text := range texts[1:] {
		if text != texts[0] {
			diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(texts[0]),
				B:        difflib.SplitLines(text),
				FromFile: "alternative 0",
				ToFile:   "alternative " + strconv.Itoa(i+1),
				Context:  2,
			})
			return &AmbiguousChoiceError{Alternatives: texts, Diff: diff}
		}
	}

	f.restore(kept)
	f.cursor.Up()
	f.cursor.Left()
	return nil
}
