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

package format

import (
	"strings"

	"github.com/pramaraju96/lean4rama/syntax"
	"github.com/pramaraju96/lean4rama/token"
)

// Skip is the handler for check combinators (lookahead, precedence and
// whitespace checks, end of input): they consume no tree position and
// contribute no output.
var Skip Handler = func(*Formatter) error { return nil }

// Seq returns the handler for a sequence of rules.
//
// The handlers run in reverse: the traversal is right to left, so the
// last constituent formats first. Writing this loop forward instead is
// the classic way to reorder every token in the output.
func Seq(hs ...Handler) Handler {
	return func(f *Formatter) error {
		for i := len(hs) - 1; i >= 0; i-- {
			if err := hs[i](f); err != nil {
				return err
			}
		}
		return nil
	}
}

// Node returns the handler for a kinded grammar rule: it backtracks
// unless the cursor is on a node of the given kind, then runs inner over
// the node's children.
func Node(kind syntax.NodeKind, inner Handler) Handler {
	return func(f *Formatter) error {
		if err := f.CheckKind(kind); err != nil {
			return err
		}
		return f.VisitChildren(inner)
	}
}

// Symbol returns the handler for a fixed symbol or keyword.
//
// text may carry grammar spacing hints (as in " := "); the node is
// matched against the trimmed symbol, and the hinted text is what gets
// emitted. A node that is not the expected atom backtracks.
func Symbol(text string) Handler {
	trimmed := strings.TrimSpace(text)
	return func(f *Formatter) error {
		atom, ok := f.Current().(*syntax.Atom)
		if !ok || strings.TrimSpace(atom.Text) != trimmed {
			return &symbolMismatchError{expected: trimmed, found: f.Current()}
		}
		f.PushToken(text)
		f.GoLeft()
		return nil
	}
}

// Ident returns the handler for identifier leaves.
//
// The identifier is emitted as written when its raw text still re-lexes
// to the same canonical name. Otherwise every dotted component that does
// not survive re-lexing on its own (it collides with a keyword, or is
// not a valid bare identifier) is wrapped in guillemet escapes, so that
// re-parsing the output yields the identifier unchanged.
func Ident() Handler {
	return func(f *Formatter) error {
		id, ok := f.Current().(*syntax.Ident)
		if !ok {
			return &kindMismatchError{expected: syntax.KindIdent, found: f.cursor.Kind()}
		}

		text := id.Raw
		if text == "" || !relexesTo(f.opts.Table, text, id.Name) {
			text = escapeIdent(f.opts.Table, id.Name)
		}
		f.PushToken(text)
		f.GoLeft()
		return nil
	}
}

// Lit returns the handler for literal leaves of the given class. The
// stored literal text is emitted verbatim.
func Lit(kind syntax.LitKind) Handler {
	return func(f *Formatter) error {
		lit, ok := f.Current().(*syntax.Literal)
		if !ok || lit.Kind != kind {
			return &kindMismatchError{expected: kind.Kind(), found: f.cursor.Kind()}
		}
		f.PushToken(lit.Text)
		f.GoLeft()
		return nil
	}
}

// AtomNode returns the handler for a kinded node that wraps exactly one
// atom, emitting the atom's source text.
//
// A wrong kind backtracks; a node of the right kind whose content is not
// a single atom is fatal, because the tree contradicts its own kind.
func AtomNode(kind syntax.NodeKind) Handler {
	return func(f *Formatter) error {
		if err := f.CheckKind(kind); err != nil {
			return err
		}
		tree := f.Current().(*syntax.Tree)
		if len(tree.Children) != 1 {
			return &MalformedAtomError{Kind: kind, Node: tree}
		}
		atom, ok := tree.Children[0].(*syntax.Atom)
		if !ok {
			return &MalformedAtomError{Kind: kind, Node: tree.Children[0]}
		}
		f.PushToken(atom.Text)
		f.GoLeft()
		return nil
	}
}

// Many returns the handler for a repetition: each present child is
// formatted once with h, right to left.
func Many(h Handler) Handler {
	return func(f *Formatter) error {
		if err := f.CheckKind(syntax.KindNull); err != nil {
			return err
		}
		return f.VisitChildren(func(f *Formatter) error {
			for f.Index() >= 0 {
				if err := h(f); err != nil {
					return err
				}
			}
			return nil
		})
	}
}

// Optional returns the handler for an optional rule: h runs once if the
// wrapper holds any content, and the empty wrapper formats to nothing.
func Optional(h Handler) Handler {
	return func(f *Formatter) error {
		if err := f.CheckKind(syntax.KindNull); err != nil {
			return err
		}
		return f.VisitChildren(h)
	}
}

// SepBy returns the handler for a separated list: children at even
// indices format with elem, odd indices with sep, still right to left.
func SepBy(elem, sep Handler) Handler {
	return func(f *Formatter) error {
		if err := f.CheckKind(syntax.KindNull); err != nil {
			return err
		}
		return f.VisitChildren(func(f *Formatter) error {
			for f.Index() >= 0 {
				h := elem
				if f.Index()%2 == 1 {
					h = sep
				}
				if err := h(f); err != nil {
					return err
				}
			}
			return nil
		})
	}
}

// OrElse returns the handler for an ambiguous shape: primary is
// attempted, and if it backtracks, fallback formats from the restored
// state instead.
func OrElse(primary, fallback Handler) Handler {
	return func(f *Formatter) error {
		return f.OrElse(primary, fallback)
	}
}

// Group returns a handler that formats like inner and wraps the result
// in a fill group.
func Group(inner Handler) Handler {
	return func(f *Formatter) error {
		return f.Group(inner)
	}
}

// Indent returns a handler that formats like inner and nests the result
// by the configured default indent width.
func Indent(inner Handler) Handler {
	return func(f *Formatter) error {
		return f.Indent(inner)
	}
}

// IndentBy is [Indent] with an explicit width.
func IndentBy(by int, inner Handler) Handler {
	return func(f *Formatter) error {
		return f.IndentBy(by, inner)
	}
}

// Interpolated returns the handler for an interpolated string: the
// node's children alternate raw chunk atoms (the quoted pieces around
// the holes) and embedded nodes formatted with term.
func Interpolated(term Handler) Handler {
	return func(f *Formatter) error {
		if err := f.CheckKind(syntax.KindInterpolated); err != nil {
			return err
		}
		return f.VisitChildren(func(f *Formatter) error {
			for f.Index() >= 0 {
				if atom, ok := f.Current().(*syntax.Atom); ok {
					f.PushToken(atom.Text)
					f.GoLeft()
					continue
				}
				if err := term(f); err != nil {
					return err
				}
			}
			return nil
		})
	}
}

// rawAtom is the registered handler for bare atom leaves: the source
// text passes through untouched.
func rawAtom(f *Formatter) error {
	atom, ok := f.Current().(*syntax.Atom)
	if !ok {
		return &kindMismatchError{expected: syntax.KindAtom, found: f.cursor.Kind()}
	}
	f.PushToken(atom.Text)
	f.GoLeft()
	return nil
}

// missing is the registered handler for missing leaves. A hole the
// parser could not fill formats to nothing; the surrounding text is
// still produced, which is the useful behavior when formatting a tree
// that carries parse errors.
func missing(f *Formatter) error {
	if _, ok := f.Current().(syntax.Missing); !ok {
		return &kindMismatchError{expected: syntax.KindMissing, found: f.cursor.Kind()}
	}
	f.GoLeft()
	return nil
}

// relexesTo reports whether raw lexes as one identifier token spanning
// all of raw and denoting name.
func relexesTo(table *token.Table, raw, name string) bool {
	n, tok := table.Next(raw)
	return n == len(raw) && tok.Kind == token.Ident && tok.IdentName() == name
}

// escapeIdent renders a canonical dotted name so that re-lexing it
// yields the name exactly, escaping each component that would not
// survive as a bare identifier.
func escapeIdent(table *token.Table, name string) string {
	components := strings.Split(name, ".")
	for i, c := range components {
		if !bareIdentOK(table, c) {
			components[i] = "«" + c + "»"
		}
	}
	return strings.Join(components, ".")
}

// bareIdentOK reports whether c lexes, on its own, as a bare identifier
// component. Keywords fail here: the table lexes them as symbols.
func bareIdentOK(table *token.Table, c string) bool {
	n, tok := table.Next(c)
	return n == len(c) && tok.Kind == token.Ident
}
