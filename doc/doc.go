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

// Package doc provides the layout document produced by the formatting
// engine: a structured representation of text with explicit line breaks,
// indentation, and fill groups, which a renderer turns into a character
// stream given a column budget.
//
// Documents are immutable values. [Concat] is associative with [Empty] as
// its identity, so folding a sequence of fragments into one document does
// not depend on association order.
package doc

// Doc is a layout document.
//
// The concrete variants are [Empty], [Text], [Line], [Concat], [Nest],
// and [Fill]. A nil Doc is treated as [Empty] everywhere in this package.
type Doc interface {
	// isDoc is a marker to keep the set of variants closed.
	isDoc()
}

// Empty is the empty document. It renders to nothing and is the identity
// for [Concat].
var Empty Doc = empty{}

// Line is an optional line break.
//
// Inside a [Fill] group that fits on the current line it renders as a
// single space; otherwise it renders as a newline followed by the current
// indentation.
var Line Doc = line{}

type empty struct{}

type text struct {
	s string
}

type line struct{}

type concat struct {
	left, right Doc
}

type nest struct {
	by int
	d  Doc
}

type fill struct {
	d Doc
}

func (empty) isDoc()  {}
func (text) isDoc()   {}
func (line) isDoc()   {}
func (concat) isDoc() {}
func (nest) isDoc()   {}
func (fill) isDoc()   {}

// Text returns a document that renders s exactly.
//
// Text("") is [Empty].
func Text(s string) Doc {
	if s == "" {
		return Empty
	}
	return text{s: s}
}

// Concat returns the concatenation of left and right.
//
// Either side being [Empty] (or nil) returns the other side unchanged.
func Concat(left, right Doc) Doc {
	if isEmpty(left) {
		return orEmpty(right)
	}
	if isEmpty(right) {
		return left
	}
	return concat{left: left, right: right}
}

// Nest returns d with its line breaks indented by an additional by
// columns.
//
// Nesting applies to breaks inside d, not to text already on the current
// line.
func Nest(by int, d Doc) Doc {
	if isEmpty(d) {
		return Empty
	}
	if by == 0 {
		return d
	}
	return nest{by: by, d: d}
}

// Fill returns d as a group: when the whole group fits within the
// remaining column budget its internal [Line] breaks collapse to single
// spaces, otherwise they render as real breaks.
func Fill(d Doc) Doc {
	if isEmpty(d) {
		return Empty
	}
	return fill{d: d}
}

func isEmpty(d Doc) bool {
	if d == nil {
		return true
	}
	_, ok := d.(empty)
	return ok
}

func orEmpty(d Doc) Doc {
	if d == nil {
		return Empty
	}
	return d
}
