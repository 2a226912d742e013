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
	"github.com/pramaraju96/lean4rama/doc"
	"github.com/pramaraju96/lean4rama/internal/ext/stringsx"
)

// PushToken emits one token of text, inserting the minimum separating
// whitespace needed for the emitted text to re-lex with the same token
// boundaries the tree has.
//
// The traversal runs right to left, so tk is being placed immediately to
// the left of everything emitted so far; the only boundary that can go
// wrong is the one between tk and the lead word of that text. Re-lexing
// tk alone and tk glued to the lead word tells whether the boundary
// survives: the tokenizer is maximal-munch and context-free, so trailing
// text can only change a token by extending it at this exact boundary.
// If the two trial lexes consume a different amount of tk, a space is
// mandatory and tk is emitted with a trailing space.
//
// tk may carry explicit leading or trailing whitespace (grammar spacing
// hints such as " := "); such tokens are emitted verbatim, since their
// own whitespace already separates them.
func (f *Formatter) PushToken(tk string) {
	if tk == "" {
		return
	}

	if stringsx.HasTrailingSpace(tk) || f.leadWord == "" {
		f.push(doc.Text(tk))
		f.leadWord = stringsx.FirstWord(tk)
		return
	}

	if f.lexLen(tk) == f.lexLen(tk+f.leadWord) {
		f.push(doc.Text(tk))
		f.leadWord = stringsx.FirstWord(tk + f.leadWord)
		return
	}

	f.push(doc.Text(tk + " "))
	f.leadWord = stringsx.FirstWord(tk)
}

// PushLine emits a line break. A break is always safe whitespace, so the
// lead word resets.
func (f *Formatter) PushLine() {
	f.push(doc.Line)
	f.leadWord = ""
}

// PushDoc pushes a prebuilt fragment onto the stack.
//
// The fragment's text must already be whitespace-safe: PushDoc does not
// consult or update the lead word.
func (f *Formatter) PushDoc(d doc.Doc) {
	f.push(d)
}

func (f *Formatter) push(d doc.Doc) {
	f.stack = append(f.stack, d)
}

// lexLen returns how much of s the first trial lex consumes.
func (f *Formatter) lexLen(s string) int {
	n, _ := f.opts.Table.Next(s)
	return n
}
