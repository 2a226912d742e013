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

// Package token provides the lexical model shared by the parser and the
// formatter: the token table (the set of valid symbol texts) and a
// maximal-munch tokenizer over it.
//
// The formatter never re-parses its own output. Instead it re-lexes
// short fragments with [Table.Next] to decide whether two adjacent
// tokens would glue together, which is sound exactly because the
// tokenizer is maximal-munch and context-free: trailing text can only
// change a token by extending it at the immediate boundary.
package token

import (
	"fmt"
	"strings"
)

const (
	Unrecognized Kind = iota // A rune the tokenizer could not place.

	Space  // Contiguous whitespace.
	Symbol // A symbol or keyword from the token table.
	Ident  // An identifier, possibly dotted and guillemet-escaped.
	Number // A numeric literal.
	String // A string literal.
	Char   // A character literal.
)

// Kind identifies what kind of token a particular [Token] is.
type Kind byte

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Unrecognized:
		return "Unrecognized"
	case Space:
		return "Space"
	case Symbol:
		return "Symbol"
	case Ident:
		return "Ident"
	case Number:
		return "Number"
	case String:
		return "String"
	case Char:
		return "Char"
	default:
		return fmt.Sprintf("token.Kind(%d)", int(k))
	}
}

// Token is a single lexed token.
type Token struct {
	Kind Kind
	// Text is the exact source text the token was lexed from.
	Text string
}

// IsZero returns whether this is the zero token, produced when lexing
// empty input.
func (t Token) IsZero() bool {
	return t.Kind == Unrecognized && t.Text == ""
}

// IdentName returns the canonical identifier this token denotes, with
// guillemet escapes stripped from each dotted component.
//
// Returns "" if the token is not an identifier.
func (t Token) IdentName() string {
	if t.Kind != Ident {
		return ""
	}

	var out strings.Builder
	rest := t.Text
	for {
		var component string
		if strings.HasPrefix(rest, "«") {
			end := strings.Index(rest, "»")
			if end < 0 {
				return ""
			}
			component = rest[len("«"):end]
			rest = rest[end+len("»"):]
		} else {
			dot := strings.IndexByte(rest, '.')
			if dot < 0 {
				dot = len(rest)
			}
			component = rest[:dot]
			rest = rest[dot:]
		}

		out.WriteString(component)
		if !strings.HasPrefix(rest, ".") {
			return out.String()
		}
		rest = rest[1:]
		out.WriteByte('.')
	}
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	return fmt.Sprintf("%v(%q)", t.Kind, t.Text)
}
