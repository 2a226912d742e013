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

package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Next lexes the first token of s.
//
// It returns the number of bytes consumed and the token produced; lexing
// the empty string consumes nothing and produces the zero token. Input
// that fits no lexical class is consumed one rune at a time as
// [Unrecognized], so Next always makes progress on non-empty input.
//
// Symbols from the table compete with identifier and number lexing by
// maximal munch: the longer match wins, and a word that exactly matches
// a table entry is a [Symbol] (keyword), not an [Ident].
func (t *Table) Next(s string) (int, Token) {
	if s == "" {
		return 0, Token{}
	}

	r, size := utf8.DecodeRuneInString(s)

	if unicode.IsSpace(r) {
		n := size
		for n < len(s) {
			r, size := utf8.DecodeRuneInString(s[n:])
			if !unicode.IsSpace(r) {
				break
			}
			n += size
		}
		return n, Token{Kind: Space, Text: s[:n]}
	}

	nSym := t.matchSymbol(s)

	var n int
	var kind Kind
	switch {
	case r == '"':
		n, kind = lexString(s)
	case r == '\'':
		n, kind = lexChar(s)
	case r == '«', isIdentStart(r):
		n, kind = lexIdent(s), Ident
	case isDigit(r), t.SignedNumbers && r == '-' && startsDigit(s[size:]):
		n, kind = lexNumber(s), Number
	}

	// Maximal munch: the table entry wins ties, so keywords lex as
	// symbols rather than identifiers.
	if nSym >= n && nSym > 0 {
		return nSym, Token{Kind: Symbol, Text: s[:nSym]}
	}
	if n > 0 {
		return n, Token{Kind: kind, Text: s[:n]}
	}

	return size, Token{Kind: Unrecognized, Text: s[:size]}
}

// lexIdent lexes a possibly dotted identifier: bare or guillemet-escaped
// components separated by dots. Returns the number of bytes consumed.
func lexIdent(s string) int {
	n := lexIdentComponent(s)
	if n == 0 {
		return 0
	}
	for strings.HasPrefix(s[n:], ".") {
		m := lexIdentComponent(s[n+1:])
		if m == 0 {
			break
		}
		n += 1 + m
	}
	return n
}

func lexIdentComponent(s string) int {
	if strings.HasPrefix(s, "«") {
		end := strings.Index(s[len("«"):], "»")
		if end < 0 {
			return 0
		}
		return len("«") + end + len("»")
	}

	r, size := utf8.DecodeRuneInString(s)
	if !isIdentStart(r) {
		return 0
	}
	n := size
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !isIdentRest(r) {
			break
		}
		n += size
	}
	return n
}

// lexNumber lexes a numeric literal: decimal with optional fraction and
// exponent, or a 0b/0o/0x radix literal. A leading '-' is assumed to
// have been validated by the caller.
func lexNumber(s string) int {
	n := 0
	if s[0] == '-' {
		n++
	}

	if strings.HasPrefix(s[n:], "0x") || strings.HasPrefix(s[n:], "0X") {
		return n + 2 + digits(s[n+2:], isHexDigit)
	}
	if strings.HasPrefix(s[n:], "0b") || strings.HasPrefix(s[n:], "0B") {
		return n + 2 + digits(s[n+2:], func(b byte) bool { return b == '0' || b == '1' })
	}
	if strings.HasPrefix(s[n:], "0o") || strings.HasPrefix(s[n:], "0O") {
		return n + 2 + digits(s[n+2:], func(b byte) bool { return b >= '0' && b <= '7' })
	}

	n += digits(s[n:], isDecDigit)

	// A fraction only counts with digits after the dot, so that field
	// projections like "x.1" do not lex "1." greedily.
	if rest := s[n:]; len(rest) >= 2 && rest[0] == '.' && isDecDigit(rest[1]) {
		n += 1 + digits(rest[1:], isDecDigit)
	}

	if rest := s[n:]; len(rest) >= 2 && (rest[0] == 'e' || rest[0] == 'E') {
		m := 1
		if rest[m] == '+' || rest[m] == '-' {
			m++
		}
		if d := digits(rest[m:], isDecDigit); d > 0 {
			n += m + d
		}
	}

	return n
}

// lexString lexes a double-quoted string literal with backslash escapes.
func lexString(s string) (int, Kind) {
	n := 1
	for n < len(s) {
		switch s[n] {
		case '\\':
			if n+1 >= len(s) {
				return len(s), Unrecognized
			}
			n += 2
		case '"':
			return n + 1, String
		default:
			_, size := utf8.DecodeRuneInString(s[n:])
			n += size
		}
	}
	return len(s), Unrecognized
}

// lexChar lexes a single-quoted character literal. Returns a zero length
// when s does not shape like one, so the caller can fall back to the
// symbol table.
func lexChar(s string) (int, Kind) {
	n := 1
	if n >= len(s) {
		return 0, Unrecognized
	}

	if s[n] == '\\' {
		if n+1 >= len(s) {
			return 0, Unrecognized
		}
		n += 2
	} else {
		r, size := utf8.DecodeRuneInString(s[n:])
		if r == '\'' || r == '\n' {
			return 0, Unrecognized
		}
		n += size
	}

	if n < len(s) && s[n] == '\'' {
		return n + 1, Char
	}
	return 0, Unrecognized
}

func digits(s string, ok func(byte) bool) int {
	n := 0
	for n < len(s) && ok(s[n]) {
		n++
	}
	return n
}

func startsDigit(s string) bool {
	return len(s) > 0 && isDecDigit(s[0])
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isDecDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentRest(r rune) bool {
	return r == '_' || r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
