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

// Package stringsx contains extensions to Go's package strings.
package stringsx

import (
	"unicode"
	"unicode/utf8"
)

// FirstWord returns the prefix of s up to (but excluding) its first
// whitespace rune.
//
// Whitespace inside guillemet escapes («...») does not terminate the
// word: an escaped identifier component is one opaque unit as far as
// token boundaries are concerned.
func FirstWord(s string) string {
	depth := 0
	for i, r := range s {
		switch {
		case r == '«':
			depth++
		case r == '»' && depth > 0:
			depth--
		case depth == 0 && unicode.IsSpace(r):
			return s[:i]
		}
	}
	return s
}

// HasLeadingSpace returns whether s begins with a whitespace rune.
func HasLeadingSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsSpace(r)
}

// HasTrailingSpace returns whether s ends with a whitespace rune.
func HasTrailingSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r != utf8.RuneError && unicode.IsSpace(r)
}
