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

	"github.com/tidwall/btree"
)

// Table is a token table: the set of symbol and keyword texts the
// grammar currently accepts.
//
// The table is populated while the grammar is assembled and is read-only
// during formatting. Symbol lookup is longest-prefix (maximal munch),
// backed by an ordered map: every key that is a prefix of a query sorts
// at or before the query, so the longest match is the first prefix found
// when descending from it.
//
// The zero value is an empty table ready for use.
type Table struct {
	// SignedNumbers controls whether a '-' immediately followed by a
	// digit is lexed into the numeric literal. Grammars that treat
	// negation lexically set this; grammars with a negation rule leave
	// it unset and keep "-" in the symbol table instead.
	SignedNumbers bool

	syms btree.Map[string, struct{}]
}

// NewTable returns a table containing the given symbols.
func NewTable(symbols ...string) *Table {
	t := new(Table)
	for _, s := range symbols {
		t.Insert(s)
	}
	return t
}

// Insert adds a symbol to the table.
//
// Grammar spacing hints (leading/trailing spaces, as in " := ") are
// trimmed: the table stores lexical texts only. Panics if the trimmed
// symbol is empty.
func (t *Table) Insert(symbol string) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		panic("lean4rama/token: inserted empty symbol into table")
	}
	t.syms.Set(symbol, struct{}{})
}

// Contains returns whether the table contains the given symbol, after
// trimming spacing hints.
func (t *Table) Contains(symbol string) bool {
	_, ok := t.syms.Get(strings.TrimSpace(symbol))
	return ok
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int {
	return t.syms.Len()
}

// Symbols iterates over the symbols in the table in sorted order.
func (t *Table) Symbols(yield func(string) bool) {
	t.syms.Ascend("", func(k string, _ struct{}) bool {
		return yield(k)
	})
}

// matchSymbol returns the length of the longest symbol in the table that
// is a prefix of s, or 0 if there is none.
func (t *Table) matchSymbol(s string) int {
	n := 0
	t.syms.Descend(s, func(k string, _ struct{}) bool {
		if strings.HasPrefix(s, k) {
			n = len(k)
			return false
		}
		// Keys that no longer share the first byte cannot turn into
		// prefixes further down.
		return k != "" && s != "" && k[0] == s[0]
	})
	return n
}
