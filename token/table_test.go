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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableMatchSymbol(t *testing.T) {
	t.Parallel()

	table := NewTable(":", ":=", "::", "=", "=>", "-", "->")

	tests := []struct {
		input string
		want  int
	}{
		{":= 1", 2},
		{": 1", 1},
		{"::", 2},
		{"=>x", 2},
		{"=x", 1},
		{"->", 2},
		{"-x", 1},
		{"x", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.matchSymbol(tt.input), "input %q", tt.input)
	}
}

func TestTableSpacingHintsTrimmed(t *testing.T) {
	t.Parallel()

	table := NewTable(" := ", "fun ")
	assert.True(t, table.Contains(":="))
	assert.True(t, table.Contains(" := "))
	assert.True(t, table.Contains("fun"))
	assert.Equal(t, 2, table.Len())

	assert.Panics(t, func() { table.Insert("  ") })
}

func TestTableZeroValue(t *testing.T) {
	t.Parallel()

	var table Table
	assert.Equal(t, 0, table.matchSymbol("x"))

	n, tok := table.Next("foo")
	assert.Equal(t, 3, n)
	assert.Equal(t, Token{Ident, "foo"}, tok)
}

func TestTableSymbols(t *testing.T) {
	t.Parallel()

	table := NewTable("b", "a", "c")
	var got []string
	table.Symbols(func(s string) bool {
		got = append(got, s)
		return true
	})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}
