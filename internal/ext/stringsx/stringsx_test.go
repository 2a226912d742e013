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

package stringsx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pramaraju96/lean4rama/internal/ext/stringsx"
)

func TestFirstWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"foo", "foo"},
		{"foo bar", "foo"},
		{" foo", ""},
		{"foo\tbar", "foo"},
		{"«foo bar»", "«foo bar»"},
		{"«foo bar».baz qux", "«foo bar».baz"},
		{"«a «b c» d» e", "«a «b c» d»"},
		{"a» b", "a»"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stringsx.FirstWord(tt.input), "FirstWord(%q)", tt.input)
	}
}

func TestHasLeadingSpace(t *testing.T) {
	t.Parallel()

	assert.False(t, stringsx.HasLeadingSpace(""))
	assert.False(t, stringsx.HasLeadingSpace("x "))
	assert.True(t, stringsx.HasLeadingSpace(" x"))
	assert.True(t, stringsx.HasLeadingSpace("\nx"))
}

func TestHasTrailingSpace(t *testing.T) {
	t.Parallel()

	assert.False(t, stringsx.HasTrailingSpace(""))
	assert.False(t, stringsx.HasTrailingSpace(" x"))
	assert.True(t, stringsx.HasTrailingSpace("x "))
	assert.True(t, stringsx.HasTrailingSpace("x\t"))
}
