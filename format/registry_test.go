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
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pramaraju96/lean4rama/syntax"
)

func TestNewRegistrySeedsBuiltins(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for _, kind := range []syntax.NodeKind{
		syntax.KindIdent,
		syntax.KindAtom,
		syntax.KindMissing,
		"numLit", "strLit", "charLit", "fieldIdx",
	} {
		h, err := r.Lookup(kind)
		require.NoError(t, err, "kind %q", kind)
		assert.NotNil(t, h)
	}

	for _, id := range []CombinatorID{
		CombAndThen, CombMany, CombOptional, CombSepBy, CombOrElse,
		CombGroup, CombIndent, CombInterpolated,
		CombAtomic, CombWithPosition,
		CombLookahead, CombNotFollowedBy, CombCheckPrec, CombCheckWsBefore, CombEOI,
	} {
		c, err := r.LookupCombinator(id)
		require.NoError(t, err, "combinator %q", id)
		assert.NotNil(t, c)
	}
}

func TestLookupUnknownKind(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_, err := r.Lookup("mystery")
	var noHandler *NoHandlerError
	require.ErrorAs(t, err, &noHandler)
	assert.Equal(t, syntax.NodeKind("mystery"), noHandler.Kind)

	_, err = r.LookupCombinator("mystery")
	var noComb *NoCombinatorError
	require.ErrorAs(t, err, &noComb)
	assert.Equal(t, CombinatorID("mystery"), noComb.ID)
}

func TestRegisterConflicts(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	h := Node("thing", Seq())
	require.NoError(t, r.Register("thing", h))

	// Re-registering the identical handler is a no-op.
	assert.NoError(t, r.Register("thing", h))

	// A different handler for the same kind is a conflict.
	err := r.Register("thing", Skip)
	var dup *DuplicateHandlerError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, syntax.NodeKind("thing"), dup.Kind)

	// The original registration survives.
	got, lookupErr := r.Lookup("thing")
	require.NoError(t, lookupErr)
	assert.True(t, sameFunc(h, got))
}

func TestRegisterCombinatorConflicts(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	c := Combinator(func(...Handler) Handler { return Skip })
	require.NoError(t, r.RegisterCombinator("custom", c))
	assert.NoError(t, r.RegisterCombinator("custom", c))

	err := r.RegisterCombinator("custom", func(...Handler) Handler { return Skip })
	var dup *DuplicateHandlerError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, CombinatorID("custom"), dup.Combinator)

	// Seeded combinators conflict the same way.
	err = r.RegisterCombinator(CombMany, c)
	require.ErrorAs(t, err, &dup)
}

func TestRegisterNilPanics(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	assert.Panics(t, func() { _ = r.Register("thing", nil) })
	assert.Panics(t, func() { _ = r.RegisterCombinator("custom", nil) })
}

func TestCombinatorArity(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	many, err := r.LookupCombinator(CombMany)
	require.NoError(t, err)
	assert.Panics(t, func() { many() })
	assert.Panics(t, func() { many(Skip, Skip) })
	assert.NotNil(t, many(Skip))

	sepBy, err := r.LookupCombinator(CombSepBy)
	require.NoError(t, err)
	assert.Panics(t, func() { sepBy(Skip) })
	assert.NotNil(t, sepBy(Skip, Skip))

	// Sequencing takes any number of children.
	andThen, err := r.LookupCombinator(CombAndThen)
	require.NoError(t, err)
	assert.NotNil(t, andThen())
	assert.NotNil(t, andThen(Skip, Skip, Skip))
}

func TestCheckCombinatorsFormatNothing(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for _, id := range []CombinatorID{
		CombLookahead, CombNotFollowedBy, CombCheckPrec, CombCheckWsBefore, CombEOI,
	} {
		c, err := r.LookupCombinator(id)
		require.NoError(t, err)
		h := c(Skip)
		assert.True(t, sameFunc(h, Skip), "combinator %q", id)
	}
}

func TestKindsSorted(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register("zebra", Skip))
	require.NoError(t, r.Register("aardvark", Skip))

	kinds := r.Kinds()
	assert.Contains(t, kinds, syntax.NodeKind("zebra"))
	assert.Contains(t, kinds, syntax.NodeKind("aardvark"))
	assert.True(t, slices.IsSorted(kinds))
}
