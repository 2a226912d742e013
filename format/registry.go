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
	"fmt"
	"reflect"
	"slices"

	"github.com/pramaraju96/lean4rama/syntax"
)

// CombinatorID names a structural parser combinator: a grammar-building
// primitive shared across many node kinds that does not introduce a
// kind of its own.
type CombinatorID string

// Identities of the built-in structural combinators. [NewRegistry] seeds
// a handler constructor for each of these, so an extension wiring the
// formatting counterpart of a parsing rule can resolve them by the same
// identity it used to build the rule.
const (
	CombAndThen      CombinatorID = "andthen"
	CombMany         CombinatorID = "many"
	CombOptional     CombinatorID = "optional"
	CombSepBy        CombinatorID = "sepBy"
	CombOrElse       CombinatorID = "orelse"
	CombGroup        CombinatorID = "group"
	CombIndent       CombinatorID = "indent"
	CombInterpolated CombinatorID = "interpolatedStr"

	// Guard combinators format as their inner rule.
	CombAtomic       CombinatorID = "atomic"
	CombWithPosition CombinatorID = "withPosition"

	// Check combinators consume no tree position and format as nothing.
	CombLookahead     CombinatorID = "lookahead"
	CombNotFollowedBy CombinatorID = "notFollowedBy"
	CombCheckPrec     CombinatorID = "checkPrec"
	CombCheckWsBefore CombinatorID = "checkWsBefore"
	CombEOI           CombinatorID = "eoi"
)

// Combinator builds a handler for a structural combinator out of the
// handlers of its constituent rules.
//
// Each combinator has a fixed arity; passing the wrong number of
// children panics, since it means the formatting side of a grammar rule
// disagrees with its parsing side.
type Combinator func(children ...Handler) Handler

// Registry maps node kinds, and structural combinator identities, to
// formatting handlers.
//
// A registry is populated while extensions load and is read-only during
// formatting; concurrent runs may share one registry. Registration is
// idempotent for the identical handler and rejects a conflicting one, so
// a duplicated registration surfaces at load time rather than as
// nondeterministic formatting later.
type Registry struct {
	kinds       map[syntax.NodeKind]Handler
	combinators map[CombinatorID]Combinator
}

// NewRegistry returns a registry pre-populated with the built-in leaf
// handlers (identifiers, literals, bare atoms, missing) and the built-in
// structural combinators.
func NewRegistry() *Registry {
	r := &Registry{
		kinds:       make(map[syntax.NodeKind]Handler),
		combinators: make(map[CombinatorID]Combinator),
	}

	r.kinds[syntax.KindIdent] = Ident()
	r.kinds[syntax.KindAtom] = rawAtom
	r.kinds[syntax.KindMissing] = missing
	for _, lit := range []syntax.LitKind{syntax.LitChar, syntax.LitString, syntax.LitNumber, syntax.LitFieldIdx} {
		r.kinds[lit.Kind()] = Lit(lit)
	}

	r.combinators[CombAndThen] = Combinator(Seq)
	r.combinators[CombMany] = unary("many", Many)
	r.combinators[CombOptional] = unary("optional", Optional)
	r.combinators[CombSepBy] = binary("sepBy", SepBy)
	r.combinators[CombOrElse] = binary("orelse", OrElse)
	r.combinators[CombGroup] = unary("group", Group)
	r.combinators[CombIndent] = unary("indent", Indent)
	r.combinators[CombInterpolated] = unary("interpolatedStr", Interpolated)

	r.combinators[CombAtomic] = unary("atomic", func(h Handler) Handler { return h })
	r.combinators[CombWithPosition] = unary("withPosition", func(h Handler) Handler { return h })

	for _, check := range []CombinatorID{CombLookahead, CombNotFollowedBy, CombCheckPrec, CombCheckWsBefore, CombEOI} {
		r.combinators[check] = func(...Handler) Handler { return Skip }
	}

	return r
}

// Register associates a handler with a node kind.
//
// Registering the identical handler again is a no-op; registering a
// different handler for an already-registered kind returns a
// [*DuplicateHandlerError].
func (r *Registry) Register(kind syntax.NodeKind, h Handler) error {
	if h == nil {
		panic("lean4rama/format: registered nil handler")
	}
	if existing, ok := r.kinds[kind]; ok {
		if sameFunc(existing, h) {
			return nil
		}
		return &DuplicateHandlerError{Kind: kind}
	}
	r.kinds[kind] = h
	return nil
}

// RegisterCombinator associates a handler constructor with a combinator
// identity, with the same conflict rules as [Registry.Register].
func (r *Registry) RegisterCombinator(id CombinatorID, c Combinator) error {
	if c == nil {
		panic("lean4rama/format: registered nil combinator")
	}
	if existing, ok := r.combinators[id]; ok {
		if sameFunc(existing, c) {
			return nil
		}
		return &DuplicateHandlerError{Combinator: id}
	}
	r.combinators[id] = c
	return nil
}

// Lookup returns the handler registered for a node kind.
//
// A kind with no handler is a [*NoHandlerError]: the registry is
// inconsistent with the grammar, which must abort the whole run rather
// than backtrack.
func (r *Registry) Lookup(kind syntax.NodeKind) (Handler, error) {
	h, ok := r.kinds[kind]
	if !ok {
		return nil, &NoHandlerError{Kind: kind}
	}
	return h, nil
}

// LookupCombinator returns the handler constructor registered for a
// combinator identity.
func (r *Registry) LookupCombinator(id CombinatorID) (Combinator, error) {
	c, ok := r.combinators[id]
	if !ok {
		return nil, &NoCombinatorError{ID: id}
	}
	return c, nil
}

// Kinds returns every registered node kind in sorted order. Intended for
// debugging a grammar whose registrations do not line up.
func (r *Registry) Kinds() []syntax.NodeKind {
	kinds := make([]syntax.NodeKind, 0, len(r.kinds))
	for k := range r.kinds {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used when [Options.Registry]
// is nil. Extensions register into it while they load, before any
// formatting run starts.
func Default() *Registry {
	return defaultRegistry
}

// Register registers a handler in the [Default] registry.
func Register(kind syntax.NodeKind, h Handler) error {
	return defaultRegistry.Register(kind, h)
}

// RegisterCombinator registers a combinator in the [Default] registry.
func RegisterCombinator(id CombinatorID, c Combinator) error {
	return defaultRegistry.RegisterCombinator(id, c)
}

// sameFunc reports whether two handlers are the same function value.
func sameFunc(a, b any) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func unary(name string, build func(Handler) Handler) Combinator {
	return func(children ...Handler) Handler {
		if len(children) != 1 {
			panic(fmt.Sprintf("lean4rama/format: combinator %q takes 1 child, got %d", name, len(children)))
		}
		return build(children[0])
	}
}

func binary(name string, build func(_, _ Handler) Handler) Combinator {
	return func(children ...Handler) Handler {
		if len(children) != 2 {
			panic(fmt.Sprintf("lean4rama/format: combinator %q takes 2 children, got %d", name, len(children)))
		}
		return build(children[0], children[1])
	}
}
