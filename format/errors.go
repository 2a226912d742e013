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
	"errors"
	"fmt"

	"github.com/pramaraju96/lean4rama/syntax"
)

// ErrBacktrack is the distinguished backtrack signal: a handler raising
// it means "the node at the cursor does not have the shape this handler
// expected; try an alternative".
//
// It is recovered by the nearest enclosing [OrElse]; reaching the
// top-level driver unrecovered, it becomes an [UnmatchedError]. Every
// other error is fatal and propagates past OrElse untouched.
//
// Match with [errors.Is]; the errors raised by [Formatter.CheckKind] and
// the built-in leaf handlers wrap it.
var ErrBacktrack = errors.New("backtrack")

// kindMismatchError is the backtrackable error raised by
// [Formatter.CheckKind].
type kindMismatchError struct {
	expected, found syntax.NodeKind
}

func (e *kindMismatchError) Error() string {
	return fmt.Sprintf("expected node kind %q, found %q", e.expected, e.found)
}

func (e *kindMismatchError) Is(target error) bool {
	return target == ErrBacktrack
}

// symbolMismatchError is the backtrackable error raised by [Symbol] when
// the node at the cursor is not the expected atom.
type symbolMismatchError struct {
	expected string
	found    syntax.Node
}

func (e *symbolMismatchError) Error() string {
	return fmt.Sprintf("expected symbol %q, found %v", e.expected, e.found)
}

func (e *symbolMismatchError) Is(target error) bool {
	return target == ErrBacktrack
}

// NoHandlerError is returned when a node's kind has no registered
// handler.
//
// This is fatal, never backtrackable: it means the registry is
// inconsistent with the grammar that produced the tree, not that an
// alternative handler should be tried.
type NoHandlerError struct {
	Kind syntax.NodeKind
}

func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("no formatting handler registered for node kind %q", e.Kind)
}

// NoCombinatorError is returned when a combinator identity has no
// registered handler constructor.
type NoCombinatorError struct {
	ID CombinatorID
}

func (e *NoCombinatorError) Error() string {
	return fmt.Sprintf("no formatting combinator registered for %q", e.ID)
}

// DuplicateHandlerError is returned by registration when a different
// handler is already registered for the same key. Re-registering the
// identical handler is a no-op.
type DuplicateHandlerError struct {
	Kind       syntax.NodeKind
	Combinator CombinatorID
}

func (e *DuplicateHandlerError) Error() string {
	if e.Combinator != "" {
		return fmt.Sprintf("conflicting handler registration for combinator %q", e.Combinator)
	}
	return fmt.Sprintf("conflicting handler registration for node kind %q", e.Kind)
}

// MalformedAtomError is returned when a node that must wrap a single
// atom does not. Fatal: the tree contradicts its own kind.
type MalformedAtomError struct {
	Kind syntax.NodeKind
	Node syntax.Node
}

func (e *MalformedAtomError) Error() string {
	return fmt.Sprintf("node kind %q must wrap a single atom, found %v", e.Kind, e.Node)
}

// AmbiguousChoiceError is returned when the alternatives stored in a
// choice node do not all format to the same text.
//
// This is fatal: a grammar whose alternatives format differently is not
// safe to format by keeping an arbitrary alternative, and the mismatch
// should surface while the grammar rule is being developed.
type AmbiguousChoiceError struct {
	// Alternatives holds the flattened rendering of every alternative,
	// in child order.
	Alternatives []string
	// Diff is a unified diff of the first divergent rendering against
	// the first alternative.
	Diff string
}

func (e *AmbiguousChoiceError) Error() string {
	return fmt.Sprintf("choice alternatives format differently:\n%s", e.Diff)
}

// UnmatchedError is returned by the top-level driver when a backtrack
// signal goes unrecovered: no handler matched the tree at all.
type UnmatchedError struct {
	// Category is the entry point the tree was formatted as, "term" or
	// "command".
	Category string
	Kind     syntax.NodeKind

	cause error
}

func (e *UnmatchedError) Error() string {
	return fmt.Sprintf("no %s handler matched node kind %q: %v", e.Category, e.Kind, e.cause)
}

func (e *UnmatchedError) Unwrap() error {
	return e.cause
}
