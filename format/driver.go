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

	"github.com/pramaraju96/lean4rama/doc"
	"github.com/pramaraju96/lean4rama/syntax"
)

// Term formats a syntax tree rooted at a term node.
//
// On success the returned document is the whole tree's layout, wrapped
// in a top-level fill group. On failure nothing partial is returned: an
// unrecovered backtrack becomes an [*UnmatchedError], and registry or
// shape inconsistencies surface as their own fatal errors.
func Term(opts Options, root syntax.Node) (doc.Doc, error) {
	return run(opts, root, "term", dispatch)
}

// Command formats a syntax tree rooted at a command node.
func Command(opts Options, root syntax.Node) (doc.Doc, error) {
	return run(opts, root, "command", dispatch)
}

// Format runs an explicit handler over a whole tree. [Term] and
// [Command] are this with by-kind dispatch at the root.
func Format(opts Options, root syntax.Node, h Handler) (doc.Doc, error) {
	return run(opts, root, "term", h)
}

// dispatch is the root handler for the public entry points: plain
// by-kind dispatch on whatever the root is.
func dispatch(f *Formatter) error {
	return f.Visit()
}

func run(opts Options, root syntax.Node, category string, h Handler) (doc.Doc, error) {
	if opts.Table == nil {
		panic("lean4rama/format: Options.Table is required")
	}
	opts = opts.withDefaults()

	f := newFormatter(opts, root)
	if err := f.ConcatAll(h); err != nil {
		if errors.Is(err, ErrBacktrack) {
			return nil, &UnmatchedError{Category: category, Kind: syntax.KindOf(root), cause: err}
		}
		return nil, err
	}

	if len(f.stack) != 1 {
		// ConcatAll leaves exactly one fragment; anything else means a
		// handler broke the stack discipline.
		panic(fmt.Sprintf("lean4rama/format: run finished with %d fragments on the stack", len(f.stack)))
	}
	return doc.Fill(f.stack[0]), nil
}
