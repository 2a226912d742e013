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

package lean4rama

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/pramaraju96/lean4rama/doc"
	"github.com/pramaraju96/lean4rama/format"
	"github.com/pramaraju96/lean4rama/syntax"
)

// Batch formats many syntax trees with bounded parallelism.
//
// Formatting runs never share mutable state: each tree gets its own run,
// and all runs share the one read-only registry and token table carried
// in Options. That makes fanning the trees out across goroutines safe
// without any locking in the engine itself.
type Batch struct {
	// Options configures every run. Options.Table is required.
	Options format.Options

	// MaxParallelism caps the number of concurrent runs. If unset or
	// non-positive, min(runtime.NumCPU(), runtime.GOMAXPROCS(-1)) is
	// used.
	MaxParallelism int
}

// FormatTerms formats each tree as a term, preserving order.
//
// The first failure cancels the remaining work and is returned; no
// partial results are returned alongside an error.
func (b *Batch) FormatTerms(ctx context.Context, trees ...syntax.Node) ([]doc.Doc, error) {
	return b.formatAll(ctx, trees, format.Term)
}

// FormatCommands formats each tree as a command, preserving order.
func (b *Batch) FormatCommands(ctx context.Context, trees ...syntax.Node) ([]doc.Doc, error) {
	return b.formatAll(ctx, trees, format.Command)
}

func (b *Batch) formatAll(
	ctx context.Context,
	trees []syntax.Node,
	run func(format.Options, syntax.Node) (doc.Doc, error),
) ([]doc.Doc, error) {
	if len(trees) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := b.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		if cpus := runtime.NumCPU(); par > cpus {
			par = cpus
		}
	}

	sem := semaphore.NewWeighted(int64(par))
	results := make([]result, len(trees))
	for i, tree := range trees {
		i, tree := i, tree
		results[i].ready = make(chan struct{})
		go func() {
			defer close(results[i].ready)
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i].err = err
				return
			}
			defer sem.Release(1)

			d, err := run(b.Options, tree)
			if err != nil {
				results[i].err = err
				cancel()
				return
			}
			results[i].doc = d
		}()
	}

	docs := make([]doc.Doc, len(trees))
	var firstErr error
	for i := range results {
		<-results[i].ready
		switch err := results[i].err; {
		case err == nil:
			docs[i] = results[i].doc
		case firstErr == nil || errors.Is(firstErr, context.Canceled):
			// A formatting failure beats the cancellations it caused.
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return docs, nil
}

type result struct {
	ready chan struct{}
	doc   doc.Doc
	err   error
}
