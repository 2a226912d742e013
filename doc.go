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

// Package lean4rama is an extensible, syntax-directed pretty-printing
// engine: it turns syntax trees produced by a grammar-based parser back
// into layout documents that render as readable source text, staying in
// lock-step with a grammar that syntax extensions grow at load time.
//
// The sub-packages are the layers of that pipeline:
//
//   - syntax holds the immutable tree and the traversal cursor.
//   - token holds the token table and the maximal-munch tokenizer the
//     formatter shares with the parser, used here to decide where
//     whitespace is semantically required.
//   - format is the engine: handler registry, right-to-left traversal,
//     backtracking, and token emission.
//   - doc is the layout document the engine produces, plus a renderer.
//
// This root package adds [Batch], a driver that formats many trees in
// parallel over one shared read-only registry.
package lean4rama
