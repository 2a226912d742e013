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

package doc

import (
	"math"
	"strings"

	"github.com/rivo/uniseg"
)

// Options specifies configuration for [Render].
type Options struct {
	// The maximum number of columns to render before a [Fill] group is
	// broken. A value of zero implies an infinite width.
	MaxWidth int
}

// WithDefaults replaces any unset (read: zero value) fields of an Options
// which specify a default value with that default value.
func (o Options) WithDefaults() Options {
	if o.MaxWidth == 0 {
		o.MaxWidth = math.MaxInt
	}
	return o
}

// frame is one pending document on the render stack, together with the
// indentation and flatness of its enclosing context.
type frame struct {
	indent int
	flat   bool
	d      Doc
}

// Render renders d to text.
//
// The top level is treated as broken: a [Line] outside any fitting [Fill]
// group always renders as a newline.
func Render(options Options, d Doc) string {
	options = options.WithDefaults()

	var out strings.Builder
	column := 0
	work := []frame{{d: orEmpty(d)}}

	for len(work) > 0 {
		f := work[len(work)-1]
		work = work[:len(work)-1]

		switch d := f.d.(type) {
		case empty:

		case text:
			out.WriteString(d.s)
			column = advance(column, d.s)

		case line:
			if f.flat {
				out.WriteByte(' ')
				column++
			} else {
				out.WriteByte('\n')
				for n := 0; n < f.indent; n++ {
					out.WriteByte(' ')
				}
				column = f.indent
			}

		case concat:
			work = append(work,
				frame{indent: f.indent, flat: f.flat, d: d.right},
				frame{indent: f.indent, flat: f.flat, d: d.left})

		case nest:
			work = append(work, frame{indent: f.indent + d.by, flat: f.flat, d: d.d})

		case fill:
			flat := f.flat || fits(options.MaxWidth-column, frame{indent: f.indent, flat: true, d: d.d}, work)
			work = append(work, frame{indent: f.indent, flat: flat, d: d.d})
		}
	}

	return out.String()
}

// Flatten renders d with every [Line] collapsed to a single space,
// regardless of width.
//
// This is the canonical one-line reading of a document, used to compare
// documents for textual equality.
func Flatten(d Doc) string {
	var out strings.Builder
	work := []frame{{flat: true, d: orEmpty(d)}}

	for len(work) > 0 {
		f := work[len(work)-1]
		work = work[:len(work)-1]

		switch d := f.d.(type) {
		case empty:
		case text:
			out.WriteString(d.s)
		case line:
			out.WriteByte(' ')
		case concat:
			work = append(work, frame{flat: true, d: d.right}, frame{flat: true, d: d.left})
		case nest:
			work = append(work, frame{flat: true, d: d.d})
		case fill:
			work = append(work, frame{flat: true, d: d.d})
		}
	}

	return out.String()
}

// fits reports whether rendering first and then the remaining work stack
// reaches a real line break (or runs out of documents) within the given
// column budget.
func fits(budget int, first frame, rest []frame) bool {
	work := make([]frame, len(rest)+1)
	copy(work, rest)
	work[len(rest)] = first

	for len(work) > 0 && budget >= 0 {
		f := work[len(work)-1]
		work = work[:len(work)-1]

		switch d := f.d.(type) {
		case empty:

		case text:
			budget -= width(d.s)

		case line:
			if !f.flat {
				// A real break ends the current line, so everything
				// before it fit.
				return true
			}
			budget--

		case concat:
			work = append(work,
				frame{indent: f.indent, flat: f.flat, d: d.right},
				frame{indent: f.indent, flat: f.flat, d: d.left})

		case nest:
			work = append(work, frame{indent: f.indent + d.by, flat: f.flat, d: d.d})

		case fill:
			// A nested group being measured for a flat parent must
			// itself be flat.
			work = append(work, frame{indent: f.indent, flat: true, d: d.d})
		}
	}

	return budget >= 0
}

// advance returns the column after writing s at the given column.
func advance(column int, s string) int {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return width(s[i+1:])
	}
	return column + width(s)
}

// width returns the rendered width of text that contains no newlines.
func width(s string) int {
	return uniseg.StringWidth(s)
}
