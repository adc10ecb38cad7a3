// Copyright 2020-2024 Buf Technologies, Inc.
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

package diagspan

import "strings"

// prefixCell is one column of a rendered line's gutter (the left margin
// carrying │, ╭, ╰, ─ for multi-line brackets; spec.md's GLOSSARY entry
// "Gutter / prefix").
type prefixCell struct {
	r     rune
	style StyleFn
	set   bool
}

// isReplaceable reports whether an existing prefix cell may be upgraded by
// a later write, per spec.md §4.8's replaceable-characters table: space,
// unset, `-`, `─`, and `│` may all be upgraded; `╭`, `╰`, and content
// characters may not.
func isReplaceable(c prefixCell) bool {
	if !c.set {
		return true
	}
	switch c.r {
	case ' ', '-', '─', '│':
		return true
	default:
		return false
	}
}

// renderedLine is one row of a line group's laid-out output: either a
// numbered code line, a sub-line carrying underlines/connectors/label
// content, or a gap marker.
type renderedLine struct {
	lineNumber int  // 0 for sub-lines and gap markers
	isCode     bool // true iff this is a numbered source line
	isGap      bool // true iff this is the "·" non-consecutive-line marker

	prefix []prefixCell // gutter columns 1..maxDepth, 0-indexed here

	// For code lines: the plain (already de-indented) text, plus the color
	// modifications to resolve against it (spec.md §4.6). For sub-lines:
	// body is the final, already-styled text.
	rawBody  string
	bodyMods []colorMod
	body     string
}

// setPrefix writes r (with style) into column col (1-based) of line's
// prefix, growing the slice as needed, honoring the replaceable-characters
// rule unless force is set (used when placing ╭/╰, which always wins).
func (rl *renderedLine) setPrefix(col int, r rune, style StyleFn, force bool) {
	for len(rl.prefix) < col {
		rl.prefix = append(rl.prefix, prefixCell{})
	}
	cell := rl.prefix[col-1]
	if force || isReplaceable(cell) {
		rl.prefix[col-1] = prefixCell{r: r, style: style, set: true}
	}
}

// padPrefix fills columns from..to (1-based, inclusive) with r in style,
// honoring the replaceable-character rule (spec.md §4.8: "Horizontal
// padding...accepts the same set minus │").
func (rl *renderedLine) padPrefix(from, to int, r rune, style StyleFn) {
	for col := from; col <= to; col++ {
		for len(rl.prefix) < col {
			rl.prefix = append(rl.prefix, prefixCell{})
		}
		cell := rl.prefix[col-1]
		if !cell.set || cell.r == ' ' || cell.r == '-' || cell.r == '─' {
			rl.prefix[col-1] = prefixCell{r: r, style: style, set: true}
		}
	}
}

// gutterWidth returns the number of multi-line depth columns to render,
// which is always at least 1: column 1 is a permanently-reserved divider
// (rendered as `│` on every line, whether or not a multi-line label is
// open), and multi-line labels occupy columns 2, 4, 6... from there, per
// spec.md §4.8's depth assignment. This is the "fixed_sidebar_width" half
// of §4.9's gutter-width invariant; max_depth alone never includes it.
func gutterWidth(maxDepth int) int {
	if maxDepth < 1 {
		return 1
	}
	return maxDepth
}

// renderPrefix renders a line's gutter out to width columns (as returned
// by gutterWidth), applying internal_offset so the gutter-and-body
// boundary lines up across the whole line group (spec.md §4.9).
func renderPrefix(rl *renderedLine, width int) string {
	var b strings.Builder
	b.WriteString(accentColor()("│"))
	for col := 2; col <= width; col++ {
		if col-1 < len(rl.prefix) && rl.prefix[col-1].set {
			cell := rl.prefix[col-1]
			ch := string(cell.r)
			if cell.style != nil {
				ch = cell.style(ch)
			}
			b.WriteString(ch)
		} else {
			b.WriteByte(' ')
		}
	}
	// internal_offset: one space of breathing room between the gutter and
	// the body, on every emitted line in the group.
	b.WriteByte(' ')
	return b.String()
}
