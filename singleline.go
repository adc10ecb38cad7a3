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

// charCell is one position of a sub-line body, built up character by
// character and only converted to a string at the end. Per-character
// styling (rather than a segment model) is deliberate: spec.md's Design
// Notes call out that priority merging, and the layered overwrite this
// file performs, both operate at codepoint granularity.
type charCell struct {
	r     rune
	style StyleFn
	set   bool
}

// charLine is a mutable row of charCells, used while stacking multiple
// single-line labels' underlines and connectors on top of one another.
type charLine []charCell

func (cl *charLine) ensure(n int) {
	for len(*cl) < n {
		*cl = append(*cl, charCell{r: ' '})
	}
}

// setRun writes r in style across columns [from, to] (1-based, inclusive).
func (cl *charLine) setRun(from, to int, r rune, style StyleFn) {
	cl.ensure(to)
	for i := from; i <= to; i++ {
		(*cl)[i-1] = charCell{r: r, style: style, set: true}
	}
}

// setText writes s starting at column from (1-based), one rune per
// column, in style.
func (cl *charLine) setText(from int, s string, style StyleFn) {
	col := from
	for _, r := range s {
		cl.ensure(col)
		(*cl)[col-1] = charCell{r: r, style: style, set: true}
		col++
	}
}

// replaceableAt reports whether column col (1-based) currently holds a
// replaceable character (space, unset, `-`, or `│`), per spec.md §4.8's
// replaceable-characters table, reused here for sub-line connectors.
func (cl *charLine) replaceableAt(col int) bool {
	if col-1 >= len(*cl) {
		return true
	}
	c := (*cl)[col-1]
	if !c.set {
		return true
	}
	switch c.r {
	case ' ', '-', '│':
		return true
	default:
		return false
	}
}

// setIfReplaceable writes r at col only if the current occupant is
// replaceable.
func (cl *charLine) setIfReplaceable(col int, r rune, style StyleFn) {
	if cl.replaceableAt(col) {
		cl.ensure(col)
		(*cl)[col-1] = charCell{r: r, style: style, set: true}
	}
}

// render converts the row into a string, wrapping each set codepoint
// individually in its style function, and trims trailing blank columns.
func (cl charLine) render() string {
	end := len(cl)
	for end > 0 && (!cl[end-1].set || cl[end-1].r == ' ') {
		end--
	}
	var b strings.Builder
	for i := 0; i < end; i++ {
		c := cl[i]
		s := string(c.r)
		if c.set && c.style != nil {
			s = c.style(s)
		}
		b.WriteString(s)
	}
	return b.String()
}

// renderSingleLineLabels lays out every label that fits entirely within
// lineNumber's range, per spec.md §4.7. Returns the sub-lines to emit
// directly under the code line and the color modifications to apply to
// the code line's own body (priority 30 for primary labels, 29 for
// secondary labels).
func renderSingleLineLabels(sev Severity, file *File, lineNumber int, labels []*Label, indent map[int]int, minIndent int) ([]*renderedLine, []colorMod) {
	if len(labels) == 0 {
		return nil, nil
	}

	l := len(labels)
	var rows []charLine
	var codeMods []colorMod

	for _, label := range labels {
		relStart, relEnd, ok := toRelative(file, label.Range.Range, lineNumber, label.Range.ShouldBeTrimmed, indent, minIndent)
		if !ok {
			continue
		}
		length := relEnd - relStart + 1
		if length < 1 {
			length = 1
		}
		color := severityColor(sev)
		if label.Style != Primary {
			color = secondaryColor()
		}
		marker := underlineChar(label)

		if label.Style == Primary {
			codeMods = append(codeMods, colorMod{
				start: relStart, end: relEnd,
				style:    []StyleFn{color},
				priority: priorityPrimaryUnderline,
			})
		} else {
			codeMods = append(codeMods, colorMod{
				start: relStart, end: relEnd,
				style:    []StyleFn{color},
				priority: prioritySecondaryUnderline,
			})
		}

		contentLines := strings.Split(label.Content, "\n")

		if l == 1 {
			var first charLine
			first.setRun(relStart, relEnd, marker, color)
			if len(contentLines) > 0 {
				first.setText(relStart+length+1, contentLines[0], color)
			}
			rows = append(rows, first)

			contIndent := relStart + length + 1
			for _, c := range contentLines[1:] {
				var row charLine
				row.setText(contIndent, c, color)
				rows = append(rows, row)
			}
			continue
		}

		// L >= 2: underline-only row, then a spacer, then vertical
		// connectors through every row already below the code line (i.e.
		// from labels processed earlier — not this label's own two new
		// rows), then content.
		existing := len(rows)
		var underlineRow charLine
		underlineRow.setRun(relStart, relEnd, marker, color)
		rows = append(rows, underlineRow)
		rows = append(rows, charLine{})

		for i := 0; i < existing; i++ {
			rows[i].setIfReplaceable(relStart, '│', color)
		}

		contentIndent := relStart - 1
		if contentIndent < 0 {
			contentIndent = 0
		}
		var contentRow charLine
		if len(contentLines) > 0 {
			contentRow.setText(contentIndent+1, contentLines[0], color)
		}
		rows = append(rows, contentRow)
		for _, c := range contentLines[1:] {
			var row charLine
			row.setText(contentIndent+1, c, color)
			rows = append(rows, row)
		}
	}

	out := make([]*renderedLine, 0, len(rows))
	for _, r := range rows {
		out = append(out, &renderedLine{body: r.render()})
	}
	return out, codeMods
}
