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

import (
	"sort"
	"strings"
)

// isMultiline reports whether a label's range crosses a line boundary in
// its File.
func isMultiline(l *Label) bool {
	f := l.Range.File()
	if f == nil {
		return false
	}
	startLine, _ := f.PositionToLine(l.Range.Start)
	endLine, _ := f.PositionToLine(l.Range.End)
	return startLine != endLine
}

// multilineLabels returns every multi-line label in d anchored to file.
func multilineLabels(d *Diagnostic, file *File) []*Label {
	var out []*Label
	for i := range d.Labels {
		l := &d.Labels[i]
		if l.Range.File() == file && isMultiline(l) {
			out = append(out, l)
		}
	}
	return out
}

// labelLines returns the first and last line number a label's range
// touches in its File.
func labelLines(l *Label) (start, end int) {
	f := l.Range.File()
	start, _ = f.PositionToLine(l.Range.Start)
	end, _ = f.PositionToLine(l.Range.End)
	return start, end
}

// assignDepths implements spec.md §4.8's depth assignment: each multi-line
// label acquires a depth equal to twice its 1-based index within the
// transitive closure of overlapping multi-line labels it belongs to,
// ordered by start ascending (ties by start+end descending). Depths are
// stable across an entire line group container, so gutter columns line up
// across every line group of the same file.
func assignDepths(labels []*Label) (depths map[*Label]int, maxDepth int) {
	depths = make(map[*Label]int, len(labels))
	assigned := make(map[*Label]bool, len(labels))

	overlaps := func(a, b *Label) bool {
		if a == b {
			return true
		}
		aStart, aEnd := labelLines(a)
		bStart, bEnd := labelLines(b)
		aRange := Range{Start: uint32(aStart), End: uint32(aEnd)}
		bRange := Range{Start: uint32(bStart), End: uint32(bEnd)}
		_, ok := aRange.LooselyFitsIn(bRange)
		return ok
	}

	for _, seed := range labels {
		if assigned[seed] {
			continue
		}

		// Transitive closure via BFS over the overlap predicate.
		closure := []*Label{seed}
		inClosure := map[*Label]bool{seed: true}
		for i := 0; i < len(closure); i++ {
			cur := closure[i]
			for _, cand := range labels {
				if inClosure[cand] {
					continue
				}
				if overlaps(cur, cand) {
					inClosure[cand] = true
					closure = append(closure, cand)
				}
			}
		}

		sort.SliceStable(closure, func(i, j int) bool {
			si, ei := labelLines(closure[i])
			sj, ej := labelLines(closure[j])
			if si != sj {
				return si < sj
			}
			return si+ei > sj+ej
		})

		for idx, l := range closure {
			d := (idx + 1) * 2
			depths[l] = d
			assigned[l] = true
			if d > maxDepth {
				maxDepth = d
			}
		}
	}
	return depths, maxDepth
}

// pointerChar returns the label's pointer marker: `^` for Primary, `'` for
// Secondary (spec.md §4.8's start/end rendering).
func pointerChar(l *Label) rune {
	if l.Style == Primary {
		return '^'
	}
	return '\''
}

// underlineChar returns the label's single-line underline marker: `^` for
// Primary, `-` for Secondary (spec.md §4.7/§3).
func underlineChar(l *Label) rune {
	if l.Style == Primary {
		return '^'
	}
	return '-'
}

// multilineColor resolves the style function for a label's gutter marks,
// honoring severity for Primary labels and the fixed secondary color
// otherwise.
func multilineColor(sev Severity, l *Label) StyleFn {
	if l.Style == Primary {
		return severityColor(sev)
	}
	return secondaryColor()
}

// renderMultilineStart renders the `╭` bracket for l on the line
// containing its start (spec.md §4.8 "Start rendering").
//
// exclusiveStarter reports whether l starts at the very first column of
// codeLine's body and is the only multi-line label starting anywhere on
// that line — the case that is drawn directly on the code line's own
// gutter, with no extra sub-line. A second multi-line label starting
// elsewhere on the same line makes it false.
func renderMultilineStart(codeLine *renderedLine, sev Severity, l *Label, depth, maxDepth, relStart int, exclusiveStarter bool) *renderedLine {
	color := multilineColor(sev, l)

	if exclusiveStarter {
		codeLine.setPrefix(depth, '╭', color, true)
		return nil
	}

	sub := &renderedLine{}
	sub.setPrefix(depth, '╭', color, true)
	sub.padPrefix(depth, maxDepth, '─', color)

	var body strings.Builder
	for i := 1; i < relStart; i++ {
		body.WriteRune('─')
	}
	body.WriteRune(pointerChar(l))
	sub.body = color(body.String())
	return sub
}

// renderMultilineMiddle sets the `│` gutter connector for l on an
// intervening line (spec.md §4.8 "Middle lines").
func renderMultilineMiddle(line *renderedLine, sev Severity, l *Label, depth int) {
	line.setPrefix(depth, '│', multilineColor(sev, l), false)
}

// renderMultilineEnd renders the `╰` bracket and trailing message for l on
// the line after its span ends (spec.md §4.8 "End rendering").
func renderMultilineEnd(sev Severity, l *Label, depth, maxDepth, relStart, relEnd, minIndent int) []*renderedLine {
	color := multilineColor(sev, l)

	first := &renderedLine{}
	first.setPrefix(depth, '╰', color, true)
	first.padPrefix(depth, maxDepth, '─', color)

	diff := relEnd - relStart - minIndent
	if diff < 0 {
		diff = 0
	}

	lines := strings.Split(l.Content, "\n")

	var body strings.Builder
	for i := 0; i < diff; i++ {
		body.WriteRune('─')
	}
	body.WriteRune(pointerChar(l))
	if len(lines) > 0 && lines[0] != "" {
		body.WriteByte(' ')
		body.WriteString(lines[0])
	}
	first.body = color(body.String())

	out := []*renderedLine{first}
	indent := strings.Repeat(" ", diff+2)
	for _, cont := range lines[1:] {
		out = append(out, &renderedLine{body: indent + cont})
	}
	return out
}
