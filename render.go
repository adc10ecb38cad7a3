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
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/petermattis/goid"
)

// renderGuard prevents two goroutines from rendering the same Diagnostic
// concurrently (spec.md §5: "Two concurrent renderings of the same
// diagnostic object are not supported"). Rendering itself does not mutate
// the Diagnostic (label depths live in a map local to each Render call, see
// assignDepths), so this is a belt-and-suspenders check that promotes that
// prose constraint into a checked invariant, grounded on the teacher's use
// of petermattis/goid elsewhere in protocompile for reentrancy assertions.
var renderGuard sync.Map // *Diagnostic -> goroutine id currently rendering it

func acquireRenderGuard(d *Diagnostic) func() {
	gid := goid.Get()
	if prev, busy := renderGuard.LoadOrStore(d, gid); busy && prev != gid {
		panic("diagspan: concurrent Render of the same Diagnostic from two goroutines")
	}
	return func() { renderGuard.Delete(d) }
}

// Render lays out and renders d into its final string form, per the
// pipeline in spec.md §2 and the assembly rules in §4.10.
func (d *Diagnostic) Render() string {
	release := acquireRenderGuard(d)
	defer release()

	containers := collectContainers(d)

	greatestLine := 0
	for _, c := range containers {
		for _, g := range c.groups {
			if n := g.lines[len(g.lines)-1]; n > greatestLine {
				greatestLine = n
			}
		}
	}
	lineNoWidth := len(strconv.Itoa(greatestLine))
	if lineNoWidth < 2 {
		lineNoWidth = 2
	}

	var out strings.Builder

	if d.Header != nil {
		writeHeader(&out, d.Severity, d.Header)
	}

	for ci, container := range containers {
		renderContainer(&out, d, container, ci == 0, lineNoWidth)
	}

	writeNotes(&out, d.Notes, lineNoWidth)

	return strings.TrimRight(out.String(), "\n")
}

// writeHeader emits the optional leading line: `{severity}[{code}]:
// {message}` (spec.md §4.10 item 1). The `{severity}[{code}]` tag and the
// message are each drawn in the bold severity color; the message gets no
// separate color of its own, and the `: ` separator is left unstyled.
func writeHeader(out *strings.Builder, sev Severity, h *Header) {
	tag := sev.String()
	if h.Code != "" {
		tag = fmt.Sprintf("%s[%s]", tag, h.Code)
	}
	bold := boldSeverityColor(sev)
	fmt.Fprintf(out, "%s: %s\n", bold(tag), bold(h.Message))
}

// renderContainer lays out one file's worth of line groups and writes
// them to out, including its file-base header, gap markers between
// non-adjacent groups, and per-line gutter/body assembly.
func renderContainer(out *strings.Builder, d *Diagnostic, container *lineGroupContainer, first bool, lineNoWidth int) {
	f := container.file
	overwrite := "├─"
	if first {
		overwrite = "┌─"
	}

	firstLine := container.groups[0].lines[0]
	lastGroup := container.groups[len(container.groups)-1]
	lastLine := lastGroup.lines[len(lastGroup.lines)-1]

	accent := accentColor()
	fmt.Fprintf(out, "%s%s %s:%d:%d\n", strings.Repeat(" ", lineNoWidth), accent(overwrite), f.Name(), firstLine, lastLine)

	multis := multilineLabels(d, f)
	depths, maxDepth := assignDepths(multis)

	// Tracks multi-line labels currently open, across every group in this
	// container (not just within one): a label can start in one group and
	// end in a later, non-consecutive one, and must still see `│` rendered
	// on every group's lines in between (spec.md §4.8's label_stack is
	// container-scoped, not per-group).
	open := map[*Label]bool{}

	lastEmitted := -1
	for _, group := range container.groups {
		lines := layoutGroup(d, f, group, depths, maxDepth, open)
		for _, rl := range lines {
			if rl.isCode && lastEmitted != -1 && rl.lineNumber-lastEmitted > 1 {
				writeGapMarker(out, lineNoWidth, maxDepth)
			}
			writeLine(out, rl, lineNoWidth, maxDepth)
			if rl.isCode {
				lastEmitted = rl.lineNumber
			}
		}
	}
}

// writeGapMarker emits the dedicated ellipsis row for a non-consecutive
// jump in rendered line numbers (spec.md §4.4, §4.10 item 3): empty line
// number, empty body, `·` overriding the vertical gutter.
func writeGapMarker(out *strings.Builder, lineNoWidth, maxDepth int) {
	accent := accentColor()
	width := gutterWidth(maxDepth)
	fmt.Fprintf(out, "%s %s\n", strings.Repeat(" ", lineNoWidth), accent("·"+strings.Repeat(" ", width-1)))
}

// writeLine renders one assembled row: the line-number gutter (or blank
// for sub-lines), the multi-line prefix, and the body.
func writeLine(out *strings.Builder, rl *renderedLine, lineNoWidth, maxDepth int) {
	accent := accentColor()
	var lineNo string
	if rl.isCode {
		lineNo = fmt.Sprintf("%*d", lineNoWidth, rl.lineNumber)
	} else {
		lineNo = strings.Repeat(" ", lineNoWidth)
	}

	prefix := renderPrefix(rl, gutterWidth(maxDepth))
	body := rl.body
	if rl.isCode {
		body = applyColorMods(rl.rawBody, rl.bodyMods)
	}

	fmt.Fprintf(out, "%s %s%s\n", accent(lineNo), prefix, body)
}

// layoutGroup lays out every code line and its sub-lines for one line
// group, including multi-line start/middle/end brackets. open tracks
// multi-line labels already started (possibly in an earlier group of the
// same container); it is mutated in place so state survives across groups.
func layoutGroup(d *Diagnostic, f *File, group lineGroup, depths map[*Label]int, maxDepth int, open map[*Label]bool) []*renderedLine {
	firstLine, lastLine := group.lines[0], group.lines[len(group.lines)-1]
	groupRange := f.GetLineRange(firstLine, lastLine)
	norm := f.GetNormalizedContentForRange(groupRange)
	chunks := strings.SplitAfter(norm.Text, "\n")
	if len(chunks) > 0 && chunks[len(chunks)-1] == "" {
		chunks = chunks[:len(chunks)-1]
	}

	var out []*renderedLine

	for idx, n := range group.lines {
		raw := chunks[idx]
		raw = strings.TrimSuffix(raw, "\n")

		line := &renderedLine{lineNumber: n, isCode: true, rawBody: raw}
		line.bodyMods = append(line.bodyMods, colorMod{
			start: 1, end: len([]rune(raw)),
			style:    []StyleFn{codeColor()},
			priority: priorityBase,
		})

		lineRange := f.GetRangeForLine(n)
		items := itemsOnLine(d, f, lineRange)

		for _, it := range items {
			if it.isLabel {
				continue
			}
			s, e, ok := toRelative(f, it.color.Range.Range, n, it.color.Range.ShouldBeTrimmed, norm.Indent, norm.MinIndent)
			if !ok {
				continue
			}
			line.bodyMods = append(line.bodyMods, colorMod{
				start: s, end: e, style: it.color.Style, priority: priorityUser,
			})
		}

		singleLabels := singleLineLabels(items, lineRange)
		subLines, codeMods := renderSingleLineLabels(d.Severity, f, n, singleLabels, norm.Indent, norm.MinIndent)
		line.bodyMods = append(line.bodyMods, codeMods...)

		out = append(out, line)
		out = append(out, subLines...)

		// Multi-line starts on this line.
		for _, l := range multilineLabels(d, f) {
			start, end := labelLines(l)
			if start != n {
				continue
			}
			depth := depths[l]
			relStart, _, ok := toRelative(f, l.Range.Range, n, l.Range.ShouldBeTrimmed, norm.Indent, norm.MinIndent)
			if !ok {
				relStart = 1
			}
			exclusive := relStart == 1 && countStartingAt(multilineLabels(d, f), n, f) == 1
			if sub := renderMultilineStart(line, d.Severity, l, depth, maxDepth, relStart, exclusive); sub != nil {
				out = append(out, sub)
			}
			if end != n {
				open[l] = true
			}
		}

		// Middles: labels open from an earlier line, not ending here.
		for l := range open {
			_, end := labelLines(l)
			if end == n {
				continue
			}
			renderMultilineMiddle(line, d.Severity, l, depths[l])
		}

		// Ends: labels whose span closes on this line (and didn't start
		// here too, which is handled as a same-line start/end — treated
		// as a start above with no open-tracking needed). Collected and
		// sorted by depth before emitting, rather than ranged over `open`
		// directly, since Go's map iteration order is randomized and two
		// labels ending on the same line would otherwise emit their `╰`
		// rows in a different order on every render (spec.md §8 invariant
		// 1, Determinism).
		var ending []*Label
		for l := range open {
			_, end := labelLines(l)
			if end == n {
				ending = append(ending, l)
			}
		}
		sort.Slice(ending, func(i, j int) bool { return depths[ending[i]] < depths[ending[j]] })

		for _, l := range ending {
			depth := depths[l]
			// The end line's own code row still carries the `│` connector
			// at this label's depth (spec.md §4.8's bracket-completeness
			// invariant: every row from `╭` to `╰`, inclusive of the `╰`
			// row's own code line, carries `│` at column depth); only the
			// dedicated trailing row gets the `╰` bracket itself.
			renderMultilineMiddle(line, d.Severity, l, depth)

			_, relEnd, ok := toRelative(f, l.Range.Range, n, l.Range.ShouldBeTrimmed, norm.Indent, norm.MinIndent)
			if !ok {
				relEnd = 1
			}
			relStart, _, _ := toRelative(f, l.Range.Range, n, l.Range.ShouldBeTrimmed, norm.Indent, norm.MinIndent)
			out = append(out, renderMultilineEnd(d.Severity, l, depth, maxDepth, relStart, relEnd, norm.MinIndent)...)
			delete(open, l)
		}
	}

	return out
}

// countStartingAt reports how many multi-line labels anchored to f start
// on line n, at any column, used to decide whether a `╭` can be drawn
// directly on the code line: that happens only when the label starts at
// the body's first column and this count is 1.
func countStartingAt(labels []*Label, n int, f *File) int {
	count := 0
	for _, l := range labels {
		start, _ := labelLines(l)
		if start == n {
			count++
		}
	}
	return count
}

// writeNotes emits the trailing note footer (spec.md §4.10 item 5).
func writeNotes(out *strings.Builder, notes []string, lineNoWidth int) {
	accent := accentColor()
	pad := strings.Repeat(" ", lineNoWidth)
	for _, note := range notes {
		fmt.Fprintf(out, "%s %s %s\n", pad, accent("="), note)
	}
}

// CatchICE recovers a panic raised during fn (typically a Render call)
// and turns it into a Bug-severity Diagnostic instead of propagating the
// panic, for callers that embed rendering inside a larger tool and would
// rather surface an internal-compiler-error diagnostic than crash.
//
// Grounded on the teacher's Report.CatchICE (experimental/report/report.go).
func CatchICE(fn func()) (d *Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			d = NewDiagnostic(Bug).SetHeader("", fmt.Sprintf("internal error: %v", r))
		}
	}()
	fn()
	return nil
}
