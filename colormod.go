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

	"github.com/tamarind-lang/diagspan/internal/unicodex"
)

// Priorities for the color-modification model (spec.md §4.6). Higher wins.
const (
	priorityBase             = 0
	priorityUser             = 20
	prioritySecondaryUnderline = 29
	priorityPrimaryUnderline   = 30
)

// colorMod is one ColorModification: a relative, 1-based, inclusive column
// range within a code line's de-indented body, a list of style functions to
// apply left-to-right to each claimed character, and a priority.
type colorMod struct {
	start, end int
	style      []StyleFn
	priority   int
}

// toRelative converts an absolute FileRange into a line-relative column
// range for lineNumber's de-indented body (spec.md §4.6's
// convert_range_to_relative).
//
// Resolution of the spec's trimming Open Question (DESIGN.md): min_indent
// is subtracted exactly once. should_be_trimmed controls only whether this
// line's own original indentation is added back in — it never causes a
// second subtraction of min_indent.
func toRelative(file *File, r Range, lineNumber int, trimmed bool, indent map[int]int, minIndent int) (start, end int, ok bool) {
	lineStart := int(file.GetRangeForLine(lineNumber).Start)

	addBack := 0
	if trimmed {
		addBack = indent[lineNumber]
	}

	start = int(r.Start) - lineStart + 1 + addBack - minIndent
	end = int(r.End) - lineStart + 1 - minIndent
	if end <= 0 {
		return 0, 0, false
	}
	if start < 1 {
		start = 1
	}
	return start, end, true
}

// applyColorMods resolves a code line's accumulated modifications against
// its plain body text, per spec.md §4.6's apply_color_modifications:
// highest priority first, first-claim-wins per character index, with any
// remaining characters styled by the base (priority 0) modification(s).
func applyColorMods(body string, mods []colorMod) string {
	n := unicodex.Len(body)
	if n == 0 {
		return body
	}

	sorted := make([]colorMod, len(mods))
	copy(sorted, mods)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].priority > sorted[j].priority })

	claimed := make([]bool, n+1)
	rendered := make([]string, n+1)

	for _, m := range sorted {
		s, e := m.start, m.end
		if s < 1 {
			s = 1
		}
		if e > n {
			e = n
		}
		for idx := s; idx <= e; idx++ {
			if claimed[idx] {
				continue
			}
			ch := unicodex.Sub(body, idx, idx)
			for _, fn := range m.style {
				ch = fn(ch)
			}
			rendered[idx] = ch
			claimed[idx] = true
		}
	}

	var out strings.Builder
	for idx := 1; idx <= n; idx++ {
		if claimed[idx] {
			out.WriteString(rendered[idx])
		} else {
			out.WriteString(unicodex.Sub(body, idx, idx))
		}
	}
	return out.String()
}
