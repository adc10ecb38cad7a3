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
	"strings"

	"github.com/tamarind-lang/diagspan/internal/unicodex"
)

// File is named source text, decomposed into per-line Ranges over content
// that has already had its tabs expanded to four spaces.
//
// Files are immutable once constructed and are safe to share across
// concurrent renderings of distinct Diagnostics (spec.md §5).
type File struct {
	name    string
	content string
	lines   []Range // 0-indexed slice; lines[n-1] is line n.

	// tabIndented[i] records whether line i+1's leading whitespace run, in
	// the ORIGINAL (pre-expansion) text, contained a tab. Tabs are expanded
	// to spaces before content is stored, so by the time normalization
	// inspects a line's indentation every run looks like plain spaces;
	// this is the only place the distinction between "really typed with
	// tabs" and "really typed with spaces" survives, and is what lets
	// GetNormalizedContentForRange detect mixed indentation at all.
	tabIndented []bool
}

// NewFile builds a File from raw bytes, expanding tabs and splitting into
// line Ranges. Each line's Range includes its trailing newline, except
// possibly the last line of the file.
func NewFile(name string, content []byte) *File {
	original := string(content)
	text := unicodex.ExpandTabs(original)

	f := &File{name: name, content: text}

	origLines := strings.SplitAfter(original, "\n")
	if len(origLines) > 0 && origLines[len(origLines)-1] == "" {
		origLines = origLines[:len(origLines)-1]
	}
	for _, ol := range origLines {
		tab := false
		for _, r := range ol {
			if r == '\t' {
				tab = true
				break
			}
			if r != ' ' {
				break
			}
		}
		f.tabIndented = append(f.tabIndented, tab)
	}

	var start uint32 = 1
	for {
		idx := strings.IndexByte(text, '\n')
		if idx == -1 {
			if text != "" {
				end := start + uint32(unicodex.Len(text)) - 1
				f.lines = append(f.lines, Range{Start: start, End: end})
			}
			break
		}

		line := text[:idx+1]
		end := start + uint32(unicodex.Len(line)) - 1
		f.lines = append(f.lines, Range{Start: start, End: end})
		start = end + 1
		text = text[idx+1:]
	}
	return f
}

// Name returns this file's display name.
func (f *File) Name() string {
	return f.name
}

// Content returns the file's normalized (tab-expanded) text.
func (f *File) Content() string {
	return f.content
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int {
	return len(f.lines)
}

// PositionToLine returns the 1-based line number containing the given
// 1-based character position, along with that line's Range.
func (f *File) PositionToLine(pos uint32) (line int, r Range) {
	for i, lr := range f.lines {
		if pos >= lr.Start && pos <= lr.End {
			return i + 1, lr
		}
	}
	panic(fmt.Sprintf("diagspan: position %d is out of bounds of file %q", pos, f.name))
}

// GetRangeForLine returns the Range of the given 1-based line number.
//
// Fatal per spec.md §7 (InvalidLineNumber): an out-of-bounds line number is
// a caller bug, not a recoverable rendering condition.
func (f *File) GetRangeForLine(n int) Range {
	if n < 1 || n > len(f.lines) {
		panic("diagspan: line is out of bounds of the file")
	}
	return f.lines[n-1]
}

// GetLineRange returns the Range spanning lines a through b, inclusive.
func (f *File) GetLineRange(a, b int) Range {
	return f.GetRangeForLine(a).Merge(f.GetRangeForLine(b))
}

// Range is a factory for a FileRange anchored to this file.
//
// Fatal per spec.md §7 (InvalidRangeBounds) if the bounds fall outside the
// file's content.
func (f *File) Range(start, end uint32) FileRange {
	if start < 1 || end > uint32(unicodex.Len(f.content)) || start > end {
		panic("diagspan: range bounds are out of bounds of the file")
	}
	return FileRange{Range: Range{Start: start, End: end}, file: f}
}

// GetContentForRange returns the substring of the file's content covered by
// r, in codepoints.
func (f *File) GetContentForRange(r Range) string {
	return unicodex.Sub(f.content, int(r.Start), int(r.End))
}

// GetLinesInRange returns every line number whose Range loosely overlaps r.
func (f *File) GetLinesInRange(r Range) []int {
	var out []int
	for i, lr := range f.lines {
		if _, ok := lr.LooselyFitsIn(r); ok {
			out = append(out, i+1)
		}
	}
	return out
}

// NormalizedSnippet is the result of de-indenting a range of a File's
// content (spec.md §4.2.5).
type NormalizedSnippet struct {
	// The de-indented text, covering every line touched by the requested
	// range in full.
	Text string
	// Maps each covered line number to its original (pre-trim) indent
	// width, in codepoints.
	Indent map[int]int
	// The minimum indent subtracted from every non-blank covered line.
	MinIndent int
}

// GetNormalizedContentForRange expands r to whole lines, measures each
// line's leading indentation, verifies the indent characters are
// consistent, strips the minimum indentation from every non-blank line, and returns
// the result along with enough bookkeeping to convert other ranges on
// these lines into relative columns later (spec.md §4.2.5).
//
// Fatal per spec.md §7 (MixedIndentation) if a line's leading whitespace
// mixes space and tab-after-expansion runs inconsistently with the rest of
// the covered lines.
func (f *File) GetNormalizedContentForRange(r Range) NormalizedSnippet {
	lineNumbers := f.GetLinesInRange(r)
	if len(lineNumbers) == 0 {
		return NormalizedSnippet{Indent: map[int]int{}}
	}

	indent := make(map[int]int, len(lineNumbers))
	minIndent := -1
	establishedTabs := -1 // -1 = not yet established; 0 = spaces; 1 = tabs

	for _, n := range lineNumbers {
		lr := f.GetRangeForLine(n)
		text := f.GetContentForRange(lr)
		if unicodex.IsBlank(text) {
			continue
		}

		width := 0
		for width < len(text) && text[width] == ' ' {
			width++
		}

		if width > 0 {
			tabs := 0
			if n-1 < len(f.tabIndented) && f.tabIndented[n-1] {
				tabs = 1
			}
			if establishedTabs == -1 {
				establishedTabs = tabs
			} else if establishedTabs != tabs {
				panic(fmt.Sprintf("diagspan: mixed indentation found in file %s at line %d", f.name, n))
			}
		}

		indent[n] = width
		if minIndent == -1 || width < minIndent {
			minIndent = width
		}
	}
	if minIndent == -1 {
		minIndent = 0
	}

	var out strings.Builder
	for _, n := range lineNumbers {
		lr := f.GetRangeForLine(n)
		text := f.GetContentForRange(lr)
		// Blank lines have no entry in indent, so they are left untouched
		// (and keep their newline).
		strip := minIndent
		if strip > indent[n] {
			strip = indent[n]
		}
		out.WriteString(text[strip:])
	}

	return NormalizedSnippet{
		Text:      out.String(),
		Indent:    indent,
		MinIndent: minIndent,
	}
}

// FileRange is a Range anchored to a specific File.
//
// The File reference is non-owning (spec.md's Design Notes §9): a FileRange
// never keeps its File alive, and never forms a cycle back into it.
type FileRange struct {
	Range

	file *File

	// ShouldBeTrimmed mirrors the spec's FileRange.trim() flag. It affects
	// only the relative-range conversion offset (toRelative, colormod.go),
	// which is used both for inline colorizations and for placing labels;
	// see the Open Question resolution in DESIGN.md.
	ShouldBeTrimmed bool
}

// File returns the File this range is anchored to.
func (fr FileRange) File() *File {
	return fr.file
}

// Path returns the name of the anchoring File, or "" if there is none.
func (fr FileRange) Path() string {
	if fr.file == nil {
		return ""
	}
	return fr.file.Name()
}

// Trim returns a copy of fr with ShouldBeTrimmed set.
func (fr FileRange) Trim() FileRange {
	fr.ShouldBeTrimmed = true
	return fr
}

// Text returns the file content covered by this range.
func (fr FileRange) Text() string {
	if fr.file == nil {
		return ""
	}
	return fr.file.GetContentForRange(fr.Range)
}
