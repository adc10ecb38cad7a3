// Package unicodex provides the codepoint-aware string primitives the
// layout engine treats as an external collaborator: length, slicing, and
// repetition, all measured in Unicode codepoints rather than bytes.
//
// Grounded on github.com/bufbuild/protocompile's internal/ext/unicodex,
// trimmed to the operations diagspan actually needs (no word-wrapping: that
// is a Non-goal of the spec this package serves).
package unicodex

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// TabWidth is the number of spaces a tab expands to during file
// normalization.
const TabWidth = 4

// Len returns the number of codepoints in s.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Sub returns the codepoints of s in the inclusive, 1-based range [i, j].
//
// If the range is empty or out of bounds, returns "".
func Sub(s string, i, j int) string {
	if i < 1 {
		i = 1
	}
	if j < i {
		return ""
	}

	start := -1
	end := len(s)
	n := 0
	for byteOff := range s {
		n++
		if n == i {
			start = byteOff
		}
		if n == j+1 {
			end = byteOff
			break
		}
	}
	if start == -1 {
		return ""
	}
	return s[start:end]
}

// Rep returns s repeated n times. Negative n is treated as zero.
func Rep(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

// IsBlank reports whether s has zero rendered terminal width once its
// surrounding whitespace (including the trailing newline) is removed — true
// for the empty string, pure whitespace, and lines made up entirely of
// zero-width combining runes.
//
// Used when computing minimum indentation (spec §4.2): a line that merely
// looks empty on a terminal should not be treated as carrying indentation.
func IsBlank(s string) bool {
	s = strings.TrimSpace(s)
	return uniseg.StringWidth(s) == 0
}

// ExpandTabs replaces every tab in s with TabWidth spaces. This is applied
// once, at File-construction time, so that every downstream position is a
// plain codepoint offset with no tabstop arithmetic required.
func ExpandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", TabWidth))
}
