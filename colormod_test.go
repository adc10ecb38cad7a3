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

import "testing"

func bracket(tag string) StyleFn {
	return func(s string) string { return tag + s + tag }
}

func TestApplyColorModsHigherPriorityWins(t *testing.T) {
	mods := []colorMod{
		{start: 1, end: 5, style: nil, priority: priorityBase},
		{start: 2, end: 3, style: []StyleFn{bracket("U")}, priority: priorityPrimaryUnderline},
	}
	got := applyColorMods("abcde", mods)
	want := "aUbUUcUde"
	if got != want {
		t.Errorf("applyColorMods = %q, want %q", got, want)
	}
}

func TestApplyColorModsFirstClaimAtEqualPriorityWins(t *testing.T) {
	mods := []colorMod{
		{start: 1, end: 3, style: []StyleFn{bracket("A")}, priority: priorityUser},
		{start: 2, end: 4, style: []StyleFn{bracket("B")}, priority: priorityUser},
	}
	got := applyColorMods("abcd", mods)
	// sort.SliceStable keeps equal-priority mods in input order, so "A"
	// claims columns 1-3 first; "B" only gets the untouched column 4.
	want := "AaAAbAAcABdB"
	if got != want {
		t.Errorf("applyColorMods = %q, want %q", got, want)
	}
}

func TestApplyColorModsEmptyBody(t *testing.T) {
	if got := applyColorMods("", []colorMod{{start: 1, end: 1, style: []StyleFn{bracket("X")}}}); got != "" {
		t.Errorf("applyColorMods(empty) = %q, want empty", got)
	}
}

func TestToRelativeBasicConversion(t *testing.T) {
	f := NewFile("a.txt", []byte("  let x = 1;\n"))
	// Column positions: "  let x = 1;" — the label covers "x" at column 7
	// (1-based, 1-indexed from the start of line 1, including its 2-space
	// indent).
	start, end, ok := toRelative(f, Range{Start: 7, End: 7}, 1, false, map[int]int{1: 2}, 2)
	if !ok {
		t.Fatal("toRelative: ok = false, want true")
	}
	// minIndent=2 is subtracted once and not added back (trimmed=false):
	// absolute column 7 becomes relative column 5 in the de-indented body
	// "let x = 1;".
	if start != 5 || end != 5 {
		t.Errorf("toRelative = (%d, %d), want (5, 5)", start, end)
	}
}

func TestToRelativeRangeEntirelyBeforeLineIsRejected(t *testing.T) {
	f := NewFile("a.txt", []byte("abc\ndef\n"))
	_, _, ok := toRelative(f, Range{Start: 1, End: 2}, 2, false, map[int]int{}, 0)
	if ok {
		t.Error("toRelative: ok = true for a range entirely on an earlier line, want false")
	}
}
