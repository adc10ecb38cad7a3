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

func TestCollectContainersGroupsConsecutiveLines(t *testing.T) {
	f := NewFile("a.txt", []byte("one\ntwo\nthree\nfour\nfive\n"))
	d := NewDiagnostic(Error).
		AddLabel(Label{Style: Primary, Range: f.Range(1, 8), Content: "a"}).   // lines 1-2
		AddLabel(Label{Style: Primary, Range: f.Range(15, 24), Content: "b"}) // lines 4-5

	containers := collectContainers(d)
	if len(containers) != 1 {
		t.Fatalf("len(containers) = %d, want 1", len(containers))
	}
	groups := containers[0].groups
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if got := groups[0].lines; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("groups[0].lines = %v, want [1 2]", got)
	}
	if got := groups[1].lines; len(got) != 2 || got[0] != 4 || got[1] != 5 {
		t.Errorf("groups[1].lines = %v, want [4 5]", got)
	}
}

func TestCollectContainersOrdersFilesByFirstOccurrence(t *testing.T) {
	fb := NewFile("b.txt", []byte("xy\n"))
	fa := NewFile("a.txt", []byte("yz\n"))
	d := NewDiagnostic(Error).
		AddLabel(Label{Style: Primary, Range: fb.Range(1, 1), Content: "first"}).
		AddLabel(Label{Style: Primary, Range: fa.Range(2, 2), Content: "second"})

	containers := collectContainers(d)
	if len(containers) != 2 {
		t.Fatalf("len(containers) = %d, want 2", len(containers))
	}
	if containers[0].file.Name() != "b.txt" || containers[1].file.Name() != "a.txt" {
		t.Errorf("container order = [%s %s], want [b.txt a.txt] (first-occurrence order)",
			containers[0].file.Name(), containers[1].file.Name())
	}
}

func TestItemsOnLineOrdersLabelsBeforeColorsAndByStartDescending(t *testing.T) {
	f := NewFile("a.txt", []byte("abcdef\n"))
	line := f.GetRangeForLine(1)
	d := NewDiagnostic(Error).
		AddLabel(Label{Style: Primary, Range: f.Range(1, 2), Content: "early"}).
		AddLabel(Label{Style: Secondary, Range: f.Range(4, 5), Content: "late"}).
		AddColor(Color{Range: f.Range(1, 6)})

	items := itemsOnLine(d, f, line)
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	if !items[0].isLabel || !items[1].isLabel || items[2].isLabel {
		t.Fatalf("items order by kind = %+v, want [label label color]", items)
	}
	// Labels sorted by start descending: "late" (start 4) before "early" (start 1).
	if items[0].label.Content != "late" || items[1].label.Content != "early" {
		t.Errorf("label order = [%s %s], want [late early]", items[0].label.Content, items[1].label.Content)
	}
}

func TestSingleLineLabelsExcludesMultiLineSpans(t *testing.T) {
	f := NewFile("a.txt", []byte("one\ntwo\n"))
	line1 := f.GetRangeForLine(1)
	d := NewDiagnostic(Error).
		AddLabel(Label{Style: Primary, Range: f.Range(1, 2), Content: "fits"}).
		AddLabel(Label{Style: Primary, Range: f.Range(2, 6), Content: "spans"})

	items := itemsOnLine(d, f, line1)
	out := singleLineLabels(items, line1)
	if len(out) != 1 || out[0].Content != "fits" {
		t.Errorf("singleLineLabels = %v, want only the label fully on line 1", out)
	}
}
