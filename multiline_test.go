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
	"testing"

	"github.com/google/go-cmp/cmp"
)

// depthsByContent re-keys an assignDepths result by each Label's Content,
// since Label pointers aren't stable test fixtures but their content is —
// this lets cmp.Diff compare the layout structure directly instead of
// comparing pointer identities.
func depthsByContent(depths map[*Label]int) map[string]int {
	out := make(map[string]int, len(depths))
	for l, d := range depths {
		out[l.Content] = d
	}
	return out
}

func TestAssignDepthsNonOverlappingLabelsShareDepthTwo(t *testing.T) {
	f := NewFile("a.txt", []byte("one\ntwo\nthree\nfour\nfive\n"))
	a := &Label{Range: f.Range(1, 8), Content: "a"}   // lines 1-2
	b := &Label{Range: f.Range(15, 24), Content: "b"} // lines 4-5

	depths, maxDepth := assignDepths([]*Label{a, b})

	want := map[string]int{"a": 2, "b": 2}
	if diff := cmp.Diff(want, depthsByContent(depths)); diff != "" {
		t.Errorf("depths mismatch (-want +got):\n%s", diff)
	}
	if maxDepth != 2 {
		t.Errorf("maxDepth = %d, want 2", maxDepth)
	}
}

func TestAssignDepthsOverlappingLabelsGetDistinctDepths(t *testing.T) {
	f := NewFile("a.txt", []byte("one\ntwo\nthree\nfour\nfive\n"))
	outer := &Label{Range: f.Range(1, 24), Content: "outer"} // lines 1-5
	inner := &Label{Range: f.Range(5, 14), Content: "inner"} // lines 2-3

	depths, maxDepth := assignDepths([]*Label{outer, inner})

	want := map[string]int{"outer": 2, "inner": 4}
	if diff := cmp.Diff(want, depthsByContent(depths)); diff != "" {
		t.Errorf("depths mismatch (-want +got):\n%s", diff)
	}
	if maxDepth != 4 {
		t.Errorf("maxDepth = %d, want 4", maxDepth)
	}
}

func TestAssignDepthsThreeWayOverlapGetsThreeTracks(t *testing.T) {
	f := NewFile("a.txt", []byte("one\ntwo\nthree\nfour\nfive\n"))
	// lines 1-5, 1-3, 3-5: all pairwise overlap via the middle label, so
	// all three belong to one transitive-closure group.
	a := &Label{Range: f.Range(1, 24), Content: "a"}
	b := &Label{Range: f.Range(1, 14), Content: "b"}
	c := &Label{Range: f.Range(10, 24), Content: "c"}

	depths, maxDepth := assignDepths([]*Label{a, b, c})

	if maxDepth != 6 {
		t.Errorf("maxDepth = %d, want 6", maxDepth)
	}
	seen := map[int]bool{}
	for _, d := range depthsByContent(depths) {
		if seen[d] {
			t.Fatalf("depth %d assigned twice, depths = %v", d, depthsByContent(depths))
		}
		seen[d] = true
	}
}
