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

import "sort"

// lineGroup is a maximal run of consecutive rendered line numbers within
// one file (spec.md GLOSSARY).
type lineGroup struct {
	file  *File
	lines []int // sorted ascending, consecutive
}

// lineGroupContainer is every line group belonging to one file, in the
// order that file was first referenced by the Diagnostic (spec.md §4.4:
// "Containers are ordered by first occurrence").
type lineGroupContainer struct {
	file   *File
	groups []lineGroup
}

// collectContainers implements spec.md §4.4: gather every line touched by
// any range, label range, or color range; dedupe by (file, line); group
// consecutive runs into line groups, and line groups from the same file
// into one container, in first-occurrence order.
func collectContainers(d *Diagnostic) []*lineGroupContainer {
	var fileOrder []*File
	index := map[*File]int{}
	lineSets := map[*File]map[int]bool{}

	touch := func(fr FileRange) {
		f := fr.File()
		if f == nil {
			return
		}
		if _, ok := index[f]; !ok {
			index[f] = len(fileOrder)
			fileOrder = append(fileOrder, f)
			lineSets[f] = map[int]bool{}
		}
		for _, n := range f.GetLinesInRange(fr.Range) {
			lineSets[f][n] = true
		}
	}

	for _, r := range d.Ranges {
		touch(r)
	}
	for _, l := range d.Labels {
		touch(l.Range)
	}
	for _, c := range d.Colors {
		touch(c.Range)
	}

	containers := make([]*lineGroupContainer, 0, len(fileOrder))
	for _, f := range fileOrder {
		lines := make([]int, 0, len(lineSets[f]))
		for n := range lineSets[f] {
			lines = append(lines, n)
		}
		sort.Ints(lines)

		c := &lineGroupContainer{file: f}
		for i, n := range lines {
			if i > 0 && n == lines[i-1]+1 {
				last := &c.groups[len(c.groups)-1]
				last.lines = append(last.lines, n)
				continue
			}
			c.groups = append(c.groups, lineGroup{file: f, lines: []int{n}})
		}
		containers = append(containers, c)
	}
	return containers
}

// lineItem is a Label or Color whose range overlaps a rendered line,
// ready for the ordering pass in spec.md §4.5.
type lineItem struct {
	isLabel    bool
	label      *Label
	color      *Color
	start, end uint32
}

// itemsOnLine implements spec.md §4.5: collect every label and color whose
// range loosely overlaps line's range, sorted labels-before-colors, labels
// by start descending/end ascending, colors by end descending.
func itemsOnLine(d *Diagnostic, file *File, line Range) []lineItem {
	var items []lineItem
	for i := range d.Labels {
		l := &d.Labels[i]
		if l.Range.File() != file {
			continue
		}
		if _, ok := l.Range.Range.LooselyFitsIn(line); ok {
			items = append(items, lineItem{isLabel: true, label: l, start: l.Range.Start, end: l.Range.End})
		}
	}
	for i := range d.Colors {
		c := &d.Colors[i]
		if c.Range.File() != file {
			continue
		}
		if _, ok := c.Range.Range.LooselyFitsIn(line); ok {
			items = append(items, lineItem{isLabel: false, color: c, start: c.Range.Start, end: c.Range.End})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.isLabel != b.isLabel {
			return a.isLabel
		}
		if a.isLabel {
			if a.start != b.start {
				return a.start > b.start
			}
			return a.end < b.end
		}
		return a.end > b.end
	})
	return items
}

// singleLineLabels returns every label among items that fits entirely
// within line's range (spec.md §4.7's precondition), in the same order.
func singleLineLabels(items []lineItem, line Range) []*Label {
	var out []*Label
	for _, it := range items {
		if !it.isLabel {
			continue
		}
		if _, ok := it.label.Range.Range.FitsIn(line); ok {
			out = append(out, it.label)
		}
	}
	return out
}
