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
	"strings"
	"testing"

	"github.com/tamarind-lang/diagspan/internal/golden"
)

// TestRenderGolden drives every fixture under testdata/render through a
// single fixed diagnostic shape (one primary label spanning the fixture's
// first line, a header, and a trailing note) and compares the rendered
// result against the matching ".out" file, refreshable by setting
// golden.RefreshEnv to a glob matching the fixture names to regenerate.
func TestRenderGolden(t *testing.T) {
	golden.Corpus{Root: "testdata/render"}.Run(t, func(t *testing.T, path, text string) string {
		firstLine := text
		if idx := strings.IndexByte(firstLine, '\n'); idx != -1 {
			firstLine = firstLine[:idx]
		}

		f := NewFile(path, []byte(text))
		d := NewDiagnostic(Warning).
			SetHeader("E0001", "golden sample").
			AddLabel(Label{
				Style:   Primary,
				Range:   f.Range(1, uint32(len(firstLine))),
				Content: "sample label",
			}).
			AddNote("golden fixture")

		return d.Render()
	})
}
