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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingLogger struct {
	warnings []string
}

func (c *capturingLogger) Warn(msg string, args ...any) {
	c.warnings = append(c.warnings, msg)
}

func TestAddLabelDeduplicatesIdenticalRanges(t *testing.T) {
	f := NewFile("a.txt", []byte("let x = 1;\n"))
	logger := &capturingLogger{}

	d := NewDiagnostic(Error).WithLogger(logger)
	d.AddLabel(Label{Style: Primary, Range: f.Range(1, 3), Content: "first"})
	d.AddLabel(Label{Style: Secondary, Range: f.Range(1, 3), Content: "second"})

	require.Len(t, d.Labels, 1)
	assert.Equal(t, "first", d.Labels[0].Content)
	assert.Len(t, logger.warnings, 1)
}

func TestBuilderChaining(t *testing.T) {
	f := NewFile("a.txt", []byte("abc\n"))
	d := NewDiagnostic(Warning).
		SetHeader("E001", "something went wrong").
		AddRange(f.Range(1, 3)).
		AddNote("try this instead")

	assert.Equal(t, "E001", d.Header.Code)
	assert.Len(t, d.Ranges, 1)
	assert.Len(t, d.Notes, 1)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "help", Help.String())
}
