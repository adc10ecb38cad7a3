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

package style

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

// go test's stdout is not a terminal, so fatih/color disables ANSI codes
// automatically (color.NoColor), making every Fn here behave like Plain for
// the purposes of these assertions.
func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestForSeverityCoversEveryKnownSeverity(t *testing.T) {
	for _, sev := range []Severity{Error, Bug, Warning, Note, Help} {
		fn := ForSeverity(sev)
		assert.Equal(t, "x", fn("x"))
	}
}

func TestForSeverityUnknownFallsBackToWhite(t *testing.T) {
	fn := ForSeverity(Severity(99))
	assert.Equal(t, "x", fn("x"))
}

func TestBoldForSeverityCoversEveryKnownSeverity(t *testing.T) {
	for _, sev := range []Severity{Error, Bug, Warning, Note, Help} {
		fn := BoldForSeverity(sev)
		assert.Equal(t, "x", fn("x"))
	}
}

func TestSecondaryCodeAccentAreStable(t *testing.T) {
	assert.Equal(t, "y", Secondary()("y"))
	assert.Equal(t, "y", Code()("y"))
	assert.Equal(t, "y", Accent()("y"))
}

func TestPlainReturnsInputUnchanged(t *testing.T) {
	assert.Equal(t, "unchanged", Plain("unchanged"))
}
