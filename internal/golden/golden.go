// Copyright 2020-2025 Buf Technologies, Inc.
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

// Package golden runs diagspan's rendered-diagnostic fixtures: every
// "<name>.txt" under a Corpus's Root is fed through a render callback, and
// the result is compared against the matching "<name>.txt.out" file.
//
// Define a Corpus in an ordinary Go test body and call [Corpus.Run]. To
// regenerate the ".out" fixtures instead of checking them, set the
// [RefreshEnv] environment variable to a glob matching the fixture names to
// refresh (e.g. "*" for all of them) and run the test again.
package golden

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/tamarind-lang/diagspan/internal/testutil"
)

// RefreshEnv is the environment variable [Corpus.Run] checks for a refresh
// glob. diagspan has exactly one golden harness and one refresh knob, so
// unlike the teacher's corpus runner this isn't a per-Corpus field.
const RefreshEnv = "DIAGSPAN_GOLDEN_REFRESH"

// Corpus describes one directory of rendered-diagnostic fixtures.
type Corpus struct {
	// Root is the test data directory, relative to the directory of the
	// file that calls [Corpus.Run].
	Root string
}

// Render produces the text to compare against a fixture's ".out" file, given
// the fixture's path (relative to the file declaring the Corpus) and its
// contents.
type Render func(t *testing.T, path, text string) string

// Run executes every "*.txt" fixture under c.Root through render and
// compares the result to the matching ".txt.out" file (diffed with
// [CompareAndDiff]), or rewrites it when [RefreshEnv] names a glob matching
// the fixture.
//
// A panicking render call fails that fixture's subtest without aborting the
// rest of the corpus, so one bad fixture doesn't hide failures in the rest.
func (c Corpus) Run(t *testing.T, render Render) {
	testDir := testutil.CallerDirWithSkip(t, 1)
	root := filepath.Join(testDir, c.Root)
	t.Logf("golden: searching for fixtures in %q", root)

	var fixtures []string
	err := filepath.Walk(root, func(p string, fi fs.FileInfo, err error) error {
		if err != nil || fi.IsDir() {
			return err
		}
		if strings.HasSuffix(p, ".txt") {
			fixtures = append(fixtures, p)
		}
		return err
	})
	if err != nil {
		t.Fatal("golden: error while walking testdata:", err)
	}

	refresh := os.Getenv(RefreshEnv)
	if refresh != "" && !doublestar.ValidatePattern(refresh) {
		t.Fatalf("golden: invalid %s glob: %q", RefreshEnv, refresh)
	}

	for _, path := range fixtures {
		name, _ := filepath.Rel(testDir, path)
		name = filepath.ToSlash(name)
		testName, _ := filepath.Rel(root, path)
		testName = filepath.ToSlash(testName)

		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: error while loading fixture %q: %v", path, err)
			}

			var got string
			//nolint:revive,predeclared // it's fine to use panic as a name here.
			panic, stack := catch(func() { got = render(t, name, string(input)) })
			if panic != nil {
				t.Logf("golden: render panicked for %q: %v\n%s", name, panic, stack)
				t.Fail()
				return
			}

			wantPath := path + ".out"
			doRefresh, _ := doublestar.Match(refresh, name)
			if doRefresh {
				if got == "" {
					if err := os.Remove(wantPath); err != nil && !errors.Is(err, os.ErrNotExist) {
						t.Logf("golden: error while deleting %q: %v", wantPath, err)
						t.Fail()
					}
					return
				}
				if err := os.WriteFile(wantPath, []byte(got), 0600); err != nil {
					t.Logf("golden: error while writing %q: %v", wantPath, err)
					t.Fail()
				}
				return
			}

			want, err := os.ReadFile(wantPath)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				t.Logf("golden: error while loading %q: %v", wantPath, err)
				t.Fail()
				return
			}
			if diff := CompareAndDiff(got, string(want)); diff != "" {
				t.Logf("golden: output mismatch for %q:\n%s", wantPath, diff)
				t.Fail()
			}
		})
	}
}

// CompareAndDiff returns a colorized unified diff of got against want, or
// the empty string if they're equal.
func CompareAndDiff(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	lines := strings.Split(diff, "\n")
	for i := range lines {
		s := lines[i]
		if strings.HasPrefix(s, "+") {
			lines[i] = "\033[1;92m" + s + "\033[0m"
		} else if strings.HasPrefix(s, "-") {
			lines[i] = "\033[1;91m" + s + "\033[0m"
		}
	}

	return strings.Join(lines, "\n")
}

// catch runs cb and captures any panic instead of letting it propagate.
//
//nolint:revive,predeclared // it's fine to use panic as a name here.
func catch(cb func()) (panic any, stack []byte) {
	defer func() {
		panic = recover()
		if panic != nil {
			stack = debug.Stack()
		}
	}()
	cb()
	return
}
