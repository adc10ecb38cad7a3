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

// Package testutil holds small helpers shared by diagspan's test suites.
package testutil

import (
	"path/filepath"
	"runtime"
	"testing"
)

// CallerDirWithSkip returns the directory of the source file skip frames
// above the caller of this function (skip == 0 means "the caller of
// CallerDirWithSkip"). Used by golden.Corpus to locate a testdata
// directory relative to the _test.go file that declared the corpus,
// regardless of the working directory `go test` was invoked from.
func CallerDirWithSkip(t *testing.T, skip int) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(skip + 1)
	if !ok {
		t.Fatal("testutil: could not determine caller's file")
	}
	return filepath.Dir(file)
}
