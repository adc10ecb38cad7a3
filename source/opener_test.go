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

package source

import (
	"testing/fstest"

	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAddAndOpen(t *testing.T) {
	m := NewMap()
	m.Add("a.txt", []byte("hello\n"))

	f, err := m.Open("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", f.Content())
}

func TestMapOpenMissingReturnsErrNotExist(t *testing.T) {
	m := NewMap()
	_, err := m.Open("missing.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFSOpenReadsAndWrapsContent(t *testing.T) {
	mapFS := fstest.MapFS{
		"a.txt": {Data: []byte("one\ntwo\n")},
	}
	o := &FS{FS: mapFS}

	f, err := o.Open("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", f.Content())
	assert.Equal(t, "a.txt", f.Name())
}

func TestFSOpenAppliesPathMapper(t *testing.T) {
	mapFS := fstest.MapFS{
		"real/a.txt": {Data: []byte("x\n")},
	}
	o := &FS{FS: mapFS, PathMapper: func(p string) string { return "real/" + p }}

	f, err := o.Open("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "x\n", f.Content())
}

func TestOpenersFallsThroughOnNotExist(t *testing.T) {
	first := NewMap()
	second := NewMap()
	second.Add("b.txt", []byte("found\n"))

	chain := Openers{first, second}
	f, err := chain.Open("b.txt")
	require.NoError(t, err)
	assert.Equal(t, "found\n", f.Content())
}

func TestOpenersReturnsNotExistWhenNoneMatch(t *testing.T) {
	chain := Openers{NewMap(), NewMap()}
	_, err := chain.Open("nope.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
