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

// Package source is the file-I/O collaborator diagspan's core never
// imports directly: it turns paths into *diagspan.File values, leaving
// every codepoint-indexing and layout decision to the core package.
package source

import (
	"errors"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/tamarind-lang/diagspan"
)

// Opener opens a named file, returning a *diagspan.File on success.
//
// A return of fs.ErrNotExist is given special treatment by Openers, which
// falls through to the next Opener in sequence.
type Opener interface {
	Open(path string) (*diagspan.File, error)
}

// Map implements Opener over an in-memory map, guarded by a mutex so it
// can be populated and read from concurrently (diagspan.File itself is
// immutable once constructed, per spec.md §5, so only the map's own
// structure needs guarding).
type Map struct {
	mu    sync.RWMutex
	files map[string]*diagspan.File
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{files: make(map[string]*diagspan.File)}
}

// Add registers a file under path, built from content via diagspan.NewFile.
func (m *Map) Add(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = diagspan.NewFile(path, content)
}

// Open implements Opener.
func (m *Map) Open(path string) (*diagspan.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return f, nil
}

// FS wraps an fs.FS to give it an Opener interface, reading each file
// fully and normalizing it into a *diagspan.File.
type FS struct {
	fs.FS

	// PathMapper, if non-nil, rewrites a path before it is forwarded to FS.
	PathMapper func(string) string
}

// Open implements Opener.
func (o *FS) Open(path string) (*diagspan.File, error) {
	mapped := path
	if o.PathMapper != nil {
		mapped = o.PathMapper(path)
	}

	f, err := o.FS.Open(mapped)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf strings.Builder
	if _, err := io.Copy(&buf, f); err != nil {
		return nil, err
	}
	return diagspan.NewFile(path, []byte(buf.String())), nil
}

// Openers tries a sequence of Openers in order, falling through to the
// next on fs.ErrNotExist.
type Openers []Opener

// Open implements Opener.
func (o Openers) Open(path string) (*diagspan.File, error) {
	for _, opener := range o {
		f, err := opener.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return f, err
	}
	return nil, fs.ErrNotExist
}
