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

/*
Package diagspan renders compiler-style diagnostics: a header line, a
gutter of line numbers and box-drawing brackets, underlined source
snippets, and a footer of notes.

A [Diagnostic] is a builder: construct one with [NewDiagnostic], attach
ranges, labels, colors, and notes with its chainable Add* methods, and
call [Diagnostic.Render] to produce the final string. Rendering performs
no I/O: the caller is expected to have already turned source bytes into
[File] values (see package source for one way to do that) before
constructing ranges into them.

# Primary vs. secondary labels

A [Label] is either [Primary] or [Secondary]. Primary labels point at the
crux of a diagnostic and are drawn in the diagnostic's severity color with
a `^` marker; secondary labels provide supporting context, drawn in a fixed
cyan with a `-` marker. A diagnostic with several labels on the same
source span should make the primary one unambiguous at a glance — that is
the entire reason the two styles exist.

# Single-line vs. multi-line labels

Whether a label is rendered as an inline underline or as a bracketed
gutter span is determined entirely by its [FileRange]: if the range's
start and end land on the same line, it underlines; if they don't, it
grows a `╭`/`│`/`╰` bracket down the left margin. Callers never choose
this explicitly.

# Writing diagnostics

A good diagnostic states what's wrong before it states why, keeps the
header message short enough to fit one line, and puts the detail — the
part a reader only needs once they're already confused — in a label or a
note instead. Two labels that say the same thing about two different
places are more useful than one that tries to explain both at once.
*/
package diagspan
