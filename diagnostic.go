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

import "log/slog"

// Severity classifies a Diagnostic, driving its header color and the
// default color of its primary underlines (spec.md §3, §6).
type Severity int

const (
	Error Severity = iota
	Bug
	Warning
	Note
	Help
)

// String returns the severity's display name, as it appears in a rendered
// header.
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Bug:
		return "bug"
	case Warning:
		return "warning"
	case Note:
		return "note"
	case Help:
		return "help"
	default:
		return "unknown"
	}
}

// LabelStyle distinguishes a Label's emphasis: Primary labels use the
// Diagnostic's severity color and the `^` marker; Secondary labels use a
// fixed cyan and the `-` marker (spec.md §3).
type LabelStyle int

const (
	Primary LabelStyle = iota
	Secondary
)

// StyleFn wraps a string in terminal styling. Composed by left-fold when
// more than one applies to the same character (spec.md §6).
type StyleFn func(string) string

// Label is a styled annotation pointing at a FileRange, with a message
// that may itself span multiple lines.
//
// Per spec.md's Design Notes §9, depth is deliberately NOT a field here:
// the layout engine computes multi-line label depths into a map owned by
// the render pass (assignDepths, in multiline.go) instead of mutating the
// input, so a Diagnostic remains unchanged by rendering it.
type Label struct {
	Style   LabelStyle
	Range   FileRange
	Content string
}

// Color is a free-form colorization of a FileRange, independent of any
// label. Multiple Colors may overlap; resolution is priority-based
// (spec.md §4.6).
type Color struct {
	Range FileRange
	Style []StyleFn
}

// Header is a Diagnostic's optional leading `code: message` line.
type Header struct {
	Code    string
	Message string
}

// Logger is the single logging surface the core touches: the
// duplicate-label warning (spec.md §4.3, §6, §7). Callers that don't care
// about it can pass a no-op implementation.
type Logger interface {
	Warn(msg string, args ...any)
}

// NewSlogLogger adapts a *slog.Logger to the Logger interface. This is the
// default, stdlib-backed logger: no pack repo pulls in a structured
// logging library beyond slog, so there is no third-party alternative to
// reach for here.
func NewSlogLogger(l *slog.Logger) Logger {
	return slogLogger{l}
}

type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Warn(msg string, args ...any) {
	s.l.Warn(msg, args...)
}

// discardLogger is a Logger that drops every warning.
type discardLogger struct{}

func (discardLogger) Warn(string, ...any) {}

// Diagnostic is a mutable builder accumulating a severity, an optional
// header, a set of visible ranges, labels, notes, and colorizations. Once
// built it is consumed (read-only; see Label's doc comment on depth) by
// Render to produce a string (spec.md §3, §4.3).
type Diagnostic struct {
	Severity Severity
	Header   *Header
	Ranges   []FileRange
	Labels   []Label
	Notes    []string
	Colors   []Color

	logger Logger
}

// NewDiagnostic constructs an empty Diagnostic at the given severity. The
// returned Diagnostic logs duplicate-label warnings to log/slog's default
// logger unless WithLogger is used to override it.
func NewDiagnostic(severity Severity) *Diagnostic {
	return &Diagnostic{Severity: severity, logger: NewSlogLogger(slog.Default())}
}

// WithLogger sets the Logger used for non-fatal warnings and returns the
// Diagnostic for chaining.
func (d *Diagnostic) WithLogger(l Logger) *Diagnostic {
	d.logger = l
	return d
}

// SetHeader sets the Diagnostic's header and returns it for chaining.
func (d *Diagnostic) SetHeader(code, message string) *Diagnostic {
	d.Header = &Header{Code: code, Message: message}
	return d
}

// AddRange registers a FileRange as visible (to be included in the
// rendered snippet even if it carries no label or color) and returns the
// Diagnostic for chaining.
func (d *Diagnostic) AddRange(r FileRange) *Diagnostic {
	d.Ranges = append(d.Ranges, r)
	return d
}

// AddLabel adds a label, returning the Diagnostic for chaining.
//
// Deduplication policy (spec.md §4.3, §7 DuplicateLabel): if an existing
// label already has the identical (start, end) range, the new label is
// dropped and a warning is logged through the Diagnostic's Logger. This is
// not an error — the Diagnostic is left equivalent to having added only
// the first label.
func (d *Diagnostic) AddLabel(l Label) *Diagnostic {
	for _, existing := range d.Labels {
		if existing.Range.Start == l.Range.Start && existing.Range.End == l.Range.End {
			d.logger.Warn("duplicate label range ignored",
				"start", l.Range.Start, "end", l.Range.End)
			return d
		}
	}
	d.Labels = append(d.Labels, l)
	return d
}

// AddNote appends a trailing note line and returns the Diagnostic for
// chaining.
func (d *Diagnostic) AddNote(note string) *Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// AddColor registers a free-form colorization and returns the Diagnostic
// for chaining.
func (d *Diagnostic) AddColor(c Color) *Diagnostic {
	d.Colors = append(d.Colors, c)
	return d
}
