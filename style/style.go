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

// Package style maps diagnostic severities and rendering roles to terminal
// styling functions, backed by github.com/fatih/color.
//
// A function here has type Fn, whose underlying type func(string) string
// is shared with diagspan.StyleFn, so an explicit conversion
// (diagspan.StyleFn(fn)) turns one into the other: this package has no
// dependency on diagspan, so a caller wires them together at the
// Diagnostic/Color call site.
package style

import "github.com/fatih/color"

// Fn wraps a string in terminal styling. Identical in shape to
// diagspan.StyleFn; kept as a distinct declaration so this package stays
// free of a dependency on the core.
type Fn func(string) string

var (
	red     = color.New(color.FgRed)
	magenta = color.New(color.FgMagenta)
	yellow  = color.New(color.FgYellow)
	green   = color.New(color.FgGreen)
	cyan    = color.New(color.FgCyan)
	white   = color.New(color.FgWhite)

	boldRed     = color.New(color.FgRed, color.Bold)
	boldMagenta = color.New(color.FgMagenta, color.Bold)
	boldYellow  = color.New(color.FgYellow, color.Bold)
	boldGreen   = color.New(color.FgGreen, color.Bold)
	boldCyan    = color.New(color.FgCyan, color.Bold)
	boldWhite   = color.New(color.FgWhite, color.Bold)
)

// Severity names the five diagnostic severities, mirrored here (rather
// than imported from diagspan) to keep this package free of a core
// dependency.
type Severity int

const (
	Error Severity = iota
	Bug
	Warning
	Note
	Help
)

// wrap adapts a *color.Color's variadic Sprint to the single-string Fn
// shape every caller in this package needs.
func wrap(c *color.Color) Fn {
	return func(s string) string { return c.Sprint(s) }
}

// ForSeverity returns the non-bold foreground color function for sev, per
// spec.md §6's severity→color table: Error→red, Bug→magenta,
// Warning→yellow, Note→green, Help→cyan.
func ForSeverity(sev Severity) Fn {
	switch sev {
	case Error:
		return wrap(red)
	case Bug:
		return wrap(magenta)
	case Warning:
		return wrap(yellow)
	case Note:
		return wrap(green)
	case Help:
		return wrap(cyan)
	default:
		return wrap(white)
	}
}

// BoldForSeverity returns the bold variant of ForSeverity's color, used for
// header titles ("Header titles are always bold", spec.md §6).
func BoldForSeverity(sev Severity) Fn {
	switch sev {
	case Error:
		return wrap(boldRed)
	case Bug:
		return wrap(boldMagenta)
	case Warning:
		return wrap(boldYellow)
	case Note:
		return wrap(boldGreen)
	case Help:
		return wrap(boldCyan)
	default:
		return wrap(boldWhite)
	}
}

// Secondary is the fixed color for Secondary-style labels, independent of
// severity (spec.md §3: "Secondary uses a default (cyan) color").
func Secondary() Fn {
	return wrap(cyan)
}

// Code is the base style applied to ordinary code text (priority 0
// modification, spec.md §4.6).
func Code() Fn {
	return wrap(white)
}

// Accent is used for line numbers, gutter connectors, and other
// non-content rendering details — matching the teacher's "blue accent"
// role but expressed as a Fn here, backed by fatih/color's cyan (this
// renderer's box-drawing gutter already uses cyan for file-base headers
// per spec.md §4.10, so accent reuses it for visual consistency rather
// than introducing a sixth hue).
func Accent() Fn {
	return wrap(cyan)
}

// Plain returns its argument unchanged.
func Plain(s string) string {
	return s
}
