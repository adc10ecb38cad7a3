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

import "github.com/tamarind-lang/diagspan/style"

// toStyleSeverity maps the core Severity to style.Severity; the two are
// kept as separate declarations (per style's package doc) so style never
// depends on this package.
func toStyleSeverity(sev Severity) style.Severity {
	switch sev {
	case Error:
		return style.Error
	case Bug:
		return style.Bug
	case Warning:
		return style.Warning
	case Note:
		return style.Note
	case Help:
		return style.Help
	default:
		return style.Error
	}
}

// severityColor returns the non-bold StyleFn for sev (spec.md §6's
// severity→color table).
func severityColor(sev Severity) StyleFn {
	return StyleFn(style.ForSeverity(toStyleSeverity(sev)))
}

// boldSeverityColor returns the bold StyleFn for sev, used for header
// titles.
func boldSeverityColor(sev Severity) StyleFn {
	return StyleFn(style.BoldForSeverity(toStyleSeverity(sev)))
}

// secondaryColor returns the fixed cyan StyleFn used for Secondary labels.
func secondaryColor() StyleFn {
	return StyleFn(style.Secondary())
}

// codeColor returns the base (priority 0) style applied to ordinary code
// text.
func codeColor() StyleFn {
	return StyleFn(style.Code())
}

// accentColor returns the style used for line numbers and file-base
// headers (spec.md §4.10).
func accentColor() StyleFn {
	return StyleFn(style.Accent())
}
