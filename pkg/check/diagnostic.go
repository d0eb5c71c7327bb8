// Copyright the go-alspec authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package check

import (
	"encoding/json"
	"sort"
)

// Severity ranks diagnostics.  The numeric order (ERROR < WARNING < INFO) is
// the sort order of checker output and must not be rearranged.
type Severity uint

const (
	// ERROR marks a spec defect which renders the spec ill-formed.
	ERROR Severity = iota
	// WARNING marks a likely deficiency which does not affect
	// well-formedness.
	WARNING
	// INFO marks purely informational output, such as coverage summaries.
	INFO
)

func (s Severity) String() string {
	switch s {
	case ERROR:
		return "error"
	case WARNING:
		return "warning"
	case INFO:
		return "info"
	}
	//
	panic("unknown severity")
}

// MarshalJSON renders a severity as its lower-case name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Diagnostic is a single finding about a spec.  Diagnostics are the primary
// output channel for spec-level defects — they are data, never errors or
// panics; callers decide policy from the severity.
type Diagnostic struct {
	// Check names the individual check which produced this diagnostic
	// (e.g. "fn_arity").
	Check string `json:"check"`
	// Severity of the finding.
	Severity Severity `json:"severity"`
	// Axiom is the label of the offending axiom, or empty for
	// signature-level findings.
	Axiom string `json:"axiom,omitempty"`
	// Message is the human-readable explanation.
	Message string `json:"message"`
	// Path locates the offending node within the axiom formula, where
	// applicable.
	Path string `json:"path,omitempty"`
}

// SortDiagnostics orders diagnostics by (severity, check, axiom) in place,
// which is the deterministic order all public entry points return.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		l, r := diags[i], diags[j]
		//
		if l.Severity != r.Severity {
			return l.Severity < r.Severity
		} else if l.Check != r.Check {
			return l.Check < r.Check
		}
		//
		return l.Axiom < r.Axiom
	})
}

// CheckResult is the outcome of checking one spec.
type CheckResult struct {
	// SpecName identifies the checked spec.
	SpecName string
	// Diagnostics, sorted by (severity, check, axiom).
	Diagnostics []Diagnostic
}

// Errors returns only the ERROR diagnostics.
func (r *CheckResult) Errors() []Diagnostic {
	return r.filter(ERROR)
}

// Warnings returns only the WARNING diagnostics.
func (r *CheckResult) Warnings() []Diagnostic {
	return r.filter(WARNING)
}

// IsWellFormed reports whether the spec produced no errors.
func (r *CheckResult) IsWellFormed() bool {
	return len(r.Errors()) == 0
}

func (r *CheckResult) filter(severity Severity) []Diagnostic {
	var matched []Diagnostic
	//
	for _, d := range r.Diagnostics {
		if d.Severity == severity {
			matched = append(matched, d)
		}
	}
	//
	return matched
}
