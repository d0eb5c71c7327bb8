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
package report

import (
	"github.com/formallabs/go-alspec/pkg/analysis"
	"github.com/formallabs/go-alspec/pkg/ast"
	"github.com/formallabs/go-alspec/pkg/check"
)

// SpecScore summarises the quality of one spec: well-formedness, diagnostic
// counts, a health figure in [0,1] and signature size.
type SpecScore struct {
	SpecName       string             `json:"spec_name"`
	WellFormed     bool               `json:"well_formed"`
	ErrorCount     int                `json:"error_count"`
	WarningCount   int                `json:"warning_count"`
	Health         float64            `json:"health"`
	SortCount      int                `json:"sort_count"`
	FunctionCount  int                `json:"function_count"`
	PredicateCount int                `json:"predicate_count"`
	AxiomCount     int                `json:"axiom_count"`
	Diagnostics    []check.Diagnostic `json:"diagnostics"`
}

// Options configure scoring.
type Options struct {
	// Strict zeroes health on any checker error; otherwise health degrades
	// smoothly by 0.15 per error, floored at zero.
	Strict bool
	// Audit additionally runs the adequacy analyses and folds their WARNING
	// diagnostics into the warning count.  Audit findings never affect
	// well-formedness or health.
	Audit bool
}

// Score checks a spec and produces its quality score.
func Score(spec *ast.Spec, opts Options) SpecScore {
	result := check.Check(spec)
	// Only checker errors affect well-formedness and health.
	errorCount := len(result.Errors())
	warningCount := len(result.Warnings())
	//
	diagnostics := result.Diagnostics
	//
	if opts.Audit {
		auditDiags := analysis.Audit(spec)
		diagnostics = append(diagnostics, auditDiags...)
		// INFO-level diagnostics, like the coverage summary, stay out of
		// the warning count.
		for _, d := range auditDiags {
			if d.Severity == check.WARNING {
				warningCount++
			}
		}
	}
	//
	var health float64
	//
	if opts.Strict {
		if errorCount == 0 {
			health = 1.0
		}
	} else {
		health = 1.0 - float64(errorCount)*0.15
		if health < 0 {
			health = 0
		}
	}
	//
	return SpecScore{
		SpecName:       spec.Name,
		WellFormed:     result.IsWellFormed(),
		ErrorCount:     errorCount,
		WarningCount:   warningCount,
		Health:         health,
		SortCount:      len(spec.Signature.Sorts),
		FunctionCount:  len(spec.Signature.Functions),
		PredicateCount: len(spec.Signature.Predicates),
		AxiomCount:     len(spec.Axioms),
		Diagnostics:    diagnostics,
	}
}
