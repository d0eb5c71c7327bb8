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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/formallabs/go-alspec/pkg/check"
)

// Format renders a score as a human-readable terminal report.
func Format(score SpecScore) string {
	var lines []string
	//
	lines = append(lines, fmt.Sprintf("%s — Health: %d/100", score.SpecName, int(score.Health*100)))
	//
	if score.WellFormed {
		lines = append(lines, "  ✓ Well-formed (0 errors)")
	} else {
		lines = append(lines, fmt.Sprintf("  × Ill-formed (%d errors)", score.ErrorCount))
	}
	//
	for _, diag := range score.Diagnostics {
		if diag.Severity == check.ERROR {
			lines = append(lines, formatDiagnostic(diag, "ERROR"))
		}
	}
	//
	if score.WarningCount > 0 {
		plural := ""
		if score.WarningCount > 1 {
			plural = "s"
		}
		//
		lines = append(lines, fmt.Sprintf("  ⚠ %d warning%s", score.WarningCount, plural))
		//
		for _, diag := range score.Diagnostics {
			if diag.Severity == check.WARNING {
				lines = append(lines, formatDiagnostic(diag, "WARNING"))
			}
		}
	}
	//
	lines = append(lines, fmt.Sprintf("  Signature: %d sorts, %d functions, %d predicates, %d axioms",
		score.SortCount, score.FunctionCount, score.PredicateCount, score.AxiomCount))
	//
	return strings.Join(lines, "\n")
}

func formatDiagnostic(diag check.Diagnostic, severity string) string {
	axiomStr := ""
	if diag.Axiom != "" {
		axiomStr = fmt.Sprintf(" axiom '%s':", diag.Axiom)
	}
	//
	return fmt.Sprintf("    - [%s]%s %s (%s)", diag.Check, axiomStr, diag.Message, severity)
}

// ToJSON renders the machine-readable form for pipeline integration.
func ToJSON(score SpecScore) ([]byte, error) {
	return json.MarshalIndent(score, "", "  ")
}
