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
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/formallabs/go-alspec/pkg/match"
	"github.com/formallabs/go-alspec/pkg/obligation"
)

// matchCmd matches a spec's axioms against its obligation table.
var matchCmd = &cobra.Command{
	Use:   "match [flags] spec",
	Short: "Match a spec's axioms against its obligation table.",
	Long: "Determine which axiom fills which obligation cell, then report " +
		"coverage: covered cells, uncovered cells, preservation axioms " +
		"claiming whole hit/miss pairs, and axioms matching no cell.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		spec := readSpec(args[0])
		//
		if len(spec.Signature.Generated) == 0 {
			fmt.Printf("%s: no generated sorts declared\n", spec.Name)
			return
		}
		//
		table := obligation.Build(spec.Signature)
		report := match.Match(spec, table, spec.Signature)
		//
		for _, m := range report.Matches {
			cells := make([]string, len(m.Cells))
			for i, cell := range m.Cells {
				cells[i] = fmt.Sprintf("(%s, %s, %s)", cell.Observer, cell.Constructor, cell.Dispatch)
			}
			//
			line := fmt.Sprintf("%-16s %s", m.Kind, m.Label)
			if len(cells) > 0 {
				line += " -> " + strings.Join(cells, ", ")
			}
			//
			if m.Reason != "" {
				line += " (" + m.Reason + ")"
			}
			//
			fmt.Println(line)
		}
		//
		fmt.Println(strings.Repeat("-", min(termWidth(), 72)))
		//
		covered := 0
		for _, cc := range report.Coverage {
			if cc.Status != match.UNCOVERED {
				covered++
			}
		}
		//
		fmt.Printf("%d/%d cells covered, %d unmatched axioms, %d non-cell axioms\n",
			covered, len(report.Coverage), len(report.UnmatchedAxioms), len(report.NonCellAxioms))
		//
		for _, cell := range report.UncoveredCells {
			fmt.Printf("UNCOVERED (%s, %s, %s)\n", cell.Observer, cell.Constructor, cell.Dispatch)
		}
		//
		if len(report.UncoveredCells) > 0 || len(report.UnmatchedAxioms) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}
