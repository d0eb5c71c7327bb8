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

	"github.com/spf13/cobra"

	"github.com/formallabs/go-alspec/pkg/check"
)

// checkCmd runs the well-formedness checker over one or more specs.
var checkCmd = &cobra.Command{
	Use:   "check [flags] spec...",
	Short: "Check specs for well-formedness.",
	Long: "Check that each spec is well-formed: every sort resolved, every " +
		"symbol declared with consistent arity and argument sorts, every " +
		"variable bound, and no duplicate axiom labels.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		warnings := getFlag(cmd, "warn")
		failed := false
		//
		for _, arg := range expandArgs(args) {
			spec := readSpec(arg)
			result := check.Check(spec)
			//
			for _, diag := range result.Diagnostics {
				if diag.Severity == check.WARNING && !warnings {
					continue
				}
				//
				printDiagnostic(spec.Name, diag)
			}
			//
			if result.IsWellFormed() {
				fmt.Printf("%s: OK\n", spec.Name)
			} else {
				fmt.Printf("%s: %d errors\n", spec.Name, len(result.Errors()))
				failed = true
			}
		}
		//
		if failed {
			os.Exit(1)
		}
	},
}

func printDiagnostic(specName string, diag check.Diagnostic) {
	axiomStr := ""
	if diag.Axiom != "" {
		axiomStr = fmt.Sprintf(" axiom '%s':", diag.Axiom)
	}
	//
	fmt.Printf("%s: [%s] %s:%s %s\n", specName, diag.Severity, diag.Check, axiomStr, diag.Message)
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("warn", true, "report warnings as well as errors")
}
