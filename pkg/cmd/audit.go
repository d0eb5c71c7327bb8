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

	"github.com/formallabs/go-alspec/pkg/analysis"
	"github.com/formallabs/go-alspec/pkg/check"
)

// auditCmd runs the adequacy analyses over one or more specs.
var auditCmd = &cobra.Command{
	Use:   "audit [flags] spec...",
	Short: "Audit specs for adequacy.",
	Long: "Audit each spec for structural patterns indicating likely semantic " +
		"deficiencies: unconstrained symbols, orphan sorts, partial functions " +
		"with no definedness witness, and incomplete case splits.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		info := getFlag(cmd, "info")
		//
		for _, arg := range expandArgs(args) {
			spec := readSpec(arg)
			//
			findings := 0
			//
			for _, diag := range analysis.Audit(spec) {
				if diag.Severity == check.INFO && !info {
					continue
				}
				//
				printDiagnostic(spec.Name, diag)
				//
				if diag.Severity == check.WARNING {
					findings++
				}
			}
			//
			fmt.Printf("%s: %d findings\n", spec.Name, findings)
		}
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().Bool("info", false, "include informational diagnostics")
}
