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

	"github.com/formallabs/go-alspec/pkg/report"
)

// scoreCmd checks and scores one or more specs.
var scoreCmd = &cobra.Command{
	Use:   "score [flags] spec...",
	Short: "Check specs and report a quality score.",
	Long: "Check each spec and report a health score with its diagnostics.  " +
		"With --audit, the adequacy analyses run too and their warnings count " +
		"toward the warning total (but never affect health).",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		opts := report.Options{
			Strict: !getFlag(cmd, "smooth"),
			Audit:  getFlag(cmd, "audit"),
		}
		//
		asJSON := getFlag(cmd, "json")
		failed := false
		//
		for _, arg := range expandArgs(args) {
			spec := readSpec(arg)
			score := report.Score(spec, opts)
			//
			if asJSON {
				data, err := report.ToJSON(score)
				if err != nil {
					fmt.Println(err)
					os.Exit(2)
				}
				//
				fmt.Println(string(data))
			} else {
				fmt.Println(report.Format(score))
			}
			//
			if !score.WellFormed {
				failed = true
			}
		}
		//
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().Bool("audit", false, "include adequacy findings in the score")
	scoreCmd.Flags().Bool("smooth", false, "degrade health smoothly per error instead of zeroing it")
	scoreCmd.Flags().Bool("json", false, "emit the machine-readable report")
}
