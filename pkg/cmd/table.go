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

	"github.com/formallabs/go-alspec/pkg/obligation"
)

// tableCmd renders the obligation table of a spec.
var tableCmd = &cobra.Command{
	Use:   "table [flags] spec",
	Short: "Render the obligation table of a spec.",
	Long: "Classify the spec's symbols into constructor, selector and observer " +
		"roles, then render the obligation table: one cell per (observer, " +
		"constructor) pair of each generated sort, split into hit/miss pairs " +
		"where key dispatch applies.",
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
		fmt.Println(obligation.Render(spec.Signature, table))
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
}
