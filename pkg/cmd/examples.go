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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/formallabs/go-alspec/pkg/specfile"
)

// examplesCmd lists or exports the built-in example specs.
var examplesCmd = &cobra.Command{
	Use:   "examples [flags]",
	Short: "List or export the built-in example specs.",
	Long: "List the basis library of fundamental algebraic specifications, or " +
		"export them as spec files with --out.",
	Run: func(cmd *cobra.Command, args []string) {
		outDir := getString(cmd, "out")
		format := getString(cmd, "format")
		//
		if format != "json" && format != "yaml" {
			fmt.Printf("unknown format %q\n", format)
			os.Exit(2)
		}
		//
		for _, spec := range catalogue() {
			if outDir == "" {
				fmt.Printf("%-16s sorts=%d fns=%d preds=%d axioms=%d\n",
					spec.Name, len(spec.Signature.Sorts), len(spec.Signature.Functions),
					len(spec.Signature.Predicates), len(spec.Axioms))
				//
				continue
			}
			//
			path := filepath.Join(outDir, strings.ToLower(spec.Name)+"."+format)
			//
			if err := specfile.WriteFile(path, spec); err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			fmt.Printf("wrote %s\n", path)
		}
	},
}

func init() {
	rootCmd.AddCommand(examplesCmd)
	examplesCmd.Flags().String("out", "", "directory to export example specs into")
	examplesCmd.Flags().String("format", "json", "export format (json or yaml)")
}
