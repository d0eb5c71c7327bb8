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

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/formallabs/go-alspec/pkg/ast"
	"github.com/formallabs/go-alspec/pkg/examples"
	"github.com/formallabs/go-alspec/pkg/specfile"
)

// Get an expected flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string flag, or panic if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Load a spec from a file or, when the argument names no file, from the
// built-in example catalogue.
func readSpec(arg string) *ast.Spec {
	if _, err := os.Stat(arg); err == nil {
		spec, err := specfile.ReadFile(arg)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		return spec
	}
	//
	for _, spec := range catalogue() {
		if strings.EqualFold(spec.Name, arg) {
			return spec
		}
	}
	//
	fmt.Printf("no such file or example spec: %s\n", arg)
	os.Exit(2)
	// unreachable
	return nil
}

// Expand glob patterns (including **) into concrete spec file paths,
// passing non-pattern arguments through untouched.
func expandArgs(args []string) []string {
	var expanded []string
	//
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			expanded = append(expanded, arg)
			continue
		}
		//
		base, pattern := doublestar.SplitPattern(filepath.ToSlash(arg))
		//
		matches, err := doublestar.Glob(os.DirFS(base), pattern)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		for _, match := range matches {
			expanded = append(expanded, filepath.Join(base, match))
		}
	}
	//
	return expanded
}

// catalogue returns every built-in example spec.
func catalogue() []*ast.Spec {
	return append(examples.All(), examples.DoorLock())
}

// Determine the terminal width, falling back to 80 columns when stdout is
// not a terminal.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	//
	return width
}
