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
package ast

import (
	"fmt"
	"strings"
)

// Term is a value-denoting expression over a signature.  The sum is closed:
// exactly four implementations exist (Var, FnApp, FieldAccess, Literal) and
// every traversal type-switches over them exhaustively, panicking on an
// unknown node.  Terms and Formulas are strictly distinct; the checker
// enforces the separation rather than merely documenting it.
type Term interface {
	fmt.Stringer
	// isTerm seals the sum.
	isTerm()
}

// Var is a variable occurrence carrying its declared sort, e.g. x : Nat.
type Var struct {
	Name string
	Sort SortRef
}

// FnApp applies a function symbol to arguments, e.g. add(x, suc(y)).  A
// nullary application denotes a constant.
type FnApp struct {
	Fn   string
	Args []Term
}

// FieldAccess projects a named field out of a product-sorted term, e.g.
// p.fst.
type FieldAccess struct {
	Base  Term
	Field string
}

// Literal is a concrete value of a known sort, e.g. 42 : Nat.  This is the
// escape hatch for values which do not correspond to a nullary symbol.
type Literal struct {
	Value string
	Sort  SortRef
}

func (t *Var) isTerm()         {}
func (t *FnApp) isTerm()       {}
func (t *FieldAccess) isTerm() {}
func (t *Literal) isTerm()     {}

func (t *Var) String() string { return t.Name }

func (t *FnApp) String() string {
	return fmt.Sprintf("%s(%s)", t.Fn, termList(t.Args))
}

func (t *FieldAccess) String() string {
	return fmt.Sprintf("%s.%s", t.Base.String(), t.Field)
}

func (t *Literal) String() string { return t.Value }

// TermsEqual reports structural equality of two terms, based on their
// canonical rendering.
func TermsEqual(lhs Term, rhs Term) bool {
	return lhs.String() == rhs.String()
}

func termList(args []Term) string {
	var builder strings.Builder
	//
	for i, arg := range args {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(arg.String())
	}
	//
	return builder.String()
}
