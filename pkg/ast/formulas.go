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

// Formula is a truth-denoting expression over a signature.  Like Term, the
// sum is closed: the ten implementations below are the only ones, and
// traversals type-switch exhaustively over them.
type Formula interface {
	fmt.Stringer
	// isFormula seals the sum.
	isFormula()
}

// Equation asserts that two terms of the same sort are equal.  Following
// CASL this is a strong equation: it holds when both sides are defined and
// equal, or both undefined.
type Equation struct {
	Lhs Term
	Rhs Term
}

// PredApp applies a predicate symbol to arguments, e.g. leq(x, y).
type PredApp struct {
	Pred string
	Args []Term
}

// Negation of a formula.
type Negation struct {
	Body Formula
}

// Conjunction of formulas.
type Conjunction struct {
	Conjuncts []Formula
}

// Disjunction of formulas.
type Disjunction struct {
	Disjuncts []Formula
}

// Implication between two formulas.
type Implication struct {
	Antecedent Formula
	Consequent Formula
}

// Biconditional (if and only if).  Provided as a primitive rather than a
// pair of implications since CASL includes it as a first-class connective,
// and predicate equivalence across constructors is written with it.
type Biconditional struct {
	Lhs Formula
	Rhs Formula
}

// UniversalQuant quantifies a body over one or more variables.
type UniversalQuant struct {
	Variables []*Var
	Body      Formula
}

// ExistentialQuant is the existential counterpart of UniversalQuant.
type ExistentialQuant struct {
	Variables []*Var
	Body      Formula
}

// Definedness asserts that a term denotes a value, which is only in question
// when partial functions are involved, e.g. def(pre(suc(n))).
type Definedness struct {
	Term Term
}

func (f *Equation) isFormula()         {}
func (f *PredApp) isFormula()          {}
func (f *Negation) isFormula()         {}
func (f *Conjunction) isFormula()      {}
func (f *Disjunction) isFormula()      {}
func (f *Implication) isFormula()      {}
func (f *Biconditional) isFormula()    {}
func (f *UniversalQuant) isFormula()   {}
func (f *ExistentialQuant) isFormula() {}
func (f *Definedness) isFormula()      {}

func (f *Equation) String() string {
	return fmt.Sprintf("%s = %s", f.Lhs.String(), f.Rhs.String())
}

func (f *PredApp) String() string {
	return fmt.Sprintf("%s(%s)", f.Pred, termList(f.Args))
}

func (f *Negation) String() string {
	return fmt.Sprintf("not (%s)", f.Body.String())
}

func (f *Conjunction) String() string {
	return joinFormulas(f.Conjuncts, " /\\ ")
}

func (f *Disjunction) String() string {
	return joinFormulas(f.Disjuncts, " \\/ ")
}

func (f *Implication) String() string {
	return fmt.Sprintf("(%s => %s)", f.Antecedent.String(), f.Consequent.String())
}

func (f *Biconditional) String() string {
	return fmt.Sprintf("(%s <=> %s)", f.Lhs.String(), f.Rhs.String())
}

func (f *UniversalQuant) String() string {
	return fmt.Sprintf("forall %s . %s", varList(f.Variables), f.Body.String())
}

func (f *ExistentialQuant) String() string {
	return fmt.Sprintf("exists %s . %s", varList(f.Variables), f.Body.String())
}

func (f *Definedness) String() string {
	return fmt.Sprintf("def(%s)", f.Term.String())
}

// FormulasEqual reports structural equality of two formulas, based on their
// canonical rendering.
func FormulasEqual(lhs Formula, rhs Formula) bool {
	return lhs.String() == rhs.String()
}

func joinFormulas(formulas []Formula, separator string) string {
	parts := make([]string, len(formulas))
	for i, f := range formulas {
		parts[i] = f.String()
	}
	//
	return "(" + strings.Join(parts, separator) + ")"
}

func varList(vars []*Var) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = fmt.Sprintf("%s:%s", v.Name, v.Sort)
	}
	//
	return strings.Join(parts, ", ")
}
