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

import "fmt"

// CollectSymbols gathers every function and predicate name reachable
// anywhere in the given formula, including inside quantifier bodies and
// guard positions.
func CollectSymbols(formula Formula) (fns map[string]bool, preds map[string]bool) {
	fns = make(map[string]bool)
	preds = make(map[string]bool)
	collectFormulaSymbols(formula, fns, preds)
	//
	return fns, preds
}

// CollectTermFns gathers every function name reachable from the given term.
func CollectTermFns(term Term, fns map[string]bool) {
	switch t := term.(type) {
	case *Var, *Literal:
		// no function symbols
	case *FnApp:
		fns[t.Fn] = true
		for _, arg := range t.Args {
			CollectTermFns(arg, fns)
		}
	case *FieldAccess:
		CollectTermFns(t.Base, fns)
	default:
		panic(fmt.Sprintf("unknown term %T", term))
	}
}

// CollectVars gathers the name of every variable *occurrence* in the
// formula.  Quantifier binder lists are deliberately not counted — only
// actual uses inside terms are, which is what the unused-variable check
// needs.
func CollectVars(formula Formula, vars map[string]bool) {
	WalkTerms(formula, func(t Term) {
		if v, ok := t.(*Var); ok {
			vars[v.Name] = true
		}
	})
}

// WalkTerms invokes fn on every term node (pre-order) reachable from the
// given formula.
func WalkTerms(formula Formula, fn func(Term)) {
	switch f := formula.(type) {
	case *Equation:
		walkTerm(f.Lhs, fn)
		walkTerm(f.Rhs, fn)
	case *PredApp:
		for _, arg := range f.Args {
			walkTerm(arg, fn)
		}
	case *Negation:
		WalkTerms(f.Body, fn)
	case *Conjunction:
		for _, c := range f.Conjuncts {
			WalkTerms(c, fn)
		}
	case *Disjunction:
		for _, d := range f.Disjuncts {
			WalkTerms(d, fn)
		}
	case *Implication:
		WalkTerms(f.Antecedent, fn)
		WalkTerms(f.Consequent, fn)
	case *Biconditional:
		WalkTerms(f.Lhs, fn)
		WalkTerms(f.Rhs, fn)
	case *UniversalQuant:
		WalkTerms(f.Body, fn)
	case *ExistentialQuant:
		WalkTerms(f.Body, fn)
	case *Definedness:
		walkTerm(f.Term, fn)
	default:
		panic(fmt.Sprintf("unknown formula %T", formula))
	}
}

// WalkFormulas invokes fn on every formula node (pre-order) reachable from
// the given formula, including the root itself.
func WalkFormulas(formula Formula, fn func(Formula)) {
	fn(formula)
	//
	switch f := formula.(type) {
	case *Equation, *PredApp, *Definedness:
		// leaves at the formula level
	case *Negation:
		WalkFormulas(f.Body, fn)
	case *Conjunction:
		for _, c := range f.Conjuncts {
			WalkFormulas(c, fn)
		}
	case *Disjunction:
		for _, d := range f.Disjuncts {
			WalkFormulas(d, fn)
		}
	case *Implication:
		WalkFormulas(f.Antecedent, fn)
		WalkFormulas(f.Consequent, fn)
	case *Biconditional:
		WalkFormulas(f.Lhs, fn)
		WalkFormulas(f.Rhs, fn)
	case *UniversalQuant:
		WalkFormulas(f.Body, fn)
	case *ExistentialQuant:
		WalkFormulas(f.Body, fn)
	default:
		panic(fmt.Sprintf("unknown formula %T", formula))
	}
}

func walkTerm(term Term, fn func(Term)) {
	fn(term)
	//
	switch t := term.(type) {
	case *Var, *Literal:
		// leaves
	case *FnApp:
		for _, arg := range t.Args {
			walkTerm(arg, fn)
		}
	case *FieldAccess:
		walkTerm(t.Base, fn)
	default:
		panic(fmt.Sprintf("unknown term %T", term))
	}
}

func collectFormulaSymbols(formula Formula, fns map[string]bool, preds map[string]bool) {
	switch f := formula.(type) {
	case *Equation:
		CollectTermFns(f.Lhs, fns)
		CollectTermFns(f.Rhs, fns)
	case *PredApp:
		preds[f.Pred] = true
		for _, arg := range f.Args {
			CollectTermFns(arg, fns)
		}
	case *Negation:
		collectFormulaSymbols(f.Body, fns, preds)
	case *Conjunction:
		for _, c := range f.Conjuncts {
			collectFormulaSymbols(c, fns, preds)
		}
	case *Disjunction:
		for _, d := range f.Disjuncts {
			collectFormulaSymbols(d, fns, preds)
		}
	case *Implication:
		collectFormulaSymbols(f.Antecedent, fns, preds)
		collectFormulaSymbols(f.Consequent, fns, preds)
	case *Biconditional:
		collectFormulaSymbols(f.Lhs, fns, preds)
		collectFormulaSymbols(f.Rhs, fns, preds)
	case *UniversalQuant:
		collectFormulaSymbols(f.Body, fns, preds)
	case *ExistentialQuant:
		collectFormulaSymbols(f.Body, fns, preds)
	case *Definedness:
		CollectTermFns(f.Term, fns)
	default:
		panic(fmt.Sprintf("unknown formula %T", formula))
	}
}
