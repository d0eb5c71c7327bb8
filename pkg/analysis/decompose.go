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
package analysis

import (
	"fmt"
	"strings"

	"github.com/formallabs/go-alspec/pkg/ast"
	"github.com/formallabs/go-alspec/pkg/util"
)

// maxPeelDepth bounds implication peeling.  This is a defensive limit, not a
// semantic one: no realistic axiom nests ten implications.
const maxPeelDepth = 10

// Polarity of an extracted guard.
type Polarity string

const (
	// POSITIVE marks a guard whose predicate must hold.
	POSITIVE Polarity = "+"
	// NEGATIVE marks a guard whose predicate must fail.
	NEGATIVE Polarity = "-"
)

// Guard is a predicate guard extracted from an implication antecedent.  Only
// simple guards are extracted — a single predicate application or its
// negation.  Compound antecedents are never decomposed into guards, since
// they represent property axioms (e.g. antisymmetry) rather than key
// dispatch.
type Guard struct {
	Pred     string
	Polarity Polarity
	Args     []ast.Term
}

// Key renders the guard's dispatch key: predicate name plus the syntactic
// argument spelling, ignoring polarity.  Two guards dispatch over the same
// key exactly when their keys are equal.
func (g Guard) Key() string {
	args := make([]string, len(g.Args))
	for i, arg := range g.Args {
		args[i] = arg.String()
	}
	//
	return fmt.Sprintf("%s(%s)", g.Pred, strings.Join(args, ", "))
}

// SymbolKind distinguishes the two kinds of constrained symbol.
type SymbolKind string

const (
	// FUNCTION_SYMBOL marks a constrained function.
	FUNCTION_SYMBOL SymbolKind = "function"
	// PREDICATE_SYMBOL marks a constrained predicate.
	PREDICATE_SYMBOL SymbolKind = "predicate"
)

// ConstrainedSymbol identifies what an axiom's terminal body defines: the
// outermost function of an equation LHS, the predicate of an assertion, or
// the function under a definedness claim.
type ConstrainedSymbol struct {
	Name string
	Kind SymbolKind
}

// AxiomRecord is the structural decomposition of one axiom: its outermost
// quantified variables, the simple guards peeled from leading implications,
// the terminal body, the constrained symbol (when identifiable) and the sets
// of all referenced symbols.  Records are built once and never mutated.
type AxiomRecord struct {
	Label     string
	Variables []*ast.Var
	Guards    []Guard
	// Body is the innermost formula after stripping quantifiers and peeling
	// implications.
	Body ast.Formula
	// Constrained is empty for property axioms with no single target.
	Constrained util.Option[ConstrainedSymbol]
	// EquationRHS is non-nil only when the body is an equation whose LHS is
	// a function application; the definedness analysis needs it.
	EquationRHS ast.Term
	// All symbols referenced anywhere in the axiom, guards included.
	ReferencedFns   map[string]bool
	ReferencedPreds map[string]bool
}

// Decompose breaks one axiom into an AxiomRecord.  It is total: every input
// produces a record, never an error.  Axioms whose structure does not fit
// the observer-on-constructor pattern simply come back with no constrained
// symbol.
func Decompose(axiom ast.Axiom) AxiomRecord {
	variables, stripped := stripQuantifiers(axiom.Formula)
	guards, body := extractGuards(stripped)
	constrained, equationRHS := identifyConstrained(body)
	// Collect from the original formula so guard symbols are included.
	fns, preds := ast.CollectSymbols(axiom.Formula)
	//
	return AxiomRecord{
		Label:           axiom.Label,
		Variables:       variables,
		Guards:          guards,
		Body:            body,
		Constrained:     constrained,
		EquationRHS:     equationRHS,
		ReferencedFns:   fns,
		ReferencedPreds: preds,
	}
}

// stripQuantifiers removes leading universal/existential layers,
// concatenating their bound variables in order.  Existentials are rare in
// algebraic specs but the decomposer must handle them for totality.
func stripQuantifiers(formula ast.Formula) ([]*ast.Var, ast.Formula) {
	var variables []*ast.Var
	//
	for {
		switch f := formula.(type) {
		case *ast.UniversalQuant:
			variables = append(variables, f.Variables...)
			formula = f.Body
		case *ast.ExistentialQuant:
			variables = append(variables, f.Variables...)
			formula = f.Body
		default:
			return variables, formula
		}
	}
}

// tryExtractGuard reads a bare predicate application or its negation as a
// guard.  Anything else is not a simple guard.
func tryExtractGuard(formula ast.Formula) (Guard, bool) {
	switch f := formula.(type) {
	case *ast.PredApp:
		return Guard{Pred: f.Pred, Polarity: POSITIVE, Args: f.Args}, true
	case *ast.Negation:
		if inner, ok := f.Body.(*ast.PredApp); ok {
			return Guard{Pred: inner.Pred, Polarity: NEGATIVE, Args: inner.Args}, true
		}
	}
	//
	return Guard{}, false
}

// extractGuards peels leading implications, accumulating simple guards.  A
// Conjunction antecedent halts peeling with the entire remaining implication
// as the body: compound antecedents mark property axioms (antisymmetry,
// transitivity) which must stay unclassified rather than be misread as key
// dispatch.  Any other non-guard antecedent (equation, definedness, ...) is
// skipped, with peeling continuing into the consequent.
func extractGuards(formula ast.Formula) ([]Guard, ast.Formula) {
	var guards []Guard
	//
	for depth := 0; depth < maxPeelDepth; depth++ {
		implication, ok := formula.(*ast.Implication)
		if !ok {
			break
		}
		//
		if guard, ok := tryExtractGuard(implication.Antecedent); ok {
			guards = append(guards, guard)
			formula = implication.Consequent
			//
			continue
		}
		//
		if _, conj := implication.Antecedent.(*ast.Conjunction); conj {
			// Compound antecedent: the whole implication is the body.
			break
		}
		//
		formula = implication.Consequent
	}
	//
	return guards, formula
}

// identifyConstrained determines what symbol the terminal body defines.  The
// second result is the equation RHS when the body is an equation with a
// function application on the left, and nil otherwise.
func identifyConstrained(body ast.Formula) (util.Option[ConstrainedSymbol], ast.Term) {
	switch f := body.(type) {
	case *ast.Equation:
		if app, ok := f.Lhs.(*ast.FnApp); ok {
			return util.Some(ConstrainedSymbol{app.Fn, FUNCTION_SYMBOL}), f.Rhs
		}
		// LHS is a variable, field access or literal — property axiom.
		return util.None[ConstrainedSymbol](), nil
	case *ast.PredApp:
		return util.Some(ConstrainedSymbol{f.Pred, PREDICATE_SYMBOL}), nil
	case *ast.Negation:
		switch inner := f.Body.(type) {
		case *ast.PredApp:
			return util.Some(ConstrainedSymbol{inner.Pred, PREDICATE_SYMBOL}), nil
		case *ast.Definedness:
			if app, ok := inner.Term.(*ast.FnApp); ok {
				return util.Some(ConstrainedSymbol{app.Fn, FUNCTION_SYMBOL}), nil
			}
		}
		//
		return util.None[ConstrainedSymbol](), nil
	case *ast.Biconditional:
		if lhs, ok := f.Lhs.(*ast.PredApp); ok {
			return util.Some(ConstrainedSymbol{lhs.Pred, PREDICATE_SYMBOL}), nil
		}
		// Less common: eq(...) <=> pred(...)
		if rhs, ok := f.Rhs.(*ast.PredApp); ok {
			return util.Some(ConstrainedSymbol{rhs.Pred, PREDICATE_SYMBOL}), nil
		}
		//
		return util.None[ConstrainedSymbol](), nil
	case *ast.Definedness:
		if app, ok := f.Term.(*ast.FnApp); ok {
			return util.Some(ConstrainedSymbol{app.Fn, FUNCTION_SYMBOL}), nil
		}
		//
		return util.None[ConstrainedSymbol](), nil
	default:
		// Conjunction, disjunction, nested implication, bare quantifier —
		// property or structural axioms with no single constrained symbol.
		return util.None[ConstrainedSymbol](), nil
	}
}
