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
	"sort"

	"github.com/formallabs/go-alspec/pkg/ast"
	"github.com/formallabs/go-alspec/pkg/check"
)

// Audit runs the adequacy analyses on a spec: unconstrained symbols, orphan
// sorts, unwitnessed partial functions and case-split completeness.  These
// go beyond well-formedness to detect structural patterns indicating likely
// semantic deficiencies; every check is grounded in AST structure, with no
// string heuristics.  The index is built internally, so no prior call to
// check.Check is required.
func Audit(spec *ast.Spec) []check.Diagnostic {
	index := NewIndex(spec)
	//
	var diags []check.Diagnostic
	diags = append(diags, unconstrainedFns(spec, index)...)
	diags = append(diags, unconstrainedPreds(spec, index)...)
	diags = append(diags, orphanSorts(spec)...)
	diags = append(diags, unwitnessedPartials(spec, index)...)
	diags = append(diags, caseSplits(spec, index)...)
	//
	return diags
}

func auditWarning(checkName string, message string) check.Diagnostic {
	return check.Diagnostic{Check: checkName, Severity: check.WARNING, Message: message}
}

// ============================================================================
// Unconstrained symbols / orphan sorts
// ============================================================================

func unconstrainedFns(spec *ast.Spec, index *AxiomIndex) []check.Diagnostic {
	var diags []check.Diagnostic
	//
	for _, name := range spec.Signature.FnNames() {
		if !index.AllReferencedFns[name] {
			diags = append(diags, auditWarning("unconstrained_fn",
				fmt.Sprintf("Function '%s' is declared but never referenced in any axiom", name)))
		}
	}
	//
	return diags
}

func unconstrainedPreds(spec *ast.Spec, index *AxiomIndex) []check.Diagnostic {
	var diags []check.Diagnostic
	//
	for _, name := range spec.Signature.PredNames() {
		if !index.AllReferencedPreds[name] {
			diags = append(diags, auditWarning("unconstrained_pred",
				fmt.Sprintf("Predicate '%s' is declared but never referenced in any axiom", name)))
		}
	}
	//
	return diags
}

// orphanSorts flags sorts mentioned by no function or predicate profile.
// This is a signature-level check independent of the axiom index.
func orphanSorts(spec *ast.Spec) []check.Diagnostic {
	referenced := make(map[string]bool)
	//
	for _, fn := range spec.Signature.Functions {
		referenced[fn.Result] = true
		for _, p := range fn.Params {
			referenced[p.Sort] = true
		}
	}
	//
	for _, pred := range spec.Signature.Predicates {
		for _, p := range pred.Params {
			referenced[p.Sort] = true
		}
	}
	//
	var diags []check.Diagnostic
	//
	for _, name := range spec.Signature.SortNames() {
		if !referenced[name] {
			diags = append(diags, auditWarning("orphan_sort",
				fmt.Sprintf("Sort '%s' is declared but not referenced in any function or predicate profile", name)))
		}
	}
	//
	return diags
}

// ============================================================================
// Definedness witnesses
// ============================================================================

// DefinitelyDefined reports whether a term is guaranteed to denote a value:
// variables and literals always do; a field access does iff its base does;
// a function application does iff its symbol is TOTAL and every argument
// does.  A partial application is never definitely defined.
func DefinitelyDefined(term ast.Term, sig *ast.Signature) bool {
	switch t := term.(type) {
	case *ast.Var, *ast.Literal:
		return true
	case *ast.FieldAccess:
		return DefinitelyDefined(t.Base, sig)
	case *ast.FnApp:
		fn, ok := sig.Fn(t.Fn)
		if !ok || fn.Totality != ast.TOTAL {
			return false
		}
		//
		for _, arg := range t.Args {
			if !DefinitelyDefined(arg, sig) {
				return false
			}
		}
		//
		return true
	default:
		panic(fmt.Sprintf("unknown term %T", term))
	}
}

// unwitnessedPartials flags every PARTIAL function for which no axiom
// supplies any evidence of definedness.
func unwitnessedPartials(spec *ast.Spec, index *AxiomIndex) []check.Diagnostic {
	var diags []check.Diagnostic
	//
	for _, name := range spec.Signature.FnNames() {
		fn := spec.Signature.Functions[name]
		//
		if fn.Totality != ast.PARTIAL || witnessed(name, spec, index) {
			continue
		}
		//
		diags = append(diags, auditWarning("unwitnessed_partial",
			fmt.Sprintf("Partial function '%s' has no definedness witness: "+
				"no axiom equates it to a definitely-defined term or asserts its definedness", name)))
	}
	//
	return diags
}

// witnessed checks the three witness routes for a partial function: a
// constraining axiom with a definitely-defined equation RHS; a Definedness
// node over the function anywhere (negated or not); or a witnessing
// equation buried somewhere the decomposer could not attribute — e.g. under
// a Conjunction guard.
func witnessed(name string, spec *ast.Spec, index *AxiomIndex) bool {
	sig := spec.Signature
	//
	for _, record := range index.ByConstrained[name] {
		if record.EquationRHS != nil && DefinitelyDefined(record.EquationRHS, sig) {
			return true
		}
	}
	//
	found := false
	//
	for _, axiom := range spec.Axioms {
		ast.WalkFormulas(axiom.Formula, func(f ast.Formula) {
			switch f := f.(type) {
			case *ast.Definedness:
				if app, ok := f.Term.(*ast.FnApp); ok && app.Fn == name {
					found = true
				}
			case *ast.Equation:
				if witnessingEquation(f, name, sig) {
					found = true
				}
			}
		})
	}
	//
	return found
}

// witnessingEquation reports whether an equation pins the given function to
// a definitely-defined other side, in either orientation.
func witnessingEquation(equation *ast.Equation, name string, sig *ast.Signature) bool {
	if app, ok := equation.Lhs.(*ast.FnApp); ok && app.Fn == name {
		if DefinitelyDefined(equation.Rhs, sig) {
			return true
		}
	}
	//
	if app, ok := equation.Rhs.(*ast.FnApp); ok && app.Fn == name {
		if DefinitelyDefined(equation.Lhs, sig) {
			return true
		}
	}
	//
	return false
}

// ============================================================================
// Case-split completeness
// ============================================================================

type splitGroup struct {
	constrained string
	constructor string
	records     []AxiomRecord
}

// caseSplits verifies that guarded axiom groups cover both polarities of
// every dispatch key, an exhaustiveness analysis structurally analogous to
// pattern-match checking.  Groups over a PARTIAL constructor are skipped:
// strict error propagation already makes the undefined case vacuous.
func caseSplits(spec *ast.Spec, index *AxiomIndex) []check.Diagnostic {
	groups := make(map[string]*splitGroup)
	grouped := 0
	//
	for _, record := range index.Records {
		constrained, ok := record.Constrained.Get()
		if !ok {
			continue
		}
		//
		ctor, ok := primaryConstructor(record.Body)
		if !ok {
			continue
		}
		//
		key := constrained.Name + "\x00" + ctor
		//
		if groups[key] == nil {
			groups[key] = &splitGroup{constrained: constrained.Name, constructor: ctor}
		}
		//
		groups[key].records = append(groups[key].records, record)
		grouped++
	}
	//
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	//
	sort.Strings(keys)
	//
	var diags []check.Diagnostic
	//
	for _, key := range keys {
		diags = append(diags, checkGroup(groups[key], spec.Signature)...)
	}
	// Trailing coverage summary.
	diags = append(diags, check.Diagnostic{
		Check:    "case_split_coverage",
		Severity: check.INFO,
		Message: fmt.Sprintf("Case split analysis: %d of %d axioms grouped into %d observer×constructor pairs",
			grouped, len(index.Records), len(groups)),
	})
	//
	return diags
}

func checkGroup(group *splitGroup, sig *ast.Signature) []check.Diagnostic {
	// A partial constructor's undefined case is vacuous under strict error
	// propagation, so no split is demanded.
	if ctor, ok := sig.Fn(group.constructor); ok && ctor.Totality == ast.PARTIAL {
		return nil
	}
	//
	var guarded, unguarded int
	//
	for _, record := range group.records {
		if len(record.Guards) == 0 {
			unguarded++
		} else {
			guarded++
		}
	}
	// An unguarded record covers every key, so no split is required; mixing
	// it with guarded records suggests redundancy.
	if unguarded > 0 {
		if guarded > 0 {
			return []check.Diagnostic{auditWarning("case_split_mixed",
				fmt.Sprintf("Axioms constraining '%s' over constructor '%s' mix guarded and unguarded forms — possible redundancy",
					group.constrained, group.constructor))}
		}
		//
		return nil
	}
	// Purely guarded: every dispatch key must show both polarities.
	polarities := make(map[string]map[Polarity]bool)
	//
	for _, record := range group.records {
		for _, guard := range record.Guards {
			key := guard.Key()
			if polarities[key] == nil {
				polarities[key] = make(map[Polarity]bool)
			}
			//
			polarities[key][guard.Polarity] = true
		}
	}
	//
	guardKeys := make([]string, 0, len(polarities))
	for key := range polarities {
		guardKeys = append(guardKeys, key)
	}
	//
	sort.Strings(guardKeys)
	//
	var diags []check.Diagnostic
	//
	for _, key := range guardKeys {
		seen := polarities[key]
		//
		if seen[POSITIVE] && !seen[NEGATIVE] {
			diags = append(diags, auditWarning("case_split_incomplete",
				fmt.Sprintf("Case split for '%s' over constructor '%s' is missing negative branch for guard %s",
					group.constrained, group.constructor, key)))
		} else if seen[NEGATIVE] && !seen[POSITIVE] {
			diags = append(diags, auditWarning("case_split_incomplete",
				fmt.Sprintf("Case split for '%s' over constructor '%s' is missing positive branch for guard %s",
					group.constrained, group.constructor, key)))
		}
	}
	//
	return diags
}

// primaryConstructor extracts the constructor an axiom body cases over: the
// outer function of the first argument of the body's primary application.
func primaryConstructor(body ast.Formula) (string, bool) {
	var firstArg ast.Term
	//
	switch f := body.(type) {
	case *ast.Equation:
		if app, ok := f.Lhs.(*ast.FnApp); ok && len(app.Args) > 0 {
			firstArg = app.Args[0]
		}
	case *ast.PredApp:
		if len(f.Args) > 0 {
			firstArg = f.Args[0]
		}
	case *ast.Negation:
		switch inner := f.Body.(type) {
		case *ast.PredApp:
			if len(inner.Args) > 0 {
				firstArg = inner.Args[0]
			}
		case *ast.Definedness:
			if app, ok := inner.Term.(*ast.FnApp); ok && len(app.Args) > 0 {
				firstArg = app.Args[0]
			}
		}
	case *ast.Biconditional:
		if lhs, ok := f.Lhs.(*ast.PredApp); ok && len(lhs.Args) > 0 {
			firstArg = lhs.Args[0]
		} else if rhs, ok := f.Rhs.(*ast.PredApp); ok && len(rhs.Args) > 0 {
			firstArg = rhs.Args[0]
		}
	case *ast.Definedness:
		if app, ok := f.Term.(*ast.FnApp); ok && len(app.Args) > 0 {
			firstArg = app.Args[0]
		}
	}
	//
	if app, ok := firstArg.(*ast.FnApp); ok {
		return app.Fn, true
	}
	//
	return "", false
}
