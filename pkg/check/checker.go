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
package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/formallabs/go-alspec/pkg/ast"
)

// Check verifies well-formedness of a spec: sort resolution, arity and
// argument-sort checking, quantifier scoping, plus a handful of hygiene
// warnings (unused variables, trivial axioms, obligation coverage).  The
// returned diagnostics are sorted by (severity, check, axiom) so output is
// deterministic.
func Check(spec *ast.Spec) *CheckResult {
	ctx := &context{sig: spec.Signature}
	//
	ctx.checkSignature(spec)
	ctx.checkDuplicateLabels(spec)
	//
	for _, ax := range spec.Axioms {
		ctx.beginAxiom(ax.Label)
		ctx.checkFormula(ax.Formula, "formula")
		ctx.checkTrivialAxiom(ax)
	}
	//
	ctx.checkObligationCoverage(spec)
	//
	SortDiagnostics(ctx.diags)
	//
	return &CheckResult{SpecName: spec.Name, Diagnostics: ctx.diags}
}

// ============================================================================
// Checker context
// ============================================================================

// context accumulates diagnostics during one run of the checker, along with
// the quantifier scope stack of the axiom currently being traversed.
type context struct {
	sig   *ast.Signature
	axiom string
	diags []Diagnostic
	// Stack of quantifier scopes, innermost last.
	scopes []map[string]ast.SortRef
	// First sort observed for each variable name within the current axiom.
	axiomVars map[string]ast.SortRef
}

func (c *context) error(check string, message string, path string) {
	c.diags = append(c.diags, Diagnostic{check, ERROR, c.axiom, message, path})
}

func (c *context) warning(check string, message string, path string) {
	c.diags = append(c.diags, Diagnostic{check, WARNING, c.axiom, message, path})
}

func (c *context) beginAxiom(label string) {
	c.axiom = label
	c.axiomVars = make(map[string]ast.SortRef)
	c.scopes = nil
}

func (c *context) pushScope(vars []*ast.Var) {
	scope := make(map[string]ast.SortRef, len(vars))
	for _, v := range vars {
		scope[v.Name] = v.Sort
	}
	//
	c.scopes = append(c.scopes, scope)
}

func (c *context) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

func (c *context) varSort(name string) (ast.SortRef, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if sort, ok := c.scopes[i][name]; ok {
			return sort, true
		}
	}
	//
	return "", false
}

// observeVar records the sort a variable name was seen with, reporting an
// error if it differs from an earlier occurrence within the same axiom.
func (c *context) observeVar(name string, sort ast.SortRef, path string) {
	if seen, ok := c.axiomVars[name]; ok {
		if seen != sort {
			c.error("var_sort_consistent",
				fmt.Sprintf("Variable '%s' appears with sort '%s' and '%s'", name, seen, sort), path)
		}
	} else {
		c.axiomVars[name] = sort
	}
}

// ============================================================================
// Signature-level checks
// ============================================================================

func (c *context) checkSignature(spec *ast.Spec) {
	c.axiom = ""
	sig := spec.Signature
	// sort_name_consistency
	for _, name := range sig.SortNames() {
		if decl := sig.Sorts[name]; decl.Name() != name {
			c.error("sort_name_consistency",
				fmt.Sprintf("Sort key '%s' does not match sort name '%s'", name, decl.Name()), "")
		}
	}
	// sort_resolved
	for _, name := range sig.FnNames() {
		fn := sig.Functions[name]
		if _, ok := sig.Sorts[fn.Result]; !ok {
			c.error("sort_resolved",
				fmt.Sprintf("Result sort '%s' in function '%s' is not declared", fn.Result, fn.Name), "")
		}
		//
		for _, p := range fn.Params {
			if _, ok := sig.Sorts[p.Sort]; !ok {
				c.error("sort_resolved",
					fmt.Sprintf("Parameter sort '%s' in function '%s' is not declared", p.Sort, fn.Name), "")
			}
		}
	}
	//
	for _, name := range sig.PredNames() {
		pred := sig.Predicates[name]
		for _, p := range pred.Params {
			if _, ok := sig.Sorts[p.Sort]; !ok {
				c.error("sort_resolved",
					fmt.Sprintf("Parameter sort '%s' in predicate '%s' is not declared", p.Sort, pred.Name), "")
			}
		}
	}
	// product_sort_fields_resolved / coproduct_sort_alts_resolved
	for _, name := range sig.SortNames() {
		switch decl := sig.Sorts[name].(type) {
		case *ast.ProductSort:
			for _, f := range decl.Fields {
				if _, ok := sig.Sorts[f.Sort]; !ok {
					c.error("product_sort_fields_resolved",
						fmt.Sprintf("Field '%s' sort '%s' is not declared", f.FieldName, f.Sort), "")
				}
			}
		case *ast.CoproductSort:
			for _, a := range decl.Alts {
				if _, ok := sig.Sorts[a.Sort]; !ok {
					c.error("coproduct_sort_alts_resolved",
						fmt.Sprintf("Alt '%s' sort '%s' is not declared", a.Tag, a.Sort), "")
				}
			}
		}
	}
	// no_name_collisions
	counts := make(map[string]int)
	for name := range sig.Sorts {
		counts[name]++
	}
	//
	for name := range sig.Functions {
		counts[name]++
	}
	//
	for name := range sig.Predicates {
		counts[name]++
	}
	//
	for _, name := range sortedCountKeys(counts) {
		if counts[name] > 1 {
			c.error("no_name_collisions", fmt.Sprintf("Name '%s' has a collision", name), "")
		}
	}
	// no_empty_sorts
	c.checkEmptySorts(sig)
}

// checkEmptySorts warns about sorts no symbol profile, product field or
// coproduct alternative ever mentions.
func (c *context) checkEmptySorts(sig *ast.Signature) {
	referenced := make(map[string]bool)
	//
	for _, fn := range sig.Functions {
		referenced[fn.Result] = true
		for _, p := range fn.Params {
			referenced[p.Sort] = true
		}
	}
	//
	for _, pred := range sig.Predicates {
		for _, p := range pred.Params {
			referenced[p.Sort] = true
		}
	}
	//
	for _, decl := range sig.Sorts {
		switch decl := decl.(type) {
		case *ast.ProductSort:
			for _, f := range decl.Fields {
				referenced[f.Sort] = true
			}
		case *ast.CoproductSort:
			for _, a := range decl.Alts {
				referenced[a.Sort] = true
			}
		}
	}
	//
	for _, name := range sig.SortNames() {
		if !referenced[name] {
			c.warning("no_empty_sorts",
				fmt.Sprintf("Sort '%s' is not referenced by any function or predicate", name), "")
		}
	}
}

func (c *context) checkDuplicateLabels(spec *ast.Spec) {
	c.axiom = ""
	seen := make(map[string]bool)
	//
	for _, ax := range spec.Axioms {
		if seen[ax.Label] {
			c.error("duplicate_axiom_labels", fmt.Sprintf("Duplicate axiom label '%s'", ax.Label), "")
		}
		//
		seen[ax.Label] = true
	}
}

// ============================================================================
// Term and formula checks
// ============================================================================

// checkTerm type-checks a term, returning its sort.  A false flag means the
// sort could not be determined (a diagnostic has been reported).
func (c *context) checkTerm(term ast.Term, path string) (ast.SortRef, bool) {
	if term == nil {
		c.error("formula_term_separation", "Expected Term, got nothing", path)
		return "", false
	}
	//
	switch t := term.(type) {
	case *ast.Var:
		if _, bound := c.varSort(t.Name); !bound {
			c.error("var_bound",
				fmt.Sprintf("Variable '%s' is not bound by any quantifier", t.Name), path)
			//
			return "", false
		}
		//
		c.observeVar(t.Name, t.Sort, path)
		//
		return t.Sort, true
	case *ast.FnApp:
		fn, ok := c.sig.Fn(t.Fn)
		if !ok {
			c.error("fn_declared", fmt.Sprintf("Function '%s' is not declared", t.Fn), path)
			return "", false
		}
		//
		if len(t.Args) != len(fn.Params) {
			c.error("fn_arity",
				fmt.Sprintf("Function '%s' expects %d arguments, got %d", t.Fn, len(fn.Params), len(t.Args)), path)
		} else {
			for i, arg := range t.Args {
				argPath := fmt.Sprintf("%s.args[%d]", path, i)
				if argSort, ok := c.checkTerm(arg, argPath); ok && argSort != fn.Params[i].Sort {
					c.error("fn_arg_sorts",
						fmt.Sprintf("Argument %d to '%s' expected sort '%s', got '%s'",
							i, t.Fn, fn.Params[i].Sort, argSort), argPath)
				}
			}
		}
		//
		return fn.Result, true
	case *ast.FieldAccess:
		baseSort, ok := c.checkTerm(t.Base, path+".base")
		if !ok {
			return "", false
		}
		//
		decl, ok := c.sig.Sort(baseSort)
		if !ok || decl.Kind() != ast.SORT_PRODUCT {
			c.error("field_access_valid",
				fmt.Sprintf("Term has sort '%s' which is not a product sort", baseSort), path)
			//
			return "", false
		}
		//
		fieldSort, ok := decl.(*ast.ProductSort).FieldSort(t.Field)
		if !ok {
			c.error("field_access_valid",
				fmt.Sprintf("Field '%s' not found on product sort '%s'", t.Field, baseSort), path)
			//
			return "", false
		}
		//
		return fieldSort, true
	case *ast.Literal:
		if _, ok := c.sig.Sort(t.Sort); !ok {
			c.error("sort_resolved", fmt.Sprintf("Sort '%s' in literal is not declared", t.Sort), path)
			return "", false
		}
		//
		return t.Sort, true
	default:
		c.error("formula_term_separation", fmt.Sprintf("Expected Term, got %T", term), path)
		return "", false
	}
}

func (c *context) checkFormula(formula ast.Formula, path string) {
	if formula == nil {
		c.error("formula_term_separation", "Expected Formula, got nothing", path)
		return
	}
	//
	switch f := formula.(type) {
	case *ast.Equation:
		lhsSort, lhsOk := c.checkTerm(f.Lhs, path+".lhs")
		rhsSort, rhsOk := c.checkTerm(f.Rhs, path+".rhs")
		//
		if lhsOk && rhsOk && lhsSort != rhsSort {
			c.error("equation_sort_match",
				fmt.Sprintf("LHS sort '%s' does not match RHS sort '%s'", lhsSort, rhsSort), path)
		}
	case *ast.PredApp:
		pred, ok := c.sig.Pred(f.Pred)
		if !ok {
			c.error("pred_declared", fmt.Sprintf("Predicate '%s' is not declared", f.Pred), path)
		} else if len(f.Args) != len(pred.Params) {
			c.error("pred_arity",
				fmt.Sprintf("Predicate '%s' expects %d arguments, got %d", f.Pred, len(pred.Params), len(f.Args)), path)
		} else {
			for i, arg := range f.Args {
				argPath := fmt.Sprintf("%s.args[%d]", path, i)
				if argSort, ok := c.checkTerm(arg, argPath); ok && argSort != pred.Params[i].Sort {
					c.error("pred_arg_sorts",
						fmt.Sprintf("Argument %d to predicate '%s' expected '%s', got '%s'",
							i, f.Pred, pred.Params[i].Sort, argSort), argPath)
				}
			}
		}
	case *ast.Negation:
		c.checkFormula(f.Body, path+".body")
	case *ast.Conjunction:
		for i, conjunct := range f.Conjuncts {
			c.checkFormula(conjunct, fmt.Sprintf("%s.conjuncts[%d]", path, i))
		}
	case *ast.Disjunction:
		for i, disjunct := range f.Disjuncts {
			c.checkFormula(disjunct, fmt.Sprintf("%s.disjuncts[%d]", path, i))
		}
	case *ast.Implication:
		c.checkFormula(f.Antecedent, path+".antecedent")
		c.checkFormula(f.Consequent, path+".consequent")
	case *ast.Biconditional:
		c.checkFormula(f.Lhs, path+".lhs")
		c.checkFormula(f.Rhs, path+".rhs")
	case *ast.UniversalQuant:
		c.checkQuantifier(f.Variables, f.Body, path)
	case *ast.ExistentialQuant:
		c.checkQuantifier(f.Variables, f.Body, path)
	case *ast.Definedness:
		c.checkTerm(f.Term, path+".term")
	default:
		c.error("formula_term_separation", fmt.Sprintf("Expected Formula, got %T", formula), path)
	}
}

func (c *context) checkQuantifier(vars []*ast.Var, body ast.Formula, path string) {
	for i, v := range vars {
		c.observeVar(v.Name, v.Sort, fmt.Sprintf("%s.variables[%d]", path, i))
	}
	//
	c.pushScope(vars)
	c.checkFormula(body, path+".body")
	c.popScope()
	// var_used
	used := make(map[string]bool)
	ast.CollectVars(body, used)
	//
	for _, v := range vars {
		if !used[v.Name] {
			c.warning("var_used",
				fmt.Sprintf("Variable '%s' is quantified but never used", v.Name), path)
		}
	}
}

// ============================================================================
// Axiom-level hygiene
// ============================================================================

// checkTrivialAxiom flags axioms whose quantifier-stripped body equates a
// side with itself.  Ground tautologies over constants (c() = c()) are left
// alone — they legitimately anchor an otherwise unreferenced symbol.
func (c *context) checkTrivialAxiom(ax ast.Axiom) {
	body := ax.Formula
	//
	for {
		switch f := body.(type) {
		case *ast.UniversalQuant:
			body = f.Body
			continue
		case *ast.ExistentialQuant:
			body = f.Body
			continue
		}
		//
		break
	}
	//
	switch f := body.(type) {
	case *ast.Equation:
		if ast.TermsEqual(f.Lhs, f.Rhs) && termHasVar(f.Lhs) {
			c.warning("trivial_axiom", "Axiom is trivially true: both equation sides are identical", "")
		}
	case *ast.Biconditional:
		if ast.FormulasEqual(f.Lhs, f.Rhs) && formulaHasVar(f.Lhs) {
			c.warning("trivial_axiom", "Axiom is trivially true: both biconditional sides are identical", "")
		}
	}
}

// ============================================================================
// Obligation coverage
// ============================================================================

// checkObligationCoverage warns when a total observer of some sort never
// co-occurs syntactically with one of the sort's constructors in any axiom.
// Partial observers are deliberately exempt: their missing cases are covered
// by the definedness analysis instead, and a generic warning here would be
// noise.
func (c *context) checkObligationCoverage(spec *ast.Spec) {
	c.axiom = ""
	sig := spec.Signature
	// Pre-compute the symbol sets referenced by each axiom.
	axFns := make([]map[string]bool, len(spec.Axioms))
	axPreds := make([]map[string]bool, len(spec.Axioms))
	//
	for i, ax := range spec.Axioms {
		axFns[i], axPreds[i] = ast.CollectSymbols(ax.Formula)
	}
	//
	cooccurs := func(observer string, observerIsPred bool, ctor string) bool {
		for i := range spec.Axioms {
			var hasObserver bool
			if observerIsPred {
				hasObserver = axPreds[i][observer]
			} else {
				hasObserver = axFns[i][observer]
			}
			//
			if hasObserver && axFns[i][ctor] {
				return true
			}
		}
		//
		return false
	}
	//
	for _, sortName := range sig.SortNames() {
		// Constructors: functions producing this sort.
		var ctors []string
		//
		for _, name := range sig.FnNames() {
			if sig.Functions[name].Result == sortName {
				ctors = append(ctors, name)
			}
		}
		//
		if len(ctors) == 0 {
			continue
		}
		// Total function observers, then predicate observers.
		for _, name := range sig.FnNames() {
			fn := sig.Functions[name]
			isObserver := len(fn.Params) > 0 && fn.Params[0].Sort == sortName && fn.Result != sortName
			//
			if !isObserver || fn.Totality == ast.PARTIAL {
				continue
			}
			//
			c.reportMissingCoverage(name, false, sortName, ctors, cooccurs)
		}
		//
		for _, name := range sig.PredNames() {
			pred := sig.Predicates[name]
			if len(pred.Params) > 0 && pred.Params[0].Sort == sortName {
				c.reportMissingCoverage(name, true, sortName, ctors, cooccurs)
			}
		}
	}
}

func (c *context) reportMissingCoverage(observer string, observerIsPred bool, sortName string,
	ctors []string, cooccurs func(string, bool, string) bool) {
	var missing []string
	//
	for _, ctor := range ctors {
		if !cooccurs(observer, observerIsPred, ctor) {
			missing = append(missing, ctor)
		}
	}
	//
	if len(missing) > 0 {
		c.warning("obligation_coverage",
			fmt.Sprintf("Total observer '%s' of sort '%s' has no axiom relating it to constructor(s): %s",
				observer, sortName, strings.Join(missing, ", ")), "")
	}
}

// ============================================================================
// Helpers
// ============================================================================

func termHasVar(term ast.Term) bool {
	switch t := term.(type) {
	case *ast.Var:
		return true
	case *ast.Literal:
		return false
	case *ast.FnApp:
		for _, arg := range t.Args {
			if termHasVar(arg) {
				return true
			}
		}
		//
		return false
	case *ast.FieldAccess:
		return termHasVar(t.Base)
	default:
		panic(fmt.Sprintf("unknown term %T", term))
	}
}

func formulaHasVar(formula ast.Formula) bool {
	vars := make(map[string]bool)
	ast.CollectVars(formula, vars)
	//
	return len(vars) > 0
}

func sortedCountKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	//
	sort.Strings(keys)
	//
	return keys
}
