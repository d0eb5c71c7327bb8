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
package match

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/formallabs/go-alspec/pkg/ast"
	"github.com/formallabs/go-alspec/pkg/obligation"
)

// MatchKind says how an axiom relates to obligation cells.
type MatchKind uint

const (
	// DIRECT matches one axiom to one cell (or one PLAIN cell).
	DIRECT MatchKind = iota
	// PRESERVATION matches one axiom to a HIT+MISS pair with no dispatch
	// guard.
	PRESERVATION
	// CONSTRUCTOR_DEF is a partial-constructor definedness biconditional;
	// not a cell.
	CONSTRUCTOR_DEF
	// BASIS is an equality-predicate law (reflexivity, symmetry,
	// transitivity); not a cell.
	BASIS
	// UNMATCHED means no cell could be determined.
	UNMATCHED
)

func (k MatchKind) String() string {
	switch k {
	case DIRECT:
		return "direct"
	case PRESERVATION:
		return "preservation"
	case CONSTRUCTOR_DEF:
		return "constructor_def"
	case BASIS:
		return "basis"
	case UNMATCHED:
		return "unmatched"
	}
	//
	panic("unknown match kind")
}

// AxiomCellMatch is the result of matching one axiom against the table.
type AxiomCellMatch struct {
	Label string
	// Cells this axiom fills; empty for non-cell and unmatched axioms.
	Cells []obligation.Cell
	Kind  MatchKind
	// Reason explains the classification, chiefly for UNMATCHED.
	Reason string
}

// CoverageStatus of a single obligation cell.
type CoverageStatus uint

const (
	// UNCOVERED means no axiom matches the cell.
	UNCOVERED CoverageStatus = iota
	// COVERED means exactly one axiom does.
	COVERED
	// MULTI_COVERED means several do, e.g. sub-case splits.
	MULTI_COVERED
)

func (s CoverageStatus) String() string {
	switch s {
	case UNCOVERED:
		return "uncovered"
	case COVERED:
		return "covered"
	case MULTI_COVERED:
		return "multi"
	}
	//
	panic("unknown coverage status")
}

// CellCoverage pairs a cell with the labels of the axioms filling it.
type CellCoverage struct {
	Cell        obligation.Cell
	AxiomLabels []string
	Status      CoverageStatus
}

// Report is the complete matching report of a spec against its obligation
// table.
type Report struct {
	Matches  []AxiomCellMatch
	Coverage []CellCoverage
	// Aggregates, in table / axiom order.
	UncoveredCells  []obligation.Cell
	UnmatchedAxioms []string
	// NonCellAxioms holds the BASIS and CONSTRUCTOR_DEF labels.
	NonCellAxioms []string
}

// Match matches every axiom of a spec against the obligation table and
// computes per-cell coverage.  It panics if the table is inconsistent with
// the signature, since that means the table was built from a different
// signature — a caller bug, not bad input.
func Match(spec *ast.Spec, table *obligation.Table, sig *ast.Signature) *Report {
	validateTable(table, sig)
	//
	matches := make([]AxiomCellMatch, len(spec.Axioms))
	//
	for i, axiom := range spec.Axioms {
		m := matchAxiom(axiom, table)
		matches[i] = m
		//
		switch m.Kind {
		case UNMATCHED:
			log.Warnf("UNMATCHED axiom %q: %s", axiom.Label, m.Reason)
		case PRESERVATION:
			log.Debugf("PRESERVATION axiom %q covers %d cells", axiom.Label, len(m.Cells))
		}
	}
	//
	coverage := computeCoverage(matches, table)
	//
	report := &Report{Matches: matches, Coverage: coverage}
	//
	for _, cc := range coverage {
		if cc.Status == UNCOVERED {
			report.UncoveredCells = append(report.UncoveredCells, cc.Cell)
		}
	}
	//
	for _, m := range matches {
		switch m.Kind {
		case UNMATCHED:
			report.UnmatchedAxioms = append(report.UnmatchedAxioms, m.Label)
		case CONSTRUCTOR_DEF, BASIS:
			report.NonCellAxioms = append(report.NonCellAxioms, m.Label)
		}
	}
	//
	if len(report.UncoveredCells) > 0 {
		log.Warnf("%d UNCOVERED cells", len(report.UncoveredCells))
	}
	//
	if len(report.UnmatchedAxioms) > 0 {
		log.Warnf("%d UNMATCHED axioms: %v", len(report.UnmatchedAxioms), report.UnmatchedAxioms)
	}
	//
	return report
}

// ============================================================================
// Per-axiom matching
// ============================================================================

func matchAxiom(axiom ast.Axiom, table *obligation.Table) AxiomCellMatch {
	body := peelQuantifiers(axiom.Formula)
	// Partial-constructor definedness biconditionals are not cells.
	if isConstructorDef(body, table.FnRoles) {
		log.Debugf("Axiom %q classified as CONSTRUCTOR_DEF", axiom.Label)
		return AxiomCellMatch{Label: axiom.Label, Kind: CONSTRUCTOR_DEF}
	}
	// Neither are equality-predicate laws.
	if isBasisAxiom(body, table.PredRoles, table.FnRoles) {
		log.Debugf("Axiom %q classified as BASIS", axiom.Label)
		return AxiomCellMatch{Label: axiom.Label, Kind: BASIS}
	}
	//
	guards, conclusion := peelImplications(body)
	//
	obsCtor, ok := findObsCtor(conclusion, table.FnRoles, table.PredRoles)
	if !ok {
		return AxiomCellMatch{
			Label: axiom.Label,
			Kind:  UNMATCHED,
			Reason: fmt.Sprintf(
				"Could not find observer(constructor(...)) pattern in conclusion: %T", conclusion),
		}
	}
	//
	log.Debugf("Axiom %q: extracted (%s, %s, pred=%v)",
		axiom.Label, obsCtor.observer, obsCtor.constructor, obsCtor.isPredicate)
	//
	var candidates []obligation.Cell
	//
	for _, cell := range table.Cells {
		if cell.Observer == obsCtor.observer && cell.Constructor == obsCtor.constructor {
			candidates = append(candidates, cell)
		}
	}
	//
	if len(candidates) == 0 {
		return AxiomCellMatch{
			Label:  axiom.Label,
			Kind:   UNMATCHED,
			Reason: fmt.Sprintf("No obligation cell for (%s, %s)", obsCtor.observer, obsCtor.constructor),
		}
	}
	//
	return resolveDispatch(axiom.Label, candidates, guards)
}

func peelQuantifiers(formula ast.Formula) ast.Formula {
	for {
		switch f := formula.(type) {
		case *ast.UniversalQuant:
			formula = f.Body
		case *ast.ExistentialQuant:
			formula = f.Body
		default:
			return formula
		}
	}
}

// peelImplications collects implication antecedents, returning the guards
// and the final conclusion.  Nested implications flatten: A => (B => C)
// yields guards [A, B] and conclusion C.
func peelImplications(formula ast.Formula) ([]ast.Formula, ast.Formula) {
	var guards []ast.Formula
	//
	for {
		implication, ok := formula.(*ast.Implication)
		if !ok {
			return guards, formula
		}
		//
		guards = append(guards, implication.Antecedent)
		formula = implication.Consequent
	}
}

// ============================================================================
// Special-case classifiers
// ============================================================================

// isConstructorDef detects the definedness biconditional of a partial
// constructor: def(ctor(...)) <=> guard, on either side.
func isConstructorDef(formula ast.Formula, fnRoles map[string]obligation.FnRole) bool {
	iff, ok := formula.(*ast.Biconditional)
	if !ok {
		return false
	}
	//
	for _, side := range []ast.Formula{iff.Lhs, iff.Rhs} {
		def, ok := side.(*ast.Definedness)
		if !ok {
			continue
		}
		//
		if app, ok := def.Term.(*ast.FnApp); ok {
			if role, declared := fnRoles[app.Fn]; declared && role.Kind == obligation.CONSTRUCTOR {
				return true
			}
		}
	}
	//
	return false
}

// isBasisAxiom detects equality-predicate laws: the formula's only
// predicate references are equality predicates, at least one is used, and
// no observer/constructor/selector application appears anywhere.  The last
// condition keeps hit/miss axioms — which use an equality predicate only as
// a guard — out of the basis class.
func isBasisAxiom(formula ast.Formula, predRoles map[string]obligation.PredRole,
	fnRoles map[string]obligation.FnRole) bool {
	eqPreds := make(map[string]bool)
	for name, role := range predRoles {
		if role.Kind == obligation.PRED_EQUALITY {
			eqPreds[name] = true
		}
	}
	//
	if len(eqPreds) == 0 {
		return false
	}
	//
	fns, preds := ast.CollectSymbols(formula)
	//
	if len(preds) == 0 {
		return false
	}
	//
	for pred := range preds {
		if !eqPreds[pred] {
			return false
		}
	}
	//
	for fn := range fns {
		switch fnRoles[fn].Kind {
		case obligation.OBSERVER, obligation.CONSTRUCTOR, obligation.SELECTOR:
			return false
		}
	}
	//
	return true
}

// ============================================================================
// Pattern extraction
// ============================================================================

type obsCtor struct {
	observer    string
	isPredicate bool
	constructor string
}

// findObsCtor searches a conclusion for the observer-on-constructor
// pattern: an observer (or selector) applied to a constructor-rooted first
// argument.
func findObsCtor(formula ast.Formula, fnRoles map[string]obligation.FnRole,
	predRoles map[string]obligation.PredRole) (obsCtor, bool) {
	switch f := formula.(type) {
	case *ast.Equation:
		if result, ok := extractFromTerm(f.Lhs, fnRoles); ok {
			return result, true
		}
		//
		if result, ok := extractFromTerm(f.Rhs, fnRoles); ok {
			log.Debug("Found obs(ctor(...)) on RHS of equation — unusual but valid")
			return result, true
		}
	case *ast.PredApp:
		if len(f.Args) == 0 {
			break
		}
		//
		if role, ok := predRoles[f.Pred]; ok && role.Kind == obligation.PRED_OBSERVER {
			if ctor, ok := ctorRoot(f.Args[0], fnRoles); ok {
				return obsCtor{f.Pred, true, ctor}, true
			}
		}
	case *ast.Negation:
		return findObsCtor(f.Body, fnRoles, predRoles)
	case *ast.Biconditional:
		if result, ok := findObsCtor(f.Lhs, fnRoles, predRoles); ok {
			return result, true
		}
		//
		return findObsCtor(f.Rhs, fnRoles, predRoles)
	case *ast.Definedness:
		return extractFromTerm(f.Term, fnRoles)
	case *ast.Conjunction:
		for _, conjunct := range f.Conjuncts {
			if result, ok := findObsCtor(conjunct, fnRoles, predRoles); ok {
				return result, true
			}
		}
	case *ast.Disjunction:
		for _, disjunct := range f.Disjuncts {
			if result, ok := findObsCtor(disjunct, fnRoles, predRoles); ok {
				return result, true
			}
		}
	case *ast.Implication:
		// Already peeled, but handle a stray one defensively.
		log.Debug("findObsCtor: unexpected implication — peeling missed one?")
		return findObsCtor(f.Consequent, fnRoles, predRoles)
	}
	//
	return obsCtor{}, false
}

// extractFromTerm checks whether a term is observer(constructor(...), ...)
// with the observer classified OBSERVER or SELECTOR.
func extractFromTerm(term ast.Term, fnRoles map[string]obligation.FnRole) (obsCtor, bool) {
	app, ok := term.(*ast.FnApp)
	if !ok || len(app.Args) == 0 {
		return obsCtor{}, false
	}
	//
	role, declared := fnRoles[app.Fn]
	if !declared || (role.Kind != obligation.OBSERVER && role.Kind != obligation.SELECTOR) {
		return obsCtor{}, false
	}
	//
	if ctor, ok := ctorRoot(app.Args[0], fnRoles); ok {
		return obsCtor{app.Fn, false, ctor}, true
	}
	//
	return obsCtor{}, false
}

// ctorRoot returns the constructor name if the term's outermost application
// is one.  Only the outermost level counts: in obs(ctor(inner(...))) the
// outer ctor is the case being split on.
func ctorRoot(term ast.Term, fnRoles map[string]obligation.FnRole) (string, bool) {
	if app, ok := term.(*ast.FnApp); ok {
		if role, declared := fnRoles[app.Fn]; declared && role.Kind == obligation.CONSTRUCTOR {
			return app.Fn, true
		}
	}
	//
	return "", false
}

// ============================================================================
// Dispatch resolution
// ============================================================================

// resolveDispatch decides which candidate cells an axiom fills.  All-PLAIN
// candidates match directly, guards ignored.  A HIT+MISS pair consults the
// guards for the pair's equality predicate: positive means HIT, negated
// means MISS, absent means the axiom preserves the observer across all
// keys and claims both cells.
func resolveDispatch(label string, candidates []obligation.Cell, guards []ast.Formula) AxiomCellMatch {
	var hasHit, hasMiss, hasPlain bool
	//
	for _, cell := range candidates {
		switch cell.Dispatch {
		case obligation.HIT:
			hasHit = true
		case obligation.MISS:
			hasMiss = true
		case obligation.PLAIN:
			hasPlain = true
		}
	}
	//
	if hasPlain && !hasHit && !hasMiss {
		return AxiomCellMatch{Label: label, Cells: candidates, Kind: DIRECT}
	}
	//
	if hasHit && hasMiss {
		cellEqPreds := make(map[string]bool)
		//
		for _, cell := range candidates {
			if eqPred, ok := cell.EqPred.Get(); ok {
				cellEqPreds[eqPred] = true
			}
		}
		//
		if len(cellEqPreds) > 1 {
			log.Warnf("Axiom %q: multiple eq_preds %v for candidates — cannot disambiguate",
				label, cellEqPreds)
			//
			return AxiomCellMatch{
				Label:  label,
				Kind:   UNMATCHED,
				Reason: fmt.Sprintf("Multiple eq_preds in candidate cells: %v", cellEqPreds),
			}
		}
		//
		dispatch, found := classifyGuard(guards, cellEqPreds)
		//
		if !found {
			log.Debugf("Axiom %q: no eq_pred guard in %d guards — classifying as PRESERVATION",
				label, len(guards))
			//
			return AxiomCellMatch{Label: label, Cells: candidates, Kind: PRESERVATION}
		}
		//
		var matched []obligation.Cell
		//
		for _, cell := range candidates {
			if cell.Dispatch == dispatch {
				matched = append(matched, cell)
			}
		}
		//
		if len(matched) == 0 {
			panic(fmt.Sprintf("dispatch=%s but no candidates match — table is inconsistent", dispatch))
		}
		//
		return AxiomCellMatch{Label: label, Cells: matched, Kind: DIRECT}
	}
	// Only HIT or only MISS should not occur since the table always emits
	// pairs.
	log.Warnf("Axiom %q: unexpected dispatch set — expected PLAIN or HIT+MISS", label)
	//
	return AxiomCellMatch{Label: label, Cells: candidates, Kind: DIRECT,
		Reason: "Unexpected dispatch set"}
}

// classifyGuard scans the guards for the pair's specific equality
// predicate, returning on first match.  Scoping the scan to the cells' own
// predicate prevents false matches on domain-level equality guards
// belonging to a different, PLAIN cell.
func classifyGuard(guards []ast.Formula, cellEqPreds map[string]bool) (obligation.CellDispatch, bool) {
	for _, guard := range guards {
		switch g := guard.(type) {
		case *ast.PredApp:
			if cellEqPreds[g.Pred] {
				return obligation.HIT, true
			}
		case *ast.Negation:
			switch inner := g.Body.(type) {
			case *ast.PredApp:
				if cellEqPreds[inner.Pred] {
					return obligation.MISS, true
				}
			case *ast.Conjunction:
				if conjunctionContains(inner, cellEqPreds) {
					return obligation.MISS, true
				}
			}
		case *ast.Conjunction:
			if conjunctionContains(g, cellEqPreds) {
				return obligation.HIT, true
			}
		}
	}
	//
	return obligation.PLAIN, false
}

func conjunctionContains(conjunction *ast.Conjunction, preds map[string]bool) bool {
	for _, conjunct := range conjunction.Conjuncts {
		if app, ok := conjunct.(*ast.PredApp); ok && preds[app.Pred] {
			return true
		}
	}
	//
	return false
}

// ============================================================================
// Coverage
// ============================================================================

// computeCoverage derives per-cell coverage from the matches, preserving
// table cell order.
func computeCoverage(matches []AxiomCellMatch, table *obligation.Table) []CellCoverage {
	cellLabels := make(map[obligation.Cell][]string, len(table.Cells))
	for _, cell := range table.Cells {
		cellLabels[cell] = nil
	}
	//
	for _, m := range matches {
		for _, cell := range m.Cells {
			if _, known := cellLabels[cell]; known {
				cellLabels[cell] = append(cellLabels[cell], m.Label)
			} else {
				log.Errorf("Axiom %q matched cell (%s, %s, %s) not in obligation table",
					m.Label, cell.Observer, cell.Constructor, cell.Dispatch)
			}
		}
	}
	//
	coverage := make([]CellCoverage, len(table.Cells))
	//
	for i, cell := range table.Cells {
		labels := cellLabels[cell]
		//
		status := UNCOVERED
		switch {
		case len(labels) == 1:
			status = COVERED
		case len(labels) > 1:
			status = MULTI_COVERED
		}
		//
		coverage[i] = CellCoverage{Cell: cell, AxiomLabels: labels, Status: status}
	}
	//
	return coverage
}

// validateTable panics when the table names symbols absent from the
// signature, which means it was built from a different signature.
func validateTable(table *obligation.Table, sig *ast.Signature) {
	for _, cell := range table.Cells {
		_, isFn := sig.Fn(cell.Observer)
		_, isPred := sig.Pred(cell.Observer)
		//
		if !isFn && !isPred {
			panic(fmt.Sprintf("cell observer %q not in signature", cell.Observer))
		}
		//
		if _, ok := sig.Fn(cell.Constructor); !ok {
			panic(fmt.Sprintf("cell constructor %q not in signature functions", cell.Constructor))
		}
	}
}
