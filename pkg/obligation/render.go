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
package obligation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/formallabs/go-alspec/pkg/ast"
)

// Render formats the obligation table as markdown, one section per generated
// sort: a role summary, the obligation grid, notes on equality basis axioms
// and partial-constructor definedness, and an expected axiom count.  The
// output is stable across runs.
func Render(sig *ast.Signature, table *Table) string {
	var parts []string
	// Group cells by generated sort.
	sortCells := make(map[ast.SortRef][]Cell)
	for _, cell := range table.Cells {
		sortCells[cell.GeneratedSort] = append(sortCells[cell.GeneratedSort], cell)
	}
	//
	partialFns := make(map[string]bool)
	for name, fn := range sig.Functions {
		if fn.Totality == ast.PARTIAL {
			partialFns[name] = true
		}
	}
	//
	for _, genSort := range sig.GeneratedSortNames() {
		cells := sortCells[genSort]
		ctorNames := sig.Generated[genSort].Constructors
		//
		parts = append(parts, renderSortSection(sig, table, genSort, cells, ctorNames, partialFns)...)
	}
	//
	return strings.Join(parts, "\n")
}

func renderSortSection(sig *ast.Signature, table *Table, genSort ast.SortRef,
	cells []Cell, ctorNames []string, partialFns map[string]bool) []string {
	var parts []string
	//
	fnObservers := roleNames(table.FnRoles, OBSERVER, genSort)
	predObservers := predRoleNames(table.PredRoles, PRED_OBSERVER, genSort)
	constants := roleNames(table.FnRoles, CONSTANT, "")
	uninterpreted := roleNames(table.FnRoles, UNINTERPRETED, "")
	equalityPreds := predRoleNames(table.PredRoles, PRED_EQUALITY, "")
	//
	var partialConstructors []string
	for _, ctor := range ctorNames {
		if partialFns[ctor] {
			partialConstructors = append(partialConstructors, ctor)
		}
	}
	// Header and role summary.
	parts = append(parts, fmt.Sprintf("### Obligation Table: `%s`\n", genSort))
	parts = append(parts, "**Roles:**\n")
	parts = append(parts, fmt.Sprintf("- Constructors: %s", fnList(ctorNames, partialFns, sig)))
	//
	if len(fnObservers) > 0 {
		parts = append(parts, fmt.Sprintf("- Function observers: %s", fnList(fnObservers, partialFns, sig)))
	}
	//
	if len(predObservers) > 0 {
		parts = append(parts, fmt.Sprintf("- Predicate observers: %s", backtickList(predObservers)))
	}
	//
	if len(constants) > 0 {
		parts = append(parts, fmt.Sprintf("- Constants: %s", backtickList(constants)))
	}
	//
	if len(uninterpreted) > 0 {
		parts = append(parts, fmt.Sprintf("- Uninterpreted: %s", backtickList(uninterpreted)))
	}
	//
	if len(equalityPreds) > 0 {
		parts = append(parts, fmt.Sprintf("- Equality predicates: %s", backtickList(equalityPreds)))
	}
	//
	parts = append(parts, "")
	// Key dispatch summary.
	keySorts := make(map[string]bool)
	eqPredsUsed := make(map[string]bool)
	//
	for _, cell := range cells {
		if keySort, ok := cell.KeySort.Get(); ok {
			keySorts[string(keySort)] = true
		}
		//
		if eqPred, ok := cell.EqPred.Get(); ok {
			eqPredsUsed[eqPred] = true
		}
	}
	//
	if len(keySorts) > 0 {
		parts = append(parts, fmt.Sprintf("**Key dispatch:** %s over %s\n",
			backtickList(sortedNames(eqPredsUsed)), backtickList(sortedNames(keySorts))))
	}
	// The obligation grid.
	parts = append(parts, "| # | Observer | Constructor | Dispatch | Fill guidance |")
	parts = append(parts, "|---|----------|------------|----------|---------------|")
	//
	for i, cell := range cells {
		parts = append(parts, renderCellRow(i+1, cell, sig, partialFns))
	}
	//
	parts = append(parts, "")
	// Extra axioms needed outside the table.
	var extras []string
	//
	for _, eqPred := range equalityPreds {
		extras = append(extras, fmt.Sprintf(
			"- **`%s` basis:** reflexivity, symmetry, transitivity (3 axioms)", eqPred))
	}
	//
	for _, ctor := range partialConstructors {
		extras = append(extras, fmt.Sprintf(
			"- **`%s` definedness:** write a `Definedness` biconditional stating when `%s` is defined (1 axiom)",
			ctor, ctor))
	}
	//
	if len(extras) > 0 {
		parts = append(parts, "**Additional axioms (outside the table):**\n")
		parts = append(parts, extras...)
		parts = append(parts, "")
	}
	// Cell count summary.
	nExtra := len(equalityPreds)*3 + len(partialConstructors)
	countLine := fmt.Sprintf("**Expected axiom count:** %d obligation cells", len(cells))
	//
	if nExtra > 0 {
		countLine += fmt.Sprintf(" + %d additional = %d minimum", nExtra, len(cells)+nExtra)
	}
	//
	parts = append(parts, countLine+"\n")
	parts = append(parts,
		"Note: Some hit+miss pairs may collapse into a single universal preservation "+
			"axiom if the constructor does not affect the observer for any key. The actual "+
			"axiom count may be lower than the cell count.\n")
	//
	return parts
}

func renderCellRow(index int, cell Cell, sig *ast.Signature, partialFns map[string]bool) string {
	obsType := "fn"
	if cell.ObserverIsPredicate {
		obsType = "pred"
	}
	//
	obsIsPartial := partialFns[cell.Observer] && !cell.ObserverIsPredicate
	obsLabel := fmt.Sprintf("`%s` (%s)", cell.Observer, obsType)
	//
	if obsIsPartial {
		obsLabel += " _(partial)_"
	}
	//
	ctorLabel := fmt.Sprintf("`%s`", cell.Constructor)
	if partialFns[cell.Constructor] {
		ctorLabel += " _(partial)_"
	}
	//
	var dispatchStr string
	//
	switch cell.Dispatch {
	case PLAIN:
		dispatchStr = "—"
	case HIT:
		dispatchStr = fmt.Sprintf("hit (`%s`)", cell.EqPred.Unwrap())
	case MISS:
		dispatchStr = fmt.Sprintf("miss (`¬%s`)", cell.EqPred.Unwrap())
	}
	//
	guidance := cellGuidance(cell, sig, obsIsPartial)
	//
	return fmt.Sprintf("| %d | %s | %s | %s | %s |", index, obsLabel, ctorLabel, dispatchStr, guidance)
}

// cellGuidance phrases what kind of axiom a cell expects, specialised by
// dispatch, observer partiality and whether the constructor is a base
// (nullary) one.
func cellGuidance(cell Cell, sig *ast.Signature, obsIsPartial bool) string {
	ctorIsBase := sig.Functions[cell.Constructor].IsConstant()
	//
	switch cell.Dispatch {
	case HIT:
		switch {
		case obsIsPartial:
			return "Key match: write equation, `¬def(...)`, or guarded equation"
		case cell.ObserverIsPredicate:
			return "Key match: write predicate assertion or biconditional"
		default:
			return "Key match: write equation for the new/updated value"
		}
	case MISS:
		return "Key miss: delegate to inner state (preservation)"
	default:
		switch {
		case ctorIsBase && obsIsPartial:
			return "Base ctor + partial obs: omit (safe) or write `¬def(...)`"
		case ctorIsBase && cell.ObserverIsPredicate:
			return "Base ctor: typically false/negated"
		case ctorIsBase:
			return "Base ctor: define initial value"
		default:
			return "Write equation or biconditional"
		}
	}
}

// fnList formats function names with profiles and partial markers, e.g.
// "`push : Stack × Elem → Stack`".
func fnList(names []string, partialFns map[string]bool, sig *ast.Signature) string {
	items := make([]string, len(names))
	//
	for i, name := range names {
		fn := sig.Functions[name]
		//
		params := make([]string, len(fn.Params))
		for j, p := range fn.Params {
			params[j] = string(p.Sort)
		}
		//
		arrow := "→"
		if partialFns[name] {
			arrow = "→?"
		}
		//
		profile := fmt.Sprintf("%s %s", arrow, fn.Result)
		if len(params) > 0 {
			profile = fmt.Sprintf("%s %s %s", strings.Join(params, " × "), arrow, fn.Result)
		}
		//
		items[i] = fmt.Sprintf("`%s : %s`", name, profile)
	}
	//
	return strings.Join(items, ", ")
}

func backtickList(names []string) string {
	items := make([]string, len(names))
	for i, name := range names {
		items[i] = fmt.Sprintf("`%s`", name)
	}
	//
	return strings.Join(items, ", ")
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	return names
}

func roleNames(roles map[string]FnRole, kind FnKind, genSort ast.SortRef) []string {
	var names []string
	//
	for name, role := range roles {
		if role.Kind == kind && (genSort == "" || role.Sort == genSort) {
			names = append(names, name)
		}
	}
	//
	sort.Strings(names)
	//
	return names
}

func predRoleNames(roles map[string]PredRole, kind PredKind, genSort ast.SortRef) []string {
	var names []string
	//
	for name, role := range roles {
		if role.Kind == kind && (genSort == "" || role.Sort == genSort) {
			names = append(names, name)
		}
	}
	//
	sort.Strings(names)
	//
	return names
}
