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
	"sort"

	"github.com/formallabs/go-alspec/pkg/ast"
	"github.com/formallabs/go-alspec/pkg/util"
)

// CellDispatch says how an obligation cell is dispatched.
type CellDispatch uint

const (
	// PLAIN cells need a single axiom with no key dispatch.
	PLAIN CellDispatch = iota
	// HIT cells cover the case where the key equality holds.
	HIT
	// MISS cells cover the case where the key equality fails.
	MISS
)

func (d CellDispatch) String() string {
	switch d {
	case PLAIN:
		return "plain"
	case HIT:
		return "hit"
	case MISS:
		return "miss"
	}
	//
	panic("unknown dispatch")
}

// CellTier says how mechanically the cell's axiom can be derived.
type CellTier uint

const (
	// DOMAIN cells depend on domain semantics; someone has to decide the
	// axiom.
	DOMAIN CellTier = iota
	// SELECTOR_EXTRACT cells apply a selector to its home constructor; the
	// axiom is mechanically selector(ctor(..., x, ...)) = x.
	SELECTOR_EXTRACT
	// SELECTOR_FOREIGN cells apply a selector to a constructor it does not
	// belong to; under the free-type convention the selector is undefined
	// there.
	SELECTOR_FOREIGN
)

func (t CellTier) String() string {
	switch t {
	case DOMAIN:
		return "domain"
	case SELECTOR_EXTRACT:
		return "selector_extract"
	case SELECTOR_FOREIGN:
		return "selector_foreign"
	}
	//
	panic("unknown tier")
}

// Cell is one slot of the obligation table: "observer O applied to
// constructor C needs an axiom".  When key dispatch applies the slot splits
// into a HIT and a MISS cell sharing the same equality predicate.  Cells
// are comparable values, usable directly as map keys.
type Cell struct {
	Observer            string
	ObserverIsPredicate bool
	Constructor         string
	GeneratedSort       ast.SortRef
	Dispatch            CellDispatch
	Tier                CellTier
	// KeySort and EqPred are set exactly when Dispatch is HIT or MISS.
	KeySort util.Option[ast.SortRef]
	EqPred  util.Option[string]
	// HomeConstructor names the constructor owning the observer when it is
	// a selector; empty otherwise.
	HomeConstructor string
	// ExtractsSort is the extracted component sort for SELECTOR_EXTRACT
	// cells; empty otherwise.
	ExtractsSort ast.SortRef
}

// Table is the complete obligation table of one signature: the cell grid
// plus the role classification it was derived from.  Built once, never
// mutated.
type Table struct {
	Cells     []Cell
	FnRoles   map[string]FnRole
	PredRoles map[string]PredRole
}

// CellsForObserver returns every cell whose observer has the given name.
func (t *Table) CellsForObserver(name string) []Cell {
	var matched []Cell
	//
	for _, cell := range t.Cells {
		if cell.Observer == name {
			matched = append(matched, cell)
		}
	}
	//
	return matched
}

// CellsForConstructor returns every cell whose constructor has the given
// name.
func (t *Table) CellsForConstructor(name string) []Cell {
	var matched []Cell
	//
	for _, cell := range t.Cells {
		if cell.Constructor == name {
			matched = append(matched, cell)
		}
	}
	//
	return matched
}

// EqualityPreds returns the registered equality predicates as a map from
// keyed sort to predicate name.
func (t *Table) EqualityPreds() map[ast.SortRef]string {
	preds := make(map[ast.SortRef]string)
	//
	for name, role := range t.PredRoles {
		if role.Kind == PRED_EQUALITY {
			preds[role.Sort] = name
		}
	}
	//
	return preds
}

// ============================================================================
// Table construction
// ============================================================================

// Build computes the obligation table of a signature.  It is a pure
// function of the generated-sort annotations: generated sorts are visited
// in lexicographic order, constructors in declaration order and observers
// in lexicographic order, since this ordering is externally observable in
// the emitted cell sequence.
func Build(sig *ast.Signature) *Table {
	fnRoles := ClassifyFunctions(sig)
	predRoles := ClassifyPredicates(sig)
	//
	equalityPreds := make(map[ast.SortRef]string)
	for name, role := range predRoles {
		if role.Kind == PRED_EQUALITY {
			equalityPreds[role.Sort] = name
		}
	}
	//
	var cells []Cell
	//
	for _, genSort := range sig.GeneratedSortNames() {
		info := sig.Generated[genSort]
		fnObservers := observerFns(sig, fnRoles, genSort)
		predObservers := observerPreds(sig, predRoles, genSort)
		//
		for _, ctorName := range info.Constructors {
			ctor := sig.Functions[ctorName]
			//
			for _, obs := range fnObservers {
				tier, homeCtor, extracts := computeTier(obs.Name, ctorName, genSort, fnRoles, sig)
				cells = appendCells(cells, Cell{
					Observer:        obs.Name,
					Constructor:     ctorName,
					GeneratedSort:   genSort,
					Tier:            tier,
					HomeConstructor: homeCtor,
					ExtractsSort:    extracts,
				}, detectKeyDispatch(obs.Params, ctor, equalityPreds, genSort))
			}
			//
			for _, obs := range predObservers {
				cells = appendCells(cells, Cell{
					Observer:            obs.Name,
					ObserverIsPredicate: true,
					Constructor:         ctorName,
					GeneratedSort:       genSort,
					Tier:                DOMAIN,
				}, detectKeyDispatch(obs.Params, ctor, equalityPreds, genSort))
			}
		}
	}
	//
	return &Table{Cells: cells, FnRoles: fnRoles, PredRoles: predRoles}
}

// keyDispatch captures a detected dispatch requirement.
type keyDispatch struct {
	keySort ast.SortRef
	eqPred  string
}

// detectKeyDispatch decides whether an (observer, constructor) pair needs
// key dispatch: both must share a parameter sort K distinct from the
// generated sort, and K must carry a registered equality predicate.  The
// observer's first (state) parameter is excluded.
func detectKeyDispatch(observerParams []ast.Param, ctor *ast.FnSymbol,
	equalityPreds map[ast.SortRef]string, genSort ast.SortRef) util.Option[keyDispatch] {
	observerSorts := make(map[ast.SortRef]bool)
	for _, p := range observerParams[1:] {
		observerSorts[p.Sort] = true
	}
	//
	var shared []ast.SortRef
	//
	for _, p := range ctor.Params {
		if p.Sort != genSort && observerSorts[p.Sort] {
			shared = append(shared, p.Sort)
		}
	}
	// Sorted for determinism.
	sort.Strings(shared)
	//
	for _, keySort := range shared {
		if eqPred, ok := equalityPreds[keySort]; ok {
			return util.Some(keyDispatch{keySort, eqPred})
		}
	}
	//
	return util.None[keyDispatch]()
}

// appendCells emits either a HIT/MISS pair or a single PLAIN cell for the
// given prototype.
func appendCells(cells []Cell, prototype Cell, dispatch util.Option[keyDispatch]) []Cell {
	if kd, ok := dispatch.Get(); ok {
		prototype.KeySort = util.Some(kd.keySort)
		prototype.EqPred = util.Some(kd.eqPred)
		//
		hit, miss := prototype, prototype
		hit.Dispatch = HIT
		miss.Dispatch = MISS
		//
		return append(cells, hit, miss)
	}
	//
	prototype.Dispatch = PLAIN
	//
	return append(cells, prototype)
}

// computeTier decides how mechanically a function-observer cell can be
// filled: selectors on their home constructor extract a component, selectors
// on a foreign constructor default to undefined, everything else is domain
// work.
func computeTier(observer string, ctorName string, genSort ast.SortRef,
	fnRoles map[string]FnRole, sig *ast.Signature) (CellTier, string, ast.SortRef) {
	role, ok := fnRoles[observer]
	if !ok || role.Kind != SELECTOR {
		return DOMAIN, "", ""
	}
	//
	info, ok := sig.Generated[genSort]
	if !ok {
		return DOMAIN, "", ""
	}
	//
	for _, home := range info.SelectorConstructors() {
		if extracts, ok := info.Selectors[home][observer]; ok {
			if home == ctorName {
				return SELECTOR_EXTRACT, home, extracts
			}
			//
			return SELECTOR_FOREIGN, home, ""
		}
	}
	//
	return DOMAIN, "", ""
}

func observerFns(sig *ast.Signature, roles map[string]FnRole, genSort ast.SortRef) []*ast.FnSymbol {
	var observers []*ast.FnSymbol
	//
	for _, name := range sig.FnNames() {
		role := roles[name]
		if (role.Kind == OBSERVER || role.Kind == SELECTOR) && role.Sort == genSort {
			observers = append(observers, sig.Functions[name])
		}
	}
	//
	return observers
}

func observerPreds(sig *ast.Signature, roles map[string]PredRole, genSort ast.SortRef) []*ast.PredSymbol {
	var observers []*ast.PredSymbol
	//
	for _, name := range sig.PredNames() {
		role := roles[name]
		if role.Kind == PRED_OBSERVER && role.Sort == genSort {
			observers = append(observers, sig.Predicates[name])
		}
	}
	//
	return observers
}
