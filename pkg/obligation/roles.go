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
	"strings"

	"github.com/formallabs/go-alspec/pkg/ast"
)

// FnKind classifies a function symbol relative to the generated sorts of a
// signature.
type FnKind uint

const (
	// CONSTRUCTOR builds values of a generated sort; taken directly from
	// the declared constructor lists, never inferred.
	CONSTRUCTOR FnKind = iota
	// SELECTOR extracts a declared component of one constructor's output.
	SELECTOR
	// OBSERVER inspects values of a generated sort.
	OBSERVER
	// CONSTANT is a nullary function unrelated to any generated sort.
	CONSTANT
	// UNINTERPRETED covers everything else.
	UNINTERPRETED
)

func (k FnKind) String() string {
	switch k {
	case CONSTRUCTOR:
		return "constructor"
	case SELECTOR:
		return "selector"
	case OBSERVER:
		return "observer"
	case CONSTANT:
		return "constant"
	case UNINTERPRETED:
		return "uninterpreted"
	}
	//
	panic("unknown function kind")
}

// PredKind classifies a predicate symbol relative to the generated sorts.
type PredKind uint

const (
	// PRED_OBSERVER inspects values of a generated sort.
	PRED_OBSERVER PredKind = iota
	// PRED_EQUALITY is a declared equality over a non-generated sort.
	PRED_EQUALITY
	// PRED_OTHER covers everything else.
	PRED_OTHER
)

func (k PredKind) String() string {
	switch k {
	case PRED_OBSERVER:
		return "observer"
	case PRED_EQUALITY:
		return "equality"
	case PRED_OTHER:
		return "other"
	}
	//
	panic("unknown predicate kind")
}

// FnRole pairs a function symbol with its kind and, where meaningful, the
// generated sort it relates to.
type FnRole struct {
	Name string
	Kind FnKind
	// Sort is the related generated sort, or empty.
	Sort ast.SortRef
}

// PredRole pairs a predicate symbol with its kind.  For equality predicates
// Sort is the keyed (non-generated) sort; for observers it is the generated
// sort being observed.
type PredRole struct {
	Name string
	Kind PredKind
	Sort ast.SortRef
}

// ClassifyFunctions assigns a role to every function symbol.  Constructors
// and selectors come straight from the generated-sort annotations; the rest
// are classified by shape: first parameter of a generated sort makes an
// observer, nullary makes a constant, anything else is uninterpreted.
func ClassifyFunctions(sig *ast.Signature) map[string]FnRole {
	roles := make(map[string]FnRole)
	// Declared constructors first.
	for _, sortName := range sig.GeneratedSortNames() {
		for _, ctor := range sig.Generated[sortName].Constructors {
			roles[ctor] = FnRole{ctor, CONSTRUCTOR, sortName}
		}
	}
	// Declared selectors second; constructors win on name clashes.
	for _, sortName := range sig.GeneratedSortNames() {
		info := sig.Generated[sortName]
		//
		for _, ctor := range info.SelectorConstructors() {
			for selector := range info.Selectors[ctor] {
				if _, taken := roles[selector]; !taken {
					roles[selector] = FnRole{selector, SELECTOR, sortName}
				}
			}
		}
	}
	// Everything else by shape.
	for _, name := range sig.FnNames() {
		if _, taken := roles[name]; taken {
			continue
		}
		//
		fn := sig.Functions[name]
		//
		if len(fn.Params) > 0 && isGenerated(sig, fn.Params[0].Sort) {
			roles[name] = FnRole{name, OBSERVER, fn.Params[0].Sort}
		} else if fn.IsConstant() {
			roles[name] = FnRole{name, CONSTANT, ""}
		} else {
			roles[name] = FnRole{name, UNINTERPRETED, ""}
		}
	}
	//
	return roles
}

// ClassifyPredicates assigns a role to every predicate symbol.  A first
// parameter of a generated sort makes an observer; exactly two parameters of
// one identical non-generated sort with a name beginning "eq_" makes an
// equality predicate; anything else is other.
func ClassifyPredicates(sig *ast.Signature) map[string]PredRole {
	roles := make(map[string]PredRole)
	//
	for _, name := range sig.PredNames() {
		pred := sig.Predicates[name]
		//
		switch {
		case len(pred.Params) > 0 && isGenerated(sig, pred.Params[0].Sort):
			roles[name] = PredRole{name, PRED_OBSERVER, pred.Params[0].Sort}
		case len(pred.Params) == 2 &&
			pred.Params[0].Sort == pred.Params[1].Sort &&
			!isGenerated(sig, pred.Params[0].Sort) &&
			strings.HasPrefix(name, "eq_"):
			roles[name] = PredRole{name, PRED_EQUALITY, pred.Params[0].Sort}
		default:
			roles[name] = PredRole{name, PRED_OTHER, ""}
		}
	}
	//
	return roles
}

func isGenerated(sig *ast.Signature, sort ast.SortRef) bool {
	_, ok := sig.Generated[sort]
	return ok
}
