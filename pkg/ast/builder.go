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

// This file provides the builder helpers which are the primary way of
// writing specifications in code.  Callers (including tests and the example
// catalogue) use these rather than constructing nodes directly.

// Atomic declares an opaque sort.
func Atomic(name string) *AtomicSort {
	return &AtomicSort{SortName: name}
}

// Product declares a record sort with the given fields.
func Product(name string, fields ...ProductField) *ProductSort {
	return &ProductSort{SortName: name, Fields: fields}
}

// Field constructs a named field for a product sort.
func Field(name string, sort SortRef) ProductField {
	return ProductField{FieldName: name, Sort: sort}
}

// Coproduct declares a tagged-union sort with the given alternatives.
func Coproduct(name string, alts ...CoproductAlt) *CoproductSort {
	return &CoproductSort{SortName: name, Alts: alts}
}

// Alt constructs a tagged alternative for a coproduct sort.
func Alt(tag string, sort SortRef) CoproductAlt {
	return CoproductAlt{Tag: tag, Sort: sort}
}

// Params builds a parameter list from alternating name/sort pairs, e.g.
// Params("a", "Nat", "b", "Nat").  Panics on an odd number of arguments,
// which is a caller bug.
func Params(pairs ...string) []Param {
	if len(pairs)%2 != 0 {
		panic("odd number of name/sort arguments")
	}
	//
	params := make([]Param, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		params = append(params, Param{Name: pairs[i], Sort: pairs[i+1]})
	}
	//
	return params
}

// Fn declares a total function symbol.
func Fn(name string, params []Param, result SortRef) *FnSymbol {
	return &FnSymbol{Name: name, Params: params, Result: result, Totality: TOTAL}
}

// PartialFn declares a partial function symbol.
func PartialFn(name string, params []Param, result SortRef) *FnSymbol {
	return &FnSymbol{Name: name, Params: params, Result: result, Totality: PARTIAL}
}

// Pred declares a predicate symbol.
func Pred(name string, params []Param) *PredSymbol {
	return &PredSymbol{Name: name, Params: params}
}

// V constructs a sorted variable.
func V(name string, sort SortRef) *Var {
	return &Var{Name: name, Sort: sort}
}

// Apply constructs a function application.
func Apply(fn string, args ...Term) *FnApp {
	return &FnApp{Fn: fn, Args: args}
}

// Const constructs a nullary function application.
func Const(name string) *FnApp {
	return &FnApp{Fn: name}
}

// Lit constructs a literal of a known sort.
func Lit(value string, sort SortRef) *Literal {
	return &Literal{Value: value, Sort: sort}
}

// Access constructs a field projection on a product-sorted term.
func Access(base Term, field string) *FieldAccess {
	return &FieldAccess{Base: base, Field: field}
}

// Eq constructs a (strong) equation between two terms.
func Eq(lhs Term, rhs Term) *Equation {
	return &Equation{Lhs: lhs, Rhs: rhs}
}

// Holds constructs a predicate application.
func Holds(pred string, args ...Term) *PredApp {
	return &PredApp{Pred: pred, Args: args}
}

// Not negates a formula.
func Not(body Formula) *Negation {
	return &Negation{Body: body}
}

// And conjoins formulas.
func And(conjuncts ...Formula) *Conjunction {
	return &Conjunction{Conjuncts: conjuncts}
}

// Or disjoins formulas.
func Or(disjuncts ...Formula) *Disjunction {
	return &Disjunction{Disjuncts: disjuncts}
}

// Implies constructs an implication.
func Implies(antecedent Formula, consequent Formula) *Implication {
	return &Implication{Antecedent: antecedent, Consequent: consequent}
}

// Iff constructs a biconditional.
func Iff(lhs Formula, rhs Formula) *Biconditional {
	return &Biconditional{Lhs: lhs, Rhs: rhs}
}

// Forall universally quantifies a body.
func Forall(vars []*Var, body Formula) *UniversalQuant {
	return &UniversalQuant{Variables: vars, Body: body}
}

// Exists existentially quantifies a body.
func Exists(vars []*Var, body Formula) *ExistentialQuant {
	return &ExistentialQuant{Variables: vars, Body: body}
}

// Def constructs a definedness assertion.
func Def(term Term) *Definedness {
	return &Definedness{Term: term}
}
