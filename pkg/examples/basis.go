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

// Package examples holds the basis library of fundamental algebraic
// specifications: the standard building blocks real specifications compose
// from.  Bool, Nat, List and FiniteMap follow the CASL basic libraries;
// PartialOrder and TotalOrder the CASL language summary; Stack and Monoid
// follow Sannella & Tarlecki.
//
// Every spec here follows the same methodology: declare sorts, declare
// constructors (every sort has at least one), declare derived operations
// and observers, then write one axiom per (operation, constructor) pair.
package examples

import "github.com/formallabs/go-alspec/pkg/ast"

// Bool builds boolean values with the standard connectives.
func Bool() *ast.Spec {
	a := ast.V("a", "Bool")
	b := ast.V("b", "Bool")
	//
	sig := &ast.Signature{
		Sorts: map[string]ast.Sort{
			"Bool": ast.Atomic("Bool"),
		},
		Functions: map[string]*ast.FnSymbol{
			"true":    ast.Fn("true", nil, "Bool"),
			"false":   ast.Fn("false", nil, "Bool"),
			"not":     ast.Fn("not", ast.Params("a", "Bool"), "Bool"),
			"and":     ast.Fn("and", ast.Params("a", "Bool", "b", "Bool"), "Bool"),
			"or":      ast.Fn("or", ast.Params("a", "Bool", "b", "Bool"), "Bool"),
			"implies": ast.Fn("implies", ast.Params("a", "Bool", "b", "Bool"), "Bool"),
		},
		Predicates: map[string]*ast.PredSymbol{},
	}
	//
	axioms := []ast.Axiom{
		// not: one axiom per constructor.
		{Label: "not_true", Formula: ast.Eq(ast.Apply("not", ast.Const("true")), ast.Const("false"))},
		{Label: "not_false", Formula: ast.Eq(ast.Apply("not", ast.Const("false")), ast.Const("true"))},
		// and/or case over the first argument.
		{Label: "and_true", Formula: ast.Forall([]*ast.Var{b},
			ast.Eq(ast.Apply("and", ast.Const("true"), b), b))},
		{Label: "and_false", Formula: ast.Forall([]*ast.Var{b},
			ast.Eq(ast.Apply("and", ast.Const("false"), b), ast.Const("false")))},
		{Label: "or_true", Formula: ast.Forall([]*ast.Var{b},
			ast.Eq(ast.Apply("or", ast.Const("true"), b), ast.Const("true")))},
		{Label: "or_false", Formula: ast.Forall([]*ast.Var{b},
			ast.Eq(ast.Apply("or", ast.Const("false"), b), b))},
		// implies reduces to not and or.
		{Label: "implies_def", Formula: ast.Forall([]*ast.Var{a, b},
			ast.Eq(ast.Apply("implies", a, b), ast.Apply("or", ast.Apply("not", a), b)))},
	}
	//
	return &ast.Spec{Name: "Bool", Signature: sig, Axioms: axioms}
}

// Nat builds Peano naturals with addition, multiplication and ordering.
func Nat() *ast.Spec {
	x := ast.V("x", "Nat")
	y := ast.V("y", "Nat")
	//
	sig := &ast.Signature{
		Sorts: map[string]ast.Sort{
			"Nat": ast.Atomic("Nat"),
		},
		Functions: map[string]*ast.FnSymbol{
			"zero": ast.Fn("zero", nil, "Nat"),
			"suc":  ast.Fn("suc", ast.Params("n", "Nat"), "Nat"),
			"add":  ast.Fn("add", ast.Params("x", "Nat", "y", "Nat"), "Nat"),
			"mul":  ast.Fn("mul", ast.Params("x", "Nat", "y", "Nat"), "Nat"),
		},
		Predicates: map[string]*ast.PredSymbol{
			"leq": ast.Pred("leq", ast.Params("x", "Nat", "y", "Nat")),
			"lt":  ast.Pred("lt", ast.Params("x", "Nat", "y", "Nat")),
		},
	}
	//
	axioms := []ast.Axiom{
		{Label: "add_zero", Formula: ast.Forall([]*ast.Var{y},
			ast.Eq(ast.Apply("add", ast.Const("zero"), y), y))},
		{Label: "add_suc", Formula: ast.Forall([]*ast.Var{x, y},
			ast.Eq(ast.Apply("add", ast.Apply("suc", x), y), ast.Apply("suc", ast.Apply("add", x, y))))},
		{Label: "mul_zero", Formula: ast.Forall([]*ast.Var{y},
			ast.Eq(ast.Apply("mul", ast.Const("zero"), y), ast.Const("zero")))},
		{Label: "mul_suc", Formula: ast.Forall([]*ast.Var{x, y},
			ast.Eq(ast.Apply("mul", ast.Apply("suc", x), y), ast.Apply("add", y, ast.Apply("mul", x, y))))},
		{Label: "leq_zero", Formula: ast.Forall([]*ast.Var{y},
			ast.Holds("leq", ast.Const("zero"), y))},
		{Label: "leq_suc_suc", Formula: ast.Forall([]*ast.Var{x, y},
			ast.Implies(ast.Holds("leq", ast.Apply("suc", x), ast.Apply("suc", y)), ast.Holds("leq", x, y)))},
		{Label: "lt_zero", Formula: ast.Forall([]*ast.Var{y},
			ast.Not(ast.Holds("lt", y, ast.Const("zero"))))},
		{Label: "lt_suc", Formula: ast.Forall([]*ast.Var{x, y},
			ast.Implies(ast.Holds("lt", ast.Apply("suc", x), ast.Apply("suc", y)), ast.Holds("lt", x, y)))},
	}
	//
	return &ast.Spec{Name: "Nat", Signature: sig, Axioms: axioms}
}

// Pair builds a pair of two element sorts with projections.
func Pair() *ast.Spec {
	a := ast.V("a", "Elem1")
	b := ast.V("b", "Elem2")
	//
	sig := &ast.Signature{
		Sorts: map[string]ast.Sort{
			"Elem1": ast.Atomic("Elem1"),
			"Elem2": ast.Atomic("Elem2"),
			"Pair":  ast.Atomic("Pair"),
		},
		Functions: map[string]*ast.FnSymbol{
			"pair": ast.Fn("pair", ast.Params("a", "Elem1", "b", "Elem2"), "Pair"),
			"fst":  ast.Fn("fst", ast.Params("p", "Pair"), "Elem1"),
			"snd":  ast.Fn("snd", ast.Params("p", "Pair"), "Elem2"),
		},
		Predicates: map[string]*ast.PredSymbol{},
	}
	//
	axioms := []ast.Axiom{
		{Label: "fst_pair", Formula: ast.Forall([]*ast.Var{a, b},
			ast.Eq(ast.Apply("fst", ast.Apply("pair", a, b)), a))},
		{Label: "snd_pair", Formula: ast.Forall([]*ast.Var{a, b},
			ast.Eq(ast.Apply("snd", ast.Apply("pair", a, b)), b))},
	}
	//
	return &ast.Spec{Name: "Pair", Signature: sig, Axioms: axioms}
}

// Stack builds a stack with partial pop and top.
func Stack() *ast.Spec {
	s := ast.V("S", "Stack")
	e := ast.V("e", "Elem")
	//
	sig := &ast.Signature{
		Sorts: map[string]ast.Sort{
			"Stack": ast.Atomic("Stack"),
			"Elem":  ast.Atomic("Elem"),
		},
		Functions: map[string]*ast.FnSymbol{
			"new":  ast.Fn("new", nil, "Stack"),
			"push": ast.Fn("push", ast.Params("S", "Stack", "e", "Elem"), "Stack"),
			"pop":  ast.PartialFn("pop", ast.Params("S", "Stack"), "Stack"),
			"top":  ast.PartialFn("top", ast.Params("S", "Stack"), "Elem"),
		},
		Predicates: map[string]*ast.PredSymbol{
			"empty": ast.Pred("empty", ast.Params("S", "Stack")),
		},
	}
	//
	axioms := []ast.Axiom{
		// pop and top are undefined on new, so one axiom each.
		{Label: "pop_push", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Eq(ast.Apply("pop", ast.Apply("push", s, e)), s))},
		{Label: "top_push", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Eq(ast.Apply("top", ast.Apply("push", s, e)), e))},
		{Label: "empty_new", Formula: ast.Holds("empty", ast.Const("new"))},
		{Label: "not_empty_push", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Not(ast.Holds("empty", ast.Apply("push", s, e))))},
	}
	//
	return &ast.Spec{Name: "Stack", Signature: sig, Axioms: axioms}
}

// List builds a list with head, tail, append and length.
func List() *ast.Spec {
	x := ast.V("x", "Elem")
	l := ast.V("L", "List")
	m := ast.V("M", "List")
	//
	sig := &ast.Signature{
		Sorts: map[string]ast.Sort{
			"Elem": ast.Atomic("Elem"),
			"List": ast.Atomic("List"),
			"Nat":  ast.Atomic("Nat"),
		},
		Functions: map[string]*ast.FnSymbol{
			"nil":  ast.Fn("nil", nil, "List"),
			"cons": ast.Fn("cons", ast.Params("x", "Elem", "L", "List"), "List"),
			"zero": ast.Fn("zero", nil, "Nat"),
			"suc":  ast.Fn("suc", ast.Params("n", "Nat"), "Nat"),
			// hd and tl are undefined on nil.
			"hd":     ast.PartialFn("hd", ast.Params("L", "List"), "Elem"),
			"tl":     ast.PartialFn("tl", ast.Params("L", "List"), "List"),
			"append": ast.Fn("append", ast.Params("L", "List", "M", "List"), "List"),
			"length": ast.Fn("length", ast.Params("L", "List"), "Nat"),
		},
		Predicates: map[string]*ast.PredSymbol{},
	}
	//
	axioms := []ast.Axiom{
		{Label: "hd_cons", Formula: ast.Forall([]*ast.Var{x, l},
			ast.Eq(ast.Apply("hd", ast.Apply("cons", x, l)), x))},
		{Label: "tl_cons", Formula: ast.Forall([]*ast.Var{x, l},
			ast.Eq(ast.Apply("tl", ast.Apply("cons", x, l)), l))},
		{Label: "append_nil", Formula: ast.Forall([]*ast.Var{m},
			ast.Eq(ast.Apply("append", ast.Const("nil"), m), m))},
		{Label: "append_cons", Formula: ast.Forall([]*ast.Var{x, l, m},
			ast.Eq(ast.Apply("append", ast.Apply("cons", x, l), m),
				ast.Apply("cons", x, ast.Apply("append", l, m))))},
		{Label: "length_nil", Formula: ast.Eq(ast.Apply("length", ast.Const("nil")), ast.Const("zero"))},
		{Label: "length_cons", Formula: ast.Forall([]*ast.Var{x, l},
			ast.Eq(ast.Apply("length", ast.Apply("cons", x, l)),
				ast.Apply("suc", ast.Apply("length", l))))},
	}
	//
	return &ast.Spec{Name: "List", Signature: sig, Axioms: axioms}
}

// PartialOrder builds a reflexive, antisymmetric, transitive ordering.
func PartialOrder() *ast.Spec {
	return orderSpec("PartialOrder")
}

// TotalOrder extends PartialOrder with totality.
func TotalOrder() *ast.Spec {
	x := ast.V("x", "Elem")
	y := ast.V("y", "Elem")
	//
	spec := orderSpec("TotalOrder")
	spec.Axioms = append(spec.Axioms, ast.Axiom{
		Label: "totality",
		Formula: ast.Forall([]*ast.Var{x, y},
			ast.Or(ast.Holds("leq", x, y), ast.Holds("leq", y, x))),
	})
	//
	return spec
}

func orderSpec(name string) *ast.Spec {
	x := ast.V("x", "Elem")
	y := ast.V("y", "Elem")
	z := ast.V("z", "Elem")
	//
	sig := &ast.Signature{
		Sorts: map[string]ast.Sort{
			"Elem": ast.Atomic("Elem"),
		},
		Functions: map[string]*ast.FnSymbol{},
		Predicates: map[string]*ast.PredSymbol{
			"leq": ast.Pred("leq", ast.Params("x", "Elem", "y", "Elem")),
		},
	}
	//
	axioms := []ast.Axiom{
		{Label: "reflexivity", Formula: ast.Forall([]*ast.Var{x}, ast.Holds("leq", x, x))},
		{Label: "antisymmetry", Formula: ast.Forall([]*ast.Var{x, y},
			ast.Implies(ast.And(ast.Holds("leq", x, y), ast.Holds("leq", y, x)), ast.Eq(x, y)))},
		{Label: "transitivity", Formula: ast.Forall([]*ast.Var{x, y, z},
			ast.Implies(ast.And(ast.Holds("leq", x, y), ast.Holds("leq", y, z)), ast.Holds("leq", x, z)))},
	}
	//
	return &ast.Spec{Name: name, Signature: sig, Axioms: axioms}
}

// Monoid builds an associative operation with a unit.
func Monoid() *ast.Spec {
	x := ast.V("x", "M")
	y := ast.V("y", "M")
	z := ast.V("z", "M")
	//
	sig := &ast.Signature{
		Sorts: map[string]ast.Sort{
			"M": ast.Atomic("M"),
		},
		Functions: map[string]*ast.FnSymbol{
			"e":  ast.Fn("e", nil, "M"),
			"op": ast.Fn("op", ast.Params("x", "M", "y", "M"), "M"),
		},
		Predicates: map[string]*ast.PredSymbol{},
	}
	//
	axioms := []ast.Axiom{
		{Label: "left_unit", Formula: ast.Forall([]*ast.Var{x},
			ast.Eq(ast.Apply("op", ast.Const("e"), x), x))},
		{Label: "right_unit", Formula: ast.Forall([]*ast.Var{x},
			ast.Eq(ast.Apply("op", x, ast.Const("e")), x))},
		{Label: "associativity", Formula: ast.Forall([]*ast.Var{x, y, z},
			ast.Eq(ast.Apply("op", ast.Apply("op", x, y), z),
				ast.Apply("op", x, ast.Apply("op", y, z))))},
	}
	//
	return &ast.Spec{Name: "Monoid", Signature: sig, Axioms: axioms}
}

// FiniteMap builds a finite map from keys to values with equality-based
// lookup.  This is the fundamental pattern for any indexed collection: a
// state built by update, queried by lookup, dispatched on key equality.
// Undefinedness is stated explicitly rather than left implicit by omission.
func FiniteMap() *ast.Spec {
	k := ast.V("k", "Key")
	k1 := ast.V("k1", "Key")
	k2 := ast.V("k2", "Key")
	v := ast.V("v", "Val")
	m := ast.V("M", "Map")
	//
	sig := &ast.Signature{
		Sorts: map[string]ast.Sort{
			"Key": ast.Atomic("Key"),
			"Val": ast.Atomic("Val"),
			"Map": ast.Atomic("Map"),
		},
		Functions: map[string]*ast.FnSymbol{
			"empty":  ast.Fn("empty", nil, "Map"),
			"update": ast.Fn("update", ast.Params("M", "Map", "k", "Key", "v", "Val"), "Map"),
			"lookup": ast.PartialFn("lookup", ast.Params("M", "Map", "k", "Key"), "Val"),
		},
		Predicates: map[string]*ast.PredSymbol{
			"eq_key": ast.Pred("eq_key", ast.Params("k1", "Key", "k2", "Key")),
		},
	}
	//
	axioms := []ast.Axiom{
		{Label: "lookup_empty_undef", Formula: ast.Forall([]*ast.Var{k},
			ast.Not(ast.Def(ast.Apply("lookup", ast.Const("empty"), k))))},
		{Label: "lookup_update_hit", Formula: ast.Forall([]*ast.Var{m, k1, k2, v},
			ast.Implies(ast.Holds("eq_key", k1, k2),
				ast.Eq(ast.Apply("lookup", ast.Apply("update", m, k1, v), k2), v)))},
		{Label: "lookup_update_miss", Formula: ast.Forall([]*ast.Var{m, k1, k2, v},
			ast.Implies(ast.Not(ast.Holds("eq_key", k1, k2)),
				ast.Eq(ast.Apply("lookup", ast.Apply("update", m, k1, v), k2),
					ast.Apply("lookup", m, k2))))},
		{Label: "eq_key_refl", Formula: ast.Forall([]*ast.Var{k}, ast.Holds("eq_key", k, k))},
		{Label: "eq_key_sym", Formula: ast.Forall([]*ast.Var{k1, k2},
			ast.Implies(ast.Holds("eq_key", k1, k2), ast.Holds("eq_key", k2, k1)))},
	}
	//
	return &ast.Spec{Name: "FiniteMap", Signature: sig, Axioms: axioms}
}

// All returns the complete basis catalogue, in a stable order.
func All() []*ast.Spec {
	return []*ast.Spec{
		Bool(),
		Nat(),
		Pair(),
		Stack(),
		List(),
		PartialOrder(),
		TotalOrder(),
		Monoid(),
		FiniteMap(),
	}
}
