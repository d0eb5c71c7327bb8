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
package examples

import "github.com/formallabs/go-alspec/pkg/ast"

// DoorLock builds an immutable state-machine model of a coded door lock.
// Every action yields a new lock value; invalid transitions (wrong state or
// wrong code) preserve the current state, captured by paired hit/miss
// axioms dispatched on eq_code.  The lock captures its code at creation and
// checks provided codes against get_code.
//
// Lock is declared generated so the obligation table covers every
// (observer, constructor) pair.  Both observers take only the lock itself,
// so all 10 cells are plain; the guarded transition pairs land on the same
// cell as hit and miss variants of one obligation.
func DoorLock() *ast.Spec {
	c := ast.V("c", "Code")
	l := ast.V("l", "Lock")
	c1 := ast.V("c1", "Code")
	c2 := ast.V("c2", "Code")
	c3 := ast.V("c3", "Code")
	//
	sig := &ast.Signature{
		Sorts: map[string]ast.Sort{
			"Code":  ast.Atomic("Code"),
			"State": ast.Atomic("State"),
			"Lock":  ast.Atomic("Lock"),
		},
		Functions: map[string]*ast.FnSymbol{
			// State enumeration constants.
			"locked":     ast.Fn("locked", nil, "State"),
			"unlocked":   ast.Fn("unlocked", nil, "State"),
			"open_state": ast.Fn("open_state", nil, "State"),
			// Lock constructors.
			"new":        ast.Fn("new", ast.Params("c", "Code"), "Lock"),
			"lock":       ast.Fn("lock", ast.Params("l", "Lock", "c", "Code"), "Lock"),
			"unlock":     ast.Fn("unlock", ast.Params("l", "Lock", "c", "Code"), "Lock"),
			"open_door":  ast.Fn("open_door", ast.Params("l", "Lock"), "Lock"),
			"close_door": ast.Fn("close_door", ast.Params("l", "Lock"), "Lock"),
			// Lock observers.
			"get_state": ast.Fn("get_state", ast.Params("l", "Lock"), "State"),
			"get_code":  ast.Fn("get_code", ast.Params("l", "Lock"), "Code"),
		},
		Predicates: map[string]*ast.PredSymbol{
			"eq_code": ast.Pred("eq_code", ast.Params("c1", "Code", "c2", "Code")),
		},
		Generated: map[string]*ast.GeneratedSortInfo{
			"Lock": {Constructors: []string{"new", "lock", "unlock", "open_door", "close_door"}},
		},
	}
	//
	hitGuard := func(state string) ast.Formula {
		return ast.And(
			ast.Holds("eq_code", c, ast.Apply("get_code", l)),
			ast.Eq(ast.Apply("get_state", l), ast.Const(state)),
		)
	}
	//
	axioms := []ast.Axiom{
		// eq_code basis.
		{Label: "eq_code_refl", Formula: ast.Forall([]*ast.Var{c1}, ast.Holds("eq_code", c1, c1))},
		{Label: "eq_code_sym", Formula: ast.Forall([]*ast.Var{c1, c2},
			ast.Implies(ast.Holds("eq_code", c1, c2), ast.Holds("eq_code", c2, c1)))},
		{Label: "eq_code_trans", Formula: ast.Forall([]*ast.Var{c1, c2, c3},
			ast.Implies(
				ast.And(ast.Holds("eq_code", c1, c2), ast.Holds("eq_code", c2, c3)),
				ast.Holds("eq_code", c1, c3)))},
		// get_code: set at creation, preserved by every transition.
		{Label: "get_code_new", Formula: ast.Forall([]*ast.Var{c},
			ast.Eq(ast.Apply("get_code", ast.Apply("new", c)), c))},
		{Label: "get_code_lock", Formula: ast.Forall([]*ast.Var{l, c},
			ast.Eq(ast.Apply("get_code", ast.Apply("lock", l, c)), ast.Apply("get_code", l)))},
		{Label: "get_code_unlock", Formula: ast.Forall([]*ast.Var{l, c},
			ast.Eq(ast.Apply("get_code", ast.Apply("unlock", l, c)), ast.Apply("get_code", l)))},
		{Label: "get_code_open_door", Formula: ast.Forall([]*ast.Var{l},
			ast.Eq(ast.Apply("get_code", ast.Apply("open_door", l)), ast.Apply("get_code", l)))},
		{Label: "get_code_close_door", Formula: ast.Forall([]*ast.Var{l},
			ast.Eq(ast.Apply("get_code", ast.Apply("close_door", l)), ast.Apply("get_code", l)))},
		// get_state: new locks start locked.
		{Label: "get_state_new", Formula: ast.Forall([]*ast.Var{c},
			ast.Eq(ast.Apply("get_state", ast.Apply("new", c)), ast.Const("locked")))},
		// lock transitions.
		{Label: "get_state_lock_hit", Formula: ast.Forall([]*ast.Var{l, c},
			ast.Implies(hitGuard("unlocked"),
				ast.Eq(ast.Apply("get_state", ast.Apply("lock", l, c)), ast.Const("locked"))))},
		{Label: "get_state_lock_miss", Formula: ast.Forall([]*ast.Var{l, c},
			ast.Implies(ast.Not(hitGuard("unlocked")),
				ast.Eq(ast.Apply("get_state", ast.Apply("lock", l, c)), ast.Apply("get_state", l))))},
		// unlock transitions.
		{Label: "get_state_unlock_hit", Formula: ast.Forall([]*ast.Var{l, c},
			ast.Implies(hitGuard("locked"),
				ast.Eq(ast.Apply("get_state", ast.Apply("unlock", l, c)), ast.Const("unlocked"))))},
		{Label: "get_state_unlock_miss", Formula: ast.Forall([]*ast.Var{l, c},
			ast.Implies(ast.Not(hitGuard("locked")),
				ast.Eq(ast.Apply("get_state", ast.Apply("unlock", l, c)), ast.Apply("get_state", l))))},
		// open_door transitions.
		{Label: "get_state_open_door_hit", Formula: ast.Forall([]*ast.Var{l},
			ast.Implies(ast.Eq(ast.Apply("get_state", l), ast.Const("unlocked")),
				ast.Eq(ast.Apply("get_state", ast.Apply("open_door", l)), ast.Const("open_state"))))},
		{Label: "get_state_open_door_miss", Formula: ast.Forall([]*ast.Var{l},
			ast.Implies(ast.Not(ast.Eq(ast.Apply("get_state", l), ast.Const("unlocked"))),
				ast.Eq(ast.Apply("get_state", ast.Apply("open_door", l)), ast.Apply("get_state", l))))},
		// close_door transitions.
		{Label: "get_state_close_door_hit", Formula: ast.Forall([]*ast.Var{l},
			ast.Implies(ast.Eq(ast.Apply("get_state", l), ast.Const("open_state")),
				ast.Eq(ast.Apply("get_state", ast.Apply("close_door", l)), ast.Const("unlocked"))))},
		{Label: "get_state_close_door_miss", Formula: ast.Forall([]*ast.Var{l},
			ast.Implies(ast.Not(ast.Eq(ast.Apply("get_state", l), ast.Const("open_state"))),
				ast.Eq(ast.Apply("get_state", ast.Apply("close_door", l)), ast.Apply("get_state", l))))},
	}
	//
	return &ast.Spec{Name: "DoorLock", Signature: sig, Axioms: axioms}
}
