package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formallabs/go-alspec/pkg/ast"
)

func TestDecomposeUnguardedEquation(t *testing.T) {
	s := ast.V("S", "Stack")
	e := ast.V("e", "Elem")
	axiom := ast.Axiom{Label: "top_push", Formula: ast.Forall([]*ast.Var{s, e},
		ast.Eq(ast.Apply("top", ast.Apply("push", s, e)), e))}

	record := Decompose(axiom)

	assert.Equal(t, "top_push", record.Label)
	assert.Len(t, record.Variables, 2)
	assert.Empty(t, record.Guards)
	//
	constrained, ok := record.Constrained.Get()
	require.True(t, ok)
	assert.Equal(t, ConstrainedSymbol{"top", FUNCTION_SYMBOL}, constrained)
	//
	require.NotNil(t, record.EquationRHS)
	assert.Equal(t, "e", record.EquationRHS.String())
	//
	assert.True(t, record.ReferencedFns["top"])
	assert.True(t, record.ReferencedFns["push"])
}

func TestDecomposeGuardedEquation(t *testing.T) {
	k := ast.V("k", "Key")
	k2 := ast.V("k2", "Key")
	m := ast.V("m", "Map")
	v := ast.V("v", "Val")
	// eq_key(k, k2) => lookup(insert(m, k2, v), k) = v
	axiom := ast.Axiom{Label: "lookup_hit", Formula: ast.Forall([]*ast.Var{k, k2, m, v},
		ast.Implies(
			ast.Holds("eq_key", k, k2),
			ast.Eq(ast.Apply("lookup", ast.Apply("insert", m, k2, v), k), v)))}

	record := Decompose(axiom)

	require.Len(t, record.Guards, 1)
	assert.Equal(t, "eq_key", record.Guards[0].Pred)
	assert.Equal(t, POSITIVE, record.Guards[0].Polarity)
	assert.Equal(t, "eq_key(k, k2)", record.Guards[0].Key())
	//
	constrained, ok := record.Constrained.Get()
	require.True(t, ok)
	assert.Equal(t, "lookup", constrained.Name)
}

func TestDecomposeNegativeGuard(t *testing.T) {
	k := ast.V("k", "Key")
	k2 := ast.V("k2", "Key")
	axiom := ast.Axiom{Label: "miss", Formula: ast.Forall([]*ast.Var{k, k2},
		ast.Implies(
			ast.Not(ast.Holds("eq_key", k, k2)),
			ast.Holds("present", k)))}

	record := Decompose(axiom)

	require.Len(t, record.Guards, 1)
	assert.Equal(t, NEGATIVE, record.Guards[0].Polarity)
	// Key ignores polarity: positive and negative branches share a key.
	assert.Equal(t, "eq_key(k, k2)", record.Guards[0].Key())
}

func TestDecomposeConjunctionAntecedentHaltsPeeling(t *testing.T) {
	x := ast.V("x", "Nat")
	y := ast.V("y", "Nat")
	// Antisymmetry: (leq(x,y) /\ leq(y,x)) => x = y.  The compound antecedent
	// must not be split into guards.
	axiom := ast.Axiom{Label: "antisym", Formula: ast.Forall([]*ast.Var{x, y},
		ast.Implies(
			ast.And(ast.Holds("leq", x, y), ast.Holds("leq", y, x)),
			ast.Eq(x, y)))}

	record := Decompose(axiom)

	assert.Empty(t, record.Guards)
	// The whole implication remains the body.
	_, isImplication := record.Body.(*ast.Implication)
	assert.True(t, isImplication)
	assert.True(t, record.Constrained.IsEmpty())
}

func TestDecomposeSkipsNonGuardAntecedent(t *testing.T) {
	l := ast.V("l", "Lock")
	c := ast.V("c", "Code")
	// get_state(l) = locked() => get_state(open(l, c)) = open_state()
	axiom := ast.Axiom{Label: "open_hit", Formula: ast.Forall([]*ast.Var{l, c},
		ast.Implies(
			ast.Eq(ast.Apply("get_state", l), ast.Const("locked")),
			ast.Eq(ast.Apply("get_state", ast.Apply("open", l, c)), ast.Const("open_state"))))}

	record := Decompose(axiom)

	// Equation antecedent is skipped, not extracted as a guard; peeling
	// continues into the consequent.
	assert.Empty(t, record.Guards)
	constrained, ok := record.Constrained.Get()
	require.True(t, ok)
	assert.Equal(t, "get_state", constrained.Name)
}

func TestDecomposePredicateAssertion(t *testing.T) {
	x := ast.V("x", "Nat")
	axiom := ast.Axiom{Label: "refl", Formula: ast.Forall([]*ast.Var{x},
		ast.Holds("leq", x, x))}

	record := Decompose(axiom)

	constrained, ok := record.Constrained.Get()
	require.True(t, ok)
	assert.Equal(t, ConstrainedSymbol{"leq", PREDICATE_SYMBOL}, constrained)
	assert.Nil(t, record.EquationRHS)
}

func TestDecomposeDefinednessBody(t *testing.T) {
	s := ast.V("S", "Stack")
	e := ast.V("e", "Elem")
	axiom := ast.Axiom{Label: "top_def", Formula: ast.Forall([]*ast.Var{s, e},
		ast.Def(ast.Apply("top", ast.Apply("push", s, e))))}

	record := Decompose(axiom)

	constrained, ok := record.Constrained.Get()
	require.True(t, ok)
	assert.Equal(t, ConstrainedSymbol{"top", FUNCTION_SYMBOL}, constrained)
}

func TestDecomposeNegatedDefinedness(t *testing.T) {
	axiom := ast.Axiom{Label: "top_new_undef",
		Formula: ast.Not(ast.Def(ast.Apply("top", ast.Const("new"))))}

	record := Decompose(axiom)

	constrained, ok := record.Constrained.Get()
	require.True(t, ok)
	assert.Equal(t, "top", constrained.Name)
}

func TestDecomposeVariableEquationUnclassified(t *testing.T) {
	x := ast.V("x", "Nat")
	y := ast.V("y", "Nat")
	axiom := ast.Axiom{Label: "prop", Formula: ast.Forall([]*ast.Var{x, y}, ast.Eq(x, y))}

	record := Decompose(axiom)

	assert.True(t, record.Constrained.IsEmpty())
	assert.Nil(t, record.EquationRHS)
}

func TestIndexGroupsByConstrained(t *testing.T) {
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
			"top":  ast.PartialFn("top", ast.Params("S", "Stack"), "Elem"),
			"pop":  ast.PartialFn("pop", ast.Params("S", "Stack"), "Stack"),
		},
		Predicates: map[string]*ast.PredSymbol{},
	}
	spec := &ast.Spec{Name: "Stack", Signature: sig, Axioms: []ast.Axiom{
		{Label: "top_push", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Eq(ast.Apply("top", ast.Apply("push", s, e)), e))},
		{Label: "pop_push", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Eq(ast.Apply("pop", ast.Apply("push", s, e)), s))},
		{Label: "top_new_undef", Formula: ast.Not(ast.Def(ast.Apply("top", ast.Const("new"))))},
	}}

	index := NewIndex(spec)

	assert.Len(t, index.Records, 3)
	assert.Len(t, index.ByConstrained["top"], 2)
	assert.Len(t, index.ByConstrained["pop"], 1)
	assert.True(t, index.AllReferencedFns["push"])
	assert.True(t, index.AllReferencedFns["new"])
}
