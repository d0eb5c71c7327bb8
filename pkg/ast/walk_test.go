package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectSymbols(t *testing.T) {
	x := V("x", "Nat")
	y := V("y", "Nat")
	// leq(suc(x), y) => add(x, y) = zero
	formula := Forall([]*Var{x, y},
		Implies(
			Holds("leq", Apply("suc", x), y),
			Eq(Apply("add", x, y), Const("zero")),
		))

	fns, preds := CollectSymbols(formula)

	assert.Equal(t, map[string]bool{"suc": true, "add": true, "zero": true}, fns)
	assert.Equal(t, map[string]bool{"leq": true}, preds)
}

func TestCollectSymbolsInDefinedness(t *testing.T) {
	fns, preds := CollectSymbols(Not(Def(Apply("pop", Const("new")))))

	assert.Equal(t, map[string]bool{"pop": true, "new": true}, fns)
	assert.Empty(t, preds)
}

func TestCollectVarsOccurrencesOnly(t *testing.T) {
	x := V("x", "Nat")
	y := V("y", "Nat")
	// y is bound but never occurs in the body.
	formula := Forall([]*Var{x, y}, Eq(Apply("suc", x), x))

	vars := make(map[string]bool)
	CollectVars(formula, vars)

	assert.Contains(t, vars, "x")
	assert.NotContains(t, vars, "y")
}

func TestWalkFormulasVisitsRoot(t *testing.T) {
	formula := Not(Holds("p", V("x", "Nat")))

	var visited []string
	WalkFormulas(formula, func(f Formula) {
		visited = append(visited, f.String())
	})

	assert.Equal(t, []string{"not (p(x))", "p(x)"}, visited)
}

func TestWalkTerms(t *testing.T) {
	formula := Eq(Apply("f", V("x", "Nat")), Const("c"))

	count := 0
	WalkTerms(formula, func(Term) { count++ })

	// f(x), x, c()
	assert.Equal(t, 3, count)
}
