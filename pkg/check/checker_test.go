package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formallabs/go-alspec/pkg/ast"
)

// natSpec is a minimal well-formed spec used as the baseline fixture.
func natSpec(axioms ...ast.Axiom) *ast.Spec {
	sig := &ast.Signature{
		Sorts: map[string]ast.Sort{
			"Nat": ast.Atomic("Nat"),
		},
		Functions: map[string]*ast.FnSymbol{
			"zero": ast.Fn("zero", nil, "Nat"),
			"suc":  ast.Fn("suc", ast.Params("n", "Nat"), "Nat"),
			"add":  ast.Fn("add", ast.Params("x", "Nat", "y", "Nat"), "Nat"),
		},
		Predicates: map[string]*ast.PredSymbol{
			"leq": ast.Pred("leq", ast.Params("x", "Nat", "y", "Nat")),
		},
	}
	//
	return &ast.Spec{Name: "Nat", Signature: sig, Axioms: axioms}
}

func hasCheck(diags []Diagnostic, check string) bool {
	for _, d := range diags {
		if d.Check == check {
			return true
		}
	}
	//
	return false
}

func findCheck(t *testing.T, diags []Diagnostic, check string) Diagnostic {
	for _, d := range diags {
		if d.Check == check {
			return d
		}
	}
	//
	t.Fatalf("no diagnostic for check %q", check)
	//
	return Diagnostic{}
}

func TestWellFormedSpec(t *testing.T) {
	x := ast.V("x", "Nat")
	y := ast.V("y", "Nat")
	//
	spec := natSpec(
		ast.Axiom{Label: "add_zero", Formula: ast.Forall([]*ast.Var{y},
			ast.Eq(ast.Apply("add", ast.Const("zero"), y), y))},
		ast.Axiom{Label: "add_suc", Formula: ast.Forall([]*ast.Var{x, y},
			ast.Eq(ast.Apply("add", ast.Apply("suc", x), y),
				ast.Apply("suc", ast.Apply("add", x, y))))},
		ast.Axiom{Label: "leq_zero", Formula: ast.Forall([]*ast.Var{y},
			ast.Holds("leq", ast.Const("zero"), y))},
	)
	//
	result := Check(spec)

	assert.True(t, result.IsWellFormed())
	assert.Empty(t, result.Errors())
}

func TestUndeclaredFunction(t *testing.T) {
	x := ast.V("x", "Nat")
	spec := natSpec(ast.Axiom{Label: "bad", Formula: ast.Forall([]*ast.Var{x},
		ast.Eq(ast.Apply("mystery", x), x))})

	result := Check(spec)

	assert.False(t, result.IsWellFormed())
	diag := findCheck(t, result.Errors(), "fn_declared")
	assert.Equal(t, "bad", diag.Axiom)
	assert.Contains(t, diag.Message, "'mystery'")
}

func TestFunctionArity(t *testing.T) {
	x := ast.V("x", "Nat")
	spec := natSpec(ast.Axiom{Label: "bad", Formula: ast.Forall([]*ast.Var{x},
		ast.Eq(ast.Apply("suc", x, x), x))})

	result := Check(spec)

	diag := findCheck(t, result.Errors(), "fn_arity")
	assert.Contains(t, diag.Message, "expects 1 arguments, got 2")
}

func TestFunctionArgSorts(t *testing.T) {
	sig := natSpec().Signature
	sig.Sorts["Bool"] = ast.Atomic("Bool")
	sig.Functions["truth"] = ast.Fn("truth", nil, "Bool")
	//
	spec := &ast.Spec{Name: "Nat", Signature: sig, Axioms: []ast.Axiom{
		{Label: "bad", Formula: ast.Eq(ast.Apply("suc", ast.Const("truth")), ast.Const("zero"))},
	}}

	result := Check(spec)

	assert.True(t, hasCheck(result.Errors(), "fn_arg_sorts"))
}

func TestUndeclaredPredicate(t *testing.T) {
	x := ast.V("x", "Nat")
	spec := natSpec(ast.Axiom{Label: "bad", Formula: ast.Forall([]*ast.Var{x},
		ast.Holds("mystery", x))})

	result := Check(spec)

	assert.True(t, hasCheck(result.Errors(), "pred_declared"))
}

func TestPredicateArity(t *testing.T) {
	x := ast.V("x", "Nat")
	spec := natSpec(ast.Axiom{Label: "bad", Formula: ast.Forall([]*ast.Var{x},
		ast.Holds("leq", x))})

	result := Check(spec)

	assert.True(t, hasCheck(result.Errors(), "pred_arity"))
}

func TestPredicateArgSorts(t *testing.T) {
	sig := natSpec().Signature
	sig.Sorts["Bool"] = ast.Atomic("Bool")
	sig.Functions["truth"] = ast.Fn("truth", nil, "Bool")
	//
	spec := &ast.Spec{Name: "Nat", Signature: sig, Axioms: []ast.Axiom{
		{Label: "bad", Formula: ast.Holds("leq", ast.Const("truth"), ast.Const("zero"))},
	}}

	result := Check(spec)

	assert.True(t, hasCheck(result.Errors(), "pred_arg_sorts"))
}

func TestEquationSortMismatch(t *testing.T) {
	sig := natSpec().Signature
	sig.Sorts["Bool"] = ast.Atomic("Bool")
	sig.Functions["truth"] = ast.Fn("truth", nil, "Bool")
	//
	spec := &ast.Spec{Name: "Nat", Signature: sig, Axioms: []ast.Axiom{
		{Label: "bad", Formula: ast.Eq(ast.Const("zero"), ast.Const("truth"))},
	}}

	result := Check(spec)

	diag := findCheck(t, result.Errors(), "equation_sort_match")
	assert.Contains(t, diag.Message, "'Nat'")
	assert.Contains(t, diag.Message, "'Bool'")
}

func TestUnboundVariable(t *testing.T) {
	x := ast.V("x", "Nat")
	spec := natSpec(ast.Axiom{Label: "bad", Formula: ast.Eq(ast.Apply("suc", x), x)})

	result := Check(spec)

	assert.True(t, hasCheck(result.Errors(), "var_bound"))
}

func TestVariableSortConsistency(t *testing.T) {
	sig := natSpec().Signature
	sig.Sorts["Bool"] = ast.Atomic("Bool")
	// x quantified at Nat but used again at Bool in a nested quantifier.
	spec := &ast.Spec{Name: "Nat", Signature: sig, Axioms: []ast.Axiom{
		{Label: "bad", Formula: ast.Forall([]*ast.Var{ast.V("x", "Nat")},
			ast.Forall([]*ast.Var{ast.V("x", "Bool")},
				ast.Eq(ast.V("x", "Bool"), ast.V("x", "Bool"))))},
	}}

	result := Check(spec)

	assert.True(t, hasCheck(result.Errors(), "var_sort_consistent"))
}

func TestUnresolvedSort(t *testing.T) {
	sig := natSpec().Signature
	sig.Functions["weird"] = ast.Fn("weird", ast.Params("g", "Ghost"), "Nat")
	//
	result := Check(&ast.Spec{Name: "Nat", Signature: sig})

	diag := findCheck(t, result.Errors(), "sort_resolved")
	assert.Contains(t, diag.Message, "'Ghost'")
}

func TestSortNameConsistency(t *testing.T) {
	sig := natSpec().Signature
	sig.Sorts["Alias"] = ast.Atomic("Other")
	//
	result := Check(&ast.Spec{Name: "Nat", Signature: sig})

	assert.True(t, hasCheck(result.Errors(), "sort_name_consistency"))
}

func TestNameCollision(t *testing.T) {
	sig := natSpec().Signature
	// "leq" already names a predicate.
	sig.Functions["leq"] = ast.Fn("leq", ast.Params("x", "Nat"), "Nat")
	//
	result := Check(&ast.Spec{Name: "Nat", Signature: sig})

	diag := findCheck(t, result.Errors(), "no_name_collisions")
	assert.Contains(t, diag.Message, "'leq'")
}

func TestEmptySortWarning(t *testing.T) {
	sig := natSpec().Signature
	sig.Sorts["Unused"] = ast.Atomic("Unused")
	//
	result := Check(&ast.Spec{Name: "Nat", Signature: sig})

	assert.True(t, result.IsWellFormed(), "empty sort is a warning, not an error")
	assert.True(t, hasCheck(result.Warnings(), "no_empty_sorts"))
}

func TestProductFieldCountsAsSortReference(t *testing.T) {
	sig := natSpec().Signature
	sig.Sorts["Point"] = ast.Product("Point",
		ast.Field("x", "Coord"), ast.Field("y", "Coord"))
	sig.Sorts["Coord"] = ast.Atomic("Coord")
	sig.Functions["origin"] = ast.Fn("origin", nil, "Point")
	//
	result := Check(&ast.Spec{Name: "Nat", Signature: sig})

	// Coord is referenced through Point's fields, so no warning for it.
	for _, d := range result.Warnings() {
		if d.Check == "no_empty_sorts" {
			assert.NotContains(t, d.Message, "'Coord'")
		}
	}
}

func TestUnresolvedProductField(t *testing.T) {
	sig := natSpec().Signature
	sig.Sorts["Point"] = ast.Product("Point", ast.Field("x", "Ghost"))
	sig.Functions["origin"] = ast.Fn("origin", nil, "Point")
	//
	result := Check(&ast.Spec{Name: "Nat", Signature: sig})

	assert.True(t, hasCheck(result.Errors(), "product_sort_fields_resolved"))
}

func TestUnresolvedCoproductAlt(t *testing.T) {
	sig := natSpec().Signature
	sig.Sorts["Shape"] = ast.Coproduct("Shape", ast.Alt("circle", "Ghost"))
	sig.Functions["unit"] = ast.Fn("unit", nil, "Shape")
	//
	result := Check(&ast.Spec{Name: "Nat", Signature: sig})

	assert.True(t, hasCheck(result.Errors(), "coproduct_sort_alts_resolved"))
}

func TestDuplicateAxiomLabels(t *testing.T) {
	y := ast.V("y", "Nat")
	axiom := ast.Axiom{Label: "same", Formula: ast.Forall([]*ast.Var{y},
		ast.Eq(ast.Apply("add", ast.Const("zero"), y), y))}
	//
	spec := natSpec(axiom, axiom)

	result := Check(spec)

	assert.True(t, hasCheck(result.Errors(), "duplicate_axiom_labels"))
}

func TestUnusedVariableWarning(t *testing.T) {
	x := ast.V("x", "Nat")
	y := ast.V("y", "Nat")
	spec := natSpec(ast.Axiom{Label: "lonely", Formula: ast.Forall([]*ast.Var{x, y},
		ast.Eq(ast.Apply("suc", x), ast.Apply("suc", x)))})

	result := Check(spec)

	assert.True(t, result.IsWellFormed())
	diag := findCheck(t, result.Warnings(), "var_used")
	assert.Contains(t, diag.Message, "'y'")
}

func TestTrivialAxiomWarning(t *testing.T) {
	x := ast.V("x", "Nat")
	spec := natSpec(ast.Axiom{Label: "trivial", Formula: ast.Forall([]*ast.Var{x},
		ast.Eq(x, x))})

	result := Check(spec)

	assert.True(t, hasCheck(result.Warnings(), "trivial_axiom"))
}

func TestGroundConstantEquationNotTrivial(t *testing.T) {
	// c() = c() anchors an otherwise unreferenced constant; no warning.
	spec := natSpec(ast.Axiom{Label: "anchor",
		Formula: ast.Eq(ast.Const("zero"), ast.Const("zero"))})

	result := Check(spec)

	assert.False(t, hasCheck(result.Warnings(), "trivial_axiom"))
}

func TestFieldAccess(t *testing.T) {
	sig := natSpec().Signature
	sig.Sorts["Point"] = ast.Product("Point", ast.Field("x", "Nat"))
	sig.Functions["origin"] = ast.Fn("origin", nil, "Point")
	//
	good := &ast.Spec{Name: "Nat", Signature: sig, Axioms: []ast.Axiom{
		{Label: "ok", Formula: ast.Eq(ast.Access(ast.Const("origin"), "x"), ast.Const("zero"))},
	}}
	require.True(t, Check(good).IsWellFormed())
	//
	bad := &ast.Spec{Name: "Nat", Signature: sig, Axioms: []ast.Axiom{
		{Label: "bad", Formula: ast.Eq(ast.Access(ast.Const("origin"), "z"), ast.Const("zero"))},
	}}
	assert.True(t, hasCheck(Check(bad).Errors(), "field_access_valid"))
	//
	nonProduct := &ast.Spec{Name: "Nat", Signature: sig, Axioms: []ast.Axiom{
		{Label: "bad2", Formula: ast.Eq(ast.Access(ast.Const("zero"), "x"), ast.Const("zero"))},
	}}
	assert.True(t, hasCheck(Check(nonProduct).Errors(), "field_access_valid"))
}

func TestObligationCoverageWarnsForTotalObserver(t *testing.T) {
	sig := &ast.Signature{
		Sorts: map[string]ast.Sort{
			"Stack": ast.Atomic("Stack"),
			"Elem":  ast.Atomic("Elem"),
		},
		Functions: map[string]*ast.FnSymbol{
			"new":  ast.Fn("new", nil, "Stack"),
			"push": ast.Fn("push", ast.Params("S", "Stack", "e", "Elem"), "Stack"),
			"size": ast.Fn("size", ast.Params("S", "Stack"), "Elem"),
		},
		Predicates: map[string]*ast.PredSymbol{},
	}
	// size has no axiom at all.
	spec := &ast.Spec{Name: "Stack", Signature: sig}

	result := Check(spec)

	diag := findCheck(t, result.Warnings(), "obligation_coverage")
	assert.Contains(t, diag.Message, "'size'")
	assert.Contains(t, diag.Message, "new")
	assert.Contains(t, diag.Message, "push")
}

func TestObligationCoverageExemptsPartialObservers(t *testing.T) {
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
		},
		Predicates: map[string]*ast.PredSymbol{},
	}
	// top only relates to push; partial observers owe nothing for new.
	spec := &ast.Spec{Name: "Stack", Signature: sig, Axioms: []ast.Axiom{
		{Label: "top_push", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Eq(ast.Apply("top", ast.Apply("push", s, e)), e))},
	}}

	result := Check(spec)

	assert.False(t, hasCheck(result.Warnings(), "obligation_coverage"))
}

func TestDiagnosticsSorted(t *testing.T) {
	x := ast.V("x", "Nat")
	spec := natSpec(
		ast.Axiom{Label: "z_bad", Formula: ast.Forall([]*ast.Var{x},
			ast.Eq(ast.Apply("mystery", x), x))},
		ast.Axiom{Label: "a_trivial", Formula: ast.Forall([]*ast.Var{x}, ast.Eq(x, x))},
	)

	result := Check(spec)

	require.GreaterOrEqual(t, len(result.Diagnostics), 2)
	// Errors come before warnings regardless of axiom order.
	assert.Equal(t, ERROR, result.Diagnostics[0].Severity)
	assert.Equal(t, WARNING, result.Diagnostics[len(result.Diagnostics)-1].Severity)
}
