package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formallabs/go-alspec/pkg/ast"
	"github.com/formallabs/go-alspec/pkg/check"
)

func stackSig() *ast.Signature {
	return &ast.Signature{
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
}

func auditChecks(diags []check.Diagnostic, name string) []check.Diagnostic {
	var out []check.Diagnostic
	for _, d := range diags {
		if d.Check == name {
			out = append(out, d)
		}
	}
	//
	return out
}

func TestAuditUnconstrainedFn(t *testing.T) {
	sig := stackSig()
	spec := &ast.Spec{Name: "Stack", Signature: sig, Axioms: nil}

	diags := Audit(spec)

	// Every function is unreferenced: four warnings.
	assert.Len(t, auditChecks(diags, "unconstrained_fn"), 4)
}

func TestAuditUnconstrainedPred(t *testing.T) {
	sig := stackSig()
	sig.Predicates["is_empty"] = ast.Pred("is_empty", ast.Params("S", "Stack"))
	spec := &ast.Spec{Name: "Stack", Signature: sig}

	diags := Audit(spec)

	found := auditChecks(diags, "unconstrained_pred")
	assert.Len(t, found, 1)
	assert.Contains(t, found[0].Message, "'is_empty'")
}

func TestAuditOrphanSort(t *testing.T) {
	sig := stackSig()
	sig.Sorts["Ghost"] = ast.Atomic("Ghost")
	spec := &ast.Spec{Name: "Stack", Signature: sig}

	diags := Audit(spec)

	found := auditChecks(diags, "orphan_sort")
	assert.Len(t, found, 1)
	assert.Contains(t, found[0].Message, "'Ghost'")
}

func TestDefinitelyDefined(t *testing.T) {
	sig := stackSig()
	s := ast.V("S", "Stack")
	e := ast.V("e", "Elem")

	assert.True(t, DefinitelyDefined(s, sig))
	assert.True(t, DefinitelyDefined(ast.Lit("1", "Elem"), sig))
	assert.True(t, DefinitelyDefined(ast.Apply("push", s, e), sig))
	assert.True(t, DefinitelyDefined(ast.Apply("push", ast.Const("new"), e), sig))
	// Partial application is never definitely defined, even over defined args.
	assert.False(t, DefinitelyDefined(ast.Apply("top", s), sig))
	// Total application over a partial argument is not definitely defined.
	assert.False(t, DefinitelyDefined(ast.Apply("push", ast.Apply("pop", s), e), sig))
}

func TestUnwitnessedPartialFires(t *testing.T) {
	spec := &ast.Spec{Name: "Stack", Signature: stackSig(), Axioms: []ast.Axiom{
		// pop only ever equated to another partial application: no witness.
		{Label: "pop_pop", Formula: ast.Forall([]*ast.Var{ast.V("S", "Stack")},
			ast.Eq(ast.Apply("pop", ast.V("S", "Stack")), ast.Apply("pop", ast.V("S", "Stack"))))},
	}}

	diags := Audit(spec)

	found := auditChecks(diags, "unwitnessed_partial")
	names := make([]string, len(found))
	for i, d := range found {
		names[i] = d.Message
	}
	//
	assert.Len(t, found, 2)
	assert.Contains(t, names[0], "'pop'")
	assert.Contains(t, names[1], "'top'")
}

func TestWitnessViaEquationRHS(t *testing.T) {
	s := ast.V("S", "Stack")
	e := ast.V("e", "Elem")
	spec := &ast.Spec{Name: "Stack", Signature: stackSig(), Axioms: []ast.Axiom{
		{Label: "top_push", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Eq(ast.Apply("top", ast.Apply("push", s, e)), e))},
		{Label: "pop_push", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Eq(ast.Apply("pop", ast.Apply("push", s, e)), s))},
	}}

	diags := Audit(spec)

	assert.Empty(t, auditChecks(diags, "unwitnessed_partial"))
}

func TestWitnessViaDefinedness(t *testing.T) {
	s := ast.V("S", "Stack")
	e := ast.V("e", "Elem")
	spec := &ast.Spec{Name: "Stack", Signature: stackSig(), Axioms: []ast.Axiom{
		{Label: "top_def", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Def(ast.Apply("top", ast.Apply("push", s, e))))},
		// A negated definedness claim still counts as a witness: the author
		// has reasoned about where the function is defined.
		{Label: "pop_new_undef", Formula: ast.Not(ast.Def(ast.Apply("pop", ast.Const("new"))))},
	}}

	diags := Audit(spec)

	assert.Empty(t, auditChecks(diags, "unwitnessed_partial"))
}

func TestWitnessViaBuriedEquation(t *testing.T) {
	s := ast.V("S", "Stack")
	e := ast.V("e", "Elem")
	// The witnessing equation sits under a compound antecedent, where the
	// decomposer cannot attribute it; the structural walk still finds it.
	spec := &ast.Spec{Name: "Stack", Signature: stackSig(), Axioms: []ast.Axiom{
		{Label: "guarded", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Implies(
				ast.And(ast.Holds("nonempty", s), ast.Eq(ast.Apply("top", s), e)),
				ast.Eq(ast.Apply("pop", s), ast.Const("new"))))},
	}}
	spec.Signature.Predicates["nonempty"] = ast.Pred("nonempty", ast.Params("S", "Stack"))

	diags := Audit(spec)

	// top = e is definitely defined on the variable side; pop = new() on the
	// constant side.
	assert.Empty(t, auditChecks(diags, "unwitnessed_partial"))
}

func TestCaseSplitIncomplete(t *testing.T) {
	k := ast.V("k", "Key")
	k2 := ast.V("k2", "Key")
	m := ast.V("m", "Map")
	v := ast.V("v", "Val")
	//
	sig := &ast.Signature{
		Sorts: map[string]ast.Sort{
			"Map": ast.Atomic("Map"), "Key": ast.Atomic("Key"), "Val": ast.Atomic("Val"),
		},
		Functions: map[string]*ast.FnSymbol{
			"empty":  ast.Fn("empty", nil, "Map"),
			"insert": ast.Fn("insert", ast.Params("m", "Map", "k", "Key", "v", "Val"), "Map"),
			"lookup": ast.PartialFn("lookup", ast.Params("m", "Map", "k", "Key"), "Val"),
		},
		Predicates: map[string]*ast.PredSymbol{
			"eq_key": ast.Pred("eq_key", ast.Params("a", "Key", "b", "Key")),
		},
	}
	// Only the hit branch: the miss branch over the same key is missing.
	spec := &ast.Spec{Name: "Map", Signature: sig, Axioms: []ast.Axiom{
		{Label: "lookup_hit", Formula: ast.Forall([]*ast.Var{k, k2, m, v},
			ast.Implies(
				ast.Holds("eq_key", k, k2),
				ast.Eq(ast.Apply("lookup", ast.Apply("insert", m, k2, v), k), v)))},
	}}

	diags := Audit(spec)

	found := auditChecks(diags, "case_split_incomplete")
	assert.Len(t, found, 1)
	assert.Contains(t, found[0].Message, "missing negative branch for guard eq_key(k, k2)")
}

func TestCaseSplitComplete(t *testing.T) {
	k := ast.V("k", "Key")
	k2 := ast.V("k2", "Key")
	m := ast.V("m", "Map")
	v := ast.V("v", "Val")
	//
	sig := &ast.Signature{
		Sorts: map[string]ast.Sort{
			"Map": ast.Atomic("Map"), "Key": ast.Atomic("Key"), "Val": ast.Atomic("Val"),
		},
		Functions: map[string]*ast.FnSymbol{
			"empty":  ast.Fn("empty", nil, "Map"),
			"insert": ast.Fn("insert", ast.Params("m", "Map", "k", "Key", "v", "Val"), "Map"),
			"lookup": ast.PartialFn("lookup", ast.Params("m", "Map", "k", "Key"), "Val"),
		},
		Predicates: map[string]*ast.PredSymbol{
			"eq_key": ast.Pred("eq_key", ast.Params("a", "Key", "b", "Key")),
		},
	}
	spec := &ast.Spec{Name: "Map", Signature: sig, Axioms: []ast.Axiom{
		{Label: "lookup_hit", Formula: ast.Forall([]*ast.Var{k, k2, m, v},
			ast.Implies(
				ast.Holds("eq_key", k, k2),
				ast.Eq(ast.Apply("lookup", ast.Apply("insert", m, k2, v), k), v)))},
		{Label: "lookup_miss", Formula: ast.Forall([]*ast.Var{k, k2, m, v},
			ast.Implies(
				ast.Not(ast.Holds("eq_key", k, k2)),
				ast.Eq(ast.Apply("lookup", ast.Apply("insert", m, k2, v), k),
					ast.Apply("lookup", m, k))))},
	}}

	diags := Audit(spec)

	assert.Empty(t, auditChecks(diags, "case_split_incomplete"))
	assert.Empty(t, auditChecks(diags, "case_split_mixed"))
}

func TestCaseSplitMixed(t *testing.T) {
	s := ast.V("S", "Stack")
	e := ast.V("e", "Elem")
	sig := stackSig()
	sig.Predicates["marked"] = ast.Pred("marked", ast.Params("e", "Elem"))
	//
	spec := &ast.Spec{Name: "Stack", Signature: sig, Axioms: []ast.Axiom{
		{Label: "top_push", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Eq(ast.Apply("top", ast.Apply("push", s, e)), e))},
		{Label: "top_push_marked", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Implies(ast.Holds("marked", e),
				ast.Eq(ast.Apply("top", ast.Apply("push", s, e)), e)))},
	}}

	diags := Audit(spec)

	found := auditChecks(diags, "case_split_mixed")
	assert.Len(t, found, 1)
	assert.Contains(t, found[0].Message, "'top'")
	assert.Contains(t, found[0].Message, "'push'")
}

func TestCaseSplitSkipsPartialConstructor(t *testing.T) {
	s := ast.V("S", "Stack")
	e := ast.V("e", "Elem")
	sig := stackSig()
	sig.Predicates["marked"] = ast.Pred("marked", ast.Params("e", "Elem"))
	// top over pop: pop is PARTIAL, so the one-sided guard is not flagged.
	spec := &ast.Spec{Name: "Stack", Signature: sig, Axioms: []ast.Axiom{
		{Label: "top_pop", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Implies(ast.Holds("marked", e),
				ast.Eq(ast.Apply("top", ast.Apply("pop", s)), e)))},
	}}

	diags := Audit(spec)

	assert.Empty(t, auditChecks(diags, "case_split_incomplete"))
}

func TestCaseSplitCoverageInfo(t *testing.T) {
	s := ast.V("S", "Stack")
	e := ast.V("e", "Elem")
	spec := &ast.Spec{Name: "Stack", Signature: stackSig(), Axioms: []ast.Axiom{
		{Label: "top_push", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Eq(ast.Apply("top", ast.Apply("push", s, e)), e))},
		{Label: "pop_push", Formula: ast.Forall([]*ast.Var{s, e},
			ast.Eq(ast.Apply("pop", ast.Apply("push", s, e)), s))},
	}}

	diags := Audit(spec)

	found := auditChecks(diags, "case_split_coverage")
	assert.Len(t, found, 1)
	assert.Equal(t, check.INFO, found[0].Severity)
	assert.Contains(t, found[0].Message, "2 of 2 axioms grouped into 2 observer×constructor pairs")
}
