package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formallabs/go-alspec/pkg/ast"
	"github.com/formallabs/go-alspec/pkg/examples"
)

func brokenSpec(errors int) *ast.Spec {
	sig := &ast.Signature{
		Sorts: map[string]ast.Sort{
			"Nat": ast.Atomic("Nat"),
		},
		Functions: map[string]*ast.FnSymbol{
			"zero": ast.Fn("zero", nil, "Nat"),
		},
		Predicates: map[string]*ast.PredSymbol{},
	}
	//
	var axioms []ast.Axiom
	for i := 0; i < errors; i++ {
		// Each undeclared function yields exactly one fn_declared error.
		axioms = append(axioms, ast.Axiom{
			Label:   string(rune('a' + i)),
			Formula: ast.Eq(ast.Const("mystery"+string(rune('a'+i))), ast.Const("zero")),
		})
	}
	//
	return &ast.Spec{Name: "Broken", Signature: sig, Axioms: axioms}
}

func TestScoreWellFormed(t *testing.T) {
	score := Score(examples.Bool(), Options{Strict: true})

	assert.True(t, score.WellFormed)
	assert.Equal(t, 0, score.ErrorCount)
	assert.Equal(t, 1.0, score.Health)
	assert.Equal(t, "Bool", score.SpecName)
	assert.NotZero(t, score.AxiomCount)
}

func TestScoreStrictZeroesHealth(t *testing.T) {
	score := Score(brokenSpec(1), Options{Strict: true})

	assert.False(t, score.WellFormed)
	assert.Equal(t, 1, score.ErrorCount)
	assert.Equal(t, 0.0, score.Health)
}

func TestScoreSmoothDegradation(t *testing.T) {
	score := Score(brokenSpec(2), Options{Strict: false})

	assert.Equal(t, 2, score.ErrorCount)
	assert.InDelta(t, 0.7, score.Health, 1e-9)
}

func TestScoreSmoothFloorsAtZero(t *testing.T) {
	score := Score(brokenSpec(8), Options{Strict: false})

	assert.Equal(t, 0.0, score.Health)
}

func TestScoreAuditAddsWarnings(t *testing.T) {
	// The spec stays well-formed; the audit adds adequacy warnings without
	// ever affecting well-formedness or health.
	spec := examples.Bool()
	spec.Signature.Functions["phantom"] = ast.Fn("phantom", ast.Params("b", "Bool"), "Bool")
	//
	plain := Score(spec, Options{Strict: true})
	audited := Score(spec, Options{Strict: true, Audit: true})

	assert.Equal(t, plain.WellFormed, audited.WellFormed)
	assert.Equal(t, plain.Health, audited.Health)
	// phantom is never referenced in any axiom: unconstrained_fn.
	assert.Greater(t, audited.WarningCount, plain.WarningCount)
	assert.Greater(t, len(audited.Diagnostics), len(plain.Diagnostics))
}

func TestScoreAuditExcludesInfoFromWarningCount(t *testing.T) {
	spec := examples.Bool()
	//
	plain := Score(spec, Options{Strict: true})
	audited := Score(spec, Options{Strict: true, Audit: true})

	// The audit always appends the INFO coverage summary, which must not be
	// counted as a warning.
	assert.Greater(t, len(audited.Diagnostics), len(plain.Diagnostics))
	assert.Equal(t, plain.WarningCount, audited.WarningCount)
}

func TestFormatWellFormed(t *testing.T) {
	out := Format(Score(examples.Bool(), Options{Strict: true}))

	assert.Contains(t, out, "Bool — Health: 100/100")
	assert.Contains(t, out, "  ✓ Well-formed (0 errors)")
	assert.Contains(t, out, "  Signature: ")
}

func TestFormatIllFormed(t *testing.T) {
	out := Format(Score(brokenSpec(2), Options{Strict: true}))

	assert.Contains(t, out, "Broken — Health: 0/100")
	assert.Contains(t, out, "  × Ill-formed (2 errors)")
	assert.Contains(t, out, "[fn_declared]")
	assert.Contains(t, out, "(ERROR)")
}

func TestFormatWarnings(t *testing.T) {
	spec := examples.Bool()
	spec.Signature.Sorts["Unused"] = ast.Atomic("Unused")
	//
	out := Format(Score(spec, Options{Strict: true}))

	assert.Contains(t, out, "⚠ 1 warning")
	assert.Contains(t, out, "[no_empty_sorts]")
	assert.Contains(t, out, "(WARNING)")
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(Score(examples.Bool(), Options{Strict: true}))
	require.NoError(t, err)
	//
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "Bool", decoded["spec_name"])
	assert.Equal(t, true, decoded["well_formed"])
	assert.Equal(t, 1.0, decoded["health"])
	assert.Contains(t, decoded, "diagnostics")
}
