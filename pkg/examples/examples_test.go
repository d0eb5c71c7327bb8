package examples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formallabs/go-alspec/pkg/analysis"
	"github.com/formallabs/go-alspec/pkg/check"
)

func TestCatalogueWellFormed(t *testing.T) {
	specs := append(All(), DoorLock())
	require.Len(t, specs, 10)
	//
	for _, spec := range specs {
		t.Run(spec.Name, func(t *testing.T) {
			result := check.Check(spec)
			//
			for _, diag := range result.Errors() {
				t.Errorf("[%s] %s: %s", diag.Check, diag.Axiom, diag.Message)
			}
		})
	}
}

func TestPartialFunctionsWitnessed(t *testing.T) {
	// Every partial function in the library carries a definedness witness:
	// Stack's pop/top via push equations, FiniteMap's lookup via the hit
	// axiom.
	for _, spec := range All() {
		t.Run(spec.Name, func(t *testing.T) {
			for _, diag := range analysis.Audit(spec) {
				assert.NotEqual(t, "unwitnessed_partial", diag.Check, diag.Message)
			}
		})
	}
}

func TestDoorLockAuditClean(t *testing.T) {
	for _, diag := range analysis.Audit(DoorLock()) {
		if diag.Severity == check.WARNING {
			t.Errorf("[%s] %s", diag.Check, diag.Message)
		}
	}
}

func TestTotalOrderExtendsPartialOrder(t *testing.T) {
	partial := PartialOrder()
	total := TotalOrder()

	assert.Equal(t, len(partial.Axioms)+1, len(total.Axioms))
	assert.Equal(t, "totality", total.Axioms[len(total.Axioms)-1].Label)
}
