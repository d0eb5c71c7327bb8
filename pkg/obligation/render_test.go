package obligation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formallabs/go-alspec/pkg/ast"
)

func TestRenderPhoneBook(t *testing.T) {
	sig := phoneBookSig()
	table := Build(sig)

	out := Render(sig, table)

	assert.Contains(t, out, "### Obligation Table: `Book`")
	assert.Contains(t, out, "- Constructors: `empty : → Book`, `add : Book × Name × Num → Book`")
	assert.Contains(t, out, "- Function observers: `lookup : Book × Name →? Num`")
	assert.Contains(t, out, "- Predicate observers: `contains`")
	assert.Contains(t, out, "- Equality predicates: `eq_name`")
	assert.Contains(t, out, "**Key dispatch:** `eq_name` over `Name`")
	// Dispatch column variants.
	assert.Contains(t, out, "hit (`eq_name`)")
	assert.Contains(t, out, "miss (`¬eq_name`)")
	// Guidance strings.
	assert.Contains(t, out, "Base ctor + partial obs: omit (safe) or write `¬def(...)`")
	assert.Contains(t, out, "Base ctor: typically false/negated")
	assert.Contains(t, out, "Key match: write equation, `¬def(...)`, or guarded equation")
	assert.Contains(t, out, "Key match: write predicate assertion or biconditional")
	assert.Contains(t, out, "Key miss: delegate to inner state (preservation)")
	// Extras and counts: 6 cells + 3 basis axioms for eq_name.
	assert.Contains(t, out, "**Additional axioms (outside the table):**")
	assert.Contains(t, out, "- **`eq_name` basis:** reflexivity, symmetry, transitivity (3 axioms)")
	assert.Contains(t, out, "**Expected axiom count:** 6 obligation cells + 3 additional = 9 minimum")
	assert.Contains(t, out, "single universal preservation")
}

func TestRenderMarksPartialSymbols(t *testing.T) {
	sig := phoneBookSig()
	table := Build(sig)

	out := Render(sig, table)

	assert.Contains(t, out, "`lookup` (fn) _(partial)_")
}

func TestRenderPartialConstructorDefinedness(t *testing.T) {
	// A partial constructor demands a definedness axiom outside the table.
	sig := phoneBookSig()
	sig.Functions["remove"] = ast.PartialFn("remove", ast.Params("b", "Book", "n", "Name"), "Book")
	sig.Generated["Book"].Constructors = append(sig.Generated["Book"].Constructors, "remove")
	table := Build(sig)

	out := Render(sig, table)

	assert.Contains(t, out,
		"- **`remove` definedness:** write a `Definedness` biconditional stating when `remove` is defined (1 axiom)")
	assert.Contains(t, out, "`remove` _(partial)_")
}

func TestRenderGridRowNumbering(t *testing.T) {
	sig := phoneBookSig()
	table := Build(sig)

	out := Render(sig, table)

	lines := strings.Split(out, "\n")
	rows := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "| ") && !strings.HasPrefix(line, "| #") {
			rows++
		}
	}
	//
	assert.Equal(t, len(table.Cells), rows)
}
