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
package analysis

import "github.com/formallabs/go-alspec/pkg/ast"

// AxiomIndex is a read-only view over the decomposed axioms of one spec,
// supporting the queries the adequacy analyses need.  It is a pure function
// of the spec: rebuildable, cacheable and safely shareable.
type AxiomIndex struct {
	// Records holds one decomposition per axiom, in axiom order.
	Records []AxiomRecord
	// ByConstrained maps a symbol name to all records constraining it.
	ByConstrained map[string][]AxiomRecord
	// AllReferencedFns is the union of function names referenced by any
	// axiom.
	AllReferencedFns map[string]bool
	// AllReferencedPreds is the union of predicate names referenced by any
	// axiom.
	AllReferencedPreds map[string]bool
}

// NewIndex decomposes every axiom of the spec and assembles the derived
// lookups in one linear pass.
func NewIndex(spec *ast.Spec) *AxiomIndex {
	index := &AxiomIndex{
		Records:            make([]AxiomRecord, len(spec.Axioms)),
		ByConstrained:      make(map[string][]AxiomRecord),
		AllReferencedFns:   make(map[string]bool),
		AllReferencedPreds: make(map[string]bool),
	}
	//
	for i, axiom := range spec.Axioms {
		record := Decompose(axiom)
		index.Records[i] = record
		//
		if constrained, ok := record.Constrained.Get(); ok {
			index.ByConstrained[constrained.Name] = append(index.ByConstrained[constrained.Name], record)
		}
		//
		for fn := range record.ReferencedFns {
			index.AllReferencedFns[fn] = true
		}
		//
		for pred := range record.ReferencedPreds {
			index.AllReferencedPreds[pred] = true
		}
	}
	//
	return index
}
