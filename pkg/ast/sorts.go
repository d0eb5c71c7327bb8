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
package ast

// SortRef is the name under which a sort is referenced.  Everywhere a sort
// is *used* (parameter profiles, fields, variable annotations) we carry only
// its name; the declaration itself lives in the owning Signature.
type SortRef = string

// SortKind distinguishes the three forms a sort declaration can take.
type SortKind uint

const (
	// SORT_ATOMIC is an opaque carrier with no internal structure.
	SORT_ATOMIC SortKind = iota
	// SORT_PRODUCT is a record of named, sorted fields.
	SORT_PRODUCT
	// SORT_COPRODUCT is a tagged union of alternatives.
	SORT_COPRODUCT
)

func (k SortKind) String() string {
	switch k {
	case SORT_ATOMIC:
		return "atomic"
	case SORT_PRODUCT:
		return "product"
	case SORT_COPRODUCT:
		return "coproduct"
	}
	//
	panic("unknown sort kind")
}

// Sort is a declaration of a named carrier set.  Exactly three
// implementations exist: AtomicSort, ProductSort and CoproductSort.  The sum
// is closed so traversals can type-switch exhaustively.
type Sort interface {
	// Name returns the declared name of this sort.
	Name() SortRef
	// Kind identifies which of the three declaration forms this is.
	Kind() SortKind
}

// ============================================================================
// Atomic
// ============================================================================

// AtomicSort is an opaque sort, such as Nat, Bool or TicketId.
type AtomicSort struct {
	SortName SortRef
}

// Name implementation for the Sort interface.
func (s *AtomicSort) Name() SortRef { return s.SortName }

// Kind implementation for the Sort interface.
func (s *AtomicSort) Kind() SortKind { return SORT_ATOMIC }

// ============================================================================
// Product
// ============================================================================

// ProductField is a named, sorted field of a product sort.
type ProductField struct {
	FieldName string
	Sort      SortRef
}

// ProductSort is a sort with named fields (a record).
type ProductSort struct {
	SortName SortRef
	Fields   []ProductField
}

// Name implementation for the Sort interface.
func (s *ProductSort) Name() SortRef { return s.SortName }

// Kind implementation for the Sort interface.
func (s *ProductSort) Kind() SortKind { return SORT_PRODUCT }

// FieldSort looks up the sort of a field by name, returning false if the
// product declares no such field.
func (s *ProductSort) FieldSort(field string) (SortRef, bool) {
	for _, f := range s.Fields {
		if f.FieldName == field {
			return f.Sort, true
		}
	}
	//
	return "", false
}

// ============================================================================
// Coproduct
// ============================================================================

// CoproductAlt is a tagged alternative of a coproduct sort.
type CoproductAlt struct {
	Tag  string
	Sort SortRef
}

// CoproductSort is a sort that is one of several tagged alternatives.
type CoproductSort struct {
	SortName SortRef
	Alts     []CoproductAlt
}

// Name implementation for the Sort interface.
func (s *CoproductSort) Name() SortRef { return s.SortName }

// Kind implementation for the Sort interface.
func (s *CoproductSort) Kind() SortKind { return SORT_COPRODUCT }
