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

import "sort"

// Totality indicates whether a function symbol is defined on its whole
// domain, or only part of it.
type Totality uint

const (
	// TOTAL functions are defined for every argument tuple.
	TOTAL Totality = iota
	// PARTIAL functions may be undefined for some argument tuples (e.g. the
	// head of an empty list).
	PARTIAL
)

func (t Totality) String() string {
	switch t {
	case TOTAL:
		return "total"
	case PARTIAL:
		return "partial"
	}
	//
	panic("unknown totality")
}

// Param is a named, sorted parameter of a function or predicate symbol.
type Param struct {
	Name string
	Sort SortRef
}

// FnSymbol is a function symbol with a profile f : s1 x ... x sn -> s.  A
// zero-arity function symbol is a constant.
type FnSymbol struct {
	Name     string
	Params   []Param
	Result   SortRef
	Totality Totality
}

// Arity returns the number of declared parameters.
func (f *FnSymbol) Arity() int { return len(f.Params) }

// IsConstant reports whether this symbol takes no arguments.
func (f *FnSymbol) IsConstant() bool { return len(f.Params) == 0 }

// ParamSorts returns the parameter sorts in declaration order.
func (f *FnSymbol) ParamSorts() []SortRef {
	sorts := make([]SortRef, len(f.Params))
	for i, p := range f.Params {
		sorts[i] = p.Sort
	}
	//
	return sorts
}

// PredSymbol is a predicate symbol.  Predicates are declared separately from
// function symbols (following CASL) since they hold or fail to hold rather
// than denoting a value.
type PredSymbol struct {
	Name   string
	Params []Param
}

// Arity returns the number of declared parameters.
func (p *PredSymbol) Arity() int { return len(p.Params) }

// ParamSorts returns the parameter sorts in declaration order.
func (p *PredSymbol) ParamSorts() []SortRef {
	sorts := make([]SortRef, len(p.Params))
	for i, pp := range p.Params {
		sorts[i] = pp.Sort
	}
	//
	return sorts
}

// ============================================================================
// Generated sorts
// ============================================================================

// GeneratedSortInfo annotates a sort with an explicit, exhaustive list of
// constructors (a CASL "generated type"), plus an optional per-constructor
// selector map.  Constructor order is declaration order and is externally
// observable in the obligation table.
type GeneratedSortInfo struct {
	// Constructors lists the function symbols which build this sort, in
	// declaration order.
	Constructors []string
	// Selectors maps a constructor name to its selector functions, each
	// paired with the sort of the component it extracts.
	Selectors map[string]map[string]SortRef
}

// SelectorConstructors returns the constructor names carrying selectors, in
// lexicographic order.
func (g *GeneratedSortInfo) SelectorConstructors() []string {
	names := make([]string, 0, len(g.Selectors))
	for name := range g.Selectors {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	return names
}

// ============================================================================
// Signature
// ============================================================================

// Signature is a many-sorted signature: sort declarations, function symbols
// and predicate symbols, each keyed by name.  Generated optionally annotates
// sorts with declared constructor lists.  A signature is constructed once
// and never mutated.
type Signature struct {
	Sorts      map[string]Sort
	Functions  map[string]*FnSymbol
	Predicates map[string]*PredSymbol
	Generated  map[string]*GeneratedSortInfo
}

// Sort looks up a sort declaration by name.
func (s *Signature) Sort(name string) (Sort, bool) {
	decl, ok := s.Sorts[name]
	return decl, ok
}

// Fn looks up a function symbol by name.
func (s *Signature) Fn(name string) (*FnSymbol, bool) {
	fn, ok := s.Functions[name]
	return fn, ok
}

// Pred looks up a predicate symbol by name.
func (s *Signature) Pred(name string) (*PredSymbol, bool) {
	pred, ok := s.Predicates[name]
	return pred, ok
}

// SortNames returns all declared sort names in lexicographic order.
func (s *Signature) SortNames() []string {
	return sortedKeys(s.Sorts)
}

// FnNames returns all declared function names in lexicographic order.
func (s *Signature) FnNames() []string {
	return sortedKeys(s.Functions)
}

// PredNames returns all declared predicate names in lexicographic order.
func (s *Signature) PredNames() []string {
	return sortedKeys(s.Predicates)
}

// GeneratedSortNames returns the names of all generated sorts in
// lexicographic order.
func (s *Signature) GeneratedSortNames() []string {
	return sortedKeys(s.Generated)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	//
	sort.Strings(keys)
	//
	return keys
}
