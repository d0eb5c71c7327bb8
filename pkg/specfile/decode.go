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
package specfile

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/formallabs/go-alspec/pkg/ast"
)

// Unmarshal decodes a spec from JSON.
func Unmarshal(data []byte) (*ast.Spec, error) {
	var raw map[string]any
	//
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	//
	return specFromMap(raw)
}

// UnmarshalYAML decodes a spec from YAML.  The document shape is identical
// to the JSON one.
func UnmarshalYAML(data []byte) (*ast.Spec, error) {
	var raw map[string]any
	//
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	//
	return specFromMap(raw)
}

func specFromMap(raw map[string]any) (*ast.Spec, error) {
	name, err := getString(raw, "name")
	if err != nil {
		return nil, err
	}
	//
	sigMap, err := getMap(raw, "signature")
	if err != nil {
		return nil, err
	}
	//
	sig, err := signatureFromMap(sigMap)
	if err != nil {
		return nil, err
	}
	//
	axiomList, err := getList(raw, "axioms")
	if err != nil {
		return nil, err
	}
	//
	axioms := make([]ast.Axiom, len(axiomList))
	//
	for i, item := range axiomList {
		axiomMap, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("axiom %d: expected object, got %T", i, item)
		}
		//
		label, err := getString(axiomMap, "label")
		if err != nil {
			return nil, fmt.Errorf("axiom %d: %w", i, err)
		}
		//
		formulaMap, err := getMap(axiomMap, "formula")
		if err != nil {
			return nil, fmt.Errorf("axiom %q: %w", label, err)
		}
		//
		formula, err := formulaFromMap(formulaMap)
		if err != nil {
			return nil, fmt.Errorf("axiom %q: %w", label, err)
		}
		//
		axioms[i] = ast.Axiom{Label: label, Formula: formula}
	}
	//
	return &ast.Spec{Name: name, Signature: sig, Axioms: axioms}, nil
}

func signatureFromMap(raw map[string]any) (*ast.Signature, error) {
	sig := &ast.Signature{
		Sorts:      make(map[string]ast.Sort),
		Functions:  make(map[string]*ast.FnSymbol),
		Predicates: make(map[string]*ast.PredSymbol),
		Generated:  make(map[string]*ast.GeneratedSortInfo),
	}
	//
	sorts, err := getMap(raw, "sorts")
	if err != nil {
		return nil, err
	}
	//
	for name, item := range sorts {
		sortMap, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("sort %q: expected object, got %T", name, item)
		}
		//
		if sig.Sorts[name], err = sortFromMap(sortMap); err != nil {
			return nil, fmt.Errorf("sort %q: %w", name, err)
		}
	}
	//
	functions, err := getMap(raw, "functions")
	if err != nil {
		return nil, err
	}
	//
	for name, item := range functions {
		fnMap, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("function %q: expected object, got %T", name, item)
		}
		//
		if sig.Functions[name], err = fnSymbolFromMap(fnMap); err != nil {
			return nil, fmt.Errorf("function %q: %w", name, err)
		}
	}
	//
	predicates, err := getMap(raw, "predicates")
	if err != nil {
		return nil, err
	}
	//
	for name, item := range predicates {
		predMap, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("predicate %q: expected object, got %T", name, item)
		}
		//
		if sig.Predicates[name], err = predSymbolFromMap(predMap); err != nil {
			return nil, fmt.Errorf("predicate %q: %w", name, err)
		}
	}
	// generated_sorts is an optional extension.
	if _, present := raw["generated_sorts"]; present {
		generated, err := getMap(raw, "generated_sorts")
		if err != nil {
			return nil, err
		}
		//
		for name, item := range generated {
			infoMap, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("generated sort %q: expected object, got %T", name, item)
			}
			//
			if sig.Generated[name], err = generatedFromMap(infoMap); err != nil {
				return nil, fmt.Errorf("generated sort %q: %w", name, err)
			}
		}
	}
	//
	return sig, nil
}

func generatedFromMap(raw map[string]any) (*ast.GeneratedSortInfo, error) {
	ctorList, err := getList(raw, "constructors")
	if err != nil {
		return nil, err
	}
	//
	info := &ast.GeneratedSortInfo{Constructors: make([]string, len(ctorList))}
	//
	for i, item := range ctorList {
		ctor, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("constructor %d: expected string, got %T", i, item)
		}
		//
		info.Constructors[i] = ctor
	}
	//
	if _, present := raw["selectors"]; present {
		selectors, err := getMap(raw, "selectors")
		if err != nil {
			return nil, err
		}
		//
		info.Selectors = make(map[string]map[string]ast.SortRef, len(selectors))
		//
		for ctor, item := range selectors {
			byName, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("selectors of %q: expected object, got %T", ctor, item)
			}
			//
			sels := make(map[string]ast.SortRef, len(byName))
			//
			for sel, sortItem := range byName {
				sort, ok := sortItem.(string)
				if !ok {
					return nil, fmt.Errorf("selector %q: expected string sort, got %T", sel, sortItem)
				}
				//
				sels[sel] = ast.SortRef(sort)
			}
			//
			info.Selectors[ctor] = sels
		}
	}
	//
	return info, nil
}

func sortFromMap(raw map[string]any) (ast.Sort, error) {
	kind, err := getString(raw, "type")
	if err != nil {
		return nil, err
	}
	//
	name, err := getString(raw, "name")
	if err != nil {
		return nil, err
	}
	//
	switch kind {
	case "atomic":
		return &ast.AtomicSort{SortName: ast.SortRef(name)}, nil
	case "product":
		fieldList, err := getList(raw, "fields")
		if err != nil {
			return nil, err
		}
		//
		sort := &ast.ProductSort{SortName: ast.SortRef(name)}
		//
		for i, item := range fieldList {
			fieldMap, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("field %d: expected object, got %T", i, item)
			}
			//
			fieldName, err := getString(fieldMap, "name")
			if err != nil {
				return nil, err
			}
			//
			fieldSort, err := getString(fieldMap, "sort")
			if err != nil {
				return nil, err
			}
			//
			sort.Fields = append(sort.Fields, ast.ProductField{
				FieldName: fieldName, Sort: ast.SortRef(fieldSort)})
		}
		//
		return sort, nil
	case "coproduct":
		altList, err := getList(raw, "alts")
		if err != nil {
			return nil, err
		}
		//
		sort := &ast.CoproductSort{SortName: ast.SortRef(name)}
		//
		for i, item := range altList {
			altMap, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("alt %d: expected object, got %T", i, item)
			}
			//
			tag, err := getString(altMap, "tag")
			if err != nil {
				return nil, err
			}
			//
			altSort, err := getString(altMap, "sort")
			if err != nil {
				return nil, err
			}
			//
			sort.Alts = append(sort.Alts, ast.CoproductAlt{Tag: tag, Sort: ast.SortRef(altSort)})
		}
		//
		return sort, nil
	default:
		return nil, fmt.Errorf("unknown sort type %q", kind)
	}
}

func paramsFromList(raw map[string]any) ([]ast.Param, error) {
	paramList, err := getList(raw, "params")
	if err != nil {
		return nil, err
	}
	// Keep nullary symbols' params nil so a decoded spec compares equal to
	// one built in memory.
	if len(paramList) == 0 {
		return nil, nil
	}
	//
	params := make([]ast.Param, len(paramList))
	//
	for i, item := range paramList {
		paramMap, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("param %d: expected object, got %T", i, item)
		}
		//
		name, err := getString(paramMap, "name")
		if err != nil {
			return nil, err
		}
		//
		sort, err := getString(paramMap, "sort")
		if err != nil {
			return nil, err
		}
		//
		params[i] = ast.Param{Name: name, Sort: ast.SortRef(sort)}
	}
	//
	return params, nil
}

func fnSymbolFromMap(raw map[string]any) (*ast.FnSymbol, error) {
	name, err := getString(raw, "name")
	if err != nil {
		return nil, err
	}
	//
	params, err := paramsFromList(raw)
	if err != nil {
		return nil, err
	}
	//
	result, err := getString(raw, "result")
	if err != nil {
		return nil, err
	}
	//
	totalityStr, err := getString(raw, "totality")
	if err != nil {
		return nil, err
	}
	//
	var totality ast.Totality
	//
	switch totalityStr {
	case "total":
		totality = ast.TOTAL
	case "partial":
		totality = ast.PARTIAL
	default:
		return nil, fmt.Errorf("unknown totality %q", totalityStr)
	}
	//
	return &ast.FnSymbol{Name: name, Params: params, Result: ast.SortRef(result), Totality: totality}, nil
}

func predSymbolFromMap(raw map[string]any) (*ast.PredSymbol, error) {
	name, err := getString(raw, "name")
	if err != nil {
		return nil, err
	}
	//
	params, err := paramsFromList(raw)
	if err != nil {
		return nil, err
	}
	//
	return &ast.PredSymbol{Name: name, Params: params}, nil
}

func termFromMap(raw map[string]any) (ast.Term, error) {
	kind, err := getString(raw, "type")
	if err != nil {
		return nil, err
	}
	//
	switch kind {
	case "var":
		name, err := getString(raw, "name")
		if err != nil {
			return nil, err
		}
		//
		sort, err := getString(raw, "sort")
		if err != nil {
			return nil, err
		}
		//
		return &ast.Var{Name: name, Sort: ast.SortRef(sort)}, nil
	case "fn_app":
		fnName, err := getString(raw, "fn_name")
		if err != nil {
			return nil, err
		}
		//
		args, err := termsFromList(raw, "args")
		if err != nil {
			return nil, err
		}
		//
		return &ast.FnApp{Fn: fnName, Args: args}, nil
	case "field_access":
		baseMap, err := getMap(raw, "term")
		if err != nil {
			return nil, err
		}
		//
		base, err := termFromMap(baseMap)
		if err != nil {
			return nil, err
		}
		//
		fieldName, err := getString(raw, "field_name")
		if err != nil {
			return nil, err
		}
		//
		return &ast.FieldAccess{Base: base, Field: fieldName}, nil
	case "literal":
		value, err := getString(raw, "value")
		if err != nil {
			return nil, err
		}
		//
		sort, err := getString(raw, "sort")
		if err != nil {
			return nil, err
		}
		//
		return &ast.Literal{Value: value, Sort: ast.SortRef(sort)}, nil
	default:
		return nil, fmt.Errorf("unknown term type %q", kind)
	}
}

func termsFromList(raw map[string]any, key string) ([]ast.Term, error) {
	list, err := getList(raw, key)
	if err != nil {
		return nil, err
	}
	//
	terms := make([]ast.Term, len(list))
	//
	for i, item := range list {
		termMap, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected object, got %T", key, i, item)
		}
		//
		if terms[i], err = termFromMap(termMap); err != nil {
			return nil, err
		}
	}
	//
	return terms, nil
}

func formulaFromMap(raw map[string]any) (ast.Formula, error) {
	kind, err := getString(raw, "type")
	if err != nil {
		return nil, err
	}
	//
	switch kind {
	case "equation":
		lhs, err := subTerm(raw, "lhs")
		if err != nil {
			return nil, err
		}
		//
		rhs, err := subTerm(raw, "rhs")
		if err != nil {
			return nil, err
		}
		//
		return &ast.Equation{Lhs: lhs, Rhs: rhs}, nil
	case "pred_app":
		predName, err := getString(raw, "pred_name")
		if err != nil {
			return nil, err
		}
		//
		args, err := termsFromList(raw, "args")
		if err != nil {
			return nil, err
		}
		//
		return &ast.PredApp{Pred: predName, Args: args}, nil
	case "negation":
		body, err := subFormula(raw, "formula")
		if err != nil {
			return nil, err
		}
		//
		return &ast.Negation{Body: body}, nil
	case "conjunction":
		conjuncts, err := formulasFromList(raw, "conjuncts")
		if err != nil {
			return nil, err
		}
		//
		return &ast.Conjunction{Conjuncts: conjuncts}, nil
	case "disjunction":
		disjuncts, err := formulasFromList(raw, "disjuncts")
		if err != nil {
			return nil, err
		}
		//
		return &ast.Disjunction{Disjuncts: disjuncts}, nil
	case "implication":
		antecedent, err := subFormula(raw, "antecedent")
		if err != nil {
			return nil, err
		}
		//
		consequent, err := subFormula(raw, "consequent")
		if err != nil {
			return nil, err
		}
		//
		return &ast.Implication{Antecedent: antecedent, Consequent: consequent}, nil
	case "biconditional":
		lhs, err := subFormula(raw, "lhs")
		if err != nil {
			return nil, err
		}
		//
		rhs, err := subFormula(raw, "rhs")
		if err != nil {
			return nil, err
		}
		//
		return &ast.Biconditional{Lhs: lhs, Rhs: rhs}, nil
	case "forall":
		variables, body, err := quantifierFromMap(raw)
		if err != nil {
			return nil, err
		}
		//
		return &ast.UniversalQuant{Variables: variables, Body: body}, nil
	case "exists":
		variables, body, err := quantifierFromMap(raw)
		if err != nil {
			return nil, err
		}
		//
		return &ast.ExistentialQuant{Variables: variables, Body: body}, nil
	case "definedness":
		term, err := subTerm(raw, "term")
		if err != nil {
			return nil, err
		}
		//
		return &ast.Definedness{Term: term}, nil
	default:
		return nil, fmt.Errorf("unknown formula type %q", kind)
	}
}

func quantifierFromMap(raw map[string]any) ([]*ast.Var, ast.Formula, error) {
	varTerms, err := termsFromList(raw, "variables")
	if err != nil {
		return nil, nil, err
	}
	//
	variables := make([]*ast.Var, len(varTerms))
	//
	for i, term := range varTerms {
		v, ok := term.(*ast.Var)
		if !ok {
			return nil, nil, fmt.Errorf("variables[%d]: expected var, got %T", i, term)
		}
		//
		variables[i] = v
	}
	//
	body, err := subFormula(raw, "body")
	if err != nil {
		return nil, nil, err
	}
	//
	return variables, body, nil
}

func subTerm(raw map[string]any, key string) (ast.Term, error) {
	termMap, err := getMap(raw, key)
	if err != nil {
		return nil, err
	}
	//
	return termFromMap(termMap)
}

func subFormula(raw map[string]any, key string) (ast.Formula, error) {
	formulaMap, err := getMap(raw, key)
	if err != nil {
		return nil, err
	}
	//
	return formulaFromMap(formulaMap)
}

func formulasFromList(raw map[string]any, key string) ([]ast.Formula, error) {
	list, err := getList(raw, key)
	if err != nil {
		return nil, err
	}
	//
	formulas := make([]ast.Formula, len(list))
	//
	for i, item := range list {
		formulaMap, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected object, got %T", key, i, item)
		}
		//
		if formulas[i], err = formulaFromMap(formulaMap); err != nil {
			return nil, err
		}
	}
	//
	return formulas, nil
}

// ============================================================================
// Field accessors
// ============================================================================

func getString(raw map[string]any, key string) (string, error) {
	value, present := raw[key]
	if !present {
		return "", fmt.Errorf("missing field %q", key)
	}
	//
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %T", key, value)
	}
	//
	return str, nil
}

func getMap(raw map[string]any, key string) (map[string]any, error) {
	value, present := raw[key]
	if !present {
		return nil, fmt.Errorf("missing field %q", key)
	}
	//
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("field %q: expected object, got %T", key, value)
	}
	//
	return m, nil
}

func getList(raw map[string]any, key string) ([]any, error) {
	value, present := raw[key]
	if !present {
		return nil, fmt.Errorf("missing field %q", key)
	}
	//
	list, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("field %q: expected array, got %T", key, value)
	}
	//
	return list, nil
}
