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

// Package specfile reads and writes specs as JSON or YAML documents.  Every
// node encodes as a map with a "type" discriminator; decoding the encoding
// of any spec yields a structurally equal spec.
package specfile

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/formallabs/go-alspec/pkg/ast"
)

// Marshal encodes a spec as indented JSON.
func Marshal(spec *ast.Spec) ([]byte, error) {
	return json.MarshalIndent(specToMap(spec), "", "  ")
}

// MarshalYAML encodes a spec as YAML.
func MarshalYAML(spec *ast.Spec) ([]byte, error) {
	return yaml.Marshal(specToMap(spec))
}

func specToMap(spec *ast.Spec) map[string]any {
	axioms := make([]any, len(spec.Axioms))
	for i, axiom := range spec.Axioms {
		axioms[i] = map[string]any{
			"label":   axiom.Label,
			"formula": formulaToMap(axiom.Formula),
		}
	}
	//
	return map[string]any{
		"type":      "spec",
		"name":      spec.Name,
		"signature": signatureToMap(spec.Signature),
		"axioms":    axioms,
	}
}

func signatureToMap(sig *ast.Signature) map[string]any {
	sorts := make(map[string]any, len(sig.Sorts))
	for name, s := range sig.Sorts {
		sorts[name] = sortToMap(s)
	}
	//
	functions := make(map[string]any, len(sig.Functions))
	for name, fn := range sig.Functions {
		functions[name] = fnSymbolToMap(fn)
	}
	//
	predicates := make(map[string]any, len(sig.Predicates))
	for name, pred := range sig.Predicates {
		predicates[name] = predSymbolToMap(pred)
	}
	//
	encoded := map[string]any{
		"type":       "signature",
		"sorts":      sorts,
		"functions":  functions,
		"predicates": predicates,
	}
	//
	if len(sig.Generated) > 0 {
		generated := make(map[string]any, len(sig.Generated))
		for name, info := range sig.Generated {
			generated[name] = generatedToMap(info)
		}
		//
		encoded["generated_sorts"] = generated
	}
	//
	return encoded
}

func generatedToMap(info *ast.GeneratedSortInfo) map[string]any {
	ctors := make([]any, len(info.Constructors))
	for i, ctor := range info.Constructors {
		ctors[i] = ctor
	}
	//
	encoded := map[string]any{"constructors": ctors}
	//
	if len(info.Selectors) > 0 {
		selectors := make(map[string]any, len(info.Selectors))
		//
		for ctor, sels := range info.Selectors {
			byName := make(map[string]any, len(sels))
			for sel, sort := range sels {
				byName[sel] = string(sort)
			}
			//
			selectors[ctor] = byName
		}
		//
		encoded["selectors"] = selectors
	}
	//
	return encoded
}

func sortToMap(s ast.Sort) map[string]any {
	switch s := s.(type) {
	case *ast.AtomicSort:
		return map[string]any{"type": "atomic", "name": s.Name()}
	case *ast.ProductSort:
		fields := make([]any, len(s.Fields))
		for i, f := range s.Fields {
			fields[i] = map[string]any{"name": f.FieldName, "sort": string(f.Sort)}
		}
		//
		return map[string]any{"type": "product", "name": s.Name(), "fields": fields}
	case *ast.CoproductSort:
		alts := make([]any, len(s.Alts))
		for i, a := range s.Alts {
			alts[i] = map[string]any{"tag": a.Tag, "sort": string(a.Sort)}
		}
		//
		return map[string]any{"type": "coproduct", "name": s.Name(), "alts": alts}
	default:
		panic(fmt.Sprintf("unknown sort %T", s))
	}
}

func paramsToList(params []ast.Param) []any {
	encoded := make([]any, len(params))
	for i, p := range params {
		encoded[i] = map[string]any{"name": p.Name, "sort": string(p.Sort)}
	}
	//
	return encoded
}

func fnSymbolToMap(fn *ast.FnSymbol) map[string]any {
	totality := "total"
	if fn.Totality == ast.PARTIAL {
		totality = "partial"
	}
	//
	return map[string]any{
		"type":     "fn_symbol",
		"name":     fn.Name,
		"params":   paramsToList(fn.Params),
		"result":   string(fn.Result),
		"totality": totality,
	}
}

func predSymbolToMap(pred *ast.PredSymbol) map[string]any {
	return map[string]any{
		"type":   "pred_symbol",
		"name":   pred.Name,
		"params": paramsToList(pred.Params),
	}
}

func termToMap(term ast.Term) map[string]any {
	switch t := term.(type) {
	case *ast.Var:
		return map[string]any{"type": "var", "name": t.Name, "sort": string(t.Sort)}
	case *ast.FnApp:
		args := make([]any, len(t.Args))
		for i, arg := range t.Args {
			args[i] = termToMap(arg)
		}
		//
		return map[string]any{"type": "fn_app", "fn_name": t.Fn, "args": args}
	case *ast.FieldAccess:
		return map[string]any{"type": "field_access", "term": termToMap(t.Base), "field_name": t.Field}
	case *ast.Literal:
		return map[string]any{"type": "literal", "value": t.Value, "sort": string(t.Sort)}
	default:
		panic(fmt.Sprintf("unknown term %T", term))
	}
}

func formulaToMap(formula ast.Formula) map[string]any {
	switch f := formula.(type) {
	case *ast.Equation:
		return map[string]any{"type": "equation", "lhs": termToMap(f.Lhs), "rhs": termToMap(f.Rhs)}
	case *ast.PredApp:
		args := make([]any, len(f.Args))
		for i, arg := range f.Args {
			args[i] = termToMap(arg)
		}
		//
		return map[string]any{"type": "pred_app", "pred_name": f.Pred, "args": args}
	case *ast.Negation:
		return map[string]any{"type": "negation", "formula": formulaToMap(f.Body)}
	case *ast.Conjunction:
		return map[string]any{"type": "conjunction", "conjuncts": formulasToList(f.Conjuncts)}
	case *ast.Disjunction:
		return map[string]any{"type": "disjunction", "disjuncts": formulasToList(f.Disjuncts)}
	case *ast.Implication:
		return map[string]any{
			"type":       "implication",
			"antecedent": formulaToMap(f.Antecedent),
			"consequent": formulaToMap(f.Consequent),
		}
	case *ast.Biconditional:
		return map[string]any{"type": "biconditional", "lhs": formulaToMap(f.Lhs), "rhs": formulaToMap(f.Rhs)}
	case *ast.UniversalQuant:
		return map[string]any{"type": "forall", "variables": varsToList(f.Variables), "body": formulaToMap(f.Body)}
	case *ast.ExistentialQuant:
		return map[string]any{"type": "exists", "variables": varsToList(f.Variables), "body": formulaToMap(f.Body)}
	case *ast.Definedness:
		return map[string]any{"type": "definedness", "term": termToMap(f.Term)}
	default:
		panic(fmt.Sprintf("unknown formula %T", formula))
	}
}

func formulasToList(formulas []ast.Formula) []any {
	encoded := make([]any, len(formulas))
	for i, f := range formulas {
		encoded[i] = formulaToMap(f)
	}
	//
	return encoded
}

func varsToList(vars []*ast.Var) []any {
	encoded := make([]any, len(vars))
	for i, v := range vars {
		encoded[i] = termToMap(v)
	}
	//
	return encoded
}
