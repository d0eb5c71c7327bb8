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

// Axiom is a labeled formula asserted to hold.  Labels are unique within a
// spec; the checker reports duplicates.
type Axiom struct {
	Label   string
	Formula Formula
}

// Spec is a named specification SP = (Sigma, Phi): a signature together with
// an ordered list of axioms over it.  The models of SP are all
// Sigma-algebras satisfying every axiom in Phi.
type Spec struct {
	Name      string
	Signature *Signature
	Axioms    []Axiom
}
