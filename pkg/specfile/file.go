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
	"fmt"
	"os"
	"path/filepath"

	"github.com/formallabs/go-alspec/pkg/ast"
)

// ReadFile loads a spec from a file, selecting the codec by extension:
// .json, .yaml or .yml.
func ReadFile(path string) (*ast.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	//
	var spec *ast.Spec
	//
	switch ext := filepath.Ext(path); ext {
	case ".json":
		spec, err = Unmarshal(data)
	case ".yaml", ".yml":
		spec, err = UnmarshalYAML(data)
	default:
		return nil, fmt.Errorf("unknown spec file format %q", ext)
	}
	//
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	//
	return spec, nil
}

// WriteFile stores a spec to a file, selecting the codec by extension.
func WriteFile(path string, spec *ast.Spec) error {
	var (
		data []byte
		err  error
	)
	//
	switch ext := filepath.Ext(path); ext {
	case ".json":
		data, err = Marshal(spec)
	case ".yaml", ".yml":
		data, err = MarshalYAML(spec)
	default:
		return fmt.Errorf("unknown spec file format %q", ext)
	}
	//
	if err != nil {
		return err
	}
	//
	return os.WriteFile(path, data, 0644)
}
