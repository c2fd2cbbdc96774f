/*
 * Ember - The embeddable scripting language
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package loader

import (
	"strings"

	"github.com/onflow/ember/common/orderedmap"
	"github.com/onflow/ember/sema"
	"github.com/onflow/ember/stdlib"
)

type typeOrderedMap = orderedmap.OrderedMap[string, sema.NominalType]

// Module is a loaded declaration file.
// It is the namespace scope of its types.
type Module struct {
	name    string
	farm    *stdlib.Farm
	imports map[string]*Module
	types   *typeOrderedMap
}

var _ sema.NamespaceScope = &Module{}

func newModule(name string, farm *stdlib.Farm, imports []*Module) *Module {
	module := &Module{
		name:    name,
		farm:    farm,
		imports: make(map[string]*Module, len(imports)),
		types:   orderedmap.New[typeOrderedMap](0),
	}
	for _, imported := range imports {
		module.imports[imported.name] = imported
	}
	return module
}

func (m *Module) Name() string {
	return m.name
}

func (m *Module) ModuleName() string {
	return m.name
}

// Lookup returns the type declared in the module with the given name
func (m *Module) Lookup(name string) (sema.NominalType, bool) {
	return m.types.Get(name)
}

// LookupType resolves a type name as seen from inside the module:
// the types of the module, the built-in types,
// and the types of imported modules, qualified by their module name.
func (m *Module) LookupType(name string) (sema.NominalType, bool) {
	if t, ok := m.types.Get(name); ok {
		return t, true
	}

	if t, ok := m.farm.LookupType(name); ok {
		return t, true
	}

	moduleName, typeName, ok := strings.Cut(name, ".")
	if !ok {
		return nil, false
	}

	imported, ok := m.imports[moduleName]
	if !ok {
		return nil, false
	}

	return imported.Lookup(typeName)
}

// Types returns the types of the module in declaration order
func (m *Module) Types() []sema.NominalType {
	return m.types.Values()
}
