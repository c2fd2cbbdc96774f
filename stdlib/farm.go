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

package stdlib

import (
	"github.com/onflow/ember/errors"
	"github.com/onflow/ember/sema"
)

// Farm is the lookup table of the built-in types.
//
// During bootstrap it holds the stubs of the types under construction,
// once bootstrap finished all types are sealed.
type Farm struct {
	arena    *sema.Arena
	types    map[string]*sema.ClassType
	order    []*sema.ClassType
	builders map[string]*sema.ClassTypeBuilder
}

var _ sema.NamespaceScope = &Farm{}

func newFarm(arena *sema.Arena) *Farm {
	return &Farm{
		arena:    arena,
		types:    map[string]*sema.ClassType{},
		builders: map[string]*sema.ClassTypeBuilder{},
	}
}

func (f *Farm) add(builder *sema.ClassTypeBuilder) {
	stub := builder.Stub()
	name := stub.Identifier()
	if _, ok := f.types[name]; ok {
		panic(errors.NewUnexpectedError("duplicate built-in type `%s`", name))
	}
	f.types[name] = stub
	f.order = append(f.order, stub)
	f.builders[name] = builder
}

// Arena returns the arena which owns the built-in types.
// Types which derive from built-in types must be allocated in it.
func (f *Farm) Arena() *sema.Arena {
	return f.arena
}

func (f *Farm) ModuleName() string {
	return BuiltinModuleName
}

// Lookup returns the built-in class with the given name
func (f *Farm) Lookup(name string) (*sema.ClassType, bool) {
	classType, ok := f.types[name]
	return classType, ok
}

// MustLookup is Lookup for names which are known to be built-in
func (f *Farm) MustLookup(name string) *sema.ClassType {
	classType, ok := f.types[name]
	if !ok {
		panic(errors.NewUnexpectedError("unknown built-in type `%s`", name))
	}
	return classType
}

func (f *Farm) LookupType(name string) (sema.NominalType, bool) {
	classType, ok := f.types[name]
	if !ok {
		return nil, false
	}
	return classType, true
}

// Root returns the root class
func (f *Farm) Root() *sema.ClassType {
	return f.MustLookup(ObjectTypeName)
}

// ArrayOf returns the array type with the given element type.
// Array types derive from the built-in Array class, if the farm has one.
func (f *Farm) ArrayOf(elementType sema.Type) *sema.ArrayType {
	base := f.types[ArrayTypeName]
	return f.arena.ArrayOf(elementType, base)
}

// Types returns the built-in classes in bootstrap order
func (f *Farm) Types() []*sema.ClassType {
	return f.order
}
