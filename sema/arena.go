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

package sema

import (
	"sync"

	"github.com/onflow/ember/errors"
)

// Arena owns the nominal types of one type graph.
//
// Each type is allocated a stable index when its stub is created,
// so member declarations and other types may refer to a type before it is sealed.
// Sealing freezes the type in its slot.
type Arena struct {
	config     Config
	mutex      sync.RWMutex
	types      []NominalType
	arrayTypes map[TypeID]*ArrayType
}

func NewArena(config Config) *Arena {
	return &Arena{
		config:     config,
		arrayTypes: map[TypeID]*ArrayType{},
	}
}

func (a *Arena) Config() Config {
	return a.config
}

func (a *Arena) allocate(t NominalType) TypeIndex {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	index := TypeIndex(len(a.types))
	if index == InvalidTypeIndex {
		panic(errors.NewUnexpectedError("arena is full"))
	}
	a.types = append(a.types, t)
	return index
}

// Lookup returns the type with the given index, or nil if there is none
func (a *Arena) Lookup(index TypeIndex) NominalType {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	if int(index) >= len(a.types) {
		return nil
	}
	return a.types[index]
}

// Len returns the number of allocated types
func (a *Arena) Len() int {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return len(a.types)
}

// Types returns all allocated types, in allocation order
func (a *Arena) Types() []NominalType {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	result := make([]NominalType, len(a.types))
	copy(result, a.types)
	return result
}

// ArrayOf returns the array type of the given element type.
// Array types are interned per element type: the base class of the first request wins.
func (a *Arena) ArrayOf(elementType Type, base *ClassType) *ArrayType {
	id := elementType.ID()

	a.mutex.RLock()
	arrayType, ok := a.arrayTypes[id]
	a.mutex.RUnlock()
	if ok {
		return arrayType
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	arrayType, ok = a.arrayTypes[id]
	if !ok {
		arrayType = &ArrayType{
			ElementType: elementType,
			base:        base,
		}
		a.arrayTypes[id] = arrayType
	}
	return arrayType
}

func (a *Arena) NewClassTypeBuilder(
	identifier string,
	moduleName string,
	visibility Visibility,
	properties TypeProperties,
) *ClassTypeBuilder {
	classType := &ClassType{
		nominalType: newNominalType(a, identifier, moduleName, visibility, properties),
	}
	classType.index = a.allocate(classType)

	a.config.logger().Debug().
		Str("type", classType.QualifiedString()).
		Uint32("index", uint32(classType.index)).
		Msg("created class stub")

	return &ClassTypeBuilder{
		typeBuilder: typeBuilder{
			arena:   a,
			nominal: &classType.nominalType,
			self:    classType,
		},
		classType: classType,
	}
}

func (a *Arena) NewInterfaceTypeBuilder(
	identifier string,
	moduleName string,
	visibility Visibility,
	properties TypeProperties,
) *InterfaceTypeBuilder {
	interfaceType := &InterfaceType{
		nominalType: newNominalType(a, identifier, moduleName, visibility, properties),
	}
	interfaceType.index = a.allocate(interfaceType)

	a.config.logger().Debug().
		Str("type", interfaceType.QualifiedString()).
		Uint32("index", uint32(interfaceType.index)).
		Msg("created interface stub")

	return &InterfaceTypeBuilder{
		typeBuilder: typeBuilder{
			arena:   a,
			nominal: &interfaceType.nominalType,
			self:    interfaceType,
		},
		interfaceType: interfaceType,
	}
}

// checkSameArena panics if the given type belongs to another arena.
// Type indices are only unique within one arena.
func (a *Arena) checkSameArena(t NominalType) {
	if t.Arena() != a {
		panic(errors.NewUnexpectedError(
			"type `%s` belongs to a different arena",
			t.QualifiedString(),
		))
	}
}
