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
	"reflect"

	"github.com/onflow/ember/common"
	"github.com/onflow/ember/common/orderedmap"
)

// nominalType is the state shared by class types and interface types.
// It is only mutated through a builder, until the type is sealed.
type nominalType struct {
	_          common.Incomparable
	identifier string
	moduleName string
	visibility Visibility
	properties TypeProperties
	index      TypeIndex
	arena      *Arena
	state      BuildState

	staticMembers    *MemberOrderedMap
	instanceMembers  *MemberOrderedMap
	interfaces       []*InterfaceType
	extensionClasses []*ClassType
	annotations      []*Annotation
	scope            NamespaceScope
	hostType         reflect.Type
	implementation   any
	docString        string

	ancestorPriorities  memoized[[]TypePriority]
	ancestors           memoized[[]NominalType]
	allExtensionClasses memoized[[]*ClassType]
}

func newNominalType(
	arena *Arena,
	identifier string,
	moduleName string,
	visibility Visibility,
	properties TypeProperties,
) nominalType {
	return nominalType{
		identifier:      normalizeIdentifier(identifier),
		moduleName:      moduleName,
		visibility:      visibility,
		properties:      properties,
		index:           InvalidTypeIndex,
		arena:           arena,
		staticMembers:   orderedmap.New[MemberOrderedMap](0),
		instanceMembers: orderedmap.New[MemberOrderedMap](0),
	}
}

func (*nominalType) isType() {}

func (*nominalType) isNominalType() {}

func (t *nominalType) Identifier() string {
	return t.identifier
}

func (t *nominalType) ModuleName() string {
	return t.moduleName
}

func (t *nominalType) Visibility() Visibility {
	return t.visibility
}

func (t *nominalType) Properties() TypeProperties {
	return t.properties
}

func (t *nominalType) Index() TypeIndex {
	return t.index
}

func (t *nominalType) Arena() *Arena {
	return t.arena
}

func (t *nominalType) State() BuildState {
	return t.state
}

func (t *nominalType) IsSealed() bool {
	return t.state == BuildStateSealed
}

func (t *nominalType) Interfaces() []*InterfaceType {
	return t.interfaces
}

func (t *nominalType) ExtensionClasses() []*ClassType {
	return t.extensionClasses
}

func (t *nominalType) Annotations() []*Annotation {
	return t.annotations
}

func (t *nominalType) Scope() NamespaceScope {
	return t.scope
}

func (t *nominalType) HostType() reflect.Type {
	return t.hostType
}

// Implementation returns the object implementing the type, as set by the builder
func (t *nominalType) Implementation() any {
	return t.implementation
}

func (t *nominalType) DocString() string {
	return t.docString
}

func (t *nominalType) ID() TypeID {
	return TypeID(t.QualifiedString())
}

func (t *nominalType) String() string {
	return t.identifier
}

func (t *nominalType) QualifiedString() string {
	if t.moduleName == "" {
		return t.identifier
	}
	return t.moduleName + "." + t.identifier
}

func (*nominalType) IsReferenceType() bool {
	return true
}

func (t *nominalType) DeclaredMembers(static bool) *MemberOrderedMap {
	if static {
		return t.staticMembers
	}
	return t.instanceMembers
}

func (t *nominalType) DeclaredMembersByName(name string, static bool) []*Member {
	members, _ := t.DeclaredMembers(static).Get(normalizeIdentifier(name))
	return members
}

func (t *nominalType) hasAnnotation(annotationType *ClassType) bool {
	for _, annotation := range t.annotations {
		if annotation.Type == annotationType {
			return true
		}
	}
	return false
}

// isNominalDerivedFrom returns true if the other type is one of the ancestors of the given type,
// or the type itself, if inclusive is true.
func isNominalDerivedFrom(t NominalType, other Type, inclusive bool) bool {
	if other == nil {
		return false
	}

	if t.Equal(other) {
		return inclusive
	}

	otherNominal, ok := other.(NominalType)
	if !ok {
		return false
	}

	for _, ancestor := range t.Ancestors() {
		if ancestor == otherNominal {
			return true
		}
	}

	return false
}

// canDerive returns true if values of the other type may be used where the given type is expected
func canDerive(t NominalType, other Type) bool {
	if other == nil {
		return true
	}
	if t.IsDynamicType() || isRootType(t) {
		return other.IsReferenceType() || other.IsDynamicType()
	}
	return other.IsDerivedFrom(t, true)
}
