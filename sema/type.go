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
	"math"
	"reflect"
	"strings"

	"github.com/turbolent/prettier"
)

type TypeID string

// TypeIndex is the stable handle of a nominal type in its Arena.
// It is allocated when the stub is created and never changes.
type TypeIndex uint32

const InvalidTypeIndex TypeIndex = math.MaxUint32

type Type interface {
	isType()
	ID() TypeID
	String() string
	QualifiedString() string
	Equal(other Type) bool
	// IsReferenceType returns true if values of the type are references,
	// i.e. if the type accepts the absent (null) value.
	IsReferenceType() bool
	// IsDynamicType returns true if the type accepts values of any type
	IsDynamicType() bool
	// IsDerivedFrom returns true if the receiver is a subtype of the given type.
	// If inclusive is true, a type is considered derived from itself.
	IsDerivedFrom(other Type, inclusive bool) bool
	Doc() prettier.Doc
}

// NominalType is a type declared by name: a class or an interface.
type NominalType interface {
	Type
	isNominalType()
	Identifier() string
	ModuleName() string
	Visibility() Visibility
	Properties() TypeProperties
	Index() TypeIndex
	Arena() *Arena
	State() BuildState
	IsSealed() bool
	Interfaces() []*InterfaceType
	ExtensionClasses() []*ClassType
	Annotations() []*Annotation
	Scope() NamespaceScope
	HostType() reflect.Type
	DocString() string

	// DeclaredMembersByName returns the overloads of the given name
	// declared by the type itself, in declaration order
	DeclaredMembersByName(name string, static bool) []*Member
	// DeclaredMembers returns the members declared by the type itself
	DeclaredMembers(static bool) *MemberOrderedMap

	Ancestors() []NominalType
	AncestorPriorities() []TypePriority
	AllExtensionClasses() []*ClassType
	CanDerive(other Type) bool

	// directSupertypes returns the parent (if any) followed by the interfaces, in declaration order
	directSupertypes() []NominalType
}

// NamespaceScope resolves type names for a type, as provided by the module system.
type NamespaceScope interface {
	ModuleName() string
	LookupType(name string) (NominalType, bool)
}

// TypeProperties

type TypeProperties uint16

const (
	TypePropertyAbstract TypeProperties = 1 << iota
	TypePropertyFinal
	// TypePropertyRoot marks the root class, which has no parent
	TypePropertyRoot
	// TypePropertyDynamic marks a class whose values may be of any type
	TypePropertyDynamic
	TypePropertyEnum
	TypePropertyAttribute
	TypePropertyBuiltin
	// TypePropertyInheritedAnnotation marks an attribute class
	// whose annotations are inherited by subclasses of the annotated class
	TypePropertyInheritedAnnotation
)

const TypePropertiesNone TypeProperties = 0

var typePropertyNames = []struct {
	property TypeProperties
	name     string
}{
	{TypePropertyAbstract, "abstract"},
	{TypePropertyFinal, "final"},
	{TypePropertyRoot, "root"},
	{TypePropertyDynamic, "dynamic"},
	{TypePropertyEnum, "enum"},
	{TypePropertyAttribute, "attribute"},
	{TypePropertyBuiltin, "builtin"},
	{TypePropertyInheritedAnnotation, "inherited"},
}

func (p TypeProperties) Has(property TypeProperties) bool {
	return p&property == property
}

func (p TypeProperties) String() string {
	var names []string
	for _, entry := range typePropertyNames {
		if p.Has(entry.property) {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, " ")
}

// BuildState

type BuildState uint8

const (
	BuildStateBuilding BuildState = iota
	BuildStateParsed
	BuildStateSealed
)

func (s BuildState) String() string {
	switch s {
	case BuildStateBuilding:
		return "building"
	case BuildStateParsed:
		return "parsed"
	case BuildStateSealed:
		return "sealed"
	}
	return "unknown"
}

// isRootType returns true if the given type is the root class
func isRootType(t Type) bool {
	classType, ok := t.(*ClassType)
	return ok && classType.properties.Has(TypePropertyRoot)
}
