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
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/onflow/ember/common"
	"github.com/onflow/ember/common/orderedmap"
)

// Member is the immutable descriptor of a declared element of a type:
// a field, a method, a constructor, an initializer, or the static constructor.
//
// DeclaredType is the type of a field or the return type of a method.
// It is nil if the member is untyped (dynamic).
type Member struct {
	_            common.Incomparable
	Kind         common.MemberKind
	Identifier   string
	Visibility   Visibility
	Static       bool
	DeclaredType Type
	DefiningType NominalType
	Annotations  []*Annotation
	Parameters   []*Parameter
	Abstract     bool
	Const        bool
	ForwardCall  *ForwardCall
	DocString    string

	keyOnce sync.Once
	key     MemberKey
}

// MemberOrderedMap maps member names to their overloads, in declaration order
type MemberOrderedMap = orderedmap.OrderedMap[string, []*Member]

func NewFieldMember(
	definingType NominalType,
	visibility Visibility,
	static bool,
	isConst bool,
	identifier string,
	fieldType Type,
	docString string,
) *Member {
	return &Member{
		Kind:         common.MemberKindField,
		Identifier:   normalizeIdentifier(identifier),
		Visibility:   visibility,
		Static:       static,
		Const:        isConst,
		DeclaredType: fieldType,
		DefiningType: definingType,
		DocString:    docString,
	}
}

func NewMethodMember(
	definingType NominalType,
	visibility Visibility,
	static bool,
	identifier string,
	parameters []*Parameter,
	returnType Type,
	docString string,
) *Member {
	return &Member{
		Kind:         common.MemberKindMethod,
		Identifier:   normalizeIdentifier(identifier),
		Visibility:   visibility,
		Static:       static,
		Parameters:   parameters,
		DeclaredType: returnType,
		DefiningType: definingType,
		DocString:    docString,
	}
}

func NewAbstractMethodMember(
	definingType NominalType,
	visibility Visibility,
	identifier string,
	parameters []*Parameter,
	returnType Type,
	docString string,
) *Member {
	member := NewMethodMember(
		definingType,
		visibility,
		false,
		identifier,
		parameters,
		returnType,
		docString,
	)
	member.Abstract = true
	return member
}

const ConstructorIdentifier = "new"
const InitializerIdentifier = "init"
const StaticConstructorIdentifier = "static_init"

func NewConstructorMember(
	definingType NominalType,
	visibility Visibility,
	parameters []*Parameter,
	forwardCall *ForwardCall,
	docString string,
) *Member {
	return &Member{
		Kind:         common.MemberKindConstructor,
		Identifier:   ConstructorIdentifier,
		Visibility:   visibility,
		Parameters:   parameters,
		ForwardCall:  forwardCall,
		DefiningType: definingType,
		DocString:    docString,
	}
}

func NewInitializerMember(
	definingType NominalType,
	visibility Visibility,
	parameters []*Parameter,
	docString string,
) *Member {
	return &Member{
		Kind:         common.MemberKindInitializer,
		Identifier:   InitializerIdentifier,
		Visibility:   visibility,
		Parameters:   parameters,
		DefiningType: definingType,
		DocString:    docString,
	}
}

func NewStaticConstructorMember(definingType NominalType) *Member {
	return &Member{
		Kind:         common.MemberKindStaticConstructor,
		Identifier:   StaticConstructorIdentifier,
		Visibility:   VisibilityPrivate,
		Static:       true,
		DefiningType: definingType,
	}
}

// Key returns the structural identity of the member.
func (m *Member) Key() MemberKey {
	m.keyOnce.Do(func() {
		m.key = NewMemberKey(m)
	})
	return m.key
}

// ExplicitParameters returns the parameters without the implicit leading self parameter
func (m *Member) ExplicitParameters() []*Parameter {
	parameters := m.Parameters
	if len(parameters) > 0 && parameters[0].IsSelf {
		return parameters[1:]
	}
	return parameters
}

func (m *Member) IsUntyped() bool {
	return m.DeclaredType == nil
}

// QualifiedIdentifier returns the identifier prefixed by the defining type
func (m *Member) QualifiedIdentifier() string {
	if m.DefiningType == nil {
		return m.Identifier
	}
	return m.DefiningType.QualifiedString() + "." + m.Identifier
}

// SignatureString returns a human-readable description of the member,
// e.g. `fun(int, String)`
func (m *Member) SignatureString() string {
	if !m.Kind.IsExecutable() {
		return m.Identifier
	}

	var builder strings.Builder
	builder.WriteString(m.Identifier)
	builder.WriteByte('(')
	for i, parameter := range m.ExplicitParameters() {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(typeString(parameter.Type))
	}
	builder.WriteByte(')')
	return builder.String()
}

// Parameter is a parameter of an executable member.
// A nil type denotes an untyped (dynamic) parameter.
type Parameter struct {
	Identifier string
	Type       Type
	// IsSelf marks the implicit receiver parameter of an instance member
	IsSelf bool
}

func NewSelfParameter(selfType Type) *Parameter {
	return &Parameter{
		Identifier: "self",
		Type:       selfType,
		IsSelf:     true,
	}
}

// ForwardCallTarget

type ForwardCallTarget uint8

const (
	ForwardCallThis ForwardCallTarget = iota
	ForwardCallSuper
)

func (t ForwardCallTarget) Keyword() string {
	switch t {
	case ForwardCallThis:
		return "this"
	case ForwardCallSuper:
		return "super"
	}
	return "unknown"
}

// ForwardCall describes the `this(...)` or `super(...)` call
// at the start of a constructor body.
type ForwardCall struct {
	Target    ForwardCallTarget
	Arguments []Type
}

func (c *ForwardCall) String() string {
	var builder strings.Builder
	builder.WriteString(c.Target.Keyword())
	builder.WriteByte('(')
	for i, argument := range c.Arguments {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(typeString(argument))
	}
	builder.WriteByte(')')
	return builder.String()
}

// Annotation is an instance of an attribute class attached to a type or a member
type Annotation struct {
	Type      *ClassType
	Arguments []AnnotationArgument
}

type AnnotationArgument struct {
	Name  string
	Value string
}

// IsInherited returns true if the annotation is inherited by subclasses
func (a *Annotation) IsInherited() bool {
	return a.Type != nil &&
		a.Type.properties.Has(TypePropertyInheritedAnnotation)
}

func normalizeIdentifier(identifier string) string {
	if norm.NFC.IsNormalString(identifier) {
		return identifier
	}
	return norm.NFC.String(identifier)
}

// typeString returns the string of the given type,
// or `dynamic` if the type is absent (untyped)
func typeString(t Type) string {
	if t == nil {
		return UntypedName
	}
	return t.String()
}

const UntypedName = "dynamic"
