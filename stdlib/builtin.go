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
	"github.com/onflow/ember/sema"
)

// BuiltinModuleName is the module of all built-in types
const BuiltinModuleName = ""

// BuiltinType is a type which is constructed by the bootstrap sequencer.
//
// All built-in types are stubbed before any of them is implemented,
// so ImplementSelf may reference any other built-in type through the farm.
type BuiltinType interface {
	Name() string
	Properties() sema.TypeProperties
	// ParentName is the name of the built-in parent class,
	// empty for the root class
	ParentName() string
	// WantsArrayType is true if an array type of the type
	// should be available in the farm before any type is implemented
	WantsArrayType() bool
	ImplementSelf(builder *sema.ClassTypeBuilder, farm *Farm) error
	BootstrapSelf(builder *sema.ClassTypeBuilder) error
}

// builtinClass is a BuiltinType which declares its members in a function
type builtinClass struct {
	name           string
	properties     sema.TypeProperties
	parentName     string
	wantsArrayType bool
	docString      string
	implement      func(builder *sema.ClassTypeBuilder, farm *Farm) error
}

var _ BuiltinType = builtinClass{}

func (t builtinClass) Name() string {
	return t.name
}

func (t builtinClass) Properties() sema.TypeProperties {
	return t.properties | sema.TypePropertyBuiltin
}

func (t builtinClass) ParentName() string {
	return t.parentName
}

func (t builtinClass) WantsArrayType() bool {
	return t.wantsArrayType
}

func (t builtinClass) ImplementSelf(builder *sema.ClassTypeBuilder, farm *Farm) error {
	builder.SetDocString(t.docString)
	if t.implement == nil {
		return nil
	}
	return t.implement(builder, farm)
}

func (t builtinClass) BootstrapSelf(builder *sema.ClassTypeBuilder) error {
	return builder.Seal()
}

// memberDeclarations collects member declarations of a built-in type,
// and stops at the first error
type memberDeclarations struct {
	builder *sema.ClassTypeBuilder
	err     error
}

func declare(builder *sema.ClassTypeBuilder) *memberDeclarations {
	return &memberDeclarations{
		builder: builder,
	}
}

func (d *memberDeclarations) add(member *sema.Member) *memberDeclarations {
	if d.err != nil {
		return d
	}
	if member.Static {
		d.err = d.builder.AddStaticMember(member)
	} else {
		d.err = d.builder.AddInstanceMember(member)
	}
	return d
}

func (d *memberDeclarations) method(
	identifier string,
	returnType sema.Type,
	docString string,
	parameters ...*sema.Parameter,
) *memberDeclarations {
	return d.add(sema.NewMethodMember(
		d.builder.Stub(),
		sema.VisibilityPublic,
		false,
		identifier,
		parameters,
		returnType,
		docString,
	))
}

func (d *memberDeclarations) staticMethod(
	identifier string,
	returnType sema.Type,
	docString string,
	parameters ...*sema.Parameter,
) *memberDeclarations {
	return d.add(sema.NewMethodMember(
		d.builder.Stub(),
		sema.VisibilityPublic,
		true,
		identifier,
		parameters,
		returnType,
		docString,
	))
}

func (d *memberDeclarations) constructor(
	visibility sema.Visibility,
	parameters ...*sema.Parameter,
) *memberDeclarations {
	return d.add(sema.NewConstructorMember(
		d.builder.Stub(),
		visibility,
		parameters,
		nil,
		"",
	))
}

func (d *memberDeclarations) done() error {
	return d.err
}

func param(identifier string, parameterType sema.Type) *sema.Parameter {
	return &sema.Parameter{
		Identifier: identifier,
		Type:       parameterType,
	}
}
