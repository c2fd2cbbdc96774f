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
	"github.com/SaveTheRbtz/mph"

	"github.com/onflow/ember/sema"
)

const (
	ObjectTypeName    = "Object"
	StringTypeName    = "String"
	ArrayTypeName     = "Array"
	EnumTypeName      = "Enum"
	AttributeTypeName = "Attribute"
	FunctionTypeName  = "Function"
	DynamicTypeName   = "Dynamic"
	TypeTypeName      = "Type"
)

// Object

const objectTypeDocString = `
The root of the class hierarchy. Every class derives from Object.
`

var ObjectBuiltinType BuiltinType = builtinClass{
	name:       ObjectTypeName,
	properties: sema.TypePropertyRoot,
	docString:  objectTypeDocString,
	implement: func(builder *sema.ClassTypeBuilder, farm *Farm) error {
		stringType := farm.MustLookup(StringTypeName)
		dynamicType := farm.MustLookup(DynamicTypeName)
		typeType := farm.MustLookup(TypeTypeName)

		return declare(builder).
			method("to_string", stringType, "Returns a textual representation of the object").
			method("equals", sema.BoolType, "Returns true if the object is equal to the other value",
				param("other", dynamicType),
			).
			method("hash_code", sema.IntType, "Returns the hash code of the object").
			method("get_type", typeType, "Returns the run-time type of the object").
			constructor(sema.VisibilityPublic).
			done()
	},
}

// String

var StringBuiltinType BuiltinType = builtinClass{
	name:           StringTypeName,
	properties:     sema.TypePropertyFinal,
	parentName:     ObjectTypeName,
	wantsArrayType: true,
	docString:      "An immutable sequence of characters",
	implement: func(builder *sema.ClassTypeBuilder, farm *Farm) error {
		stringType := builder.Stub()
		dynamicType := farm.MustLookup(DynamicTypeName)

		return declare(builder).
			method("length", sema.IntType, "").
			method("char_at", sema.CharType, "", param("index", sema.IntType)).
			method("concat", stringType, "", param("other", stringType)).
			method("split", farm.ArrayOf(stringType), "", param("separator", stringType)).
			method("to_chars", farm.ArrayOf(sema.CharType), "").
			staticMethod("value_of", stringType, "", param("value", dynamicType)).
			constructor(sema.VisibilityPublic).
			constructor(sema.VisibilityPublic, param("chars", farm.ArrayOf(sema.CharType))).
			done()
	},
}

// Array

var ArrayBuiltinType BuiltinType = builtinClass{
	name:       ArrayTypeName,
	properties: sema.TypePropertyAbstract,
	parentName: ObjectTypeName,
	docString:  "The base class of all array types",
	implement: func(builder *sema.ClassTypeBuilder, farm *Farm) error {
		dynamicType := farm.MustLookup(DynamicTypeName)

		return declare(builder).
			method("length", sema.IntType, "").
			method("get", dynamicType, "", param("index", sema.IntType)).
			method("set", sema.VoidType, "", param("index", sema.IntType), param("value", dynamicType)).
			done()
	},
}

// Enum

var EnumBuiltinType BuiltinType = builtinClass{
	name:       EnumTypeName,
	properties: sema.TypePropertyAbstract | sema.TypePropertyEnum,
	parentName: ObjectTypeName,
	docString:  "The base class of all enumerations",
	implement: func(builder *sema.ClassTypeBuilder, farm *Farm) error {
		stringType := farm.MustLookup(StringTypeName)

		return declare(builder).
			method("name", stringType, "").
			method("ordinal", sema.IntType, "").
			constructor(
				sema.VisibilityProtected,
				param("name", stringType),
				param("ordinal", sema.IntType),
			).
			done()
	},
}

// Attribute

var AttributeBuiltinType BuiltinType = builtinClass{
	name:       AttributeTypeName,
	properties: sema.TypePropertyAbstract | sema.TypePropertyAttribute,
	parentName: ObjectTypeName,
	docString:  "The base class of all annotation types",
	implement: func(builder *sema.ClassTypeBuilder, _ *Farm) error {
		return declare(builder).
			constructor(sema.VisibilityProtected).
			done()
	},
}

// Function

var FunctionBuiltinType BuiltinType = builtinClass{
	name:       FunctionTypeName,
	properties: sema.TypePropertyFinal,
	parentName: ObjectTypeName,
	docString:  "A reference to a method which can be invoked",
	implement: func(builder *sema.ClassTypeBuilder, farm *Farm) error {
		dynamicType := farm.MustLookup(DynamicTypeName)

		return declare(builder).
			method("arity", sema.IntType, "").
			method("invoke", dynamicType, "", param("arguments", farm.ArrayOf(dynamicType))).
			done()
	},
}

// Dynamic

var DynamicBuiltinType BuiltinType = builtinClass{
	name:           DynamicTypeName,
	properties:     sema.TypePropertyFinal | sema.TypePropertyDynamic,
	parentName:     ObjectTypeName,
	wantsArrayType: true,
	docString:      "The type of values whose type is only known at run-time",
}

// Type

var TypeBuiltinType BuiltinType = builtinClass{
	name:           TypeTypeName,
	properties:     sema.TypePropertyFinal,
	parentName:     ObjectTypeName,
	wantsArrayType: true,
	docString:      "The run-time representation of a type",
	implement: func(builder *sema.ClassTypeBuilder, farm *Farm) error {
		typeType := builder.Stub()
		stringType := farm.MustLookup(StringTypeName)
		dynamicType := farm.MustLookup(DynamicTypeName)

		return declare(builder).
			method("name", stringType, "").
			method("module_name", stringType, "").
			method("parent", typeType, "").
			method("ancestors", farm.ArrayOf(typeType), "").
			method("is_derived_from", sema.BoolType, "", param("other", typeType)).
			staticMethod("of", typeType, "", param("value", dynamicType)).
			done()
	},
}

// DefaultBuiltinTypes are the built-in types, parents first
var DefaultBuiltinTypes = []BuiltinType{
	ObjectBuiltinType,
	StringBuiltinType,
	ArrayBuiltinType,
	EnumBuiltinType,
	AttributeBuiltinType,
	FunctionBuiltinType,
	DynamicBuiltinType,
	TypeBuiltinType,
}

func builtinTypeNames() []string {
	names := make([]string, 0, len(DefaultBuiltinTypes)+len(sema.AllPrimitiveTypes)+1)
	for _, builtinType := range DefaultBuiltinTypes {
		names = append(names, builtinType.Name())
	}
	for _, primitiveType := range sema.AllPrimitiveTypes {
		names = append(names, primitiveType.String())
	}
	return append(names, sema.UntypedName)
}

var builtinTypeNamesTable = mph.Build(builtinTypeNames())

// IsBuiltinTypeName returns true if the given name is reserved
// for a built-in class or a primitive type
func IsBuiltinTypeName(name string) bool {
	_, ok := builtinTypeNamesTable.Lookup(name)
	return ok
}
