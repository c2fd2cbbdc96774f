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
	"github.com/turbolent/prettier"
)

type PrimitiveKind uint8

const (
	PrimitiveKindBool PrimitiveKind = iota
	PrimitiveKindChar
	PrimitiveKindByte
	PrimitiveKindShort
	PrimitiveKindInt
	PrimitiveKindLong
	PrimitiveKindFloat
	PrimitiveKindDouble
	PrimitiveKindVoid
)

// PrimitiveType is a value type built into the engine.
// Primitive types have no members and are compared by identity.
type PrimitiveType struct {
	name string
	Kind PrimitiveKind
	// wideningRank orders the numeric types for safe (non-narrowing) conversions.
	// Zero means the type does not participate in numeric widening.
	wideningRank int
}

var _ Type = &PrimitiveType{}

var (
	BoolType   = &PrimitiveType{name: "bool", Kind: PrimitiveKindBool}
	CharType   = &PrimitiveType{name: "char", Kind: PrimitiveKindChar, wideningRank: 2}
	ByteType   = &PrimitiveType{name: "byte", Kind: PrimitiveKindByte, wideningRank: 1}
	ShortType  = &PrimitiveType{name: "short", Kind: PrimitiveKindShort, wideningRank: 2}
	IntType    = &PrimitiveType{name: "int", Kind: PrimitiveKindInt, wideningRank: 3}
	LongType   = &PrimitiveType{name: "long", Kind: PrimitiveKindLong, wideningRank: 4}
	FloatType  = &PrimitiveType{name: "float", Kind: PrimitiveKindFloat, wideningRank: 5}
	DoubleType = &PrimitiveType{name: "double", Kind: PrimitiveKindDouble, wideningRank: 6}
	VoidType   = &PrimitiveType{name: "void", Kind: PrimitiveKindVoid}
)

var AllPrimitiveTypes = []*PrimitiveType{
	BoolType,
	CharType,
	ByteType,
	ShortType,
	IntType,
	LongType,
	FloatType,
	DoubleType,
	VoidType,
}

// PrimitiveTypeByName returns the primitive type with the given name, if any
func PrimitiveTypeByName(name string) (*PrimitiveType, bool) {
	for _, primitiveType := range AllPrimitiveTypes {
		if primitiveType.name == name {
			return primitiveType, true
		}
	}
	return nil, false
}

func (*PrimitiveType) isType() {}

func (t *PrimitiveType) ID() TypeID {
	return TypeID(t.name)
}

func (t *PrimitiveType) String() string {
	return t.name
}

func (t *PrimitiveType) QualifiedString() string {
	return t.name
}

func (t *PrimitiveType) Equal(other Type) bool {
	return t == other
}

func (*PrimitiveType) IsReferenceType() bool {
	return false
}

func (*PrimitiveType) IsDynamicType() bool {
	return false
}

func (t *PrimitiveType) IsDerivedFrom(other Type, inclusive bool) bool {
	return inclusive && t.Equal(other)
}

func (t *PrimitiveType) Doc() prettier.Doc {
	return prettier.Text(t.name)
}

// widensTo returns true if a value of the receiver type
// converts to the given type without loss.
// A char widens to int and above, but not to short.
func (t *PrimitiveType) widensTo(other *PrimitiveType) bool {
	if t == other {
		return true
	}
	if t.wideningRank == 0 || other.wideningRank == 0 {
		return false
	}
	if other == CharType {
		return false
	}
	if t == CharType {
		return other.wideningRank > ShortType.wideningRank
	}
	return t.wideningRank < other.wideningRank
}
