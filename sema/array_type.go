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

// ArrayType is the type of arrays of a given element type.
// Arrays are reference types and expose the members of their base class.
type ArrayType struct {
	ElementType Type
	base        *ClassType
}

var _ Type = &ArrayType{}

func (*ArrayType) isType() {}

func (t *ArrayType) Base() *ClassType {
	return t.base
}

func (t *ArrayType) ID() TypeID {
	return t.ElementType.ID() + "[]"
}

func (t *ArrayType) String() string {
	return t.ElementType.String() + "[]"
}

func (t *ArrayType) QualifiedString() string {
	return t.ElementType.QualifiedString() + "[]"
}

func (t *ArrayType) Equal(other Type) bool {
	otherArray, ok := other.(*ArrayType)
	if !ok {
		return false
	}
	return t.ElementType.Equal(otherArray.ElementType)
}

func (*ArrayType) IsReferenceType() bool {
	return true
}

func (*ArrayType) IsDynamicType() bool {
	return false
}

// IsDerivedFrom returns true if the other type is an array type
// whose reference element type the element type derives from,
// or if the array base class derives from the other type.
func (t *ArrayType) IsDerivedFrom(other Type, inclusive bool) bool {
	if other == nil {
		return false
	}

	if t.Equal(other) {
		return inclusive
	}

	switch other := other.(type) {
	case *ArrayType:
		return t.ElementType.IsReferenceType() &&
			other.ElementType.IsReferenceType() &&
			t.ElementType.IsDerivedFrom(other.ElementType, true)

	case NominalType:
		if t.base == nil {
			return false
		}
		return t.base.IsDerivedFrom(other, true)
	}

	return false
}

func (t *ArrayType) Doc() prettier.Doc {
	return prettier.Concat{
		typeDoc(t.ElementType),
		prettier.Text("[]"),
	}
}
