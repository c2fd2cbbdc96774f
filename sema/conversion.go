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

// IsSafeConversion returns true if a value of the first type
// converts to the second type without loss:
// identical types, numeric widening, any type to a dynamic type,
// and any reference type to the root class.
//
// An absent type is untyped (dynamic).
func IsSafeConversion(from Type, to Type) bool {
	if to == nil || to.IsDynamicType() {
		return true
	}

	if from == nil {
		return to.IsReferenceType()
	}

	if from.Equal(to) {
		return true
	}

	fromPrimitive, ok := from.(*PrimitiveType)
	if ok {
		toPrimitive, ok := to.(*PrimitiveType)
		return ok && fromPrimitive.widensTo(toPrimitive)
	}

	return from.IsReferenceType() && isRootType(to)
}
