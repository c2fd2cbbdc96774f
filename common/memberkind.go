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

package common

import (
	"encoding/json"

	"github.com/onflow/ember/errors"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=MemberKind

type MemberKind uint8

const (
	MemberKindUnknown MemberKind = iota
	MemberKindField
	MemberKindMethod
	MemberKindConstructor
	MemberKindInitializer
	MemberKindStaticConstructor
)

func MemberKindCount() int {
	return len(_MemberKind_index) - 1
}

var AllMemberKinds = []MemberKind{
	MemberKindField,
	MemberKindMethod,
	MemberKindConstructor,
	MemberKindInitializer,
	MemberKindStaticConstructor,
}

// IsExecutable returns true for members which have a body and a parameter list.
func (k MemberKind) IsExecutable() bool {
	switch k {
	case MemberKindMethod,
		MemberKindConstructor,
		MemberKindInitializer,
		MemberKindStaticConstructor:
		return true
	}
	return false
}

// IsInheritable returns true for members which are visible through a subclass.
// Constructors and initializers belong to the declaring type only.
func (k MemberKind) IsInheritable() bool {
	switch k {
	case MemberKindField,
		MemberKindMethod:
		return true
	}
	return false
}

func (k MemberKind) Name() string {
	switch k {
	case MemberKindField:
		return "field"
	case MemberKindMethod:
		return "method"
	case MemberKindConstructor:
		return "constructor"
	case MemberKindInitializer:
		return "initializer"
	case MemberKindStaticConstructor:
		return "static constructor"
	}

	panic(errors.NewUnreachableError())
}

func (k MemberKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}
