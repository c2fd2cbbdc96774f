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

	"github.com/onflow/ember/common"
)

// MemberKey is the structural identity of a member:
// its name and kind, and for executables, the parameter type signature.
//
// The signature excludes the implicit leading self parameter.
// Untyped parameters contribute `dynamic`.
type MemberKey struct {
	Identifier string
	Kind       common.MemberKind
	Signature  string
}

func NewMemberKey(member *Member) MemberKey {
	key := MemberKey{
		Identifier: normalizeIdentifier(member.Identifier),
		Kind:       member.Kind,
	}

	if member.Kind.IsExecutable() {
		key.Signature = parameterSignature(member.ExplicitParameters())
	}

	return key
}

func parameterSignature(parameters []*Parameter) string {
	var builder strings.Builder
	for i, parameter := range parameters {
		if i > 0 {
			builder.WriteByte(',')
		}
		if parameter.Type == nil {
			builder.WriteString(UntypedName)
		} else {
			builder.WriteString(string(parameter.Type.ID()))
		}
	}
	return builder.String()
}

func (k MemberKey) String() string {
	if !k.Kind.IsExecutable() {
		return k.Identifier
	}
	return k.Identifier + "(" + k.Signature + ")"
}
