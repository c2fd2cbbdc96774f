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
)

// InterfaceTypeBuilder builds an InterfaceType.
// Interfaces declare only fields and methods, and all of them are public.
type InterfaceTypeBuilder struct {
	typeBuilder
	interfaceType *InterfaceType
}

func (b *InterfaceTypeBuilder) Stub() *InterfaceType {
	return b.interfaceType
}

// AddInterface adds an extended interface
func (b *InterfaceTypeBuilder) AddInterface(interfaceType *InterfaceType) error {
	return b.addInterface(interfaceType)
}

func (b *InterfaceTypeBuilder) AddExtensionClass(extensionClass *ClassType) {
	b.addExtensionClass(extensionClass)
}

func (b *InterfaceTypeBuilder) AddAnnotation(annotation *Annotation) {
	b.addAnnotation(annotation)
}

func (b *InterfaceTypeBuilder) SetScope(scope NamespaceScope) {
	b.setScope(scope)
}

func (b *InterfaceTypeBuilder) SetHostType(hostType reflect.Type) {
	b.setHostType(hostType)
}

func (b *InterfaceTypeBuilder) SetImplementation(implementation any) {
	b.setImplementation(implementation)
}

func (b *InterfaceTypeBuilder) SetDocString(docString string) {
	b.setDocString(docString)
}

func (b *InterfaceTypeBuilder) MarkParsed() {
	b.markParsed()
}

func (b *InterfaceTypeBuilder) AddInstanceMember(member *Member) error {
	b.checkNotSealed("add instance member")
	identifier := b.checkAdoptable(member, false)
	return b.addMember(member, identifier, false)
}

func (b *InterfaceTypeBuilder) AddStaticMember(member *Member) error {
	b.checkNotSealed("add static member")
	identifier := b.checkAdoptable(member, true)
	return b.addMember(member, identifier, true)
}

func (b *InterfaceTypeBuilder) addMember(member *Member, identifier string, static bool) error {
	switch member.Kind {
	case common.MemberKindField, common.MemberKindMethod:
		break
	default:
		return &InvalidMemberKindError{
			Type:   b.interfaceType,
			Member: member,
			Static: static,
		}
	}

	if member.Visibility != VisibilityPublic {
		return &InvalidInterfaceMemberVisibilityError{
			Type:   b.interfaceType,
			Member: member,
		}
	}

	overloads := b.interfaceType.DeclaredMembersByName(identifier, static)
	if err := b.checkOverloads(overloads, member); err != nil {
		return err
	}

	b.insertMember(member, identifier)
	return nil
}

func (b *InterfaceTypeBuilder) Seal() error {
	return b.seal(nil)
}

func (b *InterfaceTypeBuilder) Build(sealNow bool) (*InterfaceType, error) {
	if sealNow {
		if err := b.Seal(); err != nil {
			return nil, err
		}
	}
	return b.interfaceType, nil
}
