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
	"github.com/onflow/ember/errors"
)

// ClassTypeBuilder builds a ClassType.
//
// The stub is available immediately, so declarations may reference the class
// before it is sealed. Every mutating method panics with a SealedTypeMutationError
// once the class is sealed.
type ClassTypeBuilder struct {
	typeBuilder
	classType *ClassType
	// trusted builders skip the cross-hierarchy sanity checks
	trusted bool
}

// Stub returns the class under construction
func (b *ClassTypeBuilder) Stub() *ClassType {
	return b.classType
}

// SetTrusted marks the builder as trusted, e.g. for built-in types,
// which skips the cross-hierarchy sanity checks
func (b *ClassTypeBuilder) SetTrusted(trusted bool) {
	b.checkNotSealed("set trusted")
	b.trusted = trusted
}

func (b *ClassTypeBuilder) sanityChecksEnabled() bool {
	return !b.trusted && !b.arena.config.SkipSanityChecks
}

// SetParent sets the parent class.
// If sanity checks are enabled, the members already declared
// are checked against the members of the new parent.
func (b *ClassTypeBuilder) SetParent(parent *ClassType) error {
	b.checkNotSealed("set parent")

	if parent == nil {
		panic(errors.NewUnexpectedError("missing parent of `%s`", b.classType.QualifiedString()))
	}

	b.arena.checkSameArena(parent)

	if reachesType(parent, b.classType) {
		return &CyclicInheritanceError{
			Type:      b.classType,
			Supertype: parent,
		}
	}

	if parent.IsFinal() {
		return &InvalidParentError{
			Type:   b.classType,
			Parent: parent,
		}
	}

	if err := CheckTypeVisibility(parent, b.classType); err != nil {
		return err
	}

	previous := b.classType.parent
	b.classType.parent = parent

	if b.sanityChecksEnabled() {
		for _, static := range []bool{false, true} {
			err := b.classType.DeclaredMembers(static).ForeachWithError(
				func(_ string, members []*Member) error {
					for _, member := range members {
						if err := b.checkAgainstAncestors(member, member.Identifier); err != nil {
							return err
						}
					}
					return nil
				},
			)
			if err != nil {
				b.classType.parent = previous
				return err
			}
		}
	}

	return nil
}

func (b *ClassTypeBuilder) AddInterface(interfaceType *InterfaceType) error {
	return b.addInterface(interfaceType)
}

func (b *ClassTypeBuilder) AddExtensionClass(extensionClass *ClassType) {
	b.addExtensionClass(extensionClass)
}

func (b *ClassTypeBuilder) AddAnnotation(annotation *Annotation) {
	b.addAnnotation(annotation)
}

func (b *ClassTypeBuilder) SetScope(scope NamespaceScope) {
	b.setScope(scope)
}

func (b *ClassTypeBuilder) SetHostType(hostType reflect.Type) {
	b.setHostType(hostType)
}

func (b *ClassTypeBuilder) SetImplementation(implementation any) {
	b.setImplementation(implementation)
}

func (b *ClassTypeBuilder) SetDocString(docString string) {
	b.setDocString(docString)
}

func (b *ClassTypeBuilder) MarkParsed() {
	b.markParsed()
}

// AddInstanceMember adds an instance field, instance method, constructor, or initializer
func (b *ClassTypeBuilder) AddInstanceMember(member *Member) error {
	b.checkNotSealed("add instance member")
	identifier := b.checkAdoptable(member, false)

	switch member.Kind {
	case common.MemberKindConstructor:
		return b.addExecutable(&b.classType.constructors, member, identifier)

	case common.MemberKindInitializer:
		return b.addExecutable(&b.classType.initializers, member, identifier)

	case common.MemberKindField, common.MemberKindMethod:
		return b.addMember(member, identifier)
	}

	return &InvalidMemberKindError{
		Type:   b.classType,
		Member: member,
	}
}

// AddStaticMember adds a static field, static method, or the static constructor
func (b *ClassTypeBuilder) AddStaticMember(member *Member) error {
	b.checkNotSealed("add static member")
	identifier := b.checkAdoptable(member, true)

	switch member.Kind {
	case common.MemberKindStaticConstructor:
		if b.classType.staticConstructor != nil {
			return &DuplicateMemberError{
				Type:   b.classType,
				Member: member,
			}
		}
		b.adopt(member, identifier)
		b.classType.staticConstructor = member
		return nil

	case common.MemberKindField, common.MemberKindMethod:
		return b.addMember(member, identifier)
	}

	return &InvalidMemberKindError{
		Type:   b.classType,
		Member: member,
		Static: true,
	}
}

func (b *ClassTypeBuilder) addMember(member *Member, identifier string) error {
	overloads := b.classType.DeclaredMembersByName(identifier, member.Static)
	if err := b.checkOverloads(overloads, member); err != nil {
		return err
	}

	if b.sanityChecksEnabled() {
		if err := b.checkAgainstAncestors(member, identifier); err != nil {
			return err
		}
	}

	b.insertMember(member, identifier)
	return nil
}

// checkAgainstAncestors rejects a member if a non-private ancestor member of the same name
// has a different kind, is a field which would be shadowed,
// or is more visible than the new member.
func (b *ClassTypeBuilder) checkAgainstAncestors(member *Member, identifier string) error {
	parent := b.classType.parent
	if parent == nil ||
		member.Visibility == VisibilityHidden ||
		!member.Kind.IsInheritable() {

		return nil
	}

	ancestorMembers := parent.MemberMap(member.Static).
		LoadedMembersByName(identifier, false)

	for _, loaded := range ancestorMembers {
		ancestor := loaded.Member

		if !ancestor.Visibility.SubclassVisible() ||
			!ancestor.Kind.IsInheritable() {

			continue
		}

		if ancestor.Kind != member.Kind {
			return &IncompatibleMemberKindError{
				Type:     b.classType,
				Member:   member,
				Ancestor: ancestor,
			}
		}

		if member.Kind == common.MemberKindField {
			return &FieldShadowingError{
				Type:     b.classType,
				Member:   member,
				Ancestor: ancestor,
			}
		}

		if member.Visibility.IsAbsolutelyLessVisibleThan(ancestor.Visibility) {
			return &ReducedVisibilityError{
				Type:     b.classType,
				Member:   member,
				Ancestor: ancestor,
			}
		}
	}

	return nil
}

// Seal makes the class immutable.
// Only the root class may be sealed without a parent.
func (b *ClassTypeBuilder) Seal() error {
	return b.seal(func() error {
		parent := b.classType.parent
		if parent == nil {
			if !b.classType.IsRoot() {
				return &MissingParentError{
					Type: b.classType,
				}
			}
			return nil
		}
		if !parent.IsSealed() {
			return &UnsealedSupertypeError{
				Type:      b.classType,
				Supertype: parent,
			}
		}
		return nil
	})
}

// Build returns the class, sealing it first if sealNow is true
func (b *ClassTypeBuilder) Build(sealNow bool) (*ClassType, error) {
	if sealNow {
		if err := b.Seal(); err != nil {
			return nil, err
		}
	}
	return b.classType, nil
}
