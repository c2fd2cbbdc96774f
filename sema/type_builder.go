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
	"time"

	"github.com/onflow/ember/common"
	"github.com/onflow/ember/errors"
)

// DeferredBuild is implemented by type implementations
// which finish their initialization when the type is sealed.
// PreInitialize runs exactly once, before the type becomes sealed.
type DeferredBuild interface {
	PreInitialize(t NominalType) error
}

// typeBuilder is the state and behaviour shared by class and interface builders.
//
// A builder exclusively owns its stub until the stub is sealed.
// Builders are not safe for concurrent use.
type typeBuilder struct {
	arena          *Arena
	nominal        *nominalType
	self           NominalType
	preInitialized bool
	// err is the failure of the deferred build hook, if any.
	// A builder whose hook failed cannot be sealed anymore.
	err error
}

func (b *typeBuilder) checkNotSealed(operation string) {
	if b.nominal.state == BuildStateSealed {
		panic(&SealedTypeMutationError{
			Type:      b.self,
			Operation: operation,
		})
	}
}

// checkAdoptable ensures the member was declared against this type, if at all,
// and returns its normalized identifier.
// The member itself is left untouched until it is accepted, see adopt.
func (b *typeBuilder) checkAdoptable(member *Member, static bool) string {
	if member == nil {
		panic(errors.NewUnexpectedError("missing member"))
	}

	if member.DefiningType != nil &&
		member.DefiningType != b.self {

		panic(errors.NewUnexpectedError(
			"member `%s` is declared by `%s`, not by `%s`",
			member.Identifier,
			member.DefiningType.QualifiedString(),
			b.self.QualifiedString(),
		))
	}

	if member.Kind.IsInheritable() &&
		member.Static != static {

		panic(errors.NewUnexpectedError(
			"member `%s` of `%s` has mismatching staticness",
			member.Identifier,
			b.self.QualifiedString(),
		))
	}

	return normalizeIdentifier(member.Identifier)
}

// adopt binds an accepted member to this type
func (b *typeBuilder) adopt(member *Member, identifier string) {
	member.DefiningType = b.self
	member.Identifier = identifier
}

// checkOverloads checks the collision rules for a new member
// against the overloads of the same name already declared by the type:
// a field collides with anything, two executables must not have the same key,
// and all overloads of a name must have the same visibility.
func (b *typeBuilder) checkOverloads(overloads []*Member, member *Member) error {
	for _, existing := range overloads {
		if existing.Kind == common.MemberKindField ||
			member.Kind == common.MemberKindField ||
			existing.Kind != member.Kind {

			return &MemberKindCollisionError{
				Type:     b.self,
				Existing: existing,
				Member:   member,
			}
		}

		if existing.Key() == member.Key() {
			return &DuplicateMemberError{
				Type:   b.self,
				Member: member,
			}
		}

		if existing.Visibility != member.Visibility {
			return &InconsistentOverloadVisibilityError{
				Type:     b.self,
				Existing: existing,
				Member:   member,
			}
		}
	}

	return nil
}

func (b *typeBuilder) insertMember(member *Member, identifier string) {
	b.adopt(member, identifier)
	table := b.nominal.DeclaredMembers(member.Static)
	overloads, _ := table.Get(identifier)
	table.Set(identifier, append(overloads, member))
}

// addExecutable adds a constructor or initializer to the given list.
// Constructors may have different visibilities, but not the same key.
func (b *typeBuilder) addExecutable(executables *[]*Member, member *Member, identifier string) error {
	for _, existing := range *executables {
		if existing.Key() == member.Key() {
			return &DuplicateMemberError{
				Type:   b.self,
				Member: member,
			}
		}
	}
	b.adopt(member, identifier)
	*executables = append(*executables, member)
	return nil
}

func (b *typeBuilder) addInterface(interfaceType *InterfaceType) error {
	b.checkNotSealed("add interface")

	if interfaceType == nil {
		panic(errors.NewUnexpectedError("missing interface"))
	}

	b.arena.checkSameArena(interfaceType)

	if reachesType(interfaceType, b.self) {
		return &CyclicInheritanceError{
			Type:      b.self,
			Supertype: interfaceType,
		}
	}

	if err := CheckTypeVisibility(interfaceType, b.self); err != nil {
		return err
	}

	for _, existing := range b.nominal.interfaces {
		if existing == interfaceType {
			return nil
		}
	}

	b.nominal.interfaces = append(b.nominal.interfaces, interfaceType)
	return nil
}

func (b *typeBuilder) addExtensionClass(extensionClass *ClassType) {
	b.checkNotSealed("add extension class")

	if extensionClass == nil {
		panic(errors.NewUnexpectedError("missing extension class"))
	}

	b.arena.checkSameArena(extensionClass)

	b.nominal.extensionClasses = append(b.nominal.extensionClasses, extensionClass)
}

func (b *typeBuilder) addAnnotation(annotation *Annotation) {
	b.checkNotSealed("add annotation")
	b.nominal.annotations = append(b.nominal.annotations, annotation)
}

func (b *typeBuilder) setScope(scope NamespaceScope) {
	b.checkNotSealed("set scope")
	b.nominal.scope = scope
}

func (b *typeBuilder) setHostType(hostType reflect.Type) {
	b.checkNotSealed("set host type")
	b.nominal.hostType = hostType
}

func (b *typeBuilder) setImplementation(implementation any) {
	b.checkNotSealed("set implementation")
	b.nominal.implementation = implementation
}

func (b *typeBuilder) setDocString(docString string) {
	b.checkNotSealed("set documentation")
	b.nominal.docString = docString
}

func (b *typeBuilder) markParsed() {
	b.checkNotSealed("mark parsed")
	b.nominal.state = BuildStateParsed
}

// preInitialize runs the deferred build hook.
// A panic of the hook is reported as an external error,
// unless it is an internal error, which is propagated.
func (b *typeBuilder) preInitialize(deferred DeferredBuild) (err error) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		if internalErr, ok := recovered.(errors.InternalError); ok {
			panic(internalErr)
		}
		err = errors.NewExternalError(recovered)
	}()

	return deferred.PreInitialize(b.self)
}

// seal validates the type, runs the deferred build hook of the implementation, if any,
// and freezes the type
func (b *typeBuilder) seal(validate func() error) error {
	b.checkNotSealed("seal")

	if b.err != nil {
		return b.err
	}

	if validate != nil {
		if err := validate(); err != nil {
			return err
		}
	}

	// Views of a sealed type are cached,
	// so every type they are derived from must be final already
	for _, interfaceType := range b.nominal.interfaces {
		if !interfaceType.IsSealed() {
			return &UnsealedSupertypeError{
				Type:      b.self,
				Supertype: interfaceType,
			}
		}
	}

	start := time.Now()

	if !b.preInitialized {
		b.preInitialized = true

		if deferred, ok := b.nominal.implementation.(DeferredBuild); ok {
			if err := b.preInitialize(deferred); err != nil {
				b.err = &PreInitializationError{
					Type: b.self,
					Err:  err,
				}
				return b.err
			}
		}
	}

	b.nominal.state = BuildStateSealed

	config := &b.arena.config
	config.logger().Debug().
		Str("type", b.self.QualifiedString()).
		Int("staticMembers", b.nominal.staticMembers.Len()).
		Int("instanceMembers", b.nominal.instanceMembers.Len()).
		Msg("sealed type")

	config.reportTrace(
		TraceOperationSeal,
		time.Since(start),
		traceTypeAttributes(b.self),
	)

	return nil
}
