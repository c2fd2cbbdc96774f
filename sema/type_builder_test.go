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
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/ember/common"
	"github.com/onflow/ember/errors"
)

func TestClassTypeBuilder_Stub(t *testing.T) {

	t.Parallel()

	arena := newTestArena()
	rootType := newTestRootClass(t, arena)

	builder := arena.NewClassTypeBuilder("Node", testModuleName, VisibilityPublic, TypePropertiesNone)
	stub := builder.Stub()

	assert.Equal(t, BuildStateBuilding, stub.State())
	assert.False(t, stub.IsSealed())
	assert.Same(t, stub, arena.Lookup(stub.Index()))
	assert.Equal(t, TypeID("test.Node"), stub.ID())

	// self reference
	require.NoError(t, builder.SetParent(rootType))
	require.NoError(t, builder.AddInstanceMember(testField(VisibilityPublic, "next", stub)))

	builder.MarkParsed()
	assert.Equal(t, BuildStateParsed, stub.State())

	node, err := builder.Build(true)
	require.NoError(t, err)
	assert.Same(t, stub, node)
	assert.True(t, node.IsSealed())
	assert.Same(t, node, node.InstanceMemberByName("next").DeclaredType)
	assert.Same(t, node, node.InstanceMemberByName("next").DefiningType)
}

func TestClassTypeBuilder_Collisions(t *testing.T) {

	t.Parallel()

	arena := newTestArena()
	rootType := newTestRootClass(t, arena)

	newBuilder := func() *ClassTypeBuilder {
		builder := arena.NewClassTypeBuilder("Subject", testModuleName, VisibilityPublic, TypePropertiesNone)
		require.NoError(t, builder.SetParent(rootType))
		return builder
	}

	t.Run("field collides with method", func(t *testing.T) {
		t.Parallel()

		builder := newBuilder()
		require.NoError(t, builder.AddInstanceMember(testMethod(VisibilityPublic, "size")))

		err := builder.AddInstanceMember(testField(VisibilityPublic, "size", IntType))
		var collisionErr *MemberKindCollisionError
		require.ErrorAs(t, err, &collisionErr)
		assert.True(t, errors.IsUserError(err))
	})

	t.Run("method collides with field", func(t *testing.T) {
		t.Parallel()

		builder := newBuilder()
		require.NoError(t, builder.AddInstanceMember(testField(VisibilityPublic, "size", IntType)))

		err := builder.AddInstanceMember(testMethod(VisibilityPublic, "size", IntType))
		require.ErrorAs(t, err, new(*MemberKindCollisionError))
	})

	t.Run("field collides with field", func(t *testing.T) {
		t.Parallel()

		builder := newBuilder()
		require.NoError(t, builder.AddInstanceMember(testField(VisibilityPublic, "size", IntType)))

		err := builder.AddInstanceMember(testField(VisibilityPublic, "size", LongType))
		require.ErrorAs(t, err, new(*MemberKindCollisionError))
	})

	t.Run("duplicate key", func(t *testing.T) {
		t.Parallel()

		builder := newBuilder()
		require.NoError(t, builder.AddInstanceMember(testMethod(VisibilityPublic, "add", IntType)))
		require.NoError(t, builder.AddInstanceMember(testMethod(VisibilityPublic, "add", LongType)))

		duplicate := NewMethodMember(nil, VisibilityPublic, false, "add", testParameters(IntType), BoolType, "")
		err := builder.AddInstanceMember(duplicate)

		var duplicateErr *DuplicateMemberError
		require.ErrorAs(t, err, &duplicateErr)
		assert.Equal(t,
			"duplicate method `add(int)` in type `test.Subject`",
			err.Error(),
		)
	})

	t.Run("normalized names collide", func(t *testing.T) {
		t.Parallel()

		builder := newBuilder()
		require.NoError(t, builder.AddInstanceMember(testMethod(VisibilityPublic, "caf\u00e9")))

		decomposed := &Member{
			Kind:       common.MemberKindMethod,
			Identifier: "cafe\u0301",
			Visibility: VisibilityPublic,
		}
		err := builder.AddInstanceMember(decomposed)
		require.ErrorAs(t, err, new(*DuplicateMemberError))
	})

	t.Run("inconsistent overload visibility", func(t *testing.T) {
		t.Parallel()

		builder := newBuilder()
		require.NoError(t, builder.AddInstanceMember(testMethod(VisibilityPublic, "add", IntType)))

		err := builder.AddInstanceMember(testMethod(VisibilityProtected, "add", LongType))
		var visibilityErr *InconsistentOverloadVisibilityError
		require.ErrorAs(t, err, &visibilityErr)
		assert.Equal(t, "consider declaring it public", visibilityErr.SecondaryError())
	})

	t.Run("static and instance members are separate", func(t *testing.T) {
		t.Parallel()

		builder := newBuilder()
		require.NoError(t, builder.AddInstanceMember(testMethod(VisibilityPublic, "of")))
		require.NoError(t, builder.AddStaticMember(testStaticMethod(VisibilityPublic, "of")))
	})

	t.Run("constructors", func(t *testing.T) {
		t.Parallel()

		builder := newBuilder()
		require.NoError(t, builder.AddInstanceMember(testConstructor(VisibilityPublic, nil)))
		require.NoError(t, builder.AddInstanceMember(testConstructor(VisibilityPrivate, nil, IntType)))

		err := builder.AddInstanceMember(testConstructor(VisibilityPublic, nil, IntType))
		require.ErrorAs(t, err, new(*DuplicateMemberError))

		require.Len(t, builder.Stub().Constructors(), 2)
	})

	t.Run("static constructor", func(t *testing.T) {
		t.Parallel()

		builder := newBuilder()
		require.NoError(t, builder.AddStaticMember(NewStaticConstructorMember(builder.Stub())))

		err := builder.AddStaticMember(NewStaticConstructorMember(builder.Stub()))
		require.ErrorAs(t, err, new(*DuplicateMemberError))

		err = builder.AddInstanceMember(NewStaticConstructorMember(builder.Stub()))
		require.ErrorAs(t, err, new(*InvalidMemberKindError))

		assert.NotNil(t, builder.Stub().StaticConstructor())
	})

	t.Run("static constructor kinds", func(t *testing.T) {
		t.Parallel()

		builder := newBuilder()
		err := builder.AddStaticMember(testConstructor(VisibilityPublic, nil))
		require.ErrorAs(t, err, new(*InvalidMemberKindError))
	})

	t.Run("member of another type", func(t *testing.T) {
		t.Parallel()

		builder := newBuilder()
		member := NewMethodMember(rootType, VisibilityPublic, false, "foreign", nil, nil, "")

		assert.Panics(t, func() {
			_ = builder.AddInstanceMember(member)
		})
	})
}

func TestClassTypeBuilder_SanityChecks(t *testing.T) {

	t.Parallel()

	arena := newTestArena()
	rootType := newTestRootClass(t, arena)

	parent := buildTestClass(t, arena, testClass{
		name:   "Parent",
		parent: rootType,
		members: []*Member{
			testField(VisibilityPublic, "name", nil),
			testField(VisibilityPrivate, "cache", nil),
			testMethod(VisibilityPublic, "run"),
			testMethod(VisibilityProtected, "step"),
			testMethod(VisibilityPrivate, "helper"),
		},
	})

	newBuilder := func(trusted bool) *ClassTypeBuilder {
		builder := arena.NewClassTypeBuilder("Child", testModuleName, VisibilityPublic, TypePropertiesNone)
		builder.SetTrusted(trusted)
		require.NoError(t, builder.SetParent(parent))
		return builder
	}

	t.Run("field shadowing", func(t *testing.T) {
		t.Parallel()

		err := newBuilder(false).AddInstanceMember(testField(VisibilityPublic, "name", nil))
		var shadowingErr *FieldShadowingError
		require.ErrorAs(t, err, &shadowingErr)
		assert.Equal(t, "test.Parent.name", shadowingErr.Ancestor.QualifiedIdentifier())
	})

	t.Run("incompatible kind", func(t *testing.T) {
		t.Parallel()

		err := newBuilder(false).AddInstanceMember(testMethod(VisibilityPublic, "name"))
		require.ErrorAs(t, err, new(*IncompatibleMemberKindError))

		err = newBuilder(false).AddInstanceMember(testField(VisibilityPublic, "run", nil))
		require.ErrorAs(t, err, new(*IncompatibleMemberKindError))
	})

	t.Run("reduced visibility", func(t *testing.T) {
		t.Parallel()

		err := newBuilder(false).AddInstanceMember(testMethod(VisibilityProtected, "run"))
		var reducedErr *ReducedVisibilityError
		require.ErrorAs(t, err, &reducedErr)
		assert.Equal(t, "consider declaring it public", reducedErr.SecondaryError())

		// also for overloads of a different signature
		err = newBuilder(false).AddInstanceMember(testMethod(VisibilityPrivate, "run", IntType))
		require.ErrorAs(t, err, new(*ReducedVisibilityError))

		// module and protected visibility are equally visible
		require.NoError(t, newBuilder(false).AddInstanceMember(testMethod(VisibilityModule, "step")))
	})

	t.Run("increased visibility", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, newBuilder(false).AddInstanceMember(testMethod(VisibilityPublic, "step")))
	})

	t.Run("private members are not checked", func(t *testing.T) {
		t.Parallel()

		builder := newBuilder(false)
		require.NoError(t, builder.AddInstanceMember(testField(VisibilityPublic, "cache", IntType)))
		require.NoError(t, builder.AddInstanceMember(testMethod(VisibilityPrivate, "helper")))
	})

	t.Run("trusted", func(t *testing.T) {
		t.Parallel()

		builder := newBuilder(true)
		require.NoError(t, builder.AddInstanceMember(testField(VisibilityPublic, "name", nil)))
		require.NoError(t, builder.AddInstanceMember(testMethod(VisibilityPrivate, "run")))
	})

	t.Run("skipped by config", func(t *testing.T) {
		t.Parallel()

		arena := NewArena(Config{SkipSanityChecks: true})
		rootType := newTestRootClass(t, arena)

		builder := arena.NewClassTypeBuilder("Child", testModuleName, VisibilityPublic, TypePropertiesNone)
		require.NoError(t, builder.SetParent(rootType))
		require.NoError(t, builder.AddInstanceMember(testField(VisibilityPublic, "to_string", nil)))
	})

	t.Run("checked when the parent is set", func(t *testing.T) {
		t.Parallel()

		builder := arena.NewClassTypeBuilder("Late", testModuleName, VisibilityPublic, TypePropertiesNone)
		require.NoError(t, builder.AddInstanceMember(testMethod(VisibilityPrivate, "run")))

		err := builder.SetParent(parent)
		require.ErrorAs(t, err, new(*ReducedVisibilityError))
		assert.Nil(t, builder.Stub().Parent())
	})
}

func TestClassTypeBuilder_Inheritance(t *testing.T) {

	t.Parallel()

	arena := newTestArena()
	rootType := newTestRootClass(t, arena)

	t.Run("missing parent", func(t *testing.T) {
		t.Parallel()

		builder := arena.NewClassTypeBuilder("Orphan", testModuleName, VisibilityPublic, TypePropertiesNone)
		err := builder.Seal()
		require.ErrorAs(t, err, new(*MissingParentError))
		assert.False(t, builder.Stub().IsSealed())
	})

	t.Run("self parent", func(t *testing.T) {
		t.Parallel()

		builder := arena.NewClassTypeBuilder("Self", testModuleName, VisibilityPublic, TypePropertiesNone)
		err := builder.SetParent(builder.Stub())
		require.ErrorAs(t, err, new(*CyclicInheritanceError))
	})

	t.Run("cyclic parents", func(t *testing.T) {
		t.Parallel()

		first := arena.NewClassTypeBuilder("First", testModuleName, VisibilityPublic, TypePropertiesNone)
		second := arena.NewClassTypeBuilder("Second", testModuleName, VisibilityPublic, TypePropertiesNone)

		require.NoError(t, first.SetParent(second.Stub()))
		err := second.SetParent(first.Stub())
		require.ErrorAs(t, err, new(*CyclicInheritanceError))
	})

	t.Run("cyclic interfaces", func(t *testing.T) {
		t.Parallel()

		first := arena.NewInterfaceTypeBuilder("IFirst", testModuleName, VisibilityPublic, TypePropertiesNone)
		second := arena.NewInterfaceTypeBuilder("ISecond", testModuleName, VisibilityPublic, TypePropertiesNone)

		require.NoError(t, first.AddInterface(second.Stub()))
		err := second.AddInterface(first.Stub())
		require.ErrorAs(t, err, new(*CyclicInheritanceError))

		err = first.AddInterface(first.Stub())
		require.ErrorAs(t, err, new(*CyclicInheritanceError))
	})

	t.Run("final parent", func(t *testing.T) {
		t.Parallel()

		final := buildTestClass(t, arena, testClass{
			name:       "Final",
			parent:     rootType,
			properties: TypePropertyFinal,
		})

		builder := arena.NewClassTypeBuilder("Sub", testModuleName, VisibilityPublic, TypePropertiesNone)
		err := builder.SetParent(final)
		var parentErr *InvalidParentError
		require.ErrorAs(t, err, &parentErr)
		assert.Equal(t, "final classes cannot be extended", parentErr.SecondaryError())
	})

	t.Run("module parent", func(t *testing.T) {
		t.Parallel()

		internal := buildTestClass(t, arena, testClass{
			name:       "Internal",
			module:     "other",
			visibility: VisibilityModule,
			parent:     rootType,
		})

		builder := arena.NewClassTypeBuilder("Sub", testModuleName, VisibilityPublic, TypePropertiesNone)
		err := builder.SetParent(internal)
		require.ErrorAs(t, err, new(*IllegalTypeAccessError))

		sameModule := arena.NewClassTypeBuilder("Sub", "other", VisibilityPublic, TypePropertiesNone)
		require.NoError(t, sameModule.SetParent(internal))
	})

	t.Run("other arena", func(t *testing.T) {
		t.Parallel()

		otherArena := newTestArena()
		otherRoot := newTestRootClass(t, otherArena)

		builder := arena.NewClassTypeBuilder("Sub", testModuleName, VisibilityPublic, TypePropertiesNone)
		assert.Panics(t, func() {
			_ = builder.SetParent(otherRoot)
		})
	})
}

func TestTypeBuilder_SealedMutation(t *testing.T) {

	t.Parallel()

	arena := newTestArena()
	rootType := newTestRootClass(t, arena)
	iface := buildTestInterface(t, arena, "I", nil)

	builder := arena.NewClassTypeBuilder("Sealed", testModuleName, VisibilityPublic, TypePropertiesNone)
	require.NoError(t, builder.SetParent(rootType))
	require.NoError(t, builder.Seal())

	for name, mutation := range map[string]func(){
		"set parent":          func() { _ = builder.SetParent(rootType) },
		"add interface":       func() { _ = builder.AddInterface(iface) },
		"add instance member": func() { _ = builder.AddInstanceMember(testMethod(VisibilityPublic, "late")) },
		"add static member":   func() { _ = builder.AddStaticMember(testStaticMethod(VisibilityPublic, "late")) },
		"add extension class": func() { builder.AddExtensionClass(rootType) },
		"add annotation":      func() { builder.AddAnnotation(&Annotation{}) },
		"set scope":           func() { builder.SetScope(nil) },
		"set host type":       func() { builder.SetHostType(reflect.TypeOf(0)) },
		"set implementation":  func() { builder.SetImplementation(nil) },
		"set trusted":         func() { builder.SetTrusted(true) },
		"mark parsed":         func() { builder.MarkParsed() },
		"seal":                func() { _ = builder.Seal() },
		"build":               func() { _, _ = builder.Build(true) },
	} {
		mutation := mutation
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			requireSealedMutationPanic(t, mutation)
		})
	}

	t.Run("build without sealing", func(t *testing.T) {
		t.Parallel()

		classType, err := builder.Build(false)
		require.NoError(t, err)
		assert.Same(t, builder.Stub(), classType)
	})

	t.Run("internal error", func(t *testing.T) {
		t.Parallel()

		err := &SealedTypeMutationError{Type: rootType, Operation: "seal"}
		assert.True(t, errors.IsInternalError(err))
		assert.Equal(t, "cannot seal: type `test.Object` is already sealed", err.Error())
	})
}

type testDeferredImplementation struct {
	calls      int
	err        error
	panicValue any
	seen       NominalType
}

var _ DeferredBuild = &testDeferredImplementation{}

func (i *testDeferredImplementation) PreInitialize(t NominalType) error {
	i.calls++
	i.seen = t
	if i.panicValue != nil {
		panic(i.panicValue)
	}
	return i.err
}

func TestTypeBuilder_DeferredBuild(t *testing.T) {

	t.Parallel()

	arena := newTestArena()
	rootType := newTestRootClass(t, arena)

	t.Run("runs once at sealing", func(t *testing.T) {
		t.Parallel()

		implementation := &testDeferredImplementation{}

		builder := arena.NewClassTypeBuilder("Deferred", testModuleName, VisibilityPublic, TypePropertiesNone)
		require.NoError(t, builder.SetParent(rootType))
		builder.SetImplementation(implementation)

		assert.Equal(t, 0, implementation.calls)

		require.NoError(t, builder.Seal())
		assert.Equal(t, 1, implementation.calls)
		assert.Same(t, builder.Stub(), implementation.seen)
		assert.Same(t, implementation, builder.Stub().Implementation())
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()

		implementation := &testDeferredImplementation{
			err: fmt.Errorf("native binding missing"),
		}

		builder := arena.NewInterfaceTypeBuilder("IDeferred", testModuleName, VisibilityPublic, TypePropertiesNone)
		builder.SetImplementation(implementation)

		err := builder.Seal()
		var initErr *PreInitializationError
		require.ErrorAs(t, err, &initErr)
		assert.ErrorIs(t, err, implementation.err)
		assert.False(t, builder.Stub().IsSealed())

		// the hook does not run again
		err = builder.Seal()
		require.ErrorAs(t, err, &initErr)
		assert.Equal(t, 1, implementation.calls)
	})

	t.Run("panic", func(t *testing.T) {
		t.Parallel()

		implementation := &testDeferredImplementation{
			panicValue: "binding crashed",
		}

		builder := arena.NewClassTypeBuilder("Crashing", testModuleName, VisibilityPublic, TypePropertiesNone)
		require.NoError(t, builder.SetParent(rootType))
		builder.SetImplementation(implementation)

		err := builder.Seal()
		var initErr *PreInitializationError
		require.ErrorAs(t, err, &initErr)

		externalErr, ok := errors.GetExternalError(err)
		require.True(t, ok)
		assert.Equal(t, "binding crashed", externalErr.Recovered)
		assert.Equal(t, "the implementation of the type panicked", initErr.SecondaryError())
		assert.True(t, errors.IsUserError(err))
		assert.False(t, builder.Stub().IsSealed())
	})

	t.Run("internal error panic", func(t *testing.T) {
		t.Parallel()

		internalErr := errors.NewUnexpectedError("broken binding table")
		implementation := &testDeferredImplementation{
			panicValue: internalErr,
		}

		builder := arena.NewInterfaceTypeBuilder("IBroken", testModuleName, VisibilityPublic, TypePropertiesNone)
		builder.SetImplementation(implementation)

		assert.PanicsWithValue(t, internalErr, func() {
			_ = builder.Seal()
		})
	})
}

func TestTypeBuilder_SealSupertypesFirst(t *testing.T) {

	t.Parallel()

	arena := newTestArena()
	rootType := newTestRootClass(t, arena)

	parentBuilder := arena.NewClassTypeBuilder("Parent", testModuleName, VisibilityPublic, TypePropertiesNone)
	require.NoError(t, parentBuilder.SetParent(rootType))
	parent := parentBuilder.Stub()

	interfaceBuilder := arena.NewInterfaceTypeBuilder("ILate", testModuleName, VisibilityPublic, TypePropertiesNone)
	interfaceType := interfaceBuilder.Stub()

	childBuilder := arena.NewClassTypeBuilder("Child", testModuleName, VisibilityPublic, TypePropertiesNone)
	require.NoError(t, childBuilder.SetParent(parent))

	// the parent is still building
	err := childBuilder.Seal()
	var unsealedErr *UnsealedSupertypeError
	require.ErrorAs(t, err, &unsealedErr)
	assert.Same(t, parent, unsealedErr.Supertype)
	assert.False(t, childBuilder.Stub().IsSealed())

	// the supertypes change after the failed attempt
	require.NoError(t, parentBuilder.AddInstanceMember(testMethod(VisibilityPublic, "late")))
	require.NoError(t, parentBuilder.AddInterface(interfaceType))

	// the parent's interface is still building
	err = parentBuilder.Seal()
	require.ErrorAs(t, err, &unsealedErr)
	assert.Same(t, interfaceType, unsealedErr.Supertype)

	extendingBuilder := arena.NewInterfaceTypeBuilder("IExtending", testModuleName, VisibilityPublic, TypePropertiesNone)
	require.NoError(t, extendingBuilder.AddInterface(interfaceType))
	err = extendingBuilder.Seal()
	require.ErrorAs(t, err, &unsealedErr)
	assert.Same(t, interfaceType, unsealedErr.Supertype)

	require.NoError(t, interfaceBuilder.Seal())
	require.NoError(t, parentBuilder.Seal())
	require.NoError(t, childBuilder.Seal())

	child := childBuilder.Stub()

	// all views of the sealed child agree with the final parent
	assert.Same(t, parent.InstanceMemberByName("late"), child.InstanceMemberByName("late"))
	assert.Contains(t, memberSignatures(child.ClassInstanceMembers()), "late()")
	assert.Equal(t,
		[]string{"Parent", "Object", "ILate"},
		typeIdentifiers(child.Ancestors()),
	)
	assert.True(t, child.IsDerivedFrom(interfaceType, false))
}

func TestClassTypeBuilder_RejectedMemberUnchanged(t *testing.T) {

	t.Parallel()

	arena := newTestArena()
	rootType := newTestRootClass(t, arena)

	parent := buildTestClass(t, arena, testClass{
		name:   "Parent",
		parent: rootType,
		members: []*Member{
			testMethod(VisibilityProtected, "step"),
		},
	})

	builder := arena.NewClassTypeBuilder("Child", testModuleName, VisibilityPublic, TypePropertiesNone)
	require.NoError(t, builder.SetParent(parent))
	require.NoError(t, builder.AddInstanceMember(testMethod(VisibilityPublic, "run")))

	other := arena.NewClassTypeBuilder("Other", testModuleName, VisibilityPublic, TypePropertiesNone)
	require.NoError(t, other.SetParent(rootType))

	duplicate := testMethod(VisibilityPublic, "run")
	err := builder.AddInstanceMember(duplicate)
	require.ErrorAs(t, err, new(*DuplicateMemberError))
	assert.Nil(t, duplicate.DefiningType)

	reduced := testMethod(VisibilityPrivate, "step")
	err = builder.AddInstanceMember(reduced)
	require.ErrorAs(t, err, new(*ReducedVisibilityError))
	assert.Nil(t, reduced.DefiningType)

	duplicateConstructor := testConstructor(VisibilityPublic, nil)
	require.NoError(t, builder.AddInstanceMember(testConstructor(VisibilityPublic, nil)))
	err = builder.AddInstanceMember(duplicateConstructor)
	require.ErrorAs(t, err, new(*DuplicateMemberError))
	assert.Nil(t, duplicateConstructor.DefiningType)

	// the rejected members can still be declared by another type
	for _, member := range []*Member{duplicate, reduced, duplicateConstructor} {
		require.NoError(t, other.AddInstanceMember(member))
		assert.Same(t, other.Stub(), member.DefiningType)
	}
}

func TestInterfaceTypeBuilder(t *testing.T) {

	t.Parallel()

	arena := newTestArena()

	t.Run("members must be public", func(t *testing.T) {
		t.Parallel()

		builder := arena.NewInterfaceTypeBuilder("I", testModuleName, VisibilityPublic, TypePropertiesNone)
		err := builder.AddInstanceMember(testMethod(VisibilityProtected, "run"))
		var visibilityErr *InvalidInterfaceMemberVisibilityError
		require.ErrorAs(t, err, &visibilityErr)
		assert.Equal(t, "interface members are implicitly public", visibilityErr.SecondaryError())
	})

	t.Run("no constructors", func(t *testing.T) {
		t.Parallel()

		builder := arena.NewInterfaceTypeBuilder("I", testModuleName, VisibilityPublic, TypePropertiesNone)
		err := builder.AddInstanceMember(testConstructor(VisibilityPublic, nil))
		require.ErrorAs(t, err, new(*InvalidMemberKindError))
	})

	t.Run("collisions", func(t *testing.T) {
		t.Parallel()

		builder := arena.NewInterfaceTypeBuilder("I", testModuleName, VisibilityPublic, TypePropertiesNone)
		require.NoError(t, builder.AddInstanceMember(testMethod(VisibilityPublic, "run")))

		err := builder.AddInstanceMember(testMethod(VisibilityPublic, "run"))
		require.ErrorAs(t, err, new(*DuplicateMemberError))

		err = builder.AddInstanceMember(testField(VisibilityPublic, "run", nil))
		require.ErrorAs(t, err, new(*MemberKindCollisionError))
	})

	t.Run("static members", func(t *testing.T) {
		t.Parallel()

		builder := arena.NewInterfaceTypeBuilder("I", testModuleName, VisibilityPublic, TypePropertiesNone)
		require.NoError(t, builder.AddStaticMember(testStaticMethod(VisibilityPublic, "create")))

		interfaceType, err := builder.Build(true)
		require.NoError(t, err)
		assert.NotNil(t, interfaceType.StaticMemberByName("create"))
		assert.Nil(t, interfaceType.InstanceMemberByName("create"))
	})
}

func TestSealedType_ConcurrentReads(t *testing.T) {

	t.Parallel()

	arena := newTestArena()
	rootType := newTestRootClass(t, arena)

	iface := buildTestInterface(t, arena, "IRun", nil,
		testMethod(VisibilityPublic, "run"),
	)

	classType := buildTestClass(t, arena, testClass{
		name:       "Runner",
		parent:     rootType,
		interfaces: []*InterfaceType{iface},
		members: []*Member{
			testMethod(VisibilityPublic, "run"),
		},
	})

	const readers = 16

	ancestors := make([][]NominalType, readers)
	memberMaps := make([]*ClassMemberMap, readers)
	interfaceMaps := make([]*InterfaceMemberMap, readers)

	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func(i int) {
			defer wg.Done()
			ancestors[i] = classType.Ancestors()
			memberMaps[i] = classType.InstanceMemberMap()
			interfaceMaps[i] = iface.MemberMap()
			_ = classType.ClassInstanceMembers()
			_ = classType.AllExtensionClasses()
		}(i)
	}
	wg.Wait()

	for i := 1; i < readers; i++ {
		assert.Same(t, &ancestors[0][0], &ancestors[i][0])
		assert.Same(t, memberMaps[0], memberMaps[i])
		assert.Same(t, interfaceMaps[0], interfaceMaps[i])
	}
}

func TestUnsealedType_NotCached(t *testing.T) {

	t.Parallel()

	arena := newTestArena()
	rootType := newTestRootClass(t, arena)

	builder := arena.NewClassTypeBuilder("Open", testModuleName, VisibilityPublic, TypePropertiesNone)
	require.NoError(t, builder.SetParent(rootType))

	stub := builder.Stub()
	before := stub.InstanceMemberMap()
	assert.NotSame(t, before, stub.InstanceMemberMap())

	require.NoError(t, builder.AddInstanceMember(testMethod(VisibilityPublic, "late")))
	assert.NotNil(t, stub.InstanceMemberByName("late"))
}
