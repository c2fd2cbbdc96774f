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
	"testing"

	"github.com/stretchr/testify/require"
)

const testModuleName = "test"

func newTestArena() *Arena {
	return NewArena(Config{})
}

func testParameters(types ...Type) []*Parameter {
	parameters := make([]*Parameter, len(types))
	for i, t := range types {
		parameters[i] = &Parameter{
			Identifier: fmt.Sprintf("p%d", i),
			Type:       t,
		}
	}
	return parameters
}

func testMethod(visibility Visibility, identifier string, parameterTypes ...Type) *Member {
	return NewMethodMember(
		nil,
		visibility,
		false,
		identifier,
		testParameters(parameterTypes...),
		nil,
		"",
	)
}

func testStaticMethod(visibility Visibility, identifier string, parameterTypes ...Type) *Member {
	return NewMethodMember(
		nil,
		visibility,
		true,
		identifier,
		testParameters(parameterTypes...),
		nil,
		"",
	)
}

func testField(visibility Visibility, identifier string, fieldType Type) *Member {
	return NewFieldMember(
		nil,
		visibility,
		false,
		false,
		identifier,
		fieldType,
		"",
	)
}

func testConstructor(visibility Visibility, forwardCall *ForwardCall, parameterTypes ...Type) *Member {
	return NewConstructorMember(
		nil,
		visibility,
		testParameters(parameterTypes...),
		forwardCall,
		"",
	)
}

// newTestRootClass builds a root class with the members every class inherits
func newTestRootClass(t *testing.T, arena *Arena) *ClassType {
	builder := arena.NewClassTypeBuilder(
		"Object",
		testModuleName,
		VisibilityPublic,
		TypePropertyRoot,
	)

	for _, member := range []*Member{
		testMethod(VisibilityPublic, "to_string"),
		testMethod(VisibilityPublic, "equals", nil),
		testMethod(VisibilityPublic, "hash_code"),
		testMethod(VisibilityPublic, "get_type"),
		testConstructor(VisibilityPublic, nil),
	} {
		require.NoError(t, builder.AddInstanceMember(member))
	}

	rootType, err := builder.Build(true)
	require.NoError(t, err)
	return rootType
}

type testClass struct {
	name       string
	module     string
	visibility Visibility
	properties TypeProperties
	parent     *ClassType
	interfaces []*InterfaceType
	members    []*Member
}

func buildTestClass(t *testing.T, arena *Arena, class testClass) *ClassType {
	if class.module == "" {
		class.module = testModuleName
	}
	if class.visibility == VisibilityHidden {
		class.visibility = VisibilityPublic
	}

	builder := arena.NewClassTypeBuilder(
		class.name,
		class.module,
		class.visibility,
		class.properties,
	)

	if class.parent != nil {
		require.NoError(t, builder.SetParent(class.parent))
	}

	for _, interfaceType := range class.interfaces {
		require.NoError(t, builder.AddInterface(interfaceType))
	}

	for _, member := range class.members {
		var err error
		if member.Static {
			err = builder.AddStaticMember(member)
		} else {
			err = builder.AddInstanceMember(member)
		}
		require.NoError(t, err)
	}

	classType, err := builder.Build(true)
	require.NoError(t, err)
	return classType
}

func buildTestInterface(
	t *testing.T,
	arena *Arena,
	name string,
	extends []*InterfaceType,
	members ...*Member,
) *InterfaceType {
	builder := arena.NewInterfaceTypeBuilder(
		name,
		testModuleName,
		VisibilityPublic,
		TypePropertiesNone,
	)

	for _, extended := range extends {
		require.NoError(t, builder.AddInterface(extended))
	}

	for _, member := range members {
		require.NoError(t, builder.AddInstanceMember(member))
	}

	interfaceType, err := builder.Build(true)
	require.NoError(t, err)
	return interfaceType
}

func typeIdentifiers[T NominalType](types []T) []string {
	result := make([]string, len(types))
	for i, t := range types {
		result[i] = t.Identifier()
	}
	return result
}

func memberSignatures(members []*Member) []string {
	result := make([]string, len(members))
	for i, member := range members {
		result[i] = member.SignatureString()
	}
	return result
}

func loadedSignatures(loaded []ClassMemberLoaded) []string {
	result := make([]string, len(loaded))
	for i, entry := range loaded {
		result[i] = fmt.Sprintf(
			"%s@%s:%d",
			entry.Member.SignatureString(),
			entry.Member.DefiningType.Identifier(),
			entry.Rank,
		)
	}
	return result
}

// requireSealedMutationPanic requires the given function to panic
// with a SealedTypeMutationError
func requireSealedMutationPanic(t *testing.T, f func()) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok)
		var mutationErr *SealedTypeMutationError
		require.ErrorAs(t, err, &mutationErr)
	}()

	f()
}
