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

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAncestors_Diamond(t *testing.T) {

	t.Parallel()

	arena := newTestArena()

	ib1 := buildTestInterface(t, arena, "IB1", nil)
	ib2 := buildTestInterface(t, arena, "IB2", []*InterfaceType{ib1})
	ic1 := buildTestInterface(t, arena, "IC1", nil)
	ibc1 := buildTestInterface(t, arena, "IBC1", []*InterfaceType{ib2, ic1})
	id1 := buildTestInterface(t, arena, "ID1", []*InterfaceType{ib1})
	iabcd1 := buildTestInterface(t, arena, "IABCD1", []*InterfaceType{ibc1, id1})

	ancestors := ComputeAncestors(iabcd1, false)
	assert.Equal(t,
		[]string{"IBC1", "ID1", "IB2", "IC1", "IB1"},
		typeIdentifiers(ancestors),
	)

	priorities := ComputeAncestorPriorities(iabcd1, true)
	require.Len(t, priorities, 6)

	ranks := map[string]int{}
	for _, priority := range priorities {
		ranks[priority.Type.Identifier()] = priority.Rank
	}
	assert.Equal(t,
		map[string]int{
			"IABCD1": 0,
			"IBC1":   1,
			"ID1":    1,
			"IB2":    2,
			"IC1":    2,
			// reachable through ID1 at rank 2, and through IBC1 and IB2 at rank 3
			"IB1": 2,
		},
		ranks,
	)

	// cached on the sealed type
	assert.Equal(t, typeIdentifiers(ancestors), typeIdentifiers(iabcd1.Ancestors()))
}

func TestComputeAncestors_ParentFirst(t *testing.T) {

	t.Parallel()

	arena := newTestArena()
	rootType := newTestRootClass(t, arena)

	i1 := buildTestInterface(t, arena, "I1", nil)
	i2 := buildTestInterface(t, arena, "I2", nil)

	parent := buildTestClass(t, arena, testClass{
		name:       "P",
		parent:     rootType,
		interfaces: []*InterfaceType{i2},
	})
	child := buildTestClass(t, arena, testClass{
		name:       "C",
		parent:     parent,
		interfaces: []*InterfaceType{i1},
	})

	assert.Equal(t,
		[]string{"P", "I1", "Object", "I2"},
		typeIdentifiers(child.Ancestors()),
	)
	assert.Equal(t,
		[]string{"C", "P", "I1", "Object", "I2"},
		typeIdentifiers(ComputeAncestors(child, true)),
	)

	assert.True(t, child.IsDerivedFrom(i2, false))
	assert.True(t, child.IsDerivedFrom(rootType, false))
	assert.False(t, child.IsDerivedFrom(child, false))
	assert.True(t, child.IsDerivedFrom(child, true))
	assert.False(t, parent.IsDerivedFrom(child, true))
	assert.False(t, parent.IsDerivedFrom(i1, false))
}

func TestComputeAllExtensionClasses(t *testing.T) {

	t.Parallel()

	arena := newTestArena()
	rootType := newTestRootClass(t, arena)

	newExtension := func(name string) *ClassType {
		return buildTestClass(t, arena, testClass{
			name:   name,
			parent: rootType,
		})
	}

	e1 := newExtension("E1")
	e2 := newExtension("E2")
	e3 := newExtension("E3")

	interfaceBuilder := arena.NewInterfaceTypeBuilder("I", testModuleName, VisibilityPublic, TypePropertiesNone)
	interfaceBuilder.AddExtensionClass(e3)
	interfaceBuilder.AddExtensionClass(e1)
	interfaceType, err := interfaceBuilder.Build(true)
	require.NoError(t, err)

	parentBuilder := arena.NewClassTypeBuilder("P", testModuleName, VisibilityPublic, TypePropertiesNone)
	require.NoError(t, parentBuilder.SetParent(rootType))
	parentBuilder.AddExtensionClass(e2)
	parentBuilder.AddExtensionClass(e1)
	parent, err := parentBuilder.Build(true)
	require.NoError(t, err)

	childBuilder := arena.NewClassTypeBuilder("C", testModuleName, VisibilityPublic, TypePropertiesNone)
	require.NoError(t, childBuilder.SetParent(parent))
	require.NoError(t, childBuilder.AddInterface(interfaceType))
	childBuilder.AddExtensionClass(e1)
	child, err := childBuilder.Build(true)
	require.NoError(t, err)

	// self first, then P before I (rank 1, parent first)
	assert.Equal(t,
		[]string{"E1", "E2", "E3"},
		typeIdentifiers(child.AllExtensionClasses()),
	)
	assert.Equal(t,
		[]string{"E3", "E1"},
		typeIdentifiers(interfaceType.AllExtensionClasses()),
	)
}

func TestComputeAncestors_Properties(t *testing.T) {

	t.Parallel()

	const typeCount = 8

	// each type extends the earlier types selected by the bits of its mask
	build := func(masks []uint8) []*InterfaceType {
		arena := newTestArena()
		types := make([]*InterfaceType, 0, len(masks))
		for i, mask := range masks {
			var extends []*InterfaceType
			for j := 0; j < i; j++ {
				if mask&(1<<j) != 0 {
					extends = append(extends, types[j])
				}
			}
			types = append(types, buildTestInterface(t, arena, fmt.Sprintf("T%d", i), extends))
		}
		return types
	}

	shortestDistances := func(start NominalType) map[NominalType]int {
		distances := map[NominalType]int{start: 0}
		queue := []NominalType{start}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			for _, supertype := range current.directSupertypes() {
				if _, ok := distances[supertype]; ok {
					continue
				}
				distances[supertype] = distances[current] + 1
				queue = append(queue, supertype)
			}
		}
		return distances
	}

	properties := gopter.NewProperties(nil)

	genMasks := gen.SliceOfN(typeCount, gen.UInt8())

	properties.Property("every ancestor occurs once, at its shortest distance", prop.ForAll(
		func(masks []uint8) bool {
			types := build(masks)
			last := types[len(types)-1]

			priorities := ComputeAncestorPriorities(last, false)
			distances := shortestDistances(last)

			if len(priorities) != len(distances)-1 {
				return false
			}

			seen := map[NominalType]struct{}{}
			for _, priority := range priorities {
				if _, ok := seen[priority.Type]; ok {
					return false
				}
				seen[priority.Type] = struct{}{}

				if distances[priority.Type] != priority.Rank {
					return false
				}
			}

			return true
		},
		genMasks,
	))

	properties.Property("ranks are ordered", prop.ForAll(
		func(masks []uint8) bool {
			types := build(masks)
			priorities := ComputeAncestorPriorities(types[len(types)-1], true)

			for i := 1; i < len(priorities); i++ {
				if priorities[i].Less(priorities[i-1]) {
					return false
				}
			}

			return true
		},
		genMasks,
	))

	properties.TestingRun(t)
}
