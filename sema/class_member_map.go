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
	"golang.org/x/exp/slices"

	"github.com/onflow/ember/common/orderedmap"
)

// ClassMemberLoaded is a member as seen from a class:
// Rank is the distance from the querying class to the class defining the member
// (0 = the class itself, 1 = its parent, ...).
type ClassMemberLoaded struct {
	Member *Member
	Rank   int
}

type loadedMemberOrderedMap = orderedmap.OrderedMap[MemberKey, ClassMemberLoaded]

// ClassMemberMap is the ranked view of the members of a class and all its superclasses,
// either the static or the instance members.
//
// Index 0 of the rank tables is the class itself, the last index is the root class.
type ClassMemberMap struct {
	classType *ClassType
	static    bool
	ranks     []*orderedmap.OrderedMap[string, []*Member]
	types     []*ClassType
}

func NewClassMemberMap(classType *ClassType, static bool) *ClassMemberMap {
	m := &ClassMemberMap{
		classType: classType,
		static:    static,
	}
	m.load(classType, map[*ClassType]struct{}{})

	// ranks were appended root first
	slices.Reverse(m.ranks)
	slices.Reverse(m.types)

	classType.arena.config.logger().Debug().
		Str("type", classType.QualifiedString()).
		Bool("static", static).
		Int("ranks", len(m.ranks)).
		Msg("built class member map")

	return m
}

func (m *ClassMemberMap) load(classType *ClassType, loading map[*ClassType]struct{}) {
	// a cyclic parent chain is rejected by the builder,
	// stop instead of recursing forever
	if _, ok := loading[classType]; ok {
		return
	}
	loading[classType] = struct{}{}

	if classType.parent != nil {
		m.load(classType.parent, loading)
	}

	m.ranks = append(m.ranks, classType.DeclaredMembers(m.static))
	m.types = append(m.types, classType)
}

func (m *ClassMemberMap) ClassType() *ClassType {
	return m.classType
}

func (m *ClassMemberMap) IsStatic() bool {
	return m.static
}

// Ranks returns the number of ranks, i.e. the length of the parent chain, including the class itself
func (m *ClassMemberMap) Ranks() int {
	return len(m.ranks)
}

// TypeAtRank returns the class contributing the members at the given rank
func (m *ClassMemberMap) TypeAtRank(rank int) *ClassType {
	if rank < 0 || rank >= len(m.types) {
		return nil
	}
	return m.types[rank]
}

// LoadedMembersByName returns the members of the given name visible from the class itself
func (m *ClassMemberMap) LoadedMembersByName(name string, includeNonVisible bool) []ClassMemberLoaded {
	return m.LoadedMembersByNameAtRank(0, name, includeNonVisible)
}

// LoadedMembersByNameAtRank returns the members of the given name
// visible from the class at the given rank, closest first.
//
// The ranks are merged from the root down to the given rank,
// and a member of a closer rank replaces (overrides or hides) a member with the same key.
// Members which are not visible to subclasses are excluded,
// unless includeNonVisible is true, or they are declared at the given rank itself.
// Hidden members are always excluded.
func (m *ClassMemberMap) LoadedMembersByNameAtRank(
	rank int,
	name string,
	includeNonVisible bool,
) []ClassMemberLoaded {
	if rank < 0 || rank >= len(m.ranks) {
		return nil
	}

	name = normalizeIdentifier(name)

	var loaded *loadedMemberOrderedMap

	for r := len(m.ranks) - 1; r >= rank; r-- {
		members, ok := m.ranks[r].Get(name)
		if !ok {
			continue
		}

		for _, member := range members {
			if member.Visibility == VisibilityHidden {
				continue
			}

			if r != rank &&
				!includeNonVisible &&
				!member.Visibility.SubclassVisible() {

				continue
			}

			if loaded == nil {
				loaded = orderedmap.New[loadedMemberOrderedMap](len(members))
			}

			key := member.Key()
			// remove first, so the replacing entry takes the closer position
			loaded.Delete(key)
			loaded.Set(key, ClassMemberLoaded{
				Member: member,
				Rank:   r - rank,
			})
		}
	}

	if loaded == nil {
		return nil
	}

	result := loaded.Values()
	slices.SortStableFunc(result, func(a, b ClassMemberLoaded) int {
		return a.Rank - b.Rank
	})
	return result
}

// LoadedMemberByName returns the first (closest) overload of the member of the given name
func (m *ClassMemberMap) LoadedMemberByName(name string, includeNonVisible bool) (ClassMemberLoaded, bool) {
	loaded := m.LoadedMembersByName(name, includeNonVisible)
	if len(loaded) == 0 {
		return ClassMemberLoaded{}, false
	}
	return loaded[0], true
}

// Names returns the names of all members in the map,
// names declared closer to the class first
func (m *ClassMemberMap) Names() []string {
	seen := map[string]struct{}{}
	var names []string

	for _, members := range m.ranks {
		members.Foreach(func(name string, members []*Member) {
			if _, ok := seen[name]; ok {
				return
			}
			if allHidden(members) {
				return
			}
			seen[name] = struct{}{}
			names = append(names, name)
		})
	}

	return names
}

func allHidden(members []*Member) bool {
	for _, member := range members {
		if member.Visibility != VisibilityHidden {
			return false
		}
	}
	return true
}

// ClassMembers flattens the map to one member per member key.
// Private and hidden members of superclasses are excluded,
// as are hidden members of the class itself.
func (m *ClassMemberMap) ClassMembers() []*Member {
	var result []*Member
	for _, name := range m.Names() {
		for _, loaded := range m.LoadedMembersByName(name, false) {
			result = append(result, loaded.Member)
		}
	}
	return result
}
