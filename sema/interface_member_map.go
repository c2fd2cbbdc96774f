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
	"github.com/onflow/ember/common/orderedmap"
)

// InterfaceMember is a member of an interface hierarchy,
// together with all interfaces that declare a member with the same key.
// The first contributor is the interface which declared the member.
type InterfaceMember struct {
	Member       *Member
	Contributors []*InterfaceType
}

type interfaceMemberOrderedMap = orderedmap.OrderedMap[MemberKey, *InterfaceMember]

// InterfaceMemberMap merges the instance members of an interface and all extended interfaces.
//
// Interfaces do not override each other's members: when two interfaces declare
// members with the same key, the first inserted member wins,
// and the later interface is only recorded as an additional contributor.
type InterfaceMemberMap struct {
	interfaceType *InterfaceType
	members       *interfaceMemberOrderedMap
	byName        map[string][]*InterfaceMember
}

func NewInterfaceMemberMap(interfaceType *InterfaceType) *InterfaceMemberMap {
	m := &InterfaceMemberMap{
		interfaceType: interfaceType,
		members:       orderedmap.New[interfaceMemberOrderedMap](0),
		byName:        map[string][]*InterfaceMember{},
	}
	m.merge(interfaceType, map[*InterfaceType]struct{}{})

	interfaceType.arena.config.logger().Debug().
		Str("type", interfaceType.QualifiedString()).
		Int("members", m.members.Len()).
		Msg("built interface member map")

	return m
}

func (m *InterfaceMemberMap) merge(interfaceType *InterfaceType, merged map[*InterfaceType]struct{}) {
	if _, ok := merged[interfaceType]; ok {
		return
	}
	merged[interfaceType] = struct{}{}

	interfaceType.instanceMembers.Foreach(func(name string, members []*Member) {
		for _, member := range members {
			if member.Visibility == VisibilityHidden {
				continue
			}

			key := member.Key()
			existing, ok := m.members.Get(key)
			if ok {
				existing.Contributors = append(existing.Contributors, interfaceType)
				continue
			}

			entry := &InterfaceMember{
				Member:       member,
				Contributors: []*InterfaceType{interfaceType},
			}
			m.members.Set(key, entry)
			m.byName[name] = append(m.byName[name], entry)
		}
	})

	for _, extended := range interfaceType.interfaces {
		m.merge(extended, merged)
	}
}

func (m *InterfaceMemberMap) InterfaceType() *InterfaceType {
	return m.interfaceType
}

// Members returns all merged members, in insertion order
func (m *InterfaceMemberMap) Members() []*Member {
	result := make([]*Member, 0, m.members.Len())
	m.members.Foreach(func(_ MemberKey, entry *InterfaceMember) {
		result = append(result, entry.Member)
	})
	return result
}

// MembersByName returns the merged members with the given name, in insertion order
func (m *InterfaceMemberMap) MembersByName(name string) []*Member {
	entries := m.byName[normalizeIdentifier(name)]
	if len(entries) == 0 {
		return nil
	}
	result := make([]*Member, len(entries))
	for i, entry := range entries {
		result[i] = entry.Member
	}
	return result
}

// Contributors returns the interfaces which declare a member with the given key,
// the declaring interface first
func (m *InterfaceMemberMap) Contributors(key MemberKey) []*InterfaceType {
	entry, ok := m.members.Get(key)
	if !ok {
		return nil
	}
	return entry.Contributors
}

func (m *InterfaceMemberMap) Len() int {
	return m.members.Len()
}
