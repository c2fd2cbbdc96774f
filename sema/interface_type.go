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

// InterfaceType is an interface: a nominal type which extends any number of interfaces.
// Interfaces do not override members, they merge them (see InterfaceMemberMap).
// All interface members are implicitly public.
type InterfaceType struct {
	nominalType
	memberMap memoized[*InterfaceMemberMap]
}

var _ NominalType = &InterfaceType{}

func (t *InterfaceType) Equal(other Type) bool {
	otherInterface, ok := other.(*InterfaceType)
	return ok && otherInterface == t
}

func (*InterfaceType) IsDynamicType() bool {
	return false
}

// Extends returns the directly extended interfaces, in declaration order
func (t *InterfaceType) Extends() []*InterfaceType {
	return t.interfaces
}

func (t *InterfaceType) directSupertypes() []NominalType {
	result := make([]NominalType, 0, len(t.interfaces))
	for _, interfaceType := range t.interfaces {
		result = append(result, interfaceType)
	}
	return result
}

func (t *InterfaceType) IsDerivedFrom(other Type, inclusive bool) bool {
	return isNominalDerivedFrom(t, other, inclusive)
}

func (t *InterfaceType) CanDerive(other Type) bool {
	return canDerive(t, other)
}

func (t *InterfaceType) AncestorPriorities() []TypePriority {
	return t.ancestorPriorities.get(t.IsSealed(), func() []TypePriority {
		return traced(t.arena, TraceOperationAncestors, t, func() []TypePriority {
			return ComputeAncestorPriorities(t, false)
		})
	})
}

func (t *InterfaceType) Ancestors() []NominalType {
	return t.ancestors.get(t.IsSealed(), func() []NominalType {
		return priorityTypes(t.AncestorPriorities())
	})
}

func (t *InterfaceType) AllExtensionClasses() []*ClassType {
	return t.allExtensionClasses.get(t.IsSealed(), func() []*ClassType {
		return traced(t.arena, TraceOperationExtensions, t, func() []*ClassType {
			return ComputeAllExtensionClasses(t)
		})
	})
}

func (t *InterfaceType) MemberMap() *InterfaceMemberMap {
	return t.memberMap.get(t.IsSealed(), func() *InterfaceMemberMap {
		return traced(t.arena, TraceOperationInterfaceMemberMap, t, func() *InterfaceMemberMap {
			return NewInterfaceMemberMap(t)
		})
	})
}

// InstanceMembersByName returns the instance members of the given name,
// declared by the interface or merged from the extended interfaces
func (t *InterfaceType) InstanceMembersByName(name string) []*Member {
	return t.MemberMap().MembersByName(name)
}

func (t *InterfaceType) InstanceMemberByName(name string) *Member {
	members := t.InstanceMembersByName(name)
	if len(members) == 0 {
		return nil
	}
	return members[0]
}

// StaticMemberByName returns the first static member of the given name declared by the interface.
// Static members are not merged from extended interfaces.
func (t *InterfaceType) StaticMemberByName(name string) *Member {
	members := t.DeclaredMembersByName(name, true)
	if len(members) == 0 {
		return nil
	}
	return members[0]
}
