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
	"github.com/onflow/ember/common"
)

// ClassType is a class: a nominal type with a single parent class,
// any number of interfaces, and its own constructors.
//
// A class type is created as a stub by a ClassTypeBuilder,
// and becomes immutable and fully queryable once sealed.
type ClassType struct {
	nominalType
	parent            *ClassType
	constructors      []*Member
	initializers      []*Member
	staticConstructor *Member

	instanceMemberMap    memoized[*ClassMemberMap]
	staticMemberMap      memoized[*ClassMemberMap]
	classInstanceMembers memoized[[]*Member]
	classStaticMembers   memoized[[]*Member]
	fields               memoized[[]*Member]
	methods              memoized[[]*Member]
	annotationArray      memoized[[]*Annotation]
}

var _ NominalType = &ClassType{}

func (t *ClassType) Equal(other Type) bool {
	otherClass, ok := other.(*ClassType)
	return ok && otherClass == t
}

func (t *ClassType) IsDynamicType() bool {
	return t.properties.Has(TypePropertyDynamic)
}

func (t *ClassType) IsRoot() bool {
	return t.properties.Has(TypePropertyRoot)
}

func (t *ClassType) IsAbstract() bool {
	return t.properties.Has(TypePropertyAbstract)
}

func (t *ClassType) IsFinal() bool {
	return t.properties.Has(TypePropertyFinal)
}

// Parent returns the parent class. It is nil only for the root class.
func (t *ClassType) Parent() *ClassType {
	return t.parent
}

func (t *ClassType) directSupertypes() []NominalType {
	result := make([]NominalType, 0, len(t.interfaces)+1)
	if t.parent != nil {
		result = append(result, t.parent)
	}
	for _, interfaceType := range t.interfaces {
		result = append(result, interfaceType)
	}
	return result
}

func (t *ClassType) Constructors() []*Member {
	return t.constructors
}

func (t *ClassType) Initializers() []*Member {
	return t.initializers
}

func (t *ClassType) StaticConstructor() *Member {
	return t.staticConstructor
}

func (t *ClassType) IsDerivedFrom(other Type, inclusive bool) bool {
	return isNominalDerivedFrom(t, other, inclusive)
}

// CanDerive returns true if values of the other type may be used where this class is expected
func (t *ClassType) CanDerive(other Type) bool {
	return canDerive(t, other)
}

func (t *ClassType) AncestorPriorities() []TypePriority {
	return t.ancestorPriorities.get(t.IsSealed(), func() []TypePriority {
		return traced(t.arena, TraceOperationAncestors, t, func() []TypePriority {
			return ComputeAncestorPriorities(t, false)
		})
	})
}

// Ancestors returns the deduplicated, ordered ancestors of the class, excluding the class itself
func (t *ClassType) Ancestors() []NominalType {
	return t.ancestors.get(t.IsSealed(), func() []NominalType {
		return priorityTypes(t.AncestorPriorities())
	})
}

func (t *ClassType) AllExtensionClasses() []*ClassType {
	return t.allExtensionClasses.get(t.IsSealed(), func() []*ClassType {
		return traced(t.arena, TraceOperationExtensions, t, func() []*ClassType {
			return ComputeAllExtensionClasses(t)
		})
	})
}

func (t *ClassType) InstanceMemberMap() *ClassMemberMap {
	return t.instanceMemberMap.get(t.IsSealed(), func() *ClassMemberMap {
		return traced(t.arena, TraceOperationClassMemberMap, t, func() *ClassMemberMap {
			return NewClassMemberMap(t, false)
		})
	})
}

func (t *ClassType) StaticMemberMap() *ClassMemberMap {
	return t.staticMemberMap.get(t.IsSealed(), func() *ClassMemberMap {
		return traced(t.arena, TraceOperationClassMemberMap, t, func() *ClassMemberMap {
			return NewClassMemberMap(t, true)
		})
	})
}

func (t *ClassType) MemberMap(static bool) *ClassMemberMap {
	if static {
		return t.StaticMemberMap()
	}
	return t.InstanceMemberMap()
}

// InstanceMembersByName returns the instance members of the given name visible from the class,
// closest first
func (t *ClassType) InstanceMembersByName(name string) []*Member {
	return loadedMembers(t.InstanceMemberMap().LoadedMembersByName(name, false))
}

// InstanceMemberByName returns the first overload of the instance member of the given name,
// or nil if there is none
func (t *ClassType) InstanceMemberByName(name string) *Member {
	loaded, ok := t.InstanceMemberMap().LoadedMemberByName(name, false)
	if !ok {
		return nil
	}
	return loaded.Member
}

func (t *ClassType) StaticMembersByName(name string) []*Member {
	return loadedMembers(t.StaticMemberMap().LoadedMembersByName(name, false))
}

func (t *ClassType) StaticMemberByName(name string) *Member {
	loaded, ok := t.StaticMemberMap().LoadedMemberByName(name, false)
	if !ok {
		return nil
	}
	return loaded.Member
}

// StaticMethodMembersByName returns the static method overloads of the given name
func (t *ClassType) StaticMethodMembersByName(name string) []*Member {
	var result []*Member
	for _, member := range t.StaticMembersByName(name) {
		if member.Kind == common.MemberKindMethod {
			result = append(result, member)
		}
	}
	return result
}

// ClassInstanceMembers returns all instance members visible from the class,
// one per member key, closest first
func (t *ClassType) ClassInstanceMembers() []*Member {
	return t.classInstanceMembers.get(t.IsSealed(), func() []*Member {
		return t.InstanceMemberMap().ClassMembers()
	})
}

// ClassStaticMembers returns all static members visible from the class,
// one per member key, closest first
func (t *ClassType) ClassStaticMembers() []*Member {
	return t.classStaticMembers.get(t.IsSealed(), func() []*Member {
		return t.StaticMemberMap().ClassMembers()
	})
}

// Fields returns the visible instance fields of the class
func (t *ClassType) Fields() []*Member {
	return t.fields.get(t.IsSealed(), func() []*Member {
		return filterMembers(t.ClassInstanceMembers(), common.MemberKindField)
	})
}

// Methods returns the visible instance methods of the class
func (t *ClassType) Methods() []*Member {
	return t.methods.get(t.IsSealed(), func() []*Member {
		return filterMembers(t.ClassInstanceMembers(), common.MemberKindMethod)
	})
}

// AnnotationArray returns the annotations of the class,
// followed by the inherited annotations of its superclasses.
// An annotation type occurs at most once, the closest annotation wins.
func (t *ClassType) AnnotationArray() []*Annotation {
	return t.annotationArray.get(t.IsSealed(), func() []*Annotation {
		result := append([]*Annotation(nil), t.annotations...)

		seen := map[*ClassType]struct{}{}
		for _, annotation := range t.annotations {
			seen[annotation.Type] = struct{}{}
		}

		for parent := t.parent; parent != nil; parent = parent.parent {
			for _, annotation := range parent.annotations {
				if !annotation.IsInherited() {
					continue
				}
				if _, ok := seen[annotation.Type]; ok {
					continue
				}
				seen[annotation.Type] = struct{}{}
				result = append(result, annotation)
			}
		}

		return result
	})
}

func loadedMembers(loaded []ClassMemberLoaded) []*Member {
	if len(loaded) == 0 {
		return nil
	}
	result := make([]*Member, len(loaded))
	for i, entry := range loaded {
		result[i] = entry.Member
	}
	return result
}

func filterMembers(members []*Member, kind common.MemberKind) []*Member {
	var result []*Member
	for _, member := range members {
		if member.Kind == kind {
			result = append(result, member)
		}
	}
	return result
}
