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
	"github.com/onflow/ember/errors"
)

// AccessContext describes the site which references a type or a member
type AccessContext struct {
	// ModuleName is the module of the reference site.
	// It is only used when there is no referencing type, e.g. for top-level code.
	ModuleName string
	// InMethodBody is true if the reference site is lexically inside
	// a method body of the referencing type
	InMethodBody bool
}

func referencingModuleName(referencingType NominalType, context AccessContext) string {
	if referencingType != nil {
		return referencingType.ModuleName()
	}
	return context.ModuleName
}

// CheckTypeVisibility returns an error if the declared type is not visible from the referencing type.
//
// A module type is only visible from types of the same module,
// a private type only from itself, and a hidden type from nowhere.
func CheckTypeVisibility(declaredType Type, referencingType NominalType) error {
	return checkTypeVisibility(declaredType, referencingType, AccessContext{})
}

// CheckTypeVisibilityFromModule is CheckTypeVisibility for reference sites outside of any type
func CheckTypeVisibilityFromModule(declaredType Type, moduleName string) error {
	return checkTypeVisibility(declaredType, nil, AccessContext{ModuleName: moduleName})
}

func IsTypeVisible(declaredType Type, referencingType NominalType) bool {
	return CheckTypeVisibility(declaredType, referencingType) == nil
}

func checkTypeVisibility(declaredType Type, referencingType NominalType, context AccessContext) error {
	switch declaredType := declaredType.(type) {
	case nil, *PrimitiveType:
		return nil

	case *ArrayType:
		return checkTypeVisibility(declaredType.ElementType, referencingType, context)

	case NominalType:
		var visible bool

		switch declaredType.Visibility() {
		case VisibilityPublic, VisibilityProtected:
			visible = true

		case VisibilityModule:
			visible = referencingModuleName(referencingType, context) == declaredType.ModuleName()

		case VisibilityPrivate:
			visible = referencingType != nil && referencingType.Equal(declaredType)

		case VisibilityHidden:
			visible = false

		default:
			panic(errors.NewUnreachableError())
		}

		if visible {
			return nil
		}

		return &IllegalTypeAccessError{
			Type:            declaredType,
			ReferencingType: referencingType,
			ModuleName:      referencingModuleName(referencingType, context),
		}
	}

	panic(errors.NewUnreachableError())
}

// CheckMemberAccess checks if the member with the given name of the declared type
// may be accessed from the referencing type, and returns the type defining the resolved member.
//
// Interfaces only check the existence of the member, all interface members are public.
// A hidden member is treated as if it did not exist.
func CheckMemberAccess(
	declaredType Type,
	memberName string,
	referencingType NominalType,
	context AccessContext,
	static bool,
) (NominalType, error) {

	name := normalizeIdentifier(memberName)

	switch declaredType := declaredType.(type) {
	case *ArrayType:
		if declaredType.base == nil {
			return nil, newUnknownMemberError(declaredType, name, static)
		}
		return CheckMemberAccess(declaredType.base, name, referencingType, context, static)

	case *InterfaceType:
		var member *Member
		if static {
			member = declaredType.StaticMemberByName(name)
		} else {
			member = declaredType.InstanceMemberByName(name)
		}
		if member == nil {
			return nil, newUnknownMemberError(declaredType, name, static)
		}
		return member.DefiningType, nil

	case *ClassType:
		return checkClassMemberAccess(declaredType, name, referencingType, context, static)

	default:
		return nil, newUnknownMemberError(declaredType, name, static)
	}
}

// CanAccessMember is CheckMemberAccess without the error
func CanAccessMember(
	declaredType Type,
	memberName string,
	referencingType NominalType,
	context AccessContext,
	static bool,
) bool {
	_, err := CheckMemberAccess(declaredType, memberName, referencingType, context, static)
	return err == nil
}

func checkClassMemberAccess(
	declaredType *ClassType,
	name string,
	referencingType NominalType,
	context AccessContext,
	static bool,
) (NominalType, error) {

	referencingClass, _ := referencingType.(*ClassType)

	// Private members are never inherited, only shadowed:
	// inside a method body of the referencing class,
	// its own private member of the name takes precedence.
	if context.InMethodBody &&
		referencingClass != nil &&
		declaredType.IsDerivedFrom(referencingClass, true) {

		own := referencingClass.DeclaredMembersByName(name, static)
		if len(own) > 0 && own[0].Visibility == VisibilityPrivate {
			return referencingClass, nil
		}
	}

	memberMap := declaredType.MemberMap(static)

	loaded, ok := memberMap.LoadedMemberByName(name, true)
	if !ok {
		return nil, newUnknownMemberError(declaredType, name, static)
	}

	member := loaded.Member
	definingType := member.DefiningType

	switch member.Visibility {
	case VisibilityPublic:
		return definingType, nil

	case VisibilityProtected:
		// NOTE: only the first overload of the name is checked
		if referencingType != nil &&
			referencingType.IsDerivedFrom(definingType, true) {

			return definingType, nil
		}

	case VisibilityModule:
		if referencingModuleName(referencingType, context) == definingType.ModuleName() {
			return definingType, nil
		}

	case VisibilityPrivate:
		if referencingType != nil && referencingType.Equal(definingType) {
			return definingType, nil
		}

		// The referencing class may be a superclass of the declared class
		// which declares its own member of the name
		if referencingClass != nil {
			for rank := 1; rank < memberMap.Ranks(); rank++ {
				if memberMap.TypeAtRank(rank) != referencingClass {
					continue
				}
				// the member may also be inherited by the referencing class
				loadedAtRank := memberMap.LoadedMembersByNameAtRank(rank, name, false)
				if len(loadedAtRank) > 0 {
					return loadedAtRank[0].Member.DefiningType, nil
				}
				break
			}
		}

	case VisibilityHidden:
		// hidden members are never loaded
		panic(errors.NewUnreachableError())
	}

	return nil, &IllegalMemberAccessError{
		Type:            declaredType,
		Member:          member,
		ReferencingType: referencingType,
	}
}

func newUnknownMemberError(t Type, name string, static bool) *UnknownMemberError {
	return &UnknownMemberError{
		Type:   t,
		Name:   name,
		Static: static,
		Names:  memberNames(t, static),
	}
}

// memberNames returns the names of the members of the given type, for suggestions
func memberNames(t Type, static bool) []string {
	switch t := t.(type) {
	case *ClassType:
		return t.MemberMap(static).Names()

	case *InterfaceType:
		if static {
			return t.DeclaredMembers(true).Keys()
		}
		var names []string
		seen := map[string]struct{}{}
		for _, member := range t.MemberMap().Members() {
			if _, ok := seen[member.Identifier]; ok {
				continue
			}
			seen[member.Identifier] = struct{}{}
			names = append(names, member.Identifier)
		}
		return names

	case *ArrayType:
		if t.base != nil {
			return memberNames(t.base, static)
		}
	}

	return nil
}
