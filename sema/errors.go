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
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/exp/slices"

	"github.com/onflow/ember/errors"
)

// DefinitionError is a failure while constructing a type.
// It is recoverable at the module loading layer:
// the offending module fails to load, other modules are unaffected.
type DefinitionError interface {
	errors.UserError
	isDefinitionError()
}

// AccessError is a failure while resolving a reference to a type or a member
type AccessError interface {
	errors.UserError
	isAccessError()
}

func typeQualifiedString(t Type) string {
	if t == nil {
		return UntypedName
	}
	return t.QualifiedString()
}

func typeListString(types []Type) string {
	var builder strings.Builder
	for i, t := range types {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(typeQualifiedString(t))
	}
	return builder.String()
}

// SealedTypeMutationError is reported when a builder is used after the type was sealed.
// It is a bug in the caller of the builder.

type SealedTypeMutationError struct {
	Type      NominalType
	Operation string
}

var _ errors.InternalError = &SealedTypeMutationError{}

func (e *SealedTypeMutationError) Error() string {
	return fmt.Sprintf(
		"cannot %s: type `%s` is already sealed",
		e.Operation,
		e.Type.QualifiedString(),
	)
}

func (*SealedTypeMutationError) IsInternalError() {}

// InvalidVisibilityError

type InvalidVisibilityError struct {
	Keyword string
}

var _ errors.UserError = &InvalidVisibilityError{}

func (e *InvalidVisibilityError) Error() string {
	return fmt.Sprintf("invalid visibility: `%s`", e.Keyword)
}

func (e *InvalidVisibilityError) SecondaryError() string {
	keywords := make([]string, len(AllVisibilities))
	for i, visibility := range AllVisibilities {
		keywords[i] = "`" + visibility.Keyword() + "`"
	}
	return "expected one of " + strings.Join(keywords, ", ")
}

func (*InvalidVisibilityError) IsUserError() {}

// MemberKindCollisionError is reported when a field and another member share a name

type MemberKindCollisionError struct {
	Type     NominalType
	Existing *Member
	Member   *Member
}

var _ DefinitionError = &MemberKindCollisionError{}

func (e *MemberKindCollisionError) Error() string {
	return fmt.Sprintf(
		"cannot declare %s `%s` in type `%s`: a %s with the same name is already declared",
		e.Member.Kind.Name(),
		e.Member.Identifier,
		e.Type.QualifiedString(),
		e.Existing.Kind.Name(),
	)
}

func (*MemberKindCollisionError) SecondaryError() string {
	return "fields cannot share their name with any other member"
}

func (*MemberKindCollisionError) isDefinitionError() {}

func (*MemberKindCollisionError) IsUserError() {}

// DuplicateMemberError is reported when two executables have the same member key

type DuplicateMemberError struct {
	Type   NominalType
	Member *Member
}

var _ DefinitionError = &DuplicateMemberError{}

func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf(
		"duplicate %s `%s` in type `%s`",
		e.Member.Kind.Name(),
		e.Member.SignatureString(),
		e.Type.QualifiedString(),
	)
}

func (*DuplicateMemberError) SecondaryError() string {
	return "overloads must differ in their parameter types"
}

func (*DuplicateMemberError) isDefinitionError() {}

func (*DuplicateMemberError) IsUserError() {}

// InconsistentOverloadVisibilityError

type InconsistentOverloadVisibilityError struct {
	Type     NominalType
	Existing *Member
	Member   *Member
}

var _ DefinitionError = &InconsistentOverloadVisibilityError{}

func (e *InconsistentOverloadVisibilityError) Error() string {
	return fmt.Sprintf(
		"overload `%s` in type `%s` is %s, but other overloads are %s",
		e.Member.SignatureString(),
		e.Type.QualifiedString(),
		e.Member.Visibility.Description(),
		e.Existing.Visibility.Description(),
	)
}

func (e *InconsistentOverloadVisibilityError) SecondaryError() string {
	return fmt.Sprintf(
		"consider declaring it %s",
		e.Existing.Visibility.Keyword(),
	)
}

func (*InconsistentOverloadVisibilityError) isDefinitionError() {}

func (*InconsistentOverloadVisibilityError) IsUserError() {}

// IncompatibleMemberKindError is reported when a member has the same name
// as a visible ancestor member of a different kind

type IncompatibleMemberKindError struct {
	Type     NominalType
	Member   *Member
	Ancestor *Member
}

var _ DefinitionError = &IncompatibleMemberKindError{}

func (e *IncompatibleMemberKindError) Error() string {
	return fmt.Sprintf(
		"%s `%s` in type `%s` conflicts with %s `%s`",
		e.Member.Kind.Name(),
		e.Member.Identifier,
		e.Type.QualifiedString(),
		e.Ancestor.Kind.Name(),
		e.Ancestor.QualifiedIdentifier(),
	)
}

func (*IncompatibleMemberKindError) isDefinitionError() {}

func (*IncompatibleMemberKindError) IsUserError() {}

// FieldShadowingError is reported when a field hides a visible field of an ancestor

type FieldShadowingError struct {
	Type     NominalType
	Member   *Member
	Ancestor *Member
}

var _ DefinitionError = &FieldShadowingError{}

func (e *FieldShadowingError) Error() string {
	return fmt.Sprintf(
		"field `%s` in type `%s` shadows field `%s`",
		e.Member.Identifier,
		e.Type.QualifiedString(),
		e.Ancestor.QualifiedIdentifier(),
	)
}

func (*FieldShadowingError) SecondaryError() string {
	return "consider renaming the field"
}

func (*FieldShadowingError) isDefinitionError() {}

func (*FieldShadowingError) IsUserError() {}

// ReducedVisibilityError is reported when a member is less visible
// than the ancestor member it overrides or hides

type ReducedVisibilityError struct {
	Type     NominalType
	Member   *Member
	Ancestor *Member
}

var _ DefinitionError = &ReducedVisibilityError{}

func (e *ReducedVisibilityError) Error() string {
	return fmt.Sprintf(
		"%s `%s` in type `%s` cannot reduce the visibility of `%s` from %s to %s",
		e.Member.Kind.Name(),
		e.Member.SignatureString(),
		e.Type.QualifiedString(),
		e.Ancestor.QualifiedIdentifier(),
		e.Ancestor.Visibility.Description(),
		e.Member.Visibility.Description(),
	)
}

func (e *ReducedVisibilityError) SecondaryError() string {
	return fmt.Sprintf(
		"consider declaring it %s",
		e.Ancestor.Visibility.Keyword(),
	)
}

func (*ReducedVisibilityError) isDefinitionError() {}

func (*ReducedVisibilityError) IsUserError() {}

// InvalidMemberKindError is reported when a type cannot declare a member of the given kind,
// e.g. an interface constructor

type InvalidMemberKindError struct {
	Type   NominalType
	Member *Member
	Static bool
}

var _ DefinitionError = &InvalidMemberKindError{}

func (e *InvalidMemberKindError) Error() string {
	staticness := "instance"
	if e.Static {
		staticness = "static"
	}
	return fmt.Sprintf(
		"type `%s` cannot declare %s `%s` as %s member",
		e.Type.QualifiedString(),
		e.Member.Kind.Name(),
		e.Member.Identifier,
		staticness,
	)
}

func (*InvalidMemberKindError) isDefinitionError() {}

func (*InvalidMemberKindError) IsUserError() {}

// InvalidInterfaceMemberVisibilityError

type InvalidInterfaceMemberVisibilityError struct {
	Type   *InterfaceType
	Member *Member
}

var _ DefinitionError = &InvalidInterfaceMemberVisibilityError{}

func (e *InvalidInterfaceMemberVisibilityError) Error() string {
	return fmt.Sprintf(
		"member `%s` of interface `%s` cannot be %s",
		e.Member.Identifier,
		e.Type.QualifiedString(),
		e.Member.Visibility.Description(),
	)
}

func (*InvalidInterfaceMemberVisibilityError) SecondaryError() string {
	return "interface members are implicitly public"
}

func (*InvalidInterfaceMemberVisibilityError) isDefinitionError() {}

func (*InvalidInterfaceMemberVisibilityError) IsUserError() {}

// CyclicInheritanceError

type CyclicInheritanceError struct {
	Type      NominalType
	Supertype NominalType
}

var _ DefinitionError = &CyclicInheritanceError{}

func (e *CyclicInheritanceError) Error() string {
	return fmt.Sprintf(
		"type `%s` cannot inherit from `%s`: `%s` would be its own ancestor",
		e.Type.QualifiedString(),
		e.Supertype.QualifiedString(),
		e.Type.QualifiedString(),
	)
}

func (*CyclicInheritanceError) isDefinitionError() {}

func (*CyclicInheritanceError) IsUserError() {}

// InvalidParentError

type InvalidParentError struct {
	Type   NominalType
	Parent NominalType
}

var _ DefinitionError = &InvalidParentError{}

func (e *InvalidParentError) Error() string {
	return fmt.Sprintf(
		"type `%s` cannot extend `%s`",
		e.Type.QualifiedString(),
		e.Parent.QualifiedString(),
	)
}

func (e *InvalidParentError) SecondaryError() string {
	switch parent := e.Parent.(type) {
	case *ClassType:
		if parent.IsFinal() {
			return "final classes cannot be extended"
		}
	case *InterfaceType:
		return "interfaces are implemented, not extended"
	}
	return ""
}

func (*InvalidParentError) isDefinitionError() {}

func (*InvalidParentError) IsUserError() {}

// MissingParentError

type MissingParentError struct {
	Type *ClassType
}

var _ DefinitionError = &MissingParentError{}

func (e *MissingParentError) Error() string {
	return fmt.Sprintf(
		"class `%s` has no parent",
		e.Type.QualifiedString(),
	)
}

func (*MissingParentError) SecondaryError() string {
	return "only the root class has no parent"
}

func (*MissingParentError) isDefinitionError() {}

func (*MissingParentError) IsUserError() {}

// UnsealedSupertypeError is reported when a type is sealed before one of its direct supertypes

type UnsealedSupertypeError struct {
	Type      NominalType
	Supertype NominalType
}

var _ DefinitionError = &UnsealedSupertypeError{}

func (e *UnsealedSupertypeError) Error() string {
	return fmt.Sprintf(
		"cannot seal `%s`: supertype `%s` is not sealed",
		e.Type.QualifiedString(),
		e.Supertype.QualifiedString(),
	)
}

func (*UnsealedSupertypeError) SecondaryError() string {
	return "seal supertypes before their subtypes"
}

func (*UnsealedSupertypeError) isDefinitionError() {}

func (*UnsealedSupertypeError) IsUserError() {}

// PreInitializationError is reported when the deferred build hook of a type fails

type PreInitializationError struct {
	Type NominalType
	Err  error
}

var _ DefinitionError = &PreInitializationError{}

func (e *PreInitializationError) Error() string {
	return fmt.Sprintf(
		"failed to initialize type `%s`: %s",
		e.Type.QualifiedString(),
		e.Err.Error(),
	)
}

func (e *PreInitializationError) Unwrap() error {
	return e.Err
}

func (e *PreInitializationError) SecondaryError() string {
	if _, ok := errors.GetExternalError(e.Err); ok {
		return "the implementation of the type panicked"
	}
	return ""
}

func (*PreInitializationError) isDefinitionError() {}

func (*PreInitializationError) IsUserError() {}

// IllegalTypeAccessError

type IllegalTypeAccessError struct {
	Type            NominalType
	ReferencingType NominalType
	ModuleName      string
}

var _ AccessError = &IllegalTypeAccessError{}

func (e *IllegalTypeAccessError) Error() string {
	from := "module `" + e.ModuleName + "`"
	if e.ReferencingType != nil {
		from = "type `" + e.ReferencingType.QualifiedString() + "`"
	}
	return fmt.Sprintf(
		"cannot access %s type `%s` from %s",
		e.Type.Visibility().Description(),
		e.Type.QualifiedString(),
		from,
	)
}

func (*IllegalTypeAccessError) isAccessError() {}

func (*IllegalTypeAccessError) IsUserError() {}

// IllegalMemberAccessError

type IllegalMemberAccessError struct {
	Type            Type
	Member          *Member
	ReferencingType NominalType
}

var _ AccessError = &IllegalMemberAccessError{}

func (e *IllegalMemberAccessError) Error() string {
	from := "top-level code"
	if e.ReferencingType != nil {
		from = "type `" + e.ReferencingType.QualifiedString() + "`"
	}
	return fmt.Sprintf(
		"cannot access %s member `%s` of type `%s` from %s",
		e.Member.Visibility.Description(),
		e.Member.Identifier,
		e.Type.QualifiedString(),
		from,
	)
}

func (e *IllegalMemberAccessError) SecondaryError() string {
	return fmt.Sprintf(
		"member is declared in `%s`",
		typeQualifiedString(e.Member.DefiningType),
	)
}

func (*IllegalMemberAccessError) isAccessError() {}

func (*IllegalMemberAccessError) IsUserError() {}

// UnknownMemberError

type UnknownMemberError struct {
	Type   Type
	Name   string
	Static bool
	// Names are the names of the members of the type, for suggestions
	Names []string
}

var _ AccessError = &UnknownMemberError{}

func (e *UnknownMemberError) Error() string {
	staticness := ""
	if e.Static {
		staticness = "static "
	}
	return fmt.Sprintf(
		"type `%s` has no %smember `%s`",
		e.Type.QualifiedString(),
		staticness,
		e.Name,
	)
}

func (e *UnknownMemberError) SecondaryError() string {
	if closest := e.findClosestMember(); closest != "" {
		return fmt.Sprintf("unknown member. did you mean `%s`?", closest)
	}
	return "unknown member"
}

// findClosestMember searches the names of the members of the accessed type,
// and finds the name with the smallest edit distance from the name that was accessed
func (e *UnknownMemberError) findClosestMember() (closestMember string) {
	nameRunes := []rune(e.Name)

	closestDistance := len(e.Name)

	sortedMemberNames := append([]string(nil), e.Names...)
	slices.Sort(sortedMemberNames)

	for _, memberName := range sortedMemberNames {
		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(memberName),
			levenshtein.DefaultOptions,
		)

		// Don't update the closest member if the distance is greater than one already found,
		// or if the edits required would involve a complete replacement of the member's text
		if distance < closestDistance && distance < len(memberName) {
			closestMember = memberName
			closestDistance = distance
		}
	}

	return
}

func (*UnknownMemberError) isAccessError() {}

func (*UnknownMemberError) IsUserError() {}

// ConstructorNotFoundError is reported when no constructor matches the arguments of a call.
// CallChain lists the constructor calls which led to the failing call, outermost first.

type ConstructorNotFoundError struct {
	Type      *ClassType
	Arguments []Type
	CallChain []string
}

var _ errors.UserError = &ConstructorNotFoundError{}

func (e *ConstructorNotFoundError) Error() string {
	return fmt.Sprintf(
		"no constructor of type `%s` accepts (%s)",
		e.Type.QualifiedString(),
		typeListString(e.Arguments),
	)
}

func (e *ConstructorNotFoundError) SecondaryError() string {
	if len(e.CallChain) == 0 {
		return ""
	}
	return "call chain: " + strings.Join(e.CallChain, " -> ")
}

func (*ConstructorNotFoundError) IsUserError() {}

// RecursiveConstructorCallError

type RecursiveConstructorCallError struct {
	Type      *ClassType
	CallChain []string
}

var _ errors.UserError = &RecursiveConstructorCallError{}

func (e *RecursiveConstructorCallError) Error() string {
	return fmt.Sprintf(
		"recursive constructor call in type `%s`",
		e.Type.QualifiedString(),
	)
}

func (e *RecursiveConstructorCallError) SecondaryError() string {
	return "call chain: " + strings.Join(e.CallChain, " -> ")
}

func (*RecursiveConstructorCallError) IsUserError() {}
