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
	"github.com/onflow/ember/errors"
)

// FindConstructor returns the first candidate, in declaration order,
// whose parameters accept the given argument types, or nil if there is none.
//
// A nil argument type is the absent (null) value,
// which is accepted by reference and dynamic parameters.
// If matchSelf is false, a leading self parameter is ignored.
//
// Passing no candidates is a bug in the caller.
func FindConstructor(candidates []*Member, arguments []Type, matchSelf bool) *Member {
	if len(candidates) == 0 {
		panic(errors.NewUnexpectedError("no constructor candidates"))
	}

	for _, candidate := range candidates {
		parameters := candidate.Parameters
		if !matchSelf {
			parameters = candidate.ExplicitParameters()
		}

		if parametersAccept(parameters, arguments) {
			return candidate
		}
	}

	return nil
}

func parametersAccept(parameters []*Parameter, arguments []Type) bool {
	if len(parameters) != len(arguments) {
		return false
	}

	for i, parameter := range parameters {
		if !parameterAccepts(parameter.Type, arguments[i]) {
			return false
		}
	}

	return true
}

func parameterAccepts(parameterType Type, argumentType Type) bool {
	// untyped parameters accept anything
	if parameterType == nil {
		return true
	}

	if argumentType == nil {
		return parameterType.IsReferenceType() ||
			parameterType.IsDynamicType()
	}

	return parameterType.Equal(argumentType) ||
		argumentType.IsDerivedFrom(parameterType, false) ||
		IsSafeConversion(argumentType, parameterType)
}

// ResolveConstructor returns the constructor of the class which accepts the given argument types
func ResolveConstructor(classType *ClassType, arguments []Type, matchSelf bool) (*Member, error) {
	return resolveConstructor(classType, arguments, matchSelf, nil)
}

func resolveConstructor(
	classType *ClassType,
	arguments []Type,
	matchSelf bool,
	callChain []string,
) (*Member, error) {

	callChain = append(
		append([]string(nil), callChain...),
		constructorCallString(classType, arguments),
	)

	constructors := classType.Constructors()
	if len(constructors) > 0 {
		constructor := FindConstructor(constructors, arguments, matchSelf)
		if constructor != nil {
			return constructor, nil
		}
	}

	return nil, &ConstructorNotFoundError{
		Type:      classType,
		Arguments: arguments,
		CallChain: callChain,
	}
}

func constructorCallString(classType *ClassType, arguments []Type) string {
	return classType.QualifiedString() + "(" + typeListString(arguments) + ")"
}

// ResolveConstructorChain follows the forward calls (`this(...)` and `super(...)`)
// starting at the given constructor, and returns the constructors in call order,
// starting with the given constructor.
func ResolveConstructorChain(classType *ClassType, constructor *Member) ([]*Member, error) {
	if constructor.Kind != common.MemberKindConstructor {
		panic(errors.NewUnexpectedError(
			"`%s` is not a constructor",
			constructor.QualifiedIdentifier(),
		))
	}

	chain := []*Member{constructor}
	callChain := []string{
		classType.QualifiedString() + "(" + parameterTypesString(constructor) + ")",
	}
	visited := map[*Member]struct{}{
		constructor: {},
	}

	currentType := classType
	current := constructor

	for current.ForwardCall != nil {
		forwardCall := current.ForwardCall

		targetType := currentType
		if forwardCall.Target == ForwardCallSuper {
			targetType = currentType.parent
			if targetType == nil {
				return nil, &ConstructorNotFoundError{
					Type:      currentType,
					Arguments: forwardCall.Arguments,
					CallChain: append(append([]string(nil), callChain...), forwardCall.String()),
				}
			}
		}

		next, err := resolveConstructor(targetType, forwardCall.Arguments, false, callChain)
		if err != nil {
			return nil, err
		}

		callChain = append(callChain, constructorCallString(targetType, forwardCall.Arguments))

		if _, ok := visited[next]; ok {
			return nil, &RecursiveConstructorCallError{
				Type:      targetType,
				CallChain: callChain,
			}
		}
		visited[next] = struct{}{}

		chain = append(chain, next)
		currentType = targetType
		current = next
	}

	return chain, nil
}

func parameterTypesString(member *Member) string {
	parameters := member.ExplicitParameters()
	types := make([]Type, len(parameters))
	for i, parameter := range parameters {
		types[i] = parameter.Type
	}
	return typeListString(types)
}

// FindMethodWithStrictSignature returns the method of the given name
// whose parameter types are exactly the given types, or nil if there is none.
// No derivation or conversion is considered, an untyped parameter only matches a nil type.
func FindMethodWithStrictSignature(
	t Type,
	methodName string,
	parameterTypes []Type,
	static bool,
) *Member {

	var candidates []*Member

	switch t := t.(type) {
	case *ClassType:
		if static {
			candidates = t.StaticMethodMembersByName(methodName)
		} else {
			candidates = t.InstanceMembersByName(methodName)
		}

	case *InterfaceType:
		if static {
			candidates = t.DeclaredMembersByName(methodName, true)
		} else {
			candidates = t.InstanceMembersByName(methodName)
		}

	case *ArrayType:
		if t.base != nil {
			return FindMethodWithStrictSignature(t.base, methodName, parameterTypes, static)
		}
	}

	for _, candidate := range candidates {
		if candidate.Kind != common.MemberKindMethod {
			continue
		}

		if parametersMatchStrictly(candidate.ExplicitParameters(), parameterTypes) {
			return candidate
		}
	}

	return nil
}

func parametersMatchStrictly(parameters []*Parameter, types []Type) bool {
	if len(parameters) != len(types) {
		return false
	}

	for i, parameter := range parameters {
		expected := types[i]
		switch {
		case parameter.Type == nil:
			if expected != nil {
				return false
			}
		case expected == nil:
			return false
		case !parameter.Type.Equal(expected):
			return false
		}
	}

	return true
}
