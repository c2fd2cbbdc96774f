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

package loader

import (
	"fmt"

	"github.com/onflow/ember/errors"
)

// DeclarationError reports the type declaration which failed to load
type DeclarationError struct {
	Module string
	Type   string
	Err    error
}

func (e *DeclarationError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("module `%s`: %s", e.Module, e.Err.Error())
	}
	return fmt.Sprintf("module `%s`, type `%s`: %s", e.Module, e.Type, e.Err.Error())
}

func (e *DeclarationError) Unwrap() error {
	return e.Err
}

func (e *DeclarationError) SecondaryError() string {
	if secondaryError, ok := e.Err.(errors.SecondaryError); ok {
		return secondaryError.SecondaryError()
	}
	return ""
}

// InvalidDeclarationError

type InvalidDeclarationError struct {
	errors.DefaultUserError
}

var _ errors.UserError = &InvalidDeclarationError{}

func newInvalidDeclarationError(message string, arg ...any) *InvalidDeclarationError {
	return &InvalidDeclarationError{
		DefaultUserError: errors.NewDefaultUserError(message, arg...),
	}
}

// UnknownTypeError

type UnknownTypeError struct {
	Name string
}

var _ errors.UserError = &UnknownTypeError{}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("cannot find type `%s`", e.Name)
}

func (*UnknownTypeError) IsUserError() {}

// UnexpectedTypeKindError is reported when a class is used where an interface is expected,
// or vice versa

type UnexpectedTypeKindError struct {
	Name     string
	Expected string
}

var _ errors.UserError = &UnexpectedTypeKindError{}

func (e *UnexpectedTypeKindError) Error() string {
	return fmt.Sprintf("type `%s` is not %s", e.Name, e.Expected)
}

func (*UnexpectedTypeKindError) IsUserError() {}

// ReservedTypeNameError

type ReservedTypeNameError struct {
	Name string
}

var _ errors.UserError = &ReservedTypeNameError{}

func (e *ReservedTypeNameError) Error() string {
	return fmt.Sprintf("cannot declare type `%s`: the name is reserved for a built-in type", e.Name)
}

func (*ReservedTypeNameError) IsUserError() {}

// DuplicateTypeError

type DuplicateTypeError struct {
	Name string
}

var _ errors.UserError = &DuplicateTypeError{}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("duplicate declaration of type `%s`", e.Name)
}

func (*DuplicateTypeError) IsUserError() {}

// InvalidAnnotationError

type InvalidAnnotationError struct {
	Name string
}

var _ errors.UserError = &InvalidAnnotationError{}

func (e *InvalidAnnotationError) Error() string {
	return fmt.Sprintf("type `%s` cannot be used as an annotation", e.Name)
}

func (e *InvalidAnnotationError) SecondaryError() string {
	return "annotation types must derive from `Attribute`"
}

func (*InvalidAnnotationError) IsUserError() {}

// ParseError is reported when a declaration file is not valid YAML,
// or does not match the declaration schema

type ParseError struct {
	Err error
}

var _ errors.UserError = &ParseError{}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse declarations: %s", e.Err.Error())
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (*ParseError) IsUserError() {}
