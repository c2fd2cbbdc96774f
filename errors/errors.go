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

// Package errors classifies the failures of the type system.
//
// A UserError is caused by a declaration or a reference and is returned.
// An InternalError is a defect of the engine and is raised as a panic.
// A panic in code the engine calls out to is recovered as an ExternalError.
package errors

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/xerrors"
)

// UserError is a failure caused by a type declaration or a reference to a type or member.
// It is returned, so the loading layer can reject the offending module.
type UserError interface {
	error
	IsUserError()
}

// InternalError is a defect, e.g. a builder used after its type was sealed.
// It is raised as a panic and never recovered by the type system.
type InternalError interface {
	error
	IsInternalError()
}

// SecondaryError is implemented by errors which can give a hint on how to fix them
type SecondaryError interface {
	SecondaryError() string
}

// ExternalError is a panic raised by a collaborator's hook, e.g. a deferred build,
// and recovered by the type system
type ExternalError struct {
	Recovered any
}

func NewExternalError(recovered any) ExternalError {
	return ExternalError{
		Recovered: recovered,
	}
}

func (e ExternalError) Error() string {
	return fmt.Sprint(e.Recovered)
}

// UnreachableError is raised when a code path which cannot be taken is taken,
// e.g. a switch over a closed enum falls through
type UnreachableError struct {
	Stack []byte
}

var _ InternalError = UnreachableError{}

func NewUnreachableError() *UnreachableError {
	return &UnreachableError{
		Stack: debug.Stack(),
	}
}

func (e UnreachableError) Error() string {
	return fmt.Sprintf("unreachable\n%s", e.Stack)
}

func (UnreachableError) IsInternalError() {}

// UnexpectedError is an InternalError with a free-form message or cause
type UnexpectedError struct {
	Err error
}

var _ InternalError = UnexpectedError{}

func NewUnexpectedError(message string, arg ...any) UnexpectedError {
	return NewUnexpectedErrorFromCause(fmt.Errorf(message, arg...))
}

func NewUnexpectedErrorFromCause(err error) UnexpectedError {
	return UnexpectedError{
		Err: err,
	}
}

func (e UnexpectedError) Error() string {
	return e.Err.Error()
}

func (e UnexpectedError) Unwrap() error {
	return e.Err
}

func (UnexpectedError) IsInternalError() {}

// DefaultUserError is a UserError with a free-form message,
// for failures which need no dedicated type
type DefaultUserError struct {
	Err error
}

var _ UserError = DefaultUserError{}

func NewDefaultUserError(message string, arg ...any) DefaultUserError {
	return DefaultUserError{
		Err: fmt.Errorf(message, arg...),
	}
}

func (e DefaultUserError) Error() string {
	return e.Err.Error()
}

func (e DefaultUserError) Unwrap() error {
	return e.Err
}

func (DefaultUserError) IsUserError() {}

// find returns the first error in the chain of the given error
// which is matched by the given predicate
func find[T any](err error, match func(error) (T, bool)) (result T, ok bool) {
	for err != nil {
		if result, ok = match(err); ok {
			return
		}
		wrapper, isWrapper := err.(xerrors.Wrapper)
		if !isWrapper {
			break
		}
		err = wrapper.Unwrap()
	}
	return
}

func matchType[T any](err error) (T, bool) {
	result, ok := err.(T)
	return result, ok
}

// IsInternalError returns true if the error or any error it wraps is an InternalError
func IsInternalError(err error) bool {
	_, ok := find(err, matchType[InternalError])
	return ok
}

// IsUserError returns true if the error or any error it wraps is a UserError
func IsUserError(err error) bool {
	_, ok := find(err, matchType[UserError])
	return ok
}

// GetExternalError returns the ExternalError in the chain of the given error, if any
func GetExternalError(err error) (ExternalError, bool) {
	return find(err, matchType[ExternalError])
}
