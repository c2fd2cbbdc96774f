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
	"encoding/json"

	"github.com/onflow/ember/errors"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Visibility

// Visibility is the declared accessibility of a type or a member.
//
// Visibilities form a total order (see IsAbsolutelyLessVisibleThan):
// public > protected = module > private > hidden.
// Hidden members are excluded from all lookups, as if they did not exist.
type Visibility uint8

const (
	VisibilityHidden Visibility = iota
	VisibilityPrivate
	VisibilityModule
	VisibilityProtected
	VisibilityPublic
)

var AllVisibilities = []Visibility{
	VisibilityPublic,
	VisibilityProtected,
	VisibilityModule,
	VisibilityPrivate,
	VisibilityHidden,
}

// level returns the position of the visibility in the total order.
// Protected and module visibility share a level.
func (v Visibility) level() int {
	switch v {
	case VisibilityHidden:
		return 0
	case VisibilityPrivate:
		return 1
	case VisibilityModule, VisibilityProtected:
		return 2
	case VisibilityPublic:
		return 3
	}

	panic(errors.NewUnreachableError())
}

// IsAbsolutelyLessVisibleThan returns whether the receiver is strictly less visible than the argument.
// Public is never less visible than anything,
// and hidden is less visible than everything but itself.
func (v Visibility) IsAbsolutelyLessVisibleThan(other Visibility) bool {
	return v.level() < other.level()
}

// SubclassVisible returns whether members with this visibility are seen by subclasses
func (v Visibility) SubclassVisible() bool {
	switch v {
	case VisibilityPublic, VisibilityProtected, VisibilityModule:
		return true
	case VisibilityPrivate, VisibilityHidden:
		return false
	}

	panic(errors.NewUnreachableError())
}

func (v Visibility) Keyword() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityModule:
		return "module"
	case VisibilityPrivate:
		return "private"
	case VisibilityHidden:
		return "hidden"
	}

	panic(errors.NewUnreachableError())
}

func (v Visibility) Description() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityModule:
		return "module-private"
	case VisibilityPrivate:
		return "private"
	case VisibilityHidden:
		return "hidden"
	}

	panic(errors.NewUnreachableError())
}

func (v Visibility) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// ParseVisibility returns the visibility for the given keyword,
// as produced by the parser for accessibility tokens.
func ParseVisibility(keyword string) (Visibility, error) {
	for _, visibility := range AllVisibilities {
		if visibility.Keyword() == keyword {
			return visibility, nil
		}
	}

	return VisibilityHidden, &InvalidVisibilityError{
		Keyword: keyword,
	}
}
