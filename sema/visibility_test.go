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
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibility_IsAbsolutelyLessVisibleThan(t *testing.T) {

	t.Parallel()

	expectations := map[Visibility][]Visibility{
		VisibilityPublic:    nil,
		VisibilityProtected: {VisibilityPublic},
		VisibilityModule:    {VisibilityPublic},
		VisibilityPrivate:   {VisibilityPublic, VisibilityProtected, VisibilityModule},
		VisibilityHidden: {
			VisibilityPublic,
			VisibilityProtected,
			VisibilityModule,
			VisibilityPrivate,
		},
	}

	for _, visibility := range AllVisibilities {
		for _, other := range AllVisibilities {
			expected := false
			for _, lessThan := range expectations[visibility] {
				if lessThan == other {
					expected = true
				}
			}

			assert.Equal(t,
				expected,
				visibility.IsAbsolutelyLessVisibleThan(other),
				"%s < %s",
				visibility,
				other,
			)
		}
	}
}

func TestVisibility_Order(t *testing.T) {

	t.Parallel()

	properties := gopter.NewProperties(nil)

	genVisibility := gen.IntRange(0, len(AllVisibilities)-1).
		Map(func(index int) Visibility {
			return AllVisibilities[index]
		})

	properties.Property("is irreflexive", prop.ForAll(
		func(a Visibility) bool {
			return !a.IsAbsolutelyLessVisibleThan(a)
		},
		genVisibility,
	))

	properties.Property("is asymmetric", prop.ForAll(
		func(a, b Visibility) bool {
			return !(a.IsAbsolutelyLessVisibleThan(b) && b.IsAbsolutelyLessVisibleThan(a))
		},
		genVisibility,
		genVisibility,
	))

	properties.Property("is transitive", prop.ForAll(
		func(a, b, c Visibility) bool {
			if a.IsAbsolutelyLessVisibleThan(b) && b.IsAbsolutelyLessVisibleThan(c) {
				return a.IsAbsolutelyLessVisibleThan(c)
			}
			return true
		},
		genVisibility,
		genVisibility,
		genVisibility,
	))

	properties.Property("public is maximal", prop.ForAll(
		func(a Visibility) bool {
			return !VisibilityPublic.IsAbsolutelyLessVisibleThan(a)
		},
		genVisibility,
	))

	properties.Property("hidden is minimal", prop.ForAll(
		func(a Visibility) bool {
			return a == VisibilityHidden ||
				VisibilityHidden.IsAbsolutelyLessVisibleThan(a)
		},
		genVisibility,
	))

	properties.TestingRun(t)
}

func TestVisibility_SubclassVisible(t *testing.T) {

	t.Parallel()

	assert.True(t, VisibilityPublic.SubclassVisible())
	assert.True(t, VisibilityProtected.SubclassVisible())
	assert.True(t, VisibilityModule.SubclassVisible())
	assert.False(t, VisibilityPrivate.SubclassVisible())
	assert.False(t, VisibilityHidden.SubclassVisible())
}

func TestParseVisibility(t *testing.T) {

	t.Parallel()

	for _, visibility := range AllVisibilities {
		parsed, err := ParseVisibility(visibility.Keyword())
		require.NoError(t, err)
		assert.Equal(t, visibility, parsed)
	}

	_, err := ParseVisibility("internal")
	var visibilityErr *InvalidVisibilityError
	require.ErrorAs(t, err, &visibilityErr)
	assert.Equal(t, "internal", visibilityErr.Keyword)
}

func TestVisibility_String(t *testing.T) {

	t.Parallel()

	assert.Equal(t, "VisibilityModule", VisibilityModule.String())
	assert.Equal(t, "module-private", VisibilityModule.Description())
	assert.Equal(t, "Visibility(9)", Visibility(9).String())
}
