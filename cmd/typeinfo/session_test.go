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

package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/ember/stdlib"
)

const testDeclarations = `
module: zoo
types:
  - interface: ISpeak
    members:
      - kind: method
        name: speak
        abstract: true
  - class: Animal
    abstract: true
    implements: [ISpeak]
    members:
      - kind: field
        name: age
        type: int
        visibility: protected
      - kind: method
        name: speak
      - kind: method
        name: secret
        visibility: private
  - class: Dog
    parent: Animal
    extensions: [Tricks]
  - class: Tricks
`

func newTestSession(t *testing.T) *session {
	farm, err := stdlib.NewSequencer(stdlib.Config{}).Builtins()
	require.NoError(t, err)

	logger := zerolog.Nop()
	s := newSession(farm, &logger, newColorizer(false))

	_, err = s.load([]byte(testDeclarations))
	require.NoError(t, err)

	return s
}

func TestSession_Lookup(t *testing.T) {

	t.Parallel()

	s := newTestSession(t)

	dog, ok := s.lookup("zoo.Dog")
	require.True(t, ok)
	assert.Equal(t, "Dog", dog.Identifier())

	object, ok := s.lookup(stdlib.ObjectTypeName)
	require.True(t, ok)
	assert.Same(t, s.farm.Root(), object)

	_, ok = s.lookup("Dog")
	assert.False(t, ok)

	_, ok = s.lookup("farm.Dog")
	assert.False(t, ok)

	assert.Len(t, s.types(false), 4)
	assert.Len(t, s.types(true), 4+len(s.farm.Types()))
}

func TestSession_Commands(t *testing.T) {

	t.Parallel()

	s := newTestSession(t)

	run := func(t *testing.T, line string) string {
		var buffer bytes.Buffer
		require.NoError(t, s.handleCommand(&buffer, line))
		return buffer.String()
	}

	t.Run("members", func(t *testing.T) {
		output := run(t, ".members zoo.Dog")
		assert.Contains(t, output, "class zoo.Dog")
		assert.Contains(t, output, "protected var age: int  (zoo.Animal)")
		assert.Contains(t, output, "public fun speak()  (zoo.Animal)")
		assert.Contains(t, output, "public fun to_string(): String  (Object)")
		assert.NotContains(t, output, "secret")
	})

	t.Run("ancestors", func(t *testing.T) {
		output := run(t, ".ancestors zoo.Dog")
		assert.Contains(t, output, "1  zoo.Animal")
		assert.Contains(t, output, "2  zoo.ISpeak")
		assert.Contains(t, output, "extensions:")
		assert.Contains(t, output, "zoo.Tricks")
	})

	t.Run("doc", func(t *testing.T) {
		output := run(t, ".doc zoo.Animal")
		assert.Contains(t, output, "public abstract class Animal")
		assert.Contains(t, output, "private fun secret()")
	})

	t.Run("access", func(t *testing.T) {
		assert.Contains(t, run(t, ".access zoo.Dog speak"), "accessible: zoo.Animal.speak")
		assert.Contains(t, run(t, ".access zoo.Dog age zoo.Dog"), "accessible: zoo.Animal.age")
		assert.Contains(t,
			run(t, ".access zoo.Dog age zoo.Tricks"),
			"cannot access protected member `age` of type `zoo.Dog` from type `zoo.Tricks`",
		)
		assert.Contains(t,
			run(t, ".access zoo.Dog speek"),
			"did you mean `speak`?",
		)
	})

	t.Run("types", func(t *testing.T) {
		output := run(t, ".types")
		assert.Contains(t, output, "zoo.ISpeak\n")
		assert.Contains(t, output, "Object\n")
	})

	t.Run("errors", func(t *testing.T) {
		var buffer bytes.Buffer
		assert.ErrorContains(t, s.handleCommand(&buffer, ".members"), "invalid number of arguments")
		assert.ErrorContains(t, s.handleCommand(&buffer, ".members zoo.Cat"), "unknown type `zoo.Cat`")
		assert.ErrorContains(t, s.handleCommand(&buffer, ".frobnicate"), "unknown command")
		assert.ErrorIs(t, s.handleCommand(&buffer, ".exit"), errExit)
	})
}

func TestSession_Suggestions(t *testing.T) {

	t.Parallel()

	s := newTestSession(t)

	commands := s.suggestions(".mem", ".mem")
	require.Len(t, commands, 1)
	assert.Equal(t, ".members", commands[0].Text)

	types := s.suggestions(".members zoo.D", "zoo.D")
	require.Len(t, types, 1)
	assert.Equal(t, "zoo.Dog", types[0].Text)

	assert.Empty(t, s.suggestions(".members ", ""))
}

func TestSession_LoadError(t *testing.T) {

	t.Parallel()

	s := newTestSession(t)

	_, err := s.load([]byte(`
module: broken
types:
  - class: Puppy
    parent: zoo.Dog
    members:
      - kind: field
        name: age
        type: int
`))
	require.Error(t, err)
	assert.Contains(t, formatUserError(err), "consider")
	assert.Len(t, s.modules, 1)
}
