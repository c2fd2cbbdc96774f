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
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/onflow/ember/errors"
	"github.com/onflow/ember/loader"
	"github.com/onflow/ember/sema"
	"github.com/onflow/ember/stdlib"
)

// session holds the built-in types and the modules loaded so far
type session struct {
	farm     *stdlib.Farm
	logger   *zerolog.Logger
	modules  []*loader.Module
	colors   colorizer
	docWidth int
}

func newSession(farm *stdlib.Farm, logger *zerolog.Logger, colors colorizer) *session {
	return &session{
		farm:     farm,
		logger:   logger,
		colors:   colors,
		docWidth: 80,
	}
}

// load loads a declaration file, which may reference the types of all previously loaded modules
func (s *session) load(data []byte) (*loader.Module, error) {
	module, err := loader.Load(
		data,
		s.farm,
		loader.Config{
			Logger:  s.logger,
			Imports: s.modules,
		},
	)
	if err != nil {
		return nil, err
	}

	s.modules = append(s.modules, module)
	return module, nil
}

// types returns the types of all loaded modules, optionally preceded by the built-in types
func (s *session) types(includeBuiltins bool) []sema.NominalType {
	var types []sema.NominalType
	if includeBuiltins {
		for _, builtinType := range s.farm.Types() {
			types = append(types, builtinType)
		}
	}
	for _, module := range s.modules {
		types = append(types, module.Types()...)
	}
	return types
}

// lookup finds a type by qualified name, or a built-in type by name
func (s *session) lookup(name string) (sema.NominalType, bool) {
	if builtinType, ok := s.farm.LookupType(name); ok {
		return builtinType, true
	}

	moduleName, typeName, ok := strings.Cut(name, ".")
	if !ok {
		return nil, false
	}

	for _, module := range s.modules {
		if module.Name() == moduleName {
			return module.Lookup(typeName)
		}
	}

	return nil, false
}

func (s *session) mustLookup(name string) (sema.NominalType, error) {
	t, ok := s.lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown type `%s`", name)
	}
	return t, nil
}

func (s *session) writeTypeHeader(w io.Writer, t sema.NominalType) {
	kind := "class"
	if _, ok := t.(*sema.InterfaceType); ok {
		kind = "interface"
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", kind, s.colors.typeName(t.QualifiedString()))
}

func (s *session) writeMember(w io.Writer, member *sema.Member) {
	_, _ = fmt.Fprintf(
		w,
		"    %s  %s\n",
		sema.FormatDoc(member.Doc(), s.docWidth),
		s.colors.definingType("("+member.DefiningType.QualifiedString()+")"),
	)
}

// writeMembers writes all members visible on the type, including inherited ones
func (s *session) writeMembers(w io.Writer, t sema.NominalType) {
	s.writeTypeHeader(w, t)

	switch t := t.(type) {
	case *sema.ClassType:
		if staticConstructor := t.StaticConstructor(); staticConstructor != nil {
			s.writeMember(w, staticConstructor)
		}
		for _, constructor := range t.Constructors() {
			s.writeMember(w, constructor)
		}
		for _, initializer := range t.Initializers() {
			s.writeMember(w, initializer)
		}
		for _, member := range t.ClassStaticMembers() {
			s.writeMember(w, member)
		}
		for _, member := range t.ClassInstanceMembers() {
			s.writeMember(w, member)
		}

	case *sema.InterfaceType:
		for _, member := range t.MemberMap().Members() {
			s.writeMember(w, member)
		}
	}
}

// writeAncestors writes the linearized ancestors and the extension classes of the type
func (s *session) writeAncestors(w io.Writer, t sema.NominalType) {
	s.writeTypeHeader(w, t)

	for _, priority := range t.AncestorPriorities() {
		_, _ = fmt.Fprintf(
			w,
			"    %d  %s\n",
			priority.Rank,
			s.colors.typeName(priority.Type.QualifiedString()),
		)
	}

	extensionClasses := t.AllExtensionClasses()
	if len(extensionClasses) == 0 {
		return
	}

	_, _ = fmt.Fprintln(w, "  extensions:")
	for _, extensionClass := range extensionClasses {
		_, _ = fmt.Fprintf(w, "    %s\n", s.colors.typeName(extensionClass.QualifiedString()))
	}
}

func (s *session) writeDoc(w io.Writer, t sema.NominalType) {
	_, _ = fmt.Fprintln(w, sema.FormatDoc(t.Doc(), s.docWidth))
}

// writeAccess writes if the member of the type can be accessed from the referencing type,
// and which type declares it
func (s *session) writeAccess(w io.Writer, typeName, memberName, fromName string) error {
	declaredType, err := s.mustLookup(typeName)
	if err != nil {
		return err
	}

	var referencingType sema.NominalType
	if fromName != "" {
		referencingType, err = s.mustLookup(fromName)
		if err != nil {
			return err
		}
	}

	definingType, err := sema.CheckMemberAccess(
		declaredType,
		memberName,
		referencingType,
		sema.AccessContext{},
		false,
	)
	if err != nil {
		if !errors.IsUserError(err) {
			return err
		}
		_, _ = fmt.Fprintln(w, s.colors.error(formatUserError(err)))
		return nil
	}

	_, _ = fmt.Fprintf(
		w,
		"%s %s\n",
		s.colors.success("accessible:"),
		s.colors.definingType(definingType.QualifiedString()+"."+memberName),
	)
	return nil
}

// formatUserError appends the secondary message of the error, if any
func formatUserError(err error) string {
	message := err.Error()
	if secondaryError, ok := err.(errors.SecondaryError); ok {
		if secondary := secondaryError.SecondaryError(); secondary != "" {
			message += ": " + secondary
		}
	}
	return message
}

type options struct {
	builtins  bool
	doc       bool
	ancestors bool
}

// writeTypes writes every type, either as a declaration or as its members,
// optionally followed by its ancestors
func (s *session) writeTypes(w io.Writer, options options) {
	for _, t := range s.types(options.builtins) {
		if options.doc {
			s.writeDoc(w, t)
		} else {
			s.writeMembers(w, t)
		}
		if options.ancestors {
			s.writeAncestors(w, t)
		}
		_, _ = fmt.Fprintln(w)
	}
}
