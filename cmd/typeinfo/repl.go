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
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"
)

const replHelpMessage = `
Commands are prefixed with a dot. Valid commands are:

.types                          List all types
.members <type>                 Print the members of a type
.ancestors <type>               Print the ancestors and extension classes of a type
.doc <type>                     Print the declaration of a type
.access <type> <member> [from]  Check if a member of a type is accessible from a type
.exit                           Exit
.help                           Print this help message

Types are named by their qualified name, e.g. hr.Employee, or by their built-in name, e.g. String.
Press ^D to exit`

const replAssistanceMessage = `Type '.help' for assistance.`

var errExit = errors.New("exit")

// handleCommand runs a REPL command. It returns errExit if the session should end.
func (s *session) handleCommand(w io.Writer, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	command, arguments := fields[0], fields[1:]

	requireArguments := func(min, max int) error {
		if len(arguments) < min || len(arguments) > max {
			return fmt.Errorf("invalid number of arguments for %s. %s", command, replAssistanceMessage)
		}
		return nil
	}

	switch command {
	case ".exit":
		return errExit

	case ".help":
		_, _ = fmt.Fprintln(w, replHelpMessage)

	case ".types":
		for _, t := range s.types(true) {
			_, _ = fmt.Fprintln(w, s.colors.typeName(t.QualifiedString()))
		}

	case ".members", ".ancestors", ".doc":
		if err := requireArguments(1, 1); err != nil {
			return err
		}
		t, err := s.mustLookup(arguments[0])
		if err != nil {
			return err
		}
		switch command {
		case ".members":
			s.writeMembers(w, t)
		case ".ancestors":
			s.writeAncestors(w, t)
		default:
			s.writeDoc(w, t)
		}

	case ".access":
		if err := requireArguments(2, 3); err != nil {
			return err
		}
		from := ""
		if len(arguments) == 3 {
			from = arguments[2]
		}
		return s.writeAccess(w, arguments[0], arguments[1], from)

	default:
		return fmt.Errorf("unknown command. %s", replAssistanceMessage)
	}

	return nil
}

var replCommands = []prompt.Suggest{
	{Text: ".types", Description: "List all types"},
	{Text: ".members", Description: "Print the members of a type"},
	{Text: ".ancestors", Description: "Print the ancestors of a type"},
	{Text: ".doc", Description: "Print the declaration of a type"},
	{Text: ".access", Description: "Check member accessibility"},
	{Text: ".exit", Description: "Exit"},
	{Text: ".help", Description: "Print the help message"},
}

// suggestions completes commands, and type names in argument position
func (s *session) suggestions(textBeforeCursor string, word string) []prompt.Suggest {
	if word == "" {
		return nil
	}

	if !strings.Contains(textBeforeCursor, " ") {
		return prompt.FilterHasPrefix(replCommands, word, false)
	}

	var suggests []prompt.Suggest
	for _, t := range s.types(true) {
		suggests = append(suggests, prompt.Suggest{
			Text:        t.QualifiedString(),
			Description: t.DocString(),
		})
	}

	return prompt.FilterHasPrefix(suggests, word, true)
}

func (s *session) runREPL(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Loaded %d types. %s\n\n", len(s.types(true)), replAssistanceMessage)

	exit := false

	executor := func(line string) {
		err := s.handleCommand(w, line)
		switch {
		case err == nil:
		case errors.Is(err, errExit):
			exit = true
		default:
			_, _ = fmt.Fprintln(w, s.colors.error(err.Error()))
		}
	}

	suggest := func(d prompt.Document) []prompt.Suggest {
		return s.suggestions(d.TextBeforeCursor(), d.GetWordBeforeCursor())
	}

	prompt.New(
		executor,
		suggest,
		prompt.OptionPrefix("> "),
		prompt.OptionSetExitCheckerOnInput(func(string, bool) bool {
			return exit
		}),
	).Run()
}
