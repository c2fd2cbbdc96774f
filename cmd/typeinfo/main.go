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

// typeinfo loads declaration files and prints the resolved types:
// their members, ancestors and declarations.
// With -repl, it starts an interactive session to query the types.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/onflow/ember/sema"
	"github.com/onflow/ember/stdlib"
)

var (
	flagBuiltins  = flag.Bool("builtins", false, "also print the built-in types")
	flagDoc       = flag.Bool("doc", false, "print the declarations of the types")
	flagAncestors = flag.Bool("ancestors", false, "print the ancestors and extension classes of the types")
	flagREPL      = flag.Bool("repl", false, "start an interactive session after loading")
	flagVerbose   = flag.Bool("verbose", false, "log debug events of the type system")
	flagNoColor   = flag.Bool("no-color", false, "disable colored output")
)

func main() {

	flag.Usage = func() {
		_, _ = fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [declarations.yaml ...]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	level := zerolog.InfoLevel
	if *flagVerbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
	}).
		Level(level).
		With().
		Timestamp().
		Logger()

	sequencer := stdlib.NewSequencer(stdlib.Config{
		Sema: sema.Config{
			Logger: &logger,
		},
		Logger: &logger,
	})

	farm, err := sequencer.Builtins()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to bootstrap built-in types")
	}

	session := newSession(farm, &logger, newColorizer(!*flagNoColor))

	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Fatal().Err(err).Str("path", path).Msg("failed to read declarations")
		}

		if _, err := session.load(data); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, session.colors.error(formatUserError(err)))
			os.Exit(1)
		}
	}

	if *flagREPL {
		session.runREPL(os.Stdout)
		return
	}

	session.writeTypes(os.Stdout, options{
		builtins:  *flagBuiltins,
		doc:       *flagDoc,
		ancestors: *flagAncestors,
	})
}
