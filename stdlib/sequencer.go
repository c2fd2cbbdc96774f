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

package stdlib

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/onflow/ember/errors"
	"github.com/onflow/ember/sema"
)

const TraceOperationBootstrap = "stdlib.bootstrap"

type Config struct {
	// Sema is the configuration of the arena of the built-in types
	Sema sema.Config
	// Logger receives an event when the built-in types are built or reset.
	// If nil, nothing is logged.
	Logger *zerolog.Logger
	// Types are the built-in types to bootstrap, parents first.
	// If nil, DefaultBuiltinTypes are used.
	Types []BuiltinType
}

var nopLogger = zerolog.Nop()

func (c *Config) logger() *zerolog.Logger {
	if c.Logger == nil {
		return &nopLogger
	}
	return c.Logger
}

func (c *Config) types() []BuiltinType {
	if c.Types == nil {
		return DefaultBuiltinTypes
	}
	return c.Types
}

// Sequencer bootstraps the built-in types exactly once, until it is reset
type Sequencer struct {
	config Config
	mutex  sync.Mutex
	farm   atomic.Pointer[Farm]
}

func NewSequencer(config Config) *Sequencer {
	return &Sequencer{
		config: config,
	}
}

// Builtins returns the farm of sealed built-in types, bootstrapping them on first use.
// Concurrent first calls bootstrap only once and return the same farm.
func (s *Sequencer) Builtins() (*Farm, error) {
	if farm := s.farm.Load(); farm != nil {
		return farm, nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if farm := s.farm.Load(); farm != nil {
		return farm, nil
	}

	start := time.Now()

	farm, err := bootstrap(s.config)
	if err != nil {
		return nil, err
	}

	s.farm.Store(farm)

	duration := time.Since(start)

	s.config.logger().Info().
		Int("types", len(farm.order)).
		Dur("duration", duration).
		Msg("bootstrapped built-in types")

	semaConfig := s.config.Sema
	if semaConfig.TracingEnabled && semaConfig.OnRecordTrace != nil {
		semaConfig.OnRecordTrace(
			TraceOperationBootstrap,
			duration,
			[]attribute.KeyValue{
				attribute.Int("types", len(farm.order)),
			},
		)
	}

	return farm, nil
}

// Reset discards the built-in types, the next call of Builtins bootstraps new ones.
// Reset must not be called concurrently with the use of the built-in types.
func (s *Sequencer) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.farm.Store(nil)

	s.config.logger().Info().Msg("reset built-in types")
}

func bootstrap(config Config) (*Farm, error) {
	arena := sema.NewArena(config.Sema)
	farm := newFarm(arena)
	types := config.types()

	// stubs first, so all types may reference each other
	for _, builtinType := range types {
		builder := arena.NewClassTypeBuilder(
			builtinType.Name(),
			BuiltinModuleName,
			sema.VisibilityPublic,
			builtinType.Properties(),
		)
		builder.SetTrusted(true)
		builder.SetScope(farm)
		builder.SetImplementation(builtinType)
		farm.add(builder)
	}

	for _, primitiveType := range sema.AllPrimitiveTypes {
		if primitiveType == sema.VoidType {
			continue
		}
		farm.ArrayOf(primitiveType)
	}

	for _, builtinType := range types {
		if builtinType.WantsArrayType() {
			farm.ArrayOf(farm.MustLookup(builtinType.Name()))
		}
	}

	for _, builtinType := range types {
		builder := farm.builders[builtinType.Name()]

		if parentName := builtinType.ParentName(); parentName != "" {
			parent, ok := farm.Lookup(parentName)
			if !ok {
				return nil, newBootstrapError(builtinType, fmt.Errorf("unknown parent `%s`", parentName))
			}
			if err := builder.SetParent(parent); err != nil {
				return nil, newBootstrapError(builtinType, err)
			}
		}

		if err := builtinType.ImplementSelf(builder, farm); err != nil {
			return nil, newBootstrapError(builtinType, err)
		}
	}

	for _, builtinType := range types {
		builder := farm.builders[builtinType.Name()]
		if err := builtinType.BootstrapSelf(builder); err != nil {
			return nil, newBootstrapError(builtinType, err)
		}
	}

	farm.builders = nil

	return farm, nil
}

// newBootstrapError reports a failure of a built-in type,
// which is a defect of the engine, not of user code
func newBootstrapError(builtinType BuiltinType, err error) errors.UnexpectedError {
	return errors.NewUnexpectedErrorFromCause(
		fmt.Errorf("failed to bootstrap built-in type `%s`: %w", builtinType.Name(), err),
	)
}

var defaultSequencer = NewSequencer(Config{})

// Builtins returns the process-wide built-in types
func Builtins() (*Farm, error) {
	return defaultSequencer.Builtins()
}

// Reset discards the process-wide built-in types
func Reset() {
	defaultSequencer.Reset()
}
