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
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

type OnRecordTraceFunc func(
	operationName string,
	duration time.Duration,
	attrs []attribute.KeyValue,
)

type Config struct {
	// Logger receives debug events for sealing, member map and ancestor computation.
	// If nil, nothing is logged.
	Logger *zerolog.Logger
	// SkipSanityChecks disables the cross-hierarchy checks of class builders
	SkipSanityChecks bool
	// TracingEnabled specifies if tracing is enabled
	TracingEnabled bool
	// OnRecordTrace is called with the duration of each traced operation
	OnRecordTrace OnRecordTraceFunc
}

var nopLogger = zerolog.Nop()

func (c *Config) logger() *zerolog.Logger {
	if c.Logger == nil {
		return &nopLogger
	}
	return c.Logger
}
