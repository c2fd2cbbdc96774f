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

	"go.opentelemetry.io/otel/attribute"
)

const (
	TraceOperationSeal               = "sema.seal"
	TraceOperationAncestors          = "sema.ancestors"
	TraceOperationExtensions         = "sema.extensions"
	TraceOperationClassMemberMap     = "sema.classMemberMap"
	TraceOperationInterfaceMemberMap = "sema.interfaceMemberMap"
)

func (c *Config) reportTrace(operationName string, duration time.Duration, attrs []attribute.KeyValue) {
	if !c.TracingEnabled || c.OnRecordTrace == nil {
		return
	}
	c.OnRecordTrace(operationName, duration, attrs)
}

func traceTypeAttributes(t NominalType) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("type", string(t.ID())),
		attribute.Int("index", int(t.Index())),
		attribute.Bool("sealed", t.IsSealed()),
	}
}

// traced runs the given computation for the given type,
// and reports its duration if tracing is enabled
func traced[T any](arena *Arena, operationName string, t NominalType, compute func() T) T {
	if arena == nil || !arena.config.TracingEnabled {
		return compute()
	}

	start := time.Now()
	result := compute()
	arena.config.reportTrace(operationName, time.Since(start), traceTypeAttributes(t))
	return result
}
