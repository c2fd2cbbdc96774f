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
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestConfigTracing(t *testing.T) {

	t.Parallel()

	var mutex sync.Mutex
	attributesByOperation := map[string][]attribute.KeyValue{}

	arena := NewArena(Config{
		TracingEnabled: true,
		OnRecordTrace: func(operationName string, _ time.Duration, attrs []attribute.KeyValue) {
			mutex.Lock()
			defer mutex.Unlock()
			attributesByOperation[operationName] = attrs
		},
	})

	rootType := newTestRootClass(t, arena)
	_ = rootType.Ancestors()
	_ = rootType.InstanceMemberMap()

	iShape := buildTestInterface(t, arena, "IShape", nil)
	_ = iShape.MemberMap()

	mutex.Lock()
	defer mutex.Unlock()

	for _, operation := range []string{
		TraceOperationSeal,
		TraceOperationAncestors,
		TraceOperationClassMemberMap,
		TraceOperationInterfaceMemberMap,
	} {
		assert.Contains(t, attributesByOperation, operation)
	}

	attrs := attributesByOperation[TraceOperationClassMemberMap]
	require.Len(t, attrs, 3)
	assert.Equal(t, attribute.String("type", "test.Object"), attrs[0])
	assert.Equal(t, attribute.Bool("sealed", true), attrs[2])
}

func TestConfigTracingDisabled(t *testing.T) {

	t.Parallel()

	called := false
	arena := NewArena(Config{
		OnRecordTrace: func(string, time.Duration, []attribute.KeyValue) {
			called = true
		},
	})

	rootType := newTestRootClass(t, arena)
	_ = rootType.Ancestors()

	assert.False(t, called)
}

func TestConfigLogger(t *testing.T) {

	t.Parallel()

	var buffer bytes.Buffer
	logger := zerolog.New(&buffer).Level(zerolog.DebugLevel)

	arena := NewArena(Config{
		Logger: &logger,
	})

	rootType := newTestRootClass(t, arena)
	_ = rootType.InstanceMemberMap()

	output := buffer.String()
	assert.Contains(t, output, `"message":"sealed type"`)
	assert.Contains(t, output, `"type":"test.Object"`)
	assert.Contains(t, output, `"message":"built class member map"`)
}
