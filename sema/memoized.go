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
	"sync"
)

// memoized is a lazily computed, derived view of a sealed type.
//
// The value is computed once, on first read, and is safe for concurrent first reads.
// Types which are not yet sealed may still change,
// so their views are computed on every read and never cached.
type memoized[T any] struct {
	once  sync.Once
	value T
}

func (m *memoized[T]) get(sealed bool, compute func() T) T {
	if !sealed {
		return compute()
	}
	m.once.Do(func() {
		m.value = compute()
	})
	return m.value
}
