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

package deps

import (
	"github.com/onflow/ember/common/orderedmap"
)

// NodeSet is a set of Node
type NodeSet[T any] interface {
	Add(*Node[T])
	Remove(*Node[T])
	Contains(*Node[T]) bool
	ForEach(func(*Node[T]) error) error
}

// MapNodeSet is a Node set backed by a Go map (unordered).
// It is only used for bookkeeping while solving, never iterated.
type MapNodeSet[T any] map[*Node[T]]struct{}

func (m MapNodeSet[T]) Add(node *Node[T]) {
	m[node] = struct{}{}
}

func (m MapNodeSet[T]) Remove(node *Node[T]) {
	delete(m, node)
}

func (m MapNodeSet[T]) Contains(node *Node[T]) bool {
	_, ok := m[node]
	return ok
}

// OrderedNodeSet is a Node set backed by an ordered map.
// Iteration follows insertion order, which makes solutions deterministic.
type OrderedNodeSet[T any] struct {
	m *orderedmap.OrderedMap[*Node[T], struct{}]
}

func NewOrderedNodeSet[T any]() NodeSet[T] {
	return OrderedNodeSet[T]{
		m: orderedmap.New[orderedmap.OrderedMap[*Node[T], struct{}]](0),
	}
}

var _ NodeSet[string] = OrderedNodeSet[string]{}

func (o OrderedNodeSet[T]) Add(node *Node[T]) {
	o.m.Set(node, struct{}{})
}

func (o OrderedNodeSet[T]) Remove(node *Node[T]) {
	o.m.Delete(node)
}

func (o OrderedNodeSet[T]) Contains(node *Node[T]) bool {
	return o.m.Contains(node)
}

func (o OrderedNodeSet[T]) ForEach(f func(*Node[T]) error) error {
	return o.m.ForeachWithError(func(node *Node[T], _ struct{}) error {
		return f(node)
	})
}
