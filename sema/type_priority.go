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
	"container/heap"

	"github.com/bits-and-blooms/bitset"
)

// TypePriority is the position of an ancestor in the linearization of a type.
//
// Rank is the length of the shortest inheritance path to the ancestor.
// InRankOrder is the order in which the ancestor was first staged at its rank,
// the parent before the interfaces, and the interfaces in declaration order.
// TotalOrder is the global staging order.
type TypePriority struct {
	Type        NominalType
	Rank        int
	InRankOrder int
	TotalOrder  int
}

func (p TypePriority) Less(other TypePriority) bool {
	if p.Rank != other.Rank {
		return p.Rank < other.Rank
	}
	if p.InRankOrder != other.InRankOrder {
		return p.InRankOrder < other.InRankOrder
	}
	return p.TotalOrder < other.TotalOrder
}

type typePriorityQueue []TypePriority

var _ heap.Interface = &typePriorityQueue{}

func (q typePriorityQueue) Len() int {
	return len(q)
}

func (q typePriorityQueue) Less(i, j int) bool {
	return q[i].Less(q[j])
}

func (q typePriorityQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *typePriorityQueue) Push(x any) {
	*q = append(*q, x.(TypePriority))
}

func (q *typePriorityQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = TypePriority{}
	*q = old[:n-1]
	return item
}

// TypePrioritySorter linearizes the ancestors of a type breadth-first.
//
// A type reachable through several paths is recorded once,
// at its shortest path length, tie-broken by first lexical encounter.
type TypePrioritySorter struct {
	queue      typePriorityQueue
	rankOrders []int
	totalOrder int
	visited    *bitset.BitSet
}

func NewTypePrioritySorter() *TypePrioritySorter {
	return &TypePrioritySorter{
		visited: bitset.New(0),
	}
}

func (s *TypePrioritySorter) reset() {
	s.queue = s.queue[:0]
	s.rankOrders = s.rankOrders[:0]
	s.totalOrder = 0
	s.visited.ClearAll()
}

func (s *TypePrioritySorter) stage(t NominalType, rank int) {
	if s.visited.Test(uint(t.Index())) {
		return
	}

	for len(s.rankOrders) <= rank {
		s.rankOrders = append(s.rankOrders, 0)
	}

	priority := TypePriority{
		Type:        t,
		Rank:        rank,
		InRankOrder: s.rankOrders[rank],
		TotalOrder:  s.totalOrder,
	}
	s.rankOrders[rank]++
	s.totalOrder++

	heap.Push(&s.queue, priority)
}

// Sort returns the linearized ancestors of the given type.
// If includeSelf is true, the type itself is the first element, at rank 0.
func (s *TypePrioritySorter) Sort(t NominalType, includeSelf bool) []TypePriority {
	s.reset()
	s.stage(t, 0)

	var result []TypePriority

	for s.queue.Len() > 0 {
		priority := heap.Pop(&s.queue).(TypePriority)

		index := uint(priority.Type.Index())
		if s.visited.Test(index) {
			continue
		}
		s.visited.Set(index)

		if priority.Rank > 0 || includeSelf {
			result = append(result, priority)
		}

		for _, supertype := range priority.Type.directSupertypes() {
			s.stage(supertype, priority.Rank+1)
		}
	}

	return result
}

func ComputeAncestorPriorities(t NominalType, includeSelf bool) []TypePriority {
	return NewTypePrioritySorter().Sort(t, includeSelf)
}

// ComputeAncestors returns the deduplicated ancestors of the given type,
// ordered by rank, then by lexical order within the rank
func ComputeAncestors(t NominalType, includeSelf bool) []NominalType {
	return priorityTypes(ComputeAncestorPriorities(t, includeSelf))
}

func priorityTypes(priorities []TypePriority) []NominalType {
	if len(priorities) == 0 {
		return nil
	}
	result := make([]NominalType, len(priorities))
	for i, priority := range priorities {
		result[i] = priority.Type
	}
	return result
}

// ComputeAllExtensionClasses returns the extension classes installed on the given type
// and on all its ancestors, closest ancestor first.
// An extension class installed on several ancestors occurs once, at its first occurrence.
func ComputeAllExtensionClasses(t NominalType) []*ClassType {
	var result []*ClassType
	visited := bitset.New(0)

	collect := func(owner NominalType) {
		for _, extensionClass := range owner.ExtensionClasses() {
			index := uint(extensionClass.Index())
			if visited.Test(index) {
				continue
			}
			visited.Set(index)
			result = append(result, extensionClass)
		}
	}

	collect(t)
	for _, ancestor := range t.Ancestors() {
		collect(ancestor)
	}

	return result
}

// reachesType returns true if the target is the given type or one of its supertypes.
// Unlike Ancestors, it does not require the types to be sealed, and never caches.
func reachesType(from NominalType, target NominalType) bool {
	visited := bitset.New(0)
	stack := []NominalType{from}

	for len(stack) > 0 {
		last := len(stack) - 1
		current := stack[last]
		stack = stack[:last]

		if current == target {
			return true
		}

		index := uint(current.Index())
		if visited.Test(index) {
			continue
		}
		visited.Set(index)

		stack = append(stack, current.directSupertypes()...)
	}

	return false
}
