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

// Package deps implements dependency graphs,
// see https://www.electricmonk.nl/docs/dependency_resolving_algorithm/dependency_resolving_algorithm.html
package deps

import (
	"fmt"
)

type CircularDependencyError[T any] struct {
	Dependent  *Node[T]
	Dependency *Node[T]
}

func (e CircularDependencyError[T]) Error() string {
	return fmt.Sprintf(
		"circular dependency: %v -> %v",
		e.Dependent.Value,
		e.Dependency.Value,
	)
}

type Node[T any] struct {
	Value        T
	dependencies NodeSet[T]
}

func NewNode[T any](value T, newNodeSet func() NodeSet[T]) *Node[T] {
	return &Node[T]{
		Value:        value,
		dependencies: newNodeSet(),
	}
}

// SetDependencies replaces the dependencies of the node
func (n *Node[T]) SetDependencies(dependencies ...*Node[T]) {
	var previous []*Node[T]
	_ = n.dependencies.ForEach(func(dependency *Node[T]) error {
		previous = append(previous, dependency)
		return nil
	})

	// NOTE: removal happens after iteration,
	// ordered sets do not support removal while iterating
	for _, dependency := range previous {
		n.dependencies.Remove(dependency)
	}

	for _, dependency := range dependencies {
		n.dependencies.Add(dependency)
	}
}

// SolveDependencies returns the given nodes and all their transitive dependencies,
// each exactly once, ordered such that every node appears after its dependencies.
func SolveDependencies[T any](nodes []*Node[T]) ([]*Node[T], error) {
	var solution []*Node[T]
	resolved := MapNodeSet[T]{}

	for _, node := range nodes {
		if resolved.Contains(node) {
			continue
		}

		var err error
		solution, err = node.solve(solution, resolved, MapNodeSet[T]{})
		if err != nil {
			return nil, err
		}
	}

	return solution, nil
}

func (n *Node[T]) solve(
	solution []*Node[T],
	resolved, unresolved MapNodeSet[T],
) ([]*Node[T], error) {
	unresolved.Add(n)
	defer unresolved.Remove(n)

	err := n.dependencies.ForEach(func(next *Node[T]) error {
		if resolved.Contains(next) {
			return nil
		}

		if unresolved.Contains(next) {
			return CircularDependencyError[T]{
				Dependent:  next,
				Dependency: n,
			}
		}

		var err error
		solution, err = next.solve(solution, resolved, unresolved)
		return err
	})
	if err != nil {
		return nil, err
	}

	resolved.Add(n)
	return append(solution, n), nil
}
