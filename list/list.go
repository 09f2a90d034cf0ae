// Copyright 2026 The Weave Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package list implements the growable array type of the Weave
// runtime. Appends double the backing array when full, giving
// amortized O(1) growth. Like hashmap.Map, a List is single-owner and
// not goroutine-safe, and elements implementing hash.Releaser have
// their owned resources released exactly once when the list is freed
// or closed; this is the recursive-destroy contract a list honors when
// it holds maps or other lists as elements.
package list

import (
	"fmt"

	"github.com/weavelang/collections/hash"
)

const minimumGrowth = 4

// List is a growable array of T. The zero value is an empty list ready
// for use.
type List[T any] struct {
	elems []T
}

// New constructs a List pre-sized for capacity elements.
func New[T any](capacity int) *List[T] {
	return &List[T]{elems: make([]T, 0, capacity)}
}

// Append adds v at the end of the list, growing the backing array by
// doubling when it is full.
func (l *List[T]) Append(v T) {
	if len(l.elems) == cap(l.elems) {
		n := 2 * cap(l.elems)
		if n < minimumGrowth {
			n = minimumGrowth
		}
		elems := make([]T, len(l.elems), n)
		copy(elems, l.elems)
		l.elems = elems
	}
	l.elems = append(l.elems, v)
}

// At returns the element at index i. An out-of-range index is a caller
// contract violation and panics.
func (l *List[T]) At(i int) T {
	l.boundsCheck(i)
	return l.elems[i]
}

// Set replaces the element at index i. An out-of-range index is a
// caller contract violation and panics.
func (l *List[T]) Set(i int, v T) {
	l.boundsCheck(i)
	l.elems[i] = v
}

// Pop removes and returns the last element, reporting ok=false on an
// empty list. The popped element's resources are not released: Pop
// transfers ownership to the caller.
func (l *List[T]) Pop() (v T, ok bool) {
	if len(l.elems) == 0 {
		return v, false
	}
	i := len(l.elems) - 1
	v = l.elems[i]
	var zero T
	l.elems[i] = zero
	l.elems = l.elems[:i]
	return v, true
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return len(l.elems)
}

// Cap returns the capacity of the backing array.
func (l *List[T]) Cap() int {
	return cap(l.elems)
}

// Free releases every element's owned resources and resets the list to
// empty. The list remains usable afterward.
func (l *List[T]) Free() {
	for i := range l.elems {
		if r, ok := any(l.elems[i]).(hash.Releaser); ok {
			r.Release()
		}
	}
	l.elems = nil
}

func (l *List[T]) boundsCheck(i int) {
	if i < 0 || i >= len(l.elems) {
		panic(fmt.Sprintf("list: index %d out of range [0,%d)", i, len(l.elems)))
	}
}
