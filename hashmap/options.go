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

package hashmap

import "math/bits"

// Option does work on a Map while it is being created.
type Option[K comparable, V any] interface {
	apply(m *Map[K, V])
}

type hashOption[K comparable, V any] struct {
	hash func(K) uint64
}

func (op hashOption[K, V]) apply(m *Map[K, V]) {
	m.hash = op.hash
}

// WithHash specifies the hash function for a Map[K,V], overriding the
// derivation New performs from K's shape. The function must be a pure,
// deterministic function of the key: equal keys must hash equally.
func WithHash[K comparable, V any](hash func(K) uint64) Option[K, V] {
	return hashOption[K, V]{hash}
}

type capacityOption[K comparable, V any] struct {
	capacity int
}

func (op capacityOption[K, V]) apply(m *Map[K, V]) {
	m.capacity = normalizeCapacity(op.capacity)
}

// WithCapacity pre-sizes a Map[K,V]. The requested capacity is rounded
// up to a power of two with a floor of 16, preserving the mask-indexing
// invariant. The backing array still materializes lazily.
func WithCapacity[K comparable, V any](capacity int) Option[K, V] {
	return capacityOption[K, V]{capacity}
}

// normalizeCapacity returns the smallest power of two >= n, never
// below minCapacity.
func normalizeCapacity(n int) int {
	if n <= minCapacity {
		return minCapacity
	}
	return 1 << bits.Len(uint(n-1))
}
