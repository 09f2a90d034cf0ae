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

// Package hashmap implements the map type of the Weave runtime: an
// open-addressed hash table with linear probing over a power-of-two
// slot array. If you're not familiar with open-addressing see
// https://en.wikipedia.org/wiki/Open_addressing.
//
// # Layout
//
// The table is a single flat array of capacity slots where capacity is
// a power of two, never below 16. Each slot is either empty or holds a
// key/value pair; there is no tombstone state. The probe position for
// a key is hash(key) & (capacity-1), and collisions scan forward one
// slot at a time with wraparound. An insert that would push the number
// of live entries past floor(capacity*3/4) doubles the table first, so
// a probe is always guaranteed to reach an empty slot.
//
// # Deletion
//
// Because there are no tombstones, Delete must keep later entries in a
// probe run reachable. It does so by backward-shifting: after a slot
// is vacated, the entries following it in the probe run are walked and
// every entry whose home position does not lie strictly inside the
// run after the gap is moved back into the gap, which then moves to
// the slot the entry came from. The walk stops at the first empty
// slot. Lookups can therefore treat any empty slot as a definitive
// miss.
//
// # Keys and ownership
//
// A key type needs a deterministic 64-bit hash and equality. Equality
// is Go's ==, required by the comparable constraint, which also makes
// key types containing variable-length sequences (slices, maps) a
// compile error. The hash is derived at construction for fixed-width
// numerics, bools, and strings; composite key types implement
// hash.Hasher, and anything else must be supplied through WithHash or
// New panics. Keys and values implementing hash.Releaser have Release
// invoked exactly once when their entry is removed or the map is freed
// or closed.
//
// A Map is NOT goroutine-safe: it has a single-owner, single-threaded
// mutation model and performs no locking.
package hashmap

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/weavelang/collections/hash"
)

const (
	// minCapacity is the slot count of a fresh or freed table.
	minCapacity = 16

	// Load factor numerator/denominator: resize triggers before a
	// successful insert would push used past capacity*3/4.
	maxLoadNum = 3
	maxLoadDen = 4
)

// ErrCapacity is returned by Rehash for a capacity that is not a power
// of two, is below the 16-slot floor, or cannot hold the current
// entries under the 0.75 load bound. The capacity is never silently
// rounded: power-of-two capacities are what make mask indexing valid.
var ErrCapacity = errors.New("hashmap: invalid capacity")

type slot[K comparable, V any] struct {
	key      K
	value    V
	occupied bool
}

// Map is an unordered map from keys to values with Put, Get, Delete,
// and Contains operations. The zero value is not usable; construct
// with New.
//
// Map deliberately has no iteration API.
type Map[K comparable, V any] struct {
	// hash is derived from K's shape at construction, or supplied via
	// WithHash.
	hash func(K) uint64
	// slots is capacity in length once materialized. A fresh table
	// defers the allocation until the first Put.
	slots []slot[K, V]
	// capacity is the slot count, always a power of two >= minCapacity.
	// Tracked separately from len(slots) so that an unmaterialized
	// table still has a well-defined capacity.
	capacity int
	// used is the number of occupied slots.
	used int
}

// New constructs an empty Map with capacity 16. The backing array is
// not allocated until the first insert. New panics if no hash function
// can be derived for K and none was supplied with WithHash; this is
// the construction-time rejection of unsupported key shapes.
func New[K comparable, V any](options ...Option[K, V]) *Map[K, V] {
	m := &Map[K, V]{capacity: minCapacity}
	for _, op := range options {
		op.apply(m)
	}
	if m.hash == nil {
		m.hash = hashFuncFor[K]()
	}
	m.checkInvariants()
	return m
}

// Put inserts an entry into the map, overwriting the value if an entry
// with the same key already exists. Overwriting is in place: the
// stored key is untouched, the entry count does not change, and no
// resize check is performed.
func (m *Map[K, V]) Put(key K, value V) {
	if m.slots == nil {
		m.slots = make([]slot[K, V], m.capacity)
	}
	h := m.hash(key)
	mask := uint64(m.capacity - 1)
	i := h & mask
	for {
		s := &m.slots[i]
		if !s.occupied {
			break
		}
		if s.key == key {
			s.value = value
			m.checkInvariants()
			return
		}
		i = (i + 1) & mask
	}

	// The key is absent and i is the empty slot the probe ended on.
	// Grow first if placing there would break the load bound; the
	// probe position must then be recomputed against the new mask.
	if m.used+1 > m.capacity*maxLoadNum/maxLoadDen {
		m.resize(2 * m.capacity)
		i = m.probeEmpty(h)
	}
	m.slots[i] = slot[K, V]{key: key, value: value, occupied: true}
	m.used++
	m.checkInvariants()
}

// Get retrieves the value for key, returning ok=false if the key is
// not present. A miss is not an error.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	i, ok := m.find(key)
	if !ok {
		return value, false
	}
	return m.slots[i].value, true
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.find(key)
	return ok
}

// Delete removes the entry for key and returns its value, releasing
// any resources the stored key and value own. Deleting an absent key
// is a noop reported through ok=false.
func (m *Map[K, V]) Delete(key K) (value V, ok bool) {
	i, ok := m.find(key)
	if !ok {
		return value, false
	}
	s := &m.slots[i]
	value = s.value
	releaseSlot(s)

	// Close the gap: walk the probe run after i and move back every
	// entry that the gap would otherwise cut off from its home
	// position. An entry at j can fill the gap at i iff its home does
	// not lie in the cyclic interval (i, j]; equivalently its probe
	// distance reaches back to i or beyond.
	mask := uint64(m.capacity - 1)
	j := i
	g := i
	for {
		j = (j + 1) & mask
		s := &m.slots[j]
		if !s.occupied {
			break
		}
		home := m.hash(s.key) & mask
		if (j-home)&mask >= (j-g)&mask {
			m.slots[g] = *s
			g = j
		}
	}
	m.slots[g] = slot[K, V]{}
	m.used--
	m.checkInvariants()
	return value, true
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return m.used
}

// Cap returns the current slot count.
func (m *Map[K, V]) Cap() int {
	return m.capacity
}

// Free releases every entry's owned resources, discards the slot
// array, and reinitializes the map at capacity 16. Unlike Close, the
// map remains usable: Free is a reset, not a destructor.
func (m *Map[K, V]) Free() {
	m.releaseAll()
	m.slots = nil
	m.capacity = minCapacity
	m.used = 0
	m.checkInvariants()
}

// Close releases every entry's owned resources and the backing array.
// It is invalid to use a Map after it has been closed, though Close
// itself is idempotent.
func (m *Map[K, V]) Close() {
	m.releaseAll()
	m.slots = nil
	m.capacity = 0
	m.used = 0
}

// Rehash resizes the table to newCapacity, re-probe-inserting every
// live entry against the new mask. The capacity must be a power of two
// no smaller than 16 and large enough to hold the current entries
// under the 0.75 load bound; anything else is a contract violation
// reported as an ErrCapacity error, never silently corrected.
func (m *Map[K, V]) Rehash(newCapacity int) error {
	if newCapacity < minCapacity || newCapacity&(newCapacity-1) != 0 {
		return fmt.Errorf("%w: %d is not a power of two >= %d", ErrCapacity, newCapacity, minCapacity)
	}
	if m.used > newCapacity*maxLoadNum/maxLoadDen {
		return fmt.Errorf("%w: %d slots cannot hold %d entries under a 3/4 load factor",
			ErrCapacity, newCapacity, m.used)
	}
	m.resize(newCapacity)
	m.checkInvariants()
	return nil
}

// find locates the slot holding key. Probing stops at the first empty
// slot, which backward-shift deletion guarantees is a definitive miss.
func (m *Map[K, V]) find(key K) (index uint64, ok bool) {
	if m.used == 0 {
		return 0, false
	}
	mask := uint64(m.capacity - 1)
	i := m.hash(key) & mask
	for {
		s := &m.slots[i]
		if !s.occupied {
			return 0, false
		}
		if s.key == key {
			return i, true
		}
		i = (i + 1) & mask
	}
}

// probeEmpty returns the first empty slot in the probe sequence for h.
// The load bound guarantees one exists.
func (m *Map[K, V]) probeEmpty(h uint64) uint64 {
	mask := uint64(m.capacity - 1)
	i := h & mask
	for m.slots[i].occupied {
		i = (i + 1) & mask
	}
	return i
}

// resize reallocates the slot array at newCapacity and re-probe-
// inserts each live entry, recomputing its hash against the new mask.
// Callers have already validated newCapacity.
func (m *Map[K, V]) resize(newCapacity int) {
	old := m.slots
	m.capacity = newCapacity
	if old == nil {
		return
	}
	m.slots = make([]slot[K, V], newCapacity)
	for i := range old {
		s := &old[i]
		if !s.occupied {
			continue
		}
		// The entry is known absent from the new array, so probing for
		// the first empty slot is sufficient.
		j := m.probeEmpty(m.hash(s.key))
		m.slots[j] = *s
	}
}

// releaseAll invokes the Release contract on every occupied slot.
func (m *Map[K, V]) releaseAll() {
	for i := range m.slots {
		if m.slots[i].occupied {
			releaseSlot(&m.slots[i])
		}
	}
}

// releaseSlot releases the key's and value's owned resources, at most
// once per stored entry: callers clear or overwrite the slot before it
// can be visited again.
func releaseSlot[K comparable, V any](s *slot[K, V]) {
	if r, ok := any(s.key).(hash.Releaser); ok {
		r.Release()
	}
	if r, ok := any(s.value).(hash.Releaser); ok {
		r.Release()
	}
}

// Debug writes the DebugString dump to w. Diagnostic only: the output
// format carries no compatibility contract.
func (m *Map[K, V]) Debug(w io.Writer) {
	fmt.Fprint(w, m.DebugString())
}

// DebugString returns a human-readable dump of the capacity, entry
// count, and per-slot contents.
func (m *Map[K, V]) DebugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  used=%d\n", m.capacity, m.used)
	for i := range m.slots {
		s := &m.slots[i]
		if !s.occupied {
			fmt.Fprintf(&buf, "  %4d: empty\n", i)
			continue
		}
		h := m.hash(s.key)
		fmt.Fprintf(&buf, "  %4d: %v: %v [home=%d]\n", i, s.key, s.value, h&uint64(m.capacity-1))
	}
	return buf.String()
}

// checkInvariants verifies the structural invariants of the table.
// Compiled out unless the invariants build tag is set.
func (m *Map[K, V]) checkInvariants() {
	if !invariants {
		return
	}
	if m.capacity < minCapacity || m.capacity&(m.capacity-1) != 0 {
		panic(fmt.Sprintf("invariant failed: capacity %d is not a power of two >= %d", m.capacity, minCapacity))
	}
	if m.used > m.capacity*maxLoadNum/maxLoadDen {
		panic(fmt.Sprintf("invariant failed: used=%d exceeds load bound at capacity=%d\n%s",
			m.used, m.capacity, m.DebugString()))
	}
	if m.slots == nil {
		if m.used != 0 {
			panic(fmt.Sprintf("invariant failed: used=%d with no backing array", m.used))
		}
		return
	}
	if len(m.slots) != m.capacity {
		panic(fmt.Sprintf("invariant failed: %d slots but capacity=%d", len(m.slots), m.capacity))
	}
	var used int
	for i := range m.slots {
		s := &m.slots[i]
		if !s.occupied {
			continue
		}
		used++
		// Every entry must be reachable from its home position without
		// crossing an empty slot.
		if j, ok := m.find(s.key); !ok || j != uint64(i) {
			panic(fmt.Sprintf("invariant failed: slot(%d): %v not reachable [home=%d]\n%s",
				i, s.key, m.hash(s.key)&uint64(m.capacity-1), m.DebugString()))
		}
	}
	if used != m.used {
		panic(fmt.Sprintf("invariant failed: found %d occupied slots, but used count is %d\n%s",
			used, m.used, m.DebugString()))
	}
}
