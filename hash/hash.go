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

// Package hash derives the 64-bit hashes used by the collections
// runtime. Two algorithms cover the supported key shapes: fixed-width
// integers (and normalized floats) go through an FxHash-style
// multiplicative mixer over the value's bit pattern, while strings and
// byte sequences go through FNV-1a over their UTF-8 bytes. Composite
// keys combine their field hashes with Fold, which runs each field
// hash's 8 bytes through the same FNV-1a step in declaration order so
// that structurally equal values always combine identically.
//
// Every function in this package is a pure, total, allocation-free
// function of its input. Determinism is part of the contract: equal
// values hash identically across calls and across processes.
package hash

import "math"

const (
	// FNV-1a parameters for 64-bit hashes.
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211

	// fxSeed is the FxHash 64-bit multiplication constant.
	fxSeed = 0x517cc1b727220a95
)

// Hasher is the capability a composite key type implements to be
// usable as a map key: a deterministic 64-bit hash of the value.
// Equality comes from Go's comparable constraint, so the usual
// requirement applies: values that compare equal must return equal
// sums. Implementations combine their field hashes with Fold or
// Combine in a fixed field order; tagged variants fold the
// discriminant before the payload fields.
type Hasher interface {
	Sum64() uint64
}

// Releaser is implemented by keys or values that own resources the
// garbage collector cannot see. A map or list invokes Release exactly
// once per stored value per release event (entry removed, container
// freed, container closed) and never on an already-released value.
// Implementations holding nested containers release them recursively.
type Releaser interface {
	Release()
}

// Uint64 mixes the bit pattern of v. A bare multiply leaves the low
// bits of sequential keys correlated, which linear probing punishes,
// so the product is folded over itself once.
func Uint64(v uint64) uint64 {
	h := v * fxSeed
	return h ^ (h >> 32)
}

// Int64 hashes the two's-complement bit pattern of v.
func Int64(v int64) uint64 {
	return Uint64(uint64(v))
}

// Uint32 hashes v zero-extended to 64 bits.
func Uint32(v uint32) uint64 {
	return Uint64(uint64(v))
}

// Int32 hashes the two's-complement bit pattern of v.
func Int32(v int32) uint64 {
	return Uint64(uint64(uint32(v)))
}

// Bool hashes a boolean as 0 or 1.
func Bool(v bool) uint64 {
	if v {
		return Uint64(1)
	}
	return Uint64(0)
}

// Float64 hashes v by bit pattern after normalizing negative zero.
// -0.0 and 0.0 compare equal, so they must hash equal; hashing the raw
// bit pattern would split them. NaN needs no normalization: it never
// compares equal to anything, itself included, so its hash can never
// be observed through a successful lookup.
func Float64(v float64) uint64 {
	if v == 0 {
		v = 0
	}
	return Uint64(math.Float64bits(v))
}

// Float32 is Float64's single-precision counterpart.
func Float32(v float32) uint64 {
	if v == 0 {
		v = 0
	}
	return Uint64(uint64(math.Float32bits(v)))
}

// String hashes the UTF-8 bytes of s with FNV-1a, left to right.
func String(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h = (h ^ uint64(s[i])) * fnvPrime64
	}
	return h
}

// Bytes is String for a byte slice.
func Bytes(b []byte) uint64 {
	h := uint64(fnvOffset64)
	for _, c := range b {
		h = (h ^ uint64(c)) * fnvPrime64
	}
	return h
}

// Fold combines a field hash into an accumulated composite hash by
// running the field hash's 8 bytes, least significant first, through
// the FNV-1a step. Composite key types fold their fields in
// declaration order starting from Seed.
func Fold(h, field uint64) uint64 {
	for i := 0; i < 8; i++ {
		h = (h ^ (field & 0xff)) * fnvPrime64
		field >>= 8
	}
	return h
}

// Seed is the accumulator a composite hash starts from.
const Seed = uint64(fnvOffset64)

// Combine folds a sequence of field hashes in order. It is the
// convenience form of Fold for key types whose fields are already
// hashed:
//
//	func (p Point) Sum64() uint64 {
//		return hash.Combine(hash.Int64(p.X), hash.Int64(p.Y))
//	}
func Combine(fields ...uint64) uint64 {
	h := Seed
	for _, f := range fields {
		h = Fold(h, f)
	}
	return h
}
