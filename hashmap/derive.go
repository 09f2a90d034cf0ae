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

import (
	"fmt"
	"unsafe"

	"github.com/weavelang/collections/hash"
)

// hashFuncFor derives the hash function for key type K at construction
// time. Fixed-width numerics and bools go through the hash package's
// integer mixer, floats through its normalizing variants, and strings
// through FNV-1a. A composite K provides its own derivation by
// implementing hash.Hasher on its value type. Any other shape panics
// here, inside New, so that an unsupported key type can never reach an
// operation at runtime.
//
// The unsafe casts reinterpret the key in place for the shape matched
// by the type switch; they avoid boxing the key into an interface on
// every operation.
func hashFuncFor[K comparable]() func(K) uint64 {
	var zero K
	switch any(zero).(type) {
	case string:
		return func(k K) uint64 { return hash.String(*(*string)(unsafe.Pointer(&k))) }
	case int:
		return func(k K) uint64 { return hash.Int64(int64(*(*int)(unsafe.Pointer(&k)))) }
	case int8:
		return func(k K) uint64 { return hash.Int64(int64(*(*int8)(unsafe.Pointer(&k)))) }
	case int16:
		return func(k K) uint64 { return hash.Int64(int64(*(*int16)(unsafe.Pointer(&k)))) }
	case int32:
		return func(k K) uint64 { return hash.Int32(*(*int32)(unsafe.Pointer(&k))) }
	case int64:
		return func(k K) uint64 { return hash.Int64(*(*int64)(unsafe.Pointer(&k))) }
	case uint:
		return func(k K) uint64 { return hash.Uint64(uint64(*(*uint)(unsafe.Pointer(&k)))) }
	case uint8:
		return func(k K) uint64 { return hash.Uint64(uint64(*(*uint8)(unsafe.Pointer(&k)))) }
	case uint16:
		return func(k K) uint64 { return hash.Uint64(uint64(*(*uint16)(unsafe.Pointer(&k)))) }
	case uint32:
		return func(k K) uint64 { return hash.Uint32(*(*uint32)(unsafe.Pointer(&k))) }
	case uint64:
		return func(k K) uint64 { return hash.Uint64(*(*uint64)(unsafe.Pointer(&k))) }
	case uintptr:
		return func(k K) uint64 { return hash.Uint64(uint64(*(*uintptr)(unsafe.Pointer(&k)))) }
	case float32:
		return func(k K) uint64 { return hash.Float32(*(*float32)(unsafe.Pointer(&k))) }
	case float64:
		return func(k K) uint64 { return hash.Float64(*(*float64)(unsafe.Pointer(&k))) }
	case bool:
		return func(k K) uint64 { return hash.Bool(*(*bool)(unsafe.Pointer(&k))) }
	}
	if _, ok := any(zero).(hash.Hasher); ok {
		return func(k K) uint64 { return any(k).(hash.Hasher).Sum64() }
	}
	panic(fmt.Sprintf("hashmap: no hash derivation for key type %T; implement hash.Hasher or supply WithHash", zero))
}
