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

// Package strx implements the string method surface of the Weave
// runtime. Strings are UTF-8 and all indices here are rune indices,
// not byte offsets; invalid UTF-8 sequences decode to
// utf8.RuneError per Go convention.
package strx

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Count returns the number of runes in s.
func Count(s string) int {
	return utf8.RuneCountInString(s)
}

// At returns the rune at rune index i. An out-of-range index is a
// caller contract violation and panics.
func At(s string, i int) rune {
	if i >= 0 {
		for _, r := range s {
			if i == 0 {
				return r
			}
			i--
		}
	}
	panic(fmt.Sprintf("strx: rune index %d out of range [0,%d)", i, Count(s)))
}

// Substring returns the runes of s in the half-open interval
// [start, end). Out-of-range or inverted bounds are a caller contract
// violation and panic.
func Substring(s string, start, end int) string {
	if start < 0 || end < start {
		panic(fmt.Sprintf("strx: invalid substring bounds [%d,%d)", start, end))
	}
	byteStart, byteEnd, i := -1, -1, 0
	for off := range s {
		if i == start {
			byteStart = off
		}
		if i == end {
			byteEnd = off
		}
		i++
	}
	if start == i {
		byteStart = len(s)
	}
	if end == i {
		byteEnd = len(s)
	}
	if byteStart < 0 || byteEnd < 0 {
		panic(fmt.Sprintf("strx: substring bounds [%d,%d) out of range for length %d", start, end, i))
	}
	return s[byteStart:byteEnd]
}

// Reverse returns s with its runes in reverse order.
func Reverse(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		b.WriteRune(r)
		s = s[:len(s)-size]
	}
	return b.String()
}

// PadLeft left-pads s with pad runes until it is width runes long.
// A string already at least width runes long is returned unchanged.
func PadLeft(s string, width int, pad rune) string {
	n := Count(s)
	if n >= width {
		return s
	}
	return strings.Repeat(string(pad), width-n) + s
}

// PadRight right-pads s with pad runes until it is width runes long.
func PadRight(s string, width int, pad rune) string {
	n := Count(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(string(pad), width-n)
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError && size <= 1 {
		return s
	}
	u := unicode.ToUpper(r)
	if u == r {
		return s
	}
	return string(u) + s[size:]
}

// SplitWords splits s around runs of Unicode whitespace. An all-space
// or empty string yields no words.
func SplitWords(s string) []string {
	return strings.FieldsFunc(s, unicode.IsSpace)
}
