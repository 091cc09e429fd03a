// Copyright 2026 The editkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package cmark

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// maxEntityLength bounds how far an entity scan looks for the closing
// semicolon. The longest named character reference is well under this.
const maxEntityLength = 48

// scanEntity scans a character reference beginning with the '&' at pos.
// It returns the offset past the closing semicolon and the decoded
// replacement, or ok=false. References without a terminating semicolon
// are never recognized.
func scanEntity(source []byte, pos, end int) (entEnd int, decoded string, ok bool) {
	if end > pos+maxEntityLength {
		end = pos + maxEntityLength
	}
	i := pos + 1
	if i >= end {
		return 0, "", false
	}

	if source[i] == '#' {
		return scanNumericEntity(source, pos, end)
	}

	for ; i < end; i++ {
		b := source[i]
		if b == ';' {
			break
		}
		if !isASCIILetter(b) && !isASCIIDigit(b) {
			return 0, "", false
		}
	}
	if i >= end || i == pos+1 {
		return 0, "", false
	}
	candidate := string(source[pos : i+1])
	decoded = html.UnescapeString(candidate)
	if decoded == candidate {
		return 0, "", false
	}
	// UnescapeString also resolves semicolon-less legacy prefixes such as
	// "&copy" inside "&copy1;", leaving the tail (and our semicolon)
	// undecoded. A full decode never ends in ';' except for "&semi;".
	if decoded != ";" && strings.HasSuffix(decoded, ";") {
		return 0, "", false
	}
	return i + 1, decoded, true
}

func scanNumericEntity(source []byte, pos, end int) (entEnd int, decoded string, ok bool) {
	i := pos + 2 // past "&#"
	base := 10
	if i < end && (source[i] == 'x' || source[i] == 'X') {
		base = 16
		i++
	}
	digitStart := i
	for i < end && isEntityDigit(source[i], base) {
		i++
	}
	if i == digitStart || i >= end || source[i] != ';' {
		return 0, "", false
	}
	n, err := strconv.ParseUint(string(source[digitStart:i]), base, 32)
	r := rune(n)
	if err != nil || n == 0 || n > 0x10FFFF || (0xD800 <= n && n <= 0xDFFF) {
		r = '�'
	}
	return i + 1, string(r), true
}

func isEntityDigit(b byte, base int) bool {
	if base == 16 {
		return isASCIIDigit(b) || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
	}
	return isASCIIDigit(b)
}
