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

import "strings"

// dashRun converts a run of n hyphens (n >= 2) into em and en dashes. A
// multiple of three becomes all em dashes, an even count all en dashes,
// and anything else a mix, em dashes first.
func dashRun(n int) string {
	var ems, ens int
	switch {
	case n%3 == 0:
		ems = n / 3
	case n%2 == 0:
		ens = n / 2
	case n%3 == 2:
		ems = (n - 2) / 3
		ens = 1
	default:
		ems = (n - 4) / 3
		ens = 2
	}
	return strings.Repeat("—", ems) + strings.Repeat("–", ens)
}

// quoteOpens decides whether the quote character at pos is an opening
// quote: it must follow the start of the text, whitespace, or an opening
// bracket.
func quoteOpens(source []byte, pos, start int) bool {
	if pos == start {
		return true
	}
	switch source[pos-1] {
	case ' ', '\t', '\n', '\r', '(', '[', '{':
		return true
	}
	return false
}

const (
	leftDoubleQuote  = "“"
	rightDoubleQuote = "”"
	leftSingleQuote  = "‘"
	rightSingleQuote = "’"
	ellipsisChar     = "…"
)
