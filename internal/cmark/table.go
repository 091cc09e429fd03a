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

// scanTableDelimiter recognizes a table delimiter row such as
// "| --- | :---: |". It succeeds only when the cell count matches the
// header row's, and returns the per-column alignments.
func scanTableDelimiter(line []byte, headerCells int) ([]Alignment, bool) {
	if headerCells == 0 {
		return nil, false
	}
	var aligns []Alignment
	cells, ok := splitDelimiterCells(line)
	if !ok || len(cells) != headerCells {
		return nil, false
	}
	for _, cell := range cells {
		a, ok := delimiterAlignment(cell)
		if !ok {
			return nil, false
		}
		aligns = append(aligns, a)
	}
	return aligns, true
}

func splitDelimiterCells(line []byte) ([][]byte, bool) {
	line = trimRight(line)
	if len(line) == 0 {
		return nil, false
	}
	sawPipe := false
	var cells [][]byte
	start := 0
	for i, b := range line {
		if b == '|' {
			sawPipe = true
			cells = append(cells, line[start:i])
			start = i + 1
		}
	}
	cells = append(cells, line[start:])
	if !sawPipe {
		return nil, false
	}
	// Outer pipes contribute empty edge cells; drop them.
	if len(cells) > 0 && isBlank(cells[0]) {
		cells = cells[1:]
	}
	if len(cells) > 0 && isBlank(cells[len(cells)-1]) {
		cells = cells[:len(cells)-1]
	}
	if len(cells) == 0 {
		return nil, false
	}
	return cells, true
}

func delimiterAlignment(cell []byte) (Alignment, bool) {
	cell = trimLeft(trimRight(cell))
	if len(cell) == 0 {
		return AlignNone, false
	}
	left := cell[0] == ':'
	right := cell[len(cell)-1] == ':'
	if left {
		cell = cell[1:]
	}
	if right && len(cell) > 0 {
		cell = cell[:len(cell)-1]
	}
	if len(cell) == 0 {
		return AlignNone, false
	}
	for _, b := range cell {
		if b != '-' {
			return AlignNone, false
		}
	}
	switch {
	case left && right:
		return AlignCenter, true
	case left:
		return AlignLeft, true
	case right:
		return AlignRight, true
	}
	return AlignNone, true
}

// countCells counts the cells of a table row span.
func countCells(source []byte, row Span) int {
	return len(splitRowCells(source, row))
}

// splitRowCells splits a row into trimmed cell spans. Pipes escaped with a
// backslash do not split, and outer pipes are decorative.
func splitRowCells(source []byte, row Span) []Span {
	row = trimSpan(source, row)
	if row.IsEmpty() {
		return nil
	}
	start := row.Start
	end := row.End
	if source[start] == '|' {
		start++
	}
	if end > start && source[end-1] == '|' && !escapedAt(source, end-1, start) {
		end--
	}

	var cells []Span
	cellStart := start
	for i := start; i < end; i++ {
		switch source[i] {
		case '\\':
			i++ // skip the escaped byte
		case '|':
			cells = append(cells, trimSpan(source, Span{Start: cellStart, End: i}))
			cellStart = i + 1
		}
	}
	cells = append(cells, trimSpan(source, Span{Start: cellStart, End: end}))
	return cells
}

// escapedAt reports whether the byte at pos is preceded by an odd run of
// backslashes.
func escapedAt(source []byte, pos, limit int) bool {
	n := 0
	for i := pos - 1; i >= limit && source[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}
