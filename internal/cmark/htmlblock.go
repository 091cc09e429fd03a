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
	"bytes"

	"golang.org/x/net/html/atom"
)

// blockLevelAtoms holds the tag names whose appearance at the start of a
// line opens an HTML block that runs to the next blank line.
var blockLevelAtoms = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true,
	atom.Base: true, atom.Basefont: true, atom.Blockquote: true,
	atom.Body: true, atom.Caption: true, atom.Center: true,
	atom.Col: true, atom.Colgroup: true, atom.Dd: true,
	atom.Details: true, atom.Dialog: true, atom.Dir: true,
	atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true,
	atom.Footer: true, atom.Form: true, atom.Frame: true,
	atom.Frameset: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Head: true,
	atom.Header: true, atom.Hr: true, atom.Html: true,
	atom.Iframe: true, atom.Legend: true, atom.Li: true,
	atom.Link: true, atom.Main: true, atom.Menu: true,
	atom.Menuitem: true, atom.Nav: true, atom.Noframes: true,
	atom.Ol: true, atom.Optgroup: true, atom.Option: true,
	atom.P: true, atom.Param: true, atom.Section: true,
	atom.Summary: true, atom.Table: true, atom.Tbody: true,
	atom.Td: true, atom.Tfoot: true, atom.Th: true, atom.Thead: true,
	atom.Title: true, atom.Tr: true, atom.Track: true, atom.Ul: true,
}

// verbatimAtoms are the tags of start condition 1: their blocks run until
// a matching close tag rather than a blank line.
var verbatimAtoms = map[atom.Atom]bool{
	atom.Pre: true, atom.Script: true, atom.Style: true, atom.Textarea: true,
}

// scanHTMLBlockStart checks the seven HTML block start conditions against
// a line beginning with '<'. Condition 7 cannot interrupt a paragraph.
func scanHTMLBlockStart(rest []byte, inParagraph bool) (cond int, ok bool) {
	if len(rest) < 2 {
		return 0, false
	}
	switch {
	case rest[1] == '!':
		switch {
		case bytes.HasPrefix(rest, []byte("<!--")):
			return 2, true
		case bytes.HasPrefix(rest, []byte("<![CDATA[")):
			return 5, true
		case len(rest) > 2 && isASCIILetter(rest[2]):
			return 4, true
		}
		return 0, false
	case rest[1] == '?':
		return 3, true
	}

	i := 1
	closing := false
	if rest[i] == '/' {
		closing = true
		i++
	}
	name := scanTagName(rest, i)
	if name == nil {
		return 0, false
	}
	a := atom.Lookup(bytes.ToLower(name))
	after := i + len(name)
	if !closing && verbatimAtoms[a] {
		if after == len(rest) || rest[after] == ' ' || rest[after] == '\t' || rest[after] == '>' {
			return 1, true
		}
	}
	if blockLevelAtoms[a] {
		switch {
		case after == len(rest), rest[after] == ' ', rest[after] == '\t', rest[after] == '>':
			return 6, true
		case !closing && rest[after] == '/' && after+1 < len(rest) && rest[after+1] == '>':
			return 6, true
		}
		return 0, false
	}

	// Condition 7: a lone complete tag with nothing else on the line.
	if inParagraph || verbatimAtoms[a] {
		return 0, false
	}
	end := scanInlineHTML(rest, 0, len(rest))
	if end < 0 || !isBlank(rest[end:]) {
		return 0, false
	}
	return 7, true
}

// htmlBlockEndsLine reports whether this line satisfies the block's end
// condition for conditions 1-5.
func htmlBlockEndsLine(line []byte, cond int) bool {
	switch cond {
	case 1:
		lower := bytes.ToLower(line)
		for _, tag := range []string{"</pre>", "</script>", "</style>", "</textarea>"} {
			if bytes.Contains(lower, []byte(tag)) {
				return true
			}
		}
		return false
	case 2:
		return bytes.Contains(line, []byte("-->"))
	case 3:
		return bytes.Contains(line, []byte("?>"))
	case 4:
		return bytes.IndexByte(line, '>') >= 0
	case 5:
		return bytes.Contains(line, []byte("]]>"))
	}
	return false
}

// scanInlineHTML scans a raw inline HTML construct starting at the '<' at
// pos: an open or close tag, a comment, a processing instruction, a
// declaration, or a CDATA section. It returns the offset past the
// construct, or -1.
func scanInlineHTML(source []byte, pos, end int) int {
	s := source[pos:end]
	if len(s) < 3 || s[0] != '<' {
		return -1
	}
	switch {
	case bytes.HasPrefix(s, []byte("<!--")):
		if j := bytes.Index(s[4:], []byte("-->")); j >= 0 {
			return pos + 4 + j + 3
		}
		return -1
	case bytes.HasPrefix(s, []byte("<![CDATA[")):
		if j := bytes.Index(s[9:], []byte("]]>")); j >= 0 {
			return pos + 9 + j + 3
		}
		return -1
	case s[1] == '!':
		if len(s) < 3 || !isASCIILetter(s[2]) {
			return -1
		}
		if j := bytes.IndexByte(s, '>'); j >= 0 {
			return pos + j + 1
		}
		return -1
	case s[1] == '?':
		if j := bytes.Index(s[2:], []byte("?>")); j >= 0 {
			return pos + 2 + j + 2
		}
		return -1
	case s[1] == '/':
		name := scanTagName(s, 2)
		if name == nil {
			return -1
		}
		i := 2 + len(name)
		i = skipTagWhitespace(s, i)
		if i < len(s) && s[i] == '>' {
			return pos + i + 1
		}
		return -1
	}

	name := scanTagName(s, 1)
	if name == nil {
		return -1
	}
	i := 1 + len(name)
	for {
		j := skipTagWhitespace(s, i)
		if j >= len(s) {
			return -1
		}
		if s[j] == '/' && j+1 < len(s) && s[j+1] == '>' {
			return pos + j + 2
		}
		if s[j] == '>' {
			return pos + j + 1
		}
		if j == i {
			// Attributes must be whitespace separated.
			return -1
		}
		j2 := scanAttribute(s, j)
		if j2 < 0 {
			return -1
		}
		i = j2
	}
}

// scanTagName returns the tag name starting at i, or nil.
func scanTagName(s []byte, i int) []byte {
	if i >= len(s) || !isASCIILetter(s[i]) {
		return nil
	}
	j := i + 1
	for j < len(s) && (isASCIILetter(s[j]) || isASCIIDigit(s[j]) || s[j] == '-') {
		j++
	}
	return s[i:j]
}

// scanAttribute scans one name="value" attribute (value optional) and
// returns the offset past it, or -1.
func scanAttribute(s []byte, i int) int {
	if i >= len(s) {
		return -1
	}
	if b := s[i]; !isASCIILetter(b) && b != '_' && b != ':' {
		return -1
	}
	i++
	for i < len(s) {
		b := s[i]
		if isASCIILetter(b) || isASCIIDigit(b) || b == '_' || b == ':' || b == '.' || b == '-' {
			i++
			continue
		}
		break
	}
	j := skipTagWhitespace(s, i)
	if j >= len(s) || s[j] != '=' {
		return i
	}
	j = skipTagWhitespace(s, j+1)
	if j >= len(s) {
		return -1
	}
	switch s[j] {
	case '"', '\'':
		q := s[j]
		k := bytes.IndexByte(s[j+1:], q)
		if k < 0 {
			return -1
		}
		return j + 1 + k + 1
	default:
		k := j
		for k < len(s) {
			switch s[k] {
			case ' ', '\t', '\n', '\r', '"', '\'', '=', '<', '>', '`':
				goto unquotedEnd
			}
			k++
		}
	unquotedEnd:
		if k == j {
			return -1
		}
		return k
	}
}

func skipTagWhitespace(s []byte, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

func isASCIILetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isASCIIDigit(b byte) bool {
	return '0' <= b && b <= '9'
}
