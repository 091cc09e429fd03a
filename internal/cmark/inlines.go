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
	"unicode"
	"unicode/utf8"
)

type inlineKind uint8

const (
	nodeText inlineKind = 1 + iota
	nodeSubst
	nodeCode
	nodeHTML
	nodeFootnote
	nodeSoftBreak
	nodeHardBreak
	nodeDelim   // unresolved emphasis delimiter run
	nodeBracket // unresolved "[" or "!["
	nodeEmphasis
	nodeStrong
	nodeStrike
	nodeLink
	nodeImage
)

// inlineNode is one node of a leaf block's inline content. Delimiter and
// bracket nodes exist only during parsing; any left unresolved decay into
// plain text.
type inlineNode struct {
	span        Span
	kind        inlineKind
	replacement string
	children    []*inlineNode

	// Delimiter run state.
	delimChar         byte
	count, origCount  int
	canOpen, canClose bool

	// Bracket state.
	image  bool
	active bool

	// Link and image payload.
	linkType LinkType
	dest     []byte
	title    []byte

	// Footnote reference label.
	label Span
}

type inlineParser struct {
	source   []byte
	lines    []Span
	contents []Span        // lines with trailing whitespace removed
	breaks   []*inlineNode // break node after each line, nil for the last

	li        int
	pos       int
	textStart int
	nodes     []*inlineNode
}

// parseInlines parses the inline content of a leaf block given as line
// spans into source.
func parseInlines(source []byte, lines []Span) []*inlineNode {
	if len(lines) == 0 {
		return nil
	}
	p := &inlineParser{
		source:    source,
		lines:     lines,
		contents:  make([]Span, len(lines)),
		breaks:    make([]*inlineNode, len(lines)),
		textStart: -1,
	}
	for j, ln := range lines {
		t := trimRightSpan(source, ln)
		if j == len(lines)-1 {
			p.contents[j] = t
			continue
		}
		kind := nodeSoftBreak
		if ln.End-t.End >= 2 {
			kind = nodeHardBreak
		}
		if t.Len() > 0 && source[t.End-1] == '\\' && !escapedAt(source, t.End-1, t.Start) {
			kind = nodeHardBreak
			t.End--
		}
		p.contents[j] = t
		p.breaks[j] = &inlineNode{kind: kind, span: Span{Start: t.End, End: lines[j+1].Start}}
	}
	p.run()
	p.processEmphasis(0)
	resolveLeftovers(p.nodes)
	return p.nodes
}

func (p *inlineParser) run() {
	p.pos = p.contents[0].Start
	for p.li < len(p.lines) {
		content := p.contents[p.li]
		if p.pos >= content.End {
			p.flushText(minInt(p.pos, content.End))
			if brk := p.breaks[p.li]; brk != nil {
				p.nodes = append(p.nodes, brk)
			}
			p.li++
			if p.li < len(p.lines) {
				p.pos = p.contents[p.li].Start
			}
			continue
		}
		switch p.source[p.pos] {
		case '\\':
			p.scanEscape(content)
		case '&':
			if end, decoded, ok := scanEntity(p.source, p.pos, content.End); ok {
				p.emitSubst(Span{Start: p.pos, End: end}, decoded)
			} else {
				p.literal(1)
			}
		case '`':
			p.scanCodeSpan(content)
		case '*', '_', '~':
			p.scanDelimiterRun(content)
		case '[':
			p.scanOpenBracket(content)
		case '!':
			if p.pos+1 < content.End && p.source[p.pos+1] == '[' {
				p.flushText(p.pos)
				p.nodes = append(p.nodes, &inlineNode{
					kind: nodeBracket, span: Span{Start: p.pos, End: p.pos + 2},
					image: true, active: true,
				})
				p.pos += 2
			} else {
				p.literal(1)
			}
		case ']':
			p.scanCloseBracket(content)
		case '<':
			p.scanAngle(content)
		case '-':
			n := p.runLength('-', content.End)
			if n >= 2 {
				p.emitSubst(Span{Start: p.pos, End: p.pos + n}, dashRun(n))
			} else {
				p.literal(1)
			}
		case '.':
			if p.pos+3 <= content.End && p.source[p.pos+1] == '.' && p.source[p.pos+2] == '.' {
				p.emitSubst(Span{Start: p.pos, End: p.pos + 3}, ellipsisChar)
			} else {
				p.literal(1)
			}
		case '"':
			repl := rightDoubleQuote
			if quoteOpens(p.source, p.pos, content.Start) {
				repl = leftDoubleQuote
			}
			p.emitSubst(Span{Start: p.pos, End: p.pos + 1}, repl)
		case '\'':
			repl := rightSingleQuote
			if quoteOpens(p.source, p.pos, content.Start) {
				repl = leftSingleQuote
			}
			p.emitSubst(Span{Start: p.pos, End: p.pos + 1}, repl)
		default:
			p.literal(1)
		}
	}
}

// literal accumulates n source bytes into the pending text run.
func (p *inlineParser) literal(n int) {
	if p.textStart < 0 {
		p.textStart = p.pos
	}
	p.pos += n
}

func (p *inlineParser) flushText(end int) {
	if p.textStart >= 0 && end > p.textStart {
		p.nodes = append(p.nodes, &inlineNode{kind: nodeText, span: Span{Start: p.textStart, End: end}})
	}
	p.textStart = -1
}

func (p *inlineParser) emitSubst(span Span, replacement string) {
	p.flushText(span.Start)
	p.nodes = append(p.nodes, &inlineNode{kind: nodeSubst, span: span, replacement: replacement})
	p.pos = span.End
}

// scanEscape handles a backslash. An escaped ASCII punctuation character
// becomes its own text node covering just the character.
func (p *inlineParser) scanEscape(content Span) {
	next := p.pos + 1
	if next >= content.End {
		// A trailing backslash was already folded into a hard break;
		// one at the very end of the block is literal.
		p.literal(1)
		return
	}
	if isASCIIPunct(p.source[next]) {
		p.flushText(p.pos)
		p.nodes = append(p.nodes, &inlineNode{kind: nodeText, span: Span{Start: next, End: next + 1}})
		p.pos = next + 1
		return
	}
	p.literal(1)
}

func (p *inlineParser) runLength(b byte, end int) int {
	n := 0
	for p.pos+n < end && p.source[p.pos+n] == b {
		n++
	}
	return n
}

// scanCodeSpan looks for a closing backtick run of the same length,
// continuing onto later lines if needed. The resulting span includes the
// delimiters and any newlines it crosses.
func (p *inlineParser) scanCodeSpan(content Span) {
	n := p.runLength('`', content.End)
	searchLi, searchPos := p.li, p.pos+n
	for searchLi < len(p.lines) {
		c := p.contents[searchLi]
		if searchPos < c.Start {
			searchPos = c.Start
		}
		for searchPos < c.End {
			if p.source[searchPos] != '`' {
				searchPos++
				continue
			}
			run := 0
			for searchPos+run < c.End && p.source[searchPos+run] == '`' {
				run++
			}
			if run == n {
				p.flushText(p.pos)
				p.nodes = append(p.nodes, &inlineNode{
					kind: nodeCode,
					span: Span{Start: p.pos, End: searchPos + run},
				})
				p.li = searchLi
				p.pos = searchPos + run
				return
			}
			searchPos += run
		}
		searchLi++
	}
	p.literal(n)
}

func (p *inlineParser) scanDelimiterRun(content Span) {
	b := p.source[p.pos]
	n := p.runLength(b, content.End)
	if b == '~' && n > 2 {
		p.literal(n)
		return
	}
	before := runeBefore(p.source, content.Start, p.pos)
	after := runeAfter(p.source, p.pos+n, content.End)
	leftFlanking := !isInlineSpace(after) &&
		(!isInlinePunct(after) || isInlineSpace(before) || isInlinePunct(before))
	rightFlanking := !isInlineSpace(before) &&
		(!isInlinePunct(before) || isInlineSpace(after) || isInlinePunct(after))

	var canOpen, canClose bool
	if b == '_' {
		canOpen = leftFlanking && (!rightFlanking || isInlinePunct(before))
		canClose = rightFlanking && (!leftFlanking || isInlinePunct(after))
	} else {
		canOpen = leftFlanking
		canClose = rightFlanking
	}

	p.flushText(p.pos)
	p.nodes = append(p.nodes, &inlineNode{
		kind: nodeDelim, span: Span{Start: p.pos, End: p.pos + n},
		delimChar: b, count: n, origCount: n,
		canOpen: canOpen, canClose: canClose,
	})
	p.pos += n
}

func (p *inlineParser) scanOpenBracket(content Span) {
	if p.pos+1 < content.End && p.source[p.pos+1] == '^' {
		if end, label, ok := scanFootnoteRef(p.source, p.pos, content.End); ok {
			p.flushText(p.pos)
			p.nodes = append(p.nodes, &inlineNode{
				kind: nodeFootnote, span: Span{Start: p.pos, End: end}, label: label,
			})
			p.pos = end
			return
		}
	}
	p.flushText(p.pos)
	p.nodes = append(p.nodes, &inlineNode{
		kind: nodeBracket, span: Span{Start: p.pos, End: p.pos + 1}, active: true,
	})
	p.pos++
}

func (p *inlineParser) scanCloseBracket(content Span) {
	bracketIdx := -1
	for i := len(p.nodes) - 1; i >= 0; i-- {
		if p.nodes[i].kind == nodeBracket {
			bracketIdx = i
			break
		}
	}
	if bracketIdx < 0 {
		p.literal(1)
		return
	}
	bracket := p.nodes[bracketIdx]
	if !bracket.active {
		bracket.kind = nodeText
		p.literal(1)
		return
	}

	dest, title, end, ok := parseLinkSuffix(p.source, p.pos+1, content.End)
	if !ok {
		// Reference-style and bare bracket pairs stay literal text.
		bracket.kind = nodeText
		p.literal(1)
		return
	}

	p.flushText(p.pos)
	p.processEmphasis(bracketIdx + 1)

	kind := nodeLink
	if bracket.image {
		kind = nodeImage
	}
	link := &inlineNode{
		kind:     kind,
		span:     Span{Start: bracket.span.Start, End: end},
		linkType: LinkInline,
		dest:     dest,
		title:    title,
		children: append([]*inlineNode(nil), p.nodes[bracketIdx+1:]...),
	}
	p.nodes = append(p.nodes[:bracketIdx], link)
	if !bracket.image {
		// Links cannot nest; earlier openers go inert.
		for _, node := range p.nodes[:bracketIdx] {
			if node.kind == nodeBracket && !node.image {
				node.active = false
			}
		}
	}
	p.pos = end
}

// scanAngle handles "<": an autolink, inline raw HTML, or nothing.
func (p *inlineParser) scanAngle(content Span) {
	if interior, email, end, ok := scanAutolink(p.source, p.pos, content.End); ok {
		p.flushText(p.pos)
		dest := p.source[interior.Start:interior.End]
		linkType := LinkAutolink
		if email {
			linkType = LinkEmail
			dest = append([]byte("mailto:"), dest...)
		}
		p.nodes = append(p.nodes, &inlineNode{
			kind: nodeLink, span: Span{Start: p.pos, End: end},
			linkType: linkType, dest: dest,
			children: []*inlineNode{{kind: nodeText, span: interior}},
		})
		p.pos = end
		return
	}
	if end := scanInlineHTML(p.source, p.pos, content.End); end >= 0 {
		p.flushText(p.pos)
		p.nodes = append(p.nodes, &inlineNode{kind: nodeHTML, span: Span{Start: p.pos, End: end}})
		p.pos = end
		return
	}
	p.literal(1)
}

// processEmphasis resolves delimiter runs in p.nodes[bottom:] following
// the CommonMark pairing algorithm, wrapping matched content in emphasis,
// strong, or strikethrough nodes whose spans include the delimiters used.
func (p *inlineParser) processEmphasis(bottom int) {
	openersBottom := map[byte]int{}
	closerIdx := bottom
	for closerIdx < len(p.nodes) {
		closer := p.nodes[closerIdx]
		if closer.kind != nodeDelim || !closer.canClose {
			closerIdx++
			continue
		}
		floor, seen := openersBottom[closer.delimChar]
		if !seen {
			floor = bottom
		}

		openerIdx := -1
		for i := closerIdx - 1; i >= floor; i-- {
			opener := p.nodes[i]
			if opener.kind != nodeDelim || !opener.canOpen || opener.delimChar != closer.delimChar {
				continue
			}
			if opener.delimChar == '~' {
				if opener.count != closer.count {
					continue
				}
			} else if opener.canClose || closer.canOpen {
				// Rule of three: runs that could serve both roles
				// cannot pair when their lengths sum to a multiple
				// of three, unless both are multiples of three.
				sum := opener.origCount + closer.origCount
				if sum%3 == 0 && (opener.origCount%3 != 0 || closer.origCount%3 != 0) {
					continue
				}
			}
			openerIdx = i
			break
		}
		if openerIdx < 0 {
			openersBottom[closer.delimChar] = closerIdx
			closerIdx++
			continue
		}

		opener := p.nodes[openerIdx]
		use := 1
		switch {
		case closer.delimChar == '~':
			use = closer.count
		case opener.count >= 2 && closer.count >= 2:
			use = 2
		}
		var kind inlineKind
		switch {
		case closer.delimChar == '~':
			kind = nodeStrike
		case use == 2:
			kind = nodeStrong
		default:
			kind = nodeEmphasis
		}
		wrap := &inlineNode{
			kind:     kind,
			span:     Span{Start: opener.span.End - use, End: closer.span.Start + use},
			children: append([]*inlineNode(nil), p.nodes[openerIdx+1:closerIdx]...),
		}
		opener.count -= use
		opener.span.End -= use
		closer.count -= use
		closer.span.Start += use

		left := openerIdx + 1
		if opener.count == 0 {
			left = openerIdx
		}
		rest := closerIdx
		if closer.count == 0 {
			rest = closerIdx + 1
		}
		rebuilt := append([]*inlineNode(nil), p.nodes[:left]...)
		rebuilt = append(rebuilt, wrap)
		rebuilt = append(rebuilt, p.nodes[rest:]...)
		p.nodes = rebuilt
		// The splice shifts later indices left; re-base stored floors so
		// they keep naming the same nodes. A floor inside the replaced
		// region falls back to the splice point.
		if removed := rest - left - 1; removed > 0 {
			for ch, idx := range openersBottom {
				switch {
				case idx >= rest:
					openersBottom[ch] = idx - removed
				case idx > left:
					openersBottom[ch] = left
				}
			}
		}
		closerIdx = left + 1
	}
}

// resolveLeftovers turns unresolved delimiter and bracket nodes into
// plain text, recursively.
func resolveLeftovers(nodes []*inlineNode) {
	for _, n := range nodes {
		if n.kind == nodeDelim || n.kind == nodeBracket {
			n.kind = nodeText
		}
		resolveLeftovers(n.children)
	}
}

// scanFootnoteRef recognizes "[^label]" starting at the '[' at pos.
func scanFootnoteRef(source []byte, pos, end int) (refEnd int, label Span, ok bool) {
	i := pos + 2
	for i < end && source[i] != ']' {
		switch source[i] {
		case ' ', '\t', '[', '^':
			return 0, Span{}, false
		}
		i++
	}
	if i >= end || i == pos+2 {
		return 0, Span{}, false
	}
	return i + 1, Span{Start: pos + 2, End: i}, true
}

// parseLinkSuffix parses the "(dest "title")" part of an inline link
// starting at offset i, which must be the opening parenthesis. It returns
// the unescaped destination and title and the offset past the closing
// parenthesis.
func parseLinkSuffix(source []byte, i, end int) (dest, title []byte, after int, ok bool) {
	if i >= end || source[i] != '(' {
		return nil, nil, 0, false
	}
	i = skipInlineSpace(source, i+1, end)

	var destRaw []byte
	if i < end && source[i] == '<' {
		j := i + 1
		for j < end && source[j] != '>' {
			if source[j] == '<' {
				return nil, nil, 0, false
			}
			if source[j] == '\\' {
				j++
			}
			j++
		}
		if j >= end {
			return nil, nil, 0, false
		}
		destRaw = source[i+1 : j]
		i = j + 1
	} else {
		depth := 0
		j := i
	destLoop:
		for j < end {
			switch source[j] {
			case ' ', '\t':
				break destLoop
			case '\\':
				j++
			case '(':
				depth++
			case ')':
				if depth == 0 {
					break destLoop
				}
				depth--
			}
			j++
		}
		if depth != 0 || j > end {
			return nil, nil, 0, false
		}
		destRaw = source[i:j]
		i = j
	}

	i = skipInlineSpace(source, i, end)
	var titleRaw []byte
	if i < end && (source[i] == '"' || source[i] == '\'' || source[i] == '(') {
		open := source[i]
		close := open
		if open == '(' {
			close = ')'
		}
		j := i + 1
		for j < end && source[j] != close {
			if source[j] == '\\' {
				j++
			}
			j++
		}
		if j >= end {
			return nil, nil, 0, false
		}
		titleRaw = source[i+1 : j]
		i = skipInlineSpace(source, j+1, end)
	}

	if i >= end || source[i] != ')' {
		return nil, nil, 0, false
	}
	dest = unescapeBytes(destRaw)
	if titleRaw != nil {
		title = unescapeBytes(titleRaw)
	}
	return dest, title, i + 1, true
}

// scanAutolink recognizes "<scheme:uri>" and "<addr@host>" forms starting
// at the '<' at pos. interior excludes the angle brackets.
func scanAutolink(source []byte, pos, end int) (interior Span, email bool, autoEnd int, ok bool) {
	close := pos + 1
	for close < end && source[close] != '>' {
		if b := source[close]; b == '<' || b == ' ' || b == '\t' {
			return Span{}, false, 0, false
		}
		close++
	}
	if close >= end || close == pos+1 {
		return Span{}, false, 0, false
	}
	interior = Span{Start: pos + 1, End: close}
	body := source[interior.Start:interior.End]

	if isURIAutolink(body) {
		return interior, false, close + 1, true
	}
	if isEmailAutolink(body) {
		return interior, true, close + 1, true
	}
	return Span{}, false, 0, false
}

func isURIAutolink(body []byte) bool {
	if len(body) == 0 || !isASCIILetter(body[0]) {
		return false
	}
	i := 1
	for i < len(body) {
		b := body[i]
		if isASCIILetter(b) || isASCIIDigit(b) || b == '+' || b == '.' || b == '-' {
			i++
			continue
		}
		break
	}
	if i < 2 || i > 32 || i >= len(body) || body[i] != ':' {
		return false
	}
	for _, b := range body[i+1:] {
		if b <= ' ' || b == 0x7f {
			return false
		}
	}
	return true
}

func isEmailAutolink(body []byte) bool {
	at := -1
	for i, b := range body {
		if b == '@' {
			if at >= 0 {
				return false
			}
			at = i
		}
	}
	if at <= 0 || at == len(body)-1 {
		return false
	}
	for _, b := range body[:at] {
		if isASCIILetter(b) || isASCIIDigit(b) {
			continue
		}
		switch b {
		case '.', '!', '#', '$', '%', '&', '\'', '*', '+', '/', '=', '?', '^', '_', '`', '{', '|', '}', '~', '-':
		default:
			return false
		}
	}
	domain := body[at+1:]
	if domain[0] == '-' || domain[len(domain)-1] == '-' || domain[0] == '.' || domain[len(domain)-1] == '.' {
		return false
	}
	for _, b := range domain {
		if !isASCIILetter(b) && !isASCIIDigit(b) && b != '-' && b != '.' {
			return false
		}
	}
	return true
}

// unescapeBytes resolves backslash escapes and character references. It
// returns src unchanged (aliasing it) when there is nothing to decode.
func unescapeBytes(src []byte) []byte {
	i := 0
	for i < len(src) && src[i] != '\\' && src[i] != '&' {
		i++
	}
	if i == len(src) {
		return src
	}
	out := append([]byte(nil), src[:i]...)
	for i < len(src) {
		switch src[i] {
		case '\\':
			if i+1 < len(src) && isASCIIPunct(src[i+1]) {
				out = append(out, src[i+1])
				i += 2
				continue
			}
		case '&':
			if end, decoded, ok := scanEntity(src, i, len(src)); ok {
				out = append(out, decoded...)
				i = end
				continue
			}
		}
		out = append(out, src[i])
		i++
	}
	return out
}

func skipInlineSpace(source []byte, i, end int) int {
	for i < end && (source[i] == ' ' || source[i] == '\t') {
		i++
	}
	return i
}

func isASCIIPunct(b byte) bool {
	switch {
	case b >= '!' && b <= '/', b >= ':' && b <= '@', b >= '[' && b <= '`', b >= '{' && b <= '~':
		return true
	}
	return false
}

func runeBefore(source []byte, start, pos int) rune {
	if pos <= start {
		return ' '
	}
	r, _ := utf8.DecodeLastRune(source[start:pos])
	return r
}

func runeAfter(source []byte, pos, end int) rune {
	if pos >= end {
		return ' '
	}
	r, _ := utf8.DecodeRune(source[pos:end])
	return r
}

func isInlineSpace(r rune) bool {
	return unicode.IsSpace(r)
}

func isInlinePunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
