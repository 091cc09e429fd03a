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

import "bytes"

// tabStopSize is the multiple of columns that a tab advances to.
const tabStopSize = 4

// codeBlockIndentLimit is the column width of an indent
// required to start an indented code block.
const codeBlockIndentLimit = 4

type blockKind uint8

const (
	documentBlock blockKind = 1 + iota
	paragraphBlock
	headingBlock
	thematicBlock
	indentedCodeBlock
	fencedCodeBlock
	htmlBlock
	blockQuoteBlock
	listBlock
	itemBlock
	footnoteDefBlock
	tableBlock
	metadataBlock
)

// block is a structural element of the document.
// A block is open while span.End < 0; only the last child of an open block
// can itself be open.
type block struct {
	kind     blockKind
	span     Span
	parent   *block
	children []*block

	// content holds the leaf's raw line spans: inline text pieces for
	// paragraphs and headings, verbatim lines for code, HTML, and
	// metadata blocks, and row lines for tables.
	content []Span

	// contentEnd is the offset just past the last line that contributed
	// to this block, used as the span end when the block closes.
	contentEnd int

	// Heading fields. attrs is the interior of a trailing attribute
	// block, or an empty span at -1 when there is none.
	level int
	attrs Span

	// Fenced code fields.
	fenceChar   byte
	fenceLen    int
	fenceIndent int
	info        Span

	// HTML block field: which start condition opened it.
	htmlCond int

	// List fields.
	ordered    bool
	startNum   uint64
	bullet     byte
	delim      byte
	tight      bool
	blankSince bool

	// Item fields. padding is the column indent a continuation line
	// must have, relative to the item's enclosing containers.
	padding     int
	hasTask     bool
	taskChecked bool
	taskSpan    Span

	// Footnote definition field.
	label Span

	// Table fields. content[0] is the header row, content[1:] the body
	// rows; the delimiter row is structural and not recorded.
	aligns []Alignment

	// Indented code blocks track trailing blank lines so they can be
	// dropped when the block closes.
	trailingBlanks int
}

func (b *block) isOpen() bool {
	return b != nil && b.span.End < 0
}

func (b *block) lastChild() *block {
	if len(b.children) == 0 {
		return nil
	}
	return b.children[len(b.children)-1]
}

// close closes b and any open descendants, deepest first, each at its own
// recorded content end.
func (b *block) close() {
	if !b.isOpen() {
		return
	}
	b.lastChild().close()
	b.span.End = b.contentEnd
	if b.span.End < b.span.Start {
		b.span.End = b.span.Start
	}
	if b.kind == indentedCodeBlock && b.trailingBlanks > 0 {
		b.content = b.content[:len(b.content)-b.trailingBlanks]
		if len(b.content) > 0 {
			b.span.End = b.content[len(b.content)-1].End
		}
	}
}

// acceptsLines reports whether the block is a leaf that takes raw line
// content directly.
func (kind blockKind) acceptsLines() bool {
	switch kind {
	case paragraphBlock, indentedCodeBlock, fencedCodeBlock, htmlBlock, tableBlock:
		return true
	}
	return false
}

// lineCursor is a cursor on one line of the source,
// including its line terminator.
type lineCursor struct {
	source []byte
	start  int // offset of the first byte of the line
	nl     int // offset where the line terminator begins
	end    int // offset just past the line terminator
	i      int // cursor position within [start, nl]
}

func newLineCursor(source []byte, start int) *lineCursor {
	c := &lineCursor{source: source, start: start, i: start}
	c.nl = len(source)
	c.end = len(source)
	if j := bytes.IndexAny(source[start:], "\r\n"); j >= 0 {
		c.nl = start + j
		c.end = c.nl + 1
		if source[c.nl] == '\r' && c.end < len(source) && source[c.end] == '\n' {
			c.end++
		}
	}
	return c
}

// rest returns the bytes remaining on the line, terminator excluded.
func (c *lineCursor) rest() []byte {
	return c.source[c.i:c.nl]
}

// column returns the column of position p, expanding tabs from the start
// of the line.
func (c *lineCursor) column(p int) int {
	col := 0
	for q := c.start; q < p; q++ {
		if c.source[q] == '\t' {
			col += tabStopSize - col%tabStopSize
		} else {
			col++
		}
	}
	return col
}

// indent returns the number of columns of whitespace after the cursor.
func (c *lineCursor) indent() int {
	p := c.i
	for p < c.nl && (c.source[p] == ' ' || c.source[p] == '\t') {
		p++
	}
	return c.column(p) - c.column(c.i)
}

// consumeIndent advances the cursor over up to n columns of whitespace.
// A tab that straddles the boundary is consumed whole.
func (c *lineCursor) consumeIndent(n int) {
	for n > 0 && c.i < c.nl {
		switch c.source[c.i] {
		case ' ':
			n--
			c.i++
		case '\t':
			n -= tabStopSize - c.column(c.i)%tabStopSize
			c.i++
		default:
			return
		}
	}
}

func (c *lineCursor) blank() bool {
	return isBlank(c.rest())
}

func isBlank(line []byte) bool {
	for _, b := range line {
		if b != ' ' && b != '\t' {
			return false
		}
	}
	return true
}

type parser struct {
	source []byte
	doc    *block
}

// parseBlocks splits source into its block structure.
func parseBlocks(source []byte) *block {
	doc := &block{kind: documentBlock, span: Span{Start: 0, End: -1}}
	p := &parser{source: source, doc: doc}

	pos := 0
	if meta, ok := scanMetadataBlock(source); ok {
		meta.parent = doc
		doc.children = append(doc.children, meta)
		doc.contentEnd = meta.span.End
		pos = meta.span.End
	}
	for pos < len(source) {
		c := newLineCursor(source, pos)
		p.parseLine(c)
		pos = c.end
	}
	doc.contentEnd = maxInt(doc.contentEnd, contentEndOf(doc))
	doc.close()
	return doc
}

func contentEndOf(b *block) int {
	end := b.contentEnd
	for _, child := range b.children {
		if child.contentEnd > end {
			end = child.contentEnd
		}
	}
	return end
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// openChain returns the chain of open blocks from the document down.
func (p *parser) openChain() []*block {
	chain := []*block{p.doc}
	for b := p.doc.lastChild(); b.isOpen(); b = b.lastChild() {
		chain = append(chain, b)
	}
	return chain
}

type matchResult int8

const (
	noMatch matchResult = iota
	matched
	consumedLine
)

// parseLine advances the block structure by one line, following the
// CommonMark two-phase strategy: first match continuations of open blocks,
// then look for new block starts, and finally attach remaining text.
func (p *parser) parseLine(c *lineCursor) {
	chain := p.openChain()
	n := 1 // doc always matches
	for ; n < len(chain); n++ {
		switch p.matchContinuation(chain[n], c) {
		case noMatch:
			goto descended
		case consumedLine:
			p.touch(chain[:n+1], c)
			return
		}
	}
descended:
	allMatched := n == len(chain)
	lastMatched := chain[n-1]
	container := lastMatched
	var leaf *block // a matched paragraph, if the chain ends in one
	if container.kind == paragraphBlock {
		leaf = container
		container = chain[n-2]
	}

	// A setext underline can only follow a fully matched open paragraph.
	if leaf != nil && c.indent() < codeBlockIndentLimit {
		if level := setextLevel(trimLeft(trimRight(c.rest()))); level > 0 {
			leaf.kind = headingBlock
			leaf.level = level
			leaf.contentEnd = c.end
			leaf.close()
			p.touch(chain[:n-1], c)
			return
		}
	}

	container, opened, done := p.openNewBlocks(container, c)
	if done {
		p.touch(chain[:n], c)
		return
	}

	if c.blank() {
		p.handleBlank(chain, n)
		return
	}

	if !opened && !allMatched {
		// Lazy continuation: text that matches no block start may still
		// continue a paragraph deeper in the tree.
		if tip := chain[len(chain)-1]; tip.kind == paragraphBlock {
			c.consumeIndent(c.indent())
			tip.content = append(tip.content, Span{Start: c.i, End: c.nl})
			p.touch(chain, c)
			return
		}
	}

	// GFM table: a delimiter row after a one-line paragraph turns that
	// paragraph into a table header.
	if !opened && leaf != nil && len(leaf.content) == 1 && c.indent() < codeBlockIndentLimit {
		if aligns, ok := scanTableDelimiter(trimLeft(c.rest()), countCells(p.source, leaf.content[0])); ok {
			leaf.kind = tableBlock
			leaf.aligns = aligns
			leaf.contentEnd = c.end
			p.touch(chain[:n], c)
			return
		}
	}

	if !opened && leaf != nil {
		p.addLineText(leaf, c)
		p.touch(chain[:n], c)
		return
	}

	container = p.exitList(container)
	para := p.openChild(container, paragraphBlock, 0)
	c.consumeIndent(c.indent())
	para.span.Start = c.i
	para.content = append(para.content, Span{Start: c.i, End: c.nl})
	para.contentEnd = c.end
	p.touch(chain[:n], c)
}

// touch records that this line contributed to every block along the
// matched chain.
func (p *parser) touch(chain []*block, c *lineCursor) {
	for _, b := range chain {
		if b.isOpen() && c.end > b.contentEnd {
			b.contentEnd = c.end
		}
	}
}

// closeUnmatched closes any open descendants of b.
func (p *parser) closeUnmatched(b *block) {
	b.lastChild().close()
}

// openChild closes b's open descendants and appends a new open child.
func (p *parser) openChild(b *block, kind blockKind, start int) *block {
	p.closeUnmatched(b)
	p.markLoose(b)
	child := &block{kind: kind, span: Span{Start: start, End: -1}, parent: b, attrs: Span{Start: -1, End: -1}}
	b.children = append(b.children, child)
	return child
}

// exitList closes container while it is a list, so a non-item sibling can
// open next to it rather than inside it.
func (p *parser) exitList(container *block) *block {
	for container.kind == listBlock {
		container.close()
		container = container.parent
	}
	return container
}

// markLoose flips a list to loose when new content arrives after a blank
// line inside it. Only the deepest flagged list loosens: a blank deep in a
// nested list says nothing about the outer one. Trailing blanks never
// reach here, so they cannot loosen anything.
func (p *parser) markLoose(container *block) {
	var loosened, enclosing *block
	for b := p.doc; b != nil; {
		if b.kind == listBlock {
			enclosing = b
		}
		if b.blankSince && (b.kind == listBlock || b.kind == itemBlock) {
			b.blankSince = false
			loosened = enclosing
		}
		if b == container {
			break
		}
		next := b.lastChild()
		if !next.isOpen() {
			break
		}
		b = next
	}
	if loosened != nil {
		loosened.tight = false
	}
}

func (p *parser) matchContinuation(b *block, c *lineCursor) matchResult {
	switch b.kind {
	case blockQuoteBlock:
		if c.indent() >= codeBlockIndentLimit {
			return noMatch
		}
		c.consumeIndent(c.indent())
		if c.i >= c.nl || c.source[c.i] != '>' {
			return noMatch
		}
		c.i++
		if c.i < c.nl && (c.source[c.i] == ' ' || c.source[c.i] == '\t') {
			c.consumeIndent(1)
		}
		return matched

	case listBlock:
		// Lists delegate matching to their items.
		return matched

	case itemBlock:
		if c.blank() {
			if len(b.children) == 0 {
				// A marker with nothing after it followed by a
				// blank line ends the item.
				return noMatch
			}
			return matched
		}
		if c.indent() >= b.padding {
			c.consumeIndent(b.padding)
			return matched
		}
		return noMatch

	case footnoteDefBlock:
		if c.blank() {
			return matched
		}
		if c.indent() >= codeBlockIndentLimit {
			c.consumeIndent(codeBlockIndentLimit)
			return matched
		}
		return noMatch

	case paragraphBlock:
		if c.blank() {
			return noMatch
		}
		return matched

	case indentedCodeBlock:
		if c.blank() {
			b.content = append(b.content, Span{Start: c.nl, End: c.end})
			b.trailingBlanks++
			b.contentEnd = c.end
			return consumedLine
		}
		if c.indent() < codeBlockIndentLimit {
			return noMatch
		}
		c.consumeIndent(codeBlockIndentLimit)
		b.content = append(b.content, Span{Start: c.i, End: c.end})
		b.trailingBlanks = 0
		b.contentEnd = c.end
		return consumedLine

	case fencedCodeBlock:
		if c.indent() < codeBlockIndentLimit {
			j := c.i
			for j < c.nl && (c.source[j] == ' ' || c.source[j] == '\t') {
				j++
			}
			run := 0
			for j+run < c.nl && c.source[j+run] == b.fenceChar {
				run++
			}
			if run >= b.fenceLen && isBlank(c.source[j+run:c.nl]) {
				b.contentEnd = c.end
				b.close()
				return consumedLine
			}
		}
		c.consumeIndent(minInt(c.indent(), b.fenceIndent))
		b.content = append(b.content, Span{Start: c.i, End: c.end})
		b.contentEnd = c.end
		return consumedLine

	case htmlBlock:
		if b.htmlCond >= 6 {
			if c.blank() {
				b.close()
				return noMatch
			}
			b.content = append(b.content, Span{Start: c.i, End: c.end})
			b.contentEnd = c.end
			return consumedLine
		}
		b.content = append(b.content, Span{Start: c.i, End: c.end})
		b.contentEnd = c.end
		if htmlBlockEndsLine(c.rest(), b.htmlCond) {
			b.close()
		}
		return consumedLine

	case tableBlock:
		if c.blank() || startsNewBlock(c) {
			return noMatch
		}
		c.consumeIndent(c.indent())
		row := trimRightSpan(p.source, Span{Start: c.i, End: c.nl})
		b.content = append(b.content, row)
		b.contentEnd = c.end
		return consumedLine
	}
	return matched
}

// startsNewBlock reports whether the line begins a block structure that
// interrupts a table.
func startsNewBlock(c *lineCursor) bool {
	if c.indent() >= codeBlockIndentLimit {
		return false
	}
	rest := trimLeft(c.rest())
	if len(rest) == 0 {
		return false
	}
	switch rest[0] {
	case '>':
		return true
	case '#':
		return parseATXHeading(rest).level > 0
	case '`', '~':
		_, _, ok := scanFenceOpen(rest)
		return ok
	case '-', '_', '*':
		return parseThematicBreak(rest) >= 0
	}
	return false
}

// openNewBlocks looks for new block starts after continuation matching.
// It returns the deepest open container, whether any block was opened,
// and whether the line was consumed entirely.
func (p *parser) openNewBlocks(container *block, c *lineCursor) (_ *block, opened, done bool) {
	for {
		if c.blank() {
			return container, opened, false
		}
		indent := c.indent()
		if indent >= codeBlockIndentLimit {
			if p.openTip(container).kind == paragraphBlock && !opened {
				// An indented chunk cannot interrupt a paragraph.
				return container, opened, false
			}
			c.consumeIndent(codeBlockIndentLimit)
			container = p.exitList(container)
			code := p.openChild(container, indentedCodeBlock, c.i)
			code.content = append(code.content, Span{Start: c.i, End: c.end})
			code.contentEnd = c.end
			return code, true, true
		}

		c.consumeIndent(indent)
		rest := c.rest()
		if len(rest) == 0 {
			return container, opened, false
		}

		switch {
		case rest[0] == '>':
			container = p.exitList(container)
			quote := p.openChild(container, blockQuoteBlock, c.i)
			quote.contentEnd = c.end
			c.i++
			if c.i < c.nl && (c.source[c.i] == ' ' || c.source[c.i] == '\t') {
				c.consumeIndent(1)
			}
			container = quote
			opened = true
			continue

		case rest[0] == '#':
			h := parseATXHeading(rest)
			if h.level == 0 {
				break
			}
			container = p.exitList(container)
			heading := p.openChild(container, headingBlock, c.i)
			heading.level = h.level
			content := Span{Start: c.i + h.contentStart, End: c.i + h.contentEnd}
			content, heading.attrs = splitHeadingAttributes(p.source, content)
			if content.Len() > 0 {
				heading.content = append(heading.content, content)
			}
			heading.contentEnd = c.end
			heading.close()
			return heading, true, true

		case rest[0] == '`' || rest[0] == '~':
			fenceLen, infoStart, ok := scanFenceOpen(rest)
			if !ok {
				break
			}
			container = p.exitList(container)
			code := p.openChild(container, fencedCodeBlock, c.i)
			code.fenceChar = rest[0]
			code.fenceLen = fenceLen
			code.fenceIndent = indent
			code.info = trimSpan(p.source, Span{Start: c.i + infoStart, End: c.nl})
			code.contentEnd = c.end
			return code, true, true

		case (rest[0] == '-' || rest[0] == '_' || rest[0] == '*') && parseThematicBreak(rest) >= 0:
			container = p.exitList(container)
			tb := p.openChild(container, thematicBlock, c.i)
			tb.contentEnd = c.end
			tb.close()
			return tb, true, true

		case rest[0] == '[' && bytes.HasPrefix(rest, []byte("[^")):
			label, after, ok := scanFootnoteDefinition(rest)
			if !ok {
				break
			}
			container = p.exitList(container)
			def := p.openChild(container, footnoteDefBlock, c.i)
			def.label = Span{Start: c.i + label.Start, End: c.i + label.End}
			def.contentEnd = c.end
			c.i += after
			if c.i < c.nl && (c.source[c.i] == ' ' || c.source[c.i] == '\t') {
				c.consumeIndent(1)
			}
			container = def
			opened = true
			continue

		case rest[0] == '<':
			cond, ok := scanHTMLBlockStart(rest, p.openTip(container).kind == paragraphBlock && !opened)
			if !ok {
				break
			}
			container = p.exitList(container)
			html := p.openChild(container, htmlBlock, c.i)
			html.htmlCond = cond
			html.content = append(html.content, Span{Start: c.i, End: c.end})
			html.contentEnd = c.end
			if cond < 6 && htmlBlockEndsLine(rest, cond) {
				html.close()
			}
			return html, true, true

		default:
		}

		if m, ok := scanListMarker(rest); ok {
			if p.openTip(container).kind == paragraphBlock && !opened {
				// Only a bullet or a list starting at 1 with real
				// content can interrupt a paragraph.
				if (m.ordered && m.start != 1) || isBlank(rest[m.width:]) {
					return container, opened, false
				}
			}
			container = p.openListItem(container, m, indent, c)
			opened = true
			continue
		}

		return container, opened, false
	}
}

// openTip returns the deepest open block at or below container.
func (p *parser) openTip(container *block) *block {
	b := container
	for b.lastChild().isOpen() {
		b = b.lastChild()
	}
	return b
}

type listMarker struct {
	ordered bool
	start   uint64
	bullet  byte
	delim   byte
	width   int // marker bytes, padding excluded
}

// scanListMarker recognizes a bullet ("-", "+", "*") or ordered ("1.",
// "1)") list marker at the start of the line remainder.
func scanListMarker(rest []byte) (listMarker, bool) {
	var m listMarker
	switch rest[0] {
	case '-', '+', '*':
		m.bullet = rest[0]
		m.width = 1
	default:
		n := 0
		for n < len(rest) && n < 9 && rest[n] >= '0' && rest[n] <= '9' {
			m.start = m.start*10 + uint64(rest[n]-'0')
			n++
		}
		if n == 0 || n >= len(rest) || (rest[n] != '.' && rest[n] != ')') {
			return listMarker{}, false
		}
		m.ordered = true
		m.delim = rest[n]
		m.width = n + 1
	}
	if m.width < len(rest) && rest[m.width] != ' ' && rest[m.width] != '\t' {
		return listMarker{}, false
	}
	return m, true
}

// openListItem opens an item for the marker, reusing the enclosing list
// when the marker is compatible with it or starting a new one otherwise.
func (p *parser) openListItem(container *block, m listMarker, indent int, c *lineCursor) *block {
	markerStart := c.i
	c.i += m.width
	padding := 1
	if c.i < c.nl {
		before := c.column(c.i)
		ws := c.indent()
		if ws >= 1 && ws < 5 && !isBlank(c.rest()) {
			c.consumeIndent(ws)
			padding = c.column(c.i) - before
		} else {
			c.consumeIndent(minInt(ws, 1))
			padding = 1
		}
	}

	list := container
	if list.kind != listBlock || !list.isOpen() ||
		list.ordered != m.ordered || list.bullet != m.bullet || list.delim != m.delim {
		container = p.exitList(container)
		list = p.openChild(container, listBlock, markerStart)
		list.ordered = m.ordered
		list.startNum = m.start
		list.bullet = m.bullet
		list.delim = m.delim
		list.tight = true
	}
	list.contentEnd = c.end

	item := p.openChild(list, itemBlock, markerStart)
	item.padding = indent + m.width + padding
	item.contentEnd = c.end

	// Task list marker directly after the item marker.
	if task, checked, after, ok := scanTaskMarker(c.source, c.i, c.nl); ok {
		item.hasTask = true
		item.taskChecked = checked
		item.taskSpan = task
		c.i = after
	}
	return item
}

// scanTaskMarker recognizes "[ ]", "[x]", or "[X]" followed by whitespace
// at the start of an item's content.
func scanTaskMarker(source []byte, i, nl int) (span Span, checked bool, after int, ok bool) {
	if i+3 > nl || source[i] != '[' || source[i+2] != ']' {
		return Span{}, false, 0, false
	}
	switch source[i+1] {
	case ' ':
	case 'x', 'X':
		checked = true
	default:
		return Span{}, false, 0, false
	}
	if i+3 >= nl || (source[i+3] != ' ' && source[i+3] != '\t') {
		return Span{}, false, 0, false
	}
	return Span{Start: i, End: i + 3}, checked, i + 4, true
}

// handleBlank processes a line with no remaining text.
func (p *parser) handleBlank(chain []*block, n int) {
	tip := chain[len(chain)-1]
	if tip.kind == paragraphBlock || tip.kind == tableBlock {
		tip.close()
	}
	for _, b := range chain[:n] {
		if b.kind == listBlock || b.kind == itemBlock {
			b.blankSince = true
		}
	}
}

// addLineText appends the remaining text to an open leaf.
func (p *parser) addLineText(leaf *block, c *lineCursor) {
	c.consumeIndent(c.indent())
	switch leaf.kind {
	case tableBlock:
		leaf.content = append(leaf.content, trimRightSpan(p.source, Span{Start: c.i, End: c.nl}))
	default:
		leaf.content = append(leaf.content, Span{Start: c.i, End: c.nl})
	}
	leaf.contentEnd = c.end
}

// scanMetadataBlock recognizes a pluses-delimited metadata block at the
// very start of the document. The block must be closed to count.
func scanMetadataBlock(source []byte) (*block, bool) {
	c := newLineCursor(source, 0)
	if !bytes.Equal(trimRight(c.rest()), []byte("+++")) {
		return nil, false
	}
	meta := &block{kind: metadataBlock, span: Span{Start: 0, End: -1}}
	pos := c.end
	for pos < len(source) {
		c = newLineCursor(source, pos)
		if bytes.Equal(trimRight(c.rest()), []byte("+++")) {
			meta.span.End = c.end
			meta.contentEnd = c.end
			return meta, true
		}
		meta.content = append(meta.content, Span{Start: c.start, End: c.end})
		pos = c.end
	}
	return nil, false
}

type atxHeading struct {
	level        int // 1-6, zero when not a heading
	contentStart int
	contentEnd   int
}

// parseATXHeading attempts to parse the line remainder as an ATX heading.
// Offsets are relative to the start of the remainder.
func parseATXHeading(line []byte) atxHeading {
	var h atxHeading
	for h.level < len(line) && line[h.level] == '#' {
		h.level++
	}
	if h.level == 0 || h.level > 6 {
		return atxHeading{}
	}

	i := h.level
	if i >= len(line) {
		h.contentStart = i
		h.contentEnd = i
		return h
	}
	if line[i] != ' ' && line[i] != '\t' {
		return atxHeading{}
	}
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	h.contentStart = i

	// Trim trailing whitespace, then an optional closing hash run.
	h.contentEnd = len(line)
	for h.contentEnd > h.contentStart {
		if b := line[h.contentEnd-1]; b != ' ' && b != '\t' {
			break
		}
		h.contentEnd--
	}
	hashEnd := h.contentEnd
	for hashEnd > h.contentStart && line[hashEnd-1] == '#' {
		hashEnd--
	}
	if hashEnd < h.contentEnd && (hashEnd == h.contentStart || line[hashEnd-1] == ' ' || line[hashEnd-1] == '\t') {
		h.contentEnd = hashEnd
		for h.contentEnd > h.contentStart {
			if b := line[h.contentEnd-1]; b != ' ' && b != '\t' {
				break
			}
			h.contentEnd--
		}
	}
	return h
}

// splitHeadingAttributes strips a trailing "{...}" attribute block from a
// heading's content span. The returned attrs span covers the interior of
// the braces, or -1 offsets when there is none.
func splitHeadingAttributes(source []byte, content Span) (Span, Span) {
	none := Span{Start: -1, End: -1}
	if content.Len() < 2 || source[content.End-1] != '}' {
		return content, none
	}
	open := -1
	for i := content.End - 2; i >= content.Start; i-- {
		switch source[i] {
		case '{':
			if i > content.Start && source[i-1] == '\\' {
				return content, none
			}
			open = i
		case '}':
			if open < 0 {
				return content, none
			}
		}
		if open >= 0 {
			break
		}
	}
	if open < 0 {
		return content, none
	}
	attrs := Span{Start: open + 1, End: content.End - 1}
	content.End = open
	for content.End > content.Start {
		if b := source[content.End-1]; b != ' ' && b != '\t' {
			break
		}
		content.End--
	}
	return content, attrs
}

// parseThematicBreak reports the offset just past the last marker of a
// thematic break: three or more matching '-', '_' or '*' characters with
// only spaces and tabs between them, spanning the whole line remainder.
// It returns -1 otherwise. Leading indentation and the line terminator
// must already be stripped.
func parseThematicBreak(line []byte) int {
	var marker byte
	count, last := 0, -1
	for i := 0; i < len(line); i++ {
		switch b := line[i]; {
		case b == ' ' || b == '\t':
			continue
		case b != '-' && b != '_' && b != '*':
			return -1
		case marker == 0:
			marker = b
		case b != marker:
			return -1
		}
		count++
		last = i + 1
	}
	if count < 3 {
		return -1
	}
	return last
}

// setextLevel reports the heading level of a setext underline remainder,
// or zero.
func setextLevel(line []byte) int {
	if len(line) == 0 {
		return 0
	}
	want := line[0]
	if want != '=' && want != '-' {
		return 0
	}
	for _, b := range line {
		if b != want {
			return 0
		}
	}
	if want == '=' {
		return 1
	}
	return 2
}

// scanFenceOpen recognizes an opening code fence. It returns the fence
// length and the offset of the info string within the remainder.
func scanFenceOpen(rest []byte) (fenceLen, infoStart int, ok bool) {
	ch := rest[0]
	if ch != '`' && ch != '~' {
		return 0, 0, false
	}
	n := 0
	for n < len(rest) && rest[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, false
	}
	if ch == '`' && bytes.IndexByte(rest[n:], '`') >= 0 {
		// Info strings of backtick fences cannot contain backticks.
		return 0, 0, false
	}
	return n, n, true
}

// scanFootnoteDefinition recognizes "[^label]:" at the start of the
// remainder. Offsets are relative to the remainder.
func scanFootnoteDefinition(rest []byte) (label Span, after int, ok bool) {
	if !bytes.HasPrefix(rest, []byte("[^")) {
		return Span{}, 0, false
	}
	i := 2
	for i < len(rest) && rest[i] != ']' {
		if rest[i] == ' ' || rest[i] == '\t' || rest[i] == '[' || rest[i] == '^' {
			return Span{}, 0, false
		}
		i++
	}
	if i == 2 || i+1 >= len(rest) || rest[i] != ']' || rest[i+1] != ':' {
		return Span{}, 0, false
	}
	return Span{Start: 2, End: i}, i + 2, true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func trimLeft(b []byte) []byte {
	return bytes.TrimLeft(b, " \t")
}

func trimRight(b []byte) []byte {
	return bytes.TrimRight(b, " \t")
}

// trimSpan narrows a span so it excludes surrounding whitespace.
func trimSpan(source []byte, s Span) Span {
	for s.Start < s.End && (source[s.Start] == ' ' || source[s.Start] == '\t') {
		s.Start++
	}
	return trimRightSpan(source, s)
}

func trimRightSpan(source []byte, s Span) Span {
	for s.End > s.Start {
		if b := source[s.End-1]; b != ' ' && b != '\t' {
			break
		}
		s.End--
	}
	return s
}
