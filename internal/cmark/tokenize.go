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

// flattener walks the block tree and emits the flat token stream,
// running the inline parser over each leaf that carries inline content.
type flattener struct {
	source []byte
	tokens []Token
}

func (f *flattener) children(b *block, tight bool) {
	for _, child := range b.children {
		f.flatten(child, tight)
	}
}

func (f *flattener) flatten(b *block, tight bool) {
	switch b.kind {
	case paragraphBlock:
		if tight {
			// Paragraphs in tight list items contribute bare inline
			// content.
			f.inlineContent(b.content)
			return
		}
		f.start(b.span, Tag{Kind: ParagraphKind})
		f.inlineContent(b.content)
		f.end(b.span, ParagraphKind)

	case headingBlock:
		tag := Tag{Kind: HeadingKind, Level: b.level}
		if b.attrs.Start >= 0 {
			tag.ID, tag.Classes, tag.Attrs = parseHeadingAttributes(f.source, b.attrs)
		}
		f.start(b.span, tag)
		f.inlineContent(b.content)
		f.end(b.span, HeadingKind)

	case thematicBlock:
		f.tokens = append(f.tokens, Token{Span: b.span, Kind: RuleToken})

	case indentedCodeBlock:
		f.start(b.span, Tag{Kind: CodeBlockKind})
		f.rawLines(b.content, TextToken)
		f.end(b.span, CodeBlockKind)

	case fencedCodeBlock:
		tag := Tag{Kind: CodeBlockKind, Fenced: true}
		if !b.info.IsEmpty() {
			tag.Language = unescapeBytes(f.source[b.info.Start:b.info.End])
		}
		f.start(b.span, tag)
		f.rawLines(b.content, TextToken)
		f.end(b.span, CodeBlockKind)

	case htmlBlock:
		f.start(b.span, Tag{Kind: HTMLBlockKind})
		f.rawLines(b.content, HTMLToken)
		f.end(b.span, HTMLBlockKind)

	case blockQuoteBlock:
		f.start(b.span, Tag{Kind: BlockQuoteKind})
		f.children(b, false)
		f.end(b.span, BlockQuoteKind)

	case listBlock:
		tag := Tag{Kind: ListKind, Ordered: b.ordered, Start: b.startNum}
		f.start(b.span, tag)
		f.children(b, b.tight)
		f.end(b.span, ListKind)

	case itemBlock:
		f.start(b.span, Tag{Kind: ItemKind})
		if b.hasTask {
			f.tokens = append(f.tokens, Token{
				Span: b.taskSpan, Kind: TaskListMarkerToken, Checked: b.taskChecked,
			})
		}
		f.children(b, tight)
		f.end(b.span, ItemKind)

	case footnoteDefBlock:
		tag := Tag{Kind: FootnoteDefinitionKind, Label: f.source[b.label.Start:b.label.End]}
		f.start(b.span, tag)
		f.children(b, false)
		f.end(b.span, FootnoteDefinitionKind)

	case tableBlock:
		f.flattenTable(b)

	case metadataBlock:
		f.start(b.span, Tag{Kind: MetadataBlockKind, Meta: MetadataPluses})
		f.rawLines(b.content, TextToken)
		f.end(b.span, MetadataBlockKind)
	}
}

func (f *flattener) flattenTable(b *block) {
	f.start(b.span, Tag{Kind: TableKind, Alignments: b.aligns})

	header := b.content[0]
	f.start(header, Tag{Kind: TableHeadKind})
	f.flattenRow(header, len(b.aligns))
	f.end(header, TableHeadKind)

	for _, row := range b.content[1:] {
		f.start(row, Tag{Kind: TableRowKind})
		f.flattenRow(row, len(b.aligns))
		f.end(row, TableRowKind)
	}
	f.end(b.span, TableKind)
}

// flattenRow emits the cells of one row, padded or truncated to the
// table's column count.
func (f *flattener) flattenRow(row Span, columns int) {
	cells := splitRowCells(f.source, row)
	if len(cells) > columns {
		cells = cells[:columns]
	}
	for len(cells) < columns {
		cells = append(cells, Span{Start: row.End, End: row.End})
	}
	for _, cell := range cells {
		f.start(cell, Tag{Kind: TableCellKind})
		if !cell.IsEmpty() {
			f.inlineContent([]Span{cell})
		}
		f.end(cell, TableCellKind)
	}
}

// rawLines emits one borrowed token per verbatim content line.
func (f *flattener) rawLines(lines []Span, kind TokenKind) {
	for _, line := range lines {
		f.tokens = append(f.tokens, Token{Span: line, Kind: kind})
	}
}

func (f *flattener) inlineContent(lines []Span) {
	f.inlineNodes(parseInlines(f.source, lines))
}

func (f *flattener) inlineNodes(nodes []*inlineNode) {
	for _, n := range nodes {
		switch n.kind {
		case nodeText:
			f.tokens = append(f.tokens, Token{Span: n.span, Kind: TextToken})
		case nodeSubst:
			f.tokens = append(f.tokens, Token{
				Span: n.span, Kind: TextToken,
				Substituted: true, Replacement: n.replacement,
			})
		case nodeCode:
			f.tokens = append(f.tokens, Token{Span: n.span, Kind: CodeToken})
		case nodeHTML:
			f.tokens = append(f.tokens, Token{Span: n.span, Kind: InlineHTMLToken})
		case nodeFootnote:
			f.tokens = append(f.tokens, Token{Span: n.span, Kind: FootnoteReferenceToken})
		case nodeSoftBreak:
			f.tokens = append(f.tokens, Token{Span: n.span, Kind: SoftBreakToken})
		case nodeHardBreak:
			f.tokens = append(f.tokens, Token{Span: n.span, Kind: HardBreakToken})
		case nodeEmphasis:
			f.wrapInline(n, EmphasisKind, Tag{Kind: EmphasisKind})
		case nodeStrong:
			f.wrapInline(n, StrongKind, Tag{Kind: StrongKind})
		case nodeStrike:
			f.wrapInline(n, StrikethroughKind, Tag{Kind: StrikethroughKind})
		case nodeLink:
			f.wrapInline(n, LinkKind, Tag{
				Kind: LinkKind, LinkType: n.linkType, Dest: n.dest, Title: n.title,
			})
		case nodeImage:
			f.wrapInline(n, ImageKind, Tag{
				Kind: ImageKind, LinkType: n.linkType, Dest: n.dest, Title: n.title,
			})
		}
	}
}

func (f *flattener) wrapInline(n *inlineNode, kind TagKind, tag Tag) {
	f.start(n.span, tag)
	f.inlineNodes(n.children)
	f.end(n.span, kind)
}

func (f *flattener) start(span Span, tag Tag) {
	f.tokens = append(f.tokens, Token{Span: span, Kind: StartToken, Tag: tag})
}

func (f *flattener) end(span Span, kind TagKind) {
	f.tokens = append(f.tokens, Token{Span: span, Kind: EndToken, Tag: Tag{Kind: kind}})
}

// parseHeadingAttributes splits the interior of a "{...}" heading
// attribute block into an identifier, classes, and custom attributes.
// When several "#id" words appear, the last one wins.
func parseHeadingAttributes(source []byte, attrs Span) (id []byte, classes [][]byte, custom []Attribute) {
	for _, word := range bytes.Fields(source[attrs.Start:attrs.End]) {
		switch {
		case word[0] == '#':
			if len(word) > 1 {
				id = word[1:]
			}
		case word[0] == '.':
			if len(word) > 1 {
				classes = append(classes, word[1:])
			}
		default:
			if eq := bytes.IndexByte(word, '='); eq >= 0 {
				custom = append(custom, Attribute{
					Key: word[:eq], Value: word[eq+1:], HasValue: true,
				})
			} else {
				custom = append(custom, Attribute{Key: word})
			}
		}
	}
	return id, classes, custom
}
