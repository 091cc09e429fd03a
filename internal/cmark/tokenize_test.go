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
	"testing"

	"github.com/stretchr/testify/require"
)

func span(start, end int) Span {
	return Span{Start: start, End: end}
}

func text(start, end int) Token {
	return Token{Span: span(start, end), Kind: TextToken}
}

func start(s Span, tag Tag) Token {
	return Token{Span: s, Kind: StartToken, Tag: tag}
}

func end(s Span, kind TagKind) Token {
	return Token{Span: s, Kind: EndToken, Tag: Tag{Kind: kind}}
}

func TestTokenizeParagraph(t *testing.T) {
	got := Tokenize([]byte("hello world\n"))
	want := []Token{
		start(span(0, 12), Tag{Kind: ParagraphKind}),
		text(0, 11),
		end(span(0, 12), ParagraphKind),
	}
	require.Equal(t, want, got)
}

func TestTokenizeATXHeadingWithAttributes(t *testing.T) {
	got := Tokenize([]byte("# Hello {#id .cls}\n"))
	want := []Token{
		start(span(0, 19), Tag{
			Kind:    HeadingKind,
			Level:   1,
			ID:      []byte("id"),
			Classes: [][]byte{[]byte("cls")},
		}),
		text(2, 7),
		end(span(0, 19), HeadingKind),
	}
	require.Equal(t, want, got)
}

func TestTokenizeSetextHeading(t *testing.T) {
	got := Tokenize([]byte("Title\n=====\n"))
	want := []Token{
		start(span(0, 12), Tag{Kind: HeadingKind, Level: 1}),
		text(0, 5),
		end(span(0, 12), HeadingKind),
	}
	require.Equal(t, want, got)
}

func TestTokenizeThematicBreak(t *testing.T) {
	got := Tokenize([]byte("---\n"))
	want := []Token{{Span: span(0, 4), Kind: RuleToken}}
	require.Equal(t, want, got)
}

func TestParseThematicBreak(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"---", 3},
		{"***", 3},
		{"_ _ _", 5},
		{"- - -\t", 5},
		{"--", -1},
		{"-*-", -1},
		{"--- x", -1},
		{"", -1},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, parseThematicBreak([]byte(tt.line)), "line %q", tt.line)
	}
}

func TestTokenizeFencedCode(t *testing.T) {
	got := Tokenize([]byte("```rust\nlet x = 1;\n```\n"))
	want := []Token{
		start(span(0, 23), Tag{Kind: CodeBlockKind, Fenced: true, Language: []byte("rust")}),
		text(8, 19),
		end(span(0, 23), CodeBlockKind),
	}
	require.Equal(t, want, got)
}

func TestTokenizeIndentedCode(t *testing.T) {
	got := Tokenize([]byte("    x := 1\n"))
	want := []Token{
		start(span(4, 11), Tag{Kind: CodeBlockKind}),
		text(4, 11),
		end(span(4, 11), CodeBlockKind),
	}
	require.Equal(t, want, got)
}

func TestTokenizeBlockQuoteSoftBreak(t *testing.T) {
	got := Tokenize([]byte("> quote line\n> second\n"))
	want := []Token{
		start(span(0, 22), Tag{Kind: BlockQuoteKind}),
		start(span(2, 22), Tag{Kind: ParagraphKind}),
		text(2, 12),
		{Span: span(12, 15), Kind: SoftBreakToken},
		text(15, 21),
		end(span(2, 22), ParagraphKind),
		end(span(0, 22), BlockQuoteKind),
	}
	require.Equal(t, want, got)
}

func TestTokenizeTightList(t *testing.T) {
	got := Tokenize([]byte("- one\n- two\n"))
	want := []Token{
		start(span(0, 12), Tag{Kind: ListKind}),
		start(span(0, 6), Tag{Kind: ItemKind}),
		text(2, 5),
		end(span(0, 6), ItemKind),
		start(span(6, 12), Tag{Kind: ItemKind}),
		text(8, 11),
		end(span(6, 12), ItemKind),
		end(span(0, 12), ListKind),
	}
	require.Equal(t, want, got)
}

func TestTokenizeLooseList(t *testing.T) {
	// The blank line between items makes the list loose, so paragraphs
	// keep their start/end pairs.
	got := Tokenize([]byte("- one\n\n- two\n"))
	want := []Token{
		start(span(0, 13), Tag{Kind: ListKind}),
		start(span(0, 6), Tag{Kind: ItemKind}),
		start(span(2, 6), Tag{Kind: ParagraphKind}),
		text(2, 5),
		end(span(2, 6), ParagraphKind),
		end(span(0, 6), ItemKind),
		start(span(7, 13), Tag{Kind: ItemKind}),
		start(span(9, 13), Tag{Kind: ParagraphKind}),
		text(9, 12),
		end(span(9, 13), ParagraphKind),
		end(span(7, 13), ItemKind),
		end(span(0, 13), ListKind),
	}
	require.Equal(t, want, got)
}

func TestTokenizeOrderedListStart(t *testing.T) {
	got := Tokenize([]byte("3. three\n4. four\n"))
	require.NotEmpty(t, got)
	tag := got[0].Tag
	require.Equal(t, ListKind, tag.Kind)
	require.True(t, tag.Ordered)
	require.Equal(t, uint64(3), tag.Start)
}

func TestTokenizeTaskListMarkers(t *testing.T) {
	got := Tokenize([]byte("- [x] done\n- [ ] todo\n"))
	want := []Token{
		start(span(0, 22), Tag{Kind: ListKind}),
		start(span(0, 11), Tag{Kind: ItemKind}),
		{Span: span(2, 5), Kind: TaskListMarkerToken, Checked: true},
		text(6, 10),
		end(span(0, 11), ItemKind),
		start(span(11, 22), Tag{Kind: ItemKind}),
		{Span: span(13, 16), Kind: TaskListMarkerToken},
		text(17, 21),
		end(span(11, 22), ItemKind),
		end(span(0, 22), ListKind),
	}
	require.Equal(t, want, got)
}

func TestTokenizeTable(t *testing.T) {
	got := Tokenize([]byte("| a | b |\n| - | - |\n| c | d |\n"))
	aligns := []Alignment{AlignNone, AlignNone}
	want := []Token{
		start(span(0, 30), Tag{Kind: TableKind, Alignments: aligns}),
		start(span(0, 9), Tag{Kind: TableHeadKind}),
		start(span(2, 3), Tag{Kind: TableCellKind}),
		text(2, 3),
		end(span(2, 3), TableCellKind),
		start(span(6, 7), Tag{Kind: TableCellKind}),
		text(6, 7),
		end(span(6, 7), TableCellKind),
		end(span(0, 9), TableHeadKind),
		start(span(20, 29), Tag{Kind: TableRowKind}),
		start(span(22, 23), Tag{Kind: TableCellKind}),
		text(22, 23),
		end(span(22, 23), TableCellKind),
		start(span(26, 27), Tag{Kind: TableCellKind}),
		text(26, 27),
		end(span(26, 27), TableCellKind),
		end(span(20, 29), TableRowKind),
		end(span(0, 30), TableKind),
	}
	require.Equal(t, want, got)
}

func TestTokenizeTableAlignments(t *testing.T) {
	got := Tokenize([]byte("| a | b | c |\n| :- | :-: | -: |\n"))
	require.NotEmpty(t, got)
	require.Equal(t, TableKind, got[0].Tag.Kind)
	require.Equal(t, []Alignment{AlignLeft, AlignCenter, AlignRight}, got[0].Tag.Alignments)
}

func TestTokenizeHTMLBlock(t *testing.T) {
	got := Tokenize([]byte("<div>\nhello\n</div>\n"))
	want := []Token{
		start(span(0, 19), Tag{Kind: HTMLBlockKind}),
		{Span: span(0, 6), Kind: HTMLToken},
		{Span: span(6, 12), Kind: HTMLToken},
		{Span: span(12, 19), Kind: HTMLToken},
		end(span(0, 19), HTMLBlockKind),
	}
	require.Equal(t, want, got)
}

func TestTokenizeFootnoteDefinition(t *testing.T) {
	got := Tokenize([]byte("[^1]: note\n"))
	want := []Token{
		start(span(0, 11), Tag{Kind: FootnoteDefinitionKind, Label: []byte("1")}),
		start(span(6, 11), Tag{Kind: ParagraphKind}),
		text(6, 10),
		end(span(6, 11), ParagraphKind),
		end(span(0, 11), FootnoteDefinitionKind),
	}
	require.Equal(t, want, got)
}

func TestTokenizeMetadataBlock(t *testing.T) {
	got := Tokenize([]byte("+++\na = 1\n+++\nrest\n"))
	want := []Token{
		start(span(0, 14), Tag{Kind: MetadataBlockKind, Meta: MetadataPluses}),
		text(4, 10),
		end(span(0, 14), MetadataBlockKind),
		start(span(14, 19), Tag{Kind: ParagraphKind}),
		text(14, 18),
		end(span(14, 19), ParagraphKind),
	}
	require.Equal(t, want, got)
}

func TestTokenizeMetadataOnlyAtStart(t *testing.T) {
	got := Tokenize([]byte("para\n\n+++\na = 1\n+++\n"))
	for _, tok := range got {
		require.NotEqual(t, MetadataBlockKind, tok.Tag.Kind,
			"metadata delimiters past the document start must not form a metadata block")
	}
}

func TestTokenizeEmpty(t *testing.T) {
	require.Empty(t, Tokenize(nil))
	require.Empty(t, Tokenize([]byte("\n\n")))
}

func TestTokenizeListInterruptedByHeading(t *testing.T) {
	got := Tokenize([]byte("- item\n\n# head\n"))
	var kinds []TagKind
	for _, tok := range got {
		if tok.Kind == StartToken {
			kinds = append(kinds, tok.Tag.Kind)
		}
	}
	require.Equal(t, []TagKind{ListKind, ItemKind, HeadingKind}, kinds)
}
