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

// Package cmark tokenizes Markdown into a flat, document-ordered stream of
// (span, token) pairs.
//
// The dialect is CommonMark plus the extensions the event model needs:
// tables, footnotes, strikethrough, task lists, smart punctuation, heading
// attributes, and pluses-delimited metadata blocks.
// The grammar is total: any byte sequence that does not match a structural
// construct is literal text, so tokenizing never fails.
//
// Text tokens carry an explicit discriminant for substitutions.
// A token with Substituted set conveys replacement text that differs from
// the source bytes its span refers to (a decoded HTML entity or a smart
// punctuation replacement); any other text token is backed verbatim by
// source[Span.Start:Span.End].
package cmark

// Span is a half-open [Start, End) byte range into the tokenized source.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// TokenKind is an enumeration of values carried by [Token.Kind].
type TokenKind uint8

const (
	// StartToken opens the element described by [Token.Tag].
	StartToken TokenKind = 1 + iota
	// EndToken closes the element; only [Tag.Kind] is set.
	EndToken
	// TextToken is a run of text; see the package comment for the
	// borrowed-versus-substituted discriminant.
	TextToken
	// CodeToken is a code span. Its span includes the backtick
	// delimiters on both sides.
	CodeToken
	// HTMLToken is one line of an HTML block.
	HTMLToken
	// InlineHTMLToken is a raw HTML construct inside inline content.
	InlineHTMLToken
	// FootnoteReferenceToken is a "[^label]" reference.
	FootnoteReferenceToken
	// SoftBreakToken is a line ending inside inline content.
	SoftBreakToken
	// HardBreakToken is a forced line break (trailing spaces or a
	// trailing backslash).
	HardBreakToken
	// RuleToken is a thematic break.
	RuleToken
	// TaskListMarkerToken is a "[ ]" or "[x]" marker at the start of a
	// list item; [Token.Checked] carries its state.
	TaskListMarkerToken
)

// Token is one unit of the tokenizer's output stream.
type Token struct {
	Span Span
	Kind TokenKind

	// Tag carries the element payload of a StartToken.
	// An EndToken sets only Tag.Kind.
	Tag Tag

	// Substituted marks a TextToken whose text is Replacement
	// rather than the source bytes under Span.
	Substituted bool
	Replacement string

	// Checked is the state of a TaskListMarkerToken.
	Checked bool
}

// TagKind enumerates the element kinds the tokenizer produces.
type TagKind uint8

const (
	ParagraphKind TagKind = 1 + iota
	HeadingKind
	BlockQuoteKind
	CodeBlockKind
	HTMLBlockKind
	ListKind
	ItemKind
	FootnoteDefinitionKind
	TableKind
	TableHeadKind
	TableRowKind
	TableCellKind
	EmphasisKind
	StrongKind
	StrikethroughKind
	LinkKind
	ImageKind
	MetadataBlockKind
)

// Tag is the element payload of a start token.
// String-bearing fields are byte slices; they may alias the source buffer
// or hold freshly decoded bytes, so consumers that outlive the buffer must
// copy them.
type Tag struct {
	Kind TagKind

	// Heading fields. ID is nil when the heading has no identifier.
	Level   int
	ID      []byte
	Classes [][]byte
	Attrs   []Attribute

	// Code block fields.
	Fenced   bool
	Language []byte

	// List fields. Start is meaningful only for ordered lists.
	Ordered bool
	Start   uint64

	// Footnote definition field.
	Label []byte

	// Table field.
	Alignments []Alignment

	// Link and image fields.
	LinkType LinkType
	Dest     []byte
	Title    []byte

	// Metadata block field.
	Meta MetadataStyle
}

// Attribute is one custom attribute from a heading attribute block.
type Attribute struct {
	Key      []byte
	Value    []byte
	HasValue bool
}

// Alignment is the text alignment of a table column.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// LinkType describes how a link or image was written.
// Reference-style links are not resolved by this tokenizer,
// so only the inline and autolink variants are produced.
type LinkType uint8

const (
	LinkInline LinkType = 1 + iota
	LinkAutolink
	LinkEmail
)

// MetadataStyle is the delimiter style of a metadata block.
type MetadataStyle uint8

const (
	// MetadataPluses is metadata fenced by "+++" lines,
	// the only style this tokenizer recognizes.
	MetadataPluses MetadataStyle = 1 + iota
)

// Tokenize converts source into its token stream.
// Spans index into source and always fall on UTF-8 boundaries.
func Tokenize(source []byte) []Token {
	doc := parseBlocks(source)
	f := &flattener{source: source}
	f.children(doc, false)
	return f.tokens
}
