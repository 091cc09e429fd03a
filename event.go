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

package markdown

import "fmt"

// Span is a half-open [Start, End) byte range into the source buffer
// a parse was given.
// Spans always fall on UTF-8 boundaries of that buffer.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers zero bytes.
func (s Span) IsEmpty() bool {
	return s.Start >= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// EventKind is an enumeration of values returned by [Event.Kind].
type EventKind uint8

const (
	// StartEvent marks the start of a tagged element.
	// Events yielded after it and before its matching EndEvent
	// are inside the element.
	// Start and end events are guaranteed to be balanced.
	StartEvent EventKind = 1 + iota
	// EndEvent marks the end of a tagged element.
	// It carries only the tag kind of the element it closes.
	EndEvent
	// TextEvent is text that uses the associated span
	// of the source the events were parsed from.
	TextEvent
	// SubstitutedTextEvent is text that differs from the source bytes
	// its span refers to, typically due to substitution of HTML entities
	// or smart punctuation.
	// The replacement text is carried in [Event.Text].
	SubstitutedTextEvent
	// CodeEvent is an inline code node.
	// Its span excludes the one-byte backtick delimiter on each side.
	CodeEvent
	// HTMLEvent is an HTML node.
	HTMLEvent
	// InlineHTMLEvent is an inline HTML node.
	InlineHTMLEvent
	// FootnoteReferenceEvent is a reference to a footnote,
	// which may or may not be defined by an element with a
	// [FootnoteDefinitionTag] tag.
	// Definitions and references to them may occur in any order.
	FootnoteReferenceEvent
	// SoftBreakEvent is a soft line break.
	SoftBreakEvent
	// HardBreakEvent is a hard line break.
	HardBreakEvent
	// RuleEvent is a horizontal ruler.
	RuleEvent
	// TaskListMarkerEvent is a task list marker.
	// [Event.Checked] is true when the task is checked.
	TaskListMarkerEvent
)

func (kind EventKind) String() string {
	switch kind {
	case StartEvent:
		return "Start"
	case EndEvent:
		return "End"
	case TextEvent:
		return "Text"
	case SubstitutedTextEvent:
		return "SubstitutedText"
	case CodeEvent:
		return "Code"
	case HTMLEvent:
		return "Html"
	case InlineHTMLEvent:
		return "InlineHtml"
	case FootnoteReferenceEvent:
		return "FootnoteReference"
	case SoftBreakEvent:
		return "SoftBreak"
	case HardBreakEvent:
		return "HardBreak"
	case RuleEvent:
		return "Rule"
	case TaskListMarkerEvent:
		return "TaskListMarker"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(kind))
	}
}

// Event is one unit of the normalized output stream.
// Every event is self-contained:
// no field borrows from the source buffer,
// so a parse result can outlive any particular copy of the input
// as long as ranges are only resolved against an identical buffer.
type Event struct {
	// Span is the source range the event covers.
	Span Span
	// Kind discriminates the remaining fields.
	Kind EventKind
	// Tag is the element payload of a StartEvent.
	Tag Tag
	// End is the tag kind closed by an EndEvent.
	End TagKind
	// Text is the replacement text of a SubstitutedTextEvent.
	// It is the decoded text, not a slice of the source.
	Text string
	// Checked is the state of a TaskListMarkerEvent.
	Checked bool
}

// TagKind is an enumeration of the element kinds a [Tag] can describe.
type TagKind uint8

const (
	ParagraphTag TagKind = 1 + iota
	HeadingTag
	BlockQuoteTag
	CodeBlockTag
	HTMLBlockTag
	ListTag
	ItemTag
	FootnoteDefinitionTag
	TableTag
	TableHeadTag
	TableRowTag
	TableCellTag
	EmphasisTag
	StrongTag
	StrikethroughTag
	LinkTag
	ImageTag
	MetadataBlockTag
	DefinitionListTag
	DefinitionListTitleTag
	DefinitionListDefinitionTag
)

func (kind TagKind) String() string {
	switch kind {
	case ParagraphTag:
		return "Paragraph"
	case HeadingTag:
		return "Heading"
	case BlockQuoteTag:
		return "BlockQuote"
	case CodeBlockTag:
		return "CodeBlock"
	case HTMLBlockTag:
		return "HtmlBlock"
	case ListTag:
		return "List"
	case ItemTag:
		return "Item"
	case FootnoteDefinitionTag:
		return "FootnoteDefinition"
	case TableTag:
		return "Table"
	case TableHeadTag:
		return "TableHead"
	case TableRowTag:
		return "TableRow"
	case TableCellTag:
		return "TableCell"
	case EmphasisTag:
		return "Emphasis"
	case StrongTag:
		return "Strong"
	case StrikethroughTag:
		return "Strikethrough"
	case LinkTag:
		return "Link"
	case ImageTag:
		return "Image"
	case MetadataBlockTag:
		return "MetadataBlock"
	case DefinitionListTag:
		return "DefinitionList"
	case DefinitionListTitleTag:
		return "DefinitionListTitle"
	case DefinitionListDefinitionTag:
		return "DefinitionListDefinition"
	default:
		return fmt.Sprintf("TagKind(%d)", uint8(kind))
	}
}

// Tag describes a structural element that has a StartEvent/EndEvent pair.
// Kind discriminates which of the remaining fields are meaningful;
// all string-bearing fields are owned copies.
type Tag struct {
	Kind TagKind

	// Heading fields.
	// ID is the identifier from a trailing attribute block,
	// empty when the heading has none.
	Level   int
	ID      string
	Classes []string
	Attrs   []Attribute

	// CodeBlock field.
	CodeBlock CodeBlockKind

	// List fields.
	// Start is the number of the first item and is
	// meaningful only when Ordered is true.
	Ordered bool
	Start   uint64

	// FootnoteDefinition field: the label the footnote
	// can be referred to by.
	Label string

	// Table field: the text alignment of each column.
	Alignments []Alignment

	// Link and Image fields.
	// RefID is the identifier of reference links,
	// e.g. "world" in the link "[hello][world]".
	LinkType LinkType
	DestURL  string
	Title    string
	RefID    string

	// MetadataBlock field.
	Metadata MetadataBlockKind
}

// Attribute is a custom attribute from a heading attribute block.
// HasValue distinguishes a bare attribute ("myattr")
// from one with an empty value ("myattr=").
type Attribute struct {
	Key      string
	Value    string
	HasValue bool
}

// CodeBlockKind describes a code block.
// The zero value is an indented code block.
type CodeBlockKind struct {
	Fenced bool
	// Language is the fence info string, which may be empty.
	// It is meaningful only when Fenced is true.
	Language string
}

// Alignment is the text alignment of a table column.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignNone:
		return "None"
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	default:
		return fmt.Sprintf("Alignment(%d)", uint8(a))
	}
}

// LinkType describes how a link or image was written.
type LinkType uint8

const (
	// LinkInline is an inline link like "[foo](bar)".
	LinkInline LinkType = 1 + iota
	// LinkReference is a reference link like "[foo][bar]".
	LinkReference
	// LinkReferenceUnknown is a reference link whose label is undefined.
	LinkReferenceUnknown
	// LinkCollapsed is a collapsed link like "[foo][]".
	LinkCollapsed
	// LinkCollapsedUnknown is a collapsed link whose label is undefined.
	LinkCollapsedUnknown
	// LinkShortcut is a shortcut link like "[foo]".
	LinkShortcut
	// LinkShortcutUnknown is a shortcut link whose label is undefined.
	LinkShortcutUnknown
	// LinkAutolink is an automatically detected link,
	// either written as "<https://example.com>" or
	// found as a bare URL in plain text.
	LinkAutolink
	// LinkEmail is an email address in an autolink like "<john@example.org>".
	LinkEmail
)

// MetadataBlockKind describes the delimiter style of a metadata block.
type MetadataBlockKind uint8

const (
	// YAMLStyleMetadata is metadata fenced by "---" lines.
	YAMLStyleMetadata MetadataBlockKind = 1 + iota
	// PlusesStyleMetadata is metadata fenced by "+++" lines.
	PlusesStyleMetadata
)
