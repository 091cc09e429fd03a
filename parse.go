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

// Package markdown converts Markdown text into a flat, range-annotated
// stream of semantic events.
//
// [Parse] normalizes the underlying tokenizer's output: metadata blocks are
// suppressed, substituted text (decoded HTML entities, smart punctuation)
// is coalesced into runs that still point at their source ranges, bare URLs
// in plain text are autolinked, and code span delimiters are trimmed.
// The grammar is total; parsing always succeeds.
//
// Spans index into the exact buffer passed in. Callers that want to slice
// text back out of an event must retain that buffer.
package markdown

import (
	"strings"

	"github.com/editkit/markdown/internal/cmark"
)

// Parse converts source into its event stream and the set of fenced code
// block languages it mentions (including the empty string for bare fences).
//
// Start/end events are balanced and properly nested. The spans of text-like
// events (Text, SubstitutedText, Code, Html, InlineHtml), read in emission
// order, never overlap.
func Parse(source []byte) ([]Event, map[string]bool) {
	var events []Event
	languages := make(map[string]bool)
	// linkDepth counts enclosing explicit link and image elements;
	// text inside them is never scanned for autolinks.
	linkDepth := 0
	withinMetadata := false
	var pending substitutedRun

	for _, tok := range cmark.Tokenize(source) {
		if withinMetadata {
			if tok.Kind == cmark.EndToken && tok.Tag.Kind == cmark.MetadataBlockKind {
				withinMetadata = false
			}
			continue
		}
		if tok.Kind != cmark.TextToken {
			events = pending.flush(events)
		}
		span := Span{Start: tok.Span.Start, End: tok.Span.End}
		switch tok.Kind {
		case cmark.StartToken:
			tag := convertTag(tok.Tag)
			switch tag.Kind {
			case LinkTag, ImageTag:
				linkDepth++
			case MetadataBlockTag:
				// The block's interior is suppressed entirely,
				// the start/end pair included.
				withinMetadata = true
				continue
			case CodeBlockTag:
				if tag.CodeBlock.Fenced {
					languages[tag.CodeBlock.Language] = true
				}
			}
			events = append(events, Event{Span: span, Kind: StartEvent, Tag: tag})
		case cmark.EndToken:
			kind := convertTagKind(tok.Tag.Kind)
			if (kind == LinkTag || kind == ImageTag) && linkDepth > 0 {
				linkDepth--
			}
			events = append(events, Event{Span: span, Kind: EndEvent, End: kind})
		case cmark.TextToken:
			if tok.Substituted {
				verifySubstitution(source, tok)
				if len(pending.chunks) == 0 {
					pending.span.Start = span.Start
				}
				pending.span.End = span.End
				pending.chunks = append(pending.chunks, tok.Replacement)
				continue
			}
			events = pending.flush(events)
			cursor := span.Start
			if linkDepth == 0 {
				for _, link := range findLinks(source, span) {
					if link.Start > cursor {
						events = append(events, Event{Span: Span{Start: cursor, End: link.Start}, Kind: TextEvent})
					}
					events = append(events,
						Event{Span: link, Kind: StartEvent, Tag: Tag{
							Kind:     LinkTag,
							LinkType: LinkAutolink,
							DestURL:  string(source[link.Start:link.End]),
						}},
						Event{Span: link, Kind: TextEvent},
						Event{Span: link, Kind: EndEvent, End: LinkTag},
					)
					cursor = link.End
				}
			}
			if cursor < span.End {
				events = append(events, Event{Span: Span{Start: cursor, End: span.End}, Kind: TextEvent})
			}
		case cmark.CodeToken:
			// Strip the one-byte delimiter on each side.
			span.Start++
			span.End--
			events = append(events, Event{Span: span, Kind: CodeEvent})
		case cmark.HTMLToken:
			events = append(events, Event{Span: span, Kind: HTMLEvent})
		case cmark.InlineHTMLToken:
			events = append(events, Event{Span: span, Kind: InlineHTMLEvent})
		case cmark.FootnoteReferenceToken:
			events = append(events, Event{Span: span, Kind: FootnoteReferenceEvent})
		case cmark.SoftBreakToken:
			events = append(events, Event{Span: span, Kind: SoftBreakEvent})
		case cmark.HardBreakToken:
			events = append(events, Event{Span: span, Kind: HardBreakEvent})
		case cmark.RuleToken:
			events = append(events, Event{Span: span, Kind: RuleEvent})
		case cmark.TaskListMarkerToken:
			events = append(events, Event{Span: span, Kind: TaskListMarkerEvent, Checked: tok.Checked})
		}
	}
	return pending.flush(events), languages
}

// substitutedRun accumulates adjacent substituted text tokens so that a
// multi-token substitution (for example two consecutive entities) surfaces
// as one SubstitutedText event covering the combined source range.
type substitutedRun struct {
	span   Span
	chunks []string
}

// flush appends the pending run as a single event, if there is one.
func (r *substitutedRun) flush(events []Event) []Event {
	if len(r.chunks) == 0 {
		return events
	}
	events = append(events, Event{
		Span: r.span,
		Kind: SubstitutedTextEvent,
		Text: strings.Join(r.chunks, ""),
	})
	r.chunks = r.chunks[:0]
	return events
}
