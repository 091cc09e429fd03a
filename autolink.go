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

import (
	"bytes"
	"regexp"
)

// urlPattern matches a scheme-qualified URL candidate. The match is
// intentionally greedy at the end; trimURL backs off trailing prose
// punctuation afterwards.
var urlPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*://[^\s<>]+`)

// findLinks returns the spans of bare URLs inside span, in increasing
// order. Spans are absolute offsets into source, strictly increasing and
// non-overlapping. Matching is deterministic and side-effect-free.
func findLinks(source []byte, span Span) []Span {
	var links []Span
	for _, m := range urlPattern.FindAllIndex(source[span.Start:span.End], -1) {
		start := span.Start + m[0]
		end := trimURL(source, start, span.Start+m[1])
		links = append(links, Span{Start: start, End: end})
	}
	return links
}

// trimURL backs the match end off characters that read as prose punctuation
// rather than as part of the URL: trailing stops are dropped, and a
// trailing closing bracket is kept only while balanced by an opening one
// inside the match.
func trimURL(source []byte, start, end int) int {
	for end > start {
		switch source[end-1] {
		case '.', ',', ';', ':', '!', '?', '\'', '"', '*', '_', '~':
			end--
		case ')':
			if balanced(source[start:end], '(', ')') {
				return end
			}
			end--
		case ']':
			if balanced(source[start:end], '[', ']') {
				return end
			}
			end--
		case '}':
			if balanced(source[start:end], '{', '}') {
				return end
			}
			end--
		default:
			return end
		}
	}
	return end
}

func balanced(match []byte, open, close byte) bool {
	return bytes.Count(match, []byte{open}) >= bytes.Count(match, []byte{close})
}

// ParseLinksOnly runs only the autolink scanner over source, with no
// markdown tokenization at all. Each match produces a
// Start(Link)/Text/End(Link) triple; gaps and the remainder surface as
// Text events. A matchless non-empty input yields a single Text event
// spanning the whole of it.
func ParseLinksOnly(source []byte) []Event {
	var events []Event
	cursor := 0
	for _, link := range findLinks(source, Span{Start: 0, End: len(source)}) {
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
	if cursor < len(source) {
		events = append(events, Event{Span: Span{Start: cursor, End: len(source)}, Kind: TextEvent})
	}
	return events
}
