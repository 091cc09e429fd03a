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
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func span(start, end int) Span {
	return Span{Start: start, End: end}
}

func textAt(start, end int) Event {
	return Event{Span: span(start, end), Kind: TextEvent}
}

func substAt(start, end int, text string) Event {
	return Event{Span: span(start, end), Kind: SubstitutedTextEvent, Text: text}
}

func startTag(s Span, tag Tag) Event {
	return Event{Span: s, Kind: StartEvent, Tag: tag}
}

func endTag(s Span, kind TagKind) Event {
	return Event{Span: s, Kind: EndEvent, End: kind}
}

func autolinkAt(start, end int, dest string) []Event {
	s := span(start, end)
	return []Event{
		startTag(s, Tag{Kind: LinkTag, LinkType: LinkAutolink, DestURL: dest}),
		{Span: s, Kind: TextEvent},
		endTag(s, LinkTag),
	}
}

func TestParseEntitiesEscapesAndBareURL(t *testing.T) {
	source := []byte("&nbsp;&nbsp; https://some.url some \\`&#9658;\\` text")
	events, languages := Parse(source)

	want := []Event{
		startTag(span(0, 51), Tag{Kind: ParagraphTag}),
		substAt(0, 12, "  "),
		textAt(12, 13),
	}
	want = append(want, autolinkAt(13, 29, "https://some.url")...)
	want = append(want,
		textAt(29, 35),
		textAt(36, 37),
		substAt(37, 44, "►"),
		textAt(45, 46),
		textAt(46, 51),
		endTag(span(0, 51), ParagraphTag),
	)
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if len(languages) != 0 {
		t.Errorf("languages = %v; want none", languages)
	}
}

func TestParseSmartPunctuation(t *testing.T) {
	source := []byte("-- --- ... \"double quoted\" 'single quoted'")
	events, _ := Parse(source)

	want := []Event{
		startTag(span(0, 42), Tag{Kind: ParagraphTag}),
		substAt(0, 2, "–"),
		textAt(2, 3),
		substAt(3, 6, "—"),
		textAt(6, 7),
		substAt(7, 10, "…"),
		textAt(10, 11),
		substAt(11, 12, "“"),
		textAt(12, 25),
		substAt(25, 26, "”"),
		textAt(26, 27),
		substAt(27, 28, "‘"),
		textAt(28, 41),
		substAt(41, 42, "’"),
		endTag(span(0, 42), ParagraphTag),
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDashesOnly(t *testing.T) {
	events, _ := Parse([]byte("--\n"))
	want := []Event{
		startTag(span(0, 3), Tag{Kind: ParagraphTag}),
		substAt(0, 2, "–"),
		endTag(span(0, 3), ParagraphTag),
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCodeSpanDelimiterTrimming(t *testing.T) {
	events, _ := Parse([]byte("`code`\n"))
	want := []Event{
		startTag(span(0, 7), Tag{Kind: ParagraphTag}),
		{Span: span(1, 5), Kind: CodeEvent},
		endTag(span(0, 7), ParagraphTag),
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBareURLInPlainText(t *testing.T) {
	events, _ := Parse([]byte("plain https://a.b text\n"))
	want := []Event{
		startTag(span(0, 23), Tag{Kind: ParagraphTag}),
		textAt(0, 6),
	}
	want = append(want, autolinkAt(6, 17, "https://a.b")...)
	want = append(want,
		textAt(17, 22),
		endTag(span(0, 23), ParagraphTag),
	)
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseExplicitLinkSuppressesAutolink(t *testing.T) {
	// A bare URL inside explicit link text must not be linked again.
	events, _ := Parse([]byte("[see https://a.b](/dest)\n"))
	for _, ev := range events {
		if ev.Kind == StartEvent && ev.Tag.Kind == LinkTag && ev.Tag.LinkType == LinkAutolink {
			t.Fatalf("unexpected autolink event %+v inside explicit link", ev)
		}
	}
}

func TestParseImageSuppressesAutolink(t *testing.T) {
	source := []byte("![alt https://a.b](https://img.example/p.png)\n")
	events, _ := Parse(source)
	want := []Event{
		startTag(span(0, 46), Tag{Kind: ParagraphTag}),
		startTag(span(0, 45), Tag{
			Kind:     ImageTag,
			LinkType: LinkInline,
			DestURL:  "https://img.example/p.png",
		}),
		textAt(2, 17),
		endTag(span(0, 45), ImageTag),
		endTag(span(0, 46), ParagraphTag),
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFencedLanguages(t *testing.T) {
	source := []byte("```rust\nlet x = 1;\n```\n\n```\nplain\n```\n")
	events, languages := Parse(source)

	want := []Event{
		startTag(span(0, 23), Tag{Kind: CodeBlockTag, CodeBlock: CodeBlockKind{Fenced: true, Language: "rust"}}),
		textAt(8, 19),
		endTag(span(0, 23), CodeBlockTag),
		startTag(span(24, 38), Tag{Kind: CodeBlockTag, CodeBlock: CodeBlockKind{Fenced: true}}),
		textAt(28, 34),
		endTag(span(24, 38), CodeBlockTag),
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	wantLangs := map[string]bool{"rust": true, "": true}
	if diff := cmp.Diff(wantLangs, languages); diff != "" {
		t.Errorf("languages mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMetadataSuppression(t *testing.T) {
	events, _ := Parse([]byte("+++\ntitle = \"Doc\"\n+++\nbody\n"))
	want := []Event{
		startTag(span(22, 27), Tag{Kind: ParagraphTag}),
		textAt(22, 26),
		endTag(span(22, 27), ParagraphTag),
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHeadingAttributes(t *testing.T) {
	events, _ := Parse([]byte("# Title {#t .big}\n"))
	want := []Event{
		startTag(span(0, 18), Tag{
			Kind:    HeadingTag,
			Level:   1,
			ID:      "t",
			Classes: []string{"big"},
		}),
		textAt(2, 7),
		endTag(span(0, 18), HeadingTag),
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTaskList(t *testing.T) {
	events, _ := Parse([]byte("- [x] done\n- [ ] todo\n"))
	want := []Event{
		startTag(span(0, 22), Tag{Kind: ListTag}),
		startTag(span(0, 11), Tag{Kind: ItemTag}),
		{Span: span(2, 5), Kind: TaskListMarkerEvent, Checked: true},
		textAt(6, 10),
		endTag(span(0, 11), ItemTag),
		startTag(span(11, 22), Tag{Kind: ItemTag}),
		{Span: span(13, 16), Kind: TaskListMarkerEvent},
		textAt(17, 21),
		endTag(span(11, 22), ItemTag),
		endTag(span(0, 22), ListTag),
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmphasisDelimiterSpans(t *testing.T) {
	events, _ := Parse([]byte("*em*\n"))
	want := []Event{
		startTag(span(0, 5), Tag{Kind: ParagraphTag}),
		startTag(span(0, 4), Tag{Kind: EmphasisTag}),
		textAt(1, 3),
		endTag(span(0, 4), EmphasisTag),
		endTag(span(0, 5), ParagraphTag),
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHardBreaks(t *testing.T) {
	events, _ := Parse([]byte("one  \ntwo\n"))
	want := []Event{
		startTag(span(0, 10), Tag{Kind: ParagraphTag}),
		textAt(0, 3),
		{Span: span(3, 6), Kind: HardBreakEvent},
		textAt(6, 9),
		endTag(span(0, 10), ParagraphTag),
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyInput(t *testing.T) {
	events, languages := Parse(nil)
	if len(events) != 0 {
		t.Errorf("events = %v; want none", events)
	}
	if len(languages) != 0 {
		t.Errorf("languages = %v; want none", languages)
	}
}

func TestParseMultibyteSpansOnRuneBoundaries(t *testing.T) {
	source := []byte("héllo https://a.b/é wörld — \"q\" &amp; `é`\n")
	events, _ := Parse(source)

	var linked []string
	for i, ev := range events {
		if ev.Span.Start < len(source) && !utf8.RuneStart(source[ev.Span.Start]) {
			t.Errorf("event %d: span %v starts inside a UTF-8 sequence", i, ev.Span)
		}
		if ev.Span.End < len(source) && !utf8.RuneStart(source[ev.Span.End]) {
			t.Errorf("event %d: span %v ends inside a UTF-8 sequence", i, ev.Span)
		}
		if ev.Kind == StartEvent && ev.Tag.Kind == LinkTag {
			linked = append(linked, ev.Tag.DestURL)
		}
	}
	if diff := cmp.Diff([]string{"https://a.b/é"}, linked); diff != "" {
		t.Errorf("link destinations mismatch (-want +got):\n%s", diff)
	}
}

// textish reports whether an event's span participates in the ordered
// non-overlap guarantee.
func textish(kind EventKind) bool {
	switch kind {
	case TextEvent, SubstitutedTextEvent, CodeEvent, HTMLEvent, InlineHTMLEvent:
		return true
	}
	return false
}

func FuzzParse(f *testing.F) {
	f.Add([]byte("&nbsp;&nbsp; https://some.url some \\`&#9658;\\` text"))
	f.Add([]byte("-- --- ... \"double quoted\" 'single quoted'"))
	f.Add([]byte("+++\ntitle = \"Doc\"\n+++\n# Hi {#id .c}\n"))
	f.Add([]byte("| a | b |\n| - | - |\n| c | d |\n"))
	f.Add([]byte("- [x] one\n  - nested\n\n- two\n"))
	f.Add([]byte("```go\nfmt.Println(1)\n```\n> quote\n<div>\nx\n</div>\n"))
	f.Add([]byte("[t](/u \"ti\") ![i](/p) <https://a.b> text[^1]\n\n[^1]: note\n"))
	f.Add([]byte("héllo https://a.b/é wörld — \"q\" &amp; `é`\n"))
	f.Fuzz(func(t *testing.T, source []byte) {
		events, _ := Parse(source)

		var stack []TagKind
		lastEnd := 0
		for i, ev := range events {
			if ev.Span.Start < 0 || ev.Span.End > len(source) || ev.Span.Start > ev.Span.End {
				t.Fatalf("event %d: span %v out of bounds for %d-byte input", i, ev.Span, len(source))
			}
			if ev.Span.Start < len(source) && !utf8.RuneStart(source[ev.Span.Start]) {
				t.Fatalf("event %d: span %v starts inside a UTF-8 sequence", i, ev.Span)
			}
			if ev.Span.End < len(source) && !utf8.RuneStart(source[ev.Span.End]) {
				t.Fatalf("event %d: span %v ends inside a UTF-8 sequence", i, ev.Span)
			}
			switch ev.Kind {
			case StartEvent:
				stack = append(stack, ev.Tag.Kind)
			case EndEvent:
				if len(stack) == 0 {
					t.Fatalf("event %d: End %v with nothing open", i, ev.End)
				}
				if top := stack[len(stack)-1]; top != ev.End {
					t.Fatalf("event %d: End %v does not match open %v", i, ev.End, top)
				}
				stack = stack[:len(stack)-1]
			}
			if textish(ev.Kind) {
				if ev.Span.Start < lastEnd {
					t.Fatalf("event %d: text span %v overlaps previous text ending at %d", i, ev.Span, lastEnd)
				}
				lastEnd = ev.Span.End
			}
		}
		if len(stack) != 0 {
			t.Fatalf("unbalanced events: %v left open", stack)
		}
	})
}
