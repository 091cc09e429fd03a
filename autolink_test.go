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

	"github.com/google/go-cmp/cmp"
)

func TestFindLinks(t *testing.T) {
	tests := []struct {
		source string
		want   []Span
	}{
		{
			source: "plain https://a.b text",
			want:   []Span{{6, 17}},
		},
		{
			// Balanced parentheses stay part of the URL.
			source: "go to https://en.wikipedia.org/wiki/Go_(lang) now",
			want:   []Span{{6, 45}},
		},
		{
			// An unbalanced closing parenthesis is prose, not URL.
			source: "(https://a.b/c) x",
			want:   []Span{{1, 14}},
		},
		{
			source: "https://a.b/c).",
			want:   []Span{{0, 13}},
		},
		{
			source: "https://a.b.",
			want:   []Span{{0, 11}},
		},
		{
			source: "see http://x.y, and https://z.w!",
			want:   []Span{{4, 14}, {20, 31}},
		},
		{
			source: "ftp://files.example.com/x",
			want:   []Span{{0, 25}},
		},
		{
			source: "no links here",
			want:   nil,
		},
		{
			source: "https:// alone is not a link",
			want:   nil,
		},
	}
	for _, test := range tests {
		source := []byte(test.source)
		got := findLinks(source, Span{Start: 0, End: len(source)})
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("findLinks(%q) mismatch (-want +got):\n%s", test.source, diff)
		}
		// Scanning is deterministic: a second pass over the same slice
		// must produce identical spans.
		again := findLinks(source, Span{Start: 0, End: len(source)})
		if diff := cmp.Diff(got, again); diff != "" {
			t.Errorf("findLinks(%q) second scan differs (-first +second):\n%s", test.source, diff)
		}
	}
}

func TestParseLinksOnly(t *testing.T) {
	source := []byte("x https://a.b y")
	got := ParseLinksOnly(source)
	want := []Event{textAt(0, 2)}
	want = append(want, autolinkAt(2, 13, "https://a.b")...)
	want = append(want, textAt(13, 15))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLinksOnlyNoMatch(t *testing.T) {
	got := ParseLinksOnly([]byte("plain"))
	want := []Event{textAt(0, 5)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLinksOnlyEmpty(t *testing.T) {
	if got := ParseLinksOnly(nil); len(got) != 0 {
		t.Errorf("ParseLinksOnly(nil) = %v; want none", got)
	}
}
