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
	"fmt"
	"strings"

	"go4.org/bytereplacer"
)

var textEscaper = bytereplacer.New(
	"\\", `\\`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// FormatEvents renders an event stream one event per line, resolving text
// spans against source. It is a debugging aid; the output format is not
// stable.
func FormatEvents(source []byte, events []Event) string {
	sb := new(strings.Builder)
	for _, ev := range events {
		fmt.Fprintf(sb, "%v %v", ev.Span, ev.Kind)
		switch ev.Kind {
		case StartEvent:
			fmt.Fprintf(sb, " %v", ev.Tag.Kind)
			switch ev.Tag.Kind {
			case HeadingTag:
				fmt.Fprintf(sb, " level=%d", ev.Tag.Level)
			case CodeBlockTag:
				if ev.Tag.CodeBlock.Fenced {
					fmt.Fprintf(sb, " lang=%q", ev.Tag.CodeBlock.Language)
				}
			case LinkTag, ImageTag:
				fmt.Fprintf(sb, " dest=%q", ev.Tag.DestURL)
			}
		case EndEvent:
			fmt.Fprintf(sb, " %v", ev.End)
		case TextEvent, CodeEvent, HTMLEvent, InlineHTMLEvent:
			sb.WriteByte(' ')
			sb.Write(textEscaper.Replace(append([]byte(nil), source[ev.Span.Start:ev.Span.End]...)))
		case SubstitutedTextEvent:
			sb.WriteByte(' ')
			sb.Write(textEscaper.Replace([]byte(ev.Text)))
		case TaskListMarkerEvent:
			fmt.Fprintf(sb, " checked=%t", ev.Checked)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
