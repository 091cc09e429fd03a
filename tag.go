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

import "github.com/editkit/markdown/internal/cmark"

// convertTag copies a tokenizer tag, whose byte-slice fields may alias the
// source buffer, into a self-contained owned [Tag].
// It is total over the tokenizer's tag repertoire and has no side effects.
func convertTag(t cmark.Tag) Tag {
	out := Tag{Kind: convertTagKind(t.Kind)}
	switch t.Kind {
	case cmark.HeadingKind:
		out.Level = t.Level
		out.ID = string(t.ID)
		for _, class := range t.Classes {
			out.Classes = append(out.Classes, string(class))
		}
		for _, attr := range t.Attrs {
			out.Attrs = append(out.Attrs, Attribute{
				Key:      string(attr.Key),
				Value:    string(attr.Value),
				HasValue: attr.HasValue,
			})
		}
	case cmark.CodeBlockKind:
		out.CodeBlock = CodeBlockKind{
			Fenced:   t.Fenced,
			Language: string(t.Language),
		}
	case cmark.ListKind:
		out.Ordered = t.Ordered
		out.Start = t.Start
	case cmark.FootnoteDefinitionKind:
		out.Label = string(t.Label)
	case cmark.TableKind:
		for _, align := range t.Alignments {
			out.Alignments = append(out.Alignments, Alignment(align))
		}
	case cmark.LinkKind, cmark.ImageKind:
		out.LinkType = convertLinkType(t.LinkType)
		out.DestURL = string(t.Dest)
		out.Title = string(t.Title)
	case cmark.MetadataBlockKind:
		// The tokenizer only recognizes pluses-delimited metadata.
		out.Metadata = PlusesStyleMetadata
	}
	return out
}

func convertTagKind(kind cmark.TagKind) TagKind {
	switch kind {
	case cmark.ParagraphKind:
		return ParagraphTag
	case cmark.HeadingKind:
		return HeadingTag
	case cmark.BlockQuoteKind:
		return BlockQuoteTag
	case cmark.CodeBlockKind:
		return CodeBlockTag
	case cmark.HTMLBlockKind:
		return HTMLBlockTag
	case cmark.ListKind:
		return ListTag
	case cmark.ItemKind:
		return ItemTag
	case cmark.FootnoteDefinitionKind:
		return FootnoteDefinitionTag
	case cmark.TableKind:
		return TableTag
	case cmark.TableHeadKind:
		return TableHeadTag
	case cmark.TableRowKind:
		return TableRowTag
	case cmark.TableCellKind:
		return TableCellTag
	case cmark.EmphasisKind:
		return EmphasisTag
	case cmark.StrongKind:
		return StrongTag
	case cmark.StrikethroughKind:
		return StrikethroughTag
	case cmark.LinkKind:
		return LinkTag
	case cmark.ImageKind:
		return ImageTag
	case cmark.MetadataBlockKind:
		return MetadataBlockTag
	default:
		panic("unknown tag kind")
	}
}

func convertLinkType(lt cmark.LinkType) LinkType {
	switch lt {
	case cmark.LinkInline:
		return LinkInline
	case cmark.LinkAutolink:
		return LinkAutolink
	case cmark.LinkEmail:
		return LinkEmail
	default:
		panic("unknown link type")
	}
}
