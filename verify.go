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
	"github.com/rs/zerolog/log"

	"github.com/editkit/markdown/internal/cmark"
)

// substitutionSizeLimit is the longest replacement any known substitution
// produces: entities and smart punctuation decode to a single rune of at
// most four UTF-8 bytes. Longer replacements suggest the tokenizer's
// behavior has drifted from this package's assumptions.
// This is a diagnostic threshold, not a correctness bound.
const substitutionSizeLimit = 4

// verifySubstitution logs an error-level diagnostic for a suspiciously long
// substitution. It never alters output or aborts parsing.
func verifySubstitution(source []byte, tok cmark.Token) {
	if len(tok.Replacement) <= substitutionSizeLimit {
		return
	}
	log.Error().
		Str("source", string(source[tok.Span.Start:tok.Span.End])).
		Str("replacement", tok.Replacement).
		Msg("markdown: substituted text longer than any expected entity or punctuation replacement")
}
