package chunker

import (
	"regexp"
	"strings"
)

var (
	// PDF extraction frequently fuses words across line breaks ("wordNext")
	// and drops the space after sentence punctuation (".Next").
	fusedWordRe   = regexp.MustCompile(`([a-z])([A-Z])`)
	sentenceGapRe = regexp.MustCompile(`([.!?])([A-Z])`)
	specialCharRe = regexp.MustCompile(`[^\w\s.,!?;:\-()\[\]{}]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Normalize cleans raw extracted PDF text: strips characters that interfere
// with tokenization, repairs fused words and missing sentence gaps, and
// collapses all whitespace runs (including newlines) to single spaces.
// The result never contains leading/trailing whitespace or double spaces.
func Normalize(raw string) string {
	text := specialCharRe.ReplaceAllString(raw, " ")
	text = fusedWordRe.ReplaceAllString(text, "$1 $2")
	text = sentenceGapRe.ReplaceAllString(text, "$1 $2")
	// Collapse last so replacements above cannot leave double spaces.
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
