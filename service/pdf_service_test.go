package service

import (
	"strings"
	"testing"

	"github.com/nekesuresh/RFP/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitParagraphs(t *testing.T) {
	text := "First paragraph with enough text.\n\nSecond paragraph, also long enough.\n \nThird one rounds it out."

	paras := splitParagraphs(text)

	require.Len(t, paras, 3)
	assert.Equal(t, "First paragraph with enough text.", paras[0])
	assert.Equal(t, "Second paragraph, also long enough.", paras[1])
	assert.Equal(t, "Third one rounds it out.", paras[2])
}

func TestSplitParagraphsDropsShortFragments(t *testing.T) {
	text := "7\n\nA real paragraph with plenty of content to keep.\n\npage 3"

	paras := splitParagraphs(text)

	require.Len(t, paras, 1)
	assert.Contains(t, paras[0], "real paragraph")
}

func TestSplitParagraphsWholePageFallback(t *testing.T) {
	// No blank-line breaks at all: the page itself is one paragraph.
	text := "A single run of text without any paragraph markers in it."

	paras := splitParagraphs(text)

	require.Len(t, paras, 1)
	assert.Equal(t, strings.TrimSpace(text), paras[0])
}

func TestSplitParagraphsEmptyPage(t *testing.T) {
	assert.Empty(t, splitParagraphs(""))
	assert.Empty(t, splitParagraphs("  \n\n \n"))
	assert.Empty(t, splitParagraphs("too short"))
}

func TestExtractMissingFileIsExtractionError(t *testing.T) {
	s := NewPDFService()

	_, err := s.Extract("does-not-exist.pdf")

	require.Error(t, err)
	var extractionErr *types.ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "does-not-exist.pdf", extractionErr.Path)
}
