package chunker

import (
	"strings"
	"testing"

	"github.com/nekesuresh/RFP/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wordCounter is a deterministic stub: one token per whitespace-separated
// word, so a chunk's token count equals the sum of its sentences' counts.
type wordCounter struct{}

func (wordCounter) Count(text string) int { return len(strings.Fields(text)) }
func (wordCounter) Strategy() Strategy    { return StrategyPrimary }

func newTestChunker(t *testing.T, maxTokens, overlapTokens int) *Chunker {
	t.Helper()
	c, err := New(maxTokens, overlapTokens, wordCounter{}, NewSegmenter())
	require.NoError(t, err)
	return c
}

func paragraphs(texts ...string) []types.PageParagraph {
	out := make([]types.PageParagraph, len(texts))
	for i, text := range texts {
		out[i] = types.PageParagraph{Page: i + 1, Text: text}
	}
	return out
}

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	for _, tc := range []struct{ max, overlap int }{
		{0, 0},
		{-5, 0},
		{10, -1},
		{10, 10},
		{10, 50},
	} {
		_, err := New(tc.max, tc.overlap, wordCounter{}, NewSegmenter())
		assert.ErrorIs(t, err, ErrInvalidConfiguration, "max=%d overlap=%d", tc.max, tc.overlap)
	}
}

func TestAssembleEmptyInput(t *testing.T) {
	c := newTestChunker(t, 100, 10)

	assert.Empty(t, c.Assemble(nil))
	assert.Empty(t, c.Assemble([]types.PageParagraph{}))
	assert.Empty(t, c.Assemble(paragraphs("", "   \n ")))
}

func TestAssembleSingleChunkWhenBudgetFits(t *testing.T) {
	c := newTestChunker(t, 100, 10)

	batch := c.Assemble(paragraphs("Scope is clear. Budget is undefined. Timeline is tight."))

	require.Len(t, batch, 1)
	assert.Equal(t, "Scope is clear. Budget is undefined. Timeline is tight.", batch[0].Text)
	// Token count is the sum of the three sentence counts (3 words each).
	assert.Equal(t, 9, batch[0].TokenCount)
	assert.Equal(t, len(batch[0].Text), batch[0].CharacterCount)
	assert.Equal(t, 1, batch[0].Page)
}

func TestAssembleOneSentencePerChunkAtTightBudget(t *testing.T) {
	// max_tokens equals count("Scope is clear.") with zero overlap.
	c := newTestChunker(t, 3, 0)

	batch := c.Assemble(paragraphs("Scope is clear. Budget is undefined. Timeline is tight."))

	require.Len(t, batch, 3)
	assert.Equal(t, "Scope is clear.", batch[0].Text)
	assert.Equal(t, "Budget is undefined.", batch[1].Text)
	assert.Equal(t, "Timeline is tight.", batch[2].Text)
	for _, chunk := range batch {
		assert.Equal(t, 3, chunk.TokenCount)
	}
}

func TestAssembleOversizedSentenceEmittedVerbatim(t *testing.T) {
	sentence := "alpha beta gamma delta epsilon zeta."
	c := newTestChunker(t, 5, 0)

	batch := c.Assemble(paragraphs(sentence))

	require.Len(t, batch, 1)
	assert.Equal(t, sentence, batch[0].Text)
	assert.Equal(t, 6, batch[0].TokenCount) // accepted boundary violation
}

func TestAssembleOversizedSentenceBetweenNormalOnes(t *testing.T) {
	text := "Short one here. alpha beta gamma delta epsilon zeta eta theta. Short two here."
	c := newTestChunker(t, 5, 2)

	batch := c.Assemble(paragraphs(text))

	require.Len(t, batch, 3)
	assert.Equal(t, "Short one here.", batch[0].Text)
	assert.Equal(t, "alpha beta gamma delta epsilon zeta eta theta.", batch[1].Text)
	assert.Equal(t, "Short two here.", batch[2].Text)
}

func TestAssembleOverlapComesFromPrecedingChunkTail(t *testing.T) {
	text := "One two three. Four five six. Seven eight nine. Ten eleven twelve."
	c := newTestChunker(t, 6, 3)

	batch := c.Assemble(paragraphs(text))

	require.Len(t, batch, 3)
	assert.Equal(t, "One two three. Four five six.", batch[0].Text)
	assert.Equal(t, "Four five six. Seven eight nine.", batch[1].Text)
	assert.Equal(t, "Seven eight nine. Ten eleven twelve.", batch[2].Text)
}

func TestAssembleZeroOverlapSharesNoLeadingText(t *testing.T) {
	text := "One two three. Four five six. Seven eight nine. Ten eleven twelve."
	c := newTestChunker(t, 6, 0)

	batch := c.Assemble(paragraphs(text))

	require.Len(t, batch, 2)
	for i := 1; i < len(batch); i++ {
		first := strings.Fields(batch[i].Text)[0]
		assert.False(t, strings.Contains(batch[i-1].Text, first),
			"chunk %d leads with text from chunk %d", i, i-1)
	}
}

func TestAssembleChunksStayWithinBudget(t *testing.T) {
	text := "One two three four. Five six. Seven eight nine. Ten. Eleven twelve thirteen fourteen. Fifteen sixteen."
	for _, cfg := range []struct{ max, overlap int }{
		{4, 0}, {4, 2}, {6, 3}, {10, 5}, {100, 50},
	} {
		c := newTestChunker(t, cfg.max, cfg.overlap)
		for i, chunk := range c.Assemble(paragraphs(text)) {
			sentenceCount := strings.Count(chunk.Text, ".")
			if sentenceCount <= 1 {
				continue // lone oversized sentences may exceed the budget
			}
			assert.LessOrEqual(t, chunk.TokenCount, cfg.max,
				"max=%d overlap=%d chunk=%d", cfg.max, cfg.overlap, i)
		}
	}
}

func TestAssembleCoversEverySentenceInOrder(t *testing.T) {
	text := "One two three. Four five six. Seven eight nine. Ten eleven twelve. Thirteen fourteen fifteen."
	c := newTestChunker(t, 6, 3)

	batch := c.Assemble(paragraphs(text))

	// Every sentence appears, in document order, across the chunk sequence.
	sentences := NewSegmenter().Segment(text).Sentences
	chunkIdx := 0
	for _, sentence := range sentences {
		for chunkIdx < len(batch) && !strings.Contains(batch[chunkIdx].Text, sentence) {
			chunkIdx++
		}
		require.Less(t, chunkIdx, len(batch), "sentence %q not covered in order", sentence)
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	text := "One two three. Four five six. Seven eight nine. Ten eleven twelve."
	c := newTestChunker(t, 6, 3)
	paras := paragraphs(text, "Another page paragraph. With two sentences here.")

	first := c.Assemble(paras)
	second := c.Assemble(paras)

	assert.Equal(t, first, second)
}

func TestAssembleParagraphsNeverMerge(t *testing.T) {
	c := newTestChunker(t, 100, 10)

	batch := c.Assemble(paragraphs("First paragraph sentence.", "Second paragraph sentence."))

	require.Len(t, batch, 2)
	assert.Equal(t, 1, batch[0].Page)
	assert.Equal(t, 2, batch[1].Page)
	assert.NotContains(t, batch[0].Text, "Second")
}

func TestAssembleParagraphPreview(t *testing.T) {
	long := strings.Repeat("word ", 30) // 150 chars
	c := newTestChunker(t, 100, 0)

	batch := c.Assemble(paragraphs(long, "short paragraph text here"))

	require.Len(t, batch, 2)
	assert.Len(t, batch[0].ParagraphPreview, 63)
	assert.True(t, strings.HasSuffix(batch[0].ParagraphPreview, "..."))
	assert.Equal(t, "short paragraph text here", batch[1].ParagraphPreview)
}

func TestAssemblePreviewReferencesFirstSentenceParagraph(t *testing.T) {
	c := newTestChunker(t, 3, 0)

	batch := c.Assemble(paragraphs(
		"One two three. Four five six.",
		"Seven eight nine. Ten eleven twelve.",
	))

	require.Len(t, batch, 4)
	assert.Equal(t, "One two three. Four five six.", batch[0].ParagraphPreview)
	assert.Equal(t, "One two three. Four five six.", batch[1].ParagraphPreview)
	assert.Equal(t, "Seven eight nine. Ten eleven twelve.", batch[2].ParagraphPreview)
	assert.Equal(t, "Seven eight nine. Ten eleven twelve.", batch[3].ParagraphPreview)
}

func TestAssembleNeverEmitsEmptyChunks(t *testing.T) {
	c := newTestChunker(t, 4, 2)

	batch := c.Assemble(paragraphs("...", "One two. Three four five six. Seven."))

	for _, chunk := range batch {
		assert.NotEmpty(t, strings.TrimSpace(chunk.Text))
		assert.Positive(t, chunk.TokenCount)
		assert.Positive(t, chunk.CharacterCount)
	}
}
