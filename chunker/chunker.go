package chunker

import (
	"errors"
	"strings"

	"github.com/nekesuresh/RFP/types"
)

// ErrInvalidConfiguration rejects a chunker whose token budget is not
// positive or whose overlap is not strictly smaller than the budget.
var ErrInvalidConfiguration = errors.New("chunker: require max_tokens > 0 and 0 <= overlap_tokens < max_tokens")

const previewLimit = 60

// Chunker assembles paragraphs into token-bounded, overlapping chunks.
// Assembly is strictly sequential within one document; a single Chunker
// must not be shared by concurrent Assemble calls because the injected
// token counter and segmenter are used without locking. Construct one
// Chunker per document for concurrent processing.
type Chunker struct {
	maxTokens     int
	overlapTokens int
	counter       TokenCounter
	segmenter     *Segmenter
}

// New validates the token budget before any assembly work begins. The
// counter is an injected capability so runs are deterministic and testable;
// the same counter instance serves every count within an assembly run.
func New(maxTokens, overlapTokens int, counter TokenCounter, segmenter *Segmenter) (*Chunker, error) {
	if maxTokens <= 0 || overlapTokens < 0 || overlapTokens >= maxTokens {
		return nil, ErrInvalidConfiguration
	}
	return &Chunker{
		maxTokens:     maxTokens,
		overlapTokens: overlapTokens,
		counter:       counter,
		segmenter:     segmenter,
	}, nil
}

// Assemble converts paragraphs into a chunk batch in document order.
// Paragraphs never merge across their boundary. An empty paragraph
// sequence yields an empty batch.
func (c *Chunker) Assemble(paragraphs []types.PageParagraph) types.ChunkBatch {
	var batch types.ChunkBatch
	for _, para := range paragraphs {
		c.assembleParagraph(para, &batch)
	}
	return batch
}

// assembleParagraph accumulates whole sentences into a running chunk,
// closing the chunk when the next sentence would exceed the token budget
// and seeding the successor with a sentence-suffix overlap window from the
// chunk just closed.
func (c *Chunker) assembleParagraph(para types.PageParagraph, batch *types.ChunkBatch) {
	seg := c.segmenter.Segment(Normalize(para.Text))
	if len(seg.Sentences) == 0 {
		return
	}
	preview := paragraphPreview(para.Text)

	emit := func(sentences []string) {
		text := strings.TrimSpace(strings.Join(sentences, " "))
		if text == "" {
			return
		}
		*batch = append(*batch, types.Chunk{
			Text:             text,
			Page:             para.Page,
			ParagraphPreview: preview,
			TokenCount:       c.counter.Count(text),
			CharacterCount:   len(text),
		})
	}

	var current []string
	currentTokens := 0

	for _, sentence := range seg.Sentences {
		sentenceTokens := c.counter.Count(sentence)

		if currentTokens+sentenceTokens <= c.maxTokens {
			current = append(current, sentence)
			currentTokens += sentenceTokens
			continue
		}

		if len(current) > 0 {
			emit(current)
		}

		// Seed the next chunk: overlap suffix from the just-closed chunk,
		// then the sentence that did not fit.
		seed := c.overlapSuffix(current)
		next := make([]string, 0, len(seed)+1)
		next = append(next, seed...)
		next = append(next, sentence)
		tokens := c.counter.Count(strings.Join(next, " "))
		// Shrink the seed if it would push the new chunk past the budget;
		// only a lone oversized sentence may exceed it.
		for tokens > c.maxTokens && len(next) > 1 {
			next = next[1:]
			tokens = c.counter.Count(strings.Join(next, " "))
		}
		current = next
		currentTokens = tokens
	}

	if len(current) > 0 {
		emit(current)
	}
}

// overlapSuffix selects whole sentences from the tail of the closed chunk,
// newest first, until adding one more would exceed the overlap budget. The
// selection is a suffix window: sentences are never reordered.
func (c *Chunker) overlapSuffix(closed []string) []string {
	if c.overlapTokens == 0 || len(closed) == 0 {
		return nil
	}
	used := 0
	start := len(closed)
	for start > 0 {
		tokens := c.counter.Count(closed[start-1])
		if used+tokens > c.overlapTokens {
			break
		}
		used += tokens
		start--
	}
	return closed[start:]
}

// paragraphPreview truncates the source paragraph to at most previewLimit
// characters, marking truncation with an ellipsis.
func paragraphPreview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "..."
}
