package chunker

import (
	"math"
	"strings"

	"github.com/pkoukk/tiktoken-go"
	log "github.com/sirupsen/logrus"
)

// TokenCounter estimates the token cost of a string. A counter is an
// explicitly constructed capability passed into the assembler, never a
// process-wide singleton, and one instance is used for every count within
// a single assembly run so budget comparisons stay consistent.
type TokenCounter interface {
	Count(text string) int
	Strategy() Strategy
}

const tokenEncoding = "cl100k_base"

// BPECounter counts tokens exactly using a fixed byte-pair encoding.
type BPECounter struct {
	encoder *tiktoken.Tiktoken
}

func (c *BPECounter) Count(text string) int {
	return len(c.encoder.Encode(text, nil, nil))
}

func (c *BPECounter) Strategy() Strategy { return StrategyPrimary }

// ApproxCounter estimates tokens as round(word_count * 1.3), the typical
// token-per-word ratio for English text. Deterministic and monotonic with
// text length, but not exact.
type ApproxCounter struct{}

func (ApproxCounter) Count(text string) int {
	words := len(strings.Fields(text))
	return int(math.Round(float64(words) * 1.3))
}

func (ApproxCounter) Strategy() Strategy { return StrategyFallback }

// NewTokenCounter returns the exact BPE counter when its encoding can be
// loaded, otherwise the word-based approximation. Unavailability is logged
// and never surfaced; the returned counter is valid either way.
func NewTokenCounter() TokenCounter {
	encoder, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		log.Warnf("token encoding %s unavailable, using word-count approximation: %v", tokenEncoding, err)
		return ApproxCounter{}
	}
	return &BPECounter{encoder: encoder}
}
