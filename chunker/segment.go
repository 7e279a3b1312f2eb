package chunker

import (
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	log "github.com/sirupsen/logrus"
)

// Strategy identifies which implementation produced a segmentation or a
// token count, so callers and tests can assert when a fallback fired.
type Strategy int

const (
	StrategyPrimary Strategy = iota
	StrategyFallback
)

func (s Strategy) String() string {
	if s == StrategyPrimary {
		return "primary"
	}
	return "fallback"
}

// Segmentation is the explicit two-variant result of sentence splitting:
// either the language-aware detector ran (StrategyPrimary), or the literal
// '.' split was used (StrategyFallback) with Reason explaining why.
type Segmentation struct {
	Sentences []string
	Strategy  Strategy
	Reason    string
}

// Segmenter splits cleaned text into sentence-like units in document order.
type Segmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
	reason    string
}

// NewSegmenter builds a segmenter backed by a Punkt-trained English sentence
// boundary detector. If the training data cannot be loaded the segmenter
// degrades to the literal '.' split; the degradation is logged, not surfaced.
func NewSegmenter() *Segmenter {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		log.Warnf("sentence tokenizer unavailable, falling back to '.' split: %v", err)
		return &Segmenter{reason: err.Error()}
	}
	return &Segmenter{tokenizer: tokenizer}
}

// Segment splits text into sentences, preserving order. Empty input yields
// an empty sentence list. Fallback output is lower quality: callers must not
// assume it is syntactically clean.
func (s *Segmenter) Segment(text string) Segmentation {
	if strings.TrimSpace(text) == "" {
		return Segmentation{Strategy: s.strategy(), Reason: s.reason}
	}
	if s.tokenizer == nil {
		return Segmentation{
			Sentences: fallbackSplit(text),
			Strategy:  StrategyFallback,
			Reason:    s.reason,
		}
	}

	raw := s.tokenizer.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, sent := range raw {
		if t := strings.TrimSpace(sent.Text); t != "" {
			out = append(out, t)
		}
	}
	return Segmentation{Sentences: out, Strategy: StrategyPrimary}
}

func (s *Segmenter) strategy() Strategy {
	if s.tokenizer == nil {
		return StrategyFallback
	}
	return StrategyPrimary
}

func fallbackSplit(text string) []string {
	parts := strings.Split(text, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
