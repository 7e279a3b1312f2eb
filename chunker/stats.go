package chunker

import "github.com/nekesuresh/RFP/types"

// Statistics aggregates descriptive numbers over a chunk batch: chunk count
// plus sum, average, minimum and maximum of token and character counts.
// Purely read-only; intended for observability, never for control flow.
// An empty batch yields an empty mapping.
func Statistics(batch types.ChunkBatch) map[string]float64 {
	if len(batch) == 0 {
		return map[string]float64{}
	}

	var (
		totalTokens, totalChars int
		minTokens, maxTokens    = batch[0].TokenCount, batch[0].TokenCount
		minChars, maxChars      = batch[0].CharacterCount, batch[0].CharacterCount
	)
	for _, chunk := range batch {
		totalTokens += chunk.TokenCount
		totalChars += chunk.CharacterCount
		if chunk.TokenCount < minTokens {
			minTokens = chunk.TokenCount
		}
		if chunk.TokenCount > maxTokens {
			maxTokens = chunk.TokenCount
		}
		if chunk.CharacterCount < minChars {
			minChars = chunk.CharacterCount
		}
		if chunk.CharacterCount > maxChars {
			maxChars = chunk.CharacterCount
		}
	}

	count := float64(len(batch))
	return map[string]float64{
		"total_chunks":         count,
		"total_tokens":         float64(totalTokens),
		"total_characters":     float64(totalChars),
		"avg_tokens_per_chunk": float64(totalTokens) / count,
		"avg_chars_per_chunk":  float64(totalChars) / count,
		"min_tokens":           float64(minTokens),
		"max_tokens":           float64(maxTokens),
		"min_chars":            float64(minChars),
		"max_chars":            float64(maxChars),
	}
}
