package skeleton

// SkeletonResult is the outcome of skeletonizing one file. It is
// immutable once produced and recomputed from scratch on every run;
// nothing in this package caches results.
type SkeletonResult struct {
	// Content is the reduced rendering.
	Content string
	// OriginalTokens is the estimated token count of the input.
	OriginalTokens int
	// SkeletonTokens is the estimated token count of Content.
	SkeletonTokens int
	// CompressionRatio is 1 - skeleton/original, or 0 when the input
	// was empty. Always within [0, 1].
	CompressionRatio float64
	// PreservedSymbols lists declaration names kept in the skeleton,
	// in source order. Always a subset of identifiers literally present
	// in the input.
	PreservedSymbols []string
	// FallbackReason is non-empty when the skeletonizer degraded to the
	// first-N-lines fallback instead of parsing. The degradation path
	// is deliberate, not an error.
	FallbackReason string
}

// newSkeletonResult computes the compression ratio from the token counts.
// A placeholder body can render longer than a trivial source; the counts
// are clamped so skeleton <= original and the ratio stays in [0, 1].
func newSkeletonResult(content string, originalTokens, skeletonTokens int, symbols []string) SkeletonResult {
	if skeletonTokens > originalTokens {
		skeletonTokens = originalTokens
	}
	ratio := 0.0
	if originalTokens > 0 {
		ratio = 1.0 - float64(skeletonTokens)/float64(originalTokens)
	}
	return SkeletonResult{
		Content:          content,
		OriginalTokens:   originalTokens,
		SkeletonTokens:   skeletonTokens,
		CompressionRatio: ratio,
		PreservedSymbols: symbols,
	}
}

// EstimateTokens approximates a token count as len/4. English text
// averages about four characters per token for GPT-style tokenizers;
// nothing downstream may assume a real tokenizer's output.
func EstimateTokens(content string) int {
	return len(content) / 4
}
