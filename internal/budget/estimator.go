package budget

// EstimationMethod names the heuristic used for token counts.
const EstimationMethod = "Heuristic (~4 chars/token)"

// EstimateTokens approximates the token count of content. English text
// averages about 4 characters per token for GPT tokenizers.
func EstimateTokens(content string) int {
	return len(content) / 4
}

// EstimateFileTokens approximates the cost of a file in packed output,
// including the header and footer markers that repeat the path.
func EstimateFileTokens(path, content string) int {
	overhead := 20 + len(path)*2 + 50
	return EstimateTokens(content) + overhead/4
}
