package llm

import (
	"fmt"
	"strings"
)

const summarySystemPrompt = `You are a market research analyst. You will receive a list of trending repository names and article headlines joined into one text.

Write a single neutral paragraph that summarizes the overall trends.

Rules:
- Plain text only, no markdown, no bullet points, no preamble
- Do not invent facts that are not present in the input
- Stay within the requested length`

func summaryUserPrompt(input SummaryInput) string {
	return fmt.Sprintf("Length: between %d and %d words.\n\nText:\n%s", input.MinLength, input.MaxLength, input.Corpus)
}

// maxOutputTokens gives the model room for MaxLength words without letting it run on.
func maxOutputTokens(maxLength int) int64 {
	return int64(maxLength)*2 + 16
}

func cleanSummary(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```text")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "Summary:")
	return strings.Join(strings.Fields(content), " ")
}
