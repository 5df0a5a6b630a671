package llm

import "context"

const promptVersion = "v1"

// SummaryInput asks for a summary of Corpus between MinLength and MaxLength words.
// The bounds are hints: a sparse corpus may legitimately yield a shorter summary.
type SummaryInput struct {
	Corpus    string
	MinLength int
	MaxLength int
}

type SummaryResult struct {
	Text          string
	ModelUsed     string
	PromptVersion string
}

// SummaryClient is a long-lived handle to a summarization capability. Implementations
// decode deterministically so identical input yields identical output.
type SummaryClient interface {
	Summarize(ctx context.Context, input SummaryInput) (*SummaryResult, error)
	Name() string
}
