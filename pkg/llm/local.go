package llm

import (
	"context"
	"errors"
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

const localModelName = "local-extractive"

var errNoWords = errors.New("local summarizer: no words in corpus")

// LocalClient is an in-process extractive summarizer. It picks the window of at most
// MaxLength words whose stems recur most often across the corpus. It never samples,
// so the same corpus and bounds always give the same summary.
type LocalClient struct{}

func NewLocalClient() *LocalClient {
	return &LocalClient{}
}

func (c *LocalClient) Name() string {
	return localModelName
}

func (c *LocalClient) Summarize(ctx context.Context, input SummaryInput) (*SummaryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words := strings.Fields(input.Corpus)
	if len(words) == 0 {
		return nil, errNoWords
	}

	if input.MaxLength > 0 && len(words) > input.MaxLength {
		start := bestWindow(stemScores(words), input.MaxLength)
		words = words[start : start+input.MaxLength]
	}

	return &SummaryResult{
		Text:          strings.Join(words, " "),
		ModelUsed:     localModelName,
		PromptVersion: promptVersion,
	}, nil
}

// stemScores weights each word by how often its stem appears in the corpus.
// Stop words and punctuation score zero.
func stemScores(words []string) []int {
	stems := make([]string, len(words))
	freq := make(map[string]int)
	for i, w := range words {
		token := strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}))
		if token == "" || snowballeng.IsStopWord(token) {
			continue
		}
		stems[i] = snowballeng.Stem(token, false)
		freq[stems[i]]++
	}

	scores := make([]int, len(words))
	for i, s := range stems {
		if s != "" {
			scores[i] = freq[s]
		}
	}
	return scores
}

// bestWindow returns the start of the highest scoring run of size words.
// Ties go to the earliest window.
func bestWindow(scores []int, size int) int {
	sum := 0
	for _, s := range scores[:size] {
		sum += s
	}

	best, bestStart := sum, 0
	for i := size; i < len(scores); i++ {
		sum += scores[i] - scores[i-size]
		if sum > best {
			best = sum
			bestStart = i - size + 1
		}
	}
	return bestStart
}
