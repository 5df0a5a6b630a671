package summary

import (
	"strings"
	"unicode"

	"markettrends/internal/model"
)

// Corpus joins the batch titles with a single space, in batch order.
func Corpus(batch model.RecordBatch) string {
	return strings.Join(batch.Titles(), " ")
}

// HasContent reports whether corpus holds at least one letter or digit.
func HasContent(corpus string) bool {
	return strings.IndexFunc(corpus, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}
