package summary

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"markettrends/internal/model"
)

func TestCorpus(t *testing.T) {
	tests := []struct {
		name  string
		batch model.RecordBatch
		want  string
	}{
		{name: "empty batch", batch: nil, want: ""},
		{name: "single", batch: model.RecordBatch{{Title: "A"}}, want: "A"},
		{name: "joined in order", batch: model.RecordBatch{{Title: "A"}, {Title: "B"}}, want: "A B"},
		{name: "titles kept verbatim", batch: model.RecordBatch{{Title: " x "}, {Title: ""}, {Title: "y"}}, want: " x   y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Corpus(tt.batch))
		})
	}
}

func TestHasContent(t *testing.T) {
	assert.Equal(t, false, HasContent(""))
	assert.Equal(t, false, HasContent("  \t "))
	assert.Equal(t, false, HasContent("-- !! ..."))
	assert.Equal(t, true, HasContent("A"))
	assert.Equal(t, true, HasContent("... 42 ..."))
	assert.Equal(t, true, HasContent("日本"))
}
