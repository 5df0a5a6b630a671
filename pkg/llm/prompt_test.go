package llm

import "testing"

func TestCleanSummary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "AI tooling dominates.",
			want:  "AI tooling dominates.",
		},
		{
			name:  "strips text fenced block",
			input: "```text\nAI tooling dominates.\n```",
			want:  "AI tooling dominates.",
		},
		{
			name:  "strips plain fenced block",
			input: "```\nAI tooling dominates.\n```",
			want:  "AI tooling dominates.",
		},
		{
			name:  "strips label and collapses whitespace",
			input: "  Summary:  AI   tooling\n dominates.  ",
			want:  "AI tooling dominates.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanSummary(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMaxOutputTokens(t *testing.T) {
	if got := maxOutputTokens(50); got != 116 {
		t.Errorf("got %d, want 116", got)
	}
}
