package format

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain_paragraph",
			input: "The most common drug is cisplatin.",
			want:  []string{"<p>The most common drug is cisplatin.</p>"},
		},
		{
			name:  "bold",
			input: "**cisplatin** leads with 12 studies",
			want:  []string{"<strong>cisplatin</strong>"},
		},
		{
			name:  "list_without_blank_line",
			input: "**Top drugs:**\n- cisplatin: 12\n- paclitaxel: 9",
			want:  []string{"<ul>", "<li>cisplatin: 12</li>", "<li>paclitaxel: 9</li>"},
		},
		{
			name:  "numbered_list_without_blank_line",
			input: "Ranked:\n1. cisplatin\n2. paclitaxel",
			want:  []string{"<ol>", "<li>cisplatin</li>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToHTML(tt.input)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML(%q) = %q, missing %q", tt.input, got, want)
				}
			}
		})
	}
}
