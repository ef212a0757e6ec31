package format

import (
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
)

var numberedItem = regexp.MustCompile(`^\d+\.\s`)

// ToHTML renders a model answer as HTML. The answer text is markdown,
// but models often omit the blank line markdown requires before a list,
// so lists are normalized first.
func ToHTML(text string) string {
	md := []byte(normalizeLists(text))
	return string(markdown.ToHTML(md, nil, nil))
}

// normalizeLists inserts a blank line before list items that directly
// follow a text line.
func normalizeLists(text string) string {
	lines := strings.Split(text, "\n")
	var result []string

	for i, line := range lines {
		if isListItem(line) && i > 0 {
			prev := strings.TrimSpace(lines[i-1])
			if prev != "" && !isListItem(prev) {
				result = append(result, "")
			}
		}
		result = append(result, line)
	}

	return strings.Join(result, "\n")
}

func isListItem(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "- ") ||
		strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "+ ") ||
		numberedItem.MatchString(trimmed)
}
