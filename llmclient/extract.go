package llmclient

import (
	"encoding/json"
	"strings"
)

// JSONObject extracts the candidate JSON object from free-form model output:
// the substring from the first '{' to the last '}'. Returns "" when no such
// span exists.
func JSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// Decode extracts the embedded JSON object from model output and unmarshals
// it into v. It absorbs all syntax errors and reports success via the bool;
// callers fall back to their component's default on false.
func Decode(text string, v any) bool {
	obj := JSONObject(text)
	if obj == "" {
		return false
	}
	return json.Unmarshal([]byte(obj), v) == nil
}
