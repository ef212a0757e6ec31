package llmclient

import "testing"

func TestJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare_object", input: `{"a": 1}`, want: `{"a": 1}`},
		{name: "fenced", input: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "prose_around", input: `Sure! Here you go: {"intent": "search"} Hope that helps.`, want: `{"intent": "search"}`},
		{name: "nested", input: `x {"a": {"b": 2}} y`, want: `{"a": {"b": 2}}`},
		{name: "no_object", input: "no json here", want: ""},
		{name: "only_open_brace", input: "{oops", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JSONObject(tt.input); got != tt.want {
				t.Errorf("JSONObject(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	var out struct {
		Intent string `json:"intent"`
	}

	if !Decode(`The answer is {"intent": "analyze"}.`, &out) {
		t.Fatal("Decode should succeed")
	}
	if out.Intent != "analyze" {
		t.Errorf("intent = %q", out.Intent)
	}

	if Decode("not json at all", &out) {
		t.Error("Decode should fail without a JSON object")
	}
	if Decode(`{"intent": }`, &out) {
		t.Error("Decode should fail on malformed JSON")
	}
}
