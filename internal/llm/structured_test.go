package llm

import (
	"testing"
)

func scoreTestSchema() *Schema {
	return &Schema{
		Name: "test-score",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"score":    map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				"feedback": map[string]any{"type": "string"},
			},
			"required":             []any{"score", "feedback"},
			"additionalProperties": false,
		},
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"padded", "\n  {\"a\":1}  \n", `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fence without language", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"preamble", `Here is the result: {"a":{"b":2}} Hope it helps.`, `{"a":{"b":2}}`},
		{"array", `[1,2]`, `[1,2]`},
		{"no json", "sorry", "sorry"},
		{"empty", "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.in); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateStructured(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		invalid bool
	}{
		{"valid", `{"score":90,"feedback":"好"}`, `{"score":90,"feedback":"好"}`, false},
		{"fenced valid", "```json\n{\"score\":0,\"feedback\":\"\"}\n```", `{"score":0,"feedback":""}`, false},
		{"missing field", `{"score":90}`, "", true},
		{"out of range", `{"score":140,"feedback":"!"}`, "", true},
		{"wrong type", `{"score":"high","feedback":"!"}`, "", true},
		{"extra field", `{"score":1,"feedback":"!","tone":3}`, "", true},
		{"not json", `great job`, "", true},
		{"empty", ``, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateStructured(scoreTestSchema(), tt.text)
			if tt.invalid {
				k, ok := KindOf(err)
				if !ok || k != KindInvalidOutput {
					t.Fatalf("err = %v, want invalid output", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	s := scoreTestSchema()
	a, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, _ := compileSchema(s)
	if a != b {
		t.Error("expected the compiled schema to be reused")
	}
}

func TestCompileSchema_Broken(t *testing.T) {
	_, err := validateStructured(&Schema{
		Name:       "test-broken",
		Definition: map[string]any{"type": 12},
	}, `{}`)
	if err == nil {
		t.Fatal("expected a compile error")
	}
	if _, ok := KindOf(err); ok {
		t.Error("a broken schema is a programming error, not a model failure")
	}
}
