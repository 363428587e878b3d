package scoring

import "github.com/abhisek/speakflow/internal/llm"

// scoreSchema is the structured output the model must return.
var scoreSchema = &llm.Schema{
	Name:        "pronunciation-score",
	Description: "An accuracy score and short coaching feedback for a spoken Mandarin phrase",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"description": "Accuracy from 0 (unrecognizable) to 100 (perfect)",
				"minimum":     0,
				"maximum":     100,
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One or two sentences of encouragement and correction, in English",
			},
		},
		"required":             []any{"score", "feedback"},
		"additionalProperties": false,
	},
}
