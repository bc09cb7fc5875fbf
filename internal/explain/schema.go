package explain

import "github.com/abhisek/pyqdeck/internal/llm"

// ExplanationSchema defines the JSON schema for LLM explanation responses.
var ExplanationSchema = &llm.Schema{
	Name:        "question-explanation",
	Description: "A study explanation for a previous-year exam question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "How to approach and answer the question, in plain prose. Walk through the concept the question tests and the reasoning a student should follow. Markdown formatting is allowed.",
			},
			"key_points": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "3-5 short takeaways worth remembering for the exam, each a single sentence.",
			},
		},
		"required":             []any{"explanation", "key_points"},
		"additionalProperties": false,
	},
}
