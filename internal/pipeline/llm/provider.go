package llm

import (
	"context"
	"strings"
)

type Provider interface {
	// Generate runs one completion and returns the raw text
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)

	// GenerateJSON runs one completion in JSON mode, the response is a
	// single JSON object
	GenerateJSON(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// CleanJSONResponse strips the markdown code fence some models wrap around
// JSON output even in JSON mode.
func CleanJSONResponse(out string) string {
	out = strings.TrimSpace(out)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}
