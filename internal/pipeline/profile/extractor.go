package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/internal/pipeline/llm"
)

const extractorSystemPrompt = "You are a company profile analyzer."

const extractionPromptTemplate = `Extract and analyze company profile information from this documentation:
%s

Return a JSON object with exactly these keys:
{"company_name": string, "mission": string, "vision": string, "values": [string], "objectives": [string], "overview": string, "sources": [string]}

Use an empty string or empty array for any field the documentation does not support. Do not invent information.`

// Extract derives a structured company profile from retrieved documentation.
// The response is validated strictly, a profile without a mission or vision
// statement is rejected rather than partially accepted.
func Extract(ctx context.Context, provider llm.Provider, documentation string) (*esg.CompanyProfile, error) {
	if strings.TrimSpace(documentation) == "" {
		return nil, &esg.ExtractionError{Reason: "no indexed company content to extract from"}
	}

	out, err := provider.GenerateJSON(ctx, extractorSystemPrompt, fmt.Sprintf(extractionPromptTemplate, documentation))
	if err != nil {
		return nil, &esg.ExtractionError{Reason: "completion failed", Err: err}
	}

	var parsed esg.CompanyProfile
	if err = json.Unmarshal([]byte(llm.CleanJSONResponse(out)), &parsed); err != nil {
		return nil, &esg.ExtractionError{Reason: "response is not valid JSON", Err: err}
	}

	if err = validate(&parsed); err != nil {
		return nil, err
	}

	parsed.Values = dedupeFold(parsed.Values)
	parsed.Objectives = trimAll(parsed.Objectives)
	parsed.Sources = trimAll(parsed.Sources)
	return &parsed, nil
}

func validate(p *esg.CompanyProfile) error {
	p.Mission = strings.TrimSpace(p.Mission)
	p.Vision = strings.TrimSpace(p.Vision)

	if p.Mission == "" {
		return &esg.ExtractionError{Reason: "missing mission statement"}
	}
	if p.Vision == "" {
		return &esg.ExtractionError{Reason: "missing vision statement"}
	}
	return nil
}

// dedupeFold drops repeated values ignoring case, first spelling wins.
func dedupeFold(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ContextBlock renders retrieved chunks the way the extractor expects them.
func ContextBlock(hits []esg.RetrievedChunk) string {
	if len(hits) == 0 {
		return ""
	}
	formatted := make([]string, 0, len(hits))
	for _, hit := range hits {
		formatted = append(formatted, fmt.Sprintf("# %s\n\n%s\n\nSource: %s\nLast Updated: %s",
			hit.Title, hit.Text, hit.DocumentURL, hit.CrawledAt.Format("2006-01-02 15:04:05")))
	}
	return strings.Join(formatted, "\n\n---\n\n")
}

// Render formats a profile as a readable block for downstream prompts.
func Render(p *esg.CompanyProfile) string {
	var b strings.Builder
	if p.CompanyName != "" {
		fmt.Fprintf(&b, "Company Name: %s\n", p.CompanyName)
	}
	fmt.Fprintf(&b, "Mission: %s\n", p.Mission)
	fmt.Fprintf(&b, "Vision: %s\n", p.Vision)
	if len(p.Values) > 0 {
		fmt.Fprintf(&b, "Core Values: %s\n", strings.Join(p.Values, ", "))
	}
	if len(p.Objectives) > 0 {
		b.WriteString("Key Objectives:\n")
		for _, o := range p.Objectives {
			fmt.Fprintf(&b, "- %s\n", o)
		}
	}
	if p.Overview != "" {
		fmt.Fprintf(&b, "Overview: %s\n", p.Overview)
	}
	return b.String()
}
