package profile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akolanti/EsgAPI/internal/domain/esg"
)

type mockProvider struct {
	generateJSONFunc func(ctx context.Context, system string, user string) (string, error)
}

func (m *mockProvider) Generate(ctx context.Context, system string, user string) (string, error) {
	return "", nil
}
func (m *mockProvider) GenerateJSON(ctx context.Context, system string, user string) (string, error) {
	return m.generateJSONFunc(ctx, system, user)
}

const goodResponse = `{
	"company_name": "Acme Corp",
	"mission": "Build sustainable software",
	"vision": "A carbon neutral industry",
	"values": ["Sustainability", "sustainability", "Integrity", " "],
	"objectives": [" Reduce emissions ", "Publish annual reports"],
	"overview": "Acme builds developer tooling.",
	"sources": ["https://acme.example/about"]
}`

func TestExtract(t *testing.T) {
	provider := &mockProvider{
		generateJSONFunc: func(ctx context.Context, system string, user string) (string, error) {
			if !strings.Contains(user, "# About Acme") {
				t.Errorf("Documentation missing from prompt: %q", user)
			}
			return goodResponse, nil
		},
	}

	p, err := Extract(context.Background(), provider, "# About Acme\n\nAcme builds developer tooling.")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if p.Mission != "Build sustainable software" || p.Vision != "A carbon neutral industry" {
		t.Errorf("Profile core fields mismatch: %+v", p)
	}
	if len(p.Values) != 2 || p.Values[0] != "Sustainability" || p.Values[1] != "Integrity" {
		t.Errorf("Values should be deduplicated ignoring case, first spelling kept: %v", p.Values)
	}
	if len(p.Objectives) != 2 || p.Objectives[0] != "Reduce emissions" {
		t.Errorf("Objectives should be trimmed in order: %v", p.Objectives)
	}
}

func TestExtract_FencedResponse(t *testing.T) {
	provider := &mockProvider{
		generateJSONFunc: func(ctx context.Context, system string, user string) (string, error) {
			return "```json\n" + goodResponse + "\n```", nil
		},
	}

	p, err := Extract(context.Background(), provider, "documentation")
	if err != nil {
		t.Fatalf("Extract should strip the code fence: %v", err)
	}
	if p.CompanyName != "Acme Corp" {
		t.Errorf("CompanyName got %q", p.CompanyName)
	}
}

func TestExtract_Failures(t *testing.T) {
	tests := []struct {
		name          string
		documentation string
		response      string
		responseErr   error
		wantReason    string
		wantWrapped   bool
	}{
		{
			name:          "Empty_Documentation",
			documentation: "   ",
			wantReason:    "no indexed company content",
		},
		{
			name:          "Completion_Error",
			documentation: "docs",
			responseErr:   errors.New("provider down"),
			wantReason:    "completion failed",
			wantWrapped:   true,
		},
		{
			name:          "Invalid_JSON",
			documentation: "docs",
			response:      "not json at all",
			wantReason:    "not valid JSON",
			wantWrapped:   true,
		},
		{
			name:          "Missing_Mission",
			documentation: "docs",
			response:      `{"mission": "  ", "vision": "something"}`,
			wantReason:    "missing mission",
		},
		{
			name:          "Missing_Vision",
			documentation: "docs",
			response:      `{"mission": "something", "vision": ""}`,
			wantReason:    "missing vision",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{
				generateJSONFunc: func(ctx context.Context, system string, user string) (string, error) {
					return tt.response, tt.responseErr
				},
			}

			_, err := Extract(context.Background(), provider, tt.documentation)

			var extractionErr *esg.ExtractionError
			if !errors.As(err, &extractionErr) {
				t.Fatalf("Expected ExtractionError, got %v", err)
			}
			if !strings.Contains(extractionErr.Reason, tt.wantReason) {
				t.Errorf("Reason got %q, want it to mention %q", extractionErr.Reason, tt.wantReason)
			}
			if tt.wantWrapped && extractionErr.Err == nil {
				t.Error("Expected a wrapped cause")
			}
			if !tt.wantWrapped && extractionErr.Err != nil {
				t.Errorf("Validation failures should carry no wrapped cause, got %v", extractionErr.Err)
			}
		})
	}
}

func TestContextBlock(t *testing.T) {
	crawledAt := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	hits := []esg.RetrievedChunk{
		{PageChunk: esg.PageChunk{Title: "About Us", Text: "We build things.", DocumentURL: "https://acme.example/about", CrawledAt: crawledAt}},
		{PageChunk: esg.PageChunk{Title: "Values", Text: "Integrity first.", DocumentURL: "https://acme.example/values", CrawledAt: crawledAt}},
	}

	block := ContextBlock(hits)

	if !strings.HasPrefix(block, "# About Us\n\nWe build things.") {
		t.Errorf("First chunk not rendered at the top: %q", block)
	}
	if !strings.Contains(block, "Source: https://acme.example/about") {
		t.Errorf("Source line missing: %q", block)
	}
	if !strings.Contains(block, "Last Updated: 2024-03-15 09:30:00") {
		t.Errorf("Timestamp missing or misformatted: %q", block)
	}
	if !strings.Contains(block, "\n\n---\n\n") {
		t.Errorf("Chunks should be separated by a rule: %q", block)
	}

	if ContextBlock(nil) != "" {
		t.Error("Empty hits should render an empty block")
	}
}

func TestRender(t *testing.T) {
	p := &esg.CompanyProfile{
		CompanyName: "Acme Corp",
		Mission:     "Build sustainable software",
		Vision:      "A carbon neutral industry",
		Values:      []string{"Sustainability", "Integrity"},
		Objectives:  []string{"Reduce emissions"},
		Overview:    "Acme builds developer tooling.",
	}

	out := Render(p)

	for _, want := range []string{
		"Company Name: Acme Corp",
		"Mission: Build sustainable software",
		"Core Values: Sustainability, Integrity",
		"- Reduce emissions",
		"Overview: Acme builds developer tooling.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q:\n%s", want, out)
		}
	}
}
