// The mcp binary exposes the pipeline's read side over the Model Context
// Protocol on stdio. It shares the HTTP binary's stores and index, so a
// client can query the same sessions the API built.
package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/data/redisStore"
	"github.com/akolanti/EsgAPI/internal/data/store"
	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/internal/pipeline/embedding"
	"github.com/akolanti/EsgAPI/internal/pipeline/embedding/googleEmbedding"
	"github.com/akolanti/EsgAPI/internal/pipeline/embedding/openaiEmbedding"
	"github.com/akolanti/EsgAPI/internal/pipeline/vectorDB"
	"github.com/akolanti/EsgAPI/internal/pipeline/vectorDB/qdrantDB"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
)

const serverVersion = "1.0.0"

// toolDeps carries the shared services behind every tool handler.
type toolDeps struct {
	vectorDatabase   vectorDB.DataProcessor
	embeddingService embedding.Embedder
	sessions         esg.SessionStore
}

type SearchInput struct {
	Query string `json:"query" jsonschema:"text to match against the indexed company documentation"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of chunks to return (default 5)"`
}

type SearchHit struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Text  string  `json:"text"`
	Score float32 `json:"score"`
}

type SearchOutput struct {
	Hits  []SearchHit `json:"hits"`
	Count int         `json:"count"`
}

type SessionInput struct {
	SessionID string `json:"session_id" jsonschema:"id of the session to read"`
}

type ProfileOutput struct {
	Profile esg.CompanyProfile `json:"profile"`
}

type PolicyEntry struct {
	ParameterName  string   `json:"parameter_name"`
	Category       string   `json:"category"`
	PolicyText     string   `json:"policy_text"`
	AlignmentScore *float64 `json:"alignment_score,omitempty"`
	Rationale      string   `json:"rationale,omitempty"`
}

type PoliciesOutput struct {
	Policies []PolicyEntry       `json:"policies"`
	Failures []esg.PolicyFailure `json:"failures,omitempty"`
}

func (d *toolDeps) handleSearchIndex(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, SearchOutput{}, errors.New("query must not be empty")
	}
	limit := input.Limit
	if limit <= 0 {
		limit = config.ProfileRetrievalK
	}

	queryVector, err := d.embeddingService.GetEmbedding(ctx, query)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("embedding query: %w", err)
	}
	hits, err := d.vectorDatabase.Query(ctx, queryVector, limit)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("querying index: %w", err)
	}

	output := SearchOutput{Hits: make([]SearchHit, len(hits)), Count: len(hits)}
	for i, hit := range hits {
		output.Hits[i] = SearchHit{
			Title: hit.Title,
			URL:   hit.DocumentURL,
			Text:  hit.Text,
			Score: hit.Score,
		}
	}
	return nil, output, nil
}

func (d *toolDeps) handleGetProfile(ctx context.Context, _ *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, ProfileOutput, error) {
	session, found := d.sessions.GetSession(ctx, input.SessionID)
	if !found {
		return nil, ProfileOutput{}, fmt.Errorf("session %q not found", input.SessionID)
	}
	if session.Profile == nil {
		return nil, ProfileOutput{}, fmt.Errorf("session %q has no extracted profile yet", input.SessionID)
	}
	return nil, ProfileOutput{Profile: *session.Profile}, nil
}

func (d *toolDeps) handleListPolicies(ctx context.Context, _ *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, PoliciesOutput, error) {
	session, found := d.sessions.GetSession(ctx, input.SessionID)
	if !found {
		return nil, PoliciesOutput{}, fmt.Errorf("session %q not found", input.SessionID)
	}
	if len(session.Policies) == 0 {
		return nil, PoliciesOutput{}, fmt.Errorf("session %q has no generated policies yet", input.SessionID)
	}

	//alignment results are keyed by policy index; no score means scoring has not run
	scores := make(map[int]esg.AlignmentResult, len(session.Alignment))
	for _, result := range session.Alignment {
		scores[result.PolicyIndex] = result
	}

	output := PoliciesOutput{Policies: make([]PolicyEntry, len(session.Policies)), Failures: session.Failures}
	for i, generated := range session.Policies {
		entry := PolicyEntry{
			ParameterName: generated.ParameterName,
			Category:      string(generated.Category),
			PolicyText:    generated.PolicyText,
		}
		if result, ok := scores[i]; ok {
			score := result.Score
			entry.AlignmentScore = &score
			entry.Rationale = result.Rationale
		}
		output.Policies[i] = entry
	}
	return nil, output, nil
}

func main() {

	_ = godotenv.Load()

	logger_i.InitStderr()
	var logger = logger_i.NewLogger("mcp")

	settings := config.Load()
	redisStore.Configure(settings.RedisAddr, settings.RedisPassword)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	vectorDatabase := qdrantDB.GetQdrantClient(ctx, settings)

	var embeddingService embedding.Embedder
	if settings.Provider == "gemini" {
		embeddingService = googleEmbedding.GetGoogleEmbeddingClient(ctx, settings)
	} else {
		embeddingService = openaiEmbedding.GetOpenAIEmbeddingClient(ctx, settings)
	}

	var sessions esg.SessionStore
	if sessionStore := store.GetRedisSessionStore(ctx); sessionStore != nil {
		sessions = sessionStore
	} else {
		logger.Error("Redis is offline, session tools will read an empty in-memory store")
		sessions = store.InitSessionStore()
	}

	if vectorDatabase == nil || embeddingService == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDatabase != nil, "EmbeddingService", embeddingService != nil)
		return
	}

	deps := &toolDeps{
		vectorDatabase:   vectorDatabase,
		embeddingService: embeddingService,
		sessions:         sessions,
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "esg-pipeline", Version: serverVersion}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_index",
		Description: "Similarity search over the indexed company documentation",
	}, deps.handleSearchIndex)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_profile",
		Description: "Fetch the company profile extracted for a session",
	}, deps.handleGetProfile)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_policies",
		Description: "List a session's generated policies with their alignment scores",
	}, deps.handleListPolicies)

	logger.Info("MCP server listening on stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("MCP server stopped", "error", err)
	}
}
