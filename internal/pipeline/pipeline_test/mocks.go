package pipeline_test

import (
	"context"
	"time"

	"github.com/akolanti/EsgAPI/internal/domain/esg"
)

// MockFetcher implements crawler.Fetcher
type MockFetcher struct {
	OnFetchPages  func(ctx context.Context, urls []string, maxPages int) ([]esg.CrawledDocument, []esg.FetchFailure)
	OnLoadSitemap func(ctx context.Context, sitemapURL string) ([]string, error)
}

func (m *MockFetcher) FetchPages(ctx context.Context, urls []string, maxPages int) ([]esg.CrawledDocument, []esg.FetchFailure) {
	if m.OnFetchPages != nil {
		return m.OnFetchPages(ctx, urls, maxPages)
	}
	return []esg.CrawledDocument{
		{URL: "https://acme.example/about", RawText: "# About\n\nWe build sustainable software.", FetchedAt: time.Now().UTC()},
	}, nil
}

func (m *MockFetcher) LoadSitemap(ctx context.Context, sitemapURL string) ([]string, error) {
	if m.OnLoadSitemap != nil {
		return m.OnLoadSitemap(ctx, sitemapURL)
	}
	return []string{"https://acme.example/", "https://acme.example/about"}, nil
}

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnQuery            func(ctx context.Context, vectorVal []float32, topK int) ([]esg.RetrievedChunk, error)
	OnEnsureCollection func(ctx context.Context, name string) error
	OnUpsertBatch      func(ctx context.Context, name string, chunks []esg.PageChunk, vectors [][]float32) error
	OnCountPoints      func(ctx context.Context, name string) (uint64, error)
	OnReset            func(ctx context.Context, name string) error
}

func (m *MockVectorDB) Query(ctx context.Context, v []float32, topK int) ([]esg.RetrievedChunk, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, v, topK)
	}
	return []esg.RetrievedChunk{
		{
			PageChunk: esg.PageChunk{
				DocumentURL: "https://acme.example/about",
				Title:       "About Acme",
				Text:        "We build sustainable software.",
			},
			Score: 0.9,
		},
	}, nil
}

func (m *MockVectorDB) EnsureCollection(ctx context.Context, name string) error {
	if m.OnEnsureCollection != nil {
		return m.OnEnsureCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) UpsertBatch(ctx context.Context, name string, chunks []esg.PageChunk, vectors [][]float32) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, name, chunks, vectors)
	}
	return nil
}

func (m *MockVectorDB) CountPoints(ctx context.Context, name string) (uint64, error) {
	if m.OnCountPoints != nil {
		return m.OnCountPoints(ctx, name)
	}
	return 0, nil
}

func (m *MockVectorDB) Reset(ctx context.Context, name string) error {
	if m.OnReset != nil {
		return m.OnReset(ctx, name)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error)
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks, isHuge)
	}
	// Return dummy vectors matching chunk size
	return make([][]float32, len(chunks)), nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

// MockLLM implements llm.Provider. The default JSON answer carries the keys
// both the profile parser and the chunk annotator look for.
type MockLLM struct {
	OnGenerate     func(ctx context.Context, system string, user string) (string, error)
	OnGenerateJSON func(ctx context.Context, system string, user string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, system string, user string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, system, user)
	}
	return "mocked policy text", nil
}

func (m *MockLLM) GenerateJSON(ctx context.Context, system string, user string) (string, error) {
	if m.OnGenerateJSON != nil {
		return m.OnGenerateJSON(ctx, system, user)
	}
	return `{"company_name":"Acme Corp","mission":"Build sustainable software","vision":"A carbon neutral industry","values":["Sustainability"],"objectives":["Reduce emissions"],"title":"Chunk title","summary":"Chunk summary"}`, nil
}

// MockSessionStore implements esg.SessionStore over a map, with a save log so
// tests can assert what the pipeline wrote back.
type MockSessionStore struct {
	Sessions map[string]esg.Session
	Saved    []esg.Session

	OnSaveSession func(ctx context.Context, session esg.Session) error
}

func NewMockSessionStore(sessions ...esg.Session) *MockSessionStore {
	m := &MockSessionStore{Sessions: make(map[string]esg.Session)}
	for _, s := range sessions {
		m.Sessions[s.Id] = s
	}
	return m
}

func (m *MockSessionStore) ValidateSessionId(ctx context.Context, id string) bool {
	_, ok := m.Sessions[id]
	return ok
}

func (m *MockSessionStore) InitNewSession(ctx context.Context, id string) error {
	m.Sessions[id] = esg.Session{Id: id, CreatedAt: time.Now().UTC()}
	return nil
}

func (m *MockSessionStore) GetSession(ctx context.Context, id string) (esg.Session, bool) {
	session, ok := m.Sessions[id]
	return session, ok
}

func (m *MockSessionStore) SaveSession(ctx context.Context, session esg.Session) error {
	if m.OnSaveSession != nil {
		return m.OnSaveSession(ctx, session)
	}
	m.Sessions[session.Id] = session
	m.Saved = append(m.Saved, session)
	return nil
}

func (m *MockSessionStore) AppendReport(ctx context.Context, sessionId string, report esg.Report) error {
	return nil
}

func (m *MockSessionStore) GetReports(ctx context.Context, sessionId string) ([]esg.Report, error) {
	return nil, nil
}
