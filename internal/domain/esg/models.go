package esg

import (
	"context"
	"time"
)

// CrawledDocument is one fetched page. Immutable once fetched; the indexing
// stage owns it from there.
type CrawledDocument struct {
	URL       string    `json:"url"`
	RawText   string    `json:"raw_text"`
	FetchedAt time.Time `json:"fetched_at"`
}

// PageChunk is a bounded slice of a document prepared for indexing. Title and
// Summary come from the per-chunk annotation call.
type PageChunk struct {
	DocumentURL string    `json:"url"`
	ChunkNumber int       `json:"chunk_number"`
	Text        string    `json:"text"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Offset      int       `json:"offset"`
	CrawledAt   time.Time `json:"crawled_at"`
}

// RetrievedChunk is a similarity-query hit.
type RetrievedChunk struct {
	PageChunk
	Score float32 `json:"score"`
}

type CompanyProfile struct {
	CompanyName string   `json:"company_name"`
	Mission     string   `json:"mission"`
	Vision      string   `json:"vision"`
	Values      []string `json:"values"`
	Objectives  []string `json:"objectives"`
	Overview    string   `json:"overview,omitempty"`
	Sources     []string `json:"sources,omitempty"`
}

type ESGCategory string

const (
	CategoryEnvironmental ESGCategory = "Environmental"
	CategorySocial        ESGCategory = "Social"
	CategoryGovernance    ESGCategory = "Governance"
)

// ESGParameter is one row of the parameter workbook. Name is the policy name
// column, Description its scope text. Weight defaults to 1.0 when the sheet
// carries no override column.
type ESGParameter struct {
	Category    ESGCategory `json:"category"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Components  string      `json:"components,omitempty"`
	Targets     string      `json:"targets,omitempty"`
	Timeline    string      `json:"timeline,omitempty"`
	Weight      float64     `json:"weight"`
}

type GeneratedPolicy struct {
	ParameterIndex int         `json:"parameter_index"`
	ParameterName  string      `json:"parameter_name"`
	Category       ESGCategory `json:"category"`
	PolicyText     string      `json:"policy_text"`
}

// PolicyFailure is the explicit record for a parameter whose generation
// failed. Failed parameters are reported, never silently dropped.
type PolicyFailure struct {
	ParameterIndex int    `json:"parameter_index"`
	ParameterName  string `json:"parameter_name"`
	Error          string `json:"error"`
}

type AlignmentResult struct {
	PolicyIndex   int     `json:"policy_index"`
	ParameterName string  `json:"parameter_name"`
	Score         float64 `json:"score"`
	Rationale     string  `json:"rationale"`
}

type FetchFailure struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// CrawlStats summarizes one crawl-and-index run.
type CrawlStats struct {
	PagesRequested int            `json:"pages_requested"`
	PagesCrawled   int            `json:"pages_crawled"`
	ChunksIndexed  int            `json:"chunks_indexed"`
	Failures       []FetchFailure `json:"failures,omitempty"`
}

// Session holds the per-session pipeline artifacts. Profile gates policy
// generation, Policies gate alignment scoring.
type Session struct {
	Id                string            `json:"id"`
	CreatedAt         time.Time         `json:"created_at"`
	LastCrawl         *CrawlStats       `json:"last_crawl,omitempty"`
	Parameters        []ESGParameter    `json:"parameters,omitempty"`
	Profile           *CompanyProfile   `json:"profile,omitempty"`
	Policies          []GeneratedPolicy `json:"policies,omitempty"`
	Failures          []PolicyFailure   `json:"policy_failures,omitempty"`
	Alignment         []AlignmentResult `json:"alignment,omitempty"`
	AlignmentFailures []PolicyFailure   `json:"alignment_failures,omitempty"`
}

type SessionStore interface {
	ValidateSessionId(ctx context.Context, id string) bool
	InitNewSession(ctx context.Context, id string) error
	GetSession(ctx context.Context, id string) (Session, bool)
	SaveSession(ctx context.Context, session Session) error
	AppendReport(ctx context.Context, sessionId string, report Report) error
	GetReports(ctx context.Context, sessionId string) ([]Report, error)
}

// Report is a locally ingested document, a sustainability report or similar,
// indexed through the same chunk and embed path as crawled pages.
type Report struct {
	Id         string     `json:"report_id"`
	Name       string     `json:"report_name"`
	IngestedAt time.Time  `json:"ingested_at"`
	Kind       ReportKind `json:"kind"`
}

type ReportKind string

var (
	PDF  ReportKind = "PDF"
	DOCX ReportKind = "DOCX"
	TXT  ReportKind = "TXT"
	MD   ReportKind = "MD"
	ERR  ReportKind = "ERROR"
)
