package api

import (
	"time"

	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/internal/params"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	SessionId string            `json:"session_id" example:"session_550"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

// PipelineOutcome is the result summary of a finished stage job. Full
// artifacts are served by the session endpoints, not the job status.
type PipelineOutcome struct {
	PagesCrawled    int      `json:"pages_crawled,omitempty"`
	ChunksIndexed   int      `json:"chunks_indexed,omitempty"`
	FailedURLs      []string `json:"failed_urls,omitempty"`
	PoliciesWritten int      `json:"policies_written,omitempty"`
	PoliciesFailed  int      `json:"policies_failed,omitempty"`
}

type Result struct {
	Status          string           `json:"status"`
	PipelineOutcome *PipelineOutcome `json:"outcome,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type SessionResponse struct {
	SessionId string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStatusResponse is the full session view: everything the pipeline
// has produced for this session so far.
type SessionStatusResponse struct {
	Session esg.Session  `json:"session"`
	Reports []esg.Report `json:"reports,omitempty"`
}

type ProfileResponse struct {
	SessionId string              `json:"session_id"`
	Profile   *esg.CompanyProfile `json:"profile"`
}

type PoliciesResponse struct {
	SessionId string                `json:"session_id"`
	Policies  []esg.GeneratedPolicy `json:"policies"`
	Failures  []esg.PolicyFailure   `json:"failures,omitempty"`
}

type AlignmentResponse struct {
	SessionId string                `json:"session_id"`
	Results   []esg.AlignmentResult `json:"results"`
	Failures  []esg.PolicyFailure   `json:"failures,omitempty"`
}

type ParametersResponse struct {
	SessionId  string             `json:"session_id"`
	Parameters []esg.ESGParameter `json:"parameters"`
	RowErrors  []params.RowError  `json:"row_errors,omitempty"`
	Coverage   string             `json:"coverage_warning,omitempty"`
}

type IndexStatsResponse struct {
	Collection string `json:"collection"`
	Points     uint64 `json:"points"`
}

// requests---------------------

type CrawlRequest struct {
	SessionID  string   `json:"session_id" validate:"required"`
	URLs       []string `json:"urls,omitempty"`
	SitemapURL string   `json:"sitemap_url,omitempty"`
	MaxPages   int      `json:"max_pages,omitempty"`
}

// StageRequest starts a profile, policy or alignment job for a session.
type StageRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}

type IngestReportRequest struct {
	SessionID  string `json:"session_id" validate:"required"`
	ReportName string `json:"report_name" validate:"required"`
}
