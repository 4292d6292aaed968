package jobModel

import (
	"context"
	"time"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	JobInit          InternalStatus = "Init"
	Fetching         InternalStatus = "Fetching"
	Chunking         InternalStatus = "Chunking"
	EmbeddingAPICall InternalStatus = "EmbeddingAPI"
	VectorDBCall     InternalStatus = "VectorDB"
	Retrieval        InternalStatus = "Retrieval"
	LLMCall          InternalStatus = "LLM"
	RedisCall        InternalStatus = "Redis"

	Error    InternalStatus = "Error"
	Complete InternalStatus = "Complete"

	JobTypeCrawl     JobType = "SiteCrawl"
	JobTypeReport    JobType = "ReportIngest"
	JobTypeProfile   JobType = "ProfileExtract"
	JobTypePolicies  JobType = "PolicyGenerate"
	JobTypeAlignment JobType = "AlignmentScore"
)

type Job struct {
	Id          string         `json:"id"`
	SessionId   string         `json:"session_id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

// JobPayload carries the request half of a job going in and the result
// summary coming back out.
type JobPayload struct {
	URLs       []string `json:"urls,omitempty"`
	SitemapURL string   `json:"sitemap_url,omitempty"`
	MaxPages   int      `json:"max_pages,omitempty"`

	ReportName string `json:"report_name,omitempty"`
	ReportPath string `json:"report_path,omitempty"`

	PagesCrawled    int      `json:"pages_crawled,omitempty"`
	ChunksIndexed   int      `json:"chunks_indexed,omitempty"`
	FailedURLs      []string `json:"failed_urls,omitempty"`
	PoliciesWritten int      `json:"policies_written,omitempty"`
	PoliciesFailed  int      `json:"policies_failed,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
