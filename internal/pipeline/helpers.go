package pipeline

import (
	"context"
	"net/http"
	"time"

	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/internal/domain/jobModel"
	"github.com/akolanti/EsgAPI/internal/metrics"
	"github.com/akolanti/EsgAPI/internal/pipeline/alignment"
	"github.com/akolanti/EsgAPI/internal/pipeline/ingest"
	"github.com/akolanti/EsgAPI/internal/pipeline/policy"
	"github.com/akolanti/EsgAPI/internal/pipeline/profile"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
)

func completeJob(job jobModel.Job) jobModel.Job {
	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	return job
}

func logOutput(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("Pipeline stage", "Current Status", job.CurrentStep)
	return job
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	return s.jobErrorWithCode(job, err, message, http.StatusInternalServerError, canRetry)
}

func (s *service) jobErrorWithCode(job jobModel.Job, err error, message string, code int, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    code,
		Message: err.Error(),
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}

func (s *service) loadSession(ctx context.Context, sessionId string) (esg.Session, bool) {
	return s.sessions.GetSession(ctx, sessionId)
}

func (s *service) saveSession(ctx context.Context, log *logger_i.Logger, session esg.Session) {
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		log.Error("Failed to save session", "sessionId", session.Id, "err", err)
	}
}

func (s *service) executeSitemapStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) ([]string, error) {
	*job = logOutput(*job, jobModel.Fetching, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("sitemap_load", time.Since(start)) }()

	return s.fetcher.LoadSitemap(ctx, job.JobPayload.SitemapURL)
}

func (s *service) executeCrawlStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, urls []string, maxPages int) ([]esg.CrawledDocument, []esg.FetchFailure) {
	*job = logOutput(*job, jobModel.Fetching, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("crawl", time.Since(start)) }()

	return s.fetcher.FetchPages(ctx, urls, maxPages)
}

func (s *service) executeIndexStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, docs []esg.CrawledDocument) (int, error) {
	*job = logOutput(*job, jobModel.Chunking, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("indexing", time.Since(start)) }()

	return ingest.IndexDocuments(ctx, docs, s.llmProvider, s.embedder, s.vectorDB)
}

func (s *service) executeEmbeddingStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, text string) ([]float32, error) {
	*job = logOutput(*job, jobModel.EmbeddingAPICall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, text)
}

func (s *service) executeRetrievalStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, queryVector []float32, topK int) ([]esg.RetrievedChunk, error) {
	*job = logOutput(*job, jobModel.Retrieval, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.vectorDB.Query(ctx, queryVector, topK)
}

// retrieveContext embeds the query, searches the index, and renders the hits
// as the documentation block the prompts expect. An empty index yields an
// empty string, not an error.
func (s *service) retrieveContext(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, query string, topK int) (string, error) {
	queryVector, err := s.executeEmbeddingStep(ctx, log, job, query)
	if err != nil {
		return "", err
	}

	hits, err := s.executeRetrievalStep(ctx, log, job, queryVector, topK)
	if err != nil {
		return "", err
	}
	return profile.ContextBlock(hits), nil
}

func (s *service) executeProfileStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, documentation string) (*esg.CompanyProfile, error) {
	*job = logOutput(*job, jobModel.LLMCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return profile.Extract(ctx, s.llmProvider, documentation)
}

func (s *service) executePolicyStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, session esg.Session, sustainabilityContext string) ([]esg.GeneratedPolicy, []esg.PolicyFailure) {
	*job = logOutput(*job, jobModel.LLMCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return policy.Generate(ctx, s.llmProvider, session.Profile, session.Parameters, sustainabilityContext)
}

func (s *service) executeAlignmentStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, session esg.Session) ([]esg.AlignmentResult, []esg.PolicyFailure) {
	*job = logOutput(*job, jobModel.LLMCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("alignment", time.Since(start)) }()

	return alignment.Score(ctx, s.llmProvider, s.embedder, session.Profile, session.Policies)
}
