package pipeline

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/internal/domain/jobModel"
	"github.com/akolanti/EsgAPI/internal/metrics"
	"github.com/akolanti/EsgAPI/internal/pipeline/crawler"
	"github.com/akolanti/EsgAPI/internal/pipeline/embedding"
	"github.com/akolanti/EsgAPI/internal/pipeline/ingest"
	"github.com/akolanti/EsgAPI/internal/pipeline/llm"
	"github.com/akolanti/EsgAPI/internal/pipeline/vectorDB"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
)

/*
ARCHITECTURE NOTE: OPAQUE INTERFACE PATTERN
---------------------------------------------------------

1. Service (Interface):
  - The PUBLIC contract the worker calls.
  - One method per pipeline stage, each takes and returns a Job.

2. service (Private Struct):
  - The PRIVATE implementation holding external clients
    (crawler, vector DB, LLM, embedder) and the session store.
  - Lowercase so other packages cannot reach the dependencies directly.

3. Pointer Receiver (*service):
  - Methods on (*service) satisfy the Service interface implicitly.

4. Dependency Injection (NewService):
  - Links the private struct to the public interface and lets tests
    swap real clients for mocks.
*/

// Service is the stage surface the worker drives. Stages are ordered:
// a profile gates policy generation, policies gate alignment scoring.
type Service interface {
	CrawlSite(ctx context.Context, job jobModel.Job) jobModel.Job
	IngestReport(ctx context.Context, job jobModel.Job) jobModel.Job
	ExtractProfile(ctx context.Context, job jobModel.Job) jobModel.Job
	GeneratePolicies(ctx context.Context, job jobModel.Job) jobModel.Job
	ScoreAlignment(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	fetcher     crawler.Fetcher
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	sessions    esg.SessionStore
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(fetcher crawler.Fetcher, vector vectorDB.DataProcessor, llmProvider llm.Provider, em embedding.Embedder, sessions esg.SessionStore) Service {
	return &service{
		fetcher:     fetcher,
		vectorDB:    vector,
		llmProvider: llmProvider,
		embedder:    em,
		sessions:    sessions,
		logger:      logger_i.NewLogger("Pipeline Service :"),
	}
}

func (s *service) CrawlSite(ctx context.Context, job jobModel.Job) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", job.Id)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("site_crawl", time.Since(start)) }()

	urls := job.JobPayload.URLs
	if job.JobPayload.SitemapURL != "" {
		sitemapURLs, err := s.executeSitemapStep(ctx, inMethodLogger, &job)
		if err != nil {
			return s.jobError(job, err, "SITEMAP_FAILURE", true)
		}
		urls = append(urls, sitemapURLs...)
	}

	maxPages := job.JobPayload.MaxPages
	if maxPages <= 0 || maxPages > config.CrawlMaxPages {
		maxPages = config.CrawlMaxPages
	}

	docs, fetchFailures := s.executeCrawlStep(ctx, inMethodLogger, &job, urls, maxPages)
	for _, failure := range fetchFailures {
		job.JobPayload.FailedURLs = append(job.JobPayload.FailedURLs, failure.URL)
	}
	if len(docs) == 0 {
		return s.jobErrorWithCode(job, errors.New("no page produced text"), "CRAWL_FAILURE", http.StatusBadGateway, true)
	}

	indexed, err := s.executeIndexStep(ctx, inMethodLogger, &job, docs)
	if err != nil {
		return s.jobError(job, err, "INDEXING_FAILURE", true)
	}

	job.JobPayload.PagesCrawled = len(docs)
	job.JobPayload.ChunksIndexed = indexed
	metrics.AddChunksIndexed(indexed)

	if session, found := s.loadSession(ctx, job.SessionId); found {
		session.LastCrawl = &esg.CrawlStats{
			PagesRequested: len(urls),
			PagesCrawled:   len(docs),
			ChunksIndexed:  indexed,
			Failures:       fetchFailures,
		}
		s.saveSession(ctx, inMethodLogger, session)
	}

	return completeJob(job)
}

func (s *service) IngestReport(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("report_ingestion", time.Since(start)) }()

	// ProcessReportIngestion sets its own error codes, they pass through as-is
	j := ingest.ProcessReportIngestion(ctx, job, s.llmProvider, s.embedder, s.vectorDB)
	if j.Status == jobModel.JobStatusError {
		s.logger.Error("REPORT_INGESTION_FAILURE", "error", j.Error.Message)
		return j
	}
	metrics.AddChunksIndexed(j.JobPayload.ChunksIndexed)
	return j
}

func (s *service) ExtractProfile(ctx context.Context, job jobModel.Job) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", job.Id)

	processContext, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("profile_extraction", time.Since(start)) }()

	session, found := s.loadSession(processContext, job.SessionId)
	if !found {
		return s.jobErrorWithCode(job, errors.New("unknown session"), "SESSION_NOT_FOUND", http.StatusNotFound, false)
	}

	documentation, err := s.retrieveContext(processContext, inMethodLogger, &job, config.ProfileQuery, config.ProfileRetrievalK)
	if err != nil {
		return s.jobError(job, err, "RETRIEVAL_FAILURE", true)
	}

	extracted, err := s.executeProfileStep(processContext, inMethodLogger, &job, documentation)
	if err != nil {
		var extractionErr *esg.ExtractionError
		if errors.As(err, &extractionErr) && extractionErr.Err == nil {
			// validation failures will not succeed on retry
			return s.jobErrorWithCode(job, err, "PROFILE_VALIDATION_FAILURE", http.StatusUnprocessableEntity, false)
		}
		return s.jobError(job, err, "PROFILE_EXTRACTION_FAILURE", true)
	}

	// a fresh profile invalidates everything generated from the old one
	session.Profile = extracted
	session.Policies = nil
	session.Failures = nil
	session.Alignment = nil
	session.AlignmentFailures = nil
	s.saveSession(processContext, inMethodLogger, session)

	return completeJob(job)
}

func (s *service) GeneratePolicies(ctx context.Context, job jobModel.Job) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", job.Id)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("policy_generation", time.Since(start)) }()

	session, found := s.loadSession(ctx, job.SessionId)
	if !found {
		return s.jobErrorWithCode(job, errors.New("unknown session"), "SESSION_NOT_FOUND", http.StatusNotFound, false)
	}
	if session.Profile == nil {
		return s.jobErrorWithCode(job, errors.New("no company profile extracted yet"), "PROFILE_MISSING", http.StatusConflict, false)
	}
	if len(session.Parameters) == 0 {
		return s.jobErrorWithCode(job, errors.New("no parameters uploaded yet"), "PARAMETERS_MISSING", http.StatusConflict, false)
	}

	// retrieval enriches the prompt, policies can still be generated
	// from the profile alone
	sustainabilityContext, err := s.retrieveContext(ctx, inMethodLogger, &job, config.PolicyQuery, config.PolicyRetrievalK)
	if err != nil {
		inMethodLogger.Warn("Sustainability context retrieval failed, generating without it", "error", err)
		sustainabilityContext = ""
	}

	policies, failures := s.executePolicyStep(ctx, inMethodLogger, &job, session, sustainabilityContext)

	session.Policies = policies
	session.Failures = failures
	session.Alignment = nil
	session.AlignmentFailures = nil
	s.saveSession(ctx, inMethodLogger, session)

	job.JobPayload.PoliciesWritten = len(policies)
	job.JobPayload.PoliciesFailed = len(failures)
	metrics.CountPolicyOutcomes(len(policies), len(failures))

	if len(policies) == 0 {
		return s.jobErrorWithCode(job, errors.New("every parameter failed"), "GENERATION_FAILURE", http.StatusBadGateway, true)
	}
	return completeJob(job)
}

func (s *service) ScoreAlignment(ctx context.Context, job jobModel.Job) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", job.Id)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("alignment_scoring", time.Since(start)) }()

	session, found := s.loadSession(ctx, job.SessionId)
	if !found {
		return s.jobErrorWithCode(job, errors.New("unknown session"), "SESSION_NOT_FOUND", http.StatusNotFound, false)
	}
	if len(session.Policies) == 0 {
		return s.jobErrorWithCode(job, errors.New("no policies generated yet"), "POLICIES_MISSING", http.StatusConflict, false)
	}

	results, failures := s.executeAlignmentStep(ctx, inMethodLogger, &job, session)

	session.Alignment = results
	session.AlignmentFailures = failures
	s.saveSession(ctx, inMethodLogger, session)

	job.JobPayload.PoliciesWritten = len(results)
	job.JobPayload.PoliciesFailed = len(failures)

	if len(results) == 0 {
		return s.jobErrorWithCode(job, errors.New("no policy could be scored"), "ALIGNMENT_FAILURE", http.StatusBadGateway, true)
	}
	return completeJob(job)
}
