package ingest

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/internal/domain/jobModel"
	"github.com/akolanti/EsgAPI/internal/pipeline/embedding"
	"github.com/akolanti/EsgAPI/internal/pipeline/llm"
	"github.com/akolanti/EsgAPI/internal/pipeline/vectorDB"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
)

var logger *logger_i.Logger

// IndexDocuments chunks, annotates, embeds and upserts every document.
// Returns the number of chunks written.
func IndexDocuments(ctx context.Context, docs []esg.CrawledDocument, provider llm.Provider, e embedding.Embedder, vectorDatabase vectorDB.DataProcessor) (int, error) {
	logger = logger_i.NewLogger("Indexer")
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	err := vectorDatabase.EnsureCollection(ctx, config.EmbeddingDBName)
	if err != nil {
		log.Error("Error ensuring collection", "error", err)
		return 0, &esg.IndexError{Op: "create collection", Err: err}
	}

	total := 0
	for _, doc := range docs {
		chunks := PrepareChunks(ctx, doc, provider)
		log.Debug("Prepared chunks", "url", doc.URL, "count", len(chunks))
		if len(chunks) == 0 {
			continue
		}
		if err = BatchIngest(ctx, chunks, vectorDatabase, e); err != nil {
			return total, err
		}
		total += len(chunks)
	}
	return total, nil
}

// ProcessReportIngestion extracts a local report and runs it through the same
// chunk and embed path as a crawled page. The upload is deleted afterwards.
func ProcessReportIngestion(ctx context.Context, job jobModel.Job, provider llm.Provider, e embedding.Embedder, vectorDatabase vectorDB.DataProcessor) jobModel.Job {
	logger = logger_i.NewLogger("Report Ingestion")
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	reportName := job.JobPayload.ReportName
	reportPath := job.JobPayload.ReportPath

	log.Debug("Processing report", "name", reportName, "path", reportPath)

	job.CurrentStep = jobModel.Chunking

	kind := getReportKind(reportPath)
	if kind == esg.ERR {
		log.Error("Unsupported report type", "path", reportPath)
		job.Status = jobModel.JobStatusError
		job.Error = jobModel.JobError{Code: http.StatusBadRequest, Message: "Unsupported report type", Retry: false}
		return job
	}

	text, err := extractReport(reportPath, kind)
	if err != nil {
		log.Error("Error extracting report content", "error", err)
		job.Status = jobModel.JobStatusError
		job.Error = jobModel.JobError{Code: http.StatusUnprocessableEntity, Message: "Error extracting report content", Retry: false}
		return job
	}

	doc := esg.CrawledDocument{
		URL:       "report://" + reportName,
		RawText:   text,
		FetchedAt: time.Now().UTC(),
	}

	job.CurrentStep = jobModel.EmbeddingAPICall
	count, err := IndexDocuments(ctx, []esg.CrawledDocument{doc}, provider, e, vectorDatabase)
	if err != nil {
		log.Error("Error indexing report", "error", err)
		job.Status = jobModel.JobStatusError
		job.Error = jobModel.JobError{Code: http.StatusInternalServerError, Message: "Error indexing report", Retry: true}
		return job
	}

	if err = os.Remove(reportPath); err != nil {
		log.Error("Error removing report upload", "error", err)
	}

	job.JobPayload.ChunksIndexed = count
	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	return job
}
