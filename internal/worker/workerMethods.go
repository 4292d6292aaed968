package worker

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/internal/domain/jobModel"
	"github.com/akolanti/EsgAPI/internal/metrics"
)

func executeJob(job jobModel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.JobExecutionTimeout)
	defer cancel()
	logger.Debug("Processing job:", "job Id:", job.Id, "type", job.JobType, "traceId", job.TraceId)

	saveJobState(ctx, job, jobModel.JobStatusRunning)

	job = dispatchJob(ctx, job)

	if job.JobType == jobModel.JobTypeReport && job.Status == jobModel.JobStatusComplete {
		recordReport(ctx, job)
	}

	job.EndTime = time.Now()
	saveFinalJobState(ctx, job)
}

func dispatchJob(ctx context.Context, job jobModel.Job) jobModel.Job {
	switch job.JobType {
	case jobModel.JobTypeCrawl:
		return _pipelineService.CrawlSite(ctx, job)
	case jobModel.JobTypeReport:
		return _pipelineService.IngestReport(ctx, job)
	case jobModel.JobTypeProfile:
		return _pipelineService.ExtractProfile(ctx, job)
	case jobModel.JobTypePolicies:
		return _pipelineService.GeneratePolicies(ctx, job)
	case jobModel.JobTypeAlignment:
		return _pipelineService.ScoreAlignment(ctx, job)
	default:
		logger.Error("Unknown job type", "type", job.JobType, "jobId", job.Id)
		job.Status = jobModel.JobStatusError
		job.Error = jobModel.JobError{Code: 400, Message: "unknown job type", Retry: false}
		return job
	}
}

func recordReport(ctx context.Context, job jobModel.Job) {
	report := esg.Report{
		Id:         job.Id,
		Name:       job.JobPayload.ReportName,
		IngestedAt: time.Now().UTC(),
		Kind:       reportKindFromPath(job.JobPayload.ReportPath),
	}
	if err := _jobService.SessionStore.AppendReport(ctx, job.SessionId, report); err != nil {
		logger.Error("Failed to record report in session", "err", err)
	}
}

func reportKindFromPath(path string) esg.ReportKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return esg.PDF
	case ".docx":
		return esg.DOCX
	case ".txt":
		return esg.TXT
	case ".md":
		return esg.MD
	default:
		return esg.ERR
	}
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}

func saveJobState(ctx context.Context, job jobModel.Job, jobStatus jobModel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update status in Redis", "err", err)
	}
}

// saveFinalJobState persists the job as the stage left it, an error status
// must not be overwritten with Complete.
func saveFinalJobState(ctx context.Context, job jobModel.Job) {
	if job.Status != jobModel.JobStatusError {
		job.Status = jobModel.JobStatusComplete
	}
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update status in Redis", "err", err)
	}
}
