package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/domain/jobModel"
	"github.com/akolanti/EsgAPI/internal/job"
	"github.com/akolanti/EsgAPI/internal/metrics"
	"github.com/akolanti/EsgAPI/internal/pipeline/vectorDB"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service  *job.Service
	vectorDB vectorDB.DataProcessor
}

func InitJobHandler(jobService *job.Service, vector vectorDB.DataProcessor) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService, vectorDB: vector}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

// newJobData is everything a stage job needs at submit time.
type newJobData struct {
	id        string
	sessionId string
	traceId   string
	jobType   jobModel.JobType

	urls       []string
	sitemapURL string
	maxPages   int

	reportName string
	reportPath string
}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new job", "type", newJob.jobType)
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// ValidateSessionId rejects jobs against sessions that were never created
// or have expired.
func ValidateSessionId(ctx context.Context, sessionId string) bool {
	if handlerInstance == nil || sessionId == "" {
		return false
	}
	return handlerInstance.service.SessionStore.ValidateSessionId(ctx, sessionId)
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.SessionId = newJob.sessionId
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.JobType = newJob.jobType
	_job.CurrentStep = jobModel.JobInit

	switch newJob.jobType {
	case jobModel.JobTypeCrawl:
		_job.JobPayload.URLs = newJob.urls
		_job.JobPayload.SitemapURL = newJob.sitemapURL
		_job.JobPayload.MaxPages = newJob.maxPages
	case jobModel.JobTypeReport:
		_job.JobPayload.ReportName = newJob.reportName
		_job.JobPayload.ReportPath = newJob.reportPath
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//a new worker is started every N requests, and immediately for the
	//batch-heavy job types - crawls and report ingestion hold a worker for
	//minutes, the worker retires again once idle
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1) //after sending a request increment counter
	isBatchJob := _job.JobType == jobModel.JobTypeCrawl || _job.JobType == jobModel.JobTypeReport
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || isBatchJob {
		metrics.StartDispatcherSignalCount() //metrics
		logJH.Debug("Worker count ", accurateCount)
		h.service.DispatcherChannel <- true
	}
}
