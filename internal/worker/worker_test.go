package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/internal/domain/jobModel"
	"github.com/akolanti/EsgAPI/internal/job"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
)

// MockPipelineService counts which stage each job was dispatched to
type MockPipelineService struct {
	CrawlCount     int32
	ReportCount    int32
	ProfileCount   int32
	PoliciesCount  int32
	AlignmentCount int32
}

func (m *MockPipelineService) CrawlSite(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.CrawlCount, 1)
	return j
}

func (m *MockPipelineService) IngestReport(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.ReportCount, 1)
	j.Status = jobModel.JobStatusComplete
	return j
}

func (m *MockPipelineService) ExtractProfile(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.ProfileCount, 1)
	return j
}

func (m *MockPipelineService) GeneratePolicies(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.PoliciesCount, 1)
	return j
}

func (m *MockPipelineService) ScoreAlignment(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.AlignmentCount, 1)
	return j
}

type MockJobStore struct {
	OnSaveJob func(ctx context.Context, job jobModel.Job) error
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	return jobModel.Job{}, false
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {
}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	if m.OnSaveJob != nil {
		return m.OnSaveJob(ctx, j)
	}
	return nil
}

// MockSessionStore records report history writes
type MockSessionStore struct {
	AppendCount int32
}

func (m *MockSessionStore) ValidateSessionId(ctx context.Context, id string) bool {
	return true
}

func (m *MockSessionStore) InitNewSession(ctx context.Context, id string) error {
	return nil
}

func (m *MockSessionStore) GetSession(ctx context.Context, id string) (esg.Session, bool) {
	return esg.Session{Id: id}, true
}

func (m *MockSessionStore) SaveSession(ctx context.Context, session esg.Session) error {
	return nil
}

func (m *MockSessionStore) AppendReport(ctx context.Context, sessionId string, report esg.Report) error {
	atomic.AddInt32(&m.AppendCount, 1)
	return nil
}

func (m *MockSessionStore) GetReports(ctx context.Context, sessionId string) ([]esg.Report, error) {
	return nil, nil
}

func TestWorkerPool_Flow(t *testing.T) {
	// 1. Setup
	sessionStore := &MockSessionStore{}
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          &MockJobStore{},
		SessionStore:      sessionStore,
	}
	mockPipeline := &MockPipelineService{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockPipeline)
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		// Signal dispatcher to create a worker
		jobSvc.DispatcherChannel <- true

		// Give it a millisecond to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes a job", func(t *testing.T) {
		testJob := jobModel.Job{Id: "test-1", JobType: jobModel.JobTypeProfile}
		jobSvc.JobChannel <- testJob

		// Wait for worker to pick up and process
		time.Sleep(50 * time.Millisecond)

		processed := atomic.LoadInt32(&mockPipeline.ProfileCount)
		if processed != 1 {
			t.Errorf("Expected 1 profile job processed, got %d", processed)
		}
	})

	t.Run("Completed report job lands in session history", func(t *testing.T) {
		testJob := jobModel.Job{
			Id:        "test-2",
			SessionId: "sess-1",
			JobType:   jobModel.JobTypeReport,
			JobPayload: jobModel.JobPayload{
				ReportName: "annual.pdf",
				ReportPath: "/tmp/uploads/annual.pdf",
			},
		}
		jobSvc.JobChannel <- testJob

		time.Sleep(50 * time.Millisecond)

		if atomic.LoadInt32(&mockPipeline.ReportCount) != 1 {
			t.Errorf("Expected 1 report job processed, got %d", mockPipeline.ReportCount)
		}
		if atomic.LoadInt32(&sessionStore.AppendCount) != 1 {
			t.Errorf("Expected 1 report recorded, got %d", sessionStore.AppendCount)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		// Send stop signal
		close(stopChan)

		// Wait for workers to exit
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	// Temporarily override config/globals for test
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 0) // no floor, the lone worker may retire
	idleWorkerTimeout = 50 * time.Millisecond
	defer func() {
		atomic.StoreInt64(&minWorkerCount, config.MinWorkerCount)
		idleWorkerTimeout = config.IdleWorkerTimeout
	}()
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
	}
	InitServices(jobSvc, &MockPipelineService{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Spawn 1 worker manually
	createWorker()
	time.Sleep(idleWorkerTimeout)

	time.Sleep(100 * time.Millisecond)
	count := atomic.LoadInt64(&currentWorkerCount)
	if count != 0 {
		t.Errorf("Assertion Failed: Worker should have timed out and retired, but count is %d", count)
	}
}

func TestDispatchJob_Routing(t *testing.T) {
	logger = logger_i.NewLogger("TestDispatch")
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "dispatch-trace")

	tests := []struct {
		name    string
		jobType jobModel.JobType
		counter func(m *MockPipelineService) *int32
	}{
		{"Crawl", jobModel.JobTypeCrawl, func(m *MockPipelineService) *int32 { return &m.CrawlCount }},
		{"Report", jobModel.JobTypeReport, func(m *MockPipelineService) *int32 { return &m.ReportCount }},
		{"Profile", jobModel.JobTypeProfile, func(m *MockPipelineService) *int32 { return &m.ProfileCount }},
		{"Policies", jobModel.JobTypePolicies, func(m *MockPipelineService) *int32 { return &m.PoliciesCount }},
		{"Alignment", jobModel.JobTypeAlignment, func(m *MockPipelineService) *int32 { return &m.AlignmentCount }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPipeline := &MockPipelineService{}
			InitServices(&job.Service{}, mockPipeline)

			dispatchJob(ctx, jobModel.Job{Id: "route-job", JobType: tt.jobType})

			if got := atomic.LoadInt32(tt.counter(mockPipeline)); got != 1 {
				t.Errorf("Expected %s stage to run once, got %d", tt.name, got)
			}
		})
	}

	t.Run("Unknown type", func(t *testing.T) {
		InitServices(&job.Service{}, &MockPipelineService{})

		result := dispatchJob(ctx, jobModel.Job{Id: "route-job", JobType: "Teleport"})

		if result.Status != jobModel.JobStatusError {
			t.Errorf("Status got %v, want %v", result.Status, jobModel.JobStatusError)
		}
		if result.Error.Code != 400 || result.Error.Retry {
			t.Errorf("Unknown job type should be a non-retryable 400, got %+v", result.Error)
		}
	})
}

func TestSaveFinalJobState(t *testing.T) {
	logger = logger_i.NewLogger("TestFinalState")
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "final-trace")

	var saved []jobModel.Job
	jobStore := &MockJobStore{
		OnSaveJob: func(ctx context.Context, j jobModel.Job) error {
			saved = append(saved, j)
			return nil
		},
	}
	InitServices(&job.Service{JobStore: jobStore}, &MockPipelineService{})

	saveFinalJobState(ctx, jobModel.Job{Id: "ok-job", Status: jobModel.JobStatusRunning})
	saveFinalJobState(ctx, jobModel.Job{Id: "bad-job", Status: jobModel.JobStatusError})

	if len(saved) != 2 {
		t.Fatalf("Expected 2 saves, got %d", len(saved))
	}
	if saved[0].Status != jobModel.JobStatusComplete {
		t.Errorf("Finished job got %v, want %v", saved[0].Status, jobModel.JobStatusComplete)
	}
	// an error status must survive the final save
	if saved[1].Status != jobModel.JobStatusError {
		t.Errorf("Failed job got %v, want %v", saved[1].Status, jobModel.JobStatusError)
	}
}

func TestReportKindFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected esg.ReportKind
	}{
		{"uploads/annual.pdf", esg.PDF},
		{"uploads/ANNUAL.PDF", esg.PDF},
		{"report.docx", esg.DOCX},
		{"notes.txt", esg.TXT},
		{"summary.md", esg.MD},
		{"logo.png", esg.ERR},
		{"no_extension", esg.ERR},
	}
	for _, tt := range tests {
		if got := reportKindFromPath(tt.path); got != tt.expected {
			t.Errorf("reportKindFromPath(%q) = %s; want %s", tt.path, got, tt.expected)
		}
	}
}
