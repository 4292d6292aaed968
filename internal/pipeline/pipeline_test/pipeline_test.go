package pipeline_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/internal/domain/jobModel"
	"github.com/akolanti/EsgAPI/internal/pipeline"
)

func testCtx() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func testProfile() *esg.CompanyProfile {
	return &esg.CompanyProfile{
		CompanyName: "Acme Corp",
		Mission:     "Build sustainable software",
		Vision:      "A carbon neutral industry",
		Values:      []string{"Sustainability"},
		Objectives:  []string{"Reduce emissions"},
	}
}

func testParameters() []esg.ESGParameter {
	return []esg.ESGParameter{
		{Category: esg.CategoryEnvironmental, Name: "Environmental policy", Description: "Emissions and waste", Weight: 1.0},
		{Category: esg.CategorySocial, Name: "Human rights policy", Description: "Labor standards", Weight: 1.0},
		{Category: esg.CategoryGovernance, Name: "Board diversity policy", Description: "Board composition", Weight: 1.0},
	}
}

func TestExtractProfile_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		sessions       []esg.Session
		setupMocks     func(v *MockVectorDB, e *MockEmbedder, l *MockLLM)
		expectedStatus jobModel.JobStatus
		expectedCode   int
		expectedRetry  bool
		checkStore     func(t *testing.T, store *MockSessionStore)
	}{
		{
			name: "Success_Full_Flow",
			sessions: []esg.Session{{
				Id:       "s1",
				Policies: []esg.GeneratedPolicy{{ParameterName: "stale"}},
				Alignment: []esg.AlignmentResult{
					{ParameterName: "stale", Score: 0.5},
				},
			}},
			setupMocks:     func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {},
			expectedStatus: jobModel.JobStatusComplete,
			checkStore: func(t *testing.T, store *MockSessionStore) {
				session := store.Sessions["s1"]
				if session.Profile == nil {
					t.Fatal("Profile was not saved")
				}
				if session.Profile.Mission != "Build sustainable software" {
					t.Errorf("Mission got %q", session.Profile.Mission)
				}
				// a fresh profile invalidates downstream artifacts
				if session.Policies != nil || session.Alignment != nil {
					t.Error("Stale policies and alignment should be cleared")
				}
			},
		},
		{
			name:           "Unknown_Session",
			sessions:       nil,
			setupMocks:     func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusNotFound,
			expectedRetry:  false,
		},
		{
			name:     "Failure_Embedding",
			sessions: []esg.Session{{Id: "s1"}},
			setupMocks: func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusInternalServerError,
			expectedRetry:  true,
		},
		{
			name:     "Failure_Vector_Search",
			sessions: []esg.Session{{Id: "s1"}},
			setupMocks: func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {
				v.OnQuery = func(ctx context.Context, vec []float32, topK int) ([]esg.RetrievedChunk, error) {
					return nil, errors.New("db timeout")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusInternalServerError,
			expectedRetry:  true,
		},
		{
			name:     "Failure_Profile_Validation",
			sessions: []esg.Session{{Id: "s1"}},
			setupMocks: func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {
				l.OnGenerateJSON = func(ctx context.Context, system string, user string) (string, error) {
					// parses fine but carries no mission, retrying cannot help
					return `{"company_name":"Acme Corp"}`, nil
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusUnprocessableEntity,
			expectedRetry:  false,
		},
		{
			name:     "Failure_LLM_Completion",
			sessions: []esg.Session{{Id: "s1"}},
			setupMocks: func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {
				l.OnGenerateJSON = func(ctx context.Context, system string, user string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusInternalServerError,
			expectedRetry:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mFetch := &MockFetcher{}
			mVec := &MockVectorDB{}
			mEmbed := &MockEmbedder{}
			mLLM := &MockLLM{}
			store := NewMockSessionStore(tt.sessions...)

			tt.setupMocks(mVec, mEmbed, mLLM)

			s := pipeline.NewService(mFetch, mVec, mLLM, mEmbed, store)

			job := jobModel.Job{
				Id:        "test-job",
				SessionId: "s1",
				JobType:   jobModel.JobTypeProfile,
			}

			result := s.ExtractProfile(testCtx(), job)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}
			if tt.expectedCode != 0 && result.Error.Code != tt.expectedCode {
				t.Errorf("Error code got %d, want %d", result.Error.Code, tt.expectedCode)
			}
			if result.Status == jobModel.JobStatusError && result.Error.Retry != tt.expectedRetry {
				t.Errorf("Retry got %v, want %v", result.Error.Retry, tt.expectedRetry)
			}
			if tt.checkStore != nil {
				tt.checkStore(t, store)
			}
		})
	}
}

func TestGeneratePolicies_Scenarios(t *testing.T) {
	readySession := func() esg.Session {
		return esg.Session{
			Id:         "s1",
			Profile:    testProfile(),
			Parameters: testParameters(),
			Alignment: []esg.AlignmentResult{
				{ParameterName: "stale", Score: 0.5},
			},
		}
	}

	tests := []struct {
		name            string
		sessions        []esg.Session
		setupMocks      func(v *MockVectorDB, e *MockEmbedder, l *MockLLM)
		expectedStatus  jobModel.JobStatus
		expectedCode    int
		expectedRetry   bool
		expectedWritten int
		expectedFailed  int
		checkStore      func(t *testing.T, store *MockSessionStore)
	}{
		{
			name:            "Success_All_Parameters",
			sessions:        []esg.Session{readySession()},
			setupMocks:      func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {},
			expectedStatus:  jobModel.JobStatusComplete,
			expectedWritten: 3,
			checkStore: func(t *testing.T, store *MockSessionStore) {
				session := store.Sessions["s1"]
				if len(session.Policies) != 3 {
					t.Fatalf("Expected 3 saved policies, got %d", len(session.Policies))
				}
				if session.Policies[1].ParameterName != "Human rights policy" {
					t.Errorf("Policy order not preserved: %q", session.Policies[1].ParameterName)
				}
				// new policies invalidate old alignment scores
				if session.Alignment != nil {
					t.Error("Stale alignment should be cleared")
				}
			},
		},
		{
			name:           "Unknown_Session",
			sessions:       nil,
			setupMocks:     func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusNotFound,
		},
		{
			name:           "Missing_Profile",
			sessions:       []esg.Session{{Id: "s1", Parameters: testParameters()}},
			setupMocks:     func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusConflict,
		},
		{
			name:           "Missing_Parameters",
			sessions:       []esg.Session{{Id: "s1", Profile: testProfile()}},
			setupMocks:     func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusConflict,
		},
		{
			name:     "Retrieval_Failure_Still_Generates",
			sessions: []esg.Session{readySession()},
			setupMocks: func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStatus:  jobModel.JobStatusComplete,
			expectedWritten: 3,
		},
		{
			name:     "Failure_All_Parameters",
			sessions: []esg.Session{readySession()},
			setupMocks: func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, system string, user string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusBadGateway,
			expectedRetry:  true,
			expectedFailed: 3,
			checkStore: func(t *testing.T, store *MockSessionStore) {
				session := store.Sessions["s1"]
				if len(session.Failures) != 3 {
					t.Errorf("Expected 3 recorded failures, got %d", len(session.Failures))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mFetch := &MockFetcher{}
			mVec := &MockVectorDB{}
			mEmbed := &MockEmbedder{}
			mLLM := &MockLLM{}
			store := NewMockSessionStore(tt.sessions...)

			tt.setupMocks(mVec, mEmbed, mLLM)

			s := pipeline.NewService(mFetch, mVec, mLLM, mEmbed, store)

			job := jobModel.Job{
				Id:        "test-job",
				SessionId: "s1",
				JobType:   jobModel.JobTypePolicies,
			}

			result := s.GeneratePolicies(testCtx(), job)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}
			if tt.expectedCode != 0 && result.Error.Code != tt.expectedCode {
				t.Errorf("Error code got %d, want %d", result.Error.Code, tt.expectedCode)
			}
			if result.Status == jobModel.JobStatusError && result.Error.Retry != tt.expectedRetry {
				t.Errorf("Retry got %v, want %v", result.Error.Retry, tt.expectedRetry)
			}
			if result.JobPayload.PoliciesWritten != tt.expectedWritten {
				t.Errorf("PoliciesWritten got %d, want %d", result.JobPayload.PoliciesWritten, tt.expectedWritten)
			}
			if result.JobPayload.PoliciesFailed != tt.expectedFailed {
				t.Errorf("PoliciesFailed got %d, want %d", result.JobPayload.PoliciesFailed, tt.expectedFailed)
			}
			if tt.checkStore != nil {
				tt.checkStore(t, store)
			}
		})
	}
}

func TestScoreAlignment_Scenarios(t *testing.T) {
	scoredSession := func() esg.Session {
		return esg.Session{
			Id:      "s1",
			Profile: testProfile(),
			Policies: []esg.GeneratedPolicy{
				{ParameterIndex: 0, ParameterName: "Environmental policy", Category: esg.CategoryEnvironmental, PolicyText: "Cut emissions."},
				{ParameterIndex: 1, ParameterName: "Human rights policy", Category: esg.CategorySocial, PolicyText: "Audit suppliers."},
			},
		}
	}

	tests := []struct {
		name           string
		sessions       []esg.Session
		setupMocks     func(v *MockVectorDB, e *MockEmbedder, l *MockLLM)
		expectedStatus jobModel.JobStatus
		expectedCode   int
		expectedRetry  bool
		checkStore     func(t *testing.T, store *MockSessionStore)
	}{
		{
			name:           "Success_All_Policies",
			sessions:       []esg.Session{scoredSession()},
			setupMocks:     func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {},
			expectedStatus: jobModel.JobStatusComplete,
			checkStore: func(t *testing.T, store *MockSessionStore) {
				session := store.Sessions["s1"]
				if len(session.Alignment) != 2 {
					t.Fatalf("Expected 2 alignment results, got %d", len(session.Alignment))
				}
				for _, result := range session.Alignment {
					if result.Score < 0 || result.Score > 1 {
						t.Errorf("Score out of range: %f", result.Score)
					}
					if result.Rationale == "" {
						t.Error("Rationale missing")
					}
				}
			},
		},
		{
			name:           "Unknown_Session",
			sessions:       nil,
			setupMocks:     func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusNotFound,
		},
		{
			name:           "Missing_Policies",
			sessions:       []esg.Session{{Id: "s1", Profile: testProfile()}},
			setupMocks:     func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusConflict,
		},
		{
			name:     "Failure_Embedding",
			sessions: []esg.Session{scoredSession()},
			setupMocks: func(v *MockVectorDB, e *MockEmbedder, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusBadGateway,
			expectedRetry:  true,
			checkStore: func(t *testing.T, store *MockSessionStore) {
				session := store.Sessions["s1"]
				if len(session.AlignmentFailures) != 2 {
					t.Errorf("Expected 2 alignment failures, got %d", len(session.AlignmentFailures))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mFetch := &MockFetcher{}
			mVec := &MockVectorDB{}
			mEmbed := &MockEmbedder{}
			mLLM := &MockLLM{}
			store := NewMockSessionStore(tt.sessions...)

			tt.setupMocks(mVec, mEmbed, mLLM)

			s := pipeline.NewService(mFetch, mVec, mLLM, mEmbed, store)

			job := jobModel.Job{
				Id:        "test-job",
				SessionId: "s1",
				JobType:   jobModel.JobTypeAlignment,
			}

			result := s.ScoreAlignment(testCtx(), job)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}
			if tt.expectedCode != 0 && result.Error.Code != tt.expectedCode {
				t.Errorf("Error code got %d, want %d", result.Error.Code, tt.expectedCode)
			}
			if result.Status == jobModel.JobStatusError && result.Error.Retry != tt.expectedRetry {
				t.Errorf("Retry got %v, want %v", result.Error.Retry, tt.expectedRetry)
			}
			if tt.checkStore != nil {
				tt.checkStore(t, store)
			}
		})
	}
}

func TestCrawlSite_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		sessions       []esg.Session
		payload        jobModel.JobPayload
		setupMocks     func(f *MockFetcher, v *MockVectorDB, e *MockEmbedder, l *MockLLM)
		expectedStatus jobModel.JobStatus
		expectedCode   int
		checkJob       func(t *testing.T, result jobModel.Job)
		checkStore     func(t *testing.T, store *MockSessionStore)
	}{
		{
			name:           "Success_With_Stats",
			sessions:       []esg.Session{{Id: "s1"}},
			payload:        jobModel.JobPayload{URLs: []string{"https://acme.example/about"}},
			setupMocks:     func(f *MockFetcher, v *MockVectorDB, e *MockEmbedder, l *MockLLM) {},
			expectedStatus: jobModel.JobStatusComplete,
			checkJob: func(t *testing.T, result jobModel.Job) {
				if result.JobPayload.PagesCrawled != 1 {
					t.Errorf("PagesCrawled got %d, want 1", result.JobPayload.PagesCrawled)
				}
				if result.JobPayload.ChunksIndexed < 1 {
					t.Errorf("ChunksIndexed got %d, want at least 1", result.JobPayload.ChunksIndexed)
				}
			},
			checkStore: func(t *testing.T, store *MockSessionStore) {
				session := store.Sessions["s1"]
				if session.LastCrawl == nil {
					t.Fatal("LastCrawl stats were not saved")
				}
				if session.LastCrawl.PagesCrawled != 1 {
					t.Errorf("LastCrawl.PagesCrawled got %d", session.LastCrawl.PagesCrawled)
				}
			},
		},
		{
			name:           "Success_Without_Session",
			sessions:       nil,
			payload:        jobModel.JobPayload{URLs: []string{"https://acme.example/about"}},
			setupMocks:     func(f *MockFetcher, v *MockVectorDB, e *MockEmbedder, l *MockLLM) {},
			expectedStatus: jobModel.JobStatusComplete,
		},
		{
			name:     "Failure_Sitemap",
			sessions: []esg.Session{{Id: "s1"}},
			payload:  jobModel.JobPayload{SitemapURL: "https://acme.example/sitemap.xml"},
			setupMocks: func(f *MockFetcher, v *MockVectorDB, e *MockEmbedder, l *MockLLM) {
				f.OnLoadSitemap = func(ctx context.Context, sitemapURL string) ([]string, error) {
					return nil, errors.New("connection refused")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusInternalServerError,
		},
		{
			name:     "Failure_No_Pages",
			sessions: []esg.Session{{Id: "s1"}},
			payload:  jobModel.JobPayload{URLs: []string{"https://acme.example/missing"}},
			setupMocks: func(f *MockFetcher, v *MockVectorDB, e *MockEmbedder, l *MockLLM) {
				f.OnFetchPages = func(ctx context.Context, urls []string, maxPages int) ([]esg.CrawledDocument, []esg.FetchFailure) {
					return nil, []esg.FetchFailure{{URL: "https://acme.example/missing", Error: "Not Found"}}
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusBadGateway,
			checkJob: func(t *testing.T, result jobModel.Job) {
				if len(result.JobPayload.FailedURLs) != 1 {
					t.Fatalf("Expected 1 failed URL, got %d", len(result.JobPayload.FailedURLs))
				}
				if result.JobPayload.FailedURLs[0] != "https://acme.example/missing" {
					t.Errorf("FailedURLs got %v", result.JobPayload.FailedURLs)
				}
			},
		},
		{
			name:     "Failure_Indexing",
			sessions: []esg.Session{{Id: "s1"}},
			payload:  jobModel.JobPayload{URLs: []string{"https://acme.example/about"}},
			setupMocks: func(f *MockFetcher, v *MockVectorDB, e *MockEmbedder, l *MockLLM) {
				v.OnEnsureCollection = func(ctx context.Context, name string) error {
					return errors.New("connection refused")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mFetch := &MockFetcher{}
			mVec := &MockVectorDB{}
			mEmbed := &MockEmbedder{}
			mLLM := &MockLLM{}
			store := NewMockSessionStore(tt.sessions...)

			tt.setupMocks(mFetch, mVec, mEmbed, mLLM)

			s := pipeline.NewService(mFetch, mVec, mLLM, mEmbed, store)

			job := jobModel.Job{
				Id:         "test-job",
				SessionId:  "s1",
				JobType:    jobModel.JobTypeCrawl,
				JobPayload: tt.payload,
			}

			result := s.CrawlSite(testCtx(), job)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}
			if tt.expectedCode != 0 && result.Error.Code != tt.expectedCode {
				t.Errorf("Error code got %d, want %d", result.Error.Code, tt.expectedCode)
			}
			if tt.checkJob != nil {
				tt.checkJob(t, result)
			}
			if tt.checkStore != nil {
				tt.checkStore(t, store)
			}
		})
	}
}

// Sitemap URLs join the explicit URL list before the crawl starts.
func TestCrawlSite_SitemapMerge(t *testing.T) {
	var crawledURLs []string
	mFetch := &MockFetcher{
		OnLoadSitemap: func(ctx context.Context, sitemapURL string) ([]string, error) {
			if sitemapURL != "https://acme.example/sitemap.xml" {
				t.Errorf("Sitemap URL got %q", sitemapURL)
			}
			return []string{"https://acme.example/", "https://acme.example/about"}, nil
		},
		OnFetchPages: func(ctx context.Context, urls []string, maxPages int) ([]esg.CrawledDocument, []esg.FetchFailure) {
			crawledURLs = urls
			return []esg.CrawledDocument{{URL: urls[0], RawText: "Page content."}}, nil
		},
	}

	s := pipeline.NewService(mFetch, &MockVectorDB{}, &MockLLM{}, &MockEmbedder{}, NewMockSessionStore())

	job := jobModel.Job{
		Id:      "test-job",
		JobType: jobModel.JobTypeCrawl,
		JobPayload: jobModel.JobPayload{
			URLs:       []string{"https://acme.example/careers"},
			SitemapURL: "https://acme.example/sitemap.xml",
		},
	}

	result := s.CrawlSite(testCtx(), job)

	if result.Status != jobModel.JobStatusComplete {
		t.Fatalf("Status got %v, error %+v", result.Status, result.Error)
	}
	if len(crawledURLs) != 3 {
		t.Fatalf("Expected 3 crawl URLs, got %v", crawledURLs)
	}
	if crawledURLs[0] != "https://acme.example/careers" {
		t.Errorf("Explicit URLs should come first, got %v", crawledURLs)
	}
}

func TestIngestReport_Scenarios(t *testing.T) {
	dummyFile := "test_report.txt"
	os.WriteFile(dummyFile, []byte("Annual sustainability report content."), 0644)
	defer os.Remove(dummyFile)

	tests := []struct {
		name           string
		payload        jobModel.JobPayload
		setupMocks     func(v *MockVectorDB, e *MockEmbedder)
		expectedStatus jobModel.JobStatus
		expectedCode   int
		expectedRetry  bool
	}{
		{
			name:           "Ingestion_Success",
			payload:        jobModel.JobPayload{ReportName: "annual.txt", ReportPath: dummyFile},
			setupMocks:     func(v *MockVectorDB, e *MockEmbedder) {},
			expectedStatus: jobModel.JobStatusComplete,
		},
		{
			name:           "Failure_Unsupported_Type",
			payload:        jobModel.JobPayload{ReportName: "logo.png", ReportPath: "logo.png"},
			setupMocks:     func(v *MockVectorDB, e *MockEmbedder) {},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusBadRequest,
			expectedRetry:  false,
		},
		{
			name:           "Failure_Missing_File",
			payload:        jobModel.JobPayload{ReportName: "ghost.txt", ReportPath: "no_such_report.txt"},
			setupMocks:     func(v *MockVectorDB, e *MockEmbedder) {},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusUnprocessableEntity,
			expectedRetry:  false,
		},
		{
			name:    "Failure_Indexing",
			payload: jobModel.JobPayload{ReportName: "annual.txt", ReportPath: dummyFile},
			setupMocks: func(v *MockVectorDB, e *MockEmbedder) {
				v.OnEnsureCollection = func(ctx context.Context, name string) error {
					return errors.New("connection refused")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedCode:   http.StatusInternalServerError,
			expectedRetry:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mVec := &MockVectorDB{}
			mEmbed := &MockEmbedder{}

			tt.setupMocks(mVec, mEmbed)

			s := pipeline.NewService(&MockFetcher{}, mVec, &MockLLM{}, mEmbed, NewMockSessionStore())

			// Re-create file if deleted by previous successful test run
			if _, err := os.Stat(dummyFile); os.IsNotExist(err) {
				os.WriteFile(dummyFile, []byte("Annual sustainability report content."), 0644)
			}

			job := jobModel.Job{
				Id:         "ingest-job-1",
				JobType:    jobModel.JobTypeReport,
				JobPayload: tt.payload,
			}

			result := s.IngestReport(testCtx(), job)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}
			if tt.expectedCode != 0 && result.Error.Code != tt.expectedCode {
				t.Errorf("Error code got %d, want %d", result.Error.Code, tt.expectedCode)
			}
			if result.Status == jobModel.JobStatusError && result.Error.Retry != tt.expectedRetry {
				t.Errorf("Retry got %v, want %v", result.Error.Retry, tt.expectedRetry)
			}
		})
	}
}

// The upload is removed once its chunks are in the index.
func TestIngestReport_DeletesUpload(t *testing.T) {
	dummyFile := "test_report_cleanup.txt"
	os.WriteFile(dummyFile, []byte("Report body."), 0644)
	defer os.Remove(dummyFile)

	s := pipeline.NewService(&MockFetcher{}, &MockVectorDB{}, &MockLLM{}, &MockEmbedder{}, NewMockSessionStore())

	job := jobModel.Job{
		Id:      "ingest-job-2",
		JobType: jobModel.JobTypeReport,
		JobPayload: jobModel.JobPayload{
			ReportName: "cleanup.txt",
			ReportPath: dummyFile,
		},
	}

	result := s.IngestReport(testCtx(), job)

	if result.Status != jobModel.JobStatusComplete {
		t.Fatalf("Status got %v, error %+v", result.Status, result.Error)
	}
	if result.JobPayload.ChunksIndexed < 1 {
		t.Errorf("ChunksIndexed got %d", result.JobPayload.ChunksIndexed)
	}
	if _, err := os.Stat(dummyFile); !os.IsNotExist(err) {
		t.Error("Upload should be deleted after successful ingestion")
	}
}

// Policy prompts carry the retrieved documentation so generated text can cite
// what the crawler indexed.
func TestGeneratePolicies_UsesRetrievedContext(t *testing.T) {
	var seenContext bool
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, system string, user string) (string, error) {
			if strings.Contains(user, "We build sustainable software.") {
				seenContext = true
			}
			return "Policy referencing documentation.", nil
		},
	}

	session := esg.Session{
		Id:         "s1",
		Profile:    testProfile(),
		Parameters: testParameters()[:1],
	}
	store := NewMockSessionStore(session)

	s := pipeline.NewService(&MockFetcher{}, &MockVectorDB{}, mLLM, &MockEmbedder{}, store)

	result := s.GeneratePolicies(testCtx(), jobModel.Job{Id: "test-job", SessionId: "s1", JobType: jobModel.JobTypePolicies})

	if result.Status != jobModel.JobStatusComplete {
		t.Fatalf("Status got %v, error %+v", result.Status, result.Error)
	}
	if !seenContext {
		t.Error("Prompt never carried the retrieved chunk text")
	}
}
