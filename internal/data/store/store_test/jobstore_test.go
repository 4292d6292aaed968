package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/data/redisStore"
	"github.com/akolanti/EsgAPI/internal/data/store"
	"github.com/akolanti/EsgAPI/internal/domain/jobModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisJobStore_Lifecycle(t *testing.T) {
	// 1. Start miniredis
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	internalStore := redisStore.NewTestStore(client)
	jobStore := store.TestJobStore(internalStore)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"

	testJob := jobModel.Job{
		Id:      jobID,
		Status:  jobModel.JobStatusRunning,
		JobType: jobModel.JobTypeCrawl,
		JobPayload: jobModel.JobPayload{
			URLs:     []string{"https://acme.example/about"},
			MaxPages: 10,
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		// Test Save
		err := jobStore.SaveJob(ctx, testJob)
		if err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		// Test Get
		retrievedJob, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}

		if retrievedJob.JobType != jobModel.JobTypeCrawl {
			t.Errorf("JobType mismatch! Got %s, want %s", retrievedJob.JobType, jobModel.JobTypeCrawl)
		}
		if len(retrievedJob.JobPayload.URLs) != 1 || retrievedJob.JobPayload.URLs[0] != "https://acme.example/about" {
			t.Errorf("URL payload mismatch! Got %v", retrievedJob.JobPayload.URLs)
		}
		if retrievedJob.JobPayload.MaxPages != 10 {
			t.Errorf("MaxPages mismatch! Got %d, want 10", retrievedJob.JobPayload.MaxPages)
		}
	})

	t.Run("Save Overwrites Status", func(t *testing.T) {
		finished := testJob
		finished.Status = jobModel.JobStatusComplete
		finished.JobPayload.PagesCrawled = 7
		finished.JobPayload.ChunksIndexed = 42

		if err := jobStore.SaveJob(ctx, finished); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrievedJob, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job lost after overwrite")
		}
		if retrievedJob.Status != jobModel.JobStatusComplete {
			t.Errorf("Status got %s, want %s", retrievedJob.Status, jobModel.JobStatusComplete)
		}
		if retrievedJob.JobPayload.ChunksIndexed != 42 {
			t.Errorf("ChunksIndexed got %d, want 42", retrievedJob.JobPayload.ChunksIndexed)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		_, found := jobStore.GetJob(ctx, "ghost-id")
		if found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		jobStore.DeleteJob(ctx, jobID)

		// Verify it's gone from miniredis
		if mr.Exists(jobID) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestRedisJobStore_Race(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jobStore := store.TestJobStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "race-trace")
	job := jobModel.Job{Id: "race-job"}

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = jobStore.SaveJob(ctx, job)
			_, _ = jobStore.GetJob(ctx, "race-job")
		}()
	}
	wg.Wait()
}
