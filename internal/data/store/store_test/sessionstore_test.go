package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/data/redisStore"
	"github.com/akolanti/EsgAPI/internal/data/store"
	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisSessionStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionStore := store.TestSessionStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	sessionID := "sess_abc_123"

	t.Run("Init and Validate", func(t *testing.T) {
		if err := sessionStore.InitNewSession(ctx, sessionID); err != nil {
			t.Fatalf("InitNewSession failed: %v", err)
		}
		if !sessionStore.ValidateSessionId(ctx, sessionID) {
			t.Error("Session should validate right after init")
		}

		session, found := sessionStore.GetSession(ctx, sessionID)
		if !found {
			t.Fatal("Session was initialized but not found in Redis")
		}
		if session.Id != sessionID {
			t.Errorf("Id got %s, want %s", session.Id, sessionID)
		}
		if session.CreatedAt.IsZero() {
			t.Error("CreatedAt was not set")
		}
	})

	t.Run("Save Roundtrip With Artifacts", func(t *testing.T) {
		session, found := sessionStore.GetSession(ctx, sessionID)
		if !found {
			t.Fatal("Session missing")
		}

		session.Profile = &esg.CompanyProfile{
			CompanyName: "Acme Corp",
			Mission:     "Build sustainable software",
			Vision:      "A carbon neutral industry",
		}
		session.Parameters = []esg.ESGParameter{
			{Category: esg.CategoryEnvironmental, Name: "Environmental policy", Weight: 1.0},
		}
		session.Policies = []esg.GeneratedPolicy{
			{ParameterIndex: 0, ParameterName: "Environmental policy", Category: esg.CategoryEnvironmental, PolicyText: "Cut emissions."},
		}

		if err := sessionStore.SaveSession(ctx, session); err != nil {
			t.Fatalf("SaveSession failed: %v", err)
		}

		reloaded, found := sessionStore.GetSession(ctx, sessionID)
		if !found {
			t.Fatal("Session lost after save")
		}
		if reloaded.Profile == nil || reloaded.Profile.Mission != "Build sustainable software" {
			t.Errorf("Profile did not survive the roundtrip: %+v", reloaded.Profile)
		}
		if len(reloaded.Parameters) != 1 || reloaded.Parameters[0].Weight != 1.0 {
			t.Errorf("Parameters did not survive the roundtrip: %+v", reloaded.Parameters)
		}
		if len(reloaded.Policies) != 1 || reloaded.Policies[0].PolicyText != "Cut emissions." {
			t.Errorf("Policies did not survive the roundtrip: %+v", reloaded.Policies)
		}
	})

	t.Run("Ghost Session", func(t *testing.T) {
		if sessionStore.ValidateSessionId(ctx, "ghost-session") {
			t.Error("Unknown session should not validate")
		}
		if _, found := sessionStore.GetSession(ctx, "ghost-session"); found {
			t.Error("Expected found=false for non-existent session")
		}
	})

	t.Run("Empty Id Rejected", func(t *testing.T) {
		if err := sessionStore.SaveSession(ctx, esg.Session{}); err == nil {
			t.Error("Saving a session without an id should fail")
		}
	})
}

func TestRedisSessionStore_Reports(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionStore := store.TestSessionStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "report-trace")
	sessionID := "sess_reports"

	if err := sessionStore.InitNewSession(ctx, sessionID); err != nil {
		t.Fatalf("InitNewSession failed: %v", err)
	}

	first := esg.Report{Id: "r1", Name: "annual_2023.pdf", IngestedAt: time.Now().UTC(), Kind: esg.PDF}
	second := esg.Report{Id: "r2", Name: "targets.txt", IngestedAt: time.Now().UTC(), Kind: esg.TXT}

	t.Run("Append and Read Back In Order", func(t *testing.T) {
		if err := sessionStore.AppendReport(ctx, sessionID, first); err != nil {
			t.Fatalf("AppendReport failed: %v", err)
		}
		if err := sessionStore.AppendReport(ctx, sessionID, second); err != nil {
			t.Fatalf("AppendReport failed: %v", err)
		}

		reports, err := sessionStore.GetReports(ctx, sessionID)
		if err != nil {
			t.Fatalf("GetReports failed: %v", err)
		}
		if len(reports) != 2 {
			t.Fatalf("Expected 2 reports, got %d", len(reports))
		}
		if reports[0].Name != "annual_2023.pdf" || reports[1].Name != "targets.txt" {
			t.Errorf("Report order not preserved: %+v", reports)
		}
		if reports[0].Kind != esg.PDF {
			t.Errorf("Kind got %s, want %s", reports[0].Kind, esg.PDF)
		}
	})

	t.Run("Append To Unknown Session", func(t *testing.T) {
		err := sessionStore.AppendReport(ctx, "ghost-session", first)
		if err == nil {
			t.Error("Appending a report to an unknown session should fail")
		}
	})

	t.Run("Re-Init Clears History", func(t *testing.T) {
		if err := sessionStore.InitNewSession(ctx, sessionID); err != nil {
			t.Fatalf("InitNewSession failed: %v", err)
		}

		reports, err := sessionStore.GetReports(ctx, sessionID)
		if err != nil {
			t.Fatalf("GetReports failed: %v", err)
		}
		if len(reports) != 0 {
			t.Errorf("Report history should reset with the session, got %d entries", len(reports))
		}
	})
}
