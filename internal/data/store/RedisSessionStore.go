package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/akolanti/EsgAPI/internal/config"
	"github.com/akolanti/EsgAPI/internal/data/redisStore"
	"github.com/akolanti/EsgAPI/internal/domain/esg"
	"github.com/akolanti/EsgAPI/pkg/logger_i"
)

// RedisSessionStore keeps each session as one JSON document and its report
// history as a list under a derived key. Both expire together.
type RedisSessionStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisSessionStore(ctx context.Context) *RedisSessionStore {
	backing := redisStore.GetRedisStore(ctx, config.RedisSessionStore)
	if backing == nil {
		return nil
	}
	return &RedisSessionStore{
		store:  backing,
		logger: logger_i.NewLogger("SessionStore"),
	}
}

func reportsKey(sessionId string) string {
	return "reports:" + sessionId
}

func (s *RedisSessionStore) ValidateSessionId(ctx context.Context, sessionId string) bool {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionId)
	log.Debug("validating sessionId")
	isFound, err := s.store.Exists(ctx, sessionId)
	if s.store.IsNil(err) {
		return false
	} else if err != nil {
		log.Error("Failed to check if sessionId exists", "err", err)
		return false
	}
	return isFound
}

func (s *RedisSessionStore) InitNewSession(ctx context.Context, sessionId string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionId)
	log.Debug("Initializing new session")

	if err := s.store.Del(ctx, sessionId, reportsKey(sessionId)); err != nil && !s.store.IsNil(err) {
		log.Error("Error clearing previous session keys", "err", err)
	}
	return s.SaveSession(ctx, esg.Session{Id: sessionId, CreatedAt: time.Now().UTC()})
}

func (s *RedisSessionStore) GetSession(ctx context.Context, sessionId string) (esg.Session, bool) {
	var session esg.Session
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionId)

	val, err := s.store.Get(ctx, sessionId)
	if s.store.IsNil(err) {
		return session, false
	} else if err != nil {
		log.Error("Error reading session", "err", err)
		return session, false
	}

	if err = json.Unmarshal([]byte(val), &session); err != nil {
		log.Error("Error unmarshalling session", "err", err)
		return session, false
	}
	return session, true
}

func (s *RedisSessionStore) SaveSession(ctx context.Context, session esg.Session) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", session.Id)
	if session.Id == "" {
		err := errors.New("empty session id")
		log.Error("Refusing to save session", "err", err)
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		log.Error("Error marshalling session", "err", err)
		return err
	}

	err = s.store.Set(ctx, session.Id, data, config.RedisSessionStoreTTL)
	if err != nil {
		log.Error("Error saving session", "err", err)
	}
	return err
}

func (s *RedisSessionStore) AppendReport(ctx context.Context, sessionId string, report esg.Report) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionId)
	if !s.ValidateSessionId(ctx, sessionId) {
		err := errors.New("invalid session id")
		log.Error("Failed validation before saving report", "err", err)
		return err
	}

	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	if err = s.store.ListPush(ctx, reportsKey(sessionId), data); err != nil {
		log.Error("Error appending report", "err", err)
		return err
	}
	return s.store.Expire(ctx, reportsKey(sessionId), config.RedisSessionStoreTTL)
}

func (s *RedisSessionStore) GetReports(ctx context.Context, sessionId string) ([]esg.Report, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionId)

	raw, err := s.store.ListGetAll(ctx, reportsKey(sessionId))
	if err != nil {
		log.Error("Error reading report history", "err", err)
		return nil, err
	}

	reports := make([]esg.Report, 0, len(raw))
	for _, item := range raw {
		var report esg.Report
		if err = json.Unmarshal([]byte(item), &report); err != nil {
			log.Error("Skipping malformed report entry", "err", err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func TestSessionStore(store *redisStore.Store) *RedisSessionStore {
	return &RedisSessionStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
