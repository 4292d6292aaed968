package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/akolanti/EsgAPI/internal/domain/esg"
)

type InMemorySessionStore struct {
	sessionLock *sync.RWMutex
	sessionMap  map[string]esg.Session
	reportMap   map[string][]esg.Report
}

func InitSessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessionLock: new(sync.RWMutex),
		sessionMap:  make(map[string]esg.Session),
		reportMap:   make(map[string][]esg.Report),
	}
}

func (store *InMemorySessionStore) ValidateSessionId(ctx context.Context, sessionId string) bool {
	store.sessionLock.RLock()
	defer store.sessionLock.RUnlock()
	_, ok := store.sessionMap[sessionId]
	return ok
}

func (store *InMemorySessionStore) InitNewSession(ctx context.Context, sessionId string) error {
	store.sessionLock.Lock()
	defer store.sessionLock.Unlock()
	store.sessionMap[sessionId] = esg.Session{Id: sessionId, CreatedAt: time.Now().UTC()}
	delete(store.reportMap, sessionId)
	return nil
}

func (store *InMemorySessionStore) GetSession(ctx context.Context, sessionId string) (esg.Session, bool) {
	store.sessionLock.RLock()
	defer store.sessionLock.RUnlock()
	session, found := store.sessionMap[sessionId]
	return session, found
}

func (store *InMemorySessionStore) SaveSession(ctx context.Context, session esg.Session) error {
	if session.Id == "" {
		return errors.New("empty session id")
	}
	store.sessionLock.Lock()
	defer store.sessionLock.Unlock()
	store.sessionMap[session.Id] = session
	return nil
}

func (store *InMemorySessionStore) AppendReport(ctx context.Context, sessionId string, report esg.Report) error {
	if !store.ValidateSessionId(ctx, sessionId) {
		return errors.New("invalid session id")
	}
	store.sessionLock.Lock()
	defer store.sessionLock.Unlock()
	store.reportMap[sessionId] = append(store.reportMap[sessionId], report)
	return nil
}

func (store *InMemorySessionStore) GetReports(ctx context.Context, sessionId string) ([]esg.Report, error) {
	store.sessionLock.RLock()
	defer store.sessionLock.RUnlock()
	return store.reportMap[sessionId], nil
}
