package memory

import (
	"context"
	"sync"
	"time"

	"mbti-service/internal/domain"
)

// ResultStore is an in-memory implementation of app.ResultStore.
// Entries expire ttl after their last write; a zero ttl keeps them until cleared.
type ResultStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu      sync.RWMutex
	results map[string]storedResult
}

type storedResult struct {
	record    domain.ResultRecord
	expiresAt time.Time
}

func NewResultStore(ttl time.Duration) *ResultStore {
	return NewResultStoreWithClock(ttl, time.Now)
}

// NewResultStoreWithClock allows deterministic expiry in tests.
func NewResultStoreWithClock(ttl time.Duration, clock func() time.Time) *ResultStore {
	return &ResultStore{
		ttl:     ttl,
		clock:   clock,
		results: make(map[string]storedResult),
	}
}

func (s *ResultStore) Put(_ context.Context, sessionID string, record domain.ResultRecord) error {
	entry := storedResult{record: cloneRecord(record)}
	if s.ttl > 0 {
		entry.expiresAt = s.clock().Add(s.ttl)
	}

	s.mu.Lock()
	s.results[sessionID] = entry
	s.mu.Unlock()
	return nil
}

func (s *ResultStore) Get(_ context.Context, sessionID string) (domain.ResultRecord, error) {
	s.mu.RLock()
	entry, ok := s.results[sessionID]
	s.mu.RUnlock()
	if !ok {
		return domain.ResultRecord{}, domain.ErrResultNotFound
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(s.clock()) {
		s.mu.Lock()
		if current, ok := s.results[sessionID]; ok && current.expiresAt.Equal(entry.expiresAt) {
			delete(s.results, sessionID)
		}
		s.mu.Unlock()
		return domain.ResultRecord{}, domain.ErrResultNotFound
	}
	return cloneRecord(entry.record), nil
}

func (s *ResultStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.results, sessionID)
	s.mu.Unlock()
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (s *ResultStore) Sweep() int {
	now := s.clock()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entry := range s.results {
		if !entry.expiresAt.IsZero() && !entry.expiresAt.After(now) {
			delete(s.results, id)
			removed++
		}
	}
	return removed
}

// cloneRecord copies the maps so stored records cannot be mutated by callers. Nil maps stay nil.
func cloneRecord(record domain.ResultRecord) domain.ResultRecord {
	if record.Tally != nil {
		tally := make(domain.ScoreTally, len(record.Tally))
		for k, v := range record.Tally {
			tally[k] = v
		}
		record.Tally = tally
	}
	if record.Answers != nil {
		answers := make(domain.AnswerSet, len(record.Answers))
		for k, v := range record.Answers {
			answers[k] = v
		}
		record.Answers = answers
	}
	return record
}
