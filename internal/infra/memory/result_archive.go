package memory

import (
	"context"
	"sort"
	"sync"

	"mbti-service/internal/domain"
)

// ResultArchive keeps scored results in process memory. Used when no database is configured.
type ResultArchive struct {
	mu      sync.RWMutex
	entries []archivedResult
}

type archivedResult struct {
	sessionID string
	record    domain.ResultRecord
}

func NewResultArchive() *ResultArchive {
	return &ResultArchive{}
}

func (a *ResultArchive) Archive(_ context.Context, sessionID string, record domain.ResultRecord) error {
	a.mu.Lock()
	a.entries = append(a.entries, archivedResult{sessionID: sessionID, record: cloneRecord(record)})
	a.mu.Unlock()
	return nil
}

// TypeCounts returns per-type totals, most frequent first, ties by code.
func (a *ResultArchive) TypeCounts(_ context.Context) ([]domain.TypeCount, error) {
	a.mu.RLock()
	counts := make(map[domain.TypeCode]int)
	for _, e := range a.entries {
		counts[e.record.TypeCode]++
	}
	a.mu.RUnlock()

	out := make([]domain.TypeCount, 0, len(counts))
	for code, n := range counts {
		out = append(out, domain.TypeCount{TypeCode: code, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].TypeCode < out[j].TypeCode
	})
	return out, nil
}

// Len reports how many results have been archived.
func (a *ResultArchive) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.entries)
}
