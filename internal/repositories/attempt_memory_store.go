package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/models"
)

// MemoryAttemptStore is an in-process AttemptStore for single-instance deployments.
// State is lost on restart. For multi-instance deployments use RedisAttemptStore.
type MemoryAttemptStore struct {
	mu      sync.Mutex
	records map[string]*models.AttemptRecord
	policy  models.LockoutPolicy
}

func NewMemoryAttemptStore(policy models.LockoutPolicy) *MemoryAttemptStore {
	return &MemoryAttemptStore{
		records: make(map[string]*models.AttemptRecord),
		policy:  policy,
	}
}

func (s *MemoryAttemptStore) Get(ctx context.Context, id string, now time.Time) (*models.AttemptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	if s.policy.IsExpired(rec, now) {
		delete(s.records, id)
		return nil, nil
	}
	return copyRecord(rec), nil
}

func (s *MemoryAttemptStore) RecordFailure(ctx context.Context, id string, now time.Time) (*models.AttemptRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || s.policy.IsExpired(rec, now) {
		rec = &models.AttemptRecord{FirstAttempt: now}
		s.records[id] = rec
	}

	rec.Count++

	transitioned := false
	if rec.BlockedUntil == nil && rec.Count >= s.policy.MaxAttempts {
		until := now.Add(s.policy.LockoutDuration)
		rec.BlockedUntil = &until
		transitioned = true
	}

	return copyRecord(rec), transitioned, nil
}

func (s *MemoryAttemptStore) Reset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func (s *MemoryAttemptStore) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, rec := range s.records {
		if s.policy.IsExpired(rec, now) {
			delete(s.records, id)
			evicted++
		}
	}
	return evicted, nil
}

// Len returns the number of records held, including expired ones not yet swept.
func (s *MemoryAttemptStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func copyRecord(rec *models.AttemptRecord) *models.AttemptRecord {
	out := *rec
	if rec.BlockedUntil != nil {
		until := *rec.BlockedUntil
		out.BlockedUntil = &until
	}
	return &out
}

var _ AttemptStore = (*MemoryAttemptStore)(nil)
