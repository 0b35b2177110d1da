package repositories

import (
	"context"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/models"
)

// AttemptStore tracks failed admin login attempts per client identifier.
// Implementations must treat logically expired records as absent.
type AttemptStore interface {
	// Get returns the live record for id, or nil when none exists or it has expired.
	Get(ctx context.Context, id string, now time.Time) (*models.AttemptRecord, error)
	// RecordFailure atomically increments the count for id. transitioned is true only
	// for the single call that moved the record into the blocked state.
	RecordFailure(ctx context.Context, id string, now time.Time) (rec *models.AttemptRecord, transitioned bool, err error)
	// Reset removes the record for id unconditionally.
	Reset(ctx context.Context, id string) error
	// SweepExpired evicts expired records and returns how many were removed.
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// PingAttemptStore checks a store that talks to an external server.
// In-process stores have nothing to reach and always report healthy.
func PingAttemptStore(ctx context.Context, store AttemptStore) error {
	p, ok := store.(interface{ Ping(context.Context) error })
	if !ok {
		return nil
	}
	return p.Ping(ctx)
}
