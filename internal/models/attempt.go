package models

import "time"

// AttemptRecord tracks failed admin login attempts for one client identifier.
type AttemptRecord struct {
	Count        int
	FirstAttempt time.Time
	BlockedUntil *time.Time // nil until the threshold is reached
}

// IsBlockedAt reports whether the record is a live lockout at now.
func (r *AttemptRecord) IsBlockedAt(now time.Time) bool {
	return r.BlockedUntil != nil && now.Before(*r.BlockedUntil)
}

// LockoutPolicy holds the thresholds shared by the attempt stores and the rate limiter.
type LockoutPolicy struct {
	MaxAttempts     int
	LockoutDuration time.Duration
	AttemptWindow   time.Duration // age after which an unblocked record is stale
}

// DefaultLockoutPolicy returns 5 attempts and a 24 hour lockout.
func DefaultLockoutPolicy() LockoutPolicy {
	return LockoutPolicy{
		MaxAttempts:     5,
		LockoutDuration: 24 * time.Hour,
		AttemptWindow:   24 * time.Hour,
	}
}

// IsExpired reports whether a record must be treated as absent at now.
func (p LockoutPolicy) IsExpired(r *AttemptRecord, now time.Time) bool {
	if r == nil {
		return true
	}
	if r.BlockedUntil != nil {
		return !now.Before(*r.BlockedUntil)
	}
	return now.Sub(r.FirstAttempt) > p.AttemptWindow
}

// RateLimitDecision is the outcome of a rate limit check or a recorded failure.
type RateLimitDecision struct {
	Blocked           bool
	RemainingAttempts int
	BlockedUntil      *time.Time
	// JustBlocked is set only on the failure that crossed the threshold.
	JustBlocked bool
}
