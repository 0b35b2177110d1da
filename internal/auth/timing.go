package auth

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"
)

// TimingConfig sets the floor for how long a rejected login takes.
type TimingConfig struct {
	Base           time.Duration
	Jitter         time.Duration // uniform extra in [0, Jitter)
	DelayOnSuccess bool
}

// TimingDelay pads rejected logins so an unknown username and a wrong
// password are indistinguishable by response time.
type TimingDelay struct {
	config TimingConfig
}

func NewTimingDelay(config TimingConfig) *TimingDelay {
	return &TimingDelay{config: config}
}

func (td *TimingDelay) budget() time.Duration {
	d := td.config.Base
	if td.config.Jitter > 0 {
		if n, err := rand.Int(rand.Reader, big.NewInt(int64(td.config.Jitter))); err == nil {
			d += time.Duration(n.Int64())
		}
	}
	return d
}

// Wait is WaitFrom with the clock starting now.
func (td *TimingDelay) Wait(ctx context.Context, success bool) {
	td.WaitFrom(ctx, time.Now(), success)
}

// WaitFrom sleeps until the budget measured from start has elapsed.
// Successful attempts return immediately unless DelayOnSuccess is set.
// A nil receiver and a cancelled ctx both return at once.
func (td *TimingDelay) WaitFrom(ctx context.Context, start time.Time, success bool) {
	if td == nil || (success && !td.config.DelayOnSuccess) {
		return
	}

	remaining := td.budget() - time.Since(start)
	if remaining <= 0 {
		return
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
