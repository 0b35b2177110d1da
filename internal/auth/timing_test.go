package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/auth"
	"github.com/stretchr/testify/assert"
)

func TestTimingDelay_PadsRejectedLogin(t *testing.T) {
	timing := auth.NewTimingDelay(auth.TimingConfig{Base: 100 * time.Millisecond, Jitter: 50 * time.Millisecond})
	startTime := time.Now()

	timing.Wait(context.Background(), false)

	elapsed := time.Since(startTime)
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	assert.Less(t, elapsed, 300*time.Millisecond)
}

func TestTimingDelay_SuccessReturnsImmediately(t *testing.T) {
	timing := auth.NewTimingDelay(auth.TimingConfig{Base: 100 * time.Millisecond, Jitter: 50 * time.Millisecond})
	startTime := time.Now()

	timing.Wait(context.Background(), true)

	assert.Less(t, time.Since(startTime), 10*time.Millisecond)
}

func TestTimingDelay_DelayOnSuccess(t *testing.T) {
	timing := auth.NewTimingDelay(auth.TimingConfig{Base: 100 * time.Millisecond, DelayOnSuccess: true})
	startTime := time.Now()

	timing.Wait(context.Background(), true)

	assert.GreaterOrEqual(t, time.Since(startTime), 100*time.Millisecond)
}

func TestTimingDelay_WaitFromSubtractsElapsed(t *testing.T) {
	timing := auth.NewTimingDelay(auth.TimingConfig{Base: 100 * time.Millisecond})
	startTime := time.Now().Add(-80 * time.Millisecond)

	before := time.Now()
	timing.WaitFrom(context.Background(), startTime, false)

	waited := time.Since(before)
	assert.GreaterOrEqual(t, waited, 15*time.Millisecond)
	assert.Less(t, waited, 80*time.Millisecond)
}

func TestTimingDelay_CancelledContext(t *testing.T) {
	timing := auth.NewTimingDelay(auth.TimingConfig{Base: 5 * time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	startTime := time.Now()
	timing.Wait(ctx, false)

	assert.Less(t, time.Since(startTime), 100*time.Millisecond)
}

func TestTimingDelay_NilIsNoop(t *testing.T) {
	var timing *auth.TimingDelay
	assert.NotPanics(t, func() { timing.Wait(context.Background(), false) })
}

func TestTimingDelay_ZeroBudget(t *testing.T) {
	timing := auth.NewTimingDelay(auth.TimingConfig{})
	startTime := time.Now()

	timing.Wait(context.Background(), false)

	assert.Less(t, time.Since(startTime), 10*time.Millisecond)
}
