package scheduler

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egornomic/aavegotchi-pet-sitter/internal/app"
)

type fakePetSitter struct {
	mu       sync.Mutex
	readyErr error
	ticks    int
	checks   int
	stopped  bool
}

func (f *fakePetSitter) EnsureReady(_ context.Context) error { return f.readyErr }

func (f *fakePetSitter) RunPetCycle(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ticks++
	return nil
}

func (f *fakePetSitter) RunHealthCheck(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	return nil
}

func (f *fakePetSitter) Status() app.BotState { return app.BotState{} }

func (f *fakePetSitter) MarkStopped() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakePetSitter) tickCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ticks
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestStart_PropagatesStartupFailure(t *testing.T) {
	svc := &fakePetSitter{readyErr: app.ErrNoClaimedGotchis}
	s := NewPetScheduler(svc, quietLogger(), time.Hour, time.Hour)

	err := s.Start(context.Background())
	require.ErrorIs(t, err, app.ErrNoClaimedGotchis, "startup failures must be fatal, not swallowed")
	assert.Equal(t, 0, svc.tickCount())
}

func TestStartAndStop(t *testing.T) {
	svc := &fakePetSitter{}
	s := NewPetScheduler(svc, quietLogger(), time.Hour, time.Hour)

	require.NoError(t, s.Start(context.Background()))
	s.Stop()
	assert.True(t, svc.stopped)
}

func TestTicksFire(t *testing.T) {
	svc := &fakePetSitter{}
	s := NewPetScheduler(svc, quietLogger(), 10*time.Millisecond, time.Hour)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if svc.tickCount() >= 2 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected at least 2 pet ticks, got %d", svc.tickCount())
}
