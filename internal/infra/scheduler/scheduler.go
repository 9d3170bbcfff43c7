package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/egornomic/aavegotchi-pet-sitter/internal/app"
)

const (
	petTickTimeout     = 5 * time.Minute
	healthCheckTimeout = 1 * time.Minute
)

// PetScheduler drives the two recurring activities: the pet tick and the
// independent connectivity health check. Tick failures are contained inside
// the service; only Stop() halts the loop.
type PetScheduler struct {
	cronEngine     *cron.Cron
	service        app.PetSitterService
	logger         *logrus.Logger
	tickInterval   time.Duration
	healthInterval time.Duration
}

func NewPetScheduler(
	service app.PetSitterService,
	logger *logrus.Logger,
	tickInterval time.Duration,
	healthInterval time.Duration,
) *PetScheduler {
	return &PetScheduler{
		cronEngine:     cron.New(cron.WithLocation(time.Local)),
		service:        service,
		logger:         logger,
		tickInterval:   tickInterval,
		healthInterval: healthInterval,
	}
}

// Start runs the startup checks and registers both recurring jobs. A failed
// startup check (unreachable node, no claimed gotchis) is fatal and returned
// to the caller; nothing is scheduled in that case.
func (s *PetScheduler) Start(ctx context.Context) error {
	s.logger.Info("Starting pet scheduler...")

	if err := s.service.EnsureReady(ctx); err != nil {
		return fmt.Errorf("pet sitter startup check failed: %w", err)
	}

	_, err := s.cronEngine.AddFunc(fmt.Sprintf("@every %s", s.tickInterval), func() {
		tickCtx, cancel := context.WithTimeout(context.Background(), petTickTimeout)
		defer cancel()
		if err := s.service.RunPetCycle(tickCtx); err != nil {
			s.logger.Errorf("Pet cycle tick: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("could not add pet tick job: %w", err)
	}

	_, err = s.cronEngine.AddFunc(fmt.Sprintf("@every %s", s.healthInterval), func() {
		checkCtx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()
		if err := s.service.RunHealthCheck(checkCtx); err != nil {
			s.logger.Errorf("Health check: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("could not add health check job: %w", err)
	}

	s.cronEngine.Start()
	s.logger.Infof("Pet scheduler started. Tick every %s, health check every %s.", s.tickInterval, s.healthInterval)
	return nil
}

// Stop cancels both recurring jobs and waits for an in-flight tick to finish.
// A control pet already scheduled by a past tick is detached and keeps its
// own timer.
func (s *PetScheduler) Stop() {
	s.logger.Info("Stopping pet scheduler...")
	ctx := s.cronEngine.Stop() // Stops scheduling new runs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.service.MarkStopped()
	s.logger.Info("Pet scheduler gracefully stopped.")
}
