// internal/app/pet_sitter_service.go
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/egornomic/aavegotchi-pet-sitter/internal/domain/gotchi"
	"github.com/egornomic/aavegotchi-pet-sitter/internal/domain/history"
	"github.com/egornomic/aavegotchi-pet-sitter/internal/domain/ledger"
	"github.com/egornomic/aavegotchi-pet-sitter/internal/domain/notifier"
)

// Startup errors. Both are fatal: if the node is unreachable or the owner has
// no claimed gotchis there is nothing the bot could usefully do.
var ErrNodeUnreachable = fmt.Errorf("RPC node is unreachable")
var ErrNoClaimedGotchis = fmt.Errorf("owner has no claimed gotchis")

const controlPetTimeout = 2 * time.Minute

// ActionOutcome is the result of one pet attempt. Immutable once constructed.
type ActionOutcome struct {
	Success  bool
	TxHash   string
	ErrorMsg string
	// PetCount is the number of gotchis targeted by the submission, zero
	// when the submission itself failed.
	PetCount int
}

// PetSitterService defines the operations driven by the scheduler.
type PetSitterService interface {
	// EnsureReady performs the startup checks: node connectivity and at
	// least one claimed gotchi. Failure here is fatal to Start().
	EnsureReady(ctx context.Context) error
	// RunPetCycle executes one scheduling tick: collect a batch, decide
	// whether the cooldown has elapsed, and pet if due. Tick failures are
	// counted and notified internally; the returned error is for logging.
	RunPetCycle(ctx context.Context) error
	// RunHealthCheck reports (but does not act on) lost connectivity.
	RunHealthCheck(ctx context.Context) error
	// Status returns a copy of the bot state, safe for callers to mutate.
	Status() BotState
	// MarkStopped flips the running flag; called on scheduler shutdown.
	MarkStopped()
}

// PetSitterServiceImpl implements the PetSitterService interface.
type PetSitterServiceImpl struct {
	ledger       ledger.Client
	notif        notifier.Notifier
	historyRepo  history.Repository // optional, nil disables pet history
	logger       *logrus.Logger
	owner        common.Address
	cooldown     time.Duration
	controlDelay time.Duration
	state        BotState
	now          func() time.Time
}

func NewPetSitterService(
	lc ledger.Client,
	n notifier.Notifier,
	hr history.Repository,
	logger *logrus.Logger,
	owner common.Address,
	cooldown time.Duration,
	controlDelay time.Duration,
) *PetSitterServiceImpl {
	return &PetSitterServiceImpl{
		ledger:       lc,
		notif:        n,
		historyRepo:  hr,
		logger:       logger,
		owner:        owner,
		cooldown:     cooldown,
		controlDelay: controlDelay,
		state:        BotState{OwnerAddress: owner.Hex()},
		now:          time.Now,
	}
}

// EnsureReady verifies the bot can operate at all.
func (s *PetSitterServiceImpl) EnsureReady(ctx context.Context) error {
	if !s.ledger.CheckConnectivity(ctx) {
		return ErrNodeUnreachable
	}
	batch, err := s.collectBatch(ctx)
	if err != nil {
		return fmt.Errorf("initial gotchi enumeration failed: %w", err)
	}
	if len(batch.Fetched) == 0 {
		return ErrNoClaimedGotchis
	}
	s.state.Running = true
	s.logger.Infof("Pet sitter ready: watching %d gotchis (%d claimed) for %s", len(batch.AllIDs), len(batch.Fetched), s.owner.Hex())
	s.notif.Notify(notifier.KindInfo, fmt.Sprintf("Pet sitter started: watching %d gotchis for %s", len(batch.AllIDs), s.owner.Hex()), "")
	return nil
}

// RunPetCycle is one scheduling tick.
func (s *PetSitterServiceImpl) RunPetCycle(ctx context.Context) error {
	batch, err := s.collectBatch(ctx)
	if err != nil {
		s.state.TotalErrors++
		s.logger.Errorf("Pet cycle failed: %v", err)
		s.notif.Notify(notifier.KindError, fmt.Sprintf("Pet cycle failed: %v", err), "")
		return fmt.Errorf("pet cycle: %w", err)
	}

	if len(batch.AllIDs) == 0 {
		s.logger.Info("Owner holds no gotchis. Skipping this tick.")
		return nil
	}

	now := s.now()
	var nextPetAt time.Time
	if batch.SharedLastPet.Valid {
		nextPetAt = batch.SharedLastPet.Time.Add(s.cooldown)
	} else {
		// No timing data at all this tick: assume a fresh cooldown rather
		// than petting blind.
		nextPetAt = now.Add(s.cooldown)
	}

	if now.Before(nextPetAt) {
		s.state.NextPetAt = nextPetAt
		s.logger.Debugf("Cooldown not elapsed. Next pet at %s (in %s).", nextPetAt.Format(time.RFC3339), nextPetAt.Sub(now).Round(time.Second))
		return nil
	}

	s.executePet(ctx, batch)
	return nil
}

// collectBatch enumerates the owner's gotchi ids and fetches details for each
// one independently. Enumeration is authoritative: a failed detail fetch
// leaves the id in the batch, because petting an id we know nothing about is
// safe while skipping it is not. The first claimed gotchi in enumeration
// order supplies the shared last-pet time for the whole batch.
func (s *PetSitterServiceImpl) collectBatch(ctx context.Context) (*gotchi.Batch, error) {
	ids, err := s.ledger.GotchiIDsOfOwner(ctx, s.owner)
	if err != nil {
		return nil, fmt.Errorf("enumerate gotchis of %s: %w", s.owner.Hex(), err)
	}

	batch := &gotchi.Batch{AllIDs: ids}
	for _, id := range ids {
		g, err := s.ledger.GetGotchi(ctx, id)
		if err != nil {
			s.logger.Debugf("Detail fetch for gotchi %d failed, will pet it anyway: %v", id, err)
			continue
		}
		if !g.Claimed() {
			continue
		}
		batch.Fetched = append(batch.Fetched, g)
		if !batch.SharedLastPet.Valid {
			batch.SharedLastPet = sql.NullTime{Time: g.LastInteracted, Valid: true}
		}
	}
	return batch, nil
}

// executePet submits one interact transaction covering the whole batch,
// schedules the detached control pet, verifies the effect and updates
// counters/notifications accordingly.
func (s *PetSitterServiceImpl) executePet(ctx context.Context, batch *gotchi.Batch) ActionOutcome {
	ids := batch.AllIDs

	var gasEstimate uint64
	if gas, err := s.ledger.EstimatePetGas(ctx, ids); err != nil {
		s.logger.Warnf("Gas estimate for petting %d gotchis failed: %v", len(ids), err)
	} else {
		gasEstimate = gas
		s.logger.Infof("Estimated gas for petting %d gotchis: %d", len(ids), gas)
	}

	txHash, err := s.ledger.Pet(ctx, ids)
	if err != nil {
		s.state.TotalErrors++
		s.logger.Errorf("Pet transaction failed: %v", err)
		s.notif.Notify(notifier.KindError, fmt.Sprintf("Pet transaction failed: %v", err), "")
		outcome := ActionOutcome{Success: false, ErrorMsg: err.Error()}
		s.recordHistory(ctx, outcome, 0)
		return outcome
	}
	s.logger.Infof("Pet transaction %s submitted for %d gotchis.", txHash, len(ids))

	s.scheduleControlPet(ids)

	result := s.verifyPets(ctx, ids, batch.SharedLastPet)
	outcome := ActionOutcome{TxHash: txHash, PetCount: len(ids)}
	if !result.Success {
		// Expected when the on-chain cooldown had not actually elapsed; the
		// next tick will try again. Not an error.
		s.logger.Warnf("Pet tx %s submitted but no gotchi shows a newer interaction time.", txHash)
		s.recordHistory(ctx, outcome, 0)
		return outcome
	}
	outcome.Success = true

	now := s.now()
	s.state.TotalPets++
	s.state.LastPetAt = now
	s.state.NextPetAt = now.Add(s.cooldown)

	text := fmt.Sprintf("Petted %d gotchis, %d confirmed updated.", len(ids), len(result.UpdatedIDs))
	if gasEstimate > 0 {
		text += fmt.Sprintf(" Estimated gas: %d.", gasEstimate)
	}
	s.notif.Notify(notifier.KindSuccess, text, txHash)
	s.recordHistory(ctx, outcome, len(result.UpdatedIDs))
	return outcome
}

// scheduleControlPet fires a second, identical pet after a settle delay to
// double-confirm the effect. It is detached: Stop() does not cancel it, its
// failure is notified independently and it is never retried. It only touches
// the notifier and the log, never the bot state counters, so it cannot race
// with a later tick.
func (s *PetSitterServiceImpl) scheduleControlPet(ids []gotchi.ID) {
	time.AfterFunc(s.controlDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), controlPetTimeout)
		defer cancel()

		txHash, err := s.ledger.Pet(ctx, ids)
		if err != nil {
			s.logger.Warnf("Control pet for %d gotchis failed: %v", len(ids), err)
			s.notif.Notify(notifier.KindError, fmt.Sprintf("Control pet failed: %v", err), "")
			return
		}
		s.logger.Infof("Control pet %s submitted for %d gotchis.", txHash, len(ids))
	})
}

// RunHealthCheck is the independent, longer-period connectivity probe.
func (s *PetSitterServiceImpl) RunHealthCheck(ctx context.Context) error {
	if !s.ledger.CheckConnectivity(ctx) {
		s.logger.Error("Health check: lost connectivity to the RPC node.")
		s.notif.Notify(notifier.KindError, "Lost connectivity to the RPC node.", "")
		return ErrNodeUnreachable
	}
	height, err := s.ledger.BlockNumber(ctx)
	if err != nil {
		s.logger.Warnf("Health check: node reachable but block number query failed: %v", err)
		return nil
	}
	s.logger.Infof("Health check ok. Chain height: %d.", height)
	return nil
}

// Status returns a value copy so callers cannot mutate the internal counters.
func (s *PetSitterServiceImpl) Status() BotState {
	return s.state
}

func (s *PetSitterServiceImpl) MarkStopped() {
	s.state.Running = false
}

// recordHistory persists the outcome when a history repository is configured.
// Best-effort: a storage failure never affects the outcome.
func (s *PetSitterServiceImpl) recordHistory(ctx context.Context, outcome ActionOutcome, verifiedCount int) {
	if s.historyRepo == nil {
		return
	}
	rec := &history.PetRecord{
		OwnerAddress:  s.owner.Hex(),
		GotchiCount:   outcome.PetCount,
		Success:       outcome.Success,
		VerifiedCount: verifiedCount,
		PetAt:         s.now(),
	}
	if outcome.TxHash != "" {
		rec.TxHash = sql.NullString{String: outcome.TxHash, Valid: true}
	}
	if outcome.ErrorMsg != "" {
		rec.ErrorText = sql.NullString{String: outcome.ErrorMsg, Valid: true}
	}
	if err := s.historyRepo.RecordPet(ctx, rec); err != nil {
		s.logger.Warnf("Failed to record pet history: %v", err)
	}
}
