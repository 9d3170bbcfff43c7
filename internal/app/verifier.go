// internal/app/verifier.go
package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/egornomic/aavegotchi-pet-sitter/internal/domain/gotchi"
)

// VerifyResult is the outcome of checking whether a pet observably took
// effect.
type VerifyResult struct {
	Success    bool
	UpdatedIDs []gotchi.ID
}

// verifyPets re-fetches each gotchi and checks whether its interaction time
// moved. Individual fetch failures are expected (rate limits, flaky nodes)
// and skipped. A verification-level abort is reported as success with an
// empty updated set; the next tick re-checks the real timing anyway.
func (s *PetSitterServiceImpl) verifyPets(ctx context.Context, ids []gotchi.ID, before sql.NullTime) VerifyResult {
	updated, err := s.checkInteractionTimes(ctx, ids, before)
	if err != nil {
		s.state.OptimisticVerifies++
		s.logger.Warnf("Verification aborted (%v). Assuming the pet was effective.", err)
		return VerifyResult{Success: true}
	}
	return VerifyResult{Success: len(updated) > 0, UpdatedIDs: updated}
}

// checkInteractionTimes returns the ids whose interaction time counts as
// updated. With a known "before" timestamp the new time must be strictly
// greater. Without one, a time within the last hour counts as updated.
func (s *PetSitterServiceImpl) checkInteractionTimes(ctx context.Context, ids []gotchi.ID, before sql.NullTime) ([]gotchi.ID, error) {
	now := s.now()
	var updated []gotchi.ID
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, err := s.ledger.GetGotchi(ctx, id)
		if err != nil {
			s.logger.Debugf("Verification fetch for gotchi %d failed, skipping: %v", id, err)
			continue
		}
		if before.Valid {
			if g.LastInteracted.After(before.Time) {
				updated = append(updated, id)
			}
			continue
		}
		if now.Sub(g.LastInteracted) < time.Hour {
			updated = append(updated, id)
		}
	}
	return updated, nil
}
