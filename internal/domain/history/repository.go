package history

import "context"

// Repository persists pet attempt telemetry. The scheduling decision never
// reads it back; ListRecent exists for operator tooling.
type Repository interface {
	RecordPet(ctx context.Context, rec *PetRecord) error
	ListRecent(ctx context.Context, limit int) ([]*PetRecord, error)
}
