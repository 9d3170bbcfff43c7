package history

import (
	"database/sql"
	"time"
)

// PetRecord is one row of operator telemetry about a pet attempt.
// Corresponds to the 'pet_history' table.
type PetRecord struct {
	ID            int64
	OwnerAddress  string
	GotchiCount   int
	Success       bool
	TxHash        sql.NullString
	ErrorText     sql.NullString
	VerifiedCount int
	PetAt         time.Time
	CreatedAt     time.Time
}
