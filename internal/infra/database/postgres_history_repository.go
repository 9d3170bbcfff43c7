// internal/infra/database/postgres_history_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/egornomic/aavegotchi-pet-sitter/internal/domain/history"
)

type PostgresHistoryRepository struct {
	db *sql.DB
}

func NewPostgresHistoryRepository(db *sql.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

// EnsureSchema creates the pet_history table when it does not exist yet.
func (r *PostgresHistoryRepository) EnsureSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS pet_history (
                id BIGSERIAL PRIMARY KEY,
                owner_address TEXT NOT NULL,
                gotchi_count INTEGER NOT NULL,
                success BOOLEAN NOT NULL,
                tx_hash TEXT,
                error_text TEXT,
                verified_count INTEGER NOT NULL DEFAULT 0,
                pet_at TIMESTAMPTZ NOT NULL,
                created_at TIMESTAMPTZ NOT NULL DEFAULT now()
              )`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("error ensuring pet_history schema: %w", err)
	}
	return nil
}

func (r *PostgresHistoryRepository) RecordPet(ctx context.Context, rec *history.PetRecord) error {
	query := `INSERT INTO pet_history (owner_address, gotchi_count, success, tx_hash, error_text, verified_count, pet_at)
               VALUES ($1, $2, $3, $4, $5, $6, $7)
               RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		rec.OwnerAddress, rec.GotchiCount, rec.Success, rec.TxHash, rec.ErrorText, rec.VerifiedCount, rec.PetAt,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("error recording pet history: %w", err)
	}
	return nil
}

func (r *PostgresHistoryRepository) ListRecent(ctx context.Context, limit int) ([]*history.PetRecord, error) {
	query := `SELECT id, owner_address, gotchi_count, success, tx_hash, error_text, verified_count, pet_at, created_at
               FROM pet_history ORDER BY pet_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing pet history: %w", err)
	}
	defer rows.Close()

	var records []*history.PetRecord
	for rows.Next() {
		rec := history.PetRecord{}
		if err := rows.Scan(&rec.ID, &rec.OwnerAddress, &rec.GotchiCount, &rec.Success, &rec.TxHash, &rec.ErrorText, &rec.VerifiedCount, &rec.PetAt, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning pet history row: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pet history rows: %w", err)
	}
	return records, nil
}
