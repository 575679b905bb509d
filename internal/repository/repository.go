package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Jamolkhon5/sewing-assistant/internal/models"
)

const schema = `
        CREATE TABLE IF NOT EXISTS exchanges (
            id VARCHAR(36) PRIMARY KEY,
            message TEXT NOT NULL,
            mode VARCHAR(20) NOT NULL,
            status INTEGER NOT NULL,
            response TEXT NOT NULL,
            error TEXT NOT NULL,
            created_at TIMESTAMP NOT NULL
        )`

// Repository is the write-only exchange log. Nothing in it is read back
// into answers.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the exchanges table if it does not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating exchanges table: %w", err)
	}
	return nil
}

func (r *Repository) SaveExchange(ctx context.Context, exchange models.Exchange) error {
	if exchange.ID == "" {
		exchange.ID = uuid.NewString()
	}
	if exchange.CreatedAt.IsZero() {
		exchange.CreatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`
        INSERT INTO exchanges (id, message, mode, status, response, error, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		exchange.ID, exchange.Message, exchange.Mode, exchange.Status,
		exchange.Response, exchange.Error, exchange.CreatedAt)
	if err != nil {
		return fmt.Errorf("error saving exchange: %w", err)
	}
	return nil
}
