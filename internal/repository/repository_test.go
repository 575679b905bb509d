package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/Jamolkhon5/sewing-assistant/internal/models"
)

func newTestRepository(t *testing.T) (*Repository, *sqlx.DB) {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo, db
}

func TestMigrate_Idempotent(t *testing.T) {
	repo, _ := newTestRepository(t)
	assert.NoError(t, repo.Migrate(context.Background()))
}

func TestSaveExchange(t *testing.T) {
	repo, db := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveExchange(ctx, models.Exchange{
		Message:  "which fabric?",
		Mode:     models.ModeFallback,
		Status:   http.StatusOK,
		Response: "cotton",
	}))
	require.NoError(t, repo.SaveExchange(ctx, models.Exchange{
		Message: "hi",
		Mode:    models.ModeUpstream,
		Status:  http.StatusTooManyRequests,
		Error:   "Rate limit exceeded. Please try again later.",
	}))

	var saved []models.Exchange
	require.NoError(t, db.Select(&saved, `SELECT id, message, mode, status, response, error FROM exchanges ORDER BY status`))
	require.Len(t, saved, 2)

	assert.Len(t, saved[0].ID, 36)
	assert.NotEqual(t, saved[0].ID, saved[1].ID)
	assert.Equal(t, "which fabric?", saved[0].Message)
	assert.Equal(t, models.ModeFallback, saved[0].Mode)
	assert.Equal(t, "cotton", saved[0].Response)
	assert.Equal(t, http.StatusTooManyRequests, saved[1].Status)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", saved[1].Error)
}

func TestSaveExchange_KeepsProvidedID(t *testing.T) {
	repo, db := newTestRepository(t)

	require.NoError(t, repo.SaveExchange(context.Background(), models.Exchange{ID: "fixed-id", Mode: models.ModeFallback, Status: 200}))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM exchanges WHERE id = 'fixed-id'`))
	assert.Equal(t, 1, count)
}

func TestSaveExchange_ClosedDB(t *testing.T) {
	repo, db := newTestRepository(t)
	require.NoError(t, db.Close())

	err := repo.SaveExchange(context.Background(), models.Exchange{Mode: models.ModeFallback})
	assert.Error(t, err)
}
