package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willjrcristo/billing-actions/internal/domain"
)

func newTestRepo(t *testing.T) RunRepository {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteRepository(db)
}

func TestOpen_MigracoesSaoIdempotentes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Segunda abertura encontra o schema já aplicado (migrate.ErrNoChange).
	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
}

func TestSQLiteRepository_CreateAndGetRun(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	run := domain.EvaluationRun{
		RunSummary: domain.RunSummary{
			ID:                "run-1",
			EvaluatedOn:       domain.Date{Year: 2024, Month: time.June, Day: 10},
			SubscriptionCount: 3,
			ActionCount:       2,
			CreatedAt:         time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
		},
		Actions: []domain.BillingAction{
			{Action: domain.ActionSendDunningEmail, UserID: "a", Email: "a@x.com"},
			{Action: domain.ActionSendTrialReminder, UserID: "c", Email: "c@x.com"},
		},
	}

	require.NoError(t, repo.CreateRun(ctx, run))

	got, err := repo.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, run.RunSummary, got.RunSummary)
	assert.Equal(t, run.Actions, got.Actions)
}

func TestSQLiteRepository_GetRun_NaoEncontrado(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetRun(context.Background(), "nao-existe")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteRepository_CreateRun_IDDuplicado(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	run := domain.EvaluationRun{RunSummary: domain.RunSummary{
		ID:          "dup",
		EvaluatedOn: domain.Date{Year: 2024, Month: time.June, Day: 10},
		CreatedAt:   time.Now(),
	}}

	require.NoError(t, repo.CreateRun(ctx, run))
	assert.Error(t, repo.CreateRun(ctx, run))
}

func TestSQLiteRepository_ListRuns(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"r1", "r2", "r3"} {
		err := repo.CreateRun(ctx, domain.EvaluationRun{RunSummary: domain.RunSummary{
			ID:                id,
			EvaluatedOn:       domain.DateOf(base),
			SubscriptionCount: i,
			CreatedAt:         base.Add(time.Duration(i) * time.Minute),
		}})
		require.NoError(t, err)
	}

	runs, err := repo.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r3", runs[0].ID)
	assert.Equal(t, "r2", runs[1].ID)

	t.Run("banco vazio devolve lista vazia", func(t *testing.T) {
		runs, err := newTestRepo(t).ListRuns(ctx, 10)
		require.NoError(t, err)
		assert.NotNil(t, runs)
		assert.Empty(t, runs)
	})
}
