package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/willjrcristo/billing-actions/internal/domain"
)

// Layout fixo (sempre UTC, sempre 9 casas) para que ORDER BY created_at funcione como texto.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RunRepository define a interface para o log de execuções de avaliação.
// Usar uma interface nos permite 'mockar' o repositório nos testes do serviço.
type RunRepository interface {
	CreateRun(ctx context.Context, run domain.EvaluationRun) error
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)
	GetRun(ctx context.Context, id string) (*domain.EvaluationRun, error)
}

// sqliteRepository é a implementação do RunRepository para SQLite.
type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository recebe uma conexão já migrada (veja Open).
func NewSQLiteRepository(db *sql.DB) RunRepository {
	return &sqliteRepository{
		db: db,
	}
}

// --- MÉTODOS DA IMPLEMENTAÇÃO ---

// CreateRun grava o resumo e as ações na mesma transação.
func (r *sqliteRepository) CreateRun(ctx context.Context, run domain.EvaluationRun) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO evaluation_runs(id, evaluated_on, subscription_count, action_count, created_at) VALUES(?, ?, ?, ?, ?)",
		run.ID, run.EvaluatedOn.String(), run.SubscriptionCount, run.ActionCount, run.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO evaluation_run_actions(run_id, position, action, user_id, email) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, a := range run.Actions {
		if _, err = stmt.ExecContext(ctx, run.ID, i, string(a.Action), a.UserID, a.Email); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListRuns devolve as execuções mais recentes primeiro.
func (r *sqliteRepository) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, evaluated_on, subscription_count, action_count, created_at FROM evaluation_runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []domain.RunSummary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, s)
	}

	return runs, rows.Err()
}

func (r *sqliteRepository) GetRun(ctx context.Context, id string) (*domain.EvaluationRun, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, evaluated_on, subscription_count, action_count, created_at FROM evaluation_runs WHERE id = ?", id)

	summary, err := scanSummary(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // não encontrado
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT action, user_id, email FROM evaluation_run_actions WHERE run_id = ? ORDER BY position", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	run := &domain.EvaluationRun{RunSummary: summary, Actions: []domain.BillingAction{}}
	for rows.Next() {
		var a domain.BillingAction
		if err := rows.Scan(&a.Action, &a.UserID, &a.Email); err != nil {
			return nil, err
		}
		run.Actions = append(run.Actions, a)
	}

	return run, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(s scanner) (domain.RunSummary, error) {
	var (
		sum         domain.RunSummary
		evaluatedOn string
		createdAt   string
	)
	if err := s.Scan(&sum.ID, &evaluatedOn, &sum.SubscriptionCount, &sum.ActionCount, &createdAt); err != nil {
		return domain.RunSummary{}, err
	}

	var err error
	if sum.EvaluatedOn, err = domain.ParseDate(evaluatedOn); err != nil {
		return domain.RunSummary{}, err
	}
	if sum.CreatedAt, err = time.Parse(createdAtLayout, createdAt); err != nil {
		return domain.RunSummary{}, err
	}
	return sum, nil
}
