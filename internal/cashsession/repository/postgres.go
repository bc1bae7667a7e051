package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/mkadlec/salonpos/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateSession(ctx context.Context, session *model.CashSession) error {
	query := `
        INSERT INTO cash_sessions (id, cashier_id, opening_balance, started_at, status)
        VALUES (:id, :cashier_id, :opening_balance, :started_at, :status)
    `
	_, err := r.DB.NamedExecContext(ctx, query, session)
	return err
}

func (r *PGRepository) UpdateSession(ctx context.Context, session *model.CashSession) error {
	query := `
        UPDATE cash_sessions
        SET closing_balance = :closing_balance,
            expected_balance = :expected_balance,
            difference = :difference,
            ended_at = :ended_at,
            status = :status
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, session)
	return err
}

func (r *PGRepository) FindSessionByID(ctx context.Context, id string) (*model.CashSession, error) {
	var session model.CashSession
	err := r.DB.GetContext(ctx, &session, `SELECT * FROM cash_sessions WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *PGRepository) FindOpenByCashier(ctx context.Context, cashierID string) (*model.CashSession, error) {
	var session model.CashSession
	query := `SELECT * FROM cash_sessions WHERE cashier_id = $1 AND status = 'open' ORDER BY started_at DESC LIMIT 1`
	err := r.DB.GetContext(ctx, &session, query, cashierID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *PGRepository) ListSessions(ctx context.Context, cashierID string, page, pageSize int) ([]model.CashSession, int, error) {
	var sessions []model.CashSession
	var count int

	whereClause := ""
	args := []interface{}{}
	if cashierID != "" {
		whereClause = " WHERE cashier_id = $1"
		args = append(args, cashierID)
	}

	countQuery := "SELECT count(*) FROM cash_sessions" + whereClause
	if err := r.DB.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM cash_sessions" + whereClause + " ORDER BY started_at DESC"
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, offset)
	}

	err := r.DB.SelectContext(ctx, &sessions, query, args...)
	return sessions, count, err
}

func (r *PGRepository) InsertMovement(ctx context.Context, movement *model.CashMovement) error {
	query := `
        INSERT INTO cash_movements (id, cash_session_id, type, amount, description, order_id, created_at)
        VALUES (:id, :cash_session_id, :type, :amount, :description, :order_id, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, movement)
	return err
}

func (r *PGRepository) ListMovements(ctx context.Context, sessionID string) ([]model.CashMovement, error) {
	var movements []model.CashMovement
	query := `SELECT * FROM cash_movements WHERE cash_session_id = $1 ORDER BY created_at ASC, id ASC`
	err := r.DB.SelectContext(ctx, &movements, query, sessionID)
	return movements, err
}

func (r *PGRepository) SumMovements(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM cash_movements WHERE cash_session_id = $1`
	err := r.DB.GetContext(ctx, &sum, query, sessionID)
	return sum, err
}
