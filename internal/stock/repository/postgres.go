package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mkadlec/salonpos/internal/apperr"
	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/internal/stock/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByItem(ctx context.Context, itemID string) (*model.Inventory, error) {
	var inv model.Inventory
	query := `SELECT * FROM inventory WHERE item_id = $1`
	err := r.DB.GetContext(ctx, &inv, query, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // caller supplies the zero projection
		}
		return nil, err
	}
	return &inv, nil
}

// RestoreProjection overwrites the projection row with values refolded from
// the movement log. It is the only write path that bypasses a movement
// append, and it only ever writes what the log already proves.
func (r *PGRepository) RestoreProjection(ctx context.Context, inv *model.Inventory) error {
	query := `
        INSERT INTO inventory (id, item_id, quantity, reserved_quantity, updated_at)
        VALUES (:id, :item_id, :quantity, :reserved_quantity, :updated_at)
        ON CONFLICT (item_id)
        DO UPDATE SET
            quantity = EXCLUDED.quantity,
            reserved_quantity = EXCLUDED.reserved_quantity,
            updated_at = EXCLUDED.updated_at
    `
	// available_quantity is a generated column, never written directly
	_, err := r.DB.NamedExecContext(ctx, query, inv)
	return err
}

func (r *PGRepository) MovementsByItem(ctx context.Context, itemID string) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	query := `SELECT * FROM stock_movements WHERE item_id = $1 ORDER BY created_at ASC, id ASC`
	err := r.DB.SelectContext(ctx, &movements, query, itemID)
	return movements, err
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var movements []model.StockMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ItemID != "" {
		conditions = append(conditions, "item_id = :item_id")
		args["item_id"] = f.ItemID
	}
	if f.Kind != "" {
		conditions = append(conditions, "kind = :kind")
		args["kind"] = f.Kind
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &movements, args)
	return movements, count, err
}

// AdjustWithMovement upserts the projection and appends the movement in one
// transaction, so the projection can never drift from the log.
func (r *PGRepository) AdjustWithMovement(ctx context.Context, inv *model.Inventory, movement *model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsertQuery := `
        INSERT INTO inventory (id, item_id, quantity, reserved_quantity, updated_at)
        VALUES (:id, :item_id, :quantity, :reserved_quantity, :updated_at)
        ON CONFLICT (item_id)
        DO UPDATE SET
            quantity = EXCLUDED.quantity,
            reserved_quantity = EXCLUDED.reserved_quantity,
            updated_at = EXCLUDED.updated_at
    `
	if _, err = tx.NamedExecContext(ctx, upsertQuery, inv); err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}

	if err = insertMovement(ctx, tx, movement); err != nil {
		return err
	}

	return tx.Commit()
}

// ApplyWithGuard applies a signed sale/return delta with a conditional
// decrement: the row is only updated when the resulting available stock
// stays non-negative, so two tills cannot both sell the last unit.
func (r *PGRepository) ApplyWithGuard(ctx context.Context, movement *model.StockMovement) (*model.Inventory, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()

	var inv model.Inventory
	query := `
        UPDATE inventory
        SET quantity = quantity + $1, updated_at = $2
        WHERE item_id = $3 AND quantity + $1 - reserved_quantity >= 0
        RETURNING *
    `
	err = tx.GetContext(ctx, &inv, query, movement.Quantity, now, movement.ItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Missing row or the guard refused the decrement.
			return nil, fmt.Errorf("%w: item %s, delta %d", apperr.ErrInsufficientStock, movement.ItemID, movement.Quantity)
		}
		return nil, err
	}

	movement.QuantityBefore = inv.Quantity - movement.Quantity
	movement.QuantityAfter = inv.Quantity
	movement.CreatedAt = now

	if err = insertMovement(ctx, tx, movement); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &inv, nil
}

func insertMovement(ctx context.Context, tx *sqlx.Tx, m *model.StockMovement) error {
	query := `
        INSERT INTO stock_movements (
            id, item_id, kind, quantity, quantity_before, quantity_after,
            reference_type, reference_id, notes, actor_id, created_at
        )
        VALUES (
            :id, :item_id, :kind, :quantity, :quantity_before, :quantity_after,
            :reference_type, :reference_id, :notes, :actor_id, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}
	return nil
}
