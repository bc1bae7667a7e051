package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/mkadlec/salonpos/internal/catalog/dto"
	"github.com/mkadlec/salonpos/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, item *model.SellableItem) error {
	query := `
        INSERT INTO sellable_items (
            id, name, description, kind, price, purchase_price, duration_minutes,
            vat_rate_id, track_inventory, min_stock, is_active, created_at, updated_at
        )
        VALUES (
            :id, :name, :description, :kind, :price, :purchase_price, :duration_minutes,
            :vat_rate_id, :track_inventory, :min_stock, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return err
}

func (r *PGRepository) Update(ctx context.Context, item *model.SellableItem) error {
	query := `
        UPDATE sellable_items
        SET name = :name,
            description = :description,
            kind = :kind,
            price = :price,
            purchase_price = :purchase_price,
            duration_minutes = :duration_minutes,
            vat_rate_id = :vat_rate_id,
            track_inventory = :track_inventory,
            min_stock = :min_stock,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.SellableItem, error) {
	var item model.SellableItem
	query := `SELECT * FROM sellable_items WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ItemFilters) ([]model.SellableItem, int, error) {
	var items []model.SellableItem
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Kind != "" {
		conditions = append(conditions, "kind = :kind")
		args["kind"] = f.Kind
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM sellable_items" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM sellable_items" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) Deactivate(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE sellable_items SET is_active = false, updated_at = now() WHERE id = $1`, id)
	return err
}

// viewSelect joins the item with its VAT rate and inventory projection into
// the read model the till consumes in one query.
const viewSelect = `
    SELECT s.*,
           v.name AS vat_rate_name,
           v.rate AS vat_percentage,
           COALESCE(i.quantity, 0) AS current_stock,
           COALESCE(i.reserved_quantity, 0) AS reserved_stock,
           COALESCE(i.available_quantity, 0) AS available_stock
    FROM sellable_items s
    JOIN vat_rates v ON v.id = s.vat_rate_id
    LEFT JOIN inventory i ON i.item_id = s.id
`

func (r *PGRepository) ListActiveViews(ctx context.Context) ([]model.SellableItemView, error) {
	var views []model.SellableItemView
	query := viewSelect + ` WHERE s.is_active = true ORDER BY s.kind, s.name`
	err := r.DB.SelectContext(ctx, &views, query)
	return views, err
}

func (r *PGRepository) FindViewByID(ctx context.Context, id string) (*model.SellableItemView, error) {
	var view model.SellableItemView
	query := viewSelect + ` WHERE s.id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &view, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &view, nil
}

func (r *PGRepository) ListLowStock(ctx context.Context, page, pageSize int) ([]model.SellableItemView, int, error) {
	var views []model.SellableItemView
	var count int

	whereClause := ` WHERE s.track_inventory = true AND s.is_active = true
        AND COALESCE(i.available_quantity, 0) <= s.min_stock`

	countQuery := `SELECT count(*) FROM sellable_items s
        LEFT JOIN inventory i ON i.item_id = s.id` + whereClause
	if err := r.DB.GetContext(ctx, &count, countQuery); err != nil {
		return nil, 0, err
	}

	query := viewSelect + whereClause + ` ORDER BY COALESCE(i.available_quantity, 0) ASC`
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, offset)
	}

	err := r.DB.SelectContext(ctx, &views, query)
	return views, count, err
}

func (r *PGRepository) ListVATRates(ctx context.Context, activeOnly bool) ([]model.VATRate, error) {
	var rates []model.VATRate
	query := `SELECT * FROM vat_rates`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY rate ASC`
	err := r.DB.SelectContext(ctx, &rates, query)
	return rates, err
}

func (r *PGRepository) FindVATRateByID(ctx context.Context, id string) (*model.VATRate, error) {
	var rate model.VATRate
	err := r.DB.GetContext(ctx, &rate, `SELECT * FROM vat_rates WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

func (r *PGRepository) CreateVATRate(ctx context.Context, rate *model.VATRate) error {
	query := `
        INSERT INTO vat_rates (id, name, rate, is_active, created_at)
        VALUES (:id, :name, :rate, :is_active, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, rate)
	return err
}
