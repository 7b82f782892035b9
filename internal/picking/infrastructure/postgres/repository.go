package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	picking "warehouse-cloud/internal/picking/domain"
)

const defaultPickTable = "pick_orders"

// PickRepository is a Postgres implementation of the pick order store.
type PickRepository struct {
	db    *sql.DB
	table string
}

// NewPickRepository constructs a repository with defaults.
func NewPickRepository(db *sql.DB, opts ...RepositoryOption) *PickRepository {
	repo := &PickRepository{db: db, table: defaultPickTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// RepositoryOption configures the repository.
type RepositoryOption func(*PickRepository)

// WithTable overrides the default table.
func WithTable(table string) RepositoryOption {
	return func(repo *PickRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Insert stores a new pick order.
func (r *PickRepository) Insert(ctx context.Context, order *picking.PickOrder) error {
	if r == nil || r.db == nil {
		return errors.New("pick repo: nil db")
	}
	if order == nil {
		return picking.ErrNotFound
	}
	query := fmt.Sprintf(`
INSERT INTO %s (
	id, department, receipt_id, location_id, location_code, weight_kg,
	status, created_at, completed_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`, r.table)

	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.Department, order.ReceiptID, order.LocationID,
		nullString(order.LocationCode), order.WeightKg, string(order.Status),
		order.CreatedAt.UTC(), nullTime(order.CompletedAt), order.UpdatedAt.UTC())
	return err
}

// Update overwrites mutable pick order fields.
func (r *PickRepository) Update(ctx context.Context, order *picking.PickOrder) error {
	if r == nil || r.db == nil {
		return errors.New("pick repo: nil db")
	}
	if order == nil {
		return picking.ErrNotFound
	}
	query := fmt.Sprintf(`
UPDATE %s
SET status = $2, completed_at = $3, updated_at = $4
WHERE id = $1`, r.table)

	result, err := r.db.ExecContext(ctx, query,
		order.ID, string(order.Status), nullTime(order.CompletedAt), order.UpdatedAt.UTC())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return picking.ErrNotFound
	}
	return nil
}

// FindByID loads one pick order; (nil, nil) when absent.
func (r *PickRepository) FindByID(ctx context.Context, id string) (*picking.PickOrder, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("pick repo: nil db")
	}
	query := fmt.Sprintf(`
SELECT id, department, receipt_id, location_id, location_code, weight_kg,
	status, created_at, completed_at, updated_at
FROM %s
WHERE id = $1
LIMIT 1`, r.table)

	order, err := scanPick(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

// ListByStatus returns pick orders in a status, oldest first.
func (r *PickRepository) ListByStatus(ctx context.Context, status picking.PickStatus) ([]*picking.PickOrder, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("pick repo: nil db")
	}
	query := fmt.Sprintf(`
SELECT id, department, receipt_id, location_id, location_code, weight_kg,
	status, created_at, completed_at, updated_at
FROM %s
WHERE status = $1
ORDER BY created_at ASC`, r.table)

	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*picking.PickOrder
	for rows.Next() {
		order, err := scanPick(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

// CountByStatus counts pick orders in a status.
func (r *PickRepository) CountByStatus(ctx context.Context, status picking.PickStatus) (int, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("pick repo: nil db")
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE status = $1`, r.table)
	var count int
	if err := r.db.QueryRowContext(ctx, query, string(status)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPick(row rowScanner) (*picking.PickOrder, error) {
	var order picking.PickOrder
	var status string
	var locationCode sql.NullString
	var completedAt sql.NullTime
	err := row.Scan(
		&order.ID, &order.Department, &order.ReceiptID, &order.LocationID,
		&locationCode, &order.WeightKg, &status,
		&order.CreatedAt, &completedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	order.Status = picking.PickStatus(status)
	order.LocationCode = locationCode.String
	if completedAt.Valid {
		order.CompletedAt = completedAt.Time
	}
	return &order, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullTime(value time.Time) sql.NullTime {
	return sql.NullTime{Time: value.UTC(), Valid: !value.IsZero()}
}
