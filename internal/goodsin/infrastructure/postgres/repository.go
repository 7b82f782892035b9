package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	goodsin "warehouse-cloud/internal/goodsin/domain"
)

const defaultReceiptTable = "goods_receipts"

// ReceiptRepository is a Postgres implementation of the receipt store.
type ReceiptRepository struct {
	db    *sql.DB
	table string
}

// NewReceiptRepository constructs a repository with defaults.
func NewReceiptRepository(db *sql.DB, opts ...RepositoryOption) *ReceiptRepository {
	repo := &ReceiptRepository{db: db, table: defaultReceiptTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// RepositoryOption configures the repository.
type RepositoryOption func(*ReceiptRepository)

// WithTable overrides the default table.
func WithTable(table string) RepositoryOption {
	return func(repo *ReceiptRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Insert stores a new receipt.
func (r *ReceiptRepository) Insert(ctx context.Context, receipt *goodsin.GoodsReceipt) error {
	if r == nil || r.db == nil {
		return errors.New("receipt repo: nil db")
	}
	if receipt == nil {
		return goodsin.ErrNotFound
	}
	query := fmt.Sprintf(`
INSERT INTO %s (
	id, item_description, quantity, gross_weight_kg, unit_value, department,
	status, location_id, location_code, created_at, stored_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`, r.table)

	_, err := r.db.ExecContext(ctx, query,
		receipt.ID, receipt.ItemDescription, receipt.Quantity, receipt.GrossWeightKg,
		receipt.UnitValue, receipt.Department, string(receipt.Status),
		nullString(receipt.LocationID), nullString(receipt.LocationCode),
		receipt.CreatedAt.UTC(), nullTime(receipt.StoredAt), receipt.UpdatedAt.UTC())
	return err
}

// FindByID loads one receipt; (nil, nil) when absent.
func (r *ReceiptRepository) FindByID(ctx context.Context, id string) (*goodsin.GoodsReceipt, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("receipt repo: nil db")
	}
	query := fmt.Sprintf(`
SELECT id, item_description, quantity, gross_weight_kg, unit_value, department,
	status, location_id, location_code, created_at, stored_at, updated_at
FROM %s
WHERE id = $1
LIMIT 1`, r.table)

	receipt, err := scanReceipt(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return receipt, nil
}

// ListByStatus returns receipts in a status, oldest first.
func (r *ReceiptRepository) ListByStatus(ctx context.Context, status goodsin.ReceiptStatus) ([]*goodsin.GoodsReceipt, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("receipt repo: nil db")
	}
	query := fmt.Sprintf(`
SELECT id, item_description, quantity, gross_weight_kg, unit_value, department,
	status, location_id, location_code, created_at, stored_at, updated_at
FROM %s
WHERE status = $1
ORDER BY created_at ASC`, r.table)

	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*goodsin.GoodsReceipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, receipt)
	}
	return result, rows.Err()
}

// Update overwrites mutable receipt fields.
func (r *ReceiptRepository) Update(ctx context.Context, receipt *goodsin.GoodsReceipt) error {
	if r == nil || r.db == nil {
		return errors.New("receipt repo: nil db")
	}
	if receipt == nil {
		return goodsin.ErrNotFound
	}
	query := fmt.Sprintf(`
UPDATE %s
SET status = $2, location_id = $3, location_code = $4, stored_at = $5, updated_at = $6
WHERE id = $1`, r.table)

	result, err := r.db.ExecContext(ctx, query,
		receipt.ID, string(receipt.Status),
		nullString(receipt.LocationID), nullString(receipt.LocationCode),
		nullTime(receipt.StoredAt), receipt.UpdatedAt.UTC())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return goodsin.ErrNotFound
	}
	return nil
}

// StoredWeightByLocation sums stored receipt weights per slot id.
func (r *ReceiptRepository) StoredWeightByLocation(ctx context.Context) (map[string]float64, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("receipt repo: nil db")
	}
	query := fmt.Sprintf(`
SELECT location_id, COALESCE(SUM(gross_weight_kg), 0)
FROM %s
WHERE status = 'stored' AND location_id IS NOT NULL
GROUP BY location_id`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weights := make(map[string]float64)
	for rows.Next() {
		var locationID string
		var weight float64
		if err := rows.Scan(&locationID, &weight); err != nil {
			return nil, err
		}
		weights[locationID] = weight
	}
	return weights, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row rowScanner) (*goodsin.GoodsReceipt, error) {
	var receipt goodsin.GoodsReceipt
	var status string
	var locationID, locationCode sql.NullString
	var storedAt sql.NullTime
	err := row.Scan(
		&receipt.ID, &receipt.ItemDescription, &receipt.Quantity, &receipt.GrossWeightKg,
		&receipt.UnitValue, &receipt.Department, &status,
		&locationID, &locationCode, &receipt.CreatedAt, &storedAt, &receipt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	receipt.Status = goodsin.ReceiptStatus(status)
	receipt.LocationID = locationID.String
	receipt.LocationCode = locationCode.String
	if storedAt.Valid {
		receipt.StoredAt = storedAt.Time
	}
	return &receipt, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullTime(value time.Time) sql.NullTime {
	return sql.NullTime{Time: value.UTC(), Valid: !value.IsZero()}
}
