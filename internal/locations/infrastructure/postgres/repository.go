package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	locations "warehouse-cloud/internal/locations/domain"
)

const defaultLocationTable = "locations"

// LocationRepository is a Postgres implementation of the slot store.
type LocationRepository struct {
	db    *sql.DB
	table string
}

// NewLocationRepository constructs a repository with defaults.
func NewLocationRepository(db *sql.DB, opts ...RepositoryOption) *LocationRepository {
	repo := &LocationRepository{db: db, table: defaultLocationTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// RepositoryOption configures the repository.
type RepositoryOption func(*LocationRepository)

// WithTable overrides the default table.
func WithTable(table string) RepositoryOption {
	return func(repo *LocationRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Insert stores a new slot.
func (r *LocationRepository) Insert(ctx context.Context, location *locations.Location) error {
	if r == nil || r.db == nil {
		return errors.New("location repo: nil db")
	}
	if location == nil {
		return locations.ErrNotFound
	}
	query := fmt.Sprintf(`
INSERT INTO %s (
	id, code, row_letter, bay, level, max_weight_kg, current_weight_kg,
	available, verified, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (code) DO NOTHING`, r.table)

	result, err := r.db.ExecContext(ctx, query,
		location.ID, location.Code, location.Row, location.Bay, location.Level,
		location.MaxWeightKg, location.CurrentWeightKg,
		location.Available, location.Verified,
		location.CreatedAt.UTC(), location.UpdatedAt.UTC())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return locations.ErrDuplicateCode
	}
	return nil
}

// FindByID loads one slot; (nil, nil) when absent.
func (r *LocationRepository) FindByID(ctx context.Context, id string) (*locations.Location, error) {
	return r.findBy(ctx, "id", id)
}

// FindByCode loads one slot by code; (nil, nil) when absent.
func (r *LocationRepository) FindByCode(ctx context.Context, code string) (*locations.Location, error) {
	return r.findBy(ctx, "code", code)
}

func (r *LocationRepository) findBy(ctx context.Context, column, value string) (*locations.Location, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("location repo: nil db")
	}
	query := fmt.Sprintf(`
SELECT id, code, row_letter, bay, level, max_weight_kg, current_weight_kg,
	available, verified, created_at, updated_at
FROM %s
WHERE %s = $1
LIMIT 1`, r.table, column)

	location, err := scanLocation(r.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return location, nil
}

// List returns all slots ordered by code.
func (r *LocationRepository) List(ctx context.Context) ([]*locations.Location, error) {
	return r.list(ctx, "")
}

// ListAvailableVerified returns the allocation candidate snapshot.
func (r *LocationRepository) ListAvailableVerified(ctx context.Context) ([]*locations.Location, error) {
	return r.list(ctx, "WHERE available AND verified")
}

func (r *LocationRepository) list(ctx context.Context, where string) ([]*locations.Location, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("location repo: nil db")
	}
	query := fmt.Sprintf(`
SELECT id, code, row_letter, bay, level, max_weight_kg, current_weight_kg,
	available, verified, created_at, updated_at
FROM %s
%s
ORDER BY row_letter, bay, level`, r.table, where)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*locations.Location
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, location)
	}
	return result, rows.Err()
}

// Update overwrites mutable slot fields.
func (r *LocationRepository) Update(ctx context.Context, location *locations.Location) error {
	if r == nil || r.db == nil {
		return errors.New("location repo: nil db")
	}
	if location == nil {
		return locations.ErrNotFound
	}
	query := fmt.Sprintf(`
UPDATE %s
SET max_weight_kg = $2, current_weight_kg = $3, available = $4, verified = $5, updated_at = $6
WHERE id = $1`, r.table)

	result, err := r.db.ExecContext(ctx, query,
		location.ID, location.MaxWeightKg, location.CurrentWeightKg,
		location.Available, location.Verified, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return locations.ErrNotFound
	}
	return nil
}

// AdjustWeight applies the conditional weight change. The level aggregate
// is re-checked inside the statement so two concurrent placements cannot
// both book the last of a level's capacity. Releases (negative delta) are
// allowed even after the slot was closed for new stock.
func (r *LocationRepository) AdjustWeight(ctx context.Context, id string, deltaKg, levelCapKg float64) error {
	if r == nil || r.db == nil {
		return errors.New("location repo: nil db")
	}
	query := fmt.Sprintf(`
UPDATE %s
SET current_weight_kg = current_weight_kg + $2, updated_at = $4
WHERE id = $1
	AND ($2 <= 0 OR (available AND verified))
	AND current_weight_kg + $2 >= 0
	AND (
		SELECT COALESCE(SUM(sibling.current_weight_kg), 0)
		FROM %s AS sibling
		WHERE sibling.row_letter = %s.row_letter
			AND sibling.bay = %s.bay
			AND sibling.level = %s.level
	) + $2 <= $3`, r.table, r.table, r.table, r.table, r.table)

	result, err := r.db.ExecContext(ctx, query, id, deltaKg, levelCapKg, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return locations.ErrWeightConflict
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (*locations.Location, error) {
	var location locations.Location
	err := row.Scan(
		&location.ID, &location.Code, &location.Row, &location.Bay, &location.Level,
		&location.MaxWeightKg, &location.CurrentWeightKg,
		&location.Available, &location.Verified,
		&location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &location, nil
}
