package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/homelead/territory-api/internal/entity"
)

const uniqueViolation = "23505"

type TerritoryRepository struct {
	DB *sql.DB
}

func NewTerritoryRepository(db *sql.DB) *TerritoryRepository {
	return &TerritoryRepository{DB: db}
}

// ClaimActive inserts t as the active territory for its zip. The partial
// unique index territories_zip_active_uq (zip_code WHERE active) makes the
// insert the atomicity point: of two racing claims exactly one row lands, the
// other gets a unique violation. On violation we read the surviving active
// row: if it belongs to the same user this is a retried claim and succeeds
// idempotently, otherwise the zip is taken.
func (r *TerritoryRepository) ClaimActive(ctx context.Context, t *entity.Territory) (*entity.Territory, error) {
	query := `
		INSERT INTO territories (id, zip_code, user_id, lead_type, active, start_date, next_billing_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		t.ID,
		t.ZipCode,
		t.UserID,
		string(t.LeadType),
		t.Active,
		t.StartDate,
		t.NextBillingDate,
		t.CreatedAt,
		t.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			existing, findErr := r.FindActiveByZip(ctx, t.ZipCode)
			if findErr != nil {
				return nil, fmt.Errorf("claim conflicted and re-read failed: %w", findErr)
			}
			if len(existing) == 0 {
				// The winning row was deactivated between our insert and the
				// re-read. Surface as retryable rather than guessing.
				return nil, fmt.Errorf("claim conflicted with a concurrent release: %w", err)
			}
			if existing[0].UserID == t.UserID {
				return existing[0], nil
			}
			return nil, entity.ErrTerritoryUnavailable
		}
		return nil, fmt.Errorf("claim territory: %w", err)
	}

	return t, nil
}

func (r *TerritoryRepository) FindActiveByZip(ctx context.Context, zipCode string) ([]*entity.Territory, error) {
	query := `
		SELECT id, zip_code, user_id, lead_type, active, start_date, next_billing_date, created_at, updated_at
		FROM territories
		WHERE zip_code = $1 AND active
		ORDER BY start_date DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, zipCode)
	if err != nil {
		return nil, fmt.Errorf("find active territories: %w", err)
	}
	defer rows.Close()

	var out []*entity.Territory
	for rows.Next() {
		t, err := scanTerritory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TerritoryRepository) FindByID(ctx context.Context, id string) (*entity.Territory, error) {
	query := `
		SELECT id, zip_code, user_id, lead_type, active, start_date, next_billing_date, created_at, updated_at
		FROM territories
		WHERE id = $1
	`

	t, err := scanTerritory(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrTerritoryNotFound
		}
		return nil, fmt.Errorf("find territory: %w", err)
	}
	return t, nil
}

func (r *TerritoryRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Territory, error) {
	query := `
		SELECT id, zip_code, user_id, lead_type, active, start_date, next_billing_date, created_at, updated_at
		FROM territories
		WHERE user_id = $1
		ORDER BY start_date DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("find territories by user: %w", err)
	}
	defer rows.Close()

	var out []*entity.Territory
	for rows.Next() {
		t, err := scanTerritory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TerritoryRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE territories SET active = FALSE, updated_at = NOW() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate territory: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrTerritoryNotFound
	}
	return nil
}

// DeleteByUserID hard-deletes; only the account-deletion cascade calls this.
func (r *TerritoryRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM territories WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete territories: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTerritory(row rowScanner) (*entity.Territory, error) {
	var t entity.Territory
	var leadType string
	err := row.Scan(
		&t.ID,
		&t.ZipCode,
		&t.UserID,
		&leadType,
		&t.Active,
		&t.StartDate,
		&t.NextBillingDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.LeadType = entity.LeadType(leadType)
	return &t, nil
}
