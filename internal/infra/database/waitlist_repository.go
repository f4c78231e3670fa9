package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/homelead/territory-api/internal/entity"
)

type WaitlistRepository struct {
	DB *sql.DB
}

func NewWaitlistRepository(db *sql.DB) *WaitlistRepository {
	return &WaitlistRepository{DB: db}
}

func (r *WaitlistRepository) Create(ctx context.Context, entry *entity.WaitlistEntry) error {
	query := `INSERT INTO waitlist_entries (id, email, zip_code, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.DB.ExecContext(ctx, query, entry.ID, entry.Email, entry.ZipCode, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("create waitlist entry: %w", err)
	}
	return nil
}

func (r *WaitlistRepository) FindByZip(ctx context.Context, zipCode string) ([]*entity.WaitlistEntry, error) {
	query := `SELECT id, email, zip_code, created_at FROM waitlist_entries WHERE zip_code = $1 ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, zipCode)
	if err != nil {
		return nil, fmt.Errorf("find waitlist entries: %w", err)
	}
	defer rows.Close()

	var out []*entity.WaitlistEntry
	for rows.Next() {
		var e entity.WaitlistEntry
		if err := rows.Scan(&e.ID, &e.Email, &e.ZipCode, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
