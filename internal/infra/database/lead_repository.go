package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/homelead/territory-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, email, phone, address, zip_code, owner_id, status, notes, archived, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		nullString(lead.Email),
		nullString(lead.Phone),
		nullString(lead.Address),
		lead.ZipCode,
		lead.OwnerID,
		string(lead.Status),
		lead.Notes,
		lead.Archived,
		lead.Source,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `
		SELECT id, name, email, phone, address, zip_code, owner_id, status, notes, archived, source, created_at, updated_at
		FROM leads
		WHERE id = $1
	`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]*entity.Lead, error) {
	query := `
		SELECT id, name, email, phone, address, zip_code, owner_id, status, notes, archived, source, created_at, updated_at
		FROM leads
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find leads by owner: %w", err)
	}
	defer rows.Close()

	var out []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET name = $2, email = $3, phone = $4, address = $5, owner_id = $6,
		    status = $7, notes = $8, archived = $9, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		nullString(lead.Email),
		nullString(lead.Phone),
		nullString(lead.Address),
		lead.OwnerID,
		string(lead.Status),
		lead.Notes,
		lead.Archived,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

// DeleteByOwnerID hard-deletes; only the account-deletion cascade calls this.
func (r *LeadRepository) DeleteByOwnerID(ctx context.Context, ownerID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("delete leads: %w", err)
	}
	return nil
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var email, phone, address sql.NullString
	var status string
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&email,
		&phone,
		&address,
		&lead.ZipCode,
		&lead.OwnerID,
		&status,
		&lead.Notes,
		&lead.Archived,
		&lead.Source,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	lead.Email = email.String
	lead.Phone = phone.String
	lead.Address = address.String
	lead.Status = entity.LeadStatus(status)
	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
