package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/homelead/territory-api/internal/entity"
)

type TerritoryRequestRepository struct {
	DB *sql.DB
}

func NewTerritoryRequestRepository(db *sql.DB) *TerritoryRequestRepository {
	return &TerritoryRequestRepository{DB: db}
}

func (r *TerritoryRequestRepository) Create(ctx context.Context, req *entity.TerritoryRequest) error {
	query := `
		INSERT INTO territory_requests (id, zip_code, user_id, lead_type, status, checkout_session, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.DB.ExecContext(ctx, query,
		req.ID,
		req.ZipCode,
		req.UserID,
		string(req.LeadType),
		string(req.Status),
		nullString(req.CheckoutSession),
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create territory request: %w", err)
	}
	return nil
}

func (r *TerritoryRequestRepository) MarkCompleted(ctx context.Context, zipCode, userID string) error {
	query := `
		UPDATE territory_requests
		SET status = $3, updated_at = NOW()
		WHERE zip_code = $1 AND user_id = $2 AND status = $4
	`

	_, err := r.DB.ExecContext(ctx, query, zipCode, userID,
		string(entity.RequestStatusCompleted), string(entity.RequestStatusPending))
	if err != nil {
		return fmt.Errorf("complete territory request: %w", err)
	}
	return nil
}

func (r *TerritoryRequestRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM territory_requests WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete territory requests: %w", err)
	}
	return nil
}
