package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/homelead/territory-api/internal/entity"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// EnsureExists is the idempotent bootstrap primitive: a conditional insert
// followed by a read of whichever row survived. N concurrent calls for the
// same id leave exactly one row.
func (r *ProfileRepository) EnsureExists(ctx context.Context, profile *entity.UserProfile) (*entity.UserProfile, error) {
	emails, phones, err := encodeContactLists(profile)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO user_profiles (id, first_name, last_name, email, phone, secondary_emails, secondary_phones,
		                           notify_email, notify_sms, is_admin, lead_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING
	`

	_, err = r.DB.ExecContext(ctx, query,
		profile.ID,
		profile.FirstName,
		profile.LastName,
		profile.Email,
		profile.Phone,
		emails,
		phones,
		profile.NotifyEmail,
		profile.NotifySMS,
		profile.IsAdmin,
		string(profile.LeadType),
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	return r.FindByID(ctx, profile.ID)
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, secondary_emails, secondary_phones,
		       notify_email, notify_sms, is_admin, lead_type, created_at, updated_at
		FROM user_profiles
		WHERE id = $1
	`

	var p entity.UserProfile
	var emails, phones []byte
	var leadType string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.Phone,
		&emails,
		&phones,
		&p.NotifyEmail,
		&p.NotifySMS,
		&p.IsAdmin,
		&leadType,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	p.LeadType = entity.LeadType(leadType)
	if err := json.Unmarshal(emails, &p.SecondaryEmails); err != nil {
		return nil, fmt.Errorf("decode secondary emails: %w", err)
	}
	if err := json.Unmarshal(phones, &p.SecondaryPhones); err != nil {
		return nil, fmt.Errorf("decode secondary phones: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *entity.UserProfile) error {
	emails, phones, err := encodeContactLists(profile)
	if err != nil {
		return err
	}

	query := `
		UPDATE user_profiles
		SET first_name = $2, last_name = $3, email = $4, phone = $5,
		    secondary_emails = $6, secondary_phones = $7,
		    notify_email = $8, notify_sms = $9, lead_type = $10, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		profile.ID,
		profile.FirstName,
		profile.LastName,
		profile.Email,
		profile.Phone,
		emails,
		phones,
		profile.NotifyEmail,
		profile.NotifySMS,
		string(profile.LeadType),
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM user_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// Contact lists live in jsonb columns; nil slices persist as [] so scans
// never produce null.
func encodeContactLists(profile *entity.UserProfile) ([]byte, []byte, error) {
	secondaryEmails := profile.SecondaryEmails
	if secondaryEmails == nil {
		secondaryEmails = []string{}
	}
	secondaryPhones := profile.SecondaryPhones
	if secondaryPhones == nil {
		secondaryPhones = []string{}
	}

	emails, err := json.Marshal(secondaryEmails)
	if err != nil {
		return nil, nil, fmt.Errorf("encode secondary emails: %w", err)
	}
	phones, err := json.Marshal(secondaryPhones)
	if err != nil {
		return nil, nil, fmt.Errorf("encode secondary phones: %w", err)
	}
	return emails, phones, nil
}
