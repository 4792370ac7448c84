package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fysiofunnel/api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Create inserts the lead and fills in the generated id and timestamp.
// Leads are append-only, there is no update path and resubmitting the form
// simply creates another row.
func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO leads (full_name, email, phone, source, goal, consent, practice_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.FullName,
		nullString(lead.Email),
		nullString(lead.Phone),
		nullString(lead.Source),
		nullString(lead.Goal),
		lead.Consent,
		nullString(lead.PracticeCode),
	).Scan(
		&lead.ID,
		&lead.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, full_name, COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(source, ''), COALESCE(goal, ''), consent,
		       COALESCE(practice_code, ''), created_at
		FROM leads
		WHERE id = $1
	`

	var lead entity.Lead
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&lead.ID,
		&lead.FullName,
		&lead.Email,
		&lead.Phone,
		&lead.Source,
		&lead.Goal,
		&lead.Consent,
		&lead.PracticeCode,
		&lead.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lead %d: %w", id, err)
	}

	return &lead, nil
}

// FindByEmail returns the newest lead with the given address. Emails are
// not unique across leads, resubmissions create new rows, so newest wins.
func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, full_name, COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(source, ''), COALESCE(goal, ''), consent,
		       COALESCE(practice_code, ''), created_at
		FROM leads
		WHERE LOWER(email) = LOWER($1)
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var lead entity.Lead
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&lead.ID,
		&lead.FullName,
		&lead.Email,
		&lead.Phone,
		&lead.Source,
		&lead.Goal,
		&lead.Consent,
		&lead.PracticeCode,
		&lead.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lead by email: %w", err)
	}

	return &lead, nil
}

// ListRecent returns the newest leads first, optionally scoped to one
// practice. Empty practiceCode means all practices.
func (r *LeadRepository) ListRecent(ctx context.Context, practiceCode string, limit int) ([]entity.Lead, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, full_name, COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(source, ''), COALESCE(goal, ''), consent,
		       COALESCE(practice_code, ''), created_at
		FROM leads
		WHERE $1 = '' OR practice_code = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.DB.QueryContext(ctx, query, practiceCode, limit)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]entity.Lead, 0, limit)
	for rows.Next() {
		var lead entity.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.FullName,
			&lead.Email,
			&lead.Phone,
			&lead.Source,
			&lead.Goal,
			&lead.Consent,
			&lead.PracticeCode,
			&lead.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
