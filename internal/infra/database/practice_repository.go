package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fysiofunnel/api/internal/entity"
)

type PracticeRepository struct {
	DB *sql.DB
}

func NewPracticeRepository(db *sql.DB) *PracticeRepository {
	return &PracticeRepository{DB: db}
}

func (r *PracticeRepository) FindByCode(ctx context.Context, code string) (*entity.Practice, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT code, name, COALESCE(email, ''), notify_by_email
		FROM practices
		WHERE code = $1
	`

	var practice entity.Practice
	err := r.DB.QueryRowContext(ctx, query, code).Scan(
		&practice.Code,
		&practice.Name,
		&practice.Email,
		&practice.NotifyByEmail,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrPracticeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find practice %q: %w", code, err)
	}

	return &practice, nil
}
