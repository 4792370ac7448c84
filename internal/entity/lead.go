package entity

import (
	"context"
	"errors"
	"time"
)

var ErrLeadNotFound = errors.New("lead not found")

type Lead struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Source       string    `json:"source,omitempty"` // website, google_ads, referral, ...
	Goal         string    `json:"goal,omitempty"`
	Consent      bool      `json:"consent"`
	PracticeCode string    `json:"practice_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id int64) (*Lead, error)
	FindByEmail(ctx context.Context, email string) (*Lead, error)
	ListRecent(ctx context.Context, practiceCode string, limit int) ([]Lead, error)
}
