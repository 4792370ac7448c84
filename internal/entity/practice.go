package entity

import (
	"context"
	"errors"
)

var ErrPracticeNotFound = errors.New("practice not found")

// Practice is the read-side view of a clinic. Practice onboarding happens
// outside this service, we only resolve a code to a display name and a
// notification address.
type Practice struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	NotifyByEmail bool   `json:"notify_by_email"`
}

// Deliverable reports whether new-lead mail can actually go somewhere.
func (p *Practice) Deliverable() bool {
	return p.NotifyByEmail && p.Email != ""
}

type PracticeDirectory interface {
	FindByCode(ctx context.Context, code string) (*Practice, error)
}
