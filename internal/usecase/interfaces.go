package usecase

import (
	"context"
	"time"

	"github.com/fysiofunnel/api/internal/entity"
	"github.com/fysiofunnel/api/internal/infra/integration/virtuagym"
	"github.com/fysiofunnel/api/internal/infra/queue"
)

// CaptureLeadInput is already normalized: the handler resolves the Dutch and
// English form field aliases before the use case sees anything.
type CaptureLeadInput struct {
	FullName     string
	Email        string
	Phone        string
	Source       string
	Goal         string
	Consent      bool
	PracticeCode string
}

type CaptureLeadOutput struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type RecordEventInput struct {
	LeadID       *int64
	PracticeCode string
	EventType    string
	Metadata     entity.Metadata
}

type RecordEventOutput struct {
	EventID    int64     `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LeadActionInput carries the raw query parameters of an action link.
// LeadID stays a string here so a malformed value becomes a field error
// instead of a silent zero.
type LeadActionInput struct {
	Action       string
	LeadID       string
	PracticeCode string
	Token        string
}

type LeadActionOutput struct {
	LeadID       int64
	PracticeCode string
	EventID      int64
	LeadName     string
}

// SyncRegistrationsInput takes the raw query parameters of the admin sync
// trigger. Since is optional and defaults to a week back.
type SyncRegistrationsInput struct {
	PracticeCode string
	Since        string
}

type SyncRegistrationsOutput struct {
	Fetched  int `json:"fetched"`
	Recorded int `json:"recorded"`
	Linked   int `json:"linked"`
}

type NotifierInterface interface {
	PublishNotification(ctx context.Context, payload queue.NotificationPayload) error
}

// MemberFetcher is the slice of the membership platform the sync needs.
type MemberFetcher interface {
	Configured() bool
	FetchMembers(ctx context.Context, since time.Time) ([]virtuagym.Member, error)
}

// ActionTokenCodec hides whether tokens are verified strictly or by shape
// only. Both modes are implemented by the token package.
type ActionTokenCodec interface {
	Issue(leadID int64, practiceCode string) string
	Validate(token string, leadID int64, practiceCode string) bool
}
