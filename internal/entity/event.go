package entity

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type EventType string

const (
	EventClicked           EventType = "clicked"
	EventLeadSubmitted     EventType = "lead_submitted"
	EventAppointmentBooked EventType = "appointment_booked"
	EventRegistered        EventType = "registered"
)

// PracticeCodeUnknown tags events captured before any practice is known,
// so funnel counts stay queryable per tenant.
const PracticeCodeUnknown = "UNKNOWN"

const (
	ActorSystem    = "system"
	ActorEmailLink = "email_link"
	ActorSync      = "sync"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventClicked, EventLeadSubmitted, EventAppointmentBooked, EventRegistered:
		return true
	}
	return false
}

// FunnelStages lists the event types in funnel order. The store itself never
// enforces this order, events may arrive duplicated or out of sequence.
func FunnelStages() []EventType {
	return []EventType{EventClicked, EventLeadSubmitted, EventAppointmentBooked, EventRegistered}
}

// Metadata is the free-form context bag stored next to an event (referrer,
// utm tags, page, whatever the tracker sends).
type Metadata map[string]any

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("metadata: cannot scan %T", src)
}

// FunnelEvent is one append-only fact in the lead funnel. LeadID is optional
// and never checked against the leads table: a click can happen before a
// lead exists, and trackers may send ids we never stored.
type FunnelEvent struct {
	ID           int64     `json:"id"`
	LeadID       *int64    `json:"lead_id,omitempty"`
	PracticeCode string    `json:"practice_code"`
	EventType    EventType `json:"event_type"`
	Actor        string    `json:"actor"` // system, email_link, sync
	OccurredAt   time.Time `json:"occurred_at"`
	Metadata     Metadata  `json:"metadata,omitempty"`
}

type DailyCount struct {
	Day       time.Time
	EventType EventType
	Count     int
}

type EventRepositoryInterface interface {
	Insert(ctx context.Context, ev *FunnelEvent) error
	ListByPracticeRange(ctx context.Context, practiceCode string, from, toExclusive time.Time) ([]FunnelEvent, error)
	CountByTypeRange(ctx context.Context, practiceCode string, from, toExclusive time.Time) (map[EventType]int, error)
	DailyCountsRange(ctx context.Context, practiceCode string, from, toExclusive time.Time) ([]DailyCount, error)
}
