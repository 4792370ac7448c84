package usecase

import (
	"context"
	"math"

	"github.com/fysiofunnel/api/internal/entity"
)

// FunnelTotals always carries all four stages, zeroed when absent, so the
// dashboard never has to null-check a missing stage.
type FunnelTotals struct {
	Clicked           int `json:"clicked"`
	LeadSubmitted     int `json:"lead_submitted"`
	AppointmentBooked int `json:"appointment_booked"`
	Registered        int `json:"registered"`
}

// FunnelRates are whole percentages between adjacent stages plus the
// end-to-end rate.
type FunnelRates struct {
	ClickToLead int `json:"click_to_lead"`
	LeadToAppt  int `json:"lead_to_appt"`
	ApptToReg   int `json:"appt_to_reg"`
	ClickToReg  int `json:"click_to_reg"`
}

// SeriesRow is one day/event-type bucket. Days without events are simply
// absent, the chart fills its own gaps.
type SeriesRow struct {
	Day       string `json:"day"`
	EventType string `json:"event_type"`
	Count     int    `json:"count"`
}

type FunnelMetricsUseCase struct {
	Events entity.EventRepositoryInterface
}

func NewFunnelMetricsUseCase(events entity.EventRepositoryInterface) *FunnelMetricsUseCase {
	return &FunnelMetricsUseCase{Events: events}
}

func (uc *FunnelMetricsUseCase) Totals(ctx context.Context, practiceCode, from, to string) (*FunnelTotals, error) {
	fromT, toEx, errs := parseDateRange(practiceCode, from, to)
	if len(errs) > 0 {
		return nil, validationFailed("invalid metrics query", errs)
	}

	counts, err := uc.Events.CountByTypeRange(ctx, practiceCode, fromT, toEx)
	if err != nil {
		return nil, storageFailed("failed to aggregate events", err)
	}

	return &FunnelTotals{
		Clicked:           counts[entity.EventClicked],
		LeadSubmitted:     counts[entity.EventLeadSubmitted],
		AppointmentBooked: counts[entity.EventAppointmentBooked],
		Registered:        counts[entity.EventRegistered],
	}, nil
}

func (uc *FunnelMetricsUseCase) Series(ctx context.Context, practiceCode, from, to string) ([]SeriesRow, error) {
	fromT, toEx, errs := parseDateRange(practiceCode, from, to)
	if len(errs) > 0 {
		return nil, validationFailed("invalid series query", errs)
	}

	counts, err := uc.Events.DailyCountsRange(ctx, practiceCode, fromT, toEx)
	if err != nil {
		return nil, storageFailed("failed to aggregate events", err)
	}

	rows := make([]SeriesRow, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, SeriesRow{
			Day:       c.Day.Format("2006-01-02"),
			EventType: string(c.EventType),
			Count:     c.Count,
		})
	}
	return rows, nil
}

// EventLog returns the raw events for one practice inside the window, in
// insertion order.
func (uc *FunnelMetricsUseCase) EventLog(ctx context.Context, practiceCode, from, to string) ([]entity.FunnelEvent, error) {
	fromT, toEx, errs := parseDateRange(practiceCode, from, to)
	if len(errs) > 0 {
		return nil, validationFailed("invalid events query", errs)
	}

	events, err := uc.Events.ListByPracticeRange(ctx, practiceCode, fromT, toEx)
	if err != nil {
		return nil, storageFailed("failed to list events", err)
	}
	if events == nil {
		events = []entity.FunnelEvent{}
	}
	return events, nil
}

// ComputeFunnelRates derives the conversion percentages from raw totals.
// A later stage can exceed an earlier one (events arrive out of order,
// campaigns can skip the click), so rates above 100 are legal.
func ComputeFunnelRates(t FunnelTotals) FunnelRates {
	return FunnelRates{
		ClickToLead: percentage(t.LeadSubmitted, t.Clicked),
		LeadToAppt:  percentage(t.AppointmentBooked, t.LeadSubmitted),
		ApptToReg:   percentage(t.Registered, t.AppointmentBooked),
		ClickToReg:  percentage(t.Registered, t.Clicked),
	}
}

func percentage(num, den int) int {
	if den <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(num) / float64(den)))
}
