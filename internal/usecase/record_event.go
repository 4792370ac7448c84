package usecase

import (
	"context"
	"strings"

	"github.com/fysiofunnel/api/internal/entity"
)

// RecordEventUseCase appends one funnel event from the public tracking
// endpoint. Lead ids are taken as-is, duplicates and out-of-order arrivals
// are legal, nothing is deduplicated here.
type RecordEventUseCase struct {
	Events entity.EventRepositoryInterface
}

func NewRecordEventUseCase(events entity.EventRepositoryInterface) *RecordEventUseCase {
	return &RecordEventUseCase{Events: events}
}

func (uc *RecordEventUseCase) Execute(ctx context.Context, input RecordEventInput) (*RecordEventOutput, error) {
	if errs := ValidateRecordEventInput(input); len(errs) > 0 {
		return nil, validationFailed("event validation failed", errs)
	}

	event := &entity.FunnelEvent{
		LeadID:       input.LeadID,
		PracticeCode: strings.TrimSpace(input.PracticeCode),
		EventType:    entity.EventType(input.EventType),
		Actor:        entity.ActorSystem,
		Metadata:     input.Metadata,
	}

	if err := uc.Events.Insert(ctx, event); err != nil {
		return nil, storageFailed("failed to persist event", err)
	}

	return &RecordEventOutput{EventID: event.ID, OccurredAt: event.OccurredAt}, nil
}
