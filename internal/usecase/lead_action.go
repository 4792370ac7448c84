package usecase

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fysiofunnel/api/internal/entity"
	"github.com/fysiofunnel/api/internal/infra/queue"
)

// LeadActionUseCase handles clicks on the action links we embed in practice
// mail. Today the only supported action marks an appointment as booked.
type LeadActionUseCase struct {
	Leads     entity.LeadRepositoryInterface
	Events    entity.EventRepositoryInterface
	Directory entity.PracticeDirectory
	Tokens    ActionTokenCodec
	Notifier  NotifierInterface
}

func NewLeadActionUseCase(
	leads entity.LeadRepositoryInterface,
	events entity.EventRepositoryInterface,
	directory entity.PracticeDirectory,
	tokens ActionTokenCodec,
	notifier NotifierInterface,
) *LeadActionUseCase {
	return &LeadActionUseCase{
		Leads:     leads,
		Events:    events,
		Directory: directory,
		Tokens:    tokens,
		Notifier:  notifier,
	}
}

func (uc *LeadActionUseCase) Execute(ctx context.Context, input LeadActionInput) (*LeadActionOutput, error) {
	var errs []ValidationError
	if input.Action == "" {
		errs = append(errs, ValidationError{"action", "is required"})
	}
	if input.LeadID == "" {
		errs = append(errs, ValidationError{"lead_id", "is required"})
	}
	if input.PracticeCode == "" {
		errs = append(errs, ValidationError{"practice_code", "is required"})
	}
	if input.Token == "" {
		errs = append(errs, ValidationError{"token", "is required"})
	}
	if len(errs) > 0 {
		return nil, validationFailed("missing action parameters", errs)
	}

	leadID, err := strconv.ParseInt(input.LeadID, 10, 64)
	if err != nil {
		return nil, validationFailed("missing action parameters", []ValidationError{{"lead_id", "must be numeric"}})
	}

	if input.Action != string(entity.EventAppointmentBooked) {
		return nil, &DomainError{Code: CodeUnknownAction, Message: "unsupported action"}
	}

	// Deliberately detail-free: the page must not reveal whether the token
	// shape, the value or something else was off.
	if !uc.Tokens.Validate(input.Token, leadID, input.PracticeCode) {
		return nil, &DomainError{Code: CodeUnauthorized, Message: "unauthorized"}
	}

	event := &entity.FunnelEvent{
		LeadID:       &leadID,
		PracticeCode: input.PracticeCode,
		EventType:    entity.EventAppointmentBooked,
		Actor:        entity.ActorEmailLink,
		Metadata:     entity.Metadata{},
	}
	if err := uc.Events.Insert(ctx, event); err != nil {
		return nil, storageFailed("failed to persist event", err)
	}

	out := &LeadActionOutput{
		LeadID:       leadID,
		PracticeCode: input.PracticeCode,
		EventID:      event.ID,
	}

	// Confirmation mail to the lead is best effort. The link may carry an id
	// we never stored, the event above still counts.
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			log.Info().Int64("lead_id", leadID).Msg("action link for unknown lead, event recorded anyway")
		} else {
			log.Warn().Err(err).Int64("lead_id", leadID).Msg("lead lookup failed, skipping confirmation mail")
		}
		return out, nil
	}

	out.LeadName = lead.FullName
	uc.confirmToLead(ctx, lead, input.PracticeCode)

	return out, nil
}

func (uc *LeadActionUseCase) confirmToLead(ctx context.Context, lead *entity.Lead, practiceCode string) {
	if lead.Email == "" || uc.Notifier == nil {
		return
	}

	practiceName := practiceCode
	if practice, err := uc.Directory.FindByCode(ctx, practiceCode); err == nil {
		practiceName = practice.Name
	}

	payload := queue.NotificationPayload{
		NotificationID: uuid.New().String(),
		Kind:           queue.KindBookingConfirmed,
		To:             lead.Email,
		PracticeCode:   practiceCode,
		PracticeName:   practiceName,
		LeadID:         lead.ID,
		LeadName:       lead.FullName,
	}

	go func() {
		if err := uc.Notifier.PublishNotification(context.Background(), payload); err != nil {
			log.Error().Err(err).Int64("lead_id", payload.LeadID).Msg("❌ booking confirmation dispatch failed")
		}
	}()
}
