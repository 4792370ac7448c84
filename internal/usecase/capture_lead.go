package usecase

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fysiofunnel/api/internal/entity"
	"github.com/fysiofunnel/api/internal/infra/queue"
)

// CaptureLeadUseCase runs the public intake pipeline: validate, persist the
// lead, append the lead_submitted funnel event, dispatch practice mail.
type CaptureLeadUseCase struct {
	Leads     entity.LeadRepositoryInterface
	Events    entity.EventRepositoryInterface
	Directory entity.PracticeDirectory
	Tokens    ActionTokenCodec
	Notifier  NotifierInterface
	BaseURL   string
}

func NewCaptureLeadUseCase(
	leads entity.LeadRepositoryInterface,
	events entity.EventRepositoryInterface,
	directory entity.PracticeDirectory,
	tokens ActionTokenCodec,
	notifier NotifierInterface,
	baseURL string,
) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{
		Leads:     leads,
		Events:    events,
		Directory: directory,
		Tokens:    tokens,
		Notifier:  notifier,
		BaseURL:   baseURL,
	}
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*CaptureLeadOutput, error) {
	if errs := ValidateCaptureLeadInput(input); len(errs) > 0 {
		return nil, validationFailed("lead validation failed", errs)
	}

	lead := &entity.Lead{
		FullName:     strings.TrimSpace(input.FullName),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Source:       strings.TrimSpace(input.Source),
		Goal:         strings.TrimSpace(input.Goal),
		Consent:      input.Consent,
		PracticeCode: strings.TrimSpace(input.PracticeCode),
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, storageFailed("failed to persist lead", err)
	}

	// The funnel event is best effort. The lead is already safe, a metrics
	// gap is better than telling the visitor their submission failed.
	practiceCode := lead.PracticeCode
	if practiceCode == "" {
		practiceCode = entity.PracticeCodeUnknown
	}
	metadata := entity.Metadata{}
	if lead.Source != "" {
		metadata["source"] = lead.Source
	}
	event := &entity.FunnelEvent{
		LeadID:       &lead.ID,
		PracticeCode: practiceCode,
		EventType:    entity.EventLeadSubmitted,
		Actor:        entity.ActorSystem,
		Metadata:     metadata,
	}
	if err := uc.Events.Insert(ctx, event); err != nil {
		log.Warn().Err(err).Int64("lead_id", lead.ID).Msg("lead saved but lead_submitted event write failed")
	}

	uc.notifyPractice(ctx, lead)

	return &CaptureLeadOutput{ID: lead.ID, CreatedAt: lead.CreatedAt}, nil
}

func (uc *CaptureLeadUseCase) notifyPractice(ctx context.Context, lead *entity.Lead) {
	if lead.PracticeCode == "" || uc.Notifier == nil {
		return
	}

	practice, err := uc.Directory.FindByCode(ctx, lead.PracticeCode)
	if err != nil {
		log.Warn().Err(err).Str("practice_code", lead.PracticeCode).Msg("practice lookup failed, skipping notification")
		return
	}
	if !practice.Deliverable() {
		log.Debug().Str("practice_code", practice.Code).Msg("practice has no deliverable address, skipping notification")
		return
	}

	payload := queue.NotificationPayload{
		NotificationID: uuid.New().String(),
		Kind:           queue.KindLeadCaptured,
		To:             practice.Email,
		PracticeCode:   practice.Code,
		PracticeName:   practice.Name,
		LeadID:         lead.ID,
		LeadName:       lead.FullName,
		LeadEmail:      lead.Email,
		LeadPhone:      lead.Phone,
		LeadGoal:       lead.Goal,
		ActionURL:      uc.actionURL(lead.ID, practice.Code),
	}

	// Detached goroutine with a fresh context: the request context dies as
	// soon as the response is written, mail must not die with it.
	go func() {
		if err := uc.Notifier.PublishNotification(context.Background(), payload); err != nil {
			log.Error().Err(err).Int64("lead_id", payload.LeadID).Msg("❌ lead notification dispatch failed")
		}
	}()
}

func (uc *CaptureLeadUseCase) actionURL(leadID int64, practiceCode string) string {
	token := uc.Tokens.Issue(leadID, practiceCode)

	params := url.Values{}
	params.Set("action", string(entity.EventAppointmentBooked))
	params.Set("lead_id", strconv.FormatInt(leadID, 10))
	params.Set("practice_code", practiceCode)
	params.Set("token", token)

	return strings.TrimRight(uc.BaseURL, "/") + "/lead-action?" + params.Encode()
}
