package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fysiofunnel/api/internal/entity"
)

// SyncRegistrationsUseCase pulls new club members from the membership
// platform and appends a registered event for each. This is the channel
// through which a converted lead reaches the last funnel stage, the booking
// itself happens outside this system.
//
// Re-running a sync appends the same registrations again. The store never
// deduplicates, narrowing the since date is the operator's tool against
// double counting.
type SyncRegistrationsUseCase struct {
	Leads   entity.LeadRepositoryInterface
	Events  entity.EventRepositoryInterface
	Members MemberFetcher
}

func NewSyncRegistrationsUseCase(
	leads entity.LeadRepositoryInterface,
	events entity.EventRepositoryInterface,
	members MemberFetcher,
) *SyncRegistrationsUseCase {
	return &SyncRegistrationsUseCase{
		Leads:   leads,
		Events:  events,
		Members: members,
	}
}

func (uc *SyncRegistrationsUseCase) Execute(ctx context.Context, input SyncRegistrationsInput) (*SyncRegistrationsOutput, error) {
	var errs []ValidationError

	code := strings.TrimSpace(input.PracticeCode)
	if code == "" {
		errs = append(errs, ValidationError{"practice", "is required"})
	} else if !isValidPracticeCode(code) {
		errs = append(errs, ValidationError{"practice", "must be at most 64 letters, digits, - or _"})
	}

	since := time.Now().AddDate(0, 0, -7)
	if raw := strings.TrimSpace(input.Since); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errs = append(errs, ValidationError{"since", "must be a valid date (YYYY-MM-DD)"})
		} else {
			since = parsed
		}
	}

	if len(errs) > 0 {
		return nil, validationFailed("invalid sync request", errs)
	}

	if uc.Members == nil || !uc.Members.Configured() {
		return nil, &DomainError{Code: CodeNotConfigured, Message: "membership platform credentials are not configured"}
	}

	members, err := uc.Members.FetchMembers(ctx, since)
	if err != nil {
		return nil, &TechnicalError{Code: CodeSync, Message: "failed to fetch members: " + err.Error()}
	}

	out := &SyncRegistrationsOutput{Fetched: len(members)}

	for _, member := range members {
		event := &entity.FunnelEvent{
			PracticeCode: code,
			EventType:    entity.EventRegistered,
			Actor:        entity.ActorSync,
			Metadata: entity.Metadata{
				"member_id": member.MemberID,
				"source":    "virtuagym",
			},
		}

		if member.Email != "" {
			lead, err := uc.Leads.FindByEmail(ctx, member.Email)
			switch {
			case err == nil:
				event.LeadID = &lead.ID
			case errors.Is(err, entity.ErrLeadNotFound):
				// Registration without a captured lead, the event stands alone.
			default:
				log.Warn().Err(err).Int64("member_id", member.MemberID).Msg("lead lookup failed, recording unlinked registration")
			}
		}

		if err := uc.Events.Insert(ctx, event); err != nil {
			log.Warn().Err(err).Int64("member_id", member.MemberID).Msg("registered event write failed, continuing sync")
			continue
		}
		out.Recorded++
		if event.LeadID != nil {
			out.Linked++
		}
	}

	log.Info().
		Str("practice_code", code).
		Int("fetched", out.Fetched).
		Int("recorded", out.Recorded).
		Int("linked", out.Linked).
		Msg("✅ registration sync finished")

	return out, nil
}
