package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fysiofunnel/api/internal/entity"
	"github.com/fysiofunnel/api/internal/infra/http/middleware"
	"github.com/fysiofunnel/api/internal/usecase"
)

type EventHandler struct {
	RecordUC *usecase.RecordEventUseCase
}

func NewEventHandler(uc *usecase.RecordEventUseCase) *EventHandler {
	return &EventHandler{RecordUC: uc}
}

type RecordEventRequest struct {
	LeadID       *int64          `json:"lead_id"`
	PracticeCode string          `json:"practice_code"`
	EventType    string          `json:"event_type"`
	Metadata     entity.Metadata `json:"metadata"`
}

type RecordEventResponse struct {
	OK         bool      `json:"ok"`
	EventID    int64     `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (h *EventHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RecordEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON: "+err.Error())
		return
	}

	output, err := h.RecordUC.Execute(r.Context(), usecase.RecordEventInput{
		LeadID:       req.LeadID,
		PracticeCode: req.PracticeCode,
		EventType:    req.EventType,
		Metadata:     req.Metadata,
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordFunnelEvent(req.EventType)

	writeJSON(w, http.StatusCreated, RecordEventResponse{
		OK:         true,
		EventID:    output.EventID,
		OccurredAt: output.OccurredAt,
	})
}
