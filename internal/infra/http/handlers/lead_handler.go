package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fysiofunnel/api/internal/entity"
	"github.com/fysiofunnel/api/internal/infra/http/middleware"
	"github.com/fysiofunnel/api/internal/usecase"
)

type LeadHandler struct {
	CaptureUC *usecase.CaptureLeadUseCase
}

func NewLeadHandler(uc *usecase.CaptureLeadUseCase) *LeadHandler {
	return &LeadHandler{CaptureUC: uc}
}

// CaptureLeadRequest accepts both spellings of every form field: the public
// website posts Dutch names, the embedded widgets post English ones. When
// both appear in one body the Dutch one wins.
type CaptureLeadRequest struct {
	FullName     string
	Email        string
	Phone        string
	Source       string
	Goal         string
	Consent      bool
	PracticeCode string
}

func (req *CaptureLeadRequest) UnmarshalJSON(data []byte) error {
	var aux struct {
		VolledigeNaam string `json:"volledige_naam"`
		FullName      string `json:"fullName"`
		Emailadres    string `json:"emailadres"`
		Email         string `json:"email"`
		Telefoon      string `json:"telefoon"`
		Phone         string `json:"phone"`
		Bron          string `json:"bron"`
		Source        string `json:"source"`
		Doel          string `json:"doel"`
		Toestemming   *bool  `json:"toestemming"`
		Consent       *bool  `json:"consent"`
		PraktijkCode  string `json:"praktijk_code"`
		PracticeCode  string `json:"practiceCode"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	req.FullName = firstNonEmpty(aux.VolledigeNaam, aux.FullName)
	req.Email = firstNonEmpty(aux.Emailadres, aux.Email)
	req.Phone = firstNonEmpty(aux.Telefoon, aux.Phone)
	req.Source = firstNonEmpty(aux.Bron, aux.Source)
	req.Goal = aux.Doel
	req.PracticeCode = firstNonEmpty(aux.PraktijkCode, aux.PracticeCode)

	// Absent consent means no consent, not an error.
	req.Consent = false
	if aux.Toestemming != nil {
		req.Consent = *aux.Toestemming
	} else if aux.Consent != nil {
		req.Consent = *aux.Consent
	}

	return nil
}

type CaptureLeadResponse struct {
	OK   bool     `json:"ok"`
	Lead leadInfo `json:"lead"`
}

type leadInfo struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *LeadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CaptureLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON: "+err.Error())
		return
	}

	output, err := h.CaptureUC.Execute(r.Context(), usecase.CaptureLeadInput{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Source:       req.Source,
		Goal:         req.Goal,
		Consent:      req.Consent,
		PracticeCode: req.PracticeCode,
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadCaptured()
	middleware.RecordFunnelEvent(string(entity.EventLeadSubmitted))

	writeJSON(w, http.StatusCreated, CaptureLeadResponse{
		OK: true,
		Lead: leadInfo{
			ID:        output.ID,
			CreatedAt: output.CreatedAt,
		},
	})
}
