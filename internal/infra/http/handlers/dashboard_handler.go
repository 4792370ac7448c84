package handlers

import (
	"net/http"
	"strconv"

	"github.com/fysiofunnel/api/internal/entity"
	"github.com/fysiofunnel/api/internal/usecase"
)

// DashboardHandler serves the admin-facing read endpoints: funnel totals,
// the daily series, the raw event log and the recent-leads table.
type DashboardHandler struct {
	MetricsUC *usecase.FunnelMetricsUseCase
	Leads     entity.LeadRepositoryInterface
}

func NewDashboardHandler(metricsUC *usecase.FunnelMetricsUseCase, leads entity.LeadRepositoryInterface) *DashboardHandler {
	return &DashboardHandler{MetricsUC: metricsUC, Leads: leads}
}

type dateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type MetricsResponse struct {
	Practice string               `json:"practice"`
	Range    dateRange            `json:"range"`
	Totals   usecase.FunnelTotals `json:"totals"`
	Funnel   usecase.FunnelRates  `json:"funnel"`
}

func (h *DashboardHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	practice := r.URL.Query().Get("practice")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	totals, err := h.MetricsUC.Totals(r.Context(), practice, from, to)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MetricsResponse{
		Practice: practice,
		Range:    dateRange{From: from, To: to},
		Totals:   *totals,
		Funnel:   usecase.ComputeFunnelRates(*totals),
	})
}

// SeriesResponse keeps from/to at the top level, unlike MetricsResponse;
// the dashboard chart consumes this flat shape.
type SeriesResponse struct {
	Practice string              `json:"practice"`
	From     string              `json:"from"`
	To       string              `json:"to"`
	Rows     []usecase.SeriesRow `json:"rows"`
}

func (h *DashboardHandler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	practice := r.URL.Query().Get("practice")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	rows, err := h.MetricsUC.Series(r.Context(), practice, from, to)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SeriesResponse{
		Practice: practice,
		From:     from,
		To:       to,
		Rows:     rows,
	})
}

type EventsResponse struct {
	Practice string               `json:"practice"`
	Range    dateRange            `json:"range"`
	Events   []entity.FunnelEvent `json:"events"`
}

// HandleEvents exposes the raw event log for one practice and window, for
// drilling into what the aggregates were computed from.
func (h *DashboardHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	practice := r.URL.Query().Get("practice")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	events, err := h.MetricsUC.EventLog(r.Context(), practice, from, to)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, EventsResponse{
		Practice: practice,
		Range:    dateRange{From: from, To: to},
		Events:   events,
	})
}

type LeadsResponse struct {
	OK    bool          `json:"ok"`
	Leads []entity.Lead `json:"leads"`
}

// HandleLeads lists the newest leads, optionally filtered by ?practice=.
// ?limit= defaults to 50 and is capped at 200.
func (h *DashboardHandler) HandleLeads(w http.ResponseWriter, r *http.Request) {
	practice := r.URL.Query().Get("practice")

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "limit must be a positive number")
			return
		}
		limit = n
	}
	if limit > 200 {
		limit = 200
	}

	leads, err := h.Leads.ListRecent(r.Context(), practice, limit)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeStorage, "internal error")
		return
	}
	if leads == nil {
		leads = []entity.Lead{}
	}

	writeJSON(w, http.StatusOK, LeadsResponse{OK: true, Leads: leads})
}
