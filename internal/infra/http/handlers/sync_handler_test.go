package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fysiofunnel/api/internal/entity"
	"github.com/fysiofunnel/api/internal/infra/integration/virtuagym"
	"github.com/fysiofunnel/api/internal/usecase"
)

func postSync(h *SyncHandler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, nil)
	w := httptest.NewRecorder()
	h.Handle(w, req)
	return w
}

func TestSyncHandlerReportsCounts(t *testing.T) {
	leads := new(MockLeadRepository)
	events := new(MockEventRepository)
	members := new(MockMemberFetcher)

	members.On("Configured").Return(true)
	members.On("FetchMembers", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]virtuagym.Member{
			{MemberID: 501, Email: "sanne@example.nl"},
		}, nil)
	leads.On("FindByEmail", mock.Anything, "sanne@example.nl").
		Return(&entity.Lead{ID: 11}, nil)
	events.On("Insert", mock.Anything, mock.AnythingOfType("*entity.FunnelEvent")).Return(nil)

	handler := NewSyncHandler(usecase.NewSyncRegistrationsUseCase(leads, events, members))

	w := postSync(handler, "/api/sync/registrations?practice=AMS-001&since=2025-03-01")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SyncResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, 1, resp.Fetched)
	assert.Equal(t, 1, resp.Recorded)
	assert.Equal(t, 1, resp.Linked)
}

func TestSyncHandlerRequiresPractice(t *testing.T) {
	handler := NewSyncHandler(usecase.NewSyncRegistrationsUseCase(
		new(MockLeadRepository), new(MockEventRepository), new(MockMemberFetcher)))

	w := postSync(handler, "/api/sync/registrations")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp apiError
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error)
}

func TestSyncHandlerAnswers503WhenUnconfigured(t *testing.T) {
	members := new(MockMemberFetcher)
	members.On("Configured").Return(false)

	handler := NewSyncHandler(usecase.NewSyncRegistrationsUseCase(
		new(MockLeadRepository), new(MockEventRepository), members))

	w := postSync(handler, "/api/sync/registrations?practice=AMS-001")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp apiError
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_CONFIGURED", resp.Error)
}

func TestSyncHandlerAnswers500OnUpstreamFailure(t *testing.T) {
	members := new(MockMemberFetcher)
	members.On("Configured").Return(true)
	members.On("FetchMembers", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(nil, assert.AnError)

	handler := NewSyncHandler(usecase.NewSyncRegistrationsUseCase(
		new(MockLeadRepository), new(MockEventRepository), members))

	w := postSync(handler, "/api/sync/registrations?practice=AMS-001")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp apiError
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SYNC_ERROR", resp.Error)
}
