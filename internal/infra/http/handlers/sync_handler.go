package handlers

import (
	"net/http"

	"github.com/fysiofunnel/api/internal/entity"
	"github.com/fysiofunnel/api/internal/infra/http/middleware"
	"github.com/fysiofunnel/api/internal/usecase"
)

// SyncHandler triggers the membership pull on demand. Deliberately no
// scheduler behind this, an operator or a cron outside the process decides
// when to sync.
type SyncHandler struct {
	SyncUC *usecase.SyncRegistrationsUseCase
}

func NewSyncHandler(uc *usecase.SyncRegistrationsUseCase) *SyncHandler {
	return &SyncHandler{SyncUC: uc}
}

type SyncResponse struct {
	OK       bool `json:"ok"`
	Fetched  int  `json:"fetched"`
	Recorded int  `json:"recorded"`
	Linked   int  `json:"linked"`
}

func (h *SyncHandler) Handle(w http.ResponseWriter, r *http.Request) {
	output, err := h.SyncUC.Execute(r.Context(), usecase.SyncRegistrationsInput{
		PracticeCode: r.URL.Query().Get("practice"),
		Since:        r.URL.Query().Get("since"),
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	for i := 0; i < output.Recorded; i++ {
		middleware.RecordFunnelEvent(string(entity.EventRegistered))
	}

	writeJSON(w, http.StatusOK, SyncResponse{
		OK:       true,
		Fetched:  output.Fetched,
		Recorded: output.Recorded,
		Linked:   output.Linked,
	})
}
