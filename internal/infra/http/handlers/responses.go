package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fysiofunnel/api/internal/usecase"
)

// apiError is the JSON error envelope every api endpoint shares.
type apiError struct {
	OK      bool         `json:"ok"`
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}

// writeUseCaseError maps use case failures onto HTTP statuses. Domain
// errors carry their field detail to the caller, technical errors are
// logged and answered with a detail-free 500.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case usecase.CodeUnauthorized:
			status = http.StatusUnauthorized
		case usecase.CodeNotConfigured:
			status = http.StatusServiceUnavailable
		}

		resp := apiError{Error: domainErr.Code, Message: domainErr.Message}
		for _, fe := range domainErr.Fields {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, status, resp)
		return
	}

	var techErr *usecase.TechnicalError
	if errors.As(err, &techErr) {
		log.Error().Str("code", techErr.Code).Msg(techErr.Message)
		writeErrorResponse(w, http.StatusInternalServerError, techErr.Code, "internal error")
		return
	}

	log.Error().Err(err).Msg("unclassified handler error")
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
