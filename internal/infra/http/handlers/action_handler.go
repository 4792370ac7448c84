package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fysiofunnel/api/internal/entity"
	"github.com/fysiofunnel/api/internal/infra/http/middleware"
	"github.com/fysiofunnel/api/internal/usecase"
)

// ActionHandler renders the browser-facing result of an action link click.
// This endpoint is opened from a mail client, so it answers with small HTML
// pages instead of JSON.
type ActionHandler struct {
	ActionUC *usecase.LeadActionUseCase
}

func NewActionHandler(uc *usecase.LeadActionUseCase) *ActionHandler {
	return &ActionHandler{ActionUC: uc}
}

var actionSuccessTmpl = template.Must(template.New("action_success").Parse(`<!DOCTYPE html>
<html lang="nl">
<head>
	<meta charset="utf-8">
	<title>Afspraak geregistreerd</title>
	<style>
		body { font-family: Arial, sans-serif; background: #f4f7f6; margin: 0; padding: 40px 16px; }
		.card { max-width: 480px; margin: 0 auto; background: #fff; border-radius: 8px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); text-align: center; }
		h1 { color: #2e7d32; font-size: 22px; }
		p { color: #444; line-height: 1.5; }
	</style>
</head>
<body>
	<div class="card">
		<h1>&#10003; Afspraak geregistreerd</h1>
		{{if .LeadName}}<p>De aanvraag van <strong>{{.LeadName}}</strong> is gemarkeerd als <em>afspraak ingepland</em>.</p>{{else}}<p>De aanvraag is gemarkeerd als <em>afspraak ingepland</em>.</p>{{end}}
		<p>U kunt dit venster sluiten.</p>
	</div>
</body>
</html>
`))

var actionFailureTmpl = template.Must(template.New("action_failure").Parse(`<!DOCTYPE html>
<html lang="nl">
<head>
	<meta charset="utf-8">
	<title>Er ging iets mis</title>
	<style>
		body { font-family: Arial, sans-serif; background: #f4f7f6; margin: 0; padding: 40px 16px; }
		.card { max-width: 480px; margin: 0 auto; background: #fff; border-radius: 8px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); text-align: center; }
		h1 { color: #c62828; font-size: 22px; }
		p { color: #444; line-height: 1.5; }
	</style>
</head>
<body>
	<div class="card">
		<h1>Er ging iets mis</h1>
		<p>{{.Reason}}</p>
	</div>
</body>
</html>
`))

type actionSuccessData struct {
	LeadName string
}

type actionFailureData struct {
	Reason string
}

func (h *ActionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := usecase.LeadActionInput{
		Action:       q.Get("action"),
		LeadID:       q.Get("lead_id"),
		PracticeCode: q.Get("practice_code"),
		Token:        q.Get("token"),
	}

	output, err := h.ActionUC.Execute(r.Context(), input)
	if err != nil {
		h.renderFailure(w, err)
		return
	}

	middleware.RecordFunnelEvent(string(entity.EventAppointmentBooked))

	renderHTML(w, http.StatusOK, actionSuccessTmpl, actionSuccessData{LeadName: output.LeadName})
}

// renderFailure keeps the page copy vague on purpose. A rejected token gets
// the same wording as a malformed link, only the status code differs.
func (h *ActionHandler) renderFailure(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	reason := "De actie kon niet worden verwerkt. Probeer het later opnieuw."

	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case usecase.CodeUnauthorized:
			status = http.StatusUnauthorized
			reason = "Deze link is ongeldig of verlopen."
		case usecase.CodeUnknownAction:
			status = http.StatusBadRequest
			reason = "Deze actie wordt niet ondersteund."
		default:
			status = http.StatusBadRequest
			reason = "Deze link is onvolledig. Gebruik de knop uit de e-mail."
		}
	} else {
		log.Error().Err(err).Msg("lead action failed")
	}

	renderHTML(w, status, actionFailureTmpl, actionFailureData{Reason: reason})
}

func renderHTML(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("render action page failed")
	}
}
