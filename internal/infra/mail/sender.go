package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"gopkg.in/gomail.v2"

	"github.com/fysiofunnel/api/internal/infra/queue"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendLeadNotification mails the practice about a fresh lead, including the
// action link that marks the appointment as booked.
func (s *EmailSender) SendLeadNotification(payload queue.NotificationPayload) error {
	data := LeadNotificationData{
		PracticeName: payload.PracticeName,
		LeadName:     payload.LeadName,
		LeadEmail:    payload.LeadEmail,
		LeadPhone:    payload.LeadPhone,
		LeadGoal:     payload.LeadGoal,
		ActionURL:    payload.ActionURL,
	}

	subject := fmt.Sprintf("Nieuwe aanvraag voor %s: %s", payload.PracticeName, payload.LeadName)
	return s.send(payload.To, subject, "lead_notification.html", data)
}

// SendBookingConfirmation mails the lead after a practice marked their
// appointment as booked.
func (s *EmailSender) SendBookingConfirmation(payload queue.NotificationPayload) error {
	data := BookingConfirmationData{
		LeadName:     payload.LeadName,
		PracticeName: payload.PracticeName,
	}

	subject := fmt.Sprintf("Bevestiging van je afspraakaanvraag bij %s", payload.PracticeName)
	return s.send(payload.To, subject, "booking_confirmation.html", data)
}

func (s *EmailSender) send(to, subject, templateName string, data any) error {
	tmplPath := filepath.Join("templates", templateName)
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parse mail template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("render mail template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}
