package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fysiofunnel/api/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCaptureLeadInput(input CaptureLeadInput) []ValidationError {
	var errors []ValidationError

	name := strings.TrimSpace(input.FullName)
	if name == "" {
		errors = append(errors, ValidationError{"volledige_naam", "is required"})
	} else if utf8.RuneCountInString(name) < 2 {
		errors = append(errors, ValidationError{"volledige_naam", "must have at least 2 characters"})
	} else if utf8.RuneCountInString(name) > 200 {
		errors = append(errors, ValidationError{"volledige_naam", "must not exceed 200 characters"})
	}

	if email := strings.TrimSpace(input.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			errors = append(errors, ValidationError{"emailadres", "is invalid"})
		}
	}

	if utf8.RuneCountInString(input.Phone) > 50 {
		errors = append(errors, ValidationError{"telefoon", "must not exceed 50 characters"})
	}

	if utf8.RuneCountInString(input.Source) > 100 {
		errors = append(errors, ValidationError{"bron", "must not exceed 100 characters"})
	}

	if utf8.RuneCountInString(input.Goal) > 200 {
		errors = append(errors, ValidationError{"doel", "must not exceed 200 characters"})
	}

	if input.PracticeCode != "" && !isValidPracticeCode(input.PracticeCode) {
		errors = append(errors, ValidationError{"praktijk_code", "must be at most 64 letters, digits, - or _"})
	}

	return errors
}

func ValidateRecordEventInput(input RecordEventInput) []ValidationError {
	var errors []ValidationError

	code := strings.TrimSpace(input.PracticeCode)
	if code == "" {
		errors = append(errors, ValidationError{"practice_code", "is required"})
	} else if !isValidPracticeCode(code) {
		errors = append(errors, ValidationError{"practice_code", "must be at most 64 letters, digits, - or _"})
	}

	if input.EventType == "" {
		errors = append(errors, ValidationError{"event_type", "is required"})
	} else if !entity.EventType(input.EventType).IsValid() {
		errors = append(errors, ValidationError{"event_type", "must be one of clicked, lead_submitted, appointment_booked, registered"})
	}

	return errors
}

func isValidPracticeCode(code string) bool {
	if len(code) > 64 {
		return false
	}
	return regexp.MustCompile(`^[A-Za-z0-9_-]+$`).MatchString(code)
}

// parseDateRange turns the practice/from/to query triple into a half-open
// time window [from, to+1d). Both dates are inclusive calendar days.
func parseDateRange(practiceCode, from, to string) (time.Time, time.Time, []ValidationError) {
	var errors []ValidationError

	if strings.TrimSpace(practiceCode) == "" {
		errors = append(errors, ValidationError{"practice", "is required"})
	}

	var fromT, toT time.Time
	var err error

	if strings.TrimSpace(from) == "" {
		errors = append(errors, ValidationError{"from", "is required"})
	} else if fromT, err = time.Parse("2006-01-02", from); err != nil {
		errors = append(errors, ValidationError{"from", "must be a valid date (YYYY-MM-DD)"})
	}

	if strings.TrimSpace(to) == "" {
		errors = append(errors, ValidationError{"to", "is required"})
	} else if toT, err = time.Parse("2006-01-02", to); err != nil {
		errors = append(errors, ValidationError{"to", "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errors) == 0 && toT.Before(fromT) {
		errors = append(errors, ValidationError{"to", "must not be before from"})
	}

	return fromT, toT.AddDate(0, 0, 1), errors
}
