package usecase

// Error codes surfaced in API responses.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeUnknownAction = "UNKNOWN_ACTION"
	CodeNotConfigured = "NOT_CONFIGURED"
	CodeStorage       = "STORAGE_ERROR"
	CodeDelivery      = "DELIVERY_ERROR"
	CodeSync          = "SYNC_ERROR"
)

// DomainError is a business failure the caller can fix: bad input, an
// unknown action, a token that does not check out.
type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure (database, broker, smtp).
// Handlers translate these to a generic 5xx without the detail.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

func validationFailed(message string, fields []ValidationError) *DomainError {
	return &DomainError{Code: CodeValidation, Message: message, Fields: fields}
}

func storageFailed(message string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeStorage, Message: message + ": " + err.Error()}
}
