package usecase

import "errors"

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeDuplicateEmail  = "DUPLICATE_EMAIL"
	CodeNoValidFields   = "NO_VALID_FIELDS"
	CodeEmailNotFound   = "EMAIL_NOT_FOUND"
	CodeInvalidPassword = "INVALID_PASSWORD"
	CodeDatabase        = "DATABASE_ERROR"
)

// DomainError is a business-rule rejection. Message is shown to the visitor as is.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps an infrastructure fault (database unreachable, query failure).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
