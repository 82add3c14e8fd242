package usecase

import (
	"errors"

	"github.com/xavierca1/landing-leads/internal/entity"
)

// Result is the {success, message} envelope every write operation answers with.
// Code is kept out of the JSON and lets the HTTP layer choose a status.
type Result struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	User    *entity.UserProfile `json:"user,omitempty"`
	Code    string              `json:"-"`
}

func succeed(message string) *Result {
	return &Result{Success: true, Message: message}
}

// fail turns an error into a failed envelope. Technical errors are prefixed
// with the operation's context, matching the messages the landing pages show.
func fail(prefix string, err error) *Result {
	var de *DomainError
	if errors.As(err, &de) {
		return &Result{Success: false, Message: de.Message, Code: de.Code}
	}

	var te *TechnicalError
	if errors.As(err, &te) {
		return &Result{Success: false, Message: prefix + te.Error(), Code: te.Code}
	}

	return &Result{Success: false, Message: prefix + err.Error(), Code: CodeDatabase}
}

func technical(message string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeDatabase, Message: message, Err: err}
}
