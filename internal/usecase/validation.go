package usecase

import (
	"fmt"
	"strings"
	"time"
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

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	}
	if input.TimeOnPage < 0 {
		errors = append(errors, ValidationError{"timeOnPage", "must not be negative"})
	}

	return errors
}

func ValidateRegisterUserInput(input RegisterUserInput) []ValidationError {
	var errors []ValidationError

	if input.Nome == "" {
		errors = append(errors, ValidationError{"nome", "is required"})
	}
	if input.Email == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	}
	if input.Senha == "" {
		errors = append(errors, ValidationError{"senha", "is required"})
	}

	return errors
}

func ValidateLoginUserInput(input LoginUserInput) []ValidationError {
	var errors []ValidationError

	if input.Email == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	}
	if input.Senha == "" {
		errors = append(errors, ValidationError{"senha", "is required"})
	}

	return errors
}

func ValidateTrackEventInput(input TrackEventInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Type) == "" {
		errors = append(errors, ValidationError{"type", "is required"})
	} else if len(input.Type) > 100 {
		errors = append(errors, ValidationError{"type", "must not exceed 100 characters"})
	}
	if len(input.SessionID) > 100 {
		errors = append(errors, ValidationError{"sessionId", "must not exceed 100 characters"})
	}
	if input.Timestamp != "" && !isValidTimestamp(input.Timestamp) {
		errors = append(errors, ValidationError{"timestamp", "must be a valid ISO8601 datetime"})
	}

	return errors
}

func isValidTimestamp(s string) bool {
	_, err := parseTimestamp(s)
	return err == nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func joinValidationErrors(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
