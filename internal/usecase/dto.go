package usecase

import "encoding/json"

// RequestMeta carries what the HTTP layer knows about the caller.
type RequestMeta struct {
	UserAgent string
	IPAddress string
}

type CaptureLeadInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	TimeOnPage int    `json:"timeOnPage"`
	PageURL    string `json:"pageUrl"`
}

type RegisterUserInput struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type LoginUserInput struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type TrackEventInput struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	SessionID string          `json:"sessionId"`
	Timestamp string          `json:"timestamp"`
}
