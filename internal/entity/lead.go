package entity

import (
	"context"
	"errors"
	"strings"
	"time"
)

// DefaultPageURL is stored when the capture form does not report its page.
const DefaultPageURL = "index.html"

// LeadUpdatableFields lists the only columns UpdateLead may change.
var LeadUpdatableFields = []string{"name", "email", "notes"}

type Lead struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	TimeOnPage  int        `json:"time_on_page"`
	PageURL     string     `json:"page_url"`
	UserAgent   string     `json:"user_agent"`
	IPAddress   string     `json:"ip_address"`
	IsProcessed bool       `json:"is_processed"`
	ProcessedAt *time.Time `json:"processed_at"`
	Notes       *string    `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewLead(name, email string, timeOnPage int, pageURL, userAgent, ipAddress string) (*Lead, error) {
	if strings.TrimSpace(pageURL) == "" {
		pageURL = DefaultPageURL
	}

	lead := &Lead{
		Name:       name,
		Email:      email,
		TimeOnPage: timeOnPage,
		PageURL:    pageURL,
		UserAgent:  userAgent,
		IPAddress:  ipAddress,
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(l.Email) == "" {
		return errors.New("email is required")
	}
	return nil
}

// IsUpdatableLeadField reports whether field belongs to LeadUpdatableFields.
func IsUpdatableLeadField(field string) bool {
	for _, f := range LeadUpdatableFields {
		if f == field {
			return true
		}
	}
	return false
}

type LeadPageCount struct {
	PageURL string `json:"page_url"`
	Count   int    `json:"count"`
}

type LeadStats struct {
	Total       int             `json:"total"`
	Processed   int             `json:"processed"`
	Unprocessed int             `json:"unprocessed"`
	Recent      int             `json:"recent"`
	AvgTime     float64         `json:"avg_time"`
	ByPage      []LeadPageCount `json:"by_page"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByID(ctx context.Context, id int64) (*Lead, error)
	FindAll(ctx context.Context, limit, offset int) ([]Lead, error)
	FindByEmail(ctx context.Context, email string) ([]Lead, error)
	MarkProcessed(ctx context.Context, id int64, notes string) error
	MarkUnprocessed(ctx context.Context, id int64) error
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*LeadStats, error)
}
