package entity

import (
	"context"
	"encoding/json"
	"time"
)

// Progress is the member area's weight/measurement/lesson document for one user.
// Data is kept as the browser sent it.
type Progress struct {
	UserID    int64           `json:"user_id"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ProgressRepositoryInterface interface {
	// Merge upserts the row, merging Data's top-level keys over the stored document.
	Merge(ctx context.Context, p *Progress) error
	FindByUserID(ctx context.Context, userID int64) (*Progress, error)
}
