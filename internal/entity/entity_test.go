package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLead(t *testing.T) {
	lead, err := NewLead("Maria", "maria@x.com", 45, "", "Mozilla/5.0", "200.147.67.142")
	require.NoError(t, err)
	assert.Equal(t, DefaultPageURL, lead.PageURL)
	assert.False(t, lead.IsProcessed)
	assert.Nil(t, lead.ProcessedAt)
	assert.Nil(t, lead.Notes)

	_, err = NewLead("", "maria@x.com", 0, "", "", "")
	assert.Error(t, err)

	_, err = NewLead("Maria", " ", 0, "", "", "")
	assert.Error(t, err)
}

func TestIsUpdatableLeadField(t *testing.T) {
	for _, f := range []string{"name", "email", "notes"} {
		assert.True(t, IsUpdatableLeadField(f), f)
	}
	for _, f := range []string{"id", "is_processed", "ip_address", "created_at", "bogus", ""} {
		assert.False(t, IsUpdatableLeadField(f), f)
	}
}

func TestLeadJSONKeepsNullColumns(t *testing.T) {
	b, err := json.Marshal(Lead{ID: 1, Name: "A", Email: "a@x.com"})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Contains(t, m, "processed_at")
	assert.Nil(t, m["processed_at"])
	assert.Contains(t, m, "notes")
}

func TestUserNeverSerializesHash(t *testing.T) {
	u, err := NewUser("Joana", "joana@example.com", "$2a$10$hash")
	require.NoError(t, err)

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "$2a$10$hash")
	assert.Equal(t, UserProfile{Nome: "Joana", Email: "joana@example.com"}, u.Profile())

	_, err = NewUser("Joana", "joana@example.com", "")
	assert.Error(t, err)
}

func TestNewAnalyticsEvent(t *testing.T) {
	e, err := NewAnalyticsEvent("click", "sess", nil, nil, "ua", "1.1.1.1")
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.JSONEq(t, `{}`, string(e.Data))

	_, err = NewAnalyticsEvent(" ", "sess", nil, nil, "", "")
	assert.Error(t, err)
}
