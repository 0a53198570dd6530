package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Session scopes. Durable sessions ("remember me") are persisted to the
// database and survive restarts; ephemeral sessions live in memory only.
const (
	ScopeDurable   = "durable"
	ScopeEphemeral = "ephemeral"
)

// StaffSession holds the upstream token bundle plus the identifiers decoded
// from the access token for one signed-in front-desk user.
type StaffSession struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Scope string `gorm:"size:16;index" json:"scope"`

	AccessToken  string    `gorm:"type:text" json:"-"`
	RefreshToken string    `gorm:"type:text" json:"-"`
	ExpiresAt    time.Time `json:"expiresAt"`

	// Derived from the decoded access token.
	TenantID    string         `gorm:"size:64" json:"tenantId"`
	PropertyIDs datatypes.JSON `json:"propertyIds"`
	Role        string         `gorm:"size:64" json:"role"`
	UserEmail   string         `gorm:"size:255" json:"userEmail"`

	// Login identifier saved for the "remember me" prefill.
	RememberedLogin string `gorm:"size:255" json:"rememberedLogin"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// expiryBuffer is the safety margin before the nominal token expiry at which
// a session is already treated as expired.
const expiryBuffer = 5 * time.Minute

// Valid reports whether the session token is still usable at t.
func (s *StaffSession) Valid(t time.Time) bool {
	return s.AccessToken != "" && s.ExpiresAt.After(t.Add(expiryBuffer))
}

// PropertyIDList decodes the stored property id array. A broken blob decodes
// to an empty list rather than an error; the ids are advisory display state.
func (s *StaffSession) PropertyIDList() []string {
	if len(s.PropertyIDs) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(s.PropertyIDs, &ids); err != nil {
		return nil
	}
	return ids
}

// SetPropertyIDs stores the id list as JSON.
func (s *StaffSession) SetPropertyIDs(ids []string) {
	b, err := json.Marshal(ids)
	if err != nil {
		b = []byte("[]")
	}
	s.PropertyIDs = datatypes.JSON(b)
}
