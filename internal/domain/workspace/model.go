package workspace

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workspace is the tenant owning pages, brand tokens, and lead routing.
type Workspace struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"not null;uniqueIndex" json:"slug"`

	BrandTokens json.RawMessage `gorm:"type:jsonb;not null;default:'{}'" json:"brand_tokens"`
	Locations   json.RawMessage `gorm:"type:jsonb;not null;default:'[]'" json:"locations"`

	// Optional lead fan-out target. Fire and forget, no retries.
	WebhookURL *string `json:"webhook_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Workspace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

type BrandTokens struct {
	Colors map[string]string `json:"colors"`
	Fonts  map[string]string `json:"fonts"`
}

type Location struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// Tokens decodes the stored brand tokens. Malformed or empty JSON yields
// zero tokens; the renderer substitutes its fallback palette.
func (w *Workspace) Tokens() BrandTokens {
	var t BrandTokens
	if len(w.BrandTokens) > 0 {
		_ = json.Unmarshal(w.BrandTokens, &t)
	}
	return t
}

// LocationList decodes the stored locations. Never nil.
func (w *Workspace) LocationList() []Location {
	var list []Location
	if len(w.Locations) > 0 {
		_ = json.Unmarshal(w.Locations, &list)
	}
	if list == nil {
		list = []Location{}
	}
	return list
}
