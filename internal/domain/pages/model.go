package pages

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"campaign-builder/internal/domain/schema"
	"campaign-builder/internal/domain/workspace"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
)

// Page is one landing page. Schema holds the validated section document as
// JSON; Slug is unique within its workspace.
type Page struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID string `gorm:"type:uuid;not null;index:idx_pages_workspace_slug,unique" json:"workspace_id"`

	Title  string `gorm:"not null" json:"title"`
	Slug   string `gorm:"not null;index:idx_pages_workspace_slug,unique" json:"slug"`
	Status string `gorm:"not null;default:'DRAFT'" json:"status"`

	Schema json.RawMessage `gorm:"type:jsonb;not null;default:'[]'" json:"schema"`
	SEO    json.RawMessage `gorm:"column:seo;type:jsonb" json:"seo,omitempty"`

	// Set by the publication workflow only, never from editor input.
	PublishedAt *time.Time `json:"published_at,omitempty"`

	Workspace *workspace.Workspace `gorm:"foreignKey:WorkspaceID;references:ID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Page) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Sections decodes the stored schema document.
func (p *Page) Sections() (schema.Document, error) {
	return schema.ParseDocument(p.Schema)
}

type SEOMeta struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// SEOMeta decodes the stored SEO blob; empty on missing or malformed JSON.
func (p *Page) SEOMeta() SEOMeta {
	var meta SEOMeta
	if len(p.SEO) > 0 {
		_ = json.Unmarshal(p.SEO, &meta)
	}
	return meta
}

// FormSubmission is one captured lead. Immutable once created, and only
// ever created against a PUBLISHED page.
type FormSubmission struct {
	ID     string  `gorm:"type:uuid;primaryKey" json:"id"`
	PageID string  `gorm:"type:uuid;not null;index" json:"page_id"`
	Data   JSONMap `gorm:"type:jsonb;not null" json:"data"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *FormSubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// JSONMap stores a field-name → value mapping as a JSON column.
type JSONMap map[string]string

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		m = JSONMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*m = JSONMap{}
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported JSONMap source type %T", value)
	}
}
