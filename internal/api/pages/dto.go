package pagesapi

import (
	"encoding/json"
	"time"

	"campaign-builder/internal/domain/pages"
)

// ---------- requests

type CreatePageRequest struct {
	Title        string `json:"title" binding:"required"`
	Slug         string `json:"slug"`
	CampaignType string `json:"campaignType"`
	WorkspaceID  string `json:"workspaceId"`
}

// QuickEditRequest mirrors the admin quick-edit panel: nil fields are left
// untouched. Status changes run through the publication workflow;
// published_at cannot be set here.
type QuickEditRequest struct {
	Title  *string         `json:"title"`
	Slug   *string         `json:"slug"`
	Status *string         `json:"status"`
	SEO    json.RawMessage `json:"seo"`
}

// ---------- responses

type PageSummaryDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type ListPagesResponse struct {
	Pages []PageSummaryDTO `json:"pages"`
}

type PageDetailResponse struct {
	Page        pages.Page             `json:"page"`
	Submissions []pages.FormSubmission `json:"submissions"`
}

func toSummaryDTO(p pages.Page) PageSummaryDTO {
	return PageSummaryDTO{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Status:      p.Status,
		PublishedAt: p.PublishedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
