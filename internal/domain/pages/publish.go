package pages

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

/*
	Publication workflow
	--------------------
	- DRAFT -> PUBLISHED stamps published_at
	- PUBLISHED -> DRAFT clears it
	- published_at is written here and nowhere else

	Pass db in, do NOT import campaign-builder/database here (avoids import cycle).
*/

// Transition moves a page to the given status and keeps published_at in
// sync. Re-publishing an already published page keeps its original stamp.
func Transition(db *gorm.DB, id, status string) (*Page, error) {
	if status != StatusDraft && status != StatusPublished {
		return nil, fmt.Errorf("unknown page status %q", status)
	}

	var p Page
	if err := db.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": status}
	switch status {
	case StatusPublished:
		if p.PublishedAt == nil {
			now := time.Now().UTC()
			updates["published_at"] = &now
		}
	case StatusDraft:
		updates["published_at"] = nil
	}

	if err := db.Model(&Page{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := db.First(&p, "id = ?", p.ID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Publish makes the page publicly retrievable by slug and eligible for
// lead submission.
func Publish(db *gorm.DB, id string) (*Page, error) {
	return Transition(db, id, StatusPublished)
}

// Unpublish reverts the page to DRAFT; the public lookup stops matching it
// and further submissions are rejected.
func Unpublish(db *gorm.DB, id string) (*Page, error) {
	return Transition(db, id, StatusDraft)
}

// FindPublishedBySlug is the public lookup: only PUBLISHED pages match.
func FindPublishedBySlug(db *gorm.DB, slug string) (*Page, error) {
	var p Page
	err := db.Preload("Workspace").
		First(&p, "slug = ? AND status = ?", slug, StatusPublished).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
