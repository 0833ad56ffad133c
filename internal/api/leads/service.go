package leads

import (
	"context"
	"log"
	"net/url"
	"strings"

	"campaign-builder/internal/domain/pages"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

/*
	Lead acceptance rules
	---------------------
	- only declared field names are kept, everything else is dropped
	- values are trimmed; an all-empty submission is rejected
	- the page must be PUBLISHED at submit time, not just at render time
	- webhook delivery is best effort and never fails the submission

	Pass db in, do NOT import campaign-builder/database here (avoids import cycle).
*/

// SubmissionRejectedError carries the internal reason plus the message the
// submitter is allowed to see. Page-state details stay internal.
type SubmissionRejectedError struct {
	Reason string
	Public string
}

func (e *SubmissionRejectedError) Error() string {
	return "submission rejected: " + e.Reason
}

// PublicMessage is what the form re-render shows the submitter.
func (e *SubmissionRejectedError) PublicMessage() string {
	if e.Public != "" {
		return e.Public
	}
	return MsgTryAgain
}

const (
	MsgCompleteForm = "Please complete the form."
	MsgTryAgain     = "Something went wrong. Please try again."
)

var sanitize = bluemonday.StrictPolicy()

// CollectValues filters raw form data down to the declared field list,
// trimming and sanitizing values and dropping empties. Keys outside the
// declared list are never forwarded.
func CollectValues(declared []string, form url.Values) map[string]string {
	values := make(map[string]string, len(declared))
	for _, name := range declared {
		v := sanitize.Sanitize(strings.TrimSpace(form.Get(name)))
		if v != "" {
			values[name] = v
		}
	}
	return values
}

// Submit runs one lead submission against a page. On acceptance exactly
// one FormSubmission is created; the configured workspace webhook, if any,
// is then notified best effort.
func Submit(ctx context.Context, db *gorm.DB, hook *Webhook, pageID string, declared []string, form url.Values) (*pages.FormSubmission, error) {
	values := CollectValues(declared, form)
	if len(values) == 0 {
		return nil, &SubmissionRejectedError{Reason: "empty submission", Public: MsgCompleteForm}
	}

	var page pages.Page
	if err := db.WithContext(ctx).Preload("Workspace").First(&page, "id = ?", pageID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &SubmissionRejectedError{Reason: "page not found"}
		}
		return nil, err
	}
	if page.Status != pages.StatusPublished {
		return nil, &SubmissionRejectedError{Reason: "page not published"}
	}

	sub := pages.FormSubmission{
		PageID: page.ID,
		Data:   values,
	}
	if err := db.WithContext(ctx).Create(&sub).Error; err != nil {
		return nil, err
	}

	if hook != nil && page.Workspace != nil && page.Workspace.WebhookURL != nil && *page.Workspace.WebhookURL != "" {
		payload := WebhookPayload{
			PageID:      page.ID,
			WorkspaceID: page.WorkspaceID,
			Data:        values,
		}
		// Already durably recorded; delivery failure is logged and swallowed.
		if err := hook.Deliver(ctx, *page.Workspace.WebhookURL, payload); err != nil {
			log.Printf("Failed to send webhook for page %s: %v", page.ID, err)
		}
	}

	return &sub, nil
}
