package leads_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"campaign-builder/internal/api/leads"
	"campaign-builder/internal/domain/pages"
	"campaign-builder/internal/domain/schema"
	"campaign-builder/internal/domain/workspace"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&workspace.Workspace{}, &pages.Page{}, &pages.FormSubmission{}))
	return db
}

func createPage(t *testing.T, db *gorm.DB, status string, webhookURL string) *pages.Page {
	t.Helper()

	ws := workspace.Workspace{Name: "Acme Co", Slug: "acme-co"}
	if webhookURL != "" {
		ws.WebhookURL = &webhookURL
	}
	require.NoError(t, db.Create(&ws).Error)

	raw, err := json.Marshal(schema.StarterDocument(schema.CampaignCustom))
	require.NoError(t, err)

	page := pages.Page{
		WorkspaceID: ws.ID,
		Title:       "Test Page",
		Slug:        "test-page",
		Status:      status,
		Schema:      raw,
	}
	require.NoError(t, db.Create(&page).Error)
	return &page
}

func countSubmissions(t *testing.T, db *gorm.DB, pageID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&pages.FormSubmission{}).Where("page_id = ?", pageID).Count(&n).Error)
	return n
}

func TestSubmitPersistsDeclaredFieldsOnly(t *testing.T) {
	db := newTestDB(t)
	page := createPage(t, db, pages.StatusPublished, "")

	form := url.Values{
		"name":       {"Jane"},
		"extraField": {"x"},
	}
	sub, err := leads.Submit(context.Background(), db, nil, page.ID, []string{"name", "email"}, form)
	require.NoError(t, err)

	var stored pages.FormSubmission
	require.NoError(t, db.First(&stored, "id = ?", sub.ID).Error)
	assert.Equal(t, pages.JSONMap{"name": "Jane"}, stored.Data)
}

func TestSubmitTrimsValuesAndDropsEmpties(t *testing.T) {
	db := newTestDB(t)
	page := createPage(t, db, pages.StatusPublished, "")

	form := url.Values{
		"name":  {"  Jane  "},
		"email": {"   "},
	}
	sub, err := leads.Submit(context.Background(), db, nil, page.ID, []string{"name", "email"}, form)
	require.NoError(t, err)
	assert.Equal(t, pages.JSONMap{"name": "Jane"}, sub.Data)
}

func TestSubmitSanitizesMarkup(t *testing.T) {
	db := newTestDB(t)
	page := createPage(t, db, pages.StatusPublished, "")

	form := url.Values{"name": {`<script>alert(1)</script>Jane`}}
	sub, err := leads.Submit(context.Background(), db, nil, page.ID, []string{"name"}, form)
	require.NoError(t, err)
	assert.Equal(t, "Jane", sub.Data["name"])
}

func TestSubmitRejectsEmptySubmission(t *testing.T) {
	db := newTestDB(t)
	page := createPage(t, db, pages.StatusPublished, "")

	_, err := leads.Submit(context.Background(), db, nil, page.ID, []string{"name", "email"}, url.Values{})
	var rejected *leads.SubmissionRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, leads.MsgCompleteForm, rejected.PublicMessage())
	assert.EqualValues(t, 0, countSubmissions(t, db, page.ID))
}

func TestSubmitRejectsDraftPage(t *testing.T) {
	db := newTestDB(t)
	page := createPage(t, db, pages.StatusDraft, "")

	form := url.Values{"name": {"Jane"}, "email": {"jane@example.com"}}
	_, err := leads.Submit(context.Background(), db, nil, page.ID, []string{"name", "email"}, form)

	var rejected *leads.SubmissionRejectedError
	require.ErrorAs(t, err, &rejected)
	// The submitter only ever sees the generic message.
	assert.Equal(t, leads.MsgTryAgain, rejected.PublicMessage())
	assert.EqualValues(t, 0, countSubmissions(t, db, page.ID))
}

func TestSubmitRejectsUnknownPage(t *testing.T) {
	db := newTestDB(t)
	createPage(t, db, pages.StatusPublished, "")

	form := url.Values{"name": {"Jane"}}
	_, err := leads.Submit(context.Background(), db, nil, uuid.NewString(), []string{"name"}, form)

	var rejected *leads.SubmissionRejectedError
	require.ErrorAs(t, err, &rejected)
}

func TestSubmitDeliversWebhook(t *testing.T) {
	db := newTestDB(t)

	var got leads.WebhookPayload
	var calls atomic.Int32
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer sink.Close()

	page := createPage(t, db, pages.StatusPublished, sink.URL)

	form := url.Values{"name": {"Jane"}}
	sub, err := leads.Submit(context.Background(), db, leads.NewWebhook(), page.ID, []string{"name"}, form)
	require.NoError(t, err)
	require.NotNil(t, sub)

	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, page.ID, got.PageID)
	assert.Equal(t, page.WorkspaceID, got.WorkspaceID)
	assert.Equal(t, map[string]string{"name": "Jane"}, got.Data)
}

func TestSubmitSurvivesWebhookFailure(t *testing.T) {
	db := newTestDB(t)

	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer sink.Close()

	page := createPage(t, db, pages.StatusPublished, sink.URL)

	form := url.Values{"name": {"Jane"}}
	_, err := leads.Submit(context.Background(), db, leads.NewWebhook(), page.ID, []string{"name"}, form)
	require.NoError(t, err)
	assert.EqualValues(t, 1, countSubmissions(t, db, page.ID))
}

func TestSubmitWithoutWebhookConfigured(t *testing.T) {
	db := newTestDB(t)
	page := createPage(t, db, pages.StatusPublished, "")

	form := url.Values{"name": {"Jane"}}
	_, err := leads.Submit(context.Background(), db, leads.NewWebhook(), page.ID, []string{"name"}, form)
	require.NoError(t, err)
}

func TestCollectValuesNeverForwardsExtraKeys(t *testing.T) {
	form := url.Values{
		"name":    {"Jane"},
		"email":   {"jane@example.com"},
		"company": {"Acme"},
		"_form":   {"lead-form"},
	}
	values := leads.CollectValues([]string{"name", "email"}, form)
	assert.Equal(t, map[string]string{"name": "Jane", "email": "jane@example.com"}, values)
}
