package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"campaign-builder/database"
	"campaign-builder/internal/api/leads"
	"campaign-builder/internal/cache"
	"campaign-builder/internal/domain/pages"
	"campaign-builder/internal/domain/schema"
	"campaign-builder/internal/domain/workspace"
	"campaign-builder/internal/render"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&workspace.Workspace{}, &pages.Page{}, &pages.FormSubmission{}))
	database.DB = db

	renderer, err := render.New(WorkspaceLocations{})
	require.NoError(t, err)
	Init(renderer, cache.New(time.Minute), leads.NewWebhook())

	router := gin.New()
	router.GET("/p/:slug", GetLandingPage)
	router.POST("/p/:slug/submit", SubmitLead)
	router.GET("/api/brand/locations", GetBrandLocations)
	return router
}

func seedPage(t *testing.T, status string) *pages.Page {
	t.Helper()

	locations, err := json.Marshal([]workspace.Location{
		{Name: "Austin HQ", Address: "123 Market St"},
	})
	require.NoError(t, err)

	ws := workspace.Workspace{Name: "Acme Co", Slug: "acme-co", Locations: locations}
	require.NoError(t, database.DB.Create(&ws).Error)

	doc := schema.Document{
		schema.Hero{Heading: "Spring Flash Sale"},
		schema.Locations{Heading: "Where we operate"},
		schema.Form{
			ID:           "lead-form",
			SuccessTitle: "Thanks for reaching out!",
			Fields: []schema.FormField{
				{Name: "name", Label: "Full name", Type: schema.FieldText, Required: true},
				{Name: "email", Label: "Email", Type: schema.FieldEmail},
			},
		},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var publishedAt *time.Time
	if status == pages.StatusPublished {
		now := time.Now().UTC()
		publishedAt = &now
	}
	page := pages.Page{
		WorkspaceID: ws.ID,
		Title:       "Spring Flash Sale",
		Slug:        "spring-flash-sale",
		Status:      status,
		PublishedAt: publishedAt,
		Schema:      raw,
	}
	require.NoError(t, database.DB.Create(&page).Error)
	return &page
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetLandingPagePublished(t *testing.T) {
	router := setupRouter(t)
	seedPage(t, pages.StatusPublished)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p/spring-flash-sale", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<h1>Spring Flash Sale</h1>")
	assert.Contains(t, body, `action="/p/spring-flash-sale/submit"`)
	// Locations come from the workspace store, not the section props.
	assert.Contains(t, body, "Austin HQ")
}

func TestGetLandingPageDraftIsNotFound(t *testing.T) {
	router := setupRouter(t)
	seedPage(t, pages.StatusDraft)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p/spring-flash-sale", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestGetLandingPageUnknownSlug(t *testing.T) {
	router := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitLeadSuccess(t *testing.T) {
	router := setupRouter(t)
	page := seedPage(t, pages.StatusPublished)

	w := postForm(router, "/p/spring-flash-sale/submit", url.Values{
		"name":  {"Jane"},
		"email": {"jane@example.com"},
		"_form": {"lead-form"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thanks for reaching out!")

	var subs []pages.FormSubmission
	require.NoError(t, database.DB.Where("page_id = ?", page.ID).Find(&subs).Error)
	require.Len(t, subs, 1)
	assert.Equal(t, pages.JSONMap{"name": "Jane", "email": "jane@example.com"}, subs[0].Data)
}

func TestSubmitLeadIgnoresUndeclaredKeys(t *testing.T) {
	router := setupRouter(t)
	page := seedPage(t, pages.StatusPublished)

	w := postForm(router, "/p/spring-flash-sale/submit", url.Values{
		"name":       {"Jane"},
		"extraField": {"x"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var subs []pages.FormSubmission
	require.NoError(t, database.DB.Where("page_id = ?", page.ID).Find(&subs).Error)
	require.Len(t, subs, 1)
	assert.Equal(t, pages.JSONMap{"name": "Jane"}, subs[0].Data)
}

func TestSubmitLeadEmptyReShowsForm(t *testing.T) {
	router := setupRouter(t)
	page := seedPage(t, pages.StatusPublished)

	w := postForm(router, "/p/spring-flash-sale/submit", url.Values{
		"name": {"   "},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Please complete the form.")
	assert.Contains(t, body, "<form")

	var n int64
	require.NoError(t, database.DB.Model(&pages.FormSubmission{}).Where("page_id = ?", page.ID).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestSubmitLeadDraftPageNeverPersists(t *testing.T) {
	router := setupRouter(t)
	page := seedPage(t, pages.StatusDraft)

	w := postForm(router, "/p/spring-flash-sale/submit", url.Values{
		"name":  {"Jane"},
		"email": {"jane@example.com"},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var n int64
	require.NoError(t, database.DB.Model(&pages.FormSubmission{}).Where("page_id = ?", page.ID).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestGetBrandLocations(t *testing.T) {
	router := setupRouter(t)
	page := seedPage(t, pages.StatusPublished)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/brand/locations?workspaceId="+page.WorkspaceID, nil))

	require.Equal(t, http.StatusOK, w.Code)
	var list []workspace.Location
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Austin HQ", list[0].Name)
}

func TestGetBrandLocationsUnknownWorkspace(t *testing.T) {
	router := setupRouter(t)
	seedPage(t, pages.StatusPublished)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/brand/locations?workspaceId="+uuid.NewString(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
