package public

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"campaign-builder/database"
	"campaign-builder/internal/api/leads"
	"campaign-builder/internal/cache"
	"campaign-builder/internal/domain/pages"
	"campaign-builder/internal/domain/schema"
	"campaign-builder/internal/domain/workspace"
	"campaign-builder/internal/render"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	renderer  *render.Renderer
	pageCache *cache.PageCache
	webhook   *leads.Webhook
)

// Init wires the shared renderer, page cache, and webhook client.
func Init(r *render.Renderer, c *cache.PageCache, w *leads.Webhook) {
	renderer = r
	pageCache = c
	webhook = w
}

// WorkspaceLocations is the renderer's location source, backed by the
// workspace store.
type WorkspaceLocations struct{}

func (WorkspaceLocations) LocationsForWorkspace(ctx context.Context, workspaceID string) ([]workspace.Location, error) {
	var ws workspace.Workspace
	if err := database.DB.WithContext(ctx).First(&ws, "id = ?", workspaceID).Error; err != nil {
		return nil, err
	}
	return ws.LocationList(), nil
}

const notFoundHTML = `<!doctype html><html lang="en"><head><meta charset="utf-8"><title>Not found</title></head><body><main><h1>Page not found</h1><p>This campaign does not exist or is no longer live.</p></main></body></html>`

func respondNotFound(c *gin.Context) {
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundHTML))
}

// ------------------------------
// GET /p/:slug
// ------------------------------
//
// Published pages only; cached for the revalidation window.
func GetLandingPage(c *gin.Context) {
	slug := c.Param("slug")

	html, err := pageCache.GetOrRender(slug, func() ([]byte, error) {
		return renderPage(c.Request.Context(), slug, render.FormState{})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render page"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func renderPage(ctx context.Context, slug string, state render.FormState) ([]byte, error) {
	page, err := pages.FindPublishedBySlug(database.DB.WithContext(ctx), slug)
	if err != nil {
		return nil, err
	}

	doc, err := page.Sections()
	if err != nil {
		return nil, err
	}

	var tokens workspace.BrandTokens
	if page.Workspace != nil {
		tokens = page.Workspace.Tokens()
	}

	seo := page.SEOMeta()
	title := seo.Title
	if title == "" {
		title = page.Title
	}

	return renderer.Page(ctx, doc, render.PageContext{
		PageID:      page.ID,
		WorkspaceID: page.WorkspaceID,
		Slug:        page.Slug,
		Title:       title,
		Description: seo.Description,
		Keywords:    seo.Keywords,
		Tokens:      tokens,
		Form:        state,
	})
}

// ------------------------------
// POST /p/:slug/submit
// ------------------------------
//
// Runs one lead submission and re-renders the page with the form outcome:
// success panel on acceptance, the form plus message and entered values on
// a recoverable rejection, 404 when the page is not publicly live.
func SubmitLead(c *gin.Context) {
	slug := c.Param("slug")
	_ = c.Request.ParseForm()

	var page pages.Page
	if err := database.DB.First(&page, "slug = ?", slug).Error; err != nil {
		respondNotFound(c)
		return
	}

	doc, err := page.Sections()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page"})
		return
	}

	form, ok := findForm(doc, c.Request.PostForm.Get("_form"))
	if !ok {
		respondNotFound(c)
		return
	}
	declared := form.FieldNames()

	_, err = leads.Submit(c.Request.Context(), database.DB, webhook, page.ID, declared, c.Request.PostForm)
	if err != nil {
		var rejected *leads.SubmissionRejectedError
		if errors.As(err, &rejected) {
			if page.Status != pages.StatusPublished {
				// Unpublished between render and submit; nothing to re-render.
				respondNotFound(c)
				return
			}
			rerender(c, slug, render.FormState{
				Status:  render.FormError,
				Message: rejected.PublicMessage(),
				Values:  enteredValues(declared, c),
			})
			return
		}
		rerender(c, slug, render.FormState{
			Status:  render.FormError,
			Message: leads.MsgTryAgain,
			Values:  enteredValues(declared, c),
		})
		return
	}

	rerender(c, slug, render.FormState{Status: render.FormSuccess})
}

func rerender(c *gin.Context, slug string, state render.FormState) {
	html, err := renderPage(c.Request.Context(), slug, state)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render page"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// findForm picks the form section the submit targets: by id when the page
// carries several, otherwise the first one.
func findForm(doc schema.Document, formID string) (schema.Form, bool) {
	var first schema.Form
	found := false
	for _, s := range doc {
		f, ok := s.(schema.Form)
		if !ok {
			continue
		}
		if formID != "" && f.ID == formID {
			return f, true
		}
		if !found {
			first, found = f, true
		}
	}
	return first, found
}

func enteredValues(declared []string, c *gin.Context) map[string]string {
	values := make(map[string]string, len(declared))
	for _, name := range declared {
		values[name] = strings.TrimSpace(c.Request.PostForm.Get(name))
	}
	return values
}

// ------------------------------
// GET /api/brand/locations
// ------------------------------
func GetBrandLocations(c *gin.Context) {
	workspaceID := c.Query("workspaceId")

	q := database.DB
	if workspaceID != "" {
		q = q.Where("id = ?", workspaceID)
	}

	var ws workspace.Workspace
	if err := q.First(&ws).Error; err != nil {
		c.JSON(http.StatusOK, []workspace.Location{})
		return
	}
	c.JSON(http.StatusOK, ws.LocationList())
}
