package pagesapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"campaign-builder/database"
	"campaign-builder/internal/cache"
	"campaign-builder/internal/domain/pages"
	"campaign-builder/internal/domain/schema"
	"campaign-builder/internal/domain/workspace"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var pageCache *cache.PageCache

// Init wires the shared public-page cache so admin writes can revalidate.
func Init(c *cache.PageCache) {
	pageCache = c
}

func invalidate(slugs ...string) {
	if pageCache == nil {
		return
	}
	for _, slug := range slugs {
		if slug != "" {
			pageCache.Invalidate(slug)
		}
	}
}

// ------------------------------
// GET /admin/pages
// ------------------------------
func ListPages(c *gin.Context) {
	var list []pages.Page
	if err := database.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pages"})
		return
	}

	out := ListPagesResponse{Pages: make([]PageSummaryDTO, 0, len(list))}
	for _, p := range list {
		out.Pages = append(out.Pages, toSummaryDTO(p))
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /admin/pages
// ------------------------------
func CreatePage(c *gin.Context) {
	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required."})
		return
	}
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = pages.Slugify(title)
	}

	var ws workspace.Workspace
	q := database.DB
	if req.WorkspaceID != "" {
		q = q.Where("id = ?", req.WorkspaceID)
	}
	if err := q.First(&ws).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusConflict, gin.H{"error": "Workspace not seeded"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load workspace"})
		return
	}

	doc := schema.StarterDocument(req.CampaignType)
	rawSchema, err := json.Marshal(doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build starter schema"})
		return
	}

	seo, err := json.Marshal(pages.SEOMeta{
		Title:       fmt.Sprintf("%s | %s", title, ws.Name),
		Description: "Auto-generated landing page ready for copy updates.",
		Keywords:    []string{"campaign", "landing page"},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build SEO defaults"})
		return
	}

	page := pages.Page{
		WorkspaceID: ws.ID,
		Title:       title,
		Slug:        slug,
		Status:      pages.StatusDraft,
		Schema:      rawSchema,
		SEO:         seo,
	}
	if err := database.DB.Create(&page).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create page", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": page.ID})
}

// ------------------------------
// GET /admin/pages/:id
// ------------------------------
func GetPage(c *gin.Context) {
	id := c.Param("id")

	var page pages.Page
	if err := database.DB.First(&page, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page"})
		return
	}

	var submissions []pages.FormSubmission
	if err := database.DB.
		Where("page_id = ?", page.ID).
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
		return
	}

	c.JSON(http.StatusOK, PageDetailResponse{Page: page, Submissions: submissions})
}

// ------------------------------
// PUT /admin/pages/:id  (quick edit)
// ------------------------------
func UpdatePage(c *gin.Context) {
	id := c.Param("id")

	var req QuickEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.SEO) > 0 {
		var meta map[string]any
		if err := json.Unmarshal(req.SEO, &meta); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "SEO must be a JSON object"})
			return
		}
	}

	var oldSlug, newSlug string
	var updated *pages.Page

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var page pages.Page
		if err := tx.First(&page, "id = ?", id).Error; err != nil {
			return err
		}
		oldSlug = page.Slug

		updates := map[string]interface{}{}
		if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
			updates["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
			updates["slug"] = strings.TrimSpace(*req.Slug)
		}
		if len(req.SEO) > 0 {
			updates["seo"] = req.SEO
		}
		if len(updates) > 0 {
			if err := tx.Model(&pages.Page{}).Where("id = ?", page.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		// Status changes go through the workflow so published_at stays
		// consistent; it is never taken from request input.
		if req.Status != nil && *req.Status != page.Status {
			if _, err := pages.Transition(tx, page.ID, *req.Status); err != nil {
				return err
			}
		}

		var p pages.Page
		if err := tx.First(&p, "id = ?", page.ID).Error; err != nil {
			return err
		}
		updated = &p
		newSlug = p.Slug
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update page", "details": err.Error()})
		return
	}

	invalidate(oldSlug, newSlug)
	c.JSON(http.StatusOK, updated)
}

// ------------------------------
// PUT /admin/pages/:id/schema  (full JSON replace)
// ------------------------------
//
// The request body is the schema document itself, as edited in the admin
// JSON editor. Validation failures block the save and leave the stored
// schema untouched.
func ReplaceSchema(c *gin.Context) {
	id := c.Param("id")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	doc, err := schema.ParseDocument(body)
	if err != nil {
		var malformed *schema.MalformedDocumentError
		var invalid *schema.InvalidSectionError
		if errors.As(err, &malformed) || errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse schema"})
		return
	}

	canonical, err := json.Marshal(doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode schema"})
		return
	}

	var page pages.Page
	if err := database.DB.First(&page, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page"})
		return
	}

	if err := database.DB.Model(&pages.Page{}).
		Where("id = ?", page.ID).
		Update("schema", json.RawMessage(canonical)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save schema"})
		return
	}

	invalidate(page.Slug)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sections": len(doc)})
}

// ------------------------------
// POST /admin/pages/:id/publish
// ------------------------------
func PublishPage(c *gin.Context) {
	id := c.Param("id")

	page, err := pages.Publish(database.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish page", "details": err.Error()})
		return
	}

	invalidate(page.Slug)
	c.JSON(http.StatusOK, gin.H{"status": "published", "publishedAt": page.PublishedAt})
}

// ------------------------------
// POST /admin/pages/:id/unpublish
// ------------------------------
func UnpublishPage(c *gin.Context) {
	id := c.Param("id")

	page, err := pages.Unpublish(database.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unpublish page", "details": err.Error()})
		return
	}

	invalidate(page.Slug)
	c.JSON(http.StatusOK, gin.H{"status": "draft"})
}
