package routes

import (
	"log"

	"campaign-builder/config"
	"campaign-builder/internal/api/leads"
	pagesapi "campaign-builder/internal/api/pages"
	publicapi "campaign-builder/internal/api/public"
	seoapi "campaign-builder/internal/api/seo"
	"campaign-builder/internal/app/http/middleware"
	"campaign-builder/internal/cache"
	"campaign-builder/internal/render"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	renderer, err := render.New(publicapi.WorkspaceLocations{})
	if err != nil {
		log.Fatal("Failed to load section templates:", err)
	}

	pageCache := cache.New(config.PAGE_CACHE_TTL)
	publicapi.Init(renderer, pageCache, leads.NewWebhook())
	pagesapi.Init(pageCache)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public surface
	public := r.Group("/")
	public.Use(middleware.SanitizeFormInputMiddleware())

	public.GET("/p/:slug", publicapi.GetLandingPage)
	public.GET("/api/brand/locations", publicapi.GetBrandLocations)

	submitLimiter := middleware.NewClientLimiter(1, 5)
	public.POST("/p/:slug/submit", middleware.RateLimitMiddleware(submitLimiter), publicapi.SubmitLead)

	// Admin surface
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdminToken())
	admin.GET("/pages", pagesapi.ListPages)
	admin.POST("/pages", pagesapi.CreatePage)
	admin.GET("/pages/:id", pagesapi.GetPage)
	admin.PUT("/pages/:id", pagesapi.UpdatePage)
	admin.PUT("/pages/:id/schema", pagesapi.ReplaceSchema)
	admin.POST("/pages/:id/publish", pagesapi.PublishPage)
	admin.POST("/pages/:id/unpublish", pagesapi.UnpublishPage)
	admin.POST("/seo/suggest", seoapi.SuggestSEO)
}
