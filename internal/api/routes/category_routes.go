package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/pulseboard-app/pulseboard/internal/api/handlers"
	"github.com/pulseboard-app/pulseboard/internal/api/middleware"
)

type CategoryRoutes struct {
	categories *handlers.CategoryHandler
	report     *handlers.ReportHandler
	jwtSecret  string
}

func NewCategoryRoutes(categories *handlers.CategoryHandler, report *handlers.ReportHandler, jwtSecret string) *CategoryRoutes {
	return &CategoryRoutes{
		categories: categories,
		report:     report,
		jwtSecret:  jwtSecret,
	}
}

// RegisterRoutes registers all category and report routes
func (r *CategoryRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	categories := router.Group("/api/categories")
	categories.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	categories.GET("", cache.CacheResponse(), gzip.Gzip(gzip.DefaultCompression), r.categories.ListCategories)
	categories.POST("", cache.CacheInvalidate("categories:*"), r.categories.CreateCategory)

	categories.GET("/:name", r.categories.GetCategory)
	categories.DELETE("/:name", cache.CacheInvalidate("categories:*"), r.categories.DeleteCategory)

	// Report routes are not cached: the view carries live tab state and
	// the page contents change with every ingested event.
	categories.GET("/:name/events", gzip.Gzip(gzip.DefaultCompression), r.report.GetEventsPage)
	categories.GET("/:name/report", gzip.Gzip(gzip.DefaultCompression), r.report.GetReport)
}
