package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/middleware"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())

	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(middleware.CSRF(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.Sessions())
	}

	health := NewHealthController(cfg.Data, cfg.Version)
	router.GET("/health", health.Status)

	api := router.Group("/api")

	documents := NewDocumentsController(cfg.Documents, cfg.Highlights, cfg.Collections, cfg.Tags)
	api.GET("/documents", documents.ListDocuments)
	api.POST("/documents", documents.CreateDocument)
	api.GET("/documents/:id", documents.GetDocument)
	api.PUT("/documents/:id/progress", documents.UpdateProgress)
	api.GET("/documents/:id/highlights", documents.ListHighlights)
	api.POST("/documents/:id/collections", documents.AddToCollection)
	api.POST("/documents/:id/tags", documents.AddTag)

	collections := NewCollectionsController(cfg.Collections)
	api.GET("/collections", collections.ListCollections)
	api.POST("/collections", collections.CreateCollection)
	api.GET("/collections/:id/documents", collections.ListDocuments)

	tags := NewTagsController(cfg.Tags)
	api.GET("/tags", tags.GetAllTags)
	api.POST("/tags", tags.CreateTag)

	highlights := NewHighlightsController(cfg.Highlights)
	api.POST("/highlights", highlights.CreateHighlight)
	api.GET("/highlights/:id", highlights.GetHighlight)
	api.POST("/highlights/:id/review", highlights.RecordReview)

	review := NewReviewController(cfg.Review, cfg.ReviewBatchSize)
	api.GET("/review", review.GetBatch)

	search := NewSearchController(cfg.Documents, cfg.Highlights)
	api.GET("/search", search.Search)

	data := NewDataController(cfg.Data)
	api.GET("/stats", data.GetStats)
	api.DELETE("/data", data.DeleteAll)

	// The reader surface needs a session to remember the open document.
	if cfg.SessionManager != nil && cfg.Host != nil && cfg.Renderer != nil {
		rc := NewReaderController(cfg.Documents, cfg.Sessions, cfg.Host, cfg.Renderer, cfg.SessionManager)
		router.GET("/read/:id", rc.Open)
		api.POST("/reader/events", rc.Event)
		api.POST("/reader/highlights", rc.ConfirmHighlight)
		api.POST("/reader/close", rc.Close)
	}

	return router
}
