package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/entities"
)

type CollectionsController struct {
	store CollectionStore
}

func NewCollectionsController(store CollectionStore) *CollectionsController {
	return &CollectionsController{store: store}
}

// ListCollections returns all collections by name
// GET /api/collections
func (cc *CollectionsController) ListCollections(c *gin.Context) {
	cols, err := cc.store.GetCollections(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "list collections")
		return
	}
	c.JSON(http.StatusOK, cols)
}

// CreateCollection adds a named collection
// POST /api/collections
func (cc *CollectionsController) CreateCollection(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	id, err := cc.store.AddCollection(c.Request.Context(), &entities.Collection{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		respondStoreError(c, err, "create collection")
		return
	}
	respondCreated(c, IDResponse{ID: id})
}

// ListDocuments returns the documents filed in a collection
// GET /api/collections/:id/documents
func (cc *CollectionsController) ListDocuments(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	docs, err := cc.store.GetDocumentsInCollection(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "list collection documents")
		return
	}
	c.JSON(http.StatusOK, docs)
}
