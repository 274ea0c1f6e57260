package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/validation"
)

type DocumentsController struct {
	store       DocumentStore
	highlights  HighlightStore
	collections CollectionStore
	tags        TagStore
}

func NewDocumentsController(store DocumentStore, highlights HighlightStore, collections CollectionStore, tags TagStore) *DocumentsController {
	return &DocumentsController{store: store, highlights: highlights, collections: collections, tags: tags}
}

type createDocumentRequest struct {
	Type      entities.DocumentKind `json:"type"`
	Title     string                `json:"title"`
	Author    string                `json:"author"`
	SourceURL string                `json:"source_url"`
	FilePath  string                `json:"file_path"`
	Content   string                `json:"content"`
	Metadata  entities.Metadata     `json:"metadata"`
}

// DocumentDetail is a document with its tags.
type DocumentDetail struct {
	entities.Document
	Tags []entities.Tag `json:"tags"`
}

// ListDocuments returns all documents, newest first
// GET /api/documents
func (dc *DocumentsController) ListDocuments(c *gin.Context) {
	docs, err := dc.store.GetDocuments(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "list documents")
		return
	}
	c.JSON(http.StatusOK, docs)
}

// CreateDocument stores a pdf or article
// POST /api/documents
func (dc *DocumentsController) CreateDocument(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	doc := &entities.Document{
		Kind:      req.Type,
		Title:     req.Title,
		Author:    req.Author,
		SourceURL: req.SourceURL,
		FilePath:  req.FilePath,
		Content:   req.Content,
		Metadata:  req.Metadata,
	}
	id, err := dc.store.AddDocument(c.Request.Context(), doc)
	if err != nil {
		respondStoreError(c, err, "create document")
		return
	}
	respondCreated(c, IDResponse{ID: id})
}

// GetDocument returns one document with its tags
// GET /api/documents/:id
func (dc *DocumentsController) GetDocument(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := dc.store.GetDocumentByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "get document")
		return
	}
	if doc == nil {
		respondNotFound(c, "document")
		return
	}

	tags, err := dc.tags.GetTagsForDocument(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "get document tags")
		return
	}
	c.JSON(http.StatusOK, DocumentDetail{Document: *doc, Tags: tags})
}

// UpdateProgress sets the reading progress
// PUT /api/documents/:id/progress
func (dc *DocumentsController) UpdateProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Progress *float64 `json:"progress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Progress == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "progress is required",
			Code:    CodeValidation,
			Details: validation.Field("progress", "is required").Fields,
		})
		return
	}

	if err := dc.store.UpdateDocumentProgress(c.Request.Context(), id, *req.Progress); err != nil {
		respondStoreError(c, err, "update progress")
		return
	}
	respondSuccess(c, "progress updated")
}

// ListHighlights returns a document's highlights, newest first
// GET /api/documents/:id/highlights
func (dc *DocumentsController) ListHighlights(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := dc.store.GetDocumentByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "get document")
		return
	}
	if doc == nil {
		respondNotFound(c, "document")
		return
	}

	highlights, err := dc.highlights.GetHighlightsForDocument(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "list highlights")
		return
	}
	c.JSON(http.StatusOK, highlights)
}

// AddToCollection files a document into a collection
// POST /api/documents/:id/collections
func (dc *DocumentsController) AddToCollection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		CollectionID uint `json:"collection_id" form:"collection_id"`
	}
	if err := c.ShouldBind(&req); err != nil || req.CollectionID == 0 {
		respondBadRequest(c, "collection_id is required")
		return
	}

	if err := dc.collections.AddDocumentToCollection(c.Request.Context(), id, req.CollectionID); err != nil {
		respondStoreError(c, err, "add document to collection")
		return
	}
	respondSuccess(c, "document added to collection")
}

// AddTag tags a document by tag ID or name. Unknown names are created.
// POST /api/documents/:id/tags
func (dc *DocumentsController) AddTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		TagID   uint   `json:"tag_id" form:"tag_id"`
		TagName string `json:"tag_name" form:"tag_name"`
	}
	_ = c.ShouldBind(&req)

	tagID := req.TagID
	if tagID == 0 {
		name := strings.TrimSpace(req.TagName)
		if name == "" {
			respondBadRequest(c, "tag_id or tag_name is required")
			return
		}
		tag, err := dc.tags.GetOrCreateTag(c.Request.Context(), name)
		if err != nil {
			respondStoreError(c, err, "get or create tag")
			return
		}
		tagID = tag.ID
	}

	if err := dc.tags.AddDocumentTag(c.Request.Context(), id, tagID); err != nil {
		respondStoreError(c, err, "add tag to document")
		return
	}
	c.JSON(http.StatusOK, gin.H{"document_id": id, "tag_id": tagID})
}
