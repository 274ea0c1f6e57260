package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/entities"
)

type HighlightsController struct {
	store HighlightStore
}

func NewHighlightsController(store HighlightStore) *HighlightsController {
	return &HighlightsController{store: store}
}

type createHighlightRequest struct {
	DocumentID uint              `json:"document_id"`
	Text       string            `json:"text"`
	Note       string            `json:"note"`
	Color      string            `json:"color"`
	Position   entities.Position `json:"position"`
}

// CreateHighlight stores a highlight for an existing document
// POST /api/highlights
func (hc *HighlightsController) CreateHighlight(c *gin.Context) {
	var req createHighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	id, err := hc.store.AddHighlight(c.Request.Context(), &entities.Highlight{
		DocumentID: req.DocumentID,
		Text:       req.Text,
		Note:       req.Note,
		Color:      req.Color,
		Position:   req.Position,
	})
	if err != nil {
		respondStoreError(c, err, "create highlight")
		return
	}
	respondCreated(c, IDResponse{ID: id})
}

// GetHighlight returns one highlight with its document title
// GET /api/highlights/:id
func (hc *HighlightsController) GetHighlight(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	h, err := hc.store.GetHighlightByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "get highlight")
		return
	}
	if h == nil {
		respondNotFound(c, "highlight")
		return
	}
	c.JSON(http.StatusOK, h)
}

// RecordReview counts a review and sets the mastered flag
// POST /api/highlights/:id/review
func (hc *HighlightsController) RecordReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Mastered bool `json:"mastered" form:"mastered"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}

	if err := hc.store.UpdateHighlightReview(c.Request.Context(), id, req.Mastered); err != nil {
		respondStoreError(c, err, "record review")
		return
	}

	h, err := hc.store.GetHighlightByID(c.Request.Context(), id)
	if err != nil || h == nil {
		respondSuccess(c, "review recorded")
		return
	}
	c.JSON(http.StatusOK, h)
}
