package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	selector  ReviewSelector
	batchSize int
}

func NewReviewController(selector ReviewSelector, batchSize int) *ReviewController {
	return &ReviewController{selector: selector, batchSize: batchSize}
}

// GetBatch returns the next highlights to review
// GET /api/review?limit=
func (rc *ReviewController) GetBatch(c *gin.Context) {
	limit, ok := parseLimitQuery(c, "limit", rc.batchSize)
	if !ok {
		return
	}

	highlights, err := rc.selector.GetHighlightsForReview(c.Request.Context(), limit)
	if err != nil {
		respondStoreError(c, err, "review batch")
		return
	}
	c.JSON(http.StatusOK, highlights)
}
