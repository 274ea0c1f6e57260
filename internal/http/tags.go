package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type TagsController struct {
	store TagStore
}

func NewTagsController(store TagStore) *TagsController {
	return &TagsController{store: store}
}

// GetAllTags returns all tags by name
// GET /api/tags
func (tc *TagsController) GetAllTags(c *gin.Context) {
	tags, err := tc.store.GetTags(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "get all tags")
		return
	}
	c.JSON(http.StatusOK, tags)
}

// CreateTag creates a new tag. Existing names are a conflict.
// POST /api/tags
func (tc *TagsController) CreateTag(c *gin.Context) {
	var req struct {
		Name string `json:"name" form:"name"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	tag, err := tc.store.AddTag(c.Request.Context(), req.Name)
	if err != nil {
		respondStoreError(c, err, "create tag")
		return
	}
	respondCreated(c, tag)
}
