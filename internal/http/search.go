package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/entities"
)

// Search scopes.
const (
	ScopeAll        = "all"
	ScopeDocuments  = "documents"
	ScopeHighlights = "highlights"
)

// SearchResponse holds matches per scope. A scope that was not searched
// is omitted.
type SearchResponse struct {
	Query      string               `json:"query"`
	Documents  []entities.Document  `json:"documents,omitempty"`
	Highlights []entities.Highlight `json:"highlights,omitempty"`
}

type SearchController struct {
	documents  DocumentStore
	highlights HighlightStore
}

func NewSearchController(documents DocumentStore, highlights HighlightStore) *SearchController {
	return &SearchController{documents: documents, highlights: highlights}
}

// Search matches documents and highlights by case-insensitive substring
// GET /api/search?q=&scope=
func (sc *SearchController) Search(c *gin.Context) {
	query := c.Query("q")
	scope := c.DefaultQuery("scope", ScopeAll)
	if scope != ScopeAll && scope != ScopeDocuments && scope != ScopeHighlights {
		respondBadRequest(c, "scope must be one of all, documents, highlights")
		return
	}

	resp := SearchResponse{Query: query}
	ctx := c.Request.Context()

	if scope != ScopeHighlights {
		docs, err := sc.documents.SearchDocuments(ctx, query)
		if err != nil {
			respondStoreError(c, err, "search documents")
			return
		}
		resp.Documents = docs
	}
	if scope != ScopeDocuments {
		highlights, err := sc.highlights.SearchHighlights(ctx, query)
		if err != nil {
			respondStoreError(c, err, "search highlights")
			return
		}
		resp.Highlights = highlights
	}

	c.JSON(http.StatusOK, resp)
}
