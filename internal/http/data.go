package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DataController struct {
	store DataStore
}

func NewDataController(store DataStore) *DataController {
	return &DataController{store: store}
}

// GetStats returns document and highlight counts
// GET /api/stats
func (dc *DataController) GetStats(c *gin.Context) {
	stats, err := dc.store.Stats(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// DeleteAll wipes every document, highlight, grouping and session
// DELETE /api/data
func (dc *DataController) DeleteAll(c *gin.Context) {
	if err := dc.store.DeleteAll(c.Request.Context()); err != nil {
		respondStoreError(c, err, "delete all data")
		return
	}
	log.Printf("All reading data deleted")
	respondSuccess(c, "all data deleted")
}
