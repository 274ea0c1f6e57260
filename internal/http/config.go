package http

import (
	"github.com/mrlokans/reader/internal/middleware"
	"github.com/mrlokans/reader/internal/reader"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Stores
	Data        DataStore
	Documents   DocumentStore
	Collections CollectionStore
	Highlights  HighlightStore
	Tags        TagStore
	Sessions    ReadingSessionStore
	Review      ReviewSelector

	// Reader surface
	Host           *reader.Host
	Renderer       *reader.Renderer
	SessionManager *middleware.SessionManager

	// Security
	CSRFSecret         []byte
	SecureCookies      bool
	CORSAllowedOrigins []string

	ReviewBatchSize int

	// Application info
	Version string
}
