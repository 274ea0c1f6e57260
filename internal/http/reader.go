package http

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/middleware"
	"github.com/mrlokans/reader/internal/reader"
)

// maxEventSize bounds a single surface message; selections larger than
// this are not useful highlights.
const maxEventSize = 64 << 10

// ReaderController serves the reading surface. The open document and its
// reading session live in the browser's scs session.
type ReaderController struct {
	documents DocumentStore
	sessions  ReadingSessionStore
	host      *reader.Host
	renderer  *reader.Renderer
	sm        *middleware.SessionManager
}

func NewReaderController(documents DocumentStore, sessions ReadingSessionStore, host *reader.Host, renderer *reader.Renderer, sm *middleware.SessionManager) *ReaderController {
	return &ReaderController{documents: documents, sessions: sessions, host: host, renderer: renderer, sm: sm}
}

type confirmRequest struct {
	Draft reader.HighlightDraft `json:"draft"`
	Note  string                `json:"note"`
	Color string                `json:"color"`
}

// Open renders the reader page and starts a reading session
// GET /read/:id
func (rc *ReaderController) Open(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	doc, err := rc.documents.GetDocumentByID(ctx, id)
	if err != nil {
		respondStoreError(c, err, "open document")
		return
	}
	if doc == nil {
		respondNotFound(c, "document")
		return
	}

	// Opening another document ends whatever was being read.
	rc.endOpenSession(c)

	sessionID, err := rc.sessions.StartReadingSession(ctx, doc.ID, doc.ReadingProgress)
	if err != nil {
		respondStoreError(c, err, "start reading session")
		return
	}
	rc.sm.SetOpenDocument(ctx, middleware.OpenDocument{
		DocumentID:       doc.ID,
		ReadingSessionID: sessionID,
		OpenedAt:         time.Now().UTC(),
	})

	var page bytes.Buffer
	err = rc.renderer.Render(&page, doc, reader.PageOptions{
		EventsURL:    "/api/reader/events",
		HighlightURL: "/api/reader/highlights",
		CloseURL:     "/api/reader/close",
		CSRFToken:    middleware.CSRFToken(c),
	})
	if err != nil {
		respondInternalError(c, err, "render reader page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page.Bytes())
}

// Event handles one selection or scroll message from the surface
// POST /api/reader/events
func (rc *ReaderController) Event(c *gin.Context) {
	open, ok := rc.sm.GetOpenDocument(c.Request.Context())
	if !ok {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "no document is open", Code: CodeNoOpenDocument})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxEventSize))
	if err != nil {
		respondBadRequest(c, "failed to read event")
		return
	}
	ev, err := reader.DecodeEvent(body)
	if err != nil {
		log.Printf("[READER] Dropping event for document %d: %v", open.DocumentID, err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidEvent})
		return
	}

	outcome, err := rc.host.Handle(c.Request.Context(), open.DocumentID, ev)
	if err != nil {
		respondStoreError(c, err, "reader event")
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// ConfirmHighlight stores a draft produced by a selection event
// POST /api/reader/highlights
func (rc *ReaderController) ConfirmHighlight(c *gin.Context) {
	open, ok := rc.sm.GetOpenDocument(c.Request.Context())
	if !ok {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "no document is open", Code: CodeNoOpenDocument})
		return
	}

	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	// Drafts always belong to the open document.
	req.Draft.DocumentID = open.DocumentID

	id, err := rc.host.Confirm(c.Request.Context(), req.Draft, req.Note, req.Color)
	if err != nil {
		respondStoreError(c, err, "confirm highlight")
		return
	}
	respondCreated(c, IDResponse{ID: id})
}

// Close ends the reading session of the open document
// POST /api/reader/close
func (rc *ReaderController) Close(c *gin.Context) {
	closed := rc.endOpenSession(c)
	c.JSON(http.StatusOK, gin.H{"closed": closed})
}

// endOpenSession clears the open document and ends its reading session at
// the document's current progress. Failures are logged; the session is
// left for the reaper.
func (rc *ReaderController) endOpenSession(c *gin.Context) bool {
	ctx := c.Request.Context()
	open, ok := rc.sm.ClearOpenDocument(ctx)
	if !ok || open.ReadingSessionID == 0 {
		return false
	}

	progress := 0.0
	doc, err := rc.documents.GetDocumentByID(ctx, open.DocumentID)
	if err != nil {
		log.Printf("[READER] Failed to load document %d on close: %v", open.DocumentID, err)
		return false
	}
	if doc != nil {
		progress = doc.ReadingProgress
	}

	err = rc.sessions.EndReadingSession(ctx, open.ReadingSessionID, progress)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		log.Printf("[READER] Failed to end reading session %d: %v", open.ReadingSessionID, err)
		return false
	}
	return err == nil
}
