package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session data keys
const (
	SessionKeyDocumentID       = "document_id"
	SessionKeyReadingSessionID = "reading_session_id"
	SessionKeyOpenedAt         = "opened_at"
)

// SessionManager wraps scs.SessionManager with the reader's open-document
// bookkeeping.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a session manager backed by the sessions table
// in sqlDB, creating the table when missing.
func NewSessionManager(sqlDB *sql.DB, lifetime time.Duration, secureCookies bool) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime / 2

	sm.Cookie.Name = "reader_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// OpenDocument is the document a browser is currently reading.
type OpenDocument struct {
	DocumentID       uint
	ReadingSessionID uint
	OpenedAt         time.Time
}

// SetOpenDocument records the open document and its reading session.
func (sm *SessionManager) SetOpenDocument(ctx context.Context, doc OpenDocument) {
	sm.Put(ctx, SessionKeyDocumentID, int(doc.DocumentID))
	sm.Put(ctx, SessionKeyReadingSessionID, int(doc.ReadingSessionID))
	sm.Put(ctx, SessionKeyOpenedAt, doc.OpenedAt.Unix())
}

// GetOpenDocument returns the open document, or false when none is open.
func (sm *SessionManager) GetOpenDocument(ctx context.Context) (OpenDocument, bool) {
	docID := sm.GetInt(ctx, SessionKeyDocumentID)
	if docID == 0 {
		return OpenDocument{}, false
	}
	return OpenDocument{
		DocumentID:       uint(docID),
		ReadingSessionID: uint(sm.GetInt(ctx, SessionKeyReadingSessionID)),
		OpenedAt:         time.Unix(sm.GetInt64(ctx, SessionKeyOpenedAt), 0).UTC(),
	}, true
}

// ClearOpenDocument forgets the open document and returns what was open.
func (sm *SessionManager) ClearOpenDocument(ctx context.Context) (OpenDocument, bool) {
	doc, ok := sm.GetOpenDocument(ctx)
	sm.Remove(ctx, SessionKeyDocumentID)
	sm.Remove(ctx, SessionKeyReadingSessionID)
	sm.Remove(ctx, SessionKeyOpenedAt)
	return doc, ok
}
