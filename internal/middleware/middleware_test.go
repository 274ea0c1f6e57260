package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testSecret = []byte("test-secret-key-32-bytes-long!!!")

func TestCSRF_AllowsGETAndIssuesToken(t *testing.T) {
	router := gin.New()
	router.Use(CSRF(testSecret, false))
	router.GET("/read", func(c *gin.Context) {
		c.String(http.StatusOK, CSRFToken(c))
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/read", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

func TestCSRF_BlocksPOSTWithoutToken(t *testing.T) {
	called := false
	router := gin.New()
	router.Use(CSRF(testSecret, false))
	router.POST("/api/reader/events", func(c *gin.Context) {
		called = true
		c.Status(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/reader/events", nil))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "CSRF")
	assert.False(t, called, "handler must not run after a CSRF failure")
}

func TestCSRFToken_EmptyWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, CSRFToken(c))
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeaders())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "frame-ancestors 'none'")
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:3000"}))
	router.GET("/api/documents", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/documents", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
		req.Header.Set("Origin", "http://evil.example")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func setupSessionManager(t *testing.T) *SessionManager {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sm, err := NewSessionManager(db, time.Hour, false)
	require.NoError(t, err)
	return sm
}

func TestNewSessionManager(t *testing.T) {
	sm := setupSessionManager(t)

	assert.Equal(t, "reader_session", sm.Cookie.Name)
	assert.True(t, sm.Cookie.HttpOnly)
	assert.False(t, sm.Cookie.Secure)
	assert.Equal(t, time.Hour, sm.Lifetime)
	assert.Equal(t, 30*time.Minute, sm.IdleTimeout)
}

func TestSessionManager_OpenDocumentAcrossRequests(t *testing.T) {
	sm := setupSessionManager(t)
	opened := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	router := gin.New()
	router.Use(sm.Sessions())
	router.POST("/open", func(c *gin.Context) {
		sm.SetOpenDocument(c.Request.Context(), OpenDocument{DocumentID: 12, ReadingSessionID: 3, OpenedAt: opened})
		c.Status(http.StatusOK)
	})
	router.GET("/current", func(c *gin.Context) {
		doc, ok := sm.GetOpenDocument(c.Request.Context())
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusOK, doc)
	})
	router.POST("/close", func(c *gin.Context) {
		if _, ok := sm.ClearOpenDocument(c.Request.Context()); !ok {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/open", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "reader_session", cookie.Name)

	send := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	rr = send(http.MethodGet, "/current")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"DocumentID":12,"ReadingSessionID":3,"OpenedAt":"2024-02-03T04:05:06Z"}`, rr.Body.String())

	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/close").Code)
	assert.Equal(t, http.StatusNotFound, send(http.MethodGet, "/current").Code)
}

func TestSessionManager_NoOpenDocument(t *testing.T) {
	sm := setupSessionManager(t)

	router := gin.New()
	router.Use(sm.Sessions())
	router.GET("/current", func(c *gin.Context) {
		_, ok := sm.GetOpenDocument(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"open": ok})
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/current", nil))
	assert.JSONEq(t, `{"open":false}`, rr.Body.String())
	assert.Empty(t, rr.Result().Cookies(), "untouched sessions set no cookie")
}
