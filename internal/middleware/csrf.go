package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// CSRFTokenHeader is the header name for CSRF token in AJAX requests.
const CSRFTokenHeader = "X-CSRF-Token"

const csrfTokenKey = "csrf_token"

// CSRF creates a gin middleware for CSRF protection. Safe methods pass
// through and get a token for the page to echo back. When secure is false
// requests are treated as plain HTTP so the referer check does not demand
// TLS.
func CSRF(secret []byte, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.Path("/"),
		csrf.RequestHeader(CSRFTokenHeader),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		if !secure {
			c.Request = csrf.PlaintextHTTPRequest(c.Request)
		}

		passed := false
		handler := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Set(csrfTokenKey, csrf.Token(r))
			// Session middleware runs after this, on top of the CSRF context.
			c.Request = r
			c.Next()
		}))
		handler.ServeHTTP(c.Writer, c.Request)

		// A rejected request never reached c.Next; stop the chain here.
		if !passed {
			c.Abort()
		}
	}
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"CSRF token invalid or missing","code":"csrf"}`))
}

// CSRFToken returns the token set by CSRF, or "" when protection is off.
func CSRFToken(c *gin.Context) string {
	if token, ok := c.Get(csrfTokenKey); ok {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}
