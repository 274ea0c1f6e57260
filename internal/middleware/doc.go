// Package middleware holds the gin middleware shared by the API and the
// reader page: CSRF protection, the scs session that remembers which
// document a browser has open, security headers and CORS.
package middleware
