package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/api/shared"
)

// CSRF cookie and header names. The page script copies the cookie value
// into the header on every unsafe request.
const (
	CSRFCookieName = "csrftoken"
	CSRFHeaderName = "X-CSRFToken"
)

// CSRFProtect enforces the double-submit cookie check on unsafe methods:
// the X-CSRFToken header must be present and equal the csrftoken cookie.
func CSRFProtect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(CSRFCookieName)
		if err != nil || cookie.Value == "" {
			shared.RespondWithError(w, r, http.StatusForbidden, "CSRF verification failed: cookie not set")
			return
		}

		header := r.Header.Get(CSRFHeaderName)
		if header == "" || subtle.ConstantTimeCompare([]byte(header), []byte(cookie.Value)) != 1 {
			shared.RespondWithError(w, r, http.StatusForbidden, "CSRF verification failed: token mismatch")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// EnsureCSRFCookie returns the request's CSRF token, issuing a new cookie
// when the request carries none.
func EnsureCSRFCookie(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(CSRFCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
