package api

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasklist-api/internal/api/middleware"
	"github.com/phrazzld/tasklist-api/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageIndex(t *testing.T) {
	tmpl, err := web.Templates()
	require.NoError(t, err)

	t.Run("renders without csrf", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewPageHandler(tmpl, false).Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "<title>"+PageTitle+"</title>")
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("issues csrf cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewPageHandler(tmpl, true).Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.CSRFCookieName, cookies[0].Name)
		assert.Contains(t, rec.Body.String(), `data-csrf-token="`+cookies[0].Value+`"`)
	})

	t.Run("template failure is a 500", func(t *testing.T) {
		broken := template.Must(template.New("other.html").Parse("x"))
		rec := httptest.NewRecorder()
		NewPageHandler(broken, false).Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to render page")
	})
}
