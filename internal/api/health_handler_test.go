package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := NewHealthHandler(&fakeTaskService{})
		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"healthy","database":"connected","server":"running"}`, rec.Body.String())
	})

	t.Run("unhealthy", func(t *testing.T) {
		h := NewHealthHandler(&fakeTaskService{
			CheckHealthFn: func(context.Context) error {
				return errors.New("dial tcp db.internal:5432: connection refused")
			},
		})
		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health/", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"status":"unhealthy","error":"dial tcp [REDACTED_HOST]: connection refused"}`,
			rec.Body.String())
	})
}

func TestPing(t *testing.T) {
	called := false
	h := NewHealthHandler(&fakeTaskService{
		CheckHealthFn: func(context.Context) error {
			called = true
			return nil
		},
	})
	rec := httptest.NewRecorder()
	h.Ping(rec, httptest.NewRequest(http.MethodGet, "/ping/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"running"`)
	assert.False(t, called, "ping must not touch the store")
}
