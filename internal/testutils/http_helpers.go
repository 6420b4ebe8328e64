package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoJSONRequest sends a request to handler and returns the recorder.
// body may be nil, a string sent verbatim, or any value encoded as JSON.
func DoJSONRequest(
	t *testing.T,
	handler http.Handler,
	method, path string,
	body interface{},
) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err, "Failed to marshal request body")
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// DecodeJSON unmarshals the recorder body into dest.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest),
		"Failed to unmarshal response: %s", rec.Body.String())
}

// AssertErrorResponse checks that a response carries the error envelope with
// the expected status code and message.
func AssertErrorResponse(
	t *testing.T,
	rec *httptest.ResponseRecorder,
	expectedStatus int,
	expectedErrorMsgPart string,
) {
	t.Helper()

	assert.Equal(t, expectedStatus, rec.Code,
		"Expected status code %d but got %d: %s", expectedStatus, rec.Code, rec.Body.String())

	var errResp shared.ErrorResponse
	DecodeJSON(t, rec, &errResp)

	assert.False(t, errResp.Success, "Error responses must carry success=false")
	assert.Contains(t, errResp.Error, expectedErrorMsgPart,
		"Expected error message to contain %q but got %q", expectedErrorMsgPart, errResp.Error)
}
