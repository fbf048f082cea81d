/*
File    : volsung/internal/httpapi/httpapi_test.go
*/
package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volsung-lang/volsung/program"
)

func newTestAPI() *API {
	prog := program.New(44100)
	prog.ConfigureIO(1, 1)
	prog.Reset()
	return &API{Prog: prog}
}

func TestHealthzReportsNodeCount(t *testing.T) {
	a := newTestAPI()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	a.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 2, body["nodes"]) // mandatory input + output
}

func TestGraphReportsNodeCount(t *testing.T) {
	a := newTestAPI()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/graph", nil)
	a.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body["nodes"]) // mandatory input + output
}

func TestRunPushesOneFrame(t *testing.T) {
	a := newTestAPI()
	payload, err := json.Marshal(runRequest{Input: []float64{0.5}})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/run", bytes.NewReader(payload))
	a.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp runResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Output, 1)
}

func TestRunRejectsMalformedBody(t *testing.T) {
	a := newTestAPI()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/run", bytes.NewReader([]byte("not json")))
	a.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
