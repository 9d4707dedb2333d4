package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sramdig/sramdig/pkg/layout"
	"github.com/sramdig/sramdig/pkg/savefile"
)

// testServer builds a server over a synthetic image whose leaderboard
// holds one decodable record. Metrics stay nil: promauto registration is
// process-global and handlers must work without it.
func testServer(t *testing.T) *Server {
	t.Helper()

	l := layout.Default()
	buf := make([]byte, l.MainChunk.End)
	spec, ok := l.Table("championship")
	require.True(t, ok)

	base := spec.Base
	buf[base+1], buf[base+0], buf[base+5] = 'P', 'E', 'Z'
	ticks := uint32(6203 * 60)
	buf[base+20] = byte(ticks)
	buf[base+21] = byte(ticks >> 8)
	buf[base+16] = byte(ticks >> 16)

	analysis := Analysis{Image: savefile.New(buf), Layout: l}
	return NewServer(analysis, ServerConfig{}, nil)
}

// get invokes a handler with chi URL params injected.
func get(handler http.HandlerFunc, target string, params map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t)

	w := get(s.handleHealth, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, s.session, resp.Session)
}

func TestHandleTables(t *testing.T) {
	s := testServer(t)

	w := get(s.handleTables, "/api/v1/tables", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	specs, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, specs, 9)
}

func TestHandleTable(t *testing.T) {
	s := testServer(t)

	w := get(s.handleTable, "/api/v1/tables/championship", map[string]string{"name": "championship"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	entries, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, entries, 16)

	first, ok := entries[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "PEZ", first["name"])
	assert.Equal(t, "01:02.03", first["time"])
}

func TestHandleTable_Unknown(t *testing.T) {
	s := testServer(t)

	w := get(s.handleTable, "/api/v1/tables/nope", map[string]string{"name": "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decodeResponse(t, w).Success)
}

func TestHandleRegions(t *testing.T) {
	s := testServer(t)

	w := get(s.handleRegions, "/api/v1/regions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestHandleScan_DefaultBounds(t *testing.T) {
	s := testServer(t)

	w := get(s.handleScan, "/api/v1/scan", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestHandleScan_HexBounds(t *testing.T) {
	s := testServer(t)

	w := get(s.handleScan, "/api/v1/scan?start=0x0147&end=0x0347", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestHandleScan_BadBounds(t *testing.T) {
	s := testServer(t)

	w := get(s.handleScan, "/api/v1/scan?start=banana", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The mirror (or anything past the main chunk) is never scannable.
	w = get(s.handleScan, "/api/v1/scan?start=0x0147&end=0x20000", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleTotals(t *testing.T) {
	s := testServer(t)

	w := get(s.handleTotals, "/api/v1/totals", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	totals, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, totals)
}
