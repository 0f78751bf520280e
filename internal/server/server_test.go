package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sage/internal/agent"
	"sage/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureCSV = `date,region,sales,revenue,customers
2024-01-01,North,3,300,2
2024-01-01,South,2,200,1
2024-01-02,North,4,400,1
2024-01-02,South,1,100,1
`

// stubAgent returns a canned answer or error.
type stubAgent struct {
	answer string
	err    error
}

func (s stubAgent) Answer(context.Context, string) (string, error) { return s.answer, s.err }
func (s stubAgent) Name() string                                   { return "stub" }

func newTestServer(t *testing.T, answerer agent.Answerer) *Server {
	t.Helper()
	ds, err := dataset.Load(strings.NewReader(fixtureCSV))
	require.NoError(t, err)
	t.Cleanup(func() { ds.Close() })
	return New(ds, answerer, nil)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestDataOverview(t *testing.T) {
	srv := newTestServer(t, stubAgent{})

	req := httptest.NewRequest(http.MethodGet, "/api/data-overview", nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(4), body["total_records"])

	summary, ok := body["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1000), summary["total_revenue"])
	assert.Equal(t, float64(10), summary["total_sales"])
	assert.Equal(t, float64(5), summary["total_customers"])
	assert.Equal(t, []any{"North", "South"}, summary["regions"])
}

func TestQuery(t *testing.T) {
	srv := newTestServer(t, stubAgent{answer: "North leads with $700."})

	payload, _ := json.Marshal(map[string]string{"query": "who leads on revenue?"})
	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "North leads with $700.", body["response"])
	assert.Equal(t, "stub", body["agent"])

	summary, ok := body["data_summary"].([]any)
	require.True(t, ok)
	assert.Len(t, summary, 4)
}

func TestQueryAgentFailure(t *testing.T) {
	srv := newTestServer(t, stubAgent{err: errors.New("model unavailable")})

	payload, _ := json.Marshal(map[string]string{"query": "anything"})
	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body["detail"], "Query failed")
}

func TestQueryRejectsEmpty(t *testing.T) {
	srv := newTestServer(t, stubAgent{answer: "never reached"})

	for _, payload := range []string{`{"query": ""}`, `{"query": "   "}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := srv.App().Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "payload %q", payload)
		resp.Body.Close()
	}
}

func TestQueryWithFallbackAgent(t *testing.T) {
	ds, err := dataset.Load(strings.NewReader(fixtureCSV))
	require.NoError(t, err)
	t.Cleanup(func() { ds.Close() })
	srv := New(ds, agent.NewFallback(ds), nil)

	payload, _ := json.Marshal(map[string]string{"query": "What is the revenue by region?"})
	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body["response"], "North $700")
	assert.Equal(t, "SAGE (offline)", body["agent"])
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, stubAgent{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["data_loaded"])
}

func TestRoot(t *testing.T) {
	srv := newTestServer(t, stubAgent{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "SAGE backend is running", body["message"])
}
