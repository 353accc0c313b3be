package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocerscan/config"
	"grocerscan/matcher"
)

func testApp() *app {
	return &app{
		cfg:     config.Load(),
		matcher: matcher.NewDefault(),
	}
}

func TestHandleHealth(t *testing.T) {
	a := testApp()

	rec := httptest.NewRecorder()
	a.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["database"])
}

func TestHandleSearchTerms(t *testing.T) {
	a := testApp()

	rec := httptest.NewRecorder()
	a.handleSearchTerms(rec, httptest.NewRequest(http.MethodGet, "/api/search-terms?q=Heinz+Baked+Beanz+6+x+415g", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Query string   `json:"query"`
		Terms []string `json:"terms"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Heinz Baked Beanz 6 x 415g", body.Query)
	require.Len(t, body.Terms, 2)
	assert.Equal(t, "Heinz Baked Beans Family Pack", body.Terms[0])
}

func TestHandleSearchTermsMissingQuery(t *testing.T) {
	a := testApp()

	rec := httptest.NewRecorder()
	a.handleSearchTerms(rec, httptest.NewRequest(http.MethodGet, "/api/search-terms", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleScore(t *testing.T) {
	a := testApp()

	payload := `{"query": "Heinz Baked Beanz 415g", "candidate": "Branston Baked Beans 415g"}`
	req := httptest.NewRequest(http.MethodPost, "/api/score", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	a.handleScore(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body matcher.Breakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0.0, body.Score)
	assert.NotEmpty(t, body.Contributions)
}

func TestHandleScoreBadRequest(t *testing.T) {
	a := testApp()

	rec := httptest.NewRecorder()
	a.handleScore(rec, httptest.NewRequest(http.MethodPost, "/api/score", strings.NewReader("not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	a.handleScore(rec, httptest.NewRequest(http.MethodPost, "/api/score", strings.NewReader(`{"query":""}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHistoryUnconfigured(t *testing.T) {
	a := testApp()

	rec := httptest.NewRecorder()
	a.handleHistory(rec, httptest.NewRequest(http.MethodGet, "/api/history?q=beans", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleIndexSearchUnconfigured(t *testing.T) {
	a := testApp()

	rec := httptest.NewRecorder()
	a.handleIndexSearch(rec, httptest.NewRequest(http.MethodGet, "/api/listings/search?q=beans", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
