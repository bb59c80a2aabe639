package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripline/catsearch/internal/catalog"
	"github.com/tripline/catsearch/internal/index"
	"github.com/tripline/catsearch/internal/search"
	"github.com/tripline/catsearch/internal/store"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	products := []catalog.Record{
		{ID: "p1", Slug: "red-running-shoe", Title: "Red Running Shoe", Price: 50, Rating: 4.2, CategorySlug: "footwear"},
		{ID: "p2", Slug: "red-hiking-boot", Title: "Red Hiking Boot", Price: 80, Rating: 3.9, CategorySlug: "footwear"},
		{ID: "p3", Slug: "blue-backpack", Title: "Blue Backpack", Price: 60, Rating: 4.5, CategorySlug: "bags"},
	}

	engines := make(map[string]*search.Engine)
	for _, e := range []struct {
		cfg  catalog.Config
		recs []catalog.Record
	}{
		{catalog.ProductConfig(), products},
		{catalog.EventConfig(), nil},
	} {
		recs := e.recs
		src := store.SourceFunc(func(ctx context.Context) ([]catalog.Record, error) {
			return recs, nil
		})
		engine, err := search.NewEngine(index.NewCache(src, e.cfg.TTL, e.cfg.FetchTimeout), e.cfg)
		require.NoError(t, err)
		engines[e.cfg.Entity] = engine
	}

	srv := httptest.NewServer(NewServer(engines).Router())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestSearchEndpoint(t *testing.T) {
	srv := testServer(t)

	var body searchResponse
	status := getJSON(t, srv.URL+"/api/products/search?query=red+shoe&limit=10", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Items, 2)
	assert.Equal(t, "Red Running Shoe", body.Items[0].Title)
}

func TestSearchEndpoint_FiltersAndSort(t *testing.T) {
	srv := testServer(t)

	var body searchResponse
	status := getJSON(t, srv.URL+"/api/products/search?category=footwear&sort=price_asc", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Items, 2)
	assert.Equal(t, "red-running-shoe", body.Items[0].Slug)
	assert.Equal(t, "red-hiking-boot", body.Items[1].Slug)
}

func TestSearchEndpoint_EmptyResultIsOK(t *testing.T) {
	srv := testServer(t)

	var body searchResponse
	status := getJSON(t, srv.URL+"/api/products/search?min_price=1000", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, body.Total)
	assert.NotNil(t, body.Items)
	assert.Empty(t, body.Items)
}

func TestSearchEndpoint_InvalidParams(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name string
		qs   string
	}{
		{"non-numeric price", "min_price=cheap"},
		{"negative price", "min_price=-5"},
		{"bad sort", "sort=alphabetical"},
		{"bad date", "date_from=someday"},
		{"non-integer limit", "limit=many"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body errorResponse
			status := getJSON(t, srv.URL+"/api/products/search?"+tt.qs, &body)
			assert.Equal(t, http.StatusUnprocessableEntity, status)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestSearchEndpoint_UnknownEntity(t *testing.T) {
	srv := testServer(t)

	var body errorResponse
	status := getJSON(t, srv.URL+"/api/flights/search", &body)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSuggestEndpoint(t *testing.T) {
	srv := testServer(t)

	var body suggestResponse
	status := getJSON(t, srv.URL+"/api/products/suggest?query=run", &body)

	assert.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body.Items)
	assert.Equal(t, "Red Running Shoe", body.Items[0].Title)
}

func TestInvalidateEndpoint(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/api/products/invalidate", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestSearchEndpoint_SourceUnavailable(t *testing.T) {
	cfg := catalog.ProductConfig()
	src := store.SourceFunc(func(ctx context.Context) ([]catalog.Record, error) {
		return nil, errors.New("connection refused")
	})
	engine, err := search.NewEngine(index.NewCache(src, cfg.TTL, cfg.FetchTimeout), cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(NewServer(map[string]*search.Engine{"products": engine}).Router())
	defer srv.Close()

	var body errorResponse
	status := getJSON(t, srv.URL+"/api/products/search", &body)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.NotEmpty(t, body.Code)
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	var body map[string]string
	status := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}
