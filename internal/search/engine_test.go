package search

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripline/catsearch/internal/catalog"
	cerr "github.com/tripline/catsearch/internal/errors"
	"github.com/tripline/catsearch/internal/index"
	"github.com/tripline/catsearch/internal/store"
)

// newTestEngine builds an engine over an in-memory source and returns
// the fetch counter for cache assertions.
func newTestEngine(t *testing.T, recs []catalog.Record, cfg catalog.Config) (*Engine, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	source := store.SourceFunc(func(ctx context.Context) ([]catalog.Record, error) {
		calls.Add(1)
		return recs, nil
	})
	cache := index.NewCache(source, cfg.TTL, cfg.FetchTimeout)
	engine, err := NewEngine(cache, cfg)
	require.NoError(t, err)
	return engine, &calls
}

func ids(recs []catalog.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestEngine_QueryTextRanksResults(t *testing.T) {
	engine, _ := newTestEngine(t, shoeIndex(), catalog.ProductConfig())

	page, err := engine.Search(context.Background(), catalog.Query{Text: "red shoe", Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 2, page.Total)
	assert.Equal(t, []string{"p1", "p2"}, ids(page.Items),
		"tighter title match ranks first, backpack is excluded")
}

func TestEngine_SortOverridesPrecedence(t *testing.T) {
	engine, _ := newTestEngine(t, shoeIndex(), catalog.ProductConfig())

	// Query text present but explicit sort wins over relevance order.
	page, err := engine.Search(context.Background(), catalog.Query{
		Text: "red", Sort: catalog.SortPriceDesc, Limit: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)
	assert.Equal(t, []string{"p2", "p1"}, ids(page.Items))

	for i := 1; i < len(page.Items); i++ {
		assert.LessOrEqual(t, page.Items[i].Price, page.Items[i-1].Price)
	}
}

func TestEngine_RelevanceFallbackKeepsMatcherOrder(t *testing.T) {
	engine, _ := newTestEngine(t, shoeIndex(), catalog.ProductConfig())

	ranked, err := engine.Search(context.Background(), catalog.Query{Text: "red shoe", Limit: 10})
	require.NoError(t, err)
	explicit, err := engine.Search(context.Background(), catalog.Query{
		Text: "red shoe", Sort: catalog.SortRelevance, Limit: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, ids(ranked.Items), ids(explicit.Items),
		"sort=relevance must equal the default order")
}

func TestEngine_CategoryFilterWithPriceSort(t *testing.T) {
	engine, _ := newTestEngine(t, shoeIndex(), catalog.ProductConfig())

	page, err := engine.Search(context.Background(), catalog.Query{
		CategorySlug: "footwear", Sort: catalog.SortPriceAsc,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, page.Total)
	assert.Equal(t, []string{"p1", "p2"}, ids(page.Items))
}

func TestEngine_MinPriceExcludesAll(t *testing.T) {
	engine, _ := newTestEngine(t, shoeIndex(), catalog.ProductConfig())

	page, err := engine.Search(context.Background(), catalog.Query{MinPrice: fptr(1000)})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Items)
}

func TestEngine_ShortQueryBypassesMatcher(t *testing.T) {
	engine, _ := newTestEngine(t, shoeIndex(), catalog.ProductConfig())

	// Below the product minimum query length of 2: unranked source order.
	page, err := engine.Search(context.Background(), catalog.Query{Text: "r", Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 3, page.Total)
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(page.Items))
}

func TestEngine_PaginationContract(t *testing.T) {
	engine, _ := newTestEngine(t, shoeIndex(), catalog.ProductConfig())

	tests := []struct {
		name          string
		limit, offset int
		wantItems     int
	}{
		{"first page", 2, 0, 2},
		{"second page", 2, 2, 1},
		{"past end", 2, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := engine.Search(context.Background(), catalog.Query{Limit: tt.limit, Offset: tt.offset})
			require.NoError(t, err)
			assert.Equal(t, 3, page.Total, "total is independent of limit/offset")
			assert.Len(t, page.Items, tt.wantItems)
		})
	}
}

func TestEngine_DefaultAndMaxLimit(t *testing.T) {
	recs := make([]catalog.Record, 150)
	for i := range recs {
		recs[i] = catalog.Record{ID: string(rune('a' + i%26))}
	}
	engine, _ := newTestEngine(t, recs, catalog.ProductConfig())

	page, err := engine.Search(context.Background(), catalog.Query{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 20, "default limit")
	assert.Equal(t, 150, page.Total)

	page, err = engine.Search(context.Background(), catalog.Query{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, page.Items, 100, "limit clamps to the configured max")
}

func TestEngine_WarmCacheSingleFetch(t *testing.T) {
	engine, calls := newTestEngine(t, shoeIndex(), catalog.ProductConfig())

	for i := 0; i < 5; i++ {
		_, err := engine.Search(context.Background(), catalog.Query{Text: "red"})
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), calls.Load(), "repeated searches within the TTL share one bulk read")
}

func TestEngine_InvalidateForcesRefetch(t *testing.T) {
	engine, calls := newTestEngine(t, shoeIndex(), catalog.ProductConfig())

	_, err := engine.Search(context.Background(), catalog.Query{})
	require.NoError(t, err)

	engine.Invalidate()

	_, err = engine.Search(context.Background(), catalog.Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestEngine_ValidationErrors(t *testing.T) {
	engine, _ := newTestEngine(t, shoeIndex(), catalog.ProductConfig())

	tests := []struct {
		name  string
		query catalog.Query
	}{
		{"negative min price", catalog.Query{MinPrice: fptr(-1)}},
		{"negative max price", catalog.Query{MaxPrice: fptr(-5)}},
		{"min above max", catalog.Query{MinPrice: fptr(100), MaxPrice: fptr(50)}},
		{"rating out of range", catalog.Query{MinRating: fptr(7)}},
		{"negative limit", catalog.Query{Limit: -1}},
		{"negative offset", catalog.Query{Offset: -1}},
		{"unknown sort", catalog.Query{Sort: "alphabetical"}},
		{"inverted dates", catalog.Query{
			DateFrom: tptr(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)),
			DateTo:   tptr(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Search(context.Background(), tt.query)
			require.Error(t, err)
			assert.True(t, errors.Is(err, cerr.ErrInvalidQuery))
		})
	}
}

func TestEngine_SourceFailureSurfaces(t *testing.T) {
	source := store.SourceFunc(func(ctx context.Context) ([]catalog.Record, error) {
		return nil, errors.New("connection refused")
	})
	cfg := catalog.ProductConfig()
	cache := index.NewCache(source, cfg.TTL, cfg.FetchTimeout)
	engine, err := NewEngine(cache, cfg)
	require.NoError(t, err)

	_, err = engine.Search(context.Background(), catalog.Query{Text: "red"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, cerr.ErrSourceUnavailable),
		"an outage must not masquerade as an empty result set")
}

func TestEngine_Suggest(t *testing.T) {
	engine, calls := newTestEngine(t, shoeIndex(), catalog.ProductConfig())

	items, err := engine.Suggest(context.Background(), "run", 0)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.Equal(t, "p1", items[0].ID)

	// Second identical call hits the memo, not the index.
	before := calls.Load()
	again, err := engine.Suggest(context.Background(), "run", 0)
	require.NoError(t, err)
	assert.Equal(t, ids(items), ids(again))
	assert.Equal(t, before, calls.Load())
}

func TestEngine_SuggestShortQuery(t *testing.T) {
	engine, _ := newTestEngine(t, shoeIndex(), catalog.ProductConfig())

	items, err := engine.Suggest(context.Background(), "r", 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestEngine_SuggestRespectsLimit(t *testing.T) {
	recs := []catalog.Record{
		{ID: "a", Title: "Trail Shoe Alpha"},
		{ID: "b", Title: "Trail Shoe Beta"},
		{ID: "c", Title: "Trail Shoe Gamma"},
	}
	engine, _ := newTestEngine(t, recs, catalog.ProductConfig())

	items, err := engine.Suggest(context.Background(), "trail shoe", 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestEngine_EventConfigSessionFiltering(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 10, d, 20, 0, 0, 0, time.UTC)
	}
	recs := []catalog.Record{
		{ID: "e1", Title: "Riverside Jazz Night", City: "Porto", Sessions: []catalog.Session{{ID: "s1", StartsAt: day(7)}}},
		{ID: "e2", Title: "Grand Hall Stand-up Gala", City: "Lisbon", Sessions: []catalog.Session{{ID: "s2", StartsAt: day(21)}}},
	}
	engine, _ := newTestEngine(t, recs, catalog.EventConfig())

	page, err := engine.Search(context.Background(), catalog.Query{
		DateFrom: tptr(day(1)), DateTo: tptr(day(10)),
	})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "e1", page.Items[0].ID)

	// City filter is case-insensitive.
	page, err = engine.Search(context.Background(), catalog.Query{City: "porto"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "e1", page.Items[0].ID)

	// Event text search with the tighter threshold.
	page, err = engine.Search(context.Background(), catalog.Query{Text: "jazz"})
	require.NoError(t, err)
	require.GreaterOrEqual(t, page.Total, 1)
	assert.Equal(t, "e1", page.Items[0].ID)
}
