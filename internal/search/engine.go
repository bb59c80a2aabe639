package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tripline/catsearch/internal/catalog"
	cerr "github.com/tripline/catsearch/internal/errors"
	"github.com/tripline/catsearch/internal/index"
)

// suggestCacheSize bounds the typeahead memo. Entries expire with the
// index TTL so suggestions never outlive the snapshot they came from.
const suggestCacheSize = 256

// Engine is the query facade for one catalog. It binds the index cache,
// the fuzzy matcher, and the filter/sort/paginate pipeline into a single
// entry point. Construct one per entity type and share it between
// handlers; all methods are safe for concurrent use.
type Engine struct {
	cfg     catalog.Config
	cache   *index.Cache
	suggest *expirable.LRU[string, []catalog.Record]
}

// NewEngine creates an engine over the given cache with the entity's
// tunables. Returns an error when the cache is nil.
func NewEngine(cache *index.Cache, cfg catalog.Config) (*Engine, error) {
	if cache == nil {
		return nil, cerr.InternalError("engine requires an index cache", nil)
	}
	cfg = cfg.Normalized()
	return &Engine{
		cfg:     cfg,
		cache:   cache,
		suggest: expirable.NewLRU[string, []catalog.Record](suggestCacheSize, nil, cfg.TTL),
	}, nil
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() catalog.Config {
	return e.cfg
}

// Search executes a structured query: obtain the index, fuzzy-rank when
// query text is present, filter, sort, paginate. Total reflects the full
// filtered count, not the page size.
func (e *Engine) Search(ctx context.Context, q catalog.Query) (catalog.Page, error) {
	if err := e.validate(q); err != nil {
		return catalog.Page{}, err
	}
	q = e.normalize(q)

	records, err := e.cache.Get(ctx)
	if err != nil {
		return catalog.Page{}, err
	}

	start := time.Now()

	text := strings.TrimSpace(q.Text)
	candidates := records
	ranked := false
	if len([]rune(text)) >= e.cfg.MinQueryLen {
		candidates = rank(text, records, searchFields(e.cfg.Weights), e.cfg.Threshold)
		ranked = true
	}

	filtered := applyFilters(candidates, q, e.cfg.FilterSessions)

	// Explicit non-relevance sort replaces relevance order. Relevance
	// without ranked candidates degrades to source order.
	if q.Sort != catalog.SortRelevance {
		applySort(filtered, q.Sort)
	}

	page := catalog.Page{
		Items: paginate(filtered, q.Limit, q.Offset),
		Total: len(filtered),
	}

	slog.Debug("search executed",
		slog.String("entity", e.cfg.Entity),
		slog.Bool("ranked", ranked),
		slog.Int("total", page.Total),
		slog.Duration("took", time.Since(start)))
	return page, nil
}

// Suggest returns the top fuzzy matches on name-like fields for the
// typeahead. No filtering, sorting, or pagination runs; queries shorter
// than the entity minimum yield no suggestions. Results are memoized per
// query until the index TTL elapses or the cache is invalidated.
func (e *Engine) Suggest(ctx context.Context, query string, limit int) ([]catalog.Record, error) {
	text := strings.TrimSpace(query)
	if len([]rune(text)) < e.cfg.MinQueryLen {
		return []catalog.Record{}, nil
	}
	if limit <= 0 {
		limit = e.cfg.SuggestLimit
	}
	if limit > e.cfg.MaxLimit {
		limit = e.cfg.MaxLimit
	}

	key := fmt.Sprintf("%s|%d", strings.ToLower(text), limit)
	if hit, ok := e.suggest.Get(key); ok {
		return hit, nil
	}

	records, err := e.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	ranked := rank(text, records, nameFields(e.cfg.Weights), e.cfg.Threshold)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	e.suggest.Add(key, ranked)
	return ranked, nil
}

// Invalidate drops the index snapshot and the suggestion memo, forcing
// the next query to rebuild from the backing store.
func (e *Engine) Invalidate() {
	e.cache.Invalidate()
	e.suggest.Purge()
}

// validate rejects malformed parameters before any work happens, so a
// bad request cannot surface as a runtime panic deeper in the pipeline.
func (e *Engine) validate(q catalog.Query) error {
	if q.MinPrice != nil && *q.MinPrice < 0 {
		return cerr.QueryError("min_price must not be negative")
	}
	if q.MaxPrice != nil && *q.MaxPrice < 0 {
		return cerr.QueryError("max_price must not be negative")
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return cerr.QueryError("min_price must not exceed max_price")
	}
	if q.MinRating != nil && (*q.MinRating < 0 || *q.MinRating > 5) {
		return cerr.QueryError("min_rating must be between 0 and 5")
	}
	if q.DateFrom != nil && q.DateTo != nil && q.DateFrom.After(*q.DateTo) {
		return cerr.QueryError("date_from must not be after date_to")
	}
	if q.Limit < 0 {
		return cerr.QueryError("limit must not be negative")
	}
	if q.Offset < 0 {
		return cerr.QueryError("offset must not be negative")
	}
	if !q.Sort.Valid() {
		return cerr.QueryError(fmt.Sprintf("unknown sort key %q", q.Sort))
	}
	return nil
}

// normalize applies defaults and clamps the page size.
func (e *Engine) normalize(q catalog.Query) catalog.Query {
	if q.Sort == "" {
		q.Sort = catalog.SortRelevance
	}
	if q.Limit == 0 {
		q.Limit = e.cfg.DefaultLimit
	}
	if q.Limit > e.cfg.MaxLimit {
		q.Limit = e.cfg.MaxLimit
	}
	return q
}
