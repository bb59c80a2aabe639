package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tripline/catsearch/internal/catalog"
)

// go-playground/validator: bounds checks on decoded query parameters.
var validate = validator.New()

// searchParams mirrors the query string of GET /api/{entity}/search.
type searchParams struct {
	Query     string   `validate:"omitempty,max=200"`
	Category  string   `validate:"omitempty,max=100"`
	Brand     string   `validate:"omitempty,max=100"`
	MinPrice  *float64 `validate:"omitempty,gte=0"`
	MaxPrice  *float64 `validate:"omitempty,gte=0"`
	MinRating *float64 `validate:"omitempty,gte=0,lte=5"`
	City      string   `validate:"omitempty,max=100"`
	Featured  *bool
	DateFrom  *time.Time
	DateTo    *time.Time
	Sort      string `validate:"omitempty,oneof=relevance newest price_asc price_desc rating date"`
	Limit     int    `validate:"gte=0,lte=100"`
	Offset    int    `validate:"gte=0"`
}

// parseSearchParams decodes and validates the request query string.
func parseSearchParams(r *http.Request) (catalog.Query, error) {
	q := r.URL.Query()
	p := searchParams{
		Query:    q.Get("query"),
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		City:     q.Get("city"),
		Sort:     q.Get("sort"),
	}

	var err error
	if p.MinPrice, err = parseFloat(q.Get("min_price"), "min_price"); err != nil {
		return catalog.Query{}, err
	}
	if p.MaxPrice, err = parseFloat(q.Get("max_price"), "max_price"); err != nil {
		return catalog.Query{}, err
	}
	if p.MinRating, err = parseFloat(q.Get("min_rating"), "min_rating"); err != nil {
		return catalog.Query{}, err
	}
	if p.Featured, err = parseBool(q.Get("featured"), "featured"); err != nil {
		return catalog.Query{}, err
	}
	if p.DateFrom, err = parseDate(q.Get("date_from"), "date_from"); err != nil {
		return catalog.Query{}, err
	}
	if p.DateTo, err = parseDate(q.Get("date_to"), "date_to"); err != nil {
		return catalog.Query{}, err
	}
	if p.Limit, err = parseInt(q.Get("limit"), "limit"); err != nil {
		return catalog.Query{}, err
	}
	if p.Offset, err = parseInt(q.Get("offset"), "offset"); err != nil {
		return catalog.Query{}, err
	}

	if err := validate.Struct(p); err != nil {
		return catalog.Query{}, fmt.Errorf("invalid parameters: %w", err)
	}

	return catalog.Query{
		Text:         p.Query,
		CategorySlug: p.Category,
		BrandSlug:    p.Brand,
		MinPrice:     p.MinPrice,
		MaxPrice:     p.MaxPrice,
		MinRating:    p.MinRating,
		City:         p.City,
		Featured:     p.Featured,
		DateFrom:     p.DateFrom,
		DateTo:       p.DateTo,
		Sort:         catalog.SortKey(p.Sort),
		Limit:        p.Limit,
		Offset:       p.Offset,
	}, nil
}

func parseFloat(s, name string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &v, nil
}

func parseInt(s, name string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func parseBool(s, name string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false", name)
	}
	return &v, nil
}

// parseDate accepts RFC 3339 timestamps or bare dates (2006-01-02).
func parseDate(s, name string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("%s must be an RFC 3339 timestamp or YYYY-MM-DD date", name)
}
