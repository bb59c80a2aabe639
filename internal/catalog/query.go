package catalog

import "time"

// SortKey selects the explicit ordering of search results.
type SortKey string

const (
	// SortRelevance keeps fuzzy-match order when query text is present,
	// and source order otherwise. This is the default.
	SortRelevance SortKey = "relevance"
	// SortNewest orders by creation time, newest first.
	SortNewest SortKey = "newest"
	// SortPriceAsc orders by price, cheapest first.
	SortPriceAsc SortKey = "price_asc"
	// SortPriceDesc orders by price, most expensive first.
	SortPriceDesc SortKey = "price_desc"
	// SortRating orders by rating, best first.
	SortRating SortKey = "rating"
	// SortDate orders events by their earliest session, soonest first.
	SortDate SortKey = "date"
)

// Valid reports whether s is a recognized sort key. The empty key is
// valid and treated as SortRelevance.
func (s SortKey) Valid() bool {
	switch s {
	case "", SortRelevance, SortNewest, SortPriceAsc, SortPriceDesc, SortRating, SortDate:
		return true
	}
	return false
}

// Query holds all parameters for one search request. All fields are
// optional; pointer fields distinguish "absent" from zero values.
type Query struct {
	// Text is the free-text query for fuzzy matching.
	Text string `json:"query,omitempty"`

	// CategorySlug filters by exact category slug.
	CategorySlug string `json:"category,omitempty"`

	// BrandSlug filters by exact brand/organizer slug.
	BrandSlug string `json:"brand,omitempty"`

	// MinPrice is an inclusive lower price bound.
	MinPrice *float64 `json:"min_price,omitempty"`

	// MaxPrice is an inclusive upper price bound.
	MaxPrice *float64 `json:"max_price,omitempty"`

	// MinRating is an inclusive lower rating bound.
	MinRating *float64 `json:"min_rating,omitempty"`

	// City filters by venue city, case-insensitive.
	City string `json:"city,omitempty"`

	// Featured filters by the featured flag.
	Featured *bool `json:"featured,omitempty"`

	// DateFrom/DateTo bound session dates (inclusive). Sessions outside
	// the range are pruned; parents left sessionless are dropped.
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Sort selects explicit ordering; empty means relevance.
	Sort SortKey `json:"sort,omitempty"`

	// Limit is the page size. 0 means the entity default (20).
	Limit int `json:"limit,omitempty"`

	// Offset is the number of filtered records to skip.
	Offset int `json:"offset,omitempty"`
}

// Page is one page of search results plus the full filtered count.
type Page struct {
	// Items is the page slice after filtering, sorting, and pagination.
	Items []Record `json:"items"`

	// Total is the count of all records passing the filters,
	// independent of Limit and Offset.
	Total int `json:"total"`
}
