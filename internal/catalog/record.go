// Package catalog defines the denormalized index records and query types
// shared by the product and event search engines.
//
// A Record is a read-optimized projection of a catalog entity and its most
// commonly filtered relations, flattened at index-build time. Records are
// immutable once built; index rebuilds replace the whole slice.
package catalog

import "time"

// Record is one denormalized entry in the in-memory search index.
type Record struct {
	// ID is the opaque unique identifier of the canonical entity.
	ID string `json:"id"`

	// Slug is the URL-safe identifier used in page routes.
	Slug string `json:"slug"`

	// Title is the display name and the primary relevance signal.
	Title string `json:"title"`

	// Description is free text, the weakest relevance signal.
	Description string `json:"description"`

	// CategoryName is the category display name (fuzzy-searchable).
	CategoryName string `json:"category_name"`

	// CategorySlug is the category foreign key (exact filtering only).
	CategorySlug string `json:"category_slug"`

	// BrandName is the brand (products) or organizer (events) display name.
	BrandName string `json:"brand_name"`

	// BrandSlug is the brand/organizer foreign key (exact filtering only).
	BrandSlug string `json:"brand_slug"`

	// City is the venue city for events; empty for products.
	City string `json:"city,omitempty"`

	// Price is the minimum price across the entity's variants or session
	// tickets, computed at index-build time. 0 when no price points exist.
	Price float64 `json:"price"`

	// Rating is the average review rating.
	Rating float64 `json:"rating"`

	// Featured marks editorially promoted entities.
	Featured bool `json:"featured"`

	// CreatedAt is the canonical entity's creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// Sessions holds the event's dated sessions; nil for products.
	// Retained so date-range filters can prune at session granularity
	// and drop the parent when no session survives.
	Sessions []Session `json:"sessions,omitempty"`
}

// Session is a dated occurrence of an event with its cheapest ticket.
type Session struct {
	ID       string    `json:"id"`
	StartsAt time.Time `json:"starts_at"`
	// MinTicketPrice is the minimum ticket price for this session.
	MinTicketPrice float64 `json:"min_ticket_price"`
}

// NextSessionAt returns the earliest session start, or the zero time when
// the record has no sessions. Used for date-based sorting of events.
func (r *Record) NextSessionAt() time.Time {
	var min time.Time
	for _, s := range r.Sessions {
		if min.IsZero() || s.StartsAt.Before(min) {
			min = s.StartsAt
		}
	}
	return min
}
