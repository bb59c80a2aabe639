package search

import (
	"sort"
	"strings"

	"github.com/tripline/catsearch/internal/catalog"
)

// applyFilters runs the exact-match predicates over the candidate list in
// sequence, each independently eliminating non-matching records. The
// input records are not mutated; date pruning copies the session slice.
func applyFilters(records []catalog.Record, q catalog.Query, filterSessions bool) []catalog.Record {
	out := make([]catalog.Record, 0, len(records))
	for _, rec := range records {
		if q.CategorySlug != "" && rec.CategorySlug != q.CategorySlug {
			continue
		}
		if q.BrandSlug != "" && rec.BrandSlug != q.BrandSlug {
			continue
		}
		if q.MinPrice != nil && rec.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && rec.Price > *q.MaxPrice {
			continue
		}
		if q.MinRating != nil && rec.Rating < *q.MinRating {
			continue
		}
		if q.City != "" && !strings.EqualFold(rec.City, q.City) {
			continue
		}
		if q.Featured != nil && rec.Featured != *q.Featured {
			continue
		}
		if filterSessions && (q.DateFrom != nil || q.DateTo != nil) {
			pruned := pruneSessions(rec.Sessions, q)
			if len(pruned) == 0 {
				continue
			}
			rec.Sessions = pruned
		}
		out = append(out, rec)
	}
	return out
}

// pruneSessions returns the sessions within the inclusive date range.
func pruneSessions(sessions []catalog.Session, q catalog.Query) []catalog.Session {
	kept := make([]catalog.Session, 0, len(sessions))
	for _, s := range sessions {
		if q.DateFrom != nil && s.StartsAt.Before(*q.DateFrom) {
			continue
		}
		if q.DateTo != nil && s.StartsAt.After(*q.DateTo) {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

// applySort reorders records by the explicit sort key. Relevance is not a
// re-sort: with query text it preserves the matcher's order, without it
// the source order, so both cases are a no-op here. Stable sorts keep the
// incoming order on ties.
func applySort(records []catalog.Record, key catalog.SortKey) {
	switch key {
	case catalog.SortNewest:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		})
	case catalog.SortPriceAsc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Price < records[j].Price
		})
	case catalog.SortPriceDesc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Price > records[j].Price
		})
	case catalog.SortRating:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Rating > records[j].Rating
		})
	case catalog.SortDate:
		sort.SliceStable(records, func(i, j int) bool {
			a, b := records[i].NextSessionAt(), records[j].NextSessionAt()
			if a.IsZero() {
				return false
			}
			if b.IsZero() {
				return true
			}
			return a.Before(b)
		})
	}
}

// paginate slices records by offset/limit. Offsets at or past the end
// yield an empty page.
func paginate(records []catalog.Record, limit, offset int) []catalog.Record {
	if offset >= len(records) {
		return []catalog.Record{}
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
