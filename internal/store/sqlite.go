package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/tripline/catsearch/internal/catalog"
	cerr "github.com/tripline/catsearch/internal/errors"
)

// Store is a SQLite-backed catalog store. It serves the bulk reads that
// build the product and event search indexes.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the catalog database at path.
// If path is empty, an in-memory database is used.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, cerr.New(cerr.ErrCodeStorageOpen, fmt.Sprintf("create directory %s", dir), err)
		}
		// WAL allows concurrent readers during writes.
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, cerr.New(cerr.ErrCodeStorageOpen, "open catalog database", err)
	}
	if path == "" {
		// Every pooled connection to ":memory:" would see its own empty
		// database; a single connection keeps the schema visible.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, cerr.New(cerr.ErrCodeStorageOpen, "ping catalog database", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for seeding and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ProductSource returns a Source serving the shop catalog.
func (s *Store) ProductSource() Source {
	return SourceFunc(s.FetchActiveProducts)
}

// EventSource returns a Source serving the entertainment catalog.
func (s *Store) EventSource() Source {
	return SourceFunc(s.FetchActiveEvents)
}

const productBulkQuery = `
SELECT p.id, p.slug, p.title, p.description,
       COALESCE(c.name, ''), COALESCE(c.slug, ''),
       COALESCE(b.name, ''), COALESCE(b.slug, ''),
       COALESCE(MIN(v.price), 0),
       p.rating, p.featured, p.created_at
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
LEFT JOIN brands b ON b.id = p.brand_id
LEFT JOIN product_variants v ON v.product_id = p.id
WHERE p.status = 'active'
GROUP BY p.id
ORDER BY p.created_at, p.id`

// FetchActiveProducts performs the bulk read for the product index.
// The representative price is the minimum variant price at read time,
// 0 when the product has no variants.
func (s *Store) FetchActiveProducts(ctx context.Context) ([]catalog.Record, error) {
	rows, err := s.db.QueryContext(ctx, productBulkQuery)
	if err != nil {
		return nil, cerr.StorageError("fetch active products", err)
	}
	defer rows.Close()

	var records []catalog.Record
	for rows.Next() {
		var (
			r         catalog.Record
			featured  int
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.Slug, &r.Title, &r.Description,
			&r.CategoryName, &r.CategorySlug, &r.BrandName, &r.BrandSlug,
			&r.Price, &r.Rating, &featured, &createdAt); err != nil {
			return nil, cerr.StorageError("scan product row", err)
		}
		r.Featured = featured != 0
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, cerr.StorageError("iterate product rows", err)
	}
	return records, nil
}

const eventBulkQuery = `
SELECT e.id, e.slug, e.title, e.description,
       COALESCE(c.name, ''), COALESCE(c.slug, ''),
       COALESCE(o.name, ''), COALESCE(o.slug, ''),
       COALESCE(vn.city, ''),
       e.rating, e.featured, e.created_at
FROM events e
LEFT JOIN categories c ON c.id = e.category_id
LEFT JOIN organizers o ON o.id = e.organizer_id
LEFT JOIN venues vn ON vn.id = e.venue_id
WHERE e.status = 'active'
ORDER BY e.created_at, e.id`

const sessionBulkQuery = `
SELECT s.id, s.event_id, s.starts_at,
       COALESCE(MIN(t.price), 0), COUNT(t.id)
FROM event_sessions s
JOIN events e ON e.id = s.event_id AND e.status = 'active'
LEFT JOIN session_tickets t ON t.session_id = s.id
GROUP BY s.id
ORDER BY s.starts_at, s.id`

// FetchActiveEvents performs the bulk read for the event index. Sessions
// are attached to their parent record so date filters can prune them, and
// the representative price is the minimum ticket price across all of an
// event's sessions (0 when no session has tickets).
func (s *Store) FetchActiveEvents(ctx context.Context) ([]catalog.Record, error) {
	rows, err := s.db.QueryContext(ctx, eventBulkQuery)
	if err != nil {
		return nil, cerr.StorageError("fetch active events", err)
	}
	defer rows.Close()

	var records []catalog.Record
	byID := make(map[string]int)
	for rows.Next() {
		var (
			r         catalog.Record
			featured  int
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.Slug, &r.Title, &r.Description,
			&r.CategoryName, &r.CategorySlug, &r.BrandName, &r.BrandSlug,
			&r.City, &r.Rating, &featured, &createdAt); err != nil {
			return nil, cerr.StorageError("scan event row", err)
		}
		r.Featured = featured != 0
		r.CreatedAt = parseTime(createdAt)
		byID[r.ID] = len(records)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, cerr.StorageError("iterate event rows", err)
	}

	srows, err := s.db.QueryContext(ctx, sessionBulkQuery)
	if err != nil {
		return nil, cerr.StorageError("fetch event sessions", err)
	}
	defer srows.Close()

	priced := make(map[string]bool)
	for srows.Next() {
		var (
			sess        catalog.Session
			eventID     string
			startsAt    string
			ticketCount int
		)
		if err := srows.Scan(&sess.ID, &eventID, &startsAt, &sess.MinTicketPrice, &ticketCount); err != nil {
			return nil, cerr.StorageError("scan session row", err)
		}
		sess.StartsAt = parseTime(startsAt)
		idx, ok := byID[eventID]
		if !ok {
			continue
		}
		records[idx].Sessions = append(records[idx].Sessions, sess)
		if ticketCount > 0 {
			if !priced[eventID] || sess.MinTicketPrice < records[idx].Price {
				records[idx].Price = sess.MinTicketPrice
			}
			priced[eventID] = true
		}
	}
	if err := srows.Err(); err != nil {
		return nil, cerr.StorageError("iterate session rows", err)
	}
	return records, nil
}

// parseTime handles the two timestamp layouts found in catalog rows.
func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
