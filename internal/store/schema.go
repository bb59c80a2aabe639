package store

import (
	"context"
	"fmt"
)

// schemaDDL creates the catalog tables. Timestamps are stored as RFC 3339
// text; prices as REAL; the featured flag as INTEGER 0/1.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS categories (
    id   TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS brands (
    id   TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS organizers (
    id   TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS venues (
    id   TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    city TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
    id          TEXT PRIMARY KEY,
    slug        TEXT NOT NULL UNIQUE,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category_id TEXT REFERENCES categories(id),
    brand_id    TEXT REFERENCES brands(id),
    rating      REAL NOT NULL DEFAULT 0,
    featured    INTEGER NOT NULL DEFAULT 0,
    status      TEXT NOT NULL DEFAULT 'active',
    created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS product_variants (
    id         TEXT PRIMARY KEY,
    product_id TEXT NOT NULL REFERENCES products(id),
    name       TEXT NOT NULL DEFAULT '',
    price      REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
    id           TEXT PRIMARY KEY,
    slug         TEXT NOT NULL UNIQUE,
    title        TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    category_id  TEXT REFERENCES categories(id),
    organizer_id TEXT REFERENCES organizers(id),
    venue_id     TEXT REFERENCES venues(id),
    rating       REAL NOT NULL DEFAULT 0,
    featured     INTEGER NOT NULL DEFAULT 0,
    status       TEXT NOT NULL DEFAULT 'active',
    created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS event_sessions (
    id        TEXT PRIMARY KEY,
    event_id  TEXT NOT NULL REFERENCES events(id),
    starts_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS session_tickets (
    id         TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES event_sessions(id),
    name       TEXT NOT NULL DEFAULT '',
    price      REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_products_status ON products(status);
CREATE INDEX IF NOT EXISTS idx_events_status ON events(status);
CREATE INDEX IF NOT EXISTS idx_variants_product ON product_variants(product_id);
CREATE INDEX IF NOT EXISTS idx_sessions_event ON event_sessions(event_id);
CREATE INDEX IF NOT EXISTS idx_tickets_session ON session_tickets(session_id);
`

// InitSchema creates all catalog tables if they do not exist.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
