package store

import (
	"context"
	"fmt"
	"time"
)

// Seed populates the store with a small demo catalog. It is idempotent:
// rows carry fixed ids and are inserted with INSERT OR IGNORE.
func (s *Store) Seed(ctx context.Context) error {
	now := time.Now().UTC()
	ts := func(daysAgo int) string {
		return now.AddDate(0, 0, -daysAgo).Format(time.RFC3339)
	}
	future := func(days int) string {
		return now.AddDate(0, 0, days).Format(time.RFC3339)
	}

	stmts := []struct {
		q    string
		args []any
	}{
		{`INSERT OR IGNORE INTO categories (id, slug, name) VALUES (?, ?, ?)`, []any{"cat-footwear", "footwear", "Footwear"}},
		{`INSERT OR IGNORE INTO categories (id, slug, name) VALUES (?, ?, ?)`, []any{"cat-bags", "bags", "Bags"}},
		{`INSERT OR IGNORE INTO categories (id, slug, name) VALUES (?, ?, ?)`, []any{"cat-music", "music", "Live Music"}},
		{`INSERT OR IGNORE INTO categories (id, slug, name) VALUES (?, ?, ?)`, []any{"cat-comedy", "comedy", "Comedy"}},

		{`INSERT OR IGNORE INTO brands (id, slug, name) VALUES (?, ?, ?)`, []any{"br-trailhead", "trailhead", "Trailhead"}},
		{`INSERT OR IGNORE INTO brands (id, slug, name) VALUES (?, ?, ?)`, []any{"br-urbanpack", "urbanpack", "UrbanPack"}},

		{`INSERT OR IGNORE INTO organizers (id, slug, name) VALUES (?, ?, ?)`, []any{"org-nightowl", "nightowl", "Night Owl Productions"}},
		{`INSERT OR IGNORE INTO venues (id, name, city) VALUES (?, ?, ?)`, []any{"ven-grandhall", "Grand Hall", "Lisbon"}},
		{`INSERT OR IGNORE INTO venues (id, name, city) VALUES (?, ?, ?)`, []any{"ven-riverside", "Riverside Stage", "Porto"}},

		{`INSERT OR IGNORE INTO products (id, slug, title, description, category_id, brand_id, rating, featured, status, created_at)
		  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"prd-running-shoe", "red-running-shoe", "Red Running Shoe", "Lightweight road running shoe with breathable mesh.", "cat-footwear", "br-trailhead", 4.2, 0, "active", ts(30)}},
		{`INSERT OR IGNORE INTO products (id, slug, title, description, category_id, brand_id, rating, featured, status, created_at)
		  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"prd-hiking-boot", "red-hiking-boot", "Red Hiking Boot", "Waterproof boot for alpine trails.", "cat-footwear", "br-trailhead", 3.9, 0, "active", ts(20)}},
		{`INSERT OR IGNORE INTO products (id, slug, title, description, category_id, brand_id, rating, featured, status, created_at)
		  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"prd-backpack", "blue-backpack", "Blue Backpack", "30L daypack with laptop sleeve.", "cat-bags", "br-urbanpack", 4.5, 1, "active", ts(10)}},
		{`INSERT OR IGNORE INTO products (id, slug, title, description, category_id, brand_id, rating, featured, status, created_at)
		  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"prd-retired", "retired-sandal", "Retired Sandal", "No longer sold.", "cat-footwear", "br-trailhead", 2.0, 0, "archived", ts(400)}},

		{`INSERT OR IGNORE INTO product_variants (id, product_id, name, price) VALUES (?, ?, ?, ?)`, []any{"var-shoe-42", "prd-running-shoe", "EU 42", 50}},
		{`INSERT OR IGNORE INTO product_variants (id, product_id, name, price) VALUES (?, ?, ?, ?)`, []any{"var-shoe-44", "prd-running-shoe", "EU 44", 55}},
		{`INSERT OR IGNORE INTO product_variants (id, product_id, name, price) VALUES (?, ?, ?, ?)`, []any{"var-boot-42", "prd-hiking-boot", "EU 42", 80}},
		{`INSERT OR IGNORE INTO product_variants (id, product_id, name, price) VALUES (?, ?, ?, ?)`, []any{"var-pack-std", "prd-backpack", "Standard", 60}},

		{`INSERT OR IGNORE INTO events (id, slug, title, description, category_id, organizer_id, venue_id, rating, featured, status, created_at)
		  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"evt-jazz-night", "riverside-jazz-night", "Riverside Jazz Night", "An evening of modern jazz by the river.", "cat-music", "org-nightowl", "ven-riverside", 4.7, 1, "active", ts(15)}},
		{`INSERT OR IGNORE INTO events (id, slug, title, description, category_id, organizer_id, venue_id, rating, featured, status, created_at)
		  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"evt-standup", "grand-hall-standup", "Grand Hall Stand-up Gala", "Five comedians, one stage.", "cat-comedy", "org-nightowl", "ven-grandhall", 4.1, 0, "active", ts(5)}},

		{`INSERT OR IGNORE INTO event_sessions (id, event_id, starts_at) VALUES (?, ?, ?)`, []any{"ses-jazz-1", "evt-jazz-night", future(7)}},
		{`INSERT OR IGNORE INTO event_sessions (id, event_id, starts_at) VALUES (?, ?, ?)`, []any{"ses-jazz-2", "evt-jazz-night", future(14)}},
		{`INSERT OR IGNORE INTO event_sessions (id, event_id, starts_at) VALUES (?, ?, ?)`, []any{"ses-standup-1", "evt-standup", future(3)}},

		{`INSERT OR IGNORE INTO session_tickets (id, session_id, name, price) VALUES (?, ?, ?, ?)`, []any{"tkt-jazz-1-ga", "ses-jazz-1", "General", 25}},
		{`INSERT OR IGNORE INTO session_tickets (id, session_id, name, price) VALUES (?, ?, ?, ?)`, []any{"tkt-jazz-2-ga", "ses-jazz-2", "General", 30}},
		{`INSERT OR IGNORE INTO session_tickets (id, session_id, name, price) VALUES (?, ?, ?, ?)`, []any{"tkt-standup-ga", "ses-standup-1", "General", 18}},
		{`INSERT OR IGNORE INTO session_tickets (id, session_id, name, price) VALUES (?, ?, ?, ?)`, []any{"tkt-standup-vip", "ses-standup-1", "Front Row", 40}},
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, st := range stmts {
		if _, err := tx.ExecContext(ctx, st.q, st.args...); err != nil {
			return fmt.Errorf("seed insert: %w", err)
		}
	}
	return tx.Commit()
}
