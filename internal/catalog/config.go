package catalog

import "time"

// FieldWeights sets the relative contribution of each searchable field to
// the fuzzy relevance score. Title dominates; description is the weakest.
type FieldWeights struct {
	Title       float64 `yaml:"title" json:"title"`
	Category    float64 `yaml:"category" json:"category"`
	Brand       float64 `yaml:"brand" json:"brand"`
	City        float64 `yaml:"city" json:"city"`
	Description float64 `yaml:"description" json:"description"`
}

// Config carries the per-entity tunables of one search engine instance.
// The numeric defaults come from production tuning of the shop and events
// catalogs; none of them carry semantic significance beyond "cache briefly,
// match loosely" and all are overridable via the service config file.
type Config struct {
	// Entity names the catalog this engine serves ("products", "events").
	Entity string

	// Weights are the per-field fuzzy match weights.
	Weights FieldWeights

	// Threshold is the match looseness on a 0=exact..1=anything scale.
	// Matches whose normalized score falls below 1-Threshold are rejected.
	Threshold float64

	// MinQueryLen is the minimum query length for fuzzy matching.
	// Shorter queries bypass the matcher entirely.
	MinQueryLen int

	// TTL bounds index snapshot staleness.
	TTL time.Duration

	// FetchTimeout bounds the bulk read during an index rebuild.
	FetchTimeout time.Duration

	// DefaultLimit is the page size when the caller supplies none.
	DefaultLimit int

	// MaxLimit caps the page size.
	MaxLimit int

	// SuggestLimit is the default typeahead result count.
	SuggestLimit int

	// FilterSessions enables session-granular date-range filtering.
	FilterSessions bool
}

// ProductConfig returns the shop catalog configuration.
func ProductConfig() Config {
	return Config{
		Entity:       "products",
		Weights:      FieldWeights{Title: 2.0, Category: 0.9, Brand: 0.9, City: 0.8, Description: 0.5},
		Threshold:    0.4,
		MinQueryLen:  2,
		TTL:          5 * time.Minute,
		FetchTimeout: 10 * time.Second,
		DefaultLimit: 20,
		MaxLimit:     100,
		SuggestLimit: 8,
	}
}

// EventConfig returns the entertainment catalog configuration.
// Events match tighter than products and filter dates per session.
func EventConfig() Config {
	cfg := ProductConfig()
	cfg.Entity = "events"
	cfg.Threshold = 0.3
	cfg.MinQueryLen = 1
	cfg.FilterSessions = true
	return cfg
}

// Normalized returns the config with zero values replaced by entity
// defaults, so a partially populated config cannot yield empty pages.
func (c Config) Normalized() Config {
	def := ProductConfig()
	if c.Weights == (FieldWeights{}) {
		c.Weights = def.Weights
	}
	if c.Threshold <= 0 {
		c.Threshold = def.Threshold
	}
	if c.MinQueryLen <= 0 {
		c.MinQueryLen = def.MinQueryLen
	}
	if c.TTL <= 0 {
		c.TTL = def.TTL
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = def.FetchTimeout
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = def.DefaultLimit
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = def.MaxLimit
	}
	if c.SuggestLimit <= 0 {
		c.SuggestLimit = def.SuggestLimit
	}
	return c
}
