package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortKeyValid(t *testing.T) {
	for _, key := range []SortKey{"", SortRelevance, SortNewest, SortPriceAsc, SortPriceDesc, SortRating, SortDate} {
		assert.True(t, key.Valid(), string(key))
	}
	assert.False(t, SortKey("alphabetical").Valid())
}

func TestNextSessionAt(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
	}

	r := Record{Sessions: []Session{{StartsAt: day(20)}, {StartsAt: day(5)}, {StartsAt: day(12)}}}
	assert.Equal(t, day(5), r.NextSessionAt())

	empty := Record{}
	assert.True(t, empty.NextSessionAt().IsZero())
}

func TestNormalized_FillsZeroValues(t *testing.T) {
	cfg := Config{Entity: "products"}.Normalized()

	def := ProductConfig()
	assert.Equal(t, def.Weights, cfg.Weights)
	assert.Equal(t, def.Threshold, cfg.Threshold)
	assert.Equal(t, def.TTL, cfg.TTL)
	assert.Equal(t, def.DefaultLimit, cfg.DefaultLimit)
}

func TestNormalized_KeepsExplicitValues(t *testing.T) {
	in := EventConfig()
	in.Threshold = 0.25
	in.DefaultLimit = 10

	cfg := in.Normalized()
	assert.Equal(t, 0.25, cfg.Threshold)
	assert.Equal(t, 10, cfg.DefaultLimit)
	assert.True(t, cfg.FilterSessions)
}
