package cmd

import (
	"github.com/tripline/catsearch/internal/catalog"
	"github.com/tripline/catsearch/internal/index"
	"github.com/tripline/catsearch/internal/search"
	"github.com/tripline/catsearch/internal/store"
)

// openEngines opens the catalog store and builds one engine per catalog.
// The caller owns the store handle and must close it.
func openEngines() (*store.Store, map[string]*search.Engine, error) {
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}

	engines := make(map[string]*search.Engine, 2)
	for _, ent := range []struct {
		cfg    catalog.Config
		source store.Source
	}{
		{cfg.ProductConfig(), st.ProductSource()},
		{cfg.EventConfig(), st.EventSource()},
	} {
		cache := index.NewCache(ent.source, ent.cfg.TTL, ent.cfg.FetchTimeout)
		engine, err := search.NewEngine(cache, ent.cfg)
		if err != nil {
			_ = st.Close()
			return nil, nil, err
		}
		engines[ent.cfg.Entity] = engine
	}
	return st, engines, nil
}
