package facet_cache

import (
	"sync"
	"time"

	"github.com/Ginagitwhat123/PaganiniViolin/models"
)

const TTL = 5 * time.Minute

// ── Catalog facet cache ──────────────────────────────────────────────────────
// Stores category/brand counts plus the catalog price range. The facet
// endpoint reads from this; catalog-change events invalidate it.

type facetEntry struct {
	facets    models.CatalogFacets
	fetchedAt time.Time
}

var (
	facetMu    sync.RWMutex
	facetCache *facetEntry
)

func Get() (models.CatalogFacets, bool) {
	facetMu.RLock()
	defer facetMu.RUnlock()
	if facetCache != nil && time.Since(facetCache.fetchedAt) < TTL {
		return facetCache.facets, true
	}
	return models.CatalogFacets{}, false
}

func Set(facets models.CatalogFacets) {
	facetMu.Lock()
	defer facetMu.Unlock()
	facetCache = &facetEntry{facets: facets, fetchedAt: time.Now()}
}

// ── Invalidate (call on any product/category/brand change event) ─────────────

func Invalidate() {
	facetMu.Lock()
	facetCache = nil
	facetMu.Unlock()
}
