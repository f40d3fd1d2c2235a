package models

// CatalogFacets is the one-shot payload the storefront fetches to seed its
// filter sidebar: category/brand counts plus the catalog-wide price bounds.
type CatalogFacets struct {
	Categories []FacetOption `json:"categories"`
	Brands     []FacetOption `json:"brands"`
	PriceRange PriceRange    `json:"priceRange"`
}

// FacetOption is a single selectable filter value with its product count.
type FacetOption struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PriceRange carries the effective-price extremes over the entire catalog.
// The client treats these as immutable for the browsing session.
type PriceRange struct {
	MinPrice int `json:"min_price"`
	MaxPrice int `json:"max_price"`
}
