package models

import (
	"encoding/json"
	"time"
)

// Catalog change events published by the CMS side. The storefront only
// consumes them to drop stale facet data.
const (
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
	EventCategoryChanged = "category.changed"
	EventBrandChanged    = "brand.changed"
)

type CatalogEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	ProductID int       `json:"product_id,omitempty"`
}

func (e *CatalogEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
