package consumers

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	facet_cache "github.com/Ginagitwhat123/PaganiniViolin/cache"
	"github.com/Ginagitwhat123/PaganiniViolin/models"
	"github.com/Ginagitwhat123/PaganiniViolin/rabbitmq"
)

// StartCatalogConsumer listens for catalog-change events and drops the
// facet cache so the next facet request sees fresh counts and price bounds.
func StartCatalogConsumer(ch *amqp.Channel) {
	msgs, err := ch.Consume(
		rabbitmq.CatalogQueue,
		"storefront-catalog", // consumer tag
		false,                // auto-ack
		false,                // exclusive
		false,                // no-local
		false,                // no-wait
		nil,
	)
	if err != nil {
		log.Printf("Failed to register catalog consumer: %v", err)
		return
	}

	go func() {
		for msg := range msgs {
			processCatalogMessage(msg)
			msg.Ack(false)
		}
	}()
}

func processCatalogMessage(msg amqp.Delivery) {
	var event models.CatalogEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Failed to unmarshal catalog event: %v", err)
		return
	}

	switch event.EventType {
	case models.EventProductCreated, models.EventProductUpdated, models.EventProductDeleted:
		log.Printf("Catalog change (%s, product %d), invalidating facet cache", event.EventType, event.ProductID)
		facet_cache.Invalidate()
	case models.EventCategoryChanged, models.EventBrandChanged:
		log.Printf("Catalog change (%s), invalidating facet cache", event.EventType)
		facet_cache.Invalidate()
	default:
		log.Printf("Unknown catalog event type: %s", event.EventType)
	}
}
