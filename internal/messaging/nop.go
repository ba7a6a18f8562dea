package messaging

import (
	"context"

	"github.com/GoArmGo/MovieLibrary/internal/messaging/payloads"
)

// NopPublisher используется, когда RabbitMQ не настроен.
type NopPublisher struct{}

func (NopPublisher) PublishCatalogEvent(context.Context, payloads.CatalogEvent) error {
	return nil
}
