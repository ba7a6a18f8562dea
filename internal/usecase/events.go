package usecase

import (
	"context"
	"log/slog"

	"github.com/GoArmGo/MovieLibrary/internal/core/ports"
	"github.com/GoArmGo/MovieLibrary/internal/messaging/payloads"
)

// notifier публикует события каталога. Ошибка публикации не отменяет операцию.
type notifier struct {
	events ports.EventPublisher
	logger *slog.Logger
}

func (n notifier) publish(ctx context.Context, entity, action string, entityID, actorID uint) {
	event := payloads.NewCatalogEvent(entity, action, entityID, actorID)
	if err := n.events.PublishCatalogEvent(ctx, event); err != nil {
		n.logger.Error("failed to publish catalog event",
			"event_id", event.ID,
			"entity", entity,
			"action", action,
			"entity_id", entityID,
			"error", err,
		)
	}
}
