package payloads

import (
	"time"

	"github.com/google/uuid"
)

// Действия над сущностями каталога.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionCleared = "cleared"
)

// CatalogEvent описывает изменение сущности каталога и публикуется в RabbitMQ.
type CatalogEvent struct {
	ID         uuid.UUID `json:"id"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	EntityID   uint      `json:"entity_id"`
	ActorID    uint      `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewCatalogEvent заполняет идентификатор и время события.
func NewCatalogEvent(entity, action string, entityID, actorID uint) CatalogEvent {
	return CatalogEvent{
		ID:         uuid.New(),
		Entity:     entity,
		Action:     action,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
}
