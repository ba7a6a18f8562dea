package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/MovieLibrary/internal/messaging/payloads"
)

// EventPublisher публикует события об изменениях каталога.
// Реализации: rabbitmq.Client и messaging.NopPublisher.
type EventPublisher interface {
	PublishCatalogEvent(ctx context.Context, event payloads.CatalogEvent) error
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO).
// Используется для постеров фильмов.
type FileStorage interface {
	// UploadFile загружает файл и возвращает его публичный URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}
