package ports

import (
	"context"

	"github.com/motorpool/vehicle-registry/internal/core/domain"
)

// EventRepository persists the registry's audit trail.
type EventRepository interface {
	Insert(ctx context.Context, e *domain.RegistryEvent) error
	// ListRecent returns up to limit events, newest first.
	ListRecent(ctx context.Context, limit int64) ([]*domain.RegistryEvent, error)
}

// AuditService processes a single registry event, typically off the request
// path via the queue dispatcher.
type AuditService interface {
	Process(ctx context.Context, e domain.RegistryEvent) error
}
