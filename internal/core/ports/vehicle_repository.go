package ports

import (
	"context"

	"github.com/motorpool/vehicle-registry/internal/core/domain"
)

// VehicleRepository defines persistence operations for vehicles.
//
// Uniqueness of the plate attribute is enforced by the storage engine, not by
// the caller: Insert and Update must reject a colliding plate atomically and
// return *domain.ConflictError, so two concurrent writes for the same plate
// resolve to exactly one success.
type VehicleRepository interface {
	// Insert assigns a monotonically increasing id to v and stores it.
	Insert(ctx context.Context, v *domain.Vehicle) error
	FindByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	// List returns the page [offset, offset+limit) in insertion order and
	// the total count independent of the pagination window.
	List(ctx context.Context, offset, limit int64) ([]*domain.Vehicle, int64, error)
	// Update replaces the stored fields of the vehicle with v.ID.
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id int64) error
}
