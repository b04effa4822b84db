package ports

import (
	"context"

	"github.com/motorpool/vehicle-registry/internal/core/domain"
)

// CreateVehicleInput carries the fields for a new vehicle. Values are
// normalized in place (trimmed, plate uppercased) before validation runs.
type CreateVehicleInput struct {
	Plate  string `validate:"required,plate"`
	Make   string `validate:"required,min=2"`
	Model  string `validate:"required,min=3"`
	Color  string `validate:"required,min=3"`
	Status string `validate:"oneof=Active Inactive"`

	// Actor is the authenticated username recorded in the audit trail.
	Actor string `validate:"-"`
}

// UpdateVehicleInput carries a partial update. Nil fields are left unchanged;
// non-nil fields must pass the same rules as on create.
type UpdateVehicleInput struct {
	Plate  *string `validate:"omitnil,plate"`
	Make   *string `validate:"omitnil,min=2"`
	Model  *string `validate:"omitnil,min=3"`
	Color  *string `validate:"omitnil,min=3"`
	Status *string `validate:"omitnil,oneof=Active Inactive"`

	Actor string `validate:"-"`
}

// VehicleService is the registry's operation surface.
type VehicleService interface {
	Create(ctx context.Context, in CreateVehicleInput) (*domain.Vehicle, error)
	List(ctx context.Context, offset, limit int64) ([]*domain.Vehicle, int64, error)
	Get(ctx context.Context, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, id int64, in UpdateVehicleInput) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int64, actor string) error
}
