package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/motorpool/vehicle-registry/internal/api/metrics"
	"github.com/motorpool/vehicle-registry/internal/core/domain"
	"github.com/motorpool/vehicle-registry/internal/core/ports"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

// AuditSink receives registry events for asynchronous recording.
type AuditSink interface {
	Enqueue(e domain.RegistryEvent)
}

// VehicleService implements the registry operations over a repository that
// owns the plate-uniqueness guarantee.
type VehicleService struct {
	repo   ports.VehicleRepository
	fields *FieldValidator
	audit  AuditSink
	logger zerolog.Logger
}

// NewVehicleService builds a VehicleService. audit may be nil, in which case
// no trail is recorded.
func NewVehicleService(repo ports.VehicleRepository, audit AuditSink, logger zerolog.Logger) *VehicleService {
	return &VehicleService{
		repo:   repo,
		fields: NewFieldValidator(),
		audit:  audit,
		logger: logger,
	}
}

func (s *VehicleService) Create(ctx context.Context, in ports.CreateVehicleInput) (*domain.Vehicle, error) {
	if err := s.fields.ValidateCreate(&in); err != nil {
		return nil, err
	}

	v := &domain.Vehicle{
		Plate:     in.Plate,
		Make:      in.Make,
		Model:     in.Model,
		Color:     in.Color,
		Status:    in.Status,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, v); err != nil {
		var ce *domain.ConflictError
		if errors.As(err, &ce) {
			metrics.PlateConflictsTotal.WithLabelValues("create").Inc()
			s.logger.Info().Str("plate", in.Plate).Msg("create rejected: plate already registered")
		} else {
			s.logger.Error().Err(err).Str("plate", in.Plate).Msg("failed to insert vehicle")
		}
		return nil, err
	}

	metrics.VehiclesCreatedTotal.WithLabelValues(v.Status).Inc()
	s.logger.Info().Int64("id", v.ID).Str("plate", v.Plate).Msg("vehicle created")
	s.record(domain.ActionCreated, v.ID, v.Plate, in.Actor)

	return v, nil
}

func (s *VehicleService) List(ctx context.Context, offset, limit int64) ([]*domain.Vehicle, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *VehicleService) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *VehicleService) Update(ctx context.Context, id int64, in ports.UpdateVehicleInput) (*domain.Vehicle, error) {
	// Resolve identity before validation so a missing id is not masked by
	// field errors.
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.fields.ValidateUpdate(&in); err != nil {
		return nil, err
	}

	updated := *existing
	if in.Plate != nil {
		updated.Plate = *in.Plate
	}
	if in.Make != nil {
		updated.Make = *in.Make
	}
	if in.Model != nil {
		updated.Model = *in.Model
	}
	if in.Color != nil {
		updated.Color = *in.Color
	}
	if in.Status != nil {
		updated.Status = *in.Status
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		var ce *domain.ConflictError
		if errors.As(err, &ce) {
			metrics.PlateConflictsTotal.WithLabelValues("update").Inc()
			s.logger.Info().Int64("id", id).Str("plate", updated.Plate).Msg("update rejected: plate already registered")
		} else {
			s.logger.Error().Err(err).Int64("id", id).Msg("failed to update vehicle")
		}
		return nil, err
	}

	s.logger.Info().Int64("id", id).Str("plate", updated.Plate).Msg("vehicle updated")
	s.record(domain.ActionUpdated, updated.ID, updated.Plate, in.Actor)

	return &updated, nil
}

func (s *VehicleService) Delete(ctx context.Context, id int64, actor string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("id", id).Str("plate", existing.Plate).Msg("vehicle deleted")
	s.record(domain.ActionDeleted, id, existing.Plate, actor)

	return nil
}

func (s *VehicleService) record(action string, id int64, plate, actor string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.RegistryEvent{
		Action:    action,
		VehicleID: id,
		Plate:     plate,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
	})
}
