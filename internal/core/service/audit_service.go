package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/motorpool/vehicle-registry/internal/api/metrics"
	"github.com/motorpool/vehicle-registry/internal/core/domain"
	"github.com/motorpool/vehicle-registry/internal/core/ports"
)

type auditService struct {
	repo ports.EventRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists registry events.
// Failures here never fail the originating request; the dispatcher only logs.
func NewAuditService(repo ports.EventRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Process(ctx context.Context, e domain.RegistryEvent) error {
	if err := s.repo.Insert(ctx, &e); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	metrics.AuditEventsTotal.WithLabelValues(e.Action).Inc()
	s.log.Debug().
		Str("action", e.Action).
		Int64("vehicle_id", e.VehicleID).
		Str("plate", e.Plate).
		Str("actor", e.Actor).
		Msg("audit event recorded")

	return nil
}
