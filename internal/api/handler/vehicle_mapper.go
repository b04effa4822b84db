package handler

import (
	"github.com/motorpool/vehicle-registry/internal/core/domain"
	"github.com/motorpool/vehicle-registry/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createVehicleRequest, actor string) ports.CreateVehicleInput {
	return ports.CreateVehicleInput{
		Plate:  req.Plate,
		Make:   req.Make,
		Model:  req.Model,
		Color:  req.Color,
		Status: req.Status,
		Actor:  actor,
	}
}

func toUpdateInput(req updateVehicleRequest, actor string) ports.UpdateVehicleInput {
	return ports.UpdateVehicleInput{
		Plate:  req.Plate,
		Make:   req.Make,
		Model:  req.Model,
		Color:  req.Color,
		Status: req.Status,
		Actor:  actor,
	}
}

// --- Domain → HTTP response ---

func toVehicleResponse(v *domain.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:        v.ID,
		Plate:     v.Plate,
		Make:      v.Make,
		Model:     v.Model,
		Color:     v.Color,
		Status:    v.Status,
		CreatedAt: v.CreatedAt.UTC(),
	}
}

func toListResponse(vehicles []*domain.Vehicle, total int64) listVehiclesResponse {
	items := make([]vehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		items = append(items, toVehicleResponse(v))
	}
	return listVehiclesResponse{Total: total, Vehicles: items}
}

func toEventsResponse(events []*domain.RegistryEvent) listEventsResponse {
	items := make([]registryEventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, registryEventResponse{
			Action:    e.Action,
			VehicleID: e.VehicleID,
			Plate:     e.Plate,
			Actor:     e.Actor,
			Timestamp: e.Timestamp.UTC(),
		})
	}
	return listEventsResponse{Events: items}
}
