package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// Field rules (plate format, lengths, status enum) are enforced by the core
// field validator, which reports every problem in one response; the transport
// only carries the raw strings through.
type createVehicleRequest struct {
	Plate  string `json:"plate"`
	Make   string `json:"make"`
	Model  string `json:"model"`
	Color  string `json:"color"`
	Status string `json:"status"`
}

// updateVehicleRequest uses pointers so an omitted field can be told apart
// from an empty one; omitted fields keep their stored value.
type updateVehicleRequest struct {
	Plate  *string `json:"plate"`
	Make   *string `json:"make"`
	Model  *string `json:"model"`
	Color  *string `json:"color"`
	Status *string `json:"status"`
}

// --- Response types ---

type vehicleResponse struct {
	ID        int64     `json:"id"`
	Plate     string    `json:"plate"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Color     string    `json:"color"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type listVehiclesResponse struct {
	Total    int64             `json:"total"`
	Vehicles []vehicleResponse `json:"vehicles"`
}

type registryEventResponse struct {
	Action    string    `json:"action"`
	VehicleID int64     `json:"vehicle_id"`
	Plate     string    `json:"plate"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

type listEventsResponse struct {
	Events []registryEventResponse `json:"events"`
}
