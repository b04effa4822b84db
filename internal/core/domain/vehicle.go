package domain

import "time"

// VehicleStatus is the operational state of a registered vehicle.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Vehicle is the core aggregate root of the registry. Plate is the unique
// business key, stored uppercase.
type Vehicle struct {
	ID        int64     `json:"id" bson:"id"`
	Plate     string    `json:"plate" bson:"plate"`
	Make      string    `json:"make" bson:"make"`
	Model     string    `json:"model" bson:"model"`
	Color     string    `json:"color" bson:"color"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Registry event actions recorded in the audit trail.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RegistryEvent records a single mutation applied to the registry.
type RegistryEvent struct {
	Action    string    `json:"action" bson:"action"`
	VehicleID int64     `json:"vehicle_id" bson:"vehicle_id"`
	Plate     string    `json:"plate" bson:"plate"`
	Actor     string    `json:"actor" bson:"actor"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
