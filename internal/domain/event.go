package domain

import (
	"time"

	"github.com/google/uuid"
)

// DriverEventType identifies a change in the drivers table.
type DriverEventType string

// List of driver change events
const (
	DriverCreated DriverEventType = "driver.created"
	DriverUpdated DriverEventType = "driver.updated"
	DriverDeleted DriverEventType = "driver.deleted"
)

// DriverEvent describes a committed change of a driver record.
// Driver is nil for deletions.
type DriverEvent struct {
	ID         uuid.UUID
	Type       DriverEventType
	DriverID   int64
	Driver     *Driver
	OccurredAt time.Time
}

// NewDriverEvent builds an event with a fresh id.
func NewDriverEvent(t DriverEventType, driverID int64, d *Driver, at time.Time) DriverEvent {
	return DriverEvent{
		ID:         uuid.New(),
		Type:       t,
		DriverID:   driverID,
		Driver:     d,
		OccurredAt: at,
	}
}
