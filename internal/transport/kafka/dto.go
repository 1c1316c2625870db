package kafka

import (
	"time"

	"service-driver/internal/domain"
)

// EventDTO is the wire form of domain.DriverEvent
type EventDTO struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	DriverID   int64      `json:"driver_id"`
	Driver     *DriverDTO `json:"driver,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// DriverDTO is the driver snapshot carried by created and updated events
type DriverDTO struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	LicenseNumber string `json:"license_number"`
	VehicleModel  string `json:"vehicle_model"`
	VehicleNumber string `json:"vehicle_number"`
}

// FromDomain converts domain.DriverEvent to EventDTO
func FromDomain(e domain.DriverEvent) EventDTO {
	dto := EventDTO{
		ID:         e.ID.String(),
		Type:       string(e.Type),
		DriverID:   e.DriverID,
		OccurredAt: e.OccurredAt.UTC(),
	}
	if e.Driver != nil {
		dto.Driver = &DriverDTO{
			ID:            e.Driver.ID,
			Name:          e.Driver.Name,
			Email:         e.Driver.Email,
			LicenseNumber: e.Driver.LicenseNumber,
			VehicleModel:  e.Driver.VehicleModel,
			VehicleNumber: e.Driver.VehicleNumber,
		}
	}
	return dto
}
