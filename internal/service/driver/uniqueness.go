package driver

import (
	"context"
	"fmt"

	"service-driver/internal/apperr"
	"service-driver/internal/domain"
)

// Messages reported on a unique field collision.
const (
	MsgLicenseNumberExists = "License Number already exists"
	MsgVehicleNumberExists = "Vehicle Number already exists"
	MsgEmailExists         = "Email already exists"
)

type uniqueCheck struct {
	field   string
	message string
	exists  func(ctx context.Context, d *domain.Driver, excludeID int64) (bool, error)
}

// uniqueChecks returns the checks in reporting order.
func (s *Service) uniqueChecks() []uniqueCheck {
	return []uniqueCheck{
		{
			field:   "license_number",
			message: MsgLicenseNumberExists,
			exists: func(ctx context.Context, d *domain.Driver, excludeID int64) (bool, error) {
				return s.store.ExistsByLicenseNumber(ctx, d.LicenseNumber, excludeID)
			},
		},
		{
			field:   "vehicle_number",
			message: MsgVehicleNumberExists,
			exists: func(ctx context.Context, d *domain.Driver, excludeID int64) (bool, error) {
				return s.store.ExistsByVehicleNumber(ctx, d.VehicleNumber, excludeID)
			},
		},
		{
			field:   "email",
			message: MsgEmailExists,
			exists: func(ctx context.Context, d *domain.Driver, excludeID int64) (bool, error) {
				return s.store.ExistsByEmail(ctx, d.Email, excludeID)
			},
		},
	}
}

// checkUniqueness fails with the first colliding field and skips the rest.
func (s *Service) checkUniqueness(ctx context.Context, d *domain.Driver, excludeID int64) error {
	for _, c := range s.uniqueChecks() {
		found, err := c.exists(ctx, d, excludeID)
		if err != nil {
			return fmt.Errorf("check %s uniqueness: %w", c.field, err)
		}
		if found {
			return apperr.NewConflict(c.message)
		}
	}
	return nil
}
