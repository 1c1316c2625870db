//go:generate mockgen -source=contracts.go -destination=driver_mocks_test.go -package=driver

package driver

import (
	"context"

	"service-driver/internal/domain"
)

// driverStore is the persistence contract of the driver service.
// Exists* predicates ignore the row whose id equals excludeID; 0 excludes nothing.
type driverStore interface {
	FindByID(ctx context.Context, id int64) (*domain.Driver, error)
	FindAll(ctx context.Context) ([]domain.Driver, error)
	FindAllByID(ctx context.Context, ids []int64) ([]domain.Driver, error)
	Save(ctx context.Context, d *domain.Driver) (*domain.Driver, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	ExistsByLicenseNumber(ctx context.Context, licenseNumber string, excludeID int64) (bool, error)
	ExistsByVehicleNumber(ctx context.Context, vehicleNumber string, excludeID int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

// eventPublisher delivers committed driver changes to subscribers.
type eventPublisher interface {
	Publish(ctx context.Context, e domain.DriverEvent) error
}
