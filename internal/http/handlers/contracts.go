package handlers

import (
	"context"

	"service-driver/internal/domain"
	"service-driver/internal/service/driver"
)

type driverUsecase interface {
	GetByID(ctx context.Context, id int64) (*domain.Driver, error)
	GetAll(ctx context.Context) ([]domain.Driver, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Driver, error)
	Create(ctx context.Context, d domain.Driver) (*domain.Driver, error)
	Update(ctx context.Context, id int64, d domain.Driver) (*domain.Driver, error)
	Delete(ctx context.Context, id int64) error
}

// NewDriverUsecase wires a driver Service into a driverUsecase.
func NewDriverUsecase(svc *driver.Service) driverUsecase {
	return svc
}
