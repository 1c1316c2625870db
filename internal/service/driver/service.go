package driver

import (
	"context"
	"time"

	"service-driver/internal/domain"
	"service-driver/internal/logx"
)

// Service coordinates driver business logic and orchestrates store calls.
type Service struct {
	store            driverStore
	events           eventPublisher
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates a driver Service. A nil publisher disables change events.
func NewService(store driverStore, events eventPublisher, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		store:            store,
		events:           events,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// GetByID returns the driver or nil when it does not exist.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.FindByID(ctx, id)
}

// GetAll returns every driver in store order.
func (s *Service) GetAll(ctx context.Context) ([]domain.Driver, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.FindAll(ctx)
}

// GetByIDs returns the subset of ids that exist, in store order.
// Missing ids are not reported here.
func (s *Service) GetByIDs(ctx context.Context, ids []int64) ([]domain.Driver, error) {
	if len(ids) == 0 {
		return []domain.Driver{}, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.FindAllByID(ctx, ids)
}

// Create stores a new driver after the uniqueness check. Any id in d is ignored.
func (s *Service) Create(ctx context.Context, d domain.Driver) (*domain.Driver, error) {
	d.ID = 0

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.checkUniqueness(ctx, &d, 0); err != nil {
		return nil, err
	}
	saved, err := s.store.Save(ctx, &d)
	if err != nil || saved == nil {
		return nil, err
	}

	s.publish(ctx, domain.DriverCreated, saved.ID, saved)
	return saved, nil
}

// Update replaces the business fields of driver id. It returns nil when the
// driver does not exist. The stored row is untouched when the check fails.
func (s *Service) Update(ctx context.Context, id int64, d domain.Driver) (*domain.Driver, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	existing, err := s.store.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	existing.Apply(d)
	if err := s.checkUniqueness(ctx, existing, existing.ID); err != nil {
		return nil, err
	}

	saved, err := s.store.Save(ctx, existing)
	if err != nil || saved == nil {
		return nil, err
	}

	s.publish(ctx, domain.DriverUpdated, saved.ID, saved)
	return saved, nil
}

// Delete removes driver id without checking that it exists.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	// строку уже удалил параллельный запрос: событие не дублируем
	if !deleted {
		return nil
	}

	s.publish(ctx, domain.DriverDeleted, id, nil)
	return nil
}

// publish never fails the caller: the write is already committed.
func (s *Service) publish(ctx context.Context, t domain.DriverEventType, id int64, d *domain.Driver) {
	if s.events == nil {
		return
	}
	var snapshot *domain.Driver
	if d != nil {
		cp := *d
		snapshot = &cp
	}
	e := domain.NewDriverEvent(t, id, snapshot, s.now())
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Warn("driver event publish failed",
			logx.String("type", string(t)),
			logx.DriverID(id),
			logx.Err(err),
		)
	}
}
