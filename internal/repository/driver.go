package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-driver/internal/apperr"
	"service-driver/internal/domain"
)

const driverColumns = `id, name, email, license_number, vehicle_model, vehicle_number`

// DriverRepo stores drivers in PostgreSQL.
type DriverRepo struct{ db *pgxpool.Pool }

// NewDriverRepo creates a new DriverRepo.
func NewDriverRepo(db *pgxpool.Pool) *DriverRepo { return &DriverRepo{db: db} }

// FindByID returns the driver or nil when there is no such id.
func (r *DriverRepo) FindByID(ctx context.Context, id int64) (*domain.Driver, error) {
	row := r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id=$1`, id)
	d, err := scanDriver(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver %d: %w", id, err)
	}
	return &d, nil
}

// FindAll returns every driver ordered by id.
func (r *DriverRepo) FindAll(ctx context.Context) ([]domain.Driver, error) {
	rows, err := r.db.Query(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return collectDrivers(rows)
}

// FindAllByID returns the drivers whose id is in ids, ordered by id.
// Unknown ids are skipped.
func (r *DriverRepo) FindAllByID(ctx context.Context, ids []int64) ([]domain.Driver, error) {
	if len(ids) == 0 {
		return []domain.Driver{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("list drivers by id: %w", err)
	}
	return collectDrivers(rows)
}

// Save inserts d when it has no id and updates it otherwise.
// The stored row is returned; an update of a missing row yields apperr.ErrNotFound.
func (r *DriverRepo) Save(ctx context.Context, d *domain.Driver) (*domain.Driver, error) {
	if d.ID == 0 {
		return r.insert(ctx, d)
	}
	return r.update(ctx, d)
}

func (r *DriverRepo) insert(ctx context.Context, d *domain.Driver) (*domain.Driver, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO drivers(name, email, license_number, vehicle_model, vehicle_number)
		VALUES($1, $2, $3, $4, $5)
		RETURNING `+driverColumns,
		d.Name, d.Email, d.LicenseNumber, d.VehicleModel, d.VehicleNumber)
	saved, err := scanDriver(row)
	if err != nil {
		if IsDuplicate(err) {
			return nil, apperr.NewConflict(ConflictMessage(err))
		}
		return nil, fmt.Errorf("create driver: %w", err)
	}
	return &saved, nil
}

func (r *DriverRepo) update(ctx context.Context, d *domain.Driver) (*domain.Driver, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE drivers
		SET
		    name           = $2,
		    email          = $3,
		    license_number = $4,
		    vehicle_model  = $5,
		    vehicle_number = $6,
		    updated_at     = now()
		WHERE id = $1
		RETURNING `+driverColumns,
		d.ID, d.Name, d.Email, d.LicenseNumber, d.VehicleModel, d.VehicleNumber)
	saved, err := scanDriver(row)
	if err != nil {
		switch {
		case IsNotFound(err):
			return nil, apperr.DriverNotFound(d.ID)
		case IsDuplicate(err):
			return nil, apperr.NewConflict(ConflictMessage(err))
		}
		return nil, fmt.Errorf("update driver %d: %w", d.ID, err)
	}
	return &saved, nil
}

// DeleteByID removes the driver and reports whether a row was deleted.
// Deleting a missing id is not an error.
func (r *DriverRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete driver %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ExistsByLicenseNumber reports whether a driver other than excludeID holds licenseNumber.
// An excludeID of 0 matches every row.
func (r *DriverRepo) ExistsByLicenseNumber(ctx context.Context, licenseNumber string, excludeID int64) (bool, error) {
	return r.exists(ctx, "license_number", licenseNumber, excludeID)
}

// ExistsByVehicleNumber reports whether a driver other than excludeID holds vehicleNumber.
func (r *DriverRepo) ExistsByVehicleNumber(ctx context.Context, vehicleNumber string, excludeID int64) (bool, error) {
	return r.exists(ctx, "vehicle_number", vehicleNumber, excludeID)
}

// ExistsByEmail reports whether a driver other than excludeID holds email.
func (r *DriverRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, "email", email, excludeID)
}

// exists is only called with the fixed column names above.
func (r *DriverRepo) exists(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	var found bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM drivers WHERE `+column+` = $1 AND id <> $2)`,
		value, excludeID,
	).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", column, err)
	}
	return found, nil
}

func scanDriver(row pgx.Row) (domain.Driver, error) {
	var d domain.Driver
	err := row.Scan(&d.ID, &d.Name, &d.Email, &d.LicenseNumber, &d.VehicleModel, &d.VehicleNumber)
	return d, err
}

func collectDrivers(rows pgx.Rows) ([]domain.Driver, error) {
	defer rows.Close()
	out := make([]domain.Driver, 0)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
