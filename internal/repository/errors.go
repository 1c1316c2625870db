package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Unique constraints of the drivers table.
const (
	constraintLicenseNumber = "drivers_license_number_key"
	constraintVehicleNumber = "drivers_vehicle_number_key"
	constraintEmail         = "drivers_email_key"
)

// IsDuplicate - signals that the error is a duplicate key violation.
func IsDuplicate(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "23505"
}

// IsNotFound - signals that the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// ConflictMessage returns the client message for a unique violation.
// Messages match the ones produced by the service uniqueness check.
func ConflictMessage(err error) string {
	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) {
		return "Driver already exists"
	}
	switch pgerr.ConstraintName {
	case constraintLicenseNumber:
		return "License Number already exists"
	case constraintVehicleNumber:
		return "Vehicle Number already exists"
	case constraintEmail:
		return "Email already exists"
	default:
		return "Driver already exists"
	}
}
