package handlers

type driverDTO struct {
	ID            *int64 `json:"id"`
	Name          string `json:"name" validate:"notblank"`
	Email         string `json:"email" validate:"notblank"`
	LicenseNumber string `json:"licenseNumber" validate:"notblank"`
	VehicleModel  string `json:"vehicleModel" validate:"notblank"`
	VehicleNumber string `json:"vehicleNumber" validate:"notblank"`
}
