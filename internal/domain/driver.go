package domain

// Driver represents a vehicle operator stored by the service.
type Driver struct {
	ID            int64
	Name          string
	Email         string
	LicenseNumber string
	VehicleModel  string
	VehicleNumber string
}

// Apply copies the business fields of src onto d. The ID is never changed.
func (d *Driver) Apply(src Driver) {
	d.Name = src.Name
	d.Email = src.Email
	d.LicenseNumber = src.LicenseNumber
	d.VehicleModel = src.VehicleModel
	d.VehicleNumber = src.VehicleNumber
}
