package handlers

import "service-driver/internal/domain"

func (d driverDTO) toModel() domain.Driver {
	return domain.Driver{
		Name:          d.Name,
		Email:         d.Email,
		LicenseNumber: d.LicenseNumber,
		VehicleModel:  d.VehicleModel,
		VehicleNumber: d.VehicleNumber,
	}
}

func modelToResponse(d domain.Driver) driverDTO {
	id := d.ID
	return driverDTO{
		ID:            &id,
		Name:          d.Name,
		Email:         d.Email,
		LicenseNumber: d.LicenseNumber,
		VehicleModel:  d.VehicleModel,
		VehicleNumber: d.VehicleNumber,
	}
}

func modelsToResponse(list []domain.Driver) []driverDTO {
	out := make([]driverDTO, 0, len(list))
	for _, d := range list {
		out = append(out, modelToResponse(d))
	}
	return out
}
