package validators

import (
	"time"
)

type VehicleCreateRequest struct {
	PlateNumber     string     `json:"plate_number" validate:"required,license_plate"`
	Brand           string     `json:"brand" validate:"required,min=2,max=50"`
	Model           string     `json:"model" validate:"required,min=1,max=50"`
	Year            int        `json:"year" validate:"required,min=1990,max=2030"`
	VehicleType     string     `json:"vehicle_type" validate:"required,oneof=CAR VAN TRUCK"`
	FuelType        string     `json:"fuel_type" validate:"required,oneof=PETROL DIESEL ELECTRIC HYBRID"`
	Capacity        int        `json:"capacity" validate:"required,min=1,max=50"`
	VIN             string     `json:"vin" validate:"omitempty,vin_number"`
	CurrentMileage  int64      `json:"current_mileage" validate:"min=0"`
	DepartmentOwner string     `json:"department_owner" validate:"omitempty,max=100"`
	CostCenter      string     `json:"cost_center" validate:"omitempty,max=50"`
	NextServiceDate *time.Time `json:"next_service_date"`
	InsuranceExpiry *time.Time `json:"insurance_expiry"`
}

type VehicleUpdateRequest struct {
	PlateNumber     string     `json:"plate_number" validate:"omitempty,license_plate"`
	Brand           string     `json:"brand" validate:"omitempty,min=2,max=50"`
	Model           string     `json:"model" validate:"omitempty,min=1,max=50"`
	Year            int        `json:"year" validate:"omitempty,min=1990,max=2030"`
	VehicleType     string     `json:"vehicle_type" validate:"omitempty,oneof=CAR VAN TRUCK"`
	FuelType        string     `json:"fuel_type" validate:"omitempty,oneof=PETROL DIESEL ELECTRIC HYBRID"`
	Capacity        int        `json:"capacity" validate:"omitempty,min=1,max=50"`
	VIN             string     `json:"vin" validate:"omitempty,vin_number"`
	DepartmentOwner string     `json:"department_owner" validate:"omitempty,max=100"`
	CostCenter      string     `json:"cost_center" validate:"omitempty,max=50"`
	NextServiceDate *time.Time `json:"next_service_date"`
	InsuranceExpiry *time.Time `json:"insurance_expiry"`
}

type VehicleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=AVAILABLE IN_USE MAINTENANCE INACTIVE"`
}
