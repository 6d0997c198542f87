package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusInUse       VehicleStatus = "IN_USE"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
	VehicleStatusInactive    VehicleStatus = "INACTIVE"
)

type VehicleType string

const (
	VehicleTypeCar   VehicleType = "CAR"
	VehicleTypeVan   VehicleType = "VAN"
	VehicleTypeTruck VehicleType = "TRUCK"
)

type FuelType string

const (
	FuelTypePetrol   FuelType = "PETROL"
	FuelTypeDiesel   FuelType = "DIESEL"
	FuelTypeElectric FuelType = "ELECTRIC"
	FuelTypeHybrid   FuelType = "HYBRID"
)

type Vehicle struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PlateNumber        string             `json:"plate_number" bson:"plate_number" validate:"required"`
	Brand              string             `json:"brand" bson:"brand" validate:"required"`
	Model              string             `json:"model" bson:"model" validate:"required"`
	Year               int                `json:"year" bson:"year" validate:"required"`
	Color              string             `json:"color,omitempty" bson:"color,omitempty"`
	VehicleType        VehicleType        `json:"vehicle_type" bson:"vehicle_type" validate:"required"`
	FuelType           FuelType           `json:"fuel_type" bson:"fuel_type" validate:"required"`
	Capacity           int                `json:"capacity" bson:"capacity" validate:"required"`
	VIN                string             `json:"vin,omitempty" bson:"vin,omitempty"`
	DepartmentOwner    string             `json:"department_owner,omitempty" bson:"department_owner,omitempty"`
	CostCenter         string             `json:"cost_center,omitempty" bson:"cost_center,omitempty"`
	Status             VehicleStatus      `json:"status" bson:"status"`
	CurrentMileage     int64              `json:"current_mileage" bson:"current_mileage"`
	LastServiceDate    *time.Time         `json:"last_service_date,omitempty" bson:"last_service_date,omitempty"`
	NextServiceDue     *time.Time         `json:"next_service_due,omitempty" bson:"next_service_due,omitempty"`
	InsuranceExpiry    *time.Time         `json:"insurance_expiry,omitempty" bson:"insurance_expiry,omitempty"`
	RegistrationExpiry *time.Time         `json:"registration_expiry,omitempty" bson:"registration_expiry,omitempty"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

// Bookable reports whether new bookings may be created against the vehicle.
// IN_USE and MAINTENANCE vehicles stay bookable for future windows; only
// INACTIVE vehicles are withdrawn from the pool.
func (v *Vehicle) Bookable() bool {
	return v.Status != VehicleStatusInactive
}
