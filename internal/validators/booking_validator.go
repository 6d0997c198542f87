package validators

import (
	"time"
)

type BookingCreateRequest struct {
	VehicleID string    `json:"vehicle_id" validate:"required,object_id"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Purpose   string    `json:"purpose" validate:"required,min=3,max=500"`

	PickupLocation string `json:"pickup_location" validate:"omitempty,max=200"`
	ReturnLocation string `json:"return_location" validate:"omitempty,max=200"`
}

type BookingRejectRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type BookingCheckoutRequest struct {
	StartMileage   int64    `json:"start_mileage" validate:"min=0"`
	StartFuelLevel float64  `json:"start_fuel_level" validate:"fuel_level"`
	Notes          string   `json:"notes" validate:"omitempty,max=1000"`
	Photos         []string `json:"photos" validate:"omitempty,max=10,dive,url"`
}

type BookingCheckinRequest struct {
	EndMileage     int64    `json:"end_mileage" validate:"min=0"`
	EndFuelLevel   float64  `json:"end_fuel_level" validate:"fuel_level"`
	DamageReported bool     `json:"damage_reported"`
	DamageNotes    string   `json:"damage_notes" validate:"omitempty,max=1000"`
	Notes          string   `json:"notes" validate:"omitempty,max=1000"`
	Photos         []string `json:"photos" validate:"omitempty,max=10,dive,url"`
}

func ValidateBookingCreate(req *BookingCreateRequest) ValidationErrors {
	errs := ValidateStruct(req)
	errs = append(errs, ValidateTimeWindow(req.StartTime, req.EndTime)...)
	return errs
}
