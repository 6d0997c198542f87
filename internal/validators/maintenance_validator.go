package validators

import (
	"time"
)

type MaintenanceCreateRequest struct {
	VehicleID    string    `json:"vehicle_id" validate:"required,object_id"`
	Title        string    `json:"title" validate:"required,min=3,max=200"`
	Description  string    `json:"description" validate:"omitempty,max=1000"`
	PlannedDate  time.Time `json:"planned_date" validate:"required"`
	Cost         float64   `json:"cost" validate:"min=0"`
	WorkshopName string    `json:"workshop_name" validate:"omitempty,max=200"`
}

type MaintenanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS DONE"`
}
