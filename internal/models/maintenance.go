package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MaintenanceStatus string

const (
	MaintenanceStatusOpen       MaintenanceStatus = "OPEN"
	MaintenanceStatusInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceStatusDone       MaintenanceStatus = "DONE"
)

type MaintenanceTask struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	VehicleID     primitive.ObjectID  `json:"vehicle_id" bson:"vehicle_id"`
	CreatedBy     *primitive.ObjectID `json:"created_by,omitempty" bson:"created_by,omitempty"`
	Title         string              `json:"title" bson:"title" validate:"required"`
	Description   string              `json:"description,omitempty" bson:"description,omitempty"`
	Status        MaintenanceStatus   `json:"status" bson:"status"`
	PlannedDate   *time.Time          `json:"planned_date,omitempty" bson:"planned_date,omitempty"`
	CompletedDate *time.Time          `json:"completed_date,omitempty" bson:"completed_date,omitempty"`
	Cost          float64             `json:"cost,omitempty" bson:"cost,omitempty"`
	WorkshopName  string              `json:"workshop_name,omitempty" bson:"workshop_name,omitempty"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updated_at"`
}
