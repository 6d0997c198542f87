package interfaces

import (
	"context"

	"fleetdesk/internal/models"
	"fleetdesk/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleListFilter narrows vehicle listings; zero values mean "any".
type VehicleListFilter struct {
	Status      models.VehicleStatus
	VehicleType models.VehicleType
	Department  string
}

type VehicleRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Vehicle identification
	GetByPlateNumber(ctx context.Context, plateNumber string) (*models.Vehicle, error)
	ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error)

	// Registry operations consumed by the booking lifecycle
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.VehicleStatus) error
	UpdateMileage(ctx context.Context, id primitive.ObjectID, mileage int64) error

	// Search and listing
	List(ctx context.Context, filter VehicleListFilter, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)

	// Report aggregates
	GetTotalCount(ctx context.Context) (int64, error)
	GetCountByStatus(ctx context.Context, status models.VehicleStatus) (int64, error)
}
