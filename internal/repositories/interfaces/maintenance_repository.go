package interfaces

import (
	"context"

	"fleetdesk/internal/models"
	"fleetdesk/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, task *models.MaintenanceTask) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.MaintenanceTask, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.MaintenanceTask, int64, error)
	ListByVehicle(ctx context.Context, vehicleID primitive.ObjectID, params *utils.PaginationParams) ([]*models.MaintenanceTask, int64, error)
}
