package interfaces

import (
	"context"

	"fleetdesk/internal/models"
	"fleetdesk/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error)
}
