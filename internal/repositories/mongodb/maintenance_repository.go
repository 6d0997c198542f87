package mongodb

import (
	"context"
	"time"

	"fleetdesk/internal/models"
	"fleetdesk/internal/repositories/interfaces"
	"fleetdesk/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type maintenanceRepository struct {
	collection *mongo.Collection
}

func NewMaintenanceRepository(db *mongo.Database) interfaces.MaintenanceRepository {
	return &maintenanceRepository{
		collection: db.Collection("maintenance_tasks"),
	}
}

func (r *maintenanceRepository) Create(ctx context.Context, task *models.MaintenanceTask) error {
	task.ID = primitive.NewObjectID()
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return wrapStoreErr("failed to create maintenance task", err)
	}

	return nil
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MaintenanceTask, error) {
	var task models.MaintenanceTask
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("maintenance task")
		}
		return nil, wrapStoreErr("failed to get maintenance task", err)
	}

	return &task, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return wrapStoreErr("failed to update maintenance task", err)
	}

	return nil
}

func (r *maintenanceRepository) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.MaintenanceTask, int64, error) {
	return r.list(ctx, bson.M{}, params)
}

func (r *maintenanceRepository) ListByVehicle(ctx context.Context, vehicleID primitive.ObjectID, params *utils.PaginationParams) ([]*models.MaintenanceTask, int64, error) {
	return r.list(ctx, bson.M{"vehicle_id": vehicleID}, params)
}

func (r *maintenanceRepository) list(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.MaintenanceTask, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapStoreErr("failed to count maintenance tasks", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, wrapStoreErr("failed to find maintenance tasks", err)
	}
	defer cursor.Close(ctx)

	var tasks []*models.MaintenanceTask
	for cursor.Next(ctx) {
		var task models.MaintenanceTask
		if err := cursor.Decode(&task); err != nil {
			return nil, 0, wrapStoreErr("failed to decode maintenance task", err)
		}
		tasks = append(tasks, &task)
	}

	return tasks, total, nil
}
