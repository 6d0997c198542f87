package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fleetdesk/internal/models"
	"fleetdesk/internal/repositories/interfaces"
	"fleetdesk/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type vehicleRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewVehicleRepository(db *mongo.Database, cache CacheService) interfaces.VehicleRepository {
	return &vehicleRepository{
		collection: db.Collection("vehicles"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.ID = primitive.NewObjectID()
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	// Normalize plate number to uppercase
	vehicle.PlateNumber = strings.ToUpper(vehicle.PlateNumber)

	_, err := r.collection.InsertOne(ctx, vehicle)
	if err != nil {
		return wrapStoreErr("failed to create vehicle", err)
	}

	r.cacheVehicle(ctx, vehicle)

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	// Try cache first
	if vehicle := r.getVehicleFromCache(ctx, id.Hex()); vehicle != nil {
		return vehicle, nil
	}

	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("vehicle")
		}
		return nil, wrapStoreErr("failed to get vehicle", err)
	}

	r.cacheVehicle(ctx, &vehicle)

	return &vehicle, nil
}

func (r *vehicleRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	// Normalize plate number if being updated
	if plate, exists := updates["plate_number"]; exists {
		if plateStr, ok := plate.(string); ok {
			updates["plate_number"] = strings.ToUpper(plateStr)
		}
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return wrapStoreErr("failed to update vehicle", err)
	}

	r.invalidateVehicleCache(ctx, id.Hex())

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapStoreErr("failed to delete vehicle", err)
	}

	r.invalidateVehicleCache(ctx, id.Hex())

	return nil
}

// Vehicle identification
func (r *vehicleRepository) GetByPlateNumber(ctx context.Context, plateNumber string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"plate_number": strings.ToUpper(plateNumber)}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("vehicle")
		}
		return nil, wrapStoreErr("failed to get vehicle by plate number", err)
	}

	return &vehicle, nil
}

func (r *vehicleRepository) ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"plate_number": strings.ToUpper(plateNumber)})
	if err != nil {
		return false, wrapStoreErr("failed to count vehicles by plate number", err)
	}

	return count > 0, nil
}

// Registry operations consumed by the booking lifecycle
func (r *vehicleRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.VehicleStatus) error {
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

func (r *vehicleRepository) UpdateMileage(ctx context.Context, id primitive.ObjectID, mileage int64) error {
	return r.Update(ctx, id, map[string]interface{}{"current_mileage": mileage})
}

// Search and listing
func (r *vehicleRepository) List(ctx context.Context, filter interfaces.VehicleListFilter, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.VehicleType != "" {
		query["vehicle_type"] = filter.VehicleType
	}
	if filter.Department != "" {
		query["department_owner"] = filter.Department
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, wrapStoreErr("failed to count vehicles", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, wrapStoreErr("failed to find vehicles", err)
	}
	defer cursor.Close(ctx)

	var vehicles []*models.Vehicle
	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, 0, wrapStoreErr("failed to decode vehicle", err)
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, total, nil
}

// Report aggregates
func (r *vehicleRepository) GetTotalCount(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, wrapStoreErr("failed to count vehicles", err)
	}
	return count, nil
}

func (r *vehicleRepository) GetCountByStatus(ctx context.Context, status models.VehicleStatus) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, wrapStoreErr("failed to count vehicles by status", err)
	}
	return count, nil
}

// Cache helpers
func (r *vehicleRepository) cacheVehicle(ctx context.Context, vehicle *models.Vehicle) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, vehicleCacheKey(vehicle.ID.Hex()), vehicle, utils.VehicleCacheTTL)
}

func (r *vehicleRepository) getVehicleFromCache(ctx context.Context, id string) *models.Vehicle {
	if r.cache == nil {
		return nil
	}

	var vehicle models.Vehicle
	if err := r.cache.Get(ctx, vehicleCacheKey(id), &vehicle); err != nil {
		return nil
	}
	return &vehicle
}

func (r *vehicleRepository) invalidateVehicleCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, vehicleCacheKey(id))
}

func vehicleCacheKey(id string) string {
	return fmt.Sprintf("vehicle:%s", id)
}
