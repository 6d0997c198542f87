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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRepository struct {
	bookings *mongo.Collection
	usages   *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) interfaces.BookingRepository {
	return &bookingRepository{
		bookings: db.Collection("bookings"),
		usages:   db.Collection("booking_usages"),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.bookings.InsertOne(ctx, booking)
	if err != nil {
		return wrapStoreErr("failed to create booking", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("booking")
		}
		return nil, wrapStoreErr("failed to get booking", err)
	}

	r.attachUsage(ctx, &booking)

	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.bookings.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return wrapStoreErr("failed to update booking", err)
	}

	return nil
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, vehicleID primitive.ObjectID, start, end time.Time) ([]*models.Booking, error) {
	// Half-open [start, end) windows: an existing booking collides when it
	// starts before the requested end and ends after the requested start.
	filter := bson.M{
		"vehicle_id": vehicleID,
		"status":     bson.M{"$in": []models.BookingStatus{models.BookingStatusPending, models.BookingStatusApproved}},
		"start_time": bson.M{"$lt": end},
		"end_time":   bson.M{"$gt": start},
	}

	cursor, err := r.bookings.Find(ctx, filter)
	if err != nil {
		return nil, wrapStoreErr("failed to find overlapping bookings", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, wrapStoreErr("failed to decode booking", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, status *models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	filter := bson.M{"user_id": userID}
	if status != nil {
		filter["status"] = *status
	}

	return r.list(ctx, filter, params)
}

func (r *bookingRepository) ListAll(ctx context.Context, status *models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	filter := bson.M{}
	if status != nil {
		filter["status"] = *status
	}

	return r.list(ctx, filter, params)
}

func (r *bookingRepository) ListCompletedBetween(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	filter := bson.M{
		"status":   models.BookingStatusCompleted,
		"end_time": bson.M{"$gte": start, "$lt": end},
	}

	cursor, err := r.bookings.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, wrapStoreErr("failed to find completed bookings", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, wrapStoreErr("failed to decode booking", err)
		}
		r.attachUsage(ctx, &booking)
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) list(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	total, err := r.bookings.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapStoreErr("failed to count bookings", err)
	}

	cursor, err := r.bookings.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, wrapStoreErr("failed to find bookings", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, 0, wrapStoreErr("failed to decode booking", err)
		}
		r.attachUsage(ctx, &booking)
		bookings = append(bookings, &booking)
	}

	return bookings, total, nil
}

// Usage records
func (r *bookingRepository) CreateUsage(ctx context.Context, usage *models.BookingUsage) error {
	usage.ID = primitive.NewObjectID()
	usage.CreatedAt = time.Now()
	usage.UpdatedAt = time.Now()

	_, err := r.usages.InsertOne(ctx, usage)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.NewConflictError("booking already checked out")
		}
		return wrapStoreErr("failed to create booking usage", err)
	}

	return nil
}

func (r *bookingRepository) GetUsageByBookingID(ctx context.Context, bookingID primitive.ObjectID) (*models.BookingUsage, error) {
	var usage models.BookingUsage
	err := r.usages.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&usage)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.NewNotFoundError("booking usage")
		}
		return nil, wrapStoreErr("failed to get booking usage", err)
	}

	return &usage, nil
}

func (r *bookingRepository) UpdateUsage(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.usages.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return wrapStoreErr("failed to update booking usage", err)
	}

	return nil
}

// attachUsage joins the usage record onto the booking. Missing usage is
// normal for bookings that never reached checkout.
func (r *bookingRepository) attachUsage(ctx context.Context, booking *models.Booking) {
	var usage models.BookingUsage
	err := r.usages.FindOne(ctx, bson.M{"booking_id": booking.ID}).Decode(&usage)
	if err != nil {
		return
	}
	booking.Usage = &usage
}
