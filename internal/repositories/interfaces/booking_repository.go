package interfaces

import (
	"context"
	"time"

	"fleetdesk/internal/models"
	"fleetdesk/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	// Booking records
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// FindOverlapping returns PENDING and APPROVED bookings for the vehicle
	// whose [start_time, end_time) window intersects [start, end).
	FindOverlapping(ctx context.Context, vehicleID primitive.ObjectID, start, end time.Time) ([]*models.Booking, error)

	// Listing
	ListByUser(ctx context.Context, userID primitive.ObjectID, status *models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	ListAll(ctx context.Context, status *models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	ListCompletedBetween(ctx context.Context, start, end time.Time) ([]*models.Booking, error)

	// Usage records (one-to-one with a booking, created at checkout)
	CreateUsage(ctx context.Context, usage *models.BookingUsage) error
	GetUsageByBookingID(ctx context.Context, bookingID primitive.ObjectID) (*models.BookingUsage, error)
	UpdateUsage(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
}

// TransactionManager scopes a function to a single atomic store transaction.
// The context passed to fn must be used for every store call inside it.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
