package services

import (
	"context"
	"testing"
	"time"

	"fleetdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedCompletedBooking(t *testing.T, repo *fakeBookingRepo, vehicleID primitive.ObjectID, checkedInAt time.Time, distance int64) {
	t.Helper()
	ctx := context.Background()

	booking := &models.Booking{
		VehicleID: vehicleID,
		UserID:    primitive.NewObjectID(),
		StartTime: checkedInAt.Add(-4 * time.Hour),
		EndTime:   checkedInAt,
		Status:    models.BookingStatusCompleted,
	}
	require.NoError(t, repo.Create(ctx, booking))

	usage := &models.BookingUsage{
		BookingID:         booking.ID,
		StartMileage:      1000,
		StartFuelLevel:    80,
		DistanceTravelled: &distance,
		CheckedOutAt:      checkedInAt.Add(-4 * time.Hour),
		CheckedInAt:       &checkedInAt,
	}
	require.NoError(t, repo.CreateUsage(ctx, usage))
}

func TestUsageReport(t *testing.T) {
	ctx := context.Background()
	bookingRepo := newFakeBookingRepo()
	vehicleRepo := newFakeVehicleRepo()
	log := newTestLogger(t)

	available := &models.Vehicle{PlateNumber: "FD-001", Status: models.VehicleStatusAvailable}
	inUse := &models.Vehicle{PlateNumber: "FD-002", Status: models.VehicleStatusInUse}
	inShop := &models.Vehicle{PlateNumber: "FD-003", Status: models.VehicleStatusMaintenance}
	require.NoError(t, vehicleRepo.Create(ctx, available))
	require.NoError(t, vehicleRepo.Create(ctx, inUse))
	require.NoError(t, vehicleRepo.Create(ctx, inShop))

	periodStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	seedCompletedBooking(t, bookingRepo, available.ID, periodStart.Add(48*time.Hour), 150)
	seedCompletedBooking(t, bookingRepo, inUse.ID, periodStart.Add(96*time.Hour), 250)
	// Outside the period, must not count.
	seedCompletedBooking(t, bookingRepo, available.ID, periodStart.Add(-24*time.Hour), 999)

	service := NewReportService(bookingRepo, vehicleRepo, log)

	t.Run("invalid range rejected", func(t *testing.T) {
		_, err := service.UsageReport(ctx, periodEnd, periodStart)
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("aggregates completed bookings inside the period", func(t *testing.T) {
		report, err := service.UsageReport(ctx, periodStart, periodEnd)
		require.NoError(t, err)

		assert.Equal(t, int64(2), report.TotalBookings)
		assert.Equal(t, int64(400), report.TotalDistance)
		assert.InDelta(t, 40.0, report.EstimatedFuelUsage, 0.001)
		assert.Equal(t, int64(3), report.TotalVehicles)
		assert.Equal(t, int64(2), report.ActiveVehicles)
		assert.Equal(t, int64(1), report.VehiclesInMaintenance)
	})
}
