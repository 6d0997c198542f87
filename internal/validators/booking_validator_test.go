package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateBookingCreate(t *testing.T) {
	vehicleID := primitive.NewObjectID().Hex()
	start := time.Now().Add(time.Hour)

	t.Run("valid request passes", func(t *testing.T) {
		errs := ValidateBookingCreate(&BookingCreateRequest{
			VehicleID: vehicleID,
			StartTime: start,
			EndTime:   start.Add(2 * time.Hour),
			Purpose:   "client meeting",
		})
		assert.Empty(t, errs)
	})

	t.Run("bad vehicle id flagged", func(t *testing.T) {
		errs := ValidateBookingCreate(&BookingCreateRequest{
			VehicleID: "not-an-id",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Purpose:   "client meeting",
		})
		assert.NotEmpty(t, errs)
	})

	t.Run("inverted window flagged", func(t *testing.T) {
		errs := ValidateBookingCreate(&BookingCreateRequest{
			VehicleID: vehicleID,
			StartTime: start.Add(time.Hour),
			EndTime:   start,
			Purpose:   "client meeting",
		})
		assert.NotEmpty(t, errs)
	})

	t.Run("missing purpose flagged", func(t *testing.T) {
		errs := ValidateBookingCreate(&BookingCreateRequest{
			VehicleID: vehicleID,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		})
		assert.NotEmpty(t, errs)
	})
}

func TestCheckoutRequestValidation(t *testing.T) {
	t.Run("fuel above 100 flagged", func(t *testing.T) {
		errs := ValidateStruct(&BookingCheckoutRequest{StartMileage: 100, StartFuelLevel: 120})
		assert.NotEmpty(t, errs)
	})

	t.Run("valid checkout passes", func(t *testing.T) {
		errs := ValidateStruct(&BookingCheckoutRequest{StartMileage: 100, StartFuelLevel: 75})
		assert.Empty(t, errs)
	})
}

func TestValidateTimeWindow(t *testing.T) {
	now := time.Now()

	assert.Empty(t, ValidateTimeWindow(now, now.Add(time.Hour)))
	assert.NotEmpty(t, ValidateTimeWindow(now.Add(time.Hour), now))
	assert.NotEmpty(t, ValidateTimeWindow(now, now))
	assert.NotEmpty(t, ValidateTimeWindow(time.Time{}, now))
}
