package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"fleetdesk/internal/config"
	"fleetdesk/internal/models"
	"fleetdesk/internal/repositories/interfaces"
	"fleetdesk/internal/utils"
	"fleetdesk/internal/validators"
	"fleetdesk/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ---- fakes ----

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking
	usages   map[primitive.ObjectID]*models.BookingUsage // keyed by booking ID
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[primitive.ObjectID]*models.Booking),
		usages:   make(map[primitive.ObjectID]*models.BookingUsage),
	}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()
	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[id]
	if !ok {
		return nil, models.NewNotFoundError("booking")
	}
	booking := *stored
	if usage, ok := r.usages[id]; ok {
		u := *usage
		booking.Usage = &u
	}
	return &booking, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return models.NewNotFoundError("booking")
	}
	for key, value := range updates {
		switch key {
		case "status":
			booking.Status = value.(models.BookingStatus)
		case "approver_id":
			approverID := value.(primitive.ObjectID)
			booking.ApproverID = &approverID
		case "rejection_reason":
			booking.RejectionReason = value.(string)
		}
	}
	booking.UpdatedAt = time.Now()
	return nil
}

func (r *fakeBookingRepo) FindOverlapping(ctx context.Context, vehicleID primitive.ObjectID, start, end time.Time) ([]*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Booking
	for _, booking := range r.bookings {
		if booking.VehicleID != vehicleID {
			continue
		}
		if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusApproved {
			continue
		}
		if booking.Overlaps(start, end) {
			b := *booking
			result = append(result, &b)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) ListByUser(ctx context.Context, userID primitive.ObjectID, status *models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Booking
	for _, booking := range r.bookings {
		if booking.UserID != userID {
			continue
		}
		if status != nil && booking.Status != *status {
			continue
		}
		b := *booking
		result = append(result, &b)
	}
	return result, int64(len(result)), nil
}

func (r *fakeBookingRepo) ListAll(ctx context.Context, status *models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Booking
	for _, booking := range r.bookings {
		if status != nil && booking.Status != *status {
			continue
		}
		b := *booking
		result = append(result, &b)
	}
	return result, int64(len(result)), nil
}

func (r *fakeBookingRepo) ListCompletedBetween(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Booking
	for id, booking := range r.bookings {
		usage, ok := r.usages[id]
		if booking.Status != models.BookingStatusCompleted || !ok {
			continue
		}
		if booking.EndTime.Before(start) || !booking.EndTime.Before(end) {
			continue
		}
		b := *booking
		u := *usage
		b.Usage = &u
		result = append(result, &b)
	}
	return result, nil
}

func (r *fakeBookingRepo) CreateUsage(ctx context.Context, usage *models.BookingUsage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.usages[usage.BookingID]; exists {
		return models.NewConflictError("booking already checked out")
	}
	usage.ID = primitive.NewObjectID()
	usage.CreatedAt = time.Now()
	stored := *usage
	r.usages[usage.BookingID] = &stored
	return nil
}

func (r *fakeBookingRepo) GetUsageByBookingID(ctx context.Context, bookingID primitive.ObjectID) (*models.BookingUsage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	usage, ok := r.usages[bookingID]
	if !ok {
		return nil, models.NewNotFoundError("booking usage")
	}
	u := *usage
	return &u, nil
}

func (r *fakeBookingRepo) UpdateUsage(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, usage := range r.usages {
		if usage.ID != id {
			continue
		}
		for key, value := range updates {
			switch key {
			case "end_mileage":
				v := value.(int64)
				usage.EndMileage = &v
			case "end_fuel_level":
				v := value.(float64)
				usage.EndFuelLevel = &v
			case "distance_travelled":
				v := value.(int64)
				usage.DistanceTravelled = &v
			case "damage_reported":
				usage.DamageReported = value.(bool)
			case "damage_description":
				usage.DamageDescription = value.(string)
			case "checked_in_at":
				v := value.(time.Time)
				usage.CheckedInAt = &v
			}
		}
		usage.UpdatedAt = time.Now()
		return nil
	}
	return models.NewNotFoundError("booking usage")
}

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[primitive.ObjectID]*models.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[primitive.ObjectID]*models.Vehicle)}
}

func (r *fakeVehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle.ID = primitive.NewObjectID()
	stored := *vehicle
	r.vehicles[vehicle.ID] = &stored
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.vehicles[id]
	if !ok {
		return nil, models.NewNotFoundError("vehicle")
	}
	vehicle := *stored
	return &vehicle, nil
}

func (r *fakeVehicleRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeVehicleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) GetByPlateNumber(ctx context.Context, plateNumber string) (*models.Vehicle, error) {
	return nil, models.NewNotFoundError("vehicle")
}

func (r *fakeVehicleRepo) ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error) {
	return false, nil
}

func (r *fakeVehicleRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.VehicleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle, ok := r.vehicles[id]
	if !ok {
		return models.NewNotFoundError("vehicle")
	}
	vehicle.Status = status
	return nil
}

func (r *fakeVehicleRepo) UpdateMileage(ctx context.Context, id primitive.ObjectID, mileage int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle, ok := r.vehicles[id]
	if !ok {
		return models.NewNotFoundError("vehicle")
	}
	vehicle.CurrentMileage = mileage
	return nil
}

func (r *fakeVehicleRepo) List(ctx context.Context, filter interfaces.VehicleListFilter, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Vehicle
	for _, vehicle := range r.vehicles {
		v := *vehicle
		result = append(result, &v)
	}
	return result, int64(len(result)), nil
}

func (r *fakeVehicleRepo) GetTotalCount(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.vehicles)), nil
}

func (r *fakeVehicleRepo) GetCountByStatus(ctx context.Context, status models.VehicleStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, vehicle := range r.vehicles {
		if vehicle.Status == status {
			count++
		}
	}
	return count, nil
}

// fakeTxManager runs the callback directly; the fakes mutate shared maps so
// the writes are already visible together.
type fakeTxManager struct{}

func (fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCache struct {
	mu    sync.Mutex
	locks map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{locks: make(map[string]bool)}
}

var errCacheMiss = errors.New("cache miss")

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error { return errCacheMiss }
func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.locks, key)
	}
	return nil
}
func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) { return false, nil }

func (c *fakeCache) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[key] {
		return false, nil
	}
	c.locks[key] = true
	return true, nil
}

func (c *fakeCache) ReleaseLock(ctx context.Context, key string) error {
	return c.Delete(ctx, key)
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

type fakeEvents struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeEvents) PublishBookingEvent(ownerID primitive.ObjectID, eventType string, data map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType)
}

func (f *fakeEvents) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	require.NoError(t, err)
	log.SetOutput(io.Discard)
	return log
}

type bookingFixture struct {
	service     BookingService
	bookingRepo *fakeBookingRepo
	vehicleRepo *fakeVehicleRepo
	cache       *fakeCache
	events      *fakeEvents
	vehicle     *models.Vehicle
	owner       primitive.ObjectID
	approver    primitive.ObjectID
}

func newBookingFixture(t *testing.T, policy config.ApprovalPolicy) *bookingFixture {
	t.Helper()

	bookingRepo := newFakeBookingRepo()
	vehicleRepo := newFakeVehicleRepo()
	cache := newFakeCache()
	events := &fakeEvents{}

	vehicle := &models.Vehicle{
		PlateNumber:    "FD-001",
		Brand:          "Volkswagen",
		Model:          "Transporter",
		VehicleType:    models.VehicleTypeVan,
		FuelType:       models.FuelTypeDiesel,
		Status:         models.VehicleStatusAvailable,
		CurrentMileage: 1000,
	}
	require.NoError(t, vehicleRepo.Create(context.Background(), vehicle))

	service := NewBookingService(
		bookingRepo, vehicleRepo, fakeTxManager{}, cache, events, policy, newTestLogger(t),
	)

	return &bookingFixture{
		service:     service,
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		cache:       cache,
		events:      events,
		vehicle:     vehicle,
		owner:       primitive.NewObjectID(),
		approver:    primitive.NewObjectID(),
	}
}

func (f *bookingFixture) createRequest(start, end time.Time) *validators.BookingCreateRequest {
	return &validators.BookingCreateRequest{
		VehicleID: f.vehicle.ID.Hex(),
		StartTime: start,
		EndTime:   end,
		Purpose:   "site visit",
	}
}

func futureWindow(offset, length time.Duration) (time.Time, time.Time) {
	start := time.Now().Add(offset)
	return start, start.Add(length)
}

// ---- tests ----

func TestBookingCreateValidation(t *testing.T) {
	f := newBookingFixture(t, config.ApprovalEmployeesOnly)
	ctx := context.Background()

	t.Run("start must precede end", func(t *testing.T) {
		start, end := futureWindow(time.Hour, 2*time.Hour)
		_, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(end, start))
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("zero-length window rejected", func(t *testing.T) {
		start, _ := futureWindow(time.Hour, 0)
		_, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start, start))
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("window in the past rejected", func(t *testing.T) {
		start := time.Now().Add(-4 * time.Hour)
		_, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start, start.Add(time.Hour)))
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("window beyond the maximum rejected", func(t *testing.T) {
		start, _ := futureWindow(time.Hour, 0)
		_, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start, start.Add(utils.MaxBookingWindow+time.Hour)))
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("inactive vehicle rejected", func(t *testing.T) {
		require.NoError(t, f.vehicleRepo.UpdateStatus(ctx, f.vehicle.ID, models.VehicleStatusInactive))
		defer f.vehicleRepo.UpdateStatus(ctx, f.vehicle.ID, models.VehicleStatusAvailable)

		start, end := futureWindow(time.Hour, 2*time.Hour)
		_, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start, end))
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestBookingCreateOverlap(t *testing.T) {
	f := newBookingFixture(t, config.ApprovalEmployeesOnly)
	ctx := context.Background()

	start, end := futureWindow(24*time.Hour, 4*time.Hour)
	first, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start, end))
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, first.Status)

	t.Run("overlapping window conflicts", func(t *testing.T) {
		_, err := f.service.Create(ctx, primitive.NewObjectID(), models.RoleEmployee,
			f.createRequest(start.Add(time.Hour), end.Add(time.Hour)))
		var conflictErr *models.ConflictError
		require.ErrorAs(t, err, &conflictErr)
	})

	t.Run("back-to-back window is allowed", func(t *testing.T) {
		_, err := f.service.Create(ctx, primitive.NewObjectID(), models.RoleEmployee,
			f.createRequest(end, end.Add(2*time.Hour)))
		require.NoError(t, err)
	})
}

func TestBookingApprovalPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("employee booking needs approval", func(t *testing.T) {
		f := newBookingFixture(t, config.ApprovalEmployeesOnly)
		start, end := futureWindow(time.Hour, 2*time.Hour)
		booking, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start, end))
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
		assert.True(t, booking.ApprovalRequired)
	})

	t.Run("approver booking auto-approves", func(t *testing.T) {
		f := newBookingFixture(t, config.ApprovalEmployeesOnly)
		start, end := futureWindow(time.Hour, 2*time.Hour)
		booking, err := f.service.Create(ctx, f.approver, models.RoleApprover, f.createRequest(start, end))
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusApproved, booking.Status)
		assert.False(t, booking.ApprovalRequired)
	})

	t.Run("always policy holds everyone", func(t *testing.T) {
		f := newBookingFixture(t, config.ApprovalAlways)
		start, end := futureWindow(time.Hour, 2*time.Hour)
		booking, err := f.service.Create(ctx, f.approver, models.RoleAdmin, f.createRequest(start, end))
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
	})

	t.Run("never policy approves everyone", func(t *testing.T) {
		f := newBookingFixture(t, config.ApprovalNever)
		start, end := futureWindow(time.Hour, 2*time.Hour)
		booking, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start, end))
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusApproved, booking.Status)
	})
}

func TestBookingApproveReject(t *testing.T) {
	f := newBookingFixture(t, config.ApprovalEmployeesOnly)
	ctx := context.Background()

	start, end := futureWindow(time.Hour, 2*time.Hour)
	booking, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start, end))
	require.NoError(t, err)

	t.Run("employee cannot approve", func(t *testing.T) {
		_, err := f.service.Approve(ctx, booking.ID, f.owner, models.RoleEmployee)
		var authErr *models.AuthorizationError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("approver approves pending booking", func(t *testing.T) {
		approved, err := f.service.Approve(ctx, booking.ID, f.approver, models.RoleApprover)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusApproved, approved.Status)
		require.NotNil(t, approved.ApproverID)
		assert.Equal(t, f.approver, *approved.ApproverID)
	})

	t.Run("approve is not idempotent", func(t *testing.T) {
		_, err := f.service.Approve(ctx, booking.ID, f.approver, models.RoleApprover)
		var stateErr *models.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
	})

	t.Run("cannot reject an approved booking", func(t *testing.T) {
		_, err := f.service.Reject(ctx, booking.ID, f.approver, models.RoleApprover, "too late")
		var stateErr *models.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
	})

	t.Run("reject records the reason", func(t *testing.T) {
		start2, end2 := futureWindow(48*time.Hour, 2*time.Hour)
		pending, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start2, end2))
		require.NoError(t, err)

		rejected, err := f.service.Reject(ctx, pending.ID, f.approver, models.RoleApprover, "vehicle reserved for audit")
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusRejected, rejected.Status)
		assert.Equal(t, "vehicle reserved for audit", rejected.RejectionReason)
	})
}

func TestBookingCancel(t *testing.T) {
	f := newBookingFixture(t, config.ApprovalEmployeesOnly)
	ctx := context.Background()

	start, end := futureWindow(time.Hour, 2*time.Hour)
	booking, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start, end))
	require.NoError(t, err)

	t.Run("stranger cannot cancel", func(t *testing.T) {
		_, err := f.service.Cancel(ctx, booking.ID, primitive.NewObjectID(), models.RoleEmployee)
		var authErr *models.AuthorizationError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("owner cancels pending booking", func(t *testing.T) {
		cancelled, err := f.service.Cancel(ctx, booking.ID, f.owner, models.RoleEmployee)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		_, err := f.service.Cancel(ctx, booking.ID, f.owner, models.RoleEmployee)
		var stateErr *models.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
	})

	t.Run("admin may cancel another user's booking", func(t *testing.T) {
		start2, end2 := futureWindow(48*time.Hour, 2*time.Hour)
		other, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start2, end2))
		require.NoError(t, err)

		cancelled, err := f.service.Cancel(ctx, other.ID, primitive.NewObjectID(), models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	})
}

func TestBookingCheckout(t *testing.T) {
	f := newBookingFixture(t, config.ApprovalEmployeesOnly)
	ctx := context.Background()

	start, end := futureWindow(time.Hour, 4*time.Hour)
	booking, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start, end))
	require.NoError(t, err)

	checkout := &validators.BookingCheckoutRequest{StartMileage: 1020, StartFuelLevel: 80}

	t.Run("pending booking cannot check out", func(t *testing.T) {
		_, err := f.service.Checkout(ctx, booking.ID, f.owner, models.RoleEmployee, checkout)
		var stateErr *models.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
	})

	_, err = f.service.Approve(ctx, booking.ID, f.approver, models.RoleApprover)
	require.NoError(t, err)

	t.Run("start mileage below odometer rejected", func(t *testing.T) {
		_, err := f.service.Checkout(ctx, booking.ID, f.owner, models.RoleEmployee,
			&validators.BookingCheckoutRequest{StartMileage: 900, StartFuelLevel: 80})
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("stranger cannot check out", func(t *testing.T) {
		_, err := f.service.Checkout(ctx, booking.ID, primitive.NewObjectID(), models.RoleEmployee, checkout)
		var authErr *models.AuthorizationError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("checkout creates usage and flips vehicle to IN_USE", func(t *testing.T) {
		checkedOut, err := f.service.Checkout(ctx, booking.ID, f.owner, models.RoleEmployee, checkout)
		require.NoError(t, err)
		require.NotNil(t, checkedOut.Usage)
		assert.Equal(t, int64(1020), checkedOut.Usage.StartMileage)
		assert.False(t, checkedOut.Usage.CheckedIn())

		vehicle, err := f.vehicleRepo.GetByID(ctx, f.vehicle.ID)
		require.NoError(t, err)
		assert.Equal(t, models.VehicleStatusInUse, vehicle.Status)
		assert.Equal(t, int64(1020), vehicle.CurrentMileage)
	})

	t.Run("double checkout conflicts", func(t *testing.T) {
		_, err := f.service.Checkout(ctx, booking.ID, f.owner, models.RoleEmployee, checkout)
		var conflictErr *models.ConflictError
		require.ErrorAs(t, err, &conflictErr)
	})

	t.Run("checked-out booking cannot be cancelled", func(t *testing.T) {
		_, err := f.service.Cancel(ctx, booking.ID, f.owner, models.RoleEmployee)
		var stateErr *models.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
	})
}

func TestBookingCheckin(t *testing.T) {
	f := newBookingFixture(t, config.ApprovalEmployeesOnly)
	ctx := context.Background()

	start, end := futureWindow(time.Hour, 4*time.Hour)
	booking, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start, end))
	require.NoError(t, err)
	_, err = f.service.Approve(ctx, booking.ID, f.approver, models.RoleApprover)
	require.NoError(t, err)

	checkin := &validators.BookingCheckinRequest{EndMileage: 1250, EndFuelLevel: 40}

	t.Run("checkin before checkout rejected", func(t *testing.T) {
		_, err := f.service.Checkin(ctx, booking.ID, f.owner, models.RoleEmployee, checkin)
		var stateErr *models.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
	})

	_, err = f.service.Checkout(ctx, booking.ID, f.owner, models.RoleEmployee,
		&validators.BookingCheckoutRequest{StartMileage: 1000, StartFuelLevel: 80})
	require.NoError(t, err)

	t.Run("end mileage below start rejected", func(t *testing.T) {
		_, err := f.service.Checkin(ctx, booking.ID, f.owner, models.RoleEmployee,
			&validators.BookingCheckinRequest{EndMileage: 950, EndFuelLevel: 40})
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("checkin completes the booking", func(t *testing.T) {
		completed, err := f.service.Checkin(ctx, booking.ID, f.owner, models.RoleEmployee, checkin)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCompleted, completed.Status)
		require.NotNil(t, completed.Usage.DistanceTravelled)
		assert.Equal(t, int64(250), *completed.Usage.DistanceTravelled)
		assert.True(t, completed.Usage.CheckedIn())

		vehicle, err := f.vehicleRepo.GetByID(ctx, f.vehicle.ID)
		require.NoError(t, err)
		assert.Equal(t, models.VehicleStatusAvailable, vehicle.Status)
		assert.Equal(t, int64(1250), vehicle.CurrentMileage)
	})

	t.Run("double checkin conflicts", func(t *testing.T) {
		_, err := f.service.Checkin(ctx, booking.ID, f.owner, models.RoleEmployee, checkin)
		var stateErr *models.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
	})
}

func TestBookingCheckinWithDamage(t *testing.T) {
	f := newBookingFixture(t, config.ApprovalEmployeesOnly)
	ctx := context.Background()

	start, end := futureWindow(time.Hour, 4*time.Hour)
	booking, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start, end))
	require.NoError(t, err)
	_, err = f.service.Approve(ctx, booking.ID, f.approver, models.RoleApprover)
	require.NoError(t, err)
	_, err = f.service.Checkout(ctx, booking.ID, f.owner, models.RoleEmployee,
		&validators.BookingCheckoutRequest{StartMileage: 1000, StartFuelLevel: 90})
	require.NoError(t, err)

	completed, err := f.service.Checkin(ctx, booking.ID, f.owner, models.RoleEmployee,
		&validators.BookingCheckinRequest{
			EndMileage:     1100,
			EndFuelLevel:   60,
			DamageReported: true,
			DamageNotes:    "scratched rear bumper",
		})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, completed.Status)
	assert.True(t, completed.Usage.DamageReported)

	vehicle, err := f.vehicleRepo.GetByID(ctx, f.vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VehicleStatusMaintenance, vehicle.Status)
}

func TestBookingLockContention(t *testing.T) {
	f := newBookingFixture(t, config.ApprovalEmployeesOnly)
	ctx := context.Background()

	start, end := futureWindow(time.Hour, 2*time.Hour)
	booking, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start, end))
	require.NoError(t, err)

	t.Run("held booking lease conflicts", func(t *testing.T) {
		acquired, err := f.cache.AcquireLock(ctx, "lock:booking:"+booking.ID.Hex(), utils.BookingLockTTL)
		require.NoError(t, err)
		require.True(t, acquired)
		defer f.cache.ReleaseLock(ctx, "lock:booking:"+booking.ID.Hex())

		_, err = f.service.Approve(ctx, booking.ID, f.approver, models.RoleApprover)
		var conflictErr *models.ConflictError
		require.ErrorAs(t, err, &conflictErr)
	})

	t.Run("held vehicle lease blocks create", func(t *testing.T) {
		acquired, err := f.cache.AcquireLock(ctx, "lock:vehicle:"+f.vehicle.ID.Hex(), utils.VehicleLockTTL)
		require.NoError(t, err)
		require.True(t, acquired)
		defer f.cache.ReleaseLock(ctx, "lock:vehicle:"+f.vehicle.ID.Hex())

		start2, end2 := futureWindow(72*time.Hour, 2*time.Hour)
		_, err = f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start2, end2))
		var conflictErr *models.ConflictError
		require.ErrorAs(t, err, &conflictErr)
	})
}

func TestBookingLifecycleEvents(t *testing.T) {
	f := newBookingFixture(t, config.ApprovalEmployeesOnly)
	ctx := context.Background()

	start, end := futureWindow(time.Hour, 4*time.Hour)
	booking, err := f.service.Create(ctx, f.owner, models.RoleEmployee, f.createRequest(start, end))
	require.NoError(t, err)
	_, err = f.service.Approve(ctx, booking.ID, f.approver, models.RoleApprover)
	require.NoError(t, err)
	_, err = f.service.Checkout(ctx, booking.ID, f.owner, models.RoleEmployee,
		&validators.BookingCheckoutRequest{StartMileage: 1000, StartFuelLevel: 75})
	require.NoError(t, err)
	_, err = f.service.Checkin(ctx, booking.ID, f.owner, models.RoleEmployee,
		&validators.BookingCheckinRequest{EndMileage: 1080, EndFuelLevel: 50})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"booking_created",
		"booking_approved",
		"booking_checked_out",
		"booking_completed",
	}, f.events.types())
}
