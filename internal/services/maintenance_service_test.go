package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"fleetdesk/internal/models"
	"fleetdesk/internal/utils"
	"fleetdesk/internal/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeMaintenanceRepo struct {
	mu    sync.Mutex
	tasks map[primitive.ObjectID]*models.MaintenanceTask
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{tasks: make(map[primitive.ObjectID]*models.MaintenanceTask)}
}

func (r *fakeMaintenanceRepo) Create(ctx context.Context, task *models.MaintenanceTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = primitive.NewObjectID()
	stored := *task
	r.tasks[task.ID] = &stored
	return nil
}

func (r *fakeMaintenanceRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MaintenanceTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tasks[id]
	if !ok {
		return nil, models.NewNotFoundError("maintenance task")
	}
	task := *stored
	return &task, nil
}

func (r *fakeMaintenanceRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return models.NewNotFoundError("maintenance task")
	}
	for key, value := range updates {
		switch key {
		case "status":
			task.Status = value.(models.MaintenanceStatus)
		case "completed_date":
			v := value.(time.Time)
			task.CompletedDate = &v
		}
	}
	return nil
}

func (r *fakeMaintenanceRepo) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.MaintenanceTask, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.MaintenanceTask
	for _, task := range r.tasks {
		t := *task
		result = append(result, &t)
	}
	return result, int64(len(result)), nil
}

func (r *fakeMaintenanceRepo) ListByVehicle(ctx context.Context, vehicleID primitive.ObjectID, params *utils.PaginationParams) ([]*models.MaintenanceTask, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.MaintenanceTask
	for _, task := range r.tasks {
		if task.VehicleID != vehicleID {
			continue
		}
		t := *task
		result = append(result, &t)
	}
	return result, int64(len(result)), nil
}

func TestMaintenanceWorkflow(t *testing.T) {
	ctx := context.Background()
	maintenanceRepo := newFakeMaintenanceRepo()
	vehicleRepo := newFakeVehicleRepo()
	log := newTestLogger(t)

	vehicle := &models.Vehicle{PlateNumber: "FD-010", Status: models.VehicleStatusAvailable}
	require.NoError(t, vehicleRepo.Create(ctx, vehicle))

	service := NewMaintenanceService(maintenanceRepo, vehicleRepo, log)
	mechanic := primitive.NewObjectID()

	task, err := service.Create(ctx, mechanic, &validators.MaintenanceCreateRequest{
		VehicleID:    vehicle.ID.Hex(),
		Title:        "brake pad replacement",
		Description:  "front axle pads worn below 3mm",
		PlannedDate:  time.Now().Add(24 * time.Hour),
		Cost:         240,
		WorkshopName: "Main Street Garage",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusOpen, task.Status)
	assert.Equal(t, "brake pad replacement", task.Title)

	t.Run("starting a task pulls the vehicle into maintenance", func(t *testing.T) {
		updated, err := service.SetStatus(ctx, task.ID, models.MaintenanceStatusInProgress)
		require.NoError(t, err)
		assert.Equal(t, models.MaintenanceStatusInProgress, updated.Status)

		v, err := vehicleRepo.GetByID(ctx, vehicle.ID)
		require.NoError(t, err)
		assert.Equal(t, models.VehicleStatusMaintenance, v.Status)
	})

	t.Run("finishing a task releases the vehicle", func(t *testing.T) {
		updated, err := service.SetStatus(ctx, task.ID, models.MaintenanceStatusDone)
		require.NoError(t, err)
		assert.Equal(t, models.MaintenanceStatusDone, updated.Status)
		require.NotNil(t, updated.CompletedDate)

		v, err := vehicleRepo.GetByID(ctx, vehicle.ID)
		require.NoError(t, err)
		assert.Equal(t, models.VehicleStatusAvailable, v.Status)
	})

	t.Run("done is terminal", func(t *testing.T) {
		_, err := service.SetStatus(ctx, task.ID, models.MaintenanceStatusInProgress)
		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("unknown vehicle rejected", func(t *testing.T) {
		_, err := service.Create(ctx, mechanic, &validators.MaintenanceCreateRequest{
			VehicleID:   primitive.NewObjectID().Hex(),
			Title:       "oil change",
			PlannedDate: time.Now().Add(24 * time.Hour),
		})
		var notFoundErr *models.NotFoundError
		require.ErrorAs(t, err, &notFoundErr)
	})
}
