package services

import (
	"context"
	"time"

	"fleetdesk/internal/models"
	"fleetdesk/internal/repositories/interfaces"
	"fleetdesk/internal/utils"
	"fleetdesk/internal/validators"
	"fleetdesk/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MaintenanceService interface {
	Create(ctx context.Context, createdBy primitive.ObjectID, request *validators.MaintenanceCreateRequest) (*models.MaintenanceTask, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.MaintenanceTask, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.MaintenanceStatus) (*models.MaintenanceTask, error)
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.MaintenanceTask, int64, error)
	ListByVehicle(ctx context.Context, vehicleID primitive.ObjectID, params *utils.PaginationParams) ([]*models.MaintenanceTask, int64, error)
}

type maintenanceService struct {
	maintenanceRepo interfaces.MaintenanceRepository
	vehicleRepo     interfaces.VehicleRepository
	logger          *logger.Logger
}

func NewMaintenanceService(
	maintenanceRepo interfaces.MaintenanceRepository,
	vehicleRepo interfaces.VehicleRepository,
	logger *logger.Logger,
) MaintenanceService {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		vehicleRepo:     vehicleRepo,
		logger:          logger,
	}
}

// allowedMaintenanceTransitions mirrors the task workflow: OPEN tasks start,
// IN_PROGRESS tasks finish, DONE is terminal.
var allowedMaintenanceTransitions = map[models.MaintenanceStatus][]models.MaintenanceStatus{
	models.MaintenanceStatusOpen:       {models.MaintenanceStatusInProgress, models.MaintenanceStatusDone},
	models.MaintenanceStatusInProgress: {models.MaintenanceStatusDone},
	models.MaintenanceStatusDone:       {},
}

func canTransitionMaintenance(from, to models.MaintenanceStatus) bool {
	for _, s := range allowedMaintenanceTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s *maintenanceService) Create(ctx context.Context, createdBy primitive.ObjectID, request *validators.MaintenanceCreateRequest) (*models.MaintenanceTask, error) {
	vehicleID, err := primitive.ObjectIDFromHex(request.VehicleID)
	if err != nil {
		return nil, models.NewValidationError("vehicle_id", "invalid vehicle id")
	}

	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}

	task := &models.MaintenanceTask{
		VehicleID:    vehicleID,
		CreatedBy:    &createdBy,
		Title:        request.Title,
		Description:  request.Description,
		Status:       models.MaintenanceStatusOpen,
		PlannedDate:  &request.PlannedDate,
		Cost:         request.Cost,
		WorkshopName: request.WorkshopName,
	}

	if err := s.maintenanceRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.LogVehicleEvent(vehicleID, "maintenance_task_created", map[string]interface{}{
		"task_id": task.ID.Hex(),
	})

	return task, nil
}

func (s *maintenanceService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MaintenanceTask, error) {
	return s.maintenanceRepo.GetByID(ctx, id)
}

// SetStatus advances the task workflow and keeps the vehicle status in step:
// a task moving to IN_PROGRESS pulls the vehicle into MAINTENANCE, a task
// moving to DONE releases it back to AVAILABLE.
func (s *maintenanceService) SetStatus(ctx context.Context, id primitive.ObjectID, status models.MaintenanceStatus) (*models.MaintenanceTask, error) {
	task, err := s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canTransitionMaintenance(task.Status, status) {
		return nil, models.NewValidationError("status",
			"cannot move task from "+string(task.Status)+" to "+string(status))
	}

	updates := map[string]interface{}{"status": status}
	if status == models.MaintenanceStatusDone {
		now := time.Now()
		updates["completed_date"] = now
		task.CompletedDate = &now
	}

	if err := s.maintenanceRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	task.Status = status

	switch status {
	case models.MaintenanceStatusInProgress:
		err = s.vehicleRepo.UpdateStatus(ctx, task.VehicleID, models.VehicleStatusMaintenance)
	case models.MaintenanceStatusDone:
		err = s.vehicleRepo.UpdateStatus(ctx, task.VehicleID, models.VehicleStatusAvailable)
	}
	if err != nil {
		return nil, err
	}

	s.logger.LogVehicleEvent(task.VehicleID, "maintenance_status_changed", map[string]interface{}{
		"task_id": id.Hex(),
		"status":  status,
	})

	return task, nil
}

func (s *maintenanceService) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.MaintenanceTask, int64, error) {
	return s.maintenanceRepo.ListAll(ctx, params)
}

func (s *maintenanceService) ListByVehicle(ctx context.Context, vehicleID primitive.ObjectID, params *utils.PaginationParams) ([]*models.MaintenanceTask, int64, error) {
	return s.maintenanceRepo.ListByVehicle(ctx, vehicleID, params)
}
