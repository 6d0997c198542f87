package services

import (
	"context"
	"strings"

	"fleetdesk/internal/models"
	"fleetdesk/internal/repositories/interfaces"
	"fleetdesk/internal/utils"
	"fleetdesk/internal/validators"
	"fleetdesk/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleService interface {
	Create(ctx context.Context, request *validators.VehicleCreateRequest) (*models.Vehicle, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	Update(ctx context.Context, id primitive.ObjectID, request *validators.VehicleUpdateRequest) (*models.Vehicle, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter interfaces.VehicleListFilter, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)

	// SetStatus is the manual override used by admins and the maintenance
	// desk. The booking lifecycle drives status through its own operations.
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.VehicleStatus) (*models.Vehicle, error)
}

type vehicleService struct {
	vehicleRepo interfaces.VehicleRepository
	logger      *logger.Logger
}

func NewVehicleService(vehicleRepo interfaces.VehicleRepository, logger *logger.Logger) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

func (s *vehicleService) Create(ctx context.Context, request *validators.VehicleCreateRequest) (*models.Vehicle, error) {
	plate := strings.ToUpper(strings.TrimSpace(request.PlateNumber))

	exists, err := s.vehicleRepo.ExistsByPlateNumber(ctx, plate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError("plate number already registered")
	}

	vehicle := &models.Vehicle{
		PlateNumber:     plate,
		Brand:           request.Brand,
		Model:           request.Model,
		Year:            request.Year,
		VehicleType:     models.VehicleType(request.VehicleType),
		FuelType:        models.FuelType(request.FuelType),
		Capacity:        request.Capacity,
		VIN:             strings.ToUpper(request.VIN),
		DepartmentOwner: request.DepartmentOwner,
		CostCenter:      request.CostCenter,
		Status:          models.VehicleStatusAvailable,
		CurrentMileage:  request.CurrentMileage,
		NextServiceDue:  request.NextServiceDate,
		InsuranceExpiry: request.InsuranceExpiry,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.logger.LogVehicleEvent(vehicle.ID, "vehicle_registered", map[string]interface{}{
		"plate_number": vehicle.PlateNumber,
	})

	return vehicle, nil
}

func (s *vehicleService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) Update(ctx context.Context, id primitive.ObjectID, request *validators.VehicleUpdateRequest) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if request.PlateNumber != "" {
		plate := strings.ToUpper(strings.TrimSpace(request.PlateNumber))
		if plate != vehicle.PlateNumber {
			exists, err := s.vehicleRepo.ExistsByPlateNumber(ctx, plate)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, models.NewConflictError("plate number already registered")
			}
			updates["plate_number"] = plate
		}
	}
	if request.Brand != "" {
		updates["brand"] = request.Brand
	}
	if request.Model != "" {
		updates["model"] = request.Model
	}
	if request.Year != 0 {
		updates["year"] = request.Year
	}
	if request.VehicleType != "" {
		updates["vehicle_type"] = models.VehicleType(request.VehicleType)
	}
	if request.FuelType != "" {
		updates["fuel_type"] = models.FuelType(request.FuelType)
	}
	if request.Capacity != 0 {
		updates["capacity"] = request.Capacity
	}
	if request.VIN != "" {
		updates["vin"] = strings.ToUpper(request.VIN)
	}
	if request.DepartmentOwner != "" {
		updates["department_owner"] = request.DepartmentOwner
	}
	if request.CostCenter != "" {
		updates["cost_center"] = request.CostCenter
	}
	if request.NextServiceDate != nil {
		updates["next_service_due"] = request.NextServiceDate
	}
	if request.InsuranceExpiry != nil {
		updates["insurance_expiry"] = request.InsuranceExpiry
	}

	if len(updates) > 0 {
		if err := s.vehicleRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.vehicleRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.vehicleRepo.Delete(ctx, id)
}

func (s *vehicleService) List(ctx context.Context, filter interfaces.VehicleListFilter, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	return s.vehicleRepo.List(ctx, filter, params)
}

func (s *vehicleService) SetStatus(ctx context.Context, id primitive.ObjectID, status models.VehicleStatus) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if vehicle.Status != status {
		if err := s.vehicleRepo.UpdateStatus(ctx, id, status); err != nil {
			return nil, err
		}

		s.logger.LogVehicleEvent(id, "vehicle_status_changed", map[string]interface{}{
			"from": vehicle.Status,
			"to":   status,
		})
	}

	return s.vehicleRepo.GetByID(ctx, id)
}
