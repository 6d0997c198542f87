package services

import (
	"context"
	"fmt"
	"time"

	"fleetdesk/internal/config"
	"fleetdesk/internal/models"
	"fleetdesk/internal/repositories/interfaces"
	"fleetdesk/internal/utils"
	"fleetdesk/internal/validators"
	"fleetdesk/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	Create(ctx context.Context, userID primitive.ObjectID, role models.Role, request *validators.BookingCreateRequest) (*models.Booking, error)
	GetByID(ctx context.Context, id, requesterID primitive.ObjectID, role models.Role) (*models.Booking, error)
	ListMine(ctx context.Context, userID primitive.ObjectID, status *models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	ListAll(ctx context.Context, role models.Role, status *models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)

	Approve(ctx context.Context, bookingID, approverID primitive.ObjectID, role models.Role) (*models.Booking, error)
	Reject(ctx context.Context, bookingID, approverID primitive.ObjectID, role models.Role, reason string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, requesterID primitive.ObjectID, role models.Role) (*models.Booking, error)
	Checkout(ctx context.Context, bookingID, requesterID primitive.ObjectID, role models.Role, request *validators.BookingCheckoutRequest) (*models.Booking, error)
	Checkin(ctx context.Context, bookingID, requesterID primitive.ObjectID, role models.Role, request *validators.BookingCheckinRequest) (*models.Booking, error)
}

// EventPublisher pushes booking lifecycle events to connected clients.
type EventPublisher interface {
	PublishBookingEvent(ownerID primitive.ObjectID, eventType string, data map[string]interface{})
}

type bookingService struct {
	bookingRepo    interfaces.BookingRepository
	vehicleRepo    interfaces.VehicleRepository
	txManager      interfaces.TransactionManager
	cache          CacheService
	events         EventPublisher
	approvalPolicy config.ApprovalPolicy
	logger         *logger.Logger
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	vehicleRepo interfaces.VehicleRepository,
	txManager interfaces.TransactionManager,
	cache CacheService,
	events EventPublisher,
	approvalPolicy config.ApprovalPolicy,
	logger *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		vehicleRepo:    vehicleRepo,
		txManager:      txManager,
		cache:          cache,
		events:         events,
		approvalPolicy: approvalPolicy,
		logger:         logger,
	}
}

func bookingLockKey(id primitive.ObjectID) string { return "lock:booking:" + id.Hex() }
func vehicleLockKey(id primitive.ObjectID) string { return "lock:vehicle:" + id.Hex() }

// withLock runs fn while holding a short SetNX lease. A held lease means a
// concurrent request is mutating the same entity; callers get ConflictError
// and should retry.
func (s *bookingService) withLock(ctx context.Context, key string, ttl time.Duration, fn func() error) error {
	acquired, err := s.cache.AcquireLock(ctx, key, ttl)
	if err != nil {
		return models.NewTransientError(fmt.Errorf("lock %s: %w", key, err))
	}
	if !acquired {
		return models.NewConflictError("a concurrent operation is in progress, retry shortly")
	}
	defer s.cache.ReleaseLock(ctx, key)

	return fn()
}

func (s *bookingService) Create(ctx context.Context, userID primitive.ObjectID, role models.Role, request *validators.BookingCreateRequest) (*models.Booking, error) {
	if !request.StartTime.Before(request.EndTime) {
		return nil, models.NewValidationError("end_time", "end_time must be after start_time")
	}
	if request.EndTime.Before(time.Now()) {
		return nil, models.NewValidationError("end_time", "booking window is entirely in the past")
	}
	if request.EndTime.Sub(request.StartTime) > utils.MaxBookingWindow {
		return nil, models.NewValidationError("end_time", "booking window exceeds the maximum duration")
	}

	vehicleID, err := primitive.ObjectIDFromHex(request.VehicleID)
	if err != nil {
		return nil, models.NewValidationError("vehicle_id", "invalid vehicle id")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.Bookable() {
		return nil, models.NewValidationError("vehicle_id", "vehicle is not available for booking")
	}

	booking := &models.Booking{
		VehicleID:        vehicleID,
		UserID:           userID,
		StartTime:        request.StartTime,
		EndTime:          request.EndTime,
		Purpose:          request.Purpose,
		PickupLocation:   request.PickupLocation,
		ReturnLocation:   request.ReturnLocation,
		Status:           models.BookingStatusPending,
		ApprovalRequired: s.approvalRequired(role),
	}
	if !booking.ApprovalRequired {
		booking.Status = models.BookingStatusApproved
	}

	// The vehicle lease closes the gap between the overlap check and the
	// insert, so two racing requests cannot both pass the check.
	err = s.withLock(ctx, vehicleLockKey(vehicleID), utils.VehicleLockTTL, func() error {
		overlapping, err := s.bookingRepo.FindOverlapping(ctx, vehicleID, request.StartTime, request.EndTime)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return models.NewConflictError("vehicle is already booked for an overlapping window")
		}

		return s.bookingRepo.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(booking.ID, "booking_created", map[string]interface{}{
		"vehicle_id":        booking.VehicleID.Hex(),
		"user_id":           booking.UserID.Hex(),
		"status":            booking.Status,
		"approval_required": booking.ApprovalRequired,
	})
	s.publish(booking, "booking_created")

	return booking, nil
}

func (s *bookingService) approvalRequired(role models.Role) bool {
	switch s.approvalPolicy {
	case config.ApprovalAlways:
		return true
	case config.ApprovalNever:
		return false
	default:
		return !role.CanApprove()
	}
}

func (s *bookingService) GetByID(ctx context.Context, id, requesterID primitive.ObjectID, role models.Role) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != requesterID && !role.CanApprove() && role != models.RoleMaintenance {
		return nil, models.NewAuthorizationError("not allowed to view this booking")
	}

	return booking, nil
}

func (s *bookingService) ListMine(ctx context.Context, userID primitive.ObjectID, status *models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.ListByUser(ctx, userID, status, params)
}

func (s *bookingService) ListAll(ctx context.Context, role models.Role, status *models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	if !role.CanApprove() {
		return nil, 0, models.NewAuthorizationError("not allowed to list all bookings")
	}
	return s.bookingRepo.ListAll(ctx, status, params)
}

func (s *bookingService) Approve(ctx context.Context, bookingID, approverID primitive.ObjectID, role models.Role) (*models.Booking, error) {
	if !role.CanApprove() {
		return nil, models.NewAuthorizationError("approver role required")
	}

	var booking *models.Booking
	err := s.withLock(ctx, bookingLockKey(bookingID), utils.BookingLockTTL, func() error {
		var err error
		booking, err = s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if !models.CanTransition(booking.Status, models.BookingStatusApproved) {
			return models.NewInvalidStateError("approve", booking.Status)
		}

		if err := s.bookingRepo.Update(ctx, bookingID, map[string]interface{}{
			"status":      models.BookingStatusApproved,
			"approver_id": approverID,
		}); err != nil {
			return err
		}

		booking.Status = models.BookingStatusApproved
		booking.ApproverID = &approverID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(bookingID, "booking_approved", map[string]interface{}{
		"approver_id": approverID.Hex(),
	})
	s.publish(booking, "booking_approved")

	return booking, nil
}

func (s *bookingService) Reject(ctx context.Context, bookingID, approverID primitive.ObjectID, role models.Role, reason string) (*models.Booking, error) {
	if !role.CanApprove() {
		return nil, models.NewAuthorizationError("approver role required")
	}

	var booking *models.Booking
	err := s.withLock(ctx, bookingLockKey(bookingID), utils.BookingLockTTL, func() error {
		var err error
		booking, err = s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if !models.CanTransition(booking.Status, models.BookingStatusRejected) {
			return models.NewInvalidStateError("reject", booking.Status)
		}

		if err := s.bookingRepo.Update(ctx, bookingID, map[string]interface{}{
			"status":           models.BookingStatusRejected,
			"approver_id":      approverID,
			"rejection_reason": reason,
		}); err != nil {
			return err
		}

		booking.Status = models.BookingStatusRejected
		booking.ApproverID = &approverID
		booking.RejectionReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(bookingID, "booking_rejected", map[string]interface{}{
		"approver_id": approverID.Hex(),
		"reason":      reason,
	})
	s.publish(booking, "booking_rejected")

	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, bookingID, requesterID primitive.ObjectID, role models.Role) (*models.Booking, error) {
	var booking *models.Booking
	err := s.withLock(ctx, bookingLockKey(bookingID), utils.BookingLockTTL, func() error {
		var err error
		booking, err = s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if booking.UserID != requesterID && role != models.RoleAdmin {
			return models.NewAuthorizationError("only the booking owner or an admin may cancel")
		}

		if !models.CanTransition(booking.Status, models.BookingStatusCancelled) {
			return models.NewInvalidStateError("cancel", booking.Status)
		}

		// A checked-out vehicle must come back through checkin.
		if booking.Usage != nil && !booking.Usage.CheckedIn() {
			return models.NewInvalidStateError("cancel", booking.Status)
		}

		return s.bookingRepo.Update(ctx, bookingID, map[string]interface{}{
			"status": models.BookingStatusCancelled,
		})
	})
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCancelled

	s.logger.LogBookingEvent(bookingID, "booking_cancelled", map[string]interface{}{
		"cancelled_by": requesterID.Hex(),
	})
	s.publish(booking, "booking_cancelled")

	return booking, nil
}

func (s *bookingService) Checkout(ctx context.Context, bookingID, requesterID primitive.ObjectID, role models.Role, request *validators.BookingCheckoutRequest) (*models.Booking, error) {
	var booking *models.Booking
	err := s.withLock(ctx, bookingLockKey(bookingID), utils.BookingLockTTL, func() error {
		var err error
		booking, err = s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if booking.UserID != requesterID && role != models.RoleAdmin {
			return models.NewAuthorizationError("only the booking owner may check out the vehicle")
		}

		if booking.Status != models.BookingStatusApproved {
			return models.NewInvalidStateError("checkout", booking.Status)
		}
		if booking.Usage != nil {
			return models.NewConflictError("booking already checked out")
		}
		if time.Now().After(booking.EndTime) {
			return models.NewInvalidStateError("checkout", booking.Status)
		}

		vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
		if err != nil {
			return err
		}
		if request.StartMileage < vehicle.CurrentMileage {
			return models.NewValidationError("start_mileage",
				fmt.Sprintf("start mileage %d is below the recorded odometer %d", request.StartMileage, vehicle.CurrentMileage))
		}

		usage := &models.BookingUsage{
			BookingID:        bookingID,
			StartMileage:     request.StartMileage,
			StartFuelLevel:   request.StartFuelLevel,
			PreTripPhotos:    request.Photos,
			CheckoutComments: request.Notes,
			CheckedOutAt:     time.Now(),
		}

		// Usage insert and vehicle flip commit together; the unique index
		// on booking_id rejects a double checkout that slipped past the
		// lease.
		err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.bookingRepo.CreateUsage(txCtx, usage); err != nil {
				return err
			}
			if err := s.vehicleRepo.UpdateMileage(txCtx, booking.VehicleID, request.StartMileage); err != nil {
				return err
			}
			return s.vehicleRepo.UpdateStatus(txCtx, booking.VehicleID, models.VehicleStatusInUse)
		})
		if err != nil {
			return err
		}

		booking.Usage = usage
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(bookingID, "booking_checked_out", map[string]interface{}{
		"vehicle_id":    booking.VehicleID.Hex(),
		"start_mileage": request.StartMileage,
	})
	s.publish(booking, "booking_checked_out")

	return booking, nil
}

func (s *bookingService) Checkin(ctx context.Context, bookingID, requesterID primitive.ObjectID, role models.Role, request *validators.BookingCheckinRequest) (*models.Booking, error) {
	var booking *models.Booking
	err := s.withLock(ctx, bookingLockKey(bookingID), utils.BookingLockTTL, func() error {
		var err error
		booking, err = s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if booking.UserID != requesterID && role != models.RoleAdmin {
			return models.NewAuthorizationError("only the booking owner may check in the vehicle")
		}

		if booking.Status != models.BookingStatusApproved {
			return models.NewInvalidStateError("checkin", booking.Status)
		}
		if booking.Usage == nil {
			return models.NewInvalidStateError("checkin", booking.Status)
		}
		if booking.Usage.CheckedIn() {
			return models.NewConflictError("booking already checked in")
		}
		if request.EndMileage < booking.Usage.StartMileage {
			return models.NewValidationError("end_mileage",
				fmt.Sprintf("end mileage %d is below start mileage %d", request.EndMileage, booking.Usage.StartMileage))
		}

		now := time.Now()
		distance := request.EndMileage - booking.Usage.StartMileage

		vehicleStatus := models.VehicleStatusAvailable
		if request.DamageReported {
			vehicleStatus = models.VehicleStatusMaintenance
		}

		err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.bookingRepo.UpdateUsage(txCtx, booking.Usage.ID, map[string]interface{}{
				"end_mileage":        request.EndMileage,
				"end_fuel_level":     request.EndFuelLevel,
				"distance_travelled": distance,
				"damage_reported":    request.DamageReported,
				"damage_description": request.DamageNotes,
				"post_trip_photos":   request.Photos,
				"checkin_comments":   request.Notes,
				"checked_in_at":      now,
			}); err != nil {
				return err
			}

			if err := s.bookingRepo.Update(txCtx, bookingID, map[string]interface{}{
				"status": models.BookingStatusCompleted,
			}); err != nil {
				return err
			}

			if err := s.vehicleRepo.UpdateMileage(txCtx, booking.VehicleID, request.EndMileage); err != nil {
				return err
			}
			return s.vehicleRepo.UpdateStatus(txCtx, booking.VehicleID, vehicleStatus)
		})
		if err != nil {
			return err
		}

		booking.Status = models.BookingStatusCompleted
		booking.Usage.EndMileage = &request.EndMileage
		booking.Usage.EndFuelLevel = &request.EndFuelLevel
		booking.Usage.DistanceTravelled = &distance
		booking.Usage.DamageReported = request.DamageReported
		booking.Usage.DamageDescription = request.DamageNotes
		booking.Usage.CheckedInAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(bookingID, "booking_completed", map[string]interface{}{
		"vehicle_id":      booking.VehicleID.Hex(),
		"end_mileage":     request.EndMileage,
		"damage_reported": request.DamageReported,
	})
	s.publish(booking, "booking_completed")

	return booking, nil
}

func (s *bookingService) publish(booking *models.Booking, eventType string) {
	if s.events == nil {
		return
	}
	s.events.PublishBookingEvent(booking.UserID, eventType, map[string]interface{}{
		"booking_id": booking.ID.Hex(),
		"vehicle_id": booking.VehicleID.Hex(),
		"status":     booking.Status,
	})
}
