package services

import (
	"context"
	"time"

	"fleetdesk/internal/models"
	"fleetdesk/internal/repositories/interfaces"
	"fleetdesk/internal/utils"
	"fleetdesk/pkg/logger"
)

type ReportService interface {
	// UsageReport aggregates completed bookings whose window ended inside
	// [start, end).
	UsageReport(ctx context.Context, start, end time.Time) (*models.UsageReport, error)
}

type reportService struct {
	bookingRepo interfaces.BookingRepository
	vehicleRepo interfaces.VehicleRepository
	logger      *logger.Logger
}

func NewReportService(
	bookingRepo interfaces.BookingRepository,
	vehicleRepo interfaces.VehicleRepository,
	logger *logger.Logger,
) ReportService {
	return &reportService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

func (s *reportService) UsageReport(ctx context.Context, start, end time.Time) (*models.UsageReport, error) {
	if !start.Before(end) {
		return nil, models.NewValidationError("end", "end must be after start")
	}

	bookings, err := s.bookingRepo.ListCompletedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var totalDistance int64
	for _, booking := range bookings {
		if booking.Usage != nil && booking.Usage.DistanceTravelled != nil {
			totalDistance += *booking.Usage.DistanceTravelled
		}
	}

	totalVehicles, err := s.vehicleRepo.GetTotalCount(ctx)
	if err != nil {
		return nil, err
	}
	activeVehicles, err := s.vehicleRepo.GetCountByStatus(ctx, models.VehicleStatusAvailable)
	if err != nil {
		return nil, err
	}
	inUse, err := s.vehicleRepo.GetCountByStatus(ctx, models.VehicleStatusInUse)
	if err != nil {
		return nil, err
	}
	inMaintenance, err := s.vehicleRepo.GetCountByStatus(ctx, models.VehicleStatusMaintenance)
	if err != nil {
		return nil, err
	}

	report := &models.UsageReport{
		PeriodStart:           start,
		PeriodEnd:             end,
		TotalBookings:         int64(len(bookings)),
		TotalDistance:         totalDistance,
		EstimatedFuelUsage:    float64(totalDistance) / 100.0 * utils.FuelUsePer100Km,
		TotalVehicles:         totalVehicles,
		ActiveVehicles:        activeVehicles + inUse,
		VehiclesInMaintenance: inMaintenance,
	}

	s.logger.WithFields(map[string]interface{}{
		"period_start":   start,
		"period_end":     end,
		"total_bookings": report.TotalBookings,
	}).Info("Usage report generated")

	return report, nil
}
