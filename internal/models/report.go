package models

import "time"

// UsageReport aggregates completed-booking usage over a date range.
type UsageReport struct {
	PeriodStart           time.Time `json:"period_start"`
	PeriodEnd             time.Time `json:"period_end"`
	TotalBookings         int64     `json:"total_bookings"`
	TotalDistance         int64     `json:"total_distance"`
	EstimatedFuelUsage    float64   `json:"estimated_fuel_usage"`
	TotalVehicles         int64     `json:"total_vehicles"`
	ActiveVehicles        int64     `json:"active_vehicles"`
	VehiclesInMaintenance int64     `json:"vehicles_in_maintenance"`
}
