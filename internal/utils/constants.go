package utils

import "time"

// Application Constants
const (
	AppName    = "FleetDesk"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8

	// Booking Constants
	MaxBookingWindow   = 30 * 24 * time.Hour
	MinFuelLevel       = 0.0
	MaxFuelLevel       = 100.0
	BookingLockTTL     = 10 * time.Second
	VehicleLockTTL     = 10 * time.Second
	StoreRetryAttempts = 1

	// Fuel estimate used by usage reports: litres per 100 km.
	FuelUsePer100Km = 10.0

	// Cache TTLs
	VehicleCacheTTL = 15 * time.Minute
	UserCacheTTL    = 15 * time.Minute

	// File Upload
	MaxPhotoSize = 5 * 1024 * 1024 // 5MB

	// Response statuses
	StatusSuccess = "success"
	StatusError   = "error"

	// Common error messages
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized"
	ErrForbidden        = "Access denied"
)
