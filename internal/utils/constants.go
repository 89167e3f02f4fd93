package utils

import "time"

// Application Constants
const (
	AppName    = "Rideway"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency = "INR"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128

	// Geo
	EarthRadiusKM      = 6371.0
	RoadDistanceFactor = 1.2
	AverageSpeedKMH    = 30.0
	MaxRideDistanceKM  = 500.0
	MinRideDistanceKM  = 0.1
	MaxAddressLength   = 255

	// Fare
	BaseFareAmount    = 50.0
	MinimumFareAmount = 80.0
	DefaultFarePerKM  = 15.0
	GSTRate           = 0.18

	// Booking
	BookingLockTTL = 10 * time.Second
	ActiveRideTTL  = 5 * time.Minute
)

// Common response messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "An unexpected error occurred"
	ErrUnauthorized     = "Authentication required"
	ErrForbidden        = "You do not have access to this resource"
)
