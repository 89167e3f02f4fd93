package validators

import (
	"rideway/internal/utils"
)

type LocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Address   string  `json:"address" validate:"required,min=3,max=255"`
}

type EstimateFareRequest struct {
	Pickup   LocationRequest `json:"pickup" validate:"required"`
	Drop     LocationRequest `json:"drop" validate:"required"`
	Category string          `json:"category" validate:"required,ride_category"`
}

type BookRideRequest struct {
	Pickup   LocationRequest `json:"pickup" validate:"required"`
	Drop     LocationRequest `json:"drop" validate:"required"`
	Category string          `json:"category" validate:"required,ride_category"`
	Notes    string          `json:"notes" validate:"omitempty,max=500"`
}

type UpdateDestinationRequest struct {
	Drop LocationRequest `json:"drop" validate:"required"`
}

type CancelRideRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=255"`
}

func ValidateEstimateFare(req *EstimateFareRequest) ValidationErrors {
	errors := ValidateStruct(req)
	return append(errors, validateTrip(req.Pickup, req.Drop)...)
}

func ValidateBookRide(req *BookRideRequest) ValidationErrors {
	errors := ValidateStruct(req)
	return append(errors, validateTrip(req.Pickup, req.Drop)...)
}

func ValidateUpdateDestination(req *UpdateDestinationRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateCancelRide(req *CancelRideRequest) ValidationErrors {
	return ValidateStruct(req)
}

// validateTrip applies the cross-field checks tag validation cannot express:
// the two ends must be distinct and the trip length plausible.
func validateTrip(pickup, drop LocationRequest) ValidationErrors {
	var errors ValidationErrors

	distance := utils.HaversineDistanceKM(pickup.Latitude, pickup.Longitude, drop.Latitude, drop.Longitude)

	if distance < utils.MinRideDistanceKM {
		errors = append(errors, ValidationError{
			Field:   "drop",
			Message: "Pickup and drop locations are too close together",
		})
	}

	if distance > utils.MaxRideDistanceKM {
		errors = append(errors, ValidationError{
			Field:   "drop",
			Message: "Ride distance exceeds the maximum supported",
		})
	}

	return errors
}
