package services

import (
	"fmt"
	"time"

	"rideway/internal/models"
	"rideway/internal/repositories/interfaces"
	"rideway/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ride lifecycle transitions. Each function takes the full before-state and
// an intent, checks the status guard before touching anything, and on success
// mutates the ride in place, appends exactly one history entry, and returns
// the equivalent RideTransition for the persistence layer to apply
// atomically. On a guard failure the ride is returned untouched with
// ErrRideNotModifiable.

// newRide seeds a pending ride from a validated booking request and its fare
// quote. The original drop location is captured here and never overwritten.
func newRide(riderID primitive.ObjectID, pickup, drop models.Location, category models.RideCategory, notes string, quote *models.FareQuote, now time.Time) *models.Ride {
	return &models.Ride{
		RideNumber:           utils.GenerateRideNumber(),
		RiderID:              riderID,
		Category:             category,
		Status:               models.RideStatusPending,
		PickupLocation:       pickup,
		DropLocation:         drop,
		OriginalDropLocation: drop,
		DistanceKM:           quote.DistanceKM,
		EstimatedMinutes:     quote.EstimatedMinutes,
		Fare: models.Fare{
			BaseFare:  quote.BaseFare,
			GST:       quote.GST,
			TotalFare: quote.TotalFare,
			Currency:  quote.Currency,
		},
		Notes: notes,
		History: []models.HistoryEntry{
			{
				Action:    models.HistoryActionCreated,
				Timestamp: now,
				Details:   fmt.Sprintf("Ride requested from %s to %s", pickup.Address, drop.Address),
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func cancelRide(ride *models.Ride, reason, cancelledBy string, now time.Time) (*interfaces.RideTransition, error) {
	if !statusIn(ride.Status, models.RideStatusPending, models.RideStatusAccepted) {
		return nil, ErrRideNotModifiable
	}

	entry := models.HistoryEntry{
		Action:    models.HistoryActionCancelled,
		Timestamp: now,
		Details:   fmt.Sprintf("Ride cancelled by %s: %s", cancelledBy, reason),
	}

	transition := &interfaces.RideTransition{
		FromStatuses: []models.RideStatus{models.RideStatusPending, models.RideStatusAccepted},
		Set: map[string]interface{}{
			"status":              models.RideStatusCancelled,
			"cancellation_reason": reason,
			"cancelled_by":        cancelledBy,
		},
		History: entry,
	}

	ride.Status = models.RideStatusCancelled
	ride.CancellationReason = reason
	ride.CancelledBy = cancelledBy
	ride.History = append(ride.History, entry)
	ride.UpdatedAt = now

	return transition, nil
}

func amendDestination(ride *models.Ride, newDrop models.Location, quote *models.FareQuote, now time.Time) (*interfaces.RideTransition, error) {
	if !statusIn(ride.Status, models.RideStatusAccepted, models.RideStatusStarted) {
		return nil, ErrRideNotModifiable
	}

	fare := models.Fare{
		BaseFare:  quote.BaseFare,
		GST:       quote.GST,
		TotalFare: quote.TotalFare,
		Currency:  quote.Currency,
	}

	entry := models.HistoryEntry{
		Action:    models.HistoryActionDestinationUpdated,
		Timestamp: now,
		Details:   fmt.Sprintf("Destination changed to %s, new fare %s", newDrop.Address, utils.FormatCurrency(fare.TotalFare, fare.Currency)),
	}

	transition := &interfaces.RideTransition{
		FromStatuses: []models.RideStatus{models.RideStatusAccepted, models.RideStatusStarted},
		Set: map[string]interface{}{
			"drop_location":     newDrop,
			"distance_km":       quote.DistanceKM,
			"estimated_minutes": quote.EstimatedMinutes,
			"fare":              fare,
		},
		History: entry,
	}

	ride.DropLocation = newDrop
	ride.DistanceKM = quote.DistanceKM
	ride.EstimatedMinutes = quote.EstimatedMinutes
	ride.Fare = fare
	ride.History = append(ride.History, entry)
	ride.UpdatedAt = now

	return transition, nil
}

func assignDriver(ride *models.Ride, driverID primitive.ObjectID, now time.Time) (*interfaces.RideTransition, error) {
	if ride.Status != models.RideStatusPending {
		return nil, ErrRideNotModifiable
	}

	entry := models.HistoryEntry{
		Action:    models.HistoryActionAccepted,
		Timestamp: now,
		Details:   fmt.Sprintf("Ride accepted by driver %s", driverID.Hex()),
	}

	transition := &interfaces.RideTransition{
		FromStatuses: []models.RideStatus{models.RideStatusPending},
		Set: map[string]interface{}{
			"status":    models.RideStatusAccepted,
			"driver_id": driverID,
		},
		History: entry,
	}

	ride.Status = models.RideStatusAccepted
	ride.DriverID = &driverID
	ride.History = append(ride.History, entry)
	ride.UpdatedAt = now

	return transition, nil
}

func startRide(ride *models.Ride, now time.Time) (*interfaces.RideTransition, error) {
	if ride.Status != models.RideStatusAccepted {
		return nil, ErrRideNotModifiable
	}

	entry := models.HistoryEntry{
		Action:    models.HistoryActionStarted,
		Timestamp: now,
		Details:   "Trip started",
	}

	transition := &interfaces.RideTransition{
		FromStatuses: []models.RideStatus{models.RideStatusAccepted},
		Set: map[string]interface{}{
			"status": models.RideStatusStarted,
		},
		History: entry,
	}

	ride.Status = models.RideStatusStarted
	ride.History = append(ride.History, entry)
	ride.UpdatedAt = now

	return transition, nil
}

func completeRide(ride *models.Ride, now time.Time) (*interfaces.RideTransition, error) {
	if ride.Status != models.RideStatusStarted {
		return nil, ErrRideNotModifiable
	}

	entry := models.HistoryEntry{
		Action:    models.HistoryActionCompleted,
		Timestamp: now,
		Details:   fmt.Sprintf("Trip completed, fare %s", utils.FormatCurrency(ride.Fare.TotalFare, ride.Fare.Currency)),
	}

	transition := &interfaces.RideTransition{
		FromStatuses: []models.RideStatus{models.RideStatusStarted},
		Set: map[string]interface{}{
			"status": models.RideStatusCompleted,
		},
		History: entry,
	}

	ride.Status = models.RideStatusCompleted
	ride.History = append(ride.History, entry)
	ride.UpdatedAt = now

	return transition, nil
}

func statusIn(status models.RideStatus, allowed ...models.RideStatus) bool {
	for _, s := range allowed {
		if status == s {
			return true
		}
	}
	return false
}
