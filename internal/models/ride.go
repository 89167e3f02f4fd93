package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideStatus string
type RideCategory string
type HistoryAction string

const (
	RideStatusPending   RideStatus = "pending"
	RideStatusAccepted  RideStatus = "accepted"
	RideStatusStarted   RideStatus = "started"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"

	RideCategoryEconomy RideCategory = "economy"
	RideCategoryPremium RideCategory = "premium"
	RideCategoryLuxury  RideCategory = "luxury"

	HistoryActionCreated            HistoryAction = "created"
	HistoryActionAccepted           HistoryAction = "accepted"
	HistoryActionStarted            HistoryAction = "started"
	HistoryActionDestinationUpdated HistoryAction = "destination_updated"
	HistoryActionCompleted          HistoryAction = "completed"
	HistoryActionCancelled          HistoryAction = "cancelled"
)

// ActiveRideStatuses are the non-terminal statuses. A rider may hold at most
// one ride in any of these at a time.
var ActiveRideStatuses = []RideStatus{
	RideStatusPending,
	RideStatusAccepted,
	RideStatusStarted,
}

// Multiplier returns the fixed fare multiplier for the category. Unknown
// categories are rejected by the validators before they reach fare math, so
// the zero return is never observable through the API.
func (c RideCategory) Multiplier() float64 {
	switch c {
	case RideCategoryEconomy:
		return 1.0
	case RideCategoryPremium:
		return 1.5
	case RideCategoryLuxury:
		return 2.0
	}
	return 0
}

func (c RideCategory) IsValid() bool {
	return c.Multiplier() > 0
}

// IsTerminal reports whether no further transition may leave the status.
func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// HistoryEntry is one record in a ride's append-only audit trail. Entries are
// never mutated or removed; insertion order is the chronological order of the
// transitions they record.
type HistoryEntry struct {
	Action    HistoryAction `json:"action" bson:"action"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
	Details   string        `json:"details" bson:"details"`
}

// Fare is the money side of a ride, re-seeded from a fresh quote whenever the
// destination changes.
type Fare struct {
	BaseFare  float64 `json:"base_fare" bson:"base_fare"`
	GST       float64 `json:"gst" bson:"gst"`
	TotalFare float64 `json:"total_fare" bson:"total_fare"`
	Currency  string  `json:"currency" bson:"currency"`
}

type Ride struct {
	ID                 primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	RideNumber         string              `json:"ride_number" bson:"ride_number"`
	RiderID            primitive.ObjectID  `json:"rider_id" bson:"rider_id"`
	DriverID           *primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	Category           RideCategory        `json:"category" bson:"category"`
	Status             RideStatus          `json:"status" bson:"status"`
	PickupLocation     Location            `json:"pickup_location" bson:"pickup_location"`
	DropLocation       Location            `json:"drop_location" bson:"drop_location"`
	OriginalDropLocation Location          `json:"original_drop_location" bson:"original_drop_location"`
	DistanceKM         float64             `json:"distance_km" bson:"distance_km"`
	EstimatedMinutes   int                 `json:"estimated_minutes" bson:"estimated_minutes"`
	Fare               Fare                `json:"fare" bson:"fare"`
	Notes              string              `json:"notes" bson:"notes"`
	CancellationReason string              `json:"cancellation_reason,omitempty" bson:"cancellation_reason,omitempty"`
	CancelledBy        string              `json:"cancelled_by,omitempty" bson:"cancelled_by,omitempty"`
	History            []HistoryEntry      `json:"history" bson:"history"`
	CreatedAt          time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at" bson:"updated_at"`
}

// IsActive reports whether the ride still occupies the rider's single
// active-ride slot.
func (r *Ride) IsActive() bool {
	return !r.Status.IsTerminal()
}
