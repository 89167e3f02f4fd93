package interfaces

import (
	"context"

	"rideway/internal/models"
	"rideway/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RideTransition describes one state-machine step as the persistence layer
// must apply it: the statuses it is legal from, the fields it changes, and
// the single history entry it appends. Field updates and the history append
// land in one atomic write or not at all.
type RideTransition struct {
	FromStatuses []models.RideStatus
	Set          map[string]interface{}
	History      models.HistoryEntry
}

type RideRepository interface {
	Create(ctx context.Context, ride *models.Ride) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error)
	GetByRideNumber(ctx context.Context, rideNumber string) (*models.Ride, error)

	// GetActiveByRider returns the rider's single non-terminal ride, or
	// ErrNotFound when the rider has none.
	GetActiveByRider(ctx context.Context, riderID primitive.ObjectID) (*models.Ride, error)

	// ListByRider returns the rider's rides ordered by creation time
	// descending, optionally filtered by status, plus the total count.
	ListByRider(ctx context.Context, riderID primitive.ObjectID, status models.RideStatus, params *utils.PaginationParams) ([]*models.Ride, int64, error)

	// ApplyTransition applies the transition to the ride if and only if its
	// current status is one of transition.FromStatuses. Returns
	// ErrNoTransition when the guard does not match.
	ApplyTransition(ctx context.Context, id primitive.ObjectID, transition *RideTransition) error
}
