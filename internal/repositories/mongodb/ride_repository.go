package mongodb

import (
	"context"
	"fmt"
	"time"

	"rideway/internal/models"
	"rideway/internal/repositories/interfaces"
	"rideway/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type rideRepository struct {
	collection *mongo.Collection
}

func NewRideRepository(db *mongo.Database) interfaces.RideRepository {
	return &rideRepository{
		collection: db.Collection("rides"),
	}
}

func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	ride.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, ride)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create ride: %w", err)
	}

	return nil
}

func (r *rideRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	var ride models.Ride
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	return &ride, nil
}

func (r *rideRepository) GetByRideNumber(ctx context.Context, rideNumber string) (*models.Ride, error) {
	var ride models.Ride
	err := r.collection.FindOne(ctx, bson.M{"ride_number": rideNumber}).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ride by number: %w", err)
	}

	return &ride, nil
}

func (r *rideRepository) GetActiveByRider(ctx context.Context, riderID primitive.ObjectID) (*models.Ride, error) {
	filter := bson.M{
		"rider_id": riderID,
		"status":   bson.M{"$in": models.ActiveRideStatuses},
	}

	var ride models.Ride
	err := r.collection.FindOne(ctx, filter).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active ride: %w", err)
	}

	return &ride, nil
}

func (r *rideRepository) ListByRider(ctx context.Context, riderID primitive.ObjectID, status models.RideStatus, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	filter := bson.M{"rider_id": riderID}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count rides: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rides: %w", err)
	}
	defer cursor.Close(ctx)

	var rides []*models.Ride
	err = cursor.All(ctx, &rides)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode rides: %w", err)
	}

	return rides, total, nil
}

// ApplyTransition performs the guarded, atomic state-machine step: the field
// updates and the history append go in one UpdateOne, filtered on the status
// the transition is legal from. A ride that moved on concurrently matches
// nothing and the caller sees ErrNoTransition.
func (r *rideRepository) ApplyTransition(ctx context.Context, id primitive.ObjectID, transition *interfaces.RideTransition) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	for field, value := range transition.Set {
		set[field] = value
	}

	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": transition.FromStatuses},
	}
	update := bson.M{
		"$set":  set,
		"$push": bson.M{"history": transition.History},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to apply transition: %w", err)
	}

	if result.MatchedCount == 0 {
		return interfaces.ErrNoTransition
	}

	return nil
}
