package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rideway/internal/models"
	"rideway/internal/repositories/interfaces"
	"rideway/internal/utils"
	"rideway/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookRideRequest is the typed create command. Commands name exactly the
// fields they may touch; there is no generic patch path into a ride.
type BookRideRequest struct {
	Pickup   models.Location
	Drop     models.Location
	Category models.RideCategory
	Notes    string
}

type UpdateDestinationRequest struct {
	NewDrop models.Location
}

type CancelRideRequest struct {
	Reason string
}

type RideService interface {
	EstimateFare(ctx context.Context, pickup, drop models.Location, category models.RideCategory) (*models.FareQuote, error)

	BookRide(ctx context.Context, riderID primitive.ObjectID, req *BookRideRequest) (*models.Ride, error)
	GetRide(ctx context.Context, callerID primitive.ObjectID, callerType models.UserType, rideID primitive.ObjectID) (*models.Ride, error)
	GetActiveRide(ctx context.Context, riderID primitive.ObjectID) (*models.Ride, error)
	ListRides(ctx context.Context, riderID primitive.ObjectID, status models.RideStatus, params *utils.PaginationParams) ([]*models.Ride, int64, error)
	UpdateDestination(ctx context.Context, riderID, rideID primitive.ObjectID, req *UpdateDestinationRequest) (*models.Ride, error)
	CancelRide(ctx context.Context, riderID, rideID primitive.ObjectID, req *CancelRideRequest) (*models.Ride, error)

	// Collaborator-driven transitions. Driver assignment comes from outside;
	// there is no matching algorithm here.
	AcceptRide(ctx context.Context, driverID, rideID primitive.ObjectID) (*models.Ride, error)
	StartRide(ctx context.Context, driverID, rideID primitive.ObjectID) (*models.Ride, error)
	CompleteRide(ctx context.Context, driverID, rideID primitive.ObjectID) (*models.Ride, error)
}

type rideService struct {
	rides  interfaces.RideRepository
	fares  FareService
	cache  CacheService
	logger *logger.Logger
}

func NewRideService(rides interfaces.RideRepository, fares FareService, cacheService CacheService, log *logger.Logger) RideService {
	return &rideService{
		rides:  rides,
		fares:  fares,
		cache:  cacheService,
		logger: log,
	}
}

func activeRideCacheKey(riderID primitive.ObjectID) string {
	return "rider_active_ride:" + riderID.Hex()
}

func bookingLockKey(riderID primitive.ObjectID) string {
	return "booking_lock:" + riderID.Hex()
}

func (s *rideService) EstimateFare(ctx context.Context, pickup, drop models.Location, category models.RideCategory) (*models.FareQuote, error) {
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	return s.fares.Quote(pickup, drop, category), nil
}

func (s *rideService) BookRide(ctx context.Context, riderID primitive.ObjectID, req *BookRideRequest) (*models.Ride, error) {
	if !req.Category.IsValid() {
		return nil, ErrInvalidCategory
	}

	// Serialize booking attempts per rider so two concurrent creates cannot
	// both pass the active-ride check.
	if s.cache != nil {
		acquired, err := s.cache.AcquireLock(ctx, bookingLockKey(riderID), utils.BookingLockTTL)
		if err == nil && !acquired {
			return nil, ErrActiveRideConflict
		}
		if err == nil {
			defer s.cache.ReleaseLock(ctx, bookingLockKey(riderID))
		}
	}

	_, err := s.rides.GetActiveByRider(ctx, riderID)
	if err == nil {
		return nil, ErrActiveRideConflict
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, fmt.Errorf("failed to check active ride: %w", err)
	}

	quote := s.fares.Quote(req.Pickup, req.Drop, req.Category)
	ride := newRide(riderID, req.Pickup, req.Drop, req.Category, req.Notes, quote, time.Now().UTC())

	err = s.rides.Create(ctx, ride)
	if err != nil {
		// The partial unique index catches a create that raced past the lock.
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, ErrActiveRideConflict
		}
		return nil, fmt.Errorf("failed to create ride: %w", err)
	}

	s.cacheActiveRide(ctx, ride)

	if s.logger != nil {
		s.logger.WithRideID(ride.ID).WithUserID(riderID).
			WithField("ride_number", ride.RideNumber).
			Info("ride booked")
	}

	return ride, nil
}

func (s *rideService) GetRide(ctx context.Context, callerID primitive.ObjectID, callerType models.UserType, rideID primitive.ObjectID) (*models.Ride, error) {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	if !rideVisibleTo(ride, callerID, callerType) {
		return nil, ErrRideNotFound
	}

	return ride, nil
}

func (s *rideService) GetActiveRide(ctx context.Context, riderID primitive.ObjectID) (*models.Ride, error) {
	if s.cache != nil {
		var cached models.Ride
		err := s.cache.Get(ctx, activeRideCacheKey(riderID), &cached)
		if err == nil && cached.IsActive() {
			return &cached, nil
		}
	}

	ride, err := s.rides.GetActiveByRider(ctx, riderID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to get active ride: %w", err)
	}

	s.cacheActiveRide(ctx, ride)

	return ride, nil
}

func (s *rideService) ListRides(ctx context.Context, riderID primitive.ObjectID, status models.RideStatus, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	rides, total, err := s.rides.ListByRider(ctx, riderID, status, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rides: %w", err)
	}

	return rides, total, nil
}

func (s *rideService) UpdateDestination(ctx context.Context, riderID, rideID primitive.ObjectID, req *UpdateDestinationRequest) (*models.Ride, error) {
	ride, err := s.getOwnedRide(ctx, riderID, rideID)
	if err != nil {
		return nil, err
	}

	// Re-quote against the unchanged pickup.
	quote := s.fares.Quote(ride.PickupLocation, req.NewDrop, ride.Category)

	transition, err := amendDestination(ride, req.NewDrop, quote, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	err = s.applyTransition(ctx, ride, transition)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.WithRideID(ride.ID).WithUserID(riderID).
			WithField("new_fare", ride.Fare.TotalFare).
			Info("ride destination updated")
	}

	return ride, nil
}

func (s *rideService) CancelRide(ctx context.Context, riderID, rideID primitive.ObjectID, req *CancelRideRequest) (*models.Ride, error) {
	ride, err := s.getOwnedRide(ctx, riderID, rideID)
	if err != nil {
		return nil, err
	}

	transition, err := cancelRide(ride, req.Reason, string(models.UserTypeRider), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	err = s.applyTransition(ctx, ride, transition)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.WithRideID(ride.ID).WithUserID(riderID).
			WithField("reason", req.Reason).
			Info("ride cancelled")
	}

	return ride, nil
}

func (s *rideService) AcceptRide(ctx context.Context, driverID, rideID primitive.ObjectID) (*models.Ride, error) {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	transition, err := assignDriver(ride, driverID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return ride, s.applyTransition(ctx, ride, transition)
}

func (s *rideService) StartRide(ctx context.Context, driverID, rideID primitive.ObjectID) (*models.Ride, error) {
	ride, err := s.getAssignedRide(ctx, driverID, rideID)
	if err != nil {
		return nil, err
	}

	transition, err := startRide(ride, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return ride, s.applyTransition(ctx, ride, transition)
}

func (s *rideService) CompleteRide(ctx context.Context, driverID, rideID primitive.ObjectID) (*models.Ride, error) {
	ride, err := s.getAssignedRide(ctx, driverID, rideID)
	if err != nil {
		return nil, err
	}

	transition, err := completeRide(ride, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	err = s.applyTransition(ctx, ride, transition)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.WithRideID(ride.ID).
			WithField("total_fare", ride.Fare.TotalFare).
			Info("ride completed")
	}

	return ride, nil
}

// getOwnedRide resolves a ride within the rider's visible scope. A ride that
// exists but belongs to someone else is indistinguishable from a missing one.
func (s *rideService) getOwnedRide(ctx context.Context, riderID, rideID primitive.ObjectID) (*models.Ride, error) {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	if ride.RiderID != riderID {
		return nil, ErrRideNotFound
	}

	return ride, nil
}

func (s *rideService) getAssignedRide(ctx context.Context, driverID, rideID primitive.ObjectID) (*models.Ride, error) {
	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	if ride.DriverID == nil || *ride.DriverID != driverID {
		return nil, ErrRideNotFound
	}

	return ride, nil
}

func (s *rideService) applyTransition(ctx context.Context, ride *models.Ride, transition *interfaces.RideTransition) error {
	err := s.rides.ApplyTransition(ctx, ride.ID, transition)
	if err != nil {
		if errors.Is(err, interfaces.ErrNoTransition) {
			return ErrRideNotModifiable
		}
		return fmt.Errorf("failed to apply ride transition: %w", err)
	}

	// The cached copy is stale either way; refresh or drop it.
	if ride.IsActive() {
		s.cacheActiveRide(ctx, ride)
	} else {
		s.invalidateActiveRide(ctx, ride.RiderID)
	}

	return nil
}

func (s *rideService) cacheActiveRide(ctx context.Context, ride *models.Ride) {
	if s.cache == nil {
		return
	}

	err := s.cache.Set(ctx, activeRideCacheKey(ride.RiderID), ride, utils.ActiveRideTTL)
	if err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("failed to cache active ride")
	}
}

func (s *rideService) invalidateActiveRide(ctx context.Context, riderID primitive.ObjectID) {
	if s.cache == nil {
		return
	}

	err := s.cache.Delete(ctx, activeRideCacheKey(riderID))
	if err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("failed to invalidate active ride cache")
	}
}

func rideVisibleTo(ride *models.Ride, callerID primitive.ObjectID, callerType models.UserType) bool {
	switch callerType {
	case models.UserTypeAdmin:
		return true
	case models.UserTypeDriver:
		// Drivers see unassigned pending rides and their own assignments.
		if ride.DriverID != nil {
			return *ride.DriverID == callerID
		}
		return ride.Status == models.RideStatusPending
	default:
		return ride.RiderID == callerID
	}
}
