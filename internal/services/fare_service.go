package services

import (
	"rideway/internal/models"
	"rideway/internal/utils"
)

// FareService is the fare estimator. It is pure: no I/O, no retained state
// beyond the configured rate, so the same instance serves pre-booking quotes
// and re-quotes on destination change without transactional concerns.
type FareService interface {
	DistanceKM(a, b models.GeoPoint) float64
	Quote(pickup, drop models.Location, category models.RideCategory) *models.FareQuote
}

type fareService struct {
	farePerKM float64
	currency  string
}

// NewFareService builds an estimator with the configured per-km rate. The
// rate is fixed for the process lifetime; injecting it here keeps tests
// deterministic.
func NewFareService(farePerKM float64, currency string) FareService {
	if farePerKM <= 0 {
		farePerKM = utils.DefaultFarePerKM
	}
	if currency == "" {
		currency = utils.DefaultCurrency
	}

	return &fareService{
		farePerKM: farePerKM,
		currency:  currency,
	}
}

// DistanceKM returns the estimated road distance between two points, rounded
// to two decimals. Callers validate coordinate ranges upstream.
func (s *fareService) DistanceKM(a, b models.GeoPoint) float64 {
	return utils.RoadDistanceKM(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// Quote computes the fare for a trip. The distance fare is clamped to the
// minimum fare before tax. BaseFare, GST and TotalFare are each rounded
// independently, so BaseFare+GST can drift from TotalFare by one cent; that
// behavior is intentional and pinned by tests.
func (s *fareService) Quote(pickup, drop models.Location, category models.RideCategory) *models.FareQuote {
	distance := s.DistanceKM(pickup.Coordinates, drop.Coordinates)

	raw := utils.BaseFareAmount + distance*s.farePerKM*category.Multiplier()
	adjusted := raw
	if adjusted < utils.MinimumFareAmount {
		adjusted = utils.MinimumFareAmount
	}

	gst := adjusted * utils.GSTRate
	total := adjusted + gst

	return &models.FareQuote{
		BaseFare:         utils.Round2(adjusted),
		GST:              utils.Round2(gst),
		TotalFare:        utils.Round2(total),
		DistanceKM:       distance,
		FarePerKM:        s.farePerKM,
		Category:         category,
		EstimatedMinutes: utils.EstimateETAMinutes(distance, utils.AverageSpeedKMH),
		Currency:         s.currency,
	}
}
