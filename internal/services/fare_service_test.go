package services

import (
	"math"
	"testing"

	"rideway/internal/models"
	"rideway/internal/utils"
)

func location(address string, lat, lng float64) models.Location {
	return models.Location{
		Address: address,
		Coordinates: models.GeoPoint{
			Latitude:  lat,
			Longitude: lng,
		},
	}
}

var (
	dadarStation = location("Dadar Station, Mumbai", 19.0760, 72.8777)
	mahimBay     = location("Mahim Bay, Mumbai", 19.0896, 72.8656)
)

func TestFareServiceDistanceKM(t *testing.T) {
	svc := NewFareService(15, "INR")

	got := svc.DistanceKM(dadarStation.Coordinates, mahimBay.Coordinates)
	if math.Abs(got-2.37) > 0.05 {
		t.Errorf("DistanceKM() = %v, want ~2.37", got)
	}

	if svc.DistanceKM(dadarStation.Coordinates, dadarStation.Coordinates) != 0 {
		t.Error("DistanceKM() for the same point should be 0")
	}
}

func TestFareServiceQuote(t *testing.T) {
	tests := []struct {
		name         string
		pickup       models.Location
		drop         models.Location
		category     models.RideCategory
		wantBase     float64
		wantGST      float64
		wantTotal    float64
		wantDistance float64
		wantMinutes  int
	}{
		{
			name:         "economy across Mumbai",
			pickup:       dadarStation,
			drop:         mahimBay,
			category:     models.RideCategoryEconomy,
			wantBase:     85.55,
			wantGST:      15.40,
			wantTotal:    100.95,
			wantDistance: 2.37,
			wantMinutes:  5,
		},
		{
			name:         "premium across Mumbai",
			pickup:       dadarStation,
			drop:         mahimBay,
			category:     models.RideCategoryPremium,
			wantBase:     103.33,
			wantGST:      18.60,
			wantTotal:    121.92,
			wantDistance: 2.37,
			wantMinutes:  5,
		},
		{
			name:         "luxury across Mumbai",
			pickup:       dadarStation,
			drop:         mahimBay,
			category:     models.RideCategoryLuxury,
			wantBase:     121.10,
			wantGST:      21.80,
			wantTotal:    142.90,
			wantDistance: 2.37,
			wantMinutes:  5,
		},
		{
			name:         "zero distance clamps to the minimum fare",
			pickup:       dadarStation,
			drop:         dadarStation,
			category:     models.RideCategoryEconomy,
			wantBase:     80.00,
			wantGST:      14.40,
			wantTotal:    94.40,
			wantDistance: 0,
			wantMinutes:  0,
		},
	}

	svc := NewFareService(15, "INR")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := svc.Quote(tt.pickup, tt.drop, tt.category)

			if quote.BaseFare != tt.wantBase {
				t.Errorf("BaseFare = %v, want %v", quote.BaseFare, tt.wantBase)
			}
			if quote.GST != tt.wantGST {
				t.Errorf("GST = %v, want %v", quote.GST, tt.wantGST)
			}
			if quote.TotalFare != tt.wantTotal {
				t.Errorf("TotalFare = %v, want %v", quote.TotalFare, tt.wantTotal)
			}
			if quote.DistanceKM != tt.wantDistance {
				t.Errorf("DistanceKM = %v, want %v", quote.DistanceKM, tt.wantDistance)
			}
			if quote.EstimatedMinutes != tt.wantMinutes {
				t.Errorf("EstimatedMinutes = %v, want %v", quote.EstimatedMinutes, tt.wantMinutes)
			}
			if quote.Category != tt.category {
				t.Errorf("Category = %v, want %v", quote.Category, tt.category)
			}
			if quote.Currency != "INR" {
				t.Errorf("Currency = %v, want INR", quote.Currency)
			}
			if quote.FarePerKM != 15 {
				t.Errorf("FarePerKM = %v, want 15", quote.FarePerKM)
			}
		})
	}
}

// A short trip whose distance fare lands below the floor pays the minimum
// regardless of category multiplier differences at that distance.
func TestFareServiceQuoteMinimumFare(t *testing.T) {
	svc := NewFareService(15, "INR")

	// 1.33 km apart, economy raw fare is 50 + 1.33*15 = 69.95, below the floor.
	nearby := location("Shivaji Park", 19.0282, 72.8565)
	closeBy := location("Dadar West", 19.0382, 72.8565)

	quote := svc.Quote(nearby, closeBy, models.RideCategoryEconomy)
	if quote.BaseFare != utils.MinimumFareAmount {
		t.Errorf("BaseFare = %v, want minimum %v", quote.BaseFare, utils.MinimumFareAmount)
	}
	if quote.GST != 14.40 {
		t.Errorf("GST = %v, want 14.40", quote.GST)
	}
	if quote.TotalFare != 94.40 {
		t.Errorf("TotalFare = %v, want 94.40", quote.TotalFare)
	}
}

func TestFareServiceQuoteCategoryOrdering(t *testing.T) {
	svc := NewFareService(15, "INR")

	economy := svc.Quote(dadarStation, mahimBay, models.RideCategoryEconomy)
	premium := svc.Quote(dadarStation, mahimBay, models.RideCategoryPremium)
	luxury := svc.Quote(dadarStation, mahimBay, models.RideCategoryLuxury)

	if premium.TotalFare < economy.TotalFare {
		t.Errorf("premium total %v < economy total %v", premium.TotalFare, economy.TotalFare)
	}
	if luxury.TotalFare < premium.TotalFare {
		t.Errorf("luxury total %v < premium total %v", luxury.TotalFare, premium.TotalFare)
	}
}

func TestFareServiceQuoteMonotonicInDistance(t *testing.T) {
	svc := NewFareService(15, "INR")

	base := svc.Quote(dadarStation, mahimBay, models.RideCategoryEconomy)
	farther := svc.Quote(dadarStation, location("Thane", 19.2183, 72.9781), models.RideCategoryEconomy)

	if farther.DistanceKM <= base.DistanceKM {
		t.Fatalf("expected farther trip, got %v <= %v", farther.DistanceKM, base.DistanceKM)
	}
	if farther.TotalFare < base.TotalFare {
		t.Errorf("longer trip got cheaper fare: %v < %v", farther.TotalFare, base.TotalFare)
	}
}

// BaseFare, GST and TotalFare are each rounded independently, so the rounded
// parts can drift from the rounded total by one cent. That matches the metered
// behavior and must not be "fixed" by deriving total from the rounded parts.
func TestFareServiceQuoteIndependentRounding(t *testing.T) {
	svc := NewFareService(15, "INR")

	// This pair yields distance 3.25 km: base 98.75, gst 17.77, total 116.53,
	// while 98.75 + 17.77 = 116.52.
	pickup := location("Origin", 0, 0)
	drop := location("Meridian point", 0.02436, 0)

	quote := svc.Quote(pickup, drop, models.RideCategoryEconomy)

	if quote.DistanceKM != 3.25 {
		t.Fatalf("DistanceKM = %v, want 3.25", quote.DistanceKM)
	}
	if quote.BaseFare != 98.75 || quote.GST != 17.77 || quote.TotalFare != 116.53 {
		t.Fatalf("quote = %v/%v/%v, want 98.75/17.77/116.53", quote.BaseFare, quote.GST, quote.TotalFare)
	}
	if quote.BaseFare+quote.GST == quote.TotalFare {
		t.Error("expected one-cent drift between parts and total for this distance")
	}
}

func TestNewFareServiceDefaults(t *testing.T) {
	svc := NewFareService(0, "")

	quote := svc.Quote(dadarStation, mahimBay, models.RideCategoryEconomy)
	if quote.FarePerKM != utils.DefaultFarePerKM {
		t.Errorf("FarePerKM = %v, want default %v", quote.FarePerKM, utils.DefaultFarePerKM)
	}
	if quote.Currency != utils.DefaultCurrency {
		t.Errorf("Currency = %v, want default %v", quote.Currency, utils.DefaultCurrency)
	}
}
