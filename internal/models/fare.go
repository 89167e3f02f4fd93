package models

// FareQuote is the output of the fare estimator. It is produced fresh for
// every estimate request and for every destination change, and is never
// stored on its own; booking copies the relevant figures onto the Ride.
//
// BaseFare is the distance fare after the minimum-fare clamp, GST the 18%
// tax on it, and TotalFare their sum. Each figure is rounded to two decimal
// places independently, so BaseFare+GST may differ from TotalFare by one
// cent in the last place.
type FareQuote struct {
	BaseFare         float64      `json:"base_fare"`
	GST              float64      `json:"gst"`
	TotalFare        float64      `json:"total_fare"`
	DistanceKM       float64      `json:"distance_km"`
	FarePerKM        float64      `json:"fare_per_km"`
	Category         RideCategory `json:"category"`
	EstimatedMinutes int          `json:"estimated_minutes"`
	Currency         string       `json:"currency"`
}
