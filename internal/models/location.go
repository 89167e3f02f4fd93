package models

// GeoPoint is a WGS84 coordinate pair. Latitude must be in [-90, 90] and
// longitude in [-180, 180]; the validators package enforces the range before
// a point reaches the fare estimator.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// Location pairs a human-readable address with its coordinates. It is a value
// type; two locations with equal fields are the same place.
type Location struct {
	Address     string   `json:"address" bson:"address"`
	Coordinates GeoPoint `json:"coordinates" bson:"coordinates"`
}
