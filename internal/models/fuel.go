package models

// FuelRecord is one vehicle's fuel use on one day.
type FuelRecord struct {
	VehicleID        string  `json:"vehicle_id" bson:"vehicle_id"`
	Date             Date    `json:"date" bson:"date"`
	FuelConsumed     float64 `json:"fuel_consumed" bson:"fuel_consumed"`         // gallons
	DistanceTraveled float64 `json:"distance_traveled" bson:"distance_traveled"` // miles
	FuelEfficiency   float64 `json:"fuel_efficiency" bson:"fuel_efficiency"`     // MPG
}
