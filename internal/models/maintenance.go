package models

// MaintenanceAlert is a maintenance-due record for a vehicle.
type MaintenanceAlert struct {
	VehicleID       string      `json:"vehicle_id" bson:"vehicle_id"`
	Type            VehicleType `json:"type" bson:"type"`
	NextMaintenance Date        `json:"next_maintenance" bson:"next_maintenance"`
	Mileage         int         `json:"mileage" bson:"mileage"` // in kilometers
}

// RiskFactors lists the inputs a maintenance prediction was derived from.
type RiskFactors struct {
	Mileage              int `json:"mileage"`
	DaysUntilMaintenance int `json:"days_until_maintenance"`
}

// Prediction is the outcome of a maintenance prediction for one vehicle.
type Prediction struct {
	VehicleID        string       `json:"vehicle_id"`
	NeedsMaintenance bool         `json:"needs_maintenance"`
	Probability      float64      `json:"probability"` // 0..1
	RecommendedDate  Date         `json:"recommended_date"`
	RiskFactors      *RiskFactors `json:"risk_factors,omitempty"`
}

// PredictRequest is the body of a prediction request.
type PredictRequest struct {
	VehicleID string `json:"vehicle_id"`
}
