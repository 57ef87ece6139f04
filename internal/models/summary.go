package models

// FleetSummary holds the headline numbers of the dashboard.
type FleetSummary struct {
	TotalVehicles  int     `json:"total_vehicles"`
	ActiveVehicles int     `json:"active_vehicles"`
	FuelEfficiency float64 `json:"fuel_efficiency"` // MPG
	MaintenanceDue int     `json:"maintenance_due"`
	MonthlySavings float64 `json:"monthly_savings"` // in USD
}

// FuelTrends is a daily fuel usage and efficiency series. The three slices
// are parallel.
type FuelTrends struct {
	Labels     []string  `json:"labels"`
	FuelUsage  []float64 `json:"fuel_usage"`
	Efficiency []float64 `json:"efficiency"`
}

// FuelTrendPoint is one day of a FuelTrends series.
type FuelTrendPoint struct {
	Label      string
	FuelUsage  float64
	Efficiency float64
}

// Points zips the series into per-day points. Missing values read as zero.
func (f FuelTrends) Points() []FuelTrendPoint {
	points := make([]FuelTrendPoint, 0, len(f.Labels))
	for i, label := range f.Labels {
		p := FuelTrendPoint{Label: label}
		if i < len(f.FuelUsage) {
			p.FuelUsage = f.FuelUsage[i]
		}
		if i < len(f.Efficiency) {
			p.Efficiency = f.Efficiency[i]
		}
		points = append(points, p)
	}
	return points
}

// WeeklyStats aggregates the last week of fleet operation.
type WeeklyStats struct {
	DistanceCovered float64 `json:"distance_covered"` // km
	FuelConsumed    float64 `json:"fuel_consumed"`    // liters
	AverageSpeed    float64 `json:"average_speed"`    // km/h
	IdleTime        float64 `json:"idle_time"`        // percent
}

// Performer is a vehicle ranked by efficiency score.
type Performer struct {
	VehicleID  string  `json:"vehicle_id"`
	Efficiency float64 `json:"efficiency"`
	Score      int     `json:"score"`
}

// AlertCounts counts alerts by severity.
type AlertCounts struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// PerformanceMetrics backs the performance panels of the dashboard.
type PerformanceMetrics struct {
	WeeklyStats   WeeklyStats `json:"weekly_stats"`
	TopPerformers []Performer `json:"top_performers"`
	Alerts        AlertCounts `json:"alerts"`
}
