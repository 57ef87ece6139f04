package fleetapi

import (
	"github.com/ukydev/fleet-dashboard/internal/assistant"
	"github.com/ukydev/fleet-dashboard/internal/models"
)

// Fallback payloads, returned when the fleet API cannot be reached. Each
// call builds a fresh value so callers may modify what they receive.

// FallbackSummary is the fleet summary used when the API is down.
func FallbackSummary() models.FleetSummary {
	return models.FleetSummary{
		TotalVehicles:  98,
		ActiveVehicles: 92,
		FuelEfficiency: 28.5,
		MaintenanceDue: 12,
		MonthlySavings: 15000,
	}
}

// FallbackVehicles is the vehicle list used when the API is down.
func FallbackVehicles() []models.Vehicle {
	return []models.Vehicle{
		{VehicleID: "TRK-001", Type: models.VehicleTruck, Status: models.StatusActive, FuelEfficiency: 28.5, NextMaintenance: models.MustParseDate("2025-02-15")},
		{VehicleID: "VAN-002", Type: models.VehicleVan, Status: models.StatusActive, FuelEfficiency: 32.1, NextMaintenance: models.MustParseDate("2025-02-20")},
		{VehicleID: "TRK-003", Type: models.VehicleTruck, Status: models.StatusMaintenance, FuelEfficiency: 27.8, NextMaintenance: models.MustParseDate("2025-01-30")},
	}
}

// FallbackFuelTrends is the weekly fuel series used when the API is down.
func FallbackFuelTrends() models.FuelTrends {
	return models.FuelTrends{
		Labels:     []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		FuelUsage:  []float64{450, 420, 480, 390, 410, 440, 425},
		Efficiency: []float64{27.2, 28.1, 26.8, 29.2, 28.7, 28.5, 29.1},
	}
}

// FallbackAlerts is the maintenance alert list used when the API is down.
func FallbackAlerts() []models.MaintenanceAlert {
	return []models.MaintenanceAlert{
		{VehicleID: "TRK-A123", Type: models.VehicleTruck, NextMaintenance: models.MustParseDate("2025-01-28"), Mileage: 45000},
		{VehicleID: "VAN-B456", Type: models.VehicleVan, NextMaintenance: models.MustParseDate("2025-01-30"), Mileage: 38000},
		{VehicleID: "TRK-C789", Type: models.VehicleTruck, NextMaintenance: models.MustParseDate("2025-02-02"), Mileage: 52000},
	}
}

// FallbackPerformance is the performance panel data used when the API is
// down.
func FallbackPerformance() models.PerformanceMetrics {
	return models.PerformanceMetrics{
		WeeklyStats: models.WeeklyStats{
			DistanceCovered: 15420,
			FuelConsumed:    2856,
			AverageSpeed:    65.2,
			IdleTime:        8.5,
		},
		TopPerformers: []models.Performer{
			{VehicleID: "VAN-B456", Efficiency: 32.1, Score: 95},
			{VehicleID: "TRK-C789", Efficiency: 29.8, Score: 92},
			{VehicleID: "VAN-D012", Efficiency: 31.5, Score: 90},
		},
		Alerts: models.AlertCounts{Critical: 2, Warning: 5, Info: 8},
	}
}

// FallbackChat is the reply used when the chat endpoint is down.
func FallbackChat() models.ChatResponse {
	return models.ChatResponse{Response: assistant.UnavailableResponse}
}
