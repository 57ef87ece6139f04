package db

import (
	"context"
	"errors"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

// ErrVehicleNotFound is returned when no vehicle has the requested id.
var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleStore defines the interface for vehicle data operations.
type VehicleStore interface {
	FindVehicles(ctx context.Context) ([]models.Vehicle, error)
	FindVehicleByID(ctx context.Context, vehicleID string) (*models.Vehicle, error)
	InsertVehicles(ctx context.Context, vehicles []models.Vehicle) error
	// FindFuelRecords returns the fuel records dated on or after since,
	// ordered by date then vehicle_id.
	FindFuelRecords(ctx context.Context, since models.Date) ([]models.FuelRecord, error)
	InsertFuelRecords(ctx context.Context, records []models.FuelRecord) error
}
