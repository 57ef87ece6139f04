package db

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

// MemoryStore is a VehicleStore held in process memory. It is used when no
// MongoDB is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	vehicles map[string]models.Vehicle
	fuel     map[fuelKey]models.FuelRecord
}

type fuelKey struct {
	vehicleID string
	date      string
}

// NewMemoryStore creates a store holding vehicles.
func NewMemoryStore(vehicles ...models.Vehicle) *MemoryStore {
	s := &MemoryStore{
		vehicles: make(map[string]models.Vehicle, len(vehicles)),
		fuel:     make(map[fuelKey]models.FuelRecord),
	}
	for _, v := range vehicles {
		s.vehicles[v.VehicleID] = v
	}
	return s
}

// FindVehicles returns every vehicle ordered by vehicle_id.
func (s *MemoryStore) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VehicleID < out[j].VehicleID })
	return out, nil
}

// FindVehicleByID finds a vehicle by its fleet id.
func (s *MemoryStore) FindVehicleByID(ctx context.Context, vehicleID string) (*models.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vehicles[vehicleID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVehicleNotFound, vehicleID)
	}
	return &v, nil
}

// InsertVehicles adds vehicles, replacing any with the same vehicle_id.
func (s *MemoryStore) InsertVehicles(ctx context.Context, vehicles []models.Vehicle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range vehicles {
		s.vehicles[v.VehicleID] = v
	}
	return nil
}

// FindFuelRecords returns the records dated on or after since, ordered by
// date then vehicle_id.
func (s *MemoryStore) FindFuelRecords(ctx context.Context, since models.Date) ([]models.FuelRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FuelRecord, 0, len(s.fuel))
	for _, r := range s.fuel {
		if !r.Date.Before(since) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].VehicleID < out[j].VehicleID
	})
	return out, nil
}

// InsertFuelRecords adds records, replacing any for the same vehicle and day.
func (s *MemoryStore) InsertFuelRecords(ctx context.Context, records []models.FuelRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.fuel[fuelKey{vehicleID: r.VehicleID, date: r.Date.String()}] = r
	}
	return nil
}

// MockFleet is the demo fleet served when no database is configured.
func MockFleet() []models.Vehicle {
	return []models.Vehicle{
		{VehicleID: "TRK-001", Type: models.VehicleTruck, Status: models.StatusActive, FuelEfficiency: 28.5, NextMaintenance: models.MustParseDate("2025-02-15"), Mileage: 45000},
		{VehicleID: "VAN-002", Type: models.VehicleVan, Status: models.StatusActive, FuelEfficiency: 32.1, NextMaintenance: models.MustParseDate("2025-02-20"), Mileage: 38000},
		{VehicleID: "TRK-003", Type: models.VehicleTruck, Status: models.StatusMaintenance, FuelEfficiency: 27.8, NextMaintenance: models.MustParseDate("2025-01-30"), Mileage: 52000},
		{VehicleID: "VAN-004", Type: models.VehicleVan, Status: models.StatusActive, FuelEfficiency: 30.2, NextMaintenance: models.MustParseDate("2025-02-10"), Mileage: 41000},
		{VehicleID: "CAR-005", Type: models.VehicleCar, Status: models.StatusActive, FuelEfficiency: 35.1, NextMaintenance: models.MustParseDate("2025-02-25"), Mileage: 28000},
		{VehicleID: "BUS-006", Type: models.VehicleBus, Status: models.StatusActive, FuelEfficiency: 18.5, NextMaintenance: models.MustParseDate("2025-02-05"), Mileage: 67000},
		{VehicleID: "TRK-007", Type: models.VehicleTruck, Status: models.StatusActive, FuelEfficiency: 26.8, NextMaintenance: models.MustParseDate("2025-02-18"), Mileage: 49000},
		{VehicleID: "VAN-008", Type: models.VehicleVan, Status: models.StatusInactive, FuelEfficiency: 31.5, NextMaintenance: models.MustParseDate("2025-03-01"), Mileage: 35000},
	}
}

var mockFuelSwing = [...]float64{-1.2, -0.4, 0, 0.6, 1.1}

// MockFuelRecords returns days of fuel history for MockFleet ending at today.
// Vehicles that are not active log zero distance and fuel.
func MockFuelRecords(today models.Date, days int) []models.FuelRecord {
	fleet := MockFleet()
	records := make([]models.FuelRecord, 0, days*len(fleet))
	for d := 0; d < days; d++ {
		date := today.AddDays(-d)
		for i, v := range fleet {
			r := models.FuelRecord{VehicleID: v.VehicleID, Date: date}
			if v.Status == models.StatusActive {
				k := (i + d) % len(mockFuelSwing)
				r.DistanceTraveled = float64(150 + 25*k)
				r.FuelEfficiency = math.Round((v.FuelEfficiency+mockFuelSwing[k])*10) / 10
				r.FuelConsumed = math.Round(r.DistanceTraveled/r.FuelEfficiency*100) / 100
			}
			records = append(records, r)
		}
	}
	return records
}
