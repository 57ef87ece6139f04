package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-dashboard/internal/models"
)

func TestMemoryStore_FindVehicles(t *testing.T) {
	store := NewMemoryStore(MockFleet()...)

	vehicles, err := store.FindVehicles(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 8)

	ids := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		ids = append(ids, v.VehicleID)
	}
	assert.Equal(t, []string{"BUS-006", "CAR-005", "TRK-001", "TRK-003", "TRK-007", "VAN-002", "VAN-004", "VAN-008"}, ids)
}

func TestMemoryStore_FindVehicleByID(t *testing.T) {
	store := NewMemoryStore(MockFleet()...)

	v, err := store.FindVehicleByID(context.Background(), "BUS-006")
	require.NoError(t, err)
	assert.Equal(t, models.VehicleBus, v.Type)
	assert.Equal(t, 67000, v.Mileage)

	_, err = store.FindVehicleByID(context.Background(), "TRK-999")
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestMemoryStore_InsertVehiclesReplaces(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.InsertVehicles(ctx, MockFleet()[:1]))
	updated := MockFleet()[0]
	updated.Status = models.StatusInactive
	require.NoError(t, store.InsertVehicles(ctx, []models.Vehicle{updated}))

	vehicles, err := store.FindVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, models.StatusInactive, vehicles[0].Status)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore(MockFleet()...)
	v, err := store.FindVehicleByID(context.Background(), "TRK-001")
	require.NoError(t, err)
	v.Mileage = 0

	again, err := store.FindVehicleByID(context.Background(), "TRK-001")
	require.NoError(t, err)
	assert.Equal(t, 45000, again.Mileage)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	store := NewMemoryStore(MockFleet()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.FindVehicles(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockFleet_Valid(t *testing.T) {
	for _, v := range MockFleet() {
		assert.True(t, models.IsValidVehicleType(v.Type), v.VehicleID)
		assert.True(t, models.IsValidStatus(v.Status), v.VehicleID)
		assert.False(t, v.NextMaintenance.IsZero(), v.VehicleID)
	}
}

func TestMemoryStore_FindFuelRecordsSince(t *testing.T) {
	store := NewMemoryStore(MockFleet()...)
	ctx := context.Background()
	today := models.MustParseDate("2025-01-27")
	require.NoError(t, store.InsertFuelRecords(ctx, MockFuelRecords(today, 30)))

	records, err := store.FindFuelRecords(ctx, today.AddDays(-6))
	require.NoError(t, err)
	require.Len(t, records, 7*len(MockFleet()))
	assert.Equal(t, "2025-01-21", records[0].Date.String())
	assert.Equal(t, "BUS-006", records[0].VehicleID)
	assert.Equal(t, "2025-01-27", records[len(records)-1].Date.String())
	assert.Equal(t, "VAN-008", records[len(records)-1].VehicleID)

	none, err := store.FindFuelRecords(ctx, today.AddDays(1))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStore_InsertFuelRecordsReplacesSameDay(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	day := models.MustParseDate("2025-01-27")

	require.NoError(t, store.InsertFuelRecords(ctx, []models.FuelRecord{{VehicleID: "TRK-001", Date: day, FuelConsumed: 5}}))
	require.NoError(t, store.InsertFuelRecords(ctx, []models.FuelRecord{{VehicleID: "TRK-001", Date: day, FuelConsumed: 7}}))

	records, err := store.FindFuelRecords(ctx, day)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 7.0, records[0].FuelConsumed)
}

func TestMockFuelRecords(t *testing.T) {
	today := models.MustParseDate("2025-01-27")
	records := MockFuelRecords(today, 2)
	require.Len(t, records, 2*len(MockFleet()))

	first := records[0]
	assert.Equal(t, "TRK-001", first.VehicleID)
	assert.Equal(t, today, first.Date)
	assert.Equal(t, 150.0, first.DistanceTraveled)
	assert.Equal(t, 27.3, first.FuelEfficiency)
	assert.Equal(t, 5.49, first.FuelConsumed)

	for _, r := range records {
		if r.VehicleID == "TRK-003" || r.VehicleID == "VAN-008" {
			assert.Zero(t, r.FuelConsumed, r.VehicleID)
			assert.Zero(t, r.DistanceTraveled, r.VehicleID)
		}
	}
}
