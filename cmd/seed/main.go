// Command seed fills the vehicles and fuel_data collections with a random
// demo fleet and its fuel history.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-dashboard/internal/config"
	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/models"
)

var vehicleTypes = []models.VehicleType{
	models.VehicleTruck,
	models.VehicleVan,
	models.VehicleCar,
	models.VehicleBus,
}

var idPrefix = map[models.VehicleType]string{
	models.VehicleTruck: "TRK",
	models.VehicleVan:   "VAN",
	models.VehicleCar:   "CAR",
	models.VehicleBus:   "BUS",
}

// Base fuel efficiency (MPG) by vehicle type.
var baseEfficiency = map[models.VehicleType]float64{
	models.VehicleTruck: 25,
	models.VehicleVan:   30,
	models.VehicleCar:   35,
	models.VehicleBus:   18,
}

const (
	// fuelHistoryVehicles is how many vehicles get fuel history.
	fuelHistoryVehicles = 50
	// fuelHistoryDays is the length of each vehicle's fuel history.
	fuelHistoryDays = 30
)

func randomStatus(r *rand.Rand) models.VehicleStatus {
	switch x := r.Float64(); {
	case x < 0.85:
		return models.StatusActive
	case x < 0.95:
		return models.StatusMaintenance
	default:
		return models.StatusInactive
	}
}

func randomVehicle(r *rand.Rand, n int, today models.Date) models.Vehicle {
	vtype := vehicleTypes[r.Intn(len(vehicleTypes))]
	efficiency := baseEfficiency[vtype] + (r.Float64()*8 - 3)
	last := today.AddDays(-(10 + r.Intn(171)))

	return models.Vehicle{
		VehicleID:       fmt.Sprintf("%s-%03d", idPrefix[vtype], n),
		Type:            vtype,
		Status:          randomStatus(r),
		FuelEfficiency:  math.Round(efficiency*10) / 10,
		LastMaintenance: &last,
		NextMaintenance: last.AddDays(30 + r.Intn(91)),
		Mileage:         15000 + r.Intn(65001),
	}
}

// generateFleet builds size vehicles numbered from 1.
func generateFleet(r *rand.Rand, size int, now time.Time) []models.Vehicle {
	today := models.DateOf(now)
	fleet := make([]models.Vehicle, 0, size)
	for i := 1; i <= size; i++ {
		fleet = append(fleet, randomVehicle(r, i, today))
	}
	return fleet
}

// generateFuelRecords builds fuelHistoryDays of history, ending today, for the
// first fuelHistoryVehicles vehicles. Vehicles that are not active log zeros.
func generateFuelRecords(r *rand.Rand, fleet []models.Vehicle, now time.Time) []models.FuelRecord {
	today := models.DateOf(now)
	n := len(fleet)
	if n > fuelHistoryVehicles {
		n = fuelHistoryVehicles
	}
	records := make([]models.FuelRecord, 0, n*fuelHistoryDays)
	for _, v := range fleet[:n] {
		for d := 0; d < fuelHistoryDays; d++ {
			rec := models.FuelRecord{VehicleID: v.VehicleID, Date: today.AddDays(-d)}
			if v.Status == models.StatusActive {
				distance := 100 + r.Float64()*300
				efficiency := v.FuelEfficiency + (r.Float64()*4 - 2)
				rec.DistanceTraveled = math.Round(distance*10) / 10
				rec.FuelEfficiency = math.Round(efficiency*10) / 10
				rec.FuelConsumed = math.Round(distance/efficiency*100) / 100
			}
			records = append(records, rec)
		}
	}
	return records
}

func seed(ctx context.Context, store db.VehicleStore, fleet []models.Vehicle, records []models.FuelRecord) error {
	if err := store.InsertVehicles(ctx, fleet); err != nil {
		return err
	}
	if err := store.InsertFuelRecords(ctx, records); err != nil {
		return fmt.Errorf("insert fuel records: %w", err)
	}
	log.WithFields(log.Fields{
		"vehicles":     len(fleet),
		"fuel_records": len(records),
	}).Info("Seeded fleet")
	return nil
}

func writeFleet(w io.Writer, fleet []models.Vehicle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fleet)
}

func run(ctx context.Context, args []string, out io.Writer, cfg *config.Config) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	size := fs.Int("size", cfg.FleetSize, "number of vehicles to generate")
	seedValue := fs.Int64("seed", time.Now().UnixNano(), "random seed")
	dryRun := fs.Bool("dry-run", false, "print the fleet as JSON instead of writing it")
	reset := fs.Bool("reset", false, "delete existing vehicles and fuel records first")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *size < 0 {
		return fmt.Errorf("invalid fleet size %d", *size)
	}

	r := rand.New(rand.NewSource(*seedValue))
	fleet := generateFleet(r, *size, time.Now())
	if *dryRun {
		return writeFleet(out, fleet)
	}

	if cfg.MongoURI == "" {
		return errors.New("MONGO_URI is not set")
	}
	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	store := db.NewMongoVehicleStore(client, cfg.MongoDB)
	if *reset {
		if err := store.DeleteAll(ctx); err != nil {
			return fmt.Errorf("reset vehicles: %w", err)
		}
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}
	return seed(ctx, store, fleet, generateFuelRecords(r, fleet, time.Now()))
}

func main() {
	cfg := config.Load()
	cfg.SetupLogging()

	log.WithFields(log.Fields{
		"fleet_size": cfg.FleetSize,
		"database":   cfg.MongoDB,
	}).Info("Starting fleet seeding")

	if err := run(context.Background(), os.Args[1:], os.Stdout, cfg); err != nil {
		log.WithError(err).Fatal("Seeding failed")
	}
}
