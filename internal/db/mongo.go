package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ukydev/fleet-dashboard/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VehiclesCollection is the collection holding the fleet.
const VehiclesCollection = "vehicles"

// FuelCollection holds the daily fuel records of each vehicle.
const FuelCollection = "fuel_data"

const pingTimeout = 10 * time.Second

var errNilCollection = errors.New("mongo collection is nil")

// ConnectMongo connects to MongoDB at uri and verifies the connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// MongoVehicleStore keeps vehicles in a MongoDB collection keyed by
// vehicle_id, with their fuel records in a second collection.
type MongoVehicleStore struct {
	Collection     *mongo.Collection
	FuelCollection *mongo.Collection
}

// NewMongoVehicleStore returns a store over the vehicles and fuel_data
// collections of dbName.
func NewMongoVehicleStore(client *mongo.Client, dbName string) *MongoVehicleStore {
	database := client.Database(dbName)
	return &MongoVehicleStore{
		Collection:     database.Collection(VehiclesCollection),
		FuelCollection: database.Collection(FuelCollection),
	}
}

// EnsureIndexes creates the unique vehicle_id index and the unique
// (vehicle_id, date) fuel record index.
func (s *MongoVehicleStore) EnsureIndexes(ctx context.Context) error {
	if s.Collection == nil || s.FuelCollection == nil {
		return errNilCollection
	}
	_, err := s.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "vehicle_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create vehicle_id index: %w", err)
	}
	_, err = s.FuelCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "vehicle_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create fuel record index: %w", err)
	}
	return nil
}

// FindVehicles returns every vehicle ordered by vehicle_id.
func (s *MongoVehicleStore) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	if s.Collection == nil {
		return nil, errNilCollection
	}
	opts := options.Find().SetSort(bson.D{{Key: "vehicle_id", Value: 1}})
	cursor, err := s.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	vehicles := []models.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}
	return vehicles, nil
}

// FindVehicleByID finds a vehicle by its fleet id.
func (s *MongoVehicleStore) FindVehicleByID(ctx context.Context, vehicleID string) (*models.Vehicle, error) {
	if s.Collection == nil {
		return nil, errNilCollection
	}
	var vehicle models.Vehicle
	err := s.Collection.FindOne(ctx, bson.M{"vehicle_id": vehicleID}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrVehicleNotFound, vehicleID)
		}
		return nil, err
	}
	return &vehicle, nil
}

// InsertVehicles writes vehicles, replacing any with the same vehicle_id.
func (s *MongoVehicleStore) InsertVehicles(ctx context.Context, vehicles []models.Vehicle) error {
	if s.Collection == nil {
		return errNilCollection
	}
	if len(vehicles) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(vehicles))
	for _, v := range vehicles {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"vehicle_id": v.VehicleID}).
			SetReplacement(v).
			SetUpsert(true))
	}
	if _, err := s.Collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("insert vehicles: %w", err)
	}
	return nil
}

// FindFuelRecords returns the fuel records dated on or after since. Dates
// are stored as YYYY-MM-DD strings, so they compare in calendar order.
func (s *MongoVehicleStore) FindFuelRecords(ctx context.Context, since models.Date) ([]models.FuelRecord, error) {
	if s.FuelCollection == nil {
		return nil, errNilCollection
	}
	filter := bson.M{"date": bson.M{"$gte": since.String()}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "vehicle_id", Value: 1}})
	cursor, err := s.FuelCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find fuel records: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.FuelRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode fuel records: %w", err)
	}
	return records, nil
}

// InsertFuelRecords writes records, replacing any for the same vehicle and day.
func (s *MongoVehicleStore) InsertFuelRecords(ctx context.Context, records []models.FuelRecord) error {
	if s.FuelCollection == nil {
		return errNilCollection
	}
	if len(records) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(records))
	for _, r := range records {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"vehicle_id": r.VehicleID, "date": r.Date.String()}).
			SetReplacement(r).
			SetUpsert(true))
	}
	if _, err := s.FuelCollection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("insert fuel records: %w", err)
	}
	return nil
}

// DeleteAll deletes all vehicles and fuel records.
func (s *MongoVehicleStore) DeleteAll(ctx context.Context) error {
	if s.Collection == nil || s.FuelCollection == nil {
		return errNilCollection
	}
	if _, err := s.Collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	_, err := s.FuelCollection.DeleteMany(ctx, bson.M{})
	return err
}
