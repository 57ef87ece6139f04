package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/models"
)

// VehiclesKey holds the cached vehicle list.
const VehiclesKey = "fleet:vehicles"

// CachedStore wraps a VehicleStore, serving FindVehicles from the cache
// while it is fresh. Cache failures are logged and the call goes to the
// wrapped store.
type CachedStore struct {
	next db.VehicleStore
	kv   KV
	ttl  time.Duration
	log  *log.Entry
}

// NewCachedStore creates a cached view of next.
func NewCachedStore(next db.VehicleStore, kv KV, ttl time.Duration) *CachedStore {
	return &CachedStore{
		next: next,
		kv:   kv,
		ttl:  ttl,
		log:  log.WithField("component", "cache"),
	}
}

// FindVehicles returns the cached list, loading it on a miss.
func (s *CachedStore) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	data, err := s.kv.Get(ctx, VehiclesKey)
	if err == nil {
		var vehicles []models.Vehicle
		if err := json.Unmarshal(data, &vehicles); err == nil {
			return vehicles, nil
		}
		s.log.WithError(err).Warn("Discarding unreadable cached vehicles")
	} else if !errors.Is(err, ErrMiss) {
		s.log.WithError(err).Warn("Vehicle cache read failed")
	}

	vehicles, err := s.next.FindVehicles(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(vehicles); err == nil {
		if err := s.kv.Set(ctx, VehiclesKey, data, s.ttl); err != nil {
			s.log.WithError(err).Warn("Vehicle cache write failed")
		}
	}
	return vehicles, nil
}

// FindVehicleByID reads through to the wrapped store.
func (s *CachedStore) FindVehicleByID(ctx context.Context, vehicleID string) (*models.Vehicle, error) {
	return s.next.FindVehicleByID(ctx, vehicleID)
}

// InsertVehicles writes to the wrapped store and drops the cached list.
func (s *CachedStore) InsertVehicles(ctx context.Context, vehicles []models.Vehicle) error {
	if err := s.next.InsertVehicles(ctx, vehicles); err != nil {
		return err
	}
	if err := s.kv.Del(ctx, VehiclesKey); err != nil {
		s.log.WithError(err).Warn("Vehicle cache invalidation failed")
	}
	return nil
}

// FindFuelRecords reads through to the wrapped store. Fuel history is keyed
// by its start date, so it is not cached.
func (s *CachedStore) FindFuelRecords(ctx context.Context, since models.Date) ([]models.FuelRecord, error) {
	return s.next.FindFuelRecords(ctx, since)
}

// InsertFuelRecords writes to the wrapped store.
func (s *CachedStore) InsertFuelRecords(ctx context.Context, records []models.FuelRecord) error {
	return s.next.InsertFuelRecords(ctx, records)
}
