package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-dashboard/internal/assistant"
	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/fleetapi"
	"github.com/ukydev/fleet-dashboard/internal/models"
	"github.com/ukydev/fleet-dashboard/internal/predict"
)

// Monday.
var now = time.Date(2025, time.January, 27, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

// MockVehicleStore is a mock implementation of VehicleStore
type MockVehicleStore struct {
	mock.Mock
}

func (m *MockVehicleStore) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleStore) FindVehicleByID(ctx context.Context, vehicleID string) (*models.Vehicle, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleStore) InsertVehicles(ctx context.Context, vehicles []models.Vehicle) error {
	args := m.Called(ctx, vehicles)
	return args.Error(0)
}

func (m *MockVehicleStore) FindFuelRecords(ctx context.Context, since models.Date) ([]models.FuelRecord, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FuelRecord), args.Error(1)
}

func (m *MockVehicleStore) InsertFuelRecords(ctx context.Context, records []models.FuelRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func newHandler(store db.VehicleStore) *FleetHandler {
	fallback := predict.NewRandomPredictor(rand.NewSource(1)).WithClock(clock)
	risk := predict.NewRiskPredictor(store, fallback).WithClock(clock)
	return NewFleetHandler(store, risk).WithClock(clock)
}

func serve(h *FleetHandler, method, path string, body []byte) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.Register(mux)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestFleetHandler_Root(t *testing.T) {
	h := newHandler(db.NewMemoryStore())

	var status map[string]string
	decode(t, serve(h, http.MethodGet, "/", nil), &status)
	assert.Equal(t, "running", status["status"])

	var health map[string]string
	decode(t, serve(h, http.MethodGet, "/health", nil), &health)
	assert.Equal(t, "healthy", health["status"])

	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/api/unknown", nil).Code)
}

func TestFleetHandler_FleetSummary(t *testing.T) {
	h := newHandler(db.NewMemoryStore(db.MockFleet()...))

	var summary models.FleetSummary
	decode(t, serve(h, http.MethodGet, fleetapi.PathFleetSummary, nil), &summary)
	assert.Equal(t, models.FleetSummary{
		TotalVehicles:  8,
		ActiveVehicles: 6,
		FuelEfficiency: 28.5,
		MaintenanceDue: 1,
		MonthlySavings: 15000,
	}, summary)
}

func TestFleetHandler_FleetSummary_StoreError(t *testing.T) {
	store := new(MockVehicleStore)
	store.On("FindVehicles", mock.Anything).Return(nil, errors.New("db error"))
	h := newHandler(store)

	var summary models.FleetSummary
	decode(t, serve(h, http.MethodGet, fleetapi.PathFleetSummary, nil), &summary)
	assert.Equal(t, fleetapi.FallbackSummary(), summary)
	store.AssertExpectations(t)
}

func TestFleetHandler_Vehicles(t *testing.T) {
	t.Run("from store", func(t *testing.T) {
		h := newHandler(db.NewMemoryStore(db.MockFleet()...))
		var vehicles []models.Vehicle
		decode(t, serve(h, http.MethodGet, fleetapi.PathVehicles, nil), &vehicles)
		require.Len(t, vehicles, 8)
		assert.Equal(t, "BUS-006", vehicles[0].VehicleID)
	})

	t.Run("store error", func(t *testing.T) {
		store := new(MockVehicleStore)
		store.On("FindVehicles", mock.Anything).Return(nil, errors.New("db error"))
		var vehicles []models.Vehicle
		decode(t, serve(newHandler(store), http.MethodGet, fleetapi.PathVehicles, nil), &vehicles)
		assert.Equal(t, fleetapi.FallbackVehicles(), vehicles)
	})

	t.Run("empty store encodes an empty list", func(t *testing.T) {
		w := serve(newHandler(db.NewMemoryStore()), http.MethodGet, fleetapi.PathVehicles, nil)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestFleetHandler_FuelTrends_NoRecords(t *testing.T) {
	h := newHandler(db.NewMemoryStore())

	var trends models.FuelTrends
	decode(t, serve(h, http.MethodGet, fleetapi.PathFuelTrends, nil), &trends)
	assert.Equal(t, []string{"Tue", "Wed", "Thu", "Fri", "Sat", "Sun", "Mon"}, trends.Labels)
	assert.Equal(t, fleetapi.FallbackFuelTrends().FuelUsage, trends.FuelUsage)
	assert.Len(t, trends.Efficiency, 7)
}

func TestFleetHandler_FuelTrends_FromRecords(t *testing.T) {
	store := db.NewMemoryStore()
	require.NoError(t, store.InsertFuelRecords(context.Background(), []models.FuelRecord{
		// Outside the seven-day window.
		{VehicleID: "TRK-001", Date: models.MustParseDate("2025-01-20"), FuelConsumed: 99, FuelEfficiency: 99},
		{VehicleID: "TRK-001", Date: models.MustParseDate("2025-01-26"), FuelConsumed: 10, FuelEfficiency: 30},
		{VehicleID: "VAN-002", Date: models.MustParseDate("2025-01-26"), FuelConsumed: 5, FuelEfficiency: 25},
		{VehicleID: "TRK-001", Date: models.MustParseDate("2025-01-27"), FuelConsumed: 8.04, FuelEfficiency: 28.33},
	}))
	h := newHandler(store)

	var trends models.FuelTrends
	decode(t, serve(h, http.MethodGet, fleetapi.PathFuelTrends, nil), &trends)
	assert.Equal(t, models.FuelTrends{
		Labels:     []string{"Sun", "Mon"},
		FuelUsage:  []float64{7.5, 8},
		Efficiency: []float64{27.5, 28.3},
	}, trends)
}

func TestFleetHandler_FuelTrends_StoreError(t *testing.T) {
	store := new(MockVehicleStore)
	store.On("FindFuelRecords", mock.Anything, models.MustParseDate("2025-01-21")).Return(nil, errors.New("db error"))

	var trends models.FuelTrends
	decode(t, serve(newHandler(store), http.MethodGet, fleetapi.PathFuelTrends, nil), &trends)
	assert.Equal(t, fleetapi.FallbackFuelTrends().FuelUsage, trends.FuelUsage)
	assert.Equal(t, "Mon", trends.Labels[6])
	store.AssertExpectations(t)
}

func TestDailyFuelTrends_DemoHistory(t *testing.T) {
	records := db.MockFuelRecords(models.DateOf(now), FuelTrendDays)
	trends := DailyFuelTrends(records)
	assert.Equal(t, []string{"Tue", "Wed", "Thu", "Fri", "Sat", "Sun", "Mon"}, trends.Labels)
	assert.Len(t, trends.FuelUsage, FuelTrendDays)
	for i, eff := range trends.Efficiency {
		assert.Greater(t, eff, 0.0, trends.Labels[i])
	}
}

func TestFleetHandler_MaintenanceAlerts(t *testing.T) {
	h := newHandler(db.NewMemoryStore(db.MockFleet()...))

	var alerts []models.MaintenanceAlert
	decode(t, serve(h, http.MethodGet, fleetapi.PathMaintenanceAlerts, nil), &alerts)

	ids := make([]string, 0, len(alerts))
	for _, a := range alerts {
		ids = append(ids, a.VehicleID)
	}
	assert.Equal(t, []string{"TRK-003", "BUS-006", "VAN-004"}, ids)
	assert.Equal(t, 52000, alerts[0].Mileage)
}

func TestFleetHandler_MaintenanceAlerts_StoreError(t *testing.T) {
	store := new(MockVehicleStore)
	store.On("FindVehicles", mock.Anything).Return(nil, errors.New("db error"))

	var alerts []models.MaintenanceAlert
	decode(t, serve(newHandler(store), http.MethodGet, fleetapi.PathMaintenanceAlerts, nil), &alerts)
	assert.Equal(t, fleetapi.FallbackAlerts(), alerts)
}

func TestFleetHandler_PerformanceMetrics(t *testing.T) {
	var metrics models.PerformanceMetrics
	decode(t, serve(newHandler(db.NewMemoryStore()), http.MethodGet, fleetapi.PathPerformanceMetrics, nil), &metrics)
	assert.Equal(t, fleetapi.FallbackPerformance(), metrics)
}

func TestFleetHandler_PredictMaintenance(t *testing.T) {
	h := newHandler(db.NewMemoryStore(db.MockFleet()...))

	t.Run("known vehicle", func(t *testing.T) {
		body, _ := json.Marshal(models.PredictRequest{VehicleID: "TRK-003"})
		var p models.Prediction
		decode(t, serve(h, http.MethodPost, fleetapi.PathPredictMaintenance, body), &p)
		assert.Equal(t, "TRK-003", p.VehicleID)
		assert.True(t, p.NeedsMaintenance)
		assert.Equal(t, 0.95, p.Probability)
		require.NotNil(t, p.RiskFactors)
		assert.Equal(t, 52000, p.RiskFactors.Mileage)
		assert.Equal(t, 2, p.RiskFactors.DaysUntilMaintenance)
	})

	t.Run("unknown vehicle uses fallback", func(t *testing.T) {
		body, _ := json.Marshal(models.PredictRequest{VehicleID: "XYZ-999"})
		var p models.Prediction
		decode(t, serve(h, http.MethodPost, fleetapi.PathPredictMaintenance, body), &p)
		assert.Equal(t, "XYZ-999", p.VehicleID)
		assert.Nil(t, p.RiskFactors)
		assert.GreaterOrEqual(t, p.Probability, 0.3)
		assert.LessOrEqual(t, p.Probability, 0.9)
	})

	t.Run("blank vehicle uses fallback", func(t *testing.T) {
		var p models.Prediction
		decode(t, serve(h, http.MethodPost, fleetapi.PathPredictMaintenance, []byte(`{"vehicle_id":" "}`)), &p)
		assert.Nil(t, p.RiskFactors)
		assert.GreaterOrEqual(t, p.Probability, 0.3)
		assert.LessOrEqual(t, p.Probability, 0.9)
	})

	t.Run("bad requests", func(t *testing.T) {
		assert.Equal(t, http.StatusMethodNotAllowed, serve(h, http.MethodGet, fleetapi.PathPredictMaintenance, nil).Code)
		assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodPost, fleetapi.PathPredictMaintenance, []byte("{bad json")).Code)
	})
}

func TestFleetHandler_Chat(t *testing.T) {
	h := newHandler(db.NewMemoryStore())

	body, _ := json.Marshal(models.ChatRequest{Message: "What maintenance is due?"})
	var resp models.ChatResponse
	decode(t, serve(h, http.MethodPost, fleetapi.PathAIChat, body), &resp)
	assert.Equal(t, assistant.Respond("What maintenance is due?"), resp.Response)

	assert.Equal(t, http.StatusMethodNotAllowed, serve(h, http.MethodGet, fleetapi.PathAIChat, nil).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodPost, fleetapi.PathAIChat, []byte("{bad json")).Code)
}

func TestFleetHandler_Chat_BlankMessage(t *testing.T) {
	h := newHandler(db.NewMemoryStore())

	for _, body := range []string{`{"message":""}`, `{"message":"   "}`, `{}`} {
		var resp models.ChatResponse
		decode(t, serve(h, http.MethodPost, fleetapi.PathAIChat, []byte(body)), &resp)
		assert.Equal(t, assistant.FallbackResponse, resp.Response, body)
	}
}

func TestFleetHandler_MethodNotAllowed(t *testing.T) {
	h := newHandler(db.NewMemoryStore())
	for _, path := range []string{
		fleetapi.PathFleetSummary,
		fleetapi.PathVehicles,
		fleetapi.PathFuelTrends,
		fleetapi.PathMaintenanceAlerts,
		fleetapi.PathPerformanceMetrics,
		"/health",
	} {
		assert.Equal(t, http.StatusMethodNotAllowed, serve(h, http.MethodPost, path, nil).Code, path)
	}
}

func TestSummarize_NoActiveVehicles(t *testing.T) {
	summary := Summarize([]models.Vehicle{
		{VehicleID: "X", Status: models.StatusInactive, NextMaintenance: models.MustParseDate("2025-01-20")},
	}, now)
	assert.Equal(t, 1, summary.TotalVehicles)
	assert.Zero(t, summary.ActiveVehicles)
	assert.Zero(t, summary.FuelEfficiency)
	assert.Equal(t, 1, summary.MaintenanceDue)
}

func TestDueAlerts_IncludesOverdue(t *testing.T) {
	alerts := DueAlerts([]models.Vehicle{
		{VehicleID: "later", NextMaintenance: models.MustParseDate("2025-02-03")},
		{VehicleID: "late", NextMaintenance: models.MustParseDate("2025-01-01")},
		{VehicleID: "far", NextMaintenance: models.MustParseDate("2025-06-01")},
	}, now)
	require.Len(t, alerts, 2)
	assert.Equal(t, "late", alerts[0].VehicleID)
	assert.Equal(t, "later", alerts[1].VehicleID)
}
