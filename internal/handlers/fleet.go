package handlers

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-dashboard/internal/assistant"
	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/fleetapi"
	"github.com/ukydev/fleet-dashboard/internal/models"
	"github.com/ukydev/fleet-dashboard/internal/predict"
	"github.com/ukydev/fleet-dashboard/internal/triage"
)

// AlertWindowDays is how far ahead the alerts endpoint looks.
const AlertWindowDays = 14

// MonthlySavings is the reported monthly saving in USD.
const MonthlySavings = 15000

// FuelTrendDays is the length of the fuel trends series, today included.
const FuelTrendDays = 7

// FleetHandler serves the fleet API.
type FleetHandler struct {
	store     db.VehicleStore
	predictor predict.Predictor
	now       func() time.Time
	log       *log.Entry
}

// NewFleetHandler creates a new fleet handler
func NewFleetHandler(store db.VehicleStore, predictor predict.Predictor) *FleetHandler {
	return &FleetHandler{
		store:     store,
		predictor: predictor,
		now:       time.Now,
		log:       log.WithField("component", "handlers"),
	}
}

// WithClock overrides the clock used for day counts and labels.
func (h *FleetHandler) WithClock(now func() time.Time) *FleetHandler {
	h.now = now
	return h
}

// Register mounts the fleet API routes on mux.
func (h *FleetHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.Root)
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc(fleetapi.PathFleetSummary, h.FleetSummary)
	mux.HandleFunc(fleetapi.PathVehicles, h.Vehicles)
	mux.HandleFunc(fleetapi.PathFuelTrends, h.FuelTrends)
	mux.HandleFunc(fleetapi.PathMaintenanceAlerts, h.MaintenanceAlerts)
	mux.HandleFunc(fleetapi.PathPerformanceMetrics, h.PerformanceMetrics)
	mux.HandleFunc(fleetapi.PathPredictMaintenance, h.PredictMaintenance)
	mux.HandleFunc(fleetapi.PathAIChat, h.Chat)
}

// Root reports that the API is up.
func (h *FleetHandler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, map[string]string{"message": "Fleet Analytics API", "status": "running"})
}

// Health handles health checks
func (h *FleetHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, map[string]string{"status": "healthy"})
}

// FleetSummary computes the headline numbers from the store.
func (h *FleetHandler) FleetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vehicles, err := h.store.FindVehicles(r.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to load vehicles for summary")
		writeJSON(w, fleetapi.FallbackSummary())
		return
	}
	writeJSON(w, Summarize(vehicles, h.now()))
}

// Vehicles lists the fleet.
func (h *FleetHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vehicles, err := h.store.FindVehicles(r.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to load vehicles")
		writeJSON(w, fleetapi.FallbackVehicles())
		return
	}
	writeJSON(w, vehicles)
}

// FuelTrends returns the daily fleet averages of the stored fuel records for
// the last FuelTrendDays days. Without records it serves the fixed series.
func (h *FleetHandler) FuelTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	now := h.now()
	since := models.DateOf(now).AddDays(-(FuelTrendDays - 1))
	records, err := h.store.FindFuelRecords(r.Context(), since)
	if err != nil {
		h.log.WithError(err).Error("Failed to load fuel records")
	}
	if err != nil || len(records) == 0 {
		trends := fleetapi.FallbackFuelTrends()
		trends.Labels = WeekdayLabels(now, len(trends.FuelUsage))
		writeJSON(w, trends)
		return
	}
	writeJSON(w, DailyFuelTrends(records))
}

// MaintenanceAlerts lists vehicles due within AlertWindowDays, soonest first.
func (h *FleetHandler) MaintenanceAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vehicles, err := h.store.FindVehicles(r.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to load vehicles for alerts")
		writeJSON(w, fleetapi.FallbackAlerts())
		return
	}
	writeJSON(w, DueAlerts(vehicles, h.now()))
}

// PerformanceMetrics returns the performance panels.
func (h *FleetHandler) PerformanceMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, fleetapi.FallbackPerformance())
}

// PredictMaintenance predicts whether a vehicle needs maintenance.
func (h *FleetHandler) PredictMaintenance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req models.PredictRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// Blank and unknown ids get the predictor's fallback answer.
	writeJSON(w, h.predictor.Predict(r.Context(), req.VehicleID))
}

// Chat answers a message with the assistant's canned reply.
func (h *FleetHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req models.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	h.log.WithField("topic", assistant.Classify(req.Message)).Debug("Chat message classified")
	writeJSON(w, models.ChatResponse{Response: assistant.Respond(req.Message)})
}

// Summarize computes the fleet summary. The average efficiency covers
// active vehicles only.
func Summarize(vehicles []models.Vehicle, now time.Time) models.FleetSummary {
	summary := models.FleetSummary{
		TotalVehicles:  len(vehicles),
		MonthlySavings: MonthlySavings,
	}
	var efficiency float64
	for _, v := range vehicles {
		if v.Status == models.StatusActive {
			summary.ActiveVehicles++
			efficiency += v.FuelEfficiency
		}
		if triage.DaysUntil(v.NextMaintenance, now) <= triage.UrgentWindowDays {
			summary.MaintenanceDue++
		}
	}
	if summary.ActiveVehicles > 0 {
		summary.FuelEfficiency = math.Round(efficiency/float64(summary.ActiveVehicles)*10) / 10
	}
	return summary
}

// DueAlerts returns alerts for vehicles due within AlertWindowDays,
// including overdue ones, ordered by due date.
func DueAlerts(vehicles []models.Vehicle, now time.Time) []models.MaintenanceAlert {
	alerts := make([]models.MaintenanceAlert, 0, len(vehicles))
	for _, v := range vehicles {
		if triage.DaysUntil(v.NextMaintenance, now) <= AlertWindowDays {
			alerts = append(alerts, v.Alert())
		}
	}
	return triage.SortByNextMaintenance(alerts)
}

// DailyFuelTrends averages records per day, oldest day first. Values are
// rounded to one decimal and labelled with the abbreviated weekday.
func DailyFuelTrends(records []models.FuelRecord) models.FuelTrends {
	type dayTotal struct {
		date       models.Date
		fuel       float64
		efficiency float64
		n          int
	}
	byDay := make(map[string]*dayTotal)
	for _, rec := range records {
		key := rec.Date.String()
		d, ok := byDay[key]
		if !ok {
			d = &dayTotal{date: rec.Date}
			byDay[key] = d
		}
		d.fuel += rec.FuelConsumed
		d.efficiency += rec.FuelEfficiency
		d.n++
	}

	days := make([]*dayTotal, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].date.Before(days[j].date) })

	trends := models.FuelTrends{
		Labels:     make([]string, 0, len(days)),
		FuelUsage:  make([]float64, 0, len(days)),
		Efficiency: make([]float64, 0, len(days)),
	}
	for _, d := range days {
		trends.Labels = append(trends.Labels, d.date.Time().Format("Mon"))
		trends.FuelUsage = append(trends.FuelUsage, math.Round(d.fuel/float64(d.n)*10)/10)
		trends.Efficiency = append(trends.Efficiency, math.Round(d.efficiency/float64(d.n)*10)/10)
	}
	return trends
}

// WeekdayLabels returns abbreviated weekday names for the n days ending
// with now.
func WeekdayLabels(now time.Time, n int) []string {
	labels := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		labels = append(labels, now.AddDate(0, 0, -i).Format("Mon"))
	}
	return labels
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}
