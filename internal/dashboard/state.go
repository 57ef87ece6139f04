// Package dashboard holds the dashboard's view state. State is an
// immutable value: every change goes through Reduce, which returns a new
// State and never modifies slices reachable from the old one.
package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/ukydev/fleet-dashboard/internal/assistant"
	"github.com/ukydev/fleet-dashboard/internal/models"
	"github.com/ukydev/fleet-dashboard/internal/triage"
)

// Tab is a dashboard page.
type Tab string

const (
	TabDashboard   Tab = "dashboard"
	TabMaintenance Tab = "maintenance"
	TabChat        Tab = "chat"
)

// Tabs lists the pages in navigation order.
var Tabs = []Tab{TabDashboard, TabMaintenance, TabChat}

// IsValidTab checks if a tab exists
func IsValidTab(t Tab) bool {
	for _, tab := range Tabs {
		if tab == t {
			return true
		}
	}
	return false
}

// InsightLimit is how many recent predictions the insights panel shows.
const InsightLimit = 3

// State is everything the dashboard renders.
type State struct {
	Tab         Tab
	Loading     bool
	Summary     models.FleetSummary
	Vehicles    []models.Vehicle
	FuelTrends  models.FuelTrends
	Alerts      []models.MaintenanceAlert
	Performance *models.PerformanceMetrics
	Filter      triage.Filter
	Predictions []models.Prediction
	Messages    []models.ChatMessage
	Sending     bool
}

// NewMessage creates a chat message with a fresh id.
func NewMessage(text string, origin models.Origin, at time.Time) models.ChatMessage {
	return models.ChatMessage{
		ID:     uuid.NewString(),
		Text:   text,
		Origin: origin,
		SentAt: at,
	}
}

// Initial returns the state before anything is loaded.
func Initial(now time.Time) State {
	return State{
		Tab:      TabDashboard,
		Loading:  true,
		Filter:   triage.FilterAll,
		Messages: []models.ChatMessage{NewMessage(assistant.WelcomeMessage, models.OriginAssistant, now)},
	}
}

// VisibleAlerts are the alerts passing the selected filter.
func (s State) VisibleAlerts(now time.Time) []models.MaintenanceAlert {
	return triage.FilterAlerts(s.Alerts, s.Filter, now)
}

// Schedule is every alert ordered by due date.
func (s State) Schedule() []models.MaintenanceAlert {
	return triage.SortByNextMaintenance(s.Alerts)
}

// Counts tallies all alerts by urgency.
func (s State) Counts(now time.Time) triage.Counts {
	return triage.Count(s.Alerts, now)
}

// Insights returns the most recent predictions, oldest first.
func (s State) Insights() []models.Prediction {
	if len(s.Predictions) <= InsightLimit {
		return s.Predictions
	}
	return s.Predictions[len(s.Predictions)-InsightLimit:]
}

// PredictionFor returns the latest prediction for a vehicle.
func (s State) PredictionFor(vehicleID string) (models.Prediction, bool) {
	for _, p := range s.Predictions {
		if p.VehicleID == vehicleID {
			return p, true
		}
	}
	return models.Prediction{}, false
}
