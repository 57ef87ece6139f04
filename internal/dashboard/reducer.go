package dashboard

import (
	"time"

	"github.com/ukydev/fleet-dashboard/internal/assistant"
	"github.com/ukydev/fleet-dashboard/internal/models"
	"github.com/ukydev/fleet-dashboard/internal/triage"
)

// Action is a state transition understood by Reduce.
type Action interface {
	action()
}

// Loaded carries the initial fetch.
type Loaded struct {
	Summary    models.FleetSummary
	Vehicles   []models.Vehicle
	FuelTrends models.FuelTrends
	Alerts     []models.MaintenanceAlert
}

// PerformanceLoaded carries the performance panels.
type PerformanceLoaded struct {
	Metrics models.PerformanceMetrics
}

// TabSelected switches page.
type TabSelected struct {
	Tab Tab
}

// FilterSelected changes the maintenance filter.
type FilterSelected struct {
	Filter triage.Filter
}

// PredictionReceived records a prediction, replacing an older one for the
// same vehicle.
type PredictionReceived struct {
	Prediction models.Prediction
}

// MessageSent records a user message and marks a reply as pending.
type MessageSent struct {
	Message models.ChatMessage
}

// ReplyReceived records the assistant's reply.
type ReplyReceived struct {
	Message models.ChatMessage
}

// ChatCleared resets the conversation.
type ChatCleared struct {
	At time.Time
}

func (Loaded) action()             {}
func (PerformanceLoaded) action()  {}
func (TabSelected) action()        {}
func (FilterSelected) action()     {}
func (PredictionReceived) action() {}
func (MessageSent) action()        {}
func (ReplyReceived) action()      {}
func (ChatCleared) action()        {}

// Reduce returns the state after applying a. Unknown actions, invalid tabs
// and unknown filters leave the state unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Loaded:
		s.Loading = false
		s.Summary = a.Summary
		s.Vehicles = a.Vehicles
		s.FuelTrends = a.FuelTrends
		s.Alerts = a.Alerts
	case PerformanceLoaded:
		metrics := a.Metrics
		s.Performance = &metrics
	case TabSelected:
		if IsValidTab(a.Tab) {
			s.Tab = a.Tab
		}
	case FilterSelected:
		if f, err := triage.ParseFilter(string(a.Filter)); err == nil {
			s.Filter = f
		}
	case PredictionReceived:
		kept := make([]models.Prediction, 0, len(s.Predictions)+1)
		for _, p := range s.Predictions {
			if p.VehicleID != a.Prediction.VehicleID {
				kept = append(kept, p)
			}
		}
		s.Predictions = append(kept, a.Prediction)
	case MessageSent:
		s.Messages = appendMessage(s.Messages, a.Message)
		s.Sending = true
	case ReplyReceived:
		s.Messages = appendMessage(s.Messages, a.Message)
		s.Sending = false
	case ChatCleared:
		s.Messages = []models.ChatMessage{NewMessage(assistant.ClearedMessage, models.OriginAssistant, a.At)}
		s.Sending = false
	}
	return s
}

func appendMessage(msgs []models.ChatMessage, m models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, len(msgs), len(msgs)+1)
	copy(out, msgs)
	return append(out, m)
}
