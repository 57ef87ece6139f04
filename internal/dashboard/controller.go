package dashboard

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-dashboard/internal/models"
	"golang.org/x/sync/errgroup"
)

// API is what the dashboard needs from the fleet API. Implementations are
// expected to mask their own failures, as fleetapi.Client does.
type API interface {
	FleetSummary(ctx context.Context) models.FleetSummary
	Vehicles(ctx context.Context) []models.Vehicle
	FuelTrends(ctx context.Context) models.FuelTrends
	MaintenanceAlerts(ctx context.Context) []models.MaintenanceAlert
	PerformanceMetrics(ctx context.Context) models.PerformanceMetrics
	PredictMaintenance(ctx context.Context, vehicleID string) models.Prediction
	Chat(ctx context.Context, message string) models.ChatResponse
}

// Controller runs the calls behind user interactions and folds their
// results into State through Reduce.
type Controller struct {
	api API
	now func() time.Time
}

// NewController creates a controller backed by api.
func NewController(api API) *Controller {
	return &Controller{api: api, now: time.Now}
}

// WithClock overrides the clock used for message timestamps.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// Init returns the initial state.
func (c *Controller) Init() State {
	return Initial(c.now())
}

// Load fetches summary, vehicles, fuel trends and alerts concurrently.
// Each fetch fills its own slot, so they need no coordination beyond the
// final join.
func (c *Controller) Load(ctx context.Context, s State) State {
	var loaded Loaded
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded.Summary = c.api.FleetSummary(gctx)
		return nil
	})
	g.Go(func() error {
		loaded.Vehicles = c.api.Vehicles(gctx)
		return nil
	})
	g.Go(func() error {
		loaded.FuelTrends = c.api.FuelTrends(gctx)
		return nil
	})
	g.Go(func() error {
		loaded.Alerts = c.api.MaintenanceAlerts(gctx)
		return nil
	})
	g.Wait()

	log.WithFields(log.Fields{
		"vehicles": len(loaded.Vehicles),
		"alerts":   len(loaded.Alerts),
	}).Debug("Dashboard data loaded")
	return Reduce(s, loaded)
}

// LoadPerformance fetches the performance panels.
func (c *Controller) LoadPerformance(ctx context.Context, s State) State {
	return Reduce(s, PerformanceLoaded{Metrics: c.api.PerformanceMetrics(ctx)})
}

// Predict requests a maintenance prediction for one vehicle.
func (c *Controller) Predict(ctx context.Context, s State, vehicleID string) State {
	return Reduce(s, PredictionReceived{Prediction: c.api.PredictMaintenance(ctx, vehicleID)})
}

// SendMessage posts text to the assistant. Blank input is ignored.
func (c *Controller) SendMessage(ctx context.Context, s State, text string) State {
	if strings.TrimSpace(text) == "" {
		return s
	}
	s = Reduce(s, MessageSent{Message: NewMessage(text, models.OriginUser, c.now())})
	reply := c.api.Chat(ctx, text)
	return Reduce(s, ReplyReceived{Message: NewMessage(reply.Response, models.OriginAssistant, c.now())})
}

// ClearChat resets the conversation.
func (c *Controller) ClearChat(s State) State {
	return Reduce(s, ChatCleared{At: c.now()})
}
