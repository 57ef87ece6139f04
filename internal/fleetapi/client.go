// Package fleetapi is the dashboard's access layer to the fleet API. Every
// call makes a single attempt and, on any failure, logs it and returns a
// fixed fallback payload of the same shape. Errors never reach the caller.
package fleetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-dashboard/internal/models"
	"github.com/ukydev/fleet-dashboard/internal/predict"
)

// Endpoint paths of the fleet API.
const (
	PathFleetSummary       = "/api/fleet-summary"
	PathVehicles           = "/api/vehicles"
	PathFuelTrends         = "/api/fuel-trends"
	PathMaintenanceAlerts  = "/api/maintenance-alerts"
	PathPerformanceMetrics = "/api/performance-metrics"
	PathPredictMaintenance = "/api/predict-maintenance"
	PathAIChat             = "/api/ai-chat"
)

// DefaultTimeout bounds each request.
const DefaultTimeout = 10 * time.Second

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, http.StatusText(e.Code))
}

// Client calls the fleet API.
type Client struct {
	baseURL   string
	http      *http.Client
	predictor predict.Predictor
	log       *log.Entry
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout. It applies to a copy of the
// HTTP client, so a client passed to WithHTTPClient is left unchanged.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithPredictor sets the predictor used when the prediction endpoint fails.
func WithPredictor(p predict.Predictor) Option {
	return func(c *Client) { c.predictor = p }
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l *log.Entry) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: DefaultTimeout},
		predictor: predict.NewRandomPredictor(nil),
		log:       log.WithField("component", "fleetapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FleetSummary fetches the headline numbers.
func (c *Client) FleetSummary(ctx context.Context) models.FleetSummary {
	var out models.FleetSummary
	if err := c.do(ctx, http.MethodGet, PathFleetSummary, nil, &out); err != nil {
		c.failed(PathFleetSummary, err, "Error fetching fleet summary")
		return FallbackSummary()
	}
	return out
}

// Vehicles fetches the vehicle list.
func (c *Client) Vehicles(ctx context.Context) []models.Vehicle {
	var out []models.Vehicle
	if err := c.do(ctx, http.MethodGet, PathVehicles, nil, &out); err != nil {
		c.failed(PathVehicles, err, "Error fetching vehicles")
		return FallbackVehicles()
	}
	return out
}

// FuelTrends fetches the weekly fuel series.
func (c *Client) FuelTrends(ctx context.Context) models.FuelTrends {
	var out models.FuelTrends
	if err := c.do(ctx, http.MethodGet, PathFuelTrends, nil, &out); err != nil {
		c.failed(PathFuelTrends, err, "Error fetching fuel trends")
		return FallbackFuelTrends()
	}
	return out
}

// MaintenanceAlerts fetches vehicles due for maintenance.
func (c *Client) MaintenanceAlerts(ctx context.Context) []models.MaintenanceAlert {
	var out []models.MaintenanceAlert
	if err := c.do(ctx, http.MethodGet, PathMaintenanceAlerts, nil, &out); err != nil {
		c.failed(PathMaintenanceAlerts, err, "Error fetching maintenance alerts")
		return FallbackAlerts()
	}
	return out
}

// PerformanceMetrics fetches the performance panels.
func (c *Client) PerformanceMetrics(ctx context.Context) models.PerformanceMetrics {
	var out models.PerformanceMetrics
	if err := c.do(ctx, http.MethodGet, PathPerformanceMetrics, nil, &out); err != nil {
		c.failed(PathPerformanceMetrics, err, "Error fetching performance metrics")
		return FallbackPerformance()
	}
	return out
}

// PredictMaintenance asks the API for a prediction. On failure the local
// predictor answers instead.
func (c *Client) PredictMaintenance(ctx context.Context, vehicleID string) models.Prediction {
	var out models.Prediction
	req := models.PredictRequest{VehicleID: vehicleID}
	if err := c.do(ctx, http.MethodPost, PathPredictMaintenance, req, &out); err != nil {
		c.failed(PathPredictMaintenance, err, "Error predicting maintenance")
		return c.predictor.Predict(ctx, vehicleID)
	}
	return out
}

// Chat sends a message to the assistant endpoint.
func (c *Client) Chat(ctx context.Context, message string) models.ChatResponse {
	var out models.ChatResponse
	if err := c.do(ctx, http.MethodPost, PathAIChat, models.ChatRequest{Message: message}, &out); err != nil {
		c.failed(PathAIChat, err, "Error sending chat message")
		return FallbackChat()
	}
	return out
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) failed(path string, err error, msg string) {
	c.log.WithError(err).WithFields(log.Fields{
		"endpoint": path,
		"base_url": c.baseURL,
	}).Error(msg)
}
