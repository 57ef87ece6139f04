package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-dashboard/internal/assistant"
	"github.com/ukydev/fleet-dashboard/internal/config"
	"github.com/ukydev/fleet-dashboard/internal/dashboard"
	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/handlers"
	"github.com/ukydev/fleet-dashboard/internal/predict"
	"github.com/ukydev/fleet-dashboard/internal/triage"
)

func testConfig(url string) *config.Config {
	return &config.Config{APIBaseURL: url, APITimeout: 2 * time.Second}
}

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	store := db.NewMemoryStore(db.MockFleet()...)
	h := handlers.NewFleetHandler(store, predict.NewRiskPredictor(store, predict.NewRandomPredictor(nil)))
	mux := http.NewServeMux()
	h.Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{
		"-tab", "Maintenance",
		"-filter", "URGENT",
		"-predict", "TRK-001, BUS-006,,",
		"-chat", "costs",
		"-chat", "hello",
	}, testConfig("http://api"))
	require.NoError(t, err)

	assert.Equal(t, "http://api", opts.apiURL)
	assert.Equal(t, dashboard.TabMaintenance, opts.tab)
	assert.Equal(t, triage.FilterUrgent, opts.filter)
	assert.Equal(t, []string{"TRK-001", "BUS-006"}, opts.predict)

	costs, _ := assistant.QuickActionByID("costs")
	assert.Equal(t, []string{costs.Query, "hello"}, opts.chat)
}

func TestParseFlags_Invalid(t *testing.T) {
	_, err := parseFlags([]string{"-tab", "settings"}, testConfig(""))
	assert.Error(t, err)

	_, err = parseFlags([]string{"-filter", "soon"}, testConfig(""))
	assert.ErrorIs(t, err, triage.ErrUnknownFilter)
}

func TestRun_Dashboard(t *testing.T) {
	server := newAPI(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), nil, &out, testConfig(server.URL)))
	assert.Contains(t, out.String(), "FLEET DASHBOARD")
	assert.Contains(t, out.String(), "TOP PERFORMERS")
	assert.Contains(t, out.String(), "BUS-006")
}

func TestRun_Maintenance(t *testing.T) {
	server := newAPI(t)

	var out bytes.Buffer
	err := run(context.Background(), []string{"-tab", "maintenance", "-predict", "TRK-003"}, &out, testConfig(server.URL))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "MAINTENANCE MANAGEMENT")
	assert.Contains(t, out.String(), "[all]")
	assert.Contains(t, out.String(), "AI INSIGHTS SUMMARY")
}

func TestRun_Chat(t *testing.T) {
	server := newAPI(t)

	var out bytes.Buffer
	err := run(context.Background(), []string{"-tab", "chat", "-chat", "What maintenance is due?"}, &out, testConfig(server.URL))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "You: What maintenance is due?")
	assert.Contains(t, out.String(), "Maintenance Status")
}

func TestRun_ChatCleared(t *testing.T) {
	server := newAPI(t)

	var out bytes.Buffer
	err := run(context.Background(), []string{"-tab", "chat", "-chat", "hello", "-clear"}, &out, testConfig(server.URL))
	require.NoError(t, err)
	assert.Contains(t, out.String(), assistant.ClearedMessage)
	assert.NotContains(t, out.String(), "You: hello")
}

func TestRun_APIDownUsesFallbacks(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"-timeout", "200ms"}, &out, testConfig("http://127.0.0.1:1"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "TRK-A123 - Maintenance Due")
	assert.Contains(t, out.String(), "TRK-003")
}
