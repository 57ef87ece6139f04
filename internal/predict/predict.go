// Package predict produces maintenance predictions. No model is trained:
// RandomPredictor is a placeholder and RiskPredictor a fixed heuristic.
package predict

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

// Predictor predicts whether a vehicle needs maintenance.
type Predictor interface {
	Predict(ctx context.Context, vehicleID string) models.Prediction
}

// Probability bounds of the random placeholder.
const (
	MinProbability = 0.3
	MaxProbability = 0.9
)

// RecommendAfterDays is how far ahead the random placeholder recommends.
const RecommendAfterDays = 14

// RandomPredictor returns random predictions. Safe for concurrent use.
type RandomPredictor struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewRandomPredictor creates a predictor drawing from src. A nil src is
// seeded from the clock.
func NewRandomPredictor(src rand.Source) *RandomPredictor {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &RandomPredictor{rng: rand.New(src), now: time.Now}
}

// WithClock overrides the clock used for the recommended date.
func (p *RandomPredictor) WithClock(now func() time.Time) *RandomPredictor {
	p.now = now
	return p
}

// Predict draws a need flag and a probability in [0.3, 0.9].
func (p *RandomPredictor) Predict(_ context.Context, vehicleID string) models.Prediction {
	p.mu.Lock()
	needs := p.rng.Float64() > 0.5
	prob := MinProbability + p.rng.Float64()*(MaxProbability-MinProbability)
	p.mu.Unlock()

	return models.Prediction{
		VehicleID:        vehicleID,
		NeedsMaintenance: needs,
		Probability:      round2(prob),
		RecommendedDate:  models.DateOf(p.now()).AddDays(RecommendAfterDays),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
