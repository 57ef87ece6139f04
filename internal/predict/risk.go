package predict

import (
	"context"
	"errors"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-dashboard/internal/db"
	"github.com/ukydev/fleet-dashboard/internal/models"
)

// VehicleFinder looks up a single vehicle.
type VehicleFinder interface {
	FindVehicleByID(ctx context.Context, vehicleID string) (*models.Vehicle, error)
}

// Heuristic weights and thresholds.
const (
	mileageNorm      = 50000.0
	mileageWeight    = 0.4
	timeHorizonDays  = 30.0
	timeWeight       = 0.6
	riskThreshold    = 0.7
	maxProbability   = 0.95
	minRecommendDays = 7
)

// RiskPredictor scores a vehicle by mileage and the time left until its
// scheduled maintenance. Unknown vehicles get a fallback prediction, and so
// do lookups that fail for other reasons, which are logged as warnings.
type RiskPredictor struct {
	vehicles VehicleFinder
	fallback Predictor
	now      func() time.Time
	log      *log.Entry
}

// NewRiskPredictor creates a RiskPredictor.
func NewRiskPredictor(vehicles VehicleFinder, fallback Predictor) *RiskPredictor {
	return &RiskPredictor{
		vehicles: vehicles,
		fallback: fallback,
		now:      time.Now,
		log:      log.WithField("component", "predict"),
	}
}

// WithLogger sets the logger lookup failures are reported to.
func (p *RiskPredictor) WithLogger(l *log.Entry) *RiskPredictor {
	p.log = l
	return p
}

// WithClock overrides the clock.
func (p *RiskPredictor) WithClock(now func() time.Time) *RiskPredictor {
	p.now = now
	return p
}

// Predict implements Predictor.
func (p *RiskPredictor) Predict(ctx context.Context, vehicleID string) models.Prediction {
	vehicle, err := p.vehicles.FindVehicleByID(ctx, vehicleID)
	if err != nil {
		entry := p.log.WithError(err).WithField("vehicle_id", vehicleID)
		if errors.Is(err, db.ErrVehicleNotFound) {
			entry.Debug("Unknown vehicle, using fallback prediction")
		} else {
			entry.Warn("Vehicle lookup failed, using fallback prediction")
		}
		return p.fallback.Predict(ctx, vehicleID)
	}
	return Score(*vehicle, p.now())
}

// Score applies the heuristic to a vehicle.
func Score(v models.Vehicle, now time.Time) models.Prediction {
	daysUntil := wholeDaysUntil(v.NextMaintenance, now)
	mileageFactor := math.Min(float64(v.Mileage)/mileageNorm, 1.0)
	timeFactor := math.Max(0, (timeHorizonDays-float64(daysUntil))/timeHorizonDays)

	risk := mileageFactor*mileageWeight + timeFactor*timeWeight
	after := int(timeHorizonDays) - int(risk*timeHorizonDays)
	if after < minRecommendDays {
		after = minRecommendDays
	}

	return models.Prediction{
		VehicleID:        v.VehicleID,
		NeedsMaintenance: risk > riskThreshold || daysUntil <= 7,
		Probability:      round2(math.Min(risk, maxProbability)),
		RecommendedDate:  models.DateOf(now).AddDays(after),
		RiskFactors: &models.RiskFactors{
			Mileage:              v.Mileage,
			DaysUntilMaintenance: daysUntil,
		},
	}
}

// wholeDaysUntil floors the distance in days, unlike triage.DaysUntil which
// rounds up.
func wholeDaysUntil(next models.Date, now time.Time) int {
	return int(math.Floor(next.Time().Sub(now).Hours() / 24))
}
