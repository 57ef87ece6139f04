// Package triage classifies maintenance alerts by urgency and provides the
// filtering, sorting and counting used by the maintenance views.
package triage

import (
	"fmt"
	"math"
	"time"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

// Urgency is the bucket an alert falls into relative to today.
type Urgency string

const (
	Overdue   Urgency = "overdue"
	Urgent    Urgency = "urgent"
	Scheduled Urgency = "scheduled"
)

// UrgentWindowDays is the last day count still classified as urgent.
const UrgentWindowDays = 7

// DaysUntil returns ceil((next - now) / 24h). Dates count from midnight UTC,
// so today's date yields 0 for any later time of that day.
func DaysUntil(next models.Date, now time.Time) int {
	diff := next.Time().Sub(now)
	days := math.Ceil(diff.Hours() / 24)
	return int(days)
}

// ClassifyDays maps a day count to its urgency bucket.
func ClassifyDays(days int) Urgency {
	switch {
	case days < 0:
		return Overdue
	case days <= UrgentWindowDays:
		return Urgent
	default:
		return Scheduled
	}
}

// Classify returns the urgency of a maintenance date as seen at now.
func Classify(next models.Date, now time.Time) Urgency {
	return ClassifyDays(DaysUntil(next, now))
}

// DaysLabel renders a day count the way the maintenance views show it.
func DaysLabel(days int) string {
	if days < 0 {
		return fmt.Sprintf("%d days overdue", -days)
	}
	return fmt.Sprintf("%d days", days)
}

// Title returns the capitalized display name of the bucket.
func (u Urgency) Title() string {
	switch u {
	case Overdue:
		return "Overdue"
	case Urgent:
		return "Urgent"
	case Scheduled:
		return "Scheduled"
	default:
		return string(u)
	}
}
