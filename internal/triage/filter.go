package triage

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

// ErrUnknownFilter is returned by ParseFilter for tags outside Filters.
var ErrUnknownFilter = errors.New("unknown filter")

// Filter selects alerts by urgency.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterUrgent    Filter = "urgent"
	FilterOverdue   Filter = "overdue"
	FilterScheduled Filter = "scheduled"
)

// Filters lists the filter tags in display order.
var Filters = []Filter{FilterAll, FilterUrgent, FilterOverdue, FilterScheduled}

// ParseFilter converts a user supplied tag, case-insensitively. An empty
// tag means FilterAll.
func ParseFilter(s string) (Filter, error) {
	tag := Filter(strings.ToLower(strings.TrimSpace(s)))
	if tag == "" {
		return FilterAll, nil
	}
	for _, f := range Filters {
		if f == tag {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// Matches reports whether an alert due in days passes the filter. Unknown
// filters match everything.
func (f Filter) Matches(days int) bool {
	switch f {
	case FilterUrgent:
		return days >= 0 && days <= UrgentWindowDays
	case FilterOverdue:
		return days < 0
	case FilterScheduled:
		return days > UrgentWindowDays
	default:
		return true
	}
}

// FilterAlerts returns the alerts that pass f, in their original order. The
// input slice is not modified.
func FilterAlerts(alerts []models.MaintenanceAlert, f Filter, now time.Time) []models.MaintenanceAlert {
	out := make([]models.MaintenanceAlert, 0, len(alerts))
	for _, a := range alerts {
		if f.Matches(DaysUntil(a.NextMaintenance, now)) {
			out = append(out, a)
		}
	}
	return out
}

// SortByNextMaintenance returns a copy of alerts ordered by ascending next
// maintenance date. Alerts due the same day keep their relative order.
func SortByNextMaintenance(alerts []models.MaintenanceAlert) []models.MaintenanceAlert {
	out := make([]models.MaintenanceAlert, len(alerts))
	copy(out, alerts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextMaintenance.Before(out[j].NextMaintenance)
	})
	return out
}

// Counts tallies alerts per urgency bucket.
type Counts struct {
	Overdue   int `json:"overdue"`
	Urgent    int `json:"urgent"`
	Scheduled int `json:"scheduled"`
}

// Total is the number of alerts counted.
func (c Counts) Total() int {
	return c.Overdue + c.Urgent + c.Scheduled
}

// Count classifies every alert and tallies the buckets.
func Count(alerts []models.MaintenanceAlert, now time.Time) Counts {
	var c Counts
	for _, a := range alerts {
		switch Classify(a.NextMaintenance, now) {
		case Overdue:
			c.Overdue++
		case Urgent:
			c.Urgent++
		case Scheduled:
			c.Scheduled++
		}
	}
	return c
}
