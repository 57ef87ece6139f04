package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ukydev/fleet-dashboard/internal/assistant"
	"github.com/ukydev/fleet-dashboard/internal/models"
	"github.com/ukydev/fleet-dashboard/internal/triage"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Panel sizes.
const (
	vehicleRows = 8
	alertRows   = 5
)

var printer = message.NewPrinter(language.English)

// Render writes the selected tab.
func Render(w io.Writer, s State, now time.Time) error {
	if s.Loading {
		_, err := fmt.Fprintln(w, "Loading Fleet Analytics...")
		return err
	}
	switch s.Tab {
	case TabMaintenance:
		return RenderMaintenance(w, s, now)
	case TabChat:
		return RenderChat(w, s)
	default:
		return RenderDashboard(w, s)
	}
}

// RenderDashboard writes the overview page.
func RenderDashboard(w io.Writer, s State) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "FLEET DASHBOARD")
	fmt.Fprintf(tw, "Total Vehicles\t%d\n", s.Summary.TotalVehicles)
	fmt.Fprintf(tw, "Active Vehicles\t%d\n", s.Summary.ActiveVehicles)
	fmt.Fprintf(tw, "Avg Fuel Efficiency\t%.1f MPG\n", s.Summary.FuelEfficiency)
	fmt.Fprintf(tw, "Maintenance Due\t%d\n", s.Summary.MaintenanceDue)
	printer.Fprintf(tw, "Monthly Savings\t$%.0f\n", s.Summary.MonthlySavings)

	fmt.Fprintln(tw, "\nFUEL TRENDS")
	fmt.Fprintln(tw, "Day\tFuel Usage\tEfficiency")
	for _, p := range s.FuelTrends.Points() {
		fmt.Fprintf(tw, "%s\t%.0f\t%.1f\n", p.Label, p.FuelUsage, p.Efficiency)
	}

	fmt.Fprintln(tw, "\nRECENT ALERTS")
	if len(s.Alerts) == 0 {
		fmt.Fprintln(tw, "No alerts at this time")
	}
	for i, a := range s.Alerts {
		if i == alertRows {
			break
		}
		printer.Fprintf(tw, "%s - Maintenance Due\tDue: %s\tMileage: %d\n", a.VehicleID, a.NextMaintenance, a.Mileage)
	}

	if p := s.Performance; p != nil {
		fmt.Fprintln(tw, "\nWEEKLY STATS")
		printer.Fprintf(tw, "Distance Covered\t%.0f km\n", p.WeeklyStats.DistanceCovered)
		printer.Fprintf(tw, "Fuel Consumed\t%.0f L\n", p.WeeklyStats.FuelConsumed)
		fmt.Fprintf(tw, "Average Speed\t%.1f km/h\n", p.WeeklyStats.AverageSpeed)
		fmt.Fprintf(tw, "Idle Time\t%.1f%%\n", p.WeeklyStats.IdleTime)

		fmt.Fprintln(tw, "\nTOP PERFORMERS")
		for _, tp := range p.TopPerformers {
			fmt.Fprintf(tw, "%s\t%.1f MPG\t%d%%\n", tp.VehicleID, tp.Efficiency, tp.Score)
		}

		fmt.Fprintln(tw, "\nALERT SUMMARY")
		fmt.Fprintf(tw, "Critical\t%d\n", p.Alerts.Critical)
		fmt.Fprintf(tw, "Warning\t%d\n", p.Alerts.Warning)
		fmt.Fprintf(tw, "Info\t%d\n", p.Alerts.Info)
	}

	fmt.Fprintln(tw, "\nFLEET OVERVIEW")
	fmt.Fprintln(tw, "Vehicle ID\tType\tStatus\tFuel Efficiency\tNext Maintenance")
	for i, v := range s.Vehicles {
		if i == vehicleRows {
			break
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f MPG\t%s\n", v.VehicleID, v.Type, v.Status, v.FuelEfficiency, v.NextMaintenance)
	}
	return tw.Flush()
}

// RenderMaintenance writes the maintenance page.
func RenderMaintenance(w io.Writer, s State, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	tags := make([]string, 0, len(triage.Filters))
	for _, f := range triage.Filters {
		if f == s.Filter {
			tags = append(tags, "["+string(f)+"]")
		} else {
			tags = append(tags, string(f))
		}
	}
	fmt.Fprintf(tw, "MAINTENANCE MANAGEMENT\t%s\n", strings.Join(tags, " "))

	counts := s.Counts(now)
	fmt.Fprintf(tw, "Overdue\t%d\n", counts.Overdue)
	fmt.Fprintf(tw, "Urgent\t%d\n", counts.Urgent)
	fmt.Fprintf(tw, "Scheduled\t%d\n", counts.Scheduled)

	fmt.Fprintln(tw, "\nVEHICLE MAINTENANCE STATUS")
	visible := s.VisibleAlerts(now)
	if len(visible) == 0 {
		fmt.Fprintln(tw, "No vehicles match the selected filter")
	}
	for _, a := range visible {
		days := triage.DaysUntil(a.NextMaintenance, now)
		printer.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d km\n",
			a.VehicleID, a.Type, triage.ClassifyDays(days).Title(), a.NextMaintenance, triage.DaysLabel(days), a.Mileage)
		if p, ok := s.PredictionFor(a.VehicleID); ok {
			fmt.Fprintf(tw, "\tAI: %s\trisk %.0f%%\trecommended %s\n", needsLabel(p), p.Probability*100, p.RecommendedDate)
		}
	}

	fmt.Fprintln(tw, "\nUPCOMING MAINTENANCE SCHEDULE")
	schedule := s.Schedule()
	if len(schedule) == 0 {
		fmt.Fprintln(tw, "No upcoming maintenance scheduled")
	}
	for _, a := range schedule {
		days := triage.DaysUntil(a.NextMaintenance, now)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.VehicleID, a.Type, a.NextMaintenance, triage.DaysLabel(days))
	}

	if insights := s.Insights(); len(insights) > 0 {
		fmt.Fprintln(tw, "\nAI INSIGHTS SUMMARY")
		for _, p := range insights {
			fmt.Fprintf(tw, "%s\t%s\n", p.VehicleID, insightLabel(p))
		}
	}
	return tw.Flush()
}

// RenderChat writes the conversation and the quick actions.
func RenderChat(w io.Writer, s State) error {
	var b strings.Builder
	b.WriteString("AI FLEET ASSISTANT\n\n")
	for _, m := range s.Messages {
		who := "Assistant"
		if m.IsUser() {
			who = "You"
		}
		fmt.Fprintf(&b, "%s: %s\n\n", who, m.Text)
	}
	if s.Sending {
		b.WriteString("Assistant is typing...\n\n")
	}
	b.WriteString("Quick Actions:\n")
	for _, a := range assistant.QuickActions {
		fmt.Fprintf(&b, "  %-12s %s\n", a.ID, a.Label)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func needsLabel(p models.Prediction) string {
	if p.NeedsMaintenance {
		return "maintenance needed"
	}
	return "no maintenance needed"
}

func insightLabel(p models.Prediction) string {
	if p.NeedsMaintenance {
		return "Maintenance recommended"
	}
	return "No immediate maintenance needed"
}
