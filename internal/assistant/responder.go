// Package assistant selects canned fleet assistant replies by keyword.
package assistant

import (
	"strings"
	"unicode"
)

// Topic names a keyword group.
type Topic string

const (
	TopicFuel        Topic = "fuel"
	TopicMaintenance Topic = "maintenance"
	TopicCost        Topic = "cost"
	TopicAlerts      Topic = "alerts"
	TopicPerformance Topic = "performance"
	TopicGreeting    Topic = "greeting"
	TopicUnknown     Topic = "unknown"
)

// Keyword is a trigger inside a group. Short words only match as whole
// words so "hi" does not fire on "this" or "vehicle".
type Keyword struct {
	Text      string
	WholeWord bool
}

// Group is a set of keywords sharing one reply.
type Group struct {
	Topic    Topic
	Keywords []Keyword
	Response string
}

func substr(words ...string) []Keyword {
	out := make([]Keyword, 0, len(words))
	for _, w := range words {
		out = append(out, Keyword{Text: w})
	}
	return out
}

// Groups in priority order. The first group with a matching keyword wins.
var Groups = []Group{
	{
		Topic:    TopicFuel,
		Keywords: substr("fuel", "efficiency", "mpg", "consumption"),
		Response: "⛽ Fuel Efficiency Overview\n" +
			"Your fleet's average fuel efficiency is 28.5 MPG, which is 12% better than last month! " +
			"Top performers include VAN-B456 (32.1 MPG) and TRK-C789 (29.8 MPG).\n\n" +
			"To improve fuel efficiency, consider: 1) Regular maintenance schedules 2) Driver training programs " +
			"3) Route optimization 4) Tire pressure monitoring.",
	},
	{
		Topic:    TopicMaintenance,
		Keywords: substr("maintenance", "service", "repair", "schedule"),
		Response: "🔧 Maintenance Status\n" +
			"You have 12 vehicles due for maintenance in the next 2 weeks. " +
			"The most urgent are TRK-A123 (due Jan 28) and VAN-B456 (due Jan 30). " +
			"Would you like me to schedule these?",
	},
	{
		Topic:    TopicCost,
		Keywords: substr("cost", "save", "saving", "budget", "expense"),
		Response: "💰 Cost Analysis\n" +
			"Current monthly fleet costs: Fuel $45,000, Maintenance $12,000, Insurance $8,000. " +
			"You're saving $15,000/month vs. last year through optimization.\n\n" +
			"Top cost-saving opportunities: 1) Route optimization could save $8,000/month " +
			"2) Preventive maintenance saves $5,000/month 3) Fuel efficiency programs save $12,000/month.",
	},
	{
		Topic:    TopicAlerts,
		Keywords: substr("alert", "warning", "critical", "issue"),
		Response: "🚨 Current Alerts\n" +
			"Current alerts: 3 vehicles need immediate attention, 5 are due for maintenance, " +
			"and 2 have fuel efficiency below targets.",
	},
	{
		Topic:    TopicPerformance,
		Keywords: substr("performance", "analytics", "metric", "stats", "report"),
		Response: "📊 Fleet Performance (last 7 days)\n" +
			"• Distance covered: 15,420 km\n" +
			"• Fuel consumed: 2,856 L\n" +
			"• Average speed: 65.2 km/h, idle time 8.5%\n" +
			"• Top performer: VAN-B456 with a score of 95",
	},
	{
		Topic: TopicGreeting,
		Keywords: append(substr("hello", "help"),
			Keyword{Text: "hi", WholeWord: true},
			Keyword{Text: "hey", WholeWord: true},
		),
		Response: "👋 Hello! I'm your Fleet Intelligence Assistant. I can help with fuel efficiency, " +
			"maintenance scheduling, cost optimization, and fleet analytics.\n\n" +
			"I can assist with: \n" +
			"• Fleet performance analytics\n" +
			"• Maintenance predictions\n" +
			"• Fuel efficiency optimization\n" +
			"• Cost analysis and savings\n" +
			"• Vehicle status and alerts\n\n" +
			"What specific area interests you?",
	},
}

// FallbackResponse is returned when no group matches.
const FallbackResponse = "I can help you with fuel efficiency, maintenance schedules, cost optimization, and fleet analytics. " +
	"Could you be more specific about what you'd like to know? Try asking:\n" +
	"• \"How is our fuel efficiency?\"\n" +
	"• \"What vehicles need maintenance?\"\n" +
	"• \"Show me cost analysis\"\n" +
	"• \"What are the current alerts?\"\n" +
	"• \"How is fleet performance?\""

// Match returns the first group matching message, or false.
func Match(message string) (Group, bool) {
	text := strings.ToLower(message)
	words := splitWords(text)
	for _, g := range Groups {
		for _, kw := range g.Keywords {
			if kw.matches(text, words) {
				return g, true
			}
		}
	}
	return Group{}, false
}

// Classify returns the topic message falls under.
func Classify(message string) Topic {
	g, ok := Match(message)
	if !ok {
		return TopicUnknown
	}
	return g.Topic
}

// Respond returns the canned reply for message.
func Respond(message string) string {
	g, ok := Match(message)
	if !ok {
		return FallbackResponse
	}
	return g.Response
}

func (k Keyword) matches(text string, words map[string]struct{}) bool {
	if !k.WholeWord {
		return strings.Contains(text, k.Text)
	}
	_, ok := words[k.Text]
	return ok
}

func splitWords(text string) map[string]struct{} {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[f] = struct{}{}
	}
	return words
}
