package assistant

// Messages the chat view shows outside of keyword replies.
const (
	WelcomeMessage      = "Hello! I'm your Fleet Intelligence Assistant. I can help you with fleet analytics, maintenance scheduling, fuel efficiency insights, and cost optimization. How can I assist you today?"
	ClearedMessage      = "Chat cleared! How can I help you with your fleet management today?"
	UnavailableResponse = "I'm having trouble connecting to the AI service. Please try again later."
)

// QuickAction is a preset question offered next to the chat input.
type QuickAction struct {
	ID    string
	Label string
	Query string
}

// QuickActions in display order.
var QuickActions = []QuickAction{
	{ID: "fuel", Label: "⛽ Fuel Efficiency", Query: "How is our fuel efficiency?"},
	{ID: "maintenance", Label: "🔧 Maintenance Status", Query: "What vehicles need maintenance?"},
	{ID: "costs", Label: "💰 Cost Analysis", Query: "Show me cost analysis"},
	{ID: "alerts", Label: "🚨 Current Alerts", Query: "What are the current alerts?"},
	{ID: "performance", Label: "📊 Fleet Performance", Query: "How is fleet performance?"},
	{ID: "savings", Label: "💡 Optimization Tips", Query: "How can we save costs?"},
}

// QuickActionByID finds a quick action.
func QuickActionByID(id string) (QuickAction, bool) {
	for _, a := range QuickActions {
		if a.ID == id {
			return a, true
		}
	}
	return QuickAction{}, false
}
