package event

// ClickRecorded is raised for every click committed to the ledger.
type ClickRecorded struct {
	Base
	ShortCode string `json:"short_code"`
	AgentID   string `json:"agent_id"`
	Unique    bool   `json:"unique"`
}

// NewClickRecorded creates a new ClickRecorded event.
func NewClickRecorded(shortCode, campaignID, agentID string, unique bool) ClickRecorded {
	return ClickRecorded{
		Base:      NewBase(shortCode, campaignID),
		ShortCode: shortCode,
		AgentID:   agentID,
		Unique:    unique,
	}
}

// EventName returns the event name.
func (e ClickRecorded) EventName() string {
	return "click.recorded"
}
