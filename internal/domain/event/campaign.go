package event

// CampaignCreated is raised when an admin creates a campaign.
type CampaignCreated struct {
	Base
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
}

// NewCampaignCreated creates a new CampaignCreated event.
func NewCampaignCreated(campaignID, tenantID, name, status string) CampaignCreated {
	return CampaignCreated{
		Base:     NewBase(campaignID, campaignID),
		TenantID: tenantID,
		Name:     name,
		Status:   status,
	}
}

// EventName returns the event name.
func (e CampaignCreated) EventName() string {
	return "campaign.created"
}

// CampaignStatusChanged is raised on every accepted status transition.
type CampaignStatusChanged struct {
	Base
	From string `json:"from"`
	To   string `json:"to"`
}

// NewCampaignStatusChanged creates a new CampaignStatusChanged event.
func NewCampaignStatusChanged(campaignID, from, to string) CampaignStatusChanged {
	return CampaignStatusChanged{
		Base: NewBase(campaignID, campaignID),
		From: from,
		To:   to,
	}
}

// EventName returns the event name.
func (e CampaignStatusChanged) EventName() string {
	return "campaign.status_changed"
}

// LinkIssued is raised when an agent joins a campaign and receives a tracking link.
type LinkIssued struct {
	Base
	ShortCode string `json:"short_code"`
	AgentID   string `json:"agent_id"`
}

// NewLinkIssued creates a new LinkIssued event.
func NewLinkIssued(shortCode, campaignID, agentID string) LinkIssued {
	return LinkIssued{
		Base:      NewBase(shortCode, campaignID),
		ShortCode: shortCode,
		AgentID:   agentID,
	}
}

// EventName returns the event name.
func (e LinkIssued) EventName() string {
	return "link.issued"
}
