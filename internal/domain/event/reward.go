package event

// RewardAttributed is raised when a unique view pays out to an agent.
type RewardAttributed struct {
	Base
	ShortCode     string `json:"short_code"`
	AgentID       string `json:"agent_id"`
	AmountCents   int64  `json:"amount_cents"`
	Points        int64  `json:"points"`
	CampaignSpent int64  `json:"campaign_spent_cents"`
}

// NewRewardAttributed creates a new RewardAttributed event.
func NewRewardAttributed(shortCode, campaignID, agentID string, amountCents, points, spentCents int64) RewardAttributed {
	return RewardAttributed{
		Base:          NewBase(campaignID, campaignID),
		ShortCode:     shortCode,
		AgentID:       agentID,
		AmountCents:   amountCents,
		Points:        points,
		CampaignSpent: spentCents,
	}
}

// EventName returns the event name.
func (e RewardAttributed) EventName() string {
	return "reward.attributed"
}

// RewardSkipped is raised when a unique view could not pay out.
type RewardSkipped struct {
	Base
	ShortCode string `json:"short_code"`
	AgentID   string `json:"agent_id"`
	Reason    string `json:"reason"`
}

// NewRewardSkipped creates a new RewardSkipped event.
func NewRewardSkipped(shortCode, campaignID, agentID, reason string) RewardSkipped {
	return RewardSkipped{
		Base:      NewBase(campaignID, campaignID),
		ShortCode: shortCode,
		AgentID:   agentID,
		Reason:    reason,
	}
}

// EventName returns the event name.
func (e RewardSkipped) EventName() string {
	return "reward.skipped"
}
