package event

// LinkMilestoneReached is raised when a tracking link crosses a unique view milestone.
type LinkMilestoneReached struct {
	Base
	ShortCode   string `json:"short_code"`
	AgentID     string `json:"agent_id"`
	Milestone   int64  `json:"milestone"`
	UniqueViews int64  `json:"unique_views"`
}

// Milestones defines the unique view counts that trigger the event.
var Milestones = []int64{10, 100, 500, 1000, 5000, 10000, 50000, 100000}

// NewLinkMilestoneReached creates a new LinkMilestoneReached event.
func NewLinkMilestoneReached(shortCode, campaignID, agentID string, milestone, uniqueViews int64) LinkMilestoneReached {
	return LinkMilestoneReached{
		Base:        NewBase(shortCode, campaignID),
		ShortCode:   shortCode,
		AgentID:     agentID,
		Milestone:   milestone,
		UniqueViews: uniqueViews,
	}
}

// EventName returns the event name.
func (e LinkMilestoneReached) EventName() string {
	return "link.milestone_reached"
}

// CheckMilestone checks if the count has reached a new milestone.
// Returns the milestone value if reached, or 0 if no milestone was reached.
func CheckMilestone(previousCount, currentCount int64) int64 {
	for _, milestone := range Milestones {
		if previousCount < milestone && currentCount >= milestone {
			return milestone
		}
	}
	return 0
}
