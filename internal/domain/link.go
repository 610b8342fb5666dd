package domain

import (
	"time"

	"go-promoter/internal/domain/event"
)

// Compile-time interface check
var _ AggregateRoot = (*TrackingLink)(nil)

// TrackingLink is the short link an agent shares for a campaign.
// Its short code never changes once issued and its counters only grow.
type TrackingLink struct {
	eventRecorder

	shortCode       ShortCode
	agentID         string
	campaignID      string
	viewCount       int64
	uniqueViewCount int64
	createdAt       time.Time
}

// NewTrackingLink issues a link for agentID on campaignID.
// It raises a LinkIssued event.
func NewTrackingLink(code ShortCode, campaignID, agentID string) *TrackingLink {
	l := &TrackingLink{
		shortCode:  code,
		agentID:    agentID,
		campaignID: campaignID,
		createdAt:  time.Now().UTC(),
	}
	l.addEvent(event.NewLinkIssued(code.String(), campaignID, agentID))
	return l
}

// ReconstructTrackingLink rebuilds a link from persistence.
func ReconstructTrackingLink(code ShortCode, campaignID, agentID string, views, uniqueViews int64, createdAt time.Time) *TrackingLink {
	return &TrackingLink{
		shortCode:       code,
		agentID:         agentID,
		campaignID:      campaignID,
		viewCount:       views,
		uniqueViewCount: uniqueViews,
		createdAt:       createdAt,
	}
}

// ShortCode returns the link's short code.
func (l *TrackingLink) ShortCode() ShortCode {
	return l.shortCode
}

// AgentID returns the referring agent.
func (l *TrackingLink) AgentID() string {
	return l.agentID
}

// CampaignID returns the owning campaign.
func (l *TrackingLink) CampaignID() string {
	return l.campaignID
}

// ViewCount returns the total number of recorded clicks.
func (l *TrackingLink) ViewCount() int64 {
	return l.viewCount
}

// UniqueViewCount returns the number of clicks counted as unique visitors.
func (l *TrackingLink) UniqueViewCount() int64 {
	return l.uniqueViewCount
}

// CreatedAt returns when the link was issued.
func (l *TrackingLink) CreatedAt() time.Time {
	return l.createdAt
}

// LinkWithCampaign is the explicit join of a link with its campaign and agent.
// Campaign is nil and HasAgent is false when the referenced rows are missing.
type LinkWithCampaign struct {
	Link     *TrackingLink
	Campaign *Campaign
	HasAgent bool
}

// Destination returns the redirect target, or "" when the link cannot be resolved.
func (lc *LinkWithCampaign) Destination() string {
	if lc == nil || lc.Campaign == nil {
		return ""
	}
	return lc.Campaign.TargetURL().String()
}
