package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go-promoter/internal/domain/event"

	"github.com/google/uuid"
)

// ClickKind tags a click as a plain or unique view.
type ClickKind string

const (
	ClickView       ClickKind = "VIEW"
	ClickUniqueView ClickKind = "UNIQUE_VIEW"
)

// Attribution is the outcome of paying out a unique view.
type Attribution string

const (
	AttributionNone            Attribution = ""
	AttributionApplied         Attribution = "APPLIED"
	AttributionBudgetExhausted Attribution = "SKIPPED_BUDGET_EXHAUSTED"
	AttributionInactive        Attribution = "SKIPPED_INACTIVE"
)

// Applied reports whether money and points moved.
func (a Attribution) Applied() bool {
	return a == AttributionApplied
}

// Skipped reports whether a unique view was refused a payout.
func (a Attribution) Skipped() bool {
	return a == AttributionBudgetExhausted || a == AttributionInactive
}

// VisitorMetadata is what the redirect captured about the caller, plus enrichment.
type VisitorMetadata struct {
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
	Referer   string `json:"referer,omitempty"`
	Device    string `json:"device,omitempty"`
	Source    string `json:"source,omitempty"`
	Country   string `json:"country,omitempty"`
}

// Fingerprint identifies a visitor for deduplication: hex(sha256(ip NUL user agent)).
func (m VisitorMetadata) Fingerprint() string {
	sum := sha256.Sum256([]byte(m.IP + "\x00" + m.UserAgent))
	return hex.EncodeToString(sum[:])
}

// Compile-time interface check
var _ AggregateRoot = (*ClickEvent)(nil)

// ClickEvent is an immutable ledger entry for one resolved click.
type ClickEvent struct {
	eventRecorder

	ID          string
	Kind        ClickKind
	ShortCode   string
	AgentID     string
	CampaignID  string
	Attribution Attribution
	Payout      Money
	Metadata    VisitorMetadata
	OccurredAt  time.Time
}

// NewClickEvent records a click on link. It raises a ClickRecorded event.
func NewClickEvent(link *TrackingLink, unique bool, meta VisitorMetadata) *ClickEvent {
	kind := ClickView
	if unique {
		kind = ClickUniqueView
	}
	c := &ClickEvent{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Kind:       kind,
		ShortCode:  link.ShortCode().String(),
		AgentID:    link.AgentID(),
		CampaignID: link.CampaignID(),
		Metadata:   meta,
		OccurredAt: time.Now().UTC(),
	}
	c.addEvent(event.NewClickRecorded(c.ShortCode, c.CampaignID, c.AgentID, unique))
	return c
}

// IsUnique reports whether the click counted as a unique view.
func (c *ClickEvent) IsUnique() bool {
	return c.Kind == ClickUniqueView
}

// Attribute stores the payout outcome and raises the matching reward event.
func (c *ClickEvent) Attribute(outcome Attribution, payout Money, points int64, spent Money) {
	c.Attribution = outcome
	switch {
	case outcome.Applied():
		c.Payout = payout
		c.addEvent(event.NewRewardAttributed(c.ShortCode, c.CampaignID, c.AgentID, payout.Cents(), points, spent.Cents()))
	case outcome.Skipped():
		c.addEvent(event.NewRewardSkipped(c.ShortCode, c.CampaignID, c.AgentID, string(outcome)))
	}
}

// ReachedMilestone raises a LinkMilestoneReached event when the unique view
// count moved across a milestone.
func (c *ClickEvent) ReachedMilestone(previousUnique, currentUnique int64) {
	if milestone := event.CheckMilestone(previousUnique, currentUnique); milestone > 0 {
		c.addEvent(event.NewLinkMilestoneReached(c.ShortCode, c.CampaignID, c.AgentID, milestone, currentUnique))
	}
}
