package domain

import (
	"context"
	"time"
)

// LinkRepository persists tracking links.
// Implementations read through the transaction in ctx when there is one.
type LinkRepository interface {
	// Create stores a new link. Returns ErrShortCodeExists when the code is taken
	// and ErrAlreadyJoined when the agent already holds a link for the campaign.
	Create(ctx context.Context, link *TrackingLink) error

	// FindWithCampaign loads the link joined with its campaign and agent.
	// Returns ErrLinkNotFound if no link has the code.
	FindWithCampaign(ctx context.Context, code ShortCode) (*LinkWithCampaign, error)

	// FindByCampaignAndAgent returns the agent's link for a campaign or ErrLinkNotFound.
	FindByCampaignAndAgent(ctx context.Context, campaignID, agentID string) (*TrackingLink, error)

	// ListByAgent returns all links issued to an agent.
	ListByAgent(ctx context.Context, agentID string) ([]*TrackingLink, error)

	// StatsByCampaign returns the per agent breakdown of a campaign.
	StatsByCampaign(ctx context.Context, campaignID string) ([]*LinkStats, error)

	// Exists checks if a short code is already issued.
	Exists(ctx context.Context, code ShortCode) (bool, error)

	// IncrementViews atomically adds one view (and one unique view when unique)
	// and returns the counters after the update.
	IncrementViews(ctx context.Context, code ShortCode, unique bool) (views, uniqueViews int64, err error)
}

// LinkStats is one agent's row in a campaign breakdown.
type LinkStats struct {
	ShortCode       string
	AgentID         string
	AgentName       string
	ViewCount       int64
	UniqueViewCount int64
	// Earned sums the payouts actually applied to the link's clicks.
	Earned Money
}

// BudgetReservation is the result of a successful payout reservation.
type BudgetReservation struct {
	Payout Money
	Points int64
	Spent  Money
}

// CampaignRepository persists campaigns.
type CampaignRepository interface {
	// Save inserts a new campaign.
	Save(ctx context.Context, c *Campaign) error

	// UpdateStatus writes the campaign status.
	UpdateStatus(ctx context.Context, c *Campaign) error

	// FindByID returns the campaign or ErrCampaignNotFound.
	FindByID(ctx context.Context, id string) (*Campaign, error)

	// ListByTenant returns the tenant's campaigns, newest first. An empty status lists all.
	ListByTenant(ctx context.Context, tenantID string, status CampaignStatus) ([]*Campaign, error)

	// IncrementViews atomically adds one view (and one unique view when unique).
	IncrementViews(ctx context.Context, id string, unique bool) error

	// ReserveBudget adds payout_per_view to spent in a single compare-and-swap
	// statement guarded by status ACTIVE and the budget cap. It returns nil when
	// the guard failed. Must run inside UnitOfWork.Do, otherwise ErrNoTransaction.
	ReserveBudget(ctx context.Context, id string) (*BudgetReservation, error)

	// Status reads the current status, or ErrCampaignNotFound.
	Status(ctx context.Context, id string) (CampaignStatus, error)
}

// AgentRepository persists agents.
type AgentRepository interface {
	// Save inserts a new agent.
	Save(ctx context.Context, a *Agent) error

	// FindByID returns the agent or ErrAgentNotFound.
	FindByID(ctx context.Context, id string) (*Agent, error)

	// Credit atomically increases balance and points. Returns ErrAgentNotFound if no row changed.
	Credit(ctx context.Context, id string, amount Money, points int64) error

	// TopByPoints returns the tenant's agents ordered by points descending.
	TopByPoints(ctx context.Context, tenantID string, limit int) ([]*Agent, error)
}

// ClickRepository is the append-only click ledger.
type ClickRepository interface {
	// Append stores a click event.
	Append(ctx context.Context, c *ClickEvent) error

	// ListByShortCode returns the events of a link in occurrence order.
	ListByShortCode(ctx context.Context, code string) ([]*ClickEvent, error)
}

// LinkCache maps short codes to destinations. A miss is ("", nil).
type LinkCache interface {
	Get(ctx context.Context, code string) (string, error)
	Set(ctx context.Context, code, destination string, ttl time.Duration) error
	Invalidate(ctx context.Context, code string) error
}

// DedupStore records which visitors were already counted unique for a link.
type DedupStore interface {
	// MarkIfAbsent atomically records the fingerprint and reports whether it was new.
	MarkIfAbsent(ctx context.Context, code, fingerprint string, ttl time.Duration) (bool, error)

	// Forget removes a mark so a later click can count again.
	Forget(ctx context.Context, code, fingerprint string) error
}

// ClickCounter keeps best effort realtime click counters.
type ClickCounter interface {
	IncrLink(ctx context.Context, code string) error
	IncrAgent(ctx context.Context, agentID string) error
	LinkClicks(ctx context.Context, code string) (int64, error)
}
