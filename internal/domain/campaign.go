package domain

import (
	"fmt"
	"time"

	"go-promoter/internal/domain/event"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "DRAFT"
	CampaignActive    CampaignStatus = "ACTIVE"
	CampaignPaused    CampaignStatus = "PAUSED"
	CampaignCompleted CampaignStatus = "COMPLETED"
)

var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignDraft:  {CampaignActive},
	CampaignActive: {CampaignPaused, CampaignCompleted},
	CampaignPaused: {CampaignActive, CampaignCompleted},
}

// ParseCampaignStatus validates a status string.
func ParseCampaignStatus(s string) (CampaignStatus, error) {
	switch status := CampaignStatus(s); status {
	case CampaignDraft, CampaignActive, CampaignPaused, CampaignCompleted:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// CanTransitionTo reports whether the admin may move a campaign from s to next.
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	for _, allowed := range campaignTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// String returns the status name.
func (s CampaignStatus) String() string {
	return string(s)
}

// Compile-time interface check
var _ AggregateRoot = (*Campaign)(nil)

// Campaign is the aggregate root for a promotion with a bounded payout budget.
type Campaign struct {
	eventRecorder

	id               string
	tenantID         string
	name             string
	description      string
	targetURL        TargetURL
	status           CampaignStatus
	payoutPerView    Money
	pointsPerView    int64
	budgetCap        Money
	spent            Money
	totalViews       int64
	totalUniqueViews int64
	createdAt        time.Time
	updatedAt        time.Time
}

// CampaignParams holds the admin supplied attributes of a new campaign.
type CampaignParams struct {
	TenantID      string
	Name          string
	Description   string
	TargetURL     TargetURL
	PayoutPerView Money
	PointsPerView int64
	BudgetCap     Money
	Draft         bool
}

// Validate checks the campaign parameters.
func (p CampaignParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.TenantID, validation.Required),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.PayoutPerView, validation.Min(Money(0))),
		validation.Field(&p.PointsPerView, validation.Min(int64(0))),
		validation.Field(&p.BudgetCap, validation.Min(Money(0))),
	)
}

// NewCampaign creates a campaign. Campaigns start ACTIVE unless created as a draft.
// It raises a CampaignCreated event.
func NewCampaign(p CampaignParams) (*Campaign, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCampaign, err)
	}
	if p.TargetURL.IsEmpty() {
		return nil, fmt.Errorf("%w: target_url: cannot be blank", ErrInvalidCampaign)
	}

	status := CampaignActive
	if p.Draft {
		status = CampaignDraft
	}

	now := time.Now().UTC()
	c := &Campaign{
		id:            uuid.Must(uuid.NewV7()).String(),
		tenantID:      p.TenantID,
		name:          p.Name,
		description:   p.Description,
		targetURL:     p.TargetURL,
		status:        status,
		payoutPerView: p.PayoutPerView,
		pointsPerView: p.PointsPerView,
		budgetCap:     p.BudgetCap,
		createdAt:     now,
		updatedAt:     now,
	}
	c.addEvent(event.NewCampaignCreated(c.id, c.tenantID, c.name, c.status.String()))
	return c, nil
}

// CampaignSnapshot is the persisted form of a campaign.
type CampaignSnapshot struct {
	ID               string
	TenantID         string
	Name             string
	Description      string
	TargetURL        TargetURL
	Status           CampaignStatus
	PayoutPerView    Money
	PointsPerView    int64
	BudgetCap        Money
	Spent            Money
	TotalViews       int64
	TotalUniqueViews int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReconstructCampaign rebuilds a campaign from persistence.
func ReconstructCampaign(s CampaignSnapshot) *Campaign {
	return &Campaign{
		id:               s.ID,
		tenantID:         s.TenantID,
		name:             s.Name,
		description:      s.Description,
		targetURL:        s.TargetURL,
		status:           s.Status,
		payoutPerView:    s.PayoutPerView,
		pointsPerView:    s.PointsPerView,
		budgetCap:        s.BudgetCap,
		spent:            s.Spent,
		totalViews:       s.TotalViews,
		totalUniqueViews: s.TotalUniqueViews,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
	}
}

// ID returns the campaign identifier.
func (c *Campaign) ID() string {
	return c.id
}

func (c *Campaign) TenantID() string {
	return c.tenantID
}

func (c *Campaign) Name() string {
	return c.name
}

func (c *Campaign) Description() string {
	return c.description
}

func (c *Campaign) TargetURL() TargetURL {
	return c.targetURL
}

// Status returns the lifecycle state.
func (c *Campaign) Status() CampaignStatus {
	return c.status
}

func (c *Campaign) PayoutPerView() Money {
	return c.payoutPerView
}

func (c *Campaign) PointsPerView() int64 {
	return c.pointsPerView
}

func (c *Campaign) BudgetCap() Money {
	return c.budgetCap
}

// Spent returns the amount paid out so far.
func (c *Campaign) Spent() Money {
	return c.spent
}

func (c *Campaign) TotalViews() int64 {
	return c.totalViews
}

func (c *Campaign) TotalUniqueViews() int64 {
	return c.totalUniqueViews
}

func (c *Campaign) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Campaign) UpdatedAt() time.Time {
	return c.updatedAt
}

// IsActive reports whether the campaign accepts joins and pays out.
func (c *Campaign) IsActive() bool {
	return c.status == CampaignActive
}

// BelongsTo reports whether the campaign is owned by tenantID.
func (c *Campaign) BelongsTo(tenantID string) bool {
	return c.tenantID == tenantID
}

// RemainingBudget returns the part of the budget cap not yet paid out.
func (c *Campaign) RemainingBudget() Money {
	if c.spent >= c.budgetCap {
		return 0
	}
	return c.budgetCap - c.spent
}

// ChangeStatus moves the campaign to next. Setting the current status again is a no-op.
// It raises a CampaignStatusChanged event.
func (c *Campaign) ChangeStatus(next CampaignStatus) error {
	if next == c.status {
		return nil
	}
	if !c.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.status, next)
	}

	prev := c.status
	c.status = next
	c.updatedAt = time.Now().UTC()
	c.addEvent(event.NewCampaignStatusChanged(c.id, prev.String(), next.String()))
	return nil
}

// Snapshot returns the persisted form of the campaign.
func (c *Campaign) Snapshot() CampaignSnapshot {
	return CampaignSnapshot{
		ID:               c.id,
		TenantID:         c.tenantID,
		Name:             c.name,
		Description:      c.description,
		TargetURL:        c.targetURL,
		Status:           c.status,
		PayoutPerView:    c.payoutPerView,
		PointsPerView:    c.pointsPerView,
		BudgetCap:        c.budgetCap,
		Spent:            c.spent,
		TotalViews:       c.totalViews,
		TotalUniqueViews: c.totalUniqueViews,
		CreatedAt:        c.createdAt,
		UpdatedAt:        c.updatedAt,
	}
}
