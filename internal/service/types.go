package service

import (
	"time"

	"go-promoter/internal/biz"
	"go-promoter/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateCampaignRequest is the body of POST /api/v1/admin/campaigns.
// Amounts are decimals and are rounded to the nearest cent.
type CreateCampaignRequest struct {
	TenantID      string  `json:"-"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	TargetURL     string  `json:"target_url"`
	PayoutPerView float64 `json:"payout_per_view"`
	PointsPerView int64   `json:"points_per_view"`
	BudgetCap     float64 `json:"budget_cap"`
	Draft         bool    `json:"draft"`
}

// Validate checks the request fields.
func (r *CreateCampaignRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.TargetURL, validation.Required, is.URL),
		validation.Field(&r.PayoutPerView, validation.Min(0.0)),
		validation.Field(&r.PointsPerView, validation.Min(int64(0))),
		validation.Field(&r.BudgetCap, validation.Min(0.0)),
	)
}

type ListCampaignsRequest struct {
	TenantID string `json:"-"`
	Status   string `json:"status"`
}

type ListCampaignsReply struct {
	Campaigns []*CampaignReply `json:"campaigns"`
}

type UpdateCampaignStatusRequest struct {
	TenantID string `json:"-"`
	ID       string `json:"-"`
	Status   string `json:"status"`
}

// Validate checks the request fields.
func (r *UpdateCampaignStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status, validation.Required),
	)
}

type CampaignStatsRequest struct {
	TenantID string `json:"-"`
	ID       string `json:"-"`
}

// CampaignReply is the API view of a campaign.
type CampaignReply struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	TargetURL        string    `json:"target_url"`
	Status           string    `json:"status"`
	PayoutPerView    float64   `json:"payout_per_view"`
	PointsPerView    int64     `json:"points_per_view"`
	BudgetCap        float64   `json:"budget_cap"`
	Spent            float64   `json:"spent"`
	RemainingBudget  float64   `json:"remaining_budget"`
	TotalViews       int64     `json:"total_views"`
	TotalUniqueViews int64     `json:"total_unique_views"`
	CreatedAt        time.Time `json:"created_at"`
}

type AgentStatsReply struct {
	ShortCode   string  `json:"short_code"`
	AgentID     string  `json:"agent_id"`
	AgentName   string  `json:"agent_name"`
	Views       int64   `json:"views"`
	UniqueViews int64   `json:"unique_views"`
	Earnings    float64 `json:"earnings"`
}

type CampaignStatsReply struct {
	Campaign       *CampaignReply     `json:"campaign"`
	Agents         []*AgentStatsReply `json:"agents"`
	RealtimeClicks int64              `json:"realtime_clicks"`
}

type AgentCampaignsRequest struct {
	AgentID string `json:"-"`
}

type AgentCampaignReply struct {
	Campaign *CampaignReply `json:"campaign"`
	MyLink   *LinkReply     `json:"my_link"`
}

type AgentCampaignsReply struct {
	Campaigns []*AgentCampaignReply `json:"campaigns"`
}

type DashboardRequest struct {
	AgentID string `json:"-"`
}

// AgentProfileReply is the calling agent's own score and balance.
type AgentProfileReply struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Points  int64   `json:"points"`
	Balance float64 `json:"balance"`
}

type DashboardReply struct {
	Agent *AgentProfileReply    `json:"agent"`
	Tasks []*AgentCampaignReply `json:"tasks"`
}

type JoinCampaignRequest struct {
	AgentID    string `json:"-"`
	CampaignID string `json:"-"`
}

// LinkReply is the API view of a tracking link.
type LinkReply struct {
	ShortCode       string    `json:"short_code"`
	Path            string    `json:"path"`
	CampaignID      string    `json:"campaign_id"`
	ViewCount       int64     `json:"view_count"`
	UniqueViewCount int64     `json:"unique_view_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type LeaderboardRequest struct {
	AgentID string `json:"-"`
}

type LeaderboardEntry struct {
	Rank    int     `json:"rank"`
	AgentID string  `json:"agent_id"`
	Name    string  `json:"name"`
	Points  int64   `json:"points"`
	Balance float64 `json:"balance"`
}

type LeaderboardReply struct {
	Agents []*LeaderboardEntry `json:"agents"`
}

func toCampaignReply(c *domain.Campaign) *CampaignReply {
	return &CampaignReply{
		ID:               c.ID(),
		Name:             c.Name(),
		Description:      c.Description(),
		TargetURL:        c.TargetURL().String(),
		Status:           c.Status().String(),
		PayoutPerView:    c.PayoutPerView().Float64(),
		PointsPerView:    c.PointsPerView(),
		BudgetCap:        c.BudgetCap().Float64(),
		Spent:            c.Spent().Float64(),
		RemainingBudget:  c.RemainingBudget().Float64(),
		TotalViews:       c.TotalViews(),
		TotalUniqueViews: c.TotalUniqueViews(),
		CreatedAt:        c.CreatedAt(),
	}
}

func toAgentCampaignReply(ac biz.AgentCampaign, _ int) *AgentCampaignReply {
	return &AgentCampaignReply{
		Campaign: toCampaignReply(ac.Campaign),
		MyLink:   toLinkReply(ac.Link),
	}
}

func toLinkReply(l *domain.TrackingLink) *LinkReply {
	if l == nil {
		return nil
	}
	return &LinkReply{
		ShortCode:       l.ShortCode().String(),
		Path:            "/r/" + l.ShortCode().String(),
		CampaignID:      l.CampaignID(),
		ViewCount:       l.ViewCount(),
		UniqueViewCount: l.UniqueViewCount(),
		CreatedAt:       l.CreatedAt(),
	}
}

func toAgentStatsReply(p biz.AgentPerformance, _ int) *AgentStatsReply {
	return &AgentStatsReply{
		ShortCode:   p.ShortCode,
		AgentID:     p.AgentID,
		AgentName:   p.AgentName,
		Views:       p.Views,
		UniqueViews: p.UniqueViews,
		Earnings:    p.Earnings.Float64(),
	}
}
