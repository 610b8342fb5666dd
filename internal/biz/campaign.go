package biz

import (
	"context"
	"errors"
	"fmt"

	"go-promoter/internal/conf"
	"go-promoter/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/samber/lo"
)

// AgentPerformance is one agent's share of a campaign.
type AgentPerformance struct {
	ShortCode   string
	AgentID     string
	AgentName   string
	Views       int64
	UniqueViews int64
	Earnings    domain.Money
}

// AgentDashboard is the agent's own score and balance with the campaigns they can work on.
type AgentDashboard struct {
	Agent *domain.Agent
	Tasks []AgentCampaign
}

// CampaignStats is the admin view of a campaign.
type CampaignStats struct {
	Campaign       *domain.Campaign
	Agents         []AgentPerformance
	RealtimeClicks int64
}

// AgentCampaign is an active campaign together with the agent's link, if joined.
type AgentCampaign struct {
	Campaign *domain.Campaign
	Link     *domain.TrackingLink
}

// CampaignUsecase implements the admin and agent campaign operations.
type CampaignUsecase struct {
	campaigns       domain.CampaignRepository
	agents          domain.AgentRepository
	links           domain.LinkRepository
	counter         domain.ClickCounter
	uow             domain.UnitOfWork
	joinAttempts    int
	leaderboardSize int
	log             *log.Helper
}

// NewCampaignUsecase creates a new CampaignUsecase.
func NewCampaignUsecase(
	campaigns domain.CampaignRepository,
	agents domain.AgentRepository,
	links domain.LinkRepository,
	counter domain.ClickCounter,
	uow domain.UnitOfWork,
	c *conf.Promoter,
	logger log.Logger,
) *CampaignUsecase {
	return &CampaignUsecase{
		campaigns:       campaigns,
		agents:          agents,
		links:           links,
		counter:         counter,
		uow:             uow,
		joinAttempts:    c.JoinMaxAttempts,
		leaderboardSize: c.LeaderboardSize,
		log:             log.NewHelper(log.With(logger, "module", "biz/campaign")),
	}
}

// CreateCampaign creates a campaign owned by tenantID.
func (uc *CampaignUsecase) CreateCampaign(ctx context.Context, tenantID string, p domain.CampaignParams) (*domain.Campaign, error) {
	p.TenantID = tenantID
	c, err := domain.NewCampaign(p)
	if err != nil {
		return nil, err
	}

	if err := uc.uow.Do(ctx, func(ctx context.Context) error {
		return uc.campaigns.Save(ctx, c)
	}, c); err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Infof("campaign %s created for tenant %s", c.ID(), tenantID)
	return c, nil
}

// ListCampaigns lists the tenant's campaigns, newest first. An empty status lists all.
func (uc *CampaignUsecase) ListCampaigns(ctx context.Context, tenantID, status string) ([]*domain.Campaign, error) {
	var filter domain.CampaignStatus
	if status != "" {
		s, err := domain.ParseCampaignStatus(status)
		if err != nil {
			return nil, err
		}
		filter = s
	}
	return uc.campaigns.ListByTenant(ctx, tenantID, filter)
}

// UpdateStatus moves a tenant's campaign to status.
func (uc *CampaignUsecase) UpdateStatus(ctx context.Context, tenantID, campaignID, status string) (*domain.Campaign, error) {
	next, err := domain.ParseCampaignStatus(status)
	if err != nil {
		return nil, err
	}

	c, err := uc.tenantCampaign(ctx, tenantID, campaignID)
	if err != nil {
		return nil, err
	}
	prev := c.Status()
	if err := c.ChangeStatus(next); err != nil {
		return nil, err
	}
	if prev == next {
		return c, nil
	}

	if err := uc.uow.Do(ctx, func(ctx context.Context) error {
		return uc.campaigns.UpdateStatus(ctx, c)
	}, c); err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Infof("campaign %s moved from %s to %s", campaignID, prev, next)
	return c, nil
}

// Stats returns the campaign totals and the per agent breakdown.
// The realtime click counter is best effort and reads 0 when unavailable.
func (uc *CampaignUsecase) Stats(ctx context.Context, tenantID, campaignID string) (*CampaignStats, error) {
	c, err := uc.tenantCampaign(ctx, tenantID, campaignID)
	if err != nil {
		return nil, err
	}

	rows, err := uc.links.StatsByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	stats := &CampaignStats{
		Campaign: c,
		Agents: lo.Map(rows, func(r *domain.LinkStats, _ int) AgentPerformance {
			return AgentPerformance{
				ShortCode:   r.ShortCode,
				AgentID:     r.AgentID,
				AgentName:   r.AgentName,
				Views:       r.ViewCount,
				UniqueViews: r.UniqueViewCount,
				Earnings:    r.Earned,
			}
		}),
	}

	for _, r := range rows {
		n, err := uc.counter.LinkClicks(ctx, r.ShortCode)
		if err != nil {
			uc.log.WithContext(ctx).Warnf("realtime clicks of %s: %v", r.ShortCode, err)
			continue
		}
		stats.RealtimeClicks += n
	}
	return stats, nil
}

// AgentCampaigns lists the active campaigns of the agent's tenant with the
// agent's link for each joined one.
func (uc *CampaignUsecase) AgentCampaigns(ctx context.Context, agentID string) ([]AgentCampaign, error) {
	agent, err := uc.agents.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return uc.agentCampaigns(ctx, agent)
}

// Dashboard returns the agent's current points and balance with the active tasks.
func (uc *CampaignUsecase) Dashboard(ctx context.Context, agentID string) (*AgentDashboard, error) {
	agent, err := uc.agents.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	tasks, err := uc.agentCampaigns(ctx, agent)
	if err != nil {
		return nil, err
	}
	return &AgentDashboard{Agent: agent, Tasks: tasks}, nil
}

func (uc *CampaignUsecase) agentCampaigns(ctx context.Context, agent *domain.Agent) ([]AgentCampaign, error) {
	campaigns, err := uc.campaigns.ListByTenant(ctx, agent.TenantID, domain.CampaignActive)
	if err != nil {
		return nil, err
	}
	links, err := uc.links.ListByAgent(ctx, agent.ID)
	if err != nil {
		return nil, err
	}
	byCampaign := lo.KeyBy(links, func(l *domain.TrackingLink) string {
		return l.CampaignID()
	})

	return lo.Map(campaigns, func(c *domain.Campaign, _ int) AgentCampaign {
		return AgentCampaign{Campaign: c, Link: byCampaign[c.ID()]}
	}), nil
}

// JoinCampaign issues a tracking link for the agent. The short code is
// regenerated on collision up to the configured number of attempts.
func (uc *CampaignUsecase) JoinCampaign(ctx context.Context, agentID, campaignID string) (*domain.TrackingLink, error) {
	agent, err := uc.agents.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	c, err := uc.tenantCampaign(ctx, agent.TenantID, campaignID)
	if err != nil {
		return nil, err
	}
	if !c.IsActive() {
		return nil, domain.ErrCampaignInactive
	}

	for attempt := 1; attempt <= uc.joinAttempts; attempt++ {
		code, err := domain.GenerateShortCode(domain.DefaultShortCodeLength)
		if err != nil {
			return nil, err
		}

		link := domain.NewTrackingLink(code, campaignID, agentID)
		err = uc.uow.Do(ctx, func(ctx context.Context) error {
			return uc.links.Create(ctx, link)
		}, link)
		switch {
		case err == nil:
			uc.log.WithContext(ctx).Infof("agent %s joined campaign %s with %s", agentID, campaignID, code)
			return link, nil
		case errors.Is(err, domain.ErrShortCodeExists):
			uc.log.WithContext(ctx).Debugf("short code %s taken, retrying (%d/%d)", code, attempt, uc.joinAttempts)
		default:
			return nil, err
		}
	}
	return nil, fmt.Errorf("generate short code after %d attempts: %w", uc.joinAttempts, domain.ErrShortCodeExists)
}

// Leaderboard returns the top agents of the agent's tenant by points.
func (uc *CampaignUsecase) Leaderboard(ctx context.Context, agentID string) ([]*domain.Agent, error) {
	agent, err := uc.agents.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return uc.agents.TopByPoints(ctx, agent.TenantID, uc.leaderboardSize)
}

// tenantCampaign loads a campaign and hides campaigns of other tenants.
func (uc *CampaignUsecase) tenantCampaign(ctx context.Context, tenantID, campaignID string) (*domain.Campaign, error) {
	c, err := uc.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !c.BelongsTo(tenantID) {
		return nil, domain.ErrCampaignNotFound
	}
	return c, nil
}
