package service

import (
	"context"

	"go-promoter/internal/biz"
	"go-promoter/internal/domain"

	"github.com/samber/lo"
)

// AgentService implements the agent facing campaign API.
type AgentService struct {
	uc *biz.CampaignUsecase
}

func NewAgentService(uc *biz.CampaignUsecase) *AgentService {
	return &AgentService{uc: uc}
}

func (s *AgentService) ListCampaigns(ctx context.Context, req *AgentCampaignsRequest) (*AgentCampaignsReply, error) {
	campaigns, err := s.uc.AgentCampaigns(ctx, req.AgentID)
	if err != nil {
		return nil, toKratosError(err)
	}
	return &AgentCampaignsReply{
		Campaigns: lo.Map(campaigns, toAgentCampaignReply),
	}, nil
}

func (s *AgentService) Dashboard(ctx context.Context, req *DashboardRequest) (*DashboardReply, error) {
	dashboard, err := s.uc.Dashboard(ctx, req.AgentID)
	if err != nil {
		return nil, toKratosError(err)
	}
	return &DashboardReply{
		Agent: &AgentProfileReply{
			ID:      dashboard.Agent.ID,
			Name:    dashboard.Agent.Name,
			Points:  dashboard.Agent.Points,
			Balance: dashboard.Agent.Balance.Float64(),
		},
		Tasks: lo.Map(dashboard.Tasks, toAgentCampaignReply),
	}, nil
}

func (s *AgentService) JoinCampaign(ctx context.Context, req *JoinCampaignRequest) (*LinkReply, error) {
	link, err := s.uc.JoinCampaign(ctx, req.AgentID, req.CampaignID)
	if err != nil {
		return nil, toKratosError(err)
	}
	return toLinkReply(link), nil
}

func (s *AgentService) Leaderboard(ctx context.Context, req *LeaderboardRequest) (*LeaderboardReply, error) {
	agents, err := s.uc.Leaderboard(ctx, req.AgentID)
	if err != nil {
		return nil, toKratosError(err)
	}
	return &LeaderboardReply{
		Agents: lo.Map(agents, func(a *domain.Agent, i int) *LeaderboardEntry {
			return &LeaderboardEntry{
				Rank:    i + 1,
				AgentID: a.ID,
				Name:    a.Name,
				Points:  a.Points,
				Balance: a.Balance.Float64(),
			}
		}),
	}, nil
}
