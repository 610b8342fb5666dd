package service

import (
	"context"

	"go-promoter/internal/biz"
	"go-promoter/internal/domain"

	"github.com/samber/lo"
)

// AdminService implements the tenant admin campaign API.
type AdminService struct {
	uc *biz.CampaignUsecase
}

func NewAdminService(uc *biz.CampaignUsecase) *AdminService {
	return &AdminService{uc: uc}
}

func (s *AdminService) CreateCampaign(ctx context.Context, req *CreateCampaignRequest) (*CampaignReply, error) {
	if err := req.Validate(); err != nil {
		return nil, toKratosError(err)
	}
	target, err := domain.NewTargetURL(req.TargetURL)
	if err != nil {
		return nil, toKratosError(err)
	}

	c, err := s.uc.CreateCampaign(ctx, req.TenantID, domain.CampaignParams{
		Name:          req.Name,
		Description:   req.Description,
		TargetURL:     target,
		PayoutPerView: domain.MoneyFromFloat(req.PayoutPerView),
		PointsPerView: req.PointsPerView,
		BudgetCap:     domain.MoneyFromFloat(req.BudgetCap),
		Draft:         req.Draft,
	})
	if err != nil {
		return nil, toKratosError(err)
	}
	return toCampaignReply(c), nil
}

func (s *AdminService) ListCampaigns(ctx context.Context, req *ListCampaignsRequest) (*ListCampaignsReply, error) {
	campaigns, err := s.uc.ListCampaigns(ctx, req.TenantID, req.Status)
	if err != nil {
		return nil, toKratosError(err)
	}
	return &ListCampaignsReply{
		Campaigns: lo.Map(campaigns, func(c *domain.Campaign, _ int) *CampaignReply {
			return toCampaignReply(c)
		}),
	}, nil
}

func (s *AdminService) UpdateCampaignStatus(ctx context.Context, req *UpdateCampaignStatusRequest) (*CampaignReply, error) {
	if err := req.Validate(); err != nil {
		return nil, toKratosError(err)
	}
	c, err := s.uc.UpdateStatus(ctx, req.TenantID, req.ID, req.Status)
	if err != nil {
		return nil, toKratosError(err)
	}
	return toCampaignReply(c), nil
}

func (s *AdminService) CampaignStats(ctx context.Context, req *CampaignStatsRequest) (*CampaignStatsReply, error) {
	stats, err := s.uc.Stats(ctx, req.TenantID, req.ID)
	if err != nil {
		return nil, toKratosError(err)
	}
	return &CampaignStatsReply{
		Campaign:       toCampaignReply(stats.Campaign),
		Agents:         lo.Map(stats.Agents, toAgentStatsReply),
		RealtimeClicks: stats.RealtimeClicks,
	}, nil
}
