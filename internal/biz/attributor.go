package biz

import (
	"context"
	"errors"
	"fmt"

	"go-promoter/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
)

// Reward is the outcome of attributing one unique view.
type Reward struct {
	Outcome domain.Attribution
	Payout  domain.Money
	Points  int64
	Spent   domain.Money
}

// RewardAttributor pays agents for unique views out of the campaign budget.
type RewardAttributor struct {
	campaigns domain.CampaignRepository
	agents    domain.AgentRepository
	log       *log.Helper
}

// NewRewardAttributor creates a new RewardAttributor.
func NewRewardAttributor(campaigns domain.CampaignRepository, agents domain.AgentRepository, logger log.Logger) *RewardAttributor {
	return &RewardAttributor{
		campaigns: campaigns,
		agents:    agents,
		log:       log.NewHelper(log.With(logger, "module", "biz/attributor")),
	}
}

// Attribute reserves one payout from the campaign budget and credits the agent.
// It must run inside UnitOfWork.Do. A refused payout is an outcome, not an error.
func (a *RewardAttributor) Attribute(ctx context.Context, campaignID, agentID string) (Reward, error) {
	reservation, err := a.campaigns.ReserveBudget(ctx, campaignID)
	if err != nil {
		return Reward{}, fmt.Errorf("reserve budget of campaign %s: %w", campaignID, err)
	}

	if reservation == nil {
		status, err := a.campaigns.Status(ctx, campaignID)
		if err != nil {
			return Reward{}, fmt.Errorf("read status of campaign %s: %w", campaignID, err)
		}
		if status != domain.CampaignActive {
			return Reward{Outcome: domain.AttributionInactive}, nil
		}
		return Reward{Outcome: domain.AttributionBudgetExhausted}, nil
	}

	err = a.agents.Credit(ctx, agentID, reservation.Payout, reservation.Points)
	if errors.Is(err, domain.ErrAgentNotFound) {
		return Reward{}, fmt.Errorf("%w: agent %s of campaign %s", domain.ErrDataIntegrity, agentID, campaignID)
	}
	if err != nil {
		return Reward{}, fmt.Errorf("credit agent %s: %w", agentID, err)
	}

	a.log.WithContext(ctx).Debugf("credited agent %s with %s and %d points (campaign %s spent %s)",
		agentID, reservation.Payout, reservation.Points, campaignID, reservation.Spent)
	return Reward{
		Outcome: domain.AttributionApplied,
		Payout:  reservation.Payout,
		Points:  reservation.Points,
		Spent:   reservation.Spent,
	}, nil
}
