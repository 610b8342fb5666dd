package domain

import (
	"testing"

	"go-promoter/internal/domain/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams(t *testing.T) CampaignParams {
	t.Helper()
	target, err := NewTargetURL("https://example.com/landing")
	require.NoError(t, err)
	return CampaignParams{
		TenantID:      "tenant-1",
		Name:          "Spring promo",
		TargetURL:     target,
		PayoutPerView: MoneyFromFloat(3.0),
		PointsPerView: 5,
		BudgetCap:     MoneyFromFloat(10.0),
	}
}

func TestNewCampaign(t *testing.T) {
	c, err := NewCampaign(validParams(t))
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID())
	assert.Equal(t, CampaignActive, c.Status())
	assert.Equal(t, Money(300), c.PayoutPerView())
	assert.Equal(t, Money(1000), c.BudgetCap())
	assert.Equal(t, Money(0), c.Spent())
	assert.Equal(t, Money(1000), c.RemainingBudget())
	assert.True(t, c.BelongsTo("tenant-1"))

	require.Len(t, c.Events(), 1)
	created, ok := c.Events()[0].(event.CampaignCreated)
	require.True(t, ok)
	assert.Equal(t, "ACTIVE", created.Status)
}

func TestNewCampaign_Draft(t *testing.T) {
	p := validParams(t)
	p.Draft = true

	c, err := NewCampaign(p)
	require.NoError(t, err)
	assert.Equal(t, CampaignDraft, c.Status())
	assert.False(t, c.IsActive())
}

func TestNewCampaign_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CampaignParams)
	}{
		{"missing tenant", func(p *CampaignParams) { p.TenantID = "" }},
		{"missing name", func(p *CampaignParams) { p.Name = "" }},
		{"negative payout", func(p *CampaignParams) { p.PayoutPerView = -1 }},
		{"negative points", func(p *CampaignParams) { p.PointsPerView = -1 }},
		{"negative budget", func(p *CampaignParams) { p.BudgetCap = -100 }},
		{"missing target", func(p *CampaignParams) { p.TargetURL = TargetURL{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams(t)
			tt.mutate(&p)

			_, err := NewCampaign(p)
			assert.ErrorIs(t, err, ErrInvalidCampaign)
		})
	}
}

func TestCampaign_ChangeStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    CampaignStatus
		to      CampaignStatus
		wantErr error
	}{
		{"draft to active", CampaignDraft, CampaignActive, nil},
		{"active to paused", CampaignActive, CampaignPaused, nil},
		{"paused to active", CampaignPaused, CampaignActive, nil},
		{"active to completed", CampaignActive, CampaignCompleted, nil},
		{"paused to completed", CampaignPaused, CampaignCompleted, nil},
		{"draft to paused", CampaignDraft, CampaignPaused, ErrInvalidTransition},
		{"completed is terminal", CampaignCompleted, CampaignActive, ErrInvalidTransition},
		{"active to draft", CampaignActive, CampaignDraft, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ReconstructCampaign(CampaignSnapshot{ID: "c1", Status: tt.from})

			err := c.ChangeStatus(tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, c.Status())
				assert.Empty(t, c.Events())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, c.Status())
			assert.False(t, c.UpdatedAt().IsZero())
			require.Len(t, c.Events(), 1)
			changed := c.Events()[0].(event.CampaignStatusChanged)
			assert.Equal(t, string(tt.from), changed.From)
			assert.Equal(t, string(tt.to), changed.To)
		})
	}
}

func TestCampaign_ChangeStatusSameIsNoop(t *testing.T) {
	c := ReconstructCampaign(CampaignSnapshot{ID: "c1", Status: CampaignPaused})

	require.NoError(t, c.ChangeStatus(CampaignPaused))
	assert.Empty(t, c.Events())
}

func TestParseCampaignStatus(t *testing.T) {
	s, err := ParseCampaignStatus("PAUSED")
	require.NoError(t, err)
	assert.Equal(t, CampaignPaused, s)

	_, err = ParseCampaignStatus("paused")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCampaign_RemainingBudgetNeverNegative(t *testing.T) {
	c := ReconstructCampaign(CampaignSnapshot{BudgetCap: 100, Spent: 150})
	assert.Equal(t, Money(0), c.RemainingBudget())
}
