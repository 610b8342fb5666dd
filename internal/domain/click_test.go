package domain

import (
	"testing"

	"go-promoter/internal/domain/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLink(t *testing.T) *TrackingLink {
	t.Helper()
	code, err := NewShortCode("abc123")
	require.NoError(t, err)
	return ReconstructTrackingLink(code, "camp-1", "agent-1", 0, 0, fixedTime)
}

func TestVisitorMetadata_Fingerprint(t *testing.T) {
	a := VisitorMetadata{IP: "10.0.0.1", UserAgent: "Mozilla/5.0"}
	b := VisitorMetadata{IP: "10.0.0.1", UserAgent: "Mozilla/5.0", Referer: "https://t.co"}
	c := VisitorMetadata{IP: "10.0.0.2", UserAgent: "Mozilla/5.0"}

	assert.Len(t, a.Fingerprint(), 64)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "referer is not part of the fingerprint")
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	// The separator keeps "ab"+"c" apart from "a"+"bc".
	x := VisitorMetadata{IP: "ab", UserAgent: "c"}
	y := VisitorMetadata{IP: "a", UserAgent: "bc"}
	assert.NotEqual(t, x.Fingerprint(), y.Fingerprint())
}

func TestNewClickEvent(t *testing.T) {
	click := NewClickEvent(testLink(t), true, VisitorMetadata{IP: "10.0.0.1"})

	assert.Equal(t, ClickUniqueView, click.Kind)
	assert.True(t, click.IsUnique())
	assert.Equal(t, "abc123", click.ShortCode)
	assert.Equal(t, "camp-1", click.CampaignID)
	assert.Equal(t, "agent-1", click.AgentID)
	assert.Equal(t, AttributionNone, click.Attribution)

	require.Len(t, click.Events(), 1)
	recorded := click.Events()[0].(event.ClickRecorded)
	assert.True(t, recorded.Unique)
}

func TestClickEvent_Attribute(t *testing.T) {
	t.Run("applied", func(t *testing.T) {
		click := NewClickEvent(testLink(t), true, VisitorMetadata{})
		click.Attribute(AttributionApplied, 300, 5, 600)

		assert.Equal(t, AttributionApplied, click.Attribution)
		assert.Equal(t, Money(300), click.Payout)
		require.Len(t, click.Events(), 2)
		reward := click.Events()[1].(event.RewardAttributed)
		assert.Equal(t, int64(300), reward.AmountCents)
		assert.Equal(t, int64(600), reward.CampaignSpent)
	})

	t.Run("skipped", func(t *testing.T) {
		click := NewClickEvent(testLink(t), true, VisitorMetadata{})
		click.Attribute(AttributionBudgetExhausted, 0, 0, 0)

		assert.Zero(t, click.Payout)
		require.Len(t, click.Events(), 2)
		skipped := click.Events()[1].(event.RewardSkipped)
		assert.Equal(t, "SKIPPED_BUDGET_EXHAUSTED", skipped.Reason)
	})

	t.Run("plain view raises nothing", func(t *testing.T) {
		click := NewClickEvent(testLink(t), false, VisitorMetadata{})
		click.Attribute(AttributionNone, 0, 0, 0)

		assert.Len(t, click.Events(), 1)
		click.ClearEvents()
		assert.Empty(t, click.Events())
	})
}

func TestClickEvent_ReachedMilestone(t *testing.T) {
	click := NewClickEvent(testLink(t), true, VisitorMetadata{})
	click.ReachedMilestone(8, 9)
	assert.Len(t, click.Events(), 1)

	click.ReachedMilestone(9, 10)
	require.Len(t, click.Events(), 2)
	assert.Equal(t, "link.milestone_reached", click.Events()[1].EventName())
}
