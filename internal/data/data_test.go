package data

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go-promoter/internal/conf"
	"go-promoter/internal/domain"
	"go-promoter/internal/infra/eventbus"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/require"
)

// newTestData opens a private in-memory SQLite store and a miniredis instance.
func newTestData(t *testing.T) (*Data, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())

	d, cleanup, err := NewData(&conf.Data{
		Database: &conf.Data_Database{
			Driver: "sqlite3",
			Source: fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name),
		},
		Redis: &conf.Data_Redis{Addr: mr.Addr()},
	}, log.DefaultLogger)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return d, mr
}

func newTestUoW(d *Data) domain.UnitOfWork {
	return NewUnitOfWork(d, eventbus.NewOutboxPublisher(d.db), log.DefaultLogger)
}

func seedCampaign(t *testing.T, repo domain.CampaignRepository, tenantID string, payout, budget domain.Money) *domain.Campaign {
	t.Helper()
	target, err := domain.NewTargetURL("https://example.com/landing")
	require.NoError(t, err)
	c, err := domain.NewCampaign(domain.CampaignParams{
		TenantID:      tenantID,
		Name:          "campaign",
		TargetURL:     target,
		PayoutPerView: payout,
		PointsPerView: 5,
		BudgetCap:     budget,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func seedAgent(t *testing.T, repo domain.AgentRepository, tenantID, phone string) *domain.Agent {
	t.Helper()
	a := domain.NewAgent(tenantID, "agent "+phone, phone)
	require.NoError(t, repo.Save(context.Background(), a))
	return a
}

func seedLink(t *testing.T, repo domain.LinkRepository, code, campaignID, agentID string) *domain.TrackingLink {
	t.Helper()
	sc, err := domain.NewShortCode(code)
	require.NoError(t, err)
	link := domain.NewTrackingLink(sc, campaignID, agentID)
	require.NoError(t, repo.Create(context.Background(), link))
	return link
}

func outboxCount(t *testing.T, d *Data) int {
	t.Helper()
	var n int
	err := d.query(context.Background(), d.builder().
		Select("COUNT(*)").
		From(d.builder().Table(eventbus.OutboxTable.Name)),
		func(rows *entsql.Rows) error { return rows.Scan(&n) })
	require.NoError(t, err)
	return n
}
