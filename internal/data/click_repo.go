package data

import (
	"context"
	"encoding/json"
	"time"

	"go-promoter/internal/domain"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/go-kratos/kratos/v2/log"
)

// Compile-time interface check
var _ domain.ClickRepository = (*clickRepo)(nil)

var clickColumns = []string{"id", "kind", "short_code", "agent_id", "campaign_id", "attribution", "payout", "metadata", "occurred_at"}

// clickRepo is the append-only click ledger.
type clickRepo struct {
	data *Data
	log  *log.Helper
}

// NewClickRepo creates a new click ledger repository.
func NewClickRepo(data *Data, logger log.Logger) domain.ClickRepository {
	return &clickRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *clickRepo) Append(ctx context.Context, c *domain.ClickEvent) error {
	metadata, err := json.Marshal(c.Metadata)
	if err != nil {
		return err
	}

	_, err = r.data.exec(ctx, r.data.builder().
		Insert(ClickEventsTable.Name).
		Columns(clickColumns...).
		Values(c.ID, string(c.Kind), c.ShortCode, c.AgentID, c.CampaignID, string(c.Attribution), c.Payout.Cents(), string(metadata), c.OccurredAt))
	return err
}

func (r *clickRepo) ListByShortCode(ctx context.Context, code string) ([]*domain.ClickEvent, error) {
	var clicks []*domain.ClickEvent
	err := r.data.query(ctx, r.data.builder().
		Select(clickColumns...).
		From(entsql.Table(ClickEventsTable.Name)).
		Where(entsql.EQ("short_code", code)).
		OrderBy(entsql.Asc("occurred_at"), entsql.Asc("id")),
		func(rows *entsql.Rows) error {
			var (
				c                 domain.ClickEvent
				kind, attribution string
				payout            int64
				metadata          []byte
				occurredAt        time.Time
			)
			if err := rows.Scan(&c.ID, &kind, &c.ShortCode, &c.AgentID, &c.CampaignID, &attribution, &payout, &metadata, &occurredAt); err != nil {
				return err
			}
			if len(metadata) > 0 {
				if err := json.Unmarshal(metadata, &c.Metadata); err != nil {
					return err
				}
			}
			c.Kind = domain.ClickKind(kind)
			c.Attribution = domain.Attribution(attribution)
			c.Payout = domain.Money(payout)
			c.OccurredAt = occurredAt
			clicks = append(clicks, &c)
			return nil
		})
	return clicks, err
}
