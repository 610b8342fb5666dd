package data

import (
	"context"
	stdsql "database/sql"
	"strings"
	"time"

	"go-promoter/internal/domain"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/samber/lo"
)

// Compile-time interface check
var _ domain.LinkRepository = (*linkRepo)(nil)

var linkColumns = []string{"short_code", "campaign_id", "agent_id", "view_count", "unique_view_count", "created_at"}

// linkRepo implements domain.LinkRepository.
type linkRepo struct {
	data *Data
	log  *log.Helper
}

// NewLinkRepo creates a new tracking link repository.
func NewLinkRepo(data *Data, logger log.Logger) domain.LinkRepository {
	return &linkRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// Create stores a new link, translating unique violations into domain errors.
func (r *linkRepo) Create(ctx context.Context, link *domain.TrackingLink) error {
	_, err := r.data.exec(ctx, r.data.builder().
		Insert(TrackingLinksTable.Name).
		Columns(linkColumns...).
		Values(
			link.ShortCode().String(), link.CampaignID(), link.AgentID(),
			link.ViewCount(), link.UniqueViewCount(), link.CreatedAt(),
		))
	if err == nil {
		return nil
	}
	if detail, ok := uniqueViolation(err); ok {
		if strings.Contains(detail, "campaign_id") {
			return domain.ErrAlreadyJoined
		}
		return domain.ErrShortCodeExists
	}
	return err
}

// FindWithCampaign loads the link joined with its campaign and agent in one query.
func (r *linkRepo) FindWithCampaign(ctx context.Context, code domain.ShortCode) (*domain.LinkWithCampaign, error) {
	b := r.data.builder()
	l := b.Table(TrackingLinksTable.Name).As("l")
	c := b.Table(CampaignsTable.Name).As("c")
	a := b.Table(AgentsTable.Name).As("a")

	columns := append(l.Columns(linkColumns...), c.Columns(campaignColumns...)...)
	columns = append(columns, a.C("id"))
	selector := b.Select(columns...).
		From(l).
		LeftJoin(c).On(l.C("campaign_id"), c.C("id")).
		LeftJoin(a).On(l.C("agent_id"), a.C("id")).
		Where(entsql.EQ(l.C("short_code"), code.String()))

	var result *domain.LinkWithCampaign
	err := r.data.query(ctx, selector, func(rows *entsql.Rows) error {
		var (
			lr       linkRow
			cr       campaignRow
			agentRef stdsql.NullString
		)
		dest := append(lr.dest(), cr.dest()...)
		dest = append(dest, &agentRef)
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		result = &domain.LinkWithCampaign{
			Link:     lr.toDomain(),
			Campaign: cr.toDomain(),
			HasAgent: agentRef.Valid,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, domain.ErrLinkNotFound
	}
	return result, nil
}

func (r *linkRepo) FindByCampaignAndAgent(ctx context.Context, campaignID, agentID string) (*domain.TrackingLink, error) {
	links, err := r.list(ctx, r.data.builder().
		Select(linkColumns...).
		From(entsql.Table(TrackingLinksTable.Name)).
		Where(entsql.And(entsql.EQ("campaign_id", campaignID), entsql.EQ("agent_id", agentID))))
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, domain.ErrLinkNotFound
	}
	return links[0], nil
}

func (r *linkRepo) ListByAgent(ctx context.Context, agentID string) ([]*domain.TrackingLink, error) {
	return r.list(ctx, r.data.builder().
		Select(linkColumns...).
		From(entsql.Table(TrackingLinksTable.Name)).
		Where(entsql.EQ("agent_id", agentID)).
		OrderBy(entsql.Desc("created_at")))
}

// StatsByCampaign returns one row per issued link with the agent's name.
func (r *linkRepo) StatsByCampaign(ctx context.Context, campaignID string) ([]*domain.LinkStats, error) {
	b := r.data.builder()
	l := b.Table(TrackingLinksTable.Name).As("l")
	a := b.Table(AgentsTable.Name).As("a")

	selector := b.Select(
		l.C("short_code"), l.C("agent_id"), a.C("name"),
		l.C("view_count"), l.C("unique_view_count"),
	).
		From(l).
		LeftJoin(a).On(l.C("agent_id"), a.C("id")).
		Where(entsql.EQ(l.C("campaign_id"), campaignID)).
		OrderBy(entsql.Desc("unique_view_count"), entsql.Asc("short_code"))

	var stats []*domain.LinkStats
	err := r.data.query(ctx, selector, func(rows *entsql.Rows) error {
		var (
			s    domain.LinkStats
			name stdsql.NullString
		)
		if err := rows.Scan(&s.ShortCode, &s.AgentID, &name, &s.ViewCount, &s.UniqueViewCount); err != nil {
			return err
		}
		s.AgentName = name.String
		stats = append(stats, &s)
		return nil
	})
	if err != nil || len(stats) == 0 {
		return stats, err
	}

	earned, err := r.earnedByLink(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	for _, s := range stats {
		s.Earned = earned[s.ShortCode]
	}
	return stats, nil
}

// earnedByLink sums the applied payouts of a campaign's click ledger per short code.
func (r *linkRepo) earnedByLink(ctx context.Context, campaignID string) (map[string]domain.Money, error) {
	earned := make(map[string]domain.Money)
	err := r.data.query(ctx, r.data.builder().
		Select("short_code", entsql.Sum("payout")).
		From(entsql.Table(ClickEventsTable.Name)).
		Where(entsql.And(
			entsql.EQ("campaign_id", campaignID),
			entsql.EQ("attribution", string(domain.AttributionApplied)),
		)).
		GroupBy("short_code"),
		func(rows *entsql.Rows) error {
			var (
				code string
				sum  int64
			)
			if err := rows.Scan(&code, &sum); err != nil {
				return err
			}
			earned[code] = domain.Money(sum)
			return nil
		})
	return earned, err
}

func (r *linkRepo) Exists(ctx context.Context, code domain.ShortCode) (bool, error) {
	exists := false
	err := r.data.query(ctx, r.data.builder().
		Select("short_code").
		From(entsql.Table(TrackingLinksTable.Name)).
		Where(entsql.EQ("short_code", code.String())).
		Limit(1),
		func(*entsql.Rows) error {
			exists = true
			return nil
		})
	return exists, err
}

// IncrementViews atomically bumps the counters and returns their new values.
func (r *linkRepo) IncrementViews(ctx context.Context, code domain.ShortCode, unique bool) (int64, int64, error) {
	update := r.data.builder().
		Update(TrackingLinksTable.Name).
		Add("view_count", 1).
		Where(entsql.EQ("short_code", code.String())).
		Returning("view_count", "unique_view_count")
	if unique {
		update.Add("unique_view_count", 1)
	}

	var views, uniqueViews int64
	found := false
	err := r.data.query(ctx, update, func(rows *entsql.Rows) error {
		found = true
		return rows.Scan(&views, &uniqueViews)
	})
	if err != nil {
		return 0, 0, err
	}
	if !found {
		return 0, 0, domain.ErrLinkNotFound
	}
	return views, uniqueViews, nil
}

func (r *linkRepo) list(ctx context.Context, q entsql.Querier) ([]*domain.TrackingLink, error) {
	var rows []linkRow
	err := r.data.query(ctx, q, func(rs *entsql.Rows) error {
		var lr linkRow
		if err := rs.Scan(lr.dest()...); err != nil {
			return err
		}
		rows = append(rows, lr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(lr linkRow, _ int) *domain.TrackingLink {
		return lr.toDomain()
	}), nil
}

type linkRow struct {
	shortCode, campaignID, agentID string
	views, uniqueViews             int64
	createdAt                      time.Time
}

func (r *linkRow) dest() []any {
	return []any{&r.shortCode, &r.campaignID, &r.agentID, &r.views, &r.uniqueViews, &r.createdAt}
}

func (r *linkRow) toDomain() *domain.TrackingLink {
	code, _ := domain.NewShortCode(r.shortCode)
	return domain.ReconstructTrackingLink(code, r.campaignID, r.agentID, r.views, r.uniqueViews, r.createdAt)
}
