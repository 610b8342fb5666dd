package data

import (
	"context"
	stdsql "database/sql"
	"time"

	"go-promoter/internal/domain"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/go-kratos/kratos/v2/log"
)

// Compile-time interface check
var _ domain.CampaignRepository = (*campaignRepo)(nil)

var campaignColumns = []string{
	"id", "tenant_id", "name", "description", "target_url", "status",
	"payout_per_view", "points_per_view", "budget_cap", "spent",
	"total_views", "total_unique_views", "created_at", "updated_at",
}

// campaignRow scans a campaign, possibly from the nullable side of a join.
type campaignRow struct {
	id, tenantID, name, description, targetURL, status stdsql.NullString
	payout, points, budget, spent, views, uniqueViews  stdsql.NullInt64
	createdAt, updatedAt                               stdsql.NullTime
}

func (r *campaignRow) dest() []any {
	return []any{
		&r.id, &r.tenantID, &r.name, &r.description, &r.targetURL, &r.status,
		&r.payout, &r.points, &r.budget, &r.spent,
		&r.views, &r.uniqueViews, &r.createdAt, &r.updatedAt,
	}
}

// toDomain returns nil when the row came from an unmatched join.
func (r *campaignRow) toDomain() *domain.Campaign {
	if !r.id.Valid {
		return nil
	}
	// An unparsable destination reconstructs as empty and resolves to not found.
	target, _ := domain.NewTargetURL(r.targetURL.String)
	return domain.ReconstructCampaign(domain.CampaignSnapshot{
		ID:               r.id.String,
		TenantID:         r.tenantID.String,
		Name:             r.name.String,
		Description:      r.description.String,
		TargetURL:        target,
		Status:           domain.CampaignStatus(r.status.String),
		PayoutPerView:    domain.Money(r.payout.Int64),
		PointsPerView:    r.points.Int64,
		BudgetCap:        domain.Money(r.budget.Int64),
		Spent:            domain.Money(r.spent.Int64),
		TotalViews:       r.views.Int64,
		TotalUniqueViews: r.uniqueViews.Int64,
		CreatedAt:        r.createdAt.Time,
		UpdatedAt:        r.updatedAt.Time,
	})
}

// campaignRepo implements domain.CampaignRepository.
type campaignRepo struct {
	data *Data
	log  *log.Helper
}

// NewCampaignRepo creates a new campaign repository.
func NewCampaignRepo(data *Data, logger log.Logger) domain.CampaignRepository {
	return &campaignRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// Save inserts a new campaign.
func (r *campaignRepo) Save(ctx context.Context, c *domain.Campaign) error {
	s := c.Snapshot()
	_, err := r.data.exec(ctx, r.data.builder().
		Insert(CampaignsTable.Name).
		Columns(campaignColumns...).
		Values(
			s.ID, s.TenantID, s.Name, s.Description, s.TargetURL.String(), string(s.Status),
			s.PayoutPerView.Cents(), s.PointsPerView, s.BudgetCap.Cents(), s.Spent.Cents(),
			s.TotalViews, s.TotalUniqueViews, s.CreatedAt, s.UpdatedAt,
		))
	return err
}

// UpdateStatus writes the campaign status.
func (r *campaignRepo) UpdateStatus(ctx context.Context, c *domain.Campaign) error {
	n, err := r.data.exec(ctx, r.data.builder().
		Update(CampaignsTable.Name).
		Set("status", string(c.Status())).
		Set("updated_at", c.UpdatedAt()).
		Where(entsql.EQ("id", c.ID())))
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}

// FindByID returns the campaign or ErrCampaignNotFound.
func (r *campaignRepo) FindByID(ctx context.Context, id string) (*domain.Campaign, error) {
	var found *domain.Campaign
	err := r.data.query(ctx, r.data.builder().
		Select(campaignColumns...).
		From(entsql.Table(CampaignsTable.Name)).
		Where(entsql.EQ("id", id)),
		func(rows *entsql.Rows) error {
			var row campaignRow
			if err := rows.Scan(row.dest()...); err != nil {
				return err
			}
			found = row.toDomain()
			return nil
		})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.ErrCampaignNotFound
	}
	return found, nil
}

// ListByTenant returns the tenant's campaigns, newest first.
func (r *campaignRepo) ListByTenant(ctx context.Context, tenantID string, status domain.CampaignStatus) ([]*domain.Campaign, error) {
	pred := entsql.EQ("tenant_id", tenantID)
	if status != "" {
		pred = entsql.And(pred, entsql.EQ("status", string(status)))
	}

	var campaigns []*domain.Campaign
	err := r.data.query(ctx, r.data.builder().
		Select(campaignColumns...).
		From(entsql.Table(CampaignsTable.Name)).
		Where(pred).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id")),
		func(rows *entsql.Rows) error {
			var row campaignRow
			if err := rows.Scan(row.dest()...); err != nil {
				return err
			}
			campaigns = append(campaigns, row.toDomain())
			return nil
		})
	return campaigns, err
}

// IncrementViews atomically adds one view and, for unique clicks, one unique view.
func (r *campaignRepo) IncrementViews(ctx context.Context, id string, unique bool) error {
	update := r.data.builder().
		Update(CampaignsTable.Name).
		Add("total_views", 1).
		Where(entsql.EQ("id", id))
	if unique {
		update.Add("total_unique_views", 1)
	}

	n, err := r.data.exec(ctx, update)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}

// ReserveBudget moves payout_per_view into spent if the campaign is ACTIVE and
// the cap allows it. The guard is re-evaluated by the store on the locked row,
// so concurrent reservations can never overspend.
func (r *campaignRepo) ReserveBudget(ctx context.Context, id string) (*domain.BudgetReservation, error) {
	if TxFromContext(ctx) == nil {
		return nil, domain.ErrNoTransaction
	}

	withinCap := entsql.P(func(b *entsql.Builder) {
		b.Ident("spent").WriteOp(entsql.OpAdd).Ident("payout_per_view").
			WriteOp(entsql.OpLTE).Ident("budget_cap")
	})
	update := r.data.builder().
		Update(CampaignsTable.Name).
		Set("spent", entsql.ExprFunc(func(b *entsql.Builder) {
			b.Ident("spent").WriteOp(entsql.OpAdd).Ident("payout_per_view")
		})).
		Set("updated_at", time.Now().UTC()).
		Where(entsql.And(
			entsql.EQ("id", id),
			entsql.EQ("status", string(domain.CampaignActive)),
			withinCap,
		)).
		Returning("payout_per_view", "points_per_view", "spent")

	var reservation *domain.BudgetReservation
	err := r.data.query(ctx, update, func(rows *entsql.Rows) error {
		var payout, points, spent int64
		if err := rows.Scan(&payout, &points, &spent); err != nil {
			return err
		}
		reservation = &domain.BudgetReservation{
			Payout: domain.Money(payout),
			Points: points,
			Spent:  domain.Money(spent),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// Status reads the current status.
func (r *campaignRepo) Status(ctx context.Context, id string) (domain.CampaignStatus, error) {
	var status string
	found := false
	err := r.data.query(ctx, r.data.builder().
		Select("status").
		From(entsql.Table(CampaignsTable.Name)).
		Where(entsql.EQ("id", id)),
		func(rows *entsql.Rows) error {
			found = true
			return rows.Scan(&status)
		})
	if err != nil {
		return "", err
	}
	if !found {
		return "", domain.ErrCampaignNotFound
	}
	return domain.CampaignStatus(status), nil
}
