package data

import (
	"context"
	"time"

	"go-promoter/internal/domain"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/go-kratos/kratos/v2/log"
)

// Compile-time interface check
var _ domain.AgentRepository = (*agentRepo)(nil)

var agentColumns = []string{"id", "tenant_id", "name", "phone", "points", "balance", "created_at"}

type agentRepo struct {
	data *Data
	log  *log.Helper
}

// NewAgentRepo creates a new agent repository.
func NewAgentRepo(data *Data, logger log.Logger) domain.AgentRepository {
	return &agentRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *agentRepo) Save(ctx context.Context, a *domain.Agent) error {
	_, err := r.data.exec(ctx, r.data.builder().
		Insert(AgentsTable.Name).
		Columns(agentColumns...).
		Values(a.ID, a.TenantID, a.Name, a.Phone, a.Points, a.Balance.Cents(), a.CreatedAt))
	return err
}

func (r *agentRepo) FindByID(ctx context.Context, id string) (*domain.Agent, error) {
	agents, err := r.list(ctx, r.data.builder().
		Select(agentColumns...).
		From(entsql.Table(AgentsTable.Name)).
		Where(entsql.EQ("id", id)))
	if err != nil {
		return nil, err
	}
	if len(agents) == 0 {
		return nil, domain.ErrAgentNotFound
	}
	return agents[0], nil
}

// Credit increases balance and points in one statement.
func (r *agentRepo) Credit(ctx context.Context, id string, amount domain.Money, points int64) error {
	n, err := r.data.exec(ctx, r.data.builder().
		Update(AgentsTable.Name).
		Add("balance", amount.Cents()).
		Add("points", points).
		Where(entsql.EQ("id", id)))
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAgentNotFound
	}
	return nil
}

func (r *agentRepo) TopByPoints(ctx context.Context, tenantID string, limit int) ([]*domain.Agent, error) {
	return r.list(ctx, r.data.builder().
		Select(agentColumns...).
		From(entsql.Table(AgentsTable.Name)).
		Where(entsql.EQ("tenant_id", tenantID)).
		OrderBy(entsql.Desc("points"), entsql.Asc("created_at")).
		Limit(limit))
}

func (r *agentRepo) list(ctx context.Context, q entsql.Querier) ([]*domain.Agent, error) {
	var agents []*domain.Agent
	err := r.data.query(ctx, q, func(rows *entsql.Rows) error {
		var (
			a         domain.Agent
			balance   int64
			createdAt time.Time
		)
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Name, &a.Phone, &a.Points, &balance, &createdAt); err != nil {
			return err
		}
		a.Balance = domain.Money(balance)
		a.CreatedAt = createdAt
		agents = append(agents, &a)
		return nil
	})
	return agents, err
}
