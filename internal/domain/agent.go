package domain

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a field agent earning rewards from tracking links.
// Points and Balance are only ever increased by reward attribution.
type Agent struct {
	ID        string
	TenantID  string
	Name      string
	Phone     string
	Points    int64
	Balance   Money
	CreatedAt time.Time
}

// NewAgent creates an agent with a fresh id and zero balances.
func NewAgent(tenantID, name, phone string) *Agent {
	return &Agent{
		ID:        uuid.Must(uuid.NewV7()).String(),
		TenantID:  tenantID,
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
}
