package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a fact raised by a promoter aggregate and delivered through the outbox.
type Event interface {
	EventID() string
	EventName() string
	OccurredAt() time.Time
	// AggregateID is the campaign id or short code that raised the event.
	AggregateID() string
	// Campaign returns the campaign the event belongs to. Handlers use it to
	// scope counters and logs without decoding the payload.
	Campaign() string
}

// Base holds the envelope fields shared by all promoter events.
type Base struct {
	ID         string    `json:"event_id"`
	At         time.Time `json:"occurred_at"`
	Aggregate  string    `json:"aggregate_id"`
	CampaignID string    `json:"campaign_id"`
}

// NewBase stamps a new event raised by aggregateID within campaignID.
func NewBase(aggregateID, campaignID string) Base {
	return Base{
		ID:         uuid.Must(uuid.NewV7()).String(),
		At:         time.Now().UTC(),
		Aggregate:  aggregateID,
		CampaignID: campaignID,
	}
}

func (e Base) EventID() string { return e.ID }

func (e Base) OccurredAt() time.Time { return e.At }

func (e Base) AggregateID() string { return e.Aggregate }

func (e Base) Campaign() string { return e.CampaignID }
