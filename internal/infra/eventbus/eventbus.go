package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"go-promoter/internal/domain/event"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// DomainEventsTopic carries every promoter event forwarded from the outbox.
const DomainEventsTopic = "promoter.events"

// Message metadata keys, readable without decoding the payload.
const (
	MetadataEventName   = "event_name"
	MetadataAggregateID = "aggregate_id"
	MetadataCampaignID  = "campaign_id"
)

// subscriberBuffer bounds the messages queued per subscriber before Publish blocks.
const subscriberBuffer = 256

// EventBus is the in-process watermill pub/sub the outbox forwarder feeds.
type EventBus struct {
	pubsub *gochannel.GoChannel
	logger watermill.LoggerAdapter
}

func NewEventBus(logger watermill.LoggerAdapter) *EventBus {
	return &EventBus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: subscriberBuffer,
			PreserveContext:     true,
		}, logger),
		logger: logger,
	}
}

func (b *EventBus) Publisher() message.Publisher {
	return b.pubsub
}

func (b *EventBus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Publish sends e straight to subscribers, bypassing the outbox.
func (b *EventBus) Publish(ctx context.Context, e event.Event) error {
	msg, err := EventToMessage(e)
	if err != nil {
		return err
	}
	msg.SetContext(ctx)
	return b.pubsub.Publish(DomainEventsTopic, msg)
}

func (b *EventBus) PublishAll(ctx context.Context, events []event.Event) error {
	for _, e := range events {
		if err := b.Publish(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (b *EventBus) Close() error {
	return b.pubsub.Close()
}

// EventEnvelope is the wire form of a promoter event.
type EventEnvelope struct {
	EventID     string          `json:"event_id"`
	EventName   string          `json:"event_name"`
	AggregateID string          `json:"aggregate_id"`
	CampaignID  string          `json:"campaign_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// EventToMessage wraps e in an envelope keyed by its event id.
func EventToMessage(e event.Event) (*message.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(EventEnvelope{
		EventID:     e.EventID(),
		EventName:   e.EventName(),
		AggregateID: e.AggregateID(),
		CampaignID:  e.Campaign(),
		OccurredAt:  e.OccurredAt(),
		Payload:     payload,
	})
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(e.EventID(), data)
	msg.Metadata.Set(MetadataEventName, e.EventName())
	msg.Metadata.Set(MetadataAggregateID, e.AggregateID())
	msg.Metadata.Set(MetadataCampaignID, e.Campaign())
	return msg, nil
}

func MessageToEnvelope(msg *message.Message) (*EventEnvelope, error) {
	var envelope EventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}
