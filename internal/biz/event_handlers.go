package biz

import (
	"context"
	"encoding/json"

	"go-promoter/internal/domain"
	"go-promoter/internal/domain/event"
	"go-promoter/internal/infra/eventbus"

	"github.com/go-kratos/kratos/v2/log"
)

// Compile-time interface checks
var (
	_ eventbus.EventHandler = (*LoggingEventHandler)(nil)
	_ eventbus.EventHandler = (*ClickCounterHandler)(nil)
)

// EventNames lists the domain events published through the outbox.
var EventNames = []string{
	"campaign.created",
	"campaign.status_changed",
	"link.issued",
	"link.milestone_reached",
	"click.recorded",
	"reward.attributed",
	"reward.skipped",
}

// LoggingEventHandler logs domain events.
type LoggingEventHandler struct {
	logger    log.Logger
	eventName string
}

// NewLoggingEventHandler creates a new logging event handler.
func NewLoggingEventHandler(logger log.Logger, eventName string) *LoggingEventHandler {
	return &LoggingEventHandler{
		logger:    log.With(logger, "module", "biz/events"),
		eventName: eventName,
	}
}

func (h *LoggingEventHandler) HandlerName() string {
	return "logging_handler_" + h.eventName
}

func (h *LoggingEventHandler) EventName() string {
	return h.eventName
}

// Handle logs the event details, tagged with the owning campaign.
func (h *LoggingEventHandler) Handle(ctx context.Context, envelope *eventbus.EventEnvelope) error {
	l := log.NewHelper(log.With(h.logger, "campaign_id", envelope.CampaignID))
	switch envelope.EventName {
	case "campaign.created":
		var evt event.CampaignCreated
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return err
		}
		l.Infof("[Event] Campaign created: %s (%s) tenant=%s status=%s", evt.AggregateID(), evt.Name, evt.TenantID, evt.Status)
	case "campaign.status_changed":
		var evt event.CampaignStatusChanged
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return err
		}
		l.Infof("[Event] Campaign %s: %s -> %s", evt.AggregateID(), evt.From, evt.To)
	case "link.issued":
		var evt event.LinkIssued
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return err
		}
		l.Infof("[Event] Link issued: %s for agent %s", evt.ShortCode, evt.AgentID)
	case "link.milestone_reached":
		var evt event.LinkMilestoneReached
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return err
		}
		l.Infof("[Event] Milestone reached: %s hit %d unique views!", evt.ShortCode, evt.Milestone)
	case "click.recorded":
		var evt event.ClickRecorded
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return err
		}
		l.Debugf("[Event] Click recorded: %s (unique: %t)", evt.ShortCode, evt.Unique)
	case "reward.attributed":
		var evt event.RewardAttributed
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return err
		}
		l.Infof("[Event] Reward: agent %s earned %s and %d points on %s",
			evt.AgentID, domain.Money(evt.AmountCents), evt.Points, evt.ShortCode)
	case "reward.skipped":
		var evt event.RewardSkipped
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return err
		}
		l.Infof("[Event] Reward skipped for agent %s on %s: %s", evt.AgentID, evt.ShortCode, evt.Reason)
	default:
		l.Infof("[Event] %s: %s", envelope.EventName, envelope.AggregateID)
	}
	return nil
}

// ClickCounterHandler feeds the realtime click counters from ClickRecorded events.
type ClickCounterHandler struct {
	counter domain.ClickCounter
	log     *log.Helper
}

// NewClickCounterHandler creates a new click counter handler.
func NewClickCounterHandler(counter domain.ClickCounter, logger log.Logger) *ClickCounterHandler {
	return &ClickCounterHandler{
		counter: counter,
		log:     log.NewHelper(log.With(logger, "module", "biz/events")),
	}
}

func (h *ClickCounterHandler) HandlerName() string {
	return "click_counter_handler"
}

func (h *ClickCounterHandler) EventName() string {
	return "click.recorded"
}

// Handle increments the link and agent counters.
func (h *ClickCounterHandler) Handle(ctx context.Context, envelope *eventbus.EventEnvelope) error {
	var evt event.ClickRecorded
	if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
		h.log.Warnf("failed to unmarshal ClickRecorded event: %v", err)
		return nil
	}

	if err := h.counter.IncrLink(ctx, evt.ShortCode); err != nil {
		h.log.Warnf("Failed to increment realtime clicks of %s: %v", evt.ShortCode, err)
		return err
	}
	if err := h.counter.IncrAgent(ctx, evt.AgentID); err != nil {
		h.log.Warnf("Failed to increment realtime clicks of agent %s: %v", evt.AgentID, err)
		return err
	}
	return nil
}

// RegisterEventHandlers registers all event handlers with the router.
func RegisterEventHandlers(router *eventbus.Router, counter domain.ClickCounter, logger log.Logger) {
	for _, eventName := range EventNames {
		router.AddHandler(NewLoggingEventHandler(logger, eventName))
	}
	router.AddHandler(NewClickCounterHandler(counter, logger))
}
