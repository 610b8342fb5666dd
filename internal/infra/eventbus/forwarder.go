package eventbus

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	defaultPollInterval = 100 * time.Millisecond
	defaultBatchSize    = 100
)

// outboxRow is a stored message waiting to be forwarded.
type outboxRow struct {
	id       int64
	uuid     string
	payload  []byte
	metadata map[string]string
}

// Forwarder reads messages from the outbox table and forwards them to the event bus.
type Forwarder struct {
	db           *entsql.Driver
	publisher    message.Publisher
	topic        string
	pollInterval time.Duration
	batchSize    int
	logger       watermill.LoggerAdapter

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// ForwarderOption configures a Forwarder.
type ForwarderOption func(*Forwarder)

// WithPollInterval sets how often the outbox is polled.
func WithPollInterval(d time.Duration) ForwarderOption {
	return func(f *Forwarder) {
		if d > 0 {
			f.pollInterval = d
		}
	}
}

// WithBatchSize sets the number of messages forwarded per poll.
func WithBatchSize(n int) ForwarderOption {
	return func(f *Forwarder) {
		if n > 0 {
			f.batchSize = n
		}
	}
}

// NewForwarder creates a new outbox forwarder.
func NewForwarder(
	db *entsql.Driver,
	publisher message.Publisher,
	logger watermill.LoggerAdapter,
	opts ...ForwarderOption,
) *Forwarder {
	f := &Forwarder{
		db:           db,
		publisher:    publisher,
		topic:        DomainEventsTopic,
		pollInterval: defaultPollInterval,
		batchSize:    defaultBatchSize,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start begins forwarding messages from the outbox.
func (f *Forwarder) Start(ctx context.Context) {
	f.ctx, f.cancel = context.WithCancel(ctx)
	f.wg.Add(1)
	go f.run()
	f.logger.Info("outbox forwarder started", nil)
}

// Stop stops the forwarder gracefully.
func (f *Forwarder) Stop() {
	if f.cancel != nil {
		f.cancel()
	}
	f.wg.Wait()
	f.logger.Info("outbox forwarder stopped", nil)
}

func (f *Forwarder) run() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-f.ctx.Done():
			return
		case <-ticker.C:
			f.forwardBatch(f.ctx)
		}
	}
}

// forwardBatch publishes one batch of pending messages and deletes the forwarded ones.
func (f *Forwarder) forwardBatch(ctx context.Context) int {
	messages, err := f.pending(ctx)
	if err != nil {
		f.logger.Error("failed to query outbox messages", err, nil)
		return 0
	}

	forwarded := 0
	for _, om := range messages {
		if err := f.forwardMessage(om); err != nil {
			f.logger.Error("failed to forward message", err, watermill.LogFields{
				"uuid": om.uuid,
			})
			continue
		}

		// Delete the message after successful forwarding
		if err := f.delete(ctx, om.id); err != nil {
			f.logger.Error("failed to delete outbox message", err, watermill.LogFields{
				"uuid": om.uuid,
			})
			continue
		}
		forwarded++
	}
	return forwarded
}

func (f *Forwarder) pending(ctx context.Context) ([]outboxRow, error) {
	query, args := entsql.Dialect(f.db.Dialect()).
		Select("id", "uuid", "payload", "metadata").
		From(entsql.Table(outboxTableName)).
		OrderBy(entsql.Asc("id")).
		Limit(f.batchSize).
		Query()

	var rows entsql.Rows
	if err := f.db.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []outboxRow
	for rows.Next() {
		var (
			om       outboxRow
			metadata []byte
		)
		if err := rows.Scan(&om.id, &om.uuid, &om.payload, &metadata); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &om.metadata); err != nil {
				return nil, err
			}
		}
		result = append(result, om)
	}
	return result, rows.Err()
}

func (f *Forwarder) delete(ctx context.Context, id int64) error {
	query, args := entsql.Dialect(f.db.Dialect()).
		Delete(outboxTableName).
		Where(entsql.EQ("id", id)).
		Query()
	return f.db.Exec(ctx, query, args, nil)
}

func (f *Forwarder) forwardMessage(om outboxRow) error {
	msg := message.NewMessage(om.uuid, om.payload)
	for k, v := range om.metadata {
		msg.Metadata.Set(k, v)
	}

	if err := f.publisher.Publish(f.topic, msg); err != nil {
		return err
	}

	f.logger.Debug("forwarded message", watermill.LogFields{
		"uuid":        om.uuid,
		"event_name":  om.metadata[MetadataEventName],
		"campaign_id": om.metadata[MetadataCampaignID],
	})

	return nil
}
