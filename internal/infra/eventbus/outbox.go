package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"go-promoter/internal/domain/event"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
	"github.com/ThreeDotsLabs/watermill/message"
)

const outboxTableName = "outbox_messages"

// OutboxTable is the outbox_messages table, created together with the domain tables.
var OutboxTable = &schema.Table{
	Name: outboxTableName,
	Columns: []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "uuid", Type: field.TypeString, Unique: true},
		{Name: "payload", Type: field.TypeBytes},
		{Name: "metadata", Type: field.TypeJSON, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
	},
}

func init() {
	OutboxTable.PrimaryKey = []*schema.Column{OutboxTable.Columns[0]}
}

// OutboxPublisher publishes events to the outbox table within a transaction.
type OutboxPublisher struct {
	db *entsql.Driver
}

// NewOutboxPublisher creates a new outbox publisher.
func NewOutboxPublisher(db *entsql.Driver) *OutboxPublisher {
	return &OutboxPublisher{db: db}
}

// PublishInTx stores events in the outbox table using the provided transaction.
func (p *OutboxPublisher) PublishInTx(ctx context.Context, tx dialect.ExecQuerier, events []event.Event) error {
	for _, e := range events {
		msg, err := EventToMessage(e)
		if err != nil {
			return err
		}

		if err := p.storeMessage(ctx, tx, msg); err != nil {
			return err
		}
	}
	return nil
}

// storeMessage stores a Watermill message in the outbox table.
func (p *OutboxPublisher) storeMessage(ctx context.Context, tx dialect.ExecQuerier, msg *message.Message) error {
	metadata, err := json.Marshal(msg.Metadata)
	if err != nil {
		return err
	}

	query, args := entsql.Dialect(p.db.Dialect()).
		Insert(outboxTableName).
		Columns("uuid", "payload", "metadata", "created_at").
		Values(msg.UUID, msg.Payload, string(metadata), time.Now().UTC()).
		Query()
	return tx.Exec(ctx, query, args, nil)
}
