package eventbus

import (
	"go-promoter/internal/conf"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is eventbus providers.
var ProviderSet = wire.NewSet(
	NewKratosLoggerAdapter,
	NewEventBus,
	NewRouter,
	ProvideOutboxPublisher,
	ProvideForwarder,
)

// ProvideOutboxPublisher creates an OutboxPublisher from the SQL driver.
func ProvideOutboxPublisher(db *entsql.Driver) *OutboxPublisher {
	return NewOutboxPublisher(db)
}

// ProvideForwarder creates a Forwarder tuned by the pipeline config.
func ProvideForwarder(db *entsql.Driver, eventBus *EventBus, c *conf.Promoter, logger log.Logger) *Forwarder {
	return NewForwarder(db, eventBus.Publisher(), NewKratosLoggerAdapter(logger),
		WithPollInterval(c.Outbox.Interval.AsDuration()),
		WithBatchSize(c.Outbox.BatchSize),
	)
}
