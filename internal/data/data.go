package data

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"time"

	"go-promoter/internal/conf"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewDriver,
	NewUnitOfWork,
	NewLinkRepo,
	NewCampaignRepo,
	NewAgentRepo,
	NewClickRepo,
	NewLinkCache,
	NewDedupStore,
	NewClickCounter,
)

const defaultSQLiteSource = "file:promoter?mode=memory&cache=shared&_fk=1"

// Data holds the SQL driver and the optional redis client.
type Data struct {
	db  *entsql.Driver
	rdb *redis.Client
}

// NewData opens the store, creates the schema and connects to redis.
// Redis is optional: when it is not configured or unreachable the data layer
// falls back to no-op cache and in-process dedup.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(log.With(logger, "module", "data"))
	ctx := context.Background()

	driverName, source := dialect.SQLite, defaultSQLiteSource
	if c != nil && c.Database != nil {
		if c.Database.Driver != "" {
			driverName = c.Database.Driver
		}
		if c.Database.Source != "" {
			source = c.Database.Source
		}
	}

	drv, err := entsql.Open(driverName, source)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	if err := drv.DB().PingContext(ctx); err != nil {
		_ = drv.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", driverName, err)
	}
	if err := Migrate(ctx, drv); err != nil {
		_ = drv.Close()
		return nil, nil, fmt.Errorf("failed creating schema resources: %w", err)
	}
	if drv.Dialect() == dialect.SQLite {
		// SQLite allows a single writer; every statement goes through one connection.
		drv.DB().SetMaxOpenConns(1)
	}

	d := &Data{db: drv}

	if c != nil && c.Redis != nil && c.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         c.Redis.Addr,
			Password:     c.Redis.Password,
			DB:           c.Redis.Db,
			ReadTimeout:  c.Redis.ReadTimeout.AsDuration(),
			WriteTimeout: c.Redis.WriteTimeout.AsDuration(),
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			helper.Warnf("redis %s unavailable, running without shared cache: %v", c.Redis.Addr, err)
			_ = rdb.Close()
		} else {
			d.rdb = rdb
		}
	}

	cleanup := func() {
		helper.Info("message", "closing the data resources")
		if d.rdb != nil {
			if err := d.rdb.Close(); err != nil {
				helper.Error(err)
			}
		}
		if err := d.db.Close(); err != nil {
			helper.Error(err)
		}
	}

	return d, cleanup, nil
}

// NewDriver exposes the SQL driver to the event bus providers.
func NewDriver(d *Data) *entsql.Driver {
	return d.db
}

// Redis returns the redis client, or nil when redis is disabled.
func (d *Data) Redis() *redis.Client {
	return d.rdb
}

// conn returns the transaction in ctx if there is one, otherwise the driver.
func (d *Data) conn(ctx context.Context) dialect.ExecQuerier {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return d.db
}

func (d *Data) builder() *entsql.DialectBuilder {
	return entsql.Dialect(d.db.Dialect())
}

// exec runs a statement and returns the number of affected rows.
func (d *Data) exec(ctx context.Context, q entsql.Querier) (int64, error) {
	query, args := q.Query()
	var res stdsql.Result
	if err := d.conn(ctx).Exec(ctx, query, args, &res); err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// query runs a statement and calls scan for every row.
func (d *Data) query(ctx context.Context, q entsql.Querier, scan func(rows *entsql.Rows) error) error {
	query, args := q.Query()
	var rows entsql.Rows
	if err := d.conn(ctx).Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
