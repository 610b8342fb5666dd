package eventbus

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// openTestDriver opens a private in-memory SQLite database holding the outbox table.
func openTestDriver(t *testing.T) *entsql.Driver {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	drv, err := entsql.Open(dialect.SQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name))
	require.NoError(t, err)

	migrate, err := schema.NewMigrate(drv)
	require.NoError(t, err)
	require.NoError(t, migrate.Create(context.Background(), OutboxTable))
	drv.DB().SetMaxOpenConns(1)

	t.Cleanup(func() { _ = drv.Close() })
	return drv
}

func countOutbox(t *testing.T, drv *entsql.Driver) int {
	t.Helper()
	var rows entsql.Rows
	require.NoError(t, drv.Query(context.Background(), "SELECT COUNT(*) FROM outbox_messages", []any{}, &rows))
	defer rows.Close()
	require.True(t, rows.Next())
	var n int
	require.NoError(t, rows.Scan(&n))
	return n
}
