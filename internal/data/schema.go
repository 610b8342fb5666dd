package data

import (
	"context"

	"go-promoter/internal/infra/eventbus"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// AgentsColumns holds the columns for the "agents" table.
	AgentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "tenant_id", Type: field.TypeString, Size: 36},
		{Name: "name", Type: field.TypeString},
		{Name: "phone", Type: field.TypeString, Unique: true},
		{Name: "points", Type: field.TypeInt64, Default: 0},
		{Name: "balance", Type: field.TypeInt64, Default: 0},
		{Name: "created_at", Type: field.TypeTime},
	}
	// AgentsTable holds the schema information for the "agents" table.
	AgentsTable = &schema.Table{
		Name:       "agents",
		Columns:    AgentsColumns,
		PrimaryKey: []*schema.Column{AgentsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "agent_tenant_id_points", Columns: []*schema.Column{AgentsColumns[1], AgentsColumns[4]}},
		},
	}
	// CampaignsColumns holds the columns for the "campaigns" table.
	CampaignsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "tenant_id", Type: field.TypeString, Size: 36},
		{Name: "name", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "target_url", Type: field.TypeString, Size: 2048},
		{Name: "status", Type: field.TypeEnum, Enums: []string{"DRAFT", "ACTIVE", "PAUSED", "COMPLETED"}, Default: "ACTIVE"},
		{Name: "payout_per_view", Type: field.TypeInt64, Default: 0},
		{Name: "points_per_view", Type: field.TypeInt64, Default: 0},
		{Name: "budget_cap", Type: field.TypeInt64, Default: 0},
		{Name: "spent", Type: field.TypeInt64, Default: 0},
		{Name: "total_views", Type: field.TypeInt64, Default: 0},
		{Name: "total_unique_views", Type: field.TypeInt64, Default: 0},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// CampaignsTable holds the schema information for the "campaigns" table.
	CampaignsTable = &schema.Table{
		Name:       "campaigns",
		Columns:    CampaignsColumns,
		PrimaryKey: []*schema.Column{CampaignsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "campaign_tenant_id_status", Columns: []*schema.Column{CampaignsColumns[1], CampaignsColumns[5]}},
		},
	}
	// TrackingLinksColumns holds the columns for the "tracking_links" table.
	TrackingLinksColumns = []*schema.Column{
		{Name: "short_code", Type: field.TypeString, Size: 20},
		{Name: "view_count", Type: field.TypeInt64, Default: 0},
		{Name: "unique_view_count", Type: field.TypeInt64, Default: 0},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "agent_id", Type: field.TypeString, Size: 36},
		{Name: "campaign_id", Type: field.TypeString, Size: 36},
	}
	// TrackingLinksTable holds the schema information for the "tracking_links" table.
	TrackingLinksTable = &schema.Table{
		Name:       "tracking_links",
		Columns:    TrackingLinksColumns,
		PrimaryKey: []*schema.Column{TrackingLinksColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "tracking_links_agents_links",
				Columns:    []*schema.Column{TrackingLinksColumns[4]},
				RefColumns: []*schema.Column{AgentsColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "tracking_links_campaigns_links",
				Columns:    []*schema.Column{TrackingLinksColumns[5]},
				RefColumns: []*schema.Column{CampaignsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "trackinglink_campaign_id_agent_id", Unique: true, Columns: []*schema.Column{TrackingLinksColumns[5], TrackingLinksColumns[4]}},
			{Name: "trackinglink_agent_id", Columns: []*schema.Column{TrackingLinksColumns[4]}},
		},
	}
	// ClickEventsColumns holds the columns for the "click_events" table.
	ClickEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "kind", Type: field.TypeEnum, Enums: []string{"VIEW", "UNIQUE_VIEW"}},
		{Name: "agent_id", Type: field.TypeString, Size: 36},
		{Name: "campaign_id", Type: field.TypeString, Size: 36},
		{Name: "attribution", Type: field.TypeString, Size: 32, Default: ""},
		{Name: "metadata", Type: field.TypeJSON, Nullable: true},
		{Name: "occurred_at", Type: field.TypeTime},
		{Name: "short_code", Type: field.TypeString, Size: 20},
		{Name: "payout", Type: field.TypeInt64, Default: 0},
	}
	// ClickEventsTable holds the schema information for the "click_events" table.
	ClickEventsTable = &schema.Table{
		Name:       "click_events",
		Columns:    ClickEventsColumns,
		PrimaryKey: []*schema.Column{ClickEventsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "click_events_tracking_links_clicks",
				Columns:    []*schema.Column{ClickEventsColumns[7]},
				RefColumns: []*schema.Column{TrackingLinksColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{Name: "clickevent_short_code_occurred_at", Columns: []*schema.Column{ClickEventsColumns[7], ClickEventsColumns[6]}},
			{Name: "clickevent_campaign_id_attribution", Columns: []*schema.Column{ClickEventsColumns[3], ClickEventsColumns[4]}},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AgentsTable,
		CampaignsTable,
		TrackingLinksTable,
		ClickEventsTable,
		eventbus.OutboxTable,
	}
)

func init() {
	TrackingLinksTable.ForeignKeys[0].RefTable = AgentsTable
	TrackingLinksTable.ForeignKeys[1].RefTable = CampaignsTable
	ClickEventsTable.ForeignKeys[0].RefTable = TrackingLinksTable
}

// Migrate creates or updates all tables.
func Migrate(ctx context.Context, drv dialect.Driver) error {
	migrate, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return migrate.Create(ctx, Tables...)
}
