package service

import "github.com/google/wire"

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewRedirectService, NewAdminService, NewAgentService)

// Caller identity headers set by the upstream gateway.
const (
	HeaderTenantID = "X-Tenant-ID"
	HeaderAgentID  = "X-Agent-ID"
)
