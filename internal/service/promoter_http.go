package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/transport/http"
)

const (
	OperationAdminCreateCampaign       = "/promoter.v1.Admin/CreateCampaign"
	OperationAdminListCampaigns        = "/promoter.v1.Admin/ListCampaigns"
	OperationAdminUpdateCampaignStatus = "/promoter.v1.Admin/UpdateCampaignStatus"
	OperationAdminCampaignStats        = "/promoter.v1.Admin/CampaignStats"
	OperationAgentListCampaigns        = "/promoter.v1.Agent/ListCampaigns"
	OperationAgentJoinCampaign         = "/promoter.v1.Agent/JoinCampaign"
	OperationAgentLeaderboard          = "/promoter.v1.Agent/Leaderboard"
	OperationAgentDashboard            = "/promoter.v1.Agent/Dashboard"
)

// RegisterAdminHTTPServer mounts the admin API on s.
func RegisterAdminHTTPServer(s *http.Server, srv *AdminService) {
	r := s.Route("/api/v1/admin")
	r.POST("/campaigns", _Admin_CreateCampaign_HTTP_Handler(srv))
	r.GET("/campaigns", _Admin_ListCampaigns_HTTP_Handler(srv))
	r.PATCH("/campaigns/{id}/status", _Admin_UpdateCampaignStatus_HTTP_Handler(srv))
	r.GET("/campaigns/{id}/stats", _Admin_CampaignStats_HTTP_Handler(srv))
}

// RegisterAgentHTTPServer mounts the agent API on s.
func RegisterAgentHTTPServer(s *http.Server, srv *AgentService) {
	r := s.Route("/api/v1/agent")
	r.GET("/campaigns", _Agent_ListCampaigns_HTTP_Handler(srv))
	r.POST("/campaigns/{id}/join", _Agent_JoinCampaign_HTTP_Handler(srv))
	r.GET("/leaderboard", _Agent_Leaderboard_HTTP_Handler(srv))
	r.GET("/dashboard", _Agent_Dashboard_HTTP_Handler(srv))
}

func tenantID(ctx http.Context) (string, error) {
	id := ctx.Header().Get(HeaderTenantID)
	if id == "" {
		return "", missingCaller(HeaderTenantID)
	}
	return id, nil
}

func agentID(ctx http.Context) (string, error) {
	id := ctx.Header().Get(HeaderAgentID)
	if id == "" {
		return "", missingCaller(HeaderAgentID)
	}
	return id, nil
}

func _Admin_CreateCampaign_HTTP_Handler(srv *AdminService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in CreateCampaignRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		tenant, err := tenantID(ctx)
		if err != nil {
			return err
		}
		in.TenantID = tenant
		http.SetOperation(ctx, OperationAdminCreateCampaign)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.CreateCampaign(ctx, req.(*CreateCampaignRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _Admin_ListCampaigns_HTTP_Handler(srv *AdminService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		tenant, err := tenantID(ctx)
		if err != nil {
			return err
		}
		in := ListCampaignsRequest{TenantID: tenant, Status: ctx.Query().Get("status")}
		http.SetOperation(ctx, OperationAdminListCampaigns)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.ListCampaigns(ctx, req.(*ListCampaignsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _Admin_UpdateCampaignStatus_HTTP_Handler(srv *AdminService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in UpdateCampaignStatusRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		tenant, err := tenantID(ctx)
		if err != nil {
			return err
		}
		in.TenantID = tenant
		in.ID = ctx.Vars().Get("id")
		http.SetOperation(ctx, OperationAdminUpdateCampaignStatus)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.UpdateCampaignStatus(ctx, req.(*UpdateCampaignStatusRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _Admin_CampaignStats_HTTP_Handler(srv *AdminService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		tenant, err := tenantID(ctx)
		if err != nil {
			return err
		}
		in := CampaignStatsRequest{TenantID: tenant, ID: ctx.Vars().Get("id")}
		http.SetOperation(ctx, OperationAdminCampaignStats)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.CampaignStats(ctx, req.(*CampaignStatsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _Agent_ListCampaigns_HTTP_Handler(srv *AgentService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		agent, err := agentID(ctx)
		if err != nil {
			return err
		}
		in := AgentCampaignsRequest{AgentID: agent}
		http.SetOperation(ctx, OperationAgentListCampaigns)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.ListCampaigns(ctx, req.(*AgentCampaignsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _Agent_JoinCampaign_HTTP_Handler(srv *AgentService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		agent, err := agentID(ctx)
		if err != nil {
			return err
		}
		in := JoinCampaignRequest{AgentID: agent, CampaignID: ctx.Vars().Get("id")}
		http.SetOperation(ctx, OperationAgentJoinCampaign)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.JoinCampaign(ctx, req.(*JoinCampaignRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(201, out)
	}
}

func _Agent_Leaderboard_HTTP_Handler(srv *AgentService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		agent, err := agentID(ctx)
		if err != nil {
			return err
		}
		in := LeaderboardRequest{AgentID: agent}
		http.SetOperation(ctx, OperationAgentLeaderboard)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.Leaderboard(ctx, req.(*LeaderboardRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func _Agent_Dashboard_HTTP_Handler(srv *AgentService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		agent, err := agentID(ctx)
		if err != nil {
			return err
		}
		in := DashboardRequest{AgentID: agent}
		http.SetOperation(ctx, OperationAgentDashboard)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.Dashboard(ctx, req.(*DashboardRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}
