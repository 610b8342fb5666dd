package server

import (
	"encoding/json"
	nethttp "net/http"

	"go-promoter/internal/conf"
	"go-promoter/internal/service"
	"go-promoter/pkg/problemdetails"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"
)

// ProviderSet is server providers.
var ProviderSet = wire.NewSet(NewHTTPServer)

// NewHTTPServer new an HTTP server.
func NewHTTPServer(
	c *conf.Server,
	redirect *service.RedirectService,
	admin *service.AdminService,
	agent *service.AgentService,
	logger log.Logger,
) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
		http.ErrorEncoder(ProblemErrorEncoder),
	}
	if c != nil && c.Http != nil {
		if c.Http.Network != "" {
			opts = append(opts, http.Network(c.Http.Network))
		}
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout.AsDuration() > 0 {
			opts = append(opts, http.Timeout(c.Http.Timeout.AsDuration()))
		}
	}
	srv := http.NewServer(opts...)

	service.RegisterAdminHTTPServer(srv, admin)
	service.RegisterAgentHTTPServer(srv, agent)

	r := srv.Route("/")
	r.GET("/r/{short_code}", redirect.Redirect)
	r.GET("/healthz", func(ctx http.Context) error {
		return ctx.JSON(nethttp.StatusOK, map[string]string{"status": "ok"})
	})

	return srv
}

// ProblemErrorEncoder renders errors as problem details JSON.
func ProblemErrorEncoder(w nethttp.ResponseWriter, _ *nethttp.Request, err error) {
	se := errors.FromError(err)
	status := int(se.Code)
	if status < 400 || status > 599 {
		status = nethttp.StatusInternalServerError
	}
	detail := se.Message
	if status >= 500 && se.Reason == "" {
		detail = "internal server error"
	}

	body, _ := json.Marshal(problemdetails.FromReason(status, se.Reason, detail, se.Metadata))
	w.Header().Set("Content-Type", problemdetails.ContentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
