package main

import (
	"context"
	"flag"
	"os"

	"go-promoter/internal/biz"
	"go-promoter/internal/conf"
	"go-promoter/internal/domain"
	"go-promoter/internal/infra/eventbus"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/tracing"
	"github.com/go-kratos/kratos/v2/transport/http"

	_ "go.uber.org/automaxprocs"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the name of the compiled software.
	Name = "promoter"
	// Version is the version of the compiled software.
	Version string
	// flagconf is the config flag.
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "../../configs", "config path, eg: -conf config.yaml")
}

func newApp(
	logger log.Logger,
	hs *http.Server,
	eventBus *eventbus.EventBus,
	router *eventbus.Router,
	forwarder *eventbus.Forwarder,
	queue *biz.ClickQueue,
	counter domain.ClickCounter,
) *kratos.App {
	biz.RegisterEventHandlers(router, counter, logger)
	helper := log.NewHelper(logger)

	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
		kratos.BeforeStart(func(ctx context.Context) error {
			forwarder.Start(ctx)
			go func() {
				if err := router.Run(ctx); err != nil {
					helper.Errorf("event router error: %v", err)
				}
			}()
			queue.Start(ctx)
			return nil
		}),
		kratos.AfterStop(func(context.Context) error {
			// The HTTP server has drained, so no redirect can enqueue anymore.
			stopPipeline(queue, forwarder, router, eventBus, helper)
			return nil
		}),
	)
}

// stopPipeline drains queued clicks before tearing down the event plumbing.
// Events of clicks drained after the forwarder exits stay in the outbox and
// are forwarded on the next start.
func stopPipeline(queue *biz.ClickQueue, forwarder *eventbus.Forwarder, router *eventbus.Router, eventBus *eventbus.EventBus, helper *log.Helper) {
	queue.Stop()
	forwarder.Stop()
	if err := router.Close(); err != nil {
		helper.Errorf("failed to close router: %v", err)
	}
	if err := eventBus.Close(); err != nil {
		helper.Errorf("failed to close event bus: %v", err)
	}
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
		"trace.id", tracing.TraceID(),
		"span.id", tracing.SpanID(),
	)
	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	app, cleanup, err := wireApp(bc.Server, bc.Data, bc.Promoter.Defaults(), logger)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	// start and wait for stop signal
	if err := app.Run(); err != nil {
		panic(err)
	}
}
