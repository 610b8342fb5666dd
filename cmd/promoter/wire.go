//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"go-promoter/internal/biz"
	"go-promoter/internal/conf"
	"go-promoter/internal/data"
	"go-promoter/internal/enrichment"
	"go-promoter/internal/infra/eventbus"
	"go-promoter/internal/server"
	"go-promoter/internal/service"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireApp init kratos application.
func wireApp(*conf.Server, *conf.Data, *conf.Promoter, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(
		server.ProviderSet,
		data.ProviderSet,
		enrichment.ProviderSet,
		wire.Bind(new(biz.Enricher), new(*enrichment.Enricher)),
		biz.ProviderSet,
		service.ProviderSet,
		eventbus.ProviderSet,
		newApp,
	))
}
