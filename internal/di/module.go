package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/couponhub/internal/adapter/identity"
	"github.com/polkiloo/couponhub/internal/app"
	"github.com/polkiloo/couponhub/internal/config"
	"github.com/polkiloo/couponhub/internal/logger"
	"github.com/polkiloo/couponhub/internal/pkg/auth"
	"github.com/polkiloo/couponhub/internal/server/http/handlers"
	"github.com/polkiloo/couponhub/internal/server/http/router"
	"github.com/polkiloo/couponhub/internal/storage/postgres"
	"github.com/polkiloo/couponhub/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		identity.Module,
		usecase.Module,
		fx.Provide(func(f *app.LoyaltyFacade) handlers.LoyaltyFacade { return f }),
		fx.Provide(func(s *postgres.Storage) handlers.HealthChecker { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
