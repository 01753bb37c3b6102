package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/couponhub/internal/config"
	"github.com/polkiloo/couponhub/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewLoyaltyFacade,
		newHTTPServer,
		newExpirySweeper,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *LoyaltyFacade
	Config *config.Config
	Logger *slog.Logger
}

func newExpirySweeper(p workerParams) *worker.ExpirySweeper {
	return worker.NewExpirySweeper(
		p.Facade,
		p.Config.ExpirySweepInterval,
		p.Config.ExpiryBatchSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Ctx        context.Context
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Sweeper    *worker.ExpirySweeper
	Config     *config.Config
}

// runtime owns the long-running parts of the process.
type runtime struct {
	lifecycleParams
}

func registerLifecycle(p lifecycleParams) {
	rt := &runtime{lifecycleParams: p}
	p.Lifecycle.Append(fx.Hook{OnStart: rt.start, OnStop: rt.stop})
}

func (rt *runtime) start(context.Context) error {
	rt.Logger.Info("starting couponhub",
		slog.String("addr", rt.Server.Addr),
		slog.Duration("sweep_interval", rt.Config.ExpirySweepInterval),
		slog.String("redeemable_status", string(rt.Config.RedeemableCouponStatus)),
	)
	// The sweeper outlives the start hook, so it is bound to the process context.
	rt.Sweeper.Start(rt.Ctx)
	go rt.serve()
	return nil
}

func (rt *runtime) serve() {
	err := rt.Server.ListenAndServe()
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}
	rt.Logger.Error("http server terminated", slog.String("error", err.Error()))
	_ = rt.Shutdowner.Shutdown()
}

// stop halts the sweeper before draining HTTP connections.
func (rt *runtime) stop(ctx context.Context) error {
	rt.Sweeper.Stop()

	if _, ok := ctx.Deadline(); !ok && rt.Config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rt.Config.ShutdownTimeout)
		defer cancel()
	}

	if err := rt.Server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	rt.Logger.Info("couponhub stopped")
	return nil
}
