package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(Setup),
	fx.Invoke(logRoutes),
)

// logRoutes reports the route table at debug level; release mode silences gin's own dump.
func logRoutes(engine *gin.Engine, logger *slog.Logger) {
	for _, r := range engine.Routes() {
		logger.Debug("route registered", slog.String("method", r.Method), slog.String("path", r.Path))
	}
}
