package config

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module exposes configuration loader for fx graphs.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(warnFallbackSecret),
)

func warnFallbackSecret(cfg *Config, log *slog.Logger) {
	if cfg.UsesFallbackSecret() {
		log.Warn("JWT_SECRET is not set, tokens are signed with the built-in fallback secret")
	}
}
