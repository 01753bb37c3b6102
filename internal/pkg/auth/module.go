package auth

import (
	"github.com/polkiloo/couponhub/internal/config"
	"go.uber.org/fx"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
	fx.Provide(newTokenTTLs),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewJWTStrategy(p.Config.JWTSecret)
}

func newTokenTTLs(p strategyParams) TokenTTLs {
	return TokenTTLs{Direct: p.Config.TokenTTL, External: p.Config.ExternalTokenTTL}
}
