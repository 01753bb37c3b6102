package identity

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/couponhub/internal/config"
	"github.com/polkiloo/couponhub/internal/usecase"
)

// Module exposes the identity verifier implementation to fx graph.
var Module = fx.Provide(newVerifier)

type verifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newVerifier(p verifierParams) (usecase.IdentityVerifier, error) {
	if p.Config.GoogleClientID == "" {
		p.Logger.Warn("GOOGLE_CLIENT_ID is not set, id token audience is not checked")
	}
	return NewGoogleVerifier(p.Config.GoogleTokenInfoURL, p.Config.GoogleClientID, p.Logger)
}
