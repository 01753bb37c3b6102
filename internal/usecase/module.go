package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/couponhub/internal/config"
	"github.com/polkiloo/couponhub/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	newCouponUseCase,
)

type couponParams struct {
	fx.In

	Users   repository.UserRepository
	Coupons repository.CouponRepository
	Config  *config.Config
}

func newCouponUseCase(p couponParams) *CouponUseCase {
	return NewCouponUseCase(p.Users, p.Coupons, p.Config.RedeemableCouponStatus)
}
