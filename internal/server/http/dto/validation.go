package dto

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/polkiloo/couponhub/internal/domain/model"
)

var registerOnce sync.Once

// RegisterValidators installs custom binding tags on gin's validator engine.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("couponstatus", func(fl validator.FieldLevel) bool {
			return model.CouponStatus(fl.Field().String()).Valid()
		})
	})
}
