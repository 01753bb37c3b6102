package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/couponhub/internal/domain/model"
	"github.com/polkiloo/couponhub/internal/server/http/dto"
)

// CouponHandler serves coupon management and listing endpoints.
type CouponHandler struct {
	facade CouponFacade
	logger *slog.Logger
}

// NewCouponHandler constructs CouponHandler and installs the custom binding tags it relies on.
func NewCouponHandler(facade CouponFacade, logger *slog.Logger) *CouponHandler {
	dto.RegisterValidators()
	return &CouponHandler{facade: facade, logger: logger}
}

// Create handles POST /api/coupons.
func (h *CouponHandler) Create(c *gin.Context) {
	var req dto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}

	coupon, err := h.facade.CreateCoupon(c.Request.Context(), CurrentUserID(c), model.CouponDraft{
		Name:           req.Name,
		Description:    req.Description,
		SocialEvent:    req.SocialEvent,
		TokensRequired: req.TokensRequired,
		ExpirationDate: req.ExpirationDate.Ptr(),
	})
	if err != nil {
		respondError(c, h.logger, "create coupon", err, msgCouponNotFound)
		return
	}
	c.JSON(http.StatusCreated, toCouponResponse(*coupon))
}

// StoreCoupons handles GET /api/coupons/store.
func (h *CouponHandler) StoreCoupons(c *gin.Context) {
	coupons, err := h.facade.StoreCoupons(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, "list store coupons", err, msgCouponNotFound)
		return
	}
	c.JSON(http.StatusOK, toCouponResponses(coupons))
}

// Update handles PUT /api/coupons/:id.
func (h *CouponHandler) Update(c *gin.Context) {
	var req dto.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid coupon fields")
		return
	}

	patch := model.CouponPatch{
		Name:           req.Name,
		Description:    req.Description,
		SocialEvent:    req.SocialEvent,
		TokensRequired: req.TokensRequired,
		ExpirationDate: req.ExpirationDate.Ptr(),
	}
	if req.Status != nil {
		status := model.CouponStatus(*req.Status)
		patch.Status = &status
	}

	coupon, err := h.facade.UpdateCoupon(c.Request.Context(), CurrentUserID(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, "update coupon", err, msgCouponNotFound)
		return
	}
	c.JSON(http.StatusOK, toCouponResponse(*coupon))
}

// Delete handles DELETE /api/coupons/:id.
func (h *CouponHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteCoupon(c.Request.Context(), CurrentUserID(c), c.Param("id")); err != nil {
		respondError(c, h.logger, "delete coupon", err, msgCouponNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "coupon deleted"})
}

// Redeemable handles GET /api/coupons/available.
func (h *CouponHandler) Redeemable(c *gin.Context) {
	coupons, err := h.facade.RedeemableCoupons(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list redeemable coupons", err, msgCouponNotFound)
		return
	}
	c.JSON(http.StatusOK, toCouponResponses(coupons))
}
