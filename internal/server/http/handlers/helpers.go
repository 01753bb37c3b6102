package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/couponhub/internal/domain/errors"
	"github.com/polkiloo/couponhub/internal/domain/model"
	"github.com/polkiloo/couponhub/internal/server/http/dto"
	"github.com/polkiloo/couponhub/internal/server/http/middleware"
)

const (
	msgInvalidBody      = "missing required fields"
	msgInternal         = "internal server error"
	dateLayout          = "2006-01-02"
	msgUserNotFound     = "user not found"
	msgCouponNotFound   = "coupon not found"
	msgStoreOnly        = "only stores can manage coupons"
	msgInvalidBirthDate = "invalid birth date, expected DD/MM/YYYY or YYYY-MM-DD"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// CurrentUser extracts the authenticated account from context.
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(middleware.UserContextKey)
	if !ok {
		return nil
	}
	user, _ := val.(*model.User)
	return user
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: message})
}

// respondError maps domain errors onto HTTP statuses. Unknown errors are
// logged under op and reported as 500.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error, notFound string) {
	status, message := http.StatusInternalServerError, ""
	switch {
	case errors.Is(err, domainErrors.ErrInvalidInput):
		status, message = http.StatusBadRequest, msgInvalidBody
	case errors.Is(err, domainErrors.ErrInvalidBirthDate):
		status, message = http.StatusBadRequest, msgInvalidBirthDate
	case errors.Is(err, domainErrors.ErrProfileCompleted):
		status, message = http.StatusBadRequest, "profile already completed"
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		status, message = http.StatusConflict, "user already exists"
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domainErrors.ErrExternalIdentity):
		status, message = http.StatusUnauthorized, "invalid identity token"
	case errors.Is(err, domainErrors.ErrForbidden):
		status, message = http.StatusForbidden, msgStoreOnly
	case errors.Is(err, domainErrors.ErrNotFound):
		status, message = http.StatusNotFound, notFound
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logger.ErrorContext(c.Request.Context(), "request failed", slog.String("op", op), slog.Any("error", err))
		c.JSON(status, dto.ErrorResponse{Error: msgInternal})
		return
	}
	c.JSON(status, dto.MessageResponse{Message: message})
}

func toUserResponse(u *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Address:    u.Address,
		Email:      u.Email,
		IsStore:    u.IsStore,
		ExternalID: u.ExternalID,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if u.BirthDate != nil {
		formatted := u.BirthDate.Format(dateLayout)
		resp.BirthDate = &formatted
	}
	return resp
}

func toCouponResponse(c model.Coupon) dto.CouponResponse {
	resp := dto.CouponResponse{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		SocialEvent:    c.SocialEvent,
		TokensRequired: c.TokensRequired,
		ExpirationDate: c.ExpirationDate,
		Status:         string(c.Status),
		StoreID:        c.StoreID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if c.Store != nil {
		resp.Store = &dto.StoreResponse{Name: c.Store.Name, Email: c.Store.Email}
	}
	return resp
}

func toCouponResponses(coupons []model.Coupon) []dto.CouponResponse {
	out := make([]dto.CouponResponse, 0, len(coupons))
	for _, c := range coupons {
		out = append(out, toCouponResponse(c))
	}
	return out
}
