package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/couponhub/internal/domain/model"
	"github.com/polkiloo/couponhub/internal/server/http/dto"
)

// AuthHandler processes registration, login and profile completion.
type AuthHandler struct {
	facade AuthFacade
	logger *slog.Logger
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, logger: logger}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}

	user, err := h.facade.Register(c.Request.Context(), model.Registration{
		Name:      req.Name,
		Address:   req.Address,
		BirthDate: req.BirthDate,
		Email:     req.Email,
		Password:  req.Password,
		IsStore:   req.IsStore,
	})
	if err != nil {
		respondError(c, h.logger, "register", err, msgUserNotFound)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{Message: "user created", User: toUserResponse(user)})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}

	session, err := h.facade.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, "login", err, msgUserNotFound)
		return
	}
	h.respondSession(c, session)
}

// GoogleLogin handles POST /api/google-login.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "idToken is required")
		return
	}

	session, err := h.facade.ExternalLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, h.logger, "google login", err, msgUserNotFound)
		return
	}
	h.respondSession(c, session)
}

// CompleteProfile handles POST /api/complete-profile.
func (h *AuthHandler) CompleteProfile(c *gin.Context) {
	var req dto.CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}

	_, err := h.facade.CompleteProfile(c.Request.Context(), model.ProfileCompletion{
		UserID:    req.UserID,
		Password:  req.Password,
		IsStore:   req.IsStore,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		respondError(c, h.logger, "complete profile", err, msgUserNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "profile completed"})
}

func (h *AuthHandler) respondSession(c *gin.Context, session *model.Session) {
	c.JSON(http.StatusOK, dto.LoginResponse{
		Message: "login successful",
		Token:   session.Token,
		UserID:  session.User.ID,
		User:    toUserResponse(session.User),
	})
}
