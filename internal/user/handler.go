package user

import (
	"errors"
	"net/http"

	"disciplix/internal/api"
	"disciplix/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service      Service
	secureCookie bool
}

func NewHandler(service Service, secureCookie bool) *Handler {
	return &Handler{
		service:      service,
		secureCookie: secureCookie,
	}
}

// Register godoc
// @Summary      Register new user
// @Description  Creates an account and sends a verification email.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Registration data"
// @Success      201      {object}  api.Envelope
// @Failure      400      {object}  api.Envelope
// @Failure      409      {object}  api.Envelope
// @Failure      500      {object}  api.Envelope
// @Router       /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.FailValidation(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			api.Fail(c, http.StatusConflict, "User with this email already exists")
			return
		}
		api.Error(c, "Failed to create user")
		return
	}

	api.SuccessMessage(c, http.StatusCreated,
		"Registration successful. Please check your email for verification.",
		gin.H{"user": user})
}

// Login godoc
// @Summary      Login
// @Description  Authenticates by email and password; sets the refresh cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  api.Envelope
// @Failure      400      {object}  api.Envelope
// @Failure      401      {object}  api.Envelope
// @Router       /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.FailValidation(c, err)
		return
	}

	user, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			api.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, ErrNotVerified):
			api.Fail(c, http.StatusUnauthorized, "Please verify your email address first")
		default:
			api.Error(c, "Failed to log in")
		}
		return
	}

	auth.SetRefreshCookie(c, refreshToken, h.secureCookie)

	api.Success(c, http.StatusOK, LoginResponse{
		User:        *user,
		AccessToken: accessToken,
		ExpiresIn:   int(auth.AccessTokenTTL.Seconds()),
	})
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  api.Envelope
// @Router       /api/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	auth.ClearRefreshCookie(c, h.secureCookie)
	api.SuccessMessage(c, http.StatusOK, "Logged out successfully", nil)
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Description  Exchanges the refresh cookie for a new access token.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  api.Envelope
// @Failure      401  {object}  api.Envelope
// @Router       /api/auth/refresh [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie(auth.RefreshCookieName)
	if err != nil || refreshToken == "" {
		api.Fail(c, http.StatusUnauthorized, "Refresh token is required")
		return
	}

	accessToken, _, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		api.Fail(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	api.Success(c, http.StatusOK, gin.H{
		"accessToken": accessToken,
		"expiresIn":   int(auth.AccessTokenTTL.Seconds()),
	})
}

// GetMe godoc
// @Summary      Current user
// @Tags         user
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.Envelope
// @Failure      401  {object}  api.Envelope
// @Failure      404  {object}  api.Envelope
// @Router       /api/auth/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		api.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	api.Success(c, http.StatusOK, gin.H{"user": user})
}

// VerifyEmail godoc
// @Summary      Verify email address
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      VerifyEmailRequest  true  "Verification token"
// @Success      200      {object}  api.Envelope
// @Failure      400      {object}  api.Envelope
// @Router       /api/auth/verify-email [post]
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.FailValidation(c, err)
		return
	}

	user, err := h.service.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid or expired verification token")
		return
	}

	api.SuccessMessage(c, http.StatusOK, "Email verified successfully", gin.H{"user": user})
}

// ForgotPassword godoc
// @Summary      Request password reset
// @Description  Always responds 200 to avoid account enumeration.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      ForgotPasswordRequest  true  "Account email"
// @Success      200      {object}  api.Envelope
// @Failure      400      {object}  api.Envelope
// @Router       /api/auth/forgot-password [post]
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.FailValidation(c, err)
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		api.Error(c, "Failed to process request")
		return
	}

	api.SuccessMessage(c, http.StatusOK, "If the email exists, a reset link has been sent.", nil)
}

// ResetPassword godoc
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      ResetPasswordRequest  true  "Reset token and new password"
// @Success      200      {object}  api.Envelope
// @Failure      400      {object}  api.Envelope
// @Router       /api/auth/reset-password [post]
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.FailValidation(c, err)
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		api.Fail(c, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	api.SuccessMessage(c, http.StatusOK, "Password reset successfully", nil)
}
