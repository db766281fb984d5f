package controller

import (
	"errors"
	"net/http"

	dto "github.com/DevRyuki/todo-with-cline/app/dto/http"
	"github.com/DevRyuki/todo-with-cline/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (c *AuthController) Register(ctx echo.Context) error {
	var req dto.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind register request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Register validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	logrus.WithField("email", req.Email).Info("Register request received")
	user, err := c.authService.Register(ctx.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			logrus.WithField("email", req.Email).Warn("Register failed: user already exists")
			return ctx.JSON(http.StatusConflict, dto.ErrorResponse{Error: "user with this email already exists"})
		}
		if errors.Is(err, service.ErrWeakPassword) {
			logrus.WithField("email", req.Email).Warn("Register failed: weak password")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Register failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	return ctx.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

func (c *AuthController) Login(ctx echo.Context) error {
	var req dto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind login request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Login validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	result, err := c.authService.Login(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logrus.WithField("email", req.Email).Warn("Login failed: invalid credentials")
			return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid credentials"})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Login failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("email", req.Email).Info("Login successful")
	return ctx.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken:  result.AccessToken,
		SessionToken: result.SessionToken,
		ExpiresIn:    result.ExpiresIn,
		User:         dto.NewUserResponse(result.User),
	})
}

func (c *AuthController) Logout(ctx echo.Context) error {
	var req dto.LogoutRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind logout request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Logout validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	userID, ok := ctx.Get("user_id").(string)
	if !ok {
		logrus.Warn("Logout failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	if err := c.authService.Logout(ctx.Request().Context(), userID, req.SessionToken); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Logout failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("user_id", userID).Info("Logout successful")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out successfully"})
}

func (c *AuthController) Me(ctx echo.Context) error {
	userID, ok := ctx.Get("user_id").(string)
	if !ok {
		logrus.Warn("Me failed: missing user_id in context")
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
	}

	user, err := c.authService.CurrentUser(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Me failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (c *AuthController) ForgotPassword(ctx echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind forgot password request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Forgot password validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	logrus.WithField("email", req.Email).Info("Password reset requested")
	token, err := c.authService.GeneratePasswordResetToken(ctx.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.WithField("email", req.Email).Warn("Forgot password failed: user not found")
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "user not found"})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Forgot password failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	if err := c.authService.SendPasswordResetEmail(ctx.Request().Context(), token, ""); err != nil {
		logrus.WithError(err).WithField("email", req.Email).Error("Failed to send password reset email")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("email", req.Email).Info("Password reset email sent")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "password reset email sent"})
}

func (c *AuthController) ResetPassword(ctx echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind reset password request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Reset password validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	logrus.Info("Reset password request received")
	if err := c.authService.ResetPassword(ctx.Request().Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			logrus.Warn("Reset password failed: invalid or expired token")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid or expired token"})
		}
		if errors.Is(err, service.ErrWeakPassword) {
			logrus.Warn("Reset password failed: weak password")
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		logrus.WithError(err).Error("Reset password failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.Info("Password reset successful")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "password reset successful"})
}
