package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"devconnector/internal/auth"
	"devconnector/internal/service"
)

// AuthHandler handles login and current-user endpoints.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Provide valid email"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

// TokenResponse wraps a freshly issued token.
type TokenResponse struct {
	Token string `json:"token"`
}

// Me godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Security TokenAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.userService.GetCurrentUser(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}
