package handlers

import (
	stderrors "errors"
	"net/http"
	"strings"

	"charity-transparency/internal/dto"
	"charity-transparency/internal/errors"
	"charity-transparency/internal/repositories"
	"charity-transparency/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
}

func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles admin authentication
// @Summary Admin login
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001"
// @Failure 401 {object} errors.ErrorResponse "AUTH_001"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	tokens, err := h.authService.Login(&req, getClientIP(c), c.Request().UserAgent())
	if err != nil {
		if stderrors.Is(err, services.ErrInvalidCredentials) {
			return SendError(c, errors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

// Logout revokes the access token used for this request
// @Security BearerAuth
// @Success 204
// @Router /admin/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if len(token) > len("Bearer ") && strings.EqualFold(token[:len("Bearer ")], "Bearer ") {
		token = strings.TrimSpace(token[len("Bearer "):])
	}
	if token == "" {
		return SendError(c, errors.AuthMissingToken)
	}

	if err := h.authService.Logout(c.Request().Context(), token, getClientIP(c), c.Request().UserAgent()); err != nil {
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Me returns the profile of the signed in admin
// @Security BearerAuth
// @Router /admin/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		if stderrors.Is(err, repositories.ErrAdminUserNotFound) {
			return SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails("User no longer exists"))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.AdminProfileResponse{
			ID:          user.ID,
			Email:       user.Email,
			Name:        user.Name,
			Role:        user.Role,
			LastLoginAt: user.LastLoginAt,
		},
	})
}
