package middleware

import (
	"errors"

	apperrors "charity-transparency/internal/errors"
	"charity-transparency/internal/handlers"
	"charity-transparency/internal/models"
	"charity-transparency/internal/repositories"
	"charity-transparency/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequireAuth rejects requests without a valid admin access token and stores
// the token claims on the context. Tokens revoked by logout are refused.
func RequireAuth(tokenService services.TokenServiceInterface, blacklistRepo repositories.BlacklistedTokenRepositoryInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, apperrors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, apperrors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				if errors.Is(err, services.ErrExpiredToken) {
					return handlers.SendError(c, apperrors.AuthExpiredToken)
				}
				return handlers.SendError(c, apperrors.AuthInvalidTokenFormat)
			}

			revoked, err := blacklistRepo.IsBlacklisted(c.Request().Context(), claims.ID)
			if err != nil {
				return handlers.SendError(c, apperrors.SystemServiceUnavailable)
			}
			if revoked {
				return handlers.SendError(c, apperrors.AuthInvalidTokenFormat, apperrors.WithDetails("Token has been revoked"))
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return handlers.SendError(c, apperrors.AuthInvalidTokenFormat, apperrors.WithDetails("Invalid user ID in token"))
			}

			c.Set("user_id", userID)
			c.Set("user_email", claims.Email)
			c.Set("user_role", claims.Role)
			c.Set("token_jti", claims.ID)
			if claims.ExpiresAt != nil {
				c.Set("token_expires_at", claims.ExpiresAt.Time)
			}
			c.Set("is_admin", claims.Role == models.RoleAdmin)

			return next(c)
		}
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(requiredRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRole, ok := c.Get("user_role").(string)
			if !ok {
				return handlers.SendError(c, apperrors.AuthInvalidTokenFormat, apperrors.WithDetails("User role not found in token"))
			}

			for _, role := range requiredRoles {
				if userRole == role {
					return next(c)
				}
			}

			return handlers.SendError(c, apperrors.AuthInsufficientPermission)
		}
	}
}

// RequireAdmin requires the admin role
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(models.RoleAdmin)
}

// RequireStaff accepts admins and editors
func RequireStaff() echo.MiddlewareFunc {
	return RequireRole(models.RoleAdmin, models.RoleEditor)
}
