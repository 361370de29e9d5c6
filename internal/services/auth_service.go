package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"charity-transparency/internal/dto"
	"charity-transparency/internal/models"
	"charity-transparency/internal/repositories"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles admin authentication
type AuthService struct {
	userRepo        repositories.AdminUserRepositoryInterface
	blacklistRepo   repositories.BlacklistedTokenRepositoryInterface
	auditService    AuditServiceInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.AdminUserRepositoryInterface,
	blacklistRepo repositories.BlacklistedTokenRepositoryInterface,
	auditService AuditServiceInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:        userRepo,
		blacklistRepo:   blacklistRepo,
		auditService:    auditService,
		passwordService: passwordService,
		tokenService:    tokenService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Login checks the credentials and issues an access token. Unknown emails
// and wrong passwords return the same error.
func (s *AuthService) Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminUserNotFound) {
			s.recordLogin("login_failed", req.Email, ipAddress, userAgent, "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		s.recordLogin("login_failed", req.Email, ipAddress, userAgent, "invalid_password")
		return nil, ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(user.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to update last login",
			"error", err,
			"user_id", user.ID)
	}

	s.recordLogin("login_success", user.Email, ipAddress, userAgent, "")
	s.audit(context.Background(), models.AuditActionLogin, user.ID, ipAddress, userAgent)

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout revokes the access token until it would have expired. Tokens that
// no longer validate are already unusable and are ignored.
func (s *AuthService) Logout(ctx context.Context, accessToken, ipAddress, userAgent string) error {
	claims, err := s.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrInvalidToken)
	}

	expiresAt := time.Now().Add(time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := s.blacklistRepo.Create(ctx, &models.BlacklistedToken{
		JTI:         claims.ID,
		AdminUserID: userID,
		ExpiresAt:   expiresAt,
	}); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.metrics.IncrementCounter(MetricAuthenticationEvent, map[string]string{"event_type": "logout"})
	s.audit(ctx, models.AuditActionLogout, userID, ipAddress, userAgent)

	return nil
}

// PurgeRevokedTokens drops blacklist entries for tokens that have expired
func (s *AuthService) PurgeRevokedTokens(ctx context.Context) (int64, error) {
	return s.blacklistRepo.DeleteExpired(ctx, time.Now())
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*models.AdminUser, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) recordLogin(eventType, email, ipAddress, userAgent, reason string) {
	s.metrics.IncrementCounter(MetricAuthenticationEvent, map[string]string{"event_type": eventType})

	attrs := []any{
		"event_type", eventType,
		"email", email,
		"ip_address", ipAddress,
		"user_agent", userAgent,
	}
	if reason != "" {
		attrs = append(attrs, "reason", reason)
		s.logger.Warn("admin login failed", attrs...)
		return
	}
	s.logger.Info("admin login", attrs...)
}

func (s *AuthService) audit(ctx context.Context, action string, userID uuid.UUID, ipAddress, userAgent string) {
	err := s.auditService.Record(ctx, &models.AuditLog{
		AdminUserID: &userID,
		Action:      action,
		Resource:    models.AuditResourceAuth,
		ResourceID:  userID.String(),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
	})
	if err != nil {
		s.logger.Warn("failed to record audit log", "error", err, "action", action, "user_id", userID)
	}
}
