package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"charity-transparency/internal/config"
	apperrors "charity-transparency/internal/errors"
	"charity-transparency/internal/models"
	"charity-transparency/internal/repositories/repository_mocks"
	"charity-transparency/internal/services"
	"charity-transparency/internal/services/service_mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

type AuthMiddlewareSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	tokenService services.TokenServiceInterface
	blacklist    *repository_mocks.MockBlacklistedTokenRepositoryInterface
	e            *echo.Echo
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.tokenService = s.createTokenService(time.Hour)
	s.blacklist = repository_mocks.NewMockBlacklistedTokenRepositoryInterface(s.ctrl)
	s.e = echo.New()
}

func (s *AuthMiddlewareSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthMiddlewareSuite) createTokenService(ttl time.Duration) services.TokenServiceInterface {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	return services.NewTokenService(&config.JWTConfig{
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "charity-transparency-test",
		AccessTokenDuration: ttl,
	})
}

func (s *AuthMiddlewareSuite) issueToken(ts services.TokenServiceInterface, role string) (string, *models.AdminUser) {
	user := &models.AdminUser{
		ID:    uuid.New(),
		Email: "treasurer@charity.example.org",
		Name:  "Treasurer",
		Role:  role,
	}
	token, _, err := ts.GenerateAccessToken(user)
	s.Require().NoError(err)
	return token, user
}

func (s *AuthMiddlewareSuite) serve(mw echo.MiddlewareFunc, authHeader string, next echo.HandlerFunc) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/kpi", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	s.Require().NoError(mw(next)(c))
	return rec, c
}

func (s *AuthMiddlewareSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var resp apperrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}

func okNext(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ValidToken() {
	token, user := s.issueToken(s.tokenService, models.RoleAdmin)
	s.blacklist.EXPECT().IsBlacklisted(gomock.Any(), gomock.Any()).Return(false, nil)

	rec, c := s.serve(RequireAuth(s.tokenService, s.blacklist), "Bearer "+token, okNext)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(user.ID, c.Get("user_id"))
	s.Equal(user.Email, c.Get("user_email"))
	s.Equal(models.RoleAdmin, c.Get("user_role"))
	s.Equal(true, c.Get("is_admin"))
	s.NotEmpty(c.Get("token_jti"))
	s.NotNil(c.Get("token_expires_at"))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_RevokedToken() {
	token, _ := s.issueToken(s.tokenService, models.RoleAdmin)
	s.blacklist.EXPECT().IsBlacklisted(gomock.Any(), gomock.Any()).Return(true, nil)

	rec, _ := s.serve(RequireAuth(s.tokenService, s.blacklist), "Bearer "+token, okNext)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_004", s.errorCode(rec))
	s.Contains(rec.Body.String(), "Token has been revoked")
}

func (s *AuthMiddlewareSuite) TestRequireAuth_BlacklistUnavailable() {
	token, _ := s.issueToken(s.tokenService, models.RoleAdmin)
	s.blacklist.EXPECT().IsBlacklisted(gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused"))

	rec, _ := s.serve(RequireAuth(s.tokenService, s.blacklist), "Bearer "+token, okNext)

	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireAuth_EditorIsNotAdmin() {
	token, _ := s.issueToken(s.tokenService, models.RoleEditor)
	s.blacklist.EXPECT().IsBlacklisted(gomock.Any(), gomock.Any()).Return(false, nil)

	rec, c := s.serve(RequireAuth(s.tokenService, s.blacklist), "bearer "+token, okNext)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(false, c.Get("is_admin"))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MissingHeader() {
	called := false
	rec, _ := s.serve(RequireAuth(s.tokenService, s.blacklist), "", func(c echo.Context) error {
		called = true
		return nil
	})

	s.False(called)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_002", s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_WrongScheme() {
	rec, _ := s.serve(RequireAuth(s.tokenService, s.blacklist), "Basic dXNlcjpwYXNz", okNext)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_004", s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_TokenFromAnotherKey() {
	token, _ := s.issueToken(s.createTokenService(time.Hour), models.RoleAdmin)

	rec, _ := s.serve(RequireAuth(s.tokenService, s.blacklist), "Bearer "+token, okNext)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_004", s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ExpiredToken() {
	expired := s.createTokenService(-time.Minute)
	token, _ := s.issueToken(expired, models.RoleAdmin)

	rec, _ := s.serve(RequireAuth(expired, s.blacklist), "Bearer "+token, okNext)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_003", s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_InvalidUserIDInClaims() {
	mockTokens := service_mocks.NewMockTokenServiceInterface(s.ctrl)
	mockTokens.EXPECT().ExtractTokenFromHeader("Bearer abc").Return("abc", nil)
	mockTokens.EXPECT().ValidateAccessToken("abc").Return(&models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{ID: "jti"},
		UserID:           "not-a-uuid",
		Role:             models.RoleAdmin,
	}, nil)
	s.blacklist.EXPECT().IsBlacklisted(gomock.Any(), "jti").Return(false, nil)

	rec, _ := s.serve(RequireAuth(mockTokens, s.blacklist), "Bearer abc", okNext)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "Invalid user ID in token")
}

func (s *AuthMiddlewareSuite) TestRequireRole() {
	cases := []struct {
		name     string
		role     interface{}
		mw       echo.MiddlewareFunc
		expected int
	}{
		{"admin passes admin check", models.RoleAdmin, RequireAdmin(), http.StatusOK},
		{"editor blocked by admin check", models.RoleEditor, RequireAdmin(), http.StatusForbidden},
		{"editor passes staff check", models.RoleEditor, RequireStaff(), http.StatusOK},
		{"unknown role blocked", "donor", RequireStaff(), http.StatusForbidden},
		{"missing role", nil, RequireAdmin(), http.StatusUnauthorized},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := s.e.NewContext(req, rec)
			if tc.role != nil {
				c.Set("user_role", tc.role)
			}

			s.Require().NoError(tc.mw(okNext)(c))
			s.Equal(tc.expected, rec.Code)
		})
	}
}
