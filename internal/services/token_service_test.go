package services

import (
	"crypto/rsa"
	"testing"
	"time"

	"charity-transparency/internal/config"
	"charity-transparency/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	suite.Suite
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	service    TokenServiceInterface
	issuer     string
	user       *models.AdminUser
}

func (s *TokenServiceTestSuite) SetupTest() {
	var err error
	s.privateKey, s.publicKey, err = config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.issuer = "charity-transparency-test"
	s.service = NewTokenService(&config.JWTConfig{
		PrivateKey:          s.privateKey,
		PublicKey:           s.publicKey,
		Issuer:              s.issuer,
		AccessTokenDuration: time.Hour,
	})

	s.user = &models.AdminUser{
		ID:    uuid.New(),
		Email: "treasurer@example.org",
		Name:  "Treasurer",
		Role:  models.RoleAdmin,
	}
}

func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken() {
	token, expiresAt, err := s.service.GenerateAccessToken(s.user)

	s.NoError(err)
	s.NotEmpty(token)
	s.True(expiresAt.After(time.Now()))
	s.True(expiresAt.Before(time.Now().Add(61 * time.Minute)))
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken_NilUser() {
	token, _, err := s.service.GenerateAccessToken(nil)

	s.Error(err)
	s.Empty(token)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_RoundTrip() {
	token, _, err := s.service.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	claims, err := s.service.ValidateAccessToken(token)

	s.Require().NoError(err)
	s.Equal(s.user.ID.String(), claims.UserID)
	s.Equal(s.user.ID.String(), claims.Subject)
	s.Equal(s.user.Email, claims.Email)
	s.Equal(s.user.Name, claims.Name)
	s.Equal(models.RoleAdmin, claims.Role)
	s.Equal(s.issuer, claims.Issuer)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Empty() {
	_, err := s.service.ValidateAccessToken("")
	s.ErrorIs(err, ErrEmptyToken)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Garbage() {
	_, err := s.service.ValidateAccessToken("not.a.jwt")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_Expired() {
	expired := NewTokenService(&config.JWTConfig{
		PrivateKey:          s.privateKey,
		PublicKey:           s.publicKey,
		Issuer:              s.issuer,
		AccessTokenDuration: -time.Minute,
	})
	token, _, err := expired.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)

	s.ErrorIs(err, ErrExpiredToken)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_WrongIssuer() {
	other := NewTokenService(&config.JWTConfig{
		PrivateKey:          s.privateKey,
		PublicKey:           s.publicKey,
		Issuer:              "someone-else",
		AccessTokenDuration: time.Hour,
	})
	token, _, err := other.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)

	s.ErrorIs(err, ErrInvalidIssuer)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_WrongKey() {
	otherKey, _, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)
	forged := NewTokenService(&config.JWTConfig{
		PrivateKey:          otherKey,
		PublicKey:           s.publicKey,
		Issuer:              s.issuer,
		AccessTokenDuration: time.Hour,
	})
	token, _, err := forged.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)

	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestValidateAccessToken_RejectsHMAC() {
	claims := models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: s.user.ID.String(),
		Role:   models.RoleAdmin,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)

	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader() {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "missing scheme", header: "abc.def.ghi", wantErr: ErrInvalidAuthHeader},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthHeader},
		{name: "empty token", header: "Bearer   ", wantErr: ErrInvalidAuthHeader},
		{name: "empty header", header: "", wantErr: ErrInvalidAuthHeader},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			token, err := s.service.ExtractTokenFromHeader(tt.header)
			if tt.wantErr != nil {
				s.ErrorIs(err, tt.wantErr)
				return
			}
			s.NoError(err)
			s.Equal(tt.want, token)
		})
	}
}
