package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/ross2p/ems-app/internal/config"
	"github.com/ross2p/ems-app/internal/models"
)

func TestTokenService(t *testing.T) {
	suite.Run(t, new(TokenServiceSuite))
}

type TokenServiceSuite struct {
	suite.Suite
	service TokenServiceInterface
	jwtCfg  *config.JWTConfig
	user    *models.User
}

func (s *TokenServiceSuite) SetupTest() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.jwtCfg = &config.JWTConfig{
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		PrivateKey:           privateKey,
		PublicKey:            publicKey,
		Issuer:               "ems-app",
	}
	s.service = NewTokenService(s.jwtCfg)
	s.user = &models.User{
		ID:    uuid.New(),
		Email: "alice@example.com",
	}
}

func (s *TokenServiceSuite) TestGenerateAccessToken() {
	token, expiresAt, err := s.service.GenerateAccessToken(s.user)

	s.NoError(err)
	s.NotEmpty(token)
	s.WithinDuration(time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := s.service.ValidateAccessToken(token)
	s.NoError(err)
	s.Equal(s.user.ID.String(), claims.UserID)
	s.Equal(s.user.Email, claims.Email)
	s.Equal(TokenTypeAccess, claims.TokenType)
	s.Equal("ems-app", claims.Issuer)
}

func (s *TokenServiceSuite) TestGenerateAccessToken_NilUser() {
	_, _, err := s.service.GenerateAccessToken(nil)
	s.Error(err)
}

func (s *TokenServiceSuite) TestGenerateRefreshToken() {
	token, expiresAt, err := s.service.GenerateRefreshToken(s.user.ID)

	s.NoError(err)
	s.NotEmpty(token)
	s.WithinDuration(time.Now().Add(7*24*time.Hour), expiresAt, 5*time.Second)

	claims, err := s.service.ValidateRefreshToken(token)
	s.NoError(err)
	s.Equal(s.user.ID.String(), claims.UserID)
	s.Equal(TokenTypeRefresh, claims.TokenType)
}

func (s *TokenServiceSuite) TestGenerateRefreshToken_NilUserID() {
	_, _, err := s.service.GenerateRefreshToken(uuid.Nil)
	s.Error(err)
}

func (s *TokenServiceSuite) TestValidateAccessToken_Empty() {
	_, err := s.service.ValidateAccessToken("")
	s.ErrorIs(err, ErrEmptyToken)
}

func (s *TokenServiceSuite) TestValidateAccessToken_Malformed() {
	_, err := s.service.ValidateAccessToken("not-a-jwt")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceSuite) TestValidateAccessToken_WrongType() {
	refreshToken, _, err := s.service.GenerateRefreshToken(s.user.ID)
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(refreshToken)
	s.ErrorIs(err, ErrInvalidTokenType)
}

func (s *TokenServiceSuite) TestValidateRefreshToken_WrongType() {
	accessToken, _, err := s.service.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	_, err = s.service.ValidateRefreshToken(accessToken)
	s.ErrorIs(err, ErrInvalidTokenType)
}

func (s *TokenServiceSuite) TestValidateAccessToken_WrongIssuer() {
	otherCfg := *s.jwtCfg
	otherCfg.Issuer = "someone-else"
	other := NewTokenService(&otherCfg)

	token, _, err := other.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidIssuer)
}

func (s *TokenServiceSuite) TestValidateAccessToken_Expired() {
	shortCfg := *s.jwtCfg
	shortCfg.AccessTokenDuration = -time.Minute
	short := NewTokenService(&shortCfg)

	token, _, err := short.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrExpiredToken)
}

func (s *TokenServiceSuite) TestValidateAccessToken_WrongKey() {
	otherPrivate, otherPublic, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	otherCfg := *s.jwtCfg
	otherCfg.PrivateKey = otherPrivate
	otherCfg.PublicKey = otherPublic
	other := NewTokenService(&otherCfg)

	token, _, err := other.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceSuite) TestExtractTokenFromHeader() {
	token, err := s.service.ExtractTokenFromHeader("Bearer abc.def.ghi")
	s.NoError(err)
	s.Equal("abc.def.ghi", token)
}

func (s *TokenServiceSuite) TestExtractTokenFromHeader_CaseInsensitive() {
	token, err := s.service.ExtractTokenFromHeader("bearer abc.def.ghi")
	s.NoError(err)
	s.Equal("abc.def.ghi", token)
}

func (s *TokenServiceSuite) TestExtractTokenFromHeader_Invalid() {
	cases := []string{"", "Basic abc", "Bearer", "abc.def.ghi"}
	for _, header := range cases {
		_, err := s.service.ExtractTokenFromHeader(header)
		s.ErrorIs(err, ErrInvalidAuthHeader, "header %q", header)
	}
}
