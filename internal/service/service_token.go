package service

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-login-server/internal/config"
	"github.com/MKhiriev/go-login-server/internal/utils"
	"github.com/MKhiriev/go-login-server/models"
	"github.com/golang-jwt/jwt/v5"
)

// tokenService is the HS256 implementation of [TokenService].
type tokenService struct {
	// accessSignKey signs and verifies access tokens.
	accessSignKey string

	// refreshSignKey signs and verifies refresh tokens and keys their
	// stored digest. Equals accessSignKey when no separate key is set.
	refreshSignKey string

	// issuer is the "iss" claim of every issued token; tokens from another
	// issuer are rejected.
	issuer string

	accessTTL  time.Duration
	refreshTTL time.Duration

	ids *utils.UUIDGenerator
}

// NewTokenService constructs a [TokenService] from the token settings in
// cfg. All state is read-only after construction.
func NewTokenService(cfg config.App) TokenService {
	refreshSignKey := cfg.RefreshTokenSignKey
	if refreshSignKey == "" {
		refreshSignKey = cfg.TokenSignKey
	}

	return &tokenService{
		accessSignKey:  cfg.TokenSignKey,
		refreshSignKey: refreshSignKey,
		issuer:         cfg.TokenIssuer,
		accessTTL:      cfg.AccessTokenDuration,
		refreshTTL:     cfg.RefreshTokenDuration,
		ids:            utils.NewUUIDGenerator(),
	}
}

// CreateAccessToken implements [TokenService].
func (s *tokenService) CreateAccessToken(loginID, nickname string, role models.Role) (models.Token, error) {
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: loginID},
		Nickname:         nickname,
		Role:             role,
		Type:             models.AccessTokenType,
	}

	token, err := utils.GenerateJWTToken(claims, s.issuer, s.accessTTL, s.accessSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// CreateRefreshToken implements [TokenService]. Each token carries a
// unique jti, so two tokens issued within the same second still differ.
func (s *tokenService) CreateRefreshToken(loginID string) (models.Token, error) {
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: loginID,
			ID:      s.ids.Generate(),
		},
		Type: models.RefreshTokenType,
	}

	token, err := utils.GenerateJWTToken(claims, s.issuer, s.refreshTTL, s.refreshSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ValidateToken implements [TokenService].
func (s *tokenService) ValidateToken(tokenString, expectedSubject string) bool {
	claims, err := s.ParseClaims(tokenString)
	return err == nil && expectedSubject != "" && claims.Subject == expectedSubject
}

// ValidateRefreshToken implements [TokenService].
func (s *tokenService) ValidateRefreshToken(tokenString, expectedSubject string) bool {
	claims, err := s.ParseRefreshClaims(tokenString)
	return err == nil && expectedSubject != "" && claims.Subject == expectedSubject
}

// ParseClaims implements [TokenService]. Every validation failure is
// reported as [ErrInvalidToken] so callers never depend on JWT internals.
func (s *tokenService) ParseClaims(tokenString string) (models.Claims, error) {
	claims, err := utils.ValidateAndParseJWTToken(tokenString, s.accessSignKey, s.issuer, models.AccessTokenType)
	if err != nil {
		return models.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims, nil
}

// ParseRefreshClaims implements [TokenService].
func (s *tokenService) ParseRefreshClaims(tokenString string) (models.Claims, error) {
	claims, err := utils.ValidateAndParseJWTToken(tokenString, s.refreshSignKey, s.issuer, models.RefreshTokenType)
	if err != nil {
		return models.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims, nil
}

// Digest implements [TokenService].
func (s *tokenService) Digest(tokenString string) string {
	return utils.HashString(tokenString, s.refreshSignKey)
}
