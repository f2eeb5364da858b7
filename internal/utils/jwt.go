package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-login-server/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errInvalidJWTParams     = errors.New("invalid params for generating JWT Token")
	errEmptySubject         = errors.New("empty subject error")
	errUnexpectedTokenType  = errors.New("unexpected token type")
	errInvalidAuthorization = errors.New("invalid authorization header")
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token from the given claims.
//
// The following standard claims are filled in, overwriting whatever the
// caller set:
//   - Issuer    (iss): identifies the service that issued the token
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// Subject, Type and the custom claims are taken from claims as is. Subject,
// Type, issuer, a positive duration and signKey are all required.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken(models.Claims{
//	    RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
//	    Type:             models.AccessTokenType,
//	}, "my-service", time.Hour, "secret")
func GenerateJWTToken(claims models.Claims, issuer string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if claims.Subject == "" || claims.Type == "" || issuer == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errInvalidJWTParams
	}

	now := time.Now()
	claims.Issuer = issuer
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(tokenDuration))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{
		SignedString: tokenString,
		ExpiresAt:    claims.ExpiresAt.Time,
		Claims:       claims,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Algorithm check: only HS256 is accepted
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim presence and check
//   - Subject (sub) claim presence
//   - Token type (typ) claim check against expectedType
//
// Example usage:
//
//	claims, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "my-service", models.AccessTokenType)
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string, expectedType models.TokenType) (models.Claims, error) {
	claims := models.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Claims{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Claims{}, errEmptySubject
	}
	if claims.Type != expectedType {
		return models.Claims{}, fmt.Errorf("%w: got %q, want %q", errUnexpectedTokenType, claims.Type, expectedType)
	}

	return claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errInvalidAuthorization
	}
	return parts[1], nil
}
