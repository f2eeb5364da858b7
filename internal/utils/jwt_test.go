package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-login-server/models"
	"github.com/golang-jwt/jwt/v5"
)

const (
	testIssuer  = "test-issuer"
	testSignKey = "secret-key"
)

func accessClaims(subject string) models.Claims {
	return models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
		Nickname:         "Al",
		Role:             models.RoleUser,
		Type:             models.AccessTokenType,
	}
}

func TestGenerateJWTToken_Success(t *testing.T) {
	before := time.Now().Add(-time.Second)

	token, err := GenerateJWTToken(accessClaims("alice"), testIssuer, time.Hour, testSignKey)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Claims.Issuer != testIssuer {
		t.Errorf("expected issuer %s, got %s", testIssuer, token.Claims.Issuer)
	}
	if token.Claims.Subject != "alice" {
		t.Errorf("expected subject 'alice', got %s", token.Claims.Subject)
	}
	if !token.ExpiresAt.After(before.Add(time.Hour)) {
		t.Errorf("expected expiry about an hour from now, got %s", token.ExpiresAt)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		claims   models.Claims
		issuer   string
		duration time.Duration
		key      string
	}{
		{"empty subject", accessClaims(""), "iss", time.Hour, "key"},
		{"empty type", models.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a"}}, "iss", time.Hour, "key"},
		{"empty issuer", accessClaims("a"), "", time.Hour, "key"},
		{"zero duration", accessClaims("a"), "iss", 0, "key"},
		{"negative duration", accessClaims("a"), "iss", -time.Hour, "key"},
		{"empty key", accessClaims("a"), "iss", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.claims, tt.issuer, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	genToken, err := GenerateJWTToken(accessClaims("alice"), testIssuer, 5*time.Minute, testSignKey)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateAndParseJWTToken(genToken.SignedString, testSignKey, testIssuer, models.AccessTokenType)

	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if claims.LoginID() != "alice" {
		t.Errorf("expected subject alice, got %s", claims.LoginID())
	}
	if claims.Nickname != "Al" || claims.Role != models.RoleUser {
		t.Errorf("unexpected custom claims: %+v", claims)
	}
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	genToken, _ := GenerateJWTToken(accessClaims("alice"), testIssuer, time.Hour, "correct-key")

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "wrong-key", testIssuer, models.AccessTokenType)

	if err == nil {
		t.Error("expected error for invalid signing key, got nil")
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	claims := accessClaims("alice")
	claims.Issuer = testIssuer
	claims.IssuedAt = jwt.NewNumericDate(time.Now().Add(-2 * time.Hour))
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = ValidateAndParseJWTToken(signed, testSignKey, testIssuer, models.AccessTokenType)

	if err == nil {
		t.Error("expected error for expired token, got nil")
	}
}

func TestValidateAndParseJWTToken_MissingExpiry(t *testing.T) {
	claims := accessClaims("alice")
	claims.Issuer = testIssuer
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))

	_, err := ValidateAndParseJWTToken(signed, testSignKey, testIssuer, models.AccessTokenType)

	if err == nil {
		t.Error("expected error for token without exp, got nil")
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	genToken, _ := GenerateJWTToken(accessClaims("alice"), "issuer-a", time.Hour, testSignKey)

	_, err := ValidateAndParseJWTToken(genToken.SignedString, testSignKey, "issuer-b", models.AccessTokenType)

	if err == nil {
		t.Error("expected error for wrong issuer, got nil")
	}
}

func TestValidateAndParseJWTToken_WrongType(t *testing.T) {
	genToken, _ := GenerateJWTToken(accessClaims("alice"), testIssuer, time.Hour, testSignKey)

	_, err := ValidateAndParseJWTToken(genToken.SignedString, testSignKey, testIssuer, models.RefreshTokenType)

	if err == nil {
		t.Error("expected error for access token parsed as refresh token, got nil")
	}
}

func TestValidateAndParseJWTToken_WrongAlgorithm(t *testing.T) {
	claims := accessClaims("alice")
	claims.Issuer = testIssuer
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSignKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = ValidateAndParseJWTToken(signed, testSignKey, testIssuer, models.AccessTokenType)

	if err == nil {
		t.Error("expected error for HS512 token, got nil")
	}
}

func TestValidateAndParseJWTToken_NoneAlgorithm(t *testing.T) {
	claims := accessClaims("alice")
	claims.Issuer = testIssuer
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = ValidateAndParseJWTToken(signed, testSignKey, testIssuer, models.AccessTokenType)

	if err == nil {
		t.Error("expected error for unsigned token, got nil")
	}
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	for _, raw := range []string{"", "not.a.token", "abc", strings.Repeat("x", 40)} {
		_, err := ValidateAndParseJWTToken(raw, testSignKey, testIssuer, models.AccessTokenType)
		if err == nil {
			t.Errorf("expected error for malformed token %q, got nil", raw)
		}
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase scheme", "bearer abc", "abc", false},
		{"surrounding spaces", "  Bearer   abc  ", "abc", false},
		{"empty", "", "", true},
		{"scheme only", "Bearer", "", true},
		{"basic scheme", "Basic dXNlcjpwdw==", "", true},
		{"too many parts", "Bearer a b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
