// Package token issues and verifies signed session tokens.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EmailClaim is the claim key carrying the caller identity.
const EmailClaim = "email"

// Service signs and verifies session tokens. It is stateless: a token is a
// pure function of the signing secret, the payload and the clock.
type Service struct {
	secret []byte
	expiry time.Duration
}

// NewService creates a token service signing with secret. Tokens expire
// expiry after issuance.
func NewService(secret string, expiry time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Issue signs the given identity claims into a token expiring at
// issuance time plus the configured expiry. Issuing never invalidates
// previously issued tokens for the same identity.
func (s *Service) Issue(claims map[string]any) (string, error) {
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}

	now := time.Now()
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(s.expiry).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token, checking both the signature and the
// expiry, and returns the decoded claims. Malformed, tampered and expired
// tokens all fail.
func (s *Service) Verify(tokenString string) (map[string]any, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// Email extracts the identity email from decoded claims.
func Email(claims map[string]any) (string, bool) {
	email, ok := claims[EmailClaim].(string)
	return email, ok && email != ""
}
