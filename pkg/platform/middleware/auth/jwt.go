package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	dErrors "devportal/pkg/domain-errors"
)

// Claims are the portal's access token claims.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Actor is the email claim, falling back to the subject.
func (c *Claims) Actor() string {
	if c.Email != "" {
		return c.Email
	}
	return c.Subject
}

// HMACValidator validates HS256 tokens issued by the portal's identity provider.
type HMACValidator struct {
	signingKey []byte
	audience   string
}

func NewHMACValidator(signingKey, audience string) *HMACValidator {
	return &HMACValidator{signingKey: []byte(signingKey), audience: audience}
}

func (v *HMACValidator) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "empty token")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.signingKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !token.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	return claims, nil
}

// SignHMAC issues an HS256 token for claims. Used by local tooling and tests;
// production tokens come from the identity provider.
func SignHMAC(signingKey string, claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
}
