// Package auth gates access to the map API. Identities are issued elsewhere;
// this package only checks bearer tokens.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/jengzang/incident-heatmap-go/pkg/errors"
)

// Session is the signed-in state yielded by a Gate
type Session struct {
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Gate decides whether a bearer token belongs to a signed-in user.
// A signed-out caller gets an error with code unauthorized.
type Gate interface {
	Authorize(ctx context.Context, token string) (Session, error)
}

// JWTGate validates HS256 tokens signed with a shared secret
type JWTGate struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewJWTGate creates a gate. An empty issuer disables the issuer check.
func NewJWTGate(secret, issuer string) *JWTGate {
	return &JWTGate{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// Authorize implements Gate
func (g *JWTGate) Authorize(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, apperrors.Wrap(apperrors.CodeUnauthorized, "missing token", nil)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	}
	if g.issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return g.secret, nil
	}, opts...)
	if err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeUnauthorized, "token validation failed", err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return Session{}, apperrors.Wrap(apperrors.CodeUnauthorized, "token invalid", nil)
	}

	return Session{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Issue signs a token for subject valid for ttl
func (g *JWTGate) Issue(subject string, ttl time.Duration) (string, error) {
	now := g.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    g.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
