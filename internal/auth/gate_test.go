package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jengzang/incident-heatmap-go/pkg/errors"
)

func TestJWTGateRoundTrip(t *testing.T) {
	gate := NewJWTGate("secret", "saferoute")
	token, err := gate.Issue("user-1", time.Hour)
	require.NoError(t, err)

	session, err := gate.Authorize(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "user-1", session.Subject)
	require.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)
}

func TestJWTGateRejects(t *testing.T) {
	gate := NewJWTGate("secret", "saferoute")
	valid, err := gate.Issue("user-1", time.Hour)
	require.NoError(t, err)

	expired := NewJWTGate("secret", "saferoute")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue("user-1", time.Hour)
	require.NoError(t, err)

	otherSecret, err := NewJWTGate("other", "saferoute").Issue("user-1", time.Hour)
	require.NoError(t, err)

	otherIssuer, err := NewJWTGate("secret", "elsewhere").Issue("user-1", time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1", Issuer: "saferoute"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noSubject, err := gate.Issue("", time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"tampered":     valid + "x",
		"expired":      expiredToken,
		"other secret": otherSecret,
		"other issuer": otherIssuer,
		"no expiry":    noExpiry,
		"no subject":   noSubject,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := gate.Authorize(context.Background(), token)
			require.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized), "got %v", err)
		})
	}
}
