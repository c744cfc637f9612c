package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, 24*time.Hour)
	id := uuid.New()

	token, err := m.Issue(id)
	require.NoError(t, err)

	got, err := m.Parse(token)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestTokenExpires(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewTokenManager(testSecret, 24*time.Hour)
	m.now = func() time.Time { return now }

	token, err := m.Issue(uuid.New())
	require.NoError(t, err)

	now = now.Add(25 * time.Hour)
	_, err = m.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsTamperingAndOtherAlgorithms(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	other := NewTokenManager("another-secret-another-secret-xx", time.Hour)
	foreign, err := other.Issue(uuid.New())
	require.NoError(t, err)
	_, err = m.Parse(foreign)
	require.ErrorIs(t, err, ErrInvalidToken)

	claims := Claims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = m.Parse(hs512)
	require.ErrorIs(t, err, ErrInvalidToken)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: uuid.NewString()}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = m.Parse(noExp)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
