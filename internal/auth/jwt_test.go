package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/rentdesk/internal/common"
	"github.com/dmitrijs2005/rentdesk/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tenant = models.AuthUser{UID: "2", Name: "Tenant One", Email: "tenant1@building.com", Role: models.RoleTenant, Phone: "9876543211"}

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(tenant, []byte("super-secret"), time.Hour, time.Now())
	require.NoError(t, err)

	got, err := ParseToken(tok, []byte("super-secret"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, tenant, *got)
}

func TestGenerateToken_NoExpiry(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(tenant, []byte("s"), 0, time.Now().Add(-365*24*time.Hour))
	require.NoError(t, err)

	got, err := ParseToken(tok, []byte("s"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2", got.UID)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(tenant, []byte("s"), time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("s"), time.Now())
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestParseToken_ClockBoundary(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	tok, err := GenerateToken(tenant, []byte("s"), time.Hour, issued)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("s"), issued.Add(59*time.Minute))
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("s"), issued.Add(2*time.Hour))
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(tenant, []byte("right"), time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("wrong"), time.Now())
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not-a-token", []byte("s"), time.Now())
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_SubjectMismatch(t *testing.T) {
	t.Parallel()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
		User:             tenant,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s"))
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("s"), time.Now())
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
