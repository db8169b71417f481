package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energen/genquote/internal/model"
)

func signToken(t *testing.T, secret, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: uuid.NewString(),
		OrgID:  uuid.NewString(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseValidToken(t *testing.T) {
	p := NewParser("secret")
	principal, err := p.Parse(signToken(t, "secret", "estimator"))
	require.NoError(t, err)
	assert.Equal(t, model.RoleEstimator, principal.Role)
	assert.True(t, principal.CanWrite())
}

func TestParseRejectsWrongSecret(t *testing.T) {
	p := NewParser("secret")
	_, err := p.Parse(signToken(t, "other", "admin"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsUnknownRole(t *testing.T) {
	p := NewParser("secret")
	_, err := p.Parse(signToken(t, "secret", "superuser"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestViewerCannotWrite(t *testing.T) {
	p := NewParser("secret")
	principal, err := p.Parse(signToken(t, "secret", "viewer"))
	require.NoError(t, err)
	assert.False(t, principal.CanWrite())
}
