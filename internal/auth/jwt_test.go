package auth

import (
	"testing"
	"time"

	"agencylms/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tokens := NewTokens("secret", time.Hour, 30*24*time.Hour)

	raw, exp, err := tokens.Issue(7, "admin@agency.in", true, false)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "admin@agency.in", claims.Email)
}

func TestIssueRememberMeExtendsExpiry(t *testing.T) {
	tokens := NewTokens("secret", time.Hour, 30*24*time.Hour)
	_, short, err := tokens.Issue(1, "a@b.co", false, false)
	require.NoError(t, err)
	_, long, err := tokens.Issue(1, "a@b.co", false, true)
	require.NoError(t, err)
	assert.True(t, long.Sub(short) > 29*24*time.Hour)
}

func TestParseExpired(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	issuer := NewTokens("secret", time.Hour, 0)
	issuer.Now = func() time.Time { return past }
	raw, _, err := issuer.Issue(1, "a@b.co", false, false)
	require.NoError(t, err)

	_, err = NewTokens("secret", time.Hour, 0).Parse(raw)
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "expired")
}

func TestParseWrongSecret(t *testing.T) {
	raw, _, err := NewTokens("one", time.Hour, 0).Issue(1, "a@b.co", false, false)
	require.NoError(t, err)
	_, err = NewTokens("two", time.Hour, 0).Parse(raw)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	_, ok = BearerToken("Basic xyz")
	assert.False(t, ok)
	_, ok = BearerToken("bearer   ")
	assert.False(t, ok)
}
