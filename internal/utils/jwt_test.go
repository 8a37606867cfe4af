package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/idanlevy/flickpick/internal/utils"
)

func TestNewAccessTokenCarriesBothIdentities(t *testing.T) {
	tok, err := utils.NewAccessToken("s3cret", 42, "ana@example.com", 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	require.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), tok.Exp, 2*time.Second)

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "ana@example.com", claims["email"])
}

func TestNewAccessTokenRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("s3cret", 1, "ana@example.com", 15)
	require.NoError(t, err)

	_, err = jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	require.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
	tok, err := utils.NewRefreshToken(30)
	require.NoError(t, err)
	require.Len(t, tok.Raw, 96)
	require.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), tok.Exp, 2*time.Second)

	other, err := utils.NewRefreshToken(30)
	require.NoError(t, err)
	require.NotEqual(t, tok.Raw, other.Raw)
}

func TestHashRefreshRaw(t *testing.T) {
	h := utils.HashRefreshRaw("raw-token")
	require.Len(t, h, 64)
	require.Equal(t, h, utils.HashRefreshRaw("raw-token"))
	require.NotEqual(t, h, utils.HashRefreshRaw("raw-token2"))
}
