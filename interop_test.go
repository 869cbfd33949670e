package jwt_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signcore/jwt"
)

// Tokens must be interchangeable with golang-jwt, the reference
// implementation of the compact format in the Go ecosystem.

func TestInteropHS256TokenVerifiesElsewhere(t *testing.T) {
	t.Parallel()

	key := []byte("an interop shared secret")

	token, err := jwt.Sign(
		map[string]any{"sub": "user123", "exp": time.Now().Add(time.Hour).Unix()},
		jwt.NewHS256(key),
	)
	require.NoError(t, err)

	parsed, err := gojwt.Parse(
		token.String(),
		func(*gojwt.Token) (any, error) { return key, nil },
		gojwt.WithValidMethods([]string{"HS256"}),
	)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(gojwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user123", claims["sub"])
}

func TestInteropForeignHS256TokenVerifiesHere(t *testing.T) {
	t.Parallel()

	key := []byte("an interop shared secret")

	foreign, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub": "user123",
		"iss": "other-service",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(key)
	require.NoError(t, err)

	token, err := jwt.Parse(foreign)
	require.NoError(t, err)

	algorithm, ok := token.Algorithm()
	require.True(t, ok)
	assert.Equal(t, "HS256", algorithm)

	require.NoError(t, token.VerifySignature(jwt.NewHS256(key)))
	assert.True(t, token.VerifyClaims(
		jwt.NotExpired(time.Now()),
		jwt.IssuedBy("other-service"),
	))

	assert.Equal(t, foreign, token.String())
}

func TestInteropRS256BothDirections(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	t.Run("ours verifies there", func(t *testing.T) {
		token, err := jwt.Sign(map[string]any{"sub": "user123"}, jwt.NewRS256(key))
		require.NoError(t, err)

		parsed, err := gojwt.Parse(
			token.String(),
			func(*gojwt.Token) (any, error) { return &key.PublicKey, nil },
			gojwt.WithValidMethods([]string{"RS256"}),
		)
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
	})

	t.Run("theirs verifies here", func(t *testing.T) {
		foreign, err := gojwt.NewWithClaims(gojwt.SigningMethodRS256, gojwt.MapClaims{
			"sub": "user123",
		}).SignedString(key)
		require.NoError(t, err)

		token, err := jwt.Parse(foreign)
		require.NoError(t, err)
		require.NoError(t, token.VerifySignature(jwt.NewRS256Verifier(&key.PublicKey)))
	})
}
