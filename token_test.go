package jwt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signcore/jwt"
)

// tildeSigner wraps the message in tildes; it exists to prove the
// engine works with any Signer, not just the shipped families.
type tildeSigner struct{}

func (tildeSigner) Name() string { return "tilde" }

func (tildeSigner) Sign(message []byte) ([]byte, error) {
	return []byte("~" + string(message) + "~"), nil
}

func (tildeSigner) Verify(signature, message []byte) error {
	if string(signature) != "~"+string(message)+"~" {
		return jwt.ErrSignatureInvalid
	}
	return nil
}

// dotCommaEncoding swaps dots for commas so segment text can never
// collide with the separator.
type dotCommaEncoding struct{}

func (dotCommaEncoding) Encode(data []byte) string {
	return strings.ReplaceAll(string(data), ".", ",")
}

func (dotCommaEncoding) Decode(segment string) ([]byte, error) {
	return []byte(strings.ReplaceAll(segment, ",", ".")), nil
}

func TestSignDefaultHeaders(t *testing.T) {
	t.Parallel()

	token, err := jwt.Sign(map[string]any{"sub": "user123"}, jwt.NewHS256([]byte("foobar")))
	require.NoError(t, err)

	headers, ok := token.Headers().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"alg": "HS256", "typ": "JWT"}, headers)
}

func TestSignKeepsCallerHeaders(t *testing.T) {
	t.Parallel()

	token, err := jwt.Sign(
		map[string]any{"sub": "user123"},
		jwt.NewHS256([]byte("foobar")),
		jwt.WithHeaders(map[string]any{"alg": "custom-alg", "typ": "CUSTOM", "kid": "key-1"}),
	)
	require.NoError(t, err)

	headers, ok := token.Headers().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "custom-alg", headers["alg"], "caller alg must not be overridden")
	assert.Equal(t, "CUSTOM", headers["typ"], "caller typ must not be overridden")
	assert.Equal(t, "key-1", headers["kid"])
}

func TestSignMergesDefaultsIntoPartialHeaders(t *testing.T) {
	t.Parallel()

	token, err := jwt.Sign(
		map[string]any{"sub": "user123"},
		jwt.NewHS256([]byte("foobar")),
		jwt.WithHeaders(map[string]any{"kid": "key-1"}),
	)
	require.NoError(t, err)

	headers, ok := token.Headers().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "HS256", headers["alg"])
	assert.Equal(t, "JWT", headers["typ"])
	assert.Equal(t, "key-1", headers["kid"])
}

func TestParseSegmentCountStrictness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"no separator", "onlyonesegment"},
		{"one separator", "two.segments"},
		{"single dot", "."},
		{"three separators", "a.b.c.d"},
		{"many separators", "a.b.c.d.e.f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jwt.Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, jwt.ErrIncorrectSegmentCount)
		})
	}

	t.Run("empty string", func(t *testing.T) {
		_, err := jwt.Parse("")
		assert.ErrorIs(t, err, jwt.ErrEmptyToken)
	})

	t.Run("oversized", func(t *testing.T) {
		_, err := jwt.Parse(strings.Repeat("a", 10000))
		assert.ErrorIs(t, err, jwt.ErrTokenTooLarge)
	})
}

func TestParseMalformedSegments(t *testing.T) {
	t.Parallel()

	valid, err := jwt.Sign(map[string]any{"sub": "user123"}, jwt.NewHS256([]byte("foobar")))
	require.NoError(t, err)
	parts := strings.Split(valid.String(), ".")

	t.Run("header not base64url", func(t *testing.T) {
		_, err := jwt.Parse("!!bad!!" + "." + parts[1] + "." + parts[2])
		assert.ErrorIs(t, err, jwt.ErrInvalidEncoding)
	})

	t.Run("payload not JSON", func(t *testing.T) {
		notJSON := jwt.Base64URL.Encode([]byte("not json at all"))
		_, err := jwt.Parse(parts[0] + "." + notJSON + "." + parts[2])
		assert.ErrorIs(t, err, jwt.ErrMalformedJSON)
	})

	t.Run("signature not base64url", func(t *testing.T) {
		_, err := jwt.Parse(parts[0] + "." + parts[1] + "." + "###")
		assert.ErrorIs(t, err, jwt.ErrInvalidEncoding)
	})
}

func TestRoundTripFidelity(t *testing.T) {
	t.Parallel()

	original, err := jwt.Sign(
		map[string]any{"sub": "user123", "nested": map[string]any{"a": []any{1.0, "two"}}},
		jwt.NewHS256([]byte("foobar")),
	)
	require.NoError(t, err)

	serialized := original.String()
	assert.Equal(t, serialized, original.String(), "serialization must be idempotent")

	parsed, err := jwt.Parse(serialized)
	require.NoError(t, err)
	assert.Equal(t, serialized, parsed.String(), "parse then serialize must reproduce the input")

	reparsed, err := jwt.Parse(parsed.String())
	require.NoError(t, err)
	assert.Equal(t, serialized, reparsed.String())
}

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	signer := jwt.NewHS256([]byte("foobar"))
	token, err := jwt.Sign(map[string]any{"sub": "user123"}, signer)
	require.NoError(t, err)

	parsed, err := jwt.Parse(token.String())
	require.NoError(t, err)

	t.Run("matching signer succeeds", func(t *testing.T) {
		require.NoError(t, parsed.VerifySignature(signer))
		// Verification caches nothing; a second call stands alone.
		require.NoError(t, parsed.VerifySignature(signer))
	})

	t.Run("wrong key fails", func(t *testing.T) {
		err := parsed.VerifySignature(jwt.NewHS256([]byte("not-foobar")))
		assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
	})

	t.Run("algorithm mismatch fails before crypto", func(t *testing.T) {
		err := parsed.VerifySignature(jwt.NewHS384([]byte("foobar")))
		assert.ErrorIs(t, err, jwt.ErrAlgorithmMismatch)
	})

	t.Run("tampered signature fails", func(t *testing.T) {
		parts := strings.Split(token.String(), ".")
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}

		tampered, err := jwt.Parse(parts[0] + "." + parts[1] + "." + string(sig))
		require.NoError(t, err)
		assert.ErrorIs(t, tampered.VerifySignature(signer), jwt.ErrSignatureInvalid)
	})

	t.Run("swapped payload fails", func(t *testing.T) {
		parts := strings.Split(token.String(), ".")
		forgedPayload := jwt.Base64URL.Encode([]byte(`{"sub":"admin"}`))

		forged, err := jwt.Parse(parts[0] + "." + forgedPayload + "." + parts[2])
		require.NoError(t, err)
		assert.ErrorIs(t, forged.VerifySignature(signer), jwt.ErrSignatureInvalid)
	})
}

func TestVerifySignatureAlgorithmMissing(t *testing.T) {
	t.Parallel()

	// A header tree without "alg" parses fine but cannot be verified
	// without the caller deciding what to expect.
	header := jwt.Base64URL.Encode([]byte(`{"typ":"JWT"}`))
	payload := jwt.Base64URL.Encode([]byte(`{"sub":"user123"}`))
	signature := jwt.Base64URL.Encode([]byte("whatever"))

	token, err := jwt.Parse(header + "." + payload + "." + signature)
	require.NoError(t, err)

	_, ok := token.Algorithm()
	assert.False(t, ok)

	err = token.VerifySignature(jwt.NewHS256([]byte("foobar")))
	assert.ErrorIs(t, err, jwt.ErrAlgorithmMissing)
}

func TestAlgorithmLookup(t *testing.T) {
	t.Parallel()

	token, err := jwt.Sign(map[string]any{"sub": "user123"}, jwt.NewHS512([]byte("foobar")))
	require.NoError(t, err)

	algorithm, ok := token.Algorithm()
	require.True(t, ok)
	assert.Equal(t, "HS512", algorithm)
}

func TestVerifyClaimsConjunction(t *testing.T) {
	t.Parallel()

	token, err := jwt.Sign(map[string]any{"iss": "issuer-a"}, jwt.NewHS256([]byte("foobar")))
	require.NoError(t, err)

	t.Run("empty claim set vacuously passes", func(t *testing.T) {
		assert.True(t, token.VerifyClaims())
	})

	t.Run("single failing claim fails the set", func(t *testing.T) {
		assert.False(t, token.VerifyClaims(jwt.IssuedBy("issuer-b")))
	})

	t.Run("every claim runs even after a failure", func(t *testing.T) {
		evaluated := 0
		counting := jwt.ClaimFunc(func(any) bool {
			evaluated++
			return true
		})

		ok := token.VerifyClaims(jwt.IssuedBy("issuer-b"), counting, counting)
		assert.False(t, ok)
		assert.Equal(t, 2, evaluated)
	})
}

func TestCustomSignerAndEncoding(t *testing.T) {
	t.Parallel()

	token, err := jwt.Sign(
		[]string{"payload"},
		tildeSigner{},
		jwt.WithHeaders([]string{"header"}),
		jwt.WithEncoding(dotCommaEncoding{}),
	)
	require.NoError(t, err)

	want := `["header"].["payload"].~["header"],["payload"]~`
	assert.Equal(t, want, token.String())

	parsed, err := jwt.Parse(want, jwt.WithEncoding(dotCommaEncoding{}))
	require.NoError(t, err)
	assert.Equal(t, want, parsed.String(), "custom-encoded token must round-trip exactly")

	assert.Equal(t, []any{"header"}, parsed.Headers())
	assert.Equal(t, []any{"payload"}, parsed.Payload())
	assert.Equal(t, []byte(`~["header"].["payload"]~`), parsed.Signature())

	// An array header has no "alg" entry, so verification needs an
	// explicit caller decision.
	assert.ErrorIs(t, parsed.VerifySignature(tildeSigner{}), jwt.ErrAlgorithmMissing)
}

func TestDecodePayload(t *testing.T) {
	t.Parallel()

	type payload struct {
		Subject string `json:"sub"`
		Admin   bool   `json:"admin"`
	}

	token, err := jwt.Sign(payload{Subject: "user123", Admin: true}, jwt.NewHS256([]byte("foobar")))
	require.NoError(t, err)

	parsed, err := jwt.Parse(token.String())
	require.NoError(t, err)

	var got payload
	require.NoError(t, parsed.DecodePayload(&got))
	assert.Equal(t, payload{Subject: "user123", Admin: true}, got)
}
