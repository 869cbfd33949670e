package jwt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signcore/jwt"
)

func TestBase64URLRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"json object", []byte(`{"alg":"HS256","typ":"JWT"}`)},
		{"binary", []byte{0x00, 0xff, 0x3e, 0x3f, 0xfb, 0xf0}},
		{"one byte", []byte{0x7f}},
		{"two bytes", []byte{0x7f, 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := jwt.Base64URL.Encode(tt.data)
			assert.NotContains(t, encoded, "=", "encode must not pad")
			assert.NotContains(t, encoded, "+")
			assert.NotContains(t, encoded, "/")

			decoded, err := jwt.Base64URL.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.data, decoded)
		})
	}
}

func TestBase64URLDecodeAcceptsPadding(t *testing.T) {
	t.Parallel()

	unpadded := jwt.Base64URL.Encode([]byte("pad me"))
	padded := unpadded + strings.Repeat("=", (4-len(unpadded)%4)%4)

	decoded, err := jwt.Base64URL.Decode(padded)
	require.NoError(t, err)
	assert.Equal(t, []byte("pad me"), decoded)
}

func TestBase64URLDecodeRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		segment string
	}{
		{"standard alphabet plus", "ab+c"},
		{"standard alphabet slash", "ab/c"},
		{"whitespace", "ab c"},
		{"control character", "ab\x00c"},
		{"invalid length", "abcde"},
		{"oversized", strings.Repeat("A", 5000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jwt.Base64URL.Decode(tt.segment)
			require.Error(t, err)
			assert.ErrorIs(t, err, jwt.ErrInvalidEncoding)
		})
	}
}
