package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecureBytes(t *testing.T) {
	t.Parallel()

	original := []byte("sensitive key material")
	secure := NewSecureBytes(original)

	assert.Equal(t, original, secure.Bytes())

	// The container owns a copy; mutating the source changes nothing.
	original[0] = 'X'
	assert.Equal(t, byte('s'), secure.Bytes()[0])

	held := secure.Bytes()
	secure.Destroy()
	assert.Nil(t, secure.Bytes())
	for _, b := range held {
		assert.Zero(t, b, "destroyed bytes must be zeroed")
	}
}

func TestZeroBytes(t *testing.T) {
	t.Parallel()

	data := []byte{1, 2, 3, 4}
	ZeroBytes(data)
	assert.Equal(t, []byte{0, 0, 0, 0}, data)
}

func TestSecureCompare(t *testing.T) {
	t.Parallel()

	assert.True(t, SecureCompare([]byte("same"), []byte("same")))
	assert.False(t, SecureCompare([]byte("same"), []byte("diff")))
	assert.False(t, SecureCompare([]byte("short"), []byte("longer input")))
	assert.True(t, SecureCompare(nil, []byte{}))
}

func TestIsWeakKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  []byte
		weak bool
	}{
		{"empty", []byte{}, true},
		{"single repeated byte", []byte(strings.Repeat("a", 32)), true},
		{"tiny alphabet", []byte(strings.Repeat("abcdefg", 10)), true},
		{"repeated pattern", []byte(strings.Repeat("abcdefgh", 8)), true},
		{"placeholder", []byte("my-password-is-long-and-varied-1!"), true},
		{"strong", []byte("Tq7#rV4$bN9@kC2!mX8&pZ5^hJ3*wD6%"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.weak, IsWeakKey(tt.key))
		})
	}
}
