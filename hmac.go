package jwt

import (
	"crypto"
	"crypto/hmac"
	"fmt"

	"github.com/signcore/jwt/internal/security"
)

// HMACSigner implements the Signer contract with HMAC over a SHA-2
// hash, keyed by a shared secret.
type HMACSigner struct {
	name string
	hash crypto.Hash
	key  []byte
}

// NewHS256 returns an HMAC-SHA256 signer keyed with the given secret.
func NewHS256(key []byte) *HMACSigner {
	return newHMACSigner("HS256", crypto.SHA256, key)
}

// NewHS384 returns an HMAC-SHA384 signer keyed with the given secret.
func NewHS384(key []byte) *HMACSigner {
	return newHMACSigner("HS384", crypto.SHA384, key)
}

// NewHS512 returns an HMAC-SHA512 signer keyed with the given secret.
func NewHS512(key []byte) *HMACSigner {
	return newHMACSigner("HS512", crypto.SHA512, key)
}

func newHMACSigner(name string, hash crypto.Hash, key []byte) *HMACSigner {
	// Private copy so later caller mutation cannot change what signs.
	owned := make([]byte, len(key))
	copy(owned, key)
	return &HMACSigner{name: name, hash: hash, key: owned}
}

// Name returns the algorithm identifier (HS256, HS384, or HS512).
func (s *HMACSigner) Name() string {
	return s.name
}

// Sign computes the HMAC of message under the signer's secret.
func (s *HMACSigner) Sign(message []byte) ([]byte, error) {
	if len(s.key) == 0 {
		return nil, fmt.Errorf("%s: %w", s.name, ErrMissingKey)
	}
	if !s.hash.Available() {
		return nil, fmt.Errorf("%s: hash function %v not available", s.name, s.hash)
	}

	hasher := hmac.New(s.hash.New, s.key)
	hasher.Write(message)
	return hasher.Sum(nil), nil
}

// Verify recomputes the HMAC of message and compares it against
// signature in constant time.
func (s *HMACSigner) Verify(signature, message []byte) error {
	expected, err := s.Sign(message)
	if err != nil {
		return err
	}
	defer security.ZeroBytes(expected)

	if !security.SecureCompare(signature, expected) {
		return ErrSignatureInvalid
	}
	return nil
}
