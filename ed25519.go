package jwt

import (
	"crypto/ed25519"
	"fmt"
)

// Ed25519Signer implements the Signer contract with Ed25519 under the
// JOSE algorithm name "EdDSA". Ed25519 hashes internally, so the
// message is signed directly.
type Ed25519Signer struct {
	private ed25519.PrivateKey
	public  ed25519.PublicKey
}

// NewEdDSA returns an Ed25519 signer for the given private key.
func NewEdDSA(key ed25519.PrivateKey) *Ed25519Signer {
	return &Ed25519Signer{private: key, public: key.Public().(ed25519.PublicKey)}
}

// NewEdDSAVerifier returns a verify-only Ed25519 signer for the given
// public key. Sign fails with ErrMissingKey.
func NewEdDSAVerifier(key ed25519.PublicKey) *Ed25519Signer {
	return &Ed25519Signer{public: key}
}

// Name returns "EdDSA".
func (s *Ed25519Signer) Name() string {
	return "EdDSA"
}

// Sign produces an Ed25519 signature over message.
func (s *Ed25519Signer) Sign(message []byte) ([]byte, error) {
	if len(s.private) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("EdDSA: %w", ErrMissingKey)
	}
	return ed25519.Sign(s.private, message), nil
}

// Verify checks an Ed25519 signature over message.
func (s *Ed25519Signer) Verify(signature, message []byte) error {
	if len(s.public) != ed25519.PublicKeySize {
		return fmt.Errorf("EdDSA: %w", ErrMissingKey)
	}
	if !ed25519.Verify(s.public, message, signature) {
		return ErrSignatureInvalid
	}
	return nil
}
