package jwt

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

// RSASigner implements the Signer contract with RSASSA-PKCS1-v1_5 over
// a SHA-2 hash. A signer built from a private key can both sign and
// verify; one built from a public key only can verify.
type RSASigner struct {
	name    string
	hash    crypto.Hash
	private *rsa.PrivateKey
	public  *rsa.PublicKey
}

// NewRS256 returns an RSA-SHA256 signer for the given private key.
func NewRS256(key *rsa.PrivateKey) *RSASigner {
	return &RSASigner{name: "RS256", hash: crypto.SHA256, private: key, public: &key.PublicKey}
}

// NewRS384 returns an RSA-SHA384 signer for the given private key.
func NewRS384(key *rsa.PrivateKey) *RSASigner {
	return &RSASigner{name: "RS384", hash: crypto.SHA384, private: key, public: &key.PublicKey}
}

// NewRS512 returns an RSA-SHA512 signer for the given private key.
func NewRS512(key *rsa.PrivateKey) *RSASigner {
	return &RSASigner{name: "RS512", hash: crypto.SHA512, private: key, public: &key.PublicKey}
}

// NewRS256Verifier returns a verify-only RSA-SHA256 signer for the
// given public key. Sign fails with ErrMissingKey.
func NewRS256Verifier(key *rsa.PublicKey) *RSASigner {
	return &RSASigner{name: "RS256", hash: crypto.SHA256, public: key}
}

// NewRS384Verifier returns a verify-only RSA-SHA384 signer.
func NewRS384Verifier(key *rsa.PublicKey) *RSASigner {
	return &RSASigner{name: "RS384", hash: crypto.SHA384, public: key}
}

// NewRS512Verifier returns a verify-only RSA-SHA512 signer.
func NewRS512Verifier(key *rsa.PublicKey) *RSASigner {
	return &RSASigner{name: "RS512", hash: crypto.SHA512, public: key}
}

// Name returns the algorithm identifier (RS256, RS384, or RS512).
func (s *RSASigner) Name() string {
	return s.name
}

// Sign produces a PKCS#1 v1.5 signature over the digest of message.
func (s *RSASigner) Sign(message []byte) ([]byte, error) {
	if s.private == nil {
		return nil, fmt.Errorf("%s: %w", s.name, ErrMissingKey)
	}
	if !s.hash.Available() {
		return nil, fmt.Errorf("%s: hash function %v not available", s.name, s.hash)
	}

	hasher := s.hash.New()
	hasher.Write(message)

	sig, err := rsa.SignPKCS1v15(rand.Reader, s.private, s.hash, hasher.Sum(nil))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return sig, nil
}

// Verify checks a PKCS#1 v1.5 signature over the digest of message.
func (s *RSASigner) Verify(signature, message []byte) error {
	if s.public == nil {
		return fmt.Errorf("%s: %w", s.name, ErrMissingKey)
	}
	if !s.hash.Available() {
		return fmt.Errorf("%s: hash function %v not available", s.name, s.hash)
	}

	hasher := s.hash.New()
	hasher.Write(message)

	if err := rsa.VerifyPKCS1v15(s.public, s.hash, hasher.Sum(nil), signature); err != nil {
		return ErrSignatureInvalid
	}
	return nil
}
