package jwt

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"
)

// ECDSASigner implements the Signer contract with ECDSA over a SHA-2
// hash. Signatures use the JOSE raw form: r and s each left-padded to
// the curve's byte size and concatenated, not ASN.1 DER.
type ECDSASigner struct {
	name    string
	hash    crypto.Hash
	curve   elliptic.Curve
	private *ecdsa.PrivateKey
	public  *ecdsa.PublicKey
}

// NewES256 returns a P-256/SHA-256 signer for the given private key.
func NewES256(key *ecdsa.PrivateKey) *ECDSASigner {
	return &ECDSASigner{name: "ES256", hash: crypto.SHA256, curve: elliptic.P256(), private: key, public: &key.PublicKey}
}

// NewES384 returns a P-384/SHA-384 signer for the given private key.
func NewES384(key *ecdsa.PrivateKey) *ECDSASigner {
	return &ECDSASigner{name: "ES384", hash: crypto.SHA384, curve: elliptic.P384(), private: key, public: &key.PublicKey}
}

// NewES512 returns a P-521/SHA-512 signer for the given private key.
func NewES512(key *ecdsa.PrivateKey) *ECDSASigner {
	return &ECDSASigner{name: "ES512", hash: crypto.SHA512, curve: elliptic.P521(), private: key, public: &key.PublicKey}
}

// NewES256Verifier returns a verify-only P-256/SHA-256 signer.
func NewES256Verifier(key *ecdsa.PublicKey) *ECDSASigner {
	return &ECDSASigner{name: "ES256", hash: crypto.SHA256, curve: elliptic.P256(), public: key}
}

// NewES384Verifier returns a verify-only P-384/SHA-384 signer.
func NewES384Verifier(key *ecdsa.PublicKey) *ECDSASigner {
	return &ECDSASigner{name: "ES384", hash: crypto.SHA384, curve: elliptic.P384(), public: key}
}

// NewES512Verifier returns a verify-only P-521/SHA-512 signer.
func NewES512Verifier(key *ecdsa.PublicKey) *ECDSASigner {
	return &ECDSASigner{name: "ES512", hash: crypto.SHA512, curve: elliptic.P521(), public: key}
}

// Name returns the algorithm identifier (ES256, ES384, or ES512).
func (s *ECDSASigner) Name() string {
	return s.name
}

// keySize is the byte length of one signature component on this curve.
func (s *ECDSASigner) keySize() int {
	return (s.curve.Params().BitSize + 7) / 8
}

// Sign produces a raw r||s signature over the digest of message.
func (s *ECDSASigner) Sign(message []byte) ([]byte, error) {
	if s.private == nil {
		return nil, fmt.Errorf("%s: %w", s.name, ErrMissingKey)
	}
	if s.private.Curve != s.curve {
		return nil, fmt.Errorf("%s: key curve %s does not match algorithm", s.name, s.private.Curve.Params().Name)
	}
	if !s.hash.Available() {
		return nil, fmt.Errorf("%s: hash function %v not available", s.name, s.hash)
	}

	hasher := s.hash.New()
	hasher.Write(message)

	r, rsVal, err := ecdsa.Sign(rand.Reader, s.private, hasher.Sum(nil))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}

	size := s.keySize()
	sig := make([]byte, 2*size)
	r.FillBytes(sig[:size])
	rsVal.FillBytes(sig[size:])
	return sig, nil
}

// Verify checks a raw r||s signature over the digest of message.
func (s *ECDSASigner) Verify(signature, message []byte) error {
	if s.public == nil {
		return fmt.Errorf("%s: %w", s.name, ErrMissingKey)
	}
	if !s.hash.Available() {
		return fmt.Errorf("%s: hash function %v not available", s.name, s.hash)
	}

	size := s.keySize()
	if len(signature) != 2*size {
		return ErrSignatureInvalid
	}

	r := new(big.Int).SetBytes(signature[:size])
	rsVal := new(big.Int).SetBytes(signature[size:])

	hasher := s.hash.New()
	hasher.Write(message)

	if !ecdsa.Verify(s.public, hasher.Sum(nil), r, rsVal) {
		return ErrSignatureInvalid
	}
	return nil
}
