// Package security holds key-material hygiene helpers shared by the
// signers and the processor.
package security

import (
	"crypto/subtle"
	"runtime"
	"strings"
	"sync"
)

// SecureBytes holds sensitive bytes and zeroes them on Destroy.
type SecureBytes struct {
	mu   sync.Mutex
	data []byte
}

// NewSecureBytes copies data into a SecureBytes container.
func NewSecureBytes(data []byte) *SecureBytes {
	owned := make([]byte, len(data))
	copy(owned, data)
	return &SecureBytes{data: owned}
}

// Bytes returns the underlying byte slice. Callers must not retain it
// past the container's lifetime.
func (s *SecureBytes) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Destroy zeroes the held bytes and releases them.
func (s *SecureBytes) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data != nil {
		ZeroBytes(s.data)
		s.data = nil
	}
}

// ZeroBytes overwrites a byte slice with zeroes.
func ZeroBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
	runtime.KeepAlive(data)
}

// SecureCompare performs constant-time comparison of two byte slices.
func SecureCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// IsWeakKey reports whether key material is too predictable to sign
// with: a single repeated byte, a tiny alphabet, a short repeated
// pattern, or a well-known placeholder secret.
func IsWeakKey(key []byte) bool {
	if len(key) == 0 {
		return true
	}

	distinct := make(map[byte]struct{}, 16)
	for _, b := range key {
		distinct[b] = struct{}{}
	}
	if len(distinct) < 8 {
		return true
	}

	if hasShortCycle(key) {
		return true
	}

	lower := strings.ToLower(string(key))
	for _, placeholder := range []string{"password", "secret", "changeme", "12345678", "qwerty"} {
		if strings.Contains(lower, placeholder) {
			return true
		}
	}

	return false
}

// hasShortCycle detects keys built by repeating a pattern of up to
// eight bytes.
func hasShortCycle(key []byte) bool {
	for period := 1; period <= 8 && period*2 <= len(key); period++ {
		cyclic := true
		for i := period; i < len(key); i++ {
			if key[i] != key[i-period] {
				cyclic = false
				break
			}
		}
		if cyclic {
			return true
		}
	}
	return false
}
