package jwt

import (
	"errors"
	"fmt"
)

// Predefined errors for common token operations
var (
	// Configuration errors
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrInvalidSecretKey     = errors.New("invalid secret key: must be at least 32 bytes with sufficient entropy")
	ErrInvalidSigningMethod = errors.New("invalid signing method: must be HS256, HS384, or HS512")

	// Structural errors: the token string itself is broken. These are
	// surfaced immediately and never conflated with authenticity failures.
	ErrIncorrectSegmentCount = errors.New("token must consist of exactly three dot-separated segments")
	ErrInvalidEncoding       = errors.New("segment is not valid for the configured encoding")
	ErrMalformedJSON         = errors.New("segment does not contain valid JSON")
	ErrTokenTooLarge         = errors.New("token too large: maximum 8192 characters allowed")
	ErrEmptyToken            = errors.New("empty token: token string cannot be empty")

	// Verification errors: the token is well-formed but not authentic
	// under the supplied signer.
	ErrSignatureInvalid  = errors.New("signature verification failed")
	ErrAlgorithmMissing  = errors.New(`token header has no "alg" entry`)
	ErrAlgorithmMismatch = errors.New("token algorithm does not match the supplied signer")

	// Signer errors
	ErrMissingKey = errors.New("signer has no key material for this operation")

	// Processor errors
	ErrInvalidClaims   = errors.New("invalid claims: UserID or Username is required")
	ErrTokenRevoked    = errors.New("token has been revoked and is no longer valid")
	ErrTokenMissingID  = errors.New("token does not contain a valid ID (jti claim)")
	ErrInvalidToken    = errors.New("invalid token: signature verification failed or malformed")
	ErrProcessorClosed = errors.New("processor is closed: cannot perform operations")
)

// ValidationError represents a validation error for a specific field.
// It provides detailed information about what validation failed and why.
type ValidationError struct {
	Field   string // The field that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed for field '%s': %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
