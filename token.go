// Package jwt implements construction, serialization, parsing, and
// verification of signed compact tokens: three encoded segments
// (header, payload, signature) joined by dots. The text encoding, the
// signing algorithm, and the claim rules applied to the payload are
// all pluggable; parsing never trusts a token's self-declared
// algorithm to pick cryptographic behavior, the signer is always
// chosen by the caller.
package jwt

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// TokenType is the default "typ" header value.
	TokenType = "JWT"

	separator = "."

	// maxTokenLength bounds parse input to keep cost predictable for
	// untrusted token strings.
	maxTokenLength = 8192
)

// Option configures token construction or parsing.
type Option func(*tokenOptions)

type tokenOptions struct {
	encoding Encoding
	headers  any
}

// WithEncoding selects the segment encoding. Base64URL is the default.
func WithEncoding(encoding Encoding) Option {
	return func(o *tokenOptions) {
		o.encoding = encoding
	}
}

// WithHeaders supplies the header tree for Sign. When the tree is a
// JSON object, default "alg" and "typ" entries are merged in only
// where absent; caller-supplied values always win. Non-object trees
// are used verbatim. Parse ignores this option.
func WithHeaders(headers any) Option {
	return func(o *tokenOptions) {
		o.headers = headers
	}
}

func applyOptions(opts []Option) tokenOptions {
	o := tokenOptions{encoding: Base64URL}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Token is an immutable signed compact token. The header and payload
// trees are fixed at construction; the encoded segments produced or
// received at that moment are retained so that serialization and
// signature verification always operate on the exact wire bytes,
// never on a re-serialization that might drift.
type Token struct {
	headers   any
	payload   any
	encoding  Encoding
	segments  [3]string
	signature []byte
}

// Sign constructs a token from a payload tree and a signer. The
// signature covers the encoded header, the separator, and the encoded
// payload, exactly as they will appear on the wire.
func Sign(payload any, signer Signer, opts ...Option) (*Token, error) {
	o := applyOptions(opts)
	headers := mergeHeaders(o.headers, signer.Name())

	headerJSON, err := json.Marshal(headers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal header: %w", err)
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	encodedHeader := o.encoding.Encode(headerJSON)
	encodedPayload := o.encoding.Encode(payloadJSON)

	message := encodedHeader + separator + encodedPayload
	signature, err := signer.Sign([]byte(message))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{
		headers:   headers,
		payload:   payload,
		encoding:  o.encoding,
		segments:  [3]string{encodedHeader, encodedPayload, o.encoding.Encode(signature)},
		signature: signature,
	}, nil
}

// Parse splits a compact token string into its three segments and
// decodes the header and payload trees and the raw signature bytes.
// Nothing is verified: neither the signature nor any claim is checked
// until the caller explicitly asks.
func Parse(tokenString string, opts ...Option) (*Token, error) {
	if len(tokenString) == 0 {
		return nil, ErrEmptyToken
	}
	if len(tokenString) > maxTokenLength {
		return nil, ErrTokenTooLarge
	}

	parts := strings.Split(tokenString, separator)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: got %d segments", ErrIncorrectSegmentCount, len(parts))
	}

	o := applyOptions(opts)

	headers, err := decodeTree(o.encoding, parts[0], "header")
	if err != nil {
		return nil, err
	}
	payload, err := decodeTree(o.encoding, parts[1], "payload")
	if err != nil {
		return nil, err
	}
	signature, err := o.encoding.Decode(parts[2])
	if err != nil {
		return nil, fmt.Errorf("signature segment: %w", err)
	}

	return &Token{
		headers:   headers,
		payload:   payload,
		encoding:  o.encoding,
		segments:  [3]string{parts[0], parts[1], parts[2]},
		signature: signature,
	}, nil
}

// mergeHeaders builds the header tree for a signed token. Default
// entries are injected only when the caller's tree is an object and
// the key is absent; anything the caller set explicitly is kept.
func mergeHeaders(supplied any, algorithm string) any {
	if supplied == nil {
		return map[string]any{"alg": algorithm, "typ": TokenType}
	}

	tree, ok := supplied.(map[string]any)
	if !ok {
		return supplied
	}

	merged := make(map[string]any, len(tree)+2)
	for key, value := range tree {
		merged[key] = value
	}
	if _, ok := merged["alg"]; !ok {
		merged["alg"] = algorithm
	}
	if _, ok := merged["typ"]; !ok {
		merged["typ"] = TokenType
	}
	return merged
}

func decodeTree(encoding Encoding, segment, name string) (any, error) {
	raw, err := encoding.Decode(segment)
	if err != nil {
		return nil, fmt.Errorf("%s segment: %w", name, err)
	}

	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("%s segment: %w: %v", name, ErrMalformedJSON, err)
	}
	return tree, nil
}

// String serializes the token back to its compact form. It joins the
// retained segments, so the result is idempotent and, for parsed
// tokens, byte-identical to the input string.
func (t *Token) String() string {
	return t.segments[0] + separator + t.segments[1] + separator + t.segments[2]
}

// Headers returns the header tree. Callers must treat it as read-only.
func (t *Token) Headers() any {
	return t.headers
}

// Payload returns the payload tree. Callers must treat it as read-only.
func (t *Token) Payload() any {
	return t.payload
}

// Signature returns a copy of the raw signature bytes.
func (t *Token) Signature() []byte {
	sig := make([]byte, len(t.signature))
	copy(sig, t.signature)
	return sig
}

// Algorithm reads the "alg" header entry. The second return reports
// whether a string value was present, letting callers decide how to
// treat unsigned or ambiguous tokens.
func (t *Token) Algorithm() (string, bool) {
	tree, ok := t.headers.(map[string]any)
	if !ok {
		return "", false
	}
	algorithm, ok := tree["alg"].(string)
	return algorithm, ok
}

// VerifySignature checks the stored signature with the supplied
// signer. The message is rebuilt from the retained encoded segments,
// so verification is bound to the exact wire bytes. The signer's name
// must match the token's "alg" entry; a missing entry fails with
// ErrAlgorithmMissing. Each call verifies independently; nothing is
// cached.
func (t *Token) VerifySignature(signer Signer) error {
	algorithm, ok := t.Algorithm()
	if !ok {
		return ErrAlgorithmMissing
	}
	if algorithm != signer.Name() {
		return fmt.Errorf("%w: token has %q, signer is %q", ErrAlgorithmMismatch, algorithm, signer.Name())
	}

	message := []byte(t.segments[0] + separator + t.segments[1])
	return signer.Verify(t.signature, message)
}

// VerifyClaims evaluates every claim against the payload tree and
// reports their conjunction. All claims run even after a failure, and
// the empty set passes.
func (t *Token) VerifyClaims(claims ...Claim) bool {
	verified := true
	for _, claim := range claims {
		if !claim.Verify(t.payload) {
			verified = false
		}
	}
	return verified
}

// DecodePayload re-decodes the retained payload segment into dest,
// for callers that want typed claims instead of the generic tree.
func (t *Token) DecodePayload(dest any) error {
	raw, err := t.encoding.Decode(t.segments[1])
	if err != nil {
		return fmt.Errorf("payload segment: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("payload segment: %w: %v", ErrMalformedJSON, err)
	}
	return nil
}
