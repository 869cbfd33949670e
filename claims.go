package jwt

import (
	"encoding/json"
	"time"
)

// Claim is a stateless predicate over the payload tree validating one
// semantic rule. Claims are pure: they must not fail for a missing
// optional field, absence is a pass. A field that is present but
// malformed never passes.
type Claim interface {
	Verify(payload any) bool
}

// ClaimFunc adapts a plain function to the Claim interface.
type ClaimFunc func(payload any) bool

func (f ClaimFunc) Verify(payload any) bool {
	return f(payload)
}

// NotExpired passes when the "exp" claim, if present, is at or after
// the reference time.
func NotExpired(now time.Time) Claim {
	return ClaimFunc(func(payload any) bool {
		raw, present := payloadField(payload, "exp")
		if !present || raw == nil {
			return true
		}
		exp, ok := numericDate(raw)
		return ok && exp >= now.Unix()
	})
}

// NotBeforeReached passes when the "nbf" claim, if present, is at or
// before the reference time.
func NotBeforeReached(now time.Time) Claim {
	return ClaimFunc(func(payload any) bool {
		raw, present := payloadField(payload, "nbf")
		if !present || raw == nil {
			return true
		}
		nbf, ok := numericDate(raw)
		return ok && nbf <= now.Unix()
	})
}

// IssuedInPast passes when the "iat" claim, if present, is not in the
// future relative to the reference time.
func IssuedInPast(now time.Time) Claim {
	return ClaimFunc(func(payload any) bool {
		raw, present := payloadField(payload, "iat")
		if !present || raw == nil {
			return true
		}
		iat, ok := numericDate(raw)
		return ok && iat <= now.Unix()
	})
}

// IssuedBy passes when the "iss" claim, if present, equals issuer.
func IssuedBy(issuer string) Claim {
	return ClaimFunc(func(payload any) bool {
		raw, present := payloadField(payload, "iss")
		if !present || raw == nil {
			return true
		}
		iss, ok := raw.(string)
		return ok && iss == issuer
	})
}

// SubjectIs passes when the "sub" claim, if present, equals subject.
func SubjectIs(subject string) Claim {
	return ClaimFunc(func(payload any) bool {
		raw, present := payloadField(payload, "sub")
		if !present || raw == nil {
			return true
		}
		sub, ok := raw.(string)
		return ok && sub == subject
	})
}

// AudienceContains passes when the "aud" claim, if present, is or
// contains audience. Both the single-string and array forms from
// RFC 7519 are accepted.
func AudienceContains(audience string) Claim {
	return ClaimFunc(func(payload any) bool {
		raw, present := payloadField(payload, "aud")
		if !present || raw == nil {
			return true
		}
		switch aud := raw.(type) {
		case string:
			return aud == audience
		case []any:
			for _, entry := range aud {
				if s, ok := entry.(string); ok && s == audience {
					return true
				}
			}
			return false
		case []string:
			for _, s := range aud {
				if s == audience {
					return true
				}
			}
			return false
		default:
			return false
		}
	})
}

// payloadField looks up key in the payload tree. Non-object payloads
// have no fields, so every lookup on them reports absence.
func payloadField(payload any, key string) (any, bool) {
	tree, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	value, ok := tree[key]
	return value, ok
}

// numericDate reads a claim value as Unix seconds. JSON numbers
// surface as float64 from the tree decoder; json.Number and integer
// forms are accepted for payloads supplied as Go values.
func numericDate(value any) (int64, bool) {
	switch v := value.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case json.Number:
		unix, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return unix, true
	default:
		return 0, false
	}
}
